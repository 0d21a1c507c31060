package svgelem

import "strings"

// This file defines the path command model behind the `d` attribute.

type pathVerb uint8

const (
	verbMoveTo pathVerb = iota
	verbLineTo
	verbQuadTo
	verbCubicTo
	verbClose
)

// PathOp groups the different path commands.
type PathOp interface {
	verb() pathVerb
}

type MoveTo Point

type LineTo Point

// QuadTo is (control point, end point).
type QuadTo [2]Point

// CubicTo is (control point 1, control point 2, end point).
type CubicTo [3]Point

type Close struct{}

func (MoveTo) verb() pathVerb  { return verbMoveTo }
func (LineTo) verb() pathVerb  { return verbLineTo }
func (QuadTo) verb() pathVerb  { return verbQuadTo }
func (CubicTo) verb() pathVerb { return verbCubicTo }
func (Close) verb() pathVerb   { return verbClose }

// PathData describes a sequence of path commands.
// All commands are absolute.
type PathData []PathOp

// Start starts a new sub-path at the given point.
func (p *PathData) Start(a Point) {
	*p = append(*p, MoveTo(a))
}

// Line adds a linear segment to the current sub-path.
func (p *PathData) Line(b Point) {
	*p = append(*p, LineTo(b))
}

// QuadBezier adds a quadratic segment to the current sub-path.
func (p *PathData) QuadBezier(b, c Point) {
	*p = append(*p, QuadTo{b, c})
}

// CubeBezier adds a cubic segment to the current sub-path.
func (p *PathData) CubeBezier(b, c, d Point) {
	*p = append(*p, CubicTo{b, c, d})
}

// Stop closes the current sub-path if closeLoop is true.
func (p *PathData) Stop(closeLoop bool) {
	if closeLoop {
		*p = append(*p, Close{})
	}
}

// D returns the value of the `d` attribute describing the path.
// Coordinates use the canonical decimal form.
func (p PathData) D() string {
	chunks := make([]string, len(p))
	for i, op := range p {
		switch op := op.(type) {
		case MoveTo:
			chunks[i] = "M " + Ftoa(op.X) + " " + Ftoa(op.Y)
		case LineTo:
			chunks[i] = "L " + Ftoa(op.X) + " " + Ftoa(op.Y)
		case QuadTo:
			chunks[i] = "Q " + Ftoa(op[0].X) + " " + Ftoa(op[0].Y) +
				" " + Ftoa(op[1].X) + " " + Ftoa(op[1].Y)
		case CubicTo:
			chunks[i] = "C " + Ftoa(op[0].X) + " " + Ftoa(op[0].Y) +
				" " + Ftoa(op[1].X) + " " + Ftoa(op[1].Y) +
				" " + Ftoa(op[2].X) + " " + Ftoa(op[2].Y)
		case Close:
			chunks[i] = "Z"
		}
	}
	return strings.Join(chunks, " ")
}

// String returns a readable representation of the path.
func (p PathData) String() string { return p.D() }
