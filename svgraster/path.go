package svgraster

import (
	"github.com/srwiley/rasterx"
)

// The path model shapes are reduced to before rasterization.
// Coordinates stay in user (viewBox) space; the transform is applied
// when the operations are replayed onto a rasterx.Adder.

// Operation is one basic drawing step of a path.
type Operation interface {
	drawTo(d rasterx.Adder, m matrix2D)
}

type MoveTo struct{ X, Y float64 }

type LineTo struct{ X, Y float64 }

type QuadTo [2]struct{ X, Y float64 }

type CubicTo [3]struct{ X, Y float64 }

type Close struct{}

func (op MoveTo) drawTo(d rasterx.Adder, m matrix2D) {
	d.Stop(false) // implicit close of the previous subpath
	d.Start(m.toFixed(op.X, op.Y))
}

func (op LineTo) drawTo(d rasterx.Adder, m matrix2D) {
	d.Line(m.toFixed(op.X, op.Y))
}

func (op QuadTo) drawTo(d rasterx.Adder, m matrix2D) {
	d.QuadBezier(m.toFixed(op[0].X, op[0].Y), m.toFixed(op[1].X, op[1].Y))
}

func (op CubicTo) drawTo(d rasterx.Adder, m matrix2D) {
	d.CubeBezier(m.toFixed(op[0].X, op[0].Y), m.toFixed(op[1].X, op[1].Y),
		m.toFixed(op[2].X, op[2].Y))
}

func (op Close) drawTo(d rasterx.Adder, _ matrix2D) {
	d.Stop(true)
}

// Path is a sequence of basic operations. Higher level shapes are
// reduced to a path before drawing.
type Path []Operation

// drawTo replays the path onto d, applying the transform m.
func (p Path) drawTo(d rasterx.Adder, m matrix2D) {
	for _, op := range p {
		op.drawTo(d, m)
	}
}

// Clear zeros the path slice, keeping the storage.
func (p *Path) Clear() {
	*p = (*p)[:0]
}

// Start starts a new subpath at the given point.
func (p *Path) Start(x, y float64) {
	*p = append(*p, MoveTo{x, y})
}

// Line adds a linear segment to the current subpath.
func (p *Path) Line(x, y float64) {
	*p = append(*p, LineTo{x, y})
}

// QuadBezier adds a quadratic segment to the current subpath.
func (p *Path) QuadBezier(cx, cy, x, y float64) {
	*p = append(*p, QuadTo{{cx, cy}, {x, y}})
}

// CubeBezier adds a cubic segment to the current subpath.
func (p *Path) CubeBezier(c1x, c1y, c2x, c2y, x, y float64) {
	*p = append(*p, CubicTo{{c1x, c1y}, {c2x, c2y}, {x, y}})
}

// Stop closes the current subpath if closeLoop is set.
func (p *Path) Stop(closeLoop bool) {
	if closeLoop {
		*p = append(*p, Close{})
	}
}

// control distance placing cubic endpoints on a quarter circle
const kappa = 0.5522847498307936

// ellipseAt adds the ellipse of center (cx, cy) and radii (rx, ry),
// approximated with four cubic arcs.
func (p *Path) ellipseAt(cx, cy, rx, ry float64) {
	dx, dy := kappa*rx, kappa*ry
	p.Start(cx+rx, cy)
	p.CubeBezier(cx+rx, cy+dy, cx+dx, cy+ry, cx, cy+ry)
	p.CubeBezier(cx-dx, cy+ry, cx-rx, cy+dy, cx-rx, cy)
	p.CubeBezier(cx-rx, cy-dy, cx-dx, cy-ry, cx, cy-ry)
	p.CubeBezier(cx+dx, cy-ry, cx+rx, cy-dy, cx+rx, cy)
	p.Stop(true)
}

// addRoundRect adds the rectangle spanning (minX, minY) to
// (maxX, maxY), with corners rounded by the radii (rx, ry).
func (p *Path) addRoundRect(minX, minY, maxX, maxY, rx, ry float64) {
	if rx <= 0 || ry <= 0 {
		p.Start(minX, minY)
		p.Line(maxX, minY)
		p.Line(maxX, maxY)
		p.Line(minX, maxY)
		p.Stop(true)
		return
	}
	if w := (maxX - minX) / 2; rx > w {
		rx = w
	}
	if h := (maxY - minY) / 2; ry > h {
		ry = h
	}
	dx, dy := kappa*rx, kappa*ry
	p.Start(minX+rx, minY)
	p.Line(maxX-rx, minY)
	p.CubeBezier(maxX-rx+dx, minY, maxX, minY+ry-dy, maxX, minY+ry)
	p.Line(maxX, maxY-ry)
	p.CubeBezier(maxX, maxY-ry+dy, maxX-rx+dx, maxY, maxX-rx, maxY)
	p.Line(minX+rx, maxY)
	p.CubeBezier(minX+rx-dx, maxY, minX, maxY-ry+dy, minX, maxY-ry)
	p.Line(minX, minY+ry)
	p.CubeBezier(minX, minY+ry-dy, minX+rx-dx, minY, minX+rx, minY)
	p.Stop(true)
}
