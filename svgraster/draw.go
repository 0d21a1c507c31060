package svgraster

import (
	"golang.org/x/image/math/fixed"
)

// Stroke vocabulary, matching the SVG attributes stroke-linejoin,
// stroke-linecap and friends, plus a few extensions supported by the
// rasterx backend.

// JoinMode specifies how stroke segments bridge the gap at a join.
type JoinMode uint8

const (
	Arc JoinMode = iota // new in SVG2
	Round
	Bevel
	Miter
	MiterClip // new in SVG2
	ArcClip   // like MiterClip applied to arcs; not part of SVG2
)

func (s JoinMode) String() string {
	switch s {
	case Round:
		return "Round"
	case Bevel:
		return "Bevel"
	case Miter:
		return "Miter"
	case MiterClip:
		return "MiterClip"
	case Arc:
		return "Arc"
	case ArcClip:
		return "ArcClip"
	default:
		return "<unknown JoinMode>"
	}
}

// CapMode defines how to draw caps on the ends of lines.
type CapMode uint8

const (
	NilCap CapMode = iota // default value
	ButtCap
	SquareCap
	RoundCap
	CubicCap     // not part of SVG2
	QuadraticCap // not part of SVG2
)

func (c CapMode) String() string {
	switch c {
	case NilCap:
		return "NilCap"
	case ButtCap:
		return "ButtCap"
	case SquareCap:
		return "SquareCap"
	case RoundCap:
		return "RoundCap"
	case CubicCap:
		return "CubicCap"
	case QuadraticCap:
		return "QuadraticCap"
	default:
		return "<unknown CapMode>"
	}
}

// GapMode defines how to bridge gaps when the miter limit is
// exceeded; not part of SVG2.
type GapMode uint8

const (
	NilGap GapMode = iota
	FlatGap
	RoundGap
	CubicGap
	QuadraticGap
)

func (g GapMode) String() string {
	switch g {
	case NilGap:
		return "NilGap"
	case FlatGap:
		return "FlatGap"
	case RoundGap:
		return "RoundGap"
	case CubicGap:
		return "CubicGap"
	case QuadraticGap:
		return "QuadraticGap"
	default:
		return "<unknown GapMode>"
	}
}

// JoinOptions groups the stroke join parameters.
type JoinOptions struct {
	MiterLimit   fixed.Int26_6 // cutoff for miter, arc, miterclip and arcclip joins
	LineJoin     JoinMode
	TrailLineCap CapMode // capping function for line ends

	LeadLineCap CapMode // when set, overrides TrailLineCap for leading ends
	LineGap     GapMode // how the convex side of a limited join is filled
}

// DashOptions describes the dash pattern of a stroke.
type DashOptions struct {
	Dash       []float64 // nil or empty for a plain stroke
	DashOffset float64   // starting offset into the pattern
}

func fToFixed(f float64) fixed.Int26_6 {
	return fixed.Int26_6(f * 64)
}
