package svgraster

// Fitting output to the drawn content needs the tight extent of every
// path. Bezier segments can overshoot their endpoints, so the extrema
// of each coordinate polynomial are evaluated alongside them.

import (
	"errors"
	"math"

	"go.uber.org/zap"
	"golang.org/x/image/math/fixed"

	"github.com/benoitkugler/livesvg/svgdom"
)

// Rect is an axis aligned rectangle.
type Rect struct {
	X, Y, W, H float64
}

// ContentBounds returns the tight bounding box of the document's
// drawable content, in the user space of its svg element. Hidden or
// unpainted content does not count; stroke extent is approximated by
// half the stroke width. An empty document yields the zero Rect.
func ContentBounds(doc svgdom.Document, mode ErrorMode, opts ...Option) (Rect, error) {
	cfg := config{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}
	svg := findSVG(doc.Root())
	if svg == nil {
		return Rect{}, errors.New("document holds no svg element")
	}
	c := &cursor{mode: mode, log: cfg.log, bounds: &boundsAccum{}}
	c.styleStack = append(c.styleStack, defaultStyle) // identity transform: user space
	c.defs = collectIDs(svg)
	if err := c.walkNode(svg); err != nil {
		return Rect{}, err
	}
	return c.bounds.rect(), nil
}

// flushBounds grows the accumulator by the current path instead of
// painting it.
func (c *cursor) flushBounds() {
	if len(c.path) == 0 {
		return
	}
	defer c.path.Clear()
	st := c.cur()
	stroked := st.stroke != nil && st.lineWidth > 0
	if st.fill == nil && !stroked {
		return
	}
	var acc boundsAccum
	ba := boundsAdder{acc: &acc}
	c.path.drawTo(&ba, st.transform)
	if stroked {
		acc.pad(st.lineWidth * st.transform.meanScale() / 2)
	}
	c.bounds.merge(acc)
}

// boundsAdder funnels replayed path segments into an accumulator.
type boundsAdder struct {
	acc *boundsAccum
	a   vec // current point
}

func unfix(p fixed.Point26_6) vec {
	return vec{float64(p.X) / 64, float64(p.Y) / 64}
}

func (b *boundsAdder) Start(p fixed.Point26_6) {
	b.a = unfix(p)
	b.acc.point(b.a)
}

func (b *boundsAdder) Line(p fixed.Point26_6) {
	q := unfix(p)
	b.acc.grow(line{b.a, q})
	b.a = q
}

func (b *boundsAdder) QuadBezier(ctrl, p fixed.Point26_6) {
	q := unfix(p)
	b.acc.grow(quadBezier{b.a, unfix(ctrl), q})
	b.a = q
}

func (b *boundsAdder) CubeBezier(c1, c2, p fixed.Point26_6) {
	q := unfix(p)
	b.acc.grow(cubicBezier{b.a, unfix(c1), unfix(c2), q})
	b.a = q
}

func (b *boundsAdder) Stop(closeLoop bool) {}

type vec struct{ x, y float64 }

// bezier is a parametric curve over [0, 1].
type bezier interface {
	// criticalPoints returns the t zeroing each coordinate derivative
	criticalPoints() (tX, tY []float64)
	evaluateCurve(t float64) (x, y float64)
}

type line [2]vec

func (l line) criticalPoints() (tX, tY []float64) { return nil, nil }

func (l line) evaluateCurve(t float64) (x, y float64) {
	return bezierLine(l[0].x, l[1].x, t), bezierLine(l[0].y, l[1].y, t)
}

func bezierLine(p0, p1, t float64) float64 {
	return (p1-p0)*t + p0
}

type quadBezier [3]vec

// quadratic polynomial
// x = At^2 + Bt + C
// where A = p0 + p2 - 2p1, B = 2(p1 - p0), C = p0
func bezierQuad(p0, p1, p2, t float64) float64 {
	return (p0+p2-2*p1)*t*t + 2*(p1-p0)*t + p0
}

// derivative of the quadratic, as a*t + b
func quadDerivative(p0, p1, p2 float64) (a, b float64) {
	return 2 * (p2 - p1 - (p1 - p0)), 2 * (p1 - p0)
}

func linearRoots(a, b float64) []float64 {
	if a == 0 {
		return nil
	}
	return []float64{-b / a}
}

func (q quadBezier) criticalPoints() (tX, tY []float64) {
	aX, bX := quadDerivative(q[0].x, q[1].x, q[2].x)
	aY, bY := quadDerivative(q[0].y, q[1].y, q[2].y)
	return linearRoots(aX, bX), linearRoots(aY, bY)
}

func (q quadBezier) evaluateCurve(t float64) (x, y float64) {
	return bezierQuad(q[0].x, q[1].x, q[2].x, t), bezierQuad(q[0].y, q[1].y, q[2].y, t)
}

type cubicBezier [4]vec

// cubic polynomial
// x = At^3 + Bt^2 + Ct + D
// where A = p3 - 3p2 + 3p1 - p0, B = 3p2 - 6p1 + 3p0,
// C = 3p1 - 3p0, D = p0
func bezierCube(p0, p1, p2, p3, t float64) float64 {
	return (p3-3*p2+3*p1-p0)*t*t*t +
		(3*p2-6*p1+3*p0)*t*t +
		(3*p1-3*p0)*t +
		p0
}

// derivative of the cubic, as a*t^2 + b*t + c
func cubeDerivative(p0, p1, p2, p3 float64) (a, b, c float64) {
	return 3*p3 - 9*p2 + 9*p1 - 3*p0, 6*p2 - 12*p1 + 6*p0, 3*p1 - 3*p0
}

func quadraticRoots(a, b, c float64) []float64 {
	if a == 0 {
		return linearRoots(b, c)
	}
	d := b*b - 4*a*c
	if d < 0 {
		return nil
	}
	if d == 0 {
		return []float64{-b / (2 * a)}
	}
	sq := math.Sqrt(d)
	return []float64{(-b + sq) / (2 * a), (-b - sq) / (2 * a)}
}

func (cu cubicBezier) criticalPoints() (tX, tY []float64) {
	aX, bX, cX := cubeDerivative(cu[0].x, cu[1].x, cu[2].x, cu[3].x)
	aY, bY, cY := cubeDerivative(cu[0].y, cu[1].y, cu[2].y, cu[3].y)
	return quadraticRoots(aX, bX, cX), quadraticRoots(aY, bY, cY)
}

func (cu cubicBezier) evaluateCurve(t float64) (x, y float64) {
	return bezierCube(cu[0].x, cu[1].x, cu[2].x, cu[3].x, t),
		bezierCube(cu[0].y, cu[1].y, cu[2].y, cu[3].y, t)
}

// boundsAccum aggregates bounding boxes over several paths.
type boundsAccum struct {
	min, max vec
	any      bool
}

func (b *boundsAccum) point(p vec) {
	if !b.any {
		b.min, b.max = p, p
		b.any = true
		return
	}
	b.min.x = math.Min(b.min.x, p.x)
	b.min.y = math.Min(b.min.y, p.y)
	b.max.x = math.Max(b.max.x, p.x)
	b.max.y = math.Max(b.max.y, p.y)
}

// grow extends the box by the extent of the curve: its endpoints plus
// every extremum falling inside [0, 1].
func (b *boundsAccum) grow(curve bezier) {
	tX, tY := curve.criticalPoints()
	for _, t := range append(append(tX, 0, 1), tY...) {
		if !(0 <= t && t <= 1) {
			continue
		}
		x, y := curve.evaluateCurve(t)
		b.point(vec{x, y})
	}
}

func (b *boundsAccum) pad(d float64) {
	if !b.any {
		return
	}
	b.min.x -= d
	b.min.y -= d
	b.max.x += d
	b.max.y += d
}

func (b *boundsAccum) merge(other boundsAccum) {
	if !other.any {
		return
	}
	b.point(other.min)
	b.point(other.max)
}

func (b *boundsAccum) rect() Rect {
	if !b.any {
		return Rect{}
	}
	return Rect{X: b.min.x, Y: b.min.y, W: b.max.x - b.min.x, H: b.max.y - b.min.y}
}
