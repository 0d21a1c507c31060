package svgraster

import (
	"math"

	"golang.org/x/image/math/fixed"
)

// matrix2D is an affine transform
//
//	a c e
//	b d f
//
// mapping (x, y) to (a*x+c*y+e, b*x+d*y+f).
type matrix2D struct {
	a, b, c, d, e, f float64
}

var identity = matrix2D{1, 0, 0, 1, 0, 0}

func (m matrix2D) mult(n matrix2D) matrix2D {
	return matrix2D{
		a: m.a*n.a + m.c*n.b,
		b: m.b*n.a + m.d*n.b,
		c: m.a*n.c + m.c*n.d,
		d: m.b*n.c + m.d*n.d,
		e: m.a*n.e + m.c*n.f + m.e,
		f: m.b*n.e + m.d*n.f + m.f,
	}
}

func (m matrix2D) translate(x, y float64) matrix2D {
	return m.mult(matrix2D{1, 0, 0, 1, x, y})
}

func (m matrix2D) scale(x, y float64) matrix2D {
	return m.mult(matrix2D{x, 0, 0, y, 0, 0})
}

func (m matrix2D) rotate(rad float64) matrix2D {
	sin, cos := math.Sincos(rad)
	return m.mult(matrix2D{cos, sin, -sin, cos, 0, 0})
}

func (m matrix2D) skewX(rad float64) matrix2D {
	return m.mult(matrix2D{1, 0, math.Tan(rad), 1, 0, 0})
}

func (m matrix2D) skewY(rad float64) matrix2D {
	return m.mult(matrix2D{1, math.Tan(rad), 0, 1, 0, 0})
}

func (m matrix2D) apply(x, y float64) (float64, float64) {
	return m.a*x + m.c*y + m.e, m.b*x + m.d*y + m.f
}

func (m matrix2D) toFixed(x, y float64) fixed.Point26_6 {
	tx, ty := m.apply(x, y)
	return fixed.Point26_6{X: fixed.Int26_6(tx * 64), Y: fixed.Int26_6(ty * 64)}
}

// meanScale is the average length change of the transform, used to
// scale scalar quantities such as stroke widths.
func (m matrix2D) meanScale() float64 {
	return (math.Hypot(m.a, m.b) + math.Hypot(m.c, m.d)) / 2
}
