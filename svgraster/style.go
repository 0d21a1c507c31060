package svgraster

import (
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/benoitkugler/livesvg/svgdom"
)

// pathStyle is the resolved drawing state of one element, merged from
// the styles of its ancestors.
type pathStyle struct {
	fillOpacity, lineOpacity float64
	lineWidth                float64
	useNonZeroWinding        bool

	join JoinOptions
	dash DashOptions

	fill, stroke color.Color // nil disables the corresponding paint

	transform matrix2D
}

// defaultStyle fills black with full opacity and no stroke, per the
// SVG initial values.
var defaultStyle = pathStyle{
	fillOpacity:       1,
	lineOpacity:       1,
	lineWidth:         2,
	useNonZeroWinding: true,
	join: JoinOptions{
		MiterLimit:   fToFixed(4),
		LineJoin:     Bevel,
		TrailLineCap: ButtCap,
	},
	fill:      color.NRGBA{0, 0, 0, 0xff},
	transform: identity,
}

// pushStyle merges the node's styling over the current style and
// pushes the result. Presentation attributes and the style attribute
// are both honored, in document order.
func (c *cursor) pushStyle(node svgdom.Node) error {
	var pairs []string
	for _, name := range node.AttributeNames() {
		v, _ := node.Attribute(name)
		switch strings.ToLower(name) {
		case "style":
			pairs = append(pairs, strings.Split(v, ";")...)
		default:
			pairs = append(pairs, name+":"+v)
		}
	}
	curStyle := c.styleStack[len(c.styleStack)-1]
	for _, pair := range pairs {
		k, v, found := strings.Cut(pair, ":")
		if !found {
			continue
		}
		err := c.readStyleAttr(&curStyle, strings.ToLower(strings.TrimSpace(k)), strings.TrimSpace(v))
		if err != nil {
			return err
		}
	}
	c.styleStack = append(c.styleStack, curStyle)
	return nil
}

func (c *cursor) popStyle() {
	c.styleStack = c.styleStack[:len(c.styleStack)-1]
}

func (c *cursor) readStyleAttr(curStyle *pathStyle, k, v string) error {
	switch k {
	case "fill":
		if strings.HasPrefix(v, "url(") {
			curStyle.fill = nil
			return c.handleError("gradient and pattern fills are not supported")
		}
		col, err := parseColor(v)
		if err != nil {
			return err
		}
		curStyle.fill = col
	case "stroke":
		if strings.HasPrefix(v, "url(") {
			curStyle.stroke = nil
			return c.handleError("gradient and pattern strokes are not supported")
		}
		col, err := parseColor(v)
		if err != nil {
			return err
		}
		curStyle.stroke = col
	case "stroke-linegap":
		switch v {
		case "flat":
			curStyle.join.LineGap = FlatGap
		case "round":
			curStyle.join.LineGap = RoundGap
		case "cubic":
			curStyle.join.LineGap = CubicGap
		case "quadratic":
			curStyle.join.LineGap = QuadraticGap
		}
	case "stroke-leadlinecap":
		switch v {
		case "butt":
			curStyle.join.LeadLineCap = ButtCap
		case "round":
			curStyle.join.LeadLineCap = RoundCap
		case "square":
			curStyle.join.LeadLineCap = SquareCap
		case "cubic":
			curStyle.join.LeadLineCap = CubicCap
		case "quadratic":
			curStyle.join.LeadLineCap = QuadraticCap
		}
	case "stroke-linecap":
		switch v {
		case "butt":
			curStyle.join.TrailLineCap = ButtCap
		case "round":
			curStyle.join.TrailLineCap = RoundCap
		case "square":
			curStyle.join.TrailLineCap = SquareCap
		case "cubic":
			curStyle.join.TrailLineCap = CubicCap
		case "quadratic":
			curStyle.join.TrailLineCap = QuadraticCap
		}
	case "stroke-linejoin":
		switch v {
		case "miter":
			curStyle.join.LineJoin = Miter
		case "miter-clip":
			curStyle.join.LineJoin = MiterClip
		case "arc-clip":
			curStyle.join.LineJoin = ArcClip
		case "round":
			curStyle.join.LineJoin = Round
		case "arc":
			curStyle.join.LineJoin = Arc
		case "bevel":
			curStyle.join.LineJoin = Bevel
		}
	case "stroke-miterlimit":
		mLimit, err := parseUnit(v)
		if err != nil {
			return err
		}
		curStyle.join.MiterLimit = fToFixed(mLimit)
	case "stroke-width":
		width, err := parseUnit(v)
		if err != nil {
			return err
		}
		curStyle.lineWidth = width
	case "stroke-dashoffset":
		offset, err := parseUnit(v)
		if err != nil {
			return err
		}
		curStyle.dash.DashOffset = offset
	case "stroke-dasharray":
		if v == "none" {
			break
		}
		dashes := splitOnCommaOrSpace(v)
		dList := make([]float64, len(dashes))
		for i, dstr := range dashes {
			d, err := parseUnit(dstr)
			if err != nil {
				return err
			}
			dList[i] = d
		}
		curStyle.dash.Dash = dList
	case "fill-rule":
		switch v {
		case "evenodd":
			curStyle.useNonZeroWinding = false
		case "nonzero":
			curStyle.useNonZeroWinding = true
		}
	case "opacity", "stroke-opacity", "fill-opacity":
		op, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return err
		}
		if k != "stroke-opacity" {
			curStyle.fillOpacity *= op
		}
		if k != "fill-opacity" {
			curStyle.lineOpacity *= op
		}
	case "transform":
		m, err := c.parseTransform(v, curStyle.transform)
		if err != nil {
			return err
		}
		curStyle.transform = m
	}
	return nil
}

func (c *cursor) parseTransform(v string, base matrix2D) (matrix2D, error) {
	m1 := base
	for _, t := range strings.Split(v, ")") {
		t = strings.TrimSpace(t)
		if len(t) == 0 {
			continue
		}
		name, args, found := strings.Cut(t, "(")
		if !found || len(args) < 1 {
			return m1, errParamMismatch // badly formed transformation
		}
		if err := c.getPoints(args); err != nil {
			return m1, err
		}
		var err error
		m1, err = c.readTransformAttr(m1, strings.ToLower(strings.TrimSpace(name)))
		if err != nil {
			return m1, err
		}
	}
	return m1, nil
}

func (c *cursor) readTransformAttr(m1 matrix2D, k string) (matrix2D, error) {
	ln := len(c.points)
	switch k {
	case "rotate":
		if ln == 1 {
			m1 = m1.rotate(c.points[0] * math.Pi / 180)
		} else if ln == 3 {
			m1 = m1.translate(c.points[1], c.points[2]).
				rotate(c.points[0] * math.Pi / 180).
				translate(-c.points[1], -c.points[2])
		} else {
			return m1, errParamMismatch
		}
	case "translate":
		if ln == 1 {
			m1 = m1.translate(c.points[0], 0)
		} else if ln == 2 {
			m1 = m1.translate(c.points[0], c.points[1])
		} else {
			return m1, errParamMismatch
		}
	case "skewx":
		if ln == 1 {
			m1 = m1.skewX(c.points[0] * math.Pi / 180)
		} else {
			return m1, errParamMismatch
		}
	case "skewy":
		if ln == 1 {
			m1 = m1.skewY(c.points[0] * math.Pi / 180)
		} else {
			return m1, errParamMismatch
		}
	case "scale":
		if ln == 1 {
			m1 = m1.scale(c.points[0], c.points[0])
		} else if ln == 2 {
			m1 = m1.scale(c.points[0], c.points[1])
		} else {
			return m1, errParamMismatch
		}
	case "matrix":
		if ln == 6 {
			m1 = m1.mult(matrix2D{
				a: c.points[0],
				b: c.points[1],
				c: c.points[2],
				d: c.points[3],
				e: c.points[4],
				f: c.points[5],
			})
		} else {
			return m1, errParamMismatch
		}
	default:
		return m1, errParamMismatch
	}
	return m1, nil
}

// isHidden reports whether the node opted out of display, through
// either the display attribute or the style shorthand.
func isHidden(node svgdom.Node) bool {
	if v, ok := node.Attribute("display"); ok && strings.TrimSpace(v) == "none" {
		return true
	}
	v, ok := node.Attribute("style")
	if !ok {
		return false
	}
	for _, pair := range strings.Split(v, ";") {
		k, val, found := strings.Cut(pair, ":")
		if found && strings.TrimSpace(k) == "display" && strings.TrimSpace(val) == "none" {
			return true
		}
	}
	return false
}

// parseUnit reads a length value. Only raw numbers and the px unit
// are supported, the forms the renderer writes.
func parseUnit(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "px")
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

// attrFloat reads the named length attribute, defaulting when absent.
func attrFloat(node svgdom.Node, name string, def float64) (float64, error) {
	v, ok := node.Attribute(name)
	if !ok {
		return def, nil
	}
	return parseUnit(v)
}

// getPoints parses a list of numbers into the scratch slice.
func (c *cursor) getPoints(s string) error {
	c.points = c.points[:0]
	for _, f := range splitOnCommaOrSpace(s) {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return err
		}
		c.points = append(c.points, v)
	}
	return nil
}

// splitOnCommaOrSpace returns the fields of s after splitting on
// comma and space delimiters.
func splitOnCommaOrSpace(s string) []string {
	return strings.FieldsFunc(s,
		func(r rune) bool {
			return r == ',' || r == ' '
		})
}
