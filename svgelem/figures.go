package svgelem

// Ready made figures with a common default styling: stroked in black
// with width 1, not filled. Render locations are given when rendering;
// the figures themselves sit at the origin.

const defaultStrokeWidth = 1

func defaultStyle(el Element) Element {
	return el.
		SetColor("stroke", Black).
		SetInt("stroke-width", defaultStrokeWidth).
		Set("fill", Transparent)
}

// Circle returns a circle of the given radius centered on the origin.
func Circle(radius float64) Element {
	return defaultStyle(New(TagCircle).SetFloat("r", radius)).
		SetInt("cx", 0).
		SetInt("cy", 0)
}

// Rect returns a rectangle of the given size.
func Rect(width, height float64) Element {
	return defaultStyle(New(TagRect).
		SetFloat("width", width).
		SetFloat("height", height))
}

// Line returns a straight segment between the two points.
func Line(from, to Point) Element {
	return defaultStyle(New(TagLine).
		SetFloat("x1", from.X).
		SetFloat("y1", from.Y).
		SetFloat("x2", to.X).
		SetFloat("y2", to.Y))
}

// Curve returns a cubic bezier curve from start to end,
// shaped by the two control points.
func Curve(start, control1, control2, end Point) Element {
	var d PathData
	d.Start(start)
	d.CubeBezier(control1, control2, end)
	return defaultStyle(New(TagPath).Set("d", d.D()))
}

// Polygon returns the open polygonal line joining the given points.
func Polygon(points ...Point) Element {
	var d PathData
	for i, pt := range points {
		if i == 0 {
			d.Start(pt)
		} else {
			d.Line(pt)
		}
	}
	return defaultStyle(New(TagPath).Set("d", d.D()))
}

// At returns el positioned at (x, y), for figures located through
// the x/y attribute pair.
func At(el Element, x, y float64) Element {
	return el.SetFloat("x", x).SetFloat("y", y)
}

// CircleAt returns el positioned at (cx, cy), for figures located
// through a center point.
func CircleAt(el Element, x, y float64) Element {
	return el.SetFloat("cx", x).SetFloat("cy", y)
}
