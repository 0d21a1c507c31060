// Implements the in-memory description of SVG shapes:
// elements, styling attributes, colors and path data,
// which renderers turn into live document content.
package svgelem

import "strconv"

// Tag identifies an SVG element kind.
type Tag string

// Element vocabulary understood by the renderer and the backends.
const (
	TagSVG            Tag = "svg"
	TagG              Tag = "g"
	TagDefs           Tag = "defs"
	TagUse            Tag = "use"
	TagCircle         Tag = "circle"
	TagEllipse        Tag = "ellipse"
	TagRect           Tag = "rect"
	TagLine           Tag = "line"
	TagPath           Tag = "path"
	TagPolyline       Tag = "polyline"
	TagPolygon        Tag = "polygon"
	TagTitle          Tag = "title"
	TagDesc           Tag = "desc"
	TagLinearGradient Tag = "linearGradient"
	TagRadialGradient Tag = "radialGradient"
	TagStop           Tag = "stop"
)

var knownTags = map[Tag]bool{
	TagSVG:            true,
	TagG:              true,
	TagDefs:           true,
	TagUse:            true,
	TagCircle:         true,
	TagEllipse:        true,
	TagRect:           true,
	TagLine:           true,
	TagPath:           true,
	TagPolyline:       true,
	TagPolygon:        true,
	TagTitle:          true,
	TagDesc:           true,
	TagLinearGradient: true,
	TagRadialGradient: true,
	TagStop:           true,
}

// Valid reports whether t belongs to the supported vocabulary.
func (t Tag) Valid() bool { return knownTags[t] }

// Point is a position in viewBox coordinates.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float64) Point { return Point{x, y} }

// Attribute is one name/value pair on an element.
type Attribute struct {
	Name, Value string
}

// Element describes an SVG subtree: a tag, styling attributes and
// child elements. Elements are plain values; the builder methods
// return updated copies, so a partially built element can be reused
// as a template without aliasing surprises.
type Element struct {
	Tag      Tag
	Attrs    []Attribute
	Children []Element
}

// New returns an element with the given tag and no attributes.
func New(tag Tag) Element { return Element{Tag: tag} }

// Set returns a copy of el with the named attribute set.
// Setting a name that is already present replaces its value in place,
// keeping the original position.
func (el Element) Set(name, value string) Element {
	attrs := make([]Attribute, len(el.Attrs), len(el.Attrs)+1)
	copy(attrs, el.Attrs)
	for i := range attrs {
		if attrs[i].Name == name {
			attrs[i].Value = value
			el.Attrs = attrs
			return el
		}
	}
	el.Attrs = append(attrs, Attribute{name, value})
	return el
}

// SetFloat sets the named attribute to v in canonical decimal form.
func (el Element) SetFloat(name string, v float64) Element {
	return el.Set(name, Ftoa(v))
}

// SetInt sets the named attribute to v.
func (el Element) SetInt(name string, v int) Element {
	return el.Set(name, strconv.Itoa(v))
}

// SetColor sets the named attribute to the hex form of c.
func (el Element) SetColor(name string, c RGB) Element {
	return el.Set(name, c.Hex())
}

// Append returns a copy of el with the children added after the
// existing ones. Child order is significant: two elements differing
// only in it are distinct shapes.
func (el Element) Append(children ...Element) Element {
	cs := make([]Element, len(el.Children), len(el.Children)+len(children))
	copy(cs, el.Children)
	el.Children = append(cs, children...)
	return el
}

// Attr returns the value of the named attribute.
func (el Element) Attr(name string) (string, bool) {
	for _, attr := range el.Attrs {
		if attr.Name == name {
			return attr.Value, true
		}
	}
	return "", false
}

// Ftoa formats v with the smallest number of decimal digits that
// round-trips to the same float64. This is the numeric form used for
// attribute values across the module.
func Ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
