// Implements rasterization of live documents, by walking the node
// tree and wrapping github.com/srwiley/rasterx.
//
// The supported content is the subset produced by the companion
// packages: basic shapes, path data, use references into defs, solid
// paints. How unsupported content is treated is controlled by an
// ErrorMode.
package svgraster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"

	"github.com/benoitkugler/livesvg/svgdom"
	"github.com/srwiley/rasterx"
	"go.uber.org/zap"
)

// ErrorMode defines how the rasterizer reacts to content it cannot
// draw, such as gradient paints or exotic path commands.
type ErrorMode uint8

const (
	// IgnoreErrorMode skips unsupported content silently.
	IgnoreErrorMode ErrorMode = iota
	// WarnErrorMode skips unsupported content, logging a warning.
	WarnErrorMode
	// StrictErrorMode aborts on the first unsupported content.
	StrictErrorMode
)

var errParamMismatch = errors.New("parameter mismatch")

// how deep use references may chain before we assume a cycle
const maxUseDepth = 8

// Option alters the default rasterization setup.
type Option func(*config)

type config struct {
	log        *zap.Logger
	background color.Color
}

// WithLogger sets the logger used to report skipped content in
// WarnErrorMode. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(cfg *config) { cfg.log = log }
}

// WithBackground paints the whole canvas before drawing. The default
// leaves it transparent.
func WithBackground(c color.Color) Option {
	return func(cfg *config) { cfg.background = c }
}

// Rasterize draws the first svg element of doc onto a fresh image of
// the given size, scaling the viewBox to fill it.
func Rasterize(doc svgdom.Document, width, height int, mode ErrorMode, opts ...Option) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid raster size %dx%d", width, height)
	}
	cfg := config{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}
	svg := findSVG(doc.Root())
	if svg == nil {
		return nil, errors.New("document holds no svg element")
	}

	c := &cursor{mode: mode, log: cfg.log}
	vb, err := c.readViewBox(svg, width, height)
	if err != nil {
		return nil, err
	}
	if vb[2] <= 0 || vb[3] <= 0 {
		return nil, fmt.Errorf("degenerate viewBox %v", vb)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	if cfg.background != nil {
		draw.Draw(img, img.Bounds(), image.NewUniform(cfg.background), image.Point{}, draw.Src)
	}
	c.painter = newPainter(width, height, rasterx.NewScannerGV(width, height, img, img.Bounds()))

	rootStyle := defaultStyle
	rootStyle.transform = identity.
		scale(float64(width)/vb[2], float64(height)/vb[3]).
		translate(-vb[0], -vb[1])
	c.styleStack = append(c.styleStack, rootStyle)
	c.defs = collectIDs(svg)

	if err := c.walkNode(svg); err != nil {
		return nil, err
	}
	return img, nil
}

// readViewBox resolves the viewBox attribute, falling back on the
// width and height attributes, then on the target size.
func (c *cursor) readViewBox(svg svgdom.Node, width, height int) ([4]float64, error) {
	if s, ok := svg.Attribute("viewBox"); ok {
		if err := c.getPoints(s); err != nil {
			return [4]float64{}, fmt.Errorf("invalid viewBox %q: %s", s, err)
		}
		if len(c.points) != 4 {
			return [4]float64{}, fmt.Errorf("invalid viewBox %q: %s", s, errParamMismatch)
		}
		return [4]float64{c.points[0], c.points[1], c.points[2], c.points[3]}, nil
	}
	w, err := attrFloat(svg, "width", float64(width))
	if err != nil {
		return [4]float64{}, err
	}
	h, err := attrFloat(svg, "height", float64(height))
	if err != nil {
		return [4]float64{}, err
	}
	return [4]float64{0, 0, w, h}, nil
}

// findSVG returns the first svg element of the tree, depth first, or
// nil.
func findSVG(node svgdom.Node) svgdom.Node {
	if node.Tag() == "svg" {
		return node
	}
	for _, child := range node.Children() {
		if found := findSVG(child); found != nil {
			return found
		}
	}
	return nil
}

// collectIDs indexes every element of the tree carrying an id, as
// targets for use references.
func collectIDs(svg svgdom.Node) map[string]svgdom.Node {
	out := map[string]svgdom.Node{}
	var walk func(n svgdom.Node)
	walk = func(n svgdom.Node) {
		if id, ok := n.Attribute("id"); ok && id != "" {
			out[id] = n
		}
		for _, child := range n.Children() {
			walk(child)
		}
	}
	walk(svg)
	return out
}

// cursor carries the walk state over one document.
type cursor struct {
	path       Path
	points     []float64 // scratch buffer for number lists
	styleStack []pathStyle
	defs       map[string]svgdom.Node
	painter    *painter
	bounds     *boundsAccum // measuring instead of painting
	mode       ErrorMode
	log        *zap.Logger
	useDepth   int
}

func (c *cursor) cur() *pathStyle {
	return &c.styleStack[len(c.styleStack)-1]
}

// handleError reacts to unsupported content according to the mode:
// a non nil return aborts the walk.
func (c *cursor) handleError(format string, args ...interface{}) error {
	switch c.mode {
	case StrictErrorMode:
		return fmt.Errorf(format, args...)
	case WarnErrorMode:
		c.log.Warn(fmt.Sprintf(format, args...))
	}
	return nil
}

type shapeFunc func(c *cursor, node svgdom.Node) error

var shapeFuncs = map[string]shapeFunc{
	"line":     lineF,
	"rect":     rectF,
	"circle":   circleF,
	"ellipse":  circleF, // circleF handles ellipse also
	"polyline": polylineF,
	"polygon":  polygonF,
	"path":     pathF,
}

func (c *cursor) walkNode(node svgdom.Node) error {
	if isHidden(node) {
		return nil
	}
	if err := c.pushStyle(node); err != nil {
		return err
	}
	defer c.popStyle()

	tag := node.Tag()
	switch tag {
	case "svg", "g":
		for _, child := range node.Children() {
			if err := c.walkNode(child); err != nil {
				return err
			}
		}
		return nil
	case "defs", "title", "desc", "metadata":
		// only rendered through references
		return nil
	case "use":
		return c.resolveUse(node)
	}
	df, ok := shapeFuncs[tag]
	if !ok {
		return c.handleError("cannot draw svg element %q", tag)
	}
	if err := df(c, node); err != nil {
		return err
	}
	return c.flushPath()
}

// resolveUse draws the referenced element, translated by the x and y
// attributes.
func (c *cursor) resolveUse(node svgdom.Node) error {
	href, ok := node.Attribute("href")
	if !ok {
		href, ok = node.Attribute("xlink:href")
	}
	if !ok {
		return c.handleError("use element without href")
	}
	if !strings.HasPrefix(href, "#") {
		return c.handleError("only local references are supported: %q", href)
	}
	target, ok := c.defs[href[1:]]
	if !ok {
		return c.handleError("use references unknown id %q", href[1:])
	}
	if c.useDepth >= maxUseDepth {
		return c.handleError("use references nested too deeply")
	}
	x, err := attrFloat(node, "x", 0)
	if err != nil {
		return err
	}
	y, err := attrFloat(node, "y", 0)
	if err != nil {
		return err
	}
	st := c.cur()
	st.transform = st.transform.translate(x, y)
	c.useDepth++
	defer func() { c.useDepth-- }()
	return c.walkNode(target)
}

// flushPath paints the accumulated path with the current style, then
// resets it.
func (c *cursor) flushPath() error {
	if c.bounds != nil {
		c.flushBounds()
		return nil
	}
	if len(c.path) == 0 {
		return nil
	}
	defer c.path.Clear()
	st := c.cur()
	if st.fill != nil {
		filler := c.painter.filler
		filler.Clear()
		filler.SetWinding(st.useNonZeroWinding)
		c.path.drawTo(filler, st.transform)
		filler.Stop(false)
		filler.Scanner.SetColor(rasterx.ApplyOpacity(st.fill, st.fillOpacity))
		filler.Draw()
		filler.SetWinding(true) // restore the default
	}
	if st.stroke != nil && st.lineWidth > 0 {
		dasher := c.painter.dasher
		dasher.Clear()
		c.painter.setStroke(st)
		c.path.drawTo(dasher, st.transform)
		dasher.Stop(false)
		dasher.Scanner.SetColor(rasterx.ApplyOpacity(st.stroke, st.lineOpacity))
		dasher.Draw()
	}
	return nil
}

func lineF(c *cursor, node svgdom.Node) error {
	x1, err := attrFloat(node, "x1", 0)
	if err != nil {
		return err
	}
	y1, err := attrFloat(node, "y1", 0)
	if err != nil {
		return err
	}
	x2, err := attrFloat(node, "x2", 0)
	if err != nil {
		return err
	}
	y2, err := attrFloat(node, "y2", 0)
	if err != nil {
		return err
	}
	c.path.Start(x1, y1)
	c.path.Line(x2, y2)
	return nil
}

func rectF(c *cursor, node svgdom.Node) error {
	x, err := attrFloat(node, "x", 0)
	if err != nil {
		return err
	}
	y, err := attrFloat(node, "y", 0)
	if err != nil {
		return err
	}
	w, err := attrFloat(node, "width", 0)
	if err != nil {
		return err
	}
	h, err := attrFloat(node, "height", 0)
	if err != nil {
		return err
	}
	rx, err := attrFloat(node, "rx", 0)
	if err != nil {
		return err
	}
	ry, err := attrFloat(node, "ry", 0)
	if err != nil {
		return err
	}
	if _, has := node.Attribute("rx"); !has {
		rx = ry
	}
	if _, has := node.Attribute("ry"); !has {
		ry = rx
	}
	if w == 0 || h == 0 {
		// not drawn, but not an error
		return nil
	}
	c.path.addRoundRect(x, y, x+w, y+h, rx, ry)
	return nil
}

func circleF(c *cursor, node svgdom.Node) error {
	cx, err := attrFloat(node, "cx", 0)
	if err != nil {
		return err
	}
	cy, err := attrFloat(node, "cy", 0)
	if err != nil {
		return err
	}
	rx, err := attrFloat(node, "rx", 0)
	if err != nil {
		return err
	}
	ry, err := attrFloat(node, "ry", 0)
	if err != nil {
		return err
	}
	r, err := attrFloat(node, "r", 0)
	if err != nil {
		return err
	}
	if r != 0 {
		rx, ry = r, r
	}
	if rx == 0 || ry == 0 {
		// not drawn, but not an error
		return nil
	}
	c.path.ellipseAt(cx, cy, rx, ry)
	return nil
}

func polylineF(c *cursor, node svgdom.Node) error {
	s, _ := node.Attribute("points")
	if err := c.getPoints(s); err != nil {
		return err
	}
	if len(c.points)%2 != 0 {
		return fmt.Errorf("polygon points error: %s", errParamMismatch)
	}
	if len(c.points) >= 4 {
		c.path.Start(c.points[0], c.points[1])
		for i := 2; i < len(c.points); i += 2 {
			c.path.Line(c.points[i], c.points[i+1])
		}
	}
	return nil
}

func polygonF(c *cursor, node svgdom.Node) error {
	if err := polylineF(c, node); err != nil {
		return err
	}
	if len(c.points) >= 4 {
		c.path.Stop(true)
	}
	return nil
}

func pathF(c *cursor, node svgdom.Node) error {
	d, _ := node.Attribute("d")
	return c.compilePath(d)
}
