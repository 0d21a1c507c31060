// Implements the live rendering of figures into an SVG document.
//
// A Renderer owns one <svg> element. Every figure rendered through it
// is stored once, as a node under <defs> keyed by the figure's
// canonical fingerprint, and shown on screen through lightweight
// <use> references. Rendering the same figure a thousand times costs
// one definition and a thousand two-attribute nodes.
//
// Handles returned by the render operations (Instance, Container,
// Definition) stay valid until removed or until Clear; operations on a
// removed handle fail with ErrUnknownHandle rather than corrupting the
// document.
//
// A Renderer is not safe for concurrent use: it is meant to be driven
// by a single goroutine, the one owning the document.
package svgrender

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/benoitkugler/livesvg/svgdom"
	"github.com/benoitkugler/livesvg/svgelem"
	"github.com/benoitkugler/livesvg/svghash"
)

// DefaultViewBox is the coordinate system installed by New when
// WithViewBox is not given.
var DefaultViewBox = [4]float64{0, 0, 100, 100}

type options struct {
	viewBox   [4]float64
	prefix    string
	prefixSet bool
	log       *zap.Logger
}

// Option configures a Renderer at construction time.
type Option func(*options)

// WithViewBox sets the viewBox of the <svg> element: origin, width,
// height.
func WithViewBox(minX, minY, width, height float64) Option {
	return func(o *options) { o.viewBox = [4]float64{minX, minY, width, height} }
}

// WithIDPrefix sets the prefix prepended to every id the renderer
// writes into the document. The default is a fresh random prefix per
// renderer, so that two renderers sharing a document cannot collide;
// pass "" for reproducible ids.
func WithIDPrefix(prefix string) Option {
	return func(o *options) { o.prefix = prefix; o.prefixSet = true }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) { o.log = log }
}

// Renderer drives one <svg> element of an output document.
type Renderer struct {
	doc  svgdom.Document
	svg  svgdom.Node
	defs svgdom.Node

	reg        *DefRegistry
	names      map[string]Handle
	instances  map[*Instance]struct{}
	containers map[*Container]struct{}
	pins       map[*Definition]struct{}

	prefix string
	log    *zap.Logger
}

// New creates an <svg> element with an empty <defs> section and
// appends it to parent, or to the document root when parent is nil.
func New(doc svgdom.Document, parent svgdom.Node, opts ...Option) (*Renderer, error) {
	if doc == nil {
		return nil, fmt.Errorf("new renderer: nil document")
	}
	cfg := options{viewBox: DefaultViewBox}
	for _, opt := range opts {
		opt(&cfg)
	}
	if !cfg.prefixSet {
		cfg.prefix = uuid.NewString()[:8] + "-"
	}
	if cfg.log == nil {
		cfg.log = zap.NewNop()
	}
	if parent == nil {
		parent = doc.Root()
	}

	svg, err := doc.CreateElement(string(svgelem.TagSVG))
	if err != nil {
		return nil, errDoc("new renderer", err)
	}
	if err := svg.SetAttribute("viewBox", viewBoxValue(cfg.viewBox)); err != nil {
		return nil, errDoc("new renderer", err)
	}
	defs, err := doc.CreateElement(string(svgelem.TagDefs))
	if err != nil {
		return nil, errDoc("new renderer", err)
	}
	if err := svg.AppendChild(defs); err != nil {
		return nil, errDoc("new renderer", err)
	}
	if err := parent.AppendChild(svg); err != nil {
		return nil, errDoc("new renderer", err)
	}

	return &Renderer{
		doc:        doc,
		svg:        svg,
		defs:       defs,
		reg:        NewDefRegistry(),
		names:      map[string]Handle{},
		instances:  map[*Instance]struct{}{},
		containers: map[*Container]struct{}{},
		pins:       map[*Definition]struct{}{},
		prefix:     cfg.prefix,
		log:        cfg.log,
	}, nil
}

// Svg returns the <svg> element the renderer draws into.
func (r *Renderer) Svg() svgdom.Node { return r.svg }

// Defs returns the definition registry, for inspection.
func (r *Renderer) Defs() *DefRegistry { return r.reg }

// SetViewBox changes the coordinate system of the <svg> element.
func (r *Renderer) SetViewBox(minX, minY, width, height float64) error {
	if !r.svg.Alive() {
		return errDoc("set viewBox", errDestroyed)
	}
	box := [4]float64{minX, minY, width, height}
	if err := r.svg.SetAttribute("viewBox", viewBoxValue(box)); err != nil {
		return errDoc("set viewBox", err)
	}
	return nil
}

// LookupName returns the handle registered under name. The second
// return value reports whether the name is in use.
func (r *Renderer) LookupName(name string) (Handle, bool) {
	h, ok := r.names[name]
	return h, ok
}

// NameInUse reports whether name currently designates rendered
// content.
func (r *Renderer) NameInUse(name string) bool {
	_, ok := r.names[name]
	return ok
}

// ContainerByName resolves name to a container handle, for name-driven
// flows like scene scripts. A name bound to a plain instance reports
// ErrNameNotContainer.
func (r *Renderer) ContainerByName(name string) (*Container, error) {
	const op = "container by name"
	h, ok := r.names[name]
	if !ok {
		return nil, errUnknown(op)
	}
	c, ok := h.(*Container)
	if !ok {
		return nil, fmt.Errorf("%s: %q: %w", op, name, ErrNameNotContainer)
	}
	return c, nil
}

// Clear removes everything under the <svg> element, definitions
// included, and recreates an empty <defs> section. All handles issued
// so far become unknown. The viewBox is kept.
func (r *Renderer) Clear() error {
	var docErr error
	if !r.svg.Alive() {
		docErr = errDestroyed
	} else {
		for _, child := range r.svg.Children() {
			if err := r.svg.RemoveChild(child); err != nil && docErr == nil {
				docErr = err
			}
		}
	}

	r.reg.reset()
	r.names = map[string]Handle{}
	r.instances = map[*Instance]struct{}{}
	r.containers = map[*Container]struct{}{}
	r.pins = map[*Definition]struct{}{}

	defs, err := r.doc.CreateElement(string(svgelem.TagDefs))
	if err != nil {
		return errDoc("clear", err)
	}
	if err := r.svg.AppendChild(defs); err != nil {
		return errDoc("clear", err)
	}
	r.defs = defs
	r.log.Debug("cleared renderer")

	if docErr != nil {
		return errDoc("clear", docErr)
	}
	return nil
}

// defID returns the document id of the definition for fp.
func (r *Renderer) defID(fp svghash.Fingerprint) string {
	return r.prefix + "figure-" + fp.String()
}

// namedID returns the document id given to content registered under
// name. The name is hashed so that any string is usable.
func (r *Renderer) namedID(name string) string {
	return r.prefix + "named-" + svghash.SumString(name).String()
}

// buildNode recreates el, attributes and children included, as nodes
// of the output document. The subtree is returned detached.
func (r *Renderer) buildNode(el svgelem.Element) (svgdom.Node, error) {
	node, err := r.doc.CreateElement(string(el.Tag))
	if err != nil {
		return nil, err
	}
	for _, attr := range el.Attrs {
		if err := node.SetAttribute(attr.Name, attr.Value); err != nil {
			return nil, err
		}
	}
	for _, child := range el.Children {
		cn, err := r.buildNode(child)
		if err != nil {
			return nil, err
		}
		if err := node.AppendChild(cn); err != nil {
			return nil, err
		}
	}
	return node, nil
}

func viewBoxValue(box [4]float64) string {
	parts := make([]string, 4)
	for i, v := range box {
		parts[i] = svgelem.Ftoa(v)
	}
	return strings.Join(parts, " ")
}

// fmtCoord formats instance coordinates with a fixed precision, so
// that moving a figure rewrites its attributes deterministically.
func fmtCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
