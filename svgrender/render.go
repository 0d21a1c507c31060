package svgrender

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/benoitkugler/livesvg/svgdom"
	"github.com/benoitkugler/livesvg/svgelem"
	"github.com/benoitkugler/livesvg/svghash"
)

// Render shows el at the given position. The figure's definition is
// shared: rendering the same description twice stores it once under
// <defs> and adds one <use> node per call.
func (r *Renderer) Render(el svgelem.Element, at svgelem.Point) (*Instance, error) {
	const op = "render"
	def, err := r.acquireFor(op, el)
	if err != nil {
		return nil, err
	}
	return r.place(op, r.svg, def, "", at)
}

// RenderNamed renders el and registers the instance under name. A
// name already in use is rebound: the previous content is discarded
// first, its definition reference released.
func (r *Renderer) RenderNamed(name string, el svgelem.Element, at svgelem.Point) (*Instance, error) {
	const op = "render named"
	if name == "" {
		return nil, fmt.Errorf("%s: empty name", op)
	}
	def, err := r.acquireFor(op, el)
	if err != nil {
		return nil, err
	}
	return r.place(op, r.svg, def, name, at)
}

// RenderIn renders el inside container c.
func (r *Renderer) RenderIn(c *Container, el svgelem.Element, at svgelem.Point) (*Instance, error) {
	const op = "render in container"
	target, err := r.containerNode(op, c)
	if err != nil {
		return nil, err
	}
	def, err := r.acquireFor(op, el)
	if err != nil {
		return nil, err
	}
	return r.place(op, target, def, "", at)
}

// RenderNamedIn renders el inside container c and registers the
// instance under name, rebinding the name if taken. When the old
// content enclosed c itself, the rebind discards the container too and
// the render fails with ErrUnknownHandle, the name left free.
func (r *Renderer) RenderNamedIn(name string, c *Container, el svgelem.Element, at svgelem.Point) (*Instance, error) {
	const op = "render named in container"
	if name == "" {
		return nil, fmt.Errorf("%s: empty name", op)
	}
	if _, err := r.containerNode(op, c); err != nil {
		return nil, err
	}
	def, err := r.acquireFor(op, el)
	if err != nil {
		return nil, err
	}
	// Rebind before placing, so that old content enclosing c cannot
	// take the new node down with it.
	r.replaceName(name)
	target, err := r.containerNode(op, c)
	if err != nil {
		if relErr := r.reg.Release(def); relErr != nil {
			r.log.Warn("rollback release failed", zap.Error(relErr))
		}
		return nil, err
	}
	return r.place(op, target, def, name, at)
}

// Definition pins a figure definition: it holds one reference of its
// own, keeping the definition materialized while instances come and
// go. Drop it with ReleaseDefinition.
type Definition struct {
	r   *Renderer
	def *Def
}

// Fingerprint returns the fingerprint the definition is stored under.
func (d *Definition) Fingerprint() svghash.Fingerprint { return d.def.fp }

// ID returns the document id of the definition node, the target of
// the instances' href attribute.
func (d *Definition) ID() string { return d.r.defID(d.def.fp) }

// Define materializes el under <defs> without showing it, and returns
// a pinned handle to render from later.
func (r *Renderer) Define(el svgelem.Element) (*Definition, error) {
	const op = "define"
	def, err := r.acquireFor(op, el)
	if err != nil {
		return nil, err
	}
	d := &Definition{r: r, def: def}
	r.pins[d] = struct{}{}
	return d, nil
}

// ReleaseDefinition unpins d. The definition itself survives as long
// as instances still reference it.
func (r *Renderer) ReleaseDefinition(d *Definition) error {
	const op = "release definition"
	if d == nil {
		return errUnknown(op)
	}
	if _, ok := r.pins[d]; !ok {
		return errUnknown(op)
	}
	delete(r.pins, d)
	return r.reg.Release(d.def)
}

// RenderDef shows an instance of a pinned definition.
func (r *Renderer) RenderDef(d *Definition, at svgelem.Point) (*Instance, error) {
	const op = "render definition"
	def, err := r.retainPinned(op, d)
	if err != nil {
		return nil, err
	}
	return r.place(op, r.svg, def, "", at)
}

// RenderNamedDef shows an instance of a pinned definition and
// registers it under name, rebinding the name if taken.
func (r *Renderer) RenderNamedDef(name string, d *Definition, at svgelem.Point) (*Instance, error) {
	const op = "render named definition"
	if name == "" {
		return nil, fmt.Errorf("%s: empty name", op)
	}
	def, err := r.retainPinned(op, d)
	if err != nil {
		return nil, err
	}
	return r.place(op, r.svg, def, name, at)
}

// RenderDefIn shows an instance of a pinned definition inside c.
func (r *Renderer) RenderDefIn(c *Container, d *Definition, at svgelem.Point) (*Instance, error) {
	const op = "render definition in container"
	target, err := r.containerNode(op, c)
	if err != nil {
		return nil, err
	}
	def, err := r.retainPinned(op, d)
	if err != nil {
		return nil, err
	}
	return r.place(op, target, def, "", at)
}

func (r *Renderer) retainPinned(op string, d *Definition) (*Def, error) {
	if d == nil {
		return nil, errUnknown(op)
	}
	if _, ok := r.pins[d]; !ok {
		return nil, errUnknown(op)
	}
	if err := r.reg.Retain(d.def); err != nil {
		return nil, errUnknown(op)
	}
	return d.def, nil
}

// acquireFor fingerprints el and acquires its definition,
// materializing the node under <defs> on first use. Nothing is
// committed when it fails.
func (r *Renderer) acquireFor(op string, el svgelem.Element) (*Def, error) {
	fp, err := svghash.Compute(el)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !r.defs.Alive() {
		return nil, errDoc(op, errDestroyed)
	}
	def, err := r.reg.Acquire(fp, func() (svgdom.Node, error) {
		node, err := r.buildNode(el)
		if err != nil {
			return nil, err
		}
		if err := node.SetAttribute("id", r.defID(fp)); err != nil {
			return nil, err
		}
		if err := r.defs.AppendChild(node); err != nil {
			return nil, err
		}
		r.log.Debug("materialized definition", zap.String("id", r.defID(fp)))
		return node, nil
	})
	if err != nil {
		return nil, errDoc(op, err)
	}
	return def, nil
}

// place creates the <use> node for an acquired definition and
// registers the instance. On failure the definition reference is
// given back.
func (r *Renderer) place(op string, parent svgdom.Node, def *Def, name string, at svgelem.Point) (*Instance, error) {
	use, err := r.buildUse(def, name, at)
	if err == nil {
		err = parent.AppendChild(use)
	}
	if err != nil {
		if relErr := r.reg.Release(def); relErr != nil {
			r.log.Warn("rollback release failed", zap.Error(relErr))
		}
		return nil, errDoc(op, err)
	}
	if name != "" {
		r.replaceName(name)
	}
	inst := &Instance{r: r, n: use, def: def, name: name}
	r.instances[inst] = struct{}{}
	if name != "" {
		r.names[name] = inst
	}
	return inst, nil
}

func (r *Renderer) buildUse(def *Def, name string, at svgelem.Point) (svgdom.Node, error) {
	use, err := r.doc.CreateElement(string(svgelem.TagUse))
	if err != nil {
		return nil, err
	}
	if err := use.SetAttribute("href", "#"+r.defID(def.fp)); err != nil {
		return nil, err
	}
	if err := use.SetAttribute("x", fmtCoord(at.X)); err != nil {
		return nil, err
	}
	if err := use.SetAttribute("y", fmtCoord(at.Y)); err != nil {
		return nil, err
	}
	if name != "" {
		if err := use.SetAttribute("id", r.namedID(name)); err != nil {
			return nil, err
		}
	}
	return use, nil
}
