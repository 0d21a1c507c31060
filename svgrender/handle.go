package svgrender

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/benoitkugler/livesvg/svgdom"
	"github.com/benoitkugler/livesvg/svgelem"
	"github.com/benoitkugler/livesvg/svghash"
)

// Handle designates live rendered content: an Instance or a
// Container.
type Handle interface {
	handleNode() svgdom.Node
}

// Instance is one visible occurrence of a figure: a <use> node
// referencing a shared definition.
type Instance struct {
	r    *Renderer
	n    svgdom.Node
	def  *Def
	name string
}

func (i *Instance) handleNode() svgdom.Node { return i.n }

// Name returns the name the instance is registered under, or "".
func (i *Instance) Name() string { return i.name }

// Fingerprint returns the fingerprint of the figure shown.
func (i *Instance) Fingerprint() svghash.Fingerprint { return i.def.fp }

// Container is a named group other content renders into.
type Container struct {
	r    *Renderer
	n    svgdom.Node
	name string
}

func (c *Container) handleNode() svgdom.Node { return c.n }

// Name returns the name the container is registered under.
func (c *Container) Name() string { return c.name }

// liveNode resolves h to its node, checking that the renderer still
// tracks the handle and that the node survived.
func (r *Renderer) liveNode(op string, h Handle) (svgdom.Node, error) {
	switch v := h.(type) {
	case *Instance:
		if _, ok := r.instances[v]; !ok {
			return nil, errUnknown(op)
		}
	case *Container:
		if _, ok := r.containers[v]; !ok {
			return nil, errUnknown(op)
		}
	default:
		return nil, errUnknown(op)
	}
	n := h.handleNode()
	if !n.Alive() {
		return nil, errDoc(op, errDestroyed)
	}
	return n, nil
}

// Hide makes h invisible without discarding it.
func (r *Renderer) Hide(h Handle) error {
	n, err := r.liveNode("hide", h)
	if err != nil {
		return err
	}
	if err := n.SetAttribute("style", "display: none;"); err != nil {
		return errDoc("hide", err)
	}
	return nil
}

// Show reverts Hide.
func (r *Renderer) Show(h Handle) error {
	n, err := r.liveNode("show", h)
	if err != nil {
		return err
	}
	if err := n.RemoveAttribute("style"); err != nil {
		return errDoc("show", err)
	}
	return nil
}

// Move places inst at the given position.
func (r *Renderer) Move(inst *Instance, at svgelem.Point) error {
	const op = "move"
	if _, ok := r.instances[inst]; !ok {
		return errUnknown(op)
	}
	if !inst.n.Alive() {
		return errDoc(op, errDestroyed)
	}
	if err := inst.n.SetAttribute("x", fmtCoord(at.X)); err != nil {
		return errDoc(op, err)
	}
	if err := inst.n.SetAttribute("y", fmtCoord(at.Y)); err != nil {
		return errDoc(op, err)
	}
	return nil
}

// Remove discards h: its node leaves the document and, for instances,
// the definition reference is released. Removing a container discards
// everything inside it. A second Remove of the same handle reports
// ErrUnknownHandle.
func (r *Renderer) Remove(h Handle) error {
	const op = "remove"
	switch v := h.(type) {
	case *Instance:
		if _, ok := r.instances[v]; !ok {
			return errUnknown(op)
		}
		return r.removeInstance(v)
	case *Container:
		if _, ok := r.containers[v]; !ok {
			return errUnknown(op)
		}
		return r.removeContainer(v)
	}
	return errUnknown(op)
}

// removeInstance unconditionally discards inst. The books are settled
// even when the document acts up; the error then reports it.
func (r *Renderer) removeInstance(inst *Instance) error {
	var docErr error
	if !inst.n.Alive() {
		docErr = errDestroyed
	} else if parent := inst.n.Parent(); parent != nil {
		docErr = parent.RemoveChild(inst.n)
	}
	delete(r.instances, inst)
	r.unbindName(inst.name, inst)
	relErr := r.reg.Release(inst.def)
	if docErr != nil {
		return errDoc("remove", docErr)
	}
	return relErr
}

func (r *Renderer) removeContainer(c *Container) error {
	var docErr error
	if !c.n.Alive() {
		docErr = errDestroyed
	} else if parent := c.n.Parent(); parent != nil {
		// takes the whole subtree down
		docErr = parent.RemoveChild(c.n)
	}
	delete(r.containers, c)
	r.unbindName(c.name, c)
	sweepErr := r.sweepDead()
	if docErr != nil {
		return errDoc("remove", docErr)
	}
	return sweepErr
}

// unbindName clears the name entry if it still designates h. A
// replacement may have rebound the name in the meantime.
func (r *Renderer) unbindName(name string, h Handle) {
	if name == "" {
		return
	}
	if cur, ok := r.names[name]; ok && cur == h {
		delete(r.names, name)
	}
}

// sweepDead settles the books after a subtree died: instances whose
// node is gone give back their definition reference, dead containers
// are forgotten, names included.
func (r *Renderer) sweepDead() error {
	var firstErr error
	for inst := range r.instances {
		if inst.n.Alive() {
			continue
		}
		delete(r.instances, inst)
		r.unbindName(inst.name, inst)
		if err := r.reg.Release(inst.def); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	for c := range r.containers {
		if c.n.Alive() {
			continue
		}
		delete(r.containers, c)
		r.unbindName(c.name, c)
	}
	return firstErr
}

// replaceName discards whatever name currently designates. Document
// trouble during the teardown is logged, not returned: the books stay
// right and the caller's operation proceeds.
func (r *Renderer) replaceName(name string) {
	old, ok := r.names[name]
	if !ok {
		return
	}
	var err error
	switch v := old.(type) {
	case *Instance:
		err = r.removeInstance(v)
	case *Container:
		err = r.removeContainer(v)
	}
	if err != nil {
		r.log.Warn("replaced damaged content", zap.String("name", name), zap.Error(err))
	} else {
		r.log.Debug("replaced named content", zap.String("name", name))
	}
}

// CreateContainer registers an empty group under name, appended to
// parent, or to the <svg> element when parent is nil. A name already
// in use is rebound: the previous content is discarded first, even if
// creating the new container then fails.
func (r *Renderer) CreateContainer(name string, parent *Container) (*Container, error) {
	const op = "create container"
	if name == "" {
		return nil, fmt.Errorf("%s: empty name", op)
	}
	if parent != nil {
		if _, err := r.containerNode(op, parent); err != nil {
			return nil, err
		}
	}
	// Rebind before appending: the old content could enclose parent,
	// and must not take the new node down with it.
	r.replaceName(name)
	target := r.svg
	if parent != nil {
		node, err := r.containerNode(op, parent)
		if err != nil {
			return nil, err
		}
		target = node
	}
	node, err := r.doc.CreateElement(string(svgelem.TagG))
	if err != nil {
		return nil, errDoc(op, err)
	}
	if err := node.SetAttribute("id", r.namedID(name)); err != nil {
		return nil, errDoc(op, err)
	}
	if err := target.AppendChild(node); err != nil {
		return nil, errDoc(op, err)
	}
	c := &Container{r: r, n: node, name: name}
	r.containers[c] = struct{}{}
	r.names[name] = c
	return c, nil
}

// ClearContainer empties c: instances and containers inside are
// discarded, definition references included. The container itself
// stays registered.
func (r *Renderer) ClearContainer(c *Container) error {
	const op = "clear container"
	if _, ok := r.containers[c]; !ok {
		return errUnknown(op)
	}
	if !c.n.Alive() {
		return errDoc(op, errDestroyed)
	}
	var docErr error
	for _, child := range c.n.Children() {
		if err := c.n.RemoveChild(child); err != nil && docErr == nil {
			docErr = err
		}
	}
	sweepErr := r.sweepDead()
	if docErr != nil {
		return errDoc(op, docErr)
	}
	return sweepErr
}

// containerNode resolves c for use as a render target.
func (r *Renderer) containerNode(op string, c *Container) (svgdom.Node, error) {
	if _, ok := r.containers[c]; !ok {
		return nil, errUnknown(op)
	}
	if !c.n.Alive() {
		return nil, errDoc(op, errDestroyed)
	}
	return c.n, nil
}
