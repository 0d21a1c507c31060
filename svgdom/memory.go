package svgdom

import (
	"errors"
	"fmt"
)

// Memory is an in-memory Document, standing in for a live browser
// tree in tests and command line tools. It is not safe for
// concurrent use.
type Memory struct {
	root *memNode
}

// NewMemory returns an empty document with a single "body" root.
func NewMemory() *Memory {
	d := &Memory{}
	d.root = &memNode{doc: d, tag: "body", isRoot: true}
	return d
}

// CreateElement returns a new detached node with the given tag.
func (d *Memory) CreateElement(tag string) (Node, error) {
	if tag == "" {
		return nil, errors.New("empty element tag")
	}
	return &memNode{doc: d, tag: tag}, nil
}

// Root returns the document root.
func (d *Memory) Root() Node { return d.root }

var (
	errDeadNode   = errors.New("node was removed from the document")
	errAttached   = errors.New("node is already attached")
	errCycle      = errors.New("node cannot adopt its own ancestor")
	errNotAChild  = errors.New("node is not a child of this element")
	errForeignDoc = errors.New("node belongs to another document")
)

type memAttr struct {
	name, value string
}

type memNode struct {
	doc      *Memory
	tag      string
	attrs    []memAttr // insertion order
	children []*memNode
	parent   *memNode
	isRoot   bool
	dead     bool
}

func (n *memNode) Tag() string { return n.tag }

func (n *memNode) Alive() bool { return !n.dead }

func (n *memNode) SetAttribute(name, value string) error {
	if n.dead {
		return errDeadNode
	}
	if name == "" {
		return errors.New("empty attribute name")
	}
	for i := range n.attrs {
		if n.attrs[i].name == name {
			n.attrs[i].value = value
			return nil
		}
	}
	n.attrs = append(n.attrs, memAttr{name, value})
	return nil
}

// RemoveAttribute drops the named attribute. Removing an attribute
// that is not set is a no-op, as in the DOM.
func (n *memNode) RemoveAttribute(name string) error {
	if n.dead {
		return errDeadNode
	}
	for i := range n.attrs {
		if n.attrs[i].name == name {
			n.attrs = append(n.attrs[:i], n.attrs[i+1:]...)
			return nil
		}
	}
	return nil
}

func (n *memNode) Attribute(name string) (string, bool) {
	for _, at := range n.attrs {
		if at.name == name {
			return at.value, true
		}
	}
	return "", false
}

func (n *memNode) AttributeNames() []string {
	names := make([]string, len(n.attrs))
	for i, at := range n.attrs {
		names[i] = at.name
	}
	return names
}

func (n *memNode) AppendChild(child Node) error {
	return n.InsertChild(len(n.children), child)
}

func (n *memNode) InsertChild(i int, child Node) error {
	c, err := n.adopt(child)
	if err != nil {
		return err
	}
	if i < 0 || i > len(n.children) {
		return fmt.Errorf("insert position %d out of range", i)
	}
	n.children = append(n.children, nil)
	copy(n.children[i+1:], n.children[i:])
	n.children[i] = c
	c.parent = n
	return nil
}

func (n *memNode) adopt(child Node) (*memNode, error) {
	c, ok := child.(*memNode)
	if !ok || c.doc != n.doc {
		return nil, errForeignDoc
	}
	if n.dead || c.dead {
		return nil, errDeadNode
	}
	if c.parent != nil || c.isRoot {
		return nil, errAttached
	}
	for anc := n; anc != nil; anc = anc.parent {
		if anc == c {
			return nil, errCycle
		}
	}
	return c, nil
}

func (n *memNode) RemoveChild(child Node) error {
	c, ok := child.(*memNode)
	if !ok || c.doc != n.doc {
		return errForeignDoc
	}
	if n.dead {
		return errDeadNode
	}
	for i, cur := range n.children {
		if cur == c {
			n.children = append(n.children[:i], n.children[i+1:]...)
			c.kill()
			return nil
		}
	}
	return errNotAChild
}

// kill marks the subtree dead. Removed nodes are single use: content
// comes back by rendering again, not by re-attaching.
func (n *memNode) kill() {
	n.parent = nil
	n.dead = true
	for _, c := range n.children {
		c.kill()
	}
}

func (n *memNode) Parent() Node {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

func (n *memNode) Children() []Node {
	out := make([]Node, len(n.children))
	for i, c := range n.children {
		out[i] = c
	}
	return out
}
