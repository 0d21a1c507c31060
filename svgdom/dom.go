// Abstracts the output document tree.
// Renderers only ever touch a document through the small Document and
// Node interfaces, so the same code drives a browser DOM binding, the
// in-memory document of this package, or anything else able to hold
// an element tree.
package svgdom

// Document is the capability handed to a renderer.
type Document interface {
	// CreateElement returns a new detached element node.
	CreateElement(tag string) (Node, error)

	// Root returns the element new content is mounted under.
	Root() Node
}

// Node is one element of a document tree.
//
// A node is created detached, lives while it is part of the document
// or still waiting to be attached, and dies when it is removed:
// removal destroys the whole subtree, and every operation on a dead
// node fails. Alive reports which state the node is in, letting a
// caller detect nodes destroyed behind its back.
type Node interface {
	// Tag returns the element tag the node was created with.
	Tag() string

	SetAttribute(name, value string) error
	RemoveAttribute(name string) error
	// Attribute returns the value of the named attribute.
	Attribute(name string) (string, bool)
	// AttributeNames returns the attribute names, in the order they
	// were first set.
	AttributeNames() []string

	// AppendChild attaches a detached node after the existing children.
	AppendChild(child Node) error
	// InsertChild attaches a detached node at position i.
	InsertChild(i int, child Node) error
	// RemoveChild detaches and destroys the given child with its subtree.
	RemoveChild(child Node) error

	// Parent returns the parent node, or nil for detached nodes and
	// the document root.
	Parent() Node
	// Children returns the child nodes in document order.
	Children() []Node

	// Alive reports whether the node can still be operated on.
	Alive() bool
}
