package svgdom

import (
	"io"
	"strings"
)

// Serialization of in-memory documents, for golden tests and for
// writing .svg files. Reading markup back is out of scope.

var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

// MarkupString returns the whole document as markup, attributes in
// insertion order and children in document order.
func (d *Memory) MarkupString() string {
	var sb strings.Builder
	d.root.writeMarkup(&sb)
	return sb.String()
}

// WriteTo implements io.WriterTo with the same output as MarkupString.
func (d *Memory) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, d.MarkupString())
	return int64(n), err
}

// NodeMarkup returns the subtree rooted at n as markup.
// n must belong to d.
func (d *Memory) NodeMarkup(n Node) (string, error) {
	c, ok := n.(*memNode)
	if !ok || c.doc != d {
		return "", errForeignDoc
	}
	var sb strings.Builder
	c.writeMarkup(&sb)
	return sb.String(), nil
}

func (n *memNode) writeMarkup(sb *strings.Builder) {
	sb.WriteByte('<')
	sb.WriteString(n.tag)
	for _, at := range n.attrs {
		sb.WriteByte(' ')
		sb.WriteString(at.name)
		sb.WriteString(`="`)
		sb.WriteString(attrEscaper.Replace(at.value))
		sb.WriteByte('"')
	}
	if len(n.children) == 0 {
		sb.WriteString("/>")
		return
	}
	sb.WriteByte('>')
	for _, c := range n.children {
		c.writeMarkup(sb)
	}
	sb.WriteString("</")
	sb.WriteString(n.tag)
	sb.WriteByte('>')
}
