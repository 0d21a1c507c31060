package svgdom

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkupString(t *testing.T) {
	d := NewMemory()
	assert.Equal(t, "<body/>", d.MarkupString())

	svg, _ := d.CreateElement("svg")
	require.NoError(t, svg.SetAttribute("viewBox", "0 0 100 100"))
	defs, _ := d.CreateElement("defs")
	require.NoError(t, svg.AppendChild(defs))
	require.NoError(t, d.Root().AppendChild(svg))

	circle, _ := d.CreateElement("circle")
	require.NoError(t, circle.SetAttribute("r", "5"))
	require.NoError(t, circle.SetAttribute("stroke", "#000000"))
	require.NoError(t, defs.AppendChild(circle))

	assert.Equal(t,
		`<body><svg viewBox="0 0 100 100"><defs><circle r="5" stroke="#000000"/></defs></svg></body>`,
		d.MarkupString())
}

func TestNodeMarkup(t *testing.T) {
	d := NewMemory()
	svg, _ := d.CreateElement("svg")
	require.NoError(t, d.Root().AppendChild(svg))

	s, err := d.NodeMarkup(svg)
	require.NoError(t, err)
	assert.Equal(t, "<svg/>", s)

	other := NewMemory()
	_, err = other.NodeMarkup(svg)
	assert.Error(t, err)
}

func TestMarkupEscaping(t *testing.T) {
	d := NewMemory()
	n, _ := d.CreateElement("desc")
	require.NoError(t, n.SetAttribute("title", `a<b&"c">`))
	require.NoError(t, d.Root().AppendChild(n))

	s, err := d.NodeMarkup(n)
	require.NoError(t, err)
	assert.Equal(t, `<desc title="a&lt;b&amp;&quot;c&quot;&gt;"/>`, s)
}

func TestWriteTo(t *testing.T) {
	d := NewMemory()
	var sb strings.Builder
	n, err := d.WriteTo(&sb)
	require.NoError(t, err)
	assert.Equal(t, int64(len("<body/>")), n)
	assert.Equal(t, "<body/>", sb.String())
}
