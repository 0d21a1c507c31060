package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benoitkugler/livesvg/svgdom"
	"github.com/benoitkugler/livesvg/svgrender"
)

const sampleScene = `
viewBox: [0, 0, 100, 100]
background: "#ffffff"
containers:
  - name: hud
  - name: gauges
    in: hud
shapes:
  - name: sun
    kind: circle
    args: [10]
    at: [50, 20]
    attrs:
      fill: "#f4c542"
      stroke: none
  - kind: circle
    args: [10]
    at: [20, 80]
    attrs:
      fill: "#f4c542"
      stroke: none
  - name: needle
    in: gauges
    kind: line
    args: [0, 0, 12, -4]
  - tag: ellipse
    attrs:
      rx: "8"
      ry: "4"
      fill: "#0000ff"
    at: [70, 70]
    hidden: true
`

func TestLoadScene(t *testing.T) {
	sc, err := LoadScene([]byte(sampleScene))
	require.NoError(t, err)

	assert.Equal(t, []float64{0, 0, 100, 100}, sc.ViewBox)
	assert.Equal(t, "#ffffff", sc.Background)
	require.Len(t, sc.Containers, 2)
	assert.Equal(t, "hud", sc.Containers[1].In)
	require.Len(t, sc.Shapes, 4)
	assert.Equal(t, "sun", sc.Shapes[0].Name)
	assert.Equal(t, []float64{10}, sc.Shapes[0].Args)
	assert.Equal(t, "gauges", sc.Shapes[2].In)
	assert.True(t, sc.Shapes[3].Hidden)
}

func TestLoadSceneErrors(t *testing.T) {
	for _, tt := range []struct {
		doc, want string
	}{
		{"viewBox: [0, 0, 100]", "viewBox"},
		{"background: blue", "background"},
		{"containers:\n  - in: hud", "missing name"},
		{"shapes:\n  - at: [1, 2]", "kind or a tag"},
		{"shapes:\n  - kind: circle\n    tag: circle", "exclusive"},
		{"shapes:\n  - kind: circle\n    args: [1, 2]", "radius"},
		{"shapes:\n  - kind: triangle", "unknown shape kind"},
		{"shapes:\n  - tag: blob", "unknown tag"},
		{"shapes:\n  - kind: rect\n    args: [4, 4]\n    at: [1]", "at needs 2"},
		{"shapes:\n  - kind: polygon\n    args: [0, 0, 1]", "even number"},
		{"shapes: {", "parse scene"},
	} {
		_, err := LoadScene([]byte(tt.doc))
		require.Error(t, err, tt.doc)
		assert.Contains(t, err.Error(), tt.want)
	}
}

func TestBuildScene(t *testing.T) {
	sc, err := LoadScene([]byte(sampleScene))
	require.NoError(t, err)

	doc := svgdom.NewMemory()
	r, err := svgrender.New(doc, nil,
		svgrender.WithViewBox(sc.ViewBox[0], sc.ViewBox[1], sc.ViewBox[2], sc.ViewBox[3]),
		svgrender.WithIDPrefix(""))
	require.NoError(t, err)
	require.NoError(t, Build(sc, r))

	// names are bound
	assert.True(t, r.NameInUse("sun"))
	assert.True(t, r.NameInUse("needle"))
	_, err = r.ContainerByName("gauges")
	require.NoError(t, err)

	// the two identical circles share one definition
	assert.Equal(t, 3, r.Defs().Len())

	markup := doc.MarkupString()
	assert.Equal(t, 4, strings.Count(markup, "<use "))
	assert.Equal(t, 3, strings.Count(markup, `id="figure-`))
	assert.Contains(t, markup, "display: none;")
}

func TestBuildSceneUnknownContainer(t *testing.T) {
	sc := Scene{Shapes: []ShapeDecl{{Kind: "circle", Args: []float64{5}, In: "nowhere"}}}

	doc := svgdom.NewMemory()
	r, err := svgrender.New(doc, nil, svgrender.WithIDPrefix(""))
	require.NoError(t, err)

	err = Build(sc, r)
	require.Error(t, err)
	assert.ErrorIs(t, err, svgrender.ErrUnknownHandle)
}
