package svgrender

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benoitkugler/livesvg/svgelem"
)

func TestHideShow(t *testing.T) {
	_, r := newTestRenderer(t)

	inst, err := r.Render(svgelem.Circle(5), svgelem.Pt(0, 0))
	require.NoError(t, err)

	require.NoError(t, r.Hide(inst))
	style, ok := inst.n.Attribute("style")
	require.True(t, ok)
	assert.Equal(t, "display: none;", style)

	require.NoError(t, r.Show(inst))
	_, ok = inst.n.Attribute("style")
	assert.False(t, ok)
}

func TestHideShowContainer(t *testing.T) {
	_, r := newTestRenderer(t)

	c, err := r.CreateContainer("box", nil)
	require.NoError(t, err)

	require.NoError(t, r.Hide(c))
	style, _ := c.n.Attribute("style")
	assert.Equal(t, "display: none;", style)
	require.NoError(t, r.Show(c))
}

func TestHideUnknownHandle(t *testing.T) {
	_, r := newTestRenderer(t)
	assert.ErrorIs(t, r.Hide(nil), ErrUnknownHandle)
	assert.ErrorIs(t, r.Show(&Instance{}), ErrUnknownHandle)
}

func TestMove(t *testing.T) {
	_, r := newTestRenderer(t)

	inst, err := r.Render(svgelem.Circle(5), svgelem.Pt(0, 0))
	require.NoError(t, err)
	require.NoError(t, r.Move(inst, svgelem.Pt(12.5, 7)))

	x, _ := inst.n.Attribute("x")
	y, _ := inst.n.Attribute("y")
	assert.Equal(t, "12.50", x)
	assert.Equal(t, "7.00", y)

	assert.ErrorIs(t, r.Move(&Instance{}, svgelem.Pt(0, 0)), ErrUnknownHandle)
}

func TestRemoveReleasesDefinition(t *testing.T) {
	_, r := newTestRenderer(t)
	circle := svgelem.Circle(5)

	dot1, err := r.Render(circle, svgelem.Pt(0, 0))
	require.NoError(t, err)
	dot2, err := r.Render(circle, svgelem.Pt(10, 10))
	require.NoError(t, err)

	require.NoError(t, r.Remove(dot1))
	def, ok := r.Defs().Lookup(dot2.Fingerprint())
	require.True(t, ok)
	assert.Equal(t, 1, def.Refs())
	assert.Len(t, r.Svg().Children(), 2) // defs + remaining use

	require.NoError(t, r.Remove(dot2))
	assert.Equal(t, 0, r.Defs().Len())
	require.Len(t, r.Svg().Children(), 1)
	assert.Empty(t, r.Svg().Children()[0].Children())
}

func TestRemoveTwice(t *testing.T) {
	_, r := newTestRenderer(t)

	inst, err := r.Render(svgelem.Circle(5), svgelem.Pt(0, 0))
	require.NoError(t, err)
	require.NoError(t, r.Remove(inst))
	assert.ErrorIs(t, r.Remove(inst), ErrUnknownHandle)
}

func TestRemoveNamedFreesName(t *testing.T) {
	_, r := newTestRenderer(t)

	inst, err := r.RenderNamed("mark", svgelem.Circle(5), svgelem.Pt(0, 0))
	require.NoError(t, err)
	require.NoError(t, r.Remove(inst))

	assert.False(t, r.NameInUse("mark"))
	_, err = r.RenderNamed("mark", svgelem.Circle(5), svgelem.Pt(0, 0))
	assert.NoError(t, err)
}

func TestRemoveDestroyedInstance(t *testing.T) {
	_, r := newTestRenderer(t)

	inst, err := r.Render(svgelem.Circle(5), svgelem.Pt(0, 0))
	require.NoError(t, err)
	// the node disappears behind the renderer's back
	require.NoError(t, r.Svg().RemoveChild(inst.n))

	assert.ErrorIs(t, r.Move(inst, svgelem.Pt(1, 1)), ErrDocumentUnavailable)

	// removal still settles the books
	assert.ErrorIs(t, r.Remove(inst), ErrDocumentUnavailable)
	assert.Equal(t, 0, r.Defs().Len())
	assert.ErrorIs(t, r.Remove(inst), ErrUnknownHandle)
}

func TestContainers(t *testing.T) {
	_, r := newTestRenderer(t)

	c, err := r.CreateContainer("box", nil)
	require.NoError(t, err)
	assert.Equal(t, "box", c.Name())
	assert.Equal(t, "g", c.n.Tag())

	h, ok := r.LookupName("box")
	require.True(t, ok)
	assert.Equal(t, Handle(c), h)

	inst, err := r.RenderIn(c, svgelem.Circle(5), svgelem.Pt(2, 3))
	require.NoError(t, err)
	assert.Equal(t, c.n, inst.n.Parent())
}

func TestCreateContainerNested(t *testing.T) {
	_, r := newTestRenderer(t)

	outer, err := r.CreateContainer("outer", nil)
	require.NoError(t, err)
	inner, err := r.CreateContainer("inner", outer)
	require.NoError(t, err)

	assert.Equal(t, outer.n, inner.n.Parent())
}

func TestCreateContainerEmptyName(t *testing.T) {
	_, r := newTestRenderer(t)
	_, err := r.CreateContainer("", nil)
	assert.Error(t, err)
}

func TestCreateContainerReplaces(t *testing.T) {
	_, r := newTestRenderer(t)

	first, err := r.CreateContainer("box", nil)
	require.NoError(t, err)
	second, err := r.CreateContainer("box", nil)
	require.NoError(t, err)

	h, _ := r.LookupName("box")
	assert.Equal(t, Handle(second), h)
	assert.ErrorIs(t, r.ClearContainer(first), ErrUnknownHandle)
	assert.Len(t, r.Svg().Children(), 2) // defs + one g
}

func TestCreateContainerInsideContentItReplaces(t *testing.T) {
	_, r := newTestRenderer(t)

	outer, err := r.CreateContainer("box", nil)
	require.NoError(t, err)
	inner, err := r.CreateContainer("liner", outer)
	require.NoError(t, err)

	// rebinding "box" discards outer, and liner with it; the new
	// container has nowhere to go
	_, err = r.CreateContainer("box", inner)
	assert.ErrorIs(t, err, ErrUnknownHandle)
	assert.False(t, r.NameInUse("box"))
	assert.False(t, r.NameInUse("liner"))
}

func TestRemoveContainerReleasesContents(t *testing.T) {
	_, r := newTestRenderer(t)
	circle := svgelem.Circle(5)

	c, err := r.CreateContainer("box", nil)
	require.NoError(t, err)
	nested, err := r.CreateContainer("inner", c)
	require.NoError(t, err)

	in1, err := r.RenderIn(c, circle, svgelem.Pt(0, 0))
	require.NoError(t, err)
	in2, err := r.RenderIn(nested, circle, svgelem.Pt(1, 1))
	require.NoError(t, err)
	out, err := r.Render(circle, svgelem.Pt(2, 2))
	require.NoError(t, err)

	def, ok := r.Defs().Lookup(out.Fingerprint())
	require.True(t, ok)
	require.Equal(t, 3, def.Refs())

	require.NoError(t, r.Remove(c))

	// only the instance outside the container survives
	assert.Equal(t, 1, def.Refs())
	assert.False(t, r.NameInUse("box"))
	assert.False(t, r.NameInUse("inner"))
	assert.ErrorIs(t, r.Move(in1, svgelem.Pt(0, 0)), ErrUnknownHandle)
	assert.ErrorIs(t, r.Move(in2, svgelem.Pt(0, 0)), ErrUnknownHandle)
	assert.NoError(t, r.Move(out, svgelem.Pt(0, 0)))
}

func TestClearContainer(t *testing.T) {
	_, r := newTestRenderer(t)
	circle := svgelem.Circle(5)

	c, err := r.CreateContainer("box", nil)
	require.NoError(t, err)
	inst, err := r.RenderIn(c, circle, svgelem.Pt(0, 0))
	require.NoError(t, err)

	require.NoError(t, r.ClearContainer(c))

	assert.Empty(t, c.n.Children())
	assert.Equal(t, 0, r.Defs().Len())
	assert.ErrorIs(t, r.Move(inst, svgelem.Pt(0, 0)), ErrUnknownHandle)

	// the container itself survives and accepts new content
	assert.True(t, r.NameInUse("box"))
	_, err = r.RenderIn(c, circle, svgelem.Pt(5, 5))
	require.NoError(t, err)
	assert.Len(t, c.n.Children(), 1)
}

func TestRenderInUnknownContainer(t *testing.T) {
	_, r := newTestRenderer(t)
	_, err := r.RenderIn(&Container{}, svgelem.Circle(5), svgelem.Pt(0, 0))
	assert.ErrorIs(t, err, ErrUnknownHandle)
}
