package svgrender

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benoitkugler/livesvg/svgelem"
)

func TestDefinePinsDefinition(t *testing.T) {
	_, r := newTestRenderer(t)
	circle := svgelem.Circle(5)

	pin, err := r.Define(circle)
	require.NoError(t, err)
	assert.Equal(t, mustFingerprint(t, circle), pin.Fingerprint())
	assert.Equal(t, "figure-"+pin.Fingerprint().String(), pin.ID())

	// materialized, not shown
	def, ok := r.Defs().Lookup(pin.Fingerprint())
	require.True(t, ok)
	assert.Equal(t, 1, def.Refs())
	assert.Len(t, r.Svg().Children(), 1)

	inst1, err := r.RenderDef(pin, svgelem.Pt(0, 0))
	require.NoError(t, err)
	inst2, err := r.RenderDef(pin, svgelem.Pt(10, 10))
	require.NoError(t, err)
	assert.Equal(t, 3, def.Refs())

	// the pin keeps the definition alive without instances
	require.NoError(t, r.Remove(inst1))
	require.NoError(t, r.Remove(inst2))
	assert.Equal(t, 1, def.Refs())
	assert.Equal(t, 1, r.Defs().Len())

	require.NoError(t, r.ReleaseDefinition(pin))
	assert.Equal(t, 0, r.Defs().Len())
}

func TestDefineSharesWithRender(t *testing.T) {
	_, r := newTestRenderer(t)
	circle := svgelem.Circle(5)

	inst, err := r.Render(circle, svgelem.Pt(0, 0))
	require.NoError(t, err)
	pin, err := r.Define(circle)
	require.NoError(t, err)

	assert.Equal(t, inst.Fingerprint(), pin.Fingerprint())
	assert.Equal(t, 1, r.Defs().Len())
	def, _ := r.Defs().Lookup(pin.Fingerprint())
	assert.Equal(t, 2, def.Refs())
}

func TestReleaseDefinitionTwice(t *testing.T) {
	_, r := newTestRenderer(t)

	pin, err := r.Define(svgelem.Circle(5))
	require.NoError(t, err)
	require.NoError(t, r.ReleaseDefinition(pin))
	assert.ErrorIs(t, r.ReleaseDefinition(pin), ErrUnknownHandle)
	assert.ErrorIs(t, r.ReleaseDefinition(nil), ErrUnknownHandle)
}

func TestRenderDefUnknownPin(t *testing.T) {
	_, r := newTestRenderer(t)

	pin, err := r.Define(svgelem.Circle(5))
	require.NoError(t, err)
	require.NoError(t, r.ReleaseDefinition(pin))

	_, err = r.RenderDef(pin, svgelem.Pt(0, 0))
	assert.ErrorIs(t, err, ErrUnknownHandle)
	_, err = r.RenderDef(nil, svgelem.Pt(0, 0))
	assert.ErrorIs(t, err, ErrUnknownHandle)
}

func TestRenderNamedDef(t *testing.T) {
	_, r := newTestRenderer(t)

	pin, err := r.Define(svgelem.Circle(5))
	require.NoError(t, err)
	inst, err := r.RenderNamedDef("mark", pin, svgelem.Pt(1, 1))
	require.NoError(t, err)

	h, ok := r.LookupName("mark")
	require.True(t, ok)
	assert.Equal(t, Handle(inst), h)

	_, err = r.RenderNamedDef("", pin, svgelem.Pt(0, 0))
	assert.Error(t, err)
}

func TestRenderDefIn(t *testing.T) {
	_, r := newTestRenderer(t)

	c, err := r.CreateContainer("box", nil)
	require.NoError(t, err)
	pin, err := r.Define(svgelem.Circle(5))
	require.NoError(t, err)

	inst, err := r.RenderDefIn(c, pin, svgelem.Pt(0, 0))
	require.NoError(t, err)
	assert.Equal(t, c.n, inst.n.Parent())

	// removing the container leaves the pinned reference in place
	require.NoError(t, r.Remove(c))
	assert.Equal(t, 1, r.Defs().Len())
}

func TestDefineInvalidShape(t *testing.T) {
	_, r := newTestRenderer(t)
	_, err := r.Define(svgelem.New("marquee"))
	assert.ErrorIs(t, err, ErrInvalidShape)
	assert.Equal(t, 0, r.Defs().Len())
}

func TestRenderNamedIn(t *testing.T) {
	_, r := newTestRenderer(t)

	c, err := r.CreateContainer("panel", nil)
	require.NoError(t, err)
	inst, err := r.RenderNamedIn("marker", c, svgelem.Circle(5), svgelem.Pt(2, 2))
	require.NoError(t, err)
	assert.Equal(t, c.n, inst.n.Parent())

	h, ok := r.LookupName("marker")
	require.True(t, ok)
	assert.Equal(t, Handle(inst), h)

	// rebinding moves the name to the new instance
	other, err := r.CreateContainer("other", nil)
	require.NoError(t, err)
	inst2, err := r.RenderNamedIn("marker", other, svgelem.Rect(4, 4), svgelem.Pt(0, 0))
	require.NoError(t, err)
	assert.Equal(t, other.n, inst2.n.Parent())
	assert.ErrorIs(t, r.Hide(inst), ErrUnknownHandle)
	assert.Equal(t, 1, r.Defs().Len())

	_, err = r.RenderNamedIn("", c, svgelem.Circle(5), svgelem.Pt(0, 0))
	assert.Error(t, err)
}

func TestRenderNamedInEnclosingContent(t *testing.T) {
	_, r := newTestRenderer(t)

	outer, err := r.CreateContainer("outer", nil)
	require.NoError(t, err)
	inner, err := r.CreateContainer("inner", outer)
	require.NoError(t, err)

	// rebinding "outer" tears down inner with it, so the render cannot
	// land anywhere
	_, err = r.RenderNamedIn("outer", inner, svgelem.Circle(5), svgelem.Pt(0, 0))
	assert.ErrorIs(t, err, ErrUnknownHandle)
	assert.False(t, r.NameInUse("outer"))
	assert.False(t, r.NameInUse("inner"))
	// the acquired definition was given back
	assert.Equal(t, 0, r.Defs().Len())
}

func TestContainerByName(t *testing.T) {
	_, r := newTestRenderer(t)

	c, err := r.CreateContainer("panel", nil)
	require.NoError(t, err)
	got, err := r.ContainerByName("panel")
	require.NoError(t, err)
	assert.Equal(t, c, got)

	_, err = r.RenderNamed("dot", svgelem.Circle(5), svgelem.Pt(0, 0))
	require.NoError(t, err)
	_, err = r.ContainerByName("dot")
	assert.ErrorIs(t, err, ErrNameNotContainer)

	_, err = r.ContainerByName("missing")
	assert.ErrorIs(t, err, ErrUnknownHandle)
}
