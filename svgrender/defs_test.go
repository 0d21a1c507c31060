package svgrender

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benoitkugler/livesvg/svgdom"
	"github.com/benoitkugler/livesvg/svghash"
)

func testDefsNode(t *testing.T) (*svgdom.Memory, svgdom.Node) {
	t.Helper()
	doc := svgdom.NewMemory()
	defs, err := doc.CreateElement("defs")
	require.NoError(t, err)
	require.NoError(t, doc.Root().AppendChild(defs))
	return doc, defs
}

// attachCircle returns a materializer appending a fresh <circle> under
// defs.
func attachCircle(doc *svgdom.Memory, defs svgdom.Node) func() (svgdom.Node, error) {
	return func() (svgdom.Node, error) {
		n, err := doc.CreateElement("circle")
		if err != nil {
			return nil, err
		}
		if err := defs.AppendChild(n); err != nil {
			return nil, err
		}
		return n, nil
	}
}

func TestAcquireMaterializesOnce(t *testing.T) {
	doc, defs := testDefsNode(t)
	reg := NewDefRegistry()
	fp := svghash.SumString("circle")

	calls := 0
	mat := func() (svgdom.Node, error) {
		calls++
		return attachCircle(doc, defs)()
	}

	d1, err := reg.Acquire(fp, mat)
	require.NoError(t, err)
	d2, err := reg.Acquire(fp, mat)
	require.NoError(t, err)

	assert.Same(t, d1, d2)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 2, d1.Refs())
	assert.Equal(t, 1, reg.Len())
	assert.Len(t, defs.Children(), 1)
}

func TestReleaseRemovesEntryAtZero(t *testing.T) {
	doc, defs := testDefsNode(t)
	reg := NewDefRegistry()
	fp := svghash.SumString("circle")

	d, err := reg.Acquire(fp, attachCircle(doc, defs))
	require.NoError(t, err)
	_, err = reg.Acquire(fp, attachCircle(doc, defs))
	require.NoError(t, err)

	require.NoError(t, reg.Release(d))
	assert.Equal(t, 1, d.Refs())
	assert.Equal(t, 1, reg.Len())
	assert.Len(t, defs.Children(), 1)

	require.NoError(t, reg.Release(d))
	assert.Equal(t, 0, reg.Len())
	assert.Empty(t, defs.Children())
	_, ok := reg.Lookup(fp)
	assert.False(t, ok)

	// the handle is dead now
	assert.ErrorIs(t, reg.Release(d), ErrUnknownHandle)
	assert.ErrorIs(t, reg.Retain(d), ErrUnknownHandle)
}

func TestAcquireFailureLeavesNoEntry(t *testing.T) {
	doc, defs := testDefsNode(t)
	reg := NewDefRegistry()
	fp := svghash.SumString("circle")

	boom := fmt.Errorf("boom")
	_, err := reg.Acquire(fp, func() (svgdom.Node, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, reg.Len())

	// a later acquire starts over
	d, err := reg.Acquire(fp, attachCircle(doc, defs))
	require.NoError(t, err)
	assert.Equal(t, 1, d.Refs())
}

func TestAcquireRejectsRecursion(t *testing.T) {
	doc, defs := testDefsNode(t)
	reg := NewDefRegistry()
	fp := svghash.SumString("circle")

	_, err := reg.Acquire(fp, func() (svgdom.Node, error) {
		_, err := reg.Acquire(fp, attachCircle(doc, defs))
		return nil, err
	})
	assert.ErrorIs(t, err, ErrRecursiveDefinition)
	assert.ErrorIs(t, err, ErrInvalidShape)
	assert.Equal(t, 0, reg.Len())
}

func TestAcquireNestedDistinctFingerprints(t *testing.T) {
	doc, defs := testDefsNode(t)
	reg := NewDefRegistry()
	outer, inner := svghash.SumString("outer"), svghash.SumString("inner")

	_, err := reg.Acquire(outer, func() (svgdom.Node, error) {
		// a shape materializing a sub-shape of its own
		if _, err := reg.Acquire(inner, attachCircle(doc, defs)); err != nil {
			return nil, err
		}
		return attachCircle(doc, defs)()
	})
	require.NoError(t, err)
	assert.Equal(t, 2, reg.Len())
	assert.Len(t, defs.Children(), 2)
}

func TestRetain(t *testing.T) {
	doc, defs := testDefsNode(t)
	reg := NewDefRegistry()

	d, err := reg.Acquire(svghash.SumString("circle"), attachCircle(doc, defs))
	require.NoError(t, err)
	require.NoError(t, reg.Retain(d))
	assert.Equal(t, 2, d.Refs())

	assert.ErrorIs(t, reg.Retain(nil), ErrUnknownHandle)
	assert.ErrorIs(t, reg.Retain(&Def{}), ErrUnknownHandle)
}

func TestReleaseReportsDestroyedNode(t *testing.T) {
	doc, defs := testDefsNode(t)
	reg := NewDefRegistry()

	d, err := reg.Acquire(svghash.SumString("circle"), attachCircle(doc, defs))
	require.NoError(t, err)

	// the definition node dies behind the registry's back
	require.NoError(t, doc.Root().RemoveChild(defs))

	err = reg.Release(d)
	assert.ErrorIs(t, err, ErrDocumentUnavailable)
	// the entry is gone regardless
	assert.Equal(t, 0, reg.Len())
}

func TestReleaseDetachedNode(t *testing.T) {
	doc, _ := testDefsNode(t)
	reg := NewDefRegistry()

	// materialized but never attached: release has nothing to detach
	d, err := reg.Acquire(svghash.SumString("circle"), func() (svgdom.Node, error) {
		return doc.CreateElement("circle")
	})
	require.NoError(t, err)
	assert.NoError(t, reg.Release(d))
	assert.Equal(t, 0, reg.Len())
}
