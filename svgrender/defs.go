package svgrender

import (
	"fmt"

	"github.com/benoitkugler/livesvg/svgdom"
	"github.com/benoitkugler/livesvg/svghash"
)

// Def is one shared definition: a node living under <defs>, referenced
// by any number of use instances. It is owned by a DefRegistry.
type Def struct {
	fp   svghash.Fingerprint
	node svgdom.Node
	refs int

	// building is set while the materializer runs, so that a
	// re-entrant acquire of the same fingerprint fails instead of
	// observing a half-built entry.
	building bool
}

// Fingerprint returns the canonical fingerprint this definition was
// registered under.
func (d *Def) Fingerprint() svghash.Fingerprint { return d.fp }

// Node returns the definition node in the document.
func (d *Def) Node() svgdom.Node { return d.node }

// Refs returns the current reference count.
func (d *Def) Refs() int { return d.refs }

// DefRegistry tracks the shared definitions of one renderer, keyed by
// fingerprint. Entries are reference counted: Acquire and Release must
// pair up, and an entry leaves the registry, and its node the
// document, when the count reaches zero.
//
// The registry is not safe for concurrent use. It is driven by a
// single goroutine, and a materializer may call back into the registry
// for other fingerprints at any time; only acquiring the fingerprint
// currently being materialized is an error.
type DefRegistry struct {
	defs map[svghash.Fingerprint]*Def
}

func NewDefRegistry() *DefRegistry {
	return &DefRegistry{defs: map[svghash.Fingerprint]*Def{}}
}

// Acquire returns the definition for fp, materializing it on first
// use. materialize must create the definition node and attach it to
// the document; it runs only when fp has no entry yet.
//
// Acquire either commits, returning an entry whose count includes the
// new reference, or fails leaving the registry as it was: a
// materialization error discards the reservation, so a later Acquire
// of the same fingerprint starts over.
func (reg *DefRegistry) Acquire(fp svghash.Fingerprint, materialize func() (svgdom.Node, error)) (*Def, error) {
	if d, ok := reg.defs[fp]; ok {
		if d.building {
			return nil, fmt.Errorf("acquire %s: %w", fp, ErrRecursiveDefinition)
		}
		d.refs++
		return d, nil
	}

	// Reserve the slot before materializing: nested acquires for other
	// fingerprints are fine, but this one would recurse forever.
	d := &Def{fp: fp, building: true}
	reg.defs[fp] = d
	node, err := materialize()
	if err != nil {
		delete(reg.defs, fp)
		return nil, err
	}
	d.node = node
	d.refs = 1
	d.building = false
	return d, nil
}

// Retain adds a reference to an already materialized definition.
func (reg *DefRegistry) Retain(d *Def) error {
	if d == nil || reg.defs[d.fp] != d {
		return errUnknown("retain")
	}
	if d.building {
		return fmt.Errorf("retain %s: %w", d.fp, ErrRecursiveDefinition)
	}
	d.refs++
	return nil
}

// Release drops one reference from d. When the count reaches zero the
// entry is removed and its node detached from the document.
//
// The registry forgets the entry even if detaching the node fails; the
// error then reports the document problem.
func (reg *DefRegistry) Release(d *Def) error {
	if d == nil || reg.defs[d.fp] != d {
		return errUnknown("release")
	}
	d.refs--
	if d.refs > 0 {
		return nil
	}
	delete(reg.defs, d.fp)
	if !d.node.Alive() {
		return errDoc("release "+d.fp.String(), errDestroyed)
	}
	parent := d.node.Parent()
	if parent == nil {
		return nil // already detached
	}
	if err := parent.RemoveChild(d.node); err != nil {
		return errDoc("release "+d.fp.String(), err)
	}
	return nil
}

// Lookup returns the definition registered under fp, if any.
func (reg *DefRegistry) Lookup(fp svghash.Fingerprint) (*Def, bool) {
	d, ok := reg.defs[fp]
	return d, ok
}

// Len returns the number of live definitions.
func (reg *DefRegistry) Len() int { return len(reg.defs) }

// reset drops every entry without touching the document. The renderer
// uses it when the subtree holding the definitions is discarded
// wholesale.
func (reg *DefRegistry) reset() {
	reg.defs = map[svghash.Fingerprint]*Def{}
}
