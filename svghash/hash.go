// Derives stable identities for shape descriptions.
// Two elements receive the same fingerprint exactly when they
// describe the same rendered output, so renderers can share one
// definition between all equivalent shapes.
package svghash

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"hash"
	"sort"

	"github.com/benoitkugler/livesvg/svgelem"
)

// ErrInvalidShape is returned when a shape description uses a tag
// outside the supported vocabulary.
var ErrInvalidShape = fmt.Errorf("invalid shape")

// Fingerprint is the canonical identity of a shape description:
// the leading 96 bits of a SHA-256 digest over the canonical form.
// The zero value means "no fingerprint".
type Fingerprint [12]byte

// String returns the fingerprint in unpadded base64url form,
// short enough and safe to embed in document ids.
func (fp Fingerprint) String() string {
	return base64.RawURLEncoding.EncodeToString(fp[:])
}

// IsZero reports whether fp holds no value.
func (fp Fingerprint) IsZero() bool { return fp == Fingerprint{} }

// Compute derives the fingerprint of el.
//
// Attribute insertion order is irrelevant; child order is
// significant; attribute values are compared after Normalize.
// An unknown tag anywhere in the tree fails with ErrInvalidShape.
func Compute(el svgelem.Element) (Fingerprint, error) {
	h := sha256.New()
	if err := writeElement(h, el); err != nil {
		return Fingerprint{}, err
	}
	var fp Fingerprint
	copy(fp[:], h.Sum(nil))
	return fp, nil
}

// SumString fingerprints an arbitrary string, giving named entries
// document ids of the same shape as figure ids.
func SumString(s string) Fingerprint {
	sum := sha256.Sum256([]byte(s))
	var fp Fingerprint
	copy(fp[:], sum[:])
	return fp
}

func writeElement(h hash.Hash, el svgelem.Element) error {
	if !el.Tag.Valid() {
		return fmt.Errorf("%w: unknown tag %q", ErrInvalidShape, el.Tag)
	}
	writeString(h, string(el.Tag))

	attrs := make([]svgelem.Attribute, len(el.Attrs))
	copy(attrs, el.Attrs)
	sort.SliceStable(attrs, func(i, j int) bool { return attrs[i].Name < attrs[j].Name })
	writeCount(h, len(attrs))
	for _, attr := range attrs {
		writeString(h, attr.Name)
		writeString(h, Normalize(attr.Value))
	}

	writeCount(h, len(el.Children))
	for _, child := range el.Children {
		if err := writeElement(h, child); err != nil {
			return err
		}
	}
	return nil
}

// every chunk is length-prefixed, so distinct trees cannot produce
// the same byte stream by re-framing
func writeString(h hash.Hash, s string) {
	writeCount(h, len(s))
	h.Write([]byte(s))
}

func writeCount(h hash.Hash, n int) {
	var buf [binary.MaxVarintLen64]byte
	h.Write(buf[:binary.PutUvarint(buf[:], uint64(n))])
}
