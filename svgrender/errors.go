package svgrender

import (
	"fmt"

	"github.com/benoitkugler/livesvg/svghash"
)

// Error kinds returned by the renderer. Errors are wrapped with the
// failing operation; match them with errors.Is.
var (
	// ErrInvalidShape reports a shape description that failed
	// validation, typically a tag outside the supported vocabulary.
	ErrInvalidShape = svghash.ErrInvalidShape

	// ErrUnknownHandle reports an operation on a handle the renderer
	// is not tracking: it was never rendered here, or was removed.
	ErrUnknownHandle = fmt.Errorf("unknown handle")

	// ErrDocumentUnavailable reports that the output document rejected
	// an operation, or that a node the renderer relies on was
	// destroyed behind its back.
	ErrDocumentUnavailable = fmt.Errorf("document unavailable")

	// ErrRecursiveDefinition reports a definition whose
	// materialization tried to acquire itself.
	ErrRecursiveDefinition = fmt.Errorf("%w: recursive definition", ErrInvalidShape)

	// ErrNameNotContainer reports a container operation aimed at a
	// name designating a plain instance.
	ErrNameNotContainer = fmt.Errorf("name does not designate a container")
)

func errDoc(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, ErrDocumentUnavailable, err)
}

func errUnknown(op string) error {
	return fmt.Errorf("%s: %w", op, ErrUnknownHandle)
}

// errDestroyed marks nodes found dead even though the renderer never
// removed them.
var errDestroyed = fmt.Errorf("node was destroyed outside the renderer")
