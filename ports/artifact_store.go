package ports

import (
	"context"
)

// ArtifactStorePort persists the JSON artifacts handed between stages.
// Names are paths relative to the store root, or absolute paths.
type ArtifactStorePort interface {
	// WriteJSON serializes v with two-space indentation, replacing any existing file,
	// and returns the bytes written
	WriteJSON(ctx context.Context, name string, v interface{}) ([]byte, error)

	// ReadJSON decodes the named artifact into v
	ReadJSON(ctx context.Context, name string, v interface{}) error

	// WriteText stores a plain text artifact such as a checklist
	WriteText(ctx context.Context, name string, text string) error
}
