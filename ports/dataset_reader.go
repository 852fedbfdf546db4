package ports

import (
	"context"

	"framebias/domain/core"
	"framebias/domain/dataset"
)

// DatasetReaderPort loads the source table the prompt builder samples from
type DatasetReaderPort interface {
	// ReadTable reads every row of the source file
	ReadTable(ctx context.Context) (*dataset.Table, error)

	// Fingerprint hashes the source bytes for the run manifest
	Fingerprint() (core.DatasetHash, error)

	// Path is the source location, recorded in the manifest
	Path() string
}
