package driving

import (
	"context"

	"github.com/fileforge/convertd/internal/core/domain"
)

// ConvertService executes conversion requests. It always returns one of
// the two outcome shapes; internal faults never escape as errors or
// panics past this boundary.
type ConvertService interface {
	// Convert runs one request through the pipeline: resolve input,
	// invoke the bound capability, stage the artifact, optionally
	// publish it, and release all ephemeral storage.
	Convert(ctx context.Context, req domain.ConversionRequest) domain.Outcome

	// Supports reports whether a format pair is mapped to a capability.
	Supports(sourceFormat, targetFormat string) bool
}
