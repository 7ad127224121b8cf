package driven

import "context"

// StagingMode declares how a capability receives its input.
type StagingMode int

const (
	// StagePath capabilities read a file from a local path.
	StagePath StagingMode = iota

	// StageText capabilities receive the payload as an in-memory string.
	StageText
)

// CapabilityInput carries the resolved input for one invocation.
// Exactly one field is populated, matching the capability's staging
// mode.
type CapabilityInput struct {
	// Path is the local input file (StagePath).
	Path string

	// Text is the recovered plain-text payload (StageText).
	Text string

	// TargetFormat is the requested output format, passed through for
	// capabilities that handle a format family (e.g. images).
	TargetFormat string
}

// Capability is a delegated conversion engine with a narrow file
// contract: it reads the staged input and writes a file at outputPath,
// or reports an error. Success is signalled by the output file existing
// after return; the orchestrator treats a missing file as failure even
// when the returned error is nil.
type Capability interface {
	// Name identifies the capability in logs and error messages.
	Name() string

	// Staging returns how this capability wants its input.
	Staging() StagingMode

	// Convert performs the conversion. It is invoked synchronously and
	// is never retried.
	Convert(ctx context.Context, in CapabilityInput, outputPath string) error
}
