package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidInput indicates a malformed conversion request, e.g. no
	// input populated or more than one input kind populated.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedConversion indicates no capability is bound for the
	// requested format pair.
	ErrUnsupportedConversion = errors.New("unsupported conversion")

	// Request-terminal error classes. None of these is ever retried;
	// each is mapped to a Failure outcome at the orchestrator boundary.

	// ErrInputResolution indicates the input could not be resolved to
	// local bytes (bad URL, bad base64, missing parameter).
	ErrInputResolution = errors.New("input resolution failed")

	// ErrCapability indicates the delegated conversion engine failed or
	// produced no output file.
	ErrCapability = errors.New("conversion failed")

	// ErrStaging indicates the produced artifact could not be moved to
	// the durable output location.
	ErrStaging = errors.New("output staging failed")

	// ErrPublication indicates the remote artifact push failed. The
	// request as a whole fails even though local conversion succeeded.
	ErrPublication = errors.New("publication failed")
)
