package domain

import "fmt"

// InputKind identifies how the conversion input is supplied.
type InputKind string

const (
	// InputLocalPath references a file already on the local filesystem.
	InputLocalPath InputKind = "local_path"

	// InputRemoteURL references a file to download over HTTP(S).
	InputRemoteURL InputKind = "remote_url"

	// InputInlineBytes carries the file content as base64.
	InputInlineBytes InputKind = "inline_bytes"

	// InputRawText carries a text payload that may arrive wrapped in a
	// structured-data envelope; it passes through the extraction engine.
	InputRawText InputKind = "raw_text"
)

// InputSource is one populated input for a conversion request.
type InputSource struct {
	Kind  InputKind
	Value string
}

// ConversionRequest describes one conversion: a format pair and exactly
// one input source.
type ConversionRequest struct {
	SourceFormat string
	TargetFormat string
	Input        InputSource
}

// NewRequest builds a request with normalised format names.
func NewRequest(sourceFormat, targetFormat string, input InputSource) ConversionRequest {
	return ConversionRequest{
		SourceFormat: NormalizeFormat(sourceFormat),
		TargetFormat: NormalizeFormat(targetFormat),
		Input:        input,
	}
}

// Validate checks the request shape: both formats present and exactly
// one input populated. Format pair support is checked by the dispatch
// table, not here.
func (r ConversionRequest) Validate() error {
	if r.SourceFormat == "" || r.TargetFormat == "" {
		return fmt.Errorf("%w: source and target formats are required", ErrInvalidInput)
	}
	switch r.Input.Kind {
	case InputLocalPath, InputRemoteURL, InputInlineBytes, InputRawText:
	default:
		return fmt.Errorf("%w: unknown input kind %q", ErrInvalidInput, r.Input.Kind)
	}
	if r.Input.Kind != InputRawText && r.Input.Value == "" {
		return fmt.Errorf("%w: no input provided", ErrInvalidInput)
	}
	return nil
}

// ExactlyOneInput reports whether exactly one of the given values is
// non-empty. Tool adapters use it to reject ambiguous calls before any
// resource is allocated.
func ExactlyOneInput(values ...string) bool {
	populated := 0
	for _, v := range values {
		if v != "" {
			populated++
		}
	}
	return populated == 1
}
