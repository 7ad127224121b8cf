package payload

import (
	"encoding/json"
	"strings"
)

// Kind classifies a raw payload and selects the extraction strategy.
type Kind int

const (
	// Empty is whitespace-only input.
	Empty Kind = iota

	// PlainText is anything not starting with a JSON opener, including
	// multi-line prose that happens to contain braces or quotes.
	PlainText

	// JSONString is input wrapped in a single pair of double quotes.
	JSONString

	// NestedEnvelope is an object carrying an "arguments" key whose
	// value is itself a serialised JSON document.
	NestedEnvelope

	// TruncatedFragment is an object-looking input that does not parse
	// as well-formed JSON or lacks its closing brace.
	TruncatedFragment

	// JSONObject is a well-formed object.
	JSONObject
)

// String returns the kind name for logging.
func (k Kind) String() string {
	switch k {
	case Empty:
		return "empty"
	case PlainText:
		return "plain_text"
	case JSONString:
		return "json_string"
	case NestedEnvelope:
		return "nested_envelope"
	case TruncatedFragment:
		return "truncated_fragment"
	case JSONObject:
		return "json_object"
	default:
		return "unknown"
	}
}

// contentKeys are the recognised content fields, in fixed priority order.
var contentKeys = []string{
	"markdown_text",
	"text",
	"content",
	"message",
	"html_content",
	"input_file",
}

// Classify inspects raw input and decides which extraction strategy
// applies. Rules are evaluated in order; first match wins. Envelope
// detection deliberately precedes generic object parsing: a well-formed
// outer object can still wrap a malformed inner one.
func Classify(text string) Kind {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Empty
	}

	// Anything not starting with a JSON opener is prose, even when it
	// contains embedded quotes, braces, or line breaks.
	if trimmed[0] != '{' && trimmed[0] != '"' {
		return PlainText
	}

	if trimmed[0] == '"' {
		if len(trimmed) >= 2 && strings.HasSuffix(trimmed, `"`) {
			return JSONString
		}
		// An unterminated quoted string has no recoverable structure.
		return PlainText
	}

	if strings.Contains(trimmed, `"arguments"`) {
		return NestedEnvelope
	}

	var obj map[string]any
	wellFormed := json.Unmarshal([]byte(trimmed), &obj) == nil

	if hasContentKeyMarker(trimmed) && (!wellFormed || !strings.HasSuffix(trimmed, "}")) {
		return TruncatedFragment
	}
	if wellFormed {
		return JSONObject
	}
	// Malformed object without a recognised key: still hand it to the
	// repair chain rather than guessing here.
	return TruncatedFragment
}

// hasContentKeyMarker reports whether any recognised content key appears
// as a literal key marker in the raw text.
func hasContentKeyMarker(text string) bool {
	for _, key := range contentKeys {
		if strings.Contains(text, `"`+key+`"`) {
			return true
		}
	}
	return false
}
