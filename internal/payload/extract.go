package payload

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/fileforge/convertd/internal/logger"
)

// Extract returns the best-effort recovered plain text for a payload.
// It never fails: the worst case returns the input verbatim. Running
// Extract on its own plain-text output returns it unchanged.
func Extract(text string) string {
	kind := Classify(text)
	logger.Debug("payload classified as %s (%d bytes)", kind, len(text))

	trimmed := strings.TrimSpace(text)

	switch kind {
	case Empty:
		return ""

	case PlainText:
		return text

	case JSONString:
		return fromQuotedString(trimmed)

	case JSONObject:
		if value, ok := fromObject(trimmed); ok {
			return value
		}
		return text

	case NestedEnvelope:
		if value, ok := fromEnvelope(trimmed); ok {
			return value
		}
		return repairChain(trimmed, text)

	default: // TruncatedFragment
		return repairChain(trimmed, text)
	}
}

// repairChain applies the ordered fallback strategies to a structured
// payload that did not parse cleanly: field-window extraction, then a
// regex field scan, then identity.
func repairChain(trimmed, original string) string {
	if value, ok := fieldWindow(trimmed); ok {
		return value
	}
	if value, ok := regexFieldScan(trimmed); ok {
		return value
	}
	return original
}

// fromQuotedString handles input wrapped in a single pair of quotes.
func fromQuotedString(text string) string {
	var s string
	if err := json.Unmarshal([]byte(text), &s); err == nil {
		return s
	}
	// Not a valid JSON string; drop the wrapping quotes.
	if len(text) > 2 {
		return text[1 : len(text)-1]
	}
	return text
}

// fromObject extracts the content field from a well-formed object.
// Recognised keys win in priority order; an object with exactly one key
// of any name yields that sole value.
func fromObject(text string) (string, bool) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(text), &obj); err != nil {
		return "", false
	}

	for _, key := range contentKeys {
		if value, ok := obj[key]; ok {
			return stringify(value), true
		}
	}

	if len(obj) == 1 {
		for _, value := range obj {
			return stringify(value), true
		}
	}
	return "", false
}

// stringify renders an extracted value as text. String values are run
// through escape unescaping to handle double-escaped payloads whose
// content still carries literal backslash sequences after JSON decoding.
func stringify(value any) string {
	if s, ok := value.(string); ok {
		return unescape(s)
	}
	return fmt.Sprint(value)
}

// fromEnvelope unwraps {"arguments": "<inner JSON document>", ...}.
// The inner string is decoded as a second JSON document; when that also
// fails to parse, field-window extraction runs against the inner string
// rather than the outer one.
func fromEnvelope(text string) (string, bool) {
	var outer map[string]any
	if err := json.Unmarshal([]byte(text), &outer); err != nil {
		return "", false
	}
	inner, ok := outer["arguments"].(string)
	if !ok {
		return "", false
	}

	if value, ok := fromObject(inner); ok {
		return value, true
	}
	logger.Debug("inner arguments document did not parse, extracting from inner string")
	return fieldWindow(inner)
}

// closing markers for a field window, tried in order. A payload cut off
// mid-stream has none of them; the remainder is still valid output.
var windowClosers = []string{`"}`, `",`}

// fieldWindow locates the literal marker for the highest-priority
// recognised key and takes everything between its opening quote and the
// first closing marker. With no terminator at all, the remainder of the
// string (minus trailing whitespace) is used as a last resort.
func fieldWindow(text string) (string, bool) {
	for _, key := range contentKeys {
		window, ok := windowAfterKey(text, key)
		if !ok {
			continue
		}
		for _, closer := range windowClosers {
			if end := strings.Index(window, closer); end > 0 {
				return unescape(window[:end]), true
			}
		}
		if strings.HasSuffix(window, `"`) && len(window) > 1 {
			return unescape(window[:len(window)-1]), true
		}
		if rest := strings.TrimRight(window, " \t\r\n"); rest != "" {
			return unescape(rest), true
		}
	}
	return "", false
}

// windowAfterKey returns the text following `"<key>": "`, tolerating
// missing whitespace after the colon.
func windowAfterKey(text, key string) (string, bool) {
	marker := `"` + key + `"`
	start := strings.Index(text, marker)
	if start < 0 {
		return "", false
	}
	rest := text[start+len(marker):]
	rest = strings.TrimLeft(rest, " \t")
	if !strings.HasPrefix(rest, ":") {
		return "", false
	}
	rest = strings.TrimLeft(rest[1:], " \t")
	if !strings.HasPrefix(rest, `"`) {
		return "", false
	}
	return rest[1:], true
}

// fieldPattern matches `"<key>": "<value>"` for any recognised key.
// The value alternation keeps escaped sequences (including \" and \n)
// inside the match so content spanning embedded escapes survives.
var fieldPattern = regexp.MustCompile(
	`"(?:markdown_text|text|content|message|html_content|input_file)"\s*:\s*"((?:\\.|[^"\\])*)"`)

// regexFieldScan is the broad fallback independent of full parsing: the
// first recognised field anywhere in the raw text wins.
func regexFieldScan(text string) (string, bool) {
	m := fieldPattern.FindStringSubmatch(text)
	if m == nil || m[1] == "" {
		return "", false
	}
	return unescape(m[1]), true
}

// unescape converts escaped newline, carriage-return, tab, and quote
// sequences to their literal characters. The order is fixed: newline and
// carriage-return before quote, so content legitimately containing a
// backslash-quote in already-unescaped text is not corrupted.
func unescape(s string) string {
	s = strings.ReplaceAll(s, `\n`, "\n")
	s = strings.ReplaceAll(s, `\r`, "\r")
	s = strings.ReplaceAll(s, `\t`, "\t")
	s = strings.ReplaceAll(s, `\"`, `"`)
	return s
}
