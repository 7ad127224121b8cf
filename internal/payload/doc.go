// Package payload recovers plain text from conversion payloads that
// arrive wrapped in structured-data envelopes. Callers are frequently
// automated agents whose tool arguments reach the server malformed:
// truncated mid-stream, double-escaped, or nested inside a second JSON
// document. The package classifies the raw input and applies an ordered
// chain of repair strategies; it is a total function and never returns
// an error, falling back to the original input when nothing is
// recognised.
package payload
