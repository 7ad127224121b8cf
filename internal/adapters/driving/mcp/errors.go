// Package mcp provides the MCP (Model Context Protocol) server adapter
// exposing the document conversion tools to AI assistants.
package mcp

import "errors"

// ErrMissingConvertService is returned when the convert service is not provided.
var ErrMissingConvertService = errors.New("mcp: convert service is required")
