package mcp

import (
	"github.com/fileforge/convertd/internal/core/ports/driving"
)

// PathResolver locates input files from loose caller-supplied paths.
type PathResolver interface {
	// Resolve returns an existing path for the requested file.
	Resolve(path string) (string, error)
}

// Ports aggregates the driving dependencies of the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Convert executes conversion requests.
	Convert driving.ConvertService

	// Resolver locates loosely specified input files. Optional; when
	// nil, paths are passed to the service unchanged.
	Resolver PathResolver
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Convert == nil {
		return ErrMissingConvertService
	}
	return nil
}
