// Package driving defines the inbound interfaces through which
// adapters (MCP server, CLI) invoke the core services.
package driving
