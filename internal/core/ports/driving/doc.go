// Package driving defines the interfaces that the CLI, TUI and MCP server
// use to reach core services. These are the "driving" ports in hexagonal
// architecture terminology.
//
// Implementations of these interfaces live in internal/core/services.
package driving
