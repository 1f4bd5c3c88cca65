// Package driving provides interfaces for primary/inbound ports.
//
// These are the operations the outside world (CLI, MCP server) invokes
// on the core. Concrete implementations live in internal/core/services.
package driving
