// Package mcp provides a Model Context Protocol server adapter so AI
// assistants can query the local knowledge collection.
package mcp

import "errors"

// ErrMissingAssistantService is returned when the assistant service is
// not provided.
var ErrMissingAssistantService = errors.New("mcp: assistant service is required")
