// Package mcp provides an MCP (Model Context Protocol) server adapter
// for Keeper. It exposes the knowledge base as a search tool so AI
// assistants can query indexed documents and notes.
package mcp

import "errors"

// ErrMissingKnowledgeService is returned when the knowledge service is not provided.
var ErrMissingKnowledgeService = errors.New("mcp: knowledge service is required")
