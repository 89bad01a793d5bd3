// Package mcp provides an MCP (Model Context Protocol) server adapter for
// Khareeta. It lets AI assistants ask the lesson engine questions, explore
// map points and take quizzes on a child's behalf.
package mcp

import "errors"

// ErrMissingKnowledgeService is returned when the knowledge service is not provided.
var ErrMissingKnowledgeService = errors.New("mcp: knowledge service is required")
