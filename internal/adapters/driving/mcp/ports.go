package mcp

import (
	"github.com/custodia-labs/khareeta/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces used by the MCP server.
type Ports struct {
	// Knowledge answers questions and tracks the map session.
	Knowledge driving.KnowledgeService

	// Progress reports points and badges. Optional.
	Progress driving.ProgressService

	// Media finds point images. Optional.
	Media driving.MediaService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Knowledge == nil {
		return ErrMissingKnowledgeService
	}
	return nil
}
