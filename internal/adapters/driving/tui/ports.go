// Package tui provides an interactive terminal user interface for khareeta.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/khareeta/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Knowledge answers questions and tracks visits and point quizzes.
	Knowledge driving.KnowledgeService

	// Progress reports points, level and badges. Optional.
	Progress driving.ProgressService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(knowledge driving.KnowledgeService, progress driving.ProgressService) *Ports {
	return &Ports{
		Knowledge: knowledge,
		Progress:  progress,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Knowledge == nil {
		return ErrMissingKnowledgeService
	}
	return nil
}
