package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/khareeta/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for Khareeta resources.
	uriScheme = "khareeta://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "lessons",
		Name:        "lessons",
		Description: "List of all lessons",
		MIMEType:    "application/json",
	}, s.handleLessonsResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "categories",
		Name:        "categories",
		Description: "The map legend: point categories with labels and colours",
		MIMEType:    "application/json",
	}, s.handleCategoriesResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "lessons/{lessonId}",
		Name:        "lesson",
		Description: "A full lesson: objectives, sections, map points and quiz questions",
		MIMEType:    "application/json",
	}, s.handleLessonResource)
}

// handleLessonsResource returns the lesson list.
func (s *Server) handleLessonsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	return jsonResource(req.Params.URI, s.ports.Knowledge.Lessons())
}

// handleCategoriesResource returns the map legend.
func (s *Server) handleCategoriesResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	return jsonResource(req.Params.URI, s.ports.Knowledge.Categories())
}

// handleLessonResource returns one lesson. Quiz answers are withheld.
func (s *Server) handleLessonResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	lessonID := extractLessonID(req.Params.URI)
	if lessonID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	lesson, err := s.ports.Knowledge.Lesson(lessonID)
	if errors.Is(err, domain.ErrUnknownLesson) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting lesson: %w", err)
	}

	type question struct {
		ID       string   `json:"id"`
		Question string   `json:"q"`
		Options  []string `json:"options"`
	}
	quiz := make([]question, len(lesson.Quiz))
	for i, q := range lesson.Quiz {
		quiz[i] = question{ID: q.ID, Question: q.Question, Options: q.Options}
	}

	return jsonResource(req.Params.URI, struct {
		ID         string                   `json:"id"`
		Title      string                   `json:"title"`
		Objectives []string                 `json:"objectives,omitempty"`
		Sections   []domain.Section         `json:"sections,omitempty"`
		Points     []domain.PointOfInterest `json:"points,omitempty"`
		Quiz       []question               `json:"quiz,omitempty"`
	}{
		ID:         lesson.ID,
		Title:      lesson.Title,
		Objectives: lesson.Objectives,
		Sections:   lesson.Sections,
		Points:     lesson.Points,
		Quiz:       quiz,
	})
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractLessonID extracts the lesson ID from a URI like khareeta://lessons/{lessonId}.
func extractLessonID(uri string) string {
	const prefix = uriScheme + "lessons/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
