package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/khareeta/internal/core/domain"
)

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Query  string `json:"query,omitempty" jsonschema:"the question to answer, in Arabic or English"`
	Random bool   `json:"random,omitempty" jsonschema:"answer with a random fact instead of a query"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Query   string        `json:"query"`
	Outcome string        `json:"outcome"`
	Tokens  []string      `json:"tokens"`
	Facts   []FactOutput  `json:"facts"`
	Points  []PointOutput `json:"points"`
}

// FactOutput represents a single matched fact.
type FactOutput struct {
	ID      string `json:"id"`
	Kind    string `json:"kind"`
	Text    string `json:"text"`
	Lesson  string `json:"lesson"`
	Heading string `json:"heading,omitempty"`
	PointID string `json:"point_id,omitempty"`
	Score   int    `json:"score"`
}

// PointOutput represents a map point.
type PointOutput struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	Summary  string  `json:"summary,omitempty"`
	Score    int     `json:"score,omitempty"`
}

// SearchPointsInput is the input schema for the search_points tool.
type SearchPointsInput struct {
	Query string `json:"query" jsonschema:"words to match against point names and descriptions"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results to return"`
}

// SearchPointsOutput is the output schema for the search_points tool.
type SearchPointsOutput struct {
	Results []PointOutput `json:"results"`
	Count   int           `json:"count"`
}

// PointInput identifies a map point.
type PointInput struct {
	PointID string `json:"point_id" jsonschema:"the id of the map point"`
}

// PointQuizOutput is the output schema for the point_quiz tool.
type PointQuizOutput struct {
	PointID   string         `json:"point_id"`
	PointName string         `json:"point_name"`
	Options   []OptionOutput `json:"options"`
}

// OptionOutput is one category option of a point quiz.
type OptionOutput struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// AnswerPointQuizInput is the input schema for the answer_point_quiz tool.
type AnswerPointQuizInput struct {
	PointID string `json:"point_id" jsonschema:"the id of the map point"`
	Choice  string `json:"choice" jsonschema:"the chosen category key"`
}

// AnswerPointQuizOutput is the output schema for the answer_point_quiz tool.
type AnswerPointQuizOutput struct {
	Correct         bool `json:"correct"`
	Awarded         int  `json:"awarded"`
	AlreadyAnswered bool `json:"already_answered"`
}

// VisitPointOutput is the output schema for the visit_point tool.
type VisitPointOutput struct {
	FirstVisit bool            `json:"first_visit"`
	Visited    int             `json:"visited"`
	Completed  []MissionOutput `json:"completed"`
	Awarded    int             `json:"awarded"`
}

// MissionOutput represents a mission and its progress.
type MissionOutput struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Category  string `json:"category"`
	Count     int    `json:"count"`
	Reward    int    `json:"reward"`
	Visited   int    `json:"visited"`
	Completed bool   `json:"completed"`
}

// MissionsOutput is the output schema for the missions tool.
type MissionsOutput struct {
	Missions []MissionOutput `json:"missions"`
}

// SelectLessonInput is the input schema for the select_lesson tool.
type SelectLessonInput struct {
	LessonID string `json:"lesson_id,omitempty" jsonschema:"the lesson to focus on; empty selects all lessons"`
}

// SelectLessonOutput is the output schema for the select_lesson tool.
type SelectLessonOutput struct {
	Scope  string `json:"scope"`
	Points int    `json:"points"`
	Facts  int    `json:"facts"`
}

// ProgressOutput is the output schema for the progress tool.
type ProgressOutput struct {
	Points int      `json:"points"`
	Level  int      `json:"level"`
	Title  string   `json:"title"`
	Badges []string `json:"badges"`
}

// PointImagesOutput is the output schema for the point_images tool.
type PointImagesOutput struct {
	Images []ImageOutput `json:"images"`
}

// ImageOutput represents one image.
type ImageOutput struct {
	Src     string `json:"src"`
	Source  string `json:"source,omitempty"`
	Title   string `json:"title,omitempty"`
	Creator string `json:"creator,omitempty"`
	License string `json:"license,omitempty"`
}

// EmptyInput is the input schema of tools without arguments.
type EmptyInput struct{}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Answer a question about Egypt's geography lessons with ranked facts and related map points",
	}, s.handleAsk)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_points",
		Description: "Find map points (mines, power stations, rivers, projects) matching some words",
	}, s.handleSearchPoints)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "point_quiz",
		Description: "Get a quiz asking which category a map point belongs to",
	}, s.handlePointQuiz)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "answer_point_quiz",
		Description: "Answer a point quiz with a category key; only the first answer counts",
	}, s.handleAnswerPointQuiz)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "visit_point",
		Description: "Visit a map point, completing missions and earning points",
	}, s.handleVisitPoint)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "missions",
		Description: "List the missions of the current lesson with their progress",
	}, s.handleMissions)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "select_lesson",
		Description: "Focus questions on one lesson, or on all lessons; resets visits and missions",
	}, s.handleSelectLesson)

	if s.ports.Progress != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "progress",
			Description: "Show the child's points, level and badges",
		}, s.handleProgress)
	}

	if s.ports.Media != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "point_images",
			Description: "Find child-safe images of a map point",
		}, s.handlePointImages)
	}
}

func (s *Server) handleAsk(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	var result domain.QueryResult
	if input.Random {
		result = s.ports.Knowledge.RandomFact()
	} else {
		result = s.ports.Knowledge.Ask(input.Query)
	}

	output := AskOutput{
		Query:   result.Query,
		Outcome: string(result.Outcome),
		Tokens:  result.Tokens,
		Facts:   make([]FactOutput, len(result.MatchedFacts)),
		Points:  make([]PointOutput, len(result.RelatedPoints)),
	}
	for i, f := range result.MatchedFacts {
		output.Facts[i] = FactOutput{
			ID:      f.ID,
			Kind:    string(f.Kind),
			Text:    f.Text,
			Lesson:  f.LessonTitle,
			Heading: f.Heading,
			PointID: f.LinkedPointID,
			Score:   f.Score,
		}
	}
	for i, p := range result.RelatedPoints {
		output.Points[i] = toPointOutput(p, 0)
	}

	return nil, output, nil
}

func (s *Server) handleSearchPoints(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input SearchPointsInput,
) (*mcp.CallToolResult, SearchPointsOutput, error) {
	results := s.ports.Knowledge.SearchPoints(input.Query)
	if input.Limit > 0 && len(results) > input.Limit {
		results = results[:input.Limit]
	}

	output := SearchPointsOutput{
		Results: make([]PointOutput, len(results)),
		Count:   len(results),
	}
	for i, r := range results {
		output.Results[i] = toPointOutput(r.Point, r.Score)
	}

	return nil, output, nil
}

func (s *Server) handlePointQuiz(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input PointInput,
) (*mcp.CallToolResult, PointQuizOutput, error) {
	quiz, err := s.ports.Knowledge.PointQuiz(input.PointID)
	if err != nil {
		return nil, PointQuizOutput{}, err
	}

	labels := make(map[string]string)
	for _, c := range s.ports.Knowledge.Categories() {
		labels[c.Key] = c.Label
	}

	output := PointQuizOutput{
		PointID:   quiz.PointID,
		PointName: quiz.PointName,
		Options:   make([]OptionOutput, len(quiz.Options)),
	}
	for i, key := range quiz.Options {
		label, ok := labels[key]
		if !ok {
			label = key
		}
		output.Options[i] = OptionOutput{Key: key, Label: label}
	}

	return nil, output, nil
}

func (s *Server) handleAnswerPointQuiz(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AnswerPointQuizInput,
) (*mcp.CallToolResult, AnswerPointQuizOutput, error) {
	answer, err := s.ports.Knowledge.AnswerPointQuiz(ctx, input.PointID, input.Choice)
	if errors.Is(err, domain.ErrAlreadyAnswered) {
		return nil, AnswerPointQuizOutput{Correct: answer.Correct, AlreadyAnswered: true}, nil
	}
	if err != nil {
		return nil, AnswerPointQuizOutput{}, err
	}

	return nil, AnswerPointQuizOutput{Correct: answer.Correct, Awarded: answer.Awarded}, nil
}

func (s *Server) handleVisitPoint(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input PointInput,
) (*mcp.CallToolResult, VisitPointOutput, error) {
	result, err := s.ports.Knowledge.RecordVisit(ctx, input.PointID)
	if err != nil {
		return nil, VisitPointOutput{}, err
	}

	output := VisitPointOutput{
		FirstVisit: result.FirstVisit,
		Visited:    result.Visited,
		Completed:  make([]MissionOutput, len(result.Completed)),
		Awarded:    result.Awarded,
	}
	for i, m := range result.Completed {
		output.Completed[i] = toMissionOutput(domain.MissionStatus{Mission: m, Visited: m.Count, Completed: true})
	}

	return nil, output, nil
}

func (s *Server) handleMissions(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ EmptyInput,
) (*mcp.CallToolResult, MissionsOutput, error) {
	statuses := s.ports.Knowledge.Missions()

	output := MissionsOutput{Missions: make([]MissionOutput, len(statuses))}
	for i, m := range statuses {
		output.Missions[i] = toMissionOutput(m)
	}

	return nil, output, nil
}

func (s *Server) handleSelectLesson(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input SelectLessonInput,
) (*mcp.CallToolResult, SelectLessonOutput, error) {
	if err := s.ports.Knowledge.SelectLesson(input.LessonID); err != nil {
		return nil, SelectLessonOutput{}, err
	}

	return nil, SelectLessonOutput{
		Scope:  s.ports.Knowledge.Scope(),
		Points: len(s.ports.Knowledge.Points()),
		Facts:  len(s.ports.Knowledge.Facts()),
	}, nil
}

func (s *Server) handleProgress(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ EmptyInput,
) (*mcp.CallToolResult, ProgressOutput, error) {
	a, err := s.ports.Progress.Achievements(ctx)
	if err != nil {
		return nil, ProgressOutput{}, err
	}

	output := ProgressOutput{
		Points: a.Points,
		Level:  a.Level,
		Title:  a.Title,
		Badges: []string{},
	}
	for _, b := range a.Badges {
		if b.Unlocked {
			output.Badges = append(output.Badges, b.Name)
		}
	}

	return nil, output, nil
}

func (s *Server) handlePointImages(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input PointInput,
) (*mcp.CallToolResult, PointImagesOutput, error) {
	point, err := s.ports.Knowledge.Point(input.PointID)
	if err != nil {
		return nil, PointImagesOutput{}, err
	}

	images, err := s.ports.Media.PointImages(ctx, point)
	if err != nil {
		return nil, PointImagesOutput{}, err
	}

	output := PointImagesOutput{Images: make([]ImageOutput, len(images))}
	for i, img := range images {
		output.Images[i] = ImageOutput{
			Src:     img.Src,
			Source:  img.Source,
			Title:   img.Title,
			Creator: img.Creator,
			License: img.License,
		}
	}

	return nil, output, nil
}

func toPointOutput(p domain.PointOfInterest, score int) PointOutput {
	return PointOutput{
		ID:       p.ID,
		Name:     p.Name,
		Category: p.Type,
		Lat:      p.Lat,
		Lng:      p.Lng,
		Summary:  p.Summary(),
		Score:    score,
	}
}

func toMissionOutput(m domain.MissionStatus) MissionOutput {
	return MissionOutput{
		ID:        m.ID,
		Label:     m.Label,
		Category:  m.Category,
		Count:     m.Count,
		Reward:    m.Reward,
		Visited:   m.Visited,
		Completed: m.Completed,
	}
}
