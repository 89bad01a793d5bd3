package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/khareeta/internal/core/domain"
)

func TestHandleAsk(t *testing.T) {
	ctx := context.Background()

	t.Run("answers with ranked facts and points", func(t *testing.T) {
		server := newTestEnv(t).server(t)

		_, output, err := server.handleAsk(ctx, nil, AskInput{Query: "ذهب"})

		require.NoError(t, err)
		assert.Equal(t, "answered", output.Outcome)
		assert.Equal(t, []string{"ذهب"}, output.Tokens)
		require.NotEmpty(t, output.Facts)
		assert.Contains(t, output.Facts[0].Text, "ذهب")
		assert.Equal(t, "sukari", output.Facts[0].PointID)
		assert.Positive(t, output.Facts[0].Score)
		require.NotEmpty(t, output.Points)
		assert.Equal(t, "sukari", output.Points[0].ID)
		assert.Equal(t, "minerals", output.Points[0].Category)
	})

	t.Run("query without tokens", func(t *testing.T) {
		server := newTestEnv(t).server(t)

		_, output, err := server.handleAsk(ctx, nil, AskInput{Query: "  ؟ "})

		require.NoError(t, err)
		assert.Equal(t, "no_tokens", output.Outcome)
		assert.Empty(t, output.Facts)
		assert.Empty(t, output.Points)
	})

	t.Run("no matches", func(t *testing.T) {
		server := newTestEnv(t).server(t)

		_, output, err := server.handleAsk(ctx, nil, AskInput{Query: "بطريق"})

		require.NoError(t, err)
		assert.Equal(t, "no_matches", output.Outcome)
		assert.Empty(t, output.Facts)
	})

	t.Run("random fact", func(t *testing.T) {
		server := newTestEnv(t).server(t)

		_, output, err := server.handleAsk(ctx, nil, AskInput{Random: true})

		require.NoError(t, err)
		assert.Equal(t, "answered", output.Outcome)
		assert.Len(t, output.Facts, 1)
	})
}

func TestHandleSearchPoints(t *testing.T) {
	ctx := context.Background()

	t.Run("finds points", func(t *testing.T) {
		server := newTestEnv(t).server(t)

		_, output, err := server.handleSearchPoints(ctx, nil, SearchPointsInput{Query: "النيل"})

		require.NoError(t, err)
		require.Equal(t, 1, output.Count)
		assert.Equal(t, "nile", output.Results[0].ID)
		assert.Equal(t, "نهر النيل", output.Results[0].Name)
		assert.Positive(t, output.Results[0].Score)
	})

	t.Run("limit caps results", func(t *testing.T) {
		server := newTestEnv(t).server(t)

		_, output, err := server.handleSearchPoints(ctx, nil, SearchPointsInput{Query: "منجم السد نهر", Limit: 1})

		require.NoError(t, err)
		assert.Equal(t, 1, output.Count)
		assert.Len(t, output.Results, 1)
	})

	t.Run("empty query", func(t *testing.T) {
		server := newTestEnv(t).server(t)

		_, output, err := server.handleSearchPoints(ctx, nil, SearchPointsInput{})

		require.NoError(t, err)
		assert.Equal(t, 0, output.Count)
		assert.Empty(t, output.Results)
	})
}

func TestHandlePointQuiz(t *testing.T) {
	ctx := context.Background()

	t.Run("options include the correct category", func(t *testing.T) {
		server := newTestEnv(t).server(t)

		_, output, err := server.handlePointQuiz(ctx, nil, PointInput{PointID: "sukari"})

		require.NoError(t, err)
		assert.Equal(t, "sukari", output.PointID)
		assert.Equal(t, "منجم السكري", output.PointName)
		require.NotEmpty(t, output.Options)

		keys := make([]string, len(output.Options))
		for i, o := range output.Options {
			keys[i] = o.Key
			assert.NotEmpty(t, o.Label)
		}
		assert.Contains(t, keys, "minerals")
	})

	t.Run("unknown point", func(t *testing.T) {
		server := newTestEnv(t).server(t)

		_, _, err := server.handlePointQuiz(ctx, nil, PointInput{PointID: "atlantis"})

		assert.ErrorIs(t, err, domain.ErrUnknownPoint)
	})
}

func TestHandleAnswerPointQuiz(t *testing.T) {
	ctx := context.Background()

	t.Run("correct answer awards points once", func(t *testing.T) {
		env := newTestEnv(t)
		server := env.server(t)

		_, output, err := server.handleAnswerPointQuiz(ctx, nil,
			AnswerPointQuizInput{PointID: "sukari", Choice: "minerals"})
		require.NoError(t, err)
		assert.True(t, output.Correct)
		assert.Equal(t, domain.PointQuizReward, output.Awarded)
		assert.False(t, output.AlreadyAnswered)

		_, again, err := server.handleAnswerPointQuiz(ctx, nil,
			AnswerPointQuizInput{PointID: "sukari", Choice: "fresh"})
		require.NoError(t, err)
		assert.True(t, again.AlreadyAnswered)
		assert.True(t, again.Correct)
		assert.Zero(t, again.Awarded)

		progress, err := env.progress.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, domain.PointQuizReward, progress.Points)
	})

	t.Run("wrong answer", func(t *testing.T) {
		server := newTestEnv(t).server(t)

		_, output, err := server.handleAnswerPointQuiz(ctx, nil,
			AnswerPointQuizInput{PointID: "nile", Choice: "salty"})

		require.NoError(t, err)
		assert.False(t, output.Correct)
		assert.Zero(t, output.Awarded)
	})

	t.Run("unknown point", func(t *testing.T) {
		server := newTestEnv(t).server(t)

		_, _, err := server.handleAnswerPointQuiz(ctx, nil,
			AnswerPointQuizInput{PointID: "atlantis", Choice: "fresh"})

		assert.ErrorIs(t, err, domain.ErrUnknownPoint)
	})
}

func TestHandleVisitPoint(t *testing.T) {
	ctx := context.Background()

	t.Run("completing a mission awards its reward", func(t *testing.T) {
		env := newTestEnv(t)
		server := env.server(t)

		_, output, err := server.handleVisitPoint(ctx, nil, PointInput{PointID: "high-dam"})

		require.NoError(t, err)
		assert.True(t, output.FirstVisit)
		assert.Equal(t, 1, output.Visited)
		require.Len(t, output.Completed, 1)
		assert.Equal(t, "m-projects", output.Completed[0].ID)
		assert.True(t, output.Completed[0].Completed)
		assert.Equal(t, 10, output.Awarded)

		progress, err := env.progress.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, 10, progress.Points)
	})

	t.Run("second visit is not counted", func(t *testing.T) {
		server := newTestEnv(t).server(t)

		_, _, err := server.handleVisitPoint(ctx, nil, PointInput{PointID: "nile"})
		require.NoError(t, err)
		_, output, err := server.handleVisitPoint(ctx, nil, PointInput{PointID: "nile"})

		require.NoError(t, err)
		assert.False(t, output.FirstVisit)
		assert.Equal(t, 1, output.Visited)
		assert.Empty(t, output.Completed)
	})

	t.Run("unknown point", func(t *testing.T) {
		server := newTestEnv(t).server(t)

		_, _, err := server.handleVisitPoint(ctx, nil, PointInput{PointID: "atlantis"})

		assert.ErrorIs(t, err, domain.ErrUnknownPoint)
	})
}

func TestHandleMissions(t *testing.T) {
	ctx := context.Background()
	server := newTestEnv(t).server(t)

	_, output, err := server.handleMissions(ctx, nil, EmptyInput{})
	require.NoError(t, err)

	ids := make([]string, len(output.Missions))
	for i, m := range output.Missions {
		ids[i] = m.ID
		assert.False(t, m.Completed)
		assert.Zero(t, m.Visited)
	}
	assert.ElementsMatch(t, []string{"m-water", "m-projects", "m-minerals"}, ids)
}

func TestHandleSelectLesson(t *testing.T) {
	ctx := context.Background()

	t.Run("narrows scope", func(t *testing.T) {
		server := newTestEnv(t).server(t)

		_, output, err := server.handleSelectLesson(ctx, nil, SelectLessonInput{LessonID: "water"})

		require.NoError(t, err)
		assert.Equal(t, "water", output.Scope)
		assert.Equal(t, 1, output.Points)

		_, _, err = server.handlePointQuiz(ctx, nil, PointInput{PointID: "sukari"})
		assert.ErrorIs(t, err, domain.ErrUnknownPoint)
	})

	t.Run("empty id selects all lessons", func(t *testing.T) {
		server := newTestEnv(t).server(t)

		_, output, err := server.handleSelectLesson(ctx, nil, SelectLessonInput{})

		require.NoError(t, err)
		assert.Empty(t, output.Scope)
		assert.Equal(t, 3, output.Points)
		assert.Positive(t, output.Facts)
	})

	t.Run("unknown lesson", func(t *testing.T) {
		server := newTestEnv(t).server(t)

		_, _, err := server.handleSelectLesson(ctx, nil, SelectLessonInput{LessonID: "space"})

		assert.ErrorIs(t, err, domain.ErrUnknownLesson)
	})
}

func TestHandleProgress(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	server := env.server(t)

	_, output, err := server.handleProgress(ctx, nil, EmptyInput{})
	require.NoError(t, err)
	assert.Zero(t, output.Points)
	assert.Equal(t, 1, output.Level)
	assert.NotEmpty(t, output.Title)
	assert.NotNil(t, output.Badges)

	_, err = env.progress.Award(ctx, 25)
	require.NoError(t, err)

	_, output, err = server.handleProgress(ctx, nil, EmptyInput{})
	require.NoError(t, err)
	assert.Equal(t, 25, output.Points)
}

func TestHandlePointImages(t *testing.T) {
	ctx := context.Background()

	t.Run("returns searched images", func(t *testing.T) {
		env := newTestEnv(t)
		env.searcher.images = []domain.Image{
			{Src: "https://img.example/1.jpg", Title: "Gold mine", License: "by"},
		}
		server := env.server(t)

		_, output, err := server.handlePointImages(ctx, nil, PointInput{PointID: "sukari"})

		require.NoError(t, err)
		require.Len(t, output.Images, 1)
		assert.Equal(t, "https://img.example/1.jpg", output.Images[0].Src)
		assert.Equal(t, "Gold mine", output.Images[0].Title)
	})

	t.Run("search failure returns no images", func(t *testing.T) {
		env := newTestEnv(t)
		env.searcher.err = errors.New("boom")
		server := env.server(t)

		_, output, err := server.handlePointImages(ctx, nil, PointInput{PointID: "sukari"})

		require.NoError(t, err)
		assert.Empty(t, output.Images)
	})

	t.Run("unknown point", func(t *testing.T) {
		server := newTestEnv(t).server(t)

		_, _, err := server.handlePointImages(ctx, nil, PointInput{PointID: "atlantis"})

		assert.ErrorIs(t, err, domain.ErrUnknownPoint)
	})
}
