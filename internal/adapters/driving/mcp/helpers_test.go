package mcp

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/khareeta/internal/adapters/driven/lessons"
	"github.com/custodia-labs/khareeta/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/khareeta/internal/core/domain"
	"github.com/custodia-labs/khareeta/internal/core/services"
)

const testLessons = `
lessons:
  - id: resources
    title: موارد مصر
    objectives:
      - يتعرف على أماكن الثروة المعدنية
    points:
      - id: sukari
        name: منجم السكري
        type: minerals
        lat: 24.95
        lng: 34.7
        info: أكبر منجم ذهب في مصر
      - id: high-dam
        name: السد العالي
        type: projects
        lat: 23.97
        lng: 32.88
        funFact: بحيرة ناصر خلف السد
    quiz:
      - id: q1
        q: أين يقع منجم السكري؟
        options: [الصحراء الشرقية, الدلتا]
        answer: 0
  - id: water
    title: مصادر المياه
    points:
      - id: nile
        name: نهر النيل
        type: fresh
        lat: 30.0
        lng: 31.2
        quickFacts: [أطول أنهار العالم]
`

type stubSearcher struct {
	images []domain.Image
	err    error
}

func (s *stubSearcher) SearchImages(_ context.Context, _ string, _ int) ([]domain.Image, error) {
	return s.images, s.err
}

type testEnv struct {
	knowledge *services.KnowledgeService
	progress  *services.ProgressService
	media     *services.MediaService
	searcher  *stubSearcher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dataset, err := lessons.Decode(strings.NewReader(testLessons))
	require.NoError(t, err)

	knowledge := services.NewKnowledgeService(dataset)
	progress := services.NewProgressService(memory.NewProgressStore(), dataset.Lessons)
	knowledge.SetAwarder(progress)

	searcher := &stubSearcher{}
	media, err := services.NewMediaService(searcher, domain.DefaultMediaConfig())
	require.NoError(t, err)

	return &testEnv{
		knowledge: knowledge,
		progress:  progress,
		media:     media,
		searcher:  searcher,
	}
}

func (e *testEnv) server(t *testing.T) *Server {
	t.Helper()

	server, err := NewServer(&Ports{
		Knowledge: e.knowledge,
		Progress:  e.progress,
		Media:     e.media,
	})
	require.NoError(t, err)
	return server
}
