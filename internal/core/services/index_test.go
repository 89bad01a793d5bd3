package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/khareeta/internal/core/domain"
)

func TestBuildIndex_OrderAndIDs(t *testing.T) {
	facts := BuildIndex(testLessons(), domain.NewLegend(domain.DefaultCategories()))

	ids := make([]string, len(facts))
	for i, f := range facts {
		ids[i] = f.ID
	}
	assert.Equal(t, []string{
		"obj-resources-0",
		"sec-resources-0-0",
		"sec-resources-0-1",
		"point-gold_sukari",
		"fact-gold_sukari-0",
		"fun-gold_sukari",
		"point-benban",
		"point-zafarana",
		"point-nile",
		"point-nasser",
		"point-red_sea",
	}, ids)
}

func TestBuildIndex_Kinds(t *testing.T) {
	facts := BuildIndex(testLessons(), nil)
	byID := make(map[string]domain.IndexedFact, len(facts))
	for _, f := range facts {
		byID[f.ID] = f
	}

	tests := []struct {
		id      string
		kind    domain.FactKind
		title   string
		text    string
		linked  string
		heading string
	}{
		{"obj-resources-0", domain.FactObjective, "ثروات مصر", "تعرف على الثروات المعدنية", "", ""},
		{"sec-resources-0-1", domain.FactSectionBullet, "ثروات مصر", "الذهب معدن نفيس", "", "الذهب"},
		{"point-gold_sukari", domain.FactPointInfo, "Sukari Gold Mine", "Egypt's largest gold mine", "gold_sukari", ""},
		{"fact-gold_sukari-0", domain.FactQuickFact, "Sukari Gold Mine", "opened in 2009", "gold_sukari", ""},
		{"fun-gold_sukari", domain.FactFunFact, "Sukari Gold Mine", "gold never rusts", "gold_sukari", ""},
		{"point-zafarana", domain.FactPointInfo, "رياح الزعفرانة", "مزرعة رياح", "zafarana", ""},
		{"point-nasser", domain.FactPointInfo, "بحيرة ناصر", "بحيرة خلف السد العالي", "nasser", ""},
		{"point-red_sea", domain.FactPointInfo, "البحر الأحمر", "", "red_sea", ""},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			f, ok := byID[tt.id]
			require.True(t, ok)
			assert.Equal(t, tt.kind, f.Kind)
			assert.Equal(t, tt.title, f.Title)
			assert.Equal(t, tt.text, f.Text)
			assert.Equal(t, tt.linked, f.LinkedPointID)
			assert.Equal(t, tt.heading, f.Heading)
			assert.NotEmpty(t, f.NormalizedText)
		})
	}
}

func TestBuildIndex_NormalizedTextCarriesHints(t *testing.T) {
	facts := BuildIndex(testLessons(), domain.NewLegend(domain.DefaultCategories()))
	byID := make(map[string]domain.IndexedFact, len(facts))
	for _, f := range facts {
		byID[f.ID] = f
	}

	assert.Equal(t, "تعرف علي الثروات المعدنيه ثروات مصر", byID["obj-resources-0"].NormalizedText)
	assert.Equal(t,
		"gold never rusts sukari gold mine sukari gold mine معادن gold",
		byID["fun-gold_sukari"].NormalizedText)
	assert.Equal(t, "الذهب منجم السكري في الصحراء الشرقيه ثروات مصر", byID["sec-resources-0-0"].NormalizedText)
}

func TestBuildIndex_UnknownCategoryFallsBackToKey(t *testing.T) {
	lessons := []domain.LessonRecord{{
		ID:     "l",
		Points: []domain.PointOfInterest{{ID: "p", Name: "Dahab", Type: "reefs"}},
	}}

	facts := BuildIndex(lessons, domain.NewLegend(domain.DefaultCategories()))

	require.Len(t, facts, 1)
	assert.Equal(t, "dahab dahab reefs", facts[0].NormalizedText)
}

func TestBuildIndex_ToleratesEmptyRecords(t *testing.T) {
	facts := BuildIndex([]domain.LessonRecord{{ID: "empty"}, {}}, nil)
	assert.Empty(t, facts)

	assert.Empty(t, BuildIndex(nil, nil))
}

func TestBuildIndex_UniqueIDsWithDuplicatePoints(t *testing.T) {
	lessons := []domain.LessonRecord{
		{ID: "a", Points: []domain.PointOfInterest{{ID: "nile", Name: "Nile", QuickFacts: []string{"long"}}}},
		{ID: "b", Points: []domain.PointOfInterest{{ID: "nile", Name: "Nile", QuickFacts: []string{"old"}}}},
	}

	facts := BuildIndex(lessons, nil)

	seen := make(map[string]bool)
	for _, f := range facts {
		assert.False(t, seen[f.ID], "duplicate id %s", f.ID)
		seen[f.ID] = true
		assert.Equal(t, "nile", f.LinkedPointID)
	}
	assert.True(t, seen["point-nile~1"])
	assert.True(t, seen["fact-nile~1-0"])
}

func TestBuildIndex_SuffixSkipsLiteralIDs(t *testing.T) {
	lessons := []domain.LessonRecord{{
		ID: "a",
		Points: []domain.PointOfInterest{
			{ID: "x~1", Name: "One"},
			{ID: "x", Name: "Two"},
			{ID: "x", Name: "Three"},
		},
	}}

	facts := BuildIndex(lessons, nil)

	ids := make([]string, 0, len(facts))
	for _, f := range facts {
		ids = append(ids, f.ID)
	}
	assert.Equal(t, []string{"point-x~1", "point-x", "point-x~2"}, ids)
}

func TestBuildIndex_UniqueIDsWithDuplicateLessons(t *testing.T) {
	lessons := []domain.LessonRecord{
		{ID: "a", Title: "First", Objectives: []string{"one"}, Sections: []domain.Section{{Heading: "h", Bullets: []string{"b"}}}},
		{ID: "a", Title: "Second", Objectives: []string{"two"}, Sections: []domain.Section{{Heading: "h", Bullets: []string{"c"}}}},
	}

	facts := BuildIndex(lessons, nil)

	seen := make(map[string]bool)
	for _, f := range facts {
		assert.False(t, seen[f.ID], "duplicate id %s", f.ID)
		seen[f.ID] = true
		assert.Equal(t, "a", f.LessonID)
	}
	assert.True(t, seen["obj-a~1-0"])
	assert.True(t, seen["sec-a~1-0-0"])
}

func TestBuildIndex_DoesNotMutateInput(t *testing.T) {
	lessons := testLessons()
	before := testLessons()

	_ = BuildIndex(lessons, nil)

	assert.Equal(t, before, lessons)
}

func TestBuildIndex_Deterministic(t *testing.T) {
	legend := domain.NewLegend(domain.DefaultCategories())
	assert.Equal(t, BuildIndex(testLessons(), legend), BuildIndex(testLessons(), legend))
}
