package services

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/khareeta/internal/core/domain"
	"github.com/custodia-labs/khareeta/internal/logger"
	"github.com/custodia-labs/khareeta/internal/textmatch"
)

// BuildIndex flattens lessons into searchable facts.
//
// Lessons are walked in order: objectives, then section bullets, then for
// each point its description, quick facts and fun fact. Absent optional
// fields contribute no records. Inputs are not modified.
//
// The legend supplies category labels used as contextual hints. A nil
// legend falls back to the raw category key.
func BuildIndex(lessons []domain.LessonRecord, legend *domain.Legend) []domain.IndexedFact {
	if legend == nil {
		legend = domain.NewLegend(nil)
	}

	var facts []domain.IndexedFact
	lessonKeys := make(map[string]bool)
	pointKeys := make(map[string]bool)

	for i := range lessons {
		lesson := &lessons[i]
		lk := uniqueKey("lesson", lesson.ID, lessonKeys)

		for idx, objective := range lesson.Objectives {
			facts = append(facts, domain.IndexedFact{
				ID:             fmt.Sprintf("obj-%s-%d", lk, idx),
				Kind:           domain.FactObjective,
				Title:          lesson.Title,
				Text:           objective,
				LessonID:       lesson.ID,
				LessonTitle:    lesson.Title,
				NormalizedText: textmatch.Normalize(joinText(objective, lesson.Title)),
			})
		}

		for s, section := range lesson.Sections {
			for b, bullet := range section.Bullets {
				facts = append(facts, domain.IndexedFact{
					ID:             fmt.Sprintf("sec-%s-%d-%d", lk, s, b),
					Kind:           domain.FactSectionBullet,
					Title:          lesson.Title,
					Heading:        section.Heading,
					Text:           bullet,
					LessonID:       lesson.ID,
					LessonTitle:    lesson.Title,
					NormalizedText: textmatch.Normalize(joinText(section.Heading, bullet, lesson.Title)),
				})
			}
		}

		for _, point := range lesson.Points {
			key := uniqueKey("point", point.ID, pointKeys)
			facts = append(facts, pointFacts(lesson, point, key, legend)...)
		}
	}

	logger.Debug("Index built: %d facts from %d lessons", len(facts), len(lessons))
	return facts
}

// pointFacts returns the records contributed by one point.
func pointFacts(
	lesson *domain.LessonRecord, point domain.PointOfInterest, key string, legend *domain.Legend,
) []domain.IndexedFact {
	tags := pointTags(point, legend)
	base := func(id string, kind domain.FactKind, text, hint string) domain.IndexedFact {
		return domain.IndexedFact{
			ID:             id,
			Kind:           kind,
			Title:          point.Name,
			Text:           text,
			LessonID:       lesson.ID,
			LessonTitle:    lesson.Title,
			LinkedPointID:  point.ID,
			NormalizedText: textmatch.Normalize(hint),
		}
	}

	facts := make([]domain.IndexedFact, 0, 2+len(point.QuickFacts))
	facts = append(facts, base(
		"point-"+key,
		domain.FactPointInfo,
		point.Summary(),
		joinText(point.Name, point.Info, point.Story, point.EducationalContent, point.FunFact, tags),
	))
	for i, fact := range point.QuickFacts {
		facts = append(facts, base(
			fmt.Sprintf("fact-%s-%d", key, i),
			domain.FactQuickFact,
			fact,
			joinText(fact, point.Name, tags),
		))
	}
	if point.FunFact != "" {
		facts = append(facts, base(
			"fun-"+key,
			domain.FactFunFact,
			point.FunFact,
			joinText(point.FunFact, point.Name, tags),
		))
	}
	return facts
}

// pointTags joins the point name, its category label and its keywords.
func pointTags(point domain.PointOfInterest, legend *domain.Legend) string {
	parts := []string{point.Name, legend.Label(point.Type)}
	parts = append(parts, point.Keywords...)
	return joinText(parts...)
}

// uniqueKey returns id, or id with the lowest "~n" suffix not yet in seen,
// and records the returned key.
func uniqueKey(kind, id string, seen map[string]bool) string {
	key := id
	for n := 1; seen[key]; n++ {
		key = fmt.Sprintf("%s~%d", id, n)
	}
	seen[key] = true
	if key != id {
		logger.Warn("Duplicate %s id %q, indexing as %q", kind, id, key)
	}
	return key
}

// joinText joins the non-empty parts with a space.
func joinText(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}
