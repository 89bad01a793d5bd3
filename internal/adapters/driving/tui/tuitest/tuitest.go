// Package tuitest builds small real services for TUI tests.
package tuitest

import (
	"github.com/custodia-labs/khareeta/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/khareeta/internal/core/domain"
	"github.com/custodia-labs/khareeta/internal/core/services"
)

// Dataset returns two lessons with three points.
func Dataset() *domain.Dataset {
	return &domain.Dataset{
		Lessons: []domain.LessonRecord{
			{
				ID:         "resources",
				Title:      "موارد مصر",
				Objectives: []string{"يتعرف على أماكن الثروة المعدنية"},
				Points: []domain.PointOfInterest{
					{
						ID: "sukari", Name: "منجم السكري", Type: domain.CategoryMinerals,
						Lat: 24.95, Lng: 34.7, Info: "أكبر منجم ذهب في مصر",
					},
					{
						ID: "high-dam", Name: "السد العالي", Type: domain.CategoryProjects,
						Lat: 23.97, Lng: 32.88, FunFact: "بحيرة ناصر خلف السد",
					},
				},
			},
			{
				ID:    "water",
				Title: "مصادر المياه",
				Points: []domain.PointOfInterest{
					{
						ID: "nile", Name: "نهر النيل", Type: domain.CategoryFreshWater,
						Lat: 30.0, Lng: 31.2, QuickFacts: []string{"أطول أنهار العالم"},
					},
				},
			},
		},
	}
}

// Services returns a knowledge service over Dataset whose rewards go to an
// in-memory progress service.
func Services() (*services.KnowledgeService, *services.ProgressService) {
	dataset := Dataset()
	knowledge := services.NewKnowledgeService(dataset)
	progress := services.NewProgressService(memory.NewProgressStore(), dataset.Lessons)
	knowledge.SetAwarder(progress)
	return knowledge, progress
}
