package services

import (
	"context"
	"sync"

	"github.com/custodia-labs/khareeta/internal/core/domain"
)

// testLessons is a small two-lesson dataset.
func testLessons() []domain.LessonRecord {
	return []domain.LessonRecord{
		{
			ID:         "resources",
			Title:      "ثروات مصر",
			Objectives: []string{"تعرف على الثروات المعدنية"},
			Sections: []domain.Section{
				{Heading: "الذهب", Bullets: []string{"منجم السكري في الصحراء الشرقية", "الذهب معدن نفيس"}},
				{Heading: "الطاقة"},
			},
			Points: []domain.PointOfInterest{
				{
					ID: "gold_sukari", Name: "Sukari Gold Mine", Type: domain.CategoryMinerals,
					Info: "Egypt's largest gold mine", QuickFacts: []string{"opened in 2009"},
					FunFact: "gold never rusts", Keywords: []string{"gold"},
				},
				{
					ID: "benban", Name: "محطة بنبان", Type: domain.CategoryEnergyRenew,
					Info: "من أكبر محطات الطاقة الشمسية", Keywords: []string{"شمس"},
				},
				{ID: "zafarana", Name: "رياح الزعفرانة", Type: domain.CategoryEnergyRenew, Story: "مزرعة رياح"},
			},
			Quiz: []domain.MCQQuestion{
				{ID: "q1", Question: "أين منجم السكري؟", Options: []string{"الصحراء الشرقية", "الدلتا"}, Answer: 0},
				{ID: "q2", Question: "ما مصدر طاقة بنبان؟", Options: []string{"الرياح", "الشمس"}, Answer: 1},
			},
		},
		{
			ID:    "water",
			Title: "مياه مصر",
			Points: []domain.PointOfInterest{
				{ID: "nile", Name: "نهر النيل", Type: domain.CategoryFreshWater, Info: "أطول نهر في العالم"},
				{ID: "nasser", Name: "بحيرة ناصر", Type: domain.CategoryFreshWater, EducationalContent: "بحيرة خلف السد العالي"},
				{ID: "red_sea", Name: "البحر الأحمر", Type: domain.CategorySaltyWater},
			},
		},
	}
}

func testDataset() *domain.Dataset {
	return &domain.Dataset{Lessons: testLessons()}
}

// mockAwarder records awards.
type mockAwarder struct {
	mu     sync.Mutex
	awards []int
	err    error
}

func (m *mockAwarder) Award(_ context.Context, points int) (domain.Progress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return domain.Progress{}, m.err
	}
	m.awards = append(m.awards, points)
	total := 0
	for _, a := range m.awards {
		total += a
	}
	return domain.Progress{Points: total}, nil
}

func (m *mockAwarder) total() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for _, a := range m.awards {
		total += a
	}
	return total
}
