package domain

import "strings"

// LessonRecord is one static lesson of the dataset.
// Lessons are loaded once at start-up and never mutated afterwards.
// Any slice or string may be empty; an empty collection contributes
// nothing to the fact index.
type LessonRecord struct {
	// ID uniquely identifies the lesson within the dataset.
	ID string `yaml:"id" json:"id"`

	// Title is the human-readable lesson title.
	Title string `yaml:"title" json:"title"`

	// Objectives are the learning objectives of the lesson.
	Objectives []string `yaml:"objectives,omitempty" json:"objectives,omitempty"`

	// Sections are the lesson body, each a heading with bullets.
	Sections []Section `yaml:"sections,omitempty" json:"sections,omitempty"`

	// Points are the map points of interest shown with the lesson.
	Points []PointOfInterest `yaml:"points,omitempty" json:"points,omitempty"`

	// Quiz holds the multiple-choice questions of the lesson.
	Quiz []MCQQuestion `yaml:"quiz,omitempty" json:"quiz,omitempty"`

	// Images are local image paths used by the media picker.
	Images []string `yaml:"images,omitempty" json:"images,omitempty"`
}

// Section is a headed list of bullets within a lesson.
type Section struct {
	Heading string   `yaml:"heading" json:"heading"`
	Bullets []string `yaml:"bullets,omitempty" json:"bullets,omitempty"`
}

// PointOfInterest is a named, geolocated entity on the lesson map.
// Identity is ID, unique within the dataset.
type PointOfInterest struct {
	// ID uniquely identifies the point.
	ID string `yaml:"id" json:"id"`

	// Name is the display name.
	Name string `yaml:"name" json:"name"`

	// Type is the category key (see Category).
	Type string `yaml:"type" json:"type"`

	// Lat and Lng locate the point on the map.
	Lat float64 `yaml:"lat" json:"lat"`
	Lng float64 `yaml:"lng" json:"lng"`

	// Info is a short description. May be empty.
	Info string `yaml:"info,omitempty" json:"info,omitempty"`

	// Story is a narrative description. May be empty.
	Story string `yaml:"story,omitempty" json:"story,omitempty"`

	// EducationalContent is a longer explanation. May be empty.
	EducationalContent string `yaml:"educationalContent,omitempty" json:"educationalContent,omitempty"`

	// FunFact is a single fun fact. May be empty.
	FunFact string `yaml:"funFact,omitempty" json:"funFact,omitempty"`

	// QuickFacts are short facts shown as chips. May be empty.
	QuickFacts []string `yaml:"quickFacts,omitempty" json:"quickFacts,omitempty"`

	// Keywords are extra search terms. May be empty.
	Keywords []string `yaml:"keywords,omitempty" json:"keywords,omitempty"`

	// MediaQuery overrides the image search query. May be empty.
	MediaQuery string `yaml:"mediaQuery,omitempty" json:"mediaQuery,omitempty"`
}

// SearchableText returns the text a point is matched against in direct
// point search: name, descriptions, fun fact and keywords, skipping empties.
func (p PointOfInterest) SearchableText() string {
	parts := make([]string, 0, 5+len(p.Keywords))
	for _, s := range []string{p.Name, p.Info, p.Story, p.EducationalContent, p.FunFact} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	for _, k := range p.Keywords {
		if k != "" {
			parts = append(parts, k)
		}
	}
	return strings.Join(parts, " ")
}

// Summary returns the first non-empty description of the point.
func (p PointOfInterest) Summary() string {
	switch {
	case p.Info != "":
		return p.Info
	case p.Story != "":
		return p.Story
	default:
		return p.EducationalContent
	}
}

// SeedKey returns the identifier used to derive stable seeds for the point:
// its ID, else its name, else its type.
func (p PointOfInterest) SeedKey() string {
	switch {
	case p.ID != "":
		return p.ID
	case p.Name != "":
		return p.Name
	default:
		return p.Type
	}
}

// MCQQuestion is one multiple-choice question of a lesson quiz.
type MCQQuestion struct {
	ID       string   `yaml:"id" json:"id"`
	Question string   `yaml:"q" json:"q"`
	Options  []string `yaml:"options" json:"options"`
	Answer   int      `yaml:"answer" json:"answer"`
}

// LessonSummary is the id and title of a lesson, for listings.
type LessonSummary struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Points int    `json:"points"`
}

// Dataset is the full static lesson dataset.
type Dataset struct {
	Categories []Category     `yaml:"categories,omitempty" json:"categories,omitempty"`
	Lessons    []LessonRecord `yaml:"lessons" json:"lessons"`
}

// Points returns every point of the given lessons in lesson order.
func Points(lessons []LessonRecord) []PointOfInterest {
	var out []PointOfInterest
	for i := range lessons {
		out = append(out, lessons[i].Points...)
	}
	return out
}
