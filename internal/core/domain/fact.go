package domain

// FactKind labels where an indexed fact came from.
type FactKind string

// Fact kinds, in index build order.
const (
	FactObjective     FactKind = "objective"
	FactSectionBullet FactKind = "section-bullet"
	FactPointInfo     FactKind = "point-info"
	FactQuickFact     FactKind = "quick-fact"
	FactFunFact       FactKind = "fun-fact"
)

// IsValid returns true if the kind is recognised.
func (k FactKind) IsValid() bool {
	switch k {
	case FactObjective, FactSectionBullet, FactPointInfo, FactQuickFact, FactFunFact:
		return true
	default:
		return false
	}
}

// Label returns the Arabic label shown to children for the kind.
func (k FactKind) Label() string {
	switch k {
	case FactObjective:
		return "هدف تعليمي"
	case FactSectionBullet:
		return "من الدرس"
	case FactPointInfo:
		return "نقطة على الخريطة"
	case FactQuickFact:
		return "معلومة سريعة"
	case FactFunFact:
		return "حقيقة ممتعة"
	default:
		return string(k)
	}
}

// IndexedFact is one searchable record derived from the lesson dataset.
type IndexedFact struct {
	// ID is unique within one index build.
	ID string `json:"id"`

	// Kind is the provenance of the record.
	Kind FactKind `json:"kind"`

	// Title is the human label (lesson title or point name).
	Title string `json:"title"`

	// Heading is the section heading for section bullets.
	Heading string `json:"heading,omitempty"`

	// Text is the indexable content shown to the user.
	Text string `json:"text"`

	// LessonID and LessonTitle identify the source lesson.
	LessonID    string `json:"lessonId"`
	LessonTitle string `json:"lessonTitle"`

	// LinkedPointID is a non-owning reference to a PointOfInterest.
	// Empty for objectives and section bullets.
	LinkedPointID string `json:"linkedPointId,omitempty"`

	// NormalizedText is the cached normalized form of Text plus its
	// contextual hints, used for scoring.
	NormalizedText string `json:"-"`
}

// ScoredFact is a fact with the score it received for a query.
type ScoredFact struct {
	IndexedFact
	Score int `json:"score"`
}

// ScoredPoint is a point with the score it received for a query.
type ScoredPoint struct {
	Point PointOfInterest `json:"point"`
	Score int             `json:"score"`
}
