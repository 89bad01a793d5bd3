package domain

import "time"

// Theme is the UI colour theme stored with the progress snapshot.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// LessonProgress is a child's progress on one lesson. MCQRewarded records
// that the full-marks reward has been paid.
type LessonProgress struct {
	MCQ         map[string]int  `json:"mcq"`
	MCQScore    int             `json:"mcqScore"`
	MCQRewarded bool            `json:"mcqRewarded,omitempty"`
	MapClick    map[string]bool `json:"mapClick"`
	Completed   bool            `json:"completed"`
}

// LessonProgressPatch updates selected fields of a LessonProgress.
// Nil fields are left unchanged.
type LessonProgressPatch struct {
	MCQ       map[string]int
	MCQScore  *int
	MapClick  map[string]bool
	Completed *bool
}

// Apply returns p with the patch applied.
func (patch LessonProgressPatch) Apply(p LessonProgress) LessonProgress {
	if patch.MCQ != nil {
		p.MCQ = patch.MCQ
	}
	if patch.MCQScore != nil {
		p.MCQScore = *patch.MCQScore
	}
	if patch.MapClick != nil {
		merged := make(map[string]bool, len(p.MapClick)+len(patch.MapClick))
		for k, v := range p.MapClick {
			merged[k] = v
		}
		for k, v := range patch.MapClick {
			merged[k] = v
		}
		p.MapClick = merged
	}
	if patch.Completed != nil {
		p.Completed = *patch.Completed
	}
	return p
}

// Progress is the persisted key-value snapshot of a child's progress.
// It is owned by the surrounding application, not the query engine.
type Progress struct {
	Points       int                       `json:"points"`
	Streak       int                       `json:"streak"`
	Theme        Theme                     `json:"theme"`
	Lessons      map[string]LessonProgress `json:"progress"`
	LastLessonID string                    `json:"lastLessonId"`

	// Revision changes on every save.
	Revision  string    `json:"revision"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewProgress returns the initial progress for the given lessons.
func NewProgress(lessons []LessonRecord) Progress {
	p := Progress{
		Theme:   ThemeLight,
		Lessons: make(map[string]LessonProgress, len(lessons)),
	}
	for i := range lessons {
		p.Lessons[lessons[i].ID] = LessonProgress{
			MCQ:      map[string]int{},
			MapClick: map[string]bool{},
		}
	}
	if len(lessons) > 0 {
		p.LastLessonID = lessons[0].ID
	}
	return p
}

// PointsPerLevel is the number of points needed to gain a level.
const PointsPerLevel = 50

// LevelFromPoints returns the level for a points total. Level 1 starts at 0.
func LevelFromPoints(points int) int {
	if points < 0 {
		points = 0
	}
	return points/PointsPerLevel + 1
}

// LevelProgress is the progress inside the current level.
type LevelProgress struct {
	InLevel int `json:"inLevel"`
	Need    int `json:"need"`
	Pct     int `json:"pct"`
}

// ProgressToNext returns how far points are into the current level.
func ProgressToNext(points int) LevelProgress {
	if points < 0 {
		points = 0
	}
	in := points % PointsPerLevel
	return LevelProgress{
		InLevel: in,
		Need:    PointsPerLevel,
		Pct:     (in*100 + PointsPerLevel/2) / PointsPerLevel,
	}
}

// LevelTitle returns the title for a level.
func LevelTitle(level int) string {
	switch {
	case level >= 8:
		return "أسطورة الخرائط 👑"
	case level >= 6:
		return "خبير كنوز مصر 🏺"
	case level >= 4:
		return "مستكشف محترف 🧭"
	case level >= 2:
		return "صديق الخريطة 🗺️"
	default:
		return "مستكشف صغير 🌟"
	}
}

// Badge is an achievement unlocked at a points threshold.
type Badge struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Need     int    `json:"need"`
	Icon     string `json:"icon"`
	Unlocked bool   `json:"unlocked"`
}

// DefaultBadges returns the badge definitions, all locked.
func DefaultBadges() []Badge {
	return []Badge{
		{ID: "b1", Name: "مستكشف صغير", Need: 20, Icon: "🌟"},
		{ID: "b2", Name: "رحّالة نشيط", Need: 50, Icon: "🧭"},
		{ID: "b3", Name: "جامع الكنوز", Need: 90, Icon: "🏺"},
		{ID: "b4", Name: "خبير الخريطة", Need: 140, Icon: "🗺️"},
	}
}

// BadgesFor returns the default badges with Unlocked set for points.
func BadgesFor(points int) []Badge {
	badges := DefaultBadges()
	for i := range badges {
		badges[i].Unlocked = points >= badges[i].Need
	}
	return badges
}

// Achievements summarises level and badges for a points total.
type Achievements struct {
	Points   int           `json:"points"`
	Level    int           `json:"level"`
	Title    string        `json:"title"`
	Progress LevelProgress `json:"progress"`
	Badges   []Badge       `json:"badges"`
}

// AchievementsFor computes achievements for a points total.
func AchievementsFor(points int) Achievements {
	level := LevelFromPoints(points)
	return Achievements{
		Points:   points,
		Level:    level,
		Title:    LevelTitle(level),
		Progress: ProgressToNext(points),
		Badges:   BadgesFor(points),
	}
}
