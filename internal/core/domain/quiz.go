package domain

// PointQuizReward is the number of points a correct point quiz answer earns.
const PointQuizReward = 5

// PointQuiz asks which category a point belongs to.
type PointQuiz struct {
	PointID    string   `json:"pointId"`
	PointName  string   `json:"pointName"`
	CorrectKey string   `json:"-"`
	Options    []string `json:"options"`
}

// PointQuizAnswer is the recorded first answer to a point quiz.
type PointQuizAnswer struct {
	PointID string `json:"pointId"`
	Choice  string `json:"choice"`
	Correct bool   `json:"correct"`
	Awarded int    `json:"awarded"`
}

// MCQResult is the graded outcome of a lesson's multiple-choice quiz.
type MCQResult struct {
	LessonID string         `json:"lessonId"`
	Answers  map[string]int `json:"answers"`
	Score    int            `json:"score"`
	Max      int            `json:"max"`
	Perfect  bool           `json:"perfect"`
	Awarded  int            `json:"awarded"`
}
