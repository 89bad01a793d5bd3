package domain

import "fmt"

// MissionTemplate is a declarative goal: visit Target points of Category.
type MissionTemplate struct {
	ID       string `yaml:"id" json:"id"`
	Category string `yaml:"category" json:"category"`
	Target   int    `yaml:"target" json:"target"`
	Reward   int    `yaml:"reward" json:"reward"`

	// Singular and Plural are label formats; Plural takes the count.
	Singular string `yaml:"singular" json:"singular"`
	Plural   string `yaml:"plural" json:"plural"`
}

// Label renders the template label for count.
func (t MissionTemplate) Label(count int) string {
	if count == 1 || t.Plural == "" {
		return t.Singular
	}
	return fmt.Sprintf(t.Plural, count)
}

// Mission is a template resolved against the points of the current scope.
type Mission struct {
	ID       string `json:"id"`
	Category string `json:"category"`

	// Count is the number of distinct visits needed: min(target, available).
	Count  int    `json:"count"`
	Reward int    `json:"reward"`
	Label  string `json:"label"`
}

// MissionStatus is a mission with the session's progress towards it.
type MissionStatus struct {
	Mission
	Visited   int  `json:"visited"`
	Completed bool `json:"completed"`
}

// DefaultMissionTemplates returns the built-in mission templates.
func DefaultMissionTemplates() []MissionTemplate {
	return []MissionTemplate{
		{
			ID: "m-energy", Category: CategoryEnergyRenew, Target: 3, Reward: 15,
			Singular: "اكتشف موقع طاقة متجددة", Plural: "اكتشف %d مواقع طاقة متجددة",
		},
		{
			ID: "m-water", Category: CategoryFreshWater, Target: 2, Reward: 10,
			Singular: "زور موقع مياه عذبة", Plural: "زور %d مواقع مياه عذبة",
		},
		{
			ID: "m-projects", Category: CategoryProjects, Target: 1, Reward: 10,
			Singular: "اعرف مكان مشروع قومي واحد", Plural: "اعرف %d مشروعات قومية",
		},
		{
			ID: "m-minerals", Category: CategoryMinerals, Target: 2, Reward: 10,
			Singular: "اكتشف معدن مهم", Plural: "اكتشف %d معادن مهمة",
		},
	}
}

// VisitResult is the outcome of recording a point visit.
type VisitResult struct {
	PointID string `json:"pointId"`

	// FirstVisit is false when the point was already visited this session.
	FirstVisit bool `json:"firstVisit"`

	// Visited is the number of distinct points visited this session.
	Visited int `json:"visited"`

	// Completed lists missions completed by this visit.
	Completed []Mission `json:"completed"`

	// Awarded is the total reward of Completed.
	Awarded int `json:"awarded"`
}
