package domain

// Category describes a point type on the map legend.
type Category struct {
	Key   string `yaml:"key" json:"key"`
	Label string `yaml:"label" json:"label"`
	Emoji string `yaml:"emoji,omitempty" json:"emoji,omitempty"`
	Color string `yaml:"color,omitempty" json:"color,omitempty"`
}

// Category keys of the default legend.
const (
	CategoryMinerals       = "minerals"
	CategoryEnergyNonRenew = "energy_nonrenew"
	CategoryEnergyRenew    = "energy_renew"
	CategoryFreshWater     = "fresh"
	CategorySaltyWater     = "salty"
	CategoryProjects       = "projects"
)

// DefaultCategories returns the default map legend in display order.
func DefaultCategories() []Category {
	return []Category{
		{Key: CategoryMinerals, Label: "معادن", Emoji: "💎", Color: "#f59e0b"},
		{Key: CategoryEnergyNonRenew, Label: "طاقة غير متجددة", Emoji: "🛢️", Color: "#ef4444"},
		{Key: CategoryEnergyRenew, Label: "طاقة متجددة", Emoji: "☀️", Color: "#10b981"},
		{Key: CategoryFreshWater, Label: "مياه عذبة", Emoji: "💧", Color: "#3b82f6"},
		{Key: CategorySaltyWater, Label: "مياه مالحة", Emoji: "🌊", Color: "#0ea5e9"},
		{Key: CategoryProjects, Label: "مشروعات قومية", Emoji: "🏗️", Color: "#8b5cf6"},
	}
}

// Legend indexes categories by key while keeping their order.
type Legend struct {
	order []string
	byKey map[string]Category
}

// NewLegend builds a legend from categories. Later duplicates are ignored.
func NewLegend(categories []Category) *Legend {
	l := &Legend{byKey: make(map[string]Category, len(categories))}
	for _, c := range categories {
		if c.Key == "" {
			continue
		}
		if _, ok := l.byKey[c.Key]; ok {
			continue
		}
		l.order = append(l.order, c.Key)
		l.byKey[c.Key] = c
	}
	return l
}

// Keys returns the category keys in legend order.
func (l *Legend) Keys() []string {
	out := make([]string, len(l.order))
	copy(out, l.order)
	return out
}

// Label returns the display label for a key, falling back to the key itself.
func (l *Legend) Label(key string) string {
	if c, ok := l.byKey[key]; ok && c.Label != "" {
		return c.Label
	}
	return key
}

// Get returns the category for a key.
func (l *Legend) Get(key string) (Category, bool) {
	c, ok := l.byKey[key]
	return c, ok
}

// Categories returns the categories in legend order.
func (l *Legend) Categories() []Category {
	out := make([]Category, 0, len(l.order))
	for _, k := range l.order {
		out = append(out, l.byKey[k])
	}
	return out
}
