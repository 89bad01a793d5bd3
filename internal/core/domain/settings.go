package domain

// MediaConfig holds image search settings.
type MediaConfig struct {
	// ImageCacheSize bounds the LRU cache of image search results.
	ImageCacheSize int `json:"imageCacheSize"`

	// OpenverseBaseURL is the Openverse API root.
	OpenverseBaseURL string `json:"openverseBaseUrl"`

	// PageSize is the number of results requested per search.
	PageSize int `json:"pageSize"`

	// MaxImages caps the images returned per point.
	MaxImages int `json:"maxImages"`
}

// DefaultMediaConfig returns the built-in media configuration.
func DefaultMediaConfig() MediaConfig {
	return MediaConfig{
		ImageCacheSize:   64,
		OpenverseBaseURL: "https://api.openverse.org/v1",
		PageSize:         6,
		MaxImages:        4,
	}
}

// AppSettings aggregates all user-configurable settings.
type AppSettings struct {
	Query       QueryConfig `json:"query"`
	Media       MediaConfig `json:"media"`
	LessonsPath string      `json:"lessonsPath"`
}

// DefaultAppSettings returns settings with all defaults applied.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Query: DefaultQueryConfig(),
		Media: DefaultMediaConfig(),
	}
}
