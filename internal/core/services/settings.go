package services

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/custodia-labs/khareeta/internal/core/domain"
	"github.com/custodia-labs/khareeta/internal/core/ports/driven"
	"github.com/custodia-labs/khareeta/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyFactResultCap    = "query.fact_result_cap"
	keyRelatedPointCap  = "query.related_point_cap"
	keyDirectSearchCap  = "query.direct_search_cap"
	keyWholePhraseBonus = "query.whole_phrase_bonus"
	keyPerTokenWeight   = "query.per_token_weight"
	keyMinTokenLength   = "query.min_token_length"
	keyStopWords        = "query.stop_words"
	keyImageCacheSize   = "media.image_cache_size"
	keyOpenverseBaseURL = "media.openverse_base_url"
	keyPageSize         = "media.page_size"
	keyMaxImages        = "media.max_images"
	keyLessonsPath      = "lessons.path"
)

// intKeys are the settings stored as positive integers.
var intKeys = map[string]bool{
	keyFactResultCap:    true,
	keyRelatedPointCap:  true,
	keyDirectSearchCap:  true,
	keyWholePhraseBonus: true,
	keyPerTokenWeight:   true,
	keyMinTokenLength:   true,
	keyImageCacheSize:   true,
	keyPageSize:         true,
	keyMaxImages:        true,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings. Missing or invalid values
// fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Query: domain.QueryConfig{
			FactResultCap:    s.getInt(keyFactResultCap, defaults.Query.FactResultCap),
			RelatedPointCap:  s.getInt(keyRelatedPointCap, defaults.Query.RelatedPointCap),
			DirectSearchCap:  s.getInt(keyDirectSearchCap, defaults.Query.DirectSearchCap),
			WholePhraseBonus: s.getInt(keyWholePhraseBonus, defaults.Query.WholePhraseBonus),
			PerTokenWeight:   s.getInt(keyPerTokenWeight, defaults.Query.PerTokenWeight),
			MinTokenLength:   s.getInt(keyMinTokenLength, defaults.Query.MinTokenLength),
			StopWords:        s.getStringSlice(keyStopWords, defaults.Query.StopWords),
		},
		Media: domain.MediaConfig{
			ImageCacheSize:   s.getInt(keyImageCacheSize, defaults.Media.ImageCacheSize),
			OpenverseBaseURL: s.getURL(keyOpenverseBaseURL, defaults.Media.OpenverseBaseURL),
			PageSize:         s.getInt(keyPageSize, defaults.Media.PageSize),
			MaxImages:        s.getInt(keyMaxImages, defaults.Media.MaxImages),
		},
		LessonsPath: s.configStore.GetString(keyLessonsPath),
	}
	if !settings.Query.ValidWeights() {
		settings.Query.WholePhraseBonus = defaults.Query.WholePhraseBonus
		settings.Query.PerTokenWeight = defaults.Query.PerTokenWeight
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := []struct {
		key   string
		value any
	}{
		{keyFactResultCap, settings.Query.FactResultCap},
		{keyRelatedPointCap, settings.Query.RelatedPointCap},
		{keyDirectSearchCap, settings.Query.DirectSearchCap},
		{keyWholePhraseBonus, settings.Query.WholePhraseBonus},
		{keyPerTokenWeight, settings.Query.PerTokenWeight},
		{keyMinTokenLength, settings.Query.MinTokenLength},
		{keyStopWords, settings.Query.StopWords},
		{keyImageCacheSize, settings.Media.ImageCacheSize},
		{keyOpenverseBaseURL, settings.Media.OpenverseBaseURL},
		{keyPageSize, settings.Media.PageSize},
		{keyMaxImages, settings.Media.MaxImages},
		{keyLessonsPath, settings.LessonsPath},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// Set parses value for key and stores it.
// Stop words are comma separated.
func (s *SettingsService) Set(key, value string) error {
	value = strings.TrimSpace(value)

	switch {
	case intKeys[key]:
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: %s must be a positive integer, got %q", domain.ErrInvalidInput, key, value)
		}
		if err := s.checkWeights(key, n); err != nil {
			return err
		}
		return s.set(key, n)
	case key == keyStopWords:
		var words []string
		for _, w := range strings.Split(value, ",") {
			if w = strings.TrimSpace(w); w != "" {
				words = append(words, w)
			}
		}
		if words == nil {
			words = []string{}
		}
		return s.set(key, words)
	case key == keyOpenverseBaseURL:
		if !validBaseURL(value) {
			return fmt.Errorf("%w: %s must be an http(s) URL, got %q", domain.ErrInvalidInput, key, value)
		}
		return s.set(key, strings.TrimRight(value, "/"))
	case key == keyLessonsPath:
		return s.set(key, value)
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
}

// checkWeights rejects a weight change that would let a single token
// outweigh a whole-phrase match.
func (s *SettingsService) checkWeights(key string, n int) error {
	if key != keyPerTokenWeight && key != keyWholePhraseBonus {
		return nil
	}
	current, err := s.Get()
	if err != nil {
		return err
	}
	q := current.Query
	if key == keyPerTokenWeight {
		q.PerTokenWeight = n
	} else {
		q.WholePhraseBonus = n
	}
	if !q.ValidWeights() {
		return fmt.Errorf("%w: %s (%d) must exceed %s (%d)", domain.ErrInvalidInput,
			keyWholePhraseBonus, q.WholePhraseBonus, keyPerTokenWeight, q.PerTokenWeight)
	}
	return nil
}

func (s *SettingsService) set(key string, value any) error {
	if err := s.configStore.Set(key, value); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Keys returns the recognised setting keys in display order.
func (s *SettingsService) Keys() []string {
	return []string{
		keyFactResultCap,
		keyRelatedPointCap,
		keyDirectSearchCap,
		keyWholePhraseBonus,
		keyPerTokenWeight,
		keyMinTokenLength,
		keyStopWords,
		keyImageCacheSize,
		keyOpenverseBaseURL,
		keyPageSize,
		keyMaxImages,
		keyLessonsPath,
	}
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getStringSlice(key string, defaultVal []string) []string {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	val := s.configStore.GetStringSlice(key)
	if val == nil {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getURL(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if !validBaseURL(val) {
		return defaultVal
	}
	return val
}

func validBaseURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
