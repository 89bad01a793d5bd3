package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/khareeta/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/khareeta/internal/core/domain"
)

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAppSettings(), *settings)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("query.fact_result_cap", int64(10))
	_ = store.Set("query.stop_words", []any{"من", "في"})
	_ = store.Set("media.openverse_base_url", "http://localhost:8080/v1")
	_ = store.Set("lessons.path", "/data/lessons.yaml")

	settings, err := NewSettingsService(store).Get()

	require.NoError(t, err)
	assert.Equal(t, 10, settings.Query.FactResultCap)
	assert.Equal(t, []string{"من", "في"}, settings.Query.StopWords)
	assert.Equal(t, "http://localhost:8080/v1", settings.Media.OpenverseBaseURL)
	assert.Equal(t, "/data/lessons.yaml", settings.LessonsPath)
}

func TestSettingsService_Get_InvalidValuesReturnDefaults(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("query.fact_result_cap", -3)
	_ = store.Set("query.per_token_weight", "heavy")
	_ = store.Set("media.openverse_base_url", "ftp://example.com")

	settings, err := NewSettingsService(store).Get()

	require.NoError(t, err)
	defaults := domain.DefaultAppSettings()
	assert.Equal(t, defaults.Query.FactResultCap, settings.Query.FactResultCap)
	assert.Equal(t, defaults.Query.PerTokenWeight, settings.Query.PerTokenWeight)
	assert.Equal(t, defaults.Media.OpenverseBaseURL, settings.Media.OpenverseBaseURL)
}

func TestSettingsService_Get_EmptyStopWordsAllowed(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("query.stop_words", []string{})

	settings, err := NewSettingsService(store).Get()

	require.NoError(t, err)
	assert.Empty(t, settings.Query.StopWords)
	assert.NotNil(t, settings.Query.StopWords)
}

func TestSettingsService_SaveRoundTrip(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)
	settings := domain.DefaultAppSettings()
	settings.Query.RelatedPointCap = 2
	settings.Media.MaxImages = 3
	settings.LessonsPath = "/srv/lessons.yaml"

	require.NoError(t, service.Save(&settings))

	loaded, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, settings, *loaded)
}

func TestSettingsService_Set(t *testing.T) {
	tests := []struct {
		key   string
		value string
		check func(t *testing.T, s *domain.AppSettings)
	}{
		{"query.direct_search_cap", "12", func(t *testing.T, s *domain.AppSettings) {
			assert.Equal(t, 12, s.Query.DirectSearchCap)
		}},
		{"query.stop_words", "من, في ,,على", func(t *testing.T, s *domain.AppSettings) {
			assert.Equal(t, []string{"من", "في", "على"}, s.Query.StopWords)
		}},
		{"media.openverse_base_url", "https://api.example.org/v1/", func(t *testing.T, s *domain.AppSettings) {
			assert.Equal(t, "https://api.example.org/v1", s.Media.OpenverseBaseURL)
		}},
		{"lessons.path", " /tmp/l.yaml ", func(t *testing.T, s *domain.AppSettings) {
			assert.Equal(t, "/tmp/l.yaml", s.LessonsPath)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			service := NewSettingsService(memory.NewConfigStore())

			require.NoError(t, service.Set(tt.key, tt.value))

			settings, err := service.Get()
			require.NoError(t, err)
			tt.check(t, settings)
		})
	}
}

func TestSettingsService_Set_Invalid(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	tests := []struct{ key, value string }{
		{"query.fact_result_cap", "zero"},
		{"query.fact_result_cap", "0"},
		{"media.openverse_base_url", "not a url"},
		{"search.mode", "hybrid"},
	}
	for _, tt := range tests {
		assert.ErrorIs(t, service.Set(tt.key, tt.value), domain.ErrInvalidInput, tt.key)
	}
}

func TestSettingsService_Set_WeightMustStayBelowBonus(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	err := service.Set("query.per_token_weight", "10")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	err = service.Set("query.whole_phrase_bonus", "2")
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, stored := store.Get("query.per_token_weight")
	assert.False(t, stored)

	require.NoError(t, service.Set("query.whole_phrase_bonus", "12"))
	require.NoError(t, service.Set("query.per_token_weight", "10"))
	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, 12, settings.Query.WholePhraseBonus)
	assert.Equal(t, 10, settings.Query.PerTokenWeight)
}

func TestSettingsService_Get_InvertedWeightsReturnDefaults(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("query.per_token_weight", 10)

	settings, err := NewSettingsService(store).Get()

	require.NoError(t, err)
	defaults := domain.DefaultQueryConfig()
	assert.Equal(t, defaults.WholePhraseBonus, settings.Query.WholePhraseBonus)
	assert.Equal(t, defaults.PerTokenWeight, settings.Query.PerTokenWeight)
}

func TestSettingsService_KeysAreSettable(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	for _, key := range service.Keys() {
		value := "3"
		switch key {
		case "query.stop_words":
			value = "من"
		case "media.openverse_base_url":
			value = "https://api.openverse.org/v1"
		case "query.whole_phrase_bonus":
			value = "9"
		}
		assert.NoError(t, service.Set(key, value), key)
	}
}

func TestSettingsService_GetDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())
	assert.Equal(t, domain.DefaultAppSettings(), service.GetDefaults())
}
