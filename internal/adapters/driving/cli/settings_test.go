package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/khareeta/internal/core/domain"
)

func TestSettingsCmd_Use(t *testing.T) {
	assert.Equal(t, "settings", settingsCmd.Use)
}

func TestSettingsCmd_HasSubcommands(t *testing.T) {
	names := make([]string, 0, len(settingsCmd.Commands()))
	for _, c := range settingsCmd.Commands() {
		names = append(names, c.Name())
	}

	assert.ElementsMatch(t, []string{"show", "set", "reset"}, names)
}

func TestSettingsCmd_ShowsDefaults(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "settings")

	require.NoError(t, err)
	assert.Contains(t, out, "Current Settings")
	assert.Contains(t, out, "query.fact_result_cap")
	assert.Contains(t, out, "media.openverse_base_url")
	assert.Contains(t, out, "(embedded)")
}

func TestSettingsCmd_Set(t *testing.T) {
	env := setupTestServices(t)

	out, err := execute(t, "settings", "set", "query.fact_result_cap", "9")
	require.NoError(t, err)
	assert.Contains(t, out, "query.fact_result_cap updated")

	s, err := env.settings.Get()
	require.NoError(t, err)
	assert.Equal(t, 9, s.Query.FactResultCap)

	out, err = execute(t, "settings", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "9")
}

func TestSettingsCmd_SetStopWords(t *testing.T) {
	env := setupTestServices(t)

	_, err := execute(t, "settings", "set", "query.stop_words", "في, من")
	require.NoError(t, err)

	s, err := env.settings.Get()
	require.NoError(t, err)
	assert.Equal(t, []string{"في", "من"}, s.Query.StopWords)
}

func TestSettingsCmd_SetInvalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "negative cap", key: "query.fact_result_cap", value: "-1"},
		{name: "not a number", key: "media.max_images", value: "many"},
		{name: "bad url", key: "media.openverse_base_url", value: "ftp://example.com"},
		{name: "unknown key", key: "query.magic", value: "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestServices(t)

			_, err := execute(t, "settings", "set", tt.key, tt.value)

			require.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestSettingsCmd_SetRequiresTwoArgs(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "settings", "set", "query.fact_result_cap")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 2 arg(s)")
}

func TestSettingsCmd_Reset(t *testing.T) {
	env := setupTestServices(t)
	require.NoError(t, env.settings.Set("query.fact_result_cap", "9"))

	out, err := execute(t, "settings", "reset")

	require.NoError(t, err)
	assert.Contains(t, out, "Settings restored to defaults.")
	s, err := env.settings.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultQueryConfig().FactResultCap, s.Query.FactResultCap)
}

func TestSettingValue_UnknownKey(t *testing.T) {
	defaults := domain.DefaultAppSettings()

	assert.Empty(t, settingValue(&defaults, "nope"))
	assert.Equal(t, "(embedded)", settingValue(&defaults, "lessons.path"))
}
