package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/khareeta/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change query caps, scoring weights, stop words, image search
and the lesson dataset path.

Settings are stored in ~/.khareeta/config.toml.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Long: `Change a single setting. Numeric settings must be positive integers.
Stop words are given as a comma separated list.`,
	Example: `  khareeta settings set query.fact_result_cap 8
  khareeta settings set query.stop_words "في,من,على"`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore default settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsReset,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsResetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Current Settings")
	fmt.Fprintln(cmd.OutOrStdout(), "================")
	fmt.Fprintln(cmd.OutOrStdout())

	for _, key := range settingsService.Keys() {
		fmt.Fprintf(cmd.OutOrStdout(), "  %-26s %s\n", key, settingValue(settings, key))
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	if err := settingsService.Set(args[0], args[1]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s updated\n", args[0])
	return nil
}

func runSettingsReset(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	defaults := settingsService.GetDefaults()
	if err := settingsService.Save(&defaults); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Settings restored to defaults.")
	return nil
}

// settingValue renders the value of key from settings.
func settingValue(s *domain.AppSettings, key string) string {
	switch key {
	case "query.fact_result_cap":
		return fmt.Sprint(s.Query.FactResultCap)
	case "query.related_point_cap":
		return fmt.Sprint(s.Query.RelatedPointCap)
	case "query.direct_search_cap":
		return fmt.Sprint(s.Query.DirectSearchCap)
	case "query.whole_phrase_bonus":
		return fmt.Sprint(s.Query.WholePhraseBonus)
	case "query.per_token_weight":
		return fmt.Sprint(s.Query.PerTokenWeight)
	case "query.min_token_length":
		return fmt.Sprint(s.Query.MinTokenLength)
	case "query.stop_words":
		return strings.Join(s.Query.StopWords, ",")
	case "media.image_cache_size":
		return fmt.Sprint(s.Media.ImageCacheSize)
	case "media.openverse_base_url":
		return s.Media.OpenverseBaseURL
	case "media.page_size":
		return fmt.Sprint(s.Media.PageSize)
	case "media.max_images":
		return fmt.Sprint(s.Media.MaxImages)
	case "lessons.path":
		if s.LessonsPath == "" {
			return "(embedded)"
		}
		return s.LessonsPath
	default:
		return ""
	}
}
