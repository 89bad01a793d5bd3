// Package cli provides the cobra command tree of the khareeta binary.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/khareeta/internal/core/ports/driving"
	"github.com/custodia-labs/khareeta/internal/logger"
)

// Services bundles the driving ports the commands use.
type Services struct {
	Knowledge driving.KnowledgeService
	Progress  driving.ProgressService
	Media     driving.MediaService
	Settings  driving.SettingsService
}

// Options carries the persistent flags to the bootstrap function.
type Options struct {
	// DataDir overrides ~/.khareeta.
	DataDir string

	// LessonsPath overrides the lessons.path setting.
	LessonsPath string
}

// Bootstrap builds the services once flags are parsed. The returned
// cleanup function runs when the command finishes.
type Bootstrap func(ctx context.Context, opts Options) (*Services, func(), error)

var (
	version   = "dev"
	bootstrap Bootstrap
	cleanup   func()

	knowledgeService driving.KnowledgeService
	progressService  driving.ProgressService
	mediaService     driving.MediaService
	settingsService  driving.SettingsService

	verbose     bool
	dataDir     string
	lessonsPath string
	lessonScope string
)

var rootCmd = &cobra.Command{
	Use:   "khareeta",
	Short: "Ask questions about Egypt's geography lessons",
	Long: `Khareeta answers children's questions about Egypt's geography lessons.

It indexes the lesson objectives, sections and map points, ranks the facts
that best match a question and keeps track of visited points, missions,
quizzes and earned points.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (default ~/.khareeta)")
	rootCmd.PersistentFlags().StringVar(&lessonsPath, "lessons", "", "path to a YAML lesson dataset")
	rootCmd.PersistentFlags().StringVar(&lessonScope, "lesson", "", "lesson id to scope queries to (default all lessons)")
	cobra.OnFinalize(runCleanup)
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetBootstrap sets the function that builds services before a command runs.
func SetBootstrap(fn Bootstrap) {
	bootstrap = fn
}

// SetServices injects services directly, bypassing the bootstrap.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	knowledgeService = s.Knowledge
	progressService = s.Progress
	mediaService = s.Media
	settingsService = s.Settings
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with ctx, which commands receive
// through cmd.Context().
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if knowledgeService == nil && bootstrap != nil {
		services, done, err := bootstrap(cmd.Context(), Options{
			DataDir:     dataDir,
			LessonsPath: lessonsPath,
		})
		if err != nil {
			return err
		}
		SetServices(services)
		cleanup = done
	}

	if lessonScope != "" {
		if knowledgeService == nil {
			return errors.New("knowledge service not configured")
		}
		if err := knowledgeService.SelectLesson(lessonScope); err != nil {
			return fmt.Errorf("select lesson: %w", err)
		}
	}
	return nil
}

func runCleanup() {
	if cleanup == nil {
		return
	}
	cleanup()
	cleanup = nil
	SetServices(nil)
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
