package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	imagesLocal bool
	imagesCount int
	imagesJSON  bool
)

var imagesCmd = &cobra.Command{
	Use:   "images <point-id>",
	Short: "Find images of a map point",
	Long: `Searches Openverse for child-safe images of a point. With --local,
picks the best matching images from the lessons' own image list instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runImages,
}

func init() {
	imagesCmd.Flags().BoolVar(&imagesLocal, "local", false, "pick from the lessons' local images")
	imagesCmd.Flags().IntVarP(&imagesCount, "count", "n", 4, "number of local images to pick")
	imagesCmd.Flags().BoolVar(&imagesJSON, "json", false, "output images as JSON")
	rootCmd.AddCommand(imagesCmd)
}

func runImages(cmd *cobra.Command, args []string) error {
	if knowledgeService == nil || mediaService == nil {
		return errors.New("knowledge and media services not configured")
	}

	point, err := knowledgeService.Point(args[0])
	if err != nil {
		return err
	}

	if imagesLocal {
		picks := mediaService.LocalImages(point, localImagePool(), imagesCount)
		if imagesJSON {
			return printJSON(cmd, picks)
		}
		if len(picks) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No local images.")
		}
		for _, p := range picks {
			fmt.Fprintln(cmd.OutOrStdout(), p)
		}
		return nil
	}

	images, err := mediaService.PointImages(cmd.Context(), point)
	if err != nil {
		return err
	}
	if imagesJSON {
		return printJSON(cmd, images)
	}
	if len(images) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No images found.")
		return nil
	}
	for _, img := range images {
		fmt.Fprintln(cmd.OutOrStdout(), img.Src)
		if img.Source != "" && img.Source != img.Src {
			fmt.Fprintf(cmd.OutOrStdout(), "  from %s\n", img.Source)
		}
		if img.Creator != "" || img.License != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "  by %s (%s)\n", img.Creator, img.License)
		}
	}
	return nil
}

// localImagePool collects the image lists of the lessons in scope.
func localImagePool() []string {
	scope := knowledgeService.Scope()
	var pool []string
	for _, summary := range knowledgeService.Lessons() {
		if scope != "" && summary.ID != scope {
			continue
		}
		lesson, err := knowledgeService.Lesson(summary.ID)
		if err != nil {
			continue
		}
		pool = append(pool, lesson.Images...)
	}
	return pool
}
