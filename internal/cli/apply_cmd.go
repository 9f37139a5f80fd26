package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/renoplan/renoplan/internal/cli/formatter"
)

const dateLayout = "2006-01-02"

// addSelectionFlags registers the template/exclusion flags shared by
// preview and apply.
func addSelectionFlags(fs *pflag.FlagSet, templateID *string, exclude *[]string) {
	fs.StringVar(templateID, "template", "", "template ID")
	fs.StringSliceVar(exclude, "exclude", nil, "optional task IDs to exclude")
}

func newPreviewCmd(app *App) *cobra.Command {
	var templateID string
	var exclude []string
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Preview metrics for a template under an exclusion set",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Apply.Preview(context.Background(), templateID, exclude)
			if err != nil {
				return err
			}

			m := result.Metrics
			fmt.Println(formatter.Header("Preview"))
			fmt.Printf("  Phases:   %d\n", m.PhaseCount)
			fmt.Printf("  Packages: %d\n", m.PackageCount)
			fmt.Printf("  Tasks:    %d\n", m.TaskCount)
			fmt.Printf("  Duration: %s\n", formatter.FormatDays(m.TotalDays))
			fmt.Printf("  Cost:     %s\n", formatter.FormatCents(m.TotalCost))

			if len(result.Warnings) > 0 {
				fmt.Println()
				for _, w := range result.Warnings {
					fmt.Println("  " + formatter.Warn(w))
				}
			}
			return nil
		},
	}
	addSelectionFlags(cmd.Flags(), &templateID, &exclude)
	_ = cmd.MarkFlagRequired("template")
	return cmd
}

func newApplyCmd(app *App) *cobra.Command {
	var templateID, projectID, start string
	var exclude []string
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply a template to a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			// Missing flags fall through to the wizard on a terminal.
			if (templateID == "" || projectID == "" || start == "") && app.interactive() {
				var err error
				templateID, projectID, start, exclude, err = runApplyWizard(ctx, app, templateID, projectID, start)
				if err != nil {
					return err
				}
			}
			if templateID == "" || projectID == "" || start == "" {
				return fmt.Errorf("--template, --project and --start are required")
			}

			startDate, err := time.Parse(dateLayout, start)
			if err != nil {
				return fmt.Errorf("invalid start date %q (want YYYY-MM-DD)", start)
			}

			result, err := app.Apply.Apply(ctx, templateID, projectID, startDate, exclude)
			if err != nil {
				return err
			}

			fmt.Println(formatter.Header("Applied"))
			fmt.Printf("  Phases:       %d\n", result.PhaseCount)
			fmt.Printf("  Packages:     %d\n", result.PackageCount)
			fmt.Printf("  Tasks:        %d\n", result.TaskCount)
			fmt.Printf("  Dependencies: %d\n", result.DependencyCount)
			fmt.Printf("  Gates:        %d\n", result.GateCount)
			fmt.Printf("  Schedule:     %s → %s\n",
				result.StartDate.Format(dateLayout), result.EndDate.Format(dateLayout))
			return nil
		},
	}
	addSelectionFlags(cmd.Flags(), &templateID, &exclude)
	cmd.Flags().StringVar(&projectID, "project", "", "project ID")
	cmd.Flags().StringVar(&start, "start", "", "project start date (YYYY-MM-DD)")
	return cmd
}
