package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/renoplan/renoplan/internal/cli/formatter"
	"github.com/renoplan/renoplan/internal/domain"
)

func newTemplateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Manage renovation templates",
	}

	cmd.AddCommand(
		newTemplateListCmd(app),
		newTemplateShowCmd(app),
		newTemplateImportCmd(app),
		newTemplateImpactCmd(app),
		newTemplateActivateCmd(app, true),
		newTemplateActivateCmd(app, false),
		newTemplateRecalcCmd(app),
		newTemplateDepCmd(app),
	)

	return cmd
}

func newTemplateListCmd(app *App) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			templates, err := app.Templates.List(context.Background(), !all)
			if err != nil {
				return err
			}
			if len(templates) == 0 {
				fmt.Println("No templates found.")
				return nil
			}

			headers := []string{"ID", "Name", "Category", "Scope", "Duration", "Est. Cost", "Active"}
			rows := make([][]string, 0, len(templates))
			for _, t := range templates {
				active := formatter.StyleGreen.Render("yes")
				if !t.Active {
					active = formatter.Dim("no")
				}
				rows = append(rows, []string{
					formatter.Dim(t.ID[:8]),
					t.Name,
					string(t.Category),
					string(t.Scope),
					formatter.FormatDays(t.TotalDurationDays),
					formatter.FormatCents(t.TotalEstimatedCost),
					active,
				})
			}
			fmt.Print(formatter.RenderTable(headers, rows))
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "include inactive templates")
	return cmd
}

func newTemplateShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a template's full work breakdown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := app.Templates.GetTree(context.Background(), args[0])
			if err != nil {
				return err
			}

			t := tree.Template
			fmt.Println(formatter.Header("Template"))
			fmt.Printf("  Name:     %s\n", formatter.Bold(t.Name))
			fmt.Printf("  Category: %s\n", t.Category)
			fmt.Printf("  Scope:    %s\n", t.Scope)
			if t.RoomType != nil {
				fmt.Printf("  Room:     %s\n", *t.RoomType)
			}
			fmt.Printf("  Duration: %s\n", formatter.FormatDays(t.TotalDurationDays))
			fmt.Printf("  Cost:     %s\n", formatter.FormatCents(t.TotalEstimatedCost))
			fmt.Println()

			fmt.Println(formatter.Header("Work Breakdown"))
			fmt.Print(formatter.RenderTree(templateTreeItems(tree)))

			if len(tree.Dependencies) > 0 {
				fmt.Println()
				fmt.Println(formatter.Header("Dependencies"))
				for _, d := range tree.Dependencies {
					pred := taskLabel(tree, d.PredecessorTaskID)
					succ := taskLabel(tree, d.SuccessorTaskID)
					lag := ""
					if d.LagDays != 0 {
						lag = fmt.Sprintf(" %+dd", d.LagDays)
					}
					fmt.Printf("  %s %s%s %s\n", pred, formatter.StylePurple.Render(string(d.Type)), lag, succ)
				}
			}

			if len(tree.Gates) > 0 {
				fmt.Println()
				fmt.Println(formatter.Header("Quality Gates"))
				for _, g := range tree.Gates {
					badge := formatter.Dim(string(g.Level))
					if g.Blocking {
						badge = formatter.StyleRed.Render(string(g.Level) + " · blocking")
					}
					fmt.Printf("  %s  %s (%d checklist items)\n", badge, g.Name, len(g.Checklist))
				}
			}
			return nil
		},
	}
}

func newTemplateImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import a template definition from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Templates.Import(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Imported template %s (%s)\n", formatter.Bold(result.Template.Name), formatter.Dim(result.Template.ID))
			fmt.Printf("  %d phases, %d packages, %d tasks, %d dependencies, %d gates\n",
				result.PhaseCount, result.PackageCount, result.TaskCount, result.DependencyCount, result.GateCount)
			return nil
		},
	}
}

func newTemplateImpactCmd(app *App) *cobra.Command {
	var templateID, taskID string
	cmd := &cobra.Command{
		Use:   "impact",
		Short: "Show tasks affected by changing one task",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			impact, err := app.Templates.AffectedTasks(ctx, templateID, taskID)
			if err != nil {
				return err
			}
			tree, err := app.Templates.GetTree(ctx, templateID)
			if err != nil {
				return err
			}

			fmt.Println(formatter.Header("Dependents"))
			if len(impact.Dependents) == 0 {
				fmt.Println(formatter.Dim("  none"))
			}
			for _, id := range impact.Dependents {
				fmt.Printf("  %s\n", taskLabel(tree, id))
			}
			fmt.Println()
			fmt.Println(formatter.Header("Prerequisites"))
			if len(impact.Prerequisites) == 0 {
				fmt.Println(formatter.Dim("  none"))
			}
			for _, id := range impact.Prerequisites {
				fmt.Printf("  %s\n", taskLabel(tree, id))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&templateID, "template", "", "template ID")
	cmd.Flags().StringVar(&taskID, "task", "", "task ID")
	_ = cmd.MarkFlagRequired("template")
	_ = cmd.MarkFlagRequired("task")
	return cmd
}

func newTemplateActivateCmd(app *App, active bool) *cobra.Command {
	use, short := "activate ID", "Mark a template active"
	if !active {
		use, short = "deactivate ID", "Mark a template inactive"
	}
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Templates.SetActive(context.Background(), args[0], active); err != nil {
				return err
			}
			state := "active"
			if !active {
				state = "inactive"
			}
			fmt.Printf("Template %s is now %s.\n", formatter.Dim(args[0]), state)
			return nil
		},
	}
}

func newTemplateRecalcCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "recalc ID",
		Short: "Recompute a template's duration and cost rollups",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := app.Templates.RecalculateRollups(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Rollups for %s: %s, %s\n", formatter.Bold(t.Name),
				formatter.FormatDays(t.TotalDurationDays), formatter.FormatCents(t.TotalEstimatedCost))
			return nil
		},
	}
}

func newTemplateDepCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dep",
		Short: "Edit template dependencies",
	}
	cmd.AddCommand(newTemplateDepAddCmd(app), newTemplateDepRemoveCmd(app))
	return cmd
}

func newTemplateDepAddCmd(app *App) *cobra.Command {
	var templateID, pred, succ, depType string
	var lag int
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a dependency between two tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			dep, err := app.Templates.AddDependency(context.Background(), templateID, pred, succ, domain.DependencyType(depType), lag)
			if err != nil {
				return err
			}
			fmt.Printf("Added %s dependency %s (lag %+dd)\n", dep.Type, formatter.Dim(dep.ID), dep.LagDays)
			return nil
		},
	}
	cmd.Flags().StringVar(&templateID, "template", "", "template ID")
	cmd.Flags().StringVar(&pred, "pred", "", "predecessor task ID")
	cmd.Flags().StringVar(&succ, "succ", "", "successor task ID")
	cmd.Flags().StringVar(&depType, "type", "FS", "dependency type (FS, SS, FF, SF)")
	cmd.Flags().IntVar(&lag, "lag", 0, "lag in days (may be negative)")
	_ = cmd.MarkFlagRequired("template")
	_ = cmd.MarkFlagRequired("pred")
	_ = cmd.MarkFlagRequired("succ")
	return cmd
}

func newTemplateDepRemoveCmd(app *App) *cobra.Command {
	var templateID, pred, succ string
	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove a dependency between two tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Templates.RemoveDependency(context.Background(), templateID, pred, succ); err != nil {
				return err
			}
			fmt.Println("Dependency removed.")
			return nil
		},
	}
	cmd.Flags().StringVar(&templateID, "template", "", "template ID")
	cmd.Flags().StringVar(&pred, "pred", "", "predecessor task ID")
	cmd.Flags().StringVar(&succ, "succ", "", "successor task ID")
	_ = cmd.MarkFlagRequired("template")
	_ = cmd.MarkFlagRequired("pred")
	_ = cmd.MarkFlagRequired("succ")
	return cmd
}

// templateTreeItems flattens a template tree into display rows.
func templateTreeItems(tree *domain.TemplateTree) []formatter.TreeItem {
	var items []formatter.TreeItem
	pkgsByPhase := tree.PackagesByPhase()
	tasksByPkg := tree.TasksByPackage()

	for pi, phase := range tree.Phases {
		items = append(items, formatter.TreeItem{
			WBS:    phase.WBSCode,
			Title:  formatter.Bold(phase.Name),
			Level:  0,
			IsLast: pi == len(tree.Phases)-1,
		})
		pkgs := pkgsByPhase[phase.ID]
		for ki, pkg := range pkgs {
			items = append(items, formatter.TreeItem{
				WBS:    pkg.WBSCode,
				Title:  pkg.Name,
				Level:  1,
				IsLast: ki == len(pkgs)-1,
			})
			tasks := tasksByPkg[pkg.ID]
			for ti, task := range tasks {
				detail := formatter.FormatDays(task.DurationDays)
				if task.EstimatedCost != nil {
					detail += " · " + formatter.FormatCents(*task.EstimatedCost)
				}
				title := task.Name
				if task.Optional {
					title += formatter.Dim(" (optional)")
				}
				items = append(items, formatter.TreeItem{
					WBS:    task.WBSCode,
					Title:  title,
					Level:  2,
					IsLast: ti == len(tasks)-1,
					Detail: detail,
				})
			}
		}
	}
	return items
}

func taskLabel(tree *domain.TemplateTree, id string) string {
	if t := tree.TaskByID(id); t != nil {
		return fmt.Sprintf("%s %s", formatter.Dim(t.WBSCode), t.Name)
	}
	return formatter.Dim(id)
}
