package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/renoplan/renoplan/internal/cli/formatter"
	"github.com/renoplan/renoplan/internal/domain"
	"github.com/renoplan/renoplan/internal/service"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage renovation projects",
	}

	cmd.AddCommand(
		newProjectCreateCmd(app),
		newProjectListCmd(app),
		newProjectShowCmd(app),
	)

	return cmd
}

func newProjectCreateCmd(app *App) *cobra.Command {
	var name, unit string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an empty project",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Projects.Create(context.Background(), name, unit)
			if err != nil {
				return err
			}
			fmt.Printf("Created project %s (%s)\n", formatter.Bold(p.Name), formatter.Dim(p.ID))
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "project name")
	cmd.Flags().StringVar(&unit, "unit", "", "unit label, e.g. apartment 4B")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := app.Projects.List(context.Background())
			if err != nil {
				return err
			}
			if len(projects) == 0 {
				fmt.Println("No projects found.")
				return nil
			}
			headers := []string{"ID", "Name", "Unit", "Created"}
			rows := make([][]string, 0, len(projects))
			for _, p := range projects {
				rows = append(rows, []string{
					formatter.Dim(p.ID[:8]),
					p.Name,
					p.UnitLabel,
					p.CreatedAt.Format("2006-01-02"),
				})
			}
			fmt.Print(formatter.RenderTable(headers, rows))
			return nil
		},
	}
}

func newProjectShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a project's instantiated plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := app.Projects.GetPlan(context.Background(), args[0])
			if err != nil {
				return err
			}

			p := plan.Project
			fmt.Println(formatter.Header("Project"))
			fmt.Printf("  Name: %s\n", formatter.Bold(p.Name))
			if p.UnitLabel != "" {
				fmt.Printf("  Unit: %s\n", p.UnitLabel)
			}
			fmt.Println()

			if len(plan.Tasks) == 0 {
				fmt.Println(formatter.Dim("No plan applied yet."))
				return nil
			}

			fmt.Println(formatter.Header("Plan"))
			fmt.Print(formatter.RenderTree(projectPlanItems(plan)))

			if len(plan.Gates) > 0 {
				fmt.Println()
				fmt.Println(formatter.Header("Quality Gates"))
				for _, g := range plan.Gates {
					badge := formatter.Dim(string(g.Level))
					if g.Blocking {
						badge = formatter.StyleRed.Render(string(g.Level) + " · blocking")
					}
					fmt.Printf("  %s  %s\n", badge, g.Name)
				}
			}
			return nil
		},
	}
}

// projectPlanItems flattens an instantiated plan into display rows ordered
// by WBS position, with scheduled windows as badges.
func projectPlanItems(plan *service.ProjectPlan) []formatter.TreeItem {
	phases := append([]*domain.ProjectPhase(nil), plan.Phases...)
	sort.Slice(phases, func(i, j int) bool { return phases[i].OrderIndex < phases[j].OrderIndex })

	pkgsByPhase := make(map[string][]*domain.ProjectWorkPackage)
	for _, pkg := range plan.Packages {
		pkgsByPhase[pkg.PhaseID] = append(pkgsByPhase[pkg.PhaseID], pkg)
	}
	for _, pkgs := range pkgsByPhase {
		sort.Slice(pkgs, func(i, j int) bool { return pkgs[i].OrderIndex < pkgs[j].OrderIndex })
	}

	tasksByPkg := make(map[string][]*domain.ProjectTask)
	for _, t := range plan.Tasks {
		tasksByPkg[t.PackageID] = append(tasksByPkg[t.PackageID], t)
	}
	for _, tasks := range tasksByPkg {
		sort.Slice(tasks, func(i, j int) bool { return tasks[i].WBSCode < tasks[j].WBSCode })
	}

	var items []formatter.TreeItem
	for pi, phase := range phases {
		items = append(items, formatter.TreeItem{
			WBS:    phase.WBSCode,
			Title:  formatter.Bold(phase.Name),
			Level:  0,
			IsLast: pi == len(phases)-1,
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
				detail := fmt.Sprintf("%s → %s",
					task.ScheduledStart.Format("Jan 02"),
					task.ScheduledEnd.Format("Jan 02"))
				items = append(items, formatter.TreeItem{
					WBS:    task.WBSCode,
					Title:  task.Name,
					Level:  2,
					IsLast: ti == len(tasks)-1,
					Status: string(task.Status),
					Detail: detail,
				})
			}
		}
	}
	return items
}
