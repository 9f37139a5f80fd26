package cli

import (
	"github.com/spf13/cobra"

	"github.com/renoplan/renoplan/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Templates service.TemplateService
	Apply     service.ApplyService
	Projects  service.ProjectService

	// IsInteractive reports whether stdin is a terminal; the apply wizard
	// only runs when it is.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "renoplan" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "renoplan",
		Short: "Renovation template and project planner",
	}

	root.AddCommand(
		newTemplateCmd(app),
		newProjectCmd(app),
		newPreviewCmd(app),
		newApplyCmd(app),
	)

	return root
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}
