package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/renoplan/renoplan/internal/cli/formatter"
)

func renoplanHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.MultiSelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedPrefix = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func validateDate(s string) error {
	if _, err := time.Parse(dateLayout, s); err != nil {
		return fmt.Errorf("use YYYY-MM-DD")
	}
	return nil
}

// runApplyWizard collects the apply inputs interactively. Pre-set values
// from flags are kept; only missing ones are asked for.
func runApplyWizard(ctx context.Context, app *App, templateID, projectID, start string) (string, string, string, []string, error) {
	theme := renoplanHuhTheme()

	if templateID == "" {
		templates, err := app.Templates.List(ctx, true)
		if err != nil {
			return "", "", "", nil, err
		}
		if len(templates) == 0 {
			return "", "", "", nil, fmt.Errorf("no active templates available")
		}
		options := make([]huh.Option[string], 0, len(templates))
		for _, t := range templates {
			label := fmt.Sprintf("%s — %s, %s", t.Name,
				formatter.FormatDays(t.TotalDurationDays), formatter.FormatCents(t.TotalEstimatedCost))
			options = append(options, huh.NewOption(label, t.ID))
		}
		form := huh.NewForm(huh.NewGroup(
			huh.NewSelect[string]().Title("Template").Options(options...).Value(&templateID),
		)).WithTheme(theme).WithShowHelp(false)
		if err := form.Run(); err != nil {
			return "", "", "", nil, err
		}
	}

	if projectID == "" {
		projects, err := app.Projects.List(ctx)
		if err != nil {
			return "", "", "", nil, err
		}
		if len(projects) == 0 {
			return "", "", "", nil, fmt.Errorf("no projects exist; create one with 'renoplan project create'")
		}
		options := make([]huh.Option[string], 0, len(projects))
		for _, p := range projects {
			label := p.Name
			if p.UnitLabel != "" {
				label = fmt.Sprintf("%s — %s", p.Name, p.UnitLabel)
			}
			options = append(options, huh.NewOption(label, p.ID))
		}
		form := huh.NewForm(huh.NewGroup(
			huh.NewSelect[string]().Title("Project").Options(options...).Value(&projectID),
		)).WithTheme(theme).WithShowHelp(false)
		if err := form.Run(); err != nil {
			return "", "", "", nil, err
		}
	}

	if start == "" {
		form := huh.NewForm(huh.NewGroup(
			huh.NewInput().
				Title("Start Date (YYYY-MM-DD)").
				Placeholder(time.Now().Format(dateLayout)).
				Value(&start).
				Validate(validateDate),
		)).WithTheme(theme).WithShowHelp(false)
		if err := form.Run(); err != nil {
			return "", "", "", nil, err
		}
	}

	// Offer exclusion of optional tasks when the template has any.
	var exclude []string
	tree, err := app.Templates.GetTree(ctx, templateID)
	if err != nil {
		return "", "", "", nil, err
	}
	var optional []huh.Option[string]
	for _, t := range tree.Tasks {
		if t.Optional {
			optional = append(optional, huh.NewOption(fmt.Sprintf("%s %s", t.WBSCode, t.Name), t.ID))
		}
	}
	if len(optional) > 0 {
		form := huh.NewForm(huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Exclude optional tasks").
				Options(optional...).
				Value(&exclude),
		)).WithTheme(theme).WithShowHelp(false)
		if err := form.Run(); err != nil {
			return "", "", "", nil, err
		}
	}

	// Exclusions that strand downstream tasks warrant a second look.
	if len(exclude) > 0 {
		preview, err := app.Apply.Preview(ctx, templateID, exclude)
		if err != nil {
			return "", "", "", nil, err
		}
		if len(preview.Warnings) > 0 {
			for _, w := range preview.Warnings {
				fmt.Println(formatter.Warn(w))
			}
			proceed := true
			form := huh.NewForm(huh.NewGroup(
				huh.NewConfirm().
					Title("Apply anyway?").
					Value(&proceed),
			)).WithTheme(theme).WithShowHelp(false)
			if err := form.Run(); err != nil {
				return "", "", "", nil, err
			}
			if !proceed {
				return "", "", "", nil, fmt.Errorf("apply cancelled")
			}
		}
	}

	return templateID, projectID, start, exclude, nil
}
