package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TreeItem represents a single node in a WBS tree display.
type TreeItem struct {
	WBS    string // work breakdown code, rendered dim before the title
	Title  string
	Level  int
	IsLast bool
	Status string // task status; empty for template rows
	Detail string // right-aligned badge, e.g. "3d · $1,200.00"
}

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
)

// RenderTree renders TreeItems as an indented tree using box-drawing
// connectors. Done tasks get a green ✔ prefix and dim title, in-progress
// tasks an amber ▶, skipped tasks a dim ○. Detail badges are right-aligned
// across the whole tree.
func RenderTree(items []TreeItem) string {
	if len(items) == 0 {
		return ""
	}

	type lineInfo struct {
		content string
		badge   string
	}

	lines := make([]lineInfo, len(items))
	maxContentWidth := 0

	for idx, item := range items {
		var prefix string
		if item.Level > 0 {
			for i := 1; i < item.Level; i++ {
				prefix += treePipe
			}
			if item.IsLast {
				prefix += treeCorner
			} else {
				prefix += treeBranch
			}
		}

		title := item.Title
		if item.WBS != "" {
			title = StyleDim.Render(item.WBS+" ") + title
		}

		statusPrefix := ""
		switch strings.ToLower(item.Status) {
		case "done":
			statusPrefix = StyleGreen.Render("✔ ")
			title = Dim(title)
		case "in_progress":
			statusPrefix = StyleYellowBold.Render("▶ ")
		case "skipped":
			statusPrefix = StyleDim.Render("○ ")
			title = Dim(title)
		}

		content := prefix + statusPrefix + title
		lines[idx].content = content
		if w := lipgloss.Width(content); w > maxContentWidth {
			maxContentWidth = w
		}

		if item.Detail != "" {
			lines[idx].badge = StyleBlue.Render("[ " + item.Detail + " ]")
		}
	}

	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line.content)
		if line.badge != "" {
			pad := maxContentWidth - lipgloss.Width(line.content) + 2
			b.WriteString(strings.Repeat(" ", pad))
			b.WriteString(line.badge)
		}
		b.WriteString("\n")
	}
	return b.String()
}
