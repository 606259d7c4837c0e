package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lumina-ai/lumina-console/internal/theme"
	"github.com/lumina-ai/lumina-console/internal/version"
)

// Dialog wraps a form or screen and prepends the application header.
// Forms never render their own header; wrap them with NewDialog instead.
type Dialog struct {
	content     tea.Model
	showVersion bool
	title       string
}

// NewDialog creates a dialog around content
func NewDialog(title string, content tea.Model, showVersion bool) *Dialog {
	return &Dialog{
		content:     content,
		showVersion: showVersion,
		title:       title,
	}
}

// Init delegates to the content
func (d *Dialog) Init() tea.Cmd {
	return d.content.Init()
}

// Update delegates to the content and returns the dialog itself
func (d *Dialog) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	updated, cmd := d.content.Update(msg)
	d.content = updated
	return d, cmd
}

// View renders the header followed by the content
func (d *Dialog) View() string {
	return renderHeader(d.showVersion, d.title) + d.content.View()
}

// Content returns the wrapped model for type assertion
func (d *Dialog) Content() tea.Model {
	return d.content
}

// renderHeader renders the app name, the tagline and an optional subtitle.
// Build information is appended when showVersion is set (debug runs).
func renderHeader(showVersion bool, subtitle string) string {
	line := theme.AppNameStyle.Render("Lumina")
	if showVersion {
		commit := version.Commit
		if len(commit) > 7 {
			commit = commit[:7]
		}
		line += theme.VersionStyle.Render(fmt.Sprintf(" %s | %s | %s", version.Version, commit, version.GoVersion))
	}

	result := line + "\n" + theme.MutedStyle.Render(version.Tagline)
	if subtitle != "" {
		result += "\n" + theme.TitleStyle.Render(subtitle)
	}
	return result + "\n\n"
}
