package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lumina-ai/lumina-console/internal/domain"
	"github.com/lumina-ai/lumina-console/internal/theme"
)

// HelpScreen lists every key binding in a scrollable viewport
type HelpScreen struct {
	Completed   bool
	content     string
	initialized bool
	keys        *KeyMap
	viewport    viewport.Model
}

var helpGroupTitles = []string{"Navigation", "Request detail", "Paging", "Actions", "Application"}

func renderShortcut(keyText, description string) string {
	return theme.HelpKeyStyle.Width(12).Render(keyText) + theme.HelpDescStyle.Render(description) + "\n"
}

func buildHelpContent(keys *KeyMap) string {
	var b strings.Builder
	for i, group := range keys.FullHelp() {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(theme.SectionStyle.Render(helpGroupTitles[i]) + "\n")
		for _, binding := range group {
			help := binding.Help()
			b.WriteString(renderShortcut(help.Key, help.Desc))
		}
	}

	b.WriteString("\n" + theme.SectionStyle.Render("Notifications") + "\n")
	for _, kind := range []domain.NotificationKind{
		domain.NotificationSuccess,
		domain.NotificationError,
		domain.NotificationInfo,
		domain.NotificationWarning,
	} {
		b.WriteString(renderShortcut(theme.NotificationIconStyle(kind).Render(kind.Symbol()), string(kind)))
	}
	return b.String()
}

// NewHelpScreen creates a help screen for keys
func NewHelpScreen(keys *KeyMap) *HelpScreen {
	return &HelpScreen{
		content:  buildHelpContent(keys),
		keys:     keys,
		viewport: viewport.New(0, 0),
	}
}

// Init implements tea.Model
func (h *HelpScreen) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (h *HelpScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// Dialog header: 5 lines, footer: 2 lines
		h.viewport.Width = msg.Width
		h.viewport.Height = max(msg.Height-7, 5)
		h.viewport.SetContent(h.content)
		h.initialized = true
		return h, nil

	case tea.KeyMsg:
		if key.Matches(msg, h.keys.Navigation.Close, h.keys.Application.Quit, h.keys.Application.Help) {
			h.Completed = true
			return h, nil
		}
	}

	var cmd tea.Cmd
	h.viewport, cmd = h.viewport.Update(msg)
	return h, cmd
}

// View implements tea.Model
func (h *HelpScreen) View() string {
	if !h.initialized {
		return "Loading help..."
	}
	footer := theme.MutedStyle.Render("esc, q or ? to close • ↑↓ to scroll")
	return h.viewport.View() + "\n\n" + footer
}
