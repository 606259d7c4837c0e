package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

var dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

// dimLines strips styling from the background, dims it and pads it to width x height
func dimLines(background string, width, height int) []string {
	lines := strings.Split(background, "\n")
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i, line := range lines {
		dimmed := dimStyle.Render(ansi.Strip(line))
		if w := lipgloss.Width(dimmed); w < width {
			dimmed += strings.Repeat(" ", width-w)
		}
		lines[i] = dimmed
	}
	return lines
}

// compositeOverlay renders overlay centered over a dimmed background
func compositeOverlay(background, overlay string, width, height int) string {
	lines := dimLines(background, width, height)
	overlayLines := strings.Split(overlay, "\n")

	startX := max((width-lipgloss.Width(overlay))/2, 0)
	startY := max((height-len(overlayLines))/2, 0)

	for i, overlayLine := range overlayLines {
		y := startY + i
		if y >= len(lines) {
			break
		}
		right := max(width-startX-lipgloss.Width(overlayLine), 0)
		lines[y] = strings.Repeat(" ", startX) + overlayLine + strings.Repeat(" ", right)
	}
	return strings.Join(lines, "\n")
}

// cornerOverlay renders overlay in the top-right corner of background, which keeps
// its styling. Used for the notification stack.
func cornerOverlay(background, overlay string, width int) string {
	if overlay == "" {
		return background
	}
	lines := strings.Split(background, "\n")
	overlayLines := strings.Split(overlay, "\n")
	for len(lines) < len(overlayLines) {
		lines = append(lines, "")
	}

	for i, overlayLine := range overlayLines {
		ow := lipgloss.Width(overlayLine)
		startX := max(width-ow, 0)
		left := ansi.Truncate(lines[i], startX, "")
		if w := lipgloss.Width(left); w < startX {
			left += strings.Repeat(" ", startX-w)
		}
		lines[i] = left + overlayLine
	}
	return strings.Join(lines, "\n")
}
