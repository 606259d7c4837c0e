package theme

import "github.com/charmbracelet/lipgloss"

// Color is an alias for lipgloss.Color for convenience
type Color = lipgloss.Color

// Brand colors
const (
	ColorPrimary   Color = "99" // Purple - app name, titles
	ColorSecondary Color = "86" // Cyan - subtitles
)

// Request status colors
const (
	ColorFail    Color = "1" // Red
	ColorSuccess Color = "2" // Green
)

// Notification colors
const (
	ColorNotifyError   Color = "196"
	ColorNotifyInfo    Color = "39"
	ColorNotifySuccess Color = "42"
	ColorNotifyWarning Color = "214"
)

// UI semantic colors
const (
	ColorBorder    Color = "238"
	ColorError     Color = "196" // Bright red
	ColorHighlight Color = "255" // White - emphasis
	ColorMuted     Color = "241" // Gray - secondary text
	ColorNormal    Color = "250" // Default text
	ColorSelected  Color = "57"  // Table selection background
	ColorSpinner   Color = "205" // Pink
	ColorSubtle    Color = "245" // Light gray - labels
	ColorVersion   Color = "240" // Dark gray
)
