package ui

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lumina-ai/lumina-console/internal/domain"
	"github.com/lumina-ai/lumina-console/internal/theme"
)

const requestTimeLayout = "2006-01-02 15:04:05"

// Lines taken by everything but the table: header (3), footer (3), help (1)
const logsViewChrome = 7

var logColumns = []table.Column{
	{Title: "Time", Width: 19},
	{Title: "Status", Width: 7},
	{Title: "Request Model", Width: 22},
	{Title: "Actual Model", Width: 22},
	{Title: "Provider", Width: 14},
	{Title: "Tokens", Width: 8},
	{Title: "Cost", Width: 10},
	{Title: "Latency", Width: 9},
	{Title: "Retries", Width: 7},
}

// LogsView renders the LogPager as a table with a pagination footer
type LogsView struct {
	help    help.Model
	height  int
	keys    *KeyMap
	pager   *LogPager
	records []domain.LogRecord
	spinner func() string
	table   table.Model
	width   int
}

// NewLogsView creates the table for pager. spinner renders the loading indicator.
func NewLogsView(pager *LogPager, keys *KeyMap, spinner func() string) *LogsView {
	t := table.New(
		table.WithColumns(logColumns),
		table.WithFocused(true),
		table.WithHeight(domain.DefaultPageSize),
	)
	styles := table.DefaultStyles()
	styles.Header = theme.TableHeaderStyle
	styles.Cell = theme.TableCellStyle
	styles.Selected = theme.TableSelectedStyle
	t.SetStyles(styles)

	return &LogsView{
		help:    help.New(),
		keys:    keys,
		pager:   pager,
		spinner: spinner,
		table:   t,
	}
}

// SetSize fits the table to the terminal
func (v *LogsView) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.help.Width = width
	v.table.SetWidth(width)
	v.table.SetHeight(max(height-logsViewChrome, 3))
}

// Sync rebuilds the rows when the pager applied a new page
func (v *LogsView) Sync() {
	records := v.pager.Records()
	if sameRecords(v.records, records) {
		return
	}
	v.records = records

	rows := make([]table.Row, 0, len(records))
	for _, r := range records {
		rows = append(rows, recordRow(r))
	}
	cursor := v.table.Cursor()
	v.table.SetRows(rows)
	if cursor >= len(rows) {
		v.table.SetCursor(max(len(rows)-1, 0))
	}
}

func sameRecords(a, b []domain.LogRecord) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func recordRow(r domain.LogRecord) table.Row {
	requestTime := "-"
	if !r.RequestTime.IsZero() {
		requestTime = r.RequestTime.Local().Format(requestTimeLayout)
	}
	return table.Row{
		requestTime,
		r.Status,
		r.RequestModel,
		r.ActualModel,
		r.ProviderName,
		strconv.FormatInt(r.Tokens(), 10),
		formatCost(r.Cost),
		formatLatency(r.FirstTokenMs),
		strconv.Itoa(r.RetryCount),
	}
}

func formatCost(cost float64) string {
	return fmt.Sprintf("$%.6f", cost)
}

func formatLatency(ms int64) string {
	if ms <= 0 {
		return "-"
	}
	return (time.Duration(ms) * time.Millisecond).String()
}

// SelectedID returns the id of the highlighted record, or "" when the page is empty
func (v *LogsView) SelectedID() string {
	idx := v.table.Cursor()
	if idx < 0 || idx >= len(v.records) {
		return ""
	}
	return v.records[idx].ID
}

// Update moves the table cursor
func (v *LogsView) Update(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	v.table, cmd = v.table.Update(msg)
	return cmd
}

// View renders the header, table and footer
func (v *LogsView) View(principal string) string {
	header := lipgloss.JoinHorizontal(lipgloss.Top,
		theme.AppNameStyle.Render("Lumina"),
		theme.MutedStyle.Render("  request logs  "),
		theme.PrincipalStyle.Render(principal),
	)

	var body string
	if len(v.records) == 0 {
		body = theme.MutedStyle.Render("No request logs")
		if v.pager.Loading() {
			body = v.spinner() + " Loading request logs..."
		}
	} else {
		body = v.table.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		body,
		v.footer(),
		v.help.View(v.keys),
	)
}

func (v *LogsView) footer() string {
	pager := v.pager
	parts := fmt.Sprintf("%s • page %d / %d • %d per page",
		pager.Summary(),
		pager.CurrentPage(),
		max(pager.TotalPages(), 1),
		pager.PageSize())

	auto := pager.AutoRefresh()
	if auto.Enabled() {
		parts += fmt.Sprintf(" • auto-refresh %s", auto.Interval())
	} else {
		parts += " • auto-refresh off"
	}
	if !pager.LoadedAt().IsZero() {
		parts += " • updated " + pager.LoadedAt().Local().Format("15:04:05")
	}

	footer := theme.FooterStyle.Render(parts)
	if pager.Loading() {
		footer += " " + v.spinner()
	}
	return footer
}

// statusCell colors a status for the detail view
func statusCell(status string) string {
	return theme.StatusStyle(status).Render(status)
}
