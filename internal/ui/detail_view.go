package ui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lumina-ai/lumina-console/internal/domain"
	"github.com/lumina-ai/lumina-console/internal/logging"
	"github.com/lumina-ai/lumina-console/internal/theme"
)

// CopyFeedbackDuration is how long the copied marker stays visible
const CopyFeedbackDuration = 2 * time.Second

type copyTarget int

const (
	copyNone copyTarget = iota
	copyRequestID
	copyRequestBody
	copyResponseBody
	copyErrorMessage
)

func (t copyTarget) String() string {
	switch t {
	case copyRequestID:
		return "Request ID"
	case copyRequestBody:
		return "Request body"
	case copyResponseBody:
		return "Response body"
	case copyErrorMessage:
		return "Error message"
	default:
		return ""
	}
}

func (t copyTarget) text(d domain.LogDetail) string {
	switch t {
	case copyRequestID:
		return d.RequestID
	case copyRequestBody:
		return d.RequestContent
	case copyResponseBody:
		return d.ResponseContent
	case copyErrorMessage:
		return d.ErrorMessage
	default:
		return ""
	}
}

// copyDoneMsg is the completion of a clipboard write
type copyDoneMsg struct {
	err    error
	target copyTarget
	token  uint64
}

// copyFeedbackExpiredMsg clears the marker set by the copy carrying the same token
type copyFeedbackExpiredMsg struct {
	token uint64
}

// DetailView renders the DetailLoader as a scrollable modal
type DetailView struct {
	clipboard Clipboard
	height    int
	keys      *KeyMap
	loader    *DetailLoader
	rendered  *domain.LogDetail
	spinner   func() string
	viewport  viewport.Model
	width     int

	copied    copyTarget
	copyErr   error
	copyToken uint64
}

// NewDetailView creates the modal for loader. spinner renders the loading indicator;
// clipboard may be nil, in which case copying reports it is unavailable.
func NewDetailView(loader *DetailLoader, keys *KeyMap, spinner func() string, clipboard Clipboard) *DetailView {
	return &DetailView{
		clipboard: clipboard,
		keys:      keys,
		loader:    loader,
		spinner:   spinner,
		viewport:  viewport.New(0, 0),
	}
}

// Copied returns what the marker currently shows as copied, or "" when hidden
func (v *DetailView) Copied() string { return v.copied.String() }

// CopyError returns the failure of the latest copy while its marker is visible
func (v *DetailView) CopyError() error { return v.copyErr }

// SetSize fits the modal to the terminal
func (v *DetailView) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.viewport.Width = max(width*4/5-6, 20)
	v.viewport.Height = max(height*4/5-6, 5)
	v.rendered = nil
	v.Sync()
}

// Sync renders the loaded detail into the viewport once per result
func (v *DetailView) Sync() {
	result := v.loader.Result()
	if result == nil || result == v.rendered {
		return
	}
	v.rendered = result
	v.clearCopyFeedback()
	v.viewport.SetContent(renderDetail(*result, v.viewport.Width))
	v.viewport.GotoTop()
}

// Update handles the copy keys and clipboard completions and scrolls the viewport
func (v *DetailView) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, v.keys.Detail.CopyRequestID):
			return v.copy(copyRequestID)
		case key.Matches(msg, v.keys.Detail.CopyRequest):
			return v.copy(copyRequestBody)
		case key.Matches(msg, v.keys.Detail.CopyResponse):
			return v.copy(copyResponseBody)
		case key.Matches(msg, v.keys.Detail.CopyError):
			return v.copy(copyErrorMessage)
		}

	case copyDoneMsg:
		if msg.token != v.copyToken {
			return nil
		}
		v.copied = msg.target
		v.copyErr = msg.err
		if msg.err != nil {
			logging.Logger.Warn("Copy failed", "target", msg.target.String(), "error", msg.err)
		}
		token := msg.token
		return tea.Tick(CopyFeedbackDuration, func(time.Time) tea.Msg {
			return copyFeedbackExpiredMsg{token: token}
		})

	case copyFeedbackExpiredMsg:
		// A newer copy restarted the marker; its own tick clears it
		if msg.token == v.copyToken {
			v.copied = copyNone
			v.copyErr = nil
		}
		return nil
	}

	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return cmd
}

// copy writes target of the loaded detail to the clipboard. Feedback from any
// earlier copy is superseded.
func (v *DetailView) copy(target copyTarget) tea.Cmd {
	result := v.loader.Result()
	if result == nil {
		return nil
	}

	v.copyToken++
	token := v.copyToken
	text := target.text(*result)
	clipboard := v.clipboard

	logging.Logger.Debug("Copying from request detail", "target", target.String(), "bytes", len(text))
	return func() tea.Msg {
		if clipboard == nil {
			return copyDoneMsg{err: ErrClipboardUnavailable, target: target, token: token}
		}
		return copyDoneMsg{err: clipboard.Copy(text), target: target, token: token}
	}
}

func (v *DetailView) clearCopyFeedback() {
	v.copyToken++
	v.copied = copyNone
	v.copyErr = nil
}

// View renders the modal for the current phase
func (v *DetailView) View() string {
	title := theme.TitleStyle.Render("Request " + v.loader.TargetID())

	var body string
	switch v.loader.Phase() {
	case DetailLoading:
		body = v.spinner() + " Loading request detail..."
	case DetailFailed:
		body = theme.ErrorStyle.Render(formatErrorForDisplay(v.loader.Err(), v.viewport.Width))
	case DetailLoaded:
		body = v.viewport.View()
	}

	footer := theme.MutedStyle.Render("esc to close • ↑↓ to scroll • y/c/C/e copy id/request/response/error")
	switch {
	case v.copyErr != nil:
		footer += "  " + theme.ErrorStyle.Render(fmt.Sprintf("Copy failed: %v", v.copyErr))
	case v.copied != copyNone:
		footer += "  " + theme.CopiedStyle.Render("✓ "+v.copied.String()+" copied")
	}
	return theme.DialogStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, "", body, "", footer))
}

func detailRow(label, value string) string {
	return theme.LabelStyle.Render(label) + theme.NormalStyle.Render(value) + "\n"
}

func renderDetail(d domain.LogDetail, width int) string {
	var b strings.Builder

	b.WriteString(detailRow("Status", statusCell(d.Status)))
	b.WriteString(detailRow("Request ID", orDash(d.RequestID)))
	b.WriteString(detailRow("Created", d.Created().Local().Format(requestTimeLayout)))
	b.WriteString(detailRow("Request type", orDash(d.RequestType)))
	b.WriteString(detailRow("Stream", strconv.FormatBool(d.IsStream)))
	b.WriteString(detailRow("Request model", d.RequestModel))
	b.WriteString(detailRow("Actual model", d.ActualModel))
	b.WriteString(detailRow("Provider", fmt.Sprintf("%s (#%d)", d.ProviderName, d.ProviderID)))
	b.WriteString(detailRow("Tokens", fmt.Sprintf("%d in / %d out / %d total", d.InputTokens, d.OutputTokens, d.Tokens())))
	b.WriteString(detailRow("Cost", formatCost(d.Cost)))
	b.WriteString(detailRow("First token", formatLatency(d.FirstTokenMs)))
	b.WriteString(detailRow("Total time", formatLatency(d.TotalTimeMs)))
	b.WriteString(detailRow("Retries", strconv.Itoa(d.RetryCount)))

	if d.ErrorMessage != "" {
		b.WriteString(theme.SectionStyle.Render("Error") + "\n")
		b.WriteString(theme.ErrorStyle.Width(width).Render(d.ErrorMessage) + "\n")
	}

	b.WriteString(theme.SectionStyle.Render("Request") + "\n")
	b.WriteString(theme.CodeStyle.Width(width).Render(formatContent(d.RequestContent)) + "\n")
	b.WriteString(theme.SectionStyle.Render("Response") + "\n")
	b.WriteString(theme.CodeStyle.Width(width).Render(formatContent(d.ResponseContent)))

	return b.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// formatContent pretty-prints JSON bodies and returns anything else unchanged
func formatContent(content string) string {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return "-"
	}
	if !json.Valid([]byte(trimmed)) {
		return content
	}
	var out bytes.Buffer
	if err := json.Indent(&out, []byte(trimmed), "", "  "); err != nil {
		return content
	}
	return out.String()
}
