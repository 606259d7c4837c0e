package ui

import (
	"slices"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/lumina-ai/lumina-console/internal/domain"
	"github.com/lumina-ai/lumina-console/internal/logging"
	"github.com/lumina-ai/lumina-console/internal/metrics"
	"github.com/lumina-ai/lumina-console/internal/theme"
)

const (
	// DefaultMaxNotifications bounds how many notifications are visible at once
	DefaultMaxNotifications = 5
	// DefaultNotificationDuration applies when Notify is given a non-positive duration
	DefaultNotificationDuration = 3 * time.Second

	notificationBarWidth  = 24
	notificationExitGrace = 200 * time.Millisecond
	notificationTick      = 100 * time.Millisecond
)

type notificationTickMsg struct{ id string }
type notificationTimeoutMsg struct{ id string }
type notificationRemoveMsg struct{ id string }

// Notification is a timed message shown in the corner of the screen
type Notification struct {
	Duration time.Duration
	Elapsed  time.Duration
	Exiting  bool
	ID       string
	Kind     domain.NotificationKind
	Text     string
}

// Remaining returns the percentage of the lifetime left, in [0, 100]
func (n Notification) Remaining() float64 {
	if n.Duration <= 0 || n.Elapsed >= n.Duration {
		return 0
	}
	return 100 * float64(n.Duration-n.Elapsed) / float64(n.Duration)
}

// NotificationCenter keeps the active notifications in creation order.
// Every removal path (decay, timeout, dismissal, overflow) goes through remove,
// so OnRemove fires exactly once per notification.
type NotificationCenter struct {
	defaultDuration time.Duration
	items           []*Notification
	maxActive       int
	metrics         *metrics.Recorder
	newID           func() string

	// OnRemove is called after a notification leaves the queue
	OnRemove func(Notification)
}

// NewNotificationCenter creates a NotificationCenter. Non-positive values fall back to defaults.
func NewNotificationCenter(maxActive int, defaultDuration time.Duration, recorder *metrics.Recorder) *NotificationCenter {
	if maxActive <= 0 {
		maxActive = DefaultMaxNotifications
	}
	if defaultDuration <= 0 {
		defaultDuration = DefaultNotificationDuration
	}
	return &NotificationCenter{
		defaultDuration: defaultDuration,
		maxActive:       maxActive,
		metrics:         recorder,
		newID:           uuid.NewString,
	}
}

// Notify queues a notification and returns its id with the commands that drive its
// decay and timeout
func (c *NotificationCenter) Notify(text string, kind domain.NotificationKind, duration time.Duration) (string, tea.Cmd) {
	if duration <= 0 {
		duration = c.defaultDuration
	}

	n := &Notification{
		Duration: duration,
		ID:       c.newID(),
		Kind:     kind,
		Text:     text,
	}
	c.items = append(c.items, n)
	c.metrics.Notification(string(kind))
	logging.Logger.Debug("Notification shown", "id", n.ID, "kind", kind, "text", text)

	for len(c.items) > c.maxActive {
		c.remove(c.items[0].ID)
	}

	id := n.ID
	return id, tea.Batch(
		notificationTickCmd(id),
		tea.Tick(duration, func(time.Time) tea.Msg { return notificationTimeoutMsg{id: id} }),
	)
}

// Success shows a success notification with the default duration
func (c *NotificationCenter) Success(text string) tea.Cmd {
	_, cmd := c.Notify(text, domain.NotificationSuccess, 0)
	return cmd
}

// Error shows an error notification with the default duration
func (c *NotificationCenter) Error(text string) tea.Cmd {
	_, cmd := c.Notify(text, domain.NotificationError, 0)
	return cmd
}

// Info shows an info notification with the default duration
func (c *NotificationCenter) Info(text string) tea.Cmd {
	_, cmd := c.Notify(text, domain.NotificationInfo, 0)
	return cmd
}

// Warning shows a warning notification with the default duration
func (c *NotificationCenter) Warning(text string) tea.Cmd {
	_, cmd := c.Notify(text, domain.NotificationWarning, 0)
	return cmd
}

// Dismiss starts the exit of a notification. Unknown, removed or already exiting
// ids are ignored.
func (c *NotificationCenter) Dismiss(id string) tea.Cmd {
	n := c.find(id)
	if n == nil || n.Exiting {
		return nil
	}
	n.Exiting = true
	return removeAfterGrace(id)
}

// DismissAll starts the exit of every notification
func (c *NotificationCenter) DismissAll() tea.Cmd {
	var cmds []tea.Cmd
	for _, n := range c.items {
		cmds = append(cmds, c.Dismiss(n.ID))
	}
	return tea.Batch(cmds...)
}

// Active returns a snapshot of the queue in creation order
func (c *NotificationCenter) Active() []Notification {
	out := make([]Notification, 0, len(c.items))
	for _, n := range c.items {
		out = append(out, *n)
	}
	return out
}

// Update handles the center's own messages. handled is false for any other message.
func (c *NotificationCenter) Update(msg tea.Msg) (handled bool, cmd tea.Cmd) {
	switch msg := msg.(type) {
	case notificationTickMsg:
		n := c.find(msg.id)
		if n == nil {
			// Removed already, let the chain die
			return true, nil
		}
		n.Elapsed += notificationTick
		if n.Remaining() <= 0 {
			c.remove(msg.id)
			return true, nil
		}
		return true, notificationTickCmd(msg.id)

	case notificationTimeoutMsg:
		n := c.find(msg.id)
		if n == nil || n.Exiting {
			return true, nil
		}
		n.Exiting = true
		return true, removeAfterGrace(msg.id)

	case notificationRemoveMsg:
		c.remove(msg.id)
		return true, nil
	}
	return false, nil
}

// remove deletes the notification and reports whether it was still queued
func (c *NotificationCenter) remove(id string) bool {
	idx := slices.IndexFunc(c.items, func(n *Notification) bool { return n.ID == id })
	if idx < 0 {
		return false
	}
	removed := *c.items[idx]
	c.items = slices.Delete(c.items, idx, idx+1)

	if c.OnRemove != nil {
		c.OnRemove(removed)
	}
	return true
}

func (c *NotificationCenter) find(id string) *Notification {
	for _, n := range c.items {
		if n.ID == id {
			return n
		}
	}
	return nil
}

func notificationTickCmd(id string) tea.Cmd {
	return tea.Tick(notificationTick, func(time.Time) tea.Msg { return notificationTickMsg{id: id} })
}

func removeAfterGrace(id string) tea.Cmd {
	return tea.Tick(notificationExitGrace, func(time.Time) tea.Msg { return notificationRemoveMsg{id: id} })
}

// View renders the notifications stacked, newest last, each with its decay bar
func (c *NotificationCenter) View(maxWidth int) string {
	if len(c.items) == 0 {
		return ""
	}

	textWidth := max(min(maxWidth-6, 48), 12)
	boxes := make([]string, 0, len(c.items))
	for _, n := range c.items {
		icon := theme.NotificationIconStyle(n.Kind).Render(n.Kind.Symbol())
		text := lipgloss.NewStyle().Width(textWidth).Render(n.Text)
		if n.Exiting {
			text = theme.MutedStyle.Width(textWidth).Render(n.Text)
		}

		filled := int(n.Remaining() / 100 * notificationBarWidth)
		bar := theme.NotificationIconStyle(n.Kind).Render(strings.Repeat("━", filled)) +
			theme.MutedStyle.Render(strings.Repeat("─", notificationBarWidth-filled))

		body := lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.JoinHorizontal(lipgloss.Top, icon, " ", text),
			bar,
		)
		boxes = append(boxes, theme.NotificationStyle(n.Kind).Render(body))
	}
	return lipgloss.JoinVertical(lipgloss.Right, boxes...)
}
