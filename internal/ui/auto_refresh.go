package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lumina-ai/lumina-console/internal/domain"
	"github.com/lumina-ai/lumina-console/internal/logging"
)

// refreshTickMsg carries the epoch of the chain that scheduled it
type refreshTickMsg struct {
	epoch uint64
}

// AutoRefresh drives a repeating tick chain. tea.Tick cannot be cancelled, so
// cancelling bumps the epoch and ticks from older chains are ignored when they
// arrive. Exactly one chain is effective at any time.
type AutoRefresh struct {
	enabled  bool
	epoch    uint64
	interval time.Duration
}

// NewAutoRefresh creates a disabled timer with the given interval
func NewAutoRefresh(interval time.Duration) *AutoRefresh {
	if interval <= 0 {
		interval = domain.DefaultRefreshInterval
	}
	return &AutoRefresh{interval: interval}
}

// Enabled reports whether the timer is running
func (a *AutoRefresh) Enabled() bool {
	return a.enabled
}

// Interval returns the tick interval
func (a *AutoRefresh) Interval() time.Duration {
	return a.interval
}

// SetEnabled starts or stops the chain. Enabling an enabled timer replaces its chain.
func (a *AutoRefresh) SetEnabled(enabled bool) tea.Cmd {
	a.epoch++
	a.enabled = enabled
	logging.Logger.Debug("Auto-refresh toggled", "enabled", enabled, "interval", a.interval, "epoch", a.epoch)
	if !enabled {
		return nil
	}
	return a.schedule()
}

// SetInterval changes the interval, restarting the chain when enabled
func (a *AutoRefresh) SetInterval(d time.Duration) (tea.Cmd, error) {
	if d <= 0 {
		return nil, domain.ErrInvalidInterval
	}
	a.interval = d
	if !a.enabled {
		return nil, nil
	}
	a.epoch++
	logging.Logger.Debug("Auto-refresh interval changed", "interval", d, "epoch", a.epoch)
	return a.schedule(), nil
}

// Stop cancels the chain
func (a *AutoRefresh) Stop() {
	a.SetEnabled(false)
}

// accept reports whether the tick belongs to the live chain and, if so, schedules
// exactly one successor
func (a *AutoRefresh) accept(msg refreshTickMsg) (bool, tea.Cmd) {
	if !a.enabled || msg.epoch != a.epoch {
		return false, nil
	}
	return true, a.schedule()
}

func (a *AutoRefresh) schedule() tea.Cmd {
	epoch := a.epoch
	return tea.Tick(a.interval, func(time.Time) tea.Msg {
		return refreshTickMsg{epoch: epoch}
	})
}
