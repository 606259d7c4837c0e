package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lumina-ai/lumina-console/internal/domain"
	"github.com/lumina-ai/lumina-console/internal/logging"
	"github.com/lumina-ai/lumina-console/internal/metrics"
	"github.com/lumina-ai/lumina-console/internal/ports"
)

// DetailPhase is the state of the detail modal
type DetailPhase int

const (
	DetailIdle DetailPhase = iota
	DetailLoading
	DetailLoaded
	DetailFailed
)

func (p DetailPhase) String() string {
	switch p {
	case DetailLoading:
		return "loading"
	case DetailLoaded:
		return "loaded"
	case DetailFailed:
		return "failed"
	default:
		return "idle"
	}
}

// detailLoadedMsg is the completion of a detail fetch
type detailLoadedMsg struct {
	detail domain.LogDetail
	err    error
	id     string
	token  uint64
}

// DetailLoader runs the open → fetch → show lifecycle of the detail modal.
// Each Open or Close bumps the token; a completion carrying an older token is dropped.
type DetailLoader struct {
	metrics *metrics.Recorder
	reader  ports.LogReader
	timeout time.Duration

	cancel   context.CancelFunc
	err      error
	phase    DetailPhase
	result   *domain.LogDetail
	targetID string
	token    uint64
}

// NewDetailLoader creates an idle DetailLoader
func NewDetailLoader(reader ports.LogReader, timeout time.Duration, recorder *metrics.Recorder) *DetailLoader {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	return &DetailLoader{metrics: recorder, reader: reader, timeout: timeout}
}

// Phase returns the lifecycle phase
func (d *DetailLoader) Phase() DetailPhase { return d.phase }

// TargetID returns the id of the record being shown, or "" when idle
func (d *DetailLoader) TargetID() string { return d.targetID }

// Result returns the loaded detail, or nil unless Loaded
func (d *DetailLoader) Result() *domain.LogDetail { return d.result }

// Err returns the failure, or nil unless Failed
func (d *DetailLoader) Err() error { return d.err }

// IsOpen reports whether the modal is showing
func (d *DetailLoader) IsOpen() bool { return d.phase != DetailIdle }

// Open shows the modal for id and returns the fetch. Opening while another record
// is loading supersedes it.
func (d *DetailLoader) Open(id string) tea.Cmd {
	d.token++
	token := d.token
	d.phase = DetailLoading
	d.targetID = id
	d.result = nil
	d.err = nil

	if d.cancel != nil {
		d.cancel()
	}
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	d.cancel = cancel

	logging.Logger.Debug("Loading log detail", "id", id, "token", token)

	reader := d.reader
	return func() tea.Msg {
		defer cancel()
		detail, err := reader.Detail(ctx, id)
		return detailLoadedMsg{detail: detail, err: err, id: id, token: token}
	}
}

// Close hides the modal. A fetch still in flight becomes inert.
func (d *DetailLoader) Close() {
	d.token++
	d.phase = DetailIdle
	d.targetID = ""
	d.result = nil
	d.err = nil
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
}

// Update applies a completion. It reports whether msg was a detail completion.
func (d *DetailLoader) Update(msg tea.Msg) bool {
	loaded, ok := msg.(detailLoadedMsg)
	if !ok {
		return false
	}

	if loaded.token != d.token {
		d.metrics.DetailFetch(metrics.OutcomeDiscarded)
		logging.Logger.Debug("Discarding log detail",
			"id", loaded.id,
			"token", loaded.token,
			"current_token", d.token,
			"reason", domain.ErrStaleResponse)
		return true
	}

	d.cancel = nil
	if loaded.err != nil {
		d.phase = DetailFailed
		d.err = loaded.err
		d.metrics.DetailFetch(metrics.OutcomeFailed)
		logging.Logger.Warn("Failed to load log detail", "id", loaded.id, "error", loaded.err)
		return true
	}

	detail := loaded.detail
	d.phase = DetailLoaded
	d.result = &detail
	d.metrics.DetailFetch(metrics.OutcomeApplied)
	return true
}
