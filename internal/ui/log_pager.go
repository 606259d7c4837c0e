package ui

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lumina-ai/lumina-console/internal/domain"
	"github.com/lumina-ai/lumina-console/internal/logging"
	"github.com/lumina-ai/lumina-console/internal/metrics"
	"github.com/lumina-ai/lumina-console/internal/ports"
)

// DefaultRequestTimeout bounds a single page or detail fetch
const DefaultRequestTimeout = 10 * time.Second

// logPageLoadedMsg is the completion of a page fetch
type logPageLoadedMsg struct {
	err        error
	generation uint64
	mode       domain.FetchMode
	page       domain.LogPage
	reqPage    int
	reqSize    int
}

type pageRequest struct {
	page int
	size int
}

// LogPager holds the request log page state. Every fetch bumps the generation and
// a completion is applied only if it still carries the current generation, so
// responses that resolve out of order can never overwrite newer state.
type LogPager struct {
	auto     *AutoRefresh
	metrics  *metrics.Recorder
	notifier *NotificationCenter
	reader   ports.LogReader
	timeout  time.Duration

	cancelInFlight context.CancelFunc
	currentPage    int
	defaultSize    int
	generation     uint64
	inFlight       pageRequest
	lastErr        error
	loadedAt       time.Time
	loading        bool
	pageSize       int
	records        []domain.LogRecord
	total          int
	totalPages     int
}

// NewLogPager creates a LogPager with default page state
func NewLogPager(reader ports.LogReader, notifier *NotificationCenter, auto *AutoRefresh, pageSize int, timeout time.Duration, recorder *metrics.Recorder) *LogPager {
	if pageSize <= 0 {
		pageSize = domain.DefaultPageSize
	}
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	if auto == nil {
		auto = NewAutoRefresh(domain.DefaultRefreshInterval)
	}
	return &LogPager{
		auto:        auto,
		currentPage: domain.DefaultPage,
		defaultSize: pageSize,
		metrics:     recorder,
		notifier:    notifier,
		pageSize:    pageSize,
		reader:      reader,
		timeout:     timeout,
	}
}

// AutoRefresh returns the timer that triggers background fetches
func (p *LogPager) AutoRefresh() *AutoRefresh { return p.auto }

// CurrentPage returns the 1-based page being shown
func (p *LogPager) CurrentPage() int { return p.currentPage }

// Generation returns the generation of the latest fetch
func (p *LogPager) Generation() uint64 { return p.generation }

// LastError returns the error of the latest failed completion, if any
func (p *LogPager) LastError() error { return p.lastErr }

// LoadedAt returns when records were last applied
func (p *LogPager) LoadedAt() time.Time { return p.loadedAt }

// Loading reports whether the loading indicator is shown
func (p *LogPager) Loading() bool { return p.loading }

// PageSize returns the number of records per page
func (p *LogPager) PageSize() int { return p.pageSize }

// Records returns the records of the current page
func (p *LogPager) Records() []domain.LogRecord { return p.records }

// TotalPages returns ceil(TotalRecords/PageSize)
func (p *LogPager) TotalPages() int { return p.totalPages }

// TotalRecords returns the total reported by the gateway
func (p *LogPager) TotalRecords() int { return p.total }

// Summary renders "Showing X to Y of Z results"
func (p *LogPager) Summary() string {
	return domain.PageSummary(p.currentPage, p.pageSize, p.total)
}

// Mount resets page state to defaults and starts the first foreground fetch and,
// when requested, the auto-refresh chain
func (p *LogPager) Mount(autoRefresh bool) tea.Cmd {
	p.reset()
	return tea.Batch(
		p.FetchPage(domain.DefaultPage, p.defaultSize, domain.Foreground),
		p.auto.SetEnabled(autoRefresh),
	)
}

// Teardown stops auto-refresh and invalidates every in-flight completion
func (p *LogPager) Teardown() {
	p.auto.Stop()
	p.generation++
	p.loading = false
	if p.cancelInFlight != nil {
		p.cancelInFlight()
		p.cancelInFlight = nil
	}
	p.reset()
	logging.Logger.Debug("Log view torn down", "generation", p.generation)
}

func (p *LogPager) reset() {
	p.currentPage = domain.DefaultPage
	p.lastErr = nil
	p.loadedAt = time.Time{}
	p.pageSize = p.defaultSize
	p.records = nil
	p.total = 0
	p.totalPages = 0
}

// FetchPage starts a fetch and returns the command performing it. Foreground fetches
// show the loading indicator, background fetches never touch it.
func (p *LogPager) FetchPage(page, size int, mode domain.FetchMode) tea.Cmd {
	p.generation++
	generation := p.generation

	// A superseded request can never be applied, so stop waiting for it
	if p.cancelInFlight != nil {
		p.cancelInFlight()
	}
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	p.cancelInFlight = cancel
	p.inFlight = pageRequest{page: page, size: size}

	if mode == domain.Foreground {
		p.loading = true
	}

	logging.Logger.Debug("Fetching log page",
		"page", page,
		"size", size,
		"mode", mode,
		"generation", generation)

	reader := p.reader
	return func() tea.Msg {
		defer cancel()
		result, err := reader.Page(ctx, page, size)
		return logPageLoadedMsg{
			err:        err,
			generation: generation,
			mode:       mode,
			page:       result,
			reqPage:    page,
			reqSize:    size,
		}
	}
}

// ChangePage fetches page n in the foreground. Pages outside [1, TotalPages] are ignored.
func (p *LogPager) ChangePage(n int) tea.Cmd {
	if n < 1 || n > p.totalPages {
		logging.Logger.Debug("Ignoring page change", "page", n, "total_pages", p.totalPages, "error", domain.ErrInvalidPage)
		return nil
	}
	return p.FetchPage(n, p.target().size, domain.Foreground)
}

// NextPage moves one page past the page shown or, while a page change is loading,
// past the page requested
func (p *LogPager) NextPage() tea.Cmd { return p.ChangePage(p.target().page + 1) }

// PrevPage moves back one page from the same origin as NextPage
func (p *LogPager) PrevPage() tea.Cmd { return p.ChangePage(p.target().page - 1) }

// FirstPage jumps to page 1
func (p *LogPager) FirstPage() tea.Cmd { return p.ChangePage(1) }

// LastPage jumps to the last page
func (p *LogPager) LastPage() tea.Cmd { return p.ChangePage(p.totalPages) }

// ChangePageSize fetches page 1 with the new size. Non-positive sizes are ignored.
func (p *LogPager) ChangePageSize(n int) tea.Cmd {
	if n <= 0 {
		logging.Logger.Debug("Ignoring page size change", "size", n, "error", domain.ErrInvalidPageSize)
		return nil
	}
	return p.FetchPage(domain.DefaultPage, n, domain.Foreground)
}

// CyclePageSize moves to the page size after the one shown or being loaded
func (p *LogPager) CyclePageSize() tea.Cmd {
	return p.ChangePageSize(domain.NextPageSize(p.target().size))
}

// ManualRefresh fetches the page the user is looking at, or the one they last asked for
// if that request is still loading
func (p *LogPager) ManualRefresh() tea.Cmd {
	target := p.target()
	return p.FetchPage(target.page, target.size, domain.Foreground)
}

func (p *LogPager) target() pageRequest {
	if p.loading {
		return p.inFlight
	}
	return pageRequest{page: p.currentPage, size: p.pageSize}
}

// Update handles page completions and auto-refresh ticks
func (p *LogPager) Update(msg tea.Msg) (handled bool, cmd tea.Cmd) {
	switch msg := msg.(type) {
	case logPageLoadedMsg:
		return true, p.applyPage(msg)

	case refreshTickMsg:
		live, next := p.auto.accept(msg)
		if !live {
			return true, nil
		}
		// A timer never supersedes a page change the user is waiting for
		if p.loading {
			logging.Logger.Debug("Skipping background refresh, foreground fetch in flight")
			return true, next
		}
		return true, tea.Batch(next, p.FetchPage(p.currentPage, p.pageSize, domain.Background))
	}
	return false, nil
}

func (p *LogPager) applyPage(msg logPageLoadedMsg) tea.Cmd {
	if msg.generation != p.generation {
		p.metrics.PageFetch(msg.mode.String(), metrics.OutcomeDiscarded)
		logging.Logger.Debug("Discarding log page",
			"generation", msg.generation,
			"current_generation", p.generation,
			"reason", domain.ErrStaleResponse)
		return nil
	}

	p.loading = false
	p.cancelInFlight = nil

	if msg.err != nil {
		p.lastErr = msg.err
		p.metrics.PageFetch(msg.mode.String(), metrics.OutcomeFailed)
		// The owner of the pager sends the operator back to the login form
		if errors.Is(msg.err, domain.ErrNotAuthenticated) {
			logging.Logger.Warn("Log fetch refused, session ended", "mode", msg.mode)
			return nil
		}
		if msg.mode == domain.Background {
			logging.Logger.Warn("Background log refresh failed", "error", msg.err)
			return nil
		}
		logging.Logger.Error("Failed to load request logs", "page", msg.reqPage, "error", msg.err)
		return p.notifier.Error(fetchFailureText("Failed to load request logs", msg.err))
	}

	size := msg.page.Size
	if size <= 0 {
		size = msg.reqSize
	}
	current := msg.page.Current
	if current <= 0 {
		current = msg.reqPage
	}

	p.lastErr = nil
	p.loadedAt = time.Now()
	p.pageSize = size
	p.records = msg.page.Records
	p.total = max(msg.page.Total, 0)
	p.totalPages = domain.TotalPages(p.total, size)
	p.currentPage = domain.ClampPage(current, p.totalPages)
	p.metrics.PageFetch(msg.mode.String(), metrics.OutcomeApplied)

	if msg.page.Pages != p.totalPages {
		logging.Logger.Debug("Gateway page count differs from computed value",
			"reported", msg.page.Pages,
			"computed", p.totalPages)
	}

	// Records shrank under us; show the last page that exists instead. Only a
	// gateway that echoed the requested page is asked again, so each refetch
	// targets a strictly lower page and the chain ends.
	if p.currentPage != current && p.total > 0 && current == msg.reqPage {
		logging.Logger.Debug("Requested page no longer exists", "requested", current, "clamped", p.currentPage)
		return p.FetchPage(p.currentPage, size, msg.mode)
	}
	if p.currentPage != current {
		logging.Logger.Warn("Gateway reported a page outside the listing",
			"requested", msg.reqPage,
			"reported", current,
			"total_pages", p.totalPages)
	}
	return nil
}

// fetchFailureText turns a fetch error into a single line for a notification
func fetchFailureText(prefix string, err error) string {
	var apiErr *domain.APIError
	switch {
	case errors.Is(err, domain.ErrNotAuthenticated):
		return prefix + ": not logged in"
	case errors.As(err, &apiErr) && apiErr.Code == 401:
		return prefix + ": the gateway rejected the session, log out and in again"
	case errors.As(err, &apiErr):
		return fmt.Sprintf("%s: %s", prefix, apiErr.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return prefix + ": request timed out"
	default:
		return fmt.Sprintf("%s: %v", prefix, err)
	}
}
