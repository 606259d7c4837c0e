package ui

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lumina-ai/lumina-console/internal/domain"
	"github.com/lumina-ai/lumina-console/internal/metrics"
	portsmocks "github.com/lumina-ai/lumina-console/internal/ports/mocks"
)

func makePage(current, size, total int, prefix string) domain.LogPage {
	start := (current - 1) * size
	end := min(start+size, total)
	records := []domain.LogRecord{}
	for i := start; i < end; i++ {
		records = append(records, domain.LogRecord{ID: fmt.Sprintf("%s-%d", prefix, i)})
	}
	return domain.LogPage{
		Current: current,
		Pages:   domain.TotalPages(total, size),
		Records: records,
		Size:    size,
		Total:   total,
	}
}

func newTestPager(t *testing.T) (*LogPager, *portsmocks.MockGateway, *NotificationCenter) {
	t.Helper()
	reader := portsmocks.NewMockGateway(t)
	notifier, _ := newTestCenter(5)
	pager := NewLogPager(reader, notifier, NewAutoRefresh(30*time.Second), 10, time.Second, metrics.New())
	return pager, reader, notifier
}

// apply runs a fetch command and feeds its completion back to the pager
func apply(t *testing.T, p *LogPager, cmd tea.Cmd) tea.Cmd {
	t.Helper()
	require.NotNil(t, cmd)
	msg := cmd()
	handled, next := p.Update(msg)
	require.True(t, handled)
	return next
}

// loadInitial puts the pager on page 1 of a 25-record listing
func loadInitial(t *testing.T, p *LogPager, reader *portsmocks.MockGateway) {
	t.Helper()
	reader.EXPECT().Page(mock.Anything, 1, 10).Return(makePage(1, 10, 25, "init"), nil).Once()
	apply(t, p, p.FetchPage(1, 10, domain.Foreground))
	require.Equal(t, 3, p.TotalPages())
}

func TestFetchPage_AppliesResult(t *testing.T) {
	pager, reader, _ := newTestPager(t)

	cmd := pager.FetchPage(1, 10, domain.Foreground)
	assert.True(t, pager.Loading())

	reader.EXPECT().Page(mock.Anything, 1, 10).Return(makePage(1, 10, 25, "p"), nil)
	apply(t, pager, cmd)

	assert.False(t, pager.Loading())
	assert.Equal(t, 1, pager.CurrentPage())
	assert.Equal(t, 10, pager.PageSize())
	assert.Equal(t, 25, pager.TotalRecords())
	assert.Equal(t, 3, pager.TotalPages())
	assert.Len(t, pager.Records(), 10)
	assert.Equal(t, "Showing 1 to 10 of 25 results", pager.Summary())
}

func TestFetchPage_LatestGenerationWins(t *testing.T) {
	pager, reader, _ := newTestPager(t)
	loadInitial(t, pager, reader)

	reader.EXPECT().Page(mock.Anything, 2, 10).Return(makePage(2, 10, 25, "slow"), nil)
	reader.EXPECT().Page(mock.Anything, 3, 10).Return(makePage(3, 10, 25, "fast"), nil)

	slow := pager.FetchPage(2, 10, domain.Foreground)
	fast := pager.FetchPage(3, 10, domain.Foreground)

	apply(t, pager, fast)
	assert.Equal(t, 3, pager.CurrentPage())
	assert.False(t, pager.Loading())

	apply(t, pager, slow)
	assert.Equal(t, 3, pager.CurrentPage(), "stale completion discarded")
	assert.Equal(t, "fast-20", pager.Records()[0].ID)
	assert.False(t, pager.Loading())
}

func TestFetchPage_StaleCompletionKeepsLoadingForNewer(t *testing.T) {
	pager, reader, _ := newTestPager(t)
	loadInitial(t, pager, reader)

	reader.EXPECT().Page(mock.Anything, 2, 10).Return(makePage(2, 10, 25, "a"), nil)
	reader.EXPECT().Page(mock.Anything, 3, 10).Return(makePage(3, 10, 25, "b"), nil)

	first := pager.FetchPage(2, 10, domain.Foreground)
	second := pager.FetchPage(3, 10, domain.Foreground)

	apply(t, pager, first)
	assert.True(t, pager.Loading(), "newer foreground fetch still in flight")
	assert.Equal(t, 1, pager.CurrentPage())

	apply(t, pager, second)
	assert.False(t, pager.Loading())
}

func TestChangePage_OutOfRangeIsNoop(t *testing.T) {
	pager, reader, _ := newTestPager(t)

	assert.Nil(t, pager.ChangePage(1), "nothing loaded yet")

	loadInitial(t, pager, reader)
	generation := pager.Generation()

	for _, n := range []int{0, -1, 4} {
		assert.Nil(t, pager.ChangePage(n), "page %d", n)
	}
	assert.Equal(t, generation, pager.Generation())
	assert.Equal(t, 1, pager.CurrentPage())
	assert.False(t, pager.Loading())
}

func TestChangePage_LastPage(t *testing.T) {
	pager, reader, _ := newTestPager(t)
	loadInitial(t, pager, reader)

	reader.EXPECT().Page(mock.Anything, 3, 10).Return(makePage(3, 10, 25, "p"), nil)
	apply(t, pager, pager.LastPage())

	assert.Equal(t, 3, pager.CurrentPage())
	assert.Len(t, pager.Records(), 5)
	assert.Nil(t, pager.NextPage(), "no page after the last")
	assert.Equal(t, "Showing 21 to 25 of 25 results", pager.Summary())
}

func TestChangePageSize_ResetsToFirstPage(t *testing.T) {
	pager, reader, _ := newTestPager(t)
	loadInitial(t, pager, reader)

	reader.EXPECT().Page(mock.Anything, 3, 10).Return(makePage(3, 10, 25, "p"), nil)
	apply(t, pager, pager.ChangePage(3))
	require.Equal(t, 3, pager.CurrentPage())

	reader.EXPECT().Page(mock.Anything, 1, 20).Return(makePage(1, 20, 25, "big"), nil)
	apply(t, pager, pager.ChangePageSize(20))

	assert.Equal(t, 1, pager.CurrentPage())
	assert.Equal(t, 20, pager.PageSize())
	assert.Equal(t, 2, pager.TotalPages())

	assert.Nil(t, pager.ChangePageSize(0))
}

func TestFetchPage_ForegroundFailureNotifies(t *testing.T) {
	pager, reader, notifier := newTestPager(t)
	loadInitial(t, pager, reader)
	before := pager.Records()

	reader.EXPECT().Page(mock.Anything, 2, 10).
		Return(domain.LogPage{}, &domain.FetchError{Op: "fetch log page", Err: &domain.APIError{Code: 500, Message: "boom"}})

	next := apply(t, pager, pager.ChangePage(2))

	assert.NotNil(t, next, "notification commands returned")
	assert.False(t, pager.Loading())
	assert.Equal(t, 1, pager.CurrentPage())
	assert.Equal(t, before, pager.Records())
	assert.Error(t, pager.LastError())

	active := notifier.Active()
	require.Len(t, active, 1)
	assert.Equal(t, domain.NotificationError, active[0].Kind)
	assert.Contains(t, active[0].Text, "boom")
}

func TestFetchPage_BackgroundFailureIsSilent(t *testing.T) {
	pager, reader, notifier := newTestPager(t)
	loadInitial(t, pager, reader)

	reader.EXPECT().Page(mock.Anything, 1, 10).Return(domain.LogPage{}, errors.New("connection reset"))

	cmd := pager.FetchPage(1, 10, domain.Background)
	assert.False(t, pager.Loading(), "background never shows the indicator")

	next := apply(t, pager, cmd)
	assert.Nil(t, next)
	assert.Empty(t, notifier.Active())
	assert.Len(t, pager.Records(), 10)
}

func TestFetchPage_ClampsWhenRecordsShrink(t *testing.T) {
	pager, reader, _ := newTestPager(t)
	loadInitial(t, pager, reader)

	reader.EXPECT().Page(mock.Anything, 3, 10).Return(domain.LogPage{Current: 3, Size: 10, Total: 15}, nil)
	reader.EXPECT().Page(mock.Anything, 2, 10).Return(makePage(2, 10, 15, "p"), nil)

	refetch := apply(t, pager, pager.ChangePage(3))
	assert.Equal(t, 2, pager.CurrentPage())
	assert.Equal(t, 2, pager.TotalPages())

	apply(t, pager, refetch)
	assert.Equal(t, 2, pager.CurrentPage())
	assert.Len(t, pager.Records(), 5)
}

func TestFetchPage_ClampRefetchStopsWhenGatewayIgnoresPage(t *testing.T) {
	pager, reader, _ := newTestPager(t)
	loadInitial(t, pager, reader)

	// This gateway reports page 3 of a 15-record listing whatever it is asked for
	reader.EXPECT().Page(mock.Anything, mock.Anything, 10).Return(domain.LogPage{Current: 3, Size: 10, Total: 15}, nil)

	refetch := apply(t, pager, pager.ChangePage(3))
	require.NotNil(t, refetch, "one refetch of the last existing page")

	next := apply(t, pager, refetch)
	assert.Nil(t, next, "no second refetch")
	assert.False(t, pager.Loading())
	assert.Equal(t, 2, pager.CurrentPage())
	assert.Equal(t, 2, pager.TotalPages())
	reader.AssertNumberOfCalls(t, "Page", 3)
}

func TestNextPage_WhileLoadingAdvancesFromRequestedPage(t *testing.T) {
	pager, reader, _ := newTestPager(t)
	loadInitial(t, pager, reader)

	reader.EXPECT().Page(mock.Anything, 2, 10).Return(makePage(2, 10, 25, "two"), nil).Once()
	reader.EXPECT().Page(mock.Anything, 3, 10).Return(makePage(3, 10, 25, "three"), nil).Once()

	first := pager.NextPage()
	second := pager.NextPage()
	require.NotNil(t, second)

	apply(t, pager, first)
	apply(t, pager, second)
	assert.Equal(t, 3, pager.CurrentPage())
	assert.Equal(t, "three-20", pager.Records()[0].ID)

	// Back two pages with the first step still in flight
	reader.EXPECT().Page(mock.Anything, 2, 10).Return(makePage(2, 10, 25, "two"), nil).Once()
	reader.EXPECT().Page(mock.Anything, 1, 10).Return(makePage(1, 10, 25, "one"), nil).Once()
	first = pager.PrevPage()
	second = pager.PrevPage()
	apply(t, pager, second)
	apply(t, pager, first)
	assert.Equal(t, 1, pager.CurrentPage())
	assert.Nil(t, pager.PrevPage(), "no page before the first")
}

func TestCyclePageSize_WhileLoadingAdvancesFromRequestedSize(t *testing.T) {
	pager, reader, _ := newTestPager(t)
	loadInitial(t, pager, reader)

	reader.EXPECT().Page(mock.Anything, 1, 20).Return(makePage(1, 20, 25, "twenty"), nil).Once()
	reader.EXPECT().Page(mock.Anything, 1, 50).Return(makePage(1, 50, 25, "fifty"), nil).Once()

	first := pager.CyclePageSize()
	second := pager.CyclePageSize()

	apply(t, pager, first)
	apply(t, pager, second)
	assert.Equal(t, 50, pager.PageSize())
	assert.Equal(t, 1, pager.TotalPages())
}

func TestManualRefresh(t *testing.T) {
	pager, reader, _ := newTestPager(t)
	loadInitial(t, pager, reader)

	reader.EXPECT().Page(mock.Anything, 1, 10).Return(makePage(1, 10, 26, "fresh"), nil)
	apply(t, pager, pager.ManualRefresh())

	assert.Equal(t, 26, pager.TotalRecords())
	assert.Equal(t, "fresh-0", pager.Records()[0].ID)
}

func TestManualRefresh_WhileLoadingTargetsRequestedPage(t *testing.T) {
	pager, reader, _ := newTestPager(t)
	loadInitial(t, pager, reader)

	reader.EXPECT().Page(mock.Anything, 3, 10).Return(makePage(3, 10, 25, "p"), nil)

	pending := pager.ChangePage(3)
	refresh := pager.ManualRefresh()

	apply(t, pager, refresh)
	apply(t, pager, pending)
	assert.Equal(t, 3, pager.CurrentPage())
}

func TestAutoRefreshTick_FetchesInBackground(t *testing.T) {
	pager, reader, _ := newTestPager(t)
	loadInitial(t, pager, reader)
	require.NotNil(t, pager.AutoRefresh().SetEnabled(true))

	generation := pager.Generation()
	handled, cmd := pager.Update(refreshTickMsg{epoch: pager.AutoRefresh().epoch})
	assert.True(t, handled)
	assert.NotNil(t, cmd)
	assert.Equal(t, generation+1, pager.Generation())
	assert.False(t, pager.Loading())
}

func TestAutoRefreshTick_SkippedDuringForegroundFetch(t *testing.T) {
	pager, reader, _ := newTestPager(t)
	loadInitial(t, pager, reader)
	pager.AutoRefresh().SetEnabled(true)

	reader.EXPECT().Page(mock.Anything, 2, 10).Return(makePage(2, 10, 25, "user"), nil)
	userFetch := pager.ChangePage(2)
	generation := pager.Generation()

	_, next := pager.Update(refreshTickMsg{epoch: pager.AutoRefresh().epoch})
	assert.NotNil(t, next, "chain continues")
	assert.Equal(t, generation, pager.Generation(), "no background fetch issued")

	apply(t, pager, userFetch)
	assert.Equal(t, 2, pager.CurrentPage())
}

func TestTeardown_StopsTimerAndInvalidatesInFlight(t *testing.T) {
	pager, reader, _ := newTestPager(t)
	loadInitial(t, pager, reader)
	pager.AutoRefresh().SetEnabled(true)
	liveEpoch := pager.AutoRefresh().epoch

	reader.EXPECT().Page(mock.Anything, 2, 10).Return(makePage(2, 10, 25, "late"), nil)
	inFlight := pager.ChangePage(2)

	pager.Teardown()
	generation := pager.Generation()

	assert.False(t, pager.AutoRefresh().Enabled())
	assert.False(t, pager.Loading())

	_, cmd := pager.Update(refreshTickMsg{epoch: liveEpoch})
	assert.Nil(t, cmd, "tick from the cancelled chain neither fetches nor reschedules")
	assert.Equal(t, generation, pager.Generation())

	apply(t, pager, inFlight)
	assert.Empty(t, pager.Records(), "completion for the unmounted view is inert")
	assert.Equal(t, 1, pager.CurrentPage())
}

func TestMount_RemountIgnoresOldCompletions(t *testing.T) {
	pager, reader, _ := newTestPager(t)

	reader.EXPECT().Page(mock.Anything, 1, 10).Return(makePage(1, 10, 25, "old"), nil).Once()
	old := pager.FetchPage(1, 10, domain.Foreground)
	pager.Teardown()

	pager.Mount(false)
	generation := pager.Generation()

	msg := old()
	pager.Update(msg)
	assert.Empty(t, pager.Records())
	assert.True(t, pager.Loading(), "remount fetch still pending")
	assert.Equal(t, generation, pager.Generation())
}

func TestFetchFailureText(t *testing.T) {
	assert.Contains(t, fetchFailureText("x", domain.ErrNotAuthenticated), "not logged in")
	assert.Contains(t, fetchFailureText("x", &domain.APIError{Code: 401}), "rejected the session")
	assert.Contains(t, fetchFailureText("x", context.DeadlineExceeded), "timed out")
}
