package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumina-ai/lumina-console/internal/domain"
)

func TestAutoRefresh_Defaults(t *testing.T) {
	a := NewAutoRefresh(0)
	assert.False(t, a.Enabled())
	assert.Equal(t, domain.DefaultRefreshInterval, a.Interval())
}

func TestAutoRefresh_AcceptsOnlyLiveChain(t *testing.T) {
	a := NewAutoRefresh(5 * time.Second)

	require.NotNil(t, a.SetEnabled(true))
	first := a.epoch
	live, next := a.accept(refreshTickMsg{epoch: first})
	assert.True(t, live)
	assert.NotNil(t, next)

	// Re-enabling replaces the chain
	a.SetEnabled(true)
	live, next = a.accept(refreshTickMsg{epoch: first})
	assert.False(t, live)
	assert.Nil(t, next)

	live, _ = a.accept(refreshTickMsg{epoch: a.epoch})
	assert.True(t, live)
}

func TestAutoRefresh_StopCancelsChain(t *testing.T) {
	a := NewAutoRefresh(5 * time.Second)
	a.SetEnabled(true)
	epoch := a.epoch

	a.Stop()
	assert.False(t, a.Enabled())

	live, next := a.accept(refreshTickMsg{epoch: epoch})
	assert.False(t, live)
	assert.Nil(t, next)

	// A tick carrying the post-stop epoch is still dead while disabled
	live, _ = a.accept(refreshTickMsg{epoch: a.epoch})
	assert.False(t, live)
}

func TestAutoRefresh_SetInterval(t *testing.T) {
	a := NewAutoRefresh(30 * time.Second)

	cmd, err := a.SetInterval(0)
	assert.ErrorIs(t, err, domain.ErrInvalidInterval)
	assert.Nil(t, cmd)
	assert.Equal(t, 30*time.Second, a.Interval())

	cmd, err = a.SetInterval(10 * time.Second)
	require.NoError(t, err)
	assert.Nil(t, cmd, "disabled timer schedules nothing")
	assert.Equal(t, 10*time.Second, a.Interval())

	a.SetEnabled(true)
	old := a.epoch
	cmd, err = a.SetInterval(5 * time.Second)
	require.NoError(t, err)
	assert.NotNil(t, cmd)
	assert.NotEqual(t, old, a.epoch, "interval change restarts the chain")

	live, _ := a.accept(refreshTickMsg{epoch: old})
	assert.False(t, live)
}
