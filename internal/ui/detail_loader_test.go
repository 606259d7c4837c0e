package ui

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lumina-ai/lumina-console/internal/domain"
	portsmocks "github.com/lumina-ai/lumina-console/internal/ports/mocks"
)

func newTestLoader(t *testing.T) (*DetailLoader, *portsmocks.MockGateway) {
	t.Helper()
	reader := portsmocks.NewMockGateway(t)
	return NewDetailLoader(reader, time.Second, nil), reader
}

func TestDetailLoader_OpenAndLoad(t *testing.T) {
	loader, reader := newTestLoader(t)
	reader.EXPECT().Detail(mock.Anything, "42").Return(domain.LogDetail{ID: "42", RequestModel: "gpt-4o"}, nil)

	cmd := loader.Open("42")
	assert.Equal(t, DetailLoading, loader.Phase())
	assert.Equal(t, "42", loader.TargetID())
	assert.True(t, loader.IsOpen())

	assert.True(t, loader.Update(cmd()))
	assert.Equal(t, DetailLoaded, loader.Phase())
	require.NotNil(t, loader.Result())
	assert.Equal(t, "gpt-4o", loader.Result().RequestModel)
	assert.NoError(t, loader.Err())
}

func TestDetailLoader_LatestOpenWins(t *testing.T) {
	loader, reader := newTestLoader(t)
	reader.EXPECT().Detail(mock.Anything, "A").Return(domain.LogDetail{ID: "A"}, nil)
	reader.EXPECT().Detail(mock.Anything, "B").Return(domain.LogDetail{ID: "B"}, nil)

	slow := loader.Open("A")
	fast := loader.Open("B")

	loader.Update(fast())
	loader.Update(slow())

	assert.Equal(t, DetailLoaded, loader.Phase())
	assert.Equal(t, "B", loader.TargetID())
	assert.Equal(t, "B", loader.Result().ID)
}

func TestDetailLoader_CloseMakesCompletionInert(t *testing.T) {
	loader, reader := newTestLoader(t)
	reader.EXPECT().Detail(mock.Anything, "A").Return(domain.LogDetail{ID: "A"}, nil)

	cmd := loader.Open("A")
	loader.Close()
	assert.True(t, loader.Update(cmd()))

	assert.Equal(t, DetailIdle, loader.Phase())
	assert.False(t, loader.IsOpen())
	assert.Nil(t, loader.Result())
	assert.Empty(t, loader.TargetID())
}

func TestDetailLoader_Failure(t *testing.T) {
	loader, reader := newTestLoader(t)
	reader.EXPECT().Detail(mock.Anything, "404").
		Return(domain.LogDetail{}, &domain.APIError{Code: 404, Message: "log not found"})

	loader.Update(loader.Open("404")())

	assert.Equal(t, DetailFailed, loader.Phase())
	assert.Nil(t, loader.Result())
	var apiErr *domain.APIError
	require.True(t, errors.As(loader.Err(), &apiErr))
	assert.Equal(t, 404, apiErr.Code)
}

func TestDetailLoader_ReopenAfterFailure(t *testing.T) {
	loader, reader := newTestLoader(t)
	reader.EXPECT().Detail(mock.Anything, "A").Return(domain.LogDetail{}, errors.New("timeout")).Once()
	reader.EXPECT().Detail(mock.Anything, "A").Return(domain.LogDetail{ID: "A"}, nil).Once()

	loader.Update(loader.Open("A")())
	require.Equal(t, DetailFailed, loader.Phase())

	loader.Update(loader.Open("A")())
	assert.Equal(t, DetailLoaded, loader.Phase())
	assert.NoError(t, loader.Err())
}

func TestDetailLoader_IgnoresOtherMessages(t *testing.T) {
	loader, _ := newTestLoader(t)
	assert.False(t, loader.Update(refreshTickMsg{}))
	assert.Equal(t, "idle", loader.Phase().String())
}
