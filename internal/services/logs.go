package services

import (
	"context"
	"fmt"

	"github.com/lumina-ai/lumina-console/internal/domain"
	"github.com/lumina-ai/lumina-console/internal/ports"
)

// LogService reads request logs on behalf of the current session
type LogService struct {
	reader   ports.LogReader
	sessions *SessionService
}

// Verify interface compliance at compile time
var _ ports.LogReader = (*LogService)(nil)

// NewLogService creates a new LogService
func NewLogService(reader ports.LogReader, sessions *SessionService) *LogService {
	return &LogService{reader: reader, sessions: sessions}
}

// Page fetches one page of request logs. It refuses to issue a request without a session.
func (s *LogService) Page(ctx context.Context, page, size int) (domain.LogPage, error) {
	if !s.sessions.Current().IsAuthenticated() {
		return domain.LogPage{}, domain.ErrNotAuthenticated
	}
	if page < 1 {
		return domain.LogPage{}, fmt.Errorf("page %d: %w", page, domain.ErrInvalidPage)
	}
	if size < 1 {
		return domain.LogPage{}, fmt.Errorf("size %d: %w", size, domain.ErrInvalidPageSize)
	}

	result, err := s.reader.Page(ctx, page, size)
	if err != nil {
		return domain.LogPage{}, &domain.FetchError{Op: "fetch log page", Err: err}
	}
	if result.Size <= 0 {
		result.Size = size
	}
	if result.Current <= 0 {
		result.Current = page
	}
	return result, nil
}

// Detail fetches a single request log
func (s *LogService) Detail(ctx context.Context, id string) (domain.LogDetail, error) {
	if !s.sessions.Current().IsAuthenticated() {
		return domain.LogDetail{}, domain.ErrNotAuthenticated
	}

	detail, err := s.reader.Detail(ctx, id)
	if err != nil {
		return domain.LogDetail{}, &domain.FetchError{Op: "fetch log detail", Err: err}
	}
	return detail, nil
}
