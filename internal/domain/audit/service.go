package audit

import (
	"context"
	"errors"
)

var ErrInvalidAction = errors.New("unknown audit action")

type Service struct {
	repo EntryRepository
}

func NewService(repo EntryRepository) *Service {
	return &Service{repo: repo}
}

// Record appends one transition entry to the trail.
func (s *Service) Record(ctx context.Context, e *Entry) error {
	if !e.Action.Valid() {
		return ErrInvalidAction
	}
	return s.repo.Create(ctx, e)
}

// ListEntries returns entries matching the filter, newest first.
func (s *Service) ListEntries(ctx context.Context, f Filter, limit, offset int) ([]*Entry, int, error) {
	if f.Action != "" && !f.Action.Valid() {
		return nil, 0, ErrInvalidAction
	}
	return s.repo.List(ctx, f, limit, offset)
}
