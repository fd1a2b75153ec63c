package audit

import (
	"context"

	"github.com/google/uuid"
)

// Filter narrows audit entry listings. Zero-value fields are ignored.
type Filter struct {
	BedID     *uuid.UUID
	PatientID *uuid.UUID
	Action    Action
}

type EntryRepository interface {
	Create(ctx context.Context, e *Entry) error
	List(ctx context.Context, f Filter, limit, offset int) ([]*Entry, int, error)
}
