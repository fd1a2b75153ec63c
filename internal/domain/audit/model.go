package audit

import (
	"time"

	"github.com/google/uuid"
)

// Action identifies the occupancy transition an audit entry records.
type Action string

const (
	ActionOccupy   Action = "OCCUPY"
	ActionRelease  Action = "RELEASE"
	ActionTransfer Action = "TRANSFER"
)

// Valid reports whether the action is one of the known transition kinds.
func (a Action) Valid() bool {
	switch a {
	case ActionOccupy, ActionRelease, ActionTransfer:
		return true
	}
	return false
}

// Entry is an append-only record of a bed occupancy transition. Bed and
// patient references are nullable so entries survive deletion of either.
type Entry struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	BedID     *uuid.UUID `db:"bed_id" json:"bed_id,omitempty"`
	PatientID *uuid.UUID `db:"patient_id" json:"patient_id,omitempty"`
	Action    Action     `db:"action" json:"action"`
	Details   string     `db:"details" json:"details"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
}
