package bed

import (
	"time"

	"github.com/google/uuid"
)

// Status is the occupancy state of a bed.
type Status string

const (
	StatusFree        Status = "FREE"
	StatusOccupied    Status = "OCCUPIED"
	StatusMaintenance Status = "MAINTENANCE"
)

// Kind classifies a bed by ward type.
type Kind string

const (
	KindICU         Kind = "ICU"
	KindWard        Kind = "WARD"
	KindPrivateRoom Kind = "PRIVATE_ROOM"
)

// Valid reports whether the kind is one of the known ward types.
func (k Kind) Valid() bool {
	switch k {
	case KindICU, KindWard, KindPrivateRoom:
		return true
	}
	return false
}

// Bed is a hospital bed. PatientID is set exactly when Status is
// OCCUPIED; the database enforces both that pairing and that a patient
// occupies at most one bed.
type Bed struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	Code      string     `db:"code" json:"code"`
	Kind      Kind       `db:"kind" json:"kind"`
	Status    Status     `db:"status" json:"status"`
	PatientID *uuid.UUID `db:"patient_id" json:"patient_id,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
}

// View is a bed with its occupant's name resolved for listings.
type View struct {
	Bed
	OccupantName *string `json:"occupant_name,omitempty"`
}

// LookupResult is the answer to a where-is-this-patient query.
type LookupResult struct {
	PatientName string `json:"patient_name"`
	CPF         string `json:"cpf"`
	Admitted    bool   `json:"admitted"`
	BedCode     string `json:"bed_code,omitempty"`
	BedKind     Kind   `json:"bed_kind,omitempty"`
	BedStatus   Status `json:"bed_status,omitempty"`
	Message     string `json:"message,omitempty"`
}
