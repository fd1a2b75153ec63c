package bed

import (
	"context"

	"github.com/google/uuid"

	"github.com/leitos/leitos/internal/domain/audit"
	"github.com/leitos/leitos/internal/domain/patient"
)

type BedRepository interface {
	Create(ctx context.Context, b *Bed) error
	GetByID(ctx context.Context, id uuid.UUID) (*Bed, error)
	// GetForUpdate loads a bed with a row lock so conflicting occupancy
	// transitions serialize. Must be called inside a transaction.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*Bed, error)
	GetByPatient(ctx context.Context, patientID uuid.UUID) (*Bed, error)
	Update(ctx context.Context, b *Bed) error
	List(ctx context.Context, limit, offset int) ([]*View, int, error)
	CountOccupied(ctx context.Context) (int64, error)
}

// PatientDirectory is the slice of the patient store the engine needs.
type PatientDirectory interface {
	GetByID(ctx context.Context, id uuid.UUID) (*patient.Patient, error)
	GetByCPF(ctx context.Context, cpf string) (*patient.Patient, error)
}

// AuditAppender writes transition entries inside the engine's transaction.
type AuditAppender interface {
	Create(ctx context.Context, e *audit.Entry) error
}

// TxRunner runs a function inside a database transaction carried through
// the context. db.Runner satisfies it.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// TransitionMetrics receives occupancy transition outcomes.
// telemetry.Metrics satisfies it.
type TransitionMetrics interface {
	RecordTransition(action string, err error)
	SetOccupiedBeds(n int64)
}
