package bed

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/leitos/leitos/internal/domain/audit"
	"github.com/leitos/leitos/internal/domain/patient"
	"github.com/leitos/leitos/internal/platform/db"
	"github.com/leitos/leitos/pkg/cpf"
)

// Service is the bed occupancy engine. Every mutating operation runs in
// a single transaction covering the state change and its audit entry; row
// locks serialize writers touching the same bed.
type Service struct {
	beds     BedRepository
	patients PatientDirectory
	audits   AuditAppender
	tx       TxRunner
	metrics  TransitionMetrics
	log      zerolog.Logger
}

func NewService(beds BedRepository, patients PatientDirectory, audits AuditAppender,
	tx TxRunner, metrics TransitionMetrics, log zerolog.Logger) *Service {
	return &Service{
		beds:     beds,
		patients: patients,
		audits:   audits,
		tx:       tx,
		metrics:  metrics,
		log:      log,
	}
}

// RegisterBed validates and stores a new bed. Kind defaults to WARD and
// the bed always starts FREE.
func (s *Service) RegisterBed(ctx context.Context, b *Bed) error {
	b.Code = strings.TrimSpace(b.Code)
	if b.Code == "" {
		return ErrCodeRequired
	}
	if b.Kind == "" {
		b.Kind = KindWard
	}
	if !b.Kind.Valid() {
		return ErrInvalidKind
	}
	b.Status = StatusFree
	b.PatientID = nil

	if err := s.beds.Create(ctx, b); err != nil {
		if db.IsUniqueViolation(err, "beds_code_key") {
			return ErrCodeTaken
		}
		return err
	}
	return nil
}

// GetBed returns a single bed by id.
func (s *Service) GetBed(ctx context.Context, id uuid.UUID) (*Bed, error) {
	b, err := s.beds.GetByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, ErrBedNotFound
		}
		return nil, err
	}
	return b, nil
}

// ListBeds returns a page of beds with occupant names resolved.
func (s *Service) ListBeds(ctx context.Context, limit, offset int) ([]*View, int, error) {
	return s.beds.List(ctx, limit, offset)
}

// Occupy admits a patient to a bed. The bed must be FREE and the patient
// must not occupy any other bed; the unique constraint on the occupant
// column is authoritative under concurrency.
func (s *Service) Occupy(ctx context.Context, bedID, patientID uuid.UUID) (*Bed, error) {
	var result *Bed
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		b, err := s.beds.GetForUpdate(ctx, bedID)
		if err != nil {
			if db.IsNotFound(err) {
				return ErrBedNotFound
			}
			return err
		}
		p, err := s.patients.GetByID(ctx, patientID)
		if err != nil {
			if db.IsNotFound(err) {
				return ErrPatientNotFound
			}
			return err
		}
		if b.Status != StatusFree {
			return ErrBedUnavailable
		}
		if _, err := s.beds.GetByPatient(ctx, patientID); err == nil {
			return ErrPatientAlreadyAdmitted
		} else if !db.IsNotFound(err) {
			return err
		}

		b.Status = StatusOccupied
		b.PatientID = &p.ID
		if err := s.beds.Update(ctx, b); err != nil {
			if db.IsUniqueViolation(err, "beds_patient_id_key") {
				return ErrPatientAlreadyAdmitted
			}
			return err
		}

		if err := s.audits.Create(ctx, &audit.Entry{
			BedID:     &b.ID,
			PatientID: &p.ID,
			Action:    audit.ActionOccupy,
			Details:   fmt.Sprintf("patient %s admitted to bed %s", p.Name, b.Code),
		}); err != nil {
			return err
		}
		result = b
		return nil
	})

	s.metrics.RecordTransition(string(audit.ActionOccupy), err)
	if err != nil {
		return nil, err
	}
	s.log.Info().
		Str("bed_id", bedID.String()).
		Str("patient_id", patientID.String()).
		Str("bed_code", result.Code).
		Msg("bed occupied")
	s.refreshOccupiedGauge(ctx)
	return result, nil
}

// Release frees a bed. Releasing a bed without an occupant still
// re-asserts FREE and audits, so repeated releases are safe.
func (s *Service) Release(ctx context.Context, bedID uuid.UUID) (*Bed, error) {
	var result *Bed
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		b, err := s.beds.GetForUpdate(ctx, bedID)
		if err != nil {
			if db.IsNotFound(err) {
				return ErrBedNotFound
			}
			return err
		}

		prior := b.PatientID
		details := fmt.Sprintf("bed %s released (no occupant)", b.Code)
		if prior != nil {
			details = fmt.Sprintf("bed %s released", b.Code)
			if p, err := s.patients.GetByID(ctx, *prior); err == nil {
				details = fmt.Sprintf("bed %s released by patient %s", b.Code, p.Name)
			}
		}

		b.Status = StatusFree
		b.PatientID = nil
		if err := s.beds.Update(ctx, b); err != nil {
			return err
		}

		if err := s.audits.Create(ctx, &audit.Entry{
			BedID:     &b.ID,
			PatientID: prior,
			Action:    audit.ActionRelease,
			Details:   details,
		}); err != nil {
			return err
		}
		result = b
		return nil
	})

	s.metrics.RecordTransition(string(audit.ActionRelease), err)
	if err != nil {
		return nil, err
	}
	s.log.Info().
		Str("bed_id", bedID.String()).
		Str("bed_code", result.Code).
		Msg("bed released")
	s.refreshOccupiedGauge(ctx)
	return result, nil
}

// Transfer moves the occupant of one bed to another. Source is freed and
// destination occupied in the same transaction, recorded by exactly one
// TRANSFER audit entry. Beds are locked in ascending id order so two
// opposing transfers cannot deadlock.
func (s *Service) Transfer(ctx context.Context, srcID, dstID uuid.UUID) (*Bed, error) {
	var result *Bed
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		first, second := srcID, dstID
		if bytes.Compare(dstID[:], srcID[:]) < 0 {
			first, second = dstID, srcID
		}

		locked := make(map[uuid.UUID]*Bed, 2)
		for _, id := range []uuid.UUID{first, second} {
			if _, ok := locked[id]; ok {
				continue
			}
			b, err := s.beds.GetForUpdate(ctx, id)
			if err != nil {
				if db.IsNotFound(err) {
					return ErrBedNotFound
				}
				return err
			}
			locked[id] = b
		}
		src, dst := locked[srcID], locked[dstID]

		if src.PatientID == nil {
			return ErrNoPatientAtSource
		}
		if dst.Status != StatusFree {
			return ErrDestinationUnavailable
		}

		moved := *src.PatientID

		// Free the source first so the occupant uniqueness constraint
		// never sees the patient in two beds.
		src.Status = StatusFree
		src.PatientID = nil
		if err := s.beds.Update(ctx, src); err != nil {
			return err
		}

		dst.Status = StatusOccupied
		dst.PatientID = &moved
		if err := s.beds.Update(ctx, dst); err != nil {
			if db.IsUniqueViolation(err, "beds_patient_id_key") {
				return ErrPatientAlreadyAdmitted
			}
			return err
		}

		details := fmt.Sprintf("patient moved from bed %s to bed %s", src.Code, dst.Code)
		if p, err := s.patients.GetByID(ctx, moved); err == nil {
			details = fmt.Sprintf("patient %s moved from bed %s to bed %s", p.Name, src.Code, dst.Code)
		}

		if err := s.audits.Create(ctx, &audit.Entry{
			BedID:     &dst.ID,
			PatientID: &moved,
			Action:    audit.ActionTransfer,
			Details:   details,
		}); err != nil {
			return err
		}
		result = dst
		return nil
	})

	s.metrics.RecordTransition(string(audit.ActionTransfer), err)
	if err != nil {
		return nil, err
	}
	s.log.Info().
		Str("source_bed_id", srcID.String()).
		Str("destination_bed_id", dstID.String()).
		Str("patient_id", result.PatientID.String()).
		Msg("patient transferred")
	s.refreshOccupiedGauge(ctx)
	return result, nil
}

// FindPatientBed answers where a patient is by CPF. A registered patient
// with no bed is a valid answer, not an error.
func (s *Service) FindPatientBed(ctx context.Context, rawCPF string) (*LookupResult, error) {
	normalized := patient.NormalizeCPF(rawCPF)
	if err := cpf.Validate(normalized); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCPF, err.Error())
	}

	p, err := s.patients.GetByCPF(ctx, normalized)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, ErrPatientNotFound
		}
		return nil, err
	}

	b, err := s.beds.GetByPatient(ctx, p.ID)
	if err != nil {
		if db.IsNotFound(err) {
			return &LookupResult{
				PatientName: p.Name,
				CPF:         p.CPF,
				Admitted:    false,
				Message:     "patient is not currently admitted",
			}, nil
		}
		return nil, err
	}

	return &LookupResult{
		PatientName: p.Name,
		CPF:         p.CPF,
		Admitted:    true,
		BedCode:     b.Code,
		BedKind:     b.Kind,
		BedStatus:   b.Status,
	}, nil
}

func (s *Service) refreshOccupiedGauge(ctx context.Context) {
	n, err := s.beds.CountOccupied(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to count occupied beds")
		return
	}
	s.metrics.SetOccupiedBeds(n)
}
