package patient

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/leitos/leitos/internal/platform/db"
	"github.com/leitos/leitos/pkg/cpf"
)

// Common errors returned by the patient service.
var (
	ErrPatientNotFound = errors.New("patient not found")
	ErrNameRequired    = errors.New("patient name is required")
	ErrInvalidCPF      = errors.New("cpf is not valid")
	ErrCPFTaken        = errors.New("a patient with this cpf is already registered")
)

type Service struct {
	repo PatientRepository
	log  zerolog.Logger
}

func NewService(repo PatientRepository, log zerolog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// NormalizeCPF strips the common formatting characters from a CPF so
// "529.982.247-25" and "52998224725" refer to the same patient.
func NormalizeCPF(s string) string {
	return strings.NewReplacer(".", "", "-", "", " ", "").Replace(s)
}

// Register validates and stores a new patient.
func (s *Service) Register(ctx context.Context, p *Patient) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return ErrNameRequired
	}
	p.CPF = NormalizeCPF(p.CPF)
	if err := cpf.Validate(p.CPF); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidCPF, err.Error())
	}

	if err := s.repo.Create(ctx, p); err != nil {
		if db.IsUniqueViolation(err, "patients_cpf_key") {
			return ErrCPFTaken
		}
		return err
	}

	s.log.Info().
		Str("patient_id", p.ID.String()).
		Msg("patient registered")
	return nil
}

// GetByCPF looks a patient up by CPF, validating the format first.
func (s *Service) GetByCPF(ctx context.Context, raw string) (*Patient, error) {
	normalized := NormalizeCPF(raw)
	if err := cpf.Validate(normalized); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCPF, err.Error())
	}

	p, err := s.repo.GetByCPF(ctx, normalized)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, ErrPatientNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, ErrPatientNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *Service) ListPatients(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	return s.repo.List(ctx, limit, offset)
}
