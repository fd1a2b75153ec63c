package bed

import "errors"

// Common errors returned by the occupancy engine.
var (
	ErrBedNotFound            = errors.New("bed not found")
	ErrPatientNotFound        = errors.New("patient not found")
	ErrBedUnavailable         = errors.New("bed is not available")
	ErrPatientAlreadyAdmitted = errors.New("patient already occupies a bed")
	ErrNoPatientAtSource      = errors.New("source bed has no patient")
	ErrDestinationUnavailable = errors.New("destination bed is not available")
	ErrInvalidCPF             = errors.New("cpf is not valid")
	ErrCodeRequired           = errors.New("bed code is required")
	ErrCodeTaken              = errors.New("a bed with this code already exists")
	ErrInvalidKind            = errors.New("unknown bed kind")
)
