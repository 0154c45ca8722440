package entities

import "errors"

var (
	ErrInvalidFinalStatus      = errors.New("invalid final status")
	ErrInvalidValidationAction = errors.New("invalid validation action")
	ErrInvalidCodeRange        = errors.New("invalid code range")
	ErrOverlappingCodeRange    = errors.New("overlapping code range")
	ErrContributionNotFound    = errors.New("contribution tracking record not found")
)
