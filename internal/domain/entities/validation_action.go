package entities

import (
	"fmt"
	"strings"
)

// ValidationAction is the anti-fraud disposition of the current run.
// Higher values are worse.
type ValidationAction int

const (
	ActionProcess ValidationAction = iota
	ActionReview
	ActionChallenge
	ActionReject
)

var validationActionNames = [...]string{"process", "review", "challenge", "reject"}

func (a ValidationAction) String() string {
	if a < ActionProcess || a > ActionReject {
		return fmt.Sprintf("ValidationAction(%d)", int(a))
	}
	return validationActionNames[a]
}

func (a ValidationAction) Valid() bool {
	return a >= ActionProcess && a <= ActionReject
}

func ParseValidationAction(v string) (ValidationAction, error) {
	for i, name := range validationActionNames {
		if strings.EqualFold(name, strings.TrimSpace(v)) {
			return ValidationAction(i), nil
		}
	}
	return ActionProcess, fmt.Errorf("%w: %q", ErrInvalidValidationAction, v)
}

func (a ValidationAction) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidValidationAction, int(a))
	}
	return []byte(a.String()), nil
}

func (a *ValidationAction) UnmarshalText(b []byte) error {
	parsed, err := ParseValidationAction(string(b))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
