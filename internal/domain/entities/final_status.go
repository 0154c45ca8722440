package entities

import "fmt"

// FinalStatus is the terminal business classification of a donation attempt.
type FinalStatus string

const (
	FinalStatusComplete    FinalStatus = "complete"
	FinalStatusPending     FinalStatus = "pending"
	FinalStatusPendingPoke FinalStatus = "pending-poke"
	FinalStatusFailed      FinalStatus = "failed"
	FinalStatusRevised     FinalStatus = "revised"
)

var finalStatuses = map[FinalStatus]struct{}{
	FinalStatusComplete:    {},
	FinalStatusPending:     {},
	FinalStatusPendingPoke: {},
	FinalStatusFailed:      {},
	FinalStatusRevised:     {},
}

func (s FinalStatus) Valid() bool {
	_, ok := finalStatuses[s]
	return ok
}

// Successful reports whether the donation went through or is waiting on the
// gateway. The donor is thanked either way.
func (s FinalStatus) Successful() bool {
	switch s {
	case FinalStatusComplete, FinalStatusPending, FinalStatusPendingPoke:
		return true
	}
	return false
}

// RequiresHardReset reports whether the donor data should be dropped once the
// attempt ends with this status.
func (s FinalStatus) RequiresHardReset() bool {
	return s.Successful()
}

func ParseFinalStatus(v string) (FinalStatus, error) {
	s := FinalStatus(v)
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidFinalStatus, v)
	}
	return s, nil
}
