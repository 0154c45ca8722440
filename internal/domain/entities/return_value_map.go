package entities

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

type codeRange struct {
	lower  int
	upper  int
	single bool
	status FinalStatus
}

// ReturnValueMap classifies numeric gateway response codes into business
// outcomes, per transaction and per response field.
type ReturnValueMap struct {
	ranges map[string]map[string][]codeRange
}

func NewReturnValueMap() *ReturnValueMap {
	return &ReturnValueMap{ranges: map[string]map[string][]codeRange{}}
}

// AddCodeRange registers a single code (upper == nil) or the closed interval
// [lower, upper]. Ranges of one transaction field must not overlap.
func (m *ReturnValueMap) AddCodeRange(txn, key string, status FinalStatus, lower int, upper *int) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %s/%s status %q", ErrInvalidFinalStatus, txn, key, status)
	}
	r := codeRange{lower: lower, upper: lower, single: true, status: status}
	if upper != nil {
		if *upper < lower {
			return fmt.Errorf("%w: %s/%s [%d, %d]", ErrInvalidCodeRange, txn, key, lower, *upper)
		}
		r.upper = *upper
		r.single = false
	}

	byKey, ok := m.ranges[txn]
	if !ok {
		byKey = map[string][]codeRange{}
		m.ranges[txn] = byKey
	}
	for _, existing := range byKey[key] {
		if r.lower <= existing.upper && existing.lower <= r.upper {
			return fmt.Errorf("%w: %s/%s [%d, %d] overlaps [%d, %d]",
				ErrOverlappingCodeRange, txn, key, r.lower, r.upper, existing.lower, existing.upper)
		}
	}

	list := append(byKey[key], r)
	sort.Slice(list, func(i, j int) bool { return list[i].upper < list[j].upper })
	byKey[key] = list
	return nil
}

// FindCodeAction returns the outcome a code classifies to. ok is false when
// the code is not an integer or no range covers it.
func (m *ReturnValueMap) FindCodeAction(txn, key, code string) (FinalStatus, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(code))
	if err != nil {
		return "", false
	}
	for _, r := range m.ranges[txn][key] {
		if r.upper < n {
			continue
		}
		if (r.single && r.upper != n) || (!r.single && n < r.lower) {
			return "", false
		}
		return r.status, true
	}
	return "", false
}

// HasRanges reports whether any range is registered for the field.
func (m *ReturnValueMap) HasRanges(txn, key string) bool {
	return len(m.ranges[txn][key]) > 0
}
