package usecase

import (
	"strings"
	"unicode/utf8"
)

// StagedData is the gateway-specific working copy of a donation. It is
// rebuilt from the unstaged view on every staging pass.
type StagedData struct {
	values   map[string]string
	unstaged map[string]string
}

func newStagedData(unstaged map[string]string) *StagedData {
	s := &StagedData{
		values:   make(map[string]string, len(unstaged)),
		unstaged: unstaged,
	}
	for k, v := range unstaged {
		s.values[k] = v
	}
	return s
}

func (s *StagedData) Get(field string) (string, bool) {
	v, ok := s.values[field]
	return v, ok
}

func (s *StagedData) Value(field string) string {
	return s.values[field]
}

func (s *StagedData) Set(field, value string) {
	s.values[field] = value
}

func (s *StagedData) Unset(field string) {
	delete(s.values, field)
}

// Unstaged reads the escaped donation value, ignoring anything staged.
func (s *StagedData) Unstaged(field string) string {
	return s.unstaged[field]
}

func (s *StagedData) Snapshot() map[string]string {
	return copyStrings(s.values)
}

// StageData rebuilds the staged view for the current transaction. Defaults
// are applied to every staged field before any staging function runs so that
// functions see final defaulted values.
func (a *GatewayAdapter) StageData(mode StagingMode) {
	s := newStagedData(a.unstaged)

	for _, field := range a.def.stagedVars {
		if s.Value(field) != "" {
			continue
		}
		if def, ok := a.def.postDataDefaults[field]; ok {
			s.Set(field, def)
		}
	}

	for _, field := range a.def.stagedVars {
		if fn := a.def.stagingFunc(field); fn != nil {
			fn(s, mode)
		}
	}

	if mode == StagingRequest {
		a.formatStagedData(s)
	}
	a.staged = s
}

func (a *GatewayAdapter) formatStagedData(s *StagedData) {
	for field, value := range s.values {
		value = strings.TrimSpace(value)
		if c, ok := a.def.dataConstraints[field]; ok && c.Length > 0 {
			value = truncateRunes(value, c.Length)
		}
		s.values[field] = value
	}
}

func truncateRunes(v string, max int) string {
	if utf8.RuneCountInString(v) <= max {
		return v
	}
	i, n := 0, 0
	for i < len(v) && n < max {
		_, size := utf8.DecodeRuneInString(v[i:])
		i += size
		n++
	}
	return v[:i]
}
