package results

import (
	"github.com/recruitkit/screener/internal/screening"
)

// Section is a disclosure section of a candidate result.
type Section string

const (
	SectionPainPoints Section = "pain_points"
	SectionSummary    Section = "summary"
)

// Visibility tracks which disclosure sections of a candidate are open.
// Everything starts closed.
type Visibility struct {
	PainPoints bool
	Summary    bool
}

// Store owns the ordered candidate results of the last successful analysis
// and the per-candidate disclosure visibility. Visibility is keyed by the
// stable candidate identity (the resume file name), never by position, so
// reordering cannot detach a flag from its candidate.
type Store struct {
	results    *screening.Results
	visibility map[string]*Visibility
}

func NewStore() *Store {
	return &Store{
		results:    &screening.Results{},
		visibility: make(map[string]*Visibility),
	}
}

// Replace installs a fresh result sequence. All visibility flags reset to
// closed.
func (s *Store) Replace(results *screening.Results) {
	if results == nil {
		results = &screening.Results{}
	}

	s.results = results
	s.visibility = make(map[string]*Visibility, results.Len())
}

// Clear drops the results and all visibility flags.
func (s *Store) Clear() {
	s.Replace(nil)
}

// Results exposes the owned result collection.
func (s *Store) Results() *screening.Results {
	return s.results
}

func (s *Store) Items() []*screening.CandidateResult {
	return s.results.Items
}

func (s *Store) Len() int {
	return s.results.Len()
}

// Toggle flips the visibility of one candidate section and returns the new
// value. Absent entries default to closed before flipping to open.
func (s *Store) Toggle(candidateID string, section Section) bool {
	record, ok := s.visibility[candidateID]
	if !ok {
		record = &Visibility{}
		s.visibility[candidateID] = record
	}

	switch section {
	case SectionPainPoints:
		record.PainPoints = !record.PainPoints
		return record.PainPoints
	case SectionSummary:
		record.Summary = !record.Summary
		return record.Summary
	default:
		return false
	}
}

// Visible reports whether a candidate section is currently disclosed.
func (s *Store) Visible(candidateID string, section Section) bool {
	record, ok := s.visibility[candidateID]
	if !ok {
		return false
	}

	switch section {
	case SectionPainPoints:
		return record.PainPoints
	case SectionSummary:
		return record.Summary
	default:
		return false
	}
}

// SortByScoreDescending reorders the candidates by score, highest first,
// keeping arrival order for ties. Visibility follows the candidate identity,
// not the slot it occupied.
func (s *Store) SortByScoreDescending() {
	s.results.SortByScoreDescending()
}
