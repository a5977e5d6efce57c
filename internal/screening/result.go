package screening

import (
	"encoding/json"
	"os"
	"sort"
	"strconv"
	"strings"
)

// Status is the screening verdict for a candidate. Unrecognized server values
// degrade to StatusUnknown instead of silently matching nothing.
type Status string

const (
	StatusShortlisted        Status = "shortlisted"
	StatusUnderConsideration Status = "under_consideration"
	StatusRejected           Status = "rejected"
	StatusUnknown            Status = "unknown"
)

// ParseStatus maps a raw server status string onto the closed status set.
// Comparison is case-insensitive; spaces and underscores are interchangeable.
func ParseStatus(raw string) Status {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	normalized = strings.ReplaceAll(normalized, " ", "_")

	switch normalized {
	case string(StatusShortlisted):
		return StatusShortlisted
	case string(StatusUnderConsideration):
		return StatusUnderConsideration
	case string(StatusRejected):
		return StatusRejected
	default:
		return StatusUnknown
	}
}

// PainPoints groups the service's findings by severity. Order within a bucket
// is the server's.
type PainPoints struct {
	Critical []string `json:"critical,omitempty"`
	Major    []string `json:"major,omitempty"`
	Minor    []string `json:"minor,omitempty"`
}

func (p *PainPoints) Count() int {
	if p == nil {
		return 0
	}
	return len(p.Critical) + len(p.Major) + len(p.Minor)
}

// CandidateResult is one scored resume as returned by the analysis service.
// ResumeFileName correlates the result back to the submitted file and is the
// stable candidate identity used by the results store.
type CandidateResult struct {
	CandidateName  string      `json:"candidate_name,omitempty"`
	Score          int         `json:"score,omitempty"`
	PainPoints     *PainPoints `json:"pain_points,omitempty"`
	Summary        string      `json:"summary,omitempty"`
	RawStatus      string      `json:"status,omitempty"`
	ResumeFileName string      `json:"resume_name,omitempty"`
	ResumePath     string      `json:"resume_path,omitempty"`
}

func (r *CandidateResult) Status() Status {
	return ParseStatus(r.RawStatus)
}

type Results struct {
	Items []*CandidateResult
}

func (r *Results) Len() int {
	return len(r.Items)
}

func (r *Results) FindByFile(name string) *CandidateResult {
	for _, item := range r.Items {
		if item.ResumeFileName == name {
			return item
		}
	}
	return nil
}

// SortByScoreDescending reorders the results by score, highest first. The
// sort is stable so equal scores keep their arrival order.
func (r *Results) SortByScoreDescending() {
	sort.SliceStable(r.Items, func(i, j int) bool {
		return r.Items[i].Score > r.Items[j].Score
	})
}

// ReportByStatus groups a compact summary of the results by their status.
func (r *Results) ReportByStatus() map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, item := range r.Items {
		key := string(item.Status())
		report[key] = append(report[key], map[string]string{
			"candidate":   item.CandidateName,
			"score":       strconv.Itoa(item.Score),
			"resume_file": item.ResumeFileName,
			"pain_points": strconv.Itoa(item.PainPoints.Count()),
		})
	}
	return report
}

func (r *Results) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "screening_results_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return "", err
	}
	return file.Name(), nil
}
