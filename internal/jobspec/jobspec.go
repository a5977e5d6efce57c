package jobspec

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	// MinExperienceYears and MaxExperienceYears bound the required-experience
	// selector. Zero means no requirement.
	MinExperienceYears = 0
	MaxExperienceYears = 20
)

// JobSpec holds the job description text and the optional required-experience
// value. It is purely data-holding; submission validation happens in the
// orchestrator.
type JobSpec struct {
	Description        string
	RequiredExperience int
}

func New(description string, requiredExperience int) *JobSpec {
	return &JobSpec{
		Description:        description,
		RequiredExperience: ClampExperience(requiredExperience),
	}
}

// HasDescription reports whether the description contains anything beyond
// whitespace.
func (s *JobSpec) HasDescription() bool {
	return s != nil && strings.TrimSpace(s.Description) != ""
}

// ClampExperience forces years into the supported range.
func ClampExperience(years int) int {
	if years < MinExperienceYears {
		return MinExperienceYears
	}
	if years > MaxExperienceYears {
		return MaxExperienceYears
	}
	return years
}

// Ranges like "3-5 years of experience" are matched before single values so
// the lower bound wins over the upper one.
var experiencePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d+)\s*-\s*\d+\s*(?:years?|yrs?)\s*(?:of\s*)?experience`),
	regexp.MustCompile(`(?i)(\d+)\s*\+?\s*(?:years?|yrs?)\s*(?:of\s*)?experience`),
}

// ExtractRequiredExperience scans a job description for a required years of
// experience statement ("3 years of experience", "5+ yrs experience",
// "3-5 years of experience"). A range yields its lower bound. Returns 0 when
// nothing matches; results are clamped to the supported range.
func ExtractRequiredExperience(description string) int {
	for _, pattern := range experiencePatterns {
		match := pattern.FindStringSubmatch(description)
		if match == nil {
			continue
		}

		years, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}

		return ClampExperience(years)
	}

	return 0
}
