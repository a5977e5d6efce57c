package jobspec

import "testing"

func TestHasDescription(t *testing.T) {
	if New("", 0).HasDescription() {
		t.Fatalf("expected empty description to be reported")
	}

	if New("   \n\t ", 0).HasDescription() {
		t.Fatalf("expected whitespace-only description to be reported")
	}

	if !New("Senior Go engineer", 0).HasDescription() {
		t.Fatalf("expected description to be accepted")
	}
}

func TestNewClampsExperience(t *testing.T) {
	if got := New("x", -3).RequiredExperience; got != 0 {
		t.Fatalf("expected negative years to clamp to 0, got %d", got)
	}

	if got := New("x", 25).RequiredExperience; got != MaxExperienceYears {
		t.Fatalf("expected years to clamp to %d, got %d", MaxExperienceYears, got)
	}

	if got := New("x", 7).RequiredExperience; got != 7 {
		t.Fatalf("expected years to be kept, got %d", got)
	}
}

func TestExtractRequiredExperience(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		description string
		expect      int
	}{
		{
			name:        "single value",
			description: "We need 3 years of experience with Go.",
			expect:      3,
		},
		{
			name:        "plus suffix",
			description: "Looking for 5+ years experience in cloud infrastructure.",
			expect:      5,
		},
		{
			name:        "abbreviated years",
			description: "Minimum 4 yrs of experience required.",
			expect:      4,
		},
		{
			name:        "range takes lower bound",
			description: "Candidates with 3-5 years of experience preferred.",
			expect:      3,
		},
		{
			name:        "no requirement",
			description: "A great team and interesting problems.",
			expect:      0,
		},
		{
			name:        "clamped to range",
			description: "Veterans only: 30 years of experience.",
			expect:      MaxExperienceYears,
		},
		{
			name:        "case insensitive",
			description: "Requires 6 YEARS OF EXPERIENCE.",
			expect:      6,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ExtractRequiredExperience(tt.description); got != tt.expect {
				t.Fatalf("expected %d, got %d", tt.expect, got)
			}
		})
	}
}
