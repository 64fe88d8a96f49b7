package matching

import (
	"reflect"
	"testing"

	"resume-match/internal/domain/job"
)

func TestCalculate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		candidate   []string
		required    []string
		wantScore   float64
		wantMatched []string
		wantMissing []string
	}{
		{
			name:        "full coverage",
			candidate:   []string{"Go", "PostgreSQL", "Docker"},
			required:    []string{"go", "postgresql"},
			wantScore:   100,
			wantMatched: []string{"go", "postgresql"},
			wantMissing: []string{},
		},
		{
			name:        "partial coverage keeps posting order",
			candidate:   []string{"Docker", "Go"},
			required:    []string{"Kubernetes", "Go", "Redis"},
			wantScore:   33.33,
			wantMatched: []string{"Go"},
			wantMissing: []string{"Kubernetes", "Redis"},
		},
		{
			name:        "duplicates and whitespace collapse",
			candidate:   []string{"  machine   learning ", "go", "go"},
			required:    []string{"Machine Learning", "machine learning", "Go", ""},
			wantScore:   100,
			wantMatched: []string{"Machine Learning", "Go"},
			wantMissing: []string{},
		},
		{
			name:        "no requirements scores zero",
			candidate:   []string{"Go"},
			required:    nil,
			wantScore:   0,
			wantMatched: []string{},
			wantMissing: []string{},
		},
		{
			name:        "empty candidate",
			candidate:   nil,
			required:    []string{"Go", "AWS"},
			wantScore:   0,
			wantMatched: []string{},
			wantMissing: []string{"Go", "AWS"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Calculate(tt.candidate, tt.required)
			if got.MatchScore != tt.wantScore {
				t.Fatalf("expected score %v, got %v", tt.wantScore, got.MatchScore)
			}
			if !reflect.DeepEqual(got.MatchedSkills, tt.wantMatched) {
				t.Fatalf("expected matched %v, got %v", tt.wantMatched, got.MatchedSkills)
			}
			if !reflect.DeepEqual(got.MissingSkills, tt.wantMissing) {
				t.Fatalf("expected missing %v, got %v", tt.wantMissing, got.MissingSkills)
			}
		})
	}
}

func TestFilterAllows(t *testing.T) {
	t.Parallel()

	p := job.Posting{Type: job.TypeRemote, ExperienceLevel: job.LevelSenior, IsActive: true}

	if !(Filter{}).Allows(p) {
		t.Fatalf("empty filter should allow active posting")
	}
	if !(Filter{JobType: job.TypeRemote, ExperienceLevel: job.LevelSenior}).Allows(p) {
		t.Fatalf("matching filter should allow")
	}
	if (Filter{JobType: job.TypeFullTime}).Allows(p) {
		t.Fatalf("job type mismatch should reject")
	}
	if (Filter{ExperienceLevel: job.LevelEntry}).Allows(p) {
		t.Fatalf("level mismatch should reject")
	}
	p.IsActive = false
	if (Filter{}).Allows(p) {
		t.Fatalf("inactive posting should be rejected")
	}
}
