package matching

import (
	"math"
	"strings"

	"resume-match/internal/domain/job"
)

type Result struct {
	MatchScore    float64
	MatchedSkills []string
	MissingSkills []string
}

// Calculate scores candidate skills against a posting's required skills as the share of
// required skills the candidate covers, on a 0..100 scale rounded to two decimals.
// Comparison is case-insensitive; duplicates on either side count once. Matched and missing
// lists keep the posting's order and spelling.
func Calculate(candidateSkills, requiredSkills []string) Result {
	have := make(map[string]struct{}, len(candidateSkills))
	for _, s := range candidateSkills {
		k := normalize(s)
		if k == "" {
			continue
		}
		have[k] = struct{}{}
	}

	matched := make([]string, 0, len(requiredSkills))
	missing := make([]string, 0)
	seen := make(map[string]struct{}, len(requiredSkills))
	for _, r := range requiredSkills {
		k := normalize(r)
		if k == "" {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}

		if _, ok := have[k]; ok {
			matched = append(matched, strings.TrimSpace(r))
		} else {
			missing = append(missing, strings.TrimSpace(r))
		}
	}

	denom := len(seen)
	if denom < 1 {
		denom = 1
	}
	score := 100 * float64(len(matched)) / float64(denom)
	score = math.Round(score*100) / 100

	return Result{
		MatchScore:    clamp(score, 0, 100),
		MatchedSkills: matched,
		MissingSkills: missing,
	}
}

// Filter narrows which postings a profile is matched against. Zero values match everything.
type Filter struct {
	JobType         job.Type
	ExperienceLevel job.ExperienceLevel
}

func (f Filter) Allows(p job.Posting) bool {
	if !p.IsActive {
		return false
	}
	if f.JobType != "" && p.Type != f.JobType {
		return false
	}
	if f.ExperienceLevel != "" && p.ExperienceLevel != f.ExperienceLevel {
		return false
	}
	return true
}

func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

func clamp(v, minV, maxV float64) float64 {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}
