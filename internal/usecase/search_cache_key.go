package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
)

const jobSearchKeyPrefix = "jobs:search:"

type jobSearchCacheKeyInput struct {
	JobType         string   `json:"job_type"`
	ExperienceLevel string   `json:"experience_level"`
	Skill           string   `json:"skill"`
	Query           string   `json:"query"`
	SalaryMin       *float64 `json:"salary_min,omitempty"`
	SalaryMax       *float64 `json:"salary_max,omitempty"`
	Limit           int      `json:"limit"`
	Offset          int      `json:"offset"`
}

func normalizeSearchValue(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	s = strings.Join(strings.Fields(s), " ")
	return s
}

// JobsSearchCacheKey is stable across case and whitespace differences in the filters.
func JobsSearchCacheKey(params JobListParams) string {
	in := jobSearchCacheKeyInput{
		JobType:         normalizeSearchValue(params.JobType),
		ExperienceLevel: normalizeSearchValue(params.ExperienceLevel),
		Skill:           normalizeSearchValue(params.Skill),
		Query:           normalizeSearchValue(params.Query),
		SalaryMin:       params.SalaryMin,
		SalaryMax:       params.SalaryMax,
		Limit:           params.Limit,
		Offset:          params.Offset,
	}

	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	h := hex.EncodeToString(sum[:])
	return jobSearchKeyPrefix + h
}
