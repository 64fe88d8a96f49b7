package analysis

import "math"

const (
	skillWeight      = 0.4
	experienceWeight = 0.4
	educationWeight  = 0.2

	maxScore = 100.0
)

// Score is the overall resume quality figure: a weighted sum of the three counts,
// capped at 100. Negative counts are treated as zero.
func Score(skills, experience, education int) float64 {
	s := skillWeight*float64(nonNegative(skills)) +
		experienceWeight*float64(nonNegative(experience)) +
		educationWeight*float64(nonNegative(education))
	s = math.Round(s*100) / 100
	return math.Min(maxScore, s)
}

func nonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
