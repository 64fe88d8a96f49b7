package analysis

const (
	minSkills     = 5
	minExperience = 2
	minEducation  = 1
)

const (
	msgSkillGap   = "Your resume has fewer skills than average. Consider adding more relevant skills."
	msgFormatting = "Your experience section could be more detailed. Add specific achievements and responsibilities."
	msgATS        = "Your education section is missing. Add your educational background."
)

// Feedback derives advisories from the extracted counts. The result depends only on the
// counts and always lists firing rules in the same order.
func Feedback(skills, experience, education int) []Advisory {
	out := make([]Advisory, 0, 3)
	if skills < minSkills {
		out = append(out, Advisory{Category: CategorySkillGap, Message: msgSkillGap, Severity: SeverityMedium})
	}
	if experience < minExperience {
		out = append(out, Advisory{Category: CategoryFormatting, Message: msgFormatting, Severity: SeverityHigh})
	}
	if education < minEducation {
		out = append(out, Advisory{Category: CategoryATS, Message: msgATS, Severity: SeverityHigh})
	}
	for i := range out {
		out[i].Position = i
	}
	return out
}
