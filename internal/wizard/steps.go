package wizard

import "github.com/edustar/intake-backend/internal/model"

// Variant selects which questionnaire layout the wizard walks through.
type Variant string

const (
	// VariantStandard is the four-step form without study-abroad questions.
	VariantStandard Variant = "standard"
	// VariantExtended adds the study-abroad, additional information and test
	// score sections over six steps.
	VariantExtended Variant = "extended"
)

// Step is one page of the wizard.
type Step struct {
	Number     int
	Label      string
	ShortLabel string
	Fields     []string
}

// Steps returns the ordered steps of a variant. Unknown variants fall back to
// the standard layout.
func Steps(v Variant) []Step {
	if v == VariantExtended {
		return numbered([]Step{
			{Label: "Personal Details", ShortLabel: "Personal", Fields: fields(model.SectionPersonal)},
			{Label: "Educational Background", ShortLabel: "Education", Fields: fields(model.SectionEducation)},
			{Label: "Study Abroad Preferences", ShortLabel: "Study Abroad", Fields: fields(model.SectionStudyAbroad)},
			{Label: "Challenges & Insights", ShortLabel: "Challenges", Fields: fields(model.SectionChallenges)},
			{Label: "Additional Information", ShortLabel: "Additional", Fields: fields(model.SectionAdditional)},
			{Label: "Emergency Contact & Test Scores", ShortLabel: "Emergency", Fields: fields(model.SectionEmergency, model.SectionLanguageScores)},
		})
	}

	return numbered([]Step{
		{Label: "Personal Details", ShortLabel: "Personal", Fields: fields(model.SectionPersonal)},
		{Label: "Educational Background", ShortLabel: "Education", Fields: fields(model.SectionEducation)},
		{Label: "Challenges & Insights", ShortLabel: "Challenges", Fields: fields(model.SectionChallenges, model.SectionAdditional)},
		{Label: "Emergency Contact", ShortLabel: "Emergency", Fields: fields(model.SectionEmergency)},
	})
}

func numbered(steps []Step) []Step {
	for i := range steps {
		steps[i].Number = i + 1
	}
	return steps
}

func fields(sections ...model.Section) []string {
	var out []string
	for _, s := range sections {
		out = append(out, model.SectionFields[s]...)
	}
	return out
}
