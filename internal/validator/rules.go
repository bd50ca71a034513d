package validator

import "github.com/edustar/intake-backend/internal/model"

// Predicate decides whether a cross-field rule applies to an input.
type Predicate func(in *model.SubmissionInput) bool

// Rule makes Dependent mandatory whenever When holds for the input.
// Errors are reported on Dependent, never on Trigger.
type Rule struct {
	Trigger   string
	Dependent string
	When      Predicate
	Message   string
	// Section is set for completeness rules: once any field of the section is
	// filled in, every required field of the section is.
	Section model.Section
}

func (r Rule) active(in *model.SubmissionInput, o *options) bool {
	if r.Section != "" && o.required[r.Section] {
		return true
	}
	return r.When(in)
}

// Option tweaks how rules are evaluated.
type Option func(*options)

type options struct {
	required map[model.Section]bool
}

func newOptions(opts []Option) *options {
	o := &options{required: map[model.Section]bool{}}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// RequireSection treats a section as in use even when it is still empty.
func RequireSection(s model.Section) Option {
	return func(o *options) {
		o.required[s] = true
	}
}

// DefaultRules is the questionnaire's cross-field rule table.
func DefaultRules() []Rule {
	rules := []Rule{
		{Trigger: "openToContact", Dependent: "contactMethod", When: isSet("openToContact")},
		otherRule("contactMethod", "contactMethodOther"),
		otherRule("educationLevel", "educationLevelOther"),
		otherRule("programType", "programTypeOther"),
		otherRule("studyReasons", "studyReasonsOther"),
		otherRule("fundingMethod", "fundingMethodOther"),
		otherRule("challenges", "challengesOther"),
	}
	for _, f := range model.StudyAbroadRequired {
		rules = append(rules, Rule{
			Trigger:   string(model.SectionStudyAbroad),
			Dependent: f,
			When:      sectionInUse(model.SectionStudyAbroad),
			Section:   model.SectionStudyAbroad,
		})
	}
	for i := range rules {
		rules[i].Message = requiredMessage(rules[i].Dependent)
	}
	return rules
}

func otherRule(selector, dependent string) Rule {
	return Rule{Trigger: selector, Dependent: dependent, When: selects(selector, model.OptionOther)}
}

func isSet(field string) Predicate {
	return func(in *model.SubmissionInput) bool {
		return in.IsPresent(field)
	}
}

func selects(field, value string) Predicate {
	return func(in *model.SubmissionInput) bool {
		return in.HasValue(field, value)
	}
}

func sectionInUse(s model.Section) Predicate {
	fields := model.SectionFields[s]
	return func(in *model.SubmissionInput) bool {
		for _, f := range fields {
			if in.IsPresent(f) {
				return true
			}
		}
		return false
	}
}
