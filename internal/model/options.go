package model

// Option lists offered by the questionnaire. Lists referenced by an
// `option=<name>` validation tag are registered in Options.
var (
	Genders = []string{"Male", "Female"}

	EducationLevels = []string{
		"High school/Secondary School",
		"Diploma",
		"Bachelor's Degree",
		"Master's Degree",
		"PhD/Doctorate",
		OptionOther,
	}

	ProgramTypes = []string{
		"Undergraduate",
		"Postgraduate (Master's)",
		"PhD/Doctorate",
		"Diploma/Certificate",
		"Language Course",
		OptionOther,
	}

	StudyReasons = []string{
		"Quality of education",
		"Career opportunities",
		"International exposure",
		"Scholarship availability",
		"Immigration prospects",
		OptionOther,
	}

	FundingMethods = []string{
		"Self-funded",
		"Family support",
		"Scholarship",
		"Student loan",
		"Sponsorship",
		OptionOther,
	}

	Challenges = []string{
		"Visa process",
		"Financial difficulties",
		"Language barrier",
		"Cultural adjustment",
		"Academic pressure",
		"Homesickness",
		"Finding accommodation",
		OptionOther,
	}

	ContactMethods = []string{
		"Email",
		"Phone/WhatsApp",
		OptionOther,
	}
)

// Options maps an option list name to its allowed values.
var Options = map[string][]string{
	"genders":         Genders,
	"educationLevels": EducationLevels,
	"programTypes":    ProgramTypes,
	"studyReasons":    StudyReasons,
	"fundingMethods":  FundingMethods,
	"challenges":      Challenges,
	"contactMethods":  ContactMethods,
}

// IsOption reports whether value belongs to the named option list.
func IsOption(list, value string) bool {
	for _, v := range Options[list] {
		if v == value {
			return true
		}
	}
	return false
}
