package validator

import (
	ut "github.com/go-playground/universal-translator"
	govalidator "github.com/go-playground/validator/v10"
)

// messages holds the form's wording. Keys are "field.tag" for a specific rule
// or "field" for any rule on that field.
var messages = map[string]string{
	"referenceNumber": "Reference number must look like EDU-XXXXXX",

	"fullName":       "Full name is required",
	"dateOfBirth":    "Date of birth is required",
	"gender":         "Please select your gender",
	"email":          "Invalid email address",
	"email.required": "Email is required",
	"phoneNumber":    "Phone number must include country code",
	"nationality":    "Nationality is required",
	"currentCountry": "Current country is required",
	"passportNumber": "Passport number is required",

	"educationLevel":      "Please select your education level",
	"institutionName":     "Institution name is required",
	"fieldOfStudy":        "Field of study is required",
	"graduationYear":      "Graduation year is required",
	"graduationYear.len":  "Graduation year must be 4 digits",
	"educationLevelOther": "Please specify your education level",

	"institutionsPreference": "Institutions preference is required",
	"programType":            "Program type is required",
	"programTypeOther":       "Please specify your program type",
	"fieldOfStudyAbroad":     "Field of study abroad is required",
	"studyReasons":           "Please select at least one reason",
	"studyReasons.unique":    "Each reason can only be selected once",
	"studyReasonsOther":      "Please specify your reasons",
	"fundingMethod":          "Funding method is required",
	"fundingMethodOther":     "Please specify your funding method",

	"challenges":        "Please select at least one challenge",
	"challenges.unique": "Each challenge can only be selected once",
	"challengesOther":   "Please specify your challenges",

	"contactMethod":        "Contact method is required when open to contact",
	"contactMethod.option": "Please select a contact method",
	"contactMethodOther":   "Please specify your contact method",

	"emergencyName":           "Emergency contact name is required",
	"emergencyContact":        "Emergency contact number is required",
	"emergencyAddress":        "Emergency contact address is required",
	"emergencyEmail":          "Invalid emergency email",
	"emergencyEmail.required": "Emergency email is required",
	"emergencyCountry":        "Emergency contact country is required",
	"emergencyRelationship":   "Relationship is required",
	"emergencyProvince":       "Province/State is required",
	"emergencyCity":           "City is required",
}

// messageFor picks the form wording for a failed rule, falling back to the
// translator. Element paths such as "challenges[2]" never match the table.
func messageFor(path string, fe govalidator.FieldError, t ut.Translator) string {
	if msg, ok := messages[path+"."+fe.Tag()]; ok {
		return msg
	}
	if msg, ok := messages[path]; ok {
		return msg
	}
	return fe.Translate(t)
}

// requiredMessage returns the form wording for a field that must be filled in.
func requiredMessage(field string) string {
	if msg, ok := messages[field]; ok {
		return msg
	}
	return field + " is required"
}
