package model

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Section groups questionnaire fields the way the form presents them.
type Section string

const (
	SectionPersonal       Section = "personal"
	SectionEducation      Section = "education"
	SectionStudyAbroad    Section = "studyAbroad"
	SectionChallenges     Section = "challenges"
	SectionAdditional     Section = "additional"
	SectionEmergency      Section = "emergency"
	SectionLanguageScores Section = "languageScores"
)

// SectionFields lists the JSON field names of every section.
var SectionFields = map[Section][]string{
	SectionPersonal: {
		"fullName", "dateOfBirth", "gender", "email", "phoneNumber",
		"nationality", "currentCountry", "passportNumber",
	},
	SectionEducation: {
		"educationLevel", "educationLevelOther", "institutionName", "fieldOfStudy", "graduationYear",
	},
	SectionStudyAbroad: {
		"institutionsPreference", "programType", "programTypeOther", "fieldOfStudyAbroad",
		"studyReasons", "studyReasonsOther", "fundingMethod", "fundingMethodOther",
	},
	SectionChallenges: {"challenges", "challengesOther"},
	SectionAdditional: {"openToContact", "contactMethod", "contactMethodOther"},
	SectionEmergency: {
		"emergencyName", "emergencyContact", "emergencyAddress", "emergencyEmail",
		"emergencyCountry", "emergencyRelationship", "emergencyProvince", "emergencyCity",
	},
	SectionLanguageScores: {"ieltsScore", "satScore", "pteScore", "greScore"},
}

// StudyAbroadRequired are the study-abroad fields that become mandatory once
// the section is in use.
var StudyAbroadRequired = []string{
	"institutionsPreference", "programType", "fieldOfStudyAbroad", "studyReasons", "fundingMethod",
}

type fieldInfo struct {
	index      int
	structName string
	order      int
}

var (
	fieldsByJSON map[string]fieldInfo
	fieldOrder   []string
)

func init() {
	t := reflect.TypeOf(SubmissionInput{})
	fieldsByJSON = make(map[string]fieldInfo, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			continue
		}
		fieldsByJSON[name] = fieldInfo{index: i, structName: f.Name, order: len(fieldOrder)}
		fieldOrder = append(fieldOrder, name)
	}
}

// FieldNames returns every JSON field name in declaration order.
func FieldNames() []string {
	out := make([]string, len(fieldOrder))
	copy(out, fieldOrder)
	return out
}

// StructFieldName maps a JSON field name to its Go struct field name.
func StructFieldName(name string) (string, bool) {
	fi, ok := fieldsByJSON[name]
	return fi.structName, ok
}

// FieldOrder returns the declaration position of the field a path points at.
// Paths like "challenges[1]" resolve to their base field. Unknown paths sort last.
func FieldOrder(path string) int {
	if i := strings.IndexByte(path, '['); i >= 0 {
		path = path[:i]
	}
	if fi, ok := fieldsByJSON[path]; ok {
		return fi.order
	}
	return len(fieldOrder)
}

// Field returns the addressable value behind a JSON field name.
func (in *SubmissionInput) Field(name string) (reflect.Value, bool) {
	fi, ok := fieldsByJSON[name]
	if !ok {
		return reflect.Value{}, false
	}
	return reflect.ValueOf(in).Elem().Field(fi.index), true
}

// IsPresent reports whether a field carries a usable value: a non-blank
// string, a non-empty list or a true flag.
func (in *SubmissionInput) IsPresent(name string) bool {
	v, ok := in.Field(name)
	if !ok {
		return false
	}
	switch v.Kind() {
	case reflect.String:
		return strings.TrimSpace(v.String()) != ""
	case reflect.Slice:
		return v.Len() > 0
	case reflect.Bool:
		return v.Bool()
	}
	return false
}

// HasValue reports whether a string field equals value, or a list field
// contains it.
func (in *SubmissionInput) HasValue(name, value string) bool {
	v, ok := in.Field(name)
	if !ok {
		return false
	}
	switch v.Kind() {
	case reflect.String:
		return v.String() == value
	case reflect.Slice:
		for i := 0; i < v.Len(); i++ {
			if v.Index(i).String() == value {
				return true
			}
		}
	}
	return false
}

// SetField assigns a field by JSON name. Strings are accepted for every kind:
// lists are comma-separated and flags parse like strconv.ParseBool plus
// "yes"/"no".
func (in *SubmissionInput) SetField(name string, value any) error {
	v, ok := in.Field(name)
	if !ok {
		return fmt.Errorf("unknown field %q", name)
	}

	switch v.Kind() {
	case reflect.String:
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("field %q expects a string, got %T", name, value)
		}
		v.SetString(s)
	case reflect.Slice:
		switch val := value.(type) {
		case []string:
			v.Set(reflect.ValueOf(append([]string(nil), val...)))
		case string:
			v.Set(reflect.ValueOf(splitList(val)))
		default:
			return fmt.Errorf("field %q expects a list, got %T", name, value)
		}
	case reflect.Bool:
		switch val := value.(type) {
		case bool:
			v.SetBool(val)
		case string:
			b, err := parseFlag(val)
			if err != nil {
				return fmt.Errorf("field %q: %w", name, err)
			}
			v.SetBool(b)
		default:
			return fmt.Errorf("field %q expects a boolean, got %T", name, value)
		}
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseFlag(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "y", "yes":
		return true, nil
	case "n", "no", "":
		return false, nil
	}
	return strconv.ParseBool(raw)
}
