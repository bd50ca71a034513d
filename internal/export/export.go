// Package export turns the submission list into downloadable files for the
// admin view. Every writer is a pure transform of an already fetched list.
package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/edustar/intake-backend/internal/model"
)

// Format is an export file format.
type Format string

const (
	FormatCSV   Format = "csv"
	FormatXLSX  Format = "xlsx"
	FormatTable Format = "table"
)

// ParseFormat accepts csv, xlsx and table. Names are matched exactly, the same
// way the export query is bound.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatCSV, FormatXLSX, FormatTable:
		return f, nil
	case "":
		return FormatCSV, nil
	}
	return "", fmt.Errorf("unsupported export format %q", s)
}

// ContentType returns the MIME type for a download of format f.
func (f Format) ContentType() string {
	switch f {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatTable:
		return "text/plain; charset=utf-8"
	}
	return "text/csv; charset=utf-8"
}

// Filename returns the download name, e.g. edustar-submissions-2025-01-31.csv.
func Filename(f Format, now time.Time) string {
	ext := string(f)
	if f == FormatTable {
		ext = "txt"
	}
	return fmt.Sprintf("edustar-submissions-%s.%s", now.UTC().Format("2006-01-02"), ext)
}

// Write renders subs in format f.
func Write(w io.Writer, f Format, subs []model.Submission) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, subs)
	case FormatXLSX:
		return WriteXLSX(w, subs)
	case FormatTable:
		return WriteTable(w, subs)
	}
	return fmt.Errorf("unsupported export format %q", f)
}

// Column is one exported field.
type Column struct {
	Header string
	Value  func(s *model.Submission) string
}

// Columns is the full export column set, in order.
var Columns = []Column{
	{"Reference Number", func(s *model.Submission) string { return s.ReferenceNumber }},
	{"Full Name", func(s *model.Submission) string { return s.FullName }},
	{"Email", func(s *model.Submission) string { return s.Email }},
	{"Phone Number", func(s *model.Submission) string { return s.PhoneNumber }},
	{"Date of Birth", func(s *model.Submission) string { return s.DateOfBirth }},
	{"Gender", func(s *model.Submission) string { return s.Gender }},
	{"Nationality", func(s *model.Submission) string { return s.Nationality }},
	{"Current Country", func(s *model.Submission) string { return s.CurrentCountry }},
	{"Passport Number", func(s *model.Submission) string { return s.PassportNumber }},
	{"Education Level", func(s *model.Submission) string { return withOther(s.EducationLevel, s.EducationLevelOther) }},
	{"Institution", func(s *model.Submission) string { return s.InstitutionName }},
	{"Field of Study", func(s *model.Submission) string { return s.FieldOfStudy }},
	{"Graduation Year", func(s *model.Submission) string { return s.GraduationYear }},
	{"Institutions Preference", func(s *model.Submission) string { return s.InstitutionsPreference }},
	{"Program Type", func(s *model.Submission) string { return withOther(s.ProgramType, s.ProgramTypeOther) }},
	{"Field of Study Abroad", func(s *model.Submission) string { return s.FieldOfStudyAbroad }},
	{"Study Reasons", func(s *model.Submission) string { return joinWithOther(s.StudyReasons, s.StudyReasonsOther) }},
	{"Funding Method", func(s *model.Submission) string { return withOther(s.FundingMethod, s.FundingMethodOther) }},
	{"Challenges", func(s *model.Submission) string { return joinWithOther(s.Challenges, s.ChallengesOther) }},
	{"Open to Contact", func(s *model.Submission) string { return yesNo(s.OpenToContact) }},
	{"Contact Method", func(s *model.Submission) string { return withOther(s.ContactMethod, s.ContactMethodOther) }},
	{"Emergency Name", func(s *model.Submission) string { return s.EmergencyName }},
	{"Emergency Contact", func(s *model.Submission) string { return s.EmergencyContact }},
	{"Emergency Email", func(s *model.Submission) string { return s.EmergencyEmail }},
	{"Emergency Country", func(s *model.Submission) string { return s.EmergencyCountry }},
	{"Emergency City", func(s *model.Submission) string { return s.EmergencyCity }},
	{"IELTS", func(s *model.Submission) string { return s.IELTSScore }},
	{"SAT", func(s *model.Submission) string { return s.SATScore }},
	{"PTE", func(s *model.Submission) string { return s.PTEScore }},
	{"GRE", func(s *model.Submission) string { return s.GREScore }},
	{"Submitted At", func(s *model.Submission) string { return s.CreatedAt.UTC().Format(time.RFC3339) }},
}

// Headers returns the header row.
func Headers() []string {
	out := make([]string, len(Columns))
	for i, c := range Columns {
		out[i] = c.Header
	}
	return out
}

// Row flattens one submission in column order.
func Row(s *model.Submission) []string {
	out := make([]string, len(Columns))
	for i, c := range Columns {
		out[i] = c.Value(s)
	}
	return out
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// withOther shows the free-text answer next to an "Other" selection.
func withOther(selected, other string) string {
	if selected == model.OptionOther && strings.TrimSpace(other) != "" {
		return fmt.Sprintf("%s (%s)", selected, strings.TrimSpace(other))
	}
	return selected
}

func joinWithOther(list []string, other string) string {
	out := make([]string, len(list))
	for i, v := range list {
		out[i] = withOther(v, other)
	}
	return strings.Join(out, ", ")
}
