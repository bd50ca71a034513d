package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/edustar/intake-backend/internal/model"
)

func sampleSubmissions() []model.Submission {
	return []model.Submission{
		{
			ID:              "id-2",
			ReferenceNumber: "EDU-NEW002",
			SubmissionInput: model.SubmissionInput{
				FullName:         `Ama "AJ" Mensah`,
				Email:            "ama@example.com",
				Nationality:      "Ghanaian",
				ProgramType:      "Other",
				ProgramTypeOther: "Bootcamp",
				Challenges:       []string{"Visa process", "Other"},
				ChallengesOther:  "Transcripts",
				OpenToContact:    true,
				ContactMethod:    "Email",
			},
			CreatedAt: time.Date(2025, 3, 2, 9, 30, 0, 0, time.UTC),
		},
		{
			ID:              "id-1",
			ReferenceNumber: "EDU-OLD001",
			SubmissionInput: model.SubmissionInput{
				FullName:   "Jane Doe",
				Email:      "jane@example.com",
				Challenges: []string{"Homesickness"},
			},
			CreatedAt: time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC),
		},
	}
}

func column(t *testing.T, header string) int {
	t.Helper()
	for i, h := range Headers() {
		if h == header {
			return i
		}
	}
	t.Fatalf("no column %q", header)
	return -1
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleSubmissions()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "Reference Number", records[0][0])
	assert.Equal(t, "Submitted At", records[0][len(records[0])-1])

	first := records[1]
	assert.Equal(t, "EDU-NEW002", first[0])
	assert.Equal(t, `Ama "AJ" Mensah`, first[column(t, "Full Name")])
	assert.Equal(t, "Other (Bootcamp)", first[column(t, "Program Type")])
	assert.Equal(t, "Visa process, Other (Transcripts)", first[column(t, "Challenges")])
	assert.Equal(t, "Yes", first[column(t, "Open to Contact")])
	assert.Equal(t, "2025-03-02T09:30:00Z", first[column(t, "Submitted At")])

	second := records[2]
	assert.Equal(t, "No", second[column(t, "Open to Contact")])
	assert.Equal(t, "", second[column(t, "IELTS")])
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, sampleSubmissions()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, Headers(), rows[0])
	assert.Equal(t, "EDU-OLD001", rows[2][0])
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, sampleSubmissions()))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "All Submissions (2)\n"))
	assert.Contains(t, out, "EDU-NEW002")
	assert.Contains(t, out, "2025-03-01")

	buf.Reset()
	require.NoError(t, WriteTable(&buf, nil))
	assert.Contains(t, buf.String(), "No submissions yet")
}

func TestFilenameAndFormat(t *testing.T) {
	now := time.Date(2025, 12, 31, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, "edustar-submissions-2025-12-31.csv", Filename(FormatCSV, now))
	assert.Equal(t, "edustar-submissions-2025-12-31.xlsx", Filename(FormatXLSX, now))

	f, err := ParseFormat("xlsx")
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, f)

	f, err = ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	for _, bad := range []string{"pdf", "XLSX", " csv"} {
		_, err = ParseFormat(bad)
		assert.Error(t, err, bad)
	}
}
