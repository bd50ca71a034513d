package export

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/edustar/intake-backend/internal/model"
)

// WriteTable writes the admin summary columns as an aligned text table.
func WriteTable(w io.Writer, subs []model.Submission) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "All Submissions (%d)\n", len(subs))
	if len(subs) == 0 {
		fmt.Fprintln(tw, "No submissions yet")
		return tw.Flush()
	}

	fmt.Fprintln(tw, "REFERENCE #\tFULL NAME\tEMAIL\tNATIONALITY\tPROGRAM TYPE\tFIELD OF STUDY\tSUBMITTED")
	for _, s := range subs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			s.ReferenceNumber,
			s.FullName,
			s.Email,
			s.Nationality,
			dash(s.ProgramType),
			dash(s.FieldOfStudyAbroad),
			s.CreatedAt.UTC().Format("2006-01-02"),
		)
	}
	return tw.Flush()
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
