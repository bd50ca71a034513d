package export

import (
	"encoding/csv"
	"io"

	"github.com/edustar/intake-backend/internal/model"
)

// WriteCSV writes a header row followed by one row per submission.
func WriteCSV(w io.Writer, subs []model.Submission) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Headers()); err != nil {
		return err
	}
	for i := range subs {
		if err := cw.Write(Row(&subs[i])); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
