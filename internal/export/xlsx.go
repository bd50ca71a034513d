package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/edustar/intake-backend/internal/model"
)

// SheetName is the worksheet holding the export.
const SheetName = "Submissions"

// WriteXLSX writes a single-sheet workbook with a frozen, filterable header.
func WriteXLSX(w io.Writer, subs []model.Submission) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	if err := setRow(f, 1, Headers()); err != nil {
		return err
	}
	lastCol, err := excelize.ColumnNumberToName(len(Columns))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetName, "A1", lastCol+"1", headerStyle); err != nil {
		return err
	}

	for i := range subs {
		if err := setRow(f, i+2, Row(&subs[i])); err != nil {
			return err
		}
	}

	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return err
	}
	if err := f.AutoFilter(SheetName, fmt.Sprintf("A1:%s%d", lastCol, len(subs)+1), nil); err != nil {
		return err
	}

	_, err = f.WriteTo(w)
	return err
}

func setRow(f *excelize.File, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return f.SetSheetRow(SheetName, cell, &cells)
}
