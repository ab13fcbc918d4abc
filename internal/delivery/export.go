package delivery

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/kbuenafe/dr2xlsx/internal/extraction"
)

const exportSheet = "Delivery"

// XLSXContentType is the MIME type for xlsx downloads
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// exportHeader is row 1 of the sheet. Column A is deliberately blank; data
// starts at B to match the layout of the ledger the rows get pasted into.
var exportHeader = []interface{}{"", "Date", "Qty", "Unit", "Item", "DR#", "Remarks", "Received by"}

// exportColWidths are fixed hints per column A..H, not computed from content.
var exportColWidths = []float64{2, 15, 10, 10, 30, 15, 20, 20}

// ExportFilename returns the download filename for the given moment. The
// name embeds only the calendar year, so two exports in the same year
// collide on purpose: the browser's download handling disambiguates.
func ExportFilename(now time.Time) string {
	return fmt.Sprintf("Manila Delivery %d.xlsx", now.Year())
}

// BuildWorkbook lays the items out on a single "Delivery" sheet: one header
// row, then one row per item with a leading empty cell. Optional fields are
// written as empty strings, never omitted.
func BuildWorkbook(items []extraction.LineItem) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, fmt.Errorf("naming sheet: %w", err)
	}

	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return nil, fmt.Errorf("writing header row: %w", err)
	}

	for i, item := range items {
		row := []interface{}{
			"",
			item.Date,
			item.Qty,
			item.Unit,
			item.Item,
			item.DRNumber,
			item.Remarks,
			item.ReceivedBy,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("computing cell for row %d: %w", i, err)
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("writing row %d: %w", i, err)
		}
	}

	for i, width := range exportColWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, fmt.Errorf("computing column name %d: %w", i, err)
		}
		if err := f.SetColWidth(exportSheet, col, col, width); err != nil {
			return nil, fmt.Errorf("setting column width %s: %w", col, err)
		}
	}

	return f, nil
}
