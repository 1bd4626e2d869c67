package orders

import (
	"io"

	"github.com/sourcecd/warehouse/internal/csvmap"
	"github.com/sourcecd/warehouse/internal/models"
	"github.com/xuri/excelize/v2"
)

func lineValues(l models.OrderLine) []interface{} {
	return []interface{}{
		l.OrderNum, l.PONum, l.CustomerName, l.VendorSKU, l.Description,
		l.OrderedQty, l.Address1, l.Address2, l.CustomerSKU, l.CityStateZip,
	}
}

// ExportWorkbook writes lines to the sheet tab of a new xlsx workbook with one header row.
func ExportWorkbook(lines []models.OrderLine, sheet string, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return err
	}

	header := make([]interface{}, 0, len(csvmap.ColumnMap))
	for _, c := range csvmap.ColumnMap {
		header = append(header, c.Canonical)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for i, l := range lines {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := lineValues(l)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "A", "J", 18); err != nil {
		return err
	}
	return f.Write(w)
}
