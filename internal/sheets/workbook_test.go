package sheets

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/sourcecd/warehouse/internal/prjerrors"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWorkbookRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "orders.xlsx")

	wb, err := OpenWorkbook(path, "Open SO", "Archive")
	require.NoError(t, err)

	ws, err := wb.Worksheet(ctx, "Open SO")
	require.NoError(t, err)
	require.Equal(t, int64(0), ws.ID())

	require.NoError(t, ws.Update(ctx, "A1", [][]interface{}{{"order_num", "vendor_sku", "ordered_qty"}}))
	require.NoError(t, ws.Update(ctx, "A2", [][]interface{}{
		{"SO1", "VS-1", "12"},
		{"SO2", "VS-2", "3"},
	}))
	require.NoError(t, wb.Close())

	reopened, err := OpenWorkbook(path)
	require.NoError(t, err)
	defer reopened.Close()

	ws, err = reopened.Worksheet(ctx, "Open SO")
	require.NoError(t, err)
	recs, err := ws.Records(ctx)
	require.NoError(t, err)
	require.Equal(t, []map[string]string{
		{"order_num": "SO1", "vendor_sku": "VS-1", "ordered_qty": "12"},
		{"order_num": "SO2", "vendor_sku": "VS-2", "ordered_qty": "3"},
	}, recs)

	require.NoError(t, ws.Clear(ctx))
	recs, err = ws.Records(ctx)
	require.NoError(t, err)
	require.Empty(t, recs)

	_, err = reopened.Worksheet(ctx, "Nope")
	require.ErrorIs(t, err, prjerrors.ErrWorksheetNotFound)
}

func TestWorkbookTemplateOps(t *testing.T) {
	ctx := context.Background()
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", "Template"))
	wb := NewWorkbook("slip", f)

	ws, err := wb.Worksheet(ctx, "Template")
	require.NoError(t, err)

	require.NoError(t, ws.BatchUpdate(ctx, []CellUpdate{
		{Range: "B11", Values: [][]interface{}{{"Acme"}}},
		{Range: "H13:H13", Values: [][]interface{}{{"LTL"}}},
	}))
	require.NoError(t, ws.Update(ctx, "B19", [][]interface{}{{"AC-1", "VS-1", 3, 2, "Brass"}}))

	v, err := f.GetCellValue("Template", "H13")
	require.NoError(t, err)
	require.Equal(t, "LTL", v)
	v, err = f.GetCellValue("Template", "E19")
	require.NoError(t, err)
	require.Equal(t, "2", v)

	require.NoError(t, ws.BatchClear(ctx, []string{"B19:H100"}))
	v, err = f.GetCellValue("Template", "B19")
	require.NoError(t, err)
	require.Empty(t, v)
	v, err = f.GetCellValue("Template", "B11")
	require.NoError(t, err)
	require.Equal(t, "Acme", v)

	require.NoError(t, ws.SetRowsHidden(ctx, 20, 25, true))
	visible, err := f.GetRowVisible("Template", 22)
	require.NoError(t, err)
	require.False(t, visible)
	visible, err = f.GetRowVisible("Template", 19)
	require.NoError(t, err)
	require.True(t, visible)

	book, err := Workbooks{"slip": wb}.Open(ctx, "slip")
	require.NoError(t, err)
	require.Equal(t, "slip", book.ID())
	_, err = Workbooks{}.Open(ctx, "slip")
	require.ErrorIs(t, err, prjerrors.ErrSheetRequest)
}

func TestCell(t *testing.T) {
	require.Equal(t, "", Cell(nil))
	require.Equal(t, "12", Cell(float64(12)))
	require.Equal(t, "0.5", Cell(0.5))
	require.Equal(t, "true", Cell(true))
	require.Equal(t, "SO1", Cell("SO1"))
	require.Equal(t, "'Open SO'!A1", a1("Open SO", "A1"))
	require.Equal(t, "'Bob''s'", a1("Bob's", ""))
}
