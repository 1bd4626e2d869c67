package documents

import (
	"context"
	"fmt"

	"github.com/sourcecd/warehouse/internal/models"
	"github.com/sourcecd/warehouse/internal/prjerrors"
	"github.com/sourcecd/warehouse/internal/sheets"
)

// PackingSlip fills the slip template with the order header and every line
// with a positive ship quantity, hides the unused line rows and exports the tab.
func (g *Generator) PackingSlip(ctx context.Context, header models.OrderHeader, lines []models.DetailLine, method string) ([]byte, error) {
	switch method {
	case "":
		method = models.ShipSmallParcel
	case models.ShipSmallParcel, models.ShipLTL:
	default:
		return nil, fmt.Errorf("%w: %q", prjerrors.ErrShipMethod, method)
	}

	l := g.layout.Slip
	var rows [][]interface{}
	for _, line := range lines {
		if line.ShippedQty <= 0 {
			continue
		}
		rows = append(rows, []interface{}{
			line.CustomerSKU,
			line.VendorSKU,
			line.OrderedQty,
			line.ShippedQty,
			Truncate(line.Description, g.layout.DescriptionMax),
		})
	}

	g.slipMu.Lock()
	defer g.slipMu.Unlock()

	book, ws, err := g.template(ctx, g.slipID, l.Worksheet)
	if err != nil {
		return nil, err
	}

	if err := ws.SetRowsHidden(ctx, l.FirstRow, l.ShowUntil, false); err != nil {
		return nil, fmt.Errorf("show slip rows: %w", err)
	}
	if err := ws.BatchUpdate(ctx, []sheets.CellUpdate{
		cell(l.CustomerName, header.CustomerName),
		cell(l.Address1, header.Address1),
		cell(l.Address2, header.Address2),
		cell(l.CityStateZip, header.CityStateZip),
		cell(l.OrderNum, header.OrderNum),
		cell(l.PONum, header.PONum),
		cell(l.ShipMethod, method),
	}); err != nil {
		return nil, fmt.Errorf("fill slip header: %w", err)
	}
	if err := ws.BatchClear(ctx, []string{l.LinesClear}); err != nil {
		return nil, fmt.Errorf("clear slip lines: %w", err)
	}
	if len(rows) > 0 {
		if err := ws.Update(ctx, l.LinesStart, rows); err != nil {
			return nil, fmt.Errorf("fill slip lines: %w", err)
		}
	}
	if err := ws.SetRowsHidden(ctx, l.FirstRow+len(rows), l.HideUntil, true); err != nil {
		return nil, fmt.Errorf("hide slip rows: %w", err)
	}
	if err := wait(ctx, g.settle); err != nil {
		return nil, err
	}

	doc, err := g.exporter.Export(ctx, book.ID(), ws.ID(), sheets.ExportOptions{
		Portrait: true,
		FitWidth: true,
		Margin:   l.MarginInch,
	})
	if err != nil {
		return nil, fmt.Errorf("export slip %s: %w", header.OrderNum, err)
	}
	return doc, nil
}
