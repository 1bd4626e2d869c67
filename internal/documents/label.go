package documents

import (
	"context"
	"fmt"

	"github.com/sourcecd/warehouse/internal/models"
	"github.com/sourcecd/warehouse/internal/pdfpage"
	"github.com/sourcecd/warehouse/internal/prjerrors"
	"github.com/sourcecd/warehouse/internal/sheets"
)

func (g *Generator) label(ctx context.Context, book sheets.Book, ws sheets.Worksheet, line models.OrderLine, qty int64, s pdfpage.Settings) ([]byte, error) {
	l := g.layout.Label
	updates := []sheets.CellUpdate{
		cell(l.CustomerSKU, line.CustomerSKU),
		cell(l.Description, Truncate(line.Description, g.layout.DescriptionMax)),
		cell(l.VendorSKU, line.VendorSKU),
		cell(l.PONum, line.PONum),
		cell(l.Qty, qty),
	}
	if err := ws.BatchUpdate(ctx, updates); err != nil {
		return nil, fmt.Errorf("fill label %s: %w", line.VendorSKU, err)
	}
	if err := wait(ctx, g.settle); err != nil {
		return nil, err
	}

	raw, err := g.exporter.Export(ctx, book.ID(), ws.ID(), sheets.ExportOptions{Portrait: true})
	if err != nil {
		return nil, fmt.Errorf("export label %s: %w", line.VendorSKU, err)
	}
	return g.transform(raw, s)
}

// Label renders one label page for line with qty printed on it.
func (g *Generator) Label(ctx context.Context, line models.OrderLine, qty int64, s pdfpage.Settings) ([]byte, error) {
	if qty < 1 {
		return nil, fmt.Errorf("%w: label quantity must be at least 1", prjerrors.ErrValidateRequest)
	}

	g.labelMu.Lock()
	defer g.labelMu.Unlock()

	book, ws, err := g.template(ctx, g.labelID, g.layout.Label.Worksheet)
	if err != nil {
		return nil, err
	}
	return g.label(ctx, book, ws, line, qty, s)
}

// BatchLabels renders one label per line with a positive ship quantity and
// merges them into one document. It returns the number of labels.
func (g *Generator) BatchLabels(ctx context.Context, lines []models.DetailLine, s pdfpage.Settings) ([]byte, int, error) {
	var printable []models.DetailLine
	for _, l := range lines {
		if l.ShippedQty > 0 {
			printable = append(printable, l)
		}
	}
	if len(printable) == 0 {
		return nil, 0, prjerrors.ErrNothingToPrint
	}

	g.labelMu.Lock()
	defer g.labelMu.Unlock()

	book, ws, err := g.template(ctx, g.labelID, g.layout.Label.Worksheet)
	if err != nil {
		return nil, 0, err
	}

	pages := make([][]byte, 0, len(printable))
	for _, l := range printable {
		page, err := g.label(ctx, book, ws, l.OrderLine, l.ShippedQty, s)
		if err != nil {
			return nil, 0, err
		}
		pages = append(pages, page)
	}

	doc, err := g.merge(pages)
	if err != nil {
		return nil, 0, err
	}
	return doc, len(pages), nil
}
