// Package documents fills the label and packing slip templates and exports
// them as PDF.
//
// Templates are shared spreadsheets: a generation writes cells, waits for the
// service to settle, then exports the tab. Generations against the same
// template are serialized within the process; other processes writing the
// same template are not coordinated.
package documents

import (
	"context"
	"fmt"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/sourcecd/warehouse/internal/config"
	"github.com/sourcecd/warehouse/internal/models"
	"github.com/sourcecd/warehouse/internal/pdfpage"
	"github.com/sourcecd/warehouse/internal/prjerrors"
	"github.com/sourcecd/warehouse/internal/sheets"
)

var (
	BatchSettings  = pdfpage.Settings{Scale: 0.95, X: -60, Y: 95, Rotate: true}
	SingleSettings = pdfpage.Settings{Scale: 0.95, Rotate: true}
)

type Generator struct {
	opener   sheets.Opener
	exporter sheets.Exporter
	layout   config.Layout
	labelID  string
	slipID   string
	settle   time.Duration

	transform func([]byte, pdfpage.Settings) ([]byte, error)
	merge     func([][]byte) ([]byte, error)

	labelMu sync.Mutex
	slipMu  sync.Mutex
}

func NewGenerator(opener sheets.Opener, exporter sheets.Exporter, layout config.Layout, labelID, slipID string, settle time.Duration) *Generator {
	return &Generator{
		opener:    opener,
		exporter:  exporter,
		layout:    layout,
		labelID:   labelID,
		slipID:    slipID,
		settle:    settle,
		transform: pdfpage.Transform,
		merge:     pdfpage.Merge,
	}
}

// Truncate cuts s to max runes and marks the cut with "...".
func Truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max]) + "..."
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (g *Generator) template(ctx context.Context, key, tab string) (sheets.Book, sheets.Worksheet, error) {
	book, err := g.opener.Open(ctx, key)
	if err != nil {
		return nil, nil, err
	}
	ws, err := book.Worksheet(ctx, tab)
	if err != nil {
		return nil, nil, err
	}
	return book, ws, nil
}

func cell(rng string, v interface{}) sheets.CellUpdate {
	return sheets.CellUpdate{Range: rng, Values: [][]interface{}{{v}}}
}

// ApplyShip returns the order lines with edited ship quantities applied by vendor SKU.
func ApplyShip(order *models.Order, ship []models.ShipLine) ([]models.DetailLine, error) {
	qty := make(map[string]int64, len(ship))
	for _, s := range ship {
		if s.ShippedQty < 0 {
			return nil, fmt.Errorf("%w: negative ship quantity for %s", prjerrors.ErrValidateRequest, s.VendorSKU)
		}
		qty[s.VendorSKU] = s.ShippedQty
	}

	lines := make([]models.DetailLine, len(order.Lines))
	copy(lines, order.Lines)
	seen := make(map[string]bool, len(qty))
	for i, l := range lines {
		if q, ok := qty[l.VendorSKU]; ok {
			lines[i].ShippedQty = q
			seen[l.VendorSKU] = true
		}
	}
	for sku := range qty {
		if !seen[sku] {
			return nil, fmt.Errorf("%w: %s in %s", prjerrors.ErrSkuNotFound, sku, order.Header.OrderNum)
		}
	}
	return lines, nil
}
