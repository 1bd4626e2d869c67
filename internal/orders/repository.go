package orders

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/sourcecd/warehouse/internal/csvmap"
	"github.com/sourcecd/warehouse/internal/models"
	"github.com/sourcecd/warehouse/internal/sheets"
	"golang.org/x/sync/singleflight"
)

const loadTimeout = 2 * time.Minute

// Repository reads and replaces the open orders tab of the source spreadsheet.
// Reads are cached for ttl; concurrent reloads share one remote call.
type Repository struct {
	opener sheets.Opener
	key    string
	tab    string
	ttl    time.Duration
	now    func() time.Time

	sf       singleflight.Group
	mu       sync.Mutex
	gen      uint64
	lines    []models.OrderLine
	loadedAt time.Time
	loaded   bool
}

func NewRepository(opener sheets.Opener, spreadsheetID, tab string, ttl time.Duration) *Repository {
	return &Repository{
		opener: opener,
		key:    spreadsheetID,
		tab:    tab,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Tab is the worksheet holding the open orders.
func (r *Repository) Tab() string {
	return r.tab
}

func (r *Repository) worksheet(ctx context.Context) (sheets.Worksheet, error) {
	book, err := r.opener.Open(ctx, r.key)
	if err != nil {
		return nil, err
	}
	return book.Worksheet(ctx, r.tab)
}

// Replace overwrites the whole tab with t and returns the number of lines written.
func (r *Repository) Replace(ctx context.Context, t *csvmap.Table) (int, error) {
	ws, err := r.worksheet(ctx)
	if err != nil {
		return 0, err
	}
	defer r.Refresh()

	if err := ws.Clear(ctx); err != nil {
		return 0, fmt.Errorf("clear %s: %w", r.tab, err)
	}
	if err := ws.Update(ctx, "A1", [][]interface{}{t.Header()}); err != nil {
		return 0, fmt.Errorf("write header: %w", err)
	}
	if t.Len() > 0 {
		if err := ws.Update(ctx, "A2", t.Values()); err != nil {
			return 0, fmt.Errorf("write lines: %w", err)
		}
	}
	return t.Len(), nil
}

// Refresh drops the cached lines.
func (r *Repository) Refresh() {
	r.mu.Lock()
	r.gen++
	r.loaded = false
	r.lines = nil
	r.mu.Unlock()
}

// Lines returns the cached lines, loading them when the cache is stale. The
// shared load is detached from the caller, so a cancelled request only gives
// up its own wait.
func (r *Repository) Lines(ctx context.Context) ([]models.OrderLine, error) {
	r.mu.Lock()
	if r.loaded && r.now().Sub(r.loadedAt) < r.ttl {
		lines := r.lines
		r.mu.Unlock()
		return lines, nil
	}
	gen := r.gen
	r.mu.Unlock()

	ch := r.sf.DoChan(strconv.FormatUint(gen, 10), func() (interface{}, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), loadTimeout)
		defer cancel()
		return r.load(loadCtx, gen)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]models.OrderLine), nil
	}
}

func (r *Repository) load(ctx context.Context, gen uint64) ([]models.OrderLine, error) {
	ws, err := r.worksheet(ctx)
	if err != nil {
		return nil, err
	}
	recs, err := ws.Records(ctx)
	if err != nil {
		return nil, err
	}
	lines := make([]models.OrderLine, 0, len(recs))
	for _, rec := range recs {
		lines = append(lines, parseLine(rec))
	}

	r.mu.Lock()
	if r.gen == gen {
		r.lines = lines
		r.loadedAt = r.now()
		r.loaded = true
	}
	r.mu.Unlock()
	return lines, nil
}

func parseLine(rec map[string]string) models.OrderLine {
	return models.OrderLine{
		OrderNum:     rec["order_num"],
		PONum:        rec["po_num"],
		CustomerName: rec["customer_name"],
		VendorSKU:    rec["vendor_sku"],
		Description:  rec["description"],
		OrderedQty:   parseQty(rec["ordered_qty"]),
		Address1:     rec["address_1"],
		Address2:     rec["address_2"],
		CustomerSKU:  rec["customer_sku"],
		CityStateZip: rec["city_state_zip"],
	}
}

// parseQty accepts "12" and "12.0"; anything else counts as zero.
func parseQty(s string) int64 {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int64(f)
	}
	return 0
}
