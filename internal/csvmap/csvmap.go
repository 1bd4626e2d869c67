package csvmap

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sourcecd/warehouse/internal/prjerrors"
	"golang.org/x/sync/errgroup"
)

type Column struct {
	Source    string
	Canonical string
}

// ColumnMap is the fixed rename table from ERP export headers to sheet fields.
// Order matters: it is the column order of the orders sheet.
var ColumnMap = []Column{
	{"Order Number", "order_num"},
	{"PO Number", "po_num"},
	{"CustomerName", "customer_name"},
	{"Item", "vendor_sku"},
	{"ItemDescription", "description"},
	{"OrderedQty", "ordered_qty"},
	{"Ship To Address 1", "address_1"},
	{"Ship To Address 2", "address_2"},
	{"Cust SKU", "customer_sku"},
	{"Match Data for Address", "city_state_zip"},
}

func canonicalIndex(name string) int {
	for i, c := range ColumnMap {
		if c.Canonical == name {
			return i
		}
	}
	return -1
}

type Table struct {
	Columns []string
	Rows    [][]string
}

func (t *Table) Len() int {
	return len(t.Rows)
}

// Values returns the rows as sheet cell values.
func (t *Table) Values() [][]interface{} {
	values := make([][]interface{}, 0, len(t.Rows))
	for _, row := range t.Rows {
		vals := make([]interface{}, len(row))
		for i, v := range row {
			vals[i] = v
		}
		values = append(values, vals)
	}
	return values
}

func (t *Table) Header() []interface{} {
	header := make([]interface{}, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c
	}
	return header
}

func Parse(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, prjerrors.ErrNoKnownColumns
		}
		return nil, err
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	pos := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if _, dup := pos[h]; !dup {
			pos[h] = i
		}
	}

	var (
		cols []string
		src  []int
	)
	for _, c := range ColumnMap {
		if i, ok := pos[c.Source]; ok {
			cols = append(cols, c.Canonical)
			src = append(src, i)
		}
	}
	if len(cols) == 0 {
		return nil, prjerrors.ErrNoKnownColumns
	}

	t := &Table{Columns: cols}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if blank(rec) {
			continue
		}
		row := make([]string, len(src))
		for j, i := range src {
			if i < len(rec) {
				row[j] = rec[i]
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// Merge concatenates tables. Columns become the union in ColumnMap order,
// cells a table does not have are left empty.
func Merge(tables ...*Table) *Table {
	present := make([]bool, len(ColumnMap))
	for _, t := range tables {
		for _, c := range t.Columns {
			if i := canonicalIndex(c); i >= 0 {
				present[i] = true
			}
		}
	}

	merged := &Table{}
	for i, ok := range present {
		if ok {
			merged.Columns = append(merged.Columns, ColumnMap[i].Canonical)
		}
	}

	for _, t := range tables {
		at := make([]int, len(merged.Columns))
		for j, c := range merged.Columns {
			at[j] = -1
			for k, tc := range t.Columns {
				if tc == c {
					at[j] = k
				}
			}
		}
		for _, row := range t.Rows {
			out := make([]string, len(merged.Columns))
			for j, k := range at {
				if k >= 0 {
					out[j] = row[k]
				}
			}
			merged.Rows = append(merged.Rows, out)
		}
	}
	return merged
}

type File struct {
	Name string
	Open func() (io.ReadCloser, error)
}

// ParseAll parses every file concurrently and merges them in the given order.
func ParseAll(ctx context.Context, files []File) (*Table, error) {
	if len(files) == 0 {
		return nil, prjerrors.ErrNoFiles
	}

	tables := make([]*Table, len(files))
	g, ctx := errgroup.WithContext(ctx)
	for i, f := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rc, err := f.Open()
			if err != nil {
				return fmt.Errorf("%s: %w", f.Name, err)
			}
			defer rc.Close()

			t, err := Parse(rc)
			if err != nil {
				return fmt.Errorf("%s: %w", f.Name, err)
			}
			tables[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return Merge(tables...), nil
}
