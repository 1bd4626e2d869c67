// Package sheets is the spreadsheet service the portal uses as its order
// database and as document stencils. Two backends exist: the Google Sheets
// REST API and local xlsx workbooks.
package sheets

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// CellUpdate writes Values starting at the top-left cell of Range.
type CellUpdate struct {
	Range  string          `json:"range"`
	Values [][]interface{} `json:"values"`
}

type Worksheet interface {
	ID() int64
	Title() string
	Clear(ctx context.Context) error
	Update(ctx context.Context, start string, values [][]interface{}) error
	BatchUpdate(ctx context.Context, updates []CellUpdate) error
	BatchClear(ctx context.Context, ranges []string) error
	// Records maps every non-empty row below the header by header name.
	Records(ctx context.Context) ([]map[string]string, error)
	// SetRowsHidden takes 1-based inclusive row numbers.
	SetRowsHidden(ctx context.Context, start, end int, hidden bool) error
}

type Book interface {
	ID() string
	Worksheet(ctx context.Context, title string) (Worksheet, error)
}

type Opener interface {
	Open(ctx context.Context, key string) (Book, error)
}

type ExportOptions struct {
	Portrait bool
	FitWidth bool
	// inches, applied to all four sides
	Margin float64
}

type Exporter interface {
	Export(ctx context.Context, spreadsheetID string, gid int64, opts ExportOptions) ([]byte, error)
}

// Cell converts a value read from a sheet into its string form.
func Cell(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}

func records(rows [][]string) []map[string]string {
	if len(rows) == 0 {
		return nil
	}
	header := rows[0]
	var out []map[string]string
	for _, row := range rows[1:] {
		empty := true
		rec := make(map[string]string, len(header))
		for i, h := range header {
			if h == "" {
				continue
			}
			v := ""
			if i < len(row) {
				v = row[i]
			}
			if v != "" {
				empty = false
			}
			rec[h] = v
		}
		if !empty {
			out = append(out, rec)
		}
	}
	return out
}

// a1 prefixes a cell range with a quoted sheet title.
func a1(title, rng string) string {
	quoted := "'" + strings.ReplaceAll(title, "'", "''") + "'"
	if rng == "" {
		return quoted
	}
	return quoted + "!" + rng
}
