package sheets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/sourcecd/warehouse/internal/prjerrors"
	"github.com/xuri/excelize/v2"
)

// Workbook is a Book backed by a local xlsx file. With an empty path it lives
// in memory only.
type Workbook struct {
	mu   sync.Mutex
	f    *excelize.File
	id   string
	path string
}

func NewWorkbook(id string, f *excelize.File) *Workbook {
	return &Workbook{f: f, id: id}
}

// OpenWorkbook loads path, creating the file with the given tabs when it does not exist.
func OpenWorkbook(path string, tabs ...string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if errors.Is(err, os.ErrNotExist) {
		f = excelize.NewFile()
		for i, tab := range tabs {
			if i == 0 {
				if err := f.SetSheetName(f.GetSheetName(0), tab); err != nil {
					return nil, err
				}
				continue
			}
			if _, err := f.NewSheet(tab); err != nil {
				return nil, err
			}
		}
		if err := f.SaveAs(path); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	return &Workbook{f: f, id: path, path: path}, nil
}

func (w *Workbook) ID() string {
	return w.id
}

// File exposes the underlying workbook; callers must not use it concurrently with sheet calls.
func (w *Workbook) File() *excelize.File {
	return w.f
}

func (w *Workbook) Close() error {
	return w.f.Close()
}

func (w *Workbook) Worksheet(_ context.Context, title string) (Worksheet, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	idx, err := w.f.GetSheetIndex(title)
	if err != nil || idx < 0 {
		return nil, fmt.Errorf("%w: %q in %s", prjerrors.ErrWorksheetNotFound, title, w.id)
	}
	return &workbookSheet{wb: w, title: title, idx: int64(idx)}, nil
}

func (w *Workbook) save() error {
	if w.path == "" {
		return nil
	}
	return w.f.SaveAs(w.path)
}

// Workbooks opens local workbooks by key.
type Workbooks map[string]*Workbook

func (ws Workbooks) Open(_ context.Context, key string) (Book, error) {
	w, ok := ws[key]
	if !ok {
		return nil, fmt.Errorf("%w: spreadsheet %s", prjerrors.ErrSheetRequest, key)
	}
	return w, nil
}

type workbookSheet struct {
	wb    *Workbook
	title string
	idx   int64
}

func (s *workbookSheet) ID() int64 {
	return s.idx
}

func (s *workbookSheet) Title() string {
	return s.title
}

func (s *workbookSheet) Clear(_ context.Context) error {
	s.wb.mu.Lock()
	defer s.wb.mu.Unlock()

	rows, err := s.wb.f.GetRows(s.title)
	if err != nil {
		return err
	}
	for r := len(rows); r >= 1; r-- {
		if err := s.wb.f.RemoveRow(s.title, r); err != nil {
			return err
		}
	}
	return s.wb.save()
}

func (s *workbookSheet) update(start string, values [][]interface{}) error {
	col, row, err := excelize.CellNameToCoordinates(start)
	if err != nil {
		return err
	}
	for i, vals := range values {
		cell, err := excelize.CoordinatesToCellName(col, row+i)
		if err != nil {
			return err
		}
		v := vals
		if err := s.wb.f.SetSheetRow(s.title, cell, &v); err != nil {
			return err
		}
	}
	return nil
}

func (s *workbookSheet) Update(_ context.Context, start string, values [][]interface{}) error {
	s.wb.mu.Lock()
	defer s.wb.mu.Unlock()

	if err := s.update(start, values); err != nil {
		return err
	}
	return s.wb.save()
}

func (s *workbookSheet) BatchUpdate(_ context.Context, updates []CellUpdate) error {
	s.wb.mu.Lock()
	defer s.wb.mu.Unlock()

	for _, u := range updates {
		start, _, _ := strings.Cut(u.Range, ":")
		if err := s.update(start, u.Values); err != nil {
			return err
		}
	}
	return s.wb.save()
}

func (s *workbookSheet) BatchClear(_ context.Context, ranges []string) error {
	s.wb.mu.Lock()
	defer s.wb.mu.Unlock()

	for _, rng := range ranges {
		from, to, ok := strings.Cut(rng, ":")
		if !ok {
			to = from
		}
		c1, r1, err := excelize.CellNameToCoordinates(from)
		if err != nil {
			return err
		}
		c2, r2, err := excelize.CellNameToCoordinates(to)
		if err != nil {
			return err
		}
		for r := r1; r <= r2; r++ {
			for c := c1; c <= c2; c++ {
				cell, _ := excelize.CoordinatesToCellName(c, r)
				if err := s.wb.f.SetCellDefault(s.title, cell, ""); err != nil {
					return err
				}
			}
		}
	}
	return s.wb.save()
}

func (s *workbookSheet) Records(_ context.Context) ([]map[string]string, error) {
	s.wb.mu.Lock()
	defer s.wb.mu.Unlock()

	rows, err := s.wb.f.GetRows(s.title)
	if err != nil {
		return nil, err
	}
	return records(rows), nil
}

func (s *workbookSheet) SetRowsHidden(_ context.Context, start, end int, hidden bool) error {
	s.wb.mu.Lock()
	defer s.wb.mu.Unlock()

	for r := start; r <= end; r++ {
		if r < 1 {
			continue
		}
		if err := s.wb.f.SetRowVisible(s.title, r, !hidden); err != nil {
			return err
		}
	}
	return s.wb.save()
}
