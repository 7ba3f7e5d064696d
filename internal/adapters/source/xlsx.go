package source

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/okian/brokerscore/internal/domain/duration"
	"github.com/okian/brokerscore/internal/domain/model"
	"github.com/okian/brokerscore/pkg/logger"
)

const secondsPerDay = 86400

// XLSXOption configures an XLSX source.
type XLSXOption func(*XLSX)

// WithSheetName selects the sheet by name. It overrides WithSheetIndex.
func WithSheetName(name string) XLSXOption {
	return func(x *XLSX) { x.sheetName = name }
}

// WithSheetIndex selects the sheet by position (default 0).
func WithSheetIndex(i int) XLSXOption {
	return func(x *XLSX) {
		if i >= 0 {
			x.sheetIndex = i
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) XLSXOption {
	return func(x *XLSX) {
		if l != nil {
			x.logger = l
		}
	}
}

// XLSX reads evaluation rows from a workbook. The first row is the header;
// every following non-empty row becomes one RawRecord keyed by header text.
type XLSX struct {
	path       string
	sheetName  string
	sheetIndex int
	logger     logger.Logger
}

// NewXLSX creates an XLSX source for path.
func NewXLSX(path string, opts ...XLSXOption) *XLSX {
	x := &XLSX{path: path, logger: logger.Nop()}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// Fetch implements Source.
func (x *XLSX) Fetch(ctx context.Context) ([]model.RawRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, acquisition(eris.Wrap(err, "xlsx: context cancelled"))
	}

	f, err := xlsx.OpenFile(x.path)
	if err != nil {
		return nil, acquisition(eris.Wrapf(err, "xlsx: open file %s", x.path))
	}
	sheet, err := x.sheet(f)
	if err != nil {
		return nil, acquisition(err)
	}

	var (
		header []string
		rows   []model.RawRecord
	)
	for _, row := range sheet.Rows {
		if ctx.Err() != nil {
			return nil, acquisition(eris.Wrap(ctx.Err(), "xlsx: context cancelled"))
		}
		if row == nil {
			continue
		}
		if header == nil {
			header = headerCells(row)
			continue
		}
		rec := record(header, row)
		if len(rec) == 0 {
			continue
		}
		rows = append(rows, rec)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("xlsx %s: %w", x.path, model.ErrEmptyDataset)
	}
	x.logger.Info(ctx, "workbook read",
		logger.String("path", x.path),
		logger.String("sheet", sheet.Name),
		logger.Int("rows", len(rows)),
		logger.Int("columns", len(header)),
	)
	return rows, nil
}

func (x *XLSX) sheet(f *xlsx.File) (*xlsx.Sheet, error) {
	if x.sheetName != "" {
		sheet, ok := f.Sheet[x.sheetName]
		if !ok {
			return nil, eris.Errorf("xlsx: sheet %q not found", x.sheetName)
		}
		return sheet, nil
	}
	if x.sheetIndex >= len(f.Sheets) {
		return nil, eris.Errorf("xlsx: sheet index %d out of range (file has %d sheets)", x.sheetIndex, len(f.Sheets))
	}
	return f.Sheets[x.sheetIndex], nil
}

func acquisition(err error) error {
	return fmt.Errorf("%w: %w", model.ErrAcquisition, err)
}

// headerCells returns trimmed header text. Blank and repeated headers are
// returned as "" so their columns are ignored.
func headerCells(row *xlsx.Row) []string {
	seen := make(map[string]bool, len(row.Cells))
	out := make([]string, len(row.Cells))
	for j, c := range row.Cells {
		h := strings.TrimSpace(c.String())
		if h == "" || seen[h] {
			continue
		}
		seen[h] = true
		out[j] = h
	}
	return out
}

func record(header []string, row *xlsx.Row) model.RawRecord {
	rec := model.RawRecord{}
	for j, c := range row.Cells {
		if j >= len(header) || header[j] == "" || c == nil {
			continue
		}
		if v, ok := cellValue(c); ok {
			rec[header[j]] = v
		}
	}
	return rec
}

// cellValue converts a cell to a scalar: numbers as float64, time-formatted
// numbers as "HH:MM:SS", everything else as text. Blank cells are absent.
func cellValue(c *xlsx.Cell) (any, bool) {
	if c.Type() == xlsx.CellTypeNumeric {
		if f, err := c.Float(); err == nil {
			if isTimeFormat(c.GetNumberFormat()) {
				return duration.Format(int64(math.Round(f * secondsPerDay))), true
			}
			return f, true
		}
	}
	s := c.String()
	if strings.TrimSpace(s) == "" {
		return nil, false
	}
	return s, true
}

func isTimeFormat(format string) bool {
	f := strings.ToLower(format)
	return strings.Contains(f, "h") && strings.Contains(f, ":")
}
