// Package export renders employee listings as downloadable spreadsheets.
package export

import (
	"fmt"
	"io"

	"github.com/deppfellow/employee-directory/internal/model"
	"github.com/xuri/excelize/v2"
)

const (
	// SheetName is the name of the single worksheet in an export.
	SheetName = "Employees"

	// ContentType is the MIME type of an .xlsx workbook.
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type column struct {
	header string
	width  float64
	value  func(model.Employee) any
}

var columns = []column{
	{"ID", 10, func(e model.Employee) any { return e.ID }},
	{"Name", 30, func(e model.Employee) any { return e.Name }},
	{"Email", 36, func(e model.Employee) any { return e.Email }},
	{"Department", 24, func(e model.Employee) any { return e.Department }},
	{"Designation", 24, func(e model.Employee) any { return e.Designation }},
	{"Date of Joining", 16, func(e model.Employee) any { return e.DateOfJoining.String() }},
}

// Workbook streams employee rows into a single-sheet xlsx file.
type Workbook struct {
	file   *excelize.File
	stream *excelize.StreamWriter
	row    int
}

// NewWorkbook creates a workbook and writes its styled header row.
func NewWorkbook() (*Workbook, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create stream writer: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4472C4"}},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create header style: %w", err)
	}

	for i, col := range columns {
		if err := sw.SetColWidth(i+1, i+1, col.width); err != nil {
			f.Close()
			return nil, fmt.Errorf("set column width: %w", err)
		}
	}

	header := make([]any, len(columns))
	for i, col := range columns {
		header[i] = excelize.Cell{Value: col.header, StyleID: headerStyle}
	}
	if err := sw.SetRow("A1", header); err != nil {
		f.Close()
		return nil, fmt.Errorf("write header: %w", err)
	}

	return &Workbook{file: f, stream: sw, row: 1}, nil
}

// Append writes employees after the rows already written.
func (w *Workbook) Append(employees []model.Employee) error {
	for _, e := range employees {
		w.row++

		cell, err := excelize.CoordinatesToCellName(1, w.row)
		if err != nil {
			return err
		}

		values := make([]any, len(columns))
		for i, col := range columns {
			values[i] = col.value(e)
		}

		if err := w.stream.SetRow(cell, values); err != nil {
			return fmt.Errorf("write row %d: %w", w.row, err)
		}
	}
	return nil
}

// Rows returns the number of data rows written.
func (w *Workbook) Rows() int {
	return w.row - 1
}

// WriteTo flushes the workbook to out and releases it.
func (w *Workbook) WriteTo(out io.Writer) (int64, error) {
	defer w.file.Close()

	if err := w.stream.Flush(); err != nil {
		return 0, fmt.Errorf("flush rows: %w", err)
	}
	return w.file.WriteTo(out)
}

// Close releases the workbook without writing it.
func (w *Workbook) Close() error {
	return w.file.Close()
}
