package importfilter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ExportSheetName is the sheet name used for spreadsheet export.
const ExportSheetName = "Filtered Data"

// OutputFormat represents an export serialization.
type OutputFormat int

const (
	// OutputCSV exports UTF-8, comma-delimited CSV with a header row.
	OutputCSV OutputFormat = iota
	// OutputXLSX exports a single-sheet workbook with a header row.
	OutputXLSX
)

// String returns the format name.
func (f OutputFormat) String() string {
	switch f {
	case OutputXLSX:
		return "xlsx"
	default:
		return "csv"
	}
}

// Extension returns the file extension for the format.
func (f OutputFormat) Extension() string {
	switch f {
	case OutputXLSX:
		return extXLSX
	default:
		return extCSV
	}
}

// ExportOptions controls Export.
type ExportOptions struct {
	// Format selects the serialization. Defaults to CSV.
	Format OutputFormat
	// Compression optionally wraps the output stream. bzip2 is not
	// supported for writing.
	Compression CompressionType
}

// Export serializes a table to w according to opts.
func Export(t *Table, w io.Writer, opts ExportOptions) error {
	if len(t.Schema().Columns()) == 0 {
		return ErrEmptyTable
	}

	compressed, cleanup, err := newCompressWriter(w, opts.Compression)
	if err != nil {
		return err
	}

	switch opts.Format {
	case OutputXLSX:
		err = WriteXLSX(t, compressed)
	default:
		err = WriteCSV(t, compressed)
	}
	if closeErr := cleanup(); err == nil {
		err = closeErr
	}
	return err
}

// WriteCSV writes the table as UTF-8 CSV with a header row. Dates render
// as 2006-01-02, numbers in plain decimal notation, nulls as empty cells.
func WriteCSV(t *Table, w io.Writer) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(t.Schema().Names()); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	record := make([]string, len(t.Schema().Names()))
	for _, row := range t.Rows() {
		for i, v := range row {
			record[i] = v.String()
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

// WriteXLSX writes the table as a single-sheet workbook named
// "Filtered Data" with a header row. Numbers and dates are written as
// typed cells so spreadsheet consumers see native values.
func WriteXLSX(t *Table, w io.Writer) error {
	workbook := excelize.NewFile()
	defer func() {
		_ = workbook.Close()
	}()

	defaultSheet := workbook.GetSheetName(workbook.GetActiveSheetIndex())
	if err := workbook.SetSheetName(defaultSheet, ExportSheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	for i, name := range t.Schema().Names() {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("failed to compute header cell: %w", err)
		}
		if err := workbook.SetCellValue(ExportSheetName, cell, name); err != nil {
			return fmt.Errorf("failed to write header cell: %w", err)
		}
	}

	for rowIdx, row := range t.Rows() {
		for colIdx, v := range row {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return fmt.Errorf("failed to compute cell: %w", err)
			}
			if err := workbook.SetCellValue(ExportSheetName, cell, cellValue(v)); err != nil {
				return fmt.Errorf("failed to write cell: %w", err)
			}
		}
	}

	if _, err := workbook.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// cellValue converts a Value to the native type excelize expects.
func cellValue(v Value) any {
	switch v.Kind() {
	case KindNumber:
		return v.Number()
	case KindDate:
		return v.String()
	case KindString:
		return v.Text()
	default:
		return ""
	}
}
