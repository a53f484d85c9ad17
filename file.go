package importfilter

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/apache/arrow/go/v17/arrow/array"
	pqfile "github.com/apache/arrow/go/v17/parquet/file"
	"github.com/apache/arrow/go/v17/parquet/pqarrow"
	"github.com/xuri/excelize/v2"
)

// Format represents a supported input file format, detected from the
// filename extension after any compression suffix is removed.
type Format int

const (
	// FormatText represents whitespace-delimited text (.csv and .txt).
	// Fields are separated by two or more consecutive whitespace
	// characters; single spaces belong to free-text fields such as
	// addresses and product descriptions.
	FormatText Format = iota
	// FormatXLSX represents an Excel workbook; only the first sheet is read.
	FormatXLSX
	// FormatParquet represents an Apache Parquet file.
	FormatParquet
	// FormatUnsupported represents an unrecognized extension.
	FormatUnsupported
)

// File extensions.
const (
	extCSV     = ".csv"
	extTXT     = ".txt"
	extXLSX    = ".xlsx"
	extParquet = ".parquet"
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatXLSX:
		return "xlsx"
	case FormatParquet:
		return "parquet"
	default:
		return "unsupported"
	}
}

// detectFormat determines the base format of a filename, ignoring a
// trailing compression extension.
func detectFormat(filename string) Format {
	base := trimCompressionExt(filename)
	switch strings.ToLower(filepath.Ext(base)) {
	case extCSV, extTXT:
		return FormatText
	case extXLSX:
		return FormatXLSX
	case extParquet:
		return FormatParquet
	default:
		return FormatUnsupported
	}
}

// rawTable is the parser output before normalization and coercion:
// a trimmed-but-unmapped header and string records.
type rawTable struct {
	header  []string
	records [][]string
}

// fieldSeparator matches runs of two or more whitespace characters.
var fieldSeparator = regexp.MustCompile(`\s{2,}`)

// parseDelimitedText parses whitespace-delimited text. The first
// non-blank line is the header; records shorter than the header are
// padded with empty fields and longer ones are truncated.
func parseDelimitedText(reader io.Reader) (*rawTable, error) {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var header []string
	var records [][]string
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := splitFields(line)
		if header == nil {
			header = fields
			continue
		}
		records = append(records, padRecord(fields, len(header)))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read delimited text: %w", err)
	}
	if len(header) == 0 {
		return nil, errors.New("no header row found")
	}
	return &rawTable{header: header, records: records}, nil
}

// splitFields splits a line on runs of two or more whitespace characters
// and trims residual single-space padding from each field.
func splitFields(line string) []string {
	parts := fieldSeparator.Split(strings.TrimSpace(line), -1)
	fields := make([]string, 0, len(parts))
	for _, part := range parts {
		fields = append(fields, strings.TrimSpace(part))
	}
	return fields
}

// padRecord adjusts a record to exactly width fields.
func padRecord(fields []string, width int) []string {
	if len(fields) == width {
		return fields
	}
	out := make([]string, width)
	copy(out, fields)
	return out
}

// parseXLSX reads the first sheet of a workbook into a raw table.
func parseXLSX(reader io.Reader) (*rawTable, error) {
	workbook, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() {
		_ = workbook.Close()
	}()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("no sheets found in workbook")
	}

	rows, err := workbook.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %s is empty", sheets[0])
	}

	header := make([]string, len(rows[0]))
	copy(header, rows[0])

	records := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		records = append(records, padRecord(row, len(header)))
	}
	return &rawTable{header: header, records: records}, nil
}

// parseParquet reads a parquet payload into a raw table. Parquet requires
// random access, so the payload is held fully in memory, which matches
// the full-materialization model used everywhere else.
func parseParquet(reader io.Reader) (*rawTable, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet data: %w", err)
	}
	if len(data) == 0 {
		return nil, errors.New("empty parquet payload")
	}

	pqReader, err := pqfile.NewParquetReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create parquet reader: %w", err)
	}
	defer pqReader.Close()

	arrowReader, err := pqarrow.NewFileReader(pqReader, pqarrow.ArrowReadProperties{}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create arrow reader: %w", err)
	}

	arrowTable, err := arrowReader.ReadTable(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet table: %w", err)
	}
	defer arrowTable.Release()

	schema := arrowTable.Schema()
	header := make([]string, schema.NumFields())
	for i, field := range schema.Fields() {
		header[i] = field.Name
	}

	var records [][]string
	tableReader := array.NewTableReader(arrowTable, 0)
	defer tableReader.Release()
	for tableReader.Next() {
		batch := tableReader.Record()
		numRows := int(batch.NumRows())
		for i := 0; i < numRows; i++ {
			row := make([]string, len(header))
			for j, col := range batch.Columns() {
				if col.IsNull(i) {
					row[j] = ""
					continue
				}
				row[j] = col.ValueStr(i)
			}
			records = append(records, row)
		}
	}
	if err := tableReader.Err(); err != nil {
		return nil, fmt.Errorf("failed to read parquet records: %w", err)
	}
	return &rawTable{header: header, records: records}, nil
}

// parseRaw decompresses and parses raw upload bytes according to the
// detected format.
func parseRaw(raw []byte, filename string, format Format) (*rawTable, error) {
	reader, cleanup, err := newDecompressReader(bytes.NewReader(raw), detectCompression(filename))
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cleanup()
	}()

	switch format {
	case FormatText:
		return parseDelimitedText(reader)
	case FormatXLSX:
		return parseXLSX(reader)
	case FormatParquet:
		return parseParquet(reader)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filename)
	}
}
