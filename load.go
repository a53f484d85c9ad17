package importfilter

import (
	"fmt"
	"strconv"
	"strings"
)

// categoricalRatio is the distinct-to-total threshold below which a
// string column is marked categorical and its values interned.
const categoricalRatio = 0.5

// Load parses raw upload bytes into a normalized Table.
//
// The pipeline runs in a fixed order: format dispatch, header
// canonicalization, date coercion (rows with unparseable dates are
// dropped), numeric coercion (unparseable cells become 0), and
// categorical compaction. Loading is idempotent: identical bytes always
// produce an identical table.
//
// It returns ErrUnsupportedFormat for unrecognized extensions and
// ErrParse when the format parser cannot produce any rows.
func Load(raw []byte, filename string) (*Table, error) {
	format := detectFormat(filename)
	if format == FormatUnsupported {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filename)
	}

	parsed, err := parseRaw(raw, filename, format)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrParse, err)
	}
	if len(parsed.records) == 0 {
		return nil, fmt.Errorf("%w: no data rows", ErrParse)
	}

	header, err := normalizeHeader(parsed.header)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrParse, err)
	}

	columns := make([]Column, len(header))
	for i, name := range header {
		columns[i] = Column{Name: name, Kind: columnKindFor(name)}
	}

	rows := coerceRows(columns, parsed.records)
	compactCategoricals(columns, rows)

	return newTable(newSchema(columns), rows), nil
}

// normalizeHeader trims and canonicalizes every header exactly once and
// rejects duplicate names, which would make filter targets ambiguous.
func normalizeHeader(raw []string) ([]string, error) {
	header := make([]string, len(raw))
	seen := make(map[string]bool, len(raw))
	for i, h := range raw {
		name := canonicalizeHeader(h)
		if seen[name] {
			return nil, fmt.Errorf("%w: %s", errDuplicateColumnName, name)
		}
		seen[name] = true
		header[i] = name
	}
	return header, nil
}

// columnKindFor returns the coercion target for a canonical column name.
func columnKindFor(name string) ColumnKind {
	switch {
	case name == ColDate:
		return ColumnDate
	case numericColumns[name]:
		return ColumnNumber
	default:
		return ColumnString
	}
}

// coerceRows applies per-column coercion to raw string records.
//
// Dates follow a drop policy: a row whose date cell fails day-first
// parsing is removed entirely, because an unparseable date makes the row
// meaningless for range filtering. Numerics follow a zero-fill policy:
// unparseable cells become 0 and the row is kept, since a missing amount
// still aggregates meaningfully. The two policies are intentionally
// different in severity.
func coerceRows(columns []Column, records [][]string) []Row {
	rows := make([]Row, 0, len(records))

	for _, record := range records {
		row := make(Row, len(columns))
		keep := true
		for i, col := range columns {
			var cell string
			if i < len(record) {
				cell = record[i]
			}
			switch col.Kind {
			case ColumnDate:
				parsed, ok := parseDayFirstDate(cell)
				if !ok {
					keep = false
				} else {
					row[i] = NewDate(parsed)
				}
			case ColumnNumber:
				row[i] = NewNumber(parseNumericCell(cell))
			default:
				if trimmed := strings.TrimSpace(cell); trimmed != "" {
					row[i] = NewString(trimmed)
				}
			}
			if !keep {
				break
			}
		}
		if keep {
			rows = append(rows, row)
		}
	}
	return rows
}

// parseNumericCell parses a numeric cell, resolving failures to 0.
func parseNumericCell(cell string) float64 {
	value := strings.TrimSpace(cell)
	if value == "" {
		return 0
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return parsed
}

// compactCategoricals marks low-cardinality string columns as categorical
// and interns their values so duplicate cells share one backing string.
// This is a representation optimization only; equality, substring, and
// set-membership results are unchanged.
func compactCategoricals(columns []Column, rows []Row) {
	if len(rows) == 0 {
		return
	}
	for i, col := range columns {
		if col.Kind != ColumnString {
			continue
		}
		distinct := make(map[string]Value)
		for _, row := range rows {
			if v := row[i]; v.Kind() == KindString {
				distinct[v.Text()] = v
			}
		}
		if float64(len(distinct))/float64(len(rows)) >= categoricalRatio {
			continue
		}
		columns[i].Categorical = true
		for _, row := range rows {
			if v := row[i]; v.Kind() == KindString {
				row[i] = distinct[v.Text()]
			}
		}
	}
}
