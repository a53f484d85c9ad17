package importfilter

import (
	"sort"
	"strings"
	"time"
)

// Special filter keys that do not name a column directly.
const (
	// KeyDateRange filters the DATE column by an inclusive date range.
	KeyDateRange = "DATE_RANGE"
	// KeyAWPMachines filters the PRODUCT DESCRIPTION column by the AWP
	// keyword vocabulary, OR across the selected keywords.
	KeyAWPMachines = "AWP_MACHINES"
)

// matchKind discriminates the criterion variants.
type matchKind int

const (
	matchNone matchKind = iota
	matchSubstring
	matchOneOf
	matchRange
	matchKeywords
)

// Criterion is one filter key's match specification. The zero Criterion
// is a no-op. Construct values with Contains, OneOf, Between, or
// MatchesAny; the evaluator dispatches on the variant tag.
type Criterion struct {
	kind     matchKind
	text     string
	values   []string
	start    time.Time
	end      time.Time
	keywords []string
}

// Contains matches rows whose target column, coerced to its string form,
// contains the given substring case-insensitively. An empty substring is
// a no-op.
func Contains(substring string) Criterion {
	return Criterion{kind: matchSubstring, text: substring}
}

// OneOf matches rows whose target column equals any of the given values
// exactly. An empty value set is a no-op.
func OneOf(values ...string) Criterion {
	return Criterion{kind: matchOneOf, values: values}
}

// Between matches rows whose date falls within [start, end] inclusive.
// A zero bound on either side is a no-op.
func Between(start, end time.Time) Criterion {
	return Criterion{kind: matchRange, start: truncateToDate(start), end: truncateToDate(end)}
}

// MatchesAny matches rows whose target column contains any of the given
// keywords, case-insensitively. An empty keyword set is a no-op.
func MatchesAny(keywords ...string) Criterion {
	return Criterion{kind: matchKeywords, keywords: keywords}
}

// Criteria maps filter keys to criteria. Keys are either canonical column
// names or one of the special keys above. Keys that match neither a table
// column nor a special key are ignored.
type Criteria map[string]Criterion

// Apply filters table by criteria and returns a new table sharing the
// input's rows. Filters combine as a logical AND: each criterion only
// narrows the previous result, so application order never changes the
// outcome. A nil or empty criteria map returns the input table unchanged.
func Apply(table *Table, criteria Criteria) *Table {
	if len(criteria) == 0 {
		return table
	}

	schema := table.Schema()
	rows := table.Rows()
	for _, key := range orderedKeys(criteria) {
		rows = applyOne(schema, rows, key, criteria[key])
	}
	return newTable(schema, rows)
}

// orderedKeys returns criteria keys in a fixed evaluation order:
// DATE_RANGE first, column keys sorted, AWP_MACHINES last. The order is
// deterministic for reproducibility; it cannot affect the result set.
func orderedKeys(criteria Criteria) []string {
	keys := make([]string, 0, len(criteria))
	for key := range criteria {
		if key == KeyDateRange || key == KeyAWPMachines {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	ordered := make([]string, 0, len(criteria))
	if _, ok := criteria[KeyDateRange]; ok {
		ordered = append(ordered, KeyDateRange)
	}
	ordered = append(ordered, keys...)
	if _, ok := criteria[KeyAWPMachines]; ok {
		ordered = append(ordered, KeyAWPMachines)
	}
	return ordered
}

// applyOne narrows rows by a single criterion. Missing columns, unknown
// keys, and empty criteria are all no-ops, never errors: filters are
// advisory and optional columns must not abort the result.
func applyOne(schema Schema, rows []Row, key string, criterion Criterion) []Row {
	switch key {
	case KeyDateRange:
		col, ok := schema.Lookup(ColDate)
		if !ok || criterion.kind != matchRange || criterion.start.IsZero() || criterion.end.IsZero() {
			return rows
		}
		return filterRows(rows, func(row Row) bool {
			date := row[col].Date()
			return !date.Before(criterion.start) && !date.After(criterion.end)
		})

	case KeyAWPMachines:
		col, ok := schema.Lookup(ColProductDescription)
		if !ok || criterion.kind != matchKeywords || len(criterion.keywords) == 0 {
			return rows
		}
		return filterRows(rows, keywordPredicate(col, criterion.keywords))
	}

	col, ok := schema.Lookup(key)
	if !ok {
		return rows
	}

	switch criterion.kind {
	case matchSubstring:
		if criterion.text == "" {
			return rows
		}
		needle := strings.ToLower(criterion.text)
		return filterRows(rows, func(row Row) bool {
			value := row[col]
			if value.IsNull() {
				return false
			}
			return strings.Contains(strings.ToLower(value.String()), needle)
		})

	case matchOneOf:
		if len(criterion.values) == 0 {
			return rows
		}
		allowed := make(map[string]bool, len(criterion.values))
		for _, v := range criterion.values {
			allowed[v] = true
		}
		return filterRows(rows, func(row Row) bool {
			value := row[col]
			if value.IsNull() {
				return false
			}
			return allowed[value.String()]
		})

	case matchKeywords:
		if len(criterion.keywords) == 0 {
			return rows
		}
		return filterRows(rows, keywordPredicate(col, criterion.keywords))

	default:
		return rows
	}
}

// keywordPredicate reports whether a row's column contains any of the
// keywords, case-insensitively.
func keywordPredicate(col int, keywords []string) func(Row) bool {
	lowered := make([]string, len(keywords))
	for i, kw := range keywords {
		lowered[i] = strings.ToLower(kw)
	}
	return func(row Row) bool {
		value := row[col]
		if value.IsNull() {
			return false
		}
		haystack := strings.ToLower(value.String())
		for _, kw := range lowered {
			if strings.Contains(haystack, kw) {
				return true
			}
		}
		return false
	}
}

// filterRows returns the rows satisfying keep, preserving order.
func filterRows(rows []Row, keep func(Row) bool) []Row {
	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		if keep(row) {
			out = append(out, row)
		}
	}
	return out
}
