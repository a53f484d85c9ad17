package importfilter

// ColumnKind is the declared type of a column after load-time coercion.
type ColumnKind int

const (
	// ColumnString holds free text.
	ColumnString ColumnKind = iota
	// ColumnNumber holds zero-filled numeric values.
	ColumnNumber
	// ColumnDate holds successfully parsed day-first dates.
	ColumnDate
)

// Column describes one table column.
type Column struct {
	// Name is the canonical (or passed-through) header.
	Name string
	// Kind is the coerced value type.
	Kind ColumnKind
	// Categorical marks a low-cardinality string column whose values are
	// interned. Representation hint only; matching semantics are unchanged.
	Categorical bool
}

// Schema describes the columns of a table. It is computed once at load
// time; filter evaluation consults it for column presence instead of
// probing rows.
type Schema struct {
	columns []Column
	index   map[string]int
}

// newSchema builds a schema and its name index.
func newSchema(columns []Column) Schema {
	index := make(map[string]int, len(columns))
	for i, col := range columns {
		index[col.Name] = i
	}
	return Schema{columns: columns, index: index}
}

// Columns returns the column descriptors in order.
func (s Schema) Columns() []Column {
	out := make([]Column, len(s.columns))
	copy(out, s.columns)
	return out
}

// Lookup returns the index of the named column.
func (s Schema) Lookup(name string) (int, bool) {
	i, ok := s.index[name]
	return i, ok
}

// Has reports whether the named column exists.
func (s Schema) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Names returns the column names in order.
func (s Schema) Names() []string {
	names := make([]string, len(s.columns))
	for i, col := range s.columns {
		names[i] = col.Name
	}
	return names
}

// Row is one record, aligned with the schema's column order.
type Row []Value

// Table is an immutable ordered collection of rows with named, typed
// columns. Every transformation returns a new Table; rows are shared
// between tables and never mutated after load.
type Table struct {
	schema Schema
	rows   []Row
}

// newTable wraps a schema and rows in a Table.
func newTable(schema Schema, rows []Row) *Table {
	return &Table{schema: schema, rows: rows}
}

// Schema returns the table's schema descriptor.
func (t *Table) Schema() Schema {
	return t.schema
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int {
	return len(t.rows)
}

// Row returns the i-th row. The returned slice must not be modified.
func (t *Table) Row(i int) Row {
	return t.rows[i]
}

// Rows returns all rows. The returned slices must not be modified.
func (t *Table) Rows() []Row {
	return t.rows
}

// Equal compares two tables by schema and cell values.
func (t *Table) Equal(other *Table) bool {
	if other == nil {
		return false
	}
	if len(t.schema.columns) != len(other.schema.columns) {
		return false
	}
	for i, col := range t.schema.columns {
		if col.Name != other.schema.columns[i].Name || col.Kind != other.schema.columns[i].Kind {
			return false
		}
	}
	if len(t.rows) != len(other.rows) {
		return false
	}
	for i, row := range t.rows {
		for j, v := range row {
			if !v.Equal(other.rows[i][j]) {
				return false
			}
		}
	}
	return true
}
