// Package dataset provides the immutable column-oriented Table consumed by
// the resampling primitives and model fitting. A table's schema (column
// names and kinds) is fixed at construction and shared by every resample or
// split derived from it.
package dataset

import (
	"github.com/YuminosukeSato/restat/pkg/errors"
)

// Kind is the type of a column's values.
type Kind int

const (
	// KindNumeric columns hold float64 values.
	KindNumeric Kind = iota
	// KindCategorical columns hold string labels with a finite level set.
	KindCategorical
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNumeric:
		return "numeric"
	case KindCategorical:
		return "categorical"
	default:
		return "unknown"
	}
}

// Column is one named column of a table. Exactly one of the value slices is
// populated, matching the kind.
type Column struct {
	name   string
	kind   Kind
	floats []float64
	labels []string
}

// NumericColumn creates a numeric column. The values slice is copied.
func NumericColumn(name string, values []float64) Column {
	floats := make([]float64, len(values))
	copy(floats, values)
	return Column{name: name, kind: KindNumeric, floats: floats}
}

// CategoricalColumn creates a categorical column. The labels slice is copied.
func CategoricalColumn(name string, labels []string) Column {
	copied := make([]string, len(labels))
	copy(copied, labels)
	return Column{name: name, kind: KindCategorical, labels: copied}
}

// Name returns the column name.
func (c Column) Name() string { return c.name }

// Kind returns the column kind.
func (c Column) Kind() Kind { return c.kind }

func (c Column) length() int {
	if c.kind == KindNumeric {
		return len(c.floats)
	}
	return len(c.labels)
}

// Table is an ordered, immutable collection of rows under a fixed schema.
type Table struct {
	cols  []Column
	index map[string]int
	rows  int
}

// New builds a table from columns. All columns must have the same length
// and distinct names.
func New(cols ...Column) (*Table, error) {
	if len(cols) == 0 {
		return nil, errors.NewInvalidInputError("dataset.New", "columns", "at least one column required", 0)
	}

	rows := cols[0].length()
	index := make(map[string]int, len(cols))
	for i, col := range cols {
		if col.name == "" {
			return nil, errors.NewInvalidInputError("dataset.New", "columns", "column name must not be empty", i)
		}
		if _, dup := index[col.name]; dup {
			return nil, errors.NewInvalidInputError("dataset.New", "columns", "duplicate column name", col.name)
		}
		if col.length() != rows {
			return nil, errors.NewInvalidInputError("dataset.New", col.name, "column length mismatch", col.length())
		}
		index[col.name] = i
	}

	return &Table{cols: cols, index: index, rows: rows}, nil
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int { return t.rows }

// NumCols returns the number of columns.
func (t *Table) NumCols() int { return len(t.cols) }

// Names returns the column names in schema order.
func (t *Table) Names() []string {
	names := make([]string, len(t.cols))
	for i, col := range t.cols {
		names[i] = col.name
	}
	return names
}

// Has reports whether a column exists.
func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Column returns the named column.
func (t *Table) Column(name string) (Column, error) {
	i, ok := t.index[name]
	if !ok {
		return Column{}, errors.NewInvalidInputError("Table.Column", "name", "no such column", name)
	}
	return t.cols[i], nil
}

// Kind returns the kind of the named column.
func (t *Table) Kind(name string) (Kind, error) {
	i, ok := t.index[name]
	if !ok {
		return 0, errors.NewInvalidInputError("Table.Kind", "name", "no such column", name)
	}
	return t.cols[i].kind, nil
}

// Floats returns a copy of a numeric column's values.
func (t *Table) Floats(name string) ([]float64, error) {
	i, ok := t.index[name]
	if !ok {
		return nil, errors.NewInvalidInputError("Table.Floats", "name", "no such column", name)
	}
	col := t.cols[i]
	if col.kind != KindNumeric {
		return nil, errors.NewInvalidInputError("Table.Floats", "name", "column is not numeric", name)
	}
	out := make([]float64, len(col.floats))
	copy(out, col.floats)
	return out, nil
}

// Labels returns a copy of a categorical column's labels.
func (t *Table) Labels(name string) ([]string, error) {
	i, ok := t.index[name]
	if !ok {
		return nil, errors.NewInvalidInputError("Table.Labels", "name", "no such column", name)
	}
	col := t.cols[i]
	if col.kind != KindCategorical {
		return nil, errors.NewInvalidInputError("Table.Labels", "name", "column is not categorical", name)
	}
	out := make([]string, len(col.labels))
	copy(out, col.labels)
	return out, nil
}

// Levels returns the distinct labels of a categorical column in first-seen
// order.
func (t *Table) Levels(name string) ([]string, error) {
	labels, err := t.Labels(name)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(labels))
	var levels []string
	for _, l := range labels {
		if !seen[l] {
			seen[l] = true
			levels = append(levels, l)
		}
	}
	return levels, nil
}

// Select returns a new table holding the rows at the given indices, in
// order. Repeated indices are allowed, which is what a bootstrap resample
// relies on. The schema is preserved.
func (t *Table) Select(indices []int) (*Table, error) {
	for _, idx := range indices {
		if idx < 0 || idx >= t.rows {
			return nil, errors.NewInvalidInputError("Table.Select", "indices", "row index out of range", idx)
		}
	}

	cols := make([]Column, len(t.cols))
	for i, col := range t.cols {
		out := Column{name: col.name, kind: col.kind}
		switch col.kind {
		case KindNumeric:
			out.floats = make([]float64, len(indices))
			for j, idx := range indices {
				out.floats[j] = col.floats[idx]
			}
		case KindCategorical:
			out.labels = make([]string, len(indices))
			for j, idx := range indices {
				out.labels[j] = col.labels[idx]
			}
		}
		cols[i] = out
	}

	return New(cols...)
}
