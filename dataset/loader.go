package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/YuminosukeSato/restat/pkg/errors"
)

// ColumnSpec names one column to load and its kind.
type ColumnSpec struct {
	Name string
	Kind Kind
}

// LoadCSV reads a delimited file with a header row into a table. Only the
// columns named in the schema are loaded; the file may carry extra columns.
// Files ending in ".gz" are decompressed transparently.
func LoadCSV(path string, schema []ColumnSpec) (*Table, error) {
	if len(schema) == 0 {
		return nil, errors.NewInvalidInputError("dataset.LoadCSV", "schema", "at least one column required", 0)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	defer func() { _ = f.Close() }()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, errors.Wrapf(err, "decompressing %s", path)
		}
		defer func() { _ = gz.Close() }()
		r = gz
	}

	return ReadCSV(r, schema)
}

// ReadCSV reads delimited data with a header row from r into a table.
func ReadCSV(r io.Reader, schema []ColumnSpec) (*Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, errors.Wrap(err, "reading header")
	}

	// Map each schema column to its position in the file.
	positions := make([]int, len(schema))
	for i, spec := range schema {
		positions[i] = -1
		for j, name := range header {
			if strings.TrimSpace(name) == spec.Name {
				positions[i] = j
				break
			}
		}
		if positions[i] < 0 {
			return nil, errors.NewInvalidInputError("dataset.ReadCSV", "schema", "column not found in header", spec.Name)
		}
	}

	floats := make([][]float64, len(schema))
	labels := make([][]string, len(schema))

	row := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "reading row %d", row+1)
		}

		for i, spec := range schema {
			raw := strings.TrimSpace(record[positions[i]])
			switch spec.Kind {
			case KindNumeric:
				v, err := strconv.ParseFloat(raw, 64)
				if err != nil {
					return nil, errors.NewInvalidInputError("dataset.ReadCSV", spec.Name,
						"non-numeric value at row "+strconv.Itoa(row+1), raw)
				}
				floats[i] = append(floats[i], v)
			case KindCategorical:
				labels[i] = append(labels[i], raw)
			}
		}
		row++
	}

	cols := make([]Column, len(schema))
	for i, spec := range schema {
		switch spec.Kind {
		case KindNumeric:
			cols[i] = NumericColumn(spec.Name, floats[i])
		case KindCategorical:
			cols[i] = CategoricalColumn(spec.Name, labels[i])
			warnRareLevels(spec.Name, labels[i])
		}
	}

	return New(cols...)
}

// warnRareLevels emits a schema warning for categorical levels observed only
// once; a dummy-coded term for such a level is usually not estimable under
// resampling.
func warnRareLevels(name string, labels []string) {
	counts := make(map[string]int, 8)
	for _, l := range labels {
		counts[l]++
	}
	for level, n := range counts {
		if n == 1 {
			errors.Warn(errors.NewSchemaWarning(name, "single observation for level \""+level+"\""))
		}
	}
}
