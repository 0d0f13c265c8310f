// Package dataset loads clustering input from tabular files.
package dataset

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/hupe1980/kmeans"
)

var (
	// ErrColumnNotFound is returned when a requested column is missing.
	ErrColumnNotFound = errors.New("dataset: column not found")
	// ErrNonNumericColumn is returned when a selected column holds text or booleans.
	ErrNonNumericColumn = errors.New("dataset: column is not numeric")
	// ErrMissingValue is returned for empty or NaN cells in a selected column.
	ErrMissingValue = errors.New("dataset: missing value")
)

// Frame is a loaded table together with the columns used as features.
type Frame struct {
	df      dataframe.DataFrame
	columns []string
}

// ReadCSV parses CSV with a header row. When columns is empty every numeric
// column becomes a feature, in file order.
func ReadCSV(r io.Reader, columns ...string) (*Frame, error) {
	df := dataframe.ReadCSV(r)
	if df.Err != nil {
		return nil, fmt.Errorf("dataset: read csv: %w", df.Err)
	}

	if len(columns) == 0 {
		for _, name := range df.Names() {
			if isNumeric(df.Col(name).Type()) {
				columns = append(columns, name)
			}
		}
		if len(columns) == 0 {
			return nil, fmt.Errorf("%w: no numeric columns", ErrColumnNotFound)
		}
	}

	known := make(map[string]series.Type, df.Ncol())
	for i, name := range df.Names() {
		known[name] = df.Types()[i]
	}
	for _, name := range columns {
		typ, ok := known[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
		}
		if !isNumeric(typ) {
			return nil, fmt.Errorf("%w: %q has type %s", ErrNonNumericColumn, name, typ)
		}
	}

	return &Frame{df: df, columns: columns}, nil
}

// ReadCSVFile opens path and calls ReadCSV.
func ReadCSVFile(path string, columns ...string) (*Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	return ReadCSV(f, columns...)
}

func isNumeric(t series.Type) bool {
	return t == series.Float || t == series.Int
}

// Columns returns the feature column names.
func (f *Frame) Columns() []string {
	return f.columns
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	return f.df.Nrow()
}

// Dataset returns one point per row holding the feature columns in order.
func (f *Frame) Dataset() (kmeans.Dataset, error) {
	rows := f.df.Nrow()
	if rows == 0 {
		return nil, fmt.Errorf("%w: no rows", kmeans.ErrInvalidParameter)
	}

	data := make(kmeans.Dataset, rows)
	for i := range data {
		data[i] = make(kmeans.Point, len(f.columns))
	}

	for d, name := range f.columns {
		for i, v := range f.df.Col(name).Float() {
			if math.IsNaN(v) {
				return nil, fmt.Errorf("%w: row %d column %q", ErrMissingValue, i+1, name)
			}
			data[i][d] = v
		}
	}
	return data, nil
}

// Labels returns the values of a column as strings, for annotating points.
func (f *Frame) Labels(column string) ([]string, error) {
	for _, name := range f.df.Names() {
		if name == column {
			return f.df.Col(column).Records(), nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, column)
}

// LoadCSVFile reads the feature columns of a CSV file as a dataset.
func LoadCSVFile(path string, columns ...string) (kmeans.Dataset, error) {
	f, err := ReadCSVFile(path, columns...)
	if err != nil {
		return nil, err
	}
	return f.Dataset()
}
