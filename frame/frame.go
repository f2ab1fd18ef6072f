// Package frame standardizes the dataframe-handling patterns shared across
// data pipelines. Every operation consumes and produces gota DataFrames and
// forwards to gota wherever gota already does the job; the package adds only
// argument plumbing and an explicit error contract (gota reports failures
// through the DataFrame.Err field, frame surfaces them as Go errors).
package frame

import (
	"sort"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/pkg/errors"
)

// New builds a DataFrame from column names and rows of values, preserving the
// given column order. Every row must have exactly one value per column.
func New(cols []string, rows [][]any) (dataframe.DataFrame, error) {
	if len(cols) == 0 {
		return dataframe.DataFrame{}, errors.New("at least one column is required")
	}
	if len(rows) == 0 {
		ss := make([]series.Series, len(cols))
		for i, col := range cols {
			ss[i] = series.New([]string{}, series.String, col)
		}
		df := dataframe.New(ss...)
		return df, errors.WithStack(df.Err)
	}

	maps := make([]map[string]any, 0, len(rows))
	for i, row := range rows {
		if len(row) != len(cols) {
			return dataframe.DataFrame{}, errors.Errorf("row %d has %d values, expected %d", i, len(row), len(cols))
		}
		m := make(map[string]any, len(cols))
		for j, col := range cols {
			m[col] = row[j]
		}
		maps = append(maps, m)
	}
	df := dataframe.LoadMaps(maps)
	if df.Err != nil {
		return df, errors.WithStack(df.Err)
	}
	// LoadMaps orders columns alphabetically; restore the requested order.
	df = df.Select(cols)
	return df, errors.WithStack(df.Err)
}

// FromMaps loads a DataFrame from a slice of column-to-value maps.
func FromMaps(maps []map[string]any, options ...dataframe.LoadOption) (dataframe.DataFrame, error) {
	df := dataframe.LoadMaps(maps, options...)
	return df, errors.WithStack(df.Err)
}

// FromRecords loads a DataFrame from string records. The first record holds
// the column names.
func FromRecords(records [][]string, options ...dataframe.LoadOption) (dataframe.DataFrame, error) {
	df := dataframe.LoadRecords(records, options...)
	return df, errors.WithStack(df.Err)
}

// SelectColumns returns a copy of df holding only the given columns, in order.
func SelectColumns(df dataframe.DataFrame, cols []string) (dataframe.DataFrame, error) {
	if df.Err != nil {
		return df, errors.WithStack(df.Err)
	}
	out := df.Select(cols)
	return out, errors.WithStack(out.Err)
}

// DropColumns returns df without the given columns.
func DropColumns(df dataframe.DataFrame, cols []string) (dataframe.DataFrame, error) {
	if df.Err != nil {
		return df, errors.WithStack(df.Err)
	}
	out := df.Drop(cols)
	return out, errors.WithStack(out.Err)
}

// DropDuplicates removes duplicate rows, keeping the first occurrence and
// preserving row order and column types.
func DropDuplicates(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	if df.Err != nil {
		return df, errors.WithStack(df.Err)
	}
	records := df.Records()
	seen := make(map[string]struct{}, len(records))
	keep := make([]int, 0, df.Nrow())
	for i, rec := range records[1:] {
		key := strings.Join(rec, "\x1f")
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		keep = append(keep, i)
	}
	if len(keep) == df.Nrow() {
		return df.Copy(), nil
	}
	out := df.Subset(keep)
	return out, errors.WithStack(out.Err)
}

// ColumnsDifference returns the sorted column names present in a and absent
// in b.
func ColumnsDifference(a, b dataframe.DataFrame) []string {
	in := make(map[string]struct{}, b.Ncol())
	for _, name := range b.Names() {
		in[name] = struct{}{}
	}
	diff := []string{}
	for _, name := range a.Names() {
		if _, ok := in[name]; !ok {
			diff = append(diff, name)
		}
	}
	sort.Strings(diff)
	return diff
}

// ConstColumn returns df with col holding the given constant on every row.
// Supported constant types are string, int, float64 and bool.
func ConstColumn(df dataframe.DataFrame, col string, value any) (dataframe.DataFrame, error) {
	if df.Err != nil {
		return df, errors.WithStack(df.Err)
	}
	var t series.Type
	switch value.(type) {
	case string:
		t = series.String
	case int:
		t = series.Int
	case float64:
		t = series.Float
	case bool:
		t = series.Bool
	default:
		return df, errors.Errorf("unsupported constant type %T for column %s", value, col)
	}
	values := make([]any, df.Nrow())
	for i := range values {
		values[i] = value
	}
	out := df.Mutate(series.New(values, t, col))
	return out, errors.WithStack(out.Err)
}

func hasColumn(df dataframe.DataFrame, col string) bool {
	for _, name := range df.Names() {
		if name == col {
			return true
		}
	}
	return false
}
