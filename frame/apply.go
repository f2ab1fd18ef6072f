package frame

import (
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/pkg/errors"
)

// ApplyColumn maps fn over the named column and returns df with that column
// replaced by the mapped values. Per gota's Map contract, fn should Copy its
// element before calling Set so the input frame stays untouched.
func ApplyColumn(df dataframe.DataFrame, col string, fn series.MapFunction) (dataframe.DataFrame, error) {
	if df.Err != nil {
		return df, errors.WithStack(df.Err)
	}
	if !hasColumn(df, col) {
		return df, errors.Errorf("column %s not found", col)
	}
	s := df.Col(col).Map(fn)
	if s.Err != nil {
		return df, errors.WithStack(s.Err)
	}
	out := df.Mutate(s)
	return out, errors.WithStack(out.Err)
}

// RowFunc computes one value from the selected column values of a row. Values
// arrive in the column order given to ApplyRows.
type RowFunc func(vals []any) (any, error)

// ApplyRows evaluates fn across the given columns of every row and returns
// the results as a new series with the given name and type. The series can be
// attached back with Mutate or used on its own.
func ApplyRows(df dataframe.DataFrame, cols []string, name string, t series.Type, fn RowFunc) (series.Series, error) {
	if df.Err != nil {
		return series.Series{}, errors.WithStack(df.Err)
	}
	for _, col := range cols {
		if !hasColumn(df, col) {
			return series.Series{}, errors.Errorf("column %s not found", col)
		}
	}

	maps := df.Maps()
	out := make([]any, len(maps))
	for i, row := range maps {
		vals := make([]any, len(cols))
		for j, col := range cols {
			vals[j] = row[col]
		}
		v, err := fn(vals)
		if err != nil {
			return series.Series{}, errors.Wrapf(err, "row %d", i)
		}
		out[i] = v
	}

	s := series.New(out, t, name)
	return s, errors.WithStack(s.Err)
}
