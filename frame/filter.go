package frame

import (
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/pkg/errors"
)

// FilterIn keeps the rows whose col value appears in values. Values may be a
// slice or a single value, matching what series.In accepts.
func FilterIn(df dataframe.DataFrame, col string, values any) (dataframe.DataFrame, error) {
	if df.Err != nil {
		return df, errors.WithStack(df.Err)
	}
	out := df.Filter(dataframe.F{Colname: col, Comparator: series.In, Comparando: values})
	return out, errors.WithStack(out.Err)
}
