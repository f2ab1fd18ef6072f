package frame

import (
	"math"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/pkg/errors"
)

// CastColumn returns df with the named column re-typed to t. Float values
// truncate toward zero when cast to Int; values that cannot be represented in
// the target type become NA.
func CastColumn(df dataframe.DataFrame, col string, t series.Type) (dataframe.DataFrame, error) {
	if df.Err != nil {
		return df, errors.WithStack(df.Err)
	}
	if !hasColumn(df, col) {
		return df, errors.Errorf("column %s not found", col)
	}

	src := df.Col(col)
	var s series.Series
	if t == series.Int && src.Type() == series.Float {
		floats := src.Float()
		vals := make([]any, len(floats))
		for i, f := range floats {
			if math.IsNaN(f) || math.IsInf(f, 0) {
				vals[i] = nil
				continue
			}
			vals[i] = int(f)
		}
		s = series.New(vals, series.Int, col)
	} else {
		s = series.New(src.Records(), t, col)
	}
	if s.Err != nil {
		return df, errors.WithStack(s.Err)
	}

	out := df.Mutate(s)
	return out, errors.WithStack(out.Err)
}
