package frame

import (
	"fmt"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/pkg/errors"
)

// Aggregation identifies how grouped values combine.
type Aggregation string

const (
	Sum   Aggregation = "sum"
	Min   Aggregation = "min"
	Max   Aggregation = "max"
	Mean  Aggregation = "mean"
	Count Aggregation = "count"
)

// GroupBy groups df on the by columns and aggregates each on column with the
// given aggregation, Sum when empty. Aggregated columns keep their original
// names and the result is sorted by the grouping keys, so equal inputs always
// produce equal outputs.
func GroupBy(df dataframe.DataFrame, by, on []string, how Aggregation) (dataframe.DataFrame, error) {
	if df.Err != nil {
		return df, errors.WithStack(df.Err)
	}
	if len(by) == 0 || len(on) == 0 {
		return dataframe.DataFrame{}, errors.New("groupby requires grouping and aggregation columns")
	}
	for _, col := range append(append([]string{}, by...), on...) {
		if !hasColumn(df, col) {
			return dataframe.DataFrame{}, errors.Errorf("column %s not found", col)
		}
	}
	if how == "" {
		how = Sum
	}
	var agg dataframe.AggregationType
	switch how {
	case Sum:
		agg = dataframe.Aggregation_SUM
	case Min:
		agg = dataframe.Aggregation_MIN
	case Max:
		agg = dataframe.Aggregation_MAX
	case Mean:
		agg = dataframe.Aggregation_MEAN
	case Count:
		agg = dataframe.Aggregation_COUNT
	default:
		return dataframe.DataFrame{}, errors.Errorf("unsupported aggregation %q", how)
	}

	groups := df.GroupBy(by...)
	if groups.Err != nil {
		return dataframe.DataFrame{}, errors.WithStack(groups.Err)
	}
	typs := make([]dataframe.AggregationType, len(on))
	for i := range typs {
		typs[i] = agg
	}
	out := groups.Aggregation(typs, on)
	if out.Err != nil {
		return out, errors.WithStack(out.Err)
	}

	// gota suffixes aggregated columns with the aggregation name and orders
	// columns alphabetically; restore the original names and a keys-then-values
	// column order.
	for _, col := range on {
		out = out.Rename(col, fmt.Sprintf("%s_%s", col, strings.ToUpper(string(how))))
		if out.Err != nil {
			return out, errors.WithStack(out.Err)
		}
	}
	out = out.Select(append(append([]string{}, by...), on...))
	if out.Err != nil {
		return out, errors.WithStack(out.Err)
	}

	sortKeys := make([]dataframe.Order, len(by))
	for i, k := range by {
		sortKeys[i] = dataframe.Sort(k)
	}
	out = out.Arrange(sortKeys...)
	return out, errors.WithStack(out.Err)
}
