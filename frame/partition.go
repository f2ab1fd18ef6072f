package frame

import (
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/pkg/errors"
)

// DefaultDateLayout parses the date strings produced by most warehouse
// exports.
const DefaultDateLayout = "2006-01-02"

// DatePartitions maps date components to the partition column names that will
// hold them. Valid keys are "year", "month" and "day".
type DatePartitions map[string]string

// DefaultDatePartitions returns the conventional year/month/day target
// columns.
func DefaultDatePartitions() DatePartitions {
	return DatePartitions{"year": "year", "month": "month", "day": "day"}
}

// DatePartitionColumns parses the named column as dates with the given layout
// and appends one integer column per requested component, in year, month, day
// order. An empty layout means DefaultDateLayout and nil parts means
// DefaultDatePartitions. Rows that do not parse fail the whole call.
func DatePartitionColumns(df dataframe.DataFrame, col, layout string, parts DatePartitions) (dataframe.DataFrame, error) {
	if df.Err != nil {
		return df, errors.WithStack(df.Err)
	}
	if !hasColumn(df, col) {
		return df, errors.Errorf("column %s not found", col)
	}
	if layout == "" {
		layout = DefaultDateLayout
	}
	if len(parts) == 0 {
		parts = DefaultDatePartitions()
	}
	for key := range parts {
		switch key {
		case "year", "month", "day":
		default:
			return df, errors.Errorf("unknown date partition %q (want year, month or day)", key)
		}
	}

	recs := df.Col(col).Records()
	times := make([]time.Time, len(recs))
	for i, rec := range recs {
		ts, err := time.Parse(layout, rec)
		if err != nil {
			return df, errors.Wrapf(err, "row %d", i)
		}
		times[i] = ts
	}

	out := df
	for _, key := range []string{"year", "month", "day"} {
		target, ok := parts[key]
		if !ok {
			continue
		}
		vals := make([]any, len(times))
		for i, ts := range times {
			switch key {
			case "year":
				vals[i] = ts.Year()
			case "month":
				vals[i] = int(ts.Month())
			case "day":
				vals[i] = ts.Day()
			}
		}
		out = out.Mutate(series.New(vals, series.Int, target))
		if out.Err != nil {
			return out, errors.WithStack(out.Err)
		}
	}
	return out, nil
}
