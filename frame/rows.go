package frame

import (
	"database/sql"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/pkg/errors"
)

// FromRows scans a database/sql result set into a DataFrame. Column types are
// mapped from the driver's reported database type names; names the mapping
// does not recognize load as string columns. SQL NULL scans to an NA cell
// (empty for string columns). The caller keeps ownership of rows and closes it.
func FromRows(rows *sql.Rows) (dataframe.DataFrame, error) {
	cols, err := rows.Columns()
	if err != nil {
		return dataframe.DataFrame{}, errors.WithStack(err)
	}
	if len(cols) == 0 {
		return dataframe.DataFrame{}, errors.New("result set has no columns")
	}
	colTypes, err := rows.ColumnTypes()
	if err != nil {
		return dataframe.DataFrame{}, errors.WithStack(err)
	}
	types := make(map[string]series.Type, len(cols))
	for i, ct := range colTypes {
		types[cols[i]] = seriesType(ct.DatabaseTypeName())
	}

	records := [][]string{cols}
	scanned := make([]sql.NullString, len(cols))
	ptrs := make([]any, len(cols))
	for i := range scanned {
		ptrs[i] = &scanned[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return dataframe.DataFrame{}, errors.WithStack(err)
		}
		rec := make([]string, len(cols))
		for i, v := range scanned {
			if v.Valid {
				rec[i] = v.String
			}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return dataframe.DataFrame{}, errors.WithStack(err)
	}

	if len(records) == 1 {
		ss := make([]series.Series, len(cols))
		for i, col := range cols {
			ss[i] = series.New([]string{}, types[col], col)
		}
		df := dataframe.New(ss...)
		return df, errors.WithStack(df.Err)
	}

	df := dataframe.LoadRecords(records,
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.WithTypes(types),
	)
	return df, errors.WithStack(df.Err)
}

// seriesType maps a driver-reported column type name to the series type used
// to load it. MaxCompute and most SQL drivers report the upstream DDL names.
func seriesType(dbType string) series.Type {
	switch strings.ToUpper(dbType) {
	case "TINYINT", "SMALLINT", "INT", "INTEGER", "BIGINT", "INT2", "INT4", "INT8":
		return series.Int
	case "FLOAT", "DOUBLE", "DECIMAL", "NUMERIC", "REAL", "FLOAT4", "FLOAT8":
		return series.Float
	case "BOOLEAN", "BOOL":
		return series.Bool
	default:
		return series.String
	}
}
