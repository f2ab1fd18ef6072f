package maxcompute

import (
	"context"
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"github.com/pkg/errors"

	"github.com/goto/wrangler/frame"
)

// ReadSQL runs a query against the given database (a MaxCompute project) and
// loads the whole result set into a DataFrame. A blank database means the
// session's default project. params fill the query's {name} placeholders
// before submission.
func ReadSQL(ctx context.Context, sess *Session, query, database string, params Params) (dataframe.DataFrame, error) {
	formatted, err := Format(query, params)
	if err != nil {
		return dataframe.DataFrame{}, errors.WithStack(err)
	}

	if sess.DBProvider == nil {
		return dataframe.DataFrame{}, errors.New("session has no db provider: use SetupDBProvider")
	}
	db, err := sess.DBProvider.DB(database)
	if err != nil {
		return dataframe.DataFrame{}, errors.WithStack(err)
	}

	sess.logger.Info(fmt.Sprintf("query to read:\n%s", formatted))
	rows, err := db.QueryContext(ctx, formatted)
	if err != nil {
		return dataframe.DataFrame{}, errors.WithStack(err)
	}
	defer rows.Close()

	df, err := frame.FromRows(rows)
	if err != nil {
		return dataframe.DataFrame{}, errors.WithStack(err)
	}
	sess.logger.Info(fmt.Sprintf("loaded %d rows, %d columns", df.Nrow(), df.Ncol()))
	return df, nil
}
