package maxcompute

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
)

// InsertOption adjusts how InsertInto builds its statement.
type InsertOption func(*insertPlan)

type insertPlan struct {
	method      string
	columnOrder bool
}

// WithMethod overrides the session's load method for this insert.
func WithMethod(method string) InsertOption {
	return func(p *insertPlan) {
		p.method = method
	}
}

// WithColumnOrder toggles wrapping the query so its projection follows the
// destination table's column order. Enabled by default.
func WithColumnOrder(enable bool) InsertOption {
	return func(p *insertPlan) {
		p.columnOrder = enable
	}
}

// InsertInto materializes the query's result into tableID using the session's
// load method. Set statements are hoisted above the INSERT, and partitioned
// destinations get an explicit PARTITION clause from the table schema.
func InsertInto(ctx context.Context, sess *Session, tableID, query string, opts ...InsertOption) error {
	plan := &insertPlan{columnOrder: true}
	for _, opt := range opts {
		opt(plan)
	}

	loader := sess.Loader
	if plan.method != "" {
		var err error
		loader, err = NewLoader(plan.method, sess.logger)
		if err != nil {
			return errors.WithStack(err)
		}
	}
	if loader == nil {
		return errors.New("session has no loader: use SetupLoader or WithMethod")
	}

	headers, producing := SeparateHeadersAndQuery(query)

	if plan.columnOrder {
		columns, err := sess.OrderedColumns(tableID)
		if err != nil {
			return errors.WithStack(err)
		}
		producing = ConstructQueryWithOrderedColumns(producing, columns)
	}

	partitionNames, err := sess.PartitionNames(ctx, tableID)
	if err != nil {
		return errors.WithStack(err)
	}

	var stmt string
	if len(partitionNames) > 0 {
		stmt = loader.GetPartitionedQuery(tableID, producing, partitionNames)
	} else {
		stmt = loader.GetQuery(tableID, producing)
	}
	if headers != "" {
		stmt = headers + "\n" + stmt
	}

	sess.logger.Info(fmt.Sprintf("query to execute:\n%s", stmt))
	return errors.WithStack(sess.Exec(ctx, stmt))
}
