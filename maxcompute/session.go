// Package maxcompute standardizes how pipelines talk to MaxCompute. A Session
// bundles the native SDK client, per-project database/sql pools and a load
// strategy behind swappable interfaces; ReadSQL loads query results into
// dataframes and InsertInto materializes query results back into tables.
package maxcompute

import (
	"context"
	"database/sql"
	e "errors"
	"log/slog"

	"github.com/pkg/errors"
)

// OdpsClient is the native MaxCompute surface a Session depends on. The
// production implementation wraps the aliyun SDK; tests swap in fakes.
type OdpsClient interface {
	ExecSQL(ctx context.Context, query string) error
	GetPartitionNames(ctx context.Context, tableID string) ([]string, error)
	GetOrderedColumns(tableID string) ([]string, error)
	SetDefaultProject(project string)
}

// DBProvider hands out database/sql pools bound to a MaxCompute project.
type DBProvider interface {
	DB(project string) (*sql.DB, error)
}

// Session is the caller-owned handle for talking to MaxCompute. Fields are
// exported so tests can swap implementations.
type Session struct {
	OdpsClient OdpsClient
	DBProvider DBProvider
	Loader     Loader

	appCtx      context.Context
	logger      *slog.Logger
	shutdownFns []func() error
}

// NewSession applies the given setup functions in order. Later setups may use
// what earlier ones installed, so SetupLogger usually comes first.
func NewSession(ctx context.Context, setupFns ...SetupFn) (*Session, error) {
	s := &Session{
		appCtx:      ctx,
		logger:      slog.Default(),
		shutdownFns: make([]func() error, 0),
	}
	for _, setupFn := range setupFns {
		if err := setupFn(s); err != nil {
			return nil, errors.WithStack(err)
		}
	}
	return s, nil
}

// Logger returns the logger installed by SetupLogger, or slog's default.
func (s *Session) Logger() *slog.Logger {
	return s.logger
}

// Exec runs a statement on the native client and waits for it to finish.
func (s *Session) Exec(ctx context.Context, query string) error {
	if s.OdpsClient == nil {
		return errors.New("session has no odps client: use SetupODPSClient")
	}
	return s.OdpsClient.ExecSQL(ctx, query)
}

// PartitionNames returns the table's partition column names, empty when the
// table is not partitioned.
func (s *Session) PartitionNames(ctx context.Context, tableID string) ([]string, error) {
	if s.OdpsClient == nil {
		return nil, errors.New("session has no odps client: use SetupODPSClient")
	}
	return s.OdpsClient.GetPartitionNames(ctx, tableID)
}

// OrderedColumns returns the table's column names in schema order.
func (s *Session) OrderedColumns(tableID string) ([]string, error) {
	if s.OdpsClient == nil {
		return nil, errors.New("session has no odps client: use SetupODPSClient")
	}
	return s.OdpsClient.GetOrderedColumns(tableID)
}

// Close releases everything the setups acquired, joining their errors.
func (s *Session) Close() error {
	s.logger.Info("closing session")
	var err error
	for _, fn := range s.shutdownFns {
		err = e.Join(err, fn())
	}
	return errors.WithStack(err)
}
