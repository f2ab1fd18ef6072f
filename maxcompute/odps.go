package maxcompute

import (
	"context"
	e "errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aliyun/aliyun-odps-go-sdk/odps"
	"github.com/pkg/errors"
)

const (
	logViewRetentionDays = 2

	retryMax     = 3
	retryBackoff = time.Second
)

type odpsClient struct {
	logger *slog.Logger
	client *odps.Odps

	hints map[string]string
}

// NewODPSClient wraps the aliyun SDK client.
func NewODPSClient(logger *slog.Logger, client *odps.Odps) *odpsClient {
	return &odpsClient{
		logger: logger,
		client: client,
	}
}

// SetHints sets extra execution hints submitted with every statement.
func (c *odpsClient) SetHints(hints map[string]string) {
	c.hints = hints
}

// SetDefaultProject switches the project statements run against by default.
func (c *odpsClient) SetDefaultProject(project string) {
	c.client.SetDefaultProjectName(project)
}

// ExecSQL runs the query synchronously. Cancelling the context terminates the
// task instance on the service side before returning.
func (c *odpsClient) ExecSQL(ctx context.Context, query string) error {
	ins, err := c.client.ExecSQlWithHints(query, c.execHints(query))
	if err != nil {
		return errors.WithStack(err)
	}

	url, err := odps.NewLogView(c.client).GenerateLogView(ins, logViewRetentionDays*24)
	if err != nil {
		return errors.WithStack(e.Join(err, ins.Terminate()))
	}
	c.logger.Info(fmt.Sprintf("log view: %s", url))
	c.logger.Info(fmt.Sprintf("instance id: %s", ins.Id()))

	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()
	errChan := c.wait(ins)
	for {
		select {
		case <-ctx.Done():
			c.logger.Info("context cancelled, terminating instance")
			return e.Join(ctx.Err(), c.terminate(ins))
		case err := <-errChan:
			c.logger.Info(fmt.Sprintf("execution finished with status: %s", ins.Status()))
			return errors.WithStack(err)
		case <-ticker.C:
			c.logger.Info("execution in progress...")
		}
	}
}

// GetPartitionNames returns the partition columns of the given table in
// schema order. An empty result means the table is not partitioned.
func (c *odpsClient) GetPartitionNames(_ context.Context, tableID string) ([]string, error) {
	table, err := c.getTable(tableID)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	var names []string
	for _, partition := range table.Schema().PartitionColumns {
		names = append(names, partition.Name)
	}
	return names, nil
}

// GetOrderedColumns returns the non-partition columns of the given table in
// schema order.
func (c *odpsClient) GetOrderedColumns(tableID string) ([]string, error) {
	table, err := c.getTable(tableID)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	var names []string
	for _, column := range table.Schema().Columns {
		names = append(names, column.Name)
	}
	return names, nil
}

// wait waits for the task instance on a separate goroutine so ExecSQL can keep
// watching the context.
func (c *odpsClient) wait(ins *odps.Instance) <-chan error {
	errChan := make(chan error)
	go func(errChan chan<- error) {
		defer close(errChan)
		err := c.retry(ins.WaitForSuccess)
		errChan <- errors.WithStack(err)
	}(errChan)
	return errChan
}

func (c *odpsClient) terminate(ins *odps.Instance) error {
	if ins == nil {
		return nil
	}
	if err := c.retry(ins.Load); err != nil {
		return errors.WithStack(err)
	}
	if ins.Status() == odps.InstanceTerminated {
		return nil
	}
	c.logger.Info(fmt.Sprintf("terminating instance %s", ins.Id()))
	if err := c.retry(ins.Terminate); err != nil {
		return errors.WithStack(err)
	}
	c.logger.Info(fmt.Sprintf("terminated instance %s", ins.Id()))
	return nil
}

func (c *odpsClient) retry(f func() error) error {
	return retry(c.logger, retryMax, retryBackoff, f)
}

// execHints merges the configured hints with what the statement itself needs.
// Multi-statement scripts must run in script mode.
func (c *odpsClient) execHints(query string) map[string]string {
	hints := make(map[string]string, len(c.hints)+1)
	for k, v := range c.hints {
		hints[k] = v
	}
	if strings.Contains(query, ";") {
		hints["odps.sql.submit.mode"] = "script"
	}
	return hints
}

// getTable resolves a project.schema.table identifier, temporarily switching
// the client to the table's project and schema.
func (c *odpsClient) getTable(tableID string) (*odps.Table, error) {
	currProject := c.client.DefaultProjectName()
	currSchema := c.client.CurrentSchemaName()
	defer func() {
		c.client.SetDefaultProjectName(currProject)
		c.client.SetCurrentSchemaName(currSchema)
	}()

	parts := strings.Split(tableID, ".")
	if len(parts) != 3 {
		return nil, errors.Errorf("invalid tableID (tableID should be in format project.schema.table): %s", tableID)
	}
	project, schema, name := parts[0], parts[1], parts[2]

	c.client.SetDefaultProjectName(project)
	c.client.SetCurrentSchemaName(schema)

	table := c.client.Tables().Get(name)
	if err := table.Load(); err != nil {
		return nil, errors.WithStack(err)
	}
	return table, nil
}

// retry runs f up to attempts times with exponential backoff.
func retry(l *slog.Logger, attempts int, backoff time.Duration, f func() error) error {
	var err error
	for i := range attempts {
		err = f()
		if err == nil {
			return nil
		}
		l.Warn(fmt.Sprintf("retry %d: %v", i, err))
		if i < attempts-1 {
			time.Sleep(backoff << i)
		}
	}
	return err
}
