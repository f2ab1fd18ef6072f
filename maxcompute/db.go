package maxcompute

import (
	"database/sql"
	e "errors"
	"sync"

	"github.com/aliyun/aliyun-odps-go-sdk/odps"
	_ "github.com/aliyun/aliyun-odps-go-sdk/sqldriver"
	"github.com/pkg/errors"
)

// dbProvider opens one database/sql pool per project through the odps sql
// driver, created on first use and reused afterwards.
type dbProvider struct {
	conf *odps.Config

	mu  sync.Mutex
	dbs map[string]*sql.DB
}

// NewDBProvider builds a provider from the given config. The config's project
// serves as the default when callers pass a blank project.
func NewDBProvider(conf *odps.Config) *dbProvider {
	return &dbProvider{
		conf: conf,
		dbs:  make(map[string]*sql.DB),
	}
}

func (p *dbProvider) DB(project string) (*sql.DB, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if project == "" {
		project = p.conf.ProjectName
	}
	if db, ok := p.dbs[project]; ok {
		return db, nil
	}

	// copy the config so the shared default project stays untouched
	conf := *p.conf
	conf.ProjectName = project
	db, err := sql.Open("odps", conf.FormatDsn())
	if err != nil {
		return nil, errors.WithStack(err)
	}
	p.dbs[project] = db
	return db, nil
}

// Close closes every pool opened so far.
func (p *dbProvider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var err error
	for _, db := range p.dbs {
		err = e.Join(err, db.Close())
	}
	p.dbs = make(map[string]*sql.DB)
	return err
}
