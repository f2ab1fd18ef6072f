package maxcompute

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/pkg/errors"
)

// Load methods supported by InsertInto.
const (
	APPEND  = "APPEND"
	REPLACE = "REPLACE"
)

// Loader renders the INSERT statement wrapping a producing query.
type Loader interface {
	GetQuery(tableID, query string) string
	GetPartitionedQuery(tableID, query string, partitionNames []string) string
}

// NewLoader returns the loader implementing the given load method.
func NewLoader(name string, logger *slog.Logger) (Loader, error) {
	switch strings.ToUpper(name) {
	case APPEND:
		return &appendLoader{logger: logger}, nil
	case REPLACE:
		return &replaceLoader{logger: logger}, nil
	default:
		return nil, errors.Errorf("loader %s not found", name)
	}
}

type appendLoader struct {
	logger *slog.Logger
}

func (l *appendLoader) GetQuery(tableID, query string) string {
	return fmt.Sprintf("INSERT INTO TABLE %s \n%s\n;", tableID, query)
}

func (l *appendLoader) GetPartitionedQuery(tableID, query string, partitionNames []string) string {
	return fmt.Sprintf("INSERT INTO TABLE %s PARTITION (%s) \n%s\n;", tableID, strings.Join(partitionNames, ", "), query)
}

type replaceLoader struct {
	logger *slog.Logger
}

func (l *replaceLoader) GetQuery(tableID, query string) string {
	return fmt.Sprintf("INSERT OVERWRITE TABLE %s \n%s\n;", tableID, query)
}

func (l *replaceLoader) GetPartitionedQuery(tableID, query string, partitionNames []string) string {
	return fmt.Sprintf("INSERT OVERWRITE TABLE %s PARTITION (%s) \n%s\n;", tableID, strings.Join(partitionNames, ", "), query)
}
