package config

import (
	"encoding/json"

	"github.com/aliyun/aliyun-odps-go-sdk/odps"
	"github.com/pkg/errors"
)

const (
	// SinkTypeTable loads the query result into a MaxCompute table.
	SinkTypeTable = "TABLE"
	// SinkTypeObjectStore writes the query result to object storage as parquet.
	SinkTypeObjectStore = "OBJECT_STORE"
)

type Config struct {
	*odps.Config
	LogLevel                  string
	LoadMethod                string
	QueryFilePath             string
	SourceProject             string
	DestinationTableID        string
	OtelCollectorGRPCEndpoint string
	JobName                   string
	ScheduledTime             string
	Sink                      *SinkConfig
}

// SinkConfig selects where query results land. The object store fields only
// matter when Type is OBJECT_STORE.
type SinkConfig struct {
	Type             string            `env:"SINK_TYPE" envDefault:"TABLE"`
	Bucket           string            `env:"SINK_BUCKET"`
	Prefix           string            `env:"SINK_PREFIX"`
	EndpointURL      string            `env:"SINK_ENDPOINT_URL"`
	AccessKeyID      string            `env:"SINK_ACCESS_KEY_ID"`
	SecretAccessKey  string            `env:"SINK_SECRET_ACCESS_KEY"`
	Region           string            `env:"SINK_REGION"`
	UseSSL           bool              `env:"SINK_USE_SSL" envDefault:"false"`
	PartitionColumns []string          `env:"SINK_PARTITION_COLUMNS"`
	QueryParams      map[string]string `env:"QUERY_PARAMS"`
}

type maxComputeCredentials struct {
	AccessId    string `json:"access_id"`
	AccessKey   string `json:"access_key"`
	Endpoint    string `json:"endpoint"`
	ProjectName string `json:"project_name"`
}

func NewConfig() (*Config, error) {
	sink, err := parse[SinkConfig]()
	if err != nil {
		return nil, errors.WithStack(err)
	}

	cfg := &Config{
		Config: odps.NewConfig(),
		// wrangler related config
		LogLevel:           getEnv("LOG_LEVEL", "INFO"),
		LoadMethod:         getEnv("LOAD_METHOD", "APPEND"),
		QueryFilePath:      getEnv("QUERY_FILE_PATH", "/data/in/query.sql"),
		SourceProject:      getEnv("SOURCE_PROJECT", ""),
		DestinationTableID: getEnv("DESTINATION_TABLE_ID", ""),
		// system related config
		OtelCollectorGRPCEndpoint: getEnv("OTEL_COLLECTOR_GRPC_ENDPOINT", ""),
		JobName:                   getEnv("JOB_NAME", "wrangler"),
		ScheduledTime:             getEnv("SCHEDULED_TIME", ""),
		Sink:                      sink,
	}

	// ali-odps-go-sdk related config
	scvAcc := getEnv("MC_SERVICE_ACCOUNT", "")
	cred, err := collectMaxComputeCredential([]byte(scvAcc))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	cfg.Config.AccessId = cred.AccessId
	cfg.Config.AccessKey = cred.AccessKey
	cfg.Config.Endpoint = cred.Endpoint
	cfg.Config.ProjectName = cred.ProjectName
	cfg.Config.HttpTimeout = getEnvDuration("MC_HTTP_TIMEOUT", "10s")
	cfg.Config.TcpConnectionTimeout = getEnvDuration("MC_TCP_TIMEOUT", "30s")

	return cfg, nil
}

func collectMaxComputeCredential(scvAcc []byte) (*maxComputeCredentials, error) {
	var creds maxComputeCredentials
	if err := json.Unmarshal(scvAcc, &creds); err != nil {
		return nil, errors.WithStack(err)
	}

	return &creds, nil
}
