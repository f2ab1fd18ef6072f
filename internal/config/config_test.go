package config_test

import (
	"testing"
	"time"

	"github.com/goto/wrangler/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const serviceAccount = `{"access_id":"access_id","access_key":"access_key","endpoint":"http://service.ap-southeast-5.maxcompute.aliyun.com/api","project_name":"test-project"}`

func TestNewConfig(t *testing.T) {
	t.Run("should load defaults with a service account", func(t *testing.T) {
		// arrange
		t.Setenv("MC_SERVICE_ACCOUNT", serviceAccount)

		// act
		cfg, err := config.NewConfig()

		// assert
		require.NoError(t, err)
		assert.Equal(t, "INFO", cfg.LogLevel)
		assert.Equal(t, "APPEND", cfg.LoadMethod)
		assert.Equal(t, "/data/in/query.sql", cfg.QueryFilePath)
		assert.Equal(t, "wrangler", cfg.JobName)
		assert.Equal(t, "access_id", cfg.AccessId)
		assert.Equal(t, "access_key", cfg.AccessKey)
		assert.Equal(t, "http://service.ap-southeast-5.maxcompute.aliyun.com/api", cfg.Endpoint)
		assert.Equal(t, "test-project", cfg.ProjectName)
		assert.Equal(t, 10*time.Second, cfg.HttpTimeout)
		assert.Equal(t, 30*time.Second, cfg.TcpConnectionTimeout)
		require.NotNil(t, cfg.Sink)
		assert.Equal(t, config.SinkTypeTable, cfg.Sink.Type)
	})

	t.Run("should respect explicit overrides", func(t *testing.T) {
		// arrange
		t.Setenv("MC_SERVICE_ACCOUNT", serviceAccount)
		t.Setenv("LOG_LEVEL", "DEBUG")
		t.Setenv("LOAD_METHOD", "REPLACE")
		t.Setenv("QUERY_FILE_PATH", "/tmp/query.sql")
		t.Setenv("SOURCE_PROJECT", "source-project")
		t.Setenv("DESTINATION_TABLE_ID", "proj.schema.table")
		t.Setenv("JOB_NAME", "daily-export")
		t.Setenv("SCHEDULED_TIME", "2024-01-01T00:00:00Z")
		t.Setenv("MC_HTTP_TIMEOUT", "5s")
		t.Setenv("MC_TCP_TIMEOUT", "7s")

		// act
		cfg, err := config.NewConfig()

		// assert
		require.NoError(t, err)
		assert.Equal(t, "DEBUG", cfg.LogLevel)
		assert.Equal(t, "REPLACE", cfg.LoadMethod)
		assert.Equal(t, "/tmp/query.sql", cfg.QueryFilePath)
		assert.Equal(t, "source-project", cfg.SourceProject)
		assert.Equal(t, "proj.schema.table", cfg.DestinationTableID)
		assert.Equal(t, "daily-export", cfg.JobName)
		assert.Equal(t, "2024-01-01T00:00:00Z", cfg.ScheduledTime)
		assert.Equal(t, 5*time.Second, cfg.HttpTimeout)
		assert.Equal(t, 7*time.Second, cfg.TcpConnectionTimeout)
	})

	t.Run("should parse object store sink settings", func(t *testing.T) {
		// arrange
		t.Setenv("MC_SERVICE_ACCOUNT", serviceAccount)
		t.Setenv("SINK_TYPE", "OBJECT_STORE")
		t.Setenv("SINK_BUCKET", "exports")
		t.Setenv("SINK_PREFIX", "daily/sales")
		t.Setenv("SINK_ENDPOINT_URL", "https://oss-ap-southeast-5.aliyuncs.com")
		t.Setenv("SINK_ACCESS_KEY_ID", "sink_id")
		t.Setenv("SINK_SECRET_ACCESS_KEY", "sink_key")
		t.Setenv("SINK_REGION", "ap-southeast-5")
		t.Setenv("SINK_USE_SSL", "true")
		t.Setenv("SINK_PARTITION_COLUMNS", "event_date,country")
		t.Setenv("QUERY_PARAMS", "dstart:2024-01-01,dend:2024-01-02")

		// act
		cfg, err := config.NewConfig()

		// assert
		require.NoError(t, err)
		assert.Equal(t, config.SinkTypeObjectStore, cfg.Sink.Type)
		assert.Equal(t, "exports", cfg.Sink.Bucket)
		assert.Equal(t, "daily/sales", cfg.Sink.Prefix)
		assert.Equal(t, "https://oss-ap-southeast-5.aliyuncs.com", cfg.Sink.EndpointURL)
		assert.Equal(t, "sink_id", cfg.Sink.AccessKeyID)
		assert.Equal(t, "sink_key", cfg.Sink.SecretAccessKey)
		assert.Equal(t, "ap-southeast-5", cfg.Sink.Region)
		assert.True(t, cfg.Sink.UseSSL)
		assert.Equal(t, []string{"event_date", "country"}, cfg.Sink.PartitionColumns)
		assert.Equal(t, map[string]string{"dstart": "2024-01-01", "dend": "2024-01-02"}, cfg.Sink.QueryParams)
	})

	t.Run("should fail when the service account is empty", func(t *testing.T) {
		// arrange
		t.Setenv("MC_SERVICE_ACCOUNT", "")

		// act
		cfg, err := config.NewConfig()

		// assert
		assert.Nil(t, cfg)
		assert.Error(t, err)
	})

	t.Run("should fail on a malformed service account", func(t *testing.T) {
		// arrange
		t.Setenv("MC_SERVICE_ACCOUNT", "not-json")

		// act
		cfg, err := config.NewConfig()

		// assert
		assert.Nil(t, cfg)
		assert.Error(t, err)
	})
}
