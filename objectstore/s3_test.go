package objectstore_test

import (
	"testing"

	"github.com/goto/wrangler/objectstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewS3Store(t *testing.T) {
	t.Run("should create a store from a url endpoint", func(t *testing.T) {
		// arrange
		conf := &objectstore.Config{
			EndpointURL:     "https://oss-ap-southeast-5.aliyuncs.com",
			AccessKeyID:     "access_id",
			SecretAccessKey: "secret_key",
		}

		// act
		store, err := objectstore.NewS3Store(conf)

		// assert
		require.NoError(t, err)
		assert.NotNil(t, store)
	})

	t.Run("should create a store from a bare host endpoint", func(t *testing.T) {
		// arrange
		conf := &objectstore.Config{
			EndpointURL:     "localhost:9000",
			AccessKeyID:     "access_id",
			SecretAccessKey: "secret_key",
		}

		// act
		store, err := objectstore.NewS3Store(conf)

		// assert
		require.NoError(t, err)
		assert.NotNil(t, store)
	})

	t.Run("should require a config", func(t *testing.T) {
		// act
		store, err := objectstore.NewS3Store(nil)

		// assert
		assert.Nil(t, store)
		var serr *objectstore.Error
		require.ErrorAs(t, err, &serr)
		assert.Equal(t, objectstore.CodeEndpointUnreachable, serr.Code)
	})

	t.Run("should require an endpoint", func(t *testing.T) {
		// arrange
		conf := &objectstore.Config{AccessKeyID: "access_id", SecretAccessKey: "secret_key"}

		// act
		store, err := objectstore.NewS3Store(conf)

		// assert
		assert.Nil(t, store)
		var serr *objectstore.Error
		require.ErrorAs(t, err, &serr)
		assert.Equal(t, objectstore.CodeEndpointUnreachable, serr.Code)
	})

	t.Run("should require credentials", func(t *testing.T) {
		// arrange
		conf := &objectstore.Config{EndpointURL: "http://localhost:9000"}

		// act
		store, err := objectstore.NewS3Store(conf)

		// assert
		assert.Nil(t, store)
		var serr *objectstore.Error
		require.ErrorAs(t, err, &serr)
		assert.Equal(t, objectstore.CodeAuthInvalid, serr.Code)
		assert.False(t, serr.Retryable)
	})
}
