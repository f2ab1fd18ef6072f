package objectstore_test

import (
	"testing"

	"github.com/goto/wrangler/objectstore"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestError(t *testing.T) {
	t.Run("should format as code and cause", func(t *testing.T) {
		// arrange
		err := &objectstore.Error{
			Code:      objectstore.CodeBucketNotFound,
			Retryable: false,
			Err:       errors.New("bucket exports not found"),
		}

		// act + assert
		assert.Equal(t, "E_BUCKET_NOT_FOUND: bucket exports not found", err.Error())
	})

	t.Run("should format as bare code without a cause", func(t *testing.T) {
		// arrange
		err := &objectstore.Error{Code: objectstore.CodeTimeout, Retryable: true}

		// act + assert
		assert.Equal(t, "E_TIMEOUT", err.Error())
	})

	t.Run("should unwrap to the cause", func(t *testing.T) {
		// arrange
		cause := errors.New("connection reset")
		err := &objectstore.Error{Code: objectstore.CodeEndpointUnreachable, Retryable: true, Err: cause}

		// act + assert
		assert.ErrorIs(t, err, cause)
	})
}
