package frame_test

import (
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goto/wrangler/frame"
)

func TestCastColumn(t *testing.T) {
	t.Run("should cast a string column to int", func(t *testing.T) {
		// arrange
		df, err := frame.FromRecords([][]string{
			{"id", "amount"},
			{"1", "10"},
			{"2", "20"},
		}, dataframe.DetectTypes(false), dataframe.DefaultType(series.String))
		require.NoError(t, err)
		require.Equal(t, series.String, df.Col("amount").Type())
		// act
		out, err := frame.CastColumn(df, "amount", series.Int)
		// assert
		require.NoError(t, err)
		assert.Equal(t, series.Int, out.Col("amount").Type())
		vals, err := out.Col("amount").Int()
		require.NoError(t, err)
		assert.Equal(t, []int{10, 20}, vals)
	})
	t.Run("should truncate float values toward zero when cast to int", func(t *testing.T) {
		// arrange
		df, err := frame.New([]string{"score"}, [][]any{{9.7}, {-2.3}})
		require.NoError(t, err)
		// act
		out, err := frame.CastColumn(df, "score", series.Int)
		// assert
		require.NoError(t, err)
		vals, err := out.Col("score").Int()
		require.NoError(t, err)
		assert.Equal(t, []int{9, -2}, vals)
	})
	t.Run("should turn unparseable values into NA", func(t *testing.T) {
		// arrange
		df, err := frame.New([]string{"code"}, [][]any{{"abc"}, {"42"}})
		require.NoError(t, err)
		// act
		out, err := frame.CastColumn(df, "code", series.Int)
		// assert
		require.NoError(t, err)
		assert.True(t, out.Col("code").HasNaN())
	})
	t.Run("should cast an int column to string", func(t *testing.T) {
		// arrange
		df, err := frame.New([]string{"id"}, [][]any{{1}, {2}})
		require.NoError(t, err)
		// act
		out, err := frame.CastColumn(df, "id", series.String)
		// assert
		require.NoError(t, err)
		assert.Equal(t, series.String, out.Col("id").Type())
		assert.Equal(t, []string{"1", "2"}, out.Col("id").Records())
	})
	t.Run("should not mutate the input frame", func(t *testing.T) {
		// arrange
		df, err := frame.New([]string{"id"}, [][]any{{1}, {2}})
		require.NoError(t, err)
		// act
		_, err = frame.CastColumn(df, "id", series.String)
		// assert
		require.NoError(t, err)
		assert.Equal(t, series.Int, df.Col("id").Type())
	})
	t.Run("should return error when the column is missing", func(t *testing.T) {
		// arrange
		df, err := frame.New([]string{"id"}, [][]any{{1}})
		require.NoError(t, err)
		// act
		_, err = frame.CastColumn(df, "nope", series.Int)
		// assert
		assert.Error(t, err)
		assert.ErrorContains(t, err, "not found")
	})
}
