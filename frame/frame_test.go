package frame_test

import (
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goto/wrangler/frame"
)

func TestNew(t *testing.T) {
	t.Run("should return error when no columns are given", func(t *testing.T) {
		// act
		_, err := frame.New(nil, [][]any{{1}})
		// assert
		assert.Error(t, err)
	})
	t.Run("should return error when a row has the wrong width", func(t *testing.T) {
		// act
		_, err := frame.New([]string{"id", "name"}, [][]any{{1, "a"}, {2}})
		// assert
		assert.Error(t, err)
		assert.ErrorContains(t, err, "row 1")
	})
	t.Run("should build an empty frame when no rows are given", func(t *testing.T) {
		// act
		df, err := frame.New([]string{"id", "name"}, nil)
		// assert
		require.NoError(t, err)
		assert.Equal(t, 0, df.Nrow())
		assert.Equal(t, []string{"id", "name"}, df.Names())
	})
	t.Run("should preserve the given column order", func(t *testing.T) {
		// act
		df, err := frame.New([]string{"z", "a", "m"}, [][]any{{1, "x", 2.5}, {2, "y", 3.5}})
		// assert
		require.NoError(t, err)
		assert.Equal(t, []string{"z", "a", "m"}, df.Names())
		assert.Equal(t, 2, df.Nrow())
		assert.Equal(t, []float64{2.5, 3.5}, df.Col("m").Float())
	})
}

func TestFromRecords(t *testing.T) {
	t.Run("should load records with the first row as header", func(t *testing.T) {
		// act
		df, err := frame.FromRecords([][]string{
			{"id", "name"},
			{"1", "alice"},
			{"2", "bob"},
		})
		// assert
		require.NoError(t, err)
		assert.Equal(t, 2, df.Nrow())
		assert.Equal(t, series.Int, df.Col("id").Type())
	})
	t.Run("should return error when records are empty", func(t *testing.T) {
		// act
		_, err := frame.FromRecords(nil)
		// assert
		assert.Error(t, err)
	})
}

func TestFromMaps(t *testing.T) {
	t.Run("should load maps into sorted columns", func(t *testing.T) {
		// act
		df, err := frame.FromMaps([]map[string]any{
			{"b": 2, "a": "x"},
			{"b": 4, "a": "y"},
		})
		// assert
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, df.Names())
		assert.Equal(t, 2, df.Nrow())
	})
	t.Run("should return error when maps are empty", func(t *testing.T) {
		// act
		_, err := frame.FromMaps(nil)
		// assert
		assert.Error(t, err)
	})
}

func TestSelectColumns(t *testing.T) {
	t.Run("should keep only the requested columns in order", func(t *testing.T) {
		// arrange
		df, err := frame.New([]string{"a", "b", "c"}, [][]any{{1, 2, 3}})
		require.NoError(t, err)
		// act
		out, err := frame.SelectColumns(df, []string{"c", "a"})
		// assert
		require.NoError(t, err)
		assert.Equal(t, []string{"c", "a"}, out.Names())
	})
	t.Run("should return error when a column is missing", func(t *testing.T) {
		// arrange
		df, err := frame.New([]string{"a"}, [][]any{{1}})
		require.NoError(t, err)
		// act
		_, err = frame.SelectColumns(df, []string{"nope"})
		// assert
		assert.Error(t, err)
	})
}

func TestDropColumns(t *testing.T) {
	t.Run("should drop the given columns", func(t *testing.T) {
		// arrange
		df, err := frame.New([]string{"a", "b", "c"}, [][]any{{1, 2, 3}})
		require.NoError(t, err)
		// act
		out, err := frame.DropColumns(df, []string{"b"})
		// assert
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "c"}, out.Names())
	})
	t.Run("should return error when dropping a missing column", func(t *testing.T) {
		// arrange
		df, err := frame.New([]string{"a"}, [][]any{{1}})
		require.NoError(t, err)
		// act
		_, err = frame.DropColumns(df, []string{"nope"})
		// assert
		assert.Error(t, err)
	})
}

func TestDropDuplicates(t *testing.T) {
	t.Run("should keep the first occurrence of duplicate rows", func(t *testing.T) {
		// arrange
		df, err := frame.New([]string{"id", "name"}, [][]any{
			{1, "alice"},
			{2, "bob"},
			{1, "alice"},
			{3, "carol"},
		})
		require.NoError(t, err)
		// act
		out, err := frame.DropDuplicates(df)
		// assert
		require.NoError(t, err)
		assert.Equal(t, 3, out.Nrow())
		assert.Equal(t, []string{"alice", "bob", "carol"}, out.Col("name").Records())
		assert.Equal(t, series.Int, out.Col("id").Type())
	})
	t.Run("should return a copy when there are no duplicates", func(t *testing.T) {
		// arrange
		df, err := frame.New([]string{"id"}, [][]any{{1}, {2}})
		require.NoError(t, err)
		// act
		out, err := frame.DropDuplicates(df)
		// assert
		require.NoError(t, err)
		assert.Equal(t, 2, out.Nrow())
	})
}

func TestColumnsDifference(t *testing.T) {
	t.Run("should return sorted columns present only in the first frame", func(t *testing.T) {
		// arrange
		a, err := frame.New([]string{"z", "a", "shared"}, [][]any{{1, 2, 3}})
		require.NoError(t, err)
		b, err := frame.New([]string{"shared"}, [][]any{{3}})
		require.NoError(t, err)
		// act
		diff := frame.ColumnsDifference(a, b)
		// assert
		assert.Equal(t, []string{"a", "z"}, diff)
	})
	t.Run("should return empty when all columns are shared", func(t *testing.T) {
		// arrange
		a, err := frame.New([]string{"a"}, [][]any{{1}})
		require.NoError(t, err)
		// act
		diff := frame.ColumnsDifference(a, a)
		// assert
		assert.Empty(t, diff)
	})
}

func TestConstColumn(t *testing.T) {
	t.Run("should fill every row with the constant", func(t *testing.T) {
		// arrange
		df, err := frame.New([]string{"id"}, [][]any{{1}, {2}})
		require.NoError(t, err)
		// act
		out, err := frame.ConstColumn(df, "source", "mc")
		// assert
		require.NoError(t, err)
		assert.Equal(t, []string{"mc", "mc"}, out.Col("source").Records())
		assert.Equal(t, series.String, out.Col("source").Type())
	})
	t.Run("should replace an existing column", func(t *testing.T) {
		// arrange
		df, err := frame.New([]string{"id", "flag"}, [][]any{{1, false}})
		require.NoError(t, err)
		// act
		out, err := frame.ConstColumn(df, "flag", true)
		// assert
		require.NoError(t, err)
		b, err := out.Col("flag").Bool()
		require.NoError(t, err)
		assert.Equal(t, []bool{true}, b)
	})
	t.Run("should return error for an unsupported constant type", func(t *testing.T) {
		// arrange
		df, err := frame.New([]string{"id"}, [][]any{{1}})
		require.NoError(t, err)
		// act
		_, err = frame.ConstColumn(df, "bad", []int{1})
		// assert
		assert.Error(t, err)
		assert.ErrorContains(t, err, "unsupported constant type")
	})
}

func TestFilterIn(t *testing.T) {
	t.Run("should keep only rows whose value is in the set", func(t *testing.T) {
		// arrange
		df, err := frame.New([]string{"id", "status"}, [][]any{
			{1, "open"},
			{2, "closed"},
			{3, "open"},
			{4, "stale"},
		})
		require.NoError(t, err)
		// act
		out, err := frame.FilterIn(df, "status", []string{"open", "stale"})
		// assert
		require.NoError(t, err)
		assert.Equal(t, 3, out.Nrow())
		assert.Equal(t, []string{"open", "open", "stale"}, out.Col("status").Records())
	})
	t.Run("should return error when the column is missing", func(t *testing.T) {
		// arrange
		df, err := frame.New([]string{"id"}, [][]any{{1}})
		require.NoError(t, err)
		// act
		_, err = frame.FilterIn(df, "nope", []string{"x"})
		// assert
		assert.Error(t, err)
	})
}

func TestPropagatesFrameError(t *testing.T) {
	t.Run("should surface the error carried by a broken frame", func(t *testing.T) {
		// arrange
		broken := dataframe.DataFrame{Err: assert.AnError}
		// act
		_, err := frame.DropColumns(broken, []string{"a"})
		// assert
		assert.Error(t, err)
		assert.ErrorIs(t, err, assert.AnError)
	})
}
