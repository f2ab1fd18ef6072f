package objectstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"path"
	"sort"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/pkg/errors"
	writerfile "github.com/xitongsys/parquet-go-source/writerfile"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"
)

// hiveNullPartition is the directory value hive uses for null partition keys.
const hiveNullPartition = "__HIVE_DEFAULT_PARTITION__"

// WriteResult reports what a parquet write produced.
type WriteResult struct {
	Objects      []string
	Rows         int64
	BytesWritten int64
}

// WriteOption adjusts how WriteParquet lays out objects.
type WriteOption func(p *writePlan)

type writePlan struct {
	partitionColumns []string
}

// WithPartitionColumns lays the dataframe out in hive-style col=value
// directories, one object per distinct partition tuple. Partition values are
// encoded in the object path and dropped from the parquet payload.
func WithPartitionColumns(cols ...string) WriteOption {
	return func(p *writePlan) {
		p.partitionColumns = cols
	}
}

// WriteParquet writes the dataframe under bucket/prefix as snappy-compressed
// parquet objects. The bucket must already exist. NA cells and non-finite
// floats are written as parquet nulls. An empty dataframe writes no objects.
func WriteParquet(ctx context.Context, store Store, df dataframe.DataFrame, bucket, prefix string, opts ...WriteOption) (*WriteResult, error) {
	if df.Err != nil {
		return nil, wrapError(CodeWriteFailed, false, df.Err)
	}

	plan := &writePlan{}
	for _, opt := range opts {
		opt(plan)
	}

	exists, err := store.BucketExists(ctx, bucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, wrapError(CodeBucketNotFound, false, errors.Errorf("bucket %s not found", bucket))
	}

	names := df.Names()
	types := df.Types()
	partitioned := make(map[string]bool, len(plan.partitionColumns))
	for _, col := range plan.partitionColumns {
		if !hasName(names, col) {
			return nil, wrapError(CodeWriteFailed, false, errors.Errorf("partition column %s not found", col))
		}
		partitioned[col] = true
	}

	payload := make([]string, 0, len(names))
	payloadTypes := make(map[string]series.Type, len(names))
	for i, name := range names {
		if partitioned[name] {
			continue
		}
		payload = append(payload, name)
		payloadTypes[name] = types[i]
	}
	if len(payload) == 0 {
		return nil, wrapError(CodeWriteFailed, false, errors.New("partition columns cover every column"))
	}

	res := &WriteResult{Objects: []string{}}
	if df.Nrow() == 0 {
		return res, nil
	}

	schemaDef := buildParquetSchema(payload, payloadTypes)

	groups := map[string][]map[string]any{}
	for _, row := range df.Maps() {
		dir := partitionDir(row, plan.partitionColumns)
		groups[dir] = append(groups[dir], row)
	}
	dirs := make([]string, 0, len(groups))
	for dir := range groups {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)

	seq := 0
	for _, dir := range dirs {
		data, err := encodeParquet(schemaDef, payload, groups[dir])
		if err != nil {
			return nil, wrapError(CodeWriteFailed, true, err)
		}
		key := path.Join(prefix, dir, fmt.Sprintf("part-%06d.parquet", seq))
		if err := store.PutObject(ctx, bucket, key, data); err != nil {
			return nil, err
		}
		res.Objects = append(res.Objects, key)
		res.Rows += int64(len(groups[dir]))
		res.BytesWritten += int64(len(data))
		seq++
	}

	return res, nil
}

// partitionDir builds the col=value path segments for one row, in the order
// the partition columns were given.
func partitionDir(row map[string]any, cols []string) string {
	segments := make([]string, 0, len(cols))
	for _, col := range cols {
		repr := hiveNullPartition
		if val := row[col]; val != nil {
			repr = fmt.Sprint(val)
		}
		segments = append(segments, fmt.Sprintf("%s=%s", col, repr))
	}
	return path.Join(segments...)
}

func encodeParquet(schemaDef string, payload []string, rows []map[string]any) ([]byte, error) {
	buf := &bytes.Buffer{}
	pfw := writerfile.NewWriterFile(buf)
	pw, err := writer.NewJSONWriter(schemaDef, pfw, 4)
	if err != nil {
		return nil, err
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for _, row := range rows {
		out := make(map[string]any, len(payload))
		for _, col := range payload {
			out[col] = parquetValue(row[col])
		}
		if err := pw.Write(out); err != nil {
			_ = pw.WriteStop()
			_ = pfw.Close()
			return nil, err
		}
	}
	if err := pw.WriteStop(); err != nil {
		_ = pfw.Close()
		return nil, err
	}
	if err := pfw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// parquetValue maps a dataframe cell onto what the JSON writer accepts. NaN
// and infinities have no JSON encoding, so they turn into nulls.
func parquetValue(val any) any {
	if f, ok := val.(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
		return nil
	}
	return val
}

func buildParquetSchema(payload []string, types map[string]series.Type) string {
	fields := make([]map[string]string, 0, len(payload))
	for _, name := range payload {
		fields = append(fields, map[string]string{
			"Tag": fmt.Sprintf("name=%s, %s, repetitiontype=OPTIONAL", name, parquetTypeTag(types[name])),
		})
	}
	def := map[string]any{
		"Tag":    "name=parquet_go_root, repetitiontype=REQUIRED",
		"Fields": fields,
	}
	b, _ := json.Marshal(def)
	return string(b)
}

func parquetTypeTag(t series.Type) string {
	switch t {
	case series.Int:
		return "type=INT64"
	case series.Float:
		return "type=DOUBLE"
	case series.Bool:
		return "type=BOOLEAN"
	default:
		return "type=BYTE_ARRAY, convertedtype=UTF8"
	}
}

func hasName(names []string, col string) bool {
	for _, name := range names {
		if name == col {
			return true
		}
	}
	return false
}
