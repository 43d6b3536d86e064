package datasets

import (
	"context"
	"time"

	"github.com/apache/arrow/go/v13/arrow"
	"github.com/apache/arrow/go/v13/arrow/array"
	"github.com/apache/arrow/go/v13/arrow/memory"
	"github.com/apache/arrow/go/v13/parquet/file"
	"github.com/apache/arrow/go/v13/parquet/pqarrow"

	"github.com/XiaoConstantine/adapt-go/pkg/core"
	"github.com/XiaoConstantine/adapt-go/pkg/errors"
)

// LoadParquet reads a batch from a Parquet file. A "data" string column is
// required; "action" (string), "confidence" (double), and "timestamp"
// columns are optional, and null confidence values mark unlabeled records.
func LoadParquet(path string) ([]core.ExperienceRecord, error) {
	reader, err := file.OpenParquetFile(path, false)
	if err != nil {
		return nil, errors.WithFields(
			errors.Wrap(err, errors.InvalidInput, "failed to open Parquet file"),
			errors.Fields{"path": path},
		)
	}
	defer reader.Close()

	arrowReader, err := pqarrow.NewFileReader(reader, pqarrow.ArrowReadProperties{}, memory.DefaultAllocator)
	if err != nil {
		return nil, errors.Wrap(err, errors.InvalidInput, "failed to build Arrow reader")
	}

	schema, err := arrowReader.Schema()
	if err != nil {
		return nil, errors.Wrap(err, errors.InvalidInput, "failed to read Parquet schema")
	}

	dataIndices := schema.FieldIndices("data")
	if len(dataIndices) == 0 {
		return nil, errors.WithFields(
			errors.New(errors.InvalidInput, "required column 'data' not found"),
			errors.Fields{"path": path},
		)
	}

	table, err := arrowReader.ReadTable(context.Background())
	if err != nil {
		return nil, errors.Wrap(err, errors.InvalidInput, "failed to read Parquet table")
	}
	defer table.Release()

	rows := int(table.NumRows())
	records := make([]core.ExperienceRecord, rows)

	data := stringColumn(table, dataIndices[0])
	for i := 0; i < rows; i++ {
		records[i].Data = data[i]
	}

	if indices := schema.FieldIndices("action"); len(indices) > 0 {
		actions := stringColumn(table, indices[0])
		for i := 0; i < rows; i++ {
			records[i].Action = actions[i]
		}
	}

	if indices := schema.FieldIndices("confidence"); len(indices) > 0 {
		for i, v := range floatColumn(table, indices[0]) {
			if v != nil {
				records[i].Confidence = v
			}
		}
	}

	if indices := schema.FieldIndices("timestamp"); len(indices) > 0 {
		for i, ts := range timeColumn(table, indices[0]) {
			if !ts.IsZero() {
				records[i].Timestamp = ts
			}
		}
	}

	return records, nil
}

// stringColumn flattens a column's chunks into one string slice. Null cells
// become empty strings.
func stringColumn(table arrow.Table, index int) []string {
	values := make([]string, 0, table.NumRows())
	column := table.Column(index)
	for _, chunk := range column.Data().Chunks() {
		strs, ok := chunk.(*array.String)
		if !ok {
			continue
		}
		for i := 0; i < strs.Len(); i++ {
			if strs.IsNull(i) {
				values = append(values, "")
				continue
			}
			values = append(values, strs.Value(i))
		}
	}
	return values
}

// timeColumn flattens a timestamp column. Plain int64 cells are read as Unix
// milliseconds; nulls become zero times.
func timeColumn(table arrow.Table, index int) []time.Time {
	values := make([]time.Time, 0, table.NumRows())
	column := table.Column(index)
	for _, chunk := range column.Data().Chunks() {
		switch col := chunk.(type) {
		case *array.Timestamp:
			unit := col.DataType().(*arrow.TimestampType).Unit
			for i := 0; i < col.Len(); i++ {
				if col.IsNull(i) {
					values = append(values, time.Time{})
					continue
				}
				values = append(values, col.Value(i).ToTime(unit))
			}
		case *array.Int64:
			for i := 0; i < col.Len(); i++ {
				if col.IsNull(i) {
					values = append(values, time.Time{})
					continue
				}
				values = append(values, time.UnixMilli(col.Value(i)))
			}
		}
	}
	return values
}

// floatColumn flattens a column's chunks, preserving nulls as nil.
func floatColumn(table arrow.Table, index int) []*float64 {
	values := make([]*float64, 0, table.NumRows())
	column := table.Column(index)
	for _, chunk := range column.Data().Chunks() {
		floats, ok := chunk.(*array.Float64)
		if !ok {
			continue
		}
		for i := 0; i < floats.Len(); i++ {
			if floats.IsNull(i) {
				values = append(values, nil)
				continue
			}
			v := floats.Value(i)
			values = append(values, &v)
		}
	}
	return values
}
