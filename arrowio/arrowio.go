// Package arrowio converts DataFrames to and from Apache Arrow record
// batches. Number columns map to float64 arrays, text to utf8, bool to
// boolean, and struct payloads to utf8 arrays of JSON tagged with column
// metadata so they survive the round trip. Absent cells map to Arrow nulls
// in both directions; cells that do not match their column's dtype are
// written as nulls.
package arrowio

import (
	"encoding/json"
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/go-motley/motley"
)

// Metadata keys used to round-trip frame and column typing through a schema.
const (
	kindKey = "motley.kind"
	nameKey = "motley.name"
)

// Record converts df into an Arrow record batch. The caller owns the record
// and must Release it.
func Record(df *motley.DataFrame) (arrow.Record, error) {
	if df == nil {
		return nil, fmt.Errorf("converting to arrow record: df cannot be nil")
	}
	if err := df.Err(); err != nil {
		return nil, fmt.Errorf("converting to arrow record: %w", err)
	}
	mem := memory.NewGoAllocator()
	dtypes := df.DTypes()
	names := df.Columns()
	fields := make([]arrow.Field, len(names))
	arrays := make([]arrow.Array, len(names))
	for k, name := range names {
		values, err := df.Column(name)
		if err != nil {
			return nil, fmt.Errorf("converting to arrow record: %w", err)
		}
		field, arr, err := buildColumn(mem, name, dtypes[name], values)
		if err != nil {
			for _, built := range arrays[:k] {
				built.Release()
			}
			return nil, fmt.Errorf("converting to arrow record: %w", err)
		}
		fields[k] = field
		arrays[k] = arr
	}
	var md arrow.Metadata
	if df.Name() != "" {
		md = arrow.NewMetadata([]string{nameKey}, []string{df.Name()})
	}
	schema := arrow.NewSchema(fields, &md)
	record := array.NewRecord(schema, arrays, int64(df.Len()))
	for _, arr := range arrays {
		arr.Release()
	}
	return record, nil
}

func buildColumn(mem memory.Allocator, name string, kind motley.Kind, values []motley.Value) (arrow.Field, arrow.Array, error) {
	switch kind {
	case motley.KindNumber:
		b := array.NewFloat64Builder(mem)
		defer b.Release()
		for _, v := range values {
			if v.IsNumber() {
				b.Append(v.Num())
			} else {
				b.AppendNull()
			}
		}
		return arrow.Field{Name: name, Type: arrow.PrimitiveTypes.Float64, Nullable: true}, b.NewArray(), nil
	case motley.KindBool:
		b := array.NewBooleanBuilder(mem)
		defer b.Release()
		for _, v := range values {
			if v.Kind() == motley.KindBool {
				b.Append(v.Bool())
			} else {
				b.AppendNull()
			}
		}
		return arrow.Field{Name: name, Type: arrow.FixedWidthTypes.Boolean, Nullable: true}, b.NewArray(), nil
	case motley.KindText:
		b := array.NewStringBuilder(mem)
		defer b.Release()
		for _, v := range values {
			if v.Kind() == motley.KindText {
				b.Append(v.Str())
			} else {
				b.AppendNull()
			}
		}
		return arrow.Field{Name: name, Type: arrow.BinaryTypes.String, Nullable: true}, b.NewArray(), nil
	case motley.KindStruct:
		b := array.NewStringBuilder(mem)
		defer b.Release()
		for _, v := range values {
			if v.Kind() != motley.KindStruct {
				b.AppendNull()
				continue
			}
			payload, err := json.Marshal(v.Obj())
			if err != nil {
				return arrow.Field{}, nil, fmt.Errorf("column %s: rendering struct cell: %w", name, err)
			}
			b.Append(string(payload))
		}
		md := arrow.NewMetadata([]string{kindKey}, []string{"struct"})
		return arrow.Field{Name: name, Type: arrow.BinaryTypes.String, Nullable: true, Metadata: md}, b.NewArray(), nil
	default:
		// a column of only absent cells has no materializable type
		b := array.NewNullBuilder(mem)
		defer b.Release()
		for range values {
			b.AppendNull()
		}
		return arrow.Field{Name: name, Type: arrow.Null, Nullable: true}, b.NewArray(), nil
	}
}

// FromRecord converts an Arrow record batch into a DataFrame with default row
// labels. Numeric columns of any width are widened to float64.
func FromRecord(rec arrow.Record) (*motley.DataFrame, error) {
	if rec == nil {
		return nil, fmt.Errorf("converting from arrow record: record cannot be nil")
	}
	schema := rec.Schema()
	cols := make([]motley.Column, rec.NumCols())
	for k := 0; k < int(rec.NumCols()); k++ {
		fld := schema.Field(k)
		values, err := readColumn(fld, rec.Column(k))
		if err != nil {
			return nil, fmt.Errorf("converting from arrow record: %w", err)
		}
		cols[k] = motley.Column{Name: fld.Name, Values: values}
	}
	df := motley.New(cols...)
	if err := df.Err(); err != nil {
		return nil, fmt.Errorf("converting from arrow record: %w", err)
	}
	if i := schema.Metadata().FindKey(nameKey); i >= 0 {
		df.SetName(schema.Metadata().Values()[i])
	}
	return df, nil
}

func readColumn(fld arrow.Field, arr arrow.Array) ([]motley.Value, error) {
	values := make([]motley.Value, arr.Len())
	isStruct := false
	if i := fld.Metadata.FindKey(kindKey); i >= 0 {
		isStruct = fld.Metadata.Values()[i] == "struct"
	}
	switch data := arr.(type) {
	case *array.Float64:
		for i := range values {
			if data.IsNull(i) {
				continue
			}
			values[i] = motley.Num(data.Value(i))
		}
	case *array.Float32:
		for i := range values {
			if data.IsNull(i) {
				continue
			}
			values[i] = motley.Num(float64(data.Value(i)))
		}
	case *array.Int64:
		for i := range values {
			if data.IsNull(i) {
				continue
			}
			values[i] = motley.Num(float64(data.Value(i)))
		}
	case *array.Int32:
		for i := range values {
			if data.IsNull(i) {
				continue
			}
			values[i] = motley.Num(float64(data.Value(i)))
		}
	case *array.Boolean:
		for i := range values {
			if data.IsNull(i) {
				continue
			}
			values[i] = motley.Bool(data.Value(i))
		}
	case *array.String:
		for i := range values {
			if data.IsNull(i) {
				continue
			}
			if isStruct {
				var payload interface{}
				if err := json.Unmarshal([]byte(data.Value(i)), &payload); err != nil {
					return nil, fmt.Errorf("column %s: parsing struct cell: %w", fld.Name, err)
				}
				values[i] = motley.Obj(payload)
			} else {
				values[i] = motley.Str(data.Value(i))
			}
		}
	case *array.Null:
		// zero Values are already Absent
	default:
		return nil, fmt.Errorf("column %s: unsupported arrow type %s", fld.Name, fld.Type)
	}
	return values, nil
}
