package motley

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"

	"github.com/ptiger10/tablediff"
)

// -- custom Encoder/Decoder

// valueAlias is the JSON shape of a Value: the kind tag plus a payload field
// matching the kind. Absent cells carry a null payload. The payload field has
// no omitempty so that zero and false survive the round trip.
type valueAlias struct {
	Kind string      `json:"kind"`
	Data interface{} `json:"data"`
}

// MarshalJSON satisfies the json.Marshaler interface for writing a Value to JSON.
func (v Value) MarshalJSON() ([]byte, error) {
	alias := valueAlias{Kind: v.kind.String()}
	switch v.kind {
	case KindNumber:
		// NaN is not representable in JSON; encode it as an absent cell.
		if math.IsNaN(v.num) {
			return json.Marshal(valueAlias{Kind: KindAbsent.String()})
		}
		alias.Data = v.num
	case KindText:
		alias.Data = v.str
	case KindBool:
		alias.Data = v.b
	case KindStruct:
		alias.Data = v.obj
	}
	return json.Marshal(alias)
}

// UnmarshalJSON satisfies the json.Unmarshaler interface for reading a Value from JSON.
func (v *Value) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*v = Absent
		return nil
	}
	var alias valueAlias
	if err := json.Unmarshal(b, &alias); err != nil {
		return fmt.Errorf("Value.UnmarshalJSON(): %w", err)
	}
	switch alias.Kind {
	case "absent", "":
		*v = Absent
	case "number":
		f, ok := alias.Data.(float64)
		if !ok {
			return fmt.Errorf("Value.UnmarshalJSON(): number payload must be numeric, not %T: %w",
				alias.Data, ErrInvalidArgument)
		}
		*v = Num(f)
	case "text":
		s, ok := alias.Data.(string)
		if !ok {
			return fmt.Errorf("Value.UnmarshalJSON(): text payload must be a string, not %T: %w",
				alias.Data, ErrInvalidArgument)
		}
		*v = Str(s)
	case "bool":
		t, ok := alias.Data.(bool)
		if !ok {
			return fmt.Errorf("Value.UnmarshalJSON(): bool payload must be a boolean, not %T: %w",
				alias.Data, ErrInvalidArgument)
		}
		*v = Bool(t)
	case "struct":
		*v = Obj(alias.Data)
	default:
		return fmt.Errorf("Value.UnmarshalJSON(): unknown kind %q: %w", alias.Kind, ErrInvalidArgument)
	}
	return nil
}

type columnAlias struct {
	Name   string  `json:"name"`
	Values []Value `json:"values"`
}

type dataFrameAlias struct {
	Name    string        `json:"name,omitempty"`
	Index   []int         `json:"index"`
	Columns []columnAlias `json:"columns"`
}

func (a dataFrameAlias) df() DataFrame {
	columns := make([]*column, len(a.Columns))
	for k, c := range a.Columns {
		columns[k] = newColumn(c.Name, c.Values)
	}
	return DataFrame{
		columns: columns,
		index:   a.Index,
		name:    a.Name,
	}
}

func (df *DataFrame) alias() dataFrameAlias {
	columns := make([]columnAlias, len(df.columns))
	for k, c := range df.columns {
		columns[k] = columnAlias{Name: c.name, Values: c.values}
	}
	return dataFrameAlias{
		Name:    df.name,
		Index:   df.index,
		Columns: columns,
	}
}

// MarshalJSON satisfies the json.Marshaler interface for writing a DataFrame to JSON.
// A DataFrame carrying an error cannot be marshaled.
func (df *DataFrame) MarshalJSON() ([]byte, error) {
	if df.err != nil {
		return nil, fmt.Errorf("MarshalJSON(): %w", df.err)
	}
	return json.Marshal(df.alias())
}

// UnmarshalJSON satisfies the json.Unmarshaler interface for reading a DataFrame from JSON.
// The decoded frame is validated the same way as New().
func (df *DataFrame) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var alias dataFrameAlias
	if err := json.Unmarshal(b, &alias); err != nil {
		return fmt.Errorf("UnmarshalJSON(): %w", err)
	}
	ret := alias.df()
	for _, c := range ret.columns {
		if len(c.values) != len(ret.index) {
			return fmt.Errorf("UnmarshalJSON(): column %s: length does not match index (%d != %d): %w",
				c.name, len(c.values), len(ret.index), ErrLengthMismatch)
		}
	}
	seen := make(map[string]bool, len(ret.columns))
	for _, c := range ret.columns {
		if seen[c.name] {
			return fmt.Errorf("UnmarshalJSON(): column %s: %w", c.name, ErrDuplicateColumn)
		}
		seen[c.name] = true
	}
	*df = ret
	return nil
}

// -- RECORDS

// Records returns the DataFrame as [][]string records with one header row.
// Cells are rendered the same way as String(): numbers via strconv, structs
// as JSON, absent cells as the configured null printer. If includeIndex is
// true, the row labels appear as a leading "index" column.
func (df *DataFrame) Records(includeIndex bool) [][]string {
	header := make([]string, 0, len(df.columns)+1)
	if includeIndex {
		header = append(header, "index")
	}
	header = append(header, df.columnNames()...)
	ret := make([][]string, 0, df.Len()+1)
	ret = append(ret, header)
	for i := 0; i < df.Len(); i++ {
		row := make([]string, 0, len(header))
		if includeIndex {
			row = append(row, strconv.Itoa(df.index[i]))
		}
		for _, c := range df.columns {
			row = append(row, c.values[i].String())
		}
		ret = append(ret, row)
	}
	return ret
}

// InterfaceRecords returns the DataFrame as [][]interface{} records with one
// header row. Cells are unwrapped to their Go payloads; absent cells are nil.
// If includeIndex is true, the row labels appear as a leading "index" column.
func (df *DataFrame) InterfaceRecords(includeIndex bool) [][]interface{} {
	header := make([]interface{}, 0, len(df.columns)+1)
	if includeIndex {
		header = append(header, "index")
	}
	for _, name := range df.columnNames() {
		header = append(header, name)
	}
	ret := make([][]interface{}, 0, df.Len()+1)
	ret = append(ret, header)
	for i := 0; i < df.Len(); i++ {
		row := make([]interface{}, 0, len(header))
		if includeIndex {
			row = append(row, df.index[i])
		}
		for _, c := range df.columns {
			row = append(row, c.values[i].Interface())
		}
		ret = append(ret, row)
	}
	return ret
}

// ToRecords returns the DataFrame as one map per row, keyed by column name,
// with cells unwrapped to their Go payloads (absent cells are nil). The
// output round-trips through FromRecords, modulo row labels.
func (df *DataFrame) ToRecords() []map[string]interface{} {
	ret := make([]map[string]interface{}, df.Len())
	for i := 0; i < df.Len(); i++ {
		record := make(map[string]interface{}, len(df.columns))
		for _, c := range df.columns {
			record[c.name] = c.values[i].Interface()
		}
		ret[i] = record
	}
	return ret
}

// EqualRecords renders the DataFrame as records and reports whether they
// match want, along with a diff of any differences.
func (df *DataFrame) EqualRecords(want [][]string, includeIndex bool) (bool, *tablediff.Differences) {
	got := df.Records(includeIndex)
	diffs, eq := tablediff.Diff(got, want)
	return eq, diffs
}

// EqualDataFrames reports whether two DataFrames are identical: same shape,
// same row labels, same column names and order, deeply equal cells, same
// name, and same error state.
func EqualDataFrames(a, b *DataFrame) bool {
	if a == nil || b == nil {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}
