package motley

import (
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/ptiger10/tablediff"
)

// FromStruct reads a column-oriented struct into a DataFrame. Each exported
// slice field becomes one column, named by the lowercased field name unless a
// motley:"name" tag overrides it. Fields tagged motley:"-" and unexported
// fields are skipped. Elements are lifted the way ValueOf lifts them, so
// []Value fields pass through unchanged.
func FromStruct(input interface{}) (*DataFrame, error) {
	v := reflect.ValueOf(input)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if !v.IsValid() || v.Kind() != reflect.Struct {
		return nil, fmt.Errorf("FromStruct(): input must be a struct or pointer to struct: %w", ErrInvalidArgument)
	}
	t := v.Type()
	cols := make([]Column, 0, t.NumField())
	for k := 0; k < t.NumField(); k++ {
		field := t.Field(k)
		if field.PkgPath != "" {
			continue
		}
		name := strings.ToLower(field.Name)
		if tag, ok := field.Tag.Lookup("motley"); ok {
			if tag == "-" {
				continue
			}
			name = tag
		}
		if field.Type.Kind() != reflect.Slice {
			return nil, fmt.Errorf("FromStruct(): field %s: must be a slice, not %s: %w",
				field.Name, field.Type.Kind(), ErrInvalidArgument)
		}
		fv := v.Field(k)
		values := make([]Value, fv.Len())
		for i := range values {
			values[i] = ValueOf(fv.Index(i).Interface())
		}
		cols = append(cols, Column{Name: name, Values: values})
	}
	df := New(cols...)
	if err := df.Err(); err != nil {
		return nil, fmt.Errorf("FromStruct(): %w", err)
	}
	return df, nil
}

// ToStruct writes df's columns into structPointer's exported slice fields,
// matching each field to the column named by its lowercased name unless a
// motley:"name" tag overrides it. []float64 fields take number cells (absent
// or mismatched cells become NaN), []string fields take text cells (otherwise
// ""), []bool fields take bool cells (otherwise false); []Value and
// []interface{} fields take any column verbatim.
func (df *DataFrame) ToStruct(structPointer interface{}) error {
	if err := df.Err(); err != nil {
		return fmt.Errorf("ToStruct(): %w", err)
	}
	rv := reflect.ValueOf(structPointer)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("ToStruct(): structPointer must be a pointer to struct: %w", ErrInvalidArgument)
	}
	v := rv.Elem()
	t := v.Type()
	for k := 0; k < t.NumField(); k++ {
		field := t.Field(k)
		if field.PkgPath != "" {
			continue
		}
		name := strings.ToLower(field.Name)
		if tag, ok := field.Tag.Lookup("motley"); ok {
			if tag == "-" {
				continue
			}
			name = tag
		}
		i, err := df.columnIndex(name)
		if err != nil {
			return fmt.Errorf("ToStruct(): field %s: %w", field.Name, err)
		}
		values := df.columns[i].values
		dst := v.Field(k)
		switch field.Type {
		case reflect.TypeOf([]float64(nil)):
			out := make([]float64, len(values))
			for j, val := range values {
				if val.IsNumber() {
					out[j] = val.Num()
				} else {
					out[j] = math.NaN()
				}
			}
			dst.Set(reflect.ValueOf(out))
		case reflect.TypeOf([]string(nil)):
			out := make([]string, len(values))
			for j, val := range values {
				if val.Kind() == KindText {
					out[j] = val.Str()
				}
			}
			dst.Set(reflect.ValueOf(out))
		case reflect.TypeOf([]bool(nil)):
			out := make([]bool, len(values))
			for j, val := range values {
				if val.Kind() == KindBool {
					out[j] = val.Bool()
				}
			}
			dst.Set(reflect.ValueOf(out))
		case reflect.TypeOf([]Value(nil)):
			out := make([]Value, len(values))
			copy(out, values)
			dst.Set(reflect.ValueOf(out))
		case reflect.TypeOf([]interface{}(nil)):
			out := make([]interface{}, len(values))
			for j, val := range values {
				out[j] = val.Interface()
			}
			dst.Set(reflect.ValueOf(out))
		default:
			return fmt.Errorf("ToStruct(): field %s: unsupported type %s: %w",
				field.Name, field.Type, ErrInvalidArgument)
		}
	}
	return nil
}

// PrettyDiff reads two column-oriented structs into DataFrames and reports
// whether their records match, with cell-level differences when they do not.
func PrettyDiff(got, want interface{}) (bool, *tablediff.Differences, error) {
	df1, err := FromStruct(got)
	if err != nil {
		return false, nil, fmt.Errorf("diffing structs: reading got: %w", err)
	}
	df2, err := FromStruct(want)
	if err != nil {
		return false, nil, fmt.Errorf("diffing structs: reading want: %w", err)
	}
	diffs, eq := tablediff.Diff(df1.Records(false), df2.Records(false))
	return eq, diffs, nil
}
