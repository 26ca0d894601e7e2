package motley

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
)

// Absent is the Value marking missing data.
// It is the zero Value, so cells default to Absent unless set otherwise.
var Absent = Value{}

// Num returns a number Value.
func Num(f float64) Value { return Value{kind: KindNumber, num: f} }

// Str returns a text Value.
func Str(s string) Value { return Value{kind: KindText, str: s} }

// Bool returns a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Obj returns a structured Value.
// The payload is expected to be JSON-shaped data (map[string]interface{},
// []interface{}, or scalars), as produced by parsing an embedded literal.
// A nil payload returns Absent.
func Obj(v interface{}) Value {
	if v == nil {
		return Absent
	}
	return Value{kind: KindStruct, obj: v}
}

// ValueOf lifts a Go value into a Value.
// Numeric types become KindNumber, string becomes KindText, bool becomes
// KindBool, and nil or NaN become Absent. A Value passes through unchanged.
// Anything else is wrapped as KindStruct.
func ValueOf(v interface{}) Value {
	switch t := v.(type) {
	case nil:
		return Absent
	case Value:
		return t
	case float64:
		if math.IsNaN(t) {
			return Absent
		}
		return Num(t)
	case float32:
		return ValueOf(float64(t))
	case int:
		return Num(float64(t))
	case int8:
		return Num(float64(t))
	case int16:
		return Num(float64(t))
	case int32:
		return Num(float64(t))
	case int64:
		return Num(float64(t))
	case uint:
		return Num(float64(t))
	case uint8:
		return Num(float64(t))
	case uint16:
		return Num(float64(t))
	case uint32:
		return Num(float64(t))
	case uint64:
		return Num(float64(t))
	case string:
		return Str(t)
	case bool:
		return Bool(t)
	default:
		return Value{kind: KindStruct, obj: v}
	}
}

// Kind returns the type tag of v.
func (v Value) Kind() Kind { return v.kind }

// IsAbsent reports whether v marks missing data.
func (v Value) IsAbsent() bool { return v.kind == KindAbsent }

// IsNumber reports whether v holds a float64.
func (v Value) IsNumber() bool { return v.kind == KindNumber }

// Num returns the numeric content of v, or 0 if v is not a number.
func (v Value) Num() float64 {
	if v.kind != KindNumber {
		return 0
	}
	return v.num
}

// Str returns the text content of v, or "" if v is not text.
func (v Value) Str() string {
	if v.kind != KindText {
		return ""
	}
	return v.str
}

// Bool returns the boolean content of v, or false if v is not a boolean.
func (v Value) Bool() bool {
	if v.kind != KindBool {
		return false
	}
	return v.b
}

// Obj returns the structured payload of v, or nil if v is not structured.
func (v Value) Obj() interface{} {
	if v.kind != KindStruct {
		return nil
	}
	return v.obj
}

// Interface returns the underlying Go value: float64, string, bool, the
// structured payload, or nil for Absent.
func (v Value) Interface() interface{} {
	switch v.kind {
	case KindNumber:
		return v.num
	case KindText:
		return v.str
	case KindBool:
		return v.b
	case KindStruct:
		return v.obj
	default:
		return nil
	}
}

// Equal reports whether two values have the same kind and the same content.
// Structured payloads are compared by deep equality. Two NaN numbers compare
// equal so that deduplication treats them as the same cell.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNumber:
		if math.IsNaN(v.num) && math.IsNaN(other.num) {
			return true
		}
		return v.num == other.num
	case KindText:
		return v.str == other.str
	case KindBool:
		return v.b == other.b
	case KindStruct:
		return reflect.DeepEqual(v.obj, other.obj)
	default:
		return true
	}
}

// String renders v for display. Absent renders as the configured null printer.
func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindText:
		return v.str
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindStruct:
		b, err := json.Marshal(v.obj)
		if err != nil {
			return fmt.Sprint(v.obj)
		}
		return string(b)
	default:
		return optionNullPrinter
	}
}

// clone returns v with its structured payload deep-copied, so that the result
// shares no mutable state with the original. JSON-shaped payloads are copied
// recursively; other payloads are returned as-is.
func (v Value) clone() Value {
	if v.kind != KindStruct {
		return v
	}
	return Value{kind: KindStruct, obj: deepCopyObj(v.obj)}
}

func deepCopyObj(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		m := make(map[string]interface{}, len(t))
		for k, val := range t {
			m[k] = deepCopyObj(val)
		}
		return m
	case []interface{}:
		s := make([]interface{}, len(t))
		for i := range t {
			s[i] = deepCopyObj(t[i])
		}
		return s
	default:
		return v
	}
}

// String returns the name of the kind, for dtype reporting and rendering.
func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindNumber:
		return "number"
	case KindText:
		return "text"
	case KindBool:
		return "bool"
	case KindStruct:
		return "struct"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}
