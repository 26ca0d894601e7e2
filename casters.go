package motley

import "math"

// Conversions between Value slices and plain Go slices, for callers that hold
// typed data on one side or the other.

// Nums lifts floats into number Values. NaN lifts to Absent, the way ValueOf
// treats it.
func Nums(nums ...float64) []Value {
	values := make([]Value, len(nums))
	for i, n := range nums {
		if math.IsNaN(n) {
			values[i] = Absent
			continue
		}
		values[i] = Num(n)
	}
	return values
}

// Strs lifts strings into text Values.
func Strs(strs ...string) []Value {
	values := make([]Value, len(strs))
	for i, s := range strs {
		values[i] = Str(s)
	}
	return values
}

// Bools lifts bools into bool Values.
func Bools(bools ...bool) []Value {
	values := make([]Value, len(bools))
	for i, b := range bools {
		values[i] = Bool(b)
	}
	return values
}

// Lift lifts arbitrary scalars, maps, and slices into Values via ValueOf.
func Lift(vals ...interface{}) []Value {
	values := make([]Value, len(vals))
	for i, v := range vals {
		values[i] = ValueOf(v)
	}
	return values
}

// Float64s casts values positionally to floats. Cells that do not hold a
// number become NaN.
func Float64s(values []Value) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		if v.IsNumber() {
			out[i] = v.Num()
		} else {
			out[i] = math.NaN()
		}
	}
	return out
}

// Strings renders each value the way Value.String does, including the null
// printer for absent cells.
func Strings(values []Value) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = v.String()
	}
	return out
}
