package motley

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/d4l3k/messagediff"
)

func TestPercentile(t *testing.T) {
	type args struct {
		p      float64
		sorted []float64
	}
	tests := []struct {
		name string
		args args
		want float64
	}{
		{"median of even count interpolates", args{0.5, []float64{1, 2, 3, 4}}, 2.5},
		{"exact position", args{0.25, []float64{10, 20, 30, 40, 50}}, 20},
		{"interpolated position", args{0.75, []float64{1, 2, 3, 4}}, 3.25},
		{"single element", args{0.99, []float64{42}}, 42},
		{"p clamped low", args{-5, []float64{1, 2, 3}}, 1},
		{"p clamped high", args{2, []float64{1, 2, 3}}, 3},
		{"p zero", args{0, []float64{7, 8}}, 7},
		{"p one", args{1, []float64{7, 8}}, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Percentile(tt.args.p, tt.args.sorted); got != tt.want {
				t.Errorf("Percentile() = %v, want %v", got, tt.want)
			}
		})
	}
	t.Run("empty slice", func(t *testing.T) {
		if got := Percentile(0.5, nil); !math.IsNaN(got) {
			t.Errorf("Percentile() = %v, want NaN", got)
		}
	})
}

func TestDataFrame_Sum(t *testing.T) {
	df := New(
		Column{Name: "mixed", Values: []Value{Num(1), Str("x"), Bool(true), Absent, Num(2)}},
		Column{Name: "words", Values: []Value{Str("a"), Str("b"), Str("c"), Str("d"), Str("e")}},
	)
	got, err := df.Sum("mixed")
	if err != nil {
		t.Fatalf("DataFrame.Sum() err = %v, want nil", err)
	}
	if got != 3 {
		t.Errorf("DataFrame.Sum() = %v, want 3", got)
	}
	// a column with no numeric cells sums to zero
	if got, _ := df.Sum("words"); got != 0 {
		t.Errorf("DataFrame.Sum() = %v, want 0", got)
	}
	if _, err := df.Sum("corge"); !errors.Is(err, ErrColumnNotFound) {
		t.Errorf("DataFrame.Sum() err = %v, want ErrColumnNotFound", err)
	}
}

func TestDataFrame_Mean(t *testing.T) {
	df := New(
		Column{Name: "mixed", Values: []Value{Num(1), Str("x"), Bool(true), Absent, Num(2)}},
		Column{Name: "words", Values: []Value{Str("a"), Str("b"), Str("c"), Str("d"), Str("e")}},
	)
	got, err := df.Mean("mixed")
	if err != nil {
		t.Fatalf("DataFrame.Mean() err = %v, want nil", err)
	}
	if got != 1.5 {
		t.Errorf("DataFrame.Mean() = %v, want 1.5", got)
	}
	if got, _ := df.Mean("words"); !math.IsNaN(got) {
		t.Errorf("DataFrame.Mean() = %v, want NaN", got)
	}
	if _, err := df.Mean("corge"); !errors.Is(err, ErrColumnNotFound) {
		t.Errorf("DataFrame.Mean() err = %v, want ErrColumnNotFound", err)
	}
}

func TestDataFrame_Std(t *testing.T) {
	df := New(
		Column{Name: "n", Values: []Value{Num(2), Num(4), Num(4), Num(4), Num(5), Num(5), Num(7), Num(9)}},
		Column{Name: "words", Values: []Value{Str("a"), Str("a"), Str("a"), Str("a"), Str("a"), Str("a"), Str("a"), Str("a")}},
	)
	got, err := df.Std("n")
	if err != nil {
		t.Fatalf("DataFrame.Std() err = %v, want nil", err)
	}
	// population divisor: mean 5, squared deviations sum 32, 32/8 = 4
	if got != 2 {
		t.Errorf("DataFrame.Std() = %v, want 2", got)
	}
	if got, _ := df.Std("words"); !math.IsNaN(got) {
		t.Errorf("DataFrame.Std() = %v, want NaN", got)
	}
}

func TestDataFrame_MinMax(t *testing.T) {
	df := New(
		Column{Name: "n", Values: []Value{Num(3), Absent, Num(-1), Str("x"), Num(7)}},
		Column{Name: "words", Values: []Value{Str("a"), Str("b"), Str("c"), Str("d"), Str("e")}},
	)
	if got, _ := df.Min("n"); got != -1 {
		t.Errorf("DataFrame.Min() = %v, want -1", got)
	}
	if got, _ := df.Max("n"); got != 7 {
		t.Errorf("DataFrame.Max() = %v, want 7", got)
	}
	if _, err := df.Min("words"); !errors.Is(err, ErrEmptyNumericColumn) {
		t.Errorf("DataFrame.Min() err = %v, want ErrEmptyNumericColumn", err)
	}
	if _, err := df.Max("words"); !errors.Is(err, ErrEmptyNumericColumn) {
		t.Errorf("DataFrame.Max() err = %v, want ErrEmptyNumericColumn", err)
	}
	if _, err := df.Min("corge"); !errors.Is(err, ErrColumnNotFound) {
		t.Errorf("DataFrame.Min() err = %v, want ErrColumnNotFound", err)
	}
}

func TestDataFrame_Median(t *testing.T) {
	type args struct {
		values []Value
	}
	tests := []struct {
		name string
		args args
		want float64
	}{
		{"odd count", args{[]Value{Num(3), Num(1), Num(2)}}, 2},
		{"even count interpolates", args{[]Value{Num(4), Num(1), Num(3), Num(2)}}, 2.5},
		{"non-numeric cells excluded", args{[]Value{Num(10), Str("x"), Absent, Num(20)}}, 15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			df := New(Column{Name: "n", Values: tt.args.values})
			got, err := df.Median("n")
			if err != nil {
				t.Fatalf("DataFrame.Median() err = %v, want nil", err)
			}
			if got != tt.want {
				t.Errorf("DataFrame.Median() = %v, want %v", got, tt.want)
			}
		})
	}
	t.Run("fail: no numeric cells", func(t *testing.T) {
		df := New(Column{Name: "n", Values: []Value{Str("x"), Absent}})
		if _, err := df.Median("n"); !errors.Is(err, ErrEmptyNumericColumn) {
			t.Errorf("DataFrame.Median() err = %v, want ErrEmptyNumericColumn", err)
		}
	})
}

func TestDataFrame_Quartiles(t *testing.T) {
	df := New(Column{Name: "n", Values: []Value{Num(1), Num(2), Num(3), Num(4)}})
	got, err := df.Quartiles("n")
	if err != nil {
		t.Fatalf("DataFrame.Quartiles() err = %v, want nil", err)
	}
	want := Quartiles{Q1: 1.75, Median: 2.5, Q3: 3.25}
	if got != want {
		t.Errorf("DataFrame.Quartiles() = %v, want %v", got, want)
	}
	t.Run("row order does not matter", func(t *testing.T) {
		asc := New(Column{Name: "n", Values: []Value{Num(1), Num(5), Num(9), Num(13), Num(20)}})
		desc := New(Column{Name: "n", Values: []Value{Num(20), Num(13), Num(9), Num(5), Num(1)}})
		a, _ := asc.Quartiles("n")
		b, _ := desc.Quartiles("n")
		if a != b {
			t.Errorf("DataFrame.Quartiles() depends on row order: %v vs %v", a, b)
		}
		if a != (Quartiles{Q1: 5, Median: 9, Q3: 13}) {
			t.Errorf("DataFrame.Quartiles() = %v, want {5 9 13}", a)
		}
	})
	t.Run("fail: no numeric cells", func(t *testing.T) {
		df := New(Column{Name: "n", Values: []Value{Absent}})
		if _, err := df.Quartiles("n"); !errors.Is(err, ErrEmptyNumericColumn) {
			t.Errorf("DataFrame.Quartiles() err = %v, want ErrEmptyNumericColumn", err)
		}
	})
}

func TestDataFrame_Var(t *testing.T) {
	df := New(
		Column{Name: "n", Values: []Value{Num(2), Num(4), Num(4), Num(4), Num(5), Num(5), Num(7), Num(9)}},
		Column{Name: "single", Values: []Value{Num(5), Absent, Absent, Absent, Absent, Absent, Absent, Absent}},
		Column{Name: "words", Values: []Value{Str("a"), Str("b"), Str("c"), Str("d"), Str("e"), Str("f"), Str("g"), Str("h")}},
	)
	got := df.Var()
	if len(got) != 2 {
		t.Fatalf("DataFrame.Var() covered %d columns, want 2", len(got))
	}
	// sample divisor: squared deviations sum 32, 32/7
	if want := 32.0 / 7.0; math.Abs(got["n"]-want) > 1e-12 {
		t.Errorf("DataFrame.Var()[n] = %v, want %v", got["n"], want)
	}
	if !math.IsNaN(got["single"]) {
		t.Errorf("DataFrame.Var()[single] = %v, want NaN", got["single"])
	}
	if _, ok := got["words"]; ok {
		t.Errorf("DataFrame.Var() covered a non-numeric column")
	}

	t.Run("sample and population divisors relate by n/(n-1)", func(t *testing.T) {
		std, err := df.Std("n")
		if err != nil {
			t.Fatalf("DataFrame.Std() err = %v, want nil", err)
		}
		n := 8.0
		if want := std * std * n / (n - 1); math.Abs(df.Var()["n"]-want) > 1e-9 {
			t.Errorf("DataFrame.Var()[n] = %v, want %v", df.Var()["n"], want)
		}
	})
}

func TestDataFrame_Mode(t *testing.T) {
	type args struct {
		values []Value
	}
	tests := []struct {
		name string
		args args
		want Value
	}{
		{"clear winner", args{[]Value{Num(1), Num(2), Num(2), Num(2), Num(9)}}, Num(2)},
		{"tie resolves to the largest value", args{[]Value{Num(1), Num(1), Num(3), Num(3), Num(2)}}, Num(3)},
		{"flat distribution has no mode", args{[]Value{Num(1), Num(1), Num(2), Num(2)}}, Absent},
		{"all distinct has no mode", args{[]Value{Num(3), Num(1), Num(2)}}, Absent},
		{"one repeated value is a real mode", args{[]Value{Num(5), Num(5)}}, Num(5)},
		{"single occurrence has no mode", args{[]Value{Num(5)}}, Absent},
		{"minority cells of other kinds excluded", args{[]Value{Num(1), Num(1), Num(2), Str("z"), Absent}}, Num(1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			df := New(Column{Name: "n", Values: tt.args.values})
			got, err := df.Mode("n")
			if err != nil {
				t.Fatalf("DataFrame.Mode() err = %v, want nil", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("DataFrame.Mode() = %v, want %v", got, tt.want)
			}
		})
	}
	t.Run("fail: non-numeric dtype", func(t *testing.T) {
		df := New(Column{Name: "w", Values: []Value{Str("a"), Str("a"), Num(1)}})
		if _, err := df.Mode("w"); !errors.Is(err, ErrNonNumericColumn) {
			t.Errorf("DataFrame.Mode() err = %v, want ErrNonNumericColumn", err)
		}
	})
	t.Run("fail: unknown column", func(t *testing.T) {
		df := New(Column{Name: "n", Values: []Value{Num(1)}})
		if _, err := df.Mode("corge"); !errors.Is(err, ErrColumnNotFound) {
			t.Errorf("DataFrame.Mode() err = %v, want ErrColumnNotFound", err)
		}
	})
}

// monthlyIncome returns 30 rows: 25 distinct salaries in scrambled order with
// five absent cells mixed in.
func monthlyIncome() *DataFrame {
	return New(Column{Name: "income", Values: []Value{
		Num(62000), Num(40200), Num(87000), Absent, Num(49600),
		Num(91000), Num(58101), Num(68400), Num(40000), Absent,
		Num(74000), Num(53200), Num(61200), Num(87900), Num(48099),
		Absent, Num(66600), Num(50000), Num(83900), Num(65900),
		Num(48600), Absent, Num(76500), Num(60900), Num(69500),
		Num(57500), Num(81200), Absent, Num(65100), Num(40600),
	}}).SetName("salaries")
}

func TestDataFrame_MonthlyIncome(t *testing.T) {
	df := monthlyIncome()

	if got, _ := df.Count("income"); got != 25 {
		t.Errorf("DataFrame.Count() = %v, want 25", got)
	}
	if got, _ := df.Sum("income"); got != 1587000 {
		t.Errorf("DataFrame.Sum() = %v, want 1587000", got)
	}
	if got, _ := df.Mean("income"); got != 63480 {
		t.Errorf("DataFrame.Mean() = %v, want 63480", got)
	}
	if got, _ := df.Std("income"); math.Abs(got-15006.9850429725) > 1e-6 {
		t.Errorf("DataFrame.Std() = %v, want 15006.9850429725", got)
	}
	if got, _ := df.Median("income"); got != 62000 {
		t.Errorf("DataFrame.Median() = %v, want 62000", got)
	}
	got, err := df.Quartiles("income")
	if err != nil {
		t.Fatalf("DataFrame.Quartiles() err = %v, want nil", err)
	}
	if want := (Quartiles{Q1: 50000, Median: 62000, Q3: 74000}); got != want {
		t.Errorf("DataFrame.Quartiles() = %v, want %v", got, want)
	}
	if got, _ := df.Min("income"); got != 40000 {
		t.Errorf("DataFrame.Min() = %v, want 40000", got)
	}
	if got, _ := df.Max("income"); got != 91000 {
		t.Errorf("DataFrame.Max() = %v, want 91000", got)
	}
	if got := df.Var()["income"]; math.Abs(got-234593333.416667) > 1e-3 {
		t.Errorf("DataFrame.Var() = %v, want 234593333.416667", got)
	}
	// every salary is distinct, so the distribution is flat
	if got, _ := df.Mode("income"); !got.IsAbsent() {
		t.Errorf("DataFrame.Mode() = %v, want Absent", got)
	}
}

func TestDataFrame_Describe(t *testing.T) {
	df := monthlyIncome()
	err := df.Insert("team", []Value{
		Str("a"), Str("b"), Str("a"), Str("b"), Str("a"), Str("b"),
		Str("a"), Str("b"), Str("a"), Str("b"), Str("a"), Str("b"),
		Str("a"), Str("b"), Str("a"), Str("b"), Str("a"), Str("b"),
		Str("a"), Str("b"), Str("a"), Str("b"), Str("a"), Str("b"),
		Str("a"), Str("b"), Str("a"), Str("b"), Str("a"), Str("b"),
	})
	if err != nil {
		t.Fatalf("DataFrame.Insert() err = %v, want nil", err)
	}
	got := df.Describe()
	want := &DataFrame{
		columns: []*column{
			{name: "stat", values: []Value{
				Str("count"), Str("mean"), Str("std"), Str("min"),
				Str("25%"), Str("50%"), Str("75%"), Str("max")}},
			{name: "income", values: []Value{
				Num(25), Num(63480), Num(15006.985043), Num(40000),
				Num(50000), Num(62000), Num(74000), Num(91000)}}},
		index: []int{0, 1, 2, 3, 4, 5, 6, 7},
		name:  "salaries",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DataFrame.Describe() = %v, want %v", got, want)
		diff, _ := messagediff.PrettyDiff(got, want)
		t.Errorf("%s", diff)
	}
}
