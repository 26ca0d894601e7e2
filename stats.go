package motley

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// -- MATH
//
// Every aggregation operates on a column's numeric subsequence: the cells of
// kind KindNumber, in row order. Non-numeric and absent cells are silently
// excluded, never an error, because mixed-kind columns are a legal state.

// Percentile returns the value at the fraction p of the way through sorted,
// which must be in ascending order. The position p*(len-1) is linearly
// interpolated between its two neighbors when it falls between indexes.
// A single-element slice returns its element for any p. An empty slice is a
// precondition violation and returns NaN. p is clamped to [0, 1].
func Percentile(p float64, sorted []float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	if len(sorted) == 1 {
		return sorted[0]
	}
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	pos := p * float64(len(sorted)-1)
	lower := int(math.Floor(pos))
	upper := int(math.Ceil(pos))
	if lower == upper {
		return sorted[lower]
	}
	return sorted[lower] + (sorted[upper]-sorted[lower])*(pos-float64(lower))
}

func roundTo(decimals int, v float64) float64 {
	factor := math.Pow(10, float64(decimals))
	return math.Round(v*factor) / factor
}

// sortedNumeric returns the named column's numeric subsequence in ascending
// order. op labels any error with the calling method.
func (df *DataFrame) sortedNumeric(op, column string) ([]float64, error) {
	j, err := df.columnIndex(column)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	vals := df.columns[j].numericValues()
	if len(vals) == 0 {
		return nil, fmt.Errorf("%s: column %q: %w", op, column, ErrEmptyNumericColumn)
	}
	sort.Float64s(vals)
	return vals, nil
}

// Sum adds the numeric cells of the named column. A column with no numeric
// cells sums to 0.
func (df *DataFrame) Sum(column string) (float64, error) {
	j, err := df.columnIndex(column)
	if err != nil {
		return 0, fmt.Errorf("Sum(): %w", err)
	}
	return floats.Sum(df.columns[j].numericValues()), nil
}

// Mean averages the numeric cells of the named column. With no numeric
// cells, Mean returns NaN.
func (df *DataFrame) Mean(column string) (float64, error) {
	j, err := df.columnIndex(column)
	if err != nil {
		return 0, fmt.Errorf("Mean(): %w", err)
	}
	vals := df.columns[j].numericValues()
	if len(vals) == 0 {
		return math.NaN(), nil
	}
	return stat.Mean(vals, nil), nil
}

// Std returns the population standard deviation (dividing by n) of the
// numeric cells of the named column. With no numeric cells, Std returns NaN.
// Compare Var, which deliberately uses the sample divisor n-1.
func (df *DataFrame) Std(column string) (float64, error) {
	j, err := df.columnIndex(column)
	if err != nil {
		return 0, fmt.Errorf("Std(): %w", err)
	}
	vals := df.columns[j].numericValues()
	if len(vals) == 0 {
		return math.NaN(), nil
	}
	return stat.PopStdDev(vals, nil), nil
}

// Min returns the smallest numeric cell of the named column. A column with
// no numeric cells is an EmptyNumericColumn error.
func (df *DataFrame) Min(column string) (float64, error) {
	j, err := df.columnIndex(column)
	if err != nil {
		return 0, fmt.Errorf("Min(): %w", err)
	}
	vals := df.columns[j].numericValues()
	if len(vals) == 0 {
		return 0, fmt.Errorf("Min(): column %q: %w", column, ErrEmptyNumericColumn)
	}
	return floats.Min(vals), nil
}

// Max returns the largest numeric cell of the named column. A column with no
// numeric cells is an EmptyNumericColumn error.
func (df *DataFrame) Max(column string) (float64, error) {
	j, err := df.columnIndex(column)
	if err != nil {
		return 0, fmt.Errorf("Max(): %w", err)
	}
	vals := df.columns[j].numericValues()
	if len(vals) == 0 {
		return 0, fmt.Errorf("Max(): column %q: %w", column, ErrEmptyNumericColumn)
	}
	return floats.Max(vals), nil
}

// Median returns the 50th percentile of the numeric cells of the named
// column, interpolating between the two middle values when their count is
// even. A column with no numeric cells is an EmptyNumericColumn error.
func (df *DataFrame) Median(column string) (float64, error) {
	vals, err := df.sortedNumeric("Median()", column)
	if err != nil {
		return 0, err
	}
	return Percentile(0.5, vals), nil
}

// Quartiles returns the 25th, 50th, and 75th percentiles of the numeric
// cells of the named column, by linear interpolation over the sorted values.
// The result does not depend on the row order of the input. A column with no
// numeric cells is an EmptyNumericColumn error.
func (df *DataFrame) Quartiles(column string) (Quartiles, error) {
	vals, err := df.sortedNumeric("Quartiles()", column)
	if err != nil {
		return Quartiles{}, err
	}
	return Quartiles{
		Q1:     Percentile(0.25, vals),
		Median: Percentile(0.5, vals),
		Q3:     Percentile(0.75, vals),
	}, nil
}

// Var returns the sample variance (dividing by n-1) of every column whose
// dtype is numeric, keyed by column name. A numeric column with fewer than
// two numeric cells has variance NaN.
//
// Var uses the sample divisor while Std uses the population divisor; for the
// same column the two differ by exactly n/(n-1) inside the square root. The
// asymmetry is deliberate and kept stable for callers that depend on it.
func (df *DataFrame) Var() map[string]float64 {
	out := make(map[string]float64)
	for _, c := range df.columns {
		if c.dtype() != KindNumber {
			continue
		}
		vals := c.numericValues()
		if len(vals) < 2 {
			out[c.name] = math.NaN()
			continue
		}
		out[c.name] = stat.Variance(vals, nil)
	}
	return out
}

// Mode returns the most frequent numeric value of the named column. The
// column's dtype must be numeric, or Mode returns a NonNumericColumn error.
//
// If the frequency distribution is flat (every distinct value occurs equally
// often, and either more than one distinct value exists or nothing repeats),
// there is no meaningful mode and Mode returns Absent. When several values
// tie for the highest frequency, the largest tied value wins.
func (df *DataFrame) Mode(name string) (Value, error) {
	j, err := df.columnIndex(name)
	if err != nil {
		return Absent, fmt.Errorf("Mode(): %w", err)
	}
	c := df.columns[j]
	if kind := c.dtype(); kind != KindNumber {
		return Absent, fmt.Errorf("Mode(): column %q has dtype %v: %w", name, kind, ErrNonNumericColumn)
	}
	numeric := &column{values: c.numericCells()}
	values, positions := numeric.distinct()
	maxFreq, minFreq := len(positions[0]), len(positions[0])
	for k := range values {
		n := len(positions[k])
		if n > maxFreq {
			maxFreq = n
		}
		if n < minFreq {
			minFreq = n
		}
	}
	if maxFreq == minFreq && (len(values) > 1 || maxFreq == 1) {
		return Absent, nil
	}
	var best Value
	first := true
	for k := range values {
		if len(positions[k]) != maxFreq {
			continue
		}
		if first || values[k].num > best.num {
			best = values[k]
			first = false
		}
	}
	return best, nil
}

// Describe summarizes every numeric-dtype column with the statistics count,
// mean, std, min, 25%, 50%, 75%, and max, one row per statistic, each value
// rounded to 6 decimal places. count tallies the column's non-absent cells of
// any kind; the other statistics cover its numeric subsequence. The first
// column, named "stat", labels the rows. Non-numeric columns are omitted.
// Returns a new DataFrame.
func (df *DataFrame) Describe() *DataFrame {
	statLabels := []string{"count", "mean", "std", "min", "25%", "50%", "75%", "max"}
	labels := make([]Value, len(statLabels))
	for i, s := range statLabels {
		labels[i] = Str(s)
	}
	cols := []Column{{Name: "stat", Values: labels}}
	for _, c := range df.columns {
		if c.dtype() != KindNumber {
			continue
		}
		sorted := c.numericValues()
		sort.Float64s(sorted)
		summary := []float64{
			float64(len(c.valid())),
			stat.Mean(sorted, nil),
			stat.PopStdDev(sorted, nil),
			sorted[0],
			Percentile(0.25, sorted),
			Percentile(0.5, sorted),
			Percentile(0.75, sorted),
			sorted[len(sorted)-1],
		}
		values := make([]Value, len(summary))
		for i, v := range summary {
			values[i] = Num(roundTo(6, v))
		}
		cols = append(cols, Column{Name: c.name, Values: values})
	}
	ret := New(cols...)
	ret.name = df.name
	return ret
}
