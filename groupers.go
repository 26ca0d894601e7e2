package motley

import (
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Err returns the underlying error, if any.
func (g *GroupedDataFrame) Err() error {
	return g.err
}

func (g *GroupedDataFrame) String() string {
	groups := make([]string, len(g.orderedKeys))
	for i, k := range g.orderedKeys {
		groups[i] = k.String()
	}
	return "Groups: " + strings.Join(groups, ",")
}

// Len returns the number of groups.
func (g *GroupedDataFrame) Len() int {
	return len(g.rowIndices)
}

// ListGroups returns the group keys, in order of first occurrence.
// Keys may be of any kind, including Absent.
func (g *GroupedDataFrame) ListGroups() []Value {
	out := make([]Value, len(g.orderedKeys))
	copy(out, g.orderedKeys)
	return out
}

// GetGroup returns the rows whose grouping cell equals group, preserving
// their original order and labels. A value that matches no group is an
// InvalidArgument error.
func (g *GroupedDataFrame) GetGroup(group Value) *DataFrame {
	if g.err != nil {
		return dataFrameWithError(fmt.Errorf("GetGroup(): %w", g.err))
	}
	for m, key := range g.orderedKeys {
		if key.Equal(group) {
			return g.df.Subset(g.rowIndices[m])
		}
	}
	return dataFrameWithError(fmt.Errorf("GetGroup(): group (%v) not in groups: %w", group, ErrInvalidArgument))
}

// IterGroups returns the sub-DataFrame of every group, in group order.
func (g *GroupedDataFrame) IterGroups() []*DataFrame {
	ret := make([]*DataFrame, len(g.rowIndices))
	for m, key := range g.orderedKeys {
		ret[m] = g.GetGroup(key)
	}
	return ret
}

// HavingCount keeps only the groups whose row count passes fn.
func (g *GroupedDataFrame) HavingCount(fn func(n int) bool) *GroupedDataFrame {
	if g.err != nil {
		return g
	}
	if fn == nil {
		return groupedDataFrameWithError(fmt.Errorf("HavingCount(): fn cannot be nil: %w", ErrInvalidArgument))
	}
	retKeys := make([]Value, 0, len(g.orderedKeys))
	retIndices := make([][]int, 0, len(g.rowIndices))
	for m, rowIndex := range g.rowIndices {
		if fn(len(rowIndex)) {
			retKeys = append(retKeys, g.orderedKeys[m])
			retIndices = append(retIndices, rowIndex)
		}
	}
	return &GroupedDataFrame{
		orderedKeys: retKeys,
		rowIndices:  retIndices,
		column:      g.column,
		df:          g.df,
	}
}

// reduce computes one cell per group for each of the named columns (default:
// every column except the grouping column). The result has one row per group:
// the group keys under the grouping column's name, then one reduced column
// per input column. The DataFrame is named after the reduction.
func (g *GroupedDataFrame) reduce(op string, columns []string, fn func(cells []Value) Value) *DataFrame {
	if g.err != nil {
		return dataFrameWithError(fmt.Errorf("%s: %w", op, g.err))
	}
	if len(columns) == 0 {
		for _, name := range g.df.columnNames() {
			if name != g.column {
				columns = append(columns, name)
			}
		}
	}
	indexes := make([]int, len(columns))
	for k, name := range columns {
		j, err := g.df.columnIndex(name)
		if err != nil {
			return dataFrameWithError(fmt.Errorf("%s: %w", op, err))
		}
		indexes[k] = j
	}
	keys := make([]Value, len(g.orderedKeys))
	copy(keys, g.orderedKeys)
	cols := make([]Column, 0, len(columns)+1)
	cols = append(cols, Column{Name: g.column, Values: keys})
	for k, j := range indexes {
		c := g.df.columns[j]
		values := make([]Value, len(g.rowIndices))
		for m, rowIndex := range g.rowIndices {
			cells := make([]Value, len(rowIndex))
			for i, p := range rowIndex {
				cells[i] = c.values[p]
			}
			values[m] = fn(cells)
		}
		cols = append(cols, Column{Name: columns[k], Values: values})
	}
	ret := New(cols...)
	ret.name = strings.ToLower(strings.TrimSuffix(op, "()"))
	return ret
}

// numericReduce adapts a reduction over a group's numeric subsequence into a
// cell-level reduction. Groups for which ok is false come back Absent.
func numericReduce(fn func(vals []float64) (float64, bool)) func(cells []Value) Value {
	return func(cells []Value) Value {
		vals := make([]float64, 0, len(cells))
		for _, v := range cells {
			if v.IsNumber() {
				vals = append(vals, v.Num())
			}
		}
		out, ok := fn(vals)
		if !ok {
			return Absent
		}
		return Num(out)
	}
}

// Sum adds each group's numeric cells in the named columns (default: all
// columns but the grouping column).
// Returns a new DataFrame with one row per group.
func (g *GroupedDataFrame) Sum(columns ...string) *DataFrame {
	return g.reduce("Sum()", columns, numericReduce(func(vals []float64) (float64, bool) {
		return floats.Sum(vals), true
	}))
}

// Mean averages each group's numeric cells in the named columns. Groups with
// no numeric cells come back Absent.
// Returns a new DataFrame with one row per group.
func (g *GroupedDataFrame) Mean(columns ...string) *DataFrame {
	return g.reduce("Mean()", columns, numericReduce(func(vals []float64) (float64, bool) {
		if len(vals) == 0 {
			return 0, false
		}
		return stat.Mean(vals, nil), true
	}))
}

// Median returns each group's 50th percentile in the named columns. Groups
// with no numeric cells come back Absent.
// Returns a new DataFrame with one row per group.
func (g *GroupedDataFrame) Median(columns ...string) *DataFrame {
	return g.reduce("Median()", columns, numericReduce(func(vals []float64) (float64, bool) {
		if len(vals) == 0 {
			return 0, false
		}
		sort.Float64s(vals)
		return Percentile(0.5, vals), true
	}))
}

// Std returns each group's population standard deviation in the named
// columns. Groups with no numeric cells come back Absent.
// Returns a new DataFrame with one row per group.
func (g *GroupedDataFrame) Std(columns ...string) *DataFrame {
	return g.reduce("Std()", columns, numericReduce(func(vals []float64) (float64, bool) {
		if len(vals) == 0 {
			return 0, false
		}
		return stat.PopStdDev(vals, nil), true
	}))
}

// Min returns each group's smallest numeric cell in the named columns.
// Groups with no numeric cells come back Absent.
// Returns a new DataFrame with one row per group.
func (g *GroupedDataFrame) Min(columns ...string) *DataFrame {
	return g.reduce("Min()", columns, numericReduce(func(vals []float64) (float64, bool) {
		if len(vals) == 0 {
			return 0, false
		}
		return floats.Min(vals), true
	}))
}

// Max returns each group's largest numeric cell in the named columns. Groups
// with no numeric cells come back Absent.
// Returns a new DataFrame with one row per group.
func (g *GroupedDataFrame) Max(columns ...string) *DataFrame {
	return g.reduce("Max()", columns, numericReduce(func(vals []float64) (float64, bool) {
		if len(vals) == 0 {
			return 0, false
		}
		return floats.Max(vals), true
	}))
}

// Count tallies each group's non-absent cells, of any kind, in the named
// columns.
// Returns a new DataFrame with one row per group.
func (g *GroupedDataFrame) Count(columns ...string) *DataFrame {
	return g.reduce("Count()", columns, func(cells []Value) Value {
		n := 0
		for _, v := range cells {
			if !v.IsAbsent() {
				n++
			}
		}
		return Num(float64(n))
	})
}

// Nth returns each group's cell at position n in the named columns. A
// negative n counts from the end of the group; out-of-range positions come
// back Absent.
// Returns a new DataFrame with one row per group.
func (g *GroupedDataFrame) Nth(n int, columns ...string) *DataFrame {
	return g.reduce("Nth()", columns, func(cells []Value) Value {
		pos := n
		if pos < 0 {
			pos = len(cells) + pos
		}
		if pos < 0 || pos >= len(cells) {
			return Absent
		}
		return cells[pos]
	})
}

// First returns each group's first cell in the named columns.
// Returns a new DataFrame with one row per group.
func (g *GroupedDataFrame) First(columns ...string) *DataFrame {
	df := g.Nth(0, columns...)
	df.name = "first"
	return df
}

// Last returns each group's last cell in the named columns.
// Returns a new DataFrame with one row per group.
func (g *GroupedDataFrame) Last(columns ...string) *DataFrame {
	df := g.Nth(-1, columns...)
	df.name = "last"
	return df
}
