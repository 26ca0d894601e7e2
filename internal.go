package motley

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

func (df *DataFrame) resetWithError(err error) {
	df.columns = nil
	df.index = nil
	df.name = ""
	df.err = err
}

func dataFrameWithError(err error) *DataFrame {
	return &DataFrame{
		err: err,
	}
}

func groupedDataFrameWithError(err error) *GroupedDataFrame {
	return &GroupedDataFrame{
		err: err,
	}
}

func makeIntRange(min, max int) []int {
	out := make([]int, max-min)
	for i := range out {
		out[i] = min + i
	}
	return out
}

func newColumn(name string, values []Value) *column {
	vals := make([]Value, len(values))
	copy(vals, values)
	return &column{name: name, values: vals}
}

// makeColumns validates the input columns for unique names and equal lengths
// and copies their value slices.
func makeColumns(cols []Column) ([]*column, int, error) {
	names := make(map[string]bool, len(cols))
	var rows int
	out := make([]*column, len(cols))
	for j, col := range cols {
		if names[col.Name] {
			return nil, 0, fmt.Errorf("column %q: %w", col.Name, ErrDuplicateColumn)
		}
		names[col.Name] = true
		if j == 0 {
			rows = len(col.Values)
		} else if len(col.Values) != rows {
			return nil, 0, fmt.Errorf("column %q has %d values, want %d: %w",
				col.Name, len(col.Values), rows, ErrLengthMismatch)
		}
		out[j] = newColumn(col.Name, col.Values)
	}
	return out, rows, nil
}

// copy duplicates the column and its value slice.
// Structured payloads remain shared; use deepCopy to sever them.
func (c *column) copy() *column {
	values := make([]Value, len(c.values))
	copy(values, c.values)
	return &column{name: c.name, values: values}
}

func (c *column) deepCopy() *column {
	values := make([]Value, len(c.values))
	for i := range c.values {
		values[i] = c.values[i].clone()
	}
	return &column{name: c.name, values: values}
}

// subset returns a new column containing the cells at positions, in order.
// Positions may repeat or skip; they must be in range.
func (c *column) subset(positions []int) *column {
	values := make([]Value, len(positions))
	for i, p := range positions {
		values[i] = c.values[p]
	}
	return &column{name: c.name, values: values}
}

// valid returns the positions of the non-absent cells.
func (c *column) valid() []int {
	index := make([]int, 0, len(c.values))
	for i, v := range c.values {
		if !v.IsAbsent() {
			index = append(index, i)
		}
	}
	return index
}

// null returns the positions of the absent cells.
func (c *column) null() []int {
	index := make([]int, 0, len(c.values))
	for i, v := range c.values {
		if v.IsAbsent() {
			index = append(index, i)
		}
	}
	return index
}

// dtype returns the kind held by the majority of the non-absent cells.
// Ties resolve to the kind that appears first in row order.
// A column with no non-absent cells has dtype KindAbsent.
func (c *column) dtype() Kind {
	counts := make(map[Kind]int)
	var firstSeen []Kind
	for _, v := range c.values {
		if v.IsAbsent() {
			continue
		}
		if counts[v.kind] == 0 {
			firstSeen = append(firstSeen, v.kind)
		}
		counts[v.kind]++
	}
	if len(firstSeen) == 0 {
		return KindAbsent
	}
	dominant := firstSeen[0]
	for _, k := range firstSeen[1:] {
		if counts[k] > counts[dominant] {
			dominant = k
		}
	}
	return dominant
}

// numericValues returns the float64 contents of the KindNumber cells, in row
// order. Cells of any other kind, including absent cells, are skipped.
func (c *column) numericValues() []float64 {
	vals := make([]float64, 0, len(c.values))
	for _, v := range c.values {
		if v.kind == KindNumber {
			vals = append(vals, v.num)
		}
	}
	return vals
}

// numericCells returns the KindNumber cells, in row order.
func (c *column) numericCells() []Value {
	vals := make([]Value, 0, len(c.values))
	for _, v := range c.values {
		if v.kind == KindNumber {
			vals = append(vals, v)
		}
	}
	return vals
}

// distinct buckets the cells of a column by equality, preserving
// first-occurrence order. It returns the distinct values and, for each, the
// positions holding it. Cells are bucketed under an xxhash digest of their
// canonical encoding and confirmed by deep equality, so structured payloads
// that render alike do not collide.
func (c *column) distinct() ([]Value, [][]int) {
	buckets := make(map[uint64][]int)
	var values []Value
	var positions [][]int
	for i, v := range c.values {
		digest := xxhash.Sum64String(v.canonicalKey())
		group := -1
		for _, cand := range buckets[digest] {
			if values[cand].Equal(v) {
				group = cand
				break
			}
		}
		if group == -1 {
			group = len(values)
			values = append(values, v)
			positions = append(positions, nil)
			buckets[digest] = append(buckets[digest], group)
		}
		positions[group] = append(positions[group], i)
	}
	return values, positions
}

// canonicalKey renders a cell for hashing and cross-kind ordering.
// The kind prefix keeps different kinds with the same rendering apart.
// Equal cells always produce the same key; the converse does not hold for
// structured payloads, so callers must confirm candidates with Equal.
func (v Value) canonicalKey() string {
	switch v.kind {
	case KindNumber:
		return "n:" + strconv.FormatFloat(v.num, 'g', -1, 64)
	case KindText:
		return "t:" + v.str
	case KindBool:
		return "b:" + strconv.FormatBool(v.b)
	case KindStruct:
		return "s:" + fmt.Sprintf("%v", v.obj)
	default:
		return "a:"
	}
}

// kindRank orders cells of different kinds relative to one another in sorts.
func kindRank(k Kind) int {
	switch k {
	case KindBool:
		return 0
	case KindNumber:
		return 1
	case KindText:
		return 2
	case KindStruct:
		return 3
	default:
		return 4
	}
}

// compareValues orders two non-absent cells: negative when a sorts before b,
// positive when after, zero when they tie. Cells of different kinds order by
// kindRank; structured payloads order by their canonical encoding.
func compareValues(a, b Value) int {
	if a.kind != b.kind {
		return kindRank(a.kind) - kindRank(b.kind)
	}
	switch a.kind {
	case KindNumber:
		switch {
		case a.num < b.num:
			return -1
		case a.num > b.num:
			return 1
		}
		return 0
	case KindText:
		return strings.Compare(a.str, b.str)
	case KindBool:
		switch {
		case !a.b && b.b:
			return -1
		case a.b && !b.b:
			return 1
		}
		return 0
	case KindStruct:
		return strings.Compare(a.canonicalKey(), b.canonicalKey())
	}
	return 0
}

// sortedPositions returns the row positions that order the column's cells.
// The sort is stable. Absent cells and NaN numbers always move to the end,
// regardless of direction, preserving their relative order.
func (c *column) sortedPositions(ascending bool) []int {
	present := make([]int, 0, len(c.values))
	var trailing []int
	for p := range c.values {
		v := c.values[p]
		if v.IsAbsent() || (v.kind == KindNumber && math.IsNaN(v.num)) {
			trailing = append(trailing, p)
		} else {
			present = append(present, p)
		}
	}
	sort.SliceStable(present, func(i, j int) bool {
		cmp := compareValues(c.values[present[i]], c.values[present[j]])
		if ascending {
			return cmp < 0
		}
		return cmp > 0
	})
	return append(present, trailing...)
}

// columnIndex returns the position of the named column.
func (df *DataFrame) columnIndex(name string) (int, error) {
	for j := range df.columns {
		if df.columns[j].name == name {
			return j, nil
		}
	}
	return 0, fmt.Errorf("column %q: %w", name, ErrColumnNotFound)
}

func (df *DataFrame) columnNames() []string {
	names := make([]string, len(df.columns))
	for j := range df.columns {
		names[j] = df.columns[j].name
	}
	return names
}

// positionOfLabel returns the position of the first row carrying label.
func (df *DataFrame) positionOfLabel(label int) (int, error) {
	for i, l := range df.index {
		if l == label {
			return i, nil
		}
	}
	return 0, fmt.Errorf("label %d: %w", label, ErrRowNotFound)
}

// validRows returns the positions of rows with no absent cell in any column.
func (df *DataFrame) validRows() []int {
	out := make([]int, 0, df.Len())
	for i := 0; i < df.Len(); i++ {
		keep := true
		for _, c := range df.columns {
			if c.values[i].IsAbsent() {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, i)
		}
	}
	return out
}

// subsetRows reduces the DataFrame to the rows at positions, in order,
// carrying their labels along.
func (df *DataFrame) subsetRows(positions []int) {
	for j := range df.columns {
		df.columns[j] = df.columns[j].subset(positions)
	}
	index := make([]int, len(positions))
	for i, p := range positions {
		index[i] = df.index[p]
	}
	df.index = index
}

// shallowCopy duplicates the frame and its slices. Structured payloads remain
// shared with the original; Copy severs them.
func (df *DataFrame) shallowCopy() *DataFrame {
	columns := make([]*column, len(df.columns))
	for j := range df.columns {
		columns[j] = df.columns[j].copy()
	}
	index := make([]int, len(df.index))
	copy(index, df.index)
	return &DataFrame{
		columns: columns,
		index:   index,
		name:    df.name,
		err:     df.err,
	}
}

// rowKey encodes one full row as a canonical string for hashing.
// 0x1f separates cells so adjacent encodings cannot merge.
func (df *DataFrame) rowKey(pos int) string {
	var sb strings.Builder
	for j := range df.columns {
		sb.WriteString(df.columns[j].values[pos].canonicalKey())
		sb.WriteByte(0x1f)
	}
	return sb.String()
}

func (df *DataFrame) rowHash(pos int) uint64 {
	return xxhash.Sum64String(df.rowKey(pos))
}

// equalRows reports whether two rows hold equal cells in every column.
func (df *DataFrame) equalRows(i, j int) bool {
	for _, c := range df.columns {
		if !c.values[i].Equal(c.values[j]) {
			return false
		}
	}
	return true
}

// duplicateRows returns the positions of rows that repeat an earlier row.
// Rows are bucketed by hash and confirmed by deep equality.
func (df *DataFrame) duplicateRows() []int {
	buckets := make(map[uint64][]int)
	var dups []int
	for i := 0; i < df.Len(); i++ {
		digest := df.rowHash(i)
		seen := false
		for _, cand := range buckets[digest] {
			if df.equalRows(i, cand) {
				seen = true
				break
			}
		}
		if seen {
			dups = append(dups, i)
		} else {
			buckets[digest] = append(buckets[digest], i)
		}
	}
	return dups
}
