package motley

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/hashicorp/go-multierror"
	"github.com/olekukonko/tablewriter"
)

// -- CONSTRUCTORS

// New creates a DataFrame from the supplied columns, in order.
// Column names must be unique and all columns must have the same number of
// values. Row labels default to 0, 1, ... n-1.
func New(cols ...Column) *DataFrame {
	columns, rows, err := makeColumns(cols)
	if err != nil {
		return dataFrameWithError(fmt.Errorf("New(): %w", err))
	}
	return &DataFrame{
		columns: columns,
		index:   makeIntRange(0, rows),
	}
}

// FromColumns creates a DataFrame from a mapping of column name to values.
// Go maps do not preserve insertion order, so column order defaults to the
// sorted names; pass order to control it explicitly. An order that does not
// cover the mapping's keys exactly is an InvalidArgument error.
func FromColumns(data map[string][]Value, order ...string) *DataFrame {
	names := order
	if len(names) == 0 {
		names = make([]string, 0, len(data))
		for name := range data {
			names = append(names, name)
		}
		sort.Strings(names)
	} else {
		if len(names) != len(data) {
			return dataFrameWithError(fmt.Errorf("FromColumns(): order has %d names, data has %d columns: %w",
				len(names), len(data), ErrInvalidArgument))
		}
		for _, name := range names {
			if _, ok := data[name]; !ok {
				return dataFrameWithError(fmt.Errorf("FromColumns(): order names column %q not present in data: %w",
					name, ErrInvalidArgument))
			}
		}
	}
	cols := make([]Column, len(names))
	for j, name := range names {
		cols[j] = Column{Name: name, Values: data[name]}
	}
	columns, rows, err := makeColumns(cols)
	if err != nil {
		return dataFrameWithError(fmt.Errorf("FromColumns(): %w", err))
	}
	return &DataFrame{
		columns: columns,
		index:   makeIntRange(0, rows),
	}
}

// FromRecords creates a DataFrame from row-oriented records, lifting each
// field through ValueOf. Fields missing from a record become Absent.
// When columns is omitted, the column set is the union of all record keys,
// sorted by name. Construction fails fast on malformed input: every nil
// record is reported in a single InvalidArgument error.
func FromRecords(records []map[string]interface{}, columns ...string) *DataFrame {
	var multierr *multierror.Error
	for i, record := range records {
		if record == nil {
			multierr = multierror.Append(multierr, fmt.Errorf("record %d is nil", i))
		}
	}
	if err := multierr.ErrorOrNil(); err != nil {
		return dataFrameWithError(fmt.Errorf("FromRecords(): %v: %w", err, ErrInvalidArgument))
	}
	names := columns
	if len(names) == 0 {
		seen := make(map[string]bool)
		for _, record := range records {
			for key := range record {
				if !seen[key] {
					seen[key] = true
					names = append(names, key)
				}
			}
		}
		sort.Strings(names)
	}
	cols := make([]Column, len(names))
	for j, name := range names {
		values := make([]Value, len(records))
		for i, record := range records {
			raw, ok := record[name]
			if !ok {
				values[i] = Absent
				continue
			}
			values[i] = ValueOf(raw)
		}
		cols[j] = Column{Name: name, Values: values}
	}
	df := New(cols...)
	if df.err != nil {
		return dataFrameWithError(fmt.Errorf("FromRecords(): %w", df.err))
	}
	return df
}

// Copy returns a new DataFrame with identical values as the original but no
// shared objects. Structured payloads are deep-copied too, so concurrent
// operations on the original and the copy are safe.
func (df *DataFrame) Copy() *DataFrame {
	columns := make([]*column, len(df.columns))
	for j := range df.columns {
		columns[j] = df.columns[j].deepCopy()
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

// -- GETTERS

// String prints the DataFrame in table form, with the number of rows
// constrained by optionMaxRows and the number of columns constrained by
// optionMaxColumns, which may be configured with SetOptionMaxRows(n) and
// SetOptionMaxColumns(n), respectively.
func (df *DataFrame) String() string {
	if df.err != nil {
		return fmt.Sprintf("Error: %v", df.err)
	}
	var data [][]string
	if df.Len() <= optionMaxRows {
		data = df.Records(true)
	} else {
		// truncate rows
		n := optionMaxRows / 2
		topHalf := df.Head(n).Records(true)
		bottomHalf := df.Tail(n).Records(true)[1:]
		filler := make([]string, df.NumColumns()+1)
		for k := range filler {
			filler[k] = "..."
		}
		data = append(
			append(topHalf, filler),
			bottomHalf...)
	}
	// truncate columns
	if df.NumColumns() > optionMaxColumns {
		n := optionMaxColumns / 2
		for i := range data {
			row := make([]string, 0, 2*n+2)
			row = append(row, data[i][0])
			row = append(row, data[i][1:n+1]...)
			row = append(row, "...")
			row = append(row, data[i][len(data[i])-n:]...)
			data[i] = row
		}
	}
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetHeader(data[0])
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.AppendBulk(data[1:])
	table.Render()
	ret := buf.String()
	if df.name != "" {
		ret += fmt.Sprintf("name: %v\n", df.name)
	}
	return ret
}

// Err returns the most recent error attached to the DataFrame, if any.
// Transforms on a DataFrame carrying an error preserve the error, so a chain
// of calls may be checked once at the end.
func (df *DataFrame) Err() error {
	return df.err
}

// Name returns the name of the DataFrame.
func (df *DataFrame) Name() string {
	return df.name
}

// SetName sets the name of the DataFrame and returns the entire DataFrame.
func (df *DataFrame) SetName(name string) *DataFrame {
	df.name = name
	return df
}

// Len returns the number of rows in the DataFrame.
func (df *DataFrame) Len() int {
	return len(df.index)
}

// NumColumns returns the number of columns in the DataFrame.
func (df *DataFrame) NumColumns() int {
	return len(df.columns)
}

// Shape returns the number of rows and the number of columns.
func (df *DataFrame) Shape() (rows, columns int) {
	return df.Len(), df.NumColumns()
}

// Columns returns the column names, in order.
func (df *DataFrame) Columns() []string {
	return df.columnNames()
}

// Index returns a copy of the row labels, in order.
func (df *DataFrame) Index() []int {
	index := make([]int, len(df.index))
	copy(index, df.index)
	return index
}

// DTypes returns the dtype of every column: the kind held by the majority of
// its non-absent cells, with ties resolved to the kind seen first in row
// order. A column of only absent cells reports KindAbsent. An empty DataFrame
// returns an empty map.
func (df *DataFrame) DTypes() map[string]Kind {
	out := make(map[string]Kind, len(df.columns))
	for _, c := range df.columns {
		out[c.name] = c.dtype()
	}
	return out
}

// Column returns a copy of the values in the named column, in row order.
func (df *DataFrame) Column(name string) ([]Value, error) {
	j, err := df.columnIndex(name)
	if err != nil {
		return nil, fmt.Errorf("Column(): %w", err)
	}
	values := make([]Value, df.Len())
	copy(values, df.columns[j].values)
	return values, nil
}

// At returns the Value at the row and column positions (not labels).
// An out-of-range position returns Absent.
func (df *DataFrame) At(row, col int) Value {
	if row < 0 || row >= df.Len() || col < 0 || col >= df.NumColumns() {
		return Absent
	}
	return df.columns[col].values[row]
}

// HasColumns returns an error if the DataFrame does not contain all of the
// named columns.
func (df *DataFrame) HasColumns(names ...string) error {
	for _, name := range names {
		if _, err := df.columnIndex(name); err != nil {
			return fmt.Errorf("HasColumns(): %w", err)
		}
	}
	return nil
}

// InPlace returns a DataFrameMutator, which contains many of the same methods
// as DataFrame but modifies the underlying DataFrame instead of returning a
// new one. If you do not need to preserve the original DataFrame, InPlace
// saves memory.
func (df *DataFrame) InPlace() *DataFrameMutator {
	return &DataFrameMutator{dataframe: df}
}

// -- ROW SUBSETTING

// Subset keeps only the rows at the supplied positions (not labels), in the
// order supplied. An out-of-range position is an InvalidArgument error.
// Returns a new DataFrame.
func (df *DataFrame) Subset(positions []int) *DataFrame {
	df = df.shallowCopy()
	df.InPlace().Subset(positions)
	return df
}

// Subset keeps only the rows at the supplied positions (not labels), in the
// order supplied.
// Modifies the underlying DataFrame in place.
func (df *DataFrameMutator) Subset(positions []int) {
	for _, p := range positions {
		if p < 0 || p >= df.dataframe.Len() {
			df.dataframe.resetWithError(fmt.Errorf("Subset(): position %d out of range [0, %d): %w",
				p, df.dataframe.Len(), ErrInvalidArgument))
			return
		}
	}
	df.dataframe.subsetRows(positions)
}

// Head returns the first n rows. If n exceeds the number of rows, the entire
// DataFrame is returned. A negative n is an InvalidArgument error.
// Returns a new DataFrame.
func (df *DataFrame) Head(n int) *DataFrame {
	df = df.shallowCopy()
	df.InPlace().Head(n)
	return df
}

// Head keeps only the first n rows.
// Modifies the underlying DataFrame in place.
func (df *DataFrameMutator) Head(n int) {
	if n < 0 {
		df.dataframe.resetWithError(fmt.Errorf("Head(): n cannot be negative: %w", ErrInvalidArgument))
		return
	}
	if n > df.dataframe.Len() {
		n = df.dataframe.Len()
	}
	df.dataframe.subsetRows(makeIntRange(0, n))
}

// Tail returns the last n rows, in their original order. If n exceeds the
// number of rows, the entire DataFrame is returned. A negative n is an
// InvalidArgument error.
// Returns a new DataFrame.
func (df *DataFrame) Tail(n int) *DataFrame {
	df = df.shallowCopy()
	df.InPlace().Tail(n)
	return df
}

// Tail keeps only the last n rows, in their original order.
// Modifies the underlying DataFrame in place.
func (df *DataFrameMutator) Tail(n int) {
	if n < 0 {
		df.dataframe.resetWithError(fmt.Errorf("Tail(): n cannot be negative: %w", ErrInvalidArgument))
		return
	}
	if n > df.dataframe.Len() {
		n = df.dataframe.Len()
	}
	df.dataframe.subsetRows(makeIntRange(df.dataframe.Len()-n, df.dataframe.Len()))
}

// Range returns the rows starting at first and ending immediately prior to
// last (left-inclusive, right-exclusive). Out-of-range bounds are an
// InvalidArgument error.
// Returns a new DataFrame.
func (df *DataFrame) Range(first, last int) *DataFrame {
	df = df.shallowCopy()
	df.InPlace().Range(first, last)
	return df
}

// Range keeps the rows between first (inclusive) and last (exclusive).
// Modifies the underlying DataFrame in place.
func (df *DataFrameMutator) Range(first, last int) {
	if first < 0 || last < 0 {
		df.dataframe.resetWithError(fmt.Errorf("Range(): first and last cannot be negative: %w", ErrInvalidArgument))
		return
	}
	if first > last {
		df.dataframe.resetWithError(fmt.Errorf("Range(): first (%d) cannot exceed last (%d): %w",
			first, last, ErrInvalidArgument))
		return
	}
	if last > df.dataframe.Len() {
		df.dataframe.resetWithError(fmt.Errorf("Range(): last (%d) out of range [0, %d]: %w",
			last, df.dataframe.Len(), ErrInvalidArgument))
		return
	}
	df.dataframe.subsetRows(makeIntRange(first, last))
}

// Filter returns the rows for which fn returns true, preserving their
// original order and labels. A nil fn is an InvalidArgument error.
// Returns a new DataFrame.
func (df *DataFrame) Filter(fn func(r Row) bool) *DataFrame {
	df = df.shallowCopy()
	df.InPlace().Filter(fn)
	return df
}

// Filter keeps only the rows for which fn returns true.
// Modifies the underlying DataFrame in place.
func (df *DataFrameMutator) Filter(fn func(r Row) bool) {
	if fn == nil {
		df.dataframe.resetWithError(fmt.Errorf("Filter(): fn cannot be nil: %w", ErrInvalidArgument))
		return
	}
	keep := make([]int, 0, df.dataframe.Len())
	for i := 0; i < df.dataframe.Len(); i++ {
		if fn(Row{df: df.dataframe, pos: i}) {
			keep = append(keep, i)
		}
	}
	df.dataframe.subsetRows(keep)
}

// DropNull returns only the rows with no absent cell in any column, keeping
// their original labels.
// Returns a new DataFrame.
func (df *DataFrame) DropNull() *DataFrame {
	df = df.shallowCopy()
	df.InPlace().DropNull()
	return df
}

// DropNull keeps only the rows with no absent cell in any column.
// Modifies the underlying DataFrame in place.
func (df *DataFrameMutator) DropNull() {
	df.dataframe.subsetRows(df.dataframe.validRows())
}

// FillNull replaces every absent cell in the named columns with v. If no
// columns are named, every column is filled. Naming a missing column is a
// ColumnNotFound error.
// Returns a new DataFrame.
func (df *DataFrame) FillNull(v Value, columns ...string) *DataFrame {
	df = df.shallowCopy()
	df.InPlace().FillNull(v, columns...)
	return df
}

// FillNull replaces every absent cell in the named columns with v.
// Modifies the underlying DataFrame in place.
func (df *DataFrameMutator) FillNull(v Value, columns ...string) {
	targets := columns
	if len(targets) == 0 {
		targets = df.dataframe.columnNames()
	}
	indexes := make([]int, len(targets))
	for k, name := range targets {
		j, err := df.dataframe.columnIndex(name)
		if err != nil {
			df.dataframe.resetWithError(fmt.Errorf("FillNull(): %w", err))
			return
		}
		indexes[k] = j
	}
	for _, j := range indexes {
		c := df.dataframe.columns[j]
		for i := range c.values {
			if c.values[i].IsAbsent() {
				c.values[i] = v
			}
		}
	}
}

// Dedup drops every row that repeats an earlier row, keeping the first
// occurrence with its label. Rows are compared by deep equality across all
// columns.
// Returns a new DataFrame.
func (df *DataFrame) Dedup() *DataFrame {
	df = df.shallowCopy()
	df.InPlace().Dedup()
	return df
}

// Dedup drops every row that repeats an earlier row.
// Modifies the underlying DataFrame in place.
func (df *DataFrameMutator) Dedup() {
	dups := df.dataframe.duplicateRows()
	if len(dups) == 0 {
		return
	}
	drop := make(map[int]bool, len(dups))
	for _, p := range dups {
		drop[p] = true
	}
	keep := make([]int, 0, df.dataframe.Len()-len(dups))
	for i := 0; i < df.dataframe.Len(); i++ {
		if !drop[i] {
			keep = append(keep, i)
		}
	}
	df.dataframe.subsetRows(keep)
}

// DropRows removes every row whose label is among labels, in place.
// Unknown labels are ignored. If a label repeats, all rows carrying it are
// removed.
func (df *DataFrame) DropRows(labels ...int) {
	drop := make(map[int]bool, len(labels))
	for _, l := range labels {
		drop[l] = true
	}
	keep := make([]int, 0, df.Len())
	for i, l := range df.index {
		if !drop[l] {
			keep = append(keep, i)
		}
	}
	df.subsetRows(keep)
}

// -- COLUMN SUBSETTING

// Select returns only the named columns, in the order given. Selecting a
// missing column is a ColumnNotFound error; naming the same column twice is a
// DuplicateColumn error.
// Returns a new DataFrame.
func (df *DataFrame) Select(names ...string) *DataFrame {
	df = df.shallowCopy()
	df.InPlace().Select(names...)
	return df
}

// Select keeps only the named columns, in the order given.
// Modifies the underlying DataFrame in place.
func (df *DataFrameMutator) Select(names ...string) {
	columns := make([]*column, len(names))
	seen := make(map[string]bool, len(names))
	for k, name := range names {
		if seen[name] {
			df.dataframe.resetWithError(fmt.Errorf("Select(): column %q: %w", name, ErrDuplicateColumn))
			return
		}
		seen[name] = true
		j, err := df.dataframe.columnIndex(name)
		if err != nil {
			df.dataframe.resetWithError(fmt.Errorf("Select(): %w", err))
			return
		}
		columns[k] = df.dataframe.columns[j]
	}
	df.dataframe.columns = columns
}

// SelectDTypes returns only the columns whose dtype is among kinds,
// preserving their original order.
// Returns a new DataFrame.
func (df *DataFrame) SelectDTypes(kinds ...Kind) *DataFrame {
	df = df.shallowCopy()
	df.InPlace().SelectDTypes(kinds...)
	return df
}

// SelectDTypes keeps only the columns whose dtype is among kinds.
// Modifies the underlying DataFrame in place.
func (df *DataFrameMutator) SelectDTypes(kinds ...Kind) {
	want := make(map[Kind]bool, len(kinds))
	for _, k := range kinds {
		want[k] = true
	}
	columns := make([]*column, 0, len(df.dataframe.columns))
	for _, c := range df.dataframe.columns {
		if want[c.dtype()] {
			columns = append(columns, c)
		}
	}
	df.dataframe.columns = columns
}

// DropColumn removes the named column. Dropping a missing column is a
// ColumnNotFound error.
// Returns a new DataFrame.
func (df *DataFrame) DropColumn(name string) *DataFrame {
	df = df.shallowCopy()
	df.InPlace().DropColumn(name)
	return df
}

// DropColumn removes the named column.
// Modifies the underlying DataFrame in place.
func (df *DataFrameMutator) DropColumn(name string) {
	j, err := df.dataframe.columnIndex(name)
	if err != nil {
		df.dataframe.resetWithError(fmt.Errorf("DropColumn(): %w", err))
		return
	}
	df.dataframe.columns = append(df.dataframe.columns[:j], df.dataframe.columns[j+1:]...)
}

// -- SETTERS

// SetColumn writes values under name, replacing the column if it exists and
// appending it otherwise. The values must match the DataFrame's row count; on
// a DataFrame with no rows and no columns, SetColumn establishes the row
// count, labeling rows 0..n-1.
func (df *DataFrame) SetColumn(name string, values []Value) error {
	if df.Len() == 0 && len(df.columns) == 0 {
		df.columns = []*column{newColumn(name, values)}
		df.index = makeIntRange(0, len(values))
		return nil
	}
	if len(values) != df.Len() {
		return fmt.Errorf("SetColumn(): values has %d values, want %d: %w",
			len(values), df.Len(), ErrLengthMismatch)
	}
	if j, err := df.columnIndex(name); err == nil {
		df.columns[j] = newColumn(name, values)
		return nil
	}
	df.columns = append(df.columns, newColumn(name, values))
	return nil
}

// Insert appends a new column. Unlike SetColumn, inserting a name that
// already exists is a DuplicateColumn error.
func (df *DataFrame) Insert(name string, values []Value) error {
	if _, err := df.columnIndex(name); err == nil {
		return fmt.Errorf("Insert(): column %q: %w", name, ErrDuplicateColumn)
	}
	if df.Len() == 0 && len(df.columns) == 0 {
		df.columns = append(df.columns, newColumn(name, values))
		df.index = makeIntRange(0, len(values))
		return nil
	}
	if len(values) != df.Len() {
		return fmt.Errorf("Insert(): values has %d values, want %d: %w",
			len(values), df.Len(), ErrLengthMismatch)
	}
	df.columns = append(df.columns, newColumn(name, values))
	return nil
}

// Update overwrites the values of an existing column. Unlike SetColumn,
// updating a missing column is a ColumnNotFound error.
func (df *DataFrame) Update(name string, values []Value) error {
	j, err := df.columnIndex(name)
	if err != nil {
		return fmt.Errorf("Update(): %w", err)
	}
	if len(values) != df.Len() {
		return fmt.Errorf("Update(): values has %d values, want %d: %w",
			len(values), df.Len(), ErrLengthMismatch)
	}
	df.columns[j] = newColumn(name, values)
	return nil
}

// RenameColumn changes a column's name, preserving its position and values.
// Renaming a missing column is a ColumnNotFound error; renaming onto another
// existing name is a DuplicateColumn error.
func (df *DataFrame) RenameColumn(old, new string) error {
	j, err := df.columnIndex(old)
	if err != nil {
		return fmt.Errorf("RenameColumn(): %w", err)
	}
	if old == new {
		return nil
	}
	if _, err := df.columnIndex(new); err == nil {
		return fmt.Errorf("RenameColumn(): column %q: %w", new, ErrDuplicateColumn)
	}
	df.columns[j].name = new
	return nil
}

// UpdateElement sets the cell in the named column at the row carrying label.
// When labels repeat, the first matching row in row order is updated.
func (df *DataFrame) UpdateElement(label int, column string, v Value) error {
	j, err := df.columnIndex(column)
	if err != nil {
		return fmt.Errorf("UpdateElement(): %w", err)
	}
	i, err := df.positionOfLabel(label)
	if err != nil {
		return fmt.Errorf("UpdateElement(): %w", err)
	}
	df.columns[j].values[i] = v
	return nil
}

// AppendRow adds one row to the bottom of the DataFrame, labeling it one
// higher than the current maximum label (or 0 on an empty frame). Columns
// missing from the record become Absent; a key that names no column is a
// ColumnNotFound error. Appending to a frame with no columns is an
// InvalidArgument error. Values are lifted through ValueOf.
func (df *DataFrame) AppendRow(record map[string]interface{}) error {
	if df.NumColumns() == 0 {
		return fmt.Errorf("AppendRow(): frame has no columns: %w", ErrInvalidArgument)
	}
	for key := range record {
		if _, err := df.columnIndex(key); err != nil {
			return fmt.Errorf("AppendRow(): %w", err)
		}
	}
	next := 0
	for _, l := range df.index {
		if l >= next {
			next = l + 1
		}
	}
	for _, c := range df.columns {
		raw, ok := record[c.name]
		if !ok {
			c.values = append(c.values, Absent)
			continue
		}
		c.values = append(c.values, ValueOf(raw))
	}
	df.index = append(df.index, next)
	return nil
}

// -- RESHAPING

// Concat combines two DataFrames along axis.
//
// Along AxisRows, both frames must have identical column sets (order may
// differ); other's columns are aligned to df's order, and row labels are
// concatenated as-is, so labels may repeat afterward.
//
// Along AxisColumns, both frames must have the same row count; other's
// columns are appended in order, and where a name collides, other's column
// replaces df's at its original position. df's row labels are kept.
//
// Returns a new DataFrame.
func (df *DataFrame) Concat(other *DataFrame, axis Axis) *DataFrame {
	if df.err != nil {
		return dataFrameWithError(fmt.Errorf("Concat(): %w", df.err))
	}
	if other == nil {
		return dataFrameWithError(fmt.Errorf("Concat(): other cannot be nil: %w", ErrInvalidArgument))
	}
	if other.err != nil {
		return dataFrameWithError(fmt.Errorf("Concat(): other has error: %w", other.err))
	}
	switch axis {
	case AxisRows:
		return df.concatRows(other)
	case AxisColumns:
		return df.concatColumns(other)
	default:
		return dataFrameWithError(fmt.Errorf("Concat(): axis %d: %w", axis, ErrInvalidArgument))
	}
}

func (df *DataFrame) concatRows(other *DataFrame) *DataFrame {
	if df.NumColumns() != other.NumColumns() {
		return dataFrameWithError(fmt.Errorf("Concat(): column sets differ: %d vs %d columns: %w",
			df.NumColumns(), other.NumColumns(), ErrInvalidArgument))
	}
	otherIndex := make([]int, len(df.columns))
	for j, c := range df.columns {
		oj, err := other.columnIndex(c.name)
		if err != nil {
			return dataFrameWithError(fmt.Errorf("Concat(): %w", err))
		}
		otherIndex[j] = oj
	}
	columns := make([]*column, len(df.columns))
	for j, c := range df.columns {
		values := make([]Value, 0, df.Len()+other.Len())
		values = append(values, c.values...)
		values = append(values, other.columns[otherIndex[j]].values...)
		columns[j] = &column{name: c.name, values: values}
	}
	index := make([]int, 0, df.Len()+other.Len())
	index = append(index, df.index...)
	index = append(index, other.index...)
	return &DataFrame{columns: columns, index: index, name: df.name}
}

func (df *DataFrame) concatColumns(other *DataFrame) *DataFrame {
	if df.Len() != other.Len() {
		return dataFrameWithError(fmt.Errorf("Concat(): row counts differ: %d vs %d: %w",
			df.Len(), other.Len(), ErrLengthMismatch))
	}
	ret := df.shallowCopy()
	for _, oc := range other.columns {
		if j, err := ret.columnIndex(oc.name); err == nil {
			ret.columns[j] = oc.copy()
			continue
		}
		ret.columns = append(ret.columns, oc.copy())
	}
	return ret
}

// -- APPLY

// applyColumn replaces the named column's cells with fn(cell), passing absent
// cells through untouched.
func (df *DataFrame) applyColumn(column string, fn func(v Value) Value) error {
	if fn == nil {
		return fmt.Errorf("fn cannot be nil: %w", ErrInvalidArgument)
	}
	j, err := df.columnIndex(column)
	if err != nil {
		return err
	}
	c := df.columns[j]
	values := make([]Value, len(c.values))
	for i, v := range c.values {
		if v.IsAbsent() {
			values[i] = v
			continue
		}
		values[i] = fn(v)
	}
	df.columns[j] = newColumn(c.name, values)
	return nil
}

// Apply transforms the named column element-wise, in place. Absent cells are
// never passed to fn; they stay absent.
func (df *DataFrame) Apply(column string, fn func(v Value) Value) error {
	if err := df.applyColumn(column, fn); err != nil {
		return fmt.Errorf("Apply(): %w", err)
	}
	return nil
}

// Transform replaces the named column with fn applied element-wise. Absent
// cells are never passed to fn; they stay absent.
// Returns a new DataFrame.
func (df *DataFrame) Transform(column string, fn func(v Value) Value) *DataFrame {
	df = df.shallowCopy()
	if err := df.applyColumn(column, fn); err != nil {
		return dataFrameWithError(fmt.Errorf("Transform(): %w", err))
	}
	return df
}

// Map applies fn to every row, in row order, and returns one result per row.
// A nil fn returns nil.
func (df *DataFrame) Map(fn func(r Row) Value) []Value {
	if fn == nil {
		return nil
	}
	out := make([]Value, df.Len())
	for i := 0; i < df.Len(); i++ {
		out[i] = fn(Row{df: df, pos: i})
	}
	return out
}

// -- SORTERS

// SortValues sorts the rows by their values in the named column. The sort is
// stable. Absent cells and NaN numbers always land at the bottom, whether
// ascending or descending. Cells of different kinds order as
// bool < number < text < struct. Row labels travel with their rows.
// Returns a new DataFrame.
func (df *DataFrame) SortValues(column string, ascending bool) *DataFrame {
	df = df.shallowCopy()
	df.InPlace().SortValues(column, ascending)
	return df
}

// SortValues sorts the rows by their values in the named column.
// Modifies the underlying DataFrame in place.
func (df *DataFrameMutator) SortValues(column string, ascending bool) {
	j, err := df.dataframe.columnIndex(column)
	if err != nil {
		df.dataframe.resetWithError(fmt.Errorf("SortValues(): %w", err))
		return
	}
	df.dataframe.subsetRows(df.dataframe.columns[j].sortedPositions(ascending))
}

// -- GROUPERS

// GroupBy splits the rows by their value in the named column. Groups appear
// in order of first occurrence, and each group's rows keep their original
// order and labels. Absent cells form a group of their own.
func (df *DataFrame) GroupBy(column string) *GroupedDataFrame {
	j, err := df.columnIndex(column)
	if err != nil {
		return groupedDataFrameWithError(fmt.Errorf("GroupBy(): %w", err))
	}
	keys, positions := df.columns[j].distinct()
	return &GroupedDataFrame{
		orderedKeys: keys,
		rowIndices:  positions,
		column:      column,
		df:          df,
	}
}

// -- ITERATORS

// Iterator returns an iterator which yields a Row view for each row.
func (df *DataFrame) Iterator() *DataFrameIterator {
	return &DataFrameIterator{
		current: -1,
		df:      df,
	}
}

// Next advances to the next row. It returns false at the end of iteration.
func (iter *DataFrameIterator) Next() bool {
	iter.current++
	return iter.current < iter.df.Len()
}

// Row returns a view of the current row.
func (iter *DataFrameIterator) Row() Row {
	return Row{df: iter.df, pos: iter.current}
}

// Label returns the row's label.
func (r Row) Label() int {
	return r.df.index[r.pos]
}

// Value returns the row's cell in the named column, or Absent if the column
// does not exist.
func (r Row) Value(column string) Value {
	j, err := r.df.columnIndex(column)
	if err != nil {
		return Absent
	}
	return r.df.columns[j].values[r.pos]
}

// Values returns the row's cells, in column order.
func (r Row) Values() []Value {
	out := make([]Value, len(r.df.columns))
	for j := range r.df.columns {
		out[j] = r.df.columns[j].values[r.pos]
	}
	return out
}

// Columns returns the column names, in order.
func (r Row) Columns() []string {
	return r.df.columnNames()
}

// -- COUNTING & INSPECTION

// Count returns the number of non-absent cells in the named column,
// regardless of kind.
func (df *DataFrame) Count(column string) (int, error) {
	j, err := df.columnIndex(column)
	if err != nil {
		return 0, fmt.Errorf("Count(): %w", err)
	}
	return len(df.columns[j].valid()), nil
}

// ValueCounts tallies the distinct non-absent values in the named column, in
// order of first occurrence.
func (df *DataFrame) ValueCounts(column string) ([]ValueCount, error) {
	j, err := df.columnIndex(column)
	if err != nil {
		return nil, fmt.Errorf("ValueCounts(): %w", err)
	}
	values, positions := df.columns[j].distinct()
	out := make([]ValueCount, 0, len(values))
	for k := range values {
		if values[k].IsAbsent() {
			continue
		}
		out = append(out, ValueCount{Value: values[k], Count: len(positions[k])})
	}
	return out, nil
}

// Unique returns the distinct non-absent values in the named column, in order
// of first occurrence.
func (df *DataFrame) Unique(column string) ([]Value, error) {
	j, err := df.columnIndex(column)
	if err != nil {
		return nil, fmt.Errorf("Unique(): %w", err)
	}
	values, _ := df.columns[j].distinct()
	out := make([]Value, 0, len(values))
	for _, v := range values {
		if v.IsAbsent() {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

// HasNull reports whether the named column contains any absent cells.
func (df *DataFrame) HasNull(column string) (bool, error) {
	j, err := df.columnIndex(column)
	if err != nil {
		return false, fmt.Errorf("HasNull(): %w", err)
	}
	for _, v := range df.columns[j].values {
		if v.IsAbsent() {
			return true, nil
		}
	}
	return false, nil
}

// HasUndefined reports whether any cell anywhere in the DataFrame is absent.
func (df *DataFrame) HasUndefined() bool {
	for _, c := range df.columns {
		for _, v := range c.values {
			if v.IsAbsent() {
				return true
			}
		}
	}
	return false
}

// IsNull returns a same-shape DataFrame of booleans marking which cells are
// absent. Column names and row labels are preserved.
// Returns a new DataFrame.
func (df *DataFrame) IsNull() *DataFrame {
	columns := make([]*column, len(df.columns))
	for j, c := range df.columns {
		values := make([]Value, len(c.values))
		for i := range c.values {
			values[i] = Bool(c.values[i].IsAbsent())
		}
		columns[j] = &column{name: c.name, values: values}
	}
	index := make([]int, len(df.index))
	copy(index, df.index)
	return &DataFrame{columns: columns, index: index, name: df.name}
}

// HasDuplicates reports whether any full row repeats an earlier row. Rows are
// compared by deep equality across all columns.
func (df *DataFrame) HasDuplicates() bool {
	return len(df.duplicateRows()) > 0
}

// IsSameType reports whether every non-absent cell in the named column has
// the same kind. A column with no non-absent cells reports true.
func (df *DataFrame) IsSameType(column string) (bool, error) {
	j, err := df.columnIndex(column)
	if err != nil {
		return false, fmt.Errorf("IsSameType(): %w", err)
	}
	kind := KindAbsent
	for _, v := range df.columns[j].values {
		if v.IsAbsent() {
			continue
		}
		if kind == KindAbsent {
			kind = v.kind
			continue
		}
		if v.kind != kind {
			return false, nil
		}
	}
	return true, nil
}

// HasWrongDataTypes reports whether any column mixes kinds among its
// non-absent cells.
func (df *DataFrame) HasWrongDataTypes() bool {
	for _, c := range df.columns {
		same, err := df.IsSameType(c.name)
		if err == nil && !same {
			return true
		}
	}
	return false
}

// WrongTypeRows returns the labels of rows whose cell in the named column is
// non-absent and does not match the column's dtype.
func (df *DataFrame) WrongTypeRows(column string) ([]int, error) {
	j, err := df.columnIndex(column)
	if err != nil {
		return nil, fmt.Errorf("WrongTypeRows(): %w", err)
	}
	c := df.columns[j]
	dominant := c.dtype()
	var labels []int
	for i, v := range c.values {
		if v.IsAbsent() || v.kind == dominant {
			continue
		}
		labels = append(labels, df.index[i])
	}
	return labels, nil
}
