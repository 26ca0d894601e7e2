// Package motley provides an in-memory DataFrame for tabular data whose cells
// may have mixed types.
//
// motley borrows concepts from pandas and spreadsheets. Its most common use
// cases are cleaning, reshaping, and summarizing data that arrives as loosely
// typed text. Some notable features of motley:
//
// * every cell is a tagged Value (number, text, boolean, structured, or absent),
// so a single column may legally hold a mix of types
//
// * absent values are first-class and survive every transformation
//
// * row labels are preserved through filtering, sorting, and deduplication
//
// * transformations return new DataFrames by default; most also have an
// in-place form via InPlace()
//
// * descriptive statistics (mean, std, quartiles, mode, describe) that
// silently skip non-numeric cells
//
// * type inference for raw string data lives in the infer subpackage, and
// Apache Arrow interop in the arrowio subpackage
//
// Printing a DataFrame renders an ASCII table.
package motley

// A Kind identifies the type of a single Value.
// The zero Kind is KindAbsent, so an uninitialized Value reads as missing data.
type Kind int

const (
	// KindAbsent marks missing data. It is distinct from zero, false, and "".
	KindAbsent Kind = iota
	// KindNumber -> float64
	KindNumber
	// KindText -> string
	KindText
	// KindBool -> bool
	KindBool
	// KindStruct -> parsed structured data (map[string]interface{}, []interface{}, or scalars)
	KindStruct
)

// A Value is one cell in a DataFrame.
// Construct one with Num, Str, Bool, Obj, or ValueOf, or use the package-level Absent.
type Value struct {
	kind Kind
	num  float64
	str  string
	b    bool
	obj  interface{}
}

// A Column pairs a name with an ordered sequence of values.
// It is the unit of input for New and the unit of output for some accessors.
type Column struct {
	Name   string
	Values []Value
}

// a column is the internal storage for one named sequence of cells.
// len(values) always equals the row count of the owning DataFrame.
type column struct {
	name   string
	values []Value
}

// A DataFrame is an ordered collection of named columns of equal length,
// aligned to integer row labels. A DataFrame is analogous to a spreadsheet.
type DataFrame struct {
	columns []*column
	index   []int
	name    string
	err     error
}

// A DataFrameMutator is used to change DataFrame values in place.
type DataFrameMutator struct {
	dataframe *DataFrame
}

// A DataFrameIterator iterates over the rows in a DataFrame.
type DataFrameIterator struct {
	current int
	df      *DataFrame
}

// A Row is a read-only view of one row of a DataFrame.
// It is the argument to Filter and Map callbacks and the yield of an iterator.
type Row struct {
	df  *DataFrame
	pos int
}

// A GroupedDataFrame is a collection of row positions sharing the same value
// in the grouping column. It has a reference to the underlying DataFrame,
// which is used for reduce operations.
type GroupedDataFrame struct {
	orderedKeys []Value
	rowIndices  [][]int
	column      string
	df          *DataFrame
	err         error
}

// A ValueCount pairs one distinct cell value with its number of occurrences
// in a column.
type ValueCount struct {
	Value Value
	Count int
}

// Quartiles holds the quartile boundaries of a numeric column, computed by
// linear interpolation over the sorted numeric values.
type Quartiles struct {
	Q1     float64
	Median float64
	Q3     float64
}

// An Axis selects the dimension along which Concat appends data.
type Axis int

const (
	// AxisRows stacks rows of two DataFrames with identical column sets.
	AxisRows Axis = iota
	// AxisColumns appends the columns of one DataFrame to another of the same length.
	AxisColumns
)
