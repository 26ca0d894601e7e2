package motley

var optionMaxRows = 50
var optionMaxColumns = 20
var optionNullPrinter = "n/a"

// SetOptionMaxRows sets the maximum number of rows to display in the print
// view to n. Frames with more rows print the first and last n/2 rows around
// an ellipsis row.
func SetOptionMaxRows(n int) {
	optionMaxRows = n
}

// SetOptionMaxColumns sets the maximum number of columns to display in the
// print view to n. Frames with more columns print the first and last n/2
// columns around an ellipsis column.
func SetOptionMaxColumns(n int) {
	optionMaxColumns = n
}

// SetOptionNullPrinter sets the string used to represent absent cells in the
// print view and in Records output.
func SetOptionNullPrinter(s string) {
	optionNullPrinter = s
}
