package contracts

import "iter"

// Grid is the 2-D store of cell values per sheet name.
// Reads never fail: a missing sheet, row or column is an empty cell.
type Grid interface {
	Get(sheet string, row int, col int) CellValue
	// Set stores a value, creating the sheet and extending rows as needed
	Set(sheet string, row int, col int, value CellValue)
	HasSheet(sheet string) bool
	SheetNames() []string
	// Size returns the populated extent of a sheet: row count and widest row
	Size(sheet string) (rows int, cols int)
	// Cells yields every non-empty cell of a sheet row-major
	Cells(sheet string) iter.Seq2[CellAddress, CellValue]
}
