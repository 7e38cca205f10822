package main

import (
	"iter"
	"maps"
	"slices"
	"spreadsheetPro/contracts"
)

// sheetCells keeps only non-empty cells. rows and cols are the populated extent,
// grown on write and never shrunk by clearing.
type sheetCells struct {
	cells map[int]map[int]contracts.CellValue
	rows  int
	cols  int
}

// SheetGrid is the in-memory Grid: sparse cells per sheet, extended on write
type SheetGrid struct {
	sheets map[string]*sheetCells
	order  []string
}

func NewSheetGrid() *SheetGrid {
	return &SheetGrid{
		sheets: map[string]*sheetCells{},
	}
}

func (g *SheetGrid) Get(sheet string, row int, col int) contracts.CellValue {
	cells, ok := g.sheets[sheet]
	if !ok {
		return contracts.NullValue()
	}

	return cells.cells[row][col]
}

// Set stores a non-empty value or deletes the cell for Null. Writing Null never extends the sheet.
func (g *SheetGrid) Set(sheet string, row int, col int, value contracts.CellValue) {
	if row < 0 || col < 0 {
		return
	}

	cells, ok := g.sheets[sheet]
	if !ok {
		cells = &sheetCells{cells: map[int]map[int]contracts.CellValue{}}
		g.sheets[sheet] = cells
		g.order = append(g.order, sheet)
	}

	if value.IsNull() {
		if columns, ok := cells.cells[row]; ok {
			delete(columns, col)
			if len(columns) == 0 {
				delete(cells.cells, row)
			}
		}
		return
	}

	columns, ok := cells.cells[row]
	if !ok {
		columns = map[int]contracts.CellValue{}
		cells.cells[row] = columns
	}
	columns[col] = value

	cells.rows = max(cells.rows, row+1)
	cells.cols = max(cells.cols, col+1)
}

func (g *SheetGrid) HasSheet(sheet string) bool {
	_, ok := g.sheets[sheet]
	return ok
}

// SheetNames returns sheets in creation order
func (g *SheetGrid) SheetNames() []string {
	names := make([]string, len(g.order))
	copy(names, g.order)
	return names
}

func (g *SheetGrid) Size(sheet string) (rows int, cols int) {
	cells, ok := g.sheets[sheet]
	if !ok {
		return 0, 0
	}

	return cells.rows, cells.cols
}

func (g *SheetGrid) Cells(sheet string) iter.Seq2[contracts.CellAddress, contracts.CellValue] {
	return func(yield func(contracts.CellAddress, contracts.CellValue) bool) {
		cells, ok := g.sheets[sheet]
		if !ok {
			return
		}

		for _, row := range slices.Sorted(maps.Keys(cells.cells)) {
			columns := cells.cells[row]
			for _, col := range slices.Sorted(maps.Keys(columns)) {
				if !yield(contracts.CellAddress{Sheet: sheet, Row: row, Col: col}, columns[col]) {
					return
				}
			}
		}
	}
}
