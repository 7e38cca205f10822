package main

import (
	"fmt"
	"regexp"
	"spreadsheetPro/contracts"
	"strconv"
	"strings"
)

const SheetSeparator = "!"

const RangeSeparator = ":"

// maxColumnIndex keeps base-26 decoding far away from int overflow
const maxColumnIndex = 1 << 40

// MaxRows and MaxColumns bound cell tokens, "XFD1048576" is the last cell of a sheet
const (
	MaxRows    = 1 << 20
	MaxColumns = 1 << 14
)

// denseRangeCells is the largest box ReadRange walks cell by cell,
// bigger boxes are read from the populated cells only
const denseRangeCells = 1 << 16

var cellTokenRegex = regexp.MustCompile(`^([A-Za-z]+)(\d+)$`)

var cellKeyRegex = regexp.MustCompile(`^(.*)!R(\d+)C(\d+)$`)

var rangeKeyRegex = regexp.MustCompile(`^(.*)!R(\d+)C(\d+):R(\d+)C(\d+)$`)

// ColumnIndex maps column letters to a zero-based index: A=0, Z=25, AA=26
func ColumnIndex(letters string) (int, error) {
	if letters == "" {
		return 0, fmt.Errorf("%w: empty column", contracts.InvalidColumnError)
	}

	index := 0
	for _, char := range strings.ToUpper(letters) {
		if char < 'A' || char > 'Z' {
			return 0, fmt.Errorf("%w: %q", contracts.InvalidColumnError, letters)
		}

		index = index*26 + int(char-'A') + 1
		if index > maxColumnIndex {
			return 0, fmt.Errorf("%w: %q is too long", contracts.InvalidColumnError, letters)
		}
	}

	return index - 1, nil
}

// ColumnName is the inverse of ColumnIndex
func ColumnName(index int) string {
	if index < 0 {
		return ""
	}

	name := make([]byte, 0, 3)
	for n := index + 1; n > 0; n = (n - 1) / 26 {
		name = append(name, byte('A'+(n-1)%26))
	}

	for i, j := 0, len(name)-1; i < j; i, j = i+1, j-1 {
		name[i], name[j] = name[j], name[i]
	}

	return string(name)
}

// ParseCellToken decodes "B12" into zero-based row 11 and column 1.
// Row numbers are 1-based in text, so "A0" is not a cell, neither is anything
// past MaxRows or MaxColumns.
func ParseCellToken(token string) (row int, col int, ok bool) {
	match := cellTokenRegex.FindStringSubmatch(token)
	if match == nil {
		return 0, 0, false
	}

	col, err := ColumnIndex(match[1])
	if err != nil {
		return 0, 0, false
	}

	row, err = strconv.Atoi(match[2])
	if err != nil || row < 1 || row > MaxRows || col >= MaxColumns {
		return 0, 0, false
	}

	return row - 1, col, true
}

func FormatCellToken(row int, col int) string {
	return ColumnName(col) + strconv.Itoa(row+1)
}

// ResolveSheetScope splits "Sheet2!A1" into the sheet and the rest of the token.
// Tokens without a sheet prefix belong to the current sheet, more than one
// separator makes the reference invalid.
func ResolveSheetScope(token string, currentSheet string) (sheet string, rest string, ok bool) {
	parts := strings.Split(token, SheetSeparator)

	switch len(parts) {
	case 1:
		return currentSheet, token, true
	case 2:
		if parts[0] == "" {
			return "", "", false
		}
		return parts[0], parts[1], true
	default:
		return "", "", false
	}
}

func ParseCellReference(token string, currentSheet string) (contracts.CellAddress, bool) {
	sheet, cellToken, ok := ResolveSheetScope(token, currentSheet)
	if !ok {
		return contracts.CellAddress{}, false
	}

	row, col, ok := ParseCellToken(cellToken)
	if !ok {
		return contracts.CellAddress{}, false
	}

	return contracts.CellAddress{Sheet: sheet, Row: row, Col: col}, true
}

// ParseRangeReference decodes "Sheet2!A1:B3". The sheet prefix belongs to the start
// corner; the end corner may repeat the same prefix. Corners are normalized so
// "B3:A1" covers the same box as "A1:B3".
func ParseRangeReference(token string, currentSheet string) (contracts.RangeAddress, bool) {
	corners := strings.Split(token, RangeSeparator)
	if len(corners) != 2 {
		return contracts.RangeAddress{}, false
	}

	start, ok := ParseCellReference(corners[0], currentSheet)
	if !ok {
		return contracts.RangeAddress{}, false
	}

	end, ok := ParseCellReference(corners[1], start.Sheet)
	if !ok || end.Sheet != start.Sheet {
		return contracts.RangeAddress{}, false
	}

	return contracts.RangeAddress{
		Sheet:    start.Sheet,
		StartRow: min(start.Row, end.Row),
		StartCol: min(start.Col, end.Col),
		EndRow:   max(start.Row, end.Row),
		EndCol:   max(start.Col, end.Col),
	}, true
}

func rangeStart(r contracts.RangeAddress) contracts.CellAddress {
	return contracts.CellAddress{Sheet: r.Sheet, Row: r.StartRow, Col: r.StartCol}
}

func IsRangeToken(token string) bool {
	return strings.Contains(token, RangeSeparator)
}

func FormatCellKey(address contracts.CellAddress) string {
	return fmt.Sprintf("%s!R%dC%d", address.Sheet, address.Row, address.Col)
}

func ParseCellKey(key string) (contracts.CellAddress, bool) {
	match := cellKeyRegex.FindStringSubmatch(key)
	if match == nil {
		return contracts.CellAddress{}, false
	}

	row, rowErr := strconv.Atoi(match[2])
	col, colErr := strconv.Atoi(match[3])
	if rowErr != nil || colErr != nil {
		return contracts.CellAddress{}, false
	}

	return contracts.CellAddress{Sheet: match[1], Row: row, Col: col}, true
}

func FormatRangeKey(r contracts.RangeAddress) string {
	return fmt.Sprintf("%s!R%dC%d:R%dC%d", r.Sheet, r.StartRow, r.StartCol, r.EndRow, r.EndCol)
}

func ParseRangeKey(key string) (contracts.RangeAddress, bool) {
	match := rangeKeyRegex.FindStringSubmatch(key)
	if match == nil {
		return contracts.RangeAddress{}, false
	}

	numbers := make([]int, 4)
	for i := range numbers {
		number, err := strconv.Atoi(match[i+2])
		if err != nil {
			return contracts.RangeAddress{}, false
		}
		numbers[i] = number
	}

	return contracts.RangeAddress{
		Sheet:    match[1],
		StartRow: numbers[0],
		StartCol: numbers[1],
		EndRow:   numbers[2],
		EndCol:   numbers[3],
	}, true
}

// ReadCell resolves a single cell token against the grid. Malformed tokens,
// missing sheets and out of bounds cells all read as an empty cell.
func ReadCell(grid contracts.Grid, currentSheet string, token string) contracts.CellValue {
	address, ok := ParseCellReference(token, currentSheet)
	if !ok || !grid.HasSheet(address.Sheet) {
		return contracts.NullValue()
	}

	return grid.Get(address.Sheet, address.Row, address.Col)
}

// ReadRange expands a range token into its cell values row-major.
// Malformed tokens and missing sheets produce an empty sequence.
func ReadRange(grid contracts.Grid, currentSheet string, token string) []contracts.CellValue {
	r, ok := ParseRangeReference(token, currentSheet)
	if !ok || !grid.HasSheet(r.Sheet) {
		return []contracts.CellValue{}
	}

	// cells past the populated extent are empty and every aggregate skips them
	rows, cols := grid.Size(r.Sheet)
	r.EndRow = min(r.EndRow, rows-1)
	r.EndCol = min(r.EndCol, cols-1)
	if r.EndRow < r.StartRow || r.EndCol < r.StartCol {
		return []contracts.CellValue{}
	}

	area := (r.EndRow - r.StartRow + 1) * (r.EndCol - r.StartCol + 1)
	if area > denseRangeCells {
		return readPopulatedCells(grid, r)
	}

	values := make([]contracts.CellValue, 0, area)
	for row := r.StartRow; row <= r.EndRow; row++ {
		for col := r.StartCol; col <= r.EndCol; col++ {
			values = append(values, grid.Get(r.Sheet, row, col))
		}
	}

	return values
}

// readPopulatedCells leaves out empty cells of the box
func readPopulatedCells(grid contracts.Grid, r contracts.RangeAddress) []contracts.CellValue {
	values := make([]contracts.CellValue, 0)
	for address, value := range grid.Cells(r.Sheet) {
		if r.Contains(address) {
			values = append(values, value)
		}
	}

	return values
}
