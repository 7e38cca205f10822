package contracts

import (
	"errors"
)

// Cell is the API representation of a cell: its raw input and computed result
type Cell struct {
	Key     string `json:"key"`
	Address string `json:"address"`
	Value   string `json:"value"`
	Result  string `json:"result"`
	Type    string `json:"type"`
}

// CellList maps A1 addresses to cells of one sheet
type CellList map[string]*Cell

const FormulaPrefix = "="

var CellNotFoundError = errors.New("cell not found")

var InvalidCellIdError = errors.New("cell id should be a single cell reference like A1")

var InvalidColumnError = errors.New("column should contain only letters A-Z")
