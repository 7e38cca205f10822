package contracts

import (
	"context"
	"errors"
)

type SheetRepository interface {
	// SetCell returns the written cell and every dependent recomputed because of it
	SetCell(ctx context.Context, sheetId string, cellId string, value string) (*Cell, []*Cell, error)
	ClearCell(ctx context.Context, sheetId string, cellId string) (*Cell, []*Cell, error)
	GetCell(ctx context.Context, sheetId string, cellId string) (*Cell, error)
	GetCellList(ctx context.Context, sheetId string) (*CellList, error)
	GetDependents(ctx context.Context, sheetId string, cellId string) (*Dependents, error)
	// CellKey validates the ids and returns the canonical key of the cell
	CellKey(sheetId string, cellId string) (string, error)
}

// Dependents lists cells reading a cell directly and through other formulas
type Dependents struct {
	Key    string   `json:"key"`
	Direct []string `json:"direct"`
	All    []string `json:"all"`
}

var SheetNotFoundError = errors.New("sheet not found")

var InvalidSheetIdError = errors.New("sheet id should contain only letters, digits and underscore")
