package main

import (
	"context"
	"maps"
	"slices"
	"spreadsheetPro/contracts"
	"sync"
)

// Workbook is one independent set of sheets with its dependency bookkeeping.
// All edits go through a single writer lock, reads may run in parallel.
type Workbook struct {
	mutex     sync.RWMutex
	grid      *SheetGrid
	tree      *CellDependencyTree
	executor  contracts.ExpressionExecutor
	scheduler *RecalculationScheduler
	// inputs holds raw cell text per sheet
	inputs map[string]map[contracts.CellAddress]string
}

func NewWorkbook(executor contracts.ExpressionExecutor) *Workbook {
	grid := NewSheetGrid()
	tree := NewCellDependencyTree(NewCanonicalizer())

	return &Workbook{
		grid:      grid,
		tree:      tree,
		executor:  executor,
		scheduler: NewRecalculationScheduler(grid, tree, executor),
		inputs:    map[string]map[contracts.CellAddress]string{},
	}
}

// SetCell writes raw input into a cell and recomputes its dependents.
// Input starting with "=" is a formula, empty input clears the cell.
func (w *Workbook) SetCell(ctx context.Context, address contracts.CellAddress, raw string) Recalculation {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if raw == "" {
		return w.clear(ctx, address)
	}

	key := FormatCellKey(address)
	w.setInput(address, raw)

	if w.executor.IsFormula(raw) {
		w.tree.SetDependsOn(key, raw, w.executor.ExtractReferences(raw))
		return w.scheduler.Cascade(ctx, key)
	}

	w.tree.ClearDependencies(key)
	w.grid.Set(address.Sheet, address.Row, address.Col, contracts.ParseLiteral(raw))

	return withChanged(address, w.scheduler.Cascade(ctx, key))
}

func (w *Workbook) ClearCell(ctx context.Context, address contracts.CellAddress) Recalculation {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	return w.clear(ctx, address)
}

func (w *Workbook) clear(ctx context.Context, address contracts.CellAddress) Recalculation {
	key := FormatCellKey(address)

	w.deleteInput(address)
	w.tree.ClearDependencies(key)
	w.grid.Set(address.Sheet, address.Row, address.Col, contracts.NullValue())

	return withChanged(address, w.scheduler.Cascade(ctx, key))
}

// withChanged puts the edited cell in front of the cells recomputed because of it
func withChanged(address contracts.CellAddress, recalculation Recalculation) Recalculation {
	if !slices.Contains(recalculation.Changed, address) {
		recalculation.Changed = append([]contracts.CellAddress{address}, recalculation.Changed...)
	}
	return recalculation
}

// Load adds stored inputs without cascading and then recomputes all formulas
// once, so the order of inputs does not matter
func (w *Workbook) Load(ctx context.Context, inputs map[contracts.CellAddress]string) Recalculation {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	for address, raw := range inputs {
		if raw == "" {
			continue
		}

		key := FormatCellKey(address)
		w.setInput(address, raw)
		if w.executor.IsFormula(raw) {
			w.tree.SetDependsOn(key, raw, w.executor.ExtractReferences(raw))
		} else {
			w.tree.ClearDependencies(key)
			w.grid.Set(address.Sheet, address.Row, address.Col, contracts.ParseLiteral(raw))
		}
	}

	return w.scheduler.RecalculateAll(ctx)
}

// RecalculateAll refreshes every formula, NOW and TODAY included
func (w *Workbook) RecalculateAll(ctx context.Context) Recalculation {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	return w.scheduler.RecalculateAll(ctx)
}

func (w *Workbook) Get(address contracts.CellAddress) contracts.CellValue {
	w.mutex.RLock()
	defer w.mutex.RUnlock()

	return w.grid.Get(address.Sheet, address.Row, address.Col)
}

// Evaluate computes a formula against the workbook without storing it anywhere
func (w *Workbook) Evaluate(sheet string, formula string) contracts.CellValue {
	w.mutex.RLock()
	defer w.mutex.RUnlock()

	return w.executor.Evaluate(sheet, 0, 0, formula, w.grid)
}

func (w *Workbook) SheetNames() []string {
	w.mutex.RLock()
	defer w.mutex.RUnlock()

	return w.grid.SheetNames()
}

// Input returns the raw text the cell was set to
func (w *Workbook) Input(address contracts.CellAddress) (string, bool) {
	w.mutex.RLock()
	defer w.mutex.RUnlock()

	raw, ok := w.inputs[address.Sheet][address]
	return raw, ok
}

// HasSheet reports whether any cell of the sheet holds input
func (w *Workbook) HasSheet(sheet string) bool {
	w.mutex.RLock()
	defer w.mutex.RUnlock()

	return len(w.inputs[sheet]) > 0
}

// Addresses returns cells of the sheet holding input, row-major
func (w *Workbook) Addresses(sheet string) []contracts.CellAddress {
	w.mutex.RLock()
	defer w.mutex.RUnlock()

	addresses := slices.Collect(maps.Keys(w.inputs[sheet]))
	slices.SortFunc(addresses, compareAddresses)
	return addresses
}

func (w *Workbook) setInput(address contracts.CellAddress, raw string) {
	sheetInputs, ok := w.inputs[address.Sheet]
	if !ok {
		sheetInputs = map[contracts.CellAddress]string{}
		w.inputs[address.Sheet] = sheetInputs
	}
	sheetInputs[address] = raw
}

func (w *Workbook) deleteInput(address contracts.CellAddress) {
	sheetInputs := w.inputs[address.Sheet]
	delete(sheetInputs, address)
	if len(sheetInputs) == 0 {
		delete(w.inputs, address.Sheet)
	}
}

// Dependents returns formula cells reading the cell directly, and all cells
// that would be recomputed after its change
func (w *Workbook) Dependents(address contracts.CellAddress) (direct []contracts.CellAddress, all []contracts.CellAddress) {
	w.mutex.RLock()
	defer w.mutex.RUnlock()

	key := FormatCellKey(address)
	direct = keysToAddresses(w.tree.GetDirectDependents(key))

	visited := map[string]bool{key: true}
	queue := []string{key}
	allKeys := make([]string, 0)
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, dependent := range w.tree.GetDirectDependents(current) {
			if !visited[dependent] {
				visited[dependent] = true
				allKeys = append(allKeys, dependent)
				queue = append(queue, dependent)
			}
		}
	}

	all = keysToAddresses(allKeys)
	slices.SortFunc(all, compareAddresses)
	return direct, all
}

func keysToAddresses(keys []string) []contracts.CellAddress {
	addresses := make([]contracts.CellAddress, 0, len(keys))
	for _, key := range keys {
		if address, ok := ParseCellKey(key); ok {
			addresses = append(addresses, address)
		}
	}
	return addresses
}

func compareAddresses(a contracts.CellAddress, b contracts.CellAddress) int {
	switch {
	case a.Sheet != b.Sheet:
		if a.Sheet < b.Sheet {
			return -1
		}
		return 1
	case a.Row != b.Row:
		return a.Row - b.Row
	default:
		return a.Col - b.Col
	}
}
