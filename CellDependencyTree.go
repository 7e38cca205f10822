package main

import (
	"slices"
	"spreadsheetPro/contracts"
)

// CellDependencyTree keeps forward edges (what a formula reads) and their transpose
// (who reads a cell). Range references are kept as observers and matched by containment,
// so a formula over A1:A1000 costs one entry instead of a thousand.
// It is not safe for concurrent use, Workbook serializes access.
type CellDependencyTree struct {
	canonicalizer  *Canonicalizer
	dependingOn    map[string][]string
	references     map[string][]string
	formulas       map[string]string
	dependants     map[string]map[string]bool
	rangeObservers map[string]*rangeObserver
}

type rangeObserver struct {
	address    contracts.RangeAddress
	dependants map[string]bool
}

func NewCellDependencyTree(canonicalizer *Canonicalizer) *CellDependencyTree {
	return &CellDependencyTree{
		canonicalizer:  canonicalizer,
		dependingOn:    map[string][]string{},
		references:     map[string][]string{},
		formulas:       map[string]string{},
		dependants:     map[string]map[string]bool{},
		rangeObservers: map[string]*rangeObserver{},
	}
}

func (t *CellDependencyTree) SetDependsOn(cellKey string, formula string, references []string) {
	t.ClearDependencies(cellKey)

	currentSheet := ""
	if address, ok := ParseCellKey(cellKey); ok {
		currentSheet = address.Sheet
	}

	dependingOnKeys := t.canonicalizer.CanonicalizeAll(currentSheet, references)
	t.dependingOn[cellKey] = dependingOnKeys
	t.references[cellKey] = slices.Clone(references)
	t.formulas[cellKey] = formula

	for _, dependingOnKey := range dependingOnKeys {
		if r, isRange := ParseRangeKey(dependingOnKey); isRange {
			observer := t.rangeObservers[dependingOnKey]
			if observer == nil {
				observer = &rangeObserver{address: r, dependants: map[string]bool{}}
				t.rangeObservers[dependingOnKey] = observer
			}
			observer.dependants[cellKey] = true
			continue
		}

		if t.dependants[dependingOnKey] == nil {
			t.dependants[dependingOnKey] = map[string]bool{}
		}
		t.dependants[dependingOnKey][cellKey] = true
	}
}

func (t *CellDependencyTree) ClearDependencies(cellKey string) {
	for _, dependingOnKey := range t.dependingOn[cellKey] {
		if observer, ok := t.rangeObservers[dependingOnKey]; ok {
			delete(observer.dependants, cellKey)
			if len(observer.dependants) == 0 {
				delete(t.rangeObservers, dependingOnKey)
			}
			continue
		}

		if dependants, ok := t.dependants[dependingOnKey]; ok {
			delete(dependants, cellKey)
			if len(dependants) == 0 {
				delete(t.dependants, dependingOnKey)
			}
		}
	}

	delete(t.dependingOn, cellKey)
	delete(t.references, cellKey)
	delete(t.formulas, cellKey)
}

func (t *CellDependencyTree) GetDirectDependents(cellKey string) []string {
	dependants := make([]string, 0, len(t.dependants[cellKey]))
	for dependant := range t.dependants[cellKey] {
		dependants = append(dependants, dependant)
	}

	if address, ok := ParseCellKey(cellKey); ok {
		for _, observer := range t.rangeObservers {
			if !observer.address.Contains(address) {
				continue
			}
			for dependant := range observer.dependants {
				dependants = append(dependants, dependant)
			}
		}
	}

	slices.Sort(dependants)
	return slices.Compact(dependants)
}

func (t *CellDependencyTree) GetPrecedents(cellKey string) []string {
	return slices.Clone(t.dependingOn[cellKey])
}

func (t *CellDependencyTree) GetReferences(cellKey string) []string {
	return slices.Clone(t.references[cellKey])
}

func (t *CellDependencyTree) GetFormula(cellKey string) (formula string, ok bool) {
	formula, ok = t.formulas[cellKey]
	return
}

func (t *CellDependencyTree) FormulaKeys() []string {
	keys := make([]string, 0, len(t.formulas))
	for key := range t.formulas {
		keys = append(keys, key)
	}

	slices.Sort(keys)
	return keys
}

func (t *CellDependencyTree) Len() int {
	return len(t.formulas)
}

/** Terms:
 * dependant of cell X - a formula cell that reads X
 * depending on - references read by a formula cell
 */
