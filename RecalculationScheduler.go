package main

import (
	"context"
	"slices"
	"spreadsheetPro/contracts"
	"strings"

	"go.alis.build/alog"
)

// Recalculation reports the cells one cascade wrote, in evaluation order.
// Cycles lists cells that were given #CYCLE, they are part of Changed too.
type Recalculation struct {
	Changed []contracts.CellAddress
	Cycles  []contracts.CellAddress
}

// RecalculationScheduler recomputes formula cells affected by an edit. The affected
// subgraph is split into strongly connected components which are evaluated in
// topological order, every cell at most once per cascade.
type RecalculationScheduler struct {
	grid     contracts.Grid
	tree     contracts.CellDependencyTree
	executor contracts.ExpressionExecutor
}

func NewRecalculationScheduler(grid contracts.Grid, tree contracts.CellDependencyTree, executor contracts.ExpressionExecutor) *RecalculationScheduler {
	return &RecalculationScheduler{
		grid:     grid,
		tree:     tree,
		executor: executor,
	}
}

// Cascade recomputes everything reading changedKey, directly or through other formulas.
// The changed cell itself is recomputed as well when it holds a formula.
func (s *RecalculationScheduler) Cascade(ctx context.Context, changedKey string) Recalculation {
	return s.recalculate(ctx, []string{changedKey})
}

// RecalculateAll recomputes every formula cell of the workbook
func (s *RecalculationScheduler) RecalculateAll(ctx context.Context) Recalculation {
	return s.recalculate(ctx, s.tree.FormulaKeys())
}

func (s *RecalculationScheduler) recalculate(ctx context.Context, seeds []string) Recalculation {
	affected, edges := s.collectAffected(seeds)

	recalculation := Recalculation{
		Changed: make([]contracts.CellAddress, 0, len(affected)),
		Cycles:  make([]contracts.CellAddress, 0),
	}

	components := stronglyConnectedComponents(affected, edges)
	// Tarjan emits a component only after everything it reaches, so walk backwards
	for i := len(components) - 1; i >= 0; i-- {
		component := components[i]

		if len(component) > 1 || slices.Contains(edges[component[0]], component[0]) {
			for _, key := range component {
				if address, ok := s.store(key, contracts.ErrorValue(contracts.ErrorCycle)); ok {
					recalculation.Changed = append(recalculation.Changed, address)
					recalculation.Cycles = append(recalculation.Cycles, address)
				}
			}
			alog.Noticef(ctx, "circular reference between cells %s", strings.Join(component, ", "))
			continue
		}

		key := component[0]
		formula, ok := s.tree.GetFormula(key)
		if !ok {
			continue
		}

		address, ok := ParseCellKey(key)
		if !ok {
			continue
		}

		value := s.executor.Evaluate(address.Sheet, address.Row, address.Col, formula, s.grid)
		s.grid.Set(address.Sheet, address.Row, address.Col, value)
		recalculation.Changed = append(recalculation.Changed, address)
	}

	return recalculation
}

// collectAffected walks dependents breadth first from the seeds. A seed belongs to the
// affected set only when it holds a formula or is reached again from another cell.
func (s *RecalculationScheduler) collectAffected(seeds []string) ([]string, map[string][]string) {
	visited := map[string]bool{}
	queue := make([]string, 0, len(seeds))

	for _, seed := range seeds {
		if _, isFormula := s.tree.GetFormula(seed); isFormula {
			visited[seed] = true
		}
		queue = append(queue, seed)
	}

	edges := map[string][]string{}
	expanded := map[string]bool{}
	for len(queue) > 0 {
		key := queue[0]
		queue = queue[1:]
		if expanded[key] {
			continue
		}
		expanded[key] = true

		dependents := s.tree.GetDirectDependents(key)
		edges[key] = dependents
		for _, dependent := range dependents {
			visited[dependent] = true
			queue = append(queue, dependent)
		}
	}

	affected := make([]string, 0, len(visited))
	for key := range visited {
		affected = append(affected, key)
	}
	slices.Sort(affected)

	// edges only make sense inside the affected set
	for key, dependents := range edges {
		if !visited[key] {
			delete(edges, key)
			continue
		}
		edges[key] = slices.DeleteFunc(slices.Clone(dependents), func(dependent string) bool {
			return !visited[dependent]
		})
	}

	return affected, edges
}

func (s *RecalculationScheduler) store(key string, value contracts.CellValue) (contracts.CellAddress, bool) {
	address, ok := ParseCellKey(key)
	if !ok {
		return address, false
	}

	s.grid.Set(address.Sheet, address.Row, address.Col, value)
	return address, true
}

// stronglyConnectedComponents is Tarjan's algorithm. Nodes are visited in the given
// order and members of each component are sorted, so the output is deterministic.
func stronglyConnectedComponents(nodes []string, edges map[string][]string) [][]string {
	index := 0
	indexes := make(map[string]int, len(nodes))
	lowLinks := make(map[string]int, len(nodes))
	onStack := make(map[string]bool, len(nodes))
	stack := make([]string, 0, len(nodes))
	components := make([][]string, 0, len(nodes))

	var connect func(node string)
	connect = func(node string) {
		indexes[node] = index
		lowLinks[node] = index
		index++
		stack = append(stack, node)
		onStack[node] = true

		for _, next := range edges[node] {
			if _, seen := indexes[next]; !seen {
				connect(next)
				lowLinks[node] = min(lowLinks[node], lowLinks[next])
			} else if onStack[next] {
				lowLinks[node] = min(lowLinks[node], indexes[next])
			}
		}

		if lowLinks[node] != indexes[node] {
			return
		}

		component := make([]string, 0, 1)
		for {
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			onStack[top] = false
			component = append(component, top)
			if top == node {
				break
			}
		}
		slices.Sort(component)
		components = append(components, component)
	}

	for _, node := range nodes {
		if _, seen := indexes[node]; !seen {
			connect(node)
		}
	}

	return components
}
