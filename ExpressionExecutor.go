package main

import (
	"spreadsheetPro/contracts"
	"strings"
)

// formulaFunction receives unevaluated arguments, so it decides itself
// which to evaluate and whether references are read raw or as numbers
type formulaFunction func(ctx *evalContext, args []exprNode) contracts.CellValue

type ExpressionExecutor struct {
	clock     contracts.Clock
	functions map[string]formulaFunction
}

// evalContext carries everything one evaluation may read
type evalContext struct {
	grid      contracts.Grid
	sheet     string
	clock     contracts.Clock
	functions map[string]formulaFunction
}

func NewExpressionExecutor(clock contracts.Clock) *ExpressionExecutor {
	if clock == nil {
		clock = WallClock{}
	}

	return &ExpressionExecutor{
		clock: clock,
		functions: map[string]formulaFunction{
			"SUM":         calculateSum,
			"AVERAGE":     calculateAverage,
			"MIN":         calculateMin,
			"MAX":         calculateMax,
			"COUNT":       calculateCount,
			"COUNTA":      calculateCountA,
			"PRODUCT":     calculateProduct,
			"ABS":         calculateAbs,
			"ROUND":       calculateRound,
			"MOD":         calculateMod,
			"DIFFERENCE":  calculateDifference,
			"POWER":       calculatePower,
			"IF":          logicIf,
			"AND":         logicAnd,
			"OR":          logicOr,
			"TODAY":       dateToday,
			"NOW":         dateNow,
			"DATE":        dateDate,
			"DATEDIF":     dateDateDif,
			"EDATE":       dateEDate,
			"NETWORKDAYS": dateNetworkDays,
			"WEEKDAY":     dateWeekday,
		},
	}
}

// Evaluate computes the value of a cell input. Literals are parsed as is,
// formulas that cannot be parsed or evaluated become #ERROR.
// The sheet is the scope for references without a sheet prefix.
func (e *ExpressionExecutor) Evaluate(sheet string, row int, col int, formula string, grid contracts.Grid) (value contracts.CellValue) {
	if !e.IsFormula(formula) {
		return contracts.ParseLiteral(formula)
	}

	defer func() {
		if recover() != nil {
			value = contracts.ErrorValue(contracts.ErrorGeneric)
		}
	}()

	node, err := parseFormula(strings.TrimPrefix(formula, contracts.FormulaPrefix))
	if err != nil {
		return contracts.ErrorValue(contracts.ErrorGeneric)
	}

	ctx := &evalContext{
		grid:      grid,
		sheet:     sheet,
		clock:     e.clock,
		functions: e.functions,
	}

	return finalizeResult(node.eval(ctx))
}

// ExtractReferences lists cell and range tokens of the formula as written, without duplicates.
// Text inside string literals is never a reference.
func (e *ExpressionExecutor) ExtractReferences(formula string) []string {
	references := make([]string, 0)
	if !e.IsFormula(formula) {
		return references
	}

	tokens, err := tokenizeFormula(strings.TrimPrefix(formula, contracts.FormulaPrefix))
	if err != nil {
		return references
	}

	seen := make(map[string]bool)
	for _, token := range tokens {
		if (token.typ == tokenReference || token.typ == tokenRange) && !seen[token.value] {
			seen[token.value] = true
			references = append(references, token.value)
		}
	}

	return references
}

func (e *ExpressionExecutor) IsFormula(input string) bool {
	return strings.HasPrefix(input, contracts.FormulaPrefix)
}

func (e *ExpressionExecutor) FunctionNames() []string {
	names := make([]string, 0, len(e.functions))
	for name := range e.functions {
		names = append(names, name)
	}
	return names
}

func finalizeResult(value contracts.CellValue) contracts.CellValue {
	switch value.Kind {
	case contracts.KindNull:
		return contracts.ErrorValue(contracts.ErrorGeneric)
	case contracts.KindNumber:
		return checkFinite(value.Number)
	default:
		return value
	}
}

// raw evaluates an argument keeping referenced cells as stored, text included
func (ctx *evalContext) raw(node exprNode) contracts.CellValue {
	if reference, ok := node.(*referenceNode); ok {
		return ReadCell(ctx.grid, ctx.sheet, reference.token)
	}
	return node.eval(ctx)
}

// flatten expands range arguments into their cells and reads the rest raw
func (ctx *evalContext) flatten(args []exprNode) []contracts.CellValue {
	values := make([]contracts.CellValue, 0, len(args))
	for _, arg := range args {
		if r, ok := arg.(*rangeNode); ok {
			values = append(values, ReadRange(ctx.grid, ctx.sheet, r.token)...)
		} else {
			values = append(values, ctx.raw(arg))
		}
	}
	return values
}

// numbers evaluates positional numeric arguments. Arguments past len(args) up to
// maxArgs read as 0, fewer than minArgs is an error.
func (ctx *evalContext) numbers(args []exprNode, minArgs int, maxArgs int) ([]float64, contracts.CellValue, bool) {
	if len(args) < minArgs || len(args) > maxArgs {
		return nil, contracts.ErrorValue(contracts.ErrorGeneric), false
	}

	numbers := make([]float64, maxArgs)
	for i, arg := range args {
		value := arg.eval(ctx)
		if value.IsError() {
			return nil, value, false
		}

		number, ok := scalarNumber(value)
		if !ok {
			return nil, contracts.ErrorValue(contracts.ErrorGeneric), false
		}
		numbers[i] = number
	}

	return numbers, contracts.CellValue{}, true
}

func firstError(values []contracts.CellValue) (contracts.CellValue, bool) {
	for _, value := range values {
		if value.IsError() {
			return value, true
		}
	}
	return contracts.CellValue{}, false
}
