package main

import "spreadsheetPro/contracts"

// logicIf evaluates only the branch that is taken. A missing else branch yields FALSE.
// Condition and branches are expressions, so a referenced cell reads as a number.
var logicIf = func(ctx *evalContext, args []exprNode) contracts.CellValue {
	if len(args) == 0 || len(args) > 3 {
		return contracts.ErrorValue(contracts.ErrorGeneric)
	}

	condition := args[0].eval(ctx)
	if condition.IsError() {
		return condition
	}

	branch := 2
	if isTruthy(condition) {
		branch = 1
	}

	if branch >= len(args) {
		return contracts.BooleanValue(branch == 1)
	}
	return args[branch].eval(ctx)
}

var logicAnd = func(ctx *evalContext, args []exprNode) contracts.CellValue {
	result := true
	for _, value := range ctx.flatten(args) {
		if value.IsError() {
			return value
		}
		if !value.IsNull() {
			result = result && isTruthy(value)
		}
	}
	return contracts.BooleanValue(result)
}

var logicOr = func(ctx *evalContext, args []exprNode) contracts.CellValue {
	result := false
	for _, value := range ctx.flatten(args) {
		if value.IsError() {
			return value
		}
		result = result || isTruthy(value)
	}
	return contracts.BooleanValue(result)
}
