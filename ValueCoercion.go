package main

import (
	"math"
	"spreadsheetPro/contracts"
	"strconv"
	"strings"
)

func parseNumber(text string) (float64, bool) {
	number, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsNaN(number) || math.IsInf(number, 0) {
		return 0, false
	}
	return number, true
}

func booleanNumber(boolean bool) float64 {
	if boolean {
		return 1
	}
	return 0
}

// lenientNumber never fails: anything without a numeric reading counts as 0
func lenientNumber(value contracts.CellValue) float64 {
	number, ok := scalarNumber(value)
	if !ok {
		return 0
	}
	return number
}

// numericValue accepts numbers and numeric text only, empty cells and booleans are not numbers
func numericValue(value contracts.CellValue) (float64, bool) {
	switch value.Kind {
	case contracts.KindNumber:
		return value.Number, true
	case contracts.KindText:
		return parseNumber(value.Text)
	default:
		return 0, false
	}
}

// scalarNumber is the operand reading of arithmetic: empty is 0, booleans are 1 and 0
func scalarNumber(value contracts.CellValue) (float64, bool) {
	switch value.Kind {
	case contracts.KindNull:
		return 0, true
	case contracts.KindNumber:
		return value.Number, true
	case contracts.KindBoolean:
		return booleanNumber(value.Boolean), true
	case contracts.KindText:
		return parseNumber(value.Text)
	default:
		return 0, false
	}
}

// expressionNumber is how a referenced cell enters an expression: errors pass through,
// everything else becomes a number with unreadable text as 0
func expressionNumber(value contracts.CellValue) contracts.CellValue {
	if value.IsError() {
		return value
	}
	return contracts.NumberValue(lenientNumber(value))
}

func isTruthy(value contracts.CellValue) bool {
	switch value.Kind {
	case contracts.KindNumber:
		return value.Number != 0
	case contracts.KindBoolean:
		return value.Boolean
	case contracts.KindText:
		return value.Text != ""
	default:
		return false
	}
}

func checkFinite(number float64) contracts.CellValue {
	if math.IsNaN(number) || math.IsInf(number, 0) {
		return contracts.ErrorValue(contracts.ErrorGeneric)
	}
	return contracts.NumberValue(number)
}

// compareValues compares two text values lexicographically and everything else numerically.
// Text that has no numeric reading is compared by its printed form.
func compareValues(operator string, left contracts.CellValue, right contracts.CellValue) contracts.CellValue {
	var order int

	a, okLeft := scalarNumber(left)
	b, okRight := scalarNumber(right)

	switch {
	case left.Kind == contracts.KindText && right.Kind == contracts.KindText:
		order = strings.Compare(left.Text, right.Text)
	case okLeft && okRight:
		order = compareNumbers(a, b)
	default:
		order = strings.Compare(left.String(), right.String())
	}

	switch operator {
	case "==", "=":
		return contracts.BooleanValue(order == 0)
	case "!=", "<>":
		return contracts.BooleanValue(order != 0)
	case "<":
		return contracts.BooleanValue(order < 0)
	case ">":
		return contracts.BooleanValue(order > 0)
	case "<=":
		return contracts.BooleanValue(order <= 0)
	case ">=":
		return contracts.BooleanValue(order >= 0)
	}

	return contracts.ErrorValue(contracts.ErrorGeneric)
}

func compareNumbers(a float64, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
