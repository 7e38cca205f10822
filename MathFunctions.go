package main

import (
	"math"
	"spreadsheetPro/contracts"
)

var calculateSum = func(ctx *evalContext, args []exprNode) contracts.CellValue {
	values := ctx.flatten(args)
	if err, ok := firstError(values); ok {
		return err
	}

	// booleans, text and empty cells add nothing
	sum := 0.0
	for _, value := range values {
		if number, ok := numericValue(value); ok {
			sum += number
		}
	}
	return checkFinite(sum)
}

// numericArguments keeps only entries with a numeric reading
func numericArguments(ctx *evalContext, args []exprNode) ([]float64, contracts.CellValue, bool) {
	values := ctx.flatten(args)
	if err, ok := firstError(values); ok {
		return nil, err, false
	}

	numbers := make([]float64, 0, len(values))
	for _, value := range values {
		if number, ok := numericValue(value); ok {
			numbers = append(numbers, number)
		}
	}
	return numbers, contracts.CellValue{}, true
}

var calculateAverage = func(ctx *evalContext, args []exprNode) contracts.CellValue {
	numbers, err, ok := numericArguments(ctx, args)
	if !ok {
		return err
	}
	if len(numbers) == 0 {
		return contracts.NumberValue(0)
	}

	sum := 0.0
	for _, number := range numbers {
		sum += number
	}
	return checkFinite(sum / float64(len(numbers)))
}

var calculateMin = func(ctx *evalContext, args []exprNode) contracts.CellValue {
	numbers, err, ok := numericArguments(ctx, args)
	if !ok {
		return err
	}
	if len(numbers) == 0 {
		return contracts.NumberValue(0)
	}

	minValue := numbers[0]
	for _, number := range numbers[1:] {
		minValue = min(minValue, number)
	}
	return contracts.NumberValue(minValue)
}

var calculateMax = func(ctx *evalContext, args []exprNode) contracts.CellValue {
	numbers, err, ok := numericArguments(ctx, args)
	if !ok {
		return err
	}
	if len(numbers) == 0 {
		return contracts.NumberValue(0)
	}

	maxValue := numbers[0]
	for _, number := range numbers[1:] {
		maxValue = max(maxValue, number)
	}
	return contracts.NumberValue(maxValue)
}

var calculateCount = func(ctx *evalContext, args []exprNode) contracts.CellValue {
	count := 0
	for _, value := range ctx.flatten(args) {
		if _, ok := numericValue(value); ok {
			count++
		}
	}
	return contracts.NumberValue(float64(count))
}

var calculateCountA = func(ctx *evalContext, args []exprNode) contracts.CellValue {
	count := 0
	for _, value := range ctx.flatten(args) {
		if !value.IsBlank() {
			count++
		}
	}
	return contracts.NumberValue(float64(count))
}

var calculateProduct = func(ctx *evalContext, args []exprNode) contracts.CellValue {
	values := ctx.flatten(args)
	if err, ok := firstError(values); ok {
		return err
	}

	product := 1.0
	for _, value := range values {
		if number, ok := numericValue(value); ok {
			product *= number
		}
	}
	return checkFinite(product)
}

var calculateAbs = func(ctx *evalContext, args []exprNode) contracts.CellValue {
	numbers, err, ok := ctx.numbers(args, 1, 1)
	if !ok {
		return err
	}
	return contracts.NumberValue(math.Abs(numbers[0]))
}

// calculateRound rounds half away from zero. Negative digits round left of the point.
var calculateRound = func(ctx *evalContext, args []exprNode) contracts.CellValue {
	numbers, err, ok := ctx.numbers(args, 1, 2)
	if !ok {
		return err
	}

	factor := math.Pow(10, math.Trunc(numbers[1]))
	return checkFinite(math.Round(numbers[0]*factor) / factor)
}

var calculateMod = func(ctx *evalContext, args []exprNode) contracts.CellValue {
	numbers, err, ok := ctx.numbers(args, 2, 2)
	if !ok {
		return err
	}
	if numbers[1] == 0 {
		return contracts.ErrorValue(contracts.ErrorGeneric)
	}
	return checkFinite(math.Mod(numbers[0], numbers[1]))
}

var calculateDifference = func(ctx *evalContext, args []exprNode) contracts.CellValue {
	numbers, err, ok := ctx.numbers(args, 2, 2)
	if !ok {
		return err
	}
	return checkFinite(numbers[0] - numbers[1])
}

var calculatePower = func(ctx *evalContext, args []exprNode) contracts.CellValue {
	numbers, err, ok := ctx.numbers(args, 2, 2)
	if !ok {
		return err
	}
	return checkFinite(math.Pow(numbers[0], numbers[1]))
}
