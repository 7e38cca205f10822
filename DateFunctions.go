package main

import (
	"math"
	"spreadsheetPro/contracts"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

const DateTimeLayout = "2006-01-02T15:04:05.000Z"

// accepted textual date forms, tried in order
var dateInputLayouts = []string{
	DateLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006/01/02",
}

type WallClock struct{}

func (WallClock) Now() time.Time {
	return time.Now()
}

func parseDate(value contracts.CellValue) (time.Time, bool) {
	if value.Kind != contracts.KindText {
		return time.Time{}, false
	}

	text := strings.TrimSpace(value.Text)
	for _, layout := range dateInputLayouts {
		if parsed, err := time.Parse(layout, text); err == nil {
			return parsed.UTC(), true
		}
	}

	return time.Time{}, false
}

func (ctx *evalContext) date(node exprNode) (time.Time, contracts.CellValue, bool) {
	value := ctx.raw(node)
	if value.IsError() {
		return time.Time{}, value, false
	}

	date, ok := parseDate(value)
	if !ok {
		return time.Time{}, contracts.ErrorValue(contracts.ErrorGeneric), false
	}
	return date, contracts.CellValue{}, true
}

func (ctx *evalContext) number(node exprNode) (float64, contracts.CellValue, bool) {
	numbers, err, ok := ctx.numbers([]exprNode{node}, 1, 1)
	if !ok {
		return 0, err, false
	}
	return numbers[0], contracts.CellValue{}, true
}

func formatDate(date time.Time) contracts.CellValue {
	return contracts.TextValue(date.UTC().Format(DateLayout))
}

// daysBetween works on unix seconds, time.Duration saturates past ~292 years
func daysBetween(start time.Time, end time.Time) float64 {
	return float64(end.Unix()-start.Unix()) / 86400
}

func truncateToDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
}

var dateToday = func(ctx *evalContext, args []exprNode) contracts.CellValue {
	return formatDate(ctx.clock.Now())
}

var dateNow = func(ctx *evalContext, args []exprNode) contracts.CellValue {
	return contracts.TextValue(ctx.clock.Now().UTC().Format(DateTimeLayout))
}

// dateDate builds a date from a 1-based month, out of range months and days roll over
var dateDate = func(ctx *evalContext, args []exprNode) contracts.CellValue {
	numbers, err, ok := ctx.numbers(args, 3, 3)
	if !ok {
		return err
	}

	year := math.Trunc(numbers[0])
	if year < 0 || year > 9999 || math.Abs(numbers[1]) > 120000 || math.Abs(numbers[2]) > 3650000 {
		return contracts.ErrorValue(contracts.ErrorGeneric)
	}

	return formatDate(time.Date(int(year), time.Month(int(numbers[1])), int(numbers[2]), 0, 0, 0, 0, time.UTC))
}

// dateUnit reads the DATEDIF unit, which may be a string or a bare name like d
func (ctx *evalContext) dateUnit(node exprNode) string {
	if identifier, ok := node.(*identifierNode); ok {
		return strings.ToLower(identifier.name)
	}
	return strings.ToLower(strings.Trim(ctx.raw(node).String(), `"'`))
}

var dateDateDif = func(ctx *evalContext, args []exprNode) contracts.CellValue {
	if len(args) != 3 {
		return contracts.ErrorValue(contracts.ErrorGeneric)
	}

	start, err, ok := ctx.date(args[0])
	if !ok {
		return err
	}
	end, err, ok := ctx.date(args[1])
	if !ok {
		return err
	}

	switch ctx.dateUnit(args[2]) {
	case "d":
		return contracts.NumberValue(math.Floor(daysBetween(start, end)))
	case "m":
		months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
		return contracts.NumberValue(float64(months))
	case "y":
		return contracts.NumberValue(float64(end.Year() - start.Year()))
	default:
		return contracts.ErrorValue(contracts.ErrorUnit)
	}
}

var dateEDate = func(ctx *evalContext, args []exprNode) contracts.CellValue {
	if len(args) != 2 {
		return contracts.ErrorValue(contracts.ErrorGeneric)
	}

	date, err, ok := ctx.date(args[0])
	if !ok {
		return err
	}
	months, err, ok := ctx.number(args[1])
	if !ok {
		return err
	}
	if math.Abs(months) > 120000 {
		return contracts.ErrorValue(contracts.ErrorGeneric)
	}

	return formatDate(date.AddDate(0, int(months), 0))
}

// dateNetworkDays counts Monday to Friday days in [start, end], both ends included,
// skipping holidays. Holiday arguments may be ranges, empty cells among them are ignored.
var dateNetworkDays = func(ctx *evalContext, args []exprNode) contracts.CellValue {
	if len(args) < 2 {
		return contracts.ErrorValue(contracts.ErrorGeneric)
	}

	start, err, ok := ctx.date(args[0])
	if !ok {
		return err
	}
	end, err, ok := ctx.date(args[1])
	if !ok {
		return err
	}
	start, end = truncateToDay(start), truncateToDay(end)

	holidays := make(map[time.Time]bool)
	for _, value := range ctx.flatten(args[2:]) {
		if value.IsError() {
			return value
		}
		if value.IsNull() {
			continue
		}

		holiday, ok := parseDate(value)
		if !ok {
			return contracts.ErrorValue(contracts.ErrorGeneric)
		}
		holidays[truncateToDay(holiday)] = true
	}

	if end.Before(start) {
		return contracts.NumberValue(0)
	}

	count := countWeekdays(start, end)
	for holiday := range holidays {
		if !holiday.Before(start) && !holiday.After(end) && isWeekday(holiday) {
			count--
		}
	}

	return contracts.NumberValue(float64(count))
}

func isWeekday(date time.Time) bool {
	return date.Weekday() != time.Saturday && date.Weekday() != time.Sunday
}

// countWeekdays counts whole weeks at once and walks only the remainder
func countWeekdays(start time.Time, end time.Time) int {
	days := int(daysBetween(start, end)) + 1
	count := days / 7 * 5

	for day := start.AddDate(0, 0, days/7*7); !day.After(end); day = day.AddDate(0, 0, 1) {
		if isWeekday(day) {
			count++
		}
	}

	return count
}

// dateWeekday numbers days for return type 1 as Monday=1 .. Saturday=6, Sunday=7,
// for type 2 as Sunday=0 .. Saturday=6 and for any other type as Sunday=1 .. Saturday=7
var dateWeekday = func(ctx *evalContext, args []exprNode) contracts.CellValue {
	if len(args) < 1 || len(args) > 2 {
		return contracts.ErrorValue(contracts.ErrorGeneric)
	}

	date, err, ok := ctx.date(args[0])
	if !ok {
		return err
	}

	returnType := 1.0
	if len(args) == 2 {
		if _, empty := args[1].(*emptyNode); !empty {
			if returnType, err, ok = ctx.number(args[1]); !ok {
				return err
			}
		}
	}

	day := int(date.Weekday())
	switch int(returnType) {
	case 1:
		if day == 0 {
			return contracts.NumberValue(7)
		}
		return contracts.NumberValue(float64(day))
	case 2:
		return contracts.NumberValue(float64(day))
	default:
		return contracts.NumberValue(float64(day + 1))
	}
}
