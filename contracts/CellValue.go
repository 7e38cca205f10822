package contracts

import (
	"math"
	"strconv"
	"strings"
)

type ValueKind uint8

const (
	KindNull ValueKind = iota
	KindNumber
	KindText
	KindBoolean
	KindError
)

var valueKindNames = map[ValueKind]string{
	KindNull:    "null",
	KindNumber:  "number",
	KindText:    "text",
	KindBoolean: "boolean",
	KindError:   "error",
}

func (k ValueKind) String() string {
	return valueKindNames[k]
}

// ErrorSentinel is a cell value standing in for an evaluation failure
type ErrorSentinel string

const (
	// ErrorGeneric malformed expression, runtime failure or non-finite number
	ErrorGeneric ErrorSentinel = "#ERROR"
	// ErrorFunction function name is not in the supported table
	ErrorFunction ErrorSentinel = "#FUNC?"
	// ErrorUnit DATEDIF called with an unknown unit
	ErrorUnit ErrorSentinel = "#UNIT!"
	// ErrorCycle cell takes part in a circular reference
	ErrorCycle ErrorSentinel = "#CYCLE"
)

// CellValue is the resolved content of a cell. The zero value is an empty cell.
type CellValue struct {
	Kind    ValueKind
	Number  float64
	Text    string
	Boolean bool
	Error   ErrorSentinel
}

func NullValue() CellValue {
	return CellValue{}
}

func NumberValue(number float64) CellValue {
	return CellValue{Kind: KindNumber, Number: number}
}

func TextValue(text string) CellValue {
	return CellValue{Kind: KindText, Text: text}
}

func BooleanValue(boolean bool) CellValue {
	return CellValue{Kind: KindBoolean, Boolean: boolean}
}

func ErrorValue(sentinel ErrorSentinel) CellValue {
	return CellValue{Kind: KindError, Error: sentinel}
}

func (v CellValue) IsNull() bool {
	return v.Kind == KindNull
}

func (v CellValue) IsError() bool {
	return v.Kind == KindError
}

// IsBlank reports null cells and empty text, the entries COUNTA skips
func (v CellValue) IsBlank() bool {
	return v.Kind == KindNull || (v.Kind == KindText && v.Text == "")
}

func (v CellValue) String() string {
	switch v.Kind {
	case KindNumber:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	case KindText:
		return v.Text
	case KindBoolean:
		if v.Boolean {
			return "TRUE"
		}
		return "FALSE"
	case KindError:
		return string(v.Error)
	default:
		return ""
	}
}

// ParseLiteral converts raw non-formula cell input into a value.
// Numeric text becomes a number, empty input an empty cell, anything else text.
func ParseLiteral(raw string) CellValue {
	if raw == "" {
		return NullValue()
	}

	number, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err == nil && !math.IsNaN(number) && !math.IsInf(number, 0) {
		return NumberValue(number)
	}

	return TextValue(raw)
}
