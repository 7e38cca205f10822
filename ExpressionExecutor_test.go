package main

import (
	"spreadsheetPro/contracts"
	"testing"
	"time"

	"github.com/expr-lang/expr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

// 2024-03-15 is a Friday
var testClock = fixedClock{now: time.Date(2024, time.March, 15, 10, 20, 30, 0, time.UTC)}

func _newTestGrid() *SheetGrid {
	grid := NewSheetGrid()
	// A1:A3 = 1, 2, "x"
	grid.Set("Sheet1", 0, 0, contracts.NumberValue(1))
	grid.Set("Sheet1", 1, 0, contracts.NumberValue(2))
	grid.Set("Sheet1", 2, 0, contracts.TextValue("x"))
	// B1:B3 = 2, 4, "x"
	grid.Set("Sheet1", 0, 1, contracts.NumberValue(2))
	grid.Set("Sheet1", 1, 1, contracts.NumberValue(4))
	grid.Set("Sheet1", 2, 1, contracts.TextValue("x"))
	// C1 = "hello", C2 = TRUE, C3 = "2024-01-03"
	grid.Set("Sheet1", 0, 2, contracts.TextValue("hello"))
	grid.Set("Sheet1", 1, 2, contracts.BooleanValue(true))
	grid.Set("Sheet1", 2, 2, contracts.TextValue("2024-01-03"))
	// D1 = #CYCLE
	grid.Set("Sheet1", 0, 3, contracts.ErrorValue(contracts.ErrorCycle))

	grid.Set("Data", 0, 0, contracts.NumberValue(21))
	return grid
}

func TestExpressionExecutor_Evaluate(t *testing.T) {
	executor := NewExpressionExecutor(testClock)
	grid := _newTestGrid()

	_evaluate := func(formula string) contracts.CellValue {
		return executor.Evaluate("Sheet1", 9, 9, formula, grid)
	}

	assertResult := func(t *testing.T, testCases map[string]contracts.CellValue) {
		for formula, expected := range testCases {
			assert.Equal(t, expected, _evaluate(formula), formula)
		}
	}

	number := contracts.NumberValue
	text := contracts.TextValue
	boolean := contracts.BooleanValue
	genericError := contracts.ErrorValue(contracts.ErrorGeneric)

	t.Run("literals", func(t *testing.T) {
		assertResult(t, map[string]contracts.CellValue{
			"42":    number(42),
			" 1.5 ": number(1.5),
			"abc":   text("abc"),
			"NaN":   text("NaN"),
			"":      contracts.NullValue(),
		})
	})

	t.Run("arithmetic", func(t *testing.T) {
		assertResult(t, map[string]contracts.CellValue{
			"=1+2*3":     number(7),
			"=(1+2)*3":   number(9),
			"=-2^2":      number(-4),
			"=2^3^2":     number(512),
			"=7%3":       number(1),
			"=-7%3":      number(-1),
			"=2*-3":      number(-6),
			"=+5":        number(5),
			`="1"+"2"`:   number(3),
			"=TRUE+TRUE": number(2),
		})
	})

	t.Run("errors", func(t *testing.T) {
		assertResult(t, map[string]contracts.CellValue{
			"=":          genericError,
			"=1/0":       genericError,
			"=5%0":       genericError,
			"=(1+2":      genericError,
			"=12abc":     genericError,
			`="a"+1`:     genericError,
			"=10^400":    genericError,
			"=A1:A3":     genericError,
			"=foo":       genericError,
			"=FOO(1)":    contracts.ErrorValue(contracts.ErrorFunction),
			"=1+FOO(1)":  contracts.ErrorValue(contracts.ErrorFunction),
			"=D1+1":      contracts.ErrorValue(contracts.ErrorCycle),
			"=SUM(D1)":   contracts.ErrorValue(contracts.ErrorCycle),
			`=IF(D1,1,2)`: contracts.ErrorValue(contracts.ErrorCycle),
		})
	})

	t.Run("strings", func(t *testing.T) {
		assertResult(t, map[string]contracts.CellValue{
			`="a""b"`: text(`a"b`),
			"='x'":    text("x"),
			`=""`:     text(""),
		})
	})

	t.Run("comparisons", func(t *testing.T) {
		assertResult(t, map[string]contracts.CellValue{
			"=1<2":        boolean(true),
			"=2<=1":       boolean(false),
			"=A1=1":       boolean(true),
			"=A1==1":      boolean(true),
			"=A1<>1":      boolean(false),
			"=A1!=2":      boolean(true),
			`="b">"a"`:    boolean(true),
			`="10"=10`:    boolean(true),
			`="abc"="abc"`: boolean(true),
			"=1+1>=2":     boolean(true),
		})
	})

	t.Run("references", func(t *testing.T) {
		assertResult(t, map[string]contracts.CellValue{
			"=A1+A2":         number(3),
			"=a1*10":         number(10),
			"=C1":            number(0),
			"=C2+1":          number(2),
			"=Z99":           number(0),
			"=Data!A1*2":     number(42),
			"=Missing!A1+1":  number(1),
			"=Sheet1!B2-A2":  number(2),
		})

		assert.Equal(t, number(2), executor.Evaluate("Data", 0, 1, "=A1-19", grid))
	})

	t.Run("aggregates", func(t *testing.T) {
		assertResult(t, map[string]contracts.CellValue{
			"=SUM(A1:A3)":      number(3),
			"=SUM(A1, A2, 10)": number(13),
			"=sum(1,2)":        number(3),
			"=SUM (1, 2)":      number(3),
			"=SUM(1,,2)":       number(3),
			"=SUM(A3:A1)":      number(3),
			"=SUM()":           number(0),
			"=SUM(C2)":         number(0),
			"=SUM(TRUE,2)":     number(2),
			`=SUM("3",C1)`:     number(3),
			"=SUM(SUM(1,2),4)": number(7),
			"=AVERAGE(B1:B3)":  number(3),
			"=AVERAGE()":       number(0),
			"=AVERAGE(C1)":     number(0),
			"=MIN(A1:B3)":      number(1),
			"=MAX(A1:B3, 3)":   number(4),
			"=MIN(C1)":         number(0),
			"=COUNT(A1:A3)":    number(2),
			"=COUNT(A1:D1)":    number(2),
			"=COUNTA(A1:A3)":   number(3),
			`=COUNTA("", A1)`:  number(1),
			"=PRODUCT(A1:B2)":  number(16),
			`=PRODUCT(2,3,"x")`: number(6),
			"=PRODUCT()":       number(1),
			"=SUM(A1:A2)*2":    number(6),
		})
	})

	t.Run("math", func(t *testing.T) {
		assertResult(t, map[string]contracts.CellValue{
			"=ABS(-3)":             number(3),
			"=ABS()":               genericError,
			"=ABS(1,2)":            genericError,
			`=ABS("x")`:            genericError,
			"=ROUND(2.5)":          number(3),
			"=ROUND(-2.5)":         number(-3),
			"=ROUND(3.14159, 3)":   number(3.142),
			"=ROUND(1234.5678,-2)": number(1200),
			"=MOD(7,3)":            number(1),
			"=MOD(-7,3)":           number(-1),
			"=MOD(1,0)":            genericError,
			"=DIFFERENCE(10,4)":    number(6),
			"=DIFFERENCE(A2,A1)":   number(1),
			"=POWER(2,10)":         number(1024),
			"=POWER(10,400)":       genericError,
		})
	})

	t.Run("logic", func(t *testing.T) {
		assertResult(t, map[string]contracts.CellValue{
			`=IF(A1>0,"yes","no")`: text("yes"),
			`=IF(A1>5,"yes","no")`: text("no"),
			`=IF(0,"yes")`:         boolean(false),
			`=IF(1,"yes")`:         text("yes"),
			"=IF(1,1/0,2)":         genericError,
			"=IF(0,1/0,2)":         number(2),
			"=IF(C1,1,0)":          number(0),
			"=IF(C2,A3,1)":         number(0),
			"=IF(A1>0,Z9,1)":       number(0),
			"=IF(A1>0,A2,0)":       number(2),
			`=IF(A1>0,"",0)`:       text(""),
			"=IF()":                genericError,
			"=AND(TRUE,1)":         boolean(true),
			"=AND(TRUE,0)":         boolean(false),
			"=AND()":               boolean(true),
			"=AND(A1:A2, Z9)":      boolean(true),
			"=OR(0,FALSE)":         boolean(false),
			`=OR(0,"x")`:           boolean(true),
			"=OR()":                boolean(false),
			"=OR(D1)":              contracts.ErrorValue(contracts.ErrorCycle),
		})
	})

	t.Run("dates", func(t *testing.T) {
		assertResult(t, map[string]contracts.CellValue{
			"=TODAY()":                                    text("2024-03-15"),
			"=NOW()":                                      text("2024-03-15T10:20:30.000Z"),
			"=DATE(2024,3,15)":                            text("2024-03-15"),
			"=DATE(2024,2,30)":                            text("2024-03-01"),
			"=DATE(2024,13,1)":                            text("2025-01-01"),
			"=DATE(10000,1,1)":                            genericError,
			"=DATE(2024,1)":                               genericError,
			`=DATEDIF("2024-01-01","2024-03-15","d")`:     number(74),
			`=DATEDIF("2024-01-01","2024-03-15","m")`:     number(2),
			`=DATEDIF("2020-06-01","2024-03-15","y")`:     number(4),
			`=DATEDIF("2024-01-01","2024-03-15",d)`:       number(74),
			`=DATEDIF("2024-01-01","2024-03-15","D")`:     number(74),
			`=DATEDIF(C3,TODAY(),"d")`:                    number(72),
			`=DATEDIF("2024-01-01","2024-03-15","w")`:     contracts.ErrorValue(contracts.ErrorUnit),
			`=DATEDIF("nope","2024-03-15","d")`:           genericError,
			`=DATEDIF("2024/01/01","2024-01-02T12:00:00Z","d")`: number(1),
			`=EDATE("2024-01-15",2)`:                      text("2024-03-15"),
			`=EDATE("2024-01-15",-1)`:                     text("2023-12-15"),
			`=EDATE("2024-01-15")`:                        genericError,
			`=WEEKDAY("2024-03-17")`:                      number(7),
			`=WEEKDAY("2024-03-17",2)`:                    number(0),
			`=WEEKDAY("2024-03-17",3)`:                    number(1),
			`=WEEKDAY("2024-03-15")`:                      number(5),
			`=WEEKDAY("2024-03-15",)`:                     number(5),
			`=WEEKDAY("2024-03-15",2)`:                    number(5),
			`=WEEKDAY("2024-03-15",3)`:                    number(6),
			`=WEEKDAY(1)`:                                 genericError,
		})
	})

	t.Run("networkdays", func(t *testing.T) {
		assertResult(t, map[string]contracts.CellValue{
			`=NETWORKDAYS("2024-01-01","2024-01-05")`:                          number(5),
			`=NETWORKDAYS("2024-01-01","2024-01-14")`:                          number(10),
			`=NETWORKDAYS("2024-01-01","2024-01-14","2024-01-03")`:             number(9),
			`=NETWORKDAYS("2024-01-01","2024-01-14","2024-01-06")`:             number(10),
			`=NETWORKDAYS("2024-01-01","2024-01-14","2024-01-03","2024-01-03")`: number(9),
			`=NETWORKDAYS("2024-01-01","2024-01-14",C3:C4)`:                    number(9),
			`=NETWORKDAYS("2024-01-14","2024-01-01")`:                          number(0),
			`=NETWORKDAYS("2024-01-06","2024-01-07")`:                          number(0),
			`=NETWORKDAYS("2024-01-01","2024-01-14","soon")`:                   genericError,
			`=NETWORKDAYS("2024-01-01")`:                                       genericError,
			`=NETWORKDAYS("2024-01-01","2025-12-31")`:                          number(523),
		})
	})

	t.Run("never_panics", func(t *testing.T) {
		for _, formula := range []string{"=((((", "=)", "=SUM(,,,)", "=IF(,,)", "=DATEDIF(,,)", "=NETWORKDAYS(,)", "=WEEKDAY(,)", "='"} {
			assert.NotPanics(t, func() {
				value := _evaluate(formula)
				assert.True(t, value.IsError() || value.Kind == contracts.KindNumber || value.Kind == contracts.KindBoolean, formula)
			})
		}
	})
}

// pure arithmetic must agree with an independent expression engine
func TestExpressionExecutor_ArithmeticMatchesExpr(t *testing.T) {
	executor := NewExpressionExecutor(testClock)
	grid := NewSheetGrid()

	expressions := []string{
		"1 + 2 * 3",
		"(1 + 2) * 3",
		"10 / 4",
		"2 - 3 - 4",
		"-3 + 5",
		"1.5 * (2 - 0.5) / 3",
		"100 / 8 / 2",
		"-(2 + 3) * 4",
		"7 - -2",
		"0.1 + 0.2",
		"((4 - 1) * (6 + 2)) / (3 - 1.5)",
	}

	for _, expression := range expressions {
		program, err := expr.Compile(expression)
		require.NoError(t, err, expression)
		output, err := expr.Run(program, nil)
		require.NoError(t, err, expression)

		var expected float64
		switch v := output.(type) {
		case int:
			expected = float64(v)
		case float64:
			expected = v
		default:
			t.Fatalf("unexpected %T from expr for %s", output, expression)
		}

		actual := executor.Evaluate("Sheet1", 0, 0, "="+expression, grid)
		assert.Equal(t, contracts.KindNumber, actual.Kind, expression)
		assert.InDelta(t, expected, actual.Number, 1e-12, expression)
	}
}

func TestExpressionExecutor_ExtractReferences(t *testing.T) {
	executor := NewExpressionExecutor(nil)

	t.Run("tokens_as_written", func(t *testing.T) {
		references := executor.ExtractReferences(`=A1+"B2"+Sheet2!C3+SUM(D1:D4)+a1+A1+'E5'`)

		assert.Equal(t, []string{"A1", "Sheet2!C3", "D1:D4", "a1"}, references)
	})

	t.Run("not_a_formula", func(t *testing.T) {
		assert.Empty(t, executor.ExtractReferences("A1+B1"))
	})

	t.Run("unparseable", func(t *testing.T) {
		assert.Empty(t, executor.ExtractReferences(`=A1+"B1`))
	})

	t.Run("parser_errors_still_track_references", func(t *testing.T) {
		assert.Equal(t, []string{"A1", "B1"}, executor.ExtractReferences("=A1+B1)"))
	})
}

func TestExpressionExecutor_IsFormula(t *testing.T) {
	executor := NewExpressionExecutor(nil)

	assert.True(t, executor.IsFormula("=1"))
	assert.True(t, executor.IsFormula("="))
	assert.False(t, executor.IsFormula(" =1"))
	assert.False(t, executor.IsFormula("1"))
	assert.Len(t, executor.FunctionNames(), 22)
}
