package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func _tokenValues(t *testing.T, expression string) ([]tokenType, []string) {
	tokens, err := tokenizeFormula(expression)
	require.NoError(t, err, expression)

	types := make([]tokenType, 0, len(tokens))
	values := make([]string, 0, len(tokens))
	for _, token := range tokens {
		types = append(types, token.typ)
		values = append(values, token.value)
	}
	return types, values
}

func TestTokenizeFormula(t *testing.T) {
	t.Run("arithmetic", func(t *testing.T) {
		types, values := _tokenValues(t, "1.5 + A1*(2e3 - .5)")

		assert.Equal(t, []tokenType{
			tokenNumber, tokenOperator, tokenReference, tokenOperator, tokenLeftParen,
			tokenNumber, tokenOperator, tokenNumber, tokenRightParen, tokenEOF,
		}, types)
		assert.Equal(t, []string{"1.5", "+", "A1", "*", "(", "2e3", "-", ".5", ")", ""}, values)
	})

	t.Run("references", func(t *testing.T) {
		types, values := _tokenValues(t, "Sheet2!B3 + a1:B4 + Data!A1:Data!C2 + 2024!A1")

		assert.Equal(t, []tokenType{
			tokenReference, tokenOperator, tokenRange, tokenOperator, tokenRange, tokenOperator, tokenReference, tokenEOF,
		}, types)
		assert.Equal(t, []string{"Sheet2!B3", "+", "a1:B4", "+", "Data!A1:Data!C2", "+", "2024!A1", ""}, values)
	})

	t.Run("functions_and_words", func(t *testing.T) {
		types, values := _tokenValues(t, "sum (A1, TRUE, false, d)")

		assert.Equal(t, []tokenType{
			tokenFunction, tokenLeftParen, tokenReference, tokenComma, tokenBoolean, tokenComma,
			tokenBoolean, tokenComma, tokenIdentifier, tokenRightParen, tokenEOF,
		}, types)
		assert.Equal(t, "SUM", values[0])
		assert.Equal(t, "FALSE", values[6])
		assert.Equal(t, "d", values[8])
	})

	t.Run("strings", func(t *testing.T) {
		types, values := _tokenValues(t, `"say ""hi""" 'it''s'`)

		assert.Equal(t, tokenString, types[0])
		assert.Equal(t, `say "hi"`, values[0])

		_, values = _tokenValues(t, `'it''s'`)
		assert.Equal(t, "it's", values[0])

		types, _ = _tokenValues(t, `"A1"`)
		assert.Equal(t, []tokenType{tokenString, tokenEOF}, types)
	})

	t.Run("operators_longest_first", func(t *testing.T) {
		_, values := _tokenValues(t, "1<=2>=3<>4==5!=6<7>8=9")

		assert.Equal(t, []string{"1", "<=", "2", ">=", "3", "<>", "4", "==", "5", "!=", "6", "<", "7", ">", "8", "=", "9", ""}, values)
	})

	t.Run("errors", func(t *testing.T) {
		for _, expression := range []string{`"open`, "12abc", "1 # 2", "Sheet1!", "Sheet1!XYZ", "A1 & B1"} {
			_, err := tokenizeFormula(expression)
			assert.ErrorIs(t, err, FormulaSyntaxError, expression)
		}
	})

	t.Run("positions", func(t *testing.T) {
		tokens, err := tokenizeFormula("  A1 +B2")
		require.NoError(t, err)

		assert.Equal(t, 2, tokens[0].pos)
		assert.Equal(t, 5, tokens[1].pos)
		assert.Equal(t, 6, tokens[2].pos)
	})
}

func TestParseFormula(t *testing.T) {
	t.Run("precedence", func(t *testing.T) {
		node, err := parseFormula("1+2*3")
		require.NoError(t, err)

		sum := node.(*binaryNode)
		assert.Equal(t, "+", sum.operator)
		assert.Equal(t, &numberNode{value: 1}, sum.left)
		assert.Equal(t, "*", sum.right.(*binaryNode).operator)
	})

	t.Run("power_is_right_associative", func(t *testing.T) {
		node, err := parseFormula("2^3^2")
		require.NoError(t, err)

		power := node.(*binaryNode)
		assert.Equal(t, &numberNode{value: 2}, power.left)
		assert.Equal(t, "^", power.right.(*binaryNode).operator)
	})

	t.Run("unary_minus_wraps_power", func(t *testing.T) {
		node, err := parseFormula("-2^2")
		require.NoError(t, err)

		unary := node.(*unaryNode)
		assert.Equal(t, "-", unary.operator)
		assert.IsType(t, &binaryNode{}, unary.operand)
	})

	t.Run("left_associative", func(t *testing.T) {
		node, err := parseFormula("8-3-2")
		require.NoError(t, err)

		outer := node.(*binaryNode)
		assert.Equal(t, &numberNode{value: 2}, outer.right)
		assert.IsType(t, &binaryNode{}, outer.left)
	})

	t.Run("calls", func(t *testing.T) {
		node, err := parseFormula("IF(A1>0, SUM(B1:B3, MAX(1, 2)), )")
		require.NoError(t, err)

		call := node.(*callNode)
		assert.Equal(t, "IF", call.name)
		require.Len(t, call.args, 3)
		assert.IsType(t, &binaryNode{}, call.args[0])
		assert.IsType(t, &emptyNode{}, call.args[2])

		nested := call.args[1].(*callNode)
		assert.Equal(t, "SUM", nested.name)
		assert.Equal(t, &rangeNode{token: "B1:B3"}, nested.args[0])
		assert.Len(t, nested.args[1].(*callNode).args, 2)
	})

	t.Run("empty_call", func(t *testing.T) {
		node, err := parseFormula("TODAY()")
		require.NoError(t, err)
		assert.Empty(t, node.(*callNode).args)
	})

	t.Run("empty_arguments", func(t *testing.T) {
		node, err := parseFormula("SUM(1,,2)")
		require.NoError(t, err)

		args := node.(*callNode).args
		require.Len(t, args, 3)
		assert.IsType(t, &emptyNode{}, args[1])
	})

	t.Run("errors", func(t *testing.T) {
		for _, expression := range []string{"", "1+", "(1+2", "1+2)", "SUM(1,2", "SUM 1", "1 2", "*3", ","} {
			_, err := parseFormula(expression)
			assert.ErrorIs(t, err, FormulaSyntaxError, expression)
		}
	})
}
