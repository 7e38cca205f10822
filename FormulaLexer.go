package main

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

type tokenType int

const (
	tokenEOF tokenType = iota
	tokenNumber
	tokenString
	tokenBoolean
	tokenReference
	tokenRange
	tokenFunction
	tokenIdentifier
	tokenOperator
	tokenLeftParen
	tokenRightParen
	tokenComma
)

type formulaToken struct {
	typ   tokenType
	value string
	pos   int
}

var FormulaSyntaxError = errors.New("formula syntax error")

// operators longest first, so "<=" wins over "<"
var formulaOperators = []string{"==", "!=", "<>", "<=", ">=", "+", "-", "*", "/", "%", "^", "=", "<", ">"}

type formulaLexer struct {
	runes  []rune
	pos    int
	tokens []formulaToken
}

// tokenizeFormula splits an expression (without the leading "=") into tokens.
// References keep the text as written: "Sheet2!B3", "a1:B4".
func tokenizeFormula(expression string) ([]formulaToken, error) {
	lexer := &formulaLexer{runes: []rune(expression)}

	for {
		lexer.skipWhitespace()
		if lexer.pos >= len(lexer.runes) {
			lexer.emit(tokenEOF, "", lexer.pos)
			return lexer.tokens, nil
		}

		if err := lexer.next(); err != nil {
			return nil, err
		}
	}
}

func (l *formulaLexer) emit(typ tokenType, value string, pos int) {
	l.tokens = append(l.tokens, formulaToken{typ: typ, value: value, pos: pos})
}

func (l *formulaLexer) peek(offset int) rune {
	if l.pos+offset >= len(l.runes) {
		return 0
	}
	return l.runes[l.pos+offset]
}

func (l *formulaLexer) skipWhitespace() {
	for l.pos < len(l.runes) && unicode.IsSpace(l.runes[l.pos]) {
		l.pos++
	}
}

func (l *formulaLexer) next() error {
	start := l.pos
	char := l.runes[l.pos]

	switch {
	case char == '"' || char == '\'':
		return l.lexString(char)

	case char == '(':
		l.pos++
		l.emit(tokenLeftParen, "(", start)
		return nil

	case char == ')':
		l.pos++
		l.emit(tokenRightParen, ")", start)
		return nil

	case char == ',':
		l.pos++
		l.emit(tokenComma, ",", start)
		return nil

	case isWordRune(char):
		// "2024!A1" is a reference on sheet "2024", a bare "2024" is a number
		if unicode.IsDigit(char) {
			if !l.isSheetSeparator(l.wordEnd(l.pos)) {
				return l.lexNumber()
			}
		}
		return l.lexWord()

	case char == '.' && unicode.IsDigit(l.peek(1)):
		return l.lexNumber()
	}

	rest := string(l.runes[l.pos:])
	for _, operator := range formulaOperators {
		if strings.HasPrefix(rest, operator) {
			l.pos += len([]rune(operator))
			l.emit(tokenOperator, operator, start)
			return nil
		}
	}

	return fmt.Errorf("%w: unexpected %q at %d", FormulaSyntaxError, char, start)
}

func isWordRune(char rune) bool {
	return char == '_' || unicode.IsLetter(char) || unicode.IsDigit(char)
}

func (l *formulaLexer) wordEnd(from int) int {
	end := from
	for end < len(l.runes) && isWordRune(l.runes[end]) {
		end++
	}
	return end
}

// isSheetSeparator reports a "!" at pos that is not the start of "!="
func (l *formulaLexer) isSheetSeparator(pos int) bool {
	return pos < len(l.runes) && l.runes[pos] == '!' &&
		(pos+1 >= len(l.runes) || l.runes[pos+1] != '=')
}

func (l *formulaLexer) lexString(quote rune) error {
	start := l.pos
	l.pos++

	var value strings.Builder
	for l.pos < len(l.runes) {
		char := l.runes[l.pos]
		if char == quote {
			// doubled quote is an escaped quote
			if l.peek(1) == quote {
				value.WriteRune(quote)
				l.pos += 2
				continue
			}

			l.pos++
			l.emit(tokenString, value.String(), start)
			return nil
		}

		value.WriteRune(char)
		l.pos++
	}

	return fmt.Errorf("%w: unterminated string at %d", FormulaSyntaxError, start)
}

func (l *formulaLexer) lexNumber() error {
	start := l.pos
	for l.pos < len(l.runes) && unicode.IsDigit(l.runes[l.pos]) {
		l.pos++
	}

	if l.peek(0) == '.' {
		l.pos++
		for l.pos < len(l.runes) && unicode.IsDigit(l.runes[l.pos]) {
			l.pos++
		}
	}

	if exponent := l.peek(0); exponent == 'e' || exponent == 'E' {
		digitAt := 1
		if sign := l.peek(1); sign == '+' || sign == '-' {
			digitAt = 2
		}
		if unicode.IsDigit(l.peek(digitAt)) {
			l.pos += digitAt
			for l.pos < len(l.runes) && unicode.IsDigit(l.runes[l.pos]) {
				l.pos++
			}
		}
	}

	// "12abc" is neither a number nor a reference
	if l.pos < len(l.runes) && isWordRune(l.runes[l.pos]) {
		return fmt.Errorf("%w: malformed number at %d", FormulaSyntaxError, start)
	}

	l.emit(tokenNumber, string(l.runes[start:l.pos]), start)
	return nil
}

func (l *formulaLexer) lexWord() error {
	start := l.pos
	l.pos = l.wordEnd(l.pos)
	word := string(l.runes[start:l.pos])

	if l.isSheetSeparator(l.pos) {
		return l.lexSheetReference(start)
	}

	if _, _, ok := ParseCellToken(word); ok {
		l.lexReferenceTail(start)
		return nil
	}

	upper := strings.ToUpper(word)
	if upper == "TRUE" || upper == "FALSE" {
		l.emit(tokenBoolean, upper, start)
		return nil
	}

	// function names may be followed by spaces before the parenthesis
	lookahead := l.pos
	for lookahead < len(l.runes) && unicode.IsSpace(l.runes[lookahead]) {
		lookahead++
	}
	if lookahead < len(l.runes) && l.runes[lookahead] == '(' {
		l.emit(tokenFunction, upper, start)
		return nil
	}

	l.emit(tokenIdentifier, word, start)
	return nil
}

// lexSheetReference consumes "Sheet!A1" or "Sheet!A1:B2", the sheet word is already read
func (l *formulaLexer) lexSheetReference(start int) error {
	l.pos++ // "!"
	cellStart := l.pos
	l.pos = l.wordEnd(l.pos)

	if _, _, ok := ParseCellToken(string(l.runes[cellStart:l.pos])); !ok {
		return fmt.Errorf("%w: malformed reference at %d", FormulaSyntaxError, start)
	}

	l.lexReferenceTail(start)
	return nil
}

// lexReferenceTail extends a cell token into a range when ":" and a second corner follow
func (l *formulaLexer) lexReferenceTail(start int) {
	if l.peek(0) == ':' {
		cornerStart := l.pos + 1
		cornerEnd := l.wordEnd(cornerStart)

		// the end corner may repeat the sheet prefix
		if cornerEnd < len(l.runes) && l.runes[cornerEnd] == '!' {
			cornerEnd = l.wordEnd(cornerEnd + 1)
		}

		corner := string(l.runes[cornerStart:cornerEnd])
		if _, rest, ok := ResolveSheetScope(corner, ""); ok {
			if _, _, ok = ParseCellToken(rest); ok {
				l.pos = cornerEnd
				l.emit(tokenRange, string(l.runes[start:l.pos]), start)
				return
			}
		}
	}

	l.emit(tokenReference, string(l.runes[start:l.pos]), start)
}
