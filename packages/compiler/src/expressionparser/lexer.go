package expressionparser

import (
	"strconv"
	"strings"
)

// TokenType represents the type of a token
type TokenType int

const (
	TokenTypeCharacter TokenType = iota
	TokenTypeIdentifier
	TokenTypeKeyword
	TokenTypeString
	TokenTypeOperator
	TokenTypeNumber
	TokenTypeError
)

var keywords = []string{
	"var",
	"let",
	"as",
	"null",
	"undefined",
	"true",
	"false",
	"if",
	"else",
	"this",
}

// Token represents a token in a binding expression
type Token struct {
	Index    int
	End      int
	Type     TokenType
	NumValue float64
	StrValue string
}

// NewToken creates a new Token
func NewToken(index, end int, typ TokenType, numValue float64, strValue string) *Token {
	return &Token{
		Index:    index,
		End:      end,
		Type:     typ,
		NumValue: numValue,
		StrValue: strValue,
	}
}

// IsCharacter checks if the token is a character with the given code
func (t *Token) IsCharacter(code rune) bool {
	return t.Type == TokenTypeCharacter && rune(t.NumValue) == code
}

// IsNumber checks if the token is a number
func (t *Token) IsNumber() bool {
	return t.Type == TokenTypeNumber
}

// IsString checks if the token is a string
func (t *Token) IsString() bool {
	return t.Type == TokenTypeString
}

// IsOperator checks if the token is an operator with the given value
func (t *Token) IsOperator(operator string) bool {
	return t.Type == TokenTypeOperator && t.StrValue == operator
}

// IsIdentifier checks if the token is an identifier
func (t *Token) IsIdentifier() bool {
	return t.Type == TokenTypeIdentifier
}

// IsKeyword checks if the token is a keyword
func (t *Token) IsKeyword() bool {
	return t.Type == TokenTypeKeyword
}

// IsKeywordNull checks if the token is the 'null' keyword
func (t *Token) IsKeywordNull() bool {
	return t.Type == TokenTypeKeyword && t.StrValue == "null"
}

// IsKeywordUndefined checks if the token is the 'undefined' keyword
func (t *Token) IsKeywordUndefined() bool {
	return t.Type == TokenTypeKeyword && t.StrValue == "undefined"
}

// IsKeywordTrue checks if the token is the 'true' keyword
func (t *Token) IsKeywordTrue() bool {
	return t.Type == TokenTypeKeyword && t.StrValue == "true"
}

// IsKeywordFalse checks if the token is the 'false' keyword
func (t *Token) IsKeywordFalse() bool {
	return t.Type == TokenTypeKeyword && t.StrValue == "false"
}

// IsKeywordThis checks if the token is the 'this' keyword
func (t *Token) IsKeywordThis() bool {
	return t.Type == TokenTypeKeyword && t.StrValue == "this"
}

// IsError checks if the token is an error
func (t *Token) IsError() bool {
	return t.Type == TokenTypeError
}

// ToNumber converts the token to a number
func (t *Token) ToNumber() float64 {
	if t.Type == TokenTypeNumber {
		return t.NumValue
	}
	return -1
}

// String returns the string representation of the token
func (t *Token) String() string {
	if t.Type == TokenTypeNumber {
		return strconv.FormatFloat(t.NumValue, 'f', -1, 64)
	}
	return t.StrValue
}

// EOF represents the end of input token
var EOF = NewToken(-1, -1, TokenTypeCharacter, 0, "")

// Lexer tokenizes binding expressions
type Lexer struct{}

// NewLexer creates a new Lexer
func NewLexer() *Lexer {
	return &Lexer{}
}

// Tokenize tokenizes the given text
func (l *Lexer) Tokenize(text string) []*Token {
	scanner := newScanner(text)
	var tokens []*Token
	token := scanner.scanToken()
	for token != nil {
		tokens = append(tokens, token)
		token = scanner.scanToken()
	}
	return tokens
}

const charEOF rune = 0

type scanner struct {
	input  string
	length int
	peek   rune
	index  int
}

func newScanner(input string) *scanner {
	s := &scanner{
		input:  input,
		length: len(input),
		index:  -1,
	}
	s.advance()
	return s
}

func (s *scanner) advance() {
	s.index++
	if s.index >= s.length {
		s.peek = charEOF
	} else {
		s.peek = rune(s.input[s.index])
	}
}

func (s *scanner) scanToken() *Token {
	// Skip whitespace
	for s.index < s.length && s.peek <= ' ' {
		s.advance()
	}
	if s.index >= s.length {
		return nil
	}

	peek := s.peek
	start := s.index

	if isIdentifierStart(peek) {
		return s.scanIdentifier()
	}
	if isDigit(peek) {
		return s.scanNumber(start)
	}

	switch peek {
	case '.':
		s.advance()
		if isDigit(s.peek) {
			return s.scanNumber(start)
		}
		return newCharacterToken(start, s.index, '.')
	case '(', ')', '[', ']', '{', '}', ',', ':', ';':
		return s.scanCharacter(start, peek)
	case '\'', '"':
		return s.scanString()
	case '+', '-', '*', '/', '%', '<', '>':
		return s.scanComplexOperator(start, string(peek), '=', "=")
	case '^':
		return s.scanOperator(start, "^")
	case '?':
		return s.scanQuestion(start)
	case '!', '=':
		return s.scanComplexOperator(start, string(peek), '=', "=", '=', "=")
	case '&':
		return s.scanComplexOperator(start, "&", '&', "&")
	case '|':
		return s.scanComplexOperator(start, "|", '|', "|")
	case ' ':
		s.advance()
		return s.scanToken()
	}

	s.advance()
	return s.error("Unexpected character ["+string(peek)+"]", 0)
}

func (s *scanner) scanCharacter(start int, code rune) *Token {
	s.advance()
	return newCharacterToken(start, s.index, code)
}

func (s *scanner) scanOperator(start int, str string) *Token {
	s.advance()
	return newOperatorToken(start, s.index, str)
}

// scanComplexOperator scans operators of up to three characters, e.g.
// one='!' twoCode='=' threeCode='=' yields '!', '!=' or '!=='.
func (s *scanner) scanComplexOperator(start int, one string, twoCode rune, two string, three ...interface{}) *Token {
	s.advance()
	str := one
	if s.peek == twoCode {
		s.advance()
		str += two
	}
	if len(three) == 2 {
		if threeCode, ok := three[0].(rune); ok && s.peek == threeCode {
			s.advance()
			str += three[1].(string)
		}
	}
	return newOperatorToken(start, s.index, str)
}

func (s *scanner) scanIdentifier() *Token {
	start := s.index
	s.advance()
	for isIdentifierPart(s.peek) {
		s.advance()
	}
	str := s.input[start:s.index]
	for _, keyword := range keywords {
		if str == keyword {
			return newKeywordToken(start, s.index, str)
		}
	}
	return newIdentifierToken(start, s.index, str)
}

func (s *scanner) scanNumber(start int) *Token {
	simple := s.index == start
	hasSeparators := false
	s.advance() // Skip initial digit
	for {
		if isDigit(s.peek) {
			// Do nothing
		} else if s.peek == '_' {
			// Separators are only valid when surrounded by digits
			if s.index == 0 || s.index >= s.length-1 ||
				!isDigit(rune(s.input[s.index-1])) || !isDigit(rune(s.input[s.index+1])) {
				return s.error("Invalid numeric separator", 0)
			}
			hasSeparators = true
		} else if s.peek == '.' {
			simple = false
		} else if isExponentStart(s.peek) {
			s.advance()
			if isExponentSign(s.peek) {
				s.advance()
			}
			if !isDigit(s.peek) {
				return s.error("Invalid exponent", -1)
			}
			simple = false
		} else {
			break
		}
		s.advance()
	}

	str := s.input[start:s.index]
	if hasSeparators {
		str = strings.ReplaceAll(str, "_", "")
	}
	var value float64
	if simple {
		if val, err := strconv.ParseInt(str, 10, 64); err == nil {
			value = float64(val)
		}
	} else {
		if val, err := strconv.ParseFloat(str, 64); err == nil {
			value = val
		}
	}
	return newNumberToken(start, s.index, value)
}

func (s *scanner) scanString() *Token {
	start := s.index
	quote := s.peek
	s.advance() // Skip initial quote

	buffer := ""
	marker := s.index

	for s.peek != quote {
		if s.peek == '\\' {
			buffer += s.input[marker:s.index]
			unescaped, errToken := s.scanStringBackslash()
			if errToken != nil {
				return errToken
			}
			buffer += string(unescaped)
			marker = s.index
		} else if s.peek == charEOF {
			return s.error("Unterminated quote", 0)
		} else {
			s.advance()
		}
	}

	last := s.input[marker:s.index]
	s.advance() // Skip terminating quote

	return NewToken(start, s.index, TokenTypeString, 0, buffer+last)
}

func (s *scanner) scanQuestion(start int) *Token {
	s.advance()
	operator := "?"
	// `a ?? b` or `a?.b`
	if s.peek == '?' || s.peek == '.' {
		operator += string(s.peek)
		s.advance()
	}
	return newOperatorToken(start, s.index, operator)
}

func (s *scanner) scanStringBackslash() (rune, *Token) {
	s.advance()
	if s.peek == 'u' {
		// 4 character hex code for unicode character
		if s.index+5 > s.length {
			return 0, s.error("Invalid unicode escape", 0)
		}
		hex := s.input[s.index+1 : s.index+5]
		val, err := strconv.ParseInt(hex, 16, 32)
		if err != nil {
			return 0, s.error("Invalid unicode escape [\\u"+hex+"]", 0)
		}
		for i := 0; i < 5; i++ {
			s.advance()
		}
		return rune(val), nil
	}
	unescaped := unescape(s.peek)
	s.advance()
	return unescaped, nil
}

func (s *scanner) error(message string, offset int) *Token {
	position := s.index + offset
	return newErrorToken(
		position,
		s.index,
		"Lexer Error: "+message+" at column "+strconv.Itoa(position)+" in expression ["+s.input+"]",
	)
}

func unescape(code rune) rune {
	switch code {
	case 'n':
		return '\n'
	case 'f':
		return '\f'
	case 'r':
		return '\r'
	case 't':
		return '\t'
	case 'v':
		return '\v'
	default:
		return code
	}
}

func isIdentifierStart(code rune) bool {
	return ('a' <= code && code <= 'z') ||
		('A' <= code && code <= 'Z') ||
		code == '_' || code == '$'
}

func isIdentifierPart(code rune) bool {
	return isIdentifierStart(code) || isDigit(code)
}

func isDigit(code rune) bool {
	return '0' <= code && code <= '9'
}

func isExponentStart(code rune) bool {
	return code == 'e' || code == 'E'
}

func isExponentSign(code rune) bool {
	return code == '-' || code == '+'
}

func newCharacterToken(index, end int, code rune) *Token {
	return NewToken(index, end, TokenTypeCharacter, float64(code), string(code))
}

func newIdentifierToken(index, end int, text string) *Token {
	return NewToken(index, end, TokenTypeIdentifier, 0, text)
}

func newKeywordToken(index, end int, text string) *Token {
	return NewToken(index, end, TokenTypeKeyword, 0, text)
}

func newOperatorToken(index, end int, text string) *Token {
	return NewToken(index, end, TokenTypeOperator, 0, text)
}

func newNumberToken(index, end int, n float64) *Token {
	return NewToken(index, end, TokenTypeNumber, n, "")
}

func newErrorToken(index, end int, message string) *Token {
	return NewToken(index, end, TokenTypeError, 0, message)
}
