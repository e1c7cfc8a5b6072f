package expressionparser

import (
	"strconv"
	"strings"

	"ngdef-go/packages/compiler/src/util"
)

// Parser parses binding and action expressions into an AST
type Parser struct {
	lexer *Lexer
}

// NewParser creates a new Parser
func NewParser(lexer *Lexer) *Parser {
	return &Parser{lexer: lexer}
}

// ParseAction parses an event handler expression. Actions may chain
// statements with ';' and may contain assignments, but not pipes.
func (p *Parser) ParseAction(input, location string, absoluteOffset int) *ASTWithSource {
	var errors []*util.ParseError
	p.checkNoInterpolation(input, location, &errors)
	tokens := p.lexer.Tokenize(input)
	ast := newParseAst(input, location, absoluteOffset, tokens, true, &errors).parseChain()
	return NewASTWithSource(ast, &input, location, absoluteOffset, errors)
}

// ParseBinding parses a property binding expression. Bindings are single
// expressions: no chaining and no assignments.
func (p *Parser) ParseBinding(input, location string, absoluteOffset int) *ASTWithSource {
	var errors []*util.ParseError
	p.checkNoInterpolation(input, location, &errors)
	tokens := p.lexer.Tokenize(input)
	ast := newParseAst(input, location, absoluteOffset, tokens, false, &errors).parseChain()
	return NewASTWithSource(ast, &input, location, absoluteOffset, errors)
}

func (p *Parser) checkNoInterpolation(input, location string, errors *[]*util.ParseError) {
	open := strings.Index(input, "{{")
	if open < 0 {
		return
	}
	if strings.Index(input[open:], "}}") < 0 {
		return
	}
	*errors = append(*errors, util.NewParseError(nil,
		"Parser Error: Got interpolation ({{}}) where expression was expected at column "+
			strconv.Itoa(open)+" in ["+input+"] in "+location,
		util.ParseErrorLevelError))
}

type parseAst struct {
	input          string
	location       string
	absoluteOffset int
	tokens         []*Token
	parseAction    bool
	errors         *[]*util.ParseError
	index          int

	rparensExpected   int
	rbracketsExpected int
	rbracesExpected   int
}

func newParseAst(input, location string, absoluteOffset int, tokens []*Token, parseAction bool, errors *[]*util.ParseError) *parseAst {
	return &parseAst{
		input:          input,
		location:       location,
		absoluteOffset: absoluteOffset,
		tokens:         tokens,
		parseAction:    parseAction,
		errors:         errors,
	}
}

func (p *parseAst) peek(offset int) *Token {
	i := p.index + offset
	if i < len(p.tokens) {
		return p.tokens[i]
	}
	return EOF
}

func (p *parseAst) next() *Token {
	return p.peek(0)
}

// inputIndex is the character offset of the next unconsumed token, or the
// end of input when all tokens are consumed.
func (p *parseAst) inputIndex() int {
	if p.index < len(p.tokens) {
		return p.tokens[p.index].Index
	}
	return len(p.input)
}

func (p *parseAst) span(start int) *ParseSpan {
	return NewParseSpan(start, p.inputIndex())
}

func (p *parseAst) sourceSpan(start int) *AbsoluteSourceSpan {
	return p.span(start).ToAbsolute(p.absoluteOffset)
}

func (p *parseAst) advance() {
	p.index++
}

func (p *parseAst) consumeOptionalCharacter(code rune) bool {
	if p.next().IsCharacter(code) {
		p.advance()
		return true
	}
	return false
}

func (p *parseAst) consumeOptionalOperator(op string) bool {
	if p.next().IsOperator(op) {
		p.advance()
		return true
	}
	return false
}

func (p *parseAst) expectCharacter(code rune) {
	if p.consumeOptionalCharacter(code) {
		return
	}
	p.error("Missing expected " + string(code))
}

func (p *parseAst) expectIdentifierOrKeyword() string {
	n := p.next()
	if !n.IsIdentifier() && !n.IsKeyword() {
		p.error("Unexpected token " + n.String() + ", expected identifier or keyword")
		return ""
	}
	p.advance()
	return n.String()
}

func (p *parseAst) expectIdentifierOrKeywordOrString() string {
	n := p.next()
	if !n.IsIdentifier() && !n.IsKeyword() && !n.IsString() {
		p.error("Unexpected token " + n.String() + ", expected identifier, keyword, or string")
		return ""
	}
	p.advance()
	return n.String()
}

func (p *parseAst) parseChain() AST {
	start := p.inputIndex()
	var exprs []AST
	for p.index < len(p.tokens) {
		expr := p.parsePipe()
		exprs = append(exprs, expr)

		if p.consumeOptionalCharacter(';') {
			if !p.parseAction {
				p.error("Binding expression cannot contain chained expression")
			}
			for p.consumeOptionalCharacter(';') {
			}
		} else if p.index < len(p.tokens) {
			p.error("Unexpected token '" + p.next().String() + "'")
		}
	}
	if len(exprs) == 0 {
		return NewEmptyExpr(p.span(start), p.sourceSpan(start))
	}
	if len(exprs) == 1 {
		return exprs[0]
	}
	return NewChain(p.span(start), p.sourceSpan(start), exprs)
}

func (p *parseAst) parsePipe() AST {
	start := p.inputIndex()
	result := p.parseExpression()
	if p.consumeOptionalOperator("|") {
		if p.parseAction {
			p.error("Cannot have a pipe in an action expression")
		}
		for {
			name := p.expectIdentifierOrKeyword()
			var args []AST
			for p.consumeOptionalCharacter(':') {
				args = append(args, p.parseExpression())
			}
			result = NewBindingPipe(p.span(start), p.sourceSpan(start), result, name, args)
			if !p.consumeOptionalOperator("|") {
				break
			}
		}
	}
	return result
}

func (p *parseAst) parseExpression() AST {
	return p.parseConditional()
}

func (p *parseAst) parseConditional() AST {
	start := p.inputIndex()
	result := p.parseLogicalOr()
	if p.consumeOptionalOperator("?") {
		yes := p.parsePipe()
		p.expectCharacter(':')
		no := p.parsePipe()
		return NewConditional(p.span(start), p.sourceSpan(start), result, yes, no)
	}
	return result
}

func (p *parseAst) parseLogicalOr() AST {
	start := p.inputIndex()
	result := p.parseLogicalAnd()
	for p.consumeOptionalOperator("||") {
		right := p.parseLogicalAnd()
		result = NewBinary(p.span(start), p.sourceSpan(start), "||", result, right)
	}
	return result
}

func (p *parseAst) parseLogicalAnd() AST {
	start := p.inputIndex()
	result := p.parseEquality()
	for p.consumeOptionalOperator("&&") {
		right := p.parseEquality()
		result = NewBinary(p.span(start), p.sourceSpan(start), "&&", result, right)
	}
	return result
}

func (p *parseAst) parseEquality() AST {
	start := p.inputIndex()
	result := p.parseRelational()
	for {
		op := p.next()
		if op.Type != TokenTypeOperator {
			return result
		}
		switch op.StrValue {
		case "==", "===", "!=", "!==":
			p.advance()
			right := p.parseRelational()
			result = NewBinary(p.span(start), p.sourceSpan(start), op.StrValue, result, right)
		default:
			return result
		}
	}
}

func (p *parseAst) parseRelational() AST {
	start := p.inputIndex()
	result := p.parseAdditive()
	for {
		op := p.next()
		if op.Type != TokenTypeOperator {
			return result
		}
		switch op.StrValue {
		case "<", ">", "<=", ">=":
			p.advance()
			right := p.parseAdditive()
			result = NewBinary(p.span(start), p.sourceSpan(start), op.StrValue, result, right)
		default:
			return result
		}
	}
}

func (p *parseAst) parseAdditive() AST {
	start := p.inputIndex()
	result := p.parseMultiplicative()
	for {
		op := p.next()
		if op.Type != TokenTypeOperator {
			return result
		}
		switch op.StrValue {
		case "+", "-":
			p.advance()
			right := p.parseMultiplicative()
			result = NewBinary(p.span(start), p.sourceSpan(start), op.StrValue, result, right)
		default:
			return result
		}
	}
}

func (p *parseAst) parseMultiplicative() AST {
	start := p.inputIndex()
	result := p.parsePrefix()
	for {
		op := p.next()
		if op.Type != TokenTypeOperator {
			return result
		}
		switch op.StrValue {
		case "*", "/", "%":
			p.advance()
			right := p.parsePrefix()
			result = NewBinary(p.span(start), p.sourceSpan(start), op.StrValue, result, right)
		default:
			return result
		}
	}
}

func (p *parseAst) parsePrefix() AST {
	if p.next().Type == TokenTypeOperator {
		start := p.inputIndex()
		switch p.next().StrValue {
		case "+":
			p.advance()
			return p.parsePrefix()
		case "-":
			p.advance()
			result := p.parsePrefix()
			zero := NewLiteralPrimitive(NewParseSpan(start, start), p.sourceSpan(start), 0)
			return NewBinary(p.span(start), p.sourceSpan(start), "-", zero, result)
		case "!":
			p.advance()
			result := p.parsePrefix()
			return NewPrefixNot(p.span(start), p.sourceSpan(start), result)
		}
	}
	return p.parseCallChain()
}

func (p *parseAst) parseCallChain() AST {
	start := p.inputIndex()
	result := p.parsePrimary()
	for {
		if p.consumeOptionalCharacter('.') {
			result = p.parseAccessMember(result, start)
		} else if p.consumeOptionalCharacter('[') {
			p.rbracketsExpected++
			key := p.parsePipe()
			p.rbracketsExpected--
			p.expectCharacter(']')
			if p.consumeOptionalOperator("=") {
				if !p.parseAction {
					p.error("Bindings cannot contain assignments")
				}
				value := p.parseConditional()
				result = NewKeyedWrite(p.span(start), p.sourceSpan(start), result, key, value)
			} else {
				result = NewKeyedRead(p.span(start), p.sourceSpan(start), result, key)
			}
		} else if p.consumeOptionalCharacter('(') {
			p.rparensExpected++
			args := p.parseCallArguments()
			p.rparensExpected--
			p.expectCharacter(')')
			result = NewCall(p.span(start), p.sourceSpan(start), result, args)
		} else {
			return result
		}
	}
}

func (p *parseAst) parsePrimary() AST {
	start := p.inputIndex()
	n := p.next()
	switch {
	case p.consumeOptionalCharacter('('):
		p.rparensExpected++
		result := p.parsePipe()
		p.rparensExpected--
		p.expectCharacter(')')
		return result
	case n.IsKeywordNull(), n.IsKeywordUndefined():
		p.advance()
		return NewLiteralPrimitive(p.span(start), p.sourceSpan(start), nil)
	case n.IsKeywordTrue():
		p.advance()
		return NewLiteralPrimitive(p.span(start), p.sourceSpan(start), true)
	case n.IsKeywordFalse():
		p.advance()
		return NewLiteralPrimitive(p.span(start), p.sourceSpan(start), false)
	case n.IsKeywordThis():
		p.advance()
		return NewImplicitReceiver(p.span(start), p.sourceSpan(start))
	case p.consumeOptionalCharacter('['):
		p.rbracketsExpected++
		elements := p.parseExpressionList(']')
		p.rbracketsExpected--
		p.expectCharacter(']')
		return NewLiteralArray(p.span(start), p.sourceSpan(start), elements)
	case n.IsCharacter('{'):
		return p.parseLiteralMap()
	case n.IsIdentifier():
		receiver := NewImplicitReceiver(p.span(start), p.sourceSpan(start))
		return p.parseAccessMember(receiver, start)
	case n.IsNumber():
		value := n.ToNumber()
		p.advance()
		return NewLiteralPrimitive(p.span(start), p.sourceSpan(start), value)
	case n.IsString():
		value := n.StrValue
		p.advance()
		return NewLiteralPrimitive(p.span(start), p.sourceSpan(start), value)
	case n.IsError():
		p.advance()
		p.reportError(n.StrValue)
		return NewEmptyExpr(p.span(start), p.sourceSpan(start))
	case p.index >= len(p.tokens):
		p.error("Unexpected end of expression: " + p.input)
		return NewEmptyExpr(p.span(start), p.sourceSpan(start))
	default:
		p.error("Unexpected token " + n.String())
		return NewEmptyExpr(p.span(start), p.sourceSpan(start))
	}
}

func (p *parseAst) parseExpressionList(terminator rune) []AST {
	var result []AST
	if p.next().IsCharacter(terminator) {
		return result
	}
	for {
		result = append(result, p.parsePipe())
		if !p.consumeOptionalCharacter(',') {
			break
		}
	}
	return result
}

func (p *parseAst) parseLiteralMap() AST {
	start := p.inputIndex()
	var keys []LiteralMapKey
	var values []AST
	p.expectCharacter('{')
	if !p.consumeOptionalCharacter('}') {
		p.rbracesExpected++
		for {
			quoted := p.next().IsString()
			key := p.expectIdentifierOrKeywordOrString()
			keys = append(keys, LiteralMapKey{Key: key, Quoted: quoted})
			p.expectCharacter(':')
			values = append(values, p.parsePipe())
			if !p.consumeOptionalCharacter(',') {
				break
			}
		}
		p.rbracesExpected--
		p.expectCharacter('}')
	}
	return NewLiteralMap(p.span(start), p.sourceSpan(start), keys, values)
}

func (p *parseAst) parseAccessMember(receiver AST, start int) AST {
	id := p.expectIdentifierOrKeyword()
	if p.consumeOptionalOperator("=") {
		if !p.parseAction {
			p.error("Bindings cannot contain assignments")
		}
		value := p.parseConditional()
		return NewPropertyWrite(p.span(start), p.sourceSpan(start), receiver, id, value)
	}
	return NewPropertyRead(p.span(start), p.sourceSpan(start), receiver, id)
}

func (p *parseAst) parseCallArguments() []AST {
	if p.next().IsCharacter(')') {
		return nil
	}
	var args []AST
	for {
		args = append(args, p.parsePipe())
		if !p.consumeOptionalCharacter(',') {
			break
		}
	}
	return args
}

func (p *parseAst) error(message string) {
	p.reportError("Parser Error: " + message + " at column " + strconv.Itoa(p.inputIndex()) +
		" in [" + p.input + "] in " + p.location)
	p.skip()
}

func (p *parseAst) reportError(message string) {
	*p.errors = append(*p.errors, util.NewParseError(nil, message, util.ParseErrorLevelError))
}

// skip consumes tokens until a recovery point: end of input, a ';' in an
// action, or a closer for a currently open group. This lets the parser
// surface multiple errors from one expression.
func (p *parseAst) skip() {
	n := p.next()
	for p.index < len(p.tokens) &&
		!n.IsCharacter(';') &&
		(p.rparensExpected <= 0 || !n.IsCharacter(')')) &&
		(p.rbracesExpected <= 0 || !n.IsCharacter('}')) &&
		(p.rbracketsExpected <= 0 || !n.IsCharacter(']')) {
		if n.IsError() {
			p.reportError(n.StrValue)
		}
		p.advance()
		n = p.next()
	}
}
