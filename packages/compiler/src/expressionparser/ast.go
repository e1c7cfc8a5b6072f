package expressionparser

import (
	"ngdef-go/packages/compiler/src/util"
)

// ParseSpan represents a span within an expression
type ParseSpan struct {
	Start int
	End   int
}

// NewParseSpan creates a new ParseSpan
func NewParseSpan(start, end int) *ParseSpan {
	return &ParseSpan{Start: start, End: end}
}

// ToAbsolute converts a ParseSpan to an AbsoluteSourceSpan
func (ps *ParseSpan) ToAbsolute(absoluteOffset int) *AbsoluteSourceSpan {
	return NewAbsoluteSourceSpan(absoluteOffset+ps.Start, absoluteOffset+ps.End)
}

// AbsoluteSourceSpan records the absolute position of a text span in a source file
type AbsoluteSourceSpan struct {
	Start int
	End   int
}

// NewAbsoluteSourceSpan creates a new AbsoluteSourceSpan
func NewAbsoluteSourceSpan(start, end int) *AbsoluteSourceSpan {
	return &AbsoluteSourceSpan{Start: start, End: end}
}

// AST is the base interface for all binding expression nodes
type AST interface {
	Span() *ParseSpan
	SourceSpan() *AbsoluteSourceSpan
	Visit(visitor AstVisitor, context interface{}) interface{}
}

type astBase struct {
	span       *ParseSpan
	sourceSpan *AbsoluteSourceSpan
}

// Span returns the parse span
func (a *astBase) Span() *ParseSpan {
	return a.span
}

// SourceSpan returns the absolute source span
func (a *astBase) SourceSpan() *AbsoluteSourceSpan {
	return a.sourceSpan
}

// EmptyExpr represents an empty expression
type EmptyExpr struct {
	astBase
}

// NewEmptyExpr creates a new EmptyExpr
func NewEmptyExpr(span *ParseSpan, sourceSpan *AbsoluteSourceSpan) *EmptyExpr {
	return &EmptyExpr{astBase{span, sourceSpan}}
}

// Visit implements the AST interface
func (e *EmptyExpr) Visit(visitor AstVisitor, context interface{}) interface{} {
	return nil
}

// ImplicitReceiver represents the implicit receiver of a binding expression
type ImplicitReceiver struct {
	astBase
}

// NewImplicitReceiver creates a new ImplicitReceiver
func NewImplicitReceiver(span *ParseSpan, sourceSpan *AbsoluteSourceSpan) *ImplicitReceiver {
	return &ImplicitReceiver{astBase{span, sourceSpan}}
}

// Visit implements the AST interface
func (i *ImplicitReceiver) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitImplicitReceiver(i, context)
}

// Chain represents multiple expressions separated by a semicolon
type Chain struct {
	astBase
	Expressions []AST
}

// NewChain creates a new Chain
func NewChain(span *ParseSpan, sourceSpan *AbsoluteSourceSpan, expressions []AST) *Chain {
	return &Chain{astBase{span, sourceSpan}, expressions}
}

// Visit implements the AST interface
func (c *Chain) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitChain(c, context)
}

// Conditional represents a ternary expression
type Conditional struct {
	astBase
	Condition AST
	TrueExp   AST
	FalseExp  AST
}

// NewConditional creates a new Conditional
func NewConditional(span *ParseSpan, sourceSpan *AbsoluteSourceSpan, condition, trueExp, falseExp AST) *Conditional {
	return &Conditional{astBase{span, sourceSpan}, condition, trueExp, falseExp}
}

// Visit implements the AST interface
func (c *Conditional) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitConditional(c, context)
}

// PropertyRead represents a property read operation
type PropertyRead struct {
	astBase
	Receiver AST
	Name     string
}

// NewPropertyRead creates a new PropertyRead
func NewPropertyRead(span *ParseSpan, sourceSpan *AbsoluteSourceSpan, receiver AST, name string) *PropertyRead {
	return &PropertyRead{astBase{span, sourceSpan}, receiver, name}
}

// Visit implements the AST interface
func (p *PropertyRead) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitPropertyRead(p, context)
}

// PropertyWrite represents a property assignment in an action expression
type PropertyWrite struct {
	astBase
	Receiver AST
	Name     string
	Value    AST
}

// NewPropertyWrite creates a new PropertyWrite
func NewPropertyWrite(span *ParseSpan, sourceSpan *AbsoluteSourceSpan, receiver AST, name string, value AST) *PropertyWrite {
	return &PropertyWrite{astBase{span, sourceSpan}, receiver, name, value}
}

// Visit implements the AST interface
func (p *PropertyWrite) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitPropertyWrite(p, context)
}

// KeyedRead represents an indexed read operation
type KeyedRead struct {
	astBase
	Receiver AST
	Key      AST
}

// NewKeyedRead creates a new KeyedRead
func NewKeyedRead(span *ParseSpan, sourceSpan *AbsoluteSourceSpan, receiver, key AST) *KeyedRead {
	return &KeyedRead{astBase{span, sourceSpan}, receiver, key}
}

// Visit implements the AST interface
func (k *KeyedRead) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitKeyedRead(k, context)
}

// KeyedWrite represents an indexed assignment in an action expression
type KeyedWrite struct {
	astBase
	Receiver AST
	Key      AST
	Value    AST
}

// NewKeyedWrite creates a new KeyedWrite
func NewKeyedWrite(span *ParseSpan, sourceSpan *AbsoluteSourceSpan, receiver, key, value AST) *KeyedWrite {
	return &KeyedWrite{astBase{span, sourceSpan}, receiver, key, value}
}

// Visit implements the AST interface
func (k *KeyedWrite) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitKeyedWrite(k, context)
}

// BindingPipe represents a pipe application
type BindingPipe struct {
	astBase
	Exp  AST
	Name string
	Args []AST
}

// NewBindingPipe creates a new BindingPipe
func NewBindingPipe(span *ParseSpan, sourceSpan *AbsoluteSourceSpan, exp AST, name string, args []AST) *BindingPipe {
	return &BindingPipe{astBase{span, sourceSpan}, exp, name, args}
}

// Visit implements the AST interface
func (b *BindingPipe) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitPipe(b, context)
}

// LiteralPrimitive represents a primitive literal value
type LiteralPrimitive struct {
	astBase
	Value interface{}
}

// NewLiteralPrimitive creates a new LiteralPrimitive
func NewLiteralPrimitive(span *ParseSpan, sourceSpan *AbsoluteSourceSpan, value interface{}) *LiteralPrimitive {
	return &LiteralPrimitive{astBase{span, sourceSpan}, value}
}

// Visit implements the AST interface
func (l *LiteralPrimitive) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitLiteralPrimitive(l, context)
}

// LiteralArray represents an array literal
type LiteralArray struct {
	astBase
	Expressions []AST
}

// NewLiteralArray creates a new LiteralArray
func NewLiteralArray(span *ParseSpan, sourceSpan *AbsoluteSourceSpan, expressions []AST) *LiteralArray {
	return &LiteralArray{astBase{span, sourceSpan}, expressions}
}

// Visit implements the AST interface
func (l *LiteralArray) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitLiteralArray(l, context)
}

// LiteralMapKey represents a key in a literal map
type LiteralMapKey struct {
	Key    string
	Quoted bool
}

// LiteralMap represents an object literal
type LiteralMap struct {
	astBase
	Keys   []LiteralMapKey
	Values []AST
}

// NewLiteralMap creates a new LiteralMap
func NewLiteralMap(span *ParseSpan, sourceSpan *AbsoluteSourceSpan, keys []LiteralMapKey, values []AST) *LiteralMap {
	return &LiteralMap{astBase{span, sourceSpan}, keys, values}
}

// Visit implements the AST interface
func (l *LiteralMap) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitLiteralMap(l, context)
}

// Interpolation represents an interpolated expression
type Interpolation struct {
	astBase
	Strings     []string
	Expressions []AST
}

// NewInterpolation creates a new Interpolation
func NewInterpolation(span *ParseSpan, sourceSpan *AbsoluteSourceSpan, strings []string, expressions []AST) *Interpolation {
	return &Interpolation{astBase{span, sourceSpan}, strings, expressions}
}

// Visit implements the AST interface
func (i *Interpolation) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitInterpolation(i, context)
}

// Binary represents a binary operation
type Binary struct {
	astBase
	Operation string
	Left      AST
	Right     AST
}

// NewBinary creates a new Binary
func NewBinary(span *ParseSpan, sourceSpan *AbsoluteSourceSpan, operation string, left, right AST) *Binary {
	return &Binary{astBase{span, sourceSpan}, operation, left, right}
}

// Visit implements the AST interface
func (b *Binary) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitBinary(b, context)
}

// PrefixNot represents a prefix "!" operation
type PrefixNot struct {
	astBase
	Expression AST
}

// NewPrefixNot creates a new PrefixNot
func NewPrefixNot(span *ParseSpan, sourceSpan *AbsoluteSourceSpan, expression AST) *PrefixNot {
	return &PrefixNot{astBase{span, sourceSpan}, expression}
}

// Visit implements the AST interface
func (p *PrefixNot) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitPrefixNot(p, context)
}

// Call represents a function or method call
type Call struct {
	astBase
	Receiver AST
	Args     []AST
}

// NewCall creates a new Call
func NewCall(span *ParseSpan, sourceSpan *AbsoluteSourceSpan, receiver AST, args []AST) *Call {
	return &Call{astBase{span, sourceSpan}, receiver, args}
}

// Visit implements the AST interface
func (c *Call) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitCall(c, context)
}

// ASTWithSource wraps an AST with the source text it was parsed from
type ASTWithSource struct {
	astBase
	AST            AST
	Source         *string
	Location       string
	AbsoluteOffset int
	Errors         []*util.ParseError
}

// NewASTWithSource creates a new ASTWithSource
func NewASTWithSource(ast AST, source *string, location string, absoluteOffset int, errors []*util.ParseError) *ASTWithSource {
	sourceLen := 0
	if source != nil {
		sourceLen = len(*source)
	}
	span := NewParseSpan(0, sourceLen)
	return &ASTWithSource{
		astBase:        astBase{span, span.ToAbsolute(absoluteOffset)},
		AST:            ast,
		Source:         source,
		Location:       location,
		AbsoluteOffset: absoluteOffset,
		Errors:         errors,
	}
}

// Visit implements the AST interface
func (a *ASTWithSource) Visit(visitor AstVisitor, context interface{}) interface{} {
	return a.AST.Visit(visitor, context)
}

// String returns the source text with its location
func (a *ASTWithSource) String() string {
	if a.Source != nil {
		return *a.Source + " in " + a.Location
	}
	return "null in " + a.Location
}

// AstVisitor is the interface for visiting binding expression nodes
type AstVisitor interface {
	VisitBinary(ast *Binary, context interface{}) interface{}
	VisitChain(ast *Chain, context interface{}) interface{}
	VisitConditional(ast *Conditional, context interface{}) interface{}
	VisitImplicitReceiver(ast *ImplicitReceiver, context interface{}) interface{}
	VisitInterpolation(ast *Interpolation, context interface{}) interface{}
	VisitKeyedRead(ast *KeyedRead, context interface{}) interface{}
	VisitKeyedWrite(ast *KeyedWrite, context interface{}) interface{}
	VisitLiteralArray(ast *LiteralArray, context interface{}) interface{}
	VisitLiteralMap(ast *LiteralMap, context interface{}) interface{}
	VisitLiteralPrimitive(ast *LiteralPrimitive, context interface{}) interface{}
	VisitPipe(ast *BindingPipe, context interface{}) interface{}
	VisitPrefixNot(ast *PrefixNot, context interface{}) interface{}
	VisitPropertyRead(ast *PropertyRead, context interface{}) interface{}
	VisitPropertyWrite(ast *PropertyWrite, context interface{}) interface{}
	VisitCall(ast *Call, context interface{}) interface{}
}

// RecursiveAstVisitor visits every node of an expression tree
type RecursiveAstVisitor struct{}

// Visit dispatches to the node's Visit method
func (r *RecursiveAstVisitor) Visit(ast AST, context interface{}) interface{} {
	ast.Visit(r, context)
	return nil
}

// VisitBinary visits a binary expression
func (r *RecursiveAstVisitor) VisitBinary(ast *Binary, context interface{}) interface{} {
	r.Visit(ast.Left, context)
	r.Visit(ast.Right, context)
	return nil
}

// VisitChain visits a chain expression
func (r *RecursiveAstVisitor) VisitChain(ast *Chain, context interface{}) interface{} {
	r.VisitAll(ast.Expressions, context)
	return nil
}

// VisitConditional visits a conditional expression
func (r *RecursiveAstVisitor) VisitConditional(ast *Conditional, context interface{}) interface{} {
	r.Visit(ast.Condition, context)
	r.Visit(ast.TrueExp, context)
	r.Visit(ast.FalseExp, context)
	return nil
}

// VisitImplicitReceiver visits an implicit receiver
func (r *RecursiveAstVisitor) VisitImplicitReceiver(ast *ImplicitReceiver, context interface{}) interface{} {
	return nil
}

// VisitInterpolation visits an interpolation
func (r *RecursiveAstVisitor) VisitInterpolation(ast *Interpolation, context interface{}) interface{} {
	r.VisitAll(ast.Expressions, context)
	return nil
}

// VisitKeyedRead visits a keyed read
func (r *RecursiveAstVisitor) VisitKeyedRead(ast *KeyedRead, context interface{}) interface{} {
	r.Visit(ast.Receiver, context)
	r.Visit(ast.Key, context)
	return nil
}

// VisitKeyedWrite visits a keyed write
func (r *RecursiveAstVisitor) VisitKeyedWrite(ast *KeyedWrite, context interface{}) interface{} {
	r.Visit(ast.Receiver, context)
	r.Visit(ast.Key, context)
	r.Visit(ast.Value, context)
	return nil
}

// VisitLiteralArray visits a literal array
func (r *RecursiveAstVisitor) VisitLiteralArray(ast *LiteralArray, context interface{}) interface{} {
	r.VisitAll(ast.Expressions, context)
	return nil
}

// VisitLiteralMap visits a literal map
func (r *RecursiveAstVisitor) VisitLiteralMap(ast *LiteralMap, context interface{}) interface{} {
	r.VisitAll(ast.Values, context)
	return nil
}

// VisitLiteralPrimitive visits a literal primitive
func (r *RecursiveAstVisitor) VisitLiteralPrimitive(ast *LiteralPrimitive, context interface{}) interface{} {
	return nil
}

// VisitPipe visits a pipe expression
func (r *RecursiveAstVisitor) VisitPipe(ast *BindingPipe, context interface{}) interface{} {
	r.Visit(ast.Exp, context)
	r.VisitAll(ast.Args, context)
	return nil
}

// VisitPrefixNot visits a prefix not
func (r *RecursiveAstVisitor) VisitPrefixNot(ast *PrefixNot, context interface{}) interface{} {
	r.Visit(ast.Expression, context)
	return nil
}

// VisitPropertyRead visits a property read
func (r *RecursiveAstVisitor) VisitPropertyRead(ast *PropertyRead, context interface{}) interface{} {
	r.Visit(ast.Receiver, context)
	return nil
}

// VisitPropertyWrite visits a property write
func (r *RecursiveAstVisitor) VisitPropertyWrite(ast *PropertyWrite, context interface{}) interface{} {
	r.Visit(ast.Receiver, context)
	r.Visit(ast.Value, context)
	return nil
}

// VisitCall visits a call
func (r *RecursiveAstVisitor) VisitCall(ast *Call, context interface{}) interface{} {
	r.Visit(ast.Receiver, context)
	r.VisitAll(ast.Args, context)
	return nil
}

// VisitAll visits all nodes in a slice
func (r *RecursiveAstVisitor) VisitAll(asts []AST, context interface{}) {
	for _, ast := range asts {
		r.Visit(ast, context)
	}
}

// ParsedPropertyType represents the kind of a parsed property binding
type ParsedPropertyType int

const (
	ParsedPropertyTypeDefault ParsedPropertyType = iota
	ParsedPropertyTypeAnimation
)

// ParsedProperty is a property binding as produced by a binding parser. The
// Name keeps any "attr.", "style." or "class." prefix; classification into
// instructions happens later.
type ParsedProperty struct {
	Name        string
	Expression  *ASTWithSource
	Type        ParsedPropertyType
	SourceSpan  *util.ParseSourceSpan
	IsAnimation bool
}

// NewParsedProperty creates a new ParsedProperty
func NewParsedProperty(name string, expression *ASTWithSource, typ ParsedPropertyType, sourceSpan *util.ParseSourceSpan) *ParsedProperty {
	return &ParsedProperty{
		Name:        name,
		Expression:  expression,
		Type:        typ,
		SourceSpan:  sourceSpan,
		IsAnimation: typ == ParsedPropertyTypeAnimation,
	}
}

// ParsedEventType represents the kind of a parsed event binding
type ParsedEventType int

const (
	ParsedEventTypeRegular ParsedEventType = iota
	ParsedEventTypeAnimation
)

// ParsedEvent is an event binding as produced by a binding parser
type ParsedEvent struct {
	Name          string
	TargetOrPhase *string
	Type          ParsedEventType
	Handler       *ASTWithSource
	SourceSpan    *util.ParseSourceSpan
}

// NewParsedEvent creates a new ParsedEvent
func NewParsedEvent(name string, targetOrPhase *string, typ ParsedEventType, handler *ASTWithSource, sourceSpan *util.ParseSourceSpan) *ParsedEvent {
	return &ParsedEvent{
		Name:          name,
		TargetOrPhase: targetOrPhase,
		Type:          typ,
		Handler:       handler,
		SourceSpan:    sourceSpan,
	}
}
