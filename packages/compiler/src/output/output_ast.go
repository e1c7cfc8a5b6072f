package output

import (
	"ngdef-go/packages/compiler/src/util"
)

// TypeModifier represents type modifiers
type TypeModifier int

const (
	TypeModifierNone  TypeModifier = 0
	TypeModifierConst TypeModifier = 1 << 0
)

// Type is the base interface for all output types
type Type interface {
	VisitType(visitor TypeVisitor, context interface{}) interface{}
	HasModifier(modifier TypeModifier) bool
}

// BuiltinTypeName represents builtin type names
type BuiltinTypeName int

const (
	BuiltinTypeNameDynamic BuiltinTypeName = iota
	BuiltinTypeNameBool
	BuiltinTypeNameString
	BuiltinTypeNameInt
	BuiltinTypeNameNumber
	BuiltinTypeNameFunction
	BuiltinTypeNameInferred
	BuiltinTypeNameNone
)

// BuiltinType represents a builtin type
type BuiltinType struct {
	Name      BuiltinTypeName
	Modifiers TypeModifier
}

// NewBuiltinType creates a new BuiltinType
func NewBuiltinType(name BuiltinTypeName, modifiers TypeModifier) *BuiltinType {
	return &BuiltinType{Name: name, Modifiers: modifiers}
}

func (t *BuiltinType) VisitType(visitor TypeVisitor, context interface{}) interface{} {
	return visitor.VisitBuiltinType(t, context)
}

func (t *BuiltinType) HasModifier(modifier TypeModifier) bool {
	return t.Modifiers&modifier != 0
}

// ExpressionType wraps an expression so it can be used where a type is expected
type ExpressionType struct {
	Value      OutputExpression
	Modifiers  TypeModifier
	TypeParams []Type
}

// NewExpressionType creates a new ExpressionType
func NewExpressionType(value OutputExpression, modifiers TypeModifier, typeParams []Type) *ExpressionType {
	return &ExpressionType{Value: value, Modifiers: modifiers, TypeParams: typeParams}
}

func (t *ExpressionType) VisitType(visitor TypeVisitor, context interface{}) interface{} {
	return visitor.VisitExpressionType(t, context)
}

func (t *ExpressionType) HasModifier(modifier TypeModifier) bool {
	return t.Modifiers&modifier != 0
}

// TypeVisitor is the interface for visiting types
type TypeVisitor interface {
	VisitBuiltinType(typ *BuiltinType, context interface{}) interface{}
	VisitExpressionType(typ *ExpressionType, context interface{}) interface{}
}

// Predefined type constants
var (
	DynamicType  = NewBuiltinType(BuiltinTypeNameDynamic, TypeModifierNone)
	InferredType = NewBuiltinType(BuiltinTypeNameInferred, TypeModifierNone)
	BoolType     = NewBuiltinType(BuiltinTypeNameBool, TypeModifierNone)
	NumberType   = NewBuiltinType(BuiltinTypeNameNumber, TypeModifierNone)
	StringType   = NewBuiltinType(BuiltinTypeNameString, TypeModifierNone)
	NoneType     = NewBuiltinType(BuiltinTypeNameNone, TypeModifierNone)
)

// BinaryOperator represents binary operators
type BinaryOperator int

const (
	BinaryOperatorEquals BinaryOperator = iota
	BinaryOperatorNotEquals
	BinaryOperatorAssign
	BinaryOperatorIdentical
	BinaryOperatorNotIdentical
	BinaryOperatorMinus
	BinaryOperatorPlus
	BinaryOperatorDivide
	BinaryOperatorMultiply
	BinaryOperatorModulo
	BinaryOperatorAnd
	BinaryOperatorOr
	BinaryOperatorBitwiseAnd
	BinaryOperatorBitwiseOr
	BinaryOperatorLower
	BinaryOperatorLowerEquals
	BinaryOperatorBigger
	BinaryOperatorBiggerEquals
)

// OutputExpression represents an expression in the output AST
type OutputExpression interface {
	GetType() Type
	GetSourceSpan() *util.ParseSourceSpan
	VisitExpression(visitor ExpressionVisitor, context interface{}) interface{}
	IsEquivalent(e OutputExpression) bool
	IsConstant() bool
}

// ExpressionVisitor is the interface for visiting expressions
type ExpressionVisitor interface {
	VisitReadVarExpr(ast *ReadVarExpr, context interface{}) interface{}
	VisitLiteralExpr(ast *LiteralExpr, context interface{}) interface{}
	VisitBinaryOperatorExpr(ast *BinaryOperatorExpr, context interface{}) interface{}
	VisitNotExpr(ast *NotExpr, context interface{}) interface{}
	VisitInvokeFunctionExpr(ast *InvokeFunctionExpr, context interface{}) interface{}
	VisitInstantiateExpr(ast *InstantiateExpr, context interface{}) interface{}
	VisitExternalExpr(ast *ExternalExpr, context interface{}) interface{}
	VisitConditionalExpr(ast *ConditionalExpr, context interface{}) interface{}
	VisitFunctionExpr(ast *FunctionExpr, context interface{}) interface{}
	VisitReadPropExpr(ast *ReadPropExpr, context interface{}) interface{}
	VisitReadKeyExpr(ast *ReadKeyExpr, context interface{}) interface{}
	VisitLiteralArrayExpr(ast *LiteralArrayExpr, context interface{}) interface{}
	VisitLiteralMapExpr(ast *LiteralMapExpr, context interface{}) interface{}
	VisitWrappedNodeExpr(ast *WrappedNodeExpr, context interface{}) interface{}
}

// ExpressionBase is the base struct for all expressions
type ExpressionBase struct {
	Type       Type
	SourceSpan *util.ParseSourceSpan
}

// GetType returns the type of the expression
func (e *ExpressionBase) GetType() Type {
	return e.Type
}

// GetSourceSpan returns the source span
func (e *ExpressionBase) GetSourceSpan() *util.ParseSourceSpan {
	return e.SourceSpan
}

// ReadVarExpr represents a variable read expression
type ReadVarExpr struct {
	ExpressionBase
	Name string
}

// NewReadVarExpr creates a new ReadVarExpr
func NewReadVarExpr(name string, typ Type, sourceSpan *util.ParseSourceSpan) *ReadVarExpr {
	return &ReadVarExpr{ExpressionBase: ExpressionBase{Type: typ, SourceSpan: sourceSpan}, Name: name}
}

func (r *ReadVarExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitReadVarExpr(r, context)
}

func (r *ReadVarExpr) IsEquivalent(e OutputExpression) bool {
	if other, ok := e.(*ReadVarExpr); ok {
		return r.Name == other.Name
	}
	return false
}

func (r *ReadVarExpr) IsConstant() bool {
	return false
}

// Set creates an assignment expression
func (r *ReadVarExpr) Set(value OutputExpression) *BinaryOperatorExpr {
	return NewBinaryOperatorExpr(BinaryOperatorAssign, r, value, r.Type, r.SourceSpan)
}

// undefinedValue is the sentinel for the JavaScript `undefined` literal,
// distinct from nil which renders as `null`.
type undefinedValue struct{}

func (undefinedValue) String() string { return "undefined" }

// UndefinedValue renders as the `undefined` literal
var UndefinedValue = undefinedValue{}

// LiteralExpr represents a literal expression
type LiteralExpr struct {
	ExpressionBase
	Value interface{} // number | string | bool | UndefinedValue | nil
}

// NewLiteralExpr creates a new LiteralExpr
func NewLiteralExpr(value interface{}, typ Type, sourceSpan *util.ParseSourceSpan) *LiteralExpr {
	return &LiteralExpr{ExpressionBase: ExpressionBase{Type: typ, SourceSpan: sourceSpan}, Value: value}
}

func (l *LiteralExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitLiteralExpr(l, context)
}

func (l *LiteralExpr) IsEquivalent(e OutputExpression) bool {
	if other, ok := e.(*LiteralExpr); ok {
		return l.Value == other.Value
	}
	return false
}

func (l *LiteralExpr) IsConstant() bool {
	return true
}

// BinaryOperatorExpr represents a binary operation
type BinaryOperatorExpr struct {
	ExpressionBase
	Operator BinaryOperator
	Lhs      OutputExpression
	Rhs      OutputExpression
}

// NewBinaryOperatorExpr creates a new BinaryOperatorExpr
func NewBinaryOperatorExpr(operator BinaryOperator, lhs, rhs OutputExpression, typ Type, sourceSpan *util.ParseSourceSpan) *BinaryOperatorExpr {
	t := typ
	if t == nil {
		t = lhs.GetType()
	}
	return &BinaryOperatorExpr{
		ExpressionBase: ExpressionBase{Type: t, SourceSpan: sourceSpan},
		Operator:       operator,
		Lhs:            lhs,
		Rhs:            rhs,
	}
}

func (b *BinaryOperatorExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitBinaryOperatorExpr(b, context)
}

func (b *BinaryOperatorExpr) IsEquivalent(e OutputExpression) bool {
	if other, ok := e.(*BinaryOperatorExpr); ok {
		return b.Operator == other.Operator && b.Lhs.IsEquivalent(other.Lhs) && b.Rhs.IsEquivalent(other.Rhs)
	}
	return false
}

func (b *BinaryOperatorExpr) IsConstant() bool {
	return false
}

// IsAssignment checks if the operator is an assignment
func (b *BinaryOperatorExpr) IsAssignment() bool {
	return b.Operator == BinaryOperatorAssign
}

// NotExpr represents a logical negation
type NotExpr struct {
	ExpressionBase
	Condition OutputExpression
}

// NewNotExpr creates a new NotExpr
func NewNotExpr(condition OutputExpression, sourceSpan *util.ParseSourceSpan) *NotExpr {
	return &NotExpr{ExpressionBase: ExpressionBase{Type: BoolType, SourceSpan: sourceSpan}, Condition: condition}
}

func (n *NotExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitNotExpr(n, context)
}

func (n *NotExpr) IsEquivalent(e OutputExpression) bool {
	if other, ok := e.(*NotExpr); ok {
		return n.Condition.IsEquivalent(other.Condition)
	}
	return false
}

func (n *NotExpr) IsConstant() bool {
	return false
}

// InvokeFunctionExpr represents a function invocation
type InvokeFunctionExpr struct {
	ExpressionBase
	Fn   OutputExpression
	Args []OutputExpression
	Pure bool
}

// NewInvokeFunctionExpr creates a new InvokeFunctionExpr
func NewInvokeFunctionExpr(fn OutputExpression, args []OutputExpression, typ Type, sourceSpan *util.ParseSourceSpan, pure bool) *InvokeFunctionExpr {
	return &InvokeFunctionExpr{
		ExpressionBase: ExpressionBase{Type: typ, SourceSpan: sourceSpan},
		Fn:             fn,
		Args:           args,
		Pure:           pure,
	}
}

func (i *InvokeFunctionExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitInvokeFunctionExpr(i, context)
}

func (i *InvokeFunctionExpr) IsEquivalent(e OutputExpression) bool {
	if other, ok := e.(*InvokeFunctionExpr); ok {
		return i.Fn.IsEquivalent(other.Fn) && areAllEquivalentExprs(i.Args, other.Args) && i.Pure == other.Pure
	}
	return false
}

func (i *InvokeFunctionExpr) IsConstant() bool {
	return false
}

// InstantiateExpr represents a `new` expression
type InstantiateExpr struct {
	ExpressionBase
	ClassExpr OutputExpression
	Args      []OutputExpression
}

// NewInstantiateExpr creates a new InstantiateExpr
func NewInstantiateExpr(classExpr OutputExpression, args []OutputExpression, typ Type, sourceSpan *util.ParseSourceSpan) *InstantiateExpr {
	return &InstantiateExpr{
		ExpressionBase: ExpressionBase{Type: typ, SourceSpan: sourceSpan},
		ClassExpr:      classExpr,
		Args:           args,
	}
}

func (i *InstantiateExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitInstantiateExpr(i, context)
}

func (i *InstantiateExpr) IsEquivalent(e OutputExpression) bool {
	if other, ok := e.(*InstantiateExpr); ok {
		return i.ClassExpr.IsEquivalent(other.ClassExpr) && areAllEquivalentExprs(i.Args, other.Args)
	}
	return false
}

func (i *InstantiateExpr) IsConstant() bool {
	return false
}

// ExternalReference identifies a symbol imported from another module
type ExternalReference struct {
	ModuleName *string
	Name       *string
}

// ExternalExpr represents a reference to an imported symbol
type ExternalExpr struct {
	ExpressionBase
	Value      *ExternalReference
	TypeParams []Type
}

// NewExternalExpr creates a new ExternalExpr
func NewExternalExpr(value *ExternalReference, typ Type, typeParams []Type, sourceSpan *util.ParseSourceSpan) *ExternalExpr {
	return &ExternalExpr{
		ExpressionBase: ExpressionBase{Type: typ, SourceSpan: sourceSpan},
		Value:          value,
		TypeParams:     typeParams,
	}
}

func (x *ExternalExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitExternalExpr(x, context)
}

func (x *ExternalExpr) IsEquivalent(e OutputExpression) bool {
	if other, ok := e.(*ExternalExpr); ok {
		return strPtrEq(x.Value.Name, other.Value.Name) && strPtrEq(x.Value.ModuleName, other.Value.ModuleName)
	}
	return false
}

func (x *ExternalExpr) IsConstant() bool {
	return false
}

// ConditionalExpr represents a ternary conditional
type ConditionalExpr struct {
	ExpressionBase
	Condition OutputExpression
	TrueCase  OutputExpression
	FalseCase OutputExpression
}

// NewConditionalExpr creates a new ConditionalExpr
func NewConditionalExpr(condition, trueCase, falseCase OutputExpression, typ Type, sourceSpan *util.ParseSourceSpan) *ConditionalExpr {
	t := typ
	if t == nil && trueCase != nil {
		t = trueCase.GetType()
	}
	return &ConditionalExpr{
		ExpressionBase: ExpressionBase{Type: t, SourceSpan: sourceSpan},
		Condition:      condition,
		TrueCase:       trueCase,
		FalseCase:      falseCase,
	}
}

func (c *ConditionalExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitConditionalExpr(c, context)
}

func (c *ConditionalExpr) IsEquivalent(e OutputExpression) bool {
	if other, ok := e.(*ConditionalExpr); ok {
		return c.Condition.IsEquivalent(other.Condition) &&
			c.TrueCase.IsEquivalent(other.TrueCase) &&
			nullSafeEquivalent(c.FalseCase, other.FalseCase)
	}
	return false
}

func (c *ConditionalExpr) IsConstant() bool {
	return false
}

// FnParam represents a function parameter
type FnParam struct {
	Name string
	Type Type
}

// NewFnParam creates a new FnParam
func NewFnParam(name string, typ Type) *FnParam {
	return &FnParam{Name: name, Type: typ}
}

// FunctionExpr represents a function expression
type FunctionExpr struct {
	ExpressionBase
	Params     []*FnParam
	Statements []OutputStatement
	Name       *string
}

// NewFunctionExpr creates a new FunctionExpr
func NewFunctionExpr(params []*FnParam, statements []OutputStatement, typ Type, sourceSpan *util.ParseSourceSpan, name *string) *FunctionExpr {
	return &FunctionExpr{
		ExpressionBase: ExpressionBase{Type: typ, SourceSpan: sourceSpan},
		Params:         params,
		Statements:     statements,
		Name:           name,
	}
}

func (f *FunctionExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitFunctionExpr(f, context)
}

func (f *FunctionExpr) IsEquivalent(e OutputExpression) bool {
	if other, ok := e.(*FunctionExpr); ok {
		if len(f.Params) != len(other.Params) {
			return false
		}
		for i := range f.Params {
			if f.Params[i].Name != other.Params[i].Name {
				return false
			}
		}
		return areAllEquivalentStmts(f.Statements, other.Statements)
	}
	return false
}

func (f *FunctionExpr) IsConstant() bool {
	return false
}

// ToDeclStmt converts this function expression into a function declaration statement
func (f *FunctionExpr) ToDeclStmt(name string, modifiers StmtModifier) *DeclareFunctionStmt {
	return NewDeclareFunctionStmt(name, f.Params, f.Statements, f.Type, modifiers, f.SourceSpan, nil)
}

// ReadPropExpr represents a property read
type ReadPropExpr struct {
	ExpressionBase
	Receiver OutputExpression
	Name     string
}

// NewReadPropExpr creates a new ReadPropExpr
func NewReadPropExpr(receiver OutputExpression, name string, typ Type, sourceSpan *util.ParseSourceSpan) *ReadPropExpr {
	return &ReadPropExpr{
		ExpressionBase: ExpressionBase{Type: typ, SourceSpan: sourceSpan},
		Receiver:       receiver,
		Name:           name,
	}
}

func (r *ReadPropExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitReadPropExpr(r, context)
}

func (r *ReadPropExpr) IsEquivalent(e OutputExpression) bool {
	if other, ok := e.(*ReadPropExpr); ok {
		return r.Receiver.IsEquivalent(other.Receiver) && r.Name == other.Name
	}
	return false
}

func (r *ReadPropExpr) IsConstant() bool {
	return false
}

// Set creates an assignment expression to this property
func (r *ReadPropExpr) Set(value OutputExpression) *BinaryOperatorExpr {
	return NewBinaryOperatorExpr(BinaryOperatorAssign, r, value, r.Type, r.SourceSpan)
}

// ReadKeyExpr represents a keyed read
type ReadKeyExpr struct {
	ExpressionBase
	Receiver OutputExpression
	Index    OutputExpression
}

// NewReadKeyExpr creates a new ReadKeyExpr
func NewReadKeyExpr(receiver, index OutputExpression, typ Type, sourceSpan *util.ParseSourceSpan) *ReadKeyExpr {
	return &ReadKeyExpr{
		ExpressionBase: ExpressionBase{Type: typ, SourceSpan: sourceSpan},
		Receiver:       receiver,
		Index:          index,
	}
}

func (r *ReadKeyExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitReadKeyExpr(r, context)
}

func (r *ReadKeyExpr) IsEquivalent(e OutputExpression) bool {
	if other, ok := e.(*ReadKeyExpr); ok {
		return r.Receiver.IsEquivalent(other.Receiver) && r.Index.IsEquivalent(other.Index)
	}
	return false
}

func (r *ReadKeyExpr) IsConstant() bool {
	return false
}

// Set creates an assignment expression to this key
func (r *ReadKeyExpr) Set(value OutputExpression) *BinaryOperatorExpr {
	return NewBinaryOperatorExpr(BinaryOperatorAssign, r, value, r.Type, r.SourceSpan)
}

// LiteralArrayExpr represents an array literal
type LiteralArrayExpr struct {
	ExpressionBase
	Entries []OutputExpression
}

// NewLiteralArrayExpr creates a new LiteralArrayExpr
func NewLiteralArrayExpr(entries []OutputExpression, typ Type, sourceSpan *util.ParseSourceSpan) *LiteralArrayExpr {
	return &LiteralArrayExpr{ExpressionBase: ExpressionBase{Type: typ, SourceSpan: sourceSpan}, Entries: entries}
}

func (l *LiteralArrayExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitLiteralArrayExpr(l, context)
}

func (l *LiteralArrayExpr) IsEquivalent(e OutputExpression) bool {
	if other, ok := e.(*LiteralArrayExpr); ok {
		return areAllEquivalentExprs(l.Entries, other.Entries)
	}
	return false
}

func (l *LiteralArrayExpr) IsConstant() bool {
	for _, e := range l.Entries {
		if !e.IsConstant() {
			return false
		}
	}
	return true
}

// LiteralMapEntry represents a single entry in a map literal
type LiteralMapEntry struct {
	Key    string
	Value  OutputExpression
	Quoted bool
}

// NewLiteralMapEntry creates a new LiteralMapEntry
func NewLiteralMapEntry(key string, value OutputExpression, quoted bool) *LiteralMapEntry {
	return &LiteralMapEntry{Key: key, Value: value, Quoted: quoted}
}

// LiteralMapExpr represents an object literal
type LiteralMapExpr struct {
	ExpressionBase
	Entries []*LiteralMapEntry
}

// NewLiteralMapExpr creates a new LiteralMapExpr
func NewLiteralMapExpr(entries []*LiteralMapEntry, typ Type, sourceSpan *util.ParseSourceSpan) *LiteralMapExpr {
	return &LiteralMapExpr{ExpressionBase: ExpressionBase{Type: typ, SourceSpan: sourceSpan}, Entries: entries}
}

func (l *LiteralMapExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitLiteralMapExpr(l, context)
}

func (l *LiteralMapExpr) IsEquivalent(e OutputExpression) bool {
	if other, ok := e.(*LiteralMapExpr); ok {
		if len(l.Entries) != len(other.Entries) {
			return false
		}
		for i := range l.Entries {
			if l.Entries[i].Key != other.Entries[i].Key || !l.Entries[i].Value.IsEquivalent(other.Entries[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}

func (l *LiteralMapExpr) IsConstant() bool {
	for _, e := range l.Entries {
		if !e.Value.IsConstant() {
			return false
		}
	}
	return true
}

// WrappedNodeExpr wraps an arbitrary host-language node so it can flow
// through the output AST unchanged (e.g. a type reference).
type WrappedNodeExpr struct {
	ExpressionBase
	Node interface{}
}

// NewWrappedNodeExpr creates a new WrappedNodeExpr
func NewWrappedNodeExpr(node interface{}, typ Type, sourceSpan *util.ParseSourceSpan) *WrappedNodeExpr {
	return &WrappedNodeExpr{ExpressionBase: ExpressionBase{Type: typ, SourceSpan: sourceSpan}, Node: node}
}

func (w *WrappedNodeExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitWrappedNodeExpr(w, context)
}

func (w *WrappedNodeExpr) IsEquivalent(e OutputExpression) bool {
	if other, ok := e.(*WrappedNodeExpr); ok {
		return w.Node == other.Node
	}
	return false
}

func (w *WrappedNodeExpr) IsConstant() bool {
	return false
}

// StmtModifier represents statement modifiers
type StmtModifier int

const (
	StmtModifierNone     StmtModifier = 0
	StmtModifierFinal    StmtModifier = 1 << 0
	StmtModifierExported StmtModifier = 1 << 1
	StmtModifierStatic   StmtModifier = 1 << 2
)

// OutputStatement represents a statement in the output AST
type OutputStatement interface {
	GetSourceSpan() *util.ParseSourceSpan
	VisitStatement(visitor StatementVisitor, context interface{}) interface{}
	IsEquivalentStmt(stmt OutputStatement) bool
}

// StatementVisitor is the interface for visiting statements
type StatementVisitor interface {
	VisitDeclareVarStmt(stmt *DeclareVarStmt, context interface{}) interface{}
	VisitDeclareFunctionStmt(stmt *DeclareFunctionStmt, context interface{}) interface{}
	VisitExpressionStatement(stmt *ExpressionStatement, context interface{}) interface{}
	VisitReturnStatement(stmt *ReturnStatement, context interface{}) interface{}
	VisitIfStmt(stmt *IfStmt, context interface{}) interface{}
	VisitClassStmt(stmt *ClassStmt, context interface{}) interface{}
}

// StatementBase is the base struct for all statements
type StatementBase struct {
	Modifiers  StmtModifier
	SourceSpan *util.ParseSourceSpan
}

// GetSourceSpan returns the source span
func (s *StatementBase) GetSourceSpan() *util.ParseSourceSpan {
	return s.SourceSpan
}

// HasModifier checks if the statement has the given modifier
func (s *StatementBase) HasModifier(modifier StmtModifier) bool {
	return s.Modifiers&modifier != 0
}

// DeclareVarStmt represents a variable declaration
type DeclareVarStmt struct {
	StatementBase
	Name  string
	Value OutputExpression
	Type  Type
}

// NewDeclareVarStmt creates a new DeclareVarStmt
func NewDeclareVarStmt(name string, value OutputExpression, typ Type, modifiers StmtModifier, sourceSpan *util.ParseSourceSpan) *DeclareVarStmt {
	return &DeclareVarStmt{
		StatementBase: StatementBase{Modifiers: modifiers, SourceSpan: sourceSpan},
		Name:          name,
		Value:         value,
		Type:          typ,
	}
}

func (s *DeclareVarStmt) VisitStatement(visitor StatementVisitor, context interface{}) interface{} {
	return visitor.VisitDeclareVarStmt(s, context)
}

func (s *DeclareVarStmt) IsEquivalentStmt(stmt OutputStatement) bool {
	if other, ok := stmt.(*DeclareVarStmt); ok {
		return s.Name == other.Name && nullSafeEquivalent(s.Value, other.Value)
	}
	return false
}

// DeclareFunctionStmt represents a function declaration
type DeclareFunctionStmt struct {
	StatementBase
	Name       string
	Params     []*FnParam
	Statements []OutputStatement
	Type       Type
}

// NewDeclareFunctionStmt creates a new DeclareFunctionStmt
func NewDeclareFunctionStmt(name string, params []*FnParam, statements []OutputStatement, typ Type, modifiers StmtModifier, sourceSpan *util.ParseSourceSpan, leadingComments []string) *DeclareFunctionStmt {
	return &DeclareFunctionStmt{
		StatementBase: StatementBase{Modifiers: modifiers, SourceSpan: sourceSpan},
		Name:          name,
		Params:        params,
		Statements:    statements,
		Type:          typ,
	}
}

func (s *DeclareFunctionStmt) VisitStatement(visitor StatementVisitor, context interface{}) interface{} {
	return visitor.VisitDeclareFunctionStmt(s, context)
}

func (s *DeclareFunctionStmt) IsEquivalentStmt(stmt OutputStatement) bool {
	if other, ok := stmt.(*DeclareFunctionStmt); ok {
		return s.Name == other.Name && areAllEquivalentStmts(s.Statements, other.Statements)
	}
	return false
}

// ExpressionStatement wraps an expression used as a statement
type ExpressionStatement struct {
	StatementBase
	Expr OutputExpression
}

// NewExpressionStatement creates a new ExpressionStatement
func NewExpressionStatement(expr OutputExpression, sourceSpan *util.ParseSourceSpan) *ExpressionStatement {
	return &ExpressionStatement{StatementBase: StatementBase{SourceSpan: sourceSpan}, Expr: expr}
}

func (s *ExpressionStatement) VisitStatement(visitor StatementVisitor, context interface{}) interface{} {
	return visitor.VisitExpressionStatement(s, context)
}

func (s *ExpressionStatement) IsEquivalentStmt(stmt OutputStatement) bool {
	if other, ok := stmt.(*ExpressionStatement); ok {
		return s.Expr.IsEquivalent(other.Expr)
	}
	return false
}

// ReturnStatement represents a return statement
type ReturnStatement struct {
	StatementBase
	Value OutputExpression
}

// NewReturnStatement creates a new ReturnStatement
func NewReturnStatement(value OutputExpression, sourceSpan *util.ParseSourceSpan) *ReturnStatement {
	return &ReturnStatement{StatementBase: StatementBase{SourceSpan: sourceSpan}, Value: value}
}

func (s *ReturnStatement) VisitStatement(visitor StatementVisitor, context interface{}) interface{} {
	return visitor.VisitReturnStatement(s, context)
}

func (s *ReturnStatement) IsEquivalentStmt(stmt OutputStatement) bool {
	if other, ok := stmt.(*ReturnStatement); ok {
		return nullSafeEquivalent(s.Value, other.Value)
	}
	return false
}

// IfStmt represents an if statement
type IfStmt struct {
	StatementBase
	Condition OutputExpression
	TrueCase  []OutputStatement
	FalseCase []OutputStatement
}

// NewIfStmt creates a new IfStmt
func NewIfStmt(condition OutputExpression, trueCase, falseCase []OutputStatement, sourceSpan *util.ParseSourceSpan) *IfStmt {
	return &IfStmt{
		StatementBase: StatementBase{SourceSpan: sourceSpan},
		Condition:     condition,
		TrueCase:      trueCase,
		FalseCase:     falseCase,
	}
}

func (s *IfStmt) VisitStatement(visitor StatementVisitor, context interface{}) interface{} {
	return visitor.VisitIfStmt(s, context)
}

func (s *IfStmt) IsEquivalentStmt(stmt OutputStatement) bool {
	if other, ok := stmt.(*IfStmt); ok {
		return s.Condition.IsEquivalent(other.Condition) &&
			areAllEquivalentStmts(s.TrueCase, other.TrueCase) &&
			areAllEquivalentStmts(s.FalseCase, other.FalseCase)
	}
	return false
}

// ClassField represents a field on a generated class
type ClassField struct {
	Name        string
	Type        Type
	Modifiers   StmtModifier
	Initializer OutputExpression
}

// NewClassField creates a new ClassField
func NewClassField(name string, typ Type, modifiers StmtModifier, initializer OutputExpression) *ClassField {
	return &ClassField{Name: name, Type: typ, Modifiers: modifiers, Initializer: initializer}
}

// ClassStmt represents a (partial) class declaration carrying generated
// static fields.
type ClassStmt struct {
	StatementBase
	Name   string
	Parent OutputExpression
	Fields []*ClassField
}

// NewClassStmt creates a new ClassStmt
func NewClassStmt(name string, parent OutputExpression, fields []*ClassField, modifiers StmtModifier, sourceSpan *util.ParseSourceSpan) *ClassStmt {
	return &ClassStmt{
		StatementBase: StatementBase{Modifiers: modifiers, SourceSpan: sourceSpan},
		Name:          name,
		Parent:        parent,
		Fields:        fields,
	}
}

func (s *ClassStmt) VisitStatement(visitor StatementVisitor, context interface{}) interface{} {
	return visitor.VisitClassStmt(s, context)
}

func (s *ClassStmt) IsEquivalentStmt(stmt OutputStatement) bool {
	if other, ok := stmt.(*ClassStmt); ok {
		return s.Name == other.Name
	}
	return false
}

func areAllEquivalentExprs(base, other []OutputExpression) bool {
	if len(base) != len(other) {
		return false
	}
	for i := range base {
		if !base[i].IsEquivalent(other[i]) {
			return false
		}
	}
	return true
}

func areAllEquivalentStmts(base, other []OutputStatement) bool {
	if len(base) != len(other) {
		return false
	}
	for i := range base {
		if !base[i].IsEquivalentStmt(other[i]) {
			return false
		}
	}
	return true
}

func nullSafeEquivalent(base, other OutputExpression) bool {
	if base == nil || other == nil {
		return base == nil && other == nil
	}
	return base.IsEquivalent(other)
}

func strPtrEq(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
