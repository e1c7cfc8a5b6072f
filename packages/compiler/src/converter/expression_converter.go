// Package converter lowers binding expression ASTs into output ASTs.
package converter

import (
	"fmt"

	"ngdef-go/packages/compiler/src/expressionparser"
	"ngdef-go/packages/compiler/src/output"
)

// LocalResolver resolves local variable names available to a binding
// expression, e.g. $event inside a listener.
type LocalResolver interface {
	GetLocal(name string) output.OutputExpression
	NotifyImplicitReceiverUse()
}

type defaultLocalResolver struct{}

// GetLocal resolves $event; everything else falls through to the context.
func (defaultLocalResolver) GetLocal(name string) output.OutputExpression {
	if name == eventName {
		return output.Variable(eventName)
	}
	return nil
}

func (defaultLocalResolver) NotifyImplicitReceiverUse() {}

const eventName = "$event"

// LiteralConverter rewrites literal arrays and maps encountered while
// lowering a binding, e.g. into constant pool literal factory calls.
type LiteralConverter interface {
	ConvertLiteralArray(arr *output.LiteralArrayExpr) output.OutputExpression
	ConvertLiteralMap(m *output.LiteralMapExpr) output.OutputExpression
}

// BindingForm controls the shape ConvertPropertyBinding produces.
type BindingForm int

const (
	// BindingFormGeneral stores the current value in an intermediate variable.
	BindingFormGeneral BindingForm = iota
	// BindingFormTrySimple produces a bare expression when no intermediate
	// statements are needed.
	BindingFormTrySimple
)

// ConvertPropertyBindingResult is the lowered form of a property binding.
type ConvertPropertyBindingResult struct {
	Stmts       []output.OutputStatement
	CurrValExpr output.OutputExpression
}

// ConvertActionBindingResult is the lowered form of an event handler.
type ConvertActionBindingResult struct {
	Stmts        []output.OutputStatement
	AllowDefault *output.ReadVarExpr
}

// ConvertPropertyBinding lowers a binding expression for an update block.
// With BindingFormGeneral the current value lands in a fresh const named
// after bindingID; BindingFormTrySimple skips the intermediate when the
// conversion produced no supporting statements.
func ConvertPropertyBinding(
	localResolver LocalResolver,
	implicitReceiver output.OutputExpression,
	expression expressionparser.AST,
	bindingID string,
	form BindingForm,
	literalConverter LiteralConverter,
) (*ConvertPropertyBindingResult, error) {
	if localResolver == nil {
		localResolver = defaultLocalResolver{}
	}
	visitor := newAstToOutputVisitor(localResolver, implicitReceiver, bindingID)
	visitor.literalConverter = literalConverter
	outputExpr := visitor.convertExpression(unwrapSource(expression))
	if visitor.err != nil {
		return nil, visitor.err
	}

	stmts := visitor.temporaryDecls()
	if visitor.usesImplicitReceiver {
		localResolver.NotifyImplicitReceiverUse()
	}

	if form == BindingFormTrySimple && len(stmts) == 0 {
		return &ConvertPropertyBindingResult{Stmts: nil, CurrValExpr: outputExpr}, nil
	}

	currValName := "currVal_" + bindingID
	stmts = append(stmts, output.NewDeclareVarStmt(
		currValName, outputExpr, output.DynamicType, output.StmtModifierFinal, nil))
	return &ConvertPropertyBindingResult{
		Stmts:       stmts,
		CurrValExpr: output.Variable(currValName),
	}, nil
}

// ConvertActionBinding lowers an event handler expression into statements.
// When the handler ends in an expression its value is captured in a
// pd_<bindingID> const so the caller can build a preventDefault return.
func ConvertActionBinding(
	localResolver LocalResolver,
	implicitReceiver output.OutputExpression,
	action expressionparser.AST,
	bindingID string,
) (*ConvertActionBindingResult, error) {
	if localResolver == nil {
		localResolver = defaultLocalResolver{}
	}
	visitor := newAstToOutputVisitor(localResolver, implicitReceiver, bindingID)
	result := visitor.convertStatement(unwrapSource(action))
	if visitor.err != nil {
		return nil, visitor.err
	}

	actionStmts := visitor.temporaryDecls()
	actionStmts = append(actionStmts, result...)
	if visitor.usesImplicitReceiver {
		localResolver.NotifyImplicitReceiverUse()
	}

	var preventDefaultVar *output.ReadVarExpr
	lastIndex := len(actionStmts) - 1
	if lastIndex >= 0 {
		if lastStatement, ok := actionStmts[lastIndex].(*output.ExpressionStatement); ok {
			name := "pd_" + bindingID
			preventDefaultVar = output.Variable(name)
			notFalse := output.NewBinaryOperatorExpr(
				output.BinaryOperatorNotIdentical, lastStatement.Expr, output.Literal(false), nil, nil)
			actionStmts[lastIndex] = output.NewDeclareVarStmt(
				name, notFalse, nil, output.StmtModifierFinal, nil)
		}
	}
	return &ConvertActionBindingResult{Stmts: actionStmts, AllowDefault: preventDefaultVar}, nil
}

func unwrapSource(ast expressionparser.AST) expressionparser.AST {
	if withSource, ok := ast.(*expressionparser.ASTWithSource); ok {
		return withSource.AST
	}
	return ast
}

type conversionMode int

const (
	modeExpression conversionMode = iota
	modeStatement
)

var binaryOperationByText = map[string]output.BinaryOperator{
	"+":   output.BinaryOperatorPlus,
	"-":   output.BinaryOperatorMinus,
	"*":   output.BinaryOperatorMultiply,
	"/":   output.BinaryOperatorDivide,
	"%":   output.BinaryOperatorModulo,
	"&&":  output.BinaryOperatorAnd,
	"||":  output.BinaryOperatorOr,
	"==":  output.BinaryOperatorEquals,
	"!=":  output.BinaryOperatorNotEquals,
	"===": output.BinaryOperatorIdentical,
	"!==": output.BinaryOperatorNotIdentical,
	"<":   output.BinaryOperatorLower,
	"<=":  output.BinaryOperatorLowerEquals,
	">":   output.BinaryOperatorBigger,
	">=":  output.BinaryOperatorBiggerEquals,
}

// astToOutputVisitor converts a binding AST into output expressions. The
// visitor threads a conversionMode as the visit context: statement mode is
// only valid at the top of an action binding.
type astToOutputVisitor struct {
	localResolver        LocalResolver
	implicitReceiver     output.OutputExpression
	bindingID            string
	temporaryCount       int
	usesImplicitReceiver bool
	literalConverter     LiteralConverter
	err                  error
}

func newAstToOutputVisitor(localResolver LocalResolver, implicitReceiver output.OutputExpression, bindingID string) *astToOutputVisitor {
	return &astToOutputVisitor{
		localResolver:    localResolver,
		implicitReceiver: implicitReceiver,
		bindingID:        bindingID,
	}
}

func (v *astToOutputVisitor) fail(format string, args ...interface{}) interface{} {
	if v.err == nil {
		v.err = fmt.Errorf(format, args...)
	}
	return output.Literal(nil)
}

func (v *astToOutputVisitor) convertExpression(ast expressionparser.AST) output.OutputExpression {
	result := ast.Visit(v, modeExpression)
	if expr, ok := result.(output.OutputExpression); ok {
		return expr
	}
	v.fail("expected an expression")
	return output.Literal(nil)
}

func (v *astToOutputVisitor) convertStatement(ast expressionparser.AST) []output.OutputStatement {
	result := ast.Visit(v, modeStatement)
	switch r := result.(type) {
	case []output.OutputStatement:
		return r
	case output.OutputExpression:
		return []output.OutputStatement{output.ToStmt(r)}
	}
	v.fail("expected a statement")
	return nil
}

// inMode wraps an expression result for the requested mode.
func (v *astToOutputVisitor) inMode(context interface{}, expr output.OutputExpression) interface{} {
	if context == modeStatement {
		return []output.OutputStatement{output.ToStmt(expr)}
	}
	return expr
}

func (v *astToOutputVisitor) allocateTemporary() *output.ReadVarExpr {
	name := fmt.Sprintf("tmp_%s_%d", v.bindingID, v.temporaryCount)
	v.temporaryCount++
	return output.Variable(name)
}

func (v *astToOutputVisitor) temporaryDecls() []output.OutputStatement {
	stmts := make([]output.OutputStatement, 0, v.temporaryCount)
	for i := 0; i < v.temporaryCount; i++ {
		name := fmt.Sprintf("tmp_%s_%d", v.bindingID, i)
		stmts = append(stmts, output.NewDeclareVarStmt(name, nil, output.DynamicType, output.StmtModifierNone, nil))
	}
	return stmts
}

// receiver resolves the receiver of a property access, tracking implicit
// receiver usage.
func (v *astToOutputVisitor) receiver(ast expressionparser.AST) (output.OutputExpression, bool) {
	if _, ok := ast.(*expressionparser.ImplicitReceiver); ok {
		v.usesImplicitReceiver = true
		return v.implicitReceiver, true
	}
	return v.convertExpression(ast), false
}

func (v *astToOutputVisitor) VisitBinary(ast *expressionparser.Binary, context interface{}) interface{} {
	op, ok := binaryOperationByText[ast.Operation]
	if !ok {
		return v.fail("unsupported operation %q", ast.Operation)
	}
	expr := output.NewBinaryOperatorExpr(op,
		v.convertExpression(ast.Left), v.convertExpression(ast.Right), nil, nil)
	return v.inMode(context, expr)
}

func (v *astToOutputVisitor) VisitChain(ast *expressionparser.Chain, context interface{}) interface{} {
	if context != modeStatement {
		return v.fail("chained expressions are only allowed in an action binding")
	}
	var stmts []output.OutputStatement
	for _, expression := range ast.Expressions {
		stmts = append(stmts, v.convertStatement(expression)...)
	}
	return stmts
}

func (v *astToOutputVisitor) VisitConditional(ast *expressionparser.Conditional, context interface{}) interface{} {
	expr := output.NewConditionalExpr(
		v.convertExpression(ast.Condition),
		v.convertExpression(ast.TrueExp),
		v.convertExpression(ast.FalseExp),
		nil, nil)
	return v.inMode(context, expr)
}

func (v *astToOutputVisitor) VisitImplicitReceiver(ast *expressionparser.ImplicitReceiver, context interface{}) interface{} {
	v.usesImplicitReceiver = true
	return v.implicitReceiver
}

func (v *astToOutputVisitor) VisitInterpolation(ast *expressionparser.Interpolation, context interface{}) interface{} {
	return v.fail("interpolation is not supported in this context")
}

func (v *astToOutputVisitor) VisitKeyedRead(ast *expressionparser.KeyedRead, context interface{}) interface{} {
	receiver, _ := v.receiver(ast.Receiver)
	expr := output.NewReadKeyExpr(receiver, v.convertExpression(ast.Key), nil, nil)
	return v.inMode(context, expr)
}

func (v *astToOutputVisitor) VisitKeyedWrite(ast *expressionparser.KeyedWrite, context interface{}) interface{} {
	receiver, _ := v.receiver(ast.Receiver)
	key := v.convertExpression(ast.Key)
	value := v.convertExpression(ast.Value)
	expr := output.NewReadKeyExpr(receiver, key, nil, nil).Set(value)
	return v.inMode(context, expr)
}

func (v *astToOutputVisitor) VisitLiteralArray(ast *expressionparser.LiteralArray, context interface{}) interface{} {
	entries := make([]output.OutputExpression, len(ast.Expressions))
	for i, expression := range ast.Expressions {
		entries[i] = v.convertExpression(expression)
	}
	arr := output.LiteralArr(entries)
	if v.literalConverter != nil {
		return v.inMode(context, v.literalConverter.ConvertLiteralArray(arr))
	}
	return v.inMode(context, arr)
}

func (v *astToOutputVisitor) VisitLiteralMap(ast *expressionparser.LiteralMap, context interface{}) interface{} {
	entries := make([]*output.LiteralMapEntry, len(ast.Keys))
	for i, key := range ast.Keys {
		entries[i] = output.NewLiteralMapEntry(key.Key, v.convertExpression(ast.Values[i]), key.Quoted)
	}
	m := output.LiteralMap(entries)
	if v.literalConverter != nil {
		return v.inMode(context, v.literalConverter.ConvertLiteralMap(m))
	}
	return v.inMode(context, m)
}

func (v *astToOutputVisitor) VisitLiteralPrimitive(ast *expressionparser.LiteralPrimitive, context interface{}) interface{} {
	return v.inMode(context, output.Literal(ast.Value))
}

func (v *astToOutputVisitor) VisitPipe(ast *expressionparser.BindingPipe, context interface{}) interface{} {
	return v.fail("illegal state: pipes should have been converted into functions. Pipe: %s", ast.Name)
}

func (v *astToOutputVisitor) VisitPrefixNot(ast *expressionparser.PrefixNot, context interface{}) interface{} {
	return v.inMode(context, output.Not(v.convertExpression(ast.Expression)))
}

func (v *astToOutputVisitor) VisitPropertyRead(ast *expressionparser.PropertyRead, context interface{}) interface{} {
	if _, isImplicit := ast.Receiver.(*expressionparser.ImplicitReceiver); isImplicit {
		if local := v.localResolver.GetLocal(ast.Name); local != nil {
			return v.inMode(context, local)
		}
	}
	receiver, _ := v.receiver(ast.Receiver)
	return v.inMode(context, output.Prop(receiver, ast.Name))
}

func (v *astToOutputVisitor) VisitPropertyWrite(ast *expressionparser.PropertyWrite, context interface{}) interface{} {
	receiver, isImplicit := v.receiver(ast.Receiver)
	if isImplicit && v.localResolver.GetLocal(ast.Name) != nil {
		return v.fail("cannot assign to a reference or variable %q", ast.Name)
	}
	value := v.convertExpression(ast.Value)
	expr := output.NewReadPropExpr(receiver, ast.Name, nil, nil).Set(value)
	return v.inMode(context, expr)
}

func (v *astToOutputVisitor) VisitCall(ast *expressionparser.Call, context interface{}) interface{} {
	args := make([]output.OutputExpression, len(ast.Args))
	for i, arg := range ast.Args {
		args[i] = v.convertExpression(arg)
	}
	var fn output.OutputExpression
	switch receiver := ast.Receiver.(type) {
	case *expressionparser.PropertyRead:
		if _, isImplicit := receiver.Receiver.(*expressionparser.ImplicitReceiver); isImplicit {
			if local := v.localResolver.GetLocal(receiver.Name); local != nil {
				fn = local
				break
			}
		}
		target, _ := v.receiver(receiver.Receiver)
		fn = output.Prop(target, receiver.Name)
	default:
		fn = v.convertExpression(ast.Receiver)
	}
	return v.inMode(context, output.CallExpr(fn, args...))
}
