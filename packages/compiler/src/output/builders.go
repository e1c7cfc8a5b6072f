package output

import (
	"ngdef-go/packages/compiler/src/util"
)

// Variable creates a variable read expression
func Variable(name string) *ReadVarExpr {
	return NewReadVarExpr(name, nil, nil)
}

// Literal creates a literal expression
func Literal(value interface{}) *LiteralExpr {
	return NewLiteralExpr(value, nil, nil)
}

// ImportExpr creates an expression referencing an imported symbol
func ImportExpr(ref *ExternalReference) *ExternalExpr {
	return NewExternalExpr(ref, nil, nil, nil)
}

// LiteralArr creates an array literal expression
func LiteralArr(entries []OutputExpression) *LiteralArrayExpr {
	return NewLiteralArrayExpr(entries, nil, nil)
}

// LiteralMap creates an object literal expression
func LiteralMap(entries []*LiteralMapEntry) *LiteralMapExpr {
	return NewLiteralMapExpr(entries, nil, nil)
}

// Fn creates a function expression
func Fn(params []*FnParam, statements []OutputStatement, typ Type, sourceSpan *util.ParseSourceSpan, name *string) *FunctionExpr {
	return NewFunctionExpr(params, statements, typ, sourceSpan, name)
}

// Not creates a logical negation expression
func Not(expr OutputExpression) *NotExpr {
	return NewNotExpr(expr, nil)
}

// ExpressionTypeOf wraps an expression as a type
func ExpressionTypeOf(expr OutputExpression) *ExpressionType {
	return NewExpressionType(expr, TypeModifierNone, nil)
}

// CallExpr creates an invocation of the given expression
func CallExpr(fn OutputExpression, args ...OutputExpression) *InvokeFunctionExpr {
	return NewInvokeFunctionExpr(fn, args, nil, nil, false)
}

// CallImport creates an invocation of an imported symbol
func CallImport(ref *ExternalReference, args ...OutputExpression) *InvokeFunctionExpr {
	return CallExpr(ImportExpr(ref), args...)
}

// Prop creates a property read on the given receiver
func Prop(receiver OutputExpression, name string) *ReadPropExpr {
	return NewReadPropExpr(receiver, name, nil, nil)
}

// And creates a logical-and expression
func And(lhs, rhs OutputExpression) *BinaryOperatorExpr {
	return NewBinaryOperatorExpr(BinaryOperatorAnd, lhs, rhs, BoolType, nil)
}

// Plus creates an addition expression
func Plus(lhs, rhs OutputExpression) *BinaryOperatorExpr {
	return NewBinaryOperatorExpr(BinaryOperatorPlus, lhs, rhs, nil, nil)
}

// ToStmt wraps an expression into an expression statement
func ToStmt(expr OutputExpression) *ExpressionStatement {
	return NewExpressionStatement(expr, expr.GetSourceSpan())
}
