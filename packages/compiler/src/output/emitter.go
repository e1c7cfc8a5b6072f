package output

import (
	"fmt"
	"strings"
)

var binaryOperatorText = map[BinaryOperator]string{
	BinaryOperatorEquals:       "==",
	BinaryOperatorNotEquals:    "!=",
	BinaryOperatorAssign:       "=",
	BinaryOperatorIdentical:    "===",
	BinaryOperatorNotIdentical: "!==",
	BinaryOperatorMinus:        "-",
	BinaryOperatorPlus:         "+",
	BinaryOperatorDivide:       "/",
	BinaryOperatorMultiply:     "*",
	BinaryOperatorModulo:       "%",
	BinaryOperatorAnd:          "&&",
	BinaryOperatorOr:           "||",
	BinaryOperatorBitwiseAnd:   "&",
	BinaryOperatorBitwiseOr:    "|",
	BinaryOperatorLower:        "<",
	BinaryOperatorLowerEquals:  "<=",
	BinaryOperatorBigger:       ">",
	BinaryOperatorBiggerEquals: ">=",
}

// EmitterVisitor emits the output AST as JavaScript source text. Imported
// symbols are emitted by bare name; import bookkeeping belongs to the caller.
type EmitterVisitor struct {
	sb     strings.Builder
	indent int
}

// NewEmitterVisitor creates a new EmitterVisitor
func NewEmitterVisitor() *EmitterVisitor {
	return &EmitterVisitor{}
}

// EmitStatements renders a list of statements as JavaScript
func EmitStatements(statements []OutputStatement) string {
	v := NewEmitterVisitor()
	for _, stmt := range statements {
		v.emitStatement(stmt)
	}
	return v.sb.String()
}

// EmitExpression renders a single expression as JavaScript
func EmitExpression(expr OutputExpression) string {
	v := NewEmitterVisitor()
	expr.VisitExpression(v, nil)
	return v.sb.String()
}

func (v *EmitterVisitor) write(s string) {
	v.sb.WriteString(s)
}

func (v *EmitterVisitor) writeIndent() {
	for i := 0; i < v.indent; i++ {
		v.sb.WriteString("  ")
	}
}

func (v *EmitterVisitor) emitStatement(stmt OutputStatement) {
	v.writeIndent()
	stmt.VisitStatement(v, nil)
	v.write("\n")
}

func (v *EmitterVisitor) emitExpressionList(exprs []OutputExpression, separator string) {
	for i, expr := range exprs {
		if i > 0 {
			v.write(separator)
		}
		expr.VisitExpression(v, nil)
	}
}

// VisitReadVarExpr implements ExpressionVisitor
func (v *EmitterVisitor) VisitReadVarExpr(ast *ReadVarExpr, context interface{}) interface{} {
	v.write(ast.Name)
	return nil
}

// VisitLiteralExpr implements ExpressionVisitor
func (v *EmitterVisitor) VisitLiteralExpr(ast *LiteralExpr, context interface{}) interface{} {
	switch value := ast.Value.(type) {
	case nil:
		v.write("null")
	case undefinedValue:
		v.write("undefined")
	case string:
		v.write(escapeString(value))
	case bool:
		v.write(fmt.Sprintf("%t", value))
	default:
		v.write(fmt.Sprintf("%v", value))
	}
	return nil
}

// VisitBinaryOperatorExpr implements ExpressionVisitor
func (v *EmitterVisitor) VisitBinaryOperatorExpr(ast *BinaryOperatorExpr, context interface{}) interface{} {
	opText, ok := binaryOperatorText[ast.Operator]
	if !ok {
		panic(fmt.Sprintf("unknown binary operator %d", ast.Operator))
	}
	v.write("(")
	ast.Lhs.VisitExpression(v, nil)
	v.write(" " + opText + " ")
	ast.Rhs.VisitExpression(v, nil)
	v.write(")")
	return nil
}

// VisitNotExpr implements ExpressionVisitor
func (v *EmitterVisitor) VisitNotExpr(ast *NotExpr, context interface{}) interface{} {
	v.write("!")
	ast.Condition.VisitExpression(v, nil)
	return nil
}

// VisitInvokeFunctionExpr implements ExpressionVisitor
func (v *EmitterVisitor) VisitInvokeFunctionExpr(ast *InvokeFunctionExpr, context interface{}) interface{} {
	ast.Fn.VisitExpression(v, nil)
	v.write("(")
	v.emitExpressionList(ast.Args, ", ")
	v.write(")")
	return nil
}

// VisitInstantiateExpr implements ExpressionVisitor
func (v *EmitterVisitor) VisitInstantiateExpr(ast *InstantiateExpr, context interface{}) interface{} {
	v.write("new ")
	ast.ClassExpr.VisitExpression(v, nil)
	v.write("(")
	v.emitExpressionList(ast.Args, ", ")
	v.write(")")
	return nil
}

// VisitExternalExpr implements ExpressionVisitor
func (v *EmitterVisitor) VisitExternalExpr(ast *ExternalExpr, context interface{}) interface{} {
	if ast.Value.Name != nil {
		v.write(*ast.Value.Name)
	}
	return nil
}

// VisitConditionalExpr implements ExpressionVisitor
func (v *EmitterVisitor) VisitConditionalExpr(ast *ConditionalExpr, context interface{}) interface{} {
	v.write("(")
	ast.Condition.VisitExpression(v, nil)
	v.write(" ? ")
	ast.TrueCase.VisitExpression(v, nil)
	v.write(" : ")
	ast.FalseCase.VisitExpression(v, nil)
	v.write(")")
	return nil
}

// VisitFunctionExpr implements ExpressionVisitor
func (v *EmitterVisitor) VisitFunctionExpr(ast *FunctionExpr, context interface{}) interface{} {
	name := ""
	if ast.Name != nil {
		name = " " + *ast.Name
	}
	v.write("function" + name + "(")
	v.emitParams(ast.Params)
	v.write(") {\n")
	v.indent++
	for _, stmt := range ast.Statements {
		v.emitStatement(stmt)
	}
	v.indent--
	v.writeIndent()
	v.write("}")
	return nil
}

// VisitReadPropExpr implements ExpressionVisitor
func (v *EmitterVisitor) VisitReadPropExpr(ast *ReadPropExpr, context interface{}) interface{} {
	ast.Receiver.VisitExpression(v, nil)
	v.write("." + ast.Name)
	return nil
}

// VisitReadKeyExpr implements ExpressionVisitor
func (v *EmitterVisitor) VisitReadKeyExpr(ast *ReadKeyExpr, context interface{}) interface{} {
	ast.Receiver.VisitExpression(v, nil)
	v.write("[")
	ast.Index.VisitExpression(v, nil)
	v.write("]")
	return nil
}

// VisitLiteralArrayExpr implements ExpressionVisitor
func (v *EmitterVisitor) VisitLiteralArrayExpr(ast *LiteralArrayExpr, context interface{}) interface{} {
	v.write("[")
	v.emitExpressionList(ast.Entries, ", ")
	v.write("]")
	return nil
}

// VisitLiteralMapExpr implements ExpressionVisitor
func (v *EmitterVisitor) VisitLiteralMapExpr(ast *LiteralMapExpr, context interface{}) interface{} {
	v.write("{ ")
	for i, entry := range ast.Entries {
		if i > 0 {
			v.write(", ")
		}
		if entry.Quoted {
			v.write(escapeString(entry.Key))
		} else {
			v.write(entry.Key)
		}
		v.write(": ")
		entry.Value.VisitExpression(v, nil)
	}
	v.write(" }")
	return nil
}

// VisitWrappedNodeExpr implements ExpressionVisitor
func (v *EmitterVisitor) VisitWrappedNodeExpr(ast *WrappedNodeExpr, context interface{}) interface{} {
	v.write(fmt.Sprintf("%v", ast.Node))
	return nil
}

// VisitDeclareVarStmt implements StatementVisitor
func (v *EmitterVisitor) VisitDeclareVarStmt(stmt *DeclareVarStmt, context interface{}) interface{} {
	if stmt.HasModifier(StmtModifierFinal) {
		v.write("const ")
	} else {
		v.write("var ")
	}
	v.write(stmt.Name)
	if stmt.Value != nil {
		v.write(" = ")
		stmt.Value.VisitExpression(v, nil)
	}
	v.write(";")
	return nil
}

// VisitDeclareFunctionStmt implements StatementVisitor
func (v *EmitterVisitor) VisitDeclareFunctionStmt(stmt *DeclareFunctionStmt, context interface{}) interface{} {
	v.write("function " + stmt.Name + "(")
	v.emitParams(stmt.Params)
	v.write(") {\n")
	v.indent++
	for _, s := range stmt.Statements {
		v.emitStatement(s)
	}
	v.indent--
	v.writeIndent()
	v.write("}")
	return nil
}

// VisitExpressionStatement implements StatementVisitor
func (v *EmitterVisitor) VisitExpressionStatement(stmt *ExpressionStatement, context interface{}) interface{} {
	stmt.Expr.VisitExpression(v, nil)
	v.write(";")
	return nil
}

// VisitReturnStatement implements StatementVisitor
func (v *EmitterVisitor) VisitReturnStatement(stmt *ReturnStatement, context interface{}) interface{} {
	v.write("return")
	if stmt.Value != nil {
		v.write(" ")
		stmt.Value.VisitExpression(v, nil)
	}
	v.write(";")
	return nil
}

// VisitIfStmt implements StatementVisitor
func (v *EmitterVisitor) VisitIfStmt(stmt *IfStmt, context interface{}) interface{} {
	v.write("if (")
	stmt.Condition.VisitExpression(v, nil)
	v.write(") {\n")
	v.indent++
	for _, s := range stmt.TrueCase {
		v.emitStatement(s)
	}
	v.indent--
	v.writeIndent()
	v.write("}")
	if len(stmt.FalseCase) > 0 {
		v.write(" else {\n")
		v.indent++
		for _, s := range stmt.FalseCase {
			v.emitStatement(s)
		}
		v.indent--
		v.writeIndent()
		v.write("}")
	}
	return nil
}

// VisitClassStmt implements StatementVisitor
func (v *EmitterVisitor) VisitClassStmt(stmt *ClassStmt, context interface{}) interface{} {
	v.write("class " + stmt.Name)
	if stmt.Parent != nil {
		v.write(" extends ")
		stmt.Parent.VisitExpression(v, nil)
	}
	v.write(" {\n")
	v.indent++
	for _, field := range stmt.Fields {
		v.writeIndent()
		if field.Modifiers&StmtModifierStatic != 0 {
			v.write("static ")
		}
		v.write(field.Name)
		if field.Initializer != nil {
			v.write(" = ")
			field.Initializer.VisitExpression(v, nil)
		}
		v.write(";\n")
	}
	v.indent--
	v.writeIndent()
	v.write("}")
	return nil
}

func (v *EmitterVisitor) emitParams(params []*FnParam) {
	for i, param := range params {
		if i > 0 {
			v.write(", ")
		}
		v.write(param.Name)
	}
}

func escapeString(s string) string {
	var sb strings.Builder
	sb.WriteByte('\'')
	for _, r := range s {
		switch r {
		case '\'':
			sb.WriteString(`\'`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('\'')
	return sb.String()
}
