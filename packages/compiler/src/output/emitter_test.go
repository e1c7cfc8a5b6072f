package output_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"ngdef-go/packages/compiler/src/output"
)

func emit(expr output.OutputExpression) string {
	return output.EmitExpression(expr)
}

func TestEmitExpression(t *testing.T) {
	t.Run("should emit literals", func(t *testing.T) {
		assert.Equal(t, "1", emit(output.Literal(1)))
		assert.Equal(t, "1.5", emit(output.Literal(1.5)))
		assert.Equal(t, "true", emit(output.Literal(true)))
		assert.Equal(t, "null", emit(output.Literal(nil)))
		assert.Equal(t, "undefined", emit(output.Literal(output.UndefinedValue)))
	})

	t.Run("should escape strings", func(t *testing.T) {
		assert.Equal(t, `'it\'s'`, emit(output.Literal("it's")))
		assert.Equal(t, `'a\\b'`, emit(output.Literal(`a\b`)))
		assert.Equal(t, `'a\nb'`, emit(output.Literal("a\nb")))
	})

	t.Run("should emit array and object literals", func(t *testing.T) {
		assert.Equal(t, "['a', 1]", emit(output.LiteralArr([]output.OutputExpression{
			output.Literal("a"), output.Literal(1),
		})))
		assert.Equal(t, "{ a: 1, 'b-c': 2 }", emit(output.LiteralMap([]*output.LiteralMapEntry{
			output.NewLiteralMapEntry("a", output.Literal(1), false),
			output.NewLiteralMapEntry("b-c", output.Literal(2), true),
		})))
	})

	t.Run("should parenthesize binary and conditional expressions", func(t *testing.T) {
		sum := output.Plus(output.Variable("a"), output.Literal(1))
		assert.Equal(t, "(a + 1)", emit(sum))
		conditional := output.NewConditionalExpr(
			output.Variable("ok"), output.Variable("a"), output.Variable("b"), nil, nil)
		assert.Equal(t, "(ok ? a : b)", emit(conditional))
	})

	t.Run("should emit property and keyed reads", func(t *testing.T) {
		assert.Equal(t, "ctx.name", emit(output.Prop(output.Variable("ctx"), "name")))
		keyed := output.NewReadKeyExpr(output.Variable("items"), output.Literal(0), nil, nil)
		assert.Equal(t, "items[0]", emit(keyed))
	})

	t.Run("should emit calls and instantiations", func(t *testing.T) {
		call := output.CallExpr(output.Variable("fn"), output.Literal(1), output.Variable("x"))
		assert.Equal(t, "fn(1, x)", emit(call))
		instantiate := output.NewInstantiateExpr(
			output.NewBinaryOperatorExpr(output.BinaryOperatorOr,
				output.Variable("t"), output.Variable("MyDirective"), nil, nil),
			nil, nil, nil)
		assert.Equal(t, "new (t || MyDirective)()", emit(instantiate))
	})

	t.Run("should emit imported symbols by bare name", func(t *testing.T) {
		core := "@angular/core"
		name := "ɵɵdefineDirective"
		ref := &output.ExternalReference{Name: &name, ModuleName: &core}
		assert.Equal(t, "ɵɵdefineDirective(x)", emit(output.CallImport(ref, output.Variable("x"))))
	})

	t.Run("should name a function expression only when a name is given", func(t *testing.T) {
		named := "go"
		fn := output.Fn(
			[]*output.FnParam{output.NewFnParam("a", output.DynamicType)},
			[]output.OutputStatement{output.NewReturnStatement(output.Variable("a"), nil)},
			output.InferredType, nil, &named)
		assert.Equal(t, "function go(a) {\n  return a;\n}", emit(fn))

		anonymous := output.Fn(
			[]*output.FnParam{output.NewFnParam("a", output.DynamicType)},
			nil, output.InferredType, nil, nil)
		assert.Equal(t, "function(a) {\n}", emit(anonymous))
	})
}

func TestEmitStatements(t *testing.T) {
	t.Run("should terminate each statement with a newline", func(t *testing.T) {
		emitted := output.EmitStatements([]output.OutputStatement{
			output.ToStmt(output.CallExpr(output.Variable("fn"))),
			output.NewReturnStatement(output.Literal(1), nil),
		})
		if diff := cmp.Diff("fn();\nreturn 1;\n", emitted); diff != "" {
			t.Errorf("EmitStatements() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should mark final variables as const", func(t *testing.T) {
		emitted := output.EmitStatements([]output.OutputStatement{
			output.NewDeclareVarStmt("a", output.Literal(1), output.InferredType, output.StmtModifierFinal, nil),
			output.NewDeclareVarStmt("b", nil, output.DynamicType, output.StmtModifierNone, nil),
		})
		assert.Equal(t, "const a = 1;\nvar b;\n", emitted)
	})

	t.Run("should indent nested blocks", func(t *testing.T) {
		check := output.NewBinaryOperatorExpr(output.BinaryOperatorBitwiseAnd,
			output.Variable("rf"), output.Literal(1), nil, nil)
		stmt := output.NewIfStmt(check, []output.OutputStatement{
			output.ToStmt(output.CallExpr(output.Variable("create"))),
		}, []output.OutputStatement{
			output.ToStmt(output.CallExpr(output.Variable("update"))),
		}, nil)
		emitted := output.EmitStatements([]output.OutputStatement{stmt})
		expected := "if ((rf & 1)) {\n  create();\n} else {\n  update();\n}\n"
		if diff := cmp.Diff(expected, emitted); diff != "" {
			t.Errorf("EmitStatements() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should emit class statements with static fields", func(t *testing.T) {
		stmt := output.NewClassStmt("MyDirective", nil, []*output.ClassField{
			output.NewClassField("ngDirectiveDef", output.InferredType,
				output.StmtModifierStatic, output.Variable("def")),
		}, output.StmtModifierNone, nil)
		emitted := output.EmitStatements([]output.OutputStatement{stmt})
		expected := "class MyDirective {\n  static ngDirectiveDef = def;\n}\n"
		assert.Equal(t, expected, emitted)
	})
}
