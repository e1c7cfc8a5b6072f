package converter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ngdef-go/packages/compiler/src/converter"
	"ngdef-go/packages/compiler/src/expressionparser"
	"ngdef-go/packages/compiler/src/output"
)

func parseBinding(t *testing.T, input string) *expressionparser.ASTWithSource {
	t.Helper()
	parser := expressionparser.NewParser(expressionparser.NewLexer())
	result := parser.ParseBinding(input, "test.ts", 0)
	require.Empty(t, result.Errors)
	return result
}

func parseAction(t *testing.T, input string) *expressionparser.ASTWithSource {
	t.Helper()
	parser := expressionparser.NewParser(expressionparser.NewLexer())
	result := parser.ParseAction(input, "test.ts", 0)
	require.Empty(t, result.Errors)
	return result
}

func convertBinding(t *testing.T, input string, form converter.BindingForm) *converter.ConvertPropertyBindingResult {
	t.Helper()
	result, err := converter.ConvertPropertyBinding(
		nil, output.Variable("ctx"), parseBinding(t, input), "b", form, nil)
	require.NoError(t, err)
	return result
}

func TestConvertPropertyBinding(t *testing.T) {
	t.Run("should produce a bare expression in simple form", func(t *testing.T) {
		result := convertBinding(t, "name", converter.BindingFormTrySimple)
		assert.Empty(t, result.Stmts)
		assert.Equal(t, "ctx.name", output.EmitExpression(result.CurrValExpr))
	})

	t.Run("should capture the current value in general form", func(t *testing.T) {
		result := convertBinding(t, "name", converter.BindingFormGeneral)
		assert.Equal(t, "const currVal_b = ctx.name;\n", output.EmitStatements(result.Stmts))
		assert.Equal(t, "currVal_b", output.EmitExpression(result.CurrValExpr))
	})

	t.Run("should lower conditionals and binary operators", func(t *testing.T) {
		result := convertBinding(t, "ok ? a + 1 : b", converter.BindingFormTrySimple)
		assert.Equal(t, "(ctx.ok ? (ctx.a + 1) : ctx.b)", output.EmitExpression(result.CurrValExpr))
	})

	t.Run("should lower keyed reads", func(t *testing.T) {
		result := convertBinding(t, "items[0]", converter.BindingFormTrySimple)
		assert.Equal(t, "ctx.items[0]", output.EmitExpression(result.CurrValExpr))
	})

	t.Run("should lower a negation prefix to a zero subtraction", func(t *testing.T) {
		result := convertBinding(t, "-x", converter.BindingFormTrySimple)
		assert.Equal(t, "(0 - ctx.x)", output.EmitExpression(result.CurrValExpr))
	})

	t.Run("should lower method calls against the context", func(t *testing.T) {
		result := convertBinding(t, "format(name, 2)", converter.BindingFormTrySimple)
		assert.Equal(t, "ctx.format(ctx.name, 2)", output.EmitExpression(result.CurrValExpr))
	})

	t.Run("should route literal arrays through the literal converter", func(t *testing.T) {
		result, err := converter.ConvertPropertyBinding(
			nil, output.Variable("ctx"), parseBinding(t, "[a, b]"), "b",
			converter.BindingFormTrySimple, markerLiteralConverter{})
		require.NoError(t, err)
		assert.Equal(t, "ARR", output.EmitExpression(result.CurrValExpr))
	})

	t.Run("should route literal maps through the literal converter", func(t *testing.T) {
		result, err := converter.ConvertPropertyBinding(
			nil, output.Variable("ctx"), parseBinding(t, "{a: 1}"), "b",
			converter.BindingFormTrySimple, markerLiteralConverter{})
		require.NoError(t, err)
		assert.Equal(t, "MAP", output.EmitExpression(result.CurrValExpr))
	})

	t.Run("should reject unconverted pipes", func(t *testing.T) {
		_, err := converter.ConvertPropertyBinding(
			nil, output.Variable("ctx"), parseBinding(t, "x | async"), "b",
			converter.BindingFormTrySimple, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "pipes should have been converted")
	})
}

func TestConvertActionBinding(t *testing.T) {
	t.Run("should capture the allow-default value of the trailing expression", func(t *testing.T) {
		result, err := converter.ConvertActionBinding(
			nil, output.Variable("ctx"), parseAction(t, "onClick($event)"), "b")
		require.NoError(t, err)
		assert.Equal(t, "const pd_b = (ctx.onClick($event) !== false);\n",
			output.EmitStatements(result.Stmts))
		require.NotNil(t, result.AllowDefault)
		assert.Equal(t, "pd_b", result.AllowDefault.Name)
	})

	t.Run("should lower chained statements in order", func(t *testing.T) {
		result, err := converter.ConvertActionBinding(
			nil, output.Variable("ctx"), parseAction(t, "first(); second()"), "b")
		require.NoError(t, err)
		assert.Equal(t,
			"ctx.first();\nconst pd_b = (ctx.second() !== false);\n",
			output.EmitStatements(result.Stmts))
	})

	t.Run("should lower assignments against the context", func(t *testing.T) {
		result, err := converter.ConvertActionBinding(
			nil, output.Variable("ctx"), parseAction(t, "x = 1"), "b")
		require.NoError(t, err)
		assert.Equal(t, "const pd_b = ((ctx.x = 1) !== false);\n",
			output.EmitStatements(result.Stmts))
	})

	t.Run("should reject assignments to locals", func(t *testing.T) {
		_, err := converter.ConvertActionBinding(
			nil, output.Variable("ctx"), parseAction(t, "$event = 1"), "b")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot assign to a reference or variable")
	})
}

type markerLiteralConverter struct{}

func (markerLiteralConverter) ConvertLiteralArray(arr *output.LiteralArrayExpr) output.OutputExpression {
	return output.Variable("ARR")
}

func (markerLiteralConverter) ConvertLiteralMap(m *output.LiteralMapExpr) output.OutputExpression {
	return output.Variable("MAP")
}
