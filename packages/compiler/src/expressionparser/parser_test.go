package expressionparser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ngdef-go/packages/compiler/src/expressionparser"
)

func newParser() *expressionparser.Parser {
	return expressionparser.NewParser(expressionparser.NewLexer())
}

func parseBinding(t *testing.T, input string) *expressionparser.ASTWithSource {
	t.Helper()
	result := newParser().ParseBinding(input, "host.ts", 0)
	require.Empty(t, result.Errors, "unexpected parse errors for %q", input)
	return result
}

func parseAction(t *testing.T, input string) *expressionparser.ASTWithSource {
	t.Helper()
	result := newParser().ParseAction(input, "host.ts", 0)
	require.Empty(t, result.Errors, "unexpected parse errors for %q", input)
	return result
}

func firstErrorMessage(result *expressionparser.ASTWithSource) string {
	if len(result.Errors) == 0 {
		return ""
	}
	return result.Errors[0].Msg
}

func TestParser_ParseBinding(t *testing.T) {
	t.Run("should parse property read chains", func(t *testing.T) {
		result := parseBinding(t, "a.b")
		read := result.AST.(*expressionparser.PropertyRead)
		assert.Equal(t, "b", read.Name)
		receiver := read.Receiver.(*expressionparser.PropertyRead)
		assert.Equal(t, "a", receiver.Name)
		assert.IsType(t, &expressionparser.ImplicitReceiver{}, receiver.Receiver)
	})

	t.Run("should parse calls", func(t *testing.T) {
		result := parseBinding(t, "greet(name, 42)")
		call := result.AST.(*expressionparser.Call)
		receiver := call.Receiver.(*expressionparser.PropertyRead)
		assert.Equal(t, "greet", receiver.Name)
		require.Len(t, call.Args, 2)
		literal := call.Args[1].(*expressionparser.LiteralPrimitive)
		assert.Equal(t, float64(42), literal.Value)
	})

	t.Run("should honor operator precedence", func(t *testing.T) {
		result := parseBinding(t, "1 + 2 * 3")
		add := result.AST.(*expressionparser.Binary)
		assert.Equal(t, "+", add.Operation)
		mul := add.Right.(*expressionparser.Binary)
		assert.Equal(t, "*", mul.Operation)
	})

	t.Run("should parse conditionals", func(t *testing.T) {
		result := parseBinding(t, "ok ? a : b")
		conditional := result.AST.(*expressionparser.Conditional)
		assert.IsType(t, &expressionparser.PropertyRead{}, conditional.Condition)
	})

	t.Run("should parse keyed reads", func(t *testing.T) {
		result := parseBinding(t, "items[0]")
		keyed := result.AST.(*expressionparser.KeyedRead)
		assert.IsType(t, &expressionparser.LiteralPrimitive{}, keyed.Key)
	})

	t.Run("should parse literal arrays and maps", func(t *testing.T) {
		arr := parseBinding(t, "[1, 2]").AST.(*expressionparser.LiteralArray)
		assert.Len(t, arr.Expressions, 2)

		m := parseBinding(t, "{a: 1, 'b-c': 2}").AST.(*expressionparser.LiteralMap)
		require.Len(t, m.Keys, 2)
		assert.Equal(t, expressionparser.LiteralMapKey{Key: "a", Quoted: false}, m.Keys[0])
		assert.Equal(t, expressionparser.LiteralMapKey{Key: "b-c", Quoted: true}, m.Keys[1])
	})

	t.Run("should parse prefix operators", func(t *testing.T) {
		not := parseBinding(t, "!done").AST.(*expressionparser.PrefixNot)
		assert.IsType(t, &expressionparser.PropertyRead{}, not.Expression)

		neg := parseBinding(t, "-x").AST.(*expressionparser.Binary)
		assert.Equal(t, "-", neg.Operation)
		zero := neg.Left.(*expressionparser.LiteralPrimitive)
		assert.Equal(t, 0, zero.Value)
	})

	t.Run("should parse pipes", func(t *testing.T) {
		result := parseBinding(t, "x | async:arg")
		pipe := result.AST.(*expressionparser.BindingPipe)
		assert.Equal(t, "async", pipe.Name)
		assert.Len(t, pipe.Args, 1)
	})

	t.Run("should parse an empty input into an empty expression", func(t *testing.T) {
		result := parseBinding(t, "")
		assert.IsType(t, &expressionparser.EmptyExpr{}, result.AST)
	})

	t.Run("should reject assignments", func(t *testing.T) {
		result := newParser().ParseBinding("x = 1", "host.ts", 0)
		assert.Contains(t, firstErrorMessage(result), "Bindings cannot contain assignments")
	})

	t.Run("should reject chained expressions", func(t *testing.T) {
		result := newParser().ParseBinding("a; b", "host.ts", 0)
		assert.Contains(t, firstErrorMessage(result), "cannot contain chained expression")
	})

	t.Run("should reject interpolation", func(t *testing.T) {
		result := newParser().ParseBinding("{{x}}", "host.ts", 0)
		assert.Contains(t, firstErrorMessage(result),
			"Got interpolation ({{}}) where expression was expected")
	})

	t.Run("should record the location in error messages", func(t *testing.T) {
		result := newParser().ParseBinding("a +", "host.ts", 0)
		require.NotEmpty(t, result.Errors)
		assert.Contains(t, firstErrorMessage(result), "in [a +] in host.ts")
	})
}

func TestParser_ParseAction(t *testing.T) {
	t.Run("should parse assignments", func(t *testing.T) {
		result := parseAction(t, "x = 1")
		write := result.AST.(*expressionparser.PropertyWrite)
		assert.Equal(t, "x", write.Name)
	})

	t.Run("should parse keyed writes", func(t *testing.T) {
		result := parseAction(t, "items[0] = value")
		assert.IsType(t, &expressionparser.KeyedWrite{}, result.AST)
	})

	t.Run("should parse chained statements", func(t *testing.T) {
		result := parseAction(t, "a(); b()")
		chain := result.AST.(*expressionparser.Chain)
		assert.Len(t, chain.Expressions, 2)
	})

	t.Run("should reject pipes", func(t *testing.T) {
		result := newParser().ParseAction("x | async", "host.ts", 0)
		assert.Contains(t, firstErrorMessage(result), "Cannot have a pipe in an action expression")
	})
}
