package pool_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ngdef-go/packages/compiler/src/output"
	"ngdef-go/packages/compiler/src/pool"
)

func stringArr(values ...string) *output.LiteralArrayExpr {
	entries := make([]output.OutputExpression, len(values))
	for i, value := range values {
		entries[i] = output.Literal(value)
	}
	return output.LiteralArr(entries)
}

func TestGetConstLiteral(t *testing.T) {
	t.Run("should pass simple literals through", func(t *testing.T) {
		constantPool := pool.NewConstantPool()
		literal := output.Literal("a")
		assert.Same(t, literal, constantPool.GetConstLiteral(literal, true).(*output.LiteralExpr))
		assert.Empty(t, constantPool.Statements())
	})

	t.Run("should share a forced constant immediately", func(t *testing.T) {
		constantPool := pool.NewConstantPool()
		shared := constantPool.GetConstLiteral(stringArr("a", "b"), true)
		assert.Equal(t, "_c0", output.EmitExpression(shared))
		assert.Equal(t, "const _c0 = ['a', 'b'];\n",
			output.EmitStatements(constantPool.Statements()))
	})

	t.Run("should reuse the constant for an equal literal", func(t *testing.T) {
		constantPool := pool.NewConstantPool()
		first := constantPool.GetConstLiteral(stringArr("a"), true)
		second := constantPool.GetConstLiteral(stringArr("a"), true)
		assert.Equal(t, "_c0", output.EmitExpression(first))
		assert.Equal(t, "_c0", output.EmitExpression(second))
		assert.Len(t, constantPool.Statements(), 1)
	})

	t.Run("should promote a literal to a constant on its second use", func(t *testing.T) {
		constantPool := pool.NewConstantPool()
		first := constantPool.GetConstLiteral(stringArr("a"), false)
		assert.Equal(t, "['a']", output.EmitExpression(first))
		assert.Empty(t, constantPool.Statements())

		second := constantPool.GetConstLiteral(stringArr("a"), false)
		assert.Equal(t, "_c0", output.EmitExpression(second))
		// the first reference follows the promotion
		assert.Equal(t, "_c0", output.EmitExpression(first))
		assert.Len(t, constantPool.Statements(), 1)
	})
}

func TestGetLiteralFactory(t *testing.T) {
	t.Run("should parameterize the non-constant array entries", func(t *testing.T) {
		constantPool := pool.NewConstantPool()
		factory, args := constantPool.GetLiteralFactory(output.LiteralArr([]output.OutputExpression{
			output.Literal(1), output.Variable("x"),
		}))
		assert.Equal(t, "_c0", output.EmitExpression(factory))
		require.Len(t, args, 1)
		assert.Equal(t, "x", output.EmitExpression(args[0]))
		assert.Equal(t, "const _c0 = function(a1) {\n  return [1, a1];\n};\n",
			output.EmitStatements(constantPool.Statements()))
	})

	t.Run("should reuse a factory of the same shape", func(t *testing.T) {
		constantPool := pool.NewConstantPool()
		first, _ := constantPool.GetLiteralFactory(output.LiteralArr([]output.OutputExpression{
			output.Variable("x"),
		}))
		second, args := constantPool.GetLiteralFactory(output.LiteralArr([]output.OutputExpression{
			output.Variable("y"),
		}))
		assert.Equal(t, output.EmitExpression(first), output.EmitExpression(second))
		require.Len(t, args, 1)
		assert.Equal(t, "y", output.EmitExpression(args[0]))
		assert.Len(t, constantPool.Statements(), 1)
	})

	t.Run("should build map factories keyed by property", func(t *testing.T) {
		constantPool := pool.NewConstantPool()
		factory, args := constantPool.GetLiteralFactory(output.LiteralMap([]*output.LiteralMapEntry{
			output.NewLiteralMapEntry("a", output.Variable("x"), false),
		}))
		assert.Equal(t, "_c0", output.EmitExpression(factory))
		require.Len(t, args, 1)
		assert.Equal(t, "const _c0 = function(a0) {\n  return { a: a0 };\n};\n",
			output.EmitStatements(constantPool.Statements()))
	})
}

func TestPropertyNameOf(t *testing.T) {
	constantPool := pool.NewConstantPool()
	assert.Equal(t, "ngDirectiveDef", constantPool.PropertyNameOf(pool.DefinitionKindDirective))
	assert.Equal(t, "ngComponentDef", constantPool.PropertyNameOf(pool.DefinitionKindComponent))
	assert.Equal(t, "ngInjectorDef", constantPool.PropertyNameOf(pool.DefinitionKindInjector))
	assert.Equal(t, "ngPipeDef", constantPool.PropertyNameOf(pool.DefinitionKindPipe))
}

func TestUniqueName(t *testing.T) {
	t.Run("should keep the first use of a name", func(t *testing.T) {
		constantPool := pool.NewConstantPool()
		assert.Equal(t, "i", constantPool.UniqueName("i"))
		assert.Equal(t, "i1", constantPool.UniqueName("i"))
		assert.Equal(t, "i2", constantPool.UniqueName("i"))
	})
}
