package view_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ngdef-go/packages/compiler/src/expressionparser"
	"ngdef-go/packages/compiler/src/output"
	"ngdef-go/packages/compiler/src/pool"
	"ngdef-go/packages/compiler/src/render3/view"
)

func literalConvert(value *expressionparser.ASTWithSource) output.OutputExpression {
	return output.Variable("VALUE")
}

func emitInstruction(instruction *view.StylingInstruction) string {
	params := instruction.BuildParams(literalConvert)
	return output.EmitExpression(output.CallImport(instruction.Reference, params...))
}

func TestRegisterInputBasedOnName(t *testing.T) {
	t.Run("should only accept style and class bindings", func(t *testing.T) {
		builder := view.NewStylingBuilder()
		assert.False(t, builder.RegisterInputBasedOnName("title", nil, nil))
		assert.False(t, builder.RegisterInputBasedOnName("id", nil, nil))
		assert.True(t, builder.RegisterInputBasedOnName("style", nil, nil))
		assert.True(t, builder.RegisterInputBasedOnName("class.active", nil, nil))
		assert.True(t, builder.HasBindings())
	})

	t.Run("should treat prefixed names without a dotted property as map bindings", func(t *testing.T) {
		builder := view.NewStylingBuilder()
		require.True(t, builder.RegisterInputBasedOnName("className", nil, nil))
		instructions := builder.BuildUpdateLevelInstructions()
		require.Len(t, instructions, 1)
		assert.Equal(t, "ɵɵclassMap(VALUE)", emitInstruction(instructions[0]))
	})

	t.Run("should split the unit off a style property", func(t *testing.T) {
		builder := view.NewStylingBuilder()
		require.True(t, builder.RegisterInputBasedOnName("style.width.px", nil, nil))
		instructions := builder.BuildUpdateLevelInstructions()
		require.Len(t, instructions, 1)
		assert.Equal(t, "ɵɵstyleProp('width', VALUE, 'px')", emitInstruction(instructions[0]))
	})

	t.Run("should order update instructions maps first then singles", func(t *testing.T) {
		builder := view.NewStylingBuilder()
		require.True(t, builder.RegisterInputBasedOnName("class.active", nil, nil))
		require.True(t, builder.RegisterInputBasedOnName("style", nil, nil))
		require.True(t, builder.RegisterInputBasedOnName("class", nil, nil))

		instructions := builder.BuildUpdateLevelInstructions()
		require.Len(t, instructions, 3)
		assert.Equal(t, "ɵɵstyleMap(VALUE)", emitInstruction(instructions[0]))
		assert.Equal(t, "ɵɵclassMap(VALUE)", emitInstruction(instructions[1]))
		assert.Equal(t, "ɵɵclassProp('active', VALUE)", emitInstruction(instructions[2]))
	})

	t.Run("should charge one binding slot per update instruction", func(t *testing.T) {
		builder := view.NewStylingBuilder()
		require.True(t, builder.RegisterInputBasedOnName("style", nil, nil))
		require.True(t, builder.RegisterInputBasedOnName("style.width", nil, nil))
		for _, instruction := range builder.BuildUpdateLevelInstructions() {
			assert.Equal(t, 1, instruction.AllocateBindingSlots)
		}
	})
}

func TestBuildHostAttrsInstruction(t *testing.T) {
	t.Run("should return nil without static attributes or styling", func(t *testing.T) {
		builder := view.NewStylingBuilder()
		assert.Nil(t, builder.BuildHostAttrsInstruction(nil, nil, pool.NewConstantPool()))
	})

	t.Run("should section attributes then classes then styles", func(t *testing.T) {
		builder := view.NewStylingBuilder()
		builder.RegisterClassAttr("foo bar")
		builder.RegisterStyleAttr("color: red; margin: 10px")

		constantPool := pool.NewConstantPool()
		attrs := []output.OutputExpression{output.Literal("role"), output.Literal("button")}
		instruction := builder.BuildHostAttrsInstruction(nil, attrs, constantPool)
		require.NotNil(t, instruction)

		assert.Equal(t, "ɵɵelementHostAttrs(_c0)", emitInstruction(instruction))
		assert.Equal(t,
			"const _c0 = ['role', 'button', 1, 'foo', 'bar', 2, 'color', 'red', 'margin', '10px'];\n",
			output.EmitStatements(constantPool.Statements()))
	})

	t.Run("should skip malformed style declarations", func(t *testing.T) {
		builder := view.NewStylingBuilder()
		builder.RegisterStyleAttr("color: red; nonsense; : orphan")

		constantPool := pool.NewConstantPool()
		instruction := builder.BuildHostAttrsInstruction(nil, nil, constantPool)
		require.NotNil(t, instruction)
		assert.Equal(t, "const _c0 = [2, 'color', 'red'];\n",
			output.EmitStatements(constantPool.Statements()))
	})
}
