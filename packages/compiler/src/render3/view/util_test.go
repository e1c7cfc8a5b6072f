package view_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"ngdef-go/packages/compiler/src/core"
	"ngdef-go/packages/compiler/src/output"
	"ngdef-go/packages/compiler/src/render3/view"
)

func TestAsLiteral(t *testing.T) {
	t.Run("should convert string slices", func(t *testing.T) {
		emitted := output.EmitExpression(view.AsLiteral([]string{"a", "b"}))
		assert.Equal(t, "['a', 'b']", emitted)
	})

	t.Run("should recurse into nested slices", func(t *testing.T) {
		emitted := output.EmitExpression(view.AsLiteral([]interface{}{
			[]interface{}{"x", 1}, "y",
		}))
		assert.Equal(t, "[['x', 1], 'y']", emitted)
	})

	t.Run("should convert structured selector lists", func(t *testing.T) {
		selectors := core.R3CssSelectorList{
			core.R3CssSelector{"", "my-dir", ""},
			core.R3CssSelector{"my-comp", core.SelectorFlagsCLASS, "fancy"},
		}
		emitted := output.EmitExpression(view.AsLiteral(selectors))
		assert.Equal(t, "[['', 'my-dir', ''], ['my-comp', 8, 'fancy']]", emitted)
	})

	t.Run("should pass expressions through", func(t *testing.T) {
		emitted := output.EmitExpression(view.AsLiteral(output.Variable("x")))
		assert.Equal(t, "x", emitted)
	})
}

func TestConditionallyCreateMapObjectLiteral(t *testing.T) {
	t.Run("should return nil for an empty map", func(t *testing.T) {
		assert.Nil(t, view.ConditionallyCreateMapObjectLiteral(nil, false))
		assert.Nil(t, view.ConditionallyCreateMapObjectLiteral(map[string]string{}, true))
	})

	t.Run("should sort entries by declared name", func(t *testing.T) {
		literal := view.ConditionallyCreateMapObjectLiteral(
			map[string]string{"b": "b", "a": "a"}, false)
		assert.Equal(t, "{ a: 'a', b: 'b' }", output.EmitExpression(literal))
	})

	t.Run("should keep the declared name in a tuple when requested", func(t *testing.T) {
		literal := view.ConditionallyCreateMapObjectLiteral(
			map[string]string{"declared": "public"}, true)
		assert.Equal(t, "{ declared: ['public', 'declared'] }", output.EmitExpression(literal))
	})

	t.Run("should collapse matching names to the public name", func(t *testing.T) {
		literal := view.ConditionallyCreateMapObjectLiteral(
			map[string]string{"name": "name"}, true)
		assert.Equal(t, "{ name: 'name' }", output.EmitExpression(literal))
	})

	t.Run("should quote unsafe keys", func(t *testing.T) {
		literal := view.ConditionallyCreateMapObjectLiteral(
			map[string]string{"attr.role": "role"}, false)
		assert.Equal(t, "{ 'attr.role': 'role' }", output.EmitExpression(literal))
	})
}

func TestDefinitionMap(t *testing.T) {
	t.Run("should keep fields in insertion order and skip nil values", func(t *testing.T) {
		m := view.NewDefinitionMap()
		m.Set("type", output.Variable("MyDirective"))
		m.Set("selectors", nil)
		m.Set("exportAs", output.Literal("myDir"))
		emitted := output.EmitExpression(m.ToLiteralMap())
		if diff := cmp.Diff("{ type: MyDirective, exportAs: 'myDir' }", emitted); diff != "" {
			t.Errorf("ToLiteralMap() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should emit an empty literal when nothing was set", func(t *testing.T) {
		m := view.NewDefinitionMap()
		assert.Equal(t, "{  }", output.EmitExpression(m.ToLiteralMap()))
	})
}
