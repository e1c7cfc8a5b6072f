package view_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ngdef-go/packages/compiler/src/output"
	"ngdef-go/packages/compiler/src/pool"
	"ngdef-go/packages/compiler/src/render3/view"
)

func TestContentQueries(t *testing.T) {
	t.Run("should register each query against the directive index", func(t *testing.T) {
		meta := directiveMeta("MyDirective", "[my-dir]")
		meta.Queries = []*view.R3QueryMetadata{
			{PropertyName: "items", Predicate: []string{"item"}, Descendants: true},
			{PropertyName: "child", Predicate: output.OutputExpression(output.Variable("ChildDir")), First: true},
		}
		emitted, constantPool := compileDirective(t, meta)

		assert.Contains(t, emitted,
			"contentQueries: function MyDirective_ContentQueries(dirIndex) {")
		assert.Contains(t, emitted, "ɵɵregisterContentQuery(ɵɵquery(null, _c0, true), dirIndex);")
		assert.Contains(t, emitted, "ɵɵregisterContentQuery(ɵɵquery(null, ChildDir, false), dirIndex);")
		assert.Equal(t, "const _c0 = ['item'];\n",
			output.EmitStatements(constantPool.Statements()))
	})

	t.Run("should refresh queries at consecutive slots", func(t *testing.T) {
		meta := directiveMeta("MyDirective", "[my-dir]")
		meta.Queries = []*view.R3QueryMetadata{
			{PropertyName: "items", Predicate: []string{"item"}, Descendants: true},
			{PropertyName: "child", Predicate: output.OutputExpression(output.Variable("ChildDir")), First: true},
		}
		emitted, _ := compileDirective(t, meta)

		assert.Contains(t, emitted,
			"contentQueriesRefresh: function MyDirective_ContentQueriesRefresh(dirIndex, queryStartIndex) {")
		assert.Contains(t, emitted, "const instance = ɵɵload(dirIndex);")
		assert.Contains(t, emitted, "var _t;")
		assert.Contains(t, emitted,
			"(ɵɵqueryRefresh((_t = ɵɵloadQueryList(queryStartIndex))) && (instance.items = _t));")
		assert.Contains(t, emitted,
			"(ɵɵqueryRefresh((_t = ɵɵloadQueryList((queryStartIndex + 1)))) && (instance.child = _t.first));")
	})

	t.Run("should split comma separated selectors", func(t *testing.T) {
		meta := directiveMeta("MyDirective", "[my-dir]")
		meta.Queries = []*view.R3QueryMetadata{
			{PropertyName: "items", Predicate: []string{"foo, bar"}},
		}
		_, constantPool := compileDirective(t, meta)
		assert.Equal(t, "const _c0 = ['foo', 'bar'];\n",
			output.EmitStatements(constantPool.Statements()))
	})

	t.Run("should pass the read type through", func(t *testing.T) {
		meta := directiveMeta("MyDirective", "[my-dir]")
		meta.Queries = []*view.R3QueryMetadata{
			{PropertyName: "ref", Predicate: []string{"ref"}, Read: output.Variable("ElementRef")},
		}
		emitted, _ := compileDirective(t, meta)
		assert.Contains(t, emitted, "ɵɵquery(null, _c0, false, ElementRef)")
	})

	t.Run("should reject an unknown predicate form", func(t *testing.T) {
		meta := directiveMeta("MyDirective", "[my-dir]")
		meta.Queries = []*view.R3QueryMetadata{
			{PropertyName: "items", Predicate: 42},
		}
		_, err := view.CompileDirectiveFromMetadata(
			meta, pool.NewConstantPool(), newTestBindingParser())
		require.Error(t, err)
		assert.EqualError(t, err, "unexpected query form")
	})
}

func TestViewQueries(t *testing.T) {
	t.Run("should gate the query function on the render flags", func(t *testing.T) {
		meta := componentMeta("MyComponent", "my-comp")
		meta.ViewQueries = []*view.R3QueryMetadata{
			{PropertyName: "anchor", Predicate: output.OutputExpression(output.Variable("Anchor")), First: true, Descendants: true},
			{PropertyName: "items", Predicate: []string{"item"}},
		}
		emitted, _ := compileComponent(t, meta, stubTemplateCompiler{})

		assert.Contains(t, emitted, "viewQuery: function MyComponent_Query(rf, ctx) {")
		assert.Contains(t, emitted, "ɵɵquery(0, Anchor, true);")
		assert.Contains(t, emitted, "ɵɵquery(1, _c0, false);")
		assert.Contains(t, emitted,
			"(ɵɵqueryRefresh((_t = ɵɵload(0))) && (ctx.anchor = _t.first));")
		assert.Contains(t, emitted,
			"(ɵɵqueryRefresh((_t = ɵɵload(1))) && (ctx.items = _t));")
	})

	t.Run("should omit the viewQuery field without view queries", func(t *testing.T) {
		emitted, _ := compileComponent(t, componentMeta("MyComponent", "my-comp"), stubTemplateCompiler{})
		assert.NotContains(t, emitted, "viewQuery:")
	})
}
