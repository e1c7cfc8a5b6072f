package view_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"ngdef-go/packages/compiler/src/output"
	"ngdef-go/packages/compiler/src/pool"
	"ngdef-go/packages/compiler/src/render3/view"
)

func TestParseHostBindings(t *testing.T) {
	t.Run("should classify keys by shape", func(t *testing.T) {
		parsed := view.ParseHostBindings(map[string]string{
			"role":          "button",
			"[title]":       "name",
			"(click)":       "onClick($event)",
			"@fade":         "state",
			"(@fade.start)": "onStart()",
		})
		expected := &view.ParsedHostBindings{
			Attributes: map[string]string{"role": "button"},
			Properties: map[string]string{"title": "name"},
			Listeners:  map[string]string{"click": "onClick($event)", "@fade.start": "onStart()"},
			Animations: map[string]string{"fade": "state"},
		}
		if diff := cmp.Diff(expected, parsed); diff != "" {
			t.Errorf("ParseHostBindings() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should fall back to a static attribute", func(t *testing.T) {
		parsed := view.ParseHostBindings(map[string]string{"attr.role": "button"})
		assert.Equal(t, map[string]string{"attr.role": "button"}, parsed.Attributes)
	})
}

func hostMeta(host map[string]string) *view.R3DirectiveMetadata {
	meta := directiveMeta("MyDirective", "[my-dir]")
	parsed := view.ParseHostBindings(host)
	meta.Host = view.R3HostMetadata{
		Attributes: parsed.Attributes,
		Listeners:  parsed.Listeners,
		Properties: parsed.Properties,
		Animations: parsed.Animations,
	}
	return meta
}

func TestHostBindings(t *testing.T) {
	t.Run("should omit the hostBindings field without bindings", func(t *testing.T) {
		emitted, _ := compileDirective(t, directiveMeta("MyDirective", "[my-dir]"))
		assert.NotContains(t, emitted, "hostBindings:")
	})

	t.Run("should gate create and update blocks on the render flags", func(t *testing.T) {
		emitted, _ := compileDirective(t, hostMeta(map[string]string{
			"(click)": "onClick($event)",
			"[title]": "name",
		}))
		assert.Contains(t, emitted,
			"hostBindings: function MyDirective_HostBindings(rf, ctx, elIndex) {")
		assert.Contains(t, emitted, "if ((rf & 1)) {")
		assert.Contains(t, emitted, "if ((rf & 2)) {")
	})

	t.Run("should allocate one slot per property binding", func(t *testing.T) {
		emitted, _ := compileDirective(t, hostMeta(map[string]string{
			"[title]": "name",
			"[id]":    "id",
		}))
		assert.Contains(t, emitted, "ɵɵallocHostVars(2);")
		assert.Contains(t, emitted, "ɵɵproperty('title', ctx.name);")
		assert.Contains(t, emitted, "ɵɵproperty('id', ctx.id);")
	})

	t.Run("should emit attribute bindings for attr. names", func(t *testing.T) {
		emitted, _ := compileDirective(t, hostMeta(map[string]string{
			"[attr.role]": "role",
		}))
		assert.Contains(t, emitted, "ɵɵattribute('role', ctx.role);")
	})

	t.Run("should prefix animation properties", func(t *testing.T) {
		emitted, _ := compileDirective(t, hostMeta(map[string]string{
			"@fade": "state",
		}))
		assert.Contains(t, emitted, "ɵɵallocHostVars(1);")
		assert.Contains(t, emitted, "ɵɵproperty('@fade', ctx.state);")
	})

	t.Run("should register listeners with a named handler", func(t *testing.T) {
		emitted, _ := compileDirective(t, hostMeta(map[string]string{
			"(click)": "onClick($event)",
		}))
		assert.Contains(t, emitted,
			"ɵɵlistener('click', function MyDirective_click_HostBindingHandler($event) {")
		assert.Contains(t, emitted, "return (ctx.onClick($event) !== false);")
	})

	t.Run("should name animation listeners by trigger and phase", func(t *testing.T) {
		emitted, _ := compileDirective(t, hostMeta(map[string]string{
			"(@fade.start)": "onStart()",
		}))
		assert.Contains(t, emitted,
			"ɵɵlistener('@fade.start', function MyDirective_animation_fade_start_HostBindingHandler($event) {")
		assert.Contains(t, emitted, "return (ctx.onStart() !== false);")
	})

	t.Run("should pool the static host attributes and styling", func(t *testing.T) {
		meta := hostMeta(map[string]string{
			"role":  "button",
			"class": "foo bar",
			"style": "color: red",
		})
		_, constantPool := compileDirective(t, meta)
		assert.Equal(t,
			"const _c0 = ['role', 'button', 1, 'foo', 'bar', 2, 'color', 'red'];\n",
			output.EmitStatements(constantPool.Statements()))
	})

	t.Run("should order styling updates map first then singles", func(t *testing.T) {
		emitted, _ := compileDirective(t, hostMeta(map[string]string{
			"[style]":          "styleMap",
			"[class.active]":   "isActive",
			"[style.width.px]": "width",
		}))
		assert.Contains(t, emitted, "ɵɵallocHostVars(3);")
		styleMap := "ɵɵstyleMap(ctx.styleMap);"
		styleProp := "ɵɵstyleProp('width', ctx.width, 'px');"
		classProp := "ɵɵclassProp('active', ctx.isActive);"
		assert.Contains(t, emitted, styleMap)
		assert.Contains(t, emitted, styleProp)
		assert.Contains(t, emitted, classProp)
		assert.Less(t, indexOf(emitted, styleMap), indexOf(emitted, styleProp))
		assert.Less(t, indexOf(emitted, styleProp), indexOf(emitted, classProp))
	})

	t.Run("should slot prefixed map bindings through the styling builder", func(t *testing.T) {
		emitted, _ := compileDirective(t, hostMeta(map[string]string{
			"[className]": "cls",
		}))
		assert.Contains(t, emitted, "ɵɵallocHostVars(1);")
		assert.Contains(t, emitted, "ɵɵclassMap(ctx.cls);")
		assert.NotContains(t, emitted, "ɵɵproperty(")
	})

	t.Run("should lower literal arrays through a pure function", func(t *testing.T) {
		meta := hostMeta(map[string]string{
			"[id]": "[title, name]",
		})
		emitted, constantPool := compileDirective(t, meta)
		assert.Equal(t,
			"const _c0 = function(a0, a1) {\n  return [a0, a1];\n};\n",
			output.EmitStatements(constantPool.Statements()))
		assert.Contains(t, emitted, "ɵɵallocHostVars(4);")
		assert.Contains(t, emitted, "ɵɵproperty('id', ɵɵpureFunction2(1, _c0, ctx.title, ctx.name));")
	})

	t.Run("should report binding parse errors", func(t *testing.T) {
		_, err := view.CompileDirectiveFromMetadata(
			hostMeta(map[string]string{"[title]": "a ="}),
			pool.NewConstantPool(), newTestBindingParser())
		assert.Error(t, err)
	})
}

func indexOf(s, substr string) int {
	return strings.Index(s, substr)
}
