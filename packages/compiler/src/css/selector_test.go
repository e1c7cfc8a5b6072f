package css_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ngdef-go/packages/compiler/src/core"
	"ngdef-go/packages/compiler/src/css"
)

func parseOne(t *testing.T, selector string) *css.CssSelector {
	t.Helper()
	parsed, err := css.ParseCssSelector(selector)
	require.NoError(t, err)
	require.Len(t, parsed, 1)
	return parsed[0]
}

func TestParseCssSelector(t *testing.T) {
	t.Run("should parse an element selector", func(t *testing.T) {
		selector := parseOne(t, "my-comp")
		require.NotNil(t, selector.Element)
		assert.Equal(t, "my-comp", *selector.Element)
		assert.True(t, selector.IsElementSelector())
	})

	t.Run("should parse an attribute selector as a name value pair", func(t *testing.T) {
		selector := parseOne(t, "[my-dir]")
		assert.Nil(t, selector.Element)
		assert.Equal(t, []string{"my-dir", ""}, selector.Attrs)
	})

	t.Run("should lowercase attribute values", func(t *testing.T) {
		assert.Equal(t, []string{"type", "text"}, parseOne(t, "[type=TEXT]").Attrs)
		assert.Equal(t, []string{"type", "text"}, parseOne(t, `[type="TEXT"]`).Attrs)
		assert.Equal(t, []string{"type", "text"}, parseOne(t, "[type='TEXT']").Attrs)
	})

	t.Run("should parse classes and ids", func(t *testing.T) {
		selector := parseOne(t, "div.Fancy#main")
		assert.Equal(t, []string{"fancy"}, selector.ClassNames)
		assert.Equal(t, []string{"id", "main"}, selector.Attrs)
	})

	t.Run("should split comma separated selectors", func(t *testing.T) {
		parsed, err := css.ParseCssSelector("a, [b]")
		require.NoError(t, err)
		require.Len(t, parsed, 2)
		assert.Equal(t, "a", *parsed[0].Element)
		assert.Equal(t, []string{"b", ""}, parsed[1].Attrs)
	})

	t.Run("should parse :not and default its host to star", func(t *testing.T) {
		selector := parseOne(t, ":not(.disabled)")
		require.NotNil(t, selector.Element)
		assert.Equal(t, "*", *selector.Element)
		require.Len(t, selector.NotSelectors, 1)
		assert.Equal(t, []string{"disabled"}, selector.NotSelectors[0].ClassNames)
	})

	t.Run("should reject nested :not", func(t *testing.T) {
		_, err := css.ParseCssSelector(":not(:not(a))")
		assert.Error(t, err)
	})

	t.Run("should reject an unescaped dollar in an attribute", func(t *testing.T) {
		_, err := css.ParseCssSelector("[foo$]")
		assert.Error(t, err)
	})
}

func TestGetAttrs(t *testing.T) {
	t.Run("should fold class names into a leading class pair", func(t *testing.T) {
		selector := parseOne(t, "my-comp.foo.bar[role=button]")
		assert.Equal(t, []string{"class", "foo bar", "role", "button"}, selector.GetAttrs())
	})
}

func TestSelectorMatcher(t *testing.T) {
	type directive struct{ name string }

	addSelectables := func(t *testing.T, matcher *css.SelectorMatcher[directive], selector string, value directive) {
		t.Helper()
		parsed, err := css.ParseCssSelector(selector)
		require.NoError(t, err)
		matcher.AddSelectables(parsed, &value)
	}

	match := func(t *testing.T, matcher *css.SelectorMatcher[directive], selector string) []string {
		t.Helper()
		var matched []string
		result := matcher.Match(parseOne(t, selector), func(c *css.CssSelector, d *directive) {
			matched = append(matched, d.name)
		})
		if result != (len(matched) > 0) {
			t.Fatalf("Match() = %v but callback fired %d times", result, len(matched))
		}
		return matched
	}

	t.Run("should match by element name", func(t *testing.T) {
		matcher := css.NewSelectorMatcher[directive]()
		addSelectables(t, matcher, "my-comp", directive{"comp"})
		assert.Equal(t, []string{"comp"}, match(t, matcher, "my-comp"))
		assert.Empty(t, match(t, matcher, "other"))
	})

	t.Run("should match by attribute regardless of value", func(t *testing.T) {
		matcher := css.NewSelectorMatcher[directive]()
		addSelectables(t, matcher, "[my-dir]", directive{"dir"})
		assert.Equal(t, []string{"dir"}, match(t, matcher, "div[my-dir]"))
		assert.Equal(t, []string{"dir"}, match(t, matcher, "div[my-dir=value]"))
		assert.Empty(t, match(t, matcher, "div[other]"))
	})

	t.Run("should match compound selectors", func(t *testing.T) {
		matcher := css.NewSelectorMatcher[directive]()
		addSelectables(t, matcher, "input[type=text]", directive{"text-input"})
		assert.Equal(t, []string{"text-input"}, match(t, matcher, "input[type=text]"))
		assert.Empty(t, match(t, matcher, "input[type=radio]"))
		assert.Empty(t, match(t, matcher, "input"))
	})

	t.Run("should honor :not", func(t *testing.T) {
		matcher := css.NewSelectorMatcher[directive]()
		addSelectables(t, matcher, "div:not(.disabled)", directive{"enabled"})
		assert.Equal(t, []string{"enabled"}, match(t, matcher, "div"))
		assert.Empty(t, match(t, matcher, "div.disabled"))
	})

	t.Run("should fire once per selector list", func(t *testing.T) {
		matcher := css.NewSelectorMatcher[directive]()
		addSelectables(t, matcher, "div, div[my-dir]", directive{"listed"})
		assert.Equal(t, []string{"listed"}, match(t, matcher, "div[my-dir]"))
	})
}

func TestParseSelectorToR3Selector(t *testing.T) {
	str := func(s string) *string { return &s }

	t.Run("should return an empty list for a nil selector", func(t *testing.T) {
		result, err := css.ParseSelectorToR3Selector(nil)
		require.NoError(t, err)
		assert.Empty(t, result)
	})

	t.Run("should flatten attribute selectors", func(t *testing.T) {
		result, err := css.ParseSelectorToR3Selector(str("[my-dir]"))
		require.NoError(t, err)
		expected := core.R3CssSelectorList{core.R3CssSelector{"", "my-dir", ""}}
		if diff := cmp.Diff(expected, result); diff != "" {
			t.Errorf("ParseSelectorToR3Selector() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should flag classes and negations", func(t *testing.T) {
		result, err := css.ParseSelectorToR3Selector(str("my-comp.fancy:not([disabled])"))
		require.NoError(t, err)
		expected := core.R3CssSelectorList{core.R3CssSelector{
			"my-comp", core.SelectorFlagsCLASS, "fancy",
			core.SelectorFlagsNOT | core.SelectorFlagsATTRIBUTE, "disabled", "",
		}}
		if diff := cmp.Diff(expected, result); diff != "" {
			t.Errorf("ParseSelectorToR3Selector() mismatch (-want +got):\n%s", diff)
		}
	})
}
