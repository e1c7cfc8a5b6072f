package util_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ngdef-go/packages/compiler/src/util"
)

func TestParseLocation(t *testing.T) {
	t.Run("should render the url with line and column", func(t *testing.T) {
		file := util.NewParseSourceFile("content", "app/my.ts")
		loc := util.NewParseLocation(file, 3, 1, 2)
		assert.Equal(t, "app/my.ts@1:2", loc.String())
	})

	t.Run("should render only the url for a synthetic offset", func(t *testing.T) {
		file := util.NewParseSourceFile("", "in-memory://x")
		loc := util.NewParseLocation(file, -1, -1, -1)
		assert.Equal(t, "in-memory://x", loc.String())
	})
}

func TestParseSourceSpan(t *testing.T) {
	t.Run("should return the covered text", func(t *testing.T) {
		file := util.NewParseSourceFile("hello world", "my.ts")
		span := util.NewParseSourceSpan(
			util.NewParseLocation(file, 0, 0, 0),
			util.NewParseLocation(file, 5, 0, 5), nil)
		assert.Equal(t, "hello", span.String())
	})
}

func TestParseError(t *testing.T) {
	t.Run("should include the location when a span is present", func(t *testing.T) {
		span := util.SyntheticSourceSpan("in directive MyDirective")
		err := util.NewParseError(span, "boom", util.ParseErrorLevelError)
		assert.Equal(t, "boom (in-memory://in directive MyDirective)", err.Error())
	})

	t.Run("should fall back to the bare message", func(t *testing.T) {
		err := util.NewParseError(nil, "boom", util.ParseErrorLevelError)
		assert.Equal(t, "boom", err.Error())
	})
}

func TestSyntheticSourceSpan(t *testing.T) {
	span := util.SyntheticSourceSpan("in directive MyDirective")
	assert.Equal(t, "in-memory://in directive MyDirective", span.Start.File.URL)
	assert.Equal(t, -1, span.Start.Offset)
	assert.Same(t, span.Start, span.End)
}
