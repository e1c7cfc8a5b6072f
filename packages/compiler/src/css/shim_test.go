package css_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ngdef-go/packages/compiler/src/css"
)

func TestEmulatedStyleShim(t *testing.T) {
	shim := css.NewEmulatedStyleShim()

	t.Run("should scope rule selectors with the content attribute", func(t *testing.T) {
		assert.Equal(t,
			"div[_ngcontent-%COMP%] {color: red;}",
			shim.ShimCssText("div {color: red;}", css.ContentAttr, css.HostAttr))
	})

	t.Run("should scope every compound of a combinator chain", func(t *testing.T) {
		assert.Equal(t,
			"ul[_ngcontent-%COMP%] > li[_ngcontent-%COMP%] {}",
			shim.ShimCssText("ul > li {}", css.ContentAttr, css.HostAttr))
	})

	t.Run("should scope each selector of a group", func(t *testing.T) {
		assert.Equal(t,
			"a[_ngcontent-%COMP%], b[_ngcontent-%COMP%] {}",
			shim.ShimCssText("a, b {}", css.ContentAttr, css.HostAttr))
	})

	t.Run("should rewrite host selectors to the host attribute", func(t *testing.T) {
		assert.Equal(t,
			"[_nghost-%COMP%] {}",
			shim.ShimCssText(":host {}", css.ContentAttr, css.HostAttr))
		assert.Equal(t,
			"[_nghost-%COMP%].active {}",
			shim.ShimCssText(":host(.active) {}", css.ContentAttr, css.HostAttr))
	})

	t.Run("should strip comments", func(t *testing.T) {
		assert.Equal(t,
			"div[_ngcontent-%COMP%] {}",
			shim.ShimCssText("/* note */div {}", css.ContentAttr, css.HostAttr))
	})

	t.Run("should leave at-rules untouched", func(t *testing.T) {
		input := "@import 'theme.css';"
		assert.Equal(t, input, shim.ShimCssText(input, css.ContentAttr, css.HostAttr))
	})
}
