package css

import (
	"regexp"
	"strings"
)

// ContentAttr and HostAttr are the placeholders scoped into emulated styles.
// The runtime substitutes the component instance id for %COMP%.
const (
	ContentAttr = "_ngcontent-%COMP%"
	HostAttr    = "_nghost-%COMP%"
)

// StyleShim scopes component CSS so that emulated encapsulation can confine
// styles to the component's subtree.
type StyleShim interface {
	ShimCssText(cssText string, contentAttr string, hostAttr string) string
}

var (
	cssRuleRe     = regexp.MustCompile(`([^{}]+)(\{[^{}]*\})`)
	cssCommentRe  = regexp.MustCompile(`(?s)/\*.*?\*/`)
	hostRe        = regexp.MustCompile(`:host(?:\(([^)]*)\))?`)
	combinatorsRe = regexp.MustCompile(`\s*([>+~])\s*`)
)

type emulatedStyleShim struct{}

// NewEmulatedStyleShim returns a shim that scopes rule selectors with the
// content attribute and rewrites :host to the host attribute. At-rules and
// their bodies pass through unchanged.
func NewEmulatedStyleShim() StyleShim {
	return emulatedStyleShim{}
}

func (emulatedStyleShim) ShimCssText(cssText string, contentAttr string, hostAttr string) string {
	cssText = cssCommentRe.ReplaceAllString(cssText, "")
	return cssRuleRe.ReplaceAllStringFunc(cssText, func(rule string) string {
		parts := cssRuleRe.FindStringSubmatch(rule)
		selector := strings.TrimSpace(parts[1])
		if strings.HasPrefix(selector, "@") {
			return rule
		}
		return scopeSelector(selector, contentAttr, hostAttr) + " " + parts[2]
	})
}

func scopeSelector(selector string, contentAttr string, hostAttr string) string {
	shimmed := make([]string, 0, 1)
	for _, part := range strings.Split(selector, ",") {
		part = strings.TrimSpace(part)
		compounds := combinatorsRe.Split(part, -1)
		combinators := combinatorsRe.FindAllStringSubmatch(part, -1)
		var sb strings.Builder
		for i, compound := range compounds {
			if i > 0 {
				sb.WriteString(" " + combinators[i-1][1] + " ")
			}
			sb.WriteString(scopeCompound(strings.TrimSpace(compound), contentAttr, hostAttr))
		}
		shimmed = append(shimmed, sb.String())
	}
	return strings.Join(shimmed, ", ")
}

func scopeCompound(compound string, contentAttr string, hostAttr string) string {
	if hostRe.MatchString(compound) {
		return hostRe.ReplaceAllStringFunc(compound, func(host string) string {
			inner := hostRe.FindStringSubmatch(host)[1]
			return "[" + hostAttr + "]" + inner
		})
	}
	var scoped strings.Builder
	for _, simple := range strings.Fields(compound) {
		if scoped.Len() > 0 {
			scoped.WriteString(" ")
		}
		scoped.WriteString(simple + "[" + contentAttr + "]")
	}
	return scoped.String()
}
