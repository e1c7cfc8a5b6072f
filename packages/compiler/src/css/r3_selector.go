package css

import (
	"ngdef-go/packages/compiler/src/core"
)

func parserSelectorToSimpleSelector(selector *CssSelector) core.R3CssSelector {
	var classes []interface{}
	if len(selector.ClassNames) > 0 {
		classes = append(classes, core.SelectorFlagsCLASS)
		for _, className := range selector.ClassNames {
			classes = append(classes, className)
		}
	}

	elementName := ""
	if selector.Element != nil && *selector.Element != "*" {
		elementName = *selector.Element
	}

	result := core.R3CssSelector{elementName}
	for _, attr := range selector.Attrs {
		result = append(result, attr)
	}
	return append(result, classes...)
}

func parserSelectorToNegativeSelector(selector *CssSelector) core.R3CssSelector {
	var classes []interface{}
	if len(selector.ClassNames) > 0 {
		classes = append(classes, core.SelectorFlagsCLASS)
		for _, className := range selector.ClassNames {
			classes = append(classes, className)
		}
	}

	if selector.Element != nil {
		result := core.R3CssSelector{
			core.SelectorFlagsNOT | core.SelectorFlagsELEMENT,
			*selector.Element,
		}
		for _, attr := range selector.Attrs {
			result = append(result, attr)
		}
		return append(result, classes...)
	}
	if len(selector.Attrs) > 0 {
		result := core.R3CssSelector{core.SelectorFlagsNOT | core.SelectorFlagsATTRIBUTE}
		for _, attr := range selector.Attrs {
			result = append(result, attr)
		}
		return append(result, classes...)
	}
	if len(selector.ClassNames) > 0 {
		result := core.R3CssSelector{core.SelectorFlagsNOT | core.SelectorFlagsCLASS}
		for _, className := range selector.ClassNames {
			result = append(result, className)
		}
		return result
	}
	return core.R3CssSelector{}
}

func parserSelectorToR3Selector(selector *CssSelector) core.R3CssSelector {
	result := parserSelectorToSimpleSelector(selector)
	for _, notSelector := range selector.NotSelectors {
		result = append(result, parserSelectorToNegativeSelector(notSelector)...)
	}
	return result
}

// ParseSelectorToR3Selector parses a selector string into the flat list form
// the runtime matches against. A nil selector yields an empty list.
func ParseSelectorToR3Selector(selector *string) (core.R3CssSelectorList, error) {
	if selector == nil {
		return core.R3CssSelectorList{}, nil
	}
	parsed, err := ParseCssSelector(*selector)
	if err != nil {
		return nil, err
	}
	result := make(core.R3CssSelectorList, len(parsed))
	for i, sel := range parsed {
		result[i] = parserSelectorToR3Selector(sel)
	}
	return result, nil
}
