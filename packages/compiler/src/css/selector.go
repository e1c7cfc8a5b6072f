package css

import (
	"fmt"
	"regexp"
	"strings"
)

// selectorRegexp matches CSS selector fragments. Go's regexp has no
// backreferences, so quoted attribute values get their own alternatives
// instead of a shared quote group.
var selectorRegexp = regexp.MustCompile(
	`(\:not\()|` + // 1: ":not("
		`(([\.\#]?)[-\w]+)|` + // 2: tag with prefix; 3: "." or "#"
		// 4: attribute name; 5: double quoted value; 6: single quoted value; 7: unquoted value
		`(?:\[([-.\w*\\$]+)(?:=(?:"([^"]*)"|'([^']*)'|([^\]\s]+)))?\])|` +
		`(\))|` + // 8: ")"
		`(\s*,\s*)`, // 9: ","
)

const (
	selectorGroupNot = iota + 1
	selectorGroupTag
	selectorGroupPrefix
	selectorGroupAttribute
	selectorGroupAttrValueDouble
	selectorGroupAttrValueSingle
	selectorGroupAttrValueBare
	selectorGroupNotEnd
	selectorGroupSeparator
)

// CssSelector is a parsed CSS selector. Attrs holds [name, value, ...] pairs
// where a valueless attribute is stored with an empty value.
type CssSelector struct {
	Element      *string
	ClassNames   []string
	Attrs        []string
	NotSelectors []*CssSelector
}

// NewCssSelector creates an empty CssSelector.
func NewCssSelector() *CssSelector {
	return &CssSelector{
		ClassNames:   []string{},
		Attrs:        []string{},
		NotSelectors: []*CssSelector{},
	}
}

// ParseCssSelector parses a comma separated selector string into its
// individual selectors.
func ParseCssSelector(selector string) ([]*CssSelector, error) {
	results := []*CssSelector{}

	addResult := func(res []*CssSelector, cssSel *CssSelector) []*CssSelector {
		if len(cssSel.NotSelectors) > 0 &&
			cssSel.Element == nil &&
			len(cssSel.ClassNames) == 0 &&
			len(cssSel.Attrs) == 0 {
			star := "*"
			cssSel.Element = &star
		}
		return append(res, cssSel)
	}

	cssSelector := NewCssSelector()
	current := cssSelector
	inNot := false

	for _, match := range selectorRegexp.FindAllStringSubmatch(selector, -1) {
		if match[selectorGroupNot] != "" {
			if inNot {
				return nil, fmt.Errorf("nesting :not in a selector is not allowed")
			}
			inNot = true
			current = NewCssSelector()
			cssSelector.NotSelectors = append(cssSelector.NotSelectors, current)
		}

		if tag := match[selectorGroupTag]; tag != "" {
			prefix := match[selectorGroupPrefix]
			switch prefix {
			case "#":
				current.AddAttribute("id", tag[1:])
			case ".":
				current.AddClassName(tag[1:])
			default:
				current.SetElement(tag)
			}
		}

		if attribute := match[selectorGroupAttribute]; attribute != "" {
			attrValue := match[selectorGroupAttrValueDouble]
			if attrValue == "" {
				attrValue = match[selectorGroupAttrValueSingle]
			}
			if attrValue == "" {
				attrValue = match[selectorGroupAttrValueBare]
			}
			unescaped, err := UnescapeAttribute(attribute)
			if err != nil {
				return nil, err
			}
			current.AddAttribute(unescaped, attrValue)
		}

		if match[selectorGroupNotEnd] != "" {
			inNot = false
			current = cssSelector
		}

		if match[selectorGroupSeparator] != "" {
			if inNot {
				return nil, fmt.Errorf("multiple selectors in :not are not supported")
			}
			results = addResult(results, cssSelector)
			cssSelector = NewCssSelector()
			current = cssSelector
			inNot = false
		}
	}

	return addResult(results, cssSelector), nil
}

// UnescapeAttribute unescapes "\$" sequences from a CSS attribute selector
// name. An unescaped "$" is rejected.
func UnescapeAttribute(attr string) (string, error) {
	var sb strings.Builder
	escaping := false
	for i := 0; i < len(attr); i++ {
		char := attr[i]
		if char == '\\' {
			escaping = true
			continue
		}
		if char == '$' && !escaping {
			return "", fmt.Errorf(`error in attribute selector "%s". unescaped "$" is not supported. please escape with "\\$"`, attr)
		}
		escaping = false
		sb.WriteByte(char)
	}
	return sb.String(), nil
}

// EscapeAttribute escapes "$" sequences in a CSS attribute selector name.
func EscapeAttribute(attr string) string {
	result := strings.ReplaceAll(attr, "\\", "\\\\")
	return strings.ReplaceAll(result, "$", "\\$")
}

// IsElementSelector reports whether this selector matches on the element
// name alone.
func (cs *CssSelector) IsElementSelector() bool {
	return cs.HasElementSelector() &&
		len(cs.ClassNames) == 0 &&
		len(cs.Attrs) == 0 &&
		len(cs.NotSelectors) == 0
}

// HasElementSelector reports whether this selector names an element.
func (cs *CssSelector) HasElementSelector() bool {
	return cs.Element != nil
}

// SetElement sets the element name.
func (cs *CssSelector) SetElement(element string) {
	cs.Element = &element
}

// GetAttrs returns the attribute pairs of this selector, with the class
// names folded into a leading "class" pair when present.
func (cs *CssSelector) GetAttrs() []string {
	result := []string{}
	if len(cs.ClassNames) > 0 {
		result = append(result, "class", strings.Join(cs.ClassNames, " "))
	}
	return append(result, cs.Attrs...)
}

// AddAttribute adds an attribute pair. Values are matched case
// insensitively and stored lowercased.
func (cs *CssSelector) AddAttribute(name string, value string) {
	cs.Attrs = append(cs.Attrs, name, strings.ToLower(value))
}

// AddClassName adds a class name, lowercased.
func (cs *CssSelector) AddClassName(name string) {
	cs.ClassNames = append(cs.ClassNames, strings.ToLower(name))
}

// String renders the selector back into CSS selector syntax.
func (cs *CssSelector) String() string {
	res := ""
	if cs.Element != nil {
		res = *cs.Element
	}
	for _, class := range cs.ClassNames {
		res += "." + class
	}
	for i := 0; i+1 < len(cs.Attrs); i += 2 {
		name := EscapeAttribute(cs.Attrs[i])
		value := cs.Attrs[i+1]
		if value != "" {
			res += fmt.Sprintf("[%s=%s]", name, value)
		} else {
			res += fmt.Sprintf("[%s]", name)
		}
	}
	for _, notSelector := range cs.NotSelectors {
		res += fmt.Sprintf(":not(%s)", notSelector.String())
	}
	return res
}

// SelectorMatcher matches CssSelectors against registered selectables. It
// indexes selectors by element, class and attribute so matching avoids a
// linear scan over all registered selectors.
type SelectorMatcher[T any] struct {
	elementMap          map[string][]*SelectorContext[T]
	elementPartialMap   map[string]*SelectorMatcher[T]
	classMap            map[string][]*SelectorContext[T]
	classPartialMap     map[string]*SelectorMatcher[T]
	attrValueMap        map[string]map[string][]*SelectorContext[T]
	attrValuePartialMap map[string]map[string]*SelectorMatcher[T]
	listContexts        []*SelectorListContext
}

// NewSelectorMatcher creates an empty SelectorMatcher.
func NewSelectorMatcher[T any]() *SelectorMatcher[T] {
	return &SelectorMatcher[T]{
		elementMap:          make(map[string][]*SelectorContext[T]),
		elementPartialMap:   make(map[string]*SelectorMatcher[T]),
		classMap:            make(map[string][]*SelectorContext[T]),
		classPartialMap:     make(map[string]*SelectorMatcher[T]),
		attrValueMap:        make(map[string]map[string][]*SelectorContext[T]),
		attrValuePartialMap: make(map[string]map[string]*SelectorMatcher[T]),
	}
}

// CreateNotMatcher builds a matcher over the :not selectors of a context.
func CreateNotMatcher(notSelectors []*CssSelector) *SelectorMatcher[interface{}] {
	notMatcher := NewSelectorMatcher[interface{}]()
	notMatcher.AddSelectables(notSelectors, nil)
	return notMatcher
}

// AddSelectables registers a selector list with its callback context. Lists
// with more than one selector share a SelectorListContext so that the
// callback fires at most once per Match call.
func (sm *SelectorMatcher[T]) AddSelectables(cssSelectors []*CssSelector, callbackCtxt *T) {
	var listContext *SelectorListContext
	if len(cssSelectors) > 1 {
		listContext = NewSelectorListContext(cssSelectors)
		sm.listContexts = append(sm.listContexts, listContext)
	}
	for _, cssSelector := range cssSelectors {
		sm.addSelectable(cssSelector, callbackCtxt, listContext)
	}
}

func (sm *SelectorMatcher[T]) addSelectable(cssSelector *CssSelector, callbackCtxt *T, listContext *SelectorListContext) {
	matcher := sm
	element := cssSelector.Element
	classNames := cssSelector.ClassNames
	attrs := cssSelector.Attrs
	selectable := NewSelectorContext(cssSelector, callbackCtxt, listContext)

	if element != nil {
		isTerminal := len(attrs) == 0 && len(classNames) == 0
		if isTerminal {
			sm.addTerminal(sm.elementMap, *element, selectable)
		} else {
			matcher = sm.addPartial(sm.elementPartialMap, *element)
		}
	}

	for i, className := range classNames {
		isTerminal := len(attrs) == 0 && i == len(classNames)-1
		if isTerminal {
			sm.addTerminal(matcher.classMap, className, selectable)
		} else {
			matcher = sm.addPartial(matcher.classPartialMap, className)
		}
	}

	for i := 0; i+1 < len(attrs); i += 2 {
		isTerminal := i == len(attrs)-2
		name := attrs[i]
		value := attrs[i+1]
		if isTerminal {
			terminalValuesMap, ok := matcher.attrValueMap[name]
			if !ok {
				terminalValuesMap = make(map[string][]*SelectorContext[T])
				matcher.attrValueMap[name] = terminalValuesMap
			}
			sm.addTerminal(terminalValuesMap, value, selectable)
		} else {
			partialValuesMap, ok := matcher.attrValuePartialMap[name]
			if !ok {
				partialValuesMap = make(map[string]*SelectorMatcher[T])
				matcher.attrValuePartialMap[name] = partialValuesMap
			}
			matcher = sm.addPartial(partialValuesMap, value)
		}
	}
}

func (sm *SelectorMatcher[T]) addTerminal(terminalMap map[string][]*SelectorContext[T], name string, selectable *SelectorContext[T]) {
	terminalMap[name] = append(terminalMap[name], selectable)
}

func (sm *SelectorMatcher[T]) addPartial(partialMap map[string]*SelectorMatcher[T], name string) *SelectorMatcher[T] {
	matcher, ok := partialMap[name]
	if !ok {
		matcher = NewSelectorMatcher[T]()
		partialMap[name] = matcher
	}
	return matcher
}

// MatchCallback is invoked for every registered selector that matches.
type MatchCallback[T any] func(c *CssSelector, a *T)

// Match finds all registered selectors that match the given selector and
// reports whether any matched.
func (sm *SelectorMatcher[T]) Match(cssSelector *CssSelector, matchedCallback MatchCallback[T]) bool {
	result := false
	element := ""
	if cssSelector.Element != nil {
		element = *cssSelector.Element
	}
	classNames := cssSelector.ClassNames
	attrs := cssSelector.Attrs

	for _, listContext := range sm.listContexts {
		listContext.AlreadyMatched = false
	}

	result = sm.matchTerminal(sm.elementMap, element, cssSelector, matchedCallback) || result
	result = sm.matchPartial(sm.elementPartialMap, element, cssSelector, matchedCallback) || result

	for _, className := range classNames {
		result = sm.matchTerminal(sm.classMap, className, cssSelector, matchedCallback) || result
		result = sm.matchPartial(sm.classPartialMap, className, cssSelector, matchedCallback) || result
	}

	for i := 0; i+1 < len(attrs); i += 2 {
		name := attrs[i]
		value := attrs[i+1]

		if terminalValuesMap, ok := sm.attrValueMap[name]; ok {
			if value != "" {
				result = sm.matchTerminal(terminalValuesMap, "", cssSelector, matchedCallback) || result
			}
			result = sm.matchTerminal(terminalValuesMap, value, cssSelector, matchedCallback) || result
		}

		if partialValuesMap, ok := sm.attrValuePartialMap[name]; ok {
			if value != "" {
				result = sm.matchPartial(partialValuesMap, "", cssSelector, matchedCallback) || result
			}
			result = sm.matchPartial(partialValuesMap, value, cssSelector, matchedCallback) || result
		}
	}

	return result
}

func (sm *SelectorMatcher[T]) matchTerminal(terminalMap map[string][]*SelectorContext[T], name string, cssSelector *CssSelector, matchedCallback MatchCallback[T]) bool {
	selectables := terminalMap[name]
	if starSelectables, ok := terminalMap["*"]; ok {
		selectables = append(selectables, starSelectables...)
	}
	if len(selectables) == 0 {
		return false
	}
	result := false
	for _, selectable := range selectables {
		if selectable.Finalize(cssSelector, matchedCallback) {
			result = true
		}
	}
	return result
}

func (sm *SelectorMatcher[T]) matchPartial(partialMap map[string]*SelectorMatcher[T], name string, cssSelector *CssSelector, matchedCallback MatchCallback[T]) bool {
	nestedMatcher, ok := partialMap[name]
	if !ok {
		return false
	}
	// TODO: restrict the nested match to the remaining parts of the selector
	// instead of re-matching the whole thing.
	return nestedMatcher.Match(cssSelector, matchedCallback)
}

// SelectorListContext tracks whether any selector of a registered list has
// already matched during the current Match call.
type SelectorListContext struct {
	AlreadyMatched bool
	Selectors      []*CssSelector
}

// NewSelectorListContext creates a new SelectorListContext.
func NewSelectorListContext(selectors []*CssSelector) *SelectorListContext {
	return &SelectorListContext{Selectors: selectors}
}

// SelectorContext is a registered selector plus its callback context.
type SelectorContext[T any] struct {
	Selector     *CssSelector
	CbContext    *T
	ListContext  *SelectorListContext
	NotSelectors []*CssSelector
}

// NewSelectorContext creates a new SelectorContext.
func NewSelectorContext[T any](selector *CssSelector, cbContext *T, listContext *SelectorListContext) *SelectorContext[T] {
	return &SelectorContext[T]{
		Selector:     selector,
		CbContext:    cbContext,
		ListContext:  listContext,
		NotSelectors: selector.NotSelectors,
	}
}

// Finalize applies the :not selectors and fires the callback on a match.
func (sc *SelectorContext[T]) Finalize(cssSelector *CssSelector, callback MatchCallback[T]) bool {
	result := true
	if len(sc.NotSelectors) > 0 && (sc.ListContext == nil || !sc.ListContext.AlreadyMatched) {
		notMatcher := CreateNotMatcher(sc.NotSelectors)
		result = !notMatcher.Match(cssSelector, nil)
	}
	if result && callback != nil && (sc.ListContext == nil || !sc.ListContext.AlreadyMatched) {
		if sc.ListContext != nil {
			sc.ListContext.AlreadyMatched = true
		}
		callback(sc.Selector, sc.CbContext)
	}
	return result
}
