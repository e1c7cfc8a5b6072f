package templateparser

import (
	"sort"
	"strings"

	"ngdef-go/packages/compiler/src/expressionparser"
	"ngdef-go/packages/compiler/src/util"
)

// BindingParser parses host binding expression strings into binding ASTs
// using the expression parser.
type BindingParser struct {
	parser *expressionparser.Parser
}

// NewBindingParser creates a new BindingParser
func NewBindingParser(parser *expressionparser.Parser) *BindingParser {
	return &BindingParser{parser: parser}
}

// CreateBoundHostProperties parses the host property and animation maps of a
// directive into bound properties. Properties are emitted before animations,
// each group in name order.
func (b *BindingParser) CreateBoundHostProperties(
	properties map[string]string,
	animations map[string]string,
	sourceSpan *util.ParseSourceSpan,
) ([]*expressionparser.ParsedProperty, error) {
	var bound []*expressionparser.ParsedProperty

	for _, name := range sortedKeys(properties) {
		ast, err := b.parseBinding(properties[name], sourceSpan)
		if err != nil {
			return nil, err
		}
		bound = append(bound, expressionparser.NewParsedProperty(
			name, ast, expressionparser.ParsedPropertyTypeDefault, sourceSpan))
	}

	for _, name := range sortedKeys(animations) {
		ast, err := b.parseBinding(animations[name], sourceSpan)
		if err != nil {
			return nil, err
		}
		bound = append(bound, expressionparser.NewParsedProperty(
			name, ast, expressionparser.ParsedPropertyTypeAnimation, sourceSpan))
	}

	return bound, nil
}

// CreateDirectiveHostEventAsts parses the host listener map of a directive
// into bound events, in name order. An "@trigger.phase" key is an animation
// listener carrying the phase, a "target:event" key carries the target.
func (b *BindingParser) CreateDirectiveHostEventAsts(
	listeners map[string]string,
	sourceSpan *util.ParseSourceSpan,
) ([]*expressionparser.ParsedEvent, error) {
	var events []*expressionparser.ParsedEvent

	for _, name := range sortedKeys(listeners) {
		handler, err := b.parseAction(listeners[name], sourceSpan)
		if err != nil {
			return nil, err
		}

		eventName := name
		var targetOrPhase *string
		eventType := expressionparser.ParsedEventTypeRegular

		if trigger, isAnimation := strings.CutPrefix(name, "@"); isAnimation {
			eventType = expressionparser.ParsedEventTypeAnimation
			eventName = trigger
			if trigger, phase, hasPhase := strings.Cut(trigger, "."); hasPhase {
				eventName = trigger
				targetOrPhase = &phase
			}
		} else if target, event, hasTarget := strings.Cut(name, ":"); hasTarget {
			targetOrPhase = &target
			eventName = event
		}

		events = append(events, expressionparser.NewParsedEvent(
			eventName, targetOrPhase, eventType, handler, sourceSpan))
	}

	return events, nil
}

func (b *BindingParser) parseBinding(value string, sourceSpan *util.ParseSourceSpan) (*expressionparser.ASTWithSource, error) {
	ast := b.parser.ParseBinding(value, spanLocation(sourceSpan), spanOffset(sourceSpan))
	return ast, firstError(ast.Errors)
}

func (b *BindingParser) parseAction(value string, sourceSpan *util.ParseSourceSpan) (*expressionparser.ASTWithSource, error) {
	ast := b.parser.ParseAction(value, spanLocation(sourceSpan), spanOffset(sourceSpan))
	return ast, firstError(ast.Errors)
}

func firstError(errors []*util.ParseError) error {
	for _, err := range errors {
		if err.Level == util.ParseErrorLevelError {
			return err
		}
	}
	return nil
}

func spanLocation(sourceSpan *util.ParseSourceSpan) string {
	if sourceSpan == nil || sourceSpan.Start == nil {
		return "(unknown)"
	}
	return sourceSpan.Start.String()
}

func spanOffset(sourceSpan *util.ParseSourceSpan) int {
	if sourceSpan == nil || sourceSpan.Start == nil {
		return 0
	}
	return sourceSpan.Start.Offset
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
