package view

import (
	"strings"

	"ngdef-go/packages/compiler/src/core"
	"ngdef-go/packages/compiler/src/expressionparser"
	"ngdef-go/packages/compiler/src/output"
	"ngdef-go/packages/compiler/src/pool"
	"ngdef-go/packages/compiler/src/render3/r3_identifiers"
	"ngdef-go/packages/compiler/src/util"
)

// StylingInstruction describes a styling instruction call to place into a
// create or update block.
type StylingInstruction struct {
	SourceSpan           *util.ParseSourceSpan
	Reference            *output.ExternalReference
	AllocateBindingSlots int

	// BuildParams produces the call arguments. Dynamic values run through
	// the given conversion so the caller controls binding lowering.
	BuildParams func(convertFn func(value *expressionparser.ASTWithSource) output.OutputExpression) []output.OutputExpression
}

type boundStylingEntry struct {
	name       string
	unit       string
	isClass    bool
	value      *expressionparser.ASTWithSource
	sourceSpan *util.ParseSourceSpan
}

// StylingBuilder collects the static and bound styling of a host element
// and produces the styling instructions for it. Static values arrive from
// the style and class host attributes, bound values from [style.x],
// [class.x], [style] and [class] host bindings.
type StylingBuilder struct {
	initialStyles  []string // flat prop, value pairs
	initialClasses []string

	styleMapInput *boundStylingEntry
	classMapInput *boundStylingEntry
	singleInputs  []*boundStylingEntry
}

// NewStylingBuilder creates an empty StylingBuilder
func NewStylingBuilder() *StylingBuilder {
	return &StylingBuilder{}
}

// HasBindings reports whether any bound styling inputs were registered
func (s *StylingBuilder) HasBindings() bool {
	return s.styleMapInput != nil || s.classMapInput != nil || len(s.singleInputs) > 0
}

// HasBindingsOrInitialValues reports whether the builder holds any styling
// work at all, static or bound.
func (s *StylingBuilder) HasBindingsOrInitialValues() bool {
	return s.HasBindings() || len(s.initialStyles) > 0 || len(s.initialClasses) > 0
}

// RegisterStyleAttr records the static style attribute of the host element
func (s *StylingBuilder) RegisterStyleAttr(value string) {
	for _, declaration := range strings.Split(value, ";") {
		prop, val, found := strings.Cut(declaration, ":")
		if !found {
			continue
		}
		prop = strings.TrimSpace(prop)
		val = strings.TrimSpace(val)
		if prop != "" && val != "" {
			s.initialStyles = append(s.initialStyles, prop, val)
		}
	}
}

// RegisterClassAttr records the static class attribute of the host element
func (s *StylingBuilder) RegisterClassAttr(value string) {
	s.initialClasses = append(s.initialClasses, strings.Fields(value)...)
}

// RegisterInputBasedOnName registers a host binding when its name targets
// styling, and reports whether it did. Binding names are matched case
// insensitively on their style/class prefix; a prefixed name without a
// dotted property is a map binding.
func (s *StylingBuilder) RegisterInputBasedOnName(name string, value *expressionparser.ASTWithSource, sourceSpan *util.ParseSourceSpan) bool {
	if len(name) < 5 {
		return false
	}
	prefix := strings.ToLower(name[:5])
	isStyle := prefix == "style"
	isClass := prefix == "class"
	if !isStyle && !isClass {
		return false
	}
	if len(name) == 5 || name[5] != '.' {
		entry := &boundStylingEntry{value: value, sourceSpan: sourceSpan, isClass: isClass}
		if isClass {
			s.classMapInput = entry
		} else {
			s.styleMapInput = entry
		}
		return true
	}
	property := name[6:]
	unit := ""
	if !isClass {
		// style.width.px carries a unit, style.width does not
		if prop, u, found := strings.Cut(property, "."); found {
			property = prop
			unit = u
		}
	}
	s.singleInputs = append(s.singleInputs, &boundStylingEntry{
		name:       property,
		unit:       unit,
		isClass:    isClass,
		value:      value,
		sourceSpan: sourceSpan,
	})
	return true
}

// BuildHostAttrsInstruction produces the create block instruction carrying
// the static attributes and styling of the host element, or nil when there
// is none. Plain attributes precede the class and style marker sections.
// The attribute array is interned in the constant pool.
func (s *StylingBuilder) BuildHostAttrsInstruction(sourceSpan *util.ParseSourceSpan, attrs []output.OutputExpression, constantPool *pool.ConstantPool) *StylingInstruction {
	if len(attrs) == 0 && len(s.initialClasses) == 0 && len(s.initialStyles) == 0 {
		return nil
	}
	if len(s.initialClasses) > 0 {
		attrs = append(attrs, output.Literal(int(core.AttributeMarkerClasses)))
		for _, className := range s.initialClasses {
			attrs = append(attrs, output.Literal(className))
		}
	}
	if len(s.initialStyles) > 0 {
		attrs = append(attrs, output.Literal(int(core.AttributeMarkerStyles)))
		for _, entry := range s.initialStyles {
			attrs = append(attrs, output.Literal(entry))
		}
	}
	pooled := constantPool.GetConstLiteral(output.LiteralArr(attrs), true)
	return &StylingInstruction{
		SourceSpan: sourceSpan,
		Reference:  r3_identifiers.ElementHostAttrs,
		BuildParams: func(convertFn func(value *expressionparser.ASTWithSource) output.OutputExpression) []output.OutputExpression {
			return []output.OutputExpression{pooled}
		},
	}
}

// BuildUpdateLevelInstructions produces the update block styling
// instructions: map bindings first, then the single property bindings in
// declaration order. Every instruction consumes one binding slot.
func (s *StylingBuilder) BuildUpdateLevelInstructions() []*StylingInstruction {
	var instructions []*StylingInstruction
	if s.styleMapInput != nil {
		instructions = append(instructions, mapInstruction(r3_identifiers.StyleMap, s.styleMapInput))
	}
	if s.classMapInput != nil {
		instructions = append(instructions, mapInstruction(r3_identifiers.ClassMap, s.classMapInput))
	}
	for _, input := range s.singleInputs {
		instructions = append(instructions, singleInstruction(input))
	}
	return instructions
}

func mapInstruction(reference *output.ExternalReference, input *boundStylingEntry) *StylingInstruction {
	return &StylingInstruction{
		SourceSpan:           input.sourceSpan,
		Reference:            reference,
		AllocateBindingSlots: 1,
		BuildParams: func(convertFn func(value *expressionparser.ASTWithSource) output.OutputExpression) []output.OutputExpression {
			return []output.OutputExpression{convertFn(input.value)}
		},
	}
}

func singleInstruction(input *boundStylingEntry) *StylingInstruction {
	reference := r3_identifiers.StyleProp
	if input.isClass {
		reference = r3_identifiers.ClassProp
	}
	return &StylingInstruction{
		SourceSpan:           input.sourceSpan,
		Reference:            reference,
		AllocateBindingSlots: 1,
		BuildParams: func(convertFn func(value *expressionparser.ASTWithSource) output.OutputExpression) []output.OutputExpression {
			params := []output.OutputExpression{
				output.Literal(input.name), convertFn(input.value),
			}
			if input.unit != "" {
				params = append(params, output.Literal(input.unit))
			}
			return params
		},
	}
}
