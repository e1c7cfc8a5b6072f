package view

import (
	"ngdef-go/packages/compiler/src/css"
	"ngdef-go/packages/compiler/src/expressionparser"
	"ngdef-go/packages/compiler/src/output"
	"ngdef-go/packages/compiler/src/pool"
	"ngdef-go/packages/compiler/src/util"
)

// TemplateCompileRequest is everything a template compiler needs to build
// the template function of a component.
type TemplateCompileRequest struct {
	// Component type name, used to name the generated function
	Name string

	// Parsed template nodes, in the representation of the template compiler
	Nodes []interface{}

	ConstantPool *pool.ConstantPool

	// Matcher over the selectors of the directives declared for this
	// component, or nil when there are none. The matched value is an
	// expression referencing the directive type.
	DirectiveMatcher *css.SelectorMatcher[output.OutputExpression]

	// Map of pipe names to expressions referencing the pipe types
	Pipes map[string]output.OutputExpression

	// The starting namespace instruction
	Namespace *output.ExternalReference
}

// TemplateCompileResult is the compiled template function plus the facts
// the definition needs to record about it.
type TemplateCompileResult struct {
	// The template function expression
	TemplateFn output.OutputExpression

	// Number of slots the template needs in creation mode
	ConstCount int

	// Number of binding slots the template needs in update mode
	VarCount int

	// Expressions referencing the directive types matched in the template,
	// in first-use order
	DirectivesUsed []output.OutputExpression

	// Expressions referencing the pipe types used in the template, in
	// first-use order
	PipesUsed []output.OutputExpression
}

// TemplateCompiler turns parsed template nodes into a template function.
// The definition compiler treats the template language itself as opaque.
type TemplateCompiler interface {
	CompileTemplate(req *TemplateCompileRequest) (*TemplateCompileResult, error)
}

// BindingParser parses host binding expression strings into binding ASTs.
type BindingParser interface {
	// CreateBoundHostProperties parses the values of the host property and
	// animation maps. Animation entries carry the bare trigger name and are
	// flagged as animations; the synthetic @ prefix is applied when the
	// property instruction is emitted.
	CreateBoundHostProperties(properties map[string]string, animations map[string]string, sourceSpan *util.ParseSourceSpan) ([]*expressionparser.ParsedProperty, error)

	// CreateDirectiveHostEventAsts parses the values of the host listener
	// map.
	CreateDirectiveHostEventAsts(listeners map[string]string, sourceSpan *util.ParseSourceSpan) ([]*expressionparser.ParsedEvent, error)
}
