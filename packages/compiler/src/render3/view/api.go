package view

import (
	"ngdef-go/packages/compiler/src/core"
	"ngdef-go/packages/compiler/src/output"
	"ngdef-go/packages/compiler/src/render3"
	"ngdef-go/packages/compiler/src/util"
)

// R3HostMetadata holds the pre-classified host bindings of a directive.
// Attribute values are static strings; listener and property values are
// unparsed binding expressions.
type R3HostMetadata struct {
	Attributes map[string]string
	Listeners  map[string]string
	Properties map[string]string
	Animations map[string]string
}

// R3QueryMetadata describes a content or view query.
type R3QueryMetadata struct {
	// Name of the property on the class to update with query results
	PropertyName string

	// Whether to read only the first matching result
	First bool

	// Either an expression representing a type for the query predicate, or
	// a []string of string selectors
	Predicate interface{}

	// Whether to include only direct children or all descendants
	Descendants bool

	// An expression representing a type to read from each matched node, or
	// nil for the default
	Read output.OutputExpression
}

// R3LifecycleMetadata carries the lifecycle facts the definition depends on.
type R3LifecycleMetadata struct {
	// Whether the directive uses NgOnChanges
	UsesOnChanges bool
}

// R3DirectiveMetadata is the metadata needed to compile a directive
// definition.
type R3DirectiveMetadata struct {
	// Name of the directive type
	Name string

	// An expression representing a reference to the directive itself
	Type render3.R3Reference

	// Number of generic type parameters of the type itself
	TypeArgumentCount int

	// A source span for the directive type
	TypeSourceSpan *util.ParseSourceSpan

	// Directive selector, or nil if there was no selector
	Selector *string

	// Constructor dependencies, or nil when the directive has no
	// constructor of its own
	Deps []*render3.R3DependencyMetadata

	// Content queries made by the directive
	Queries []*R3QueryMetadata

	Host R3HostMetadata

	Lifecycle R3LifecycleMetadata

	// Map of declared input property names to their public binding names
	Inputs map[string]string

	// Map of declared output property names to their public event names
	Outputs map[string]string

	// Whether the directive extends another directive or component
	UsesInheritance bool

	// Name under which the directive is exported, or nil when it is not
	ExportAs *string

	// The list of providers, already wrapped in an output expression
	Providers output.OutputExpression
}

// R3ComponentTemplate carries the parsed template of a component. The nodes
// are opaque to the definition compiler and handed to a TemplateCompiler.
type R3ComponentTemplate struct {
	Nodes []interface{}
}

// R3UsedDirectiveMetadata pairs a directive selector with an expression
// referencing its type, for template directive matching.
type R3UsedDirectiveMetadata struct {
	Selector   string
	Expression output.OutputExpression
}

// R3ComponentMetadata is the metadata needed to compile a component
// definition.
type R3ComponentMetadata struct {
	R3DirectiveMetadata

	Template R3ComponentTemplate

	// View queries made by the component
	ViewQueries []*R3QueryMetadata

	// Directives that could be matched against the template
	Directives []*R3UsedDirectiveMetadata

	// Map of pipe names to expressions referencing the pipe types
	Pipes map[string]output.OutputExpression

	Styles []string

	// Encapsulation strategy, or nil for the default (Emulated)
	Encapsulation *core.ViewEncapsulation

	// An expression holding the animation triggers, or nil when there are
	// none
	Animations output.OutputExpression

	// The list of view providers, already wrapped in an output expression
	ViewProviders output.OutputExpression

	// Change detection strategy, or nil when it was not stated
	ChangeDetection *core.ChangeDetectionStrategy

	// Whether to wrap the directives and pipes arrays in closures, to cope
	// with forward declarations
	WrapDirectivesAndPipesInClosure bool
}

// R3DirectiveDef is the result of compiling a directive or component: the
// definition initializer, its declared type, and supporting statements to
// place alongside it.
type R3DirectiveDef struct {
	Expression output.OutputExpression
	Type       output.Type
	Statements []output.OutputStatement
}
