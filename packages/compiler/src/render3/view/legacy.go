package view

import (
	"errors"
	"fmt"
	"sort"

	"ngdef-go/packages/compiler/src/core"
	"ngdef-go/packages/compiler/src/output"
	"ngdef-go/packages/compiler/src/pool"
	"ngdef-go/packages/compiler/src/render3"
	"ngdef-go/packages/compiler/src/render3/r3_identifiers"
	"ngdef-go/packages/compiler/src/util"
)

// LifecycleHook identifies a lifecycle interface implemented by a type in
// the legacy metadata model.
type LifecycleHook int

const (
	LifecycleHookOnInit LifecycleHook = iota
	LifecycleHookOnDestroy
	LifecycleHookDoCheck
	LifecycleHookOnChanges
	LifecycleHookAfterContentInit
	LifecycleHookAfterContentChecked
	LifecycleHookAfterViewInit
	LifecycleHookAfterViewChecked
)

// CompileIdentifierMetadata references a host-language type in the legacy
// reflection-based metadata model.
type CompileIdentifierMetadata struct {
	Reference interface{}
}

// CompileTokenMetadata is an injection token: either a primitive value or
// an identifier.
type CompileTokenMetadata struct {
	Value      interface{}
	Identifier *CompileIdentifierMetadata
}

// CompileDiDependencyMetadata describes one constructor dependency in the
// legacy model.
type CompileDiDependencyMetadata struct {
	Token       *CompileTokenMetadata
	IsAttribute bool
	IsHost      bool
	IsOptional  bool
	IsSelf      bool
	IsSkipSelf  bool
}

// CompileTypeMetadata carries the reflection facts about a type.
type CompileTypeMetadata struct {
	CompileIdentifierMetadata
	DiDeps         []*CompileDiDependencyMetadata
	LifecycleHooks []LifecycleHook
}

// CompileQueryMetadata is a content or view query in the legacy model.
type CompileQueryMetadata struct {
	Selectors    []*CompileTokenMetadata
	Descendants  bool
	First        bool
	PropertyName string
	Read         *CompileTokenMetadata
}

// CompileTemplateMetadata carries the template facts the definition needs
// from the legacy model.
type CompileTemplateMetadata struct {
	Encapsulation *core.ViewEncapsulation
	Styles        []string
	Animations    output.OutputExpression
}

// CompileDirectiveMetadata is the legacy reflection-based metadata of a
// directive or component. Host bindings arrive pre-classified.
type CompileDirectiveMetadata struct {
	Type        *CompileTypeMetadata
	IsComponent bool
	Selector    *string
	ExportAs    *string

	Inputs  map[string]string
	Outputs map[string]string

	HostAttributes map[string]string
	HostListeners  map[string]string
	HostProperties map[string]string

	Providers     []interface{}
	ViewProviders []interface{}

	Queries     []*CompileQueryMetadata
	ViewQueries []*CompileQueryMetadata

	Template        *CompileTemplateMetadata
	ChangeDetection *core.ChangeDetectionStrategy
}

// CompileReflector resolves compiler references to host-language values so
// legacy tokens can be compared against well-known symbols.
type CompileReflector interface {
	ResolveExternalReference(ref *output.ExternalReference) interface{}
}

// OutputContext collects the statements generated for one source file.
type OutputContext struct {
	GenFilePath  string
	Statements   []output.OutputStatement
	ConstantPool *pool.ConstantPool

	// ImportExpr converts a type reference from the legacy metadata into an
	// output expression referencing it.
	ImportExpr func(reference interface{}) output.OutputExpression
}

// CompileDirectiveFromRender2 adapts legacy directive metadata and appends
// a partial class carrying the compiled definition as a static field.
func CompileDirectiveFromRender2(
	outputCtx *OutputContext,
	directive *CompileDirectiveMetadata,
	reflector CompileReflector,
	bindingParser BindingParser,
) error {
	name := identifierName(&directive.Type.CompileIdentifierMetadata)
	if name == "" {
		return fmt.Errorf("cannot resolve the name of %v", directive.Type.Reference)
	}
	definitionField := outputCtx.ConstantPool.PropertyNameOf(pool.DefinitionKindDirective)
	meta, err := directiveMetadataFromGlobalMetadata(directive, outputCtx, reflector)
	if err != nil {
		return err
	}
	res, err := CompileDirectiveFromMetadata(meta, outputCtx.ConstantPool, bindingParser)
	if err != nil {
		return err
	}
	appendPartialClass(outputCtx, name, definitionField, res)
	return nil
}

// CompileComponentFromRender2 adapts legacy component metadata and appends
// a partial class carrying the compiled definition as a static field. The
// template nodes are already parsed into the template compiler's
// representation; directiveTypeBySel and pipeTypeByName hold the
// expressions of the types available to the template.
func CompileComponentFromRender2(
	outputCtx *OutputContext,
	component *CompileDirectiveMetadata,
	templateNodes []interface{},
	reflector CompileReflector,
	bindingParser BindingParser,
	templateCompiler TemplateCompiler,
	directiveTypeBySel map[string]output.OutputExpression,
	pipeTypeByName map[string]output.OutputExpression,
) error {
	name := identifierName(&component.Type.CompileIdentifierMetadata)
	if name == "" {
		return fmt.Errorf("cannot resolve the name of %v", component.Type.Reference)
	}
	definitionField := outputCtx.ConstantPool.PropertyNameOf(pool.DefinitionKindComponent)
	base, err := directiveMetadataFromGlobalMetadata(component, outputCtx, reflector)
	if err != nil {
		return err
	}
	viewQueries, err := queriesFromGlobalMetadata(component.ViewQueries, outputCtx)
	if err != nil {
		return err
	}

	var directives []*R3UsedDirectiveMetadata
	for _, selector := range sortedKeys(directiveTypeBySel) {
		directives = append(directives, &R3UsedDirectiveMetadata{
			Selector:   selector,
			Expression: directiveTypeBySel[selector],
		})
	}

	meta := &R3ComponentMetadata{
		R3DirectiveMetadata: *base,
		Template:            R3ComponentTemplate{Nodes: templateNodes},
		ViewQueries:         viewQueries,
		Directives:          directives,
		Pipes:               pipeTypeByName,
		ViewProviders:       wrapProviders(component.ViewProviders),
		ChangeDetection:     component.ChangeDetection,
	}
	if component.Template != nil {
		meta.Styles = component.Template.Styles
		meta.Encapsulation = component.Template.Encapsulation
		meta.Animations = component.Template.Animations
	}

	res, err := CompileComponentFromMetadata(meta, outputCtx.ConstantPool, bindingParser, templateCompiler, nil)
	if err != nil {
		return err
	}
	appendPartialClass(outputCtx, name, definitionField, res)
	return nil
}

// appendPartialClass emits a class statement holding the definition as a
// static field, to merge with the actual class downstream.
func appendPartialClass(outputCtx *OutputContext, name, definitionField string, res *R3DirectiveDef) {
	outputCtx.Statements = append(outputCtx.Statements, res.Statements...)
	outputCtx.Statements = append(outputCtx.Statements, output.NewClassStmt(
		name, nil,
		[]*output.ClassField{
			output.NewClassField(definitionField, output.InferredType, output.StmtModifierStatic, res.Expression),
		},
		output.StmtModifierNone, nil))
}

func directiveMetadataFromGlobalMetadata(
	directive *CompileDirectiveMetadata,
	outputCtx *OutputContext,
	reflector CompileReflector,
) (*R3DirectiveMetadata, error) {
	name := identifierName(&directive.Type.CompileIdentifierMetadata)
	kind := "Directive"
	if directive.IsComponent {
		kind = "Component"
	}
	deps, err := dependenciesFromGlobalMetadata(directive.Type, outputCtx, reflector)
	if err != nil {
		return nil, err
	}
	queries, err := queriesFromGlobalMetadata(directive.Queries, outputCtx)
	if err != nil {
		return nil, err
	}

	typeExpr := outputCtx.ImportExpr(directive.Type.Reference)
	return &R3DirectiveMetadata{
		Name:           name,
		Type:           render3.R3Reference{Value: typeExpr, Type: typeExpr},
		TypeSourceSpan: util.SyntheticSourceSpan("in " + kind + " " + name),
		Selector:       directive.Selector,
		Deps:           deps,
		Queries:        queries,
		Host: R3HostMetadata{
			Attributes: directive.HostAttributes,
			Listeners:  directive.HostListeners,
			Properties: directive.HostProperties,
			Animations: map[string]string{},
		},
		Lifecycle: R3LifecycleMetadata{
			UsesOnChanges: usesLifecycleHook(directive.Type.LifecycleHooks, LifecycleHookOnChanges),
		},
		Inputs:    directive.Inputs,
		Outputs:   directive.Outputs,
		ExportAs:  directive.ExportAs,
		Providers: wrapProviders(directive.Providers),
	}, nil
}

// dependenciesFromGlobalMetadata maps legacy constructor dependencies onto
// the factory compiler's dependency form.
func dependenciesFromGlobalMetadata(
	typ *CompileTypeMetadata,
	outputCtx *OutputContext,
	reflector CompileReflector,
) ([]*render3.R3DependencyMetadata, error) {
	injectorRef := reflector.ResolveExternalReference(r3_identifiers.Injector)

	var deps []*render3.R3DependencyMetadata
	for _, dependency := range typ.DiDeps {
		if dependency.Token == nil {
			return nil, errors.New("illegal state: dependency without a token")
		}
		var token output.OutputExpression
		resolved := render3.R3ResolvedDependencyTypeToken
		if dependency.IsAttribute {
			token = output.Literal(dependency.Token.Value)
			resolved = render3.R3ResolvedDependencyTypeAttribute
		} else {
			tokenRef := tokenReference(dependency.Token)
			if injectorRef != nil && tokenRef == injectorRef {
				token = output.ImportExpr(r3_identifiers.Injector)
			} else {
				token = outputCtx.ImportExpr(tokenRef)
			}
		}
		deps = append(deps, &render3.R3DependencyMetadata{
			Token:    token,
			Resolved: resolved,
			Host:     dependency.IsHost,
			Optional: dependency.IsOptional,
			Self:     dependency.IsSelf,
			SkipSelf: dependency.IsSkipSelf,
		})
	}
	return deps, nil
}

func queriesFromGlobalMetadata(queries []*CompileQueryMetadata, outputCtx *OutputContext) ([]*R3QueryMetadata, error) {
	result := make([]*R3QueryMetadata, 0, len(queries))
	for _, query := range queries {
		predicate, err := selectorsToPredicate(query.Selectors, outputCtx)
		if err != nil {
			return nil, err
		}
		var read output.OutputExpression
		if query.Read != nil && query.Read.Identifier != nil {
			read = outputCtx.ImportExpr(query.Read.Identifier.Reference)
		}
		result = append(result, &R3QueryMetadata{
			PropertyName: query.PropertyName,
			First:        query.First,
			Predicate:    predicate,
			Descendants:  query.Descendants,
			Read:         read,
		})
	}
	return result, nil
}

// selectorsToPredicate maps legacy query selectors onto a predicate: a list
// of non-empty string selectors, or a single type reference.
func selectorsToPredicate(selectors []*CompileTokenMetadata, outputCtx *OutputContext) (interface{}, error) {
	if len(selectors) > 1 || (len(selectors) == 1 && selectors[0].Value != nil && selectors[0].Value != "") {
		values := make([]string, len(selectors))
		for i, selector := range selectors {
			value, ok := selector.Value.(string)
			if !ok || value == "" {
				return nil, errors.New("unexpected query form")
			}
			values[i] = value
		}
		return values, nil
	}
	if len(selectors) == 1 && selectors[0].Identifier != nil {
		return outputCtx.ImportExpr(selectors[0].Identifier.Reference), nil
	}
	return nil, errors.New("unexpected query form")
}

func tokenReference(token *CompileTokenMetadata) interface{} {
	if token.Identifier != nil {
		return token.Identifier.Reference
	}
	return token.Value
}

func identifierName(identifier *CompileIdentifierMetadata) string {
	if identifier == nil || identifier.Reference == nil {
		return ""
	}
	switch ref := identifier.Reference.(type) {
	case string:
		return ref
	case interface{ IdentifierName() string }:
		return ref.IdentifierName()
	case fmt.Stringer:
		return ref.String()
	}
	return ""
}

func usesLifecycleHook(hooks []LifecycleHook, hook LifecycleHook) bool {
	for _, h := range hooks {
		if h == hook {
			return true
		}
	}
	return false
}

func wrapProviders(providers []interface{}) output.OutputExpression {
	if len(providers) == 0 {
		return nil
	}
	return output.NewWrappedNodeExpr(providers, nil, nil)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
