package view

import (
	"sort"
	"strings"

	"ngdef-go/packages/compiler/src/core"
	"ngdef-go/packages/compiler/src/css"
	"ngdef-go/packages/compiler/src/output"
	"ngdef-go/packages/compiler/src/pool"
	"ngdef-go/packages/compiler/src/render3"
	"ngdef-go/packages/compiler/src/render3/r3_identifiers"
)

// baseDirectiveFields assembles the definition fields shared by directives
// and components, in their fixed order.
func baseDirectiveFields(
	meta *R3DirectiveMetadata,
	constantPool *pool.ConstantPool,
	bindingParser BindingParser,
) (*DefinitionMap, []output.OutputStatement, error) {
	definitionMap := NewDefinitionMap()

	// e.g. `type: MyDirective`
	definitionMap.Set("type", meta.Type.Value)

	// e.g. `selectors: [['', 'someDir', '']]`
	selectors, err := createDirectiveSelector(meta.Selector)
	if err != nil {
		return nil, nil, err
	}
	definitionMap.Set("selectors", selectors)

	// e.g. `factory: function MyDirective_Factory(t) {...}`
	factory := render3.CompileFactoryFunction(&render3.R3FactoryMetadata{
		Name:     meta.Name,
		Type:     meta.Type.Value,
		Deps:     meta.Deps,
		InjectFn: r3_identifiers.DirectiveInject,
	})
	definitionMap.Set("factory", factory.Factory)

	contentQueries, err := createContentQueriesFunction(meta, constantPool)
	if err != nil {
		return nil, nil, err
	}
	definitionMap.Set("contentQueries", contentQueries)
	definitionMap.Set("contentQueriesRefresh", createContentQueriesRefreshFunction(meta))

	// Host bindings reserve one update slot per non-styling property
	// binding; styling and pure function slots are added on top by the
	// host bindings compiler.
	hostBindings, err := createHostBindingsFunction(
		meta, bindingParser, constantPool, nonStylingHostVarsCount(meta))
	if err != nil {
		return nil, nil, err
	}
	definitionMap.Set("hostBindings", hostBindings)

	// e.g. `inputs: {a: 'a'}`
	definitionMap.Set("inputs", ConditionallyCreateMapObjectLiteral(meta.Inputs, true))

	// e.g. `outputs: {a: 'a'}`
	definitionMap.Set("outputs", ConditionallyCreateMapObjectLiteral(meta.Outputs, false))

	if meta.ExportAs != nil {
		definitionMap.Set("exportAs", output.Literal(*meta.ExportAs))
	}

	return definitionMap, factory.Statements, nil
}

// addFeatures appends the features field when any feature applies. The
// order is fixed: providers, inheritance, onChanges.
func addFeatures(definitionMap *DefinitionMap, meta *R3DirectiveMetadata, viewProviders output.OutputExpression) {
	var features []output.OutputExpression

	if meta.Providers != nil || viewProviders != nil {
		providers := meta.Providers
		if providers == nil {
			providers = output.LiteralArr(nil)
		}
		args := []output.OutputExpression{providers}
		if viewProviders != nil {
			args = append(args, viewProviders)
		}
		features = append(features, output.CallImport(r3_identifiers.ProvidersFeature, args...))
	}
	if meta.UsesInheritance {
		features = append(features, output.ImportExpr(r3_identifiers.InheritDefinitionFeature))
	}
	if meta.Lifecycle.UsesOnChanges {
		features = append(features, output.ImportExpr(r3_identifiers.NgOnChangesFeature))
	}
	if len(features) > 0 {
		definitionMap.Set("features", output.LiteralArr(features))
	}
}

// CompileDirectiveFromMetadata compiles a directive definition from its
// metadata.
func CompileDirectiveFromMetadata(
	meta *R3DirectiveMetadata,
	constantPool *pool.ConstantPool,
	bindingParser BindingParser,
) (*R3DirectiveDef, error) {
	definitionMap, statements, err := baseDirectiveFields(meta, constantPool, bindingParser)
	if err != nil {
		return nil, err
	}
	addFeatures(definitionMap, meta, nil)

	expression := output.CallImport(r3_identifiers.DefineDirective, definitionMap.ToLiteralMap())
	typ := createTypeForDef(meta, r3_identifiers.DirectiveDefWithMeta)
	return &R3DirectiveDef{Expression: expression, Type: typ, Statements: statements}, nil
}

// CompileComponentFromMetadata compiles a component definition from its
// metadata. The template compiler is external; it receives the component's
// directive matcher and pipe table and reports back the slot counts and the
// directives and pipes the template actually used. A nil styleShim selects
// the default emulated scoping transform.
func CompileComponentFromMetadata(
	meta *R3ComponentMetadata,
	constantPool *pool.ConstantPool,
	bindingParser BindingParser,
	templateCompiler TemplateCompiler,
	styleShim css.StyleShim,
) (*R3DirectiveDef, error) {
	definitionMap, statements, err := baseDirectiveFields(&meta.R3DirectiveMetadata, constantPool, bindingParser)
	if err != nil {
		return nil, err
	}
	addFeatures(definitionMap, &meta.R3DirectiveMetadata, meta.ViewProviders)

	// e.g. `attrs: ['title', 'Hello']`
	if meta.Selector != nil {
		selectors, err := css.ParseCssSelector(*meta.Selector)
		if err != nil {
			return nil, err
		}
		if len(selectors) > 0 {
			if attrs := selectorAttrsLiteral(selectors[0]); attrs != nil {
				definitionMap.Set("attrs", constantPool.GetConstLiteral(attrs, true))
			}
		}
	}

	directiveMatcher, err := buildDirectiveMatcher(meta.Directives)
	if err != nil {
		return nil, err
	}

	if len(meta.ViewQueries) > 0 {
		viewQuery, err := createViewQueriesFunction(meta, constantPool)
		if err != nil {
			return nil, err
		}
		definitionMap.Set("viewQuery", viewQuery)
	}

	template, err := templateCompiler.CompileTemplate(&TemplateCompileRequest{
		Name:             meta.Name,
		Nodes:            meta.Template.Nodes,
		ConstantPool:     constantPool,
		DirectiveMatcher: directiveMatcher,
		Pipes:            meta.Pipes,
		Namespace:        r3_identifiers.NamespaceHTML,
	})
	if err != nil {
		return nil, err
	}
	definitionMap.Set("consts", output.Literal(template.ConstCount))
	definitionMap.Set("vars", output.Literal(template.VarCount))
	definitionMap.Set("template", template.TemplateFn)

	// e.g. `directives: [MyDirective]`
	if len(template.DirectivesUsed) > 0 {
		definitionMap.Set("directives", maybeWrapInClosure(
			output.LiteralArr(template.DirectivesUsed), meta.WrapDirectivesAndPipesInClosure))
	}

	// e.g. `pipes: [MyPipe]`
	if len(template.PipesUsed) > 0 {
		definitionMap.Set("pipes", maybeWrapInClosure(
			output.LiteralArr(template.PipesUsed), meta.WrapDirectivesAndPipesInClosure))
	}

	encapsulation := core.ViewEncapsulationEmulated
	if meta.Encapsulation != nil {
		encapsulation = *meta.Encapsulation
	}

	// e.g. `styles: [str1, str2]`
	if len(meta.Styles) > 0 {
		styleValues := meta.Styles
		if encapsulation == core.ViewEncapsulationEmulated {
			if styleShim == nil {
				styleShim = css.NewEmulatedStyleShim()
			}
			styleValues = make([]string, len(meta.Styles))
			for i, style := range meta.Styles {
				styleValues[i] = styleShim.ShimCssText(style, css.ContentAttr, css.HostAttr)
			}
		}
		styles := make([]output.OutputExpression, len(styleValues))
		for i, style := range styleValues {
			styles[i] = output.Literal(style)
		}
		definitionMap.Set("styles", output.LiteralArr(styles))
	} else if encapsulation == core.ViewEncapsulationEmulated {
		// no styles, so no need to generate scoping selectors
		encapsulation = core.ViewEncapsulationNone
	}

	// Only set view encapsulation if it's not the default value
	if encapsulation != core.ViewEncapsulationEmulated {
		definitionMap.Set("encapsulation", output.Literal(int(encapsulation)))
	}

	// e.g. `data: {animation: [trigger('123', [])]}`
	if meta.Animations != nil {
		definitionMap.Set("data", output.LiteralMap([]*output.LiteralMapEntry{
			output.NewLiteralMapEntry("animation", meta.Animations, false),
		}))
	}

	// Only set the change detection flag if it's not the default
	if meta.ChangeDetection != nil && *meta.ChangeDetection != core.ChangeDetectionStrategyDefault {
		definitionMap.Set("changeDetection", output.Literal(int(*meta.ChangeDetection)))
	}

	expression := output.CallImport(r3_identifiers.DefineComponent, definitionMap.ToLiteralMap())
	typ := createTypeForDef(&meta.R3DirectiveMetadata, r3_identifiers.ComponentDefWithMeta)
	return &R3DirectiveDef{Expression: expression, Type: typ, Statements: statements}, nil
}

// nonStylingHostVarsCount counts the host property bindings that reserve
// their own update slot. Style and class bindings are slotted by the
// styling builder instead; animation bindings behave like plain properties.
func nonStylingHostVarsCount(meta *R3DirectiveMetadata) int {
	count := len(meta.Host.Animations)
	for name := range meta.Host.Properties {
		prefix := name
		if len(prefix) > 5 {
			prefix = prefix[:5]
		}
		prefix = strings.ToLower(prefix)
		if prefix != "style" && prefix != "class" {
			count++
		}
	}
	return count
}

// createDirectiveSelector parses a selector into the engine's structured
// selector literal.
func createDirectiveSelector(selector *string) (output.OutputExpression, error) {
	parsed, err := css.ParseSelectorToR3Selector(selector)
	if err != nil {
		return nil, err
	}
	return AsLiteral(parsed), nil
}

// selectorAttrsLiteral builds the static attribute array of a parsed
// selector, or nil when it has none. Attributes without a value carry the
// undefined literal.
func selectorAttrsLiteral(selector *css.CssSelector) output.OutputExpression {
	attrs := selector.GetAttrs()
	if len(attrs) == 0 {
		return nil
	}
	entries := make([]output.OutputExpression, len(attrs))
	for i, attr := range attrs {
		if i%2 == 1 && attr == "" {
			entries[i] = output.Literal(output.UndefinedValue)
		} else {
			entries[i] = output.Literal(attr)
		}
	}
	return output.LiteralArr(entries)
}

// buildDirectiveMatcher builds a selector matcher over the directives
// available to a component's template, or nil when there are none.
func buildDirectiveMatcher(directives []*R3UsedDirectiveMetadata) (*css.SelectorMatcher[output.OutputExpression], error) {
	if len(directives) == 0 {
		return nil, nil
	}
	matcher := css.NewSelectorMatcher[output.OutputExpression]()
	for _, directive := range directives {
		selectors, err := css.ParseCssSelector(directive.Selector)
		if err != nil {
			return nil, err
		}
		expression := directive.Expression
		matcher.AddSelectables(selectors, &expression)
	}
	return matcher, nil
}

func maybeWrapInClosure(arr output.OutputExpression, wrap bool) output.OutputExpression {
	if !wrap {
		return arr
	}
	return output.Fn(nil, []output.OutputStatement{
		output.NewReturnStatement(arr, nil),
	}, output.InferredType, nil, nil)
}

// createTypeForDef builds the type-side declaration of a definition. It is
// descriptive metadata only: the type with its generic arity, the selector
// on a single line, the export name, the input and output maps and the
// query property names.
func createTypeForDef(meta *R3DirectiveMetadata, typeBase *output.ExternalReference) output.Type {
	selectorForType := ""
	if meta.Selector != nil {
		selectorForType = strings.ReplaceAll(*meta.Selector, "\n", "")
	}
	exportAs := output.Type(output.NoneType)
	if meta.ExportAs != nil {
		exportAs = stringAsType(*meta.ExportAs)
	}
	queryNames := make([]string, len(meta.Queries))
	for i, query := range meta.Queries {
		queryNames[i] = query.PropertyName
	}
	return output.ExpressionTypeOf(output.NewExternalExpr(typeBase, nil, []output.Type{
		render3.TypeWithParameters(meta.Type.Type, meta.TypeArgumentCount),
		stringAsType(selectorForType),
		exportAs,
		stringMapAsType(meta.Inputs),
		stringMapAsType(meta.Outputs),
		stringArrayAsType(queryNames),
	}, nil))
}

func stringAsType(value string) output.Type {
	return output.ExpressionTypeOf(output.Literal(value))
}

func stringMapAsType(m map[string]string) output.Type {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	entries := make([]*output.LiteralMapEntry, len(keys))
	for i, key := range keys {
		entries[i] = output.NewLiteralMapEntry(key, output.Literal(m[key]), true)
	}
	return output.ExpressionTypeOf(output.LiteralMap(entries))
}

func stringArrayAsType(values []string) output.Type {
	entries := make([]output.OutputExpression, len(values))
	for i, value := range values {
		entries[i] = output.Literal(value)
	}
	return output.ExpressionTypeOf(output.LiteralArr(entries))
}
