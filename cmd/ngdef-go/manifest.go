package main

import (
	"fmt"
	"strings"

	"ngdef-go/packages/compiler/src/core"
	"ngdef-go/packages/compiler/src/expressionparser"
	"ngdef-go/packages/compiler/src/output"
	"ngdef-go/packages/compiler/src/pool"
	"ngdef-go/packages/compiler/src/render3"
	"ngdef-go/packages/compiler/src/render3/view"
	"ngdef-go/packages/compiler/src/templateparser"
	"ngdef-go/packages/compiler/src/util"
)

// Manifest is the YAML description of one directive or component.
type Manifest struct {
	Kind     string `yaml:"kind"`
	Name     string `yaml:"name"`
	Selector string `yaml:"selector"`
	ExportAs string `yaml:"exportAs"`

	Inputs  map[string]string `yaml:"inputs"`
	Outputs map[string]string `yaml:"outputs"`

	// Raw host binding map, classified by key shape during compilation
	Host map[string]string `yaml:"host"`

	Deps        []ManifestDep   `yaml:"deps"`
	Queries     []ManifestQuery `yaml:"queries"`
	ViewQueries []ManifestQuery `yaml:"viewQueries"`

	Styles          []string `yaml:"styles"`
	Encapsulation   string   `yaml:"encapsulation"`
	ChangeDetection string   `yaml:"changeDetection"`

	UsesInheritance bool `yaml:"usesInheritance"`
	UsesOnChanges   bool `yaml:"usesOnChanges"`
}

// ManifestDep is one constructor dependency.
type ManifestDep struct {
	Token     string `yaml:"token"`
	Attribute bool   `yaml:"attribute"`
	Host      bool   `yaml:"host"`
	Optional  bool   `yaml:"optional"`
	Self      bool   `yaml:"self"`
	SkipSelf  bool   `yaml:"skipSelf"`
}

// ManifestQuery is one content or view query. Either Selector (a
// comma-separated selector list) or Type (a type reference name) must be
// set.
type ManifestQuery struct {
	Property    string `yaml:"property"`
	Selector    string `yaml:"selector"`
	Type        string `yaml:"type"`
	First       bool   `yaml:"first"`
	Descendants bool   `yaml:"descendants"`
	Read        string `yaml:"read"`
}

// compileManifest compiles a manifest into JavaScript source: the hoisted
// constant pool and definition statements followed by the definition
// initializer bound to <Name>Def.
func compileManifest(manifest *Manifest) (string, error) {
	if manifest.Name == "" {
		return "", fmt.Errorf("manifest has no name")
	}

	constantPool := pool.NewConstantPool()
	bindingParser := templateparser.NewBindingParser(
		expressionparser.NewParser(expressionparser.NewLexer()))

	var def *view.R3DirectiveDef
	var err error
	switch strings.ToLower(manifest.Kind) {
	case "directive":
		meta, metaErr := directiveMetadata(manifest)
		if metaErr != nil {
			return "", metaErr
		}
		def, err = view.CompileDirectiveFromMetadata(meta, constantPool, bindingParser)
	case "component":
		meta, metaErr := componentMetadata(manifest)
		if metaErr != nil {
			return "", metaErr
		}
		def, err = view.CompileComponentFromMetadata(
			meta, constantPool, bindingParser, emptyTemplateCompiler{}, nil)
	default:
		return "", fmt.Errorf("unknown manifest kind %q", manifest.Kind)
	}
	if err != nil {
		return "", err
	}

	statements := constantPool.Statements()
	statements = append(statements, def.Statements...)
	statements = append(statements, output.NewDeclareVarStmt(
		manifest.Name+"Def", def.Expression,
		output.InferredType, output.StmtModifierFinal, nil))
	return output.EmitStatements(statements), nil
}

func directiveMetadata(manifest *Manifest) (*view.R3DirectiveMetadata, error) {
	host := view.ParseHostBindings(manifest.Host)
	queries, err := queriesMetadata(manifest.Queries)
	if err != nil {
		return nil, err
	}

	meta := &view.R3DirectiveMetadata{
		Name:           manifest.Name,
		Type:           typeReference(manifest.Name),
		TypeSourceSpan: util.SyntheticSourceSpan("in " + manifest.Kind + " " + manifest.Name),
		Deps:           depsMetadata(manifest.Deps),
		Queries:        queries,
		Host: view.R3HostMetadata{
			Attributes: host.Attributes,
			Listeners:  host.Listeners,
			Properties: host.Properties,
			Animations: host.Animations,
		},
		Lifecycle:       view.R3LifecycleMetadata{UsesOnChanges: manifest.UsesOnChanges},
		Inputs:          manifest.Inputs,
		Outputs:         manifest.Outputs,
		UsesInheritance: manifest.UsesInheritance,
	}
	if manifest.Selector != "" {
		selector := manifest.Selector
		meta.Selector = &selector
	}
	if manifest.ExportAs != "" {
		exportAs := manifest.ExportAs
		meta.ExportAs = &exportAs
	}
	return meta, nil
}

func componentMetadata(manifest *Manifest) (*view.R3ComponentMetadata, error) {
	directive, err := directiveMetadata(manifest)
	if err != nil {
		return nil, err
	}
	viewQueries, err := queriesMetadata(manifest.ViewQueries)
	if err != nil {
		return nil, err
	}
	encapsulation, err := parseEncapsulation(manifest.Encapsulation)
	if err != nil {
		return nil, err
	}
	changeDetection, err := parseChangeDetection(manifest.ChangeDetection)
	if err != nil {
		return nil, err
	}

	return &view.R3ComponentMetadata{
		R3DirectiveMetadata: *directive,
		ViewQueries:         viewQueries,
		Styles:              manifest.Styles,
		Encapsulation:       encapsulation,
		ChangeDetection:     changeDetection,
	}, nil
}

func typeReference(name string) render3.R3Reference {
	expr := output.Variable(name)
	return render3.R3Reference{Value: expr, Type: expr}
}

func depsMetadata(deps []ManifestDep) []*render3.R3DependencyMetadata {
	if deps == nil {
		return nil
	}
	result := make([]*render3.R3DependencyMetadata, 0, len(deps))
	for _, dep := range deps {
		meta := &render3.R3DependencyMetadata{
			Token:    output.Variable(dep.Token),
			Resolved: render3.R3ResolvedDependencyTypeToken,
			Host:     dep.Host,
			Optional: dep.Optional,
			Self:     dep.Self,
			SkipSelf: dep.SkipSelf,
		}
		if dep.Attribute {
			meta.Token = output.Literal(dep.Token)
			meta.Resolved = render3.R3ResolvedDependencyTypeAttribute
		}
		result = append(result, meta)
	}
	return result
}

func queriesMetadata(queries []ManifestQuery) ([]*view.R3QueryMetadata, error) {
	var result []*view.R3QueryMetadata
	for _, query := range queries {
		meta := &view.R3QueryMetadata{
			PropertyName: query.Property,
			First:        query.First,
			Descendants:  query.Descendants,
		}
		switch {
		case query.Type != "":
			meta.Predicate = output.OutputExpression(output.Variable(query.Type))
		case query.Selector != "":
			meta.Predicate = []string{query.Selector}
		default:
			return nil, fmt.Errorf("query %q has neither a selector nor a type", query.Property)
		}
		if query.Read != "" {
			meta.Read = output.Variable(query.Read)
		}
		result = append(result, meta)
	}
	return result, nil
}

func parseEncapsulation(value string) (*core.ViewEncapsulation, error) {
	var encapsulation core.ViewEncapsulation
	switch strings.ToLower(value) {
	case "":
		return nil, nil
	case "emulated":
		encapsulation = core.ViewEncapsulationEmulated
	case "none":
		encapsulation = core.ViewEncapsulationNone
	case "shadowdom":
		encapsulation = core.ViewEncapsulationShadowDom
	default:
		return nil, fmt.Errorf("unknown encapsulation %q", value)
	}
	return &encapsulation, nil
}

func parseChangeDetection(value string) (*core.ChangeDetectionStrategy, error) {
	var strategy core.ChangeDetectionStrategy
	switch strings.ToLower(value) {
	case "":
		return nil, nil
	case "default":
		strategy = core.ChangeDetectionStrategyDefault
	case "onpush":
		strategy = core.ChangeDetectionStrategyOnPush
	default:
		return nil, fmt.Errorf("unknown change detection strategy %q", value)
	}
	return &strategy, nil
}
