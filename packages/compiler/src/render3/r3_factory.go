package render3

import (
	"fmt"

	"ngdef-go/packages/compiler/src/core"
	"ngdef-go/packages/compiler/src/output"
	"ngdef-go/packages/compiler/src/render3/r3_identifiers"
)

// R3FactoryMetadata contains the metadata required to generate a factory
// function for a directive or component.
type R3FactoryMetadata struct {
	// Name of the type being generated, used to name the factory function
	Name string

	// An expression representing the type being constructed
	Type output.OutputExpression

	// Constructor dependencies, in declaration order. Nil means the type has
	// no constructor of its own and instantiation takes no arguments.
	Deps []*R3DependencyMetadata

	// The inject function the generated factory calls for each dependency
	InjectFn *output.ExternalReference
}

// R3ResolvedDependencyType tells the factory generator how a dependency is
// satisfied at runtime.
type R3ResolvedDependencyType int

const (
	// R3ResolvedDependencyTypeToken injects the dependency by its token
	R3ResolvedDependencyTypeToken R3ResolvedDependencyType = iota
	// R3ResolvedDependencyTypeAttribute reads a static attribute value
	R3ResolvedDependencyTypeAttribute
)

// R3DependencyMetadata describes one constructor dependency.
type R3DependencyMetadata struct {
	// The token or attribute name expression to inject
	Token output.OutputExpression

	Resolved R3ResolvedDependencyType

	Host     bool
	Optional bool
	Self     bool
	SkipSelf bool
}

// R3FactoryFn is the compiled factory: the function expression to place in
// the definition plus any supporting statements.
type R3FactoryFn struct {
	Factory    output.OutputExpression
	Statements []output.OutputStatement
}

// CompileFactoryFunction constructs the factory function for a definition:
// function Name_Factory(t) { return new (t || Type)(...injected deps); }
// The t parameter lets a subclass instantiate through an inherited factory.
func CompileFactoryFunction(meta *R3FactoryMetadata) *R3FactoryFn {
	t := output.Variable("t")
	typeForCtor := output.NewBinaryOperatorExpr(
		output.BinaryOperatorOr, t, meta.Type, nil, nil)

	var args []output.OutputExpression
	if meta.Deps != nil {
		args = injectDependencies(meta.Deps, meta.InjectFn)
	}
	ctorExpr := output.NewInstantiateExpr(typeForCtor, args, nil, nil)

	factoryName := meta.Name + "_Factory"
	factoryFn := output.Fn(
		[]*output.FnParam{output.NewFnParam("t", output.DynamicType)},
		[]output.OutputStatement{output.NewReturnStatement(ctorExpr, nil)},
		output.InferredType,
		nil,
		&factoryName,
	)
	return &R3FactoryFn{Factory: factoryFn, Statements: []output.OutputStatement{}}
}

func injectDependencies(deps []*R3DependencyMetadata, injectFn *output.ExternalReference) []output.OutputExpression {
	result := make([]output.OutputExpression, len(deps))
	for i, dep := range deps {
		result[i] = compileInjectDependency(dep, injectFn)
	}
	return result
}

func compileInjectDependency(dep *R3DependencyMetadata, injectFn *output.ExternalReference) output.OutputExpression {
	switch dep.Resolved {
	case R3ResolvedDependencyTypeToken:
		flags := core.InjectFlagsDefault
		if dep.Self {
			flags |= core.InjectFlagsSelf
		}
		if dep.SkipSelf {
			flags |= core.InjectFlagsSkipSelf
		}
		if dep.Host {
			flags |= core.InjectFlagsHost
		}
		if dep.Optional {
			flags |= core.InjectFlagsOptional
		}
		injectArgs := []output.OutputExpression{dep.Token}
		if flags != core.InjectFlagsDefault {
			injectArgs = append(injectArgs, output.Literal(int(flags)))
		}
		return output.CallImport(injectFn, injectArgs...)
	case R3ResolvedDependencyTypeAttribute:
		return output.CallImport(r3_identifiers.InjectAttribute, dep.Token)
	default:
		panic(fmt.Sprintf("unknown resolved dependency type %d", dep.Resolved))
	}
}
