package render3

import (
	"ngdef-go/packages/compiler/src/output"
)

// TypeWithParameters creates an ExpressionType with the given number of
// generic parameters, each typed dynamic.
func TypeWithParameters(typ output.OutputExpression, numParams int) output.Type {
	if numParams == 0 {
		return output.NewExpressionType(typ, output.TypeModifierNone, nil)
	}
	params := make([]output.Type, numParams)
	for i := 0; i < numParams; i++ {
		params[i] = output.DynamicType
	}
	return output.NewExpressionType(typ, output.TypeModifierNone, params)
}

// R3Reference is a reference to a type, carried both as a value expression
// and as a type expression.
type R3Reference struct {
	Value output.OutputExpression
	Type  output.OutputExpression
}

// WrapReference wraps a node in an R3Reference
func WrapReference(value interface{}) R3Reference {
	wrapped := output.NewWrappedNodeExpr(value, nil, nil)
	return R3Reference{Value: wrapped, Type: wrapped}
}

const animateSymbolPrefix = "@"

// PrepareSyntheticPropertyName builds the runtime name of an animation
// host property binding.
func PrepareSyntheticPropertyName(name string) string {
	return animateSymbolPrefix + name
}

// PrepareSyntheticListenerName builds the runtime name of an animation
// host listener binding.
func PrepareSyntheticListenerName(name, phase string) string {
	return animateSymbolPrefix + name + "." + phase
}

// PrepareSyntheticListenerFunctionName builds the generated handler name of
// an animation host listener.
func PrepareSyntheticListenerFunctionName(name, phase string) string {
	return "animation_" + name + "_" + phase
}
