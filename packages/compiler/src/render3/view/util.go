package view

import (
	"regexp"
	"sort"

	"ngdef-go/packages/compiler/src/core"
	"ngdef-go/packages/compiler/src/output"
)

// Name of the temporary to use during data binding
const TEMPORARY_NAME = "_t"

// Name of the context parameter passed into a template function
const CONTEXT_NAME = "ctx"

// Name of the RenderFlag passed into a template function
const RENDER_FLAGS = "rf"

// Object literal keys containing these characters must be quoted
var unsafeObjectKeyNameRegexp = regexp.MustCompile(`[-.]`)

// TemporaryAllocator creates an allocator for a temporary variable. A
// variable declaration is added to the statements the first time the
// allocator is invoked.
func TemporaryAllocator(statements *[]output.OutputStatement, name string) func() *output.ReadVarExpr {
	var temp *output.ReadVarExpr
	return func() *output.ReadVarExpr {
		if temp == nil {
			*statements = append(*statements, output.NewDeclareVarStmt(
				name, nil, output.DynamicType, output.StmtModifierNone, nil))
			temp = output.Variable(name)
		}
		return temp
	}
}

// AsLiteral converts a native value into an output literal expression,
// recursing into slices. Expressions pass through unchanged.
func AsLiteral(value interface{}) output.OutputExpression {
	switch v := value.(type) {
	case output.OutputExpression:
		return v
	case []interface{}:
		entries := make([]output.OutputExpression, len(v))
		for i, entry := range v {
			entries[i] = AsLiteral(entry)
		}
		return output.LiteralArr(entries)
	case []string:
		entries := make([]output.OutputExpression, len(v))
		for i, entry := range v {
			entries[i] = output.Literal(entry)
		}
		return output.LiteralArr(entries)
	case core.R3CssSelectorList:
		entries := make([]output.OutputExpression, len(v))
		for i, entry := range v {
			entries[i] = AsLiteral(entry)
		}
		return output.LiteralArr(entries)
	case core.R3CssSelector:
		return AsLiteral([]interface{}(v))
	case core.SelectorFlags:
		return output.Literal(int(v))
	default:
		return output.Literal(v)
	}
}

// ConditionallyCreateMapObjectLiteral builds an object literal for a
// declared-to-public name map, or nil when the map is empty. With
// keepDeclared, entries whose public name differs from the declared name
// become a [publicName, declaredName] tuple so the declared name survives
// minification.
func ConditionallyCreateMapObjectLiteral(m map[string]string, keepDeclared bool) output.OutputExpression {
	if len(m) == 0 {
		return nil
	}
	declaredNames := make([]string, 0, len(m))
	for declaredName := range m {
		declaredNames = append(declaredNames, declaredName)
	}
	sort.Strings(declaredNames)

	entries := make([]*output.LiteralMapEntry, 0, len(m))
	for _, declaredName := range declaredNames {
		publicName := m[declaredName]
		var value output.OutputExpression
		if keepDeclared && publicName != declaredName {
			value = output.LiteralArr([]output.OutputExpression{
				output.Literal(publicName), output.Literal(declaredName),
			})
		} else {
			value = output.Literal(publicName)
		}
		entries = append(entries, output.NewLiteralMapEntry(
			declaredName, value, unsafeObjectKeyNameRegexp.MatchString(declaredName)))
	}
	return output.LiteralMap(entries)
}

// DefinitionMap collects the fields of a definition object literal in
// insertion order. Nil values are skipped so optional fields are simply
// absent from the emitted literal.
type DefinitionMap struct {
	values []*output.LiteralMapEntry
}

// NewDefinitionMap creates an empty DefinitionMap
func NewDefinitionMap() *DefinitionMap {
	return &DefinitionMap{}
}

// Set appends a field unless the value is nil
func (m *DefinitionMap) Set(key string, value output.OutputExpression) {
	if value == nil {
		return
	}
	m.values = append(m.values, output.NewLiteralMapEntry(key, value, false))
}

// ToLiteralMap converts the collected fields into an object literal
func (m *DefinitionMap) ToLiteralMap() *output.LiteralMapExpr {
	return output.LiteralMap(m.values)
}

// renderFlagCheckIfStmt guards statements so they only run for the given
// render phase: if (rf & flags) { ... }
func renderFlagCheckIfStmt(flags core.RenderFlags, statements []output.OutputStatement) *output.IfStmt {
	check := output.NewBinaryOperatorExpr(
		output.BinaryOperatorBitwiseAnd,
		output.Variable(RENDER_FLAGS), output.Literal(int(flags)), nil, nil)
	return output.NewIfStmt(check, statements, nil, nil)
}
