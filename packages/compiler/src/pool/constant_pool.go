package pool

import (
	"fmt"
	"strings"

	"ngdef-go/packages/compiler/src/output"
)

const constantPrefix = "_c"

// UNKNOWN_VALUE_KEY is used to replace dynamic expressions which can't be safely
// converted into a key. E.g. given an expression `{foo: bar()}`, since we don't know what
// the result of `bar` will be, we create a key that looks like `{foo: <unknown>}`. Note
// that we use a variable, rather than something like `null` in order to avoid collisions.
var UNKNOWN_VALUE_KEY = output.Variable("<unknown>")

// DefinitionKind identifies the kind of definition a pooled statement belongs to
type DefinitionKind int

const (
	DefinitionKindInjector DefinitionKind = iota
	DefinitionKindDirective
	DefinitionKindComponent
	DefinitionKindPipe
)

// FixupExpression is a place-holder that allows the node to be replaced when
// the actual node is known. This allows the constant pool to change an
// expression from a direct reference to a constant to a shared constant.
type FixupExpression struct {
	output.ExpressionBase
	original output.OutputExpression
	resolved output.OutputExpression
	shared   bool
}

// NewFixupExpression creates a new FixupExpression
func NewFixupExpression(resolved output.OutputExpression) *FixupExpression {
	return &FixupExpression{
		ExpressionBase: output.ExpressionBase{
			Type:       resolved.GetType(),
			SourceSpan: resolved.GetSourceSpan(),
		},
		original: resolved,
		resolved: resolved,
	}
}

// Resolved returns the expression this fixup currently points at
func (f *FixupExpression) Resolved() output.OutputExpression {
	return f.resolved
}

func (f *FixupExpression) VisitExpression(visitor output.ExpressionVisitor, context interface{}) interface{} {
	return f.resolved.VisitExpression(visitor, context)
}

func (f *FixupExpression) IsEquivalent(e output.OutputExpression) bool {
	if other, ok := e.(*FixupExpression); ok {
		return f.resolved.IsEquivalent(other.resolved)
	}
	return false
}

func (f *FixupExpression) IsConstant() bool {
	return true
}

// Fixup redirects the fixup to the given expression
func (f *FixupExpression) Fixup(expression output.OutputExpression) {
	f.resolved = expression
	f.shared = true
}

// ConstantPool interns literal expressions so that equal literals are
// emitted once and shared by reference.
type ConstantPool struct {
	statements       []output.OutputStatement
	literals         map[string]*FixupExpression
	literalFactories map[string]output.OutputExpression
	claimedNames     map[string]int
}

// NewConstantPool creates a new ConstantPool
func NewConstantPool() *ConstantPool {
	return &ConstantPool{
		literals:         make(map[string]*FixupExpression),
		literalFactories: make(map[string]output.OutputExpression),
		claimedNames:     make(map[string]int),
	}
}

// GetConstLiteral returns a constant literal, potentially shared
func (cp *ConstantPool) GetConstLiteral(literal output.OutputExpression, forceShared bool) output.OutputExpression {
	if isSimpleLiteral(literal) || isFixupExpression(literal) {
		// Do not put simple literals into the constant pool or try to produce a
		// constant for a reference to a constant.
		return literal
	}
	key := KeyOf(literal)
	fixup, exists := cp.literals[key]
	newValue := !exists
	if !exists {
		fixup = NewFixupExpression(literal)
		cp.literals[key] = fixup
	}

	if (!newValue && !fixup.shared) || (newValue && forceShared) {
		// Replace the expression with a variable
		name := cp.freshName()
		cp.statements = append(cp.statements, output.NewDeclareVarStmt(
			name,
			literal,
			output.InferredType,
			output.StmtModifierFinal,
			nil,
		))
		fixup.Fixup(output.Variable(name))
	}

	return fixup
}

// GetLiteralFactory returns a literal factory for an array or map literal:
// a pure function over the non-constant entries, plus those entries as the
// call arguments.
func (cp *ConstantPool) GetLiteralFactory(literal output.OutputExpression) (output.OutputExpression, []output.OutputExpression) {
	if arr, ok := literal.(*output.LiteralArrayExpr); ok {
		argumentsForKey := make([]output.OutputExpression, len(arr.Entries))
		for i, e := range arr.Entries {
			if e.IsConstant() {
				argumentsForKey[i] = e
			} else {
				argumentsForKey[i] = UNKNOWN_VALUE_KEY
			}
		}
		key := KeyOf(output.LiteralArr(argumentsForKey))
		return cp.getLiteralFactory(key, arr.Entries, func(entries []output.OutputExpression) output.OutputExpression {
			return output.LiteralArr(entries)
		})
	}
	if m, ok := literal.(*output.LiteralMapExpr); ok {
		keyEntries := make([]*output.LiteralMapEntry, len(m.Entries))
		values := make([]output.OutputExpression, len(m.Entries))
		for i, e := range m.Entries {
			value := e.Value
			if !value.IsConstant() {
				value = UNKNOWN_VALUE_KEY
			}
			keyEntries[i] = output.NewLiteralMapEntry(e.Key, value, e.Quoted)
			values[i] = m.Entries[i].Value
		}
		key := KeyOf(output.LiteralMap(keyEntries))
		return cp.getLiteralFactory(key, values, func(entries []output.OutputExpression) output.OutputExpression {
			mapEntries := make([]*output.LiteralMapEntry, len(entries))
			for i, value := range entries {
				mapEntries[i] = output.NewLiteralMapEntry(m.Entries[i].Key, value, m.Entries[i].Quoted)
			}
			return output.LiteralMap(mapEntries)
		})
	}
	panic(fmt.Sprintf("GetLiteralFactory does not handle expressions of type %T", literal))
}

func (cp *ConstantPool) getLiteralFactory(
	key string,
	values []output.OutputExpression,
	resultMap func([]output.OutputExpression) output.OutputExpression,
) (output.OutputExpression, []output.OutputExpression) {
	literalFactory, exists := cp.literalFactories[key]
	var literalFactoryArguments []output.OutputExpression
	for _, e := range values {
		if !e.IsConstant() {
			literalFactoryArguments = append(literalFactoryArguments, e)
		}
	}
	if !exists {
		resultExpressions := make([]output.OutputExpression, len(values))
		for i, e := range values {
			if e.IsConstant() {
				resultExpressions[i] = cp.GetConstLiteral(e, true)
			} else {
				resultExpressions[i] = output.Variable(fmt.Sprintf("a%d", i))
			}
		}
		var parameters []*output.FnParam
		for _, e := range resultExpressions {
			if readVar, ok := e.(*output.ReadVarExpr); ok {
				parameters = append(parameters, output.NewFnParam(readVar.Name, output.DynamicType))
			}
		}
		name := cp.freshName()
		cp.statements = append(cp.statements, output.NewDeclareVarStmt(
			name,
			output.Fn(parameters, []output.OutputStatement{
				output.NewReturnStatement(resultMap(resultExpressions), nil),
			}, output.InferredType, nil, nil),
			output.InferredType,
			output.StmtModifierFinal,
			nil,
		))
		literalFactory = output.Variable(name)
		cp.literalFactories[key] = literalFactory
	}
	return literalFactory, literalFactoryArguments
}

// PropertyNameOf returns the name of the static field carrying the given
// definition kind on a generated partial class.
func (cp *ConstantPool) PropertyNameOf(kind DefinitionKind) string {
	switch kind {
	case DefinitionKindDirective:
		return "ngDirectiveDef"
	case DefinitionKindComponent:
		return "ngComponentDef"
	case DefinitionKindInjector:
		return "ngInjectorDef"
	case DefinitionKindPipe:
		return "ngPipeDef"
	}
	panic(fmt.Sprintf("Unknown definition kind %d", kind))
}

// UniqueName produces a unique name in the context of this pool. The prefix
// should be a constant string, not based on user input, and must not end in
// a digit.
func (cp *ConstantPool) UniqueName(name string) string {
	count := cp.claimedNames[name]
	cp.claimedNames[name] = count + 1
	if count == 0 && !strings.HasPrefix(name, constantPrefix) {
		return name
	}
	return fmt.Sprintf("%s%d", name, count)
}

func (cp *ConstantPool) freshName() string {
	count := cp.claimedNames[constantPrefix]
	cp.claimedNames[constantPrefix] = count + 1
	return fmt.Sprintf("%s%d", constantPrefix, count)
}

// Statements returns all statements in the pool
func (cp *ConstantPool) Statements() []output.OutputStatement {
	return cp.statements
}

// AddStatement adds a statement to the pool
func (cp *ConstantPool) AddStatement(stmt output.OutputStatement) {
	cp.statements = append(cp.statements, stmt)
}

// KeyOf produces a lookup key for the given expression. Dynamic expression
// kinds are rejected: only literal shapes participate in interning.
func KeyOf(expr output.OutputExpression) string {
	switch e := expr.(type) {
	case *output.LiteralExpr:
		if str, ok := e.Value.(string); ok {
			return fmt.Sprintf("%q", str)
		}
		return fmt.Sprintf("%v", e.Value)
	case *output.LiteralArrayExpr:
		entries := make([]string, len(e.Entries))
		for i, entry := range e.Entries {
			entries[i] = KeyOf(entry)
		}
		return "[" + strings.Join(entries, ",") + "]"
	case *output.LiteralMapExpr:
		entries := make([]string, len(e.Entries))
		for i, entry := range e.Entries {
			key := entry.Key
			if entry.Quoted {
				key = fmt.Sprintf("%q", key)
			}
			entries[i] = key + ":" + KeyOf(entry.Value)
		}
		return "{" + strings.Join(entries, ",") + "}"
	case *output.ExternalExpr:
		moduleName := "null"
		if e.Value.ModuleName != nil {
			moduleName = fmt.Sprintf("%q", *e.Value.ModuleName)
		}
		name := "null"
		if e.Value.Name != nil {
			name = fmt.Sprintf("%q", *e.Value.Name)
		}
		return fmt.Sprintf("import(%s, %s)", moduleName, name)
	case *output.ReadVarExpr:
		return "read(" + e.Name + ")"
	case *FixupExpression:
		return KeyOf(e.original)
	default:
		panic(fmt.Sprintf("KeyOf does not handle expressions of type %T", expr))
	}
}

func isSimpleLiteral(expr output.OutputExpression) bool {
	_, ok := expr.(*output.LiteralExpr)
	return ok
}

func isFixupExpression(expr output.OutputExpression) bool {
	_, ok := expr.(*FixupExpression)
	return ok
}
