package view

import (
	"regexp"
	"sort"
	"strings"

	"ngdef-go/packages/compiler/src/converter"
	"ngdef-go/packages/compiler/src/core"
	"ngdef-go/packages/compiler/src/expressionparser"
	"ngdef-go/packages/compiler/src/output"
	"ngdef-go/packages/compiler/src/pool"
	"ngdef-go/packages/compiler/src/render3"
	"ngdef-go/packages/compiler/src/render3/r3_identifiers"
)

// Matches the structured host binding key forms: [property], (event) and
// @animationTrigger.
var hostBindingRegexp = regexp.MustCompile(`^(?:\[([^\]]+)\]|\(([^)]+)\)|@([-\w]+))$`)

// ParsedHostBindings holds the four disjoint classification buckets of a
// host binding map.
type ParsedHostBindings struct {
	Attributes map[string]string
	Listeners  map[string]string
	Properties map[string]string
	Animations map[string]string
}

// ParseHostBindings classifies a flat host binding map by key shape:
// [name] is a property binding, (name) an event listener, @name an
// animation trigger and everything else a static attribute.
func ParseHostBindings(host map[string]string) *ParsedHostBindings {
	parsed := &ParsedHostBindings{
		Attributes: map[string]string{},
		Listeners:  map[string]string{},
		Properties: map[string]string{},
		Animations: map[string]string{},
	}
	for key, value := range host {
		matches := hostBindingRegexp.FindStringSubmatch(key)
		switch {
		case matches == nil:
			parsed.Attributes[key] = value
		case matches[1] != "":
			parsed.Properties[matches[1]] = value
		case matches[2] != "":
			parsed.Listeners[matches[2]] = value
		default:
			parsed.Animations[matches[3]] = value
		}
	}
	return parsed
}

const bindingIndex = "b"

// hostBindingsCompiler accumulates the create and update blocks of a host
// bindings function for one directive.
type hostBindingsCompiler struct {
	meta         *R3DirectiveMetadata
	constantPool *pool.ConstantPool
	styleBuilder *StylingBuilder

	createStatements []output.OutputStatement
	updateStatements []output.OutputStatement

	totalHostVarsCount int
	err                error
}

// createHostBindingsFunction builds the (rf, ctx, elIndex) function holding
// all host binding instructions of a directive, or nil when there is
// nothing to emit.
func createHostBindingsFunction(
	meta *R3DirectiveMetadata,
	bindingParser BindingParser,
	constantPool *pool.ConstantPool,
	hostVarsCount int,
) (output.OutputExpression, error) {
	c := &hostBindingsCompiler{
		meta:               meta,
		constantPool:       constantPool,
		styleBuilder:       NewStylingBuilder(),
		totalHostVarsCount: hostVarsCount,
	}

	sourceSpan := meta.TypeSourceSpan

	eventBindings, err := bindingParser.CreateDirectiveHostEventAsts(meta.Host.Listeners, sourceSpan)
	if err != nil {
		return nil, err
	}
	for _, binding := range eventBindings {
		c.addListener(binding)
	}

	bindings, err := bindingParser.CreateBoundHostProperties(meta.Host.Properties, meta.Host.Animations, sourceSpan)
	if err != nil {
		return nil, err
	}
	for _, binding := range bindings {
		if c.styleBuilder.RegisterInputBasedOnName(binding.Name, binding.Expression, binding.SourceSpan) {
			continue
		}
		c.addPropertyBinding(binding)
	}

	for name, value := range meta.Host.Attributes {
		switch name {
		case "style":
			c.styleBuilder.RegisterStyleAttr(value)
		case "class":
			c.styleBuilder.RegisterClassAttr(value)
		}
	}
	c.addStylingInstructions()

	if c.err != nil {
		return nil, c.err
	}

	if c.totalHostVarsCount > 0 {
		alloc := output.ToStmt(output.CallImport(
			r3_identifiers.AllocHostVars, output.Literal(c.totalHostVarsCount)))
		c.createStatements = append([]output.OutputStatement{alloc}, c.createStatements...)
	}

	if len(c.createStatements) == 0 && len(c.updateStatements) == 0 {
		return nil, nil
	}

	var statements []output.OutputStatement
	if len(c.createStatements) > 0 {
		statements = append(statements, renderFlagCheckIfStmt(core.RenderFlagsCreate, c.createStatements))
	}
	if len(c.updateStatements) > 0 {
		statements = append(statements, renderFlagCheckIfStmt(core.RenderFlagsUpdate, c.updateStatements))
	}
	fnName := meta.Name + "_HostBindings"
	return output.Fn(
		[]*output.FnParam{
			output.NewFnParam(RENDER_FLAGS, output.NumberType),
			output.NewFnParam(CONTEXT_NAME, nil),
			output.NewFnParam("elIndex", output.NumberType),
		},
		statements, output.InferredType, nil, &fnName), nil
}

// addListener emits a listener registration into the create block:
// listener('event', function Name_event_HostBindingHandler($event) {...})
func (c *hostBindingsCompiler) addListener(binding *expressionparser.ParsedEvent) {
	if c.err != nil {
		return
	}
	bindingExpr, err := converter.ConvertActionBinding(
		nil, output.Variable(CONTEXT_NAME), binding.Handler, bindingIndex)
	if err != nil {
		c.err = err
		return
	}

	statements := returnPreventDefault(bindingExpr)

	eventName := binding.Name
	fnNamePart := sanitizeIdentifier(binding.Name)
	if binding.Type == expressionparser.ParsedEventTypeAnimation {
		phase := ""
		if binding.TargetOrPhase != nil {
			phase = *binding.TargetOrPhase
		}
		eventName = render3.PrepareSyntheticListenerName(binding.Name, phase)
		fnNamePart = render3.PrepareSyntheticListenerFunctionName(sanitizeIdentifier(binding.Name), phase)
	}
	handlerName := c.meta.Name + "_" + fnNamePart + "_HostBindingHandler"
	handler := output.Fn(
		[]*output.FnParam{output.NewFnParam("$event", output.DynamicType)},
		statements, output.InferredType, nil, &handlerName)

	c.createStatements = append(c.createStatements, output.ToStmt(
		output.CallImport(r3_identifiers.Listener, output.Literal(eventName), handler)))
}

// addPropertyBinding emits a property or attribute instruction into the
// update block, lowering the bound expression first.
func (c *hostBindingsCompiler) addPropertyBinding(binding *expressionparser.ParsedProperty) {
	if c.err != nil {
		return
	}
	value := c.convertValue(binding.Expression)
	if c.err != nil {
		return
	}

	bindingName := binding.Name
	instruction := r3_identifiers.Property
	if name, isAttr := strings.CutPrefix(binding.Name, "attr."); isAttr {
		bindingName = name
		instruction = r3_identifiers.Attribute
	} else if binding.IsAnimation {
		bindingName = render3.PrepareSyntheticPropertyName(binding.Name)
	}

	c.updateStatements = append(c.updateStatements, output.ToStmt(
		output.CallImport(instruction, output.Literal(bindingName), value)))
}

// addStylingInstructions appends the styling create and update instructions
// and accounts for their binding slots.
func (c *hostBindingsCompiler) addStylingInstructions() {
	if c.err != nil {
		return
	}
	attrNames := make([]string, 0, len(c.meta.Host.Attributes))
	for name := range c.meta.Host.Attributes {
		if name != "style" && name != "class" {
			attrNames = append(attrNames, name)
		}
	}
	sort.Strings(attrNames)
	var staticAttrs []output.OutputExpression
	for _, name := range attrNames {
		staticAttrs = append(staticAttrs,
			output.Literal(name), output.Literal(c.meta.Host.Attributes[name]))
	}

	if instruction := c.styleBuilder.BuildHostAttrsInstruction(
		c.meta.TypeSourceSpan, staticAttrs, c.constantPool); instruction != nil {
		c.createStatements = append(c.createStatements, c.stylingStmt(instruction))
	}
	for _, instruction := range c.styleBuilder.BuildUpdateLevelInstructions() {
		c.totalHostVarsCount += instruction.AllocateBindingSlots
		c.updateStatements = append(c.updateStatements, c.stylingStmt(instruction))
	}
}

func (c *hostBindingsCompiler) stylingStmt(instruction *StylingInstruction) output.OutputStatement {
	params := instruction.BuildParams(c.convertValue)
	return output.ToStmt(output.CallImport(instruction.Reference, params...))
}

// convertValue lowers a bound value expression, pushing any supporting
// statements into the update block. Literal arrays and maps desugar into
// constant pool literal factories applied through pure function calls.
func (c *hostBindingsCompiler) convertValue(value *expressionparser.ASTWithSource) output.OutputExpression {
	if c.err != nil {
		return output.Literal(nil)
	}
	bindingExpr, err := converter.ConvertPropertyBinding(
		nil, output.Variable(CONTEXT_NAME), value, bindingIndex,
		converter.BindingFormTrySimple, c)
	if err != nil {
		c.err = err
		return output.Literal(nil)
	}
	c.updateStatements = append(c.updateStatements, bindingExpr.Stmts...)
	return bindingExpr.CurrValExpr
}

// allocatePureFunctionSlots reserves update slots for a pure function call
// and returns its starting slot offset.
func (c *hostBindingsCompiler) allocatePureFunctionSlots(numSlots int) int {
	offset := c.totalHostVarsCount
	c.totalHostVarsCount += numSlots
	return offset
}

// ConvertLiteralArray lowers a literal array into a pure function call over
// a pooled literal factory.
func (c *hostBindingsCompiler) ConvertLiteralArray(arr *output.LiteralArrayExpr) output.OutputExpression {
	factory, args := c.constantPool.GetLiteralFactory(arr)
	return c.pureFunctionCall(factory, args)
}

// ConvertLiteralMap lowers a literal map the same way.
func (c *hostBindingsCompiler) ConvertLiteralMap(m *output.LiteralMapExpr) output.OutputExpression {
	factory, args := c.constantPool.GetLiteralFactory(m)
	return c.pureFunctionCall(factory, args)
}

var pureFunctionIdentifiers = []*output.ExternalReference{
	r3_identifiers.PureFunction0,
	r3_identifiers.PureFunction1,
	r3_identifiers.PureFunction2,
	r3_identifiers.PureFunction3,
	r3_identifiers.PureFunction4,
	r3_identifiers.PureFunction5,
	r3_identifiers.PureFunction6,
	r3_identifiers.PureFunction7,
	r3_identifiers.PureFunction8,
}

func (c *hostBindingsCompiler) pureFunctionCall(factory output.OutputExpression, args []output.OutputExpression) output.OutputExpression {
	slot := c.allocatePureFunctionSlots(1 + len(args))
	if len(args) < len(pureFunctionIdentifiers) {
		callArgs := append([]output.OutputExpression{output.Literal(slot), factory}, args...)
		return output.CallImport(pureFunctionIdentifiers[len(args)], callArgs...)
	}
	return output.CallImport(r3_identifiers.PureFunctionV,
		output.Literal(slot), factory, output.LiteralArr(args))
}

// returnPreventDefault rewrites the trailing allow-default declaration of a
// lowered action into a return statement.
func returnPreventDefault(action *converter.ConvertActionBindingResult) []output.OutputStatement {
	statements := action.Stmts
	if action.AllowDefault == nil || len(statements) == 0 {
		return statements
	}
	last := len(statements) - 1
	if decl, ok := statements[last].(*output.DeclareVarStmt); ok && decl.Name == action.AllowDefault.Name {
		statements[last] = output.NewReturnStatement(decl.Value, nil)
	}
	return statements
}

var unsafeIdentifierChars = regexp.MustCompile(`[^a-zA-Z0-9_]`)

func sanitizeIdentifier(name string) string {
	return unsafeIdentifierChars.ReplaceAllString(name, "_")
}
