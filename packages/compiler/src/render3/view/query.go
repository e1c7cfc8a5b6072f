package view

import (
	"errors"
	"strings"

	"ngdef-go/packages/compiler/src/core"
	"ngdef-go/packages/compiler/src/output"
	"ngdef-go/packages/compiler/src/pool"
	"ngdef-go/packages/compiler/src/render3/r3_identifiers"
)

// getQueryPredicate resolves a query predicate into an expression: string
// selectors become a shared pooled literal array (splitting on commas), a
// type reference passes through unchanged.
func getQueryPredicate(query *R3QueryMetadata, constantPool *pool.ConstantPool) (output.OutputExpression, error) {
	switch predicate := query.Predicate.(type) {
	case []string:
		var selectors []output.OutputExpression
		for _, selector := range predicate {
			for _, token := range strings.Split(selector, ",") {
				selectors = append(selectors, output.Literal(strings.TrimSpace(token)))
			}
		}
		return constantPool.GetConstLiteral(output.LiteralArr(selectors), true), nil
	case output.OutputExpression:
		return predicate, nil
	default:
		return nil, errors.New("unexpected query form")
	}
}

// createQueryDefinition builds a query(idx, predicate, descendants, read?)
// call. A nil idx emits the null literal, used by content queries whose
// index arrives at runtime.
func createQueryDefinition(query *R3QueryMetadata, constantPool *pool.ConstantPool, idx *int) (output.OutputExpression, error) {
	predicate, err := getQueryPredicate(query, constantPool)
	if err != nil {
		return nil, err
	}
	var idxLiteral output.OutputExpression = output.Literal(nil)
	if idx != nil {
		idxLiteral = output.Literal(*idx)
	}
	parameters := []output.OutputExpression{
		idxLiteral, predicate, output.Literal(query.Descendants),
	}
	if query.Read != nil {
		parameters = append(parameters, query.Read)
	}
	return output.CallImport(r3_identifiers.Query, parameters...), nil
}

// createContentQueriesFunction builds the function registering each content
// query of a directive, parameterized by the directive's runtime index:
//
//	function Name_ContentQueries(dirIndex) {
//	  registerContentQuery(query(null, SomeDir, true), dirIndex);
//	}
//
// Returns nil when the directive declares no content queries.
func createContentQueriesFunction(meta *R3DirectiveMetadata, constantPool *pool.ConstantPool) (output.OutputExpression, error) {
	if len(meta.Queries) == 0 {
		return nil, nil
	}
	statements := make([]output.OutputStatement, 0, len(meta.Queries))
	for _, query := range meta.Queries {
		queryDefinition, err := createQueryDefinition(query, constantPool, nil)
		if err != nil {
			return nil, err
		}
		statements = append(statements, output.ToStmt(output.CallImport(
			r3_identifiers.RegisterContentQuery, queryDefinition, output.Variable("dirIndex"))))
	}
	fnName := meta.Name + "_ContentQueries"
	return output.Fn(
		[]*output.FnParam{output.NewFnParam("dirIndex", output.NumberType)},
		statements, output.InferredType, nil, &fnName), nil
}

// createContentQueriesRefreshFunction builds the per-instance refresh
// function for the content queries of a directive:
//
//	function Name_ContentQueriesRefresh(dirIndex, queryStartIndex) {
//	  const instance = load(dirIndex);
//	  var _t;
//	  (queryRefresh((_t = loadQueryList(queryStartIndex))) && (instance.prop = _t.first));
//	}
//
// Query lists live at consecutive slots starting at queryStartIndex, in
// declaration order. Returns nil when there are no content queries.
func createContentQueriesRefreshFunction(meta *R3DirectiveMetadata) output.OutputExpression {
	if len(meta.Queries) == 0 {
		return nil
	}
	var statements []output.OutputStatement
	instance := output.Variable("instance")
	temporary := TemporaryAllocator(&statements, TEMPORARY_NAME)

	statements = append(statements, output.NewDeclareVarStmt(
		instance.Name,
		output.CallImport(r3_identifiers.Load, output.Variable("dirIndex")),
		output.InferredType, output.StmtModifierFinal, nil))

	for idx, query := range meta.Queries {
		var offset output.OutputExpression = output.Variable("queryStartIndex")
		if idx > 0 {
			offset = output.Plus(offset, output.Literal(idx))
		}
		assignToTemporary := temporary().Set(output.CallImport(r3_identifiers.LoadQueryList, offset))
		callQueryRefresh := output.CallImport(r3_identifiers.QueryRefresh, assignToTemporary)

		var result output.OutputExpression = temporary()
		if query.First {
			result = output.Prop(temporary(), "first")
		}
		updateDirective := output.Prop(instance, query.PropertyName).Set(result)

		statements = append(statements, output.ToStmt(output.And(callQueryRefresh, updateDirective)))
	}

	fnName := meta.Name + "_ContentQueriesRefresh"
	return output.Fn(
		[]*output.FnParam{
			output.NewFnParam("dirIndex", output.NumberType),
			output.NewFnParam("queryStartIndex", output.NumberType),
		},
		statements, output.InferredType, nil, &fnName)
}

// createViewQueriesFunction builds the single render-flag gated function
// serving the view queries of a component. Each query gets the positional
// slot matching its declaration index.
func createViewQueriesFunction(meta *R3ComponentMetadata, constantPool *pool.ConstantPool) (output.OutputExpression, error) {
	var createStatements []output.OutputStatement
	var updateStatements []output.OutputStatement
	temporary := TemporaryAllocator(&updateStatements, TEMPORARY_NAME)

	for i, query := range meta.ViewQueries {
		idx := i
		queryDefinition, err := createQueryDefinition(query, constantPool, &idx)
		if err != nil {
			return nil, err
		}
		createStatements = append(createStatements, output.ToStmt(queryDefinition))

		getQueryList := output.CallImport(r3_identifiers.Load, output.Literal(i))
		refresh := output.CallImport(r3_identifiers.QueryRefresh, temporary().Set(getQueryList))
		var result output.OutputExpression = temporary()
		if query.First {
			result = output.Prop(temporary(), "first")
		}
		updateDirective := output.Prop(output.Variable(CONTEXT_NAME), query.PropertyName).Set(result)
		updateStatements = append(updateStatements, output.ToStmt(output.And(refresh, updateDirective)))
	}

	fnName := meta.Name + "_Query"
	return output.Fn(
		[]*output.FnParam{
			output.NewFnParam(RENDER_FLAGS, output.NumberType),
			output.NewFnParam(CONTEXT_NAME, nil),
		},
		[]output.OutputStatement{
			renderFlagCheckIfStmt(core.RenderFlagsCreate, createStatements),
			renderFlagCheckIfStmt(core.RenderFlagsUpdate, updateStatements),
		},
		output.InferredType, nil, &fnName), nil
}
