package main

import (
	"ngdef-go/packages/compiler/src/output"
	"ngdef-go/packages/compiler/src/render3/view"
)

// emptyTemplateCompiler builds a template function with no instructions.
// Metadata manifests carry no template body, so a component compiles
// against an empty template.
type emptyTemplateCompiler struct{}

func (emptyTemplateCompiler) CompileTemplate(req *view.TemplateCompileRequest) (*view.TemplateCompileResult, error) {
	name := req.Name + "_Template"
	fn := output.Fn(
		[]*output.FnParam{
			output.NewFnParam("rf", output.NumberType),
			output.NewFnParam("ctx", nil),
		},
		nil, output.InferredType, nil, &name)
	return &view.TemplateCompileResult{TemplateFn: fn}, nil
}
