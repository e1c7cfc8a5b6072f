package r3_identifiers

import (
	"ngdef-go/packages/compiler/src/output"
)

var CORE string = "@angular/core"

// Core is the bare module reference
var Core = &output.ExternalReference{Name: nil, ModuleName: &CORE}

// Definition functions
var (
	DefineDirective = &output.ExternalReference{Name: stringPtr("ɵɵdefineDirective"), ModuleName: &CORE}
	DefineComponent = &output.ExternalReference{Name: stringPtr("ɵɵdefineComponent"), ModuleName: &CORE}
)

// Type-side declaration types
var (
	DirectiveDefWithMeta = &output.ExternalReference{Name: stringPtr("ɵɵDirectiveDefWithMeta"), ModuleName: &CORE}
	ComponentDefWithMeta = &output.ExternalReference{Name: stringPtr("ɵɵComponentDefWithMeta"), ModuleName: &CORE}
)

// Query instructions
var (
	Query                = &output.ExternalReference{Name: stringPtr("ɵɵquery"), ModuleName: &CORE}
	RegisterContentQuery = &output.ExternalReference{Name: stringPtr("ɵɵregisterContentQuery"), ModuleName: &CORE}
	QueryRefresh         = &output.ExternalReference{Name: stringPtr("ɵɵqueryRefresh"), ModuleName: &CORE}
	LoadQueryList        = &output.ExternalReference{Name: stringPtr("ɵɵloadQueryList"), ModuleName: &CORE}
	Load                 = &output.ExternalReference{Name: stringPtr("ɵɵload"), ModuleName: &CORE}
)

// Host binding instructions
var (
	AllocHostVars    = &output.ExternalReference{Name: stringPtr("ɵɵallocHostVars"), ModuleName: &CORE}
	ElementHostAttrs = &output.ExternalReference{Name: stringPtr("ɵɵelementHostAttrs"), ModuleName: &CORE}
	Property         = &output.ExternalReference{Name: stringPtr("ɵɵproperty"), ModuleName: &CORE}
	Attribute        = &output.ExternalReference{Name: stringPtr("ɵɵattribute"), ModuleName: &CORE}
	Listener         = &output.ExternalReference{Name: stringPtr("ɵɵlistener"), ModuleName: &CORE}
)

// Styling instructions
var (
	StyleProp = &output.ExternalReference{Name: stringPtr("ɵɵstyleProp"), ModuleName: &CORE}
	ClassProp = &output.ExternalReference{Name: stringPtr("ɵɵclassProp"), ModuleName: &CORE}
	StyleMap  = &output.ExternalReference{Name: stringPtr("ɵɵstyleMap"), ModuleName: &CORE}
	ClassMap  = &output.ExternalReference{Name: stringPtr("ɵɵclassMap"), ModuleName: &CORE}
)

// Dependency injection
var (
	DirectiveInject   = &output.ExternalReference{Name: stringPtr("ɵɵdirectiveInject"), ModuleName: &CORE}
	InjectAttribute   = &output.ExternalReference{Name: stringPtr("ɵɵinjectAttribute"), ModuleName: &CORE}
	Injector          = &output.ExternalReference{Name: stringPtr("INJECTOR"), ModuleName: &CORE}
	ChangeDetectorRef = &output.ExternalReference{Name: stringPtr("ChangeDetectorRef"), ModuleName: &CORE}
	ElementRef        = &output.ExternalReference{Name: stringPtr("ElementRef"), ModuleName: &CORE}
	TemplateRef       = &output.ExternalReference{Name: stringPtr("TemplateRef"), ModuleName: &CORE}
	ViewContainerRef  = &output.ExternalReference{Name: stringPtr("ViewContainerRef"), ModuleName: &CORE}
)

// Features
var (
	ProvidersFeature         = &output.ExternalReference{Name: stringPtr("ɵɵProvidersFeature"), ModuleName: &CORE}
	InheritDefinitionFeature = &output.ExternalReference{Name: stringPtr("ɵɵInheritDefinitionFeature"), ModuleName: &CORE}
	NgOnChangesFeature       = &output.ExternalReference{Name: stringPtr("ɵɵNgOnChangesFeature"), ModuleName: &CORE}
)

// Pure functions for literal factories
var (
	PureFunction0 = &output.ExternalReference{Name: stringPtr("ɵɵpureFunction0"), ModuleName: &CORE}
	PureFunction1 = &output.ExternalReference{Name: stringPtr("ɵɵpureFunction1"), ModuleName: &CORE}
	PureFunction2 = &output.ExternalReference{Name: stringPtr("ɵɵpureFunction2"), ModuleName: &CORE}
	PureFunction3 = &output.ExternalReference{Name: stringPtr("ɵɵpureFunction3"), ModuleName: &CORE}
	PureFunction4 = &output.ExternalReference{Name: stringPtr("ɵɵpureFunction4"), ModuleName: &CORE}
	PureFunction5 = &output.ExternalReference{Name: stringPtr("ɵɵpureFunction5"), ModuleName: &CORE}
	PureFunction6 = &output.ExternalReference{Name: stringPtr("ɵɵpureFunction6"), ModuleName: &CORE}
	PureFunction7 = &output.ExternalReference{Name: stringPtr("ɵɵpureFunction7"), ModuleName: &CORE}
	PureFunction8 = &output.ExternalReference{Name: stringPtr("ɵɵpureFunction8"), ModuleName: &CORE}
	PureFunctionV = &output.ExternalReference{Name: stringPtr("ɵɵpureFunctionV"), ModuleName: &CORE}
)

// Namespaces
var (
	NamespaceHTML = &output.ExternalReference{Name: stringPtr("ɵɵnamespaceHTML"), ModuleName: &CORE}
)

func stringPtr(s string) *string {
	return &s
}
