package core

// ViewEncapsulation represents the encapsulation strategy for component styles
type ViewEncapsulation int

const (
	ViewEncapsulationEmulated ViewEncapsulation = iota
	// Historically the 1 value was for Native encapsulation which has been removed.
	_
	ViewEncapsulationNone
	ViewEncapsulationShadowDom
)

// ChangeDetectionStrategy represents the change detection strategy
type ChangeDetectionStrategy int

const (
	ChangeDetectionStrategyOnPush ChangeDetectionStrategy = iota
	ChangeDetectionStrategyDefault
)

// SelectorFlags are flags used to generate R3-style CSS Selectors
type SelectorFlags int

const (
	SelectorFlagsNOT       SelectorFlags = 0b0001 // Beginning of a new negative selector
	SelectorFlagsATTRIBUTE SelectorFlags = 0b0010 // Mode for matching attributes
	SelectorFlagsELEMENT   SelectorFlags = 0b0100 // Mode for matching tag names
	SelectorFlagsCLASS     SelectorFlags = 0b1000 // Mode for matching class names
)

// R3CssSelector represents an R3 CSS selector: a flat list of strings
// interleaved with SelectorFlags mode markers.
type R3CssSelector []interface{} // string | SelectorFlags

// R3CssSelectorList represents a list of R3 CSS selectors
type R3CssSelectorList []R3CssSelector

// RenderFlags are flags passed into generated functions to determine which
// blocks (creation or update) should be executed.
type RenderFlags int

const (
	RenderFlagsCreate RenderFlags = 0b01 // Whether to run the creation block
	RenderFlagsUpdate RenderFlags = 0b10 // Whether to run the update block
)

// AttributeMarker is a set of marker values to be used in the attributes arrays
type AttributeMarker int

const (
	AttributeMarkerNamespaceURI AttributeMarker = iota
	AttributeMarkerClasses
	AttributeMarkerStyles
	AttributeMarkerBindings
)

// InjectFlags represents injection flags for dependency injection
type InjectFlags int

const (
	InjectFlagsDefault  InjectFlags = 0
	InjectFlagsHost     InjectFlags = 1 << 0
	InjectFlagsSelf     InjectFlags = 1 << 1
	InjectFlagsSkipSelf InjectFlags = 1 << 2
	InjectFlagsOptional InjectFlags = 1 << 3
)
