package reporting

import "fmt"

// ErrorCode identifies a recoverable configuration error. Codes are stable
// and never renumbered.
type ErrorCode int

const (
	ErrContainerNotSet     ErrorCode = 1
	ErrScaleNotSet         ErrorCode = 2
	ErrIncorrectScaleType  ErrorCode = 5
	ErrEmptyConfig         ErrorCode = 7
	ErrInvalidGeoJSON      ErrorCode = 10
	ErrFeatureNotSupported ErrorCode = 11
	ErrSignalCycle         ErrorCode = 12
)

func (c ErrorCode) describe(args []any) string {
	switch c {
	case ErrContainerNotSet:
		return "Container is not set or can not be properly recognized. Use SetContainer() to set it."
	case ErrScaleNotSet:
		return "Scale is not set. Use SetScale() to set it."
	case ErrIncorrectScaleType:
		return fmt.Sprintf("%v should be only %v type.", arg(args, 0), arg(args, 1))
	case ErrEmptyConfig:
		return "Empty config passed to the loader."
	case ErrInvalidGeoJSON:
		return fmt.Sprintf("Invalid GeoJSON object: %v.", arg(args, 0))
	case ErrFeatureNotSupported:
		return fmt.Sprintf("Feature %q is not supported.", arg(args, 0))
	case ErrSignalCycle:
		return fmt.Sprintf("Signal dispatch exceeded depth %v, listeners form a cycle.", arg(args, 0))
	}
	return "Unknown error."
}

// WarningCode identifies a non-fatal diagnostic.
type WarningCode int

const (
	WarnCantSerializeFunction WarningCode = 8
	WarnDeprecated            WarningCode = 15
	WarnUnsupportedState      WarningCode = 40
	WarnUnsupportedSignal     WarningCode = 41
)

func (c WarningCode) describe(args []any) string {
	switch c {
	case WarnCantSerializeFunction:
		return fmt.Sprintf("We can not serialize '%v' function, please reset it manually.", arg(args, 0))
	case WarnDeprecated:
		return fmt.Sprintf("Method %v is deprecated. Use %v instead.", arg(args, 0), arg(args, 1))
	case WarnUnsupportedState:
		return fmt.Sprintf("%v does not support consistency state %v, it was dropped.", arg(args, 0), arg(args, 1))
	case WarnUnsupportedSignal:
		return fmt.Sprintf("%v does not support signal %v, it was dropped.", arg(args, 0), arg(args, 1))
	}
	return "Unknown warning."
}

// InfoCode identifies an informational message.
type InfoCode int

const (
	InfoRedrawStorm InfoCode = 1
)

func (c InfoCode) describe(args []any) string {
	switch c {
	case InfoRedrawStorm:
		return fmt.Sprintf("%v dispatched %v signals in a single draw, consider suspending signals while configuring.", arg(args, 0), arg(args, 1))
	}
	return "Unknown info."
}

func arg(args []any, i int) any {
	if i < len(args) {
		return args[i]
	}
	return ""
}
