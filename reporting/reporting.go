// Package reporting is the side channel through which chartparty reports
// configuration errors, warnings and deprecations. Nothing in the draw
// pipeline panics or returns an error for these: the operation is skipped,
// the element stays dirty and the next Draw retries.
package reporting

import (
	"fmt"
	"log/slog"
	"sync/atomic"
)

// Reporter receives diagnostics. Implementations must not panic.
type Reporter interface {
	Error(code ErrorCode, err error, args ...any)
	Warning(code WarningCode, err error, args ...any)
	Info(code InfoCode, args ...any)
}

type logReporter struct{}

func (logReporter) Error(code ErrorCode, err error, args ...any) {
	attrs := []any{slog.Int("code", int(code))}
	if err != nil {
		attrs = append(attrs, slog.Any("err", err))
	}
	Logger().Error(fmt.Sprintf("Error: %d Description: %s", code, code.describe(args)), attrs...)
}

func (logReporter) Warning(code WarningCode, err error, args ...any) {
	attrs := []any{slog.Int("code", int(code))}
	if err != nil {
		attrs = append(attrs, slog.Any("err", err))
	}
	Logger().Warn(fmt.Sprintf("Warning: %d Description: %s", code, code.describe(args)), attrs...)
}

func (logReporter) Info(code InfoCode, args ...any) {
	Logger().Info(fmt.Sprintf("Info: %d Description: %s", code, code.describe(args)), slog.Int("code", int(code)))
}

type reporterBox struct{ r Reporter }

var (
	reporterPtr atomic.Pointer[reporterBox]
	strict      atomic.Bool
)

func init() {
	reporterPtr.Store(&reporterBox{r: logReporter{}})
}

// SetReporter replaces the active reporter and returns a func restoring the
// previous one. Passing nil restores the default slog reporter.
func SetReporter(r Reporter) (restore func()) {
	if r == nil {
		r = logReporter{}
	}
	prev := reporterPtr.Swap(&reporterBox{r: r})
	return func() {
		reporterPtr.Store(prev)
	}
}

// SetStrict turns programmer-misuse checks (unsupported states or signals)
// into reported warnings. Off by default: such bits are silently dropped.
func SetStrict(on bool) {
	strict.Store(on)
}

// Strict reports whether misuse checks are enabled.
func Strict() bool {
	return strict.Load()
}

func Error(code ErrorCode, err error, args ...any) {
	reporterPtr.Load().r.Error(code, err, args...)
}

func Warning(code WarningCode, err error, args ...any) {
	reporterPtr.Load().r.Warning(code, err, args...)
}

func Info(code InfoCode, args ...any) {
	reporterPtr.Load().r.Info(code, args...)
}

// Deprecated reports that old is still honored but replacement should be
// used instead.
func Deprecated(old, replacement string) {
	Warning(WarnDeprecated, nil, old, replacement)
}

// Message renders the human readable description of a code.
func Message(code any, args ...any) string {
	switch c := code.(type) {
	case ErrorCode:
		return c.describe(args)
	case WarningCode:
		return c.describe(args)
	case InfoCode:
		return c.describe(args)
	}
	return ""
}
