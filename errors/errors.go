// Package errors provides structured error handling and leveled logging
// for tlscore. Errors carry the constructing function, an optional inner
// error chain, a severity, and an optional stack trace.
package errors

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync/atomic"
)

const trim = len("github.com/wombelix/tlscore/")

// Severity of an error or log message. Lower value = more severe.
type Severity int32

const (
	SeverityUnknown Severity = 0
	SeverityError   Severity = 1
	SeverityWarning Severity = 2
	SeverityInfo    Severity = 3
	SeverityDebug   Severity = 4
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "Error"
	case SeverityWarning:
		return "Warning"
	case SeverityInfo:
		return "Info"
	case SeverityDebug:
		return "Debug"
	default:
		return "Unknown"
	}
}

var (
	globalLogLevel atomic.Int32
	logWriter      atomic.Value
)

// writerHolder is the single concrete type stored in logWriter.
// atomic.Value panics when consecutive stores carry different concrete
// types, so the writer interface is always boxed in this struct.
type writerHolder struct {
	w io.Writer
}

func init() {
	globalLogLevel.Store(int32(SeverityWarning))
	logWriter.Store(writerHolder{w: os.Stderr})
}

// SetLogLevel sets the minimum severity that will be logged.
func SetLogLevel(s Severity) {
	globalLogLevel.Store(int32(s))
}

// GetLogLevel returns the current log level.
func GetLogLevel() Severity {
	return Severity(globalLogLevel.Load())
}

// SetLogWriter sets the output writer for logs. A nil writer restores
// the default (stderr).
func SetLogWriter(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	logWriter.Store(writerHolder{w: w})
}

// ShouldLog reports whether messages at the given severity are logged.
func ShouldLog(severity Severity) bool {
	return severity <= Severity(globalLogLevel.Load())
}

type hasInnerError interface {
	Unwrap() error
}

type hasSeverity interface {
	Severity() Severity
}

// Error is a structured error with caller context, chaining, and an
// optional stack trace.
type Error struct {
	message  []interface{}
	caller   string
	inner    error
	severity Severity
	stack    []uintptr
}

func (err *Error) Error() string {
	builder := strings.Builder{}
	if len(err.caller) > 0 {
		builder.WriteString(err.caller)
		builder.WriteString(": ")
	}
	builder.WriteString(fmt.Sprint(err.message...))
	if err.inner != nil {
		builder.WriteString(" > ")
		builder.WriteString(err.inner.Error())
	}
	if len(err.stack) > 0 {
		builder.WriteString("\nStack trace:\n")
		frames := runtime.CallersFrames(err.stack)
		frameNum := 0
		for {
			frame, more := frames.Next()
			if frame.Function == "" {
				break
			}
			funcName := frame.Function
			if len(funcName) >= trim {
				funcName = funcName[trim:]
			}
			fileName := frame.File
			if idx := strings.LastIndex(fileName, "/"); idx >= 0 {
				fileName = fileName[idx+1:]
			}
			fmt.Fprintf(&builder, "  #%d %s (%s:%d)\n", frameNum, funcName, fileName, frame.Line)
			frameNum++
			if !more {
				break
			}
		}
	}
	return builder.String()
}

func (err *Error) Unwrap() error {
	if err.inner == nil {
		return nil
	}
	return err.inner
}

// Base sets the inner error.
func (err *Error) Base(e error) *Error {
	err.inner = e
	return err
}

func (err *Error) atSeverity(s Severity) *Error {
	err.severity = s
	return err
}

// Severity returns the error's severity, preferring a more severe
// inner error.
func (err *Error) Severity() Severity {
	if err.inner == nil {
		return err.severity
	}
	if s, ok := err.inner.(hasSeverity); ok {
		if as := s.Severity(); as < err.severity {
			return as
		}
	}
	return err.severity
}

// AtDebug sets the severity to debug.
func (err *Error) AtDebug() *Error {
	return err.atSeverity(SeverityDebug)
}

// AtInfo sets the severity to info.
func (err *Error) AtInfo() *Error {
	return err.atSeverity(SeverityInfo)
}

// AtWarning sets the severity to warning.
func (err *Error) AtWarning() *Error {
	return err.atSeverity(SeverityWarning)
}

// AtError sets the severity to error.
func (err *Error) AtError() *Error {
	return err.atSeverity(SeverityError)
}

// WithStack captures a stack trace for detailed debugging.
func (err *Error) WithStack() *Error {
	const maxDepth = 32
	var pcs [maxDepth]uintptr
	n := runtime.Callers(2, pcs[:])
	if n > 0 {
		err.stack = make([]uintptr, n)
		copy(err.stack, pcs[:n])
	}
	return err
}

// Stack returns the captured stack trace, or nil.
func (err *Error) Stack() []uintptr {
	return err.stack
}

func (err *Error) String() string {
	return err.Error()
}

// New returns a new error with a message formed from the given
// arguments and the calling function recorded as context.
func New(msg ...interface{}) *Error {
	pc, _, _, _ := runtime.Caller(1)
	details := runtime.FuncForPC(pc).Name()
	if len(details) >= trim {
		details = details[trim:]
	}
	return &Error{
		message:  msg,
		severity: SeverityInfo,
		caller:   details,
	}
}

// LogDebug logs a debug message.
func LogDebug(msg ...interface{}) {
	if !DebugLoggingEnabled {
		return
	}
	if !ShouldLog(SeverityDebug) {
		return
	}
	doLog(nil, SeverityDebug, msg...)
}

// LogDebugInner logs a debug message with an inner error.
func LogDebugInner(inner error, msg ...interface{}) {
	if !DebugLoggingEnabled {
		return
	}
	if !ShouldLog(SeverityDebug) {
		return
	}
	doLog(inner, SeverityDebug, msg...)
}

// LogInfo logs an info message.
func LogInfo(msg ...interface{}) {
	if !ShouldLog(SeverityInfo) {
		return
	}
	doLog(nil, SeverityInfo, msg...)
}

// LogWarning logs a warning message.
func LogWarning(msg ...interface{}) {
	if !ShouldLog(SeverityWarning) {
		return
	}
	doLog(nil, SeverityWarning, msg...)
}

// LogWarningInner logs a warning message with an inner error.
func LogWarningInner(inner error, msg ...interface{}) {
	if !ShouldLog(SeverityWarning) {
		return
	}
	doLog(inner, SeverityWarning, msg...)
}

// LogError logs an error message.
func LogError(msg ...interface{}) {
	if !ShouldLog(SeverityError) {
		return
	}
	doLog(nil, SeverityError, msg...)
}

func doLog(inner error, severity Severity, msg ...interface{}) {
	pc, _, _, _ := runtime.Caller(2)
	details := runtime.FuncForPC(pc).Name()
	if len(details) >= trim {
		details = details[trim:]
	}

	// Warnings and errors carry a stack trace.
	var stack []uintptr
	if severity <= SeverityWarning {
		const maxDepth = 32
		var pcs [maxDepth]uintptr
		n := runtime.Callers(3, pcs[:])
		if n > 0 {
			stack = make([]uintptr, n)
			copy(stack, pcs[:n])
		}
	}

	err := &Error{
		message:  msg,
		severity: severity,
		caller:   details,
		inner:    inner,
		stack:    stack,
	}

	w := logWriter.Load().(writerHolder).w
	fmt.Fprintf(w, "[%s] %s\n", severity.String(), err.String())
}

// Cause returns the root cause of this error by unwrapping the chain.
func Cause(err error) error {
	if err == nil {
		return nil
	}
	for {
		var innerErr hasInnerError
		if stderrors.As(err, &innerErr) {
			unwrapped := innerErr.Unwrap()
			if unwrapped == nil {
				break
			}
			err = unwrapped
		} else {
			break
		}
	}
	return err
}

// GetSeverity returns the actual severity of the error, including
// inner errors.
func GetSeverity(err error) Severity {
	var s hasSeverity
	if stderrors.As(err, &s) {
		return s.Severity()
	}
	return SeverityInfo
}
