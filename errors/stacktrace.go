package errors

import (
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pkg/errors"
)

// stackTracer from pkg/errors
type stackTracer interface {
	error
	StackTrace() errors.StackTrace
}

// stackTrace returns the first found stack trace frame carried by given error
// or any wrapped error. It returns nil if no stack trace is found.
func stackTrace(err error) errors.StackTrace {
	for {
		if st, ok := err.(stackTracer); ok {
			return st.StackTrace()
		}
		if c, ok := err.(causer); ok {
			err = c.Cause()
		} else {
			return nil
		}
	}
}

// internalPkg prefixes the names of functions declared by this package.
const internalPkg = "github.com/iov-one/idm/errors."

func trimInternal(st errors.StackTrace) errors.StackTrace {
	// trim our internal parts here
	// manual error creation, or runtime for caught panics
	for len(st) > 0 && isInternalFrame(st[0]) {
		st = st[1:]
	}
	// trim out outer wrappers (runtime)
	for l := len(st) - 1; l > 0 && isRuntimeFrame(st[l]); l-- {
		st = st[:l]
	}
	return st
}

// isInternalFrame matches frames of the functions creating errors and of
// the runtime, which is added on panics. Frames are matched by function name
// so the location of the checkout does not matter. Tests of this package
// are not internal.
func isInternalFrame(f errors.Frame) bool {
	name, file := funcName(f)
	if strings.HasPrefix(name, "runtime.") {
		return true
	}
	return strings.HasPrefix(name, internalPkg) && !strings.HasSuffix(file, "_test.go")
}

func isRuntimeFrame(f errors.Frame) bool {
	name, _ := funcName(f)
	return strings.HasPrefix(name, "runtime.") || name == "testing.tRunner"
}

func funcName(f errors.Frame) (string, string) {
	pc := uintptr(f) - 1
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "unknown", ""
	}
	file, _ := fn.FileLine(pc)
	return fn.Name(), file
}

func fileLine(f errors.Frame) (string, int) {
	// this looks a bit like magic, but follows
	// https://github.com/pkg/errors/blob/master/stack.go#L14-L27
	// as this is where we get the Frames
	pc := uintptr(f) - 1
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "unknown", 0
	}
	return fn.FileLine(pc)
}

func writeSimpleFrame(s io.Writer, f errors.Frame) {
	file, line := fileLine(f)
	// keep the package directory and the file name only
	file = filepath.Join(filepath.Base(filepath.Dir(file)), filepath.Base(file))
	fmt.Fprintf(s, " [%s:%d]", file, line)
}

// Format works like pkg/errors, with additions.
// %s is just the error message
// %+v is the full stack trace
// %v appends a compressed [filename:line] where the error
//    was created
func (e *wrappedError) Format(s fmt.State, verb rune) {
	// normal output here....
	if verb != 'v' {
		fmt.Fprint(s, e.Error())
		return
	}
	// work with the stack trace... whole or part
	stack := trimInternal(stackTrace(e))
	if s.Flag('+') {
		fmt.Fprintf(s, "%+v\n", stack)
		fmt.Fprint(s, e.Error())
	} else {
		fmt.Fprint(s, e.Error())
		if len(stack) > 0 {
			writeSimpleFrame(s, stack[0])
		}
	}
}
