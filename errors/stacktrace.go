package errors

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// stackTrace returns the first found stack trace frame carried by given error
// or any wrapped error. It returns nil if no stack trace is found.
func stackTrace(err error) errors.StackTrace {
	for {
		if st, ok := err.(stackTracer); ok {
			return st.StackTrace()
		}
		c, ok := err.(causer)
		if !ok {
			return nil
		}
		err = c.Cause()
	}
}

// Format prints the error message and, for %+v, the stack trace of the
// point where the error was first wrapped.
func (e *wrappedError) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			io.WriteString(s, e.Error())
			for _, f := range trimInternal(stackTrace(e)) {
				fmt.Fprintf(s, "\n%+v", f)
			}
			return
		}
		fallthrough
	case 's':
		io.WriteString(s, e.Error())
	case 'q':
		fmt.Fprintf(s, "%q", e.Error())
	}
}

// internalFrames are the functions of this package that create a stack
// trace. They are never interesting to the reader.
var internalFrames = []string{
	"yieldvote/errors.Wrap\n",
	"yieldvote/errors.Wrapf\n",
	"yieldvote/errors.(*Error).New\n",
	"yieldvote/errors.(*Error).Newf\n",
	"runtime.goexit\n",
}

func trimInternal(st errors.StackTrace) errors.StackTrace {
	out := make(errors.StackTrace, 0, len(st))
	for _, f := range st {
		repr := fmt.Sprintf("%+v", f)
		if !isInternal(repr) {
			out = append(out, f)
		}
	}
	return out
}

func isInternal(frame string) bool {
	for _, name := range internalFrames {
		if strings.Contains(frame, name) {
			return true
		}
	}
	return false
}
