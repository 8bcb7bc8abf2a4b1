package lisp

import (
	"fmt"
	"strings"
)

// EvalError is the single error kind produced by this interpreter. There is
// no recoverable-vs-fatal distinction: the first error aborts evaluation.
type EvalError struct {
	Message string
}

func (e *EvalError) Error() string {
	return e.Message
}

// Errorf constructs an *EvalError with a formatted message.
func Errorf(format string, args ...interface{}) *EvalError {
	return &EvalError{Message: fmt.Sprintf(format, args...)}
}

// wrapProcError wraps an error raised inside a builtin as
// "Error in procedure <op>: <msg>". Builtins prefix their own messages
// with "<op>: "; that prefix is dropped here so it does not appear twice.
func wrapProcError(op string, err error) error {
	msg := strings.TrimPrefix(err.Error(), op+": ")
	return Errorf("Error in procedure %s: %s", op, msg)
}
