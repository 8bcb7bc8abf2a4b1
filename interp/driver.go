// Package interp wires the reader and the evaluator together behind the
// single entry point a host embeds. It is a separate package from lisp
// because reader imports lisp to build *lisp.Value results, so lisp
// itself must never import reader.
package interp

import (
	"strings"

	"github.com/apavazza/golisp/lisp"
	"github.com/apavazza/golisp/reader"
)

// InputProvider supplies one line of host input per call to the Lisp
// builtin read-line. ok is false once no more input is available.
type InputProvider func() (line string, ok bool)

// Evaluate lexes and reads program one top-level form at a time,
// evaluating each in turn in one fresh root environment, and returns the
// accumulated output buffer joined by newlines. A single error aborts
// evaluation and discards whatever output had been buffered.
func Evaluate(program string, input InputProvider) (string, error) {
	r, err := reader.New(program)
	if err != nil {
		return "", lisp.Errorf("%s", err.Error())
	}
	if r.AtEOF() {
		return "", nil
	}

	env := lisp.NewRootEnv()
	output := make([]string, 0)
	if input != nil {
		env.SetIO(&output, func() (string, bool) { return input() })
	} else {
		env.SetIO(&output, nil)
	}

	for {
		form, err := r.Read()
		if err != nil {
			return "", lisp.Errorf("%s", err.Error())
		}
		if form == nil {
			break
		}
		if _, err := lisp.Eval(env, form); err != nil {
			return "", err
		}
	}
	return strings.Join(output, "\n"), nil
}
