// Package repl implements an interactive read-eval-print loop over a
// persistent root environment. Input that ends inside an unclosed form
// is buffered and the prompt switches to a continuation prompt until the
// form is complete.
package repl

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"github.com/apavazza/golisp/lisp"
	"github.com/apavazza/golisp/reader"
)

// Run starts an interactive session reading from the terminal. The
// session's environment persists across inputs, so defun and setq at the
// prompt stay visible to later inputs. A program that calls read-line
// reads its lines from the same terminal.
func Run(prompt string) {
	env := lisp.NewRootEnv()

	rl, err := readline.New(prompt)
	if err != nil {
		panic(err)
	}
	defer rl.Close()
	contPrompt := strings.Repeat(" ", len(prompt)) // prompt had better be ascii...

	output := make([]string, 0)
	env.SetIO(&output, func() (string, bool) {
		line, err := rl.ReadSlice()
		if err != nil {
			return "", false
		}
		return string(line), true
	})

	var buf []byte
	for {
		var line []byte
		line, err = rl.ReadSlice()
		if err != nil && err != readline.ErrInterrupt {
			break
		}
		if err == readline.ErrInterrupt {
			line = nil
			buf = nil
			rl.SetPrompt(prompt)
		}
		if len(buf) != 0 {
			buf = append(buf, '\n')
			line = append(buf, line...)
			buf = nil
			rl.SetPrompt(prompt)
		}
		if len(line) == 0 {
			continue
		}
		complete := evalInput(env, &output, string(line))
		if !complete {
			buf = line
			rl.SetPrompt(contPrompt)
		}
	}
	if err != io.EOF {
		errln(err)
		return
	}
	errln("done")
}

// evalInput reads and evaluates every form in src against env, flushing
// buffered program output and printing each form's value. It returns
// false, evaluating nothing, when src ends inside an unclosed form.
func evalInput(env *lisp.Env, output *[]string, src string) bool {
	r, err := reader.New(src)
	if err != nil {
		errln(err)
		return true
	}
	var forms []*lisp.Value
	for {
		form, err := r.Read()
		if err != nil {
			if reader.IsIncomplete(err) {
				return false
			}
			errln(err)
			return true
		}
		if form == nil {
			break
		}
		forms = append(forms, form)
	}
	for _, form := range forms {
		v, err := lisp.Eval(env, form)
		flush(output)
		if err != nil {
			errln(err)
			return true
		}
		fmt.Println(lisp.Print(v))
	}
	return true
}

func flush(output *[]string) {
	for _, line := range *output {
		fmt.Println(line)
	}
	*output = (*output)[:0]
}

func errln(v ...interface{}) {
	fmt.Fprintln(os.Stderr, v...)
}
