package lisp

import (
	"fmt"
	"strings"
)

func registerIO(env *Env) {
	env.Put("print", NewBuiltin("print", builtinPrint))
	env.Put("prin1", NewBuiltin("prin1", builtinPrin1))
	env.Put("format", NewBuiltin("format", builtinFormat))
	env.Put("read-line", NewBuiltin("read-line", builtinReadLine))
	env.Put("exit", NewBuiltin("exit", builtinExit))
	env.Put("bye", NewBuiltin("bye", builtinExit))
}

// builtinPrint appends one line formed by space-joining each argument's
// printed form and returns the last argument.
func builtinPrint(env *Env, args []*Value) (*Value, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("print: expected at least 1 argument, got 0")
	}
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = Print(a)
	}
	env.Emit(strings.Join(parts, " "))
	return args[len(args)-1], nil
}

func builtinPrin1(env *Env, args []*Value) (*Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("prin1: expected exactly 1 argument, got %d", len(args))
	}
	env.Emit(Print(args[0]))
	return args[0], nil
}

// builtinFormat substitutes each %s or %d in fmt with the next argument's
// printed form. If stream is the symbol t, the result is appended to the
// output buffer as exactly one line and returned; otherwise Null is
// returned and nothing is emitted.
func builtinFormat(env *Env, args []*Value) (*Value, error) {
	if len(args) < 2 {
		return nil, fmt.Errorf("format: expected at least 2 arguments, got %d", len(args))
	}
	stream := args[0]
	layout := args[1]
	if layout.Type != Str {
		return nil, fmt.Errorf("format: fmt must be a string, got %s", layout.Type)
	}
	rest := args[2:]
	rendered, err := expandFormat(layout.Str, rest)
	if err != nil {
		return nil, err
	}
	if isTStream(stream) {
		env.Emit(rendered)
		return NewStr(rendered), nil
	}
	return NewNull(), nil
}

// isTStream recognizes the t stream designator. The atom t reads as
// Bool(true), quoted or not, so the stream argument normally arrives as
// a Bool; a symbol named t is accepted too for values built at runtime.
func isTStream(stream *Value) bool {
	if stream.Type == Bool {
		return stream.B
	}
	return stream.Type == Symbol && stream.Sym == "t"
}

func expandFormat(layout string, args []*Value) (string, error) {
	var buf strings.Builder
	argIdx := 0
	for i := 0; i < len(layout); i++ {
		ch := layout[i]
		if ch != '%' || i+1 >= len(layout) {
			buf.WriteByte(ch)
			continue
		}
		switch layout[i+1] {
		case 's', 'd':
			if argIdx >= len(args) {
				return "", fmt.Errorf("format: not enough arguments for format string")
			}
			buf.WriteString(Print(args[argIdx]))
			argIdx++
			i++
		case '%':
			buf.WriteByte('%')
			i++
		default:
			buf.WriteByte(ch)
		}
	}
	return buf.String(), nil
}

func builtinReadLine(env *Env, args []*Value) (*Value, error) {
	if len(args) != 0 {
		return nil, fmt.Errorf("read-line: expected exactly 0 arguments, got %d", len(args))
	}
	line, ok := env.ReadLine()
	if !ok {
		return nil, fmt.Errorf("read-line: no input provider configured")
	}
	return NewStr(line), nil
}

func builtinExit(env *Env, args []*Value) (*Value, error) {
	env.Emit("Exiting Lisp interpreter")
	return NewStr("exit"), nil
}
