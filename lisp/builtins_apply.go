package lisp

import "fmt"

func registerApply(env *Env) {
	env.Put("funcall", NewBuiltin("funcall", builtinFuncall))
	env.Put("mapcar", NewBuiltin("mapcar", builtinMapcar))
	env.Put("apply", NewBuiltin("apply", builtinApply))
}

// resolveCallable accepts either a callable Value directly, or a Symbol
// naming one in the environment. funcall, mapcar, sort, select, and
// reject all follow this convention since each accepts the result of a
// quoted function name.
func resolveCallable(op string, env *Env, v *Value) (*Value, error) {
	if v.Type == Symbol {
		resolved, ok := env.Get(v.Sym)
		if !ok {
			return nil, fmt.Errorf("%s: Unknown symbol: %s", op, v.Sym)
		}
		v = resolved
	}
	if !v.IsCallable() {
		return nil, fmt.Errorf("%s: argument must be a procedure, got %s", op, v.Type)
	}
	return v, nil
}

func builtinFuncall(env *Env, args []*Value) (*Value, error) {
	if len(args) < 1 {
		return nil, fmt.Errorf("funcall: expected at least 1 argument, got 0")
	}
	fn, err := resolveCallable("funcall", env, args[0])
	if err != nil {
		return nil, err
	}
	return Apply(env, fn, "funcall", args[1:])
}

func builtinApply(env *Env, args []*Value) (*Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("apply: expected exactly 2 arguments, got %d", len(args))
	}
	fn, err := resolveCallable("apply", env, args[0])
	if err != nil {
		return nil, err
	}
	spread, err := requireList("apply", args[1])
	if err != nil {
		return nil, err
	}
	return Apply(env, fn, "apply", spread.Cells)
}

func builtinMapcar(env *Env, args []*Value) (*Value, error) {
	if len(args) < 2 {
		return nil, fmt.Errorf("mapcar: expected at least 2 arguments, got %d", len(args))
	}
	fn, err := resolveCallable("mapcar", env, args[0])
	if err != nil {
		return nil, err
	}
	lists := make([]*Value, len(args)-1)
	shortest := -1
	for i, a := range args[1:] {
		l, err := requireList("mapcar", a)
		if err != nil {
			return nil, err
		}
		lists[i] = l
		if shortest == -1 || len(l.Cells) < shortest {
			shortest = len(l.Cells)
		}
	}
	out := make([]*Value, shortest)
	for i := 0; i < shortest; i++ {
		callArgs := make([]*Value, len(lists))
		for j, l := range lists {
			callArgs[j] = l.Cells[i]
		}
		v, err := Apply(env, fn, "mapcar", callArgs)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return NewList(out...), nil
}
