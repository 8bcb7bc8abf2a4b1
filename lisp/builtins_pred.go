package lisp

import "fmt"

func registerPred(env *Env) {
	env.Put("listp", NewBuiltin("listp", builtinListp))
	env.Put("list?", NewBuiltin("list?", builtinListp))
	env.Put("atom", NewBuiltin("atom", builtinAtom))
	env.Put("null", NewBuiltin("null", builtinNullp))
	env.Put("null?", NewBuiltin("null?", builtinNullp))
	env.Put("numberp", NewBuiltin("numberp", builtinNumberp))
	env.Put("number?", NewBuiltin("number?", builtinNumberp))
	env.Put("symbolp", NewBuiltin("symbolp", builtinSymbolp))
	env.Put("symbol?", NewBuiltin("symbol?", builtinSymbolp))
	env.Put("stringp", NewBuiltin("stringp", builtinStringp))
	env.Put("string?", NewBuiltin("string?", builtinStringp))
	env.Put("zerop", NewBuiltin("zerop", builtinZerop))
	env.Put("plusp", NewBuiltin("plusp", builtinPlusp))
	env.Put("minusp", NewBuiltin("minusp", builtinMinusp))
	env.Put("eq", NewBuiltin("eq", builtinEq))
	env.Put("equal", NewBuiltin("equal", builtinEqual))
	env.Put("not", NewBuiltin("not", builtinNot))
}

func builtinListp(env *Env, args []*Value) (*Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("listp: expected exactly 1 argument, got %d", len(args))
	}
	return NewBool(args[0].Type == List || args[0].Type == Null), nil
}

func builtinAtom(env *Env, args []*Value) (*Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("atom: expected exactly 1 argument, got %d", len(args))
	}
	return NewBool(!(args[0].Type == List && len(args[0].Cells) > 0)), nil
}

func builtinNullp(env *Env, args []*Value) (*Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("null: expected exactly 1 argument, got %d", len(args))
	}
	return NewBool(args[0].IsNil()), nil
}

func builtinNumberp(env *Env, args []*Value) (*Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("numberp: expected exactly 1 argument, got %d", len(args))
	}
	return NewBool(args[0].Type == Number), nil
}

func builtinSymbolp(env *Env, args []*Value) (*Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("symbolp: expected exactly 1 argument, got %d", len(args))
	}
	return NewBool(args[0].Type == Symbol), nil
}

func builtinStringp(env *Env, args []*Value) (*Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("stringp: expected exactly 1 argument, got %d", len(args))
	}
	return NewBool(args[0].Type == Str), nil
}

func builtinZerop(env *Env, args []*Value) (*Value, error) {
	if len(args) != 1 || args[0].Type != Number {
		return nil, fmt.Errorf("zerop: expected exactly 1 number argument")
	}
	return NewBool(args[0].Num == 0), nil
}

func builtinPlusp(env *Env, args []*Value) (*Value, error) {
	if len(args) != 1 || args[0].Type != Number {
		return nil, fmt.Errorf("plusp: expected exactly 1 number argument")
	}
	return NewBool(args[0].Num > 0), nil
}

func builtinMinusp(env *Env, args []*Value) (*Value, error) {
	if len(args) != 1 || args[0].Type != Number {
		return nil, fmt.Errorf("minusp: expected exactly 1 number argument")
	}
	return NewBool(args[0].Num < 0), nil
}

func builtinEq(env *Env, args []*Value) (*Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("eq: expected exactly 2 arguments, got %d", len(args))
	}
	return NewBool(Eq(args[0], args[1])), nil
}

func builtinEqual(env *Env, args []*Value) (*Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("equal: expected exactly 2 arguments, got %d", len(args))
	}
	return NewBool(Equal(args[0], args[1])), nil
}

func builtinNot(env *Env, args []*Value) (*Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("not: expected exactly 1 argument, got %d", len(args))
	}
	return NewBool(!GenericTruthiness(args[0])), nil
}
