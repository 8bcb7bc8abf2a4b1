package lisp

// specialForm evaluates an already-parsed call whose head matched one of
// the reserved symbols below, according to that form's own evaluation
// rules for its operands.
type specialForm func(env *Env, args []*Value) (*Value, error)

var specialForms map[string]specialForm

func init() {
	specialForms = map[string]specialForm{
		"quote":   sfQuote,
		"defun":   sfDefun,
		"lambda":  sfLambda,
		"setq":    sfSetq,
		"setf":    sfSetf,
		"if":      sfIf,
		"cond":    sfCond,
		"case":    sfCase,
		"let":     sfLet,
		"begin":   sfProgn,
		"progn":   sfProgn,
		"do":      sfDo,
		"dolist":  sfDolist,
		"dotimes": sfDotimes,
		"eval":    sfEval,
		"and":     sfAnd,
		"or":      sfOr,
	}
}

// Eval evaluates form in env and returns the resulting Value.
func Eval(env *Env, form *Value) (*Value, error) {
	switch form.Type {
	case Number, Bool, Str, Null, Builtin, Lambda:
		return form, nil
	case Symbol:
		if v, ok := env.Get(form.Sym); ok {
			return v, nil
		}
		return nil, Errorf("Unknown symbol: %s", form.Sym)
	case List:
		if len(form.Cells) == 0 {
			return NewList(), nil
		}
		return evalCall(env, form)
	default:
		return nil, Errorf("Cannot evaluate value of type %s", form.Type)
	}
}

func evalCall(env *Env, form *Value) (*Value, error) {
	op := form.Cells[0]
	rawArgs := form.Cells[1:]

	if op.Type == Symbol {
		if sf, ok := specialForms[op.Sym]; ok {
			return sf(env, rawArgs)
		}
	}

	fn, err := Eval(env, op)
	if err != nil {
		return nil, err
	}
	args := make([]*Value, len(rawArgs))
	for i, a := range rawArgs {
		v, err := Eval(env, a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return Apply(env, fn, opName(op), args)
}

func opName(op *Value) string {
	if op.Type == Symbol {
		return op.Sym
	}
	return Print(op)
}

// Apply invokes fn (a Builtin or Lambda) with already-evaluated args. name
// is used only to build the "Not a procedure: <name>" message; errors from
// a Builtin are wrapped as "Error in procedure <fn.Name>: ...".
func Apply(env *Env, fn *Value, name string, args []*Value) (*Value, error) {
	switch fn.Type {
	case Builtin:
		v, err := fn.BuiltinFunc(env, args)
		if err != nil {
			return nil, wrapProcError(fn.Name, err)
		}
		return v, nil
	case Lambda:
		return applyLambda(fn, args)
	default:
		return nil, Errorf("Not a procedure: %s", name)
	}
}

func applyLambda(fn *Value, args []*Value) (*Value, error) {
	if len(args) != len(fn.Params) {
		return nil, Errorf("lambda: expected %d arguments, got %d", len(fn.Params), len(args))
	}
	callEnv := fn.Closure.Child()
	for i, p := range fn.Params {
		callEnv.Put(p, args[i])
	}
	var result *Value = NewNull()
	var err error
	for _, form := range fn.Body {
		result, err = Eval(callEnv, form)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// --- special forms ---

func sfQuote(env *Env, args []*Value) (*Value, error) {
	if len(args) != 1 {
		return nil, Errorf("quote: Expected exactly 1 operand, got %d", len(args))
	}
	return args[0], nil
}

func symbolNames(list *Value, what string) ([]string, error) {
	if list.Type != List {
		return nil, Errorf("%s: parameter list must be a list", what)
	}
	names := make([]string, len(list.Cells))
	for i, c := range list.Cells {
		if c.Type != Symbol {
			return nil, Errorf("%s: parameter must be a symbol, got %s", what, c.Type)
		}
		names[i] = c.Sym
	}
	return names, nil
}

func sfDefun(env *Env, args []*Value) (*Value, error) {
	if len(args) < 2 {
		return nil, Errorf("defun: Expected a name, a parameter list, and a body")
	}
	nameVal := args[0]
	if nameVal.Type != Symbol {
		return nil, Errorf("defun: name must be a symbol, got %s", nameVal.Type)
	}
	params, err := symbolNames(args[1], "defun")
	if err != nil {
		return nil, err
	}
	fn := NewLambda(params, args[2:], env)
	env.Put(nameVal.Sym, fn)
	env.PutGlobal(nameVal.Sym, fn)
	return NewSymbol(nameVal.Sym), nil
}

func sfLambda(env *Env, args []*Value) (*Value, error) {
	if len(args) < 1 {
		return nil, Errorf("lambda: Expected a parameter list and a body")
	}
	params, err := symbolNames(args[0], "lambda")
	if err != nil {
		return nil, err
	}
	return NewLambda(params, args[1:], env), nil
}

func sfSetq(env *Env, args []*Value) (*Value, error) {
	if len(args)%2 != 0 {
		return nil, Errorf("setq: Expected an even number of operands, got %d", len(args))
	}
	var result *Value = NewNull()
	for i := 0; i < len(args); i += 2 {
		sym := args[i]
		if sym.Type != Symbol {
			return nil, Errorf("setq: Expected a symbol, got %s", sym.Type)
		}
		v, err := Eval(env, args[i+1])
		if err != nil {
			return nil, err
		}
		env.Put(sym.Sym, v)
		env.PutGlobal(sym.Sym, v)
		result = v
	}
	return result, nil
}

func sfSetf(env *Env, args []*Value) (*Value, error) {
	if len(args)%2 != 0 {
		return nil, Errorf("setf: Expected an even number of operands, got %d", len(args))
	}
	var result *Value = NewNull()
	for i := 0; i < len(args); i += 2 {
		place := args[i]
		v, err := Eval(env, args[i+1])
		if err != nil {
			return nil, err
		}
		if err := assignPlace(env, place, v); err != nil {
			return nil, err
		}
		result = v
	}
	return result, nil
}

func assignPlace(env *Env, place *Value, v *Value) error {
	if place.Type == Symbol {
		env.Put(place.Sym, v)
		env.PutGlobal(place.Sym, v)
		return nil
	}
	if place.Type != List || len(place.Cells) < 1 || place.Cells[0].Type != Symbol {
		return Errorf("setf: invalid place: %s", Print(place))
	}
	accessor := place.Cells[0].Sym
	switch accessor {
	case "car":
		if len(place.Cells) != 2 {
			return Errorf("setf: (car L) expects exactly 1 operand")
		}
		target, err := Eval(env, place.Cells[1])
		if err != nil {
			return err
		}
		if target.Type != List || len(target.Cells) == 0 {
			return Errorf("setf: car: list is empty")
		}
		target.Cells[0] = v
		return nil
	case "nth":
		if len(place.Cells) != 3 {
			return Errorf("setf: (nth i L) expects exactly 2 operands")
		}
		idxVal, err := Eval(env, place.Cells[1])
		if err != nil {
			return err
		}
		target, err := Eval(env, place.Cells[2])
		if err != nil {
			return err
		}
		if idxVal.Type != Number || target.Type != List {
			return Errorf("setf: (nth i L) expects a number and a list")
		}
		idx := int(idxVal.Num)
		if idx < 0 || idx >= len(target.Cells) {
			return Errorf("setf: nth: index %d out of bounds", idx)
		}
		target.Cells[idx] = v
		return nil
	default:
		return Errorf("setf: unsupported place accessor: %s", accessor)
	}
}

func sfIf(env *Env, args []*Value) (*Value, error) {
	if len(args) < 2 || len(args) > 3 {
		return nil, Errorf("if: Expected 2 or 3 operands, got %d", len(args))
	}
	cond, err := Eval(env, args[0])
	if err != nil {
		return nil, err
	}
	if Truthiness(cond) {
		return Eval(env, args[1])
	}
	if len(args) == 3 {
		return Eval(env, args[2])
	}
	return NewNull(), nil
}

func sfCond(env *Env, args []*Value) (*Value, error) {
	for _, clause := range args {
		if clause.Type != List || len(clause.Cells) == 0 {
			return nil, Errorf("cond: each clause must be a non-empty list")
		}
		test, err := Eval(env, clause.Cells[0])
		if err != nil {
			return nil, err
		}
		if !Truthiness(test) {
			continue
		}
		body := clause.Cells[1:]
		if len(body) == 0 {
			return test, nil
		}
		var result *Value
		for _, form := range body {
			result, err = Eval(env, form)
			if err != nil {
				return nil, err
			}
		}
		return result, nil
	}
	return NewNull(), nil
}

func sfCase(env *Env, args []*Value) (*Value, error) {
	if len(args) < 1 {
		return nil, Errorf("case: Expected a key expression")
	}
	key, err := Eval(env, args[0])
	if err != nil {
		return nil, err
	}
	for _, clause := range args[1:] {
		if clause.Type != List || len(clause.Cells) == 0 {
			return nil, Errorf("case: each clause must be a non-empty list")
		}
		head := clause.Cells[0]
		matched := false
		// A fallthrough head written as t reads as Bool(true) since the
		// clause head is never evaluated.
		if head.Type == Symbol && (head.Sym == "otherwise" || head.Sym == "t") {
			matched = true
		} else if head.Type == Bool && head.B {
			matched = true
		} else if head.Type == List {
			for _, k := range head.Cells {
				if Eq(k, key) {
					matched = true
					break
				}
			}
		}
		if !matched {
			continue
		}
		body := clause.Cells[1:]
		var result *Value = NewNull()
		for _, form := range body {
			result, err = Eval(env, form)
			if err != nil {
				return nil, err
			}
		}
		return result, nil
	}
	return NewNull(), nil
}

func sfLet(env *Env, args []*Value) (*Value, error) {
	if len(args) < 1 || args[0].Type != List {
		return nil, Errorf("let: Expected a binding list")
	}
	letEnv := env.Child()
	for _, binding := range args[0].Cells {
		if binding.Type != List || len(binding.Cells) != 2 || binding.Cells[0].Type != Symbol {
			return nil, Errorf("let: each binding must be (symbol expr)")
		}
		v, err := Eval(letEnv, binding.Cells[1])
		if err != nil {
			return nil, err
		}
		letEnv.Put(binding.Cells[0].Sym, v)
	}
	return evalBody(letEnv, args[1:])
}

func sfProgn(env *Env, args []*Value) (*Value, error) {
	return evalBody(env, args)
}

func evalBody(env *Env, body []*Value) (*Value, error) {
	var result *Value = NewNull()
	var err error
	for _, form := range body {
		result, err = Eval(env, form)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

func sfDo(env *Env, args []*Value) (*Value, error) {
	if len(args) < 2 {
		return nil, Errorf("do: Expected bindings, an end clause, and a body")
	}
	bindings := args[0]
	endClause := args[1]
	body := args[2:]
	if bindings.Type != List || endClause.Type != List || len(endClause.Cells) == 0 {
		return nil, Errorf("do: malformed bindings or end clause")
	}

	type binding struct {
		name string
		step *Value
	}
	doEnv := env.Child()
	specs := make([]binding, len(bindings.Cells))
	for i, b := range bindings.Cells {
		if b.Type != List || len(b.Cells) < 2 || b.Cells[0].Type != Symbol {
			return nil, Errorf("do: each binding must be (var init [step])")
		}
		init, err := Eval(env, b.Cells[1])
		if err != nil {
			return nil, err
		}
		doEnv.Put(b.Cells[0].Sym, init)
		step := b.Cells[0] // defaults to var
		if len(b.Cells) >= 3 {
			step = b.Cells[2]
		}
		specs[i] = binding{name: b.Cells[0].Sym, step: step}
	}

	for {
		test, err := Eval(doEnv, endClause.Cells[0])
		if err != nil {
			return nil, err
		}
		if Truthiness(test) {
			return evalBody(doEnv, endClause.Cells[1:])
		}
		for _, form := range body {
			if _, err := Eval(doEnv, form); err != nil {
				return nil, err
			}
		}
		next := make([]*Value, len(specs))
		for i, s := range specs {
			v, err := Eval(doEnv, s.step)
			if err != nil {
				return nil, err
			}
			next[i] = v
		}
		for i, s := range specs {
			doEnv.Put(s.name, next[i])
		}
	}
}

func sfDolist(env *Env, args []*Value) (*Value, error) {
	if len(args) < 1 || args[0].Type != List || len(args[0].Cells) < 2 {
		return nil, Errorf("dolist: Expected (var list-expr [result-expr])")
	}
	head := args[0]
	if head.Cells[0].Type != Symbol {
		return nil, Errorf("dolist: var must be a symbol")
	}
	varName := head.Cells[0].Sym
	listVal, err := Eval(env, head.Cells[1])
	if err != nil {
		return nil, err
	}
	if listVal.Type != List {
		return nil, Errorf("dolist: list-expr must evaluate to a list")
	}
	body := args[1:]
	loopEnv := env.Child()
	for _, item := range listVal.Cells {
		loopEnv.Put(varName, item)
		for _, form := range body {
			if _, err := Eval(loopEnv, form); err != nil {
				return nil, err
			}
		}
	}
	loopEnv.Put(varName, NewList())
	if len(head.Cells) >= 3 {
		return Eval(loopEnv, head.Cells[2])
	}
	return NewList(), nil
}

func sfDotimes(env *Env, args []*Value) (*Value, error) {
	if len(args) < 1 || args[0].Type != List || len(args[0].Cells) < 2 {
		return nil, Errorf("dotimes: Expected (var count-expr [result-expr])")
	}
	head := args[0]
	if head.Cells[0].Type != Symbol {
		return nil, Errorf("dotimes: var must be a symbol")
	}
	varName := head.Cells[0].Sym
	countVal, err := Eval(env, head.Cells[1])
	if err != nil {
		return nil, err
	}
	if countVal.Type != Number || countVal.Num < 0 {
		return nil, Errorf("dotimes: count-expr must evaluate to a non-negative number")
	}
	count := int(countVal.Num)
	body := args[1:]
	loopEnv := env.Child()
	for i := 0; i < count; i++ {
		loopEnv.Put(varName, NewNumber(float64(i)))
		for _, form := range body {
			if _, err := Eval(loopEnv, form); err != nil {
				return nil, err
			}
		}
	}
	loopEnv.Put(varName, NewNumber(float64(count)))
	if len(head.Cells) >= 3 {
		return Eval(loopEnv, head.Cells[2])
	}
	return NewList(), nil
}

func sfEval(env *Env, args []*Value) (*Value, error) {
	if len(args) != 1 {
		return nil, Errorf("eval: Expected exactly 1 operand, got %d", len(args))
	}
	inner, err := Eval(env, args[0])
	if err != nil {
		return nil, err
	}
	return Eval(env, inner)
}

func sfAnd(env *Env, args []*Value) (*Value, error) {
	for _, form := range args {
		v, err := Eval(env, form)
		if err != nil {
			return nil, err
		}
		if !GenericTruthiness(v) {
			return NewBool(false), nil
		}
	}
	return NewBool(true), nil
}

func sfOr(env *Env, args []*Value) (*Value, error) {
	for _, form := range args {
		v, err := Eval(env, form)
		if err != nil {
			return nil, err
		}
		if GenericTruthiness(v) {
			return v, nil
		}
	}
	return NewBool(false), nil
}
