package lisp

import (
	"fmt"
	"sort"
)

func registerList(env *Env) {
	env.Put("car", NewBuiltin("car", builtinCar))
	env.Put("first", NewBuiltin("first", builtinCar))
	env.Put("cdr", NewBuiltin("cdr", builtinCdr))
	env.Put("rest", NewBuiltin("rest", builtinCdr))
	env.Put("cons", NewBuiltin("cons", builtinCons))
	env.Put("list", NewBuiltin("list", builtinList))
	env.Put("append", NewBuiltin("append", builtinAppend))
	env.Put("reverse", NewBuiltin("reverse", builtinReverse))
	env.Put("length", NewBuiltin("length", builtinLength))
	env.Put("nth", NewBuiltin("nth", builtinNth))
	env.Put("second", NewBuiltin("second", nthFixed("second", 1)))
	env.Put("third", NewBuiltin("third", nthFixed("third", 2)))
	env.Put("fourth", NewBuiltin("fourth", nthFixed("fourth", 3)))
	env.Put("fifth", NewBuiltin("fifth", nthFixed("fifth", 4)))
	env.Put("cadr", NewBuiltin("cadr", nthFixed("cadr", 1)))
	env.Put("caddr", NewBuiltin("caddr", nthFixed("caddr", 2)))
	env.Put("cadddr", NewBuiltin("cadddr", nthFixed("cadddr", 3)))
	env.Put("member", NewBuiltin("member", builtinMember))
	env.Put("subseq", NewBuiltin("subseq", builtinSubseq))
	env.Put("sort", NewBuiltin("sort", builtinSort))
	env.Put("select", NewBuiltin("select", builtinSelect))
	env.Put("reject", NewBuiltin("reject", builtinReject))
	env.Put("zip", NewBuiltin("zip", builtinZip))
}

func requireList(op string, v *Value) (*Value, error) {
	if v.Type == Null {
		return NewList(), nil
	}
	if v.Type != List {
		return nil, fmt.Errorf("%s: expected a list, got %s", op, v.Type)
	}
	return v, nil
}

func builtinCar(env *Env, args []*Value) (*Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("car: expected exactly 1 argument, got %d", len(args))
	}
	l, err := requireList("car", args[0])
	if err != nil {
		return nil, err
	}
	if len(l.Cells) == 0 {
		return nil, fmt.Errorf("car: cannot take the car of an empty list")
	}
	return l.Cells[0], nil
}

func builtinCdr(env *Env, args []*Value) (*Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("cdr: expected exactly 1 argument, got %d", len(args))
	}
	l, err := requireList("cdr", args[0])
	if err != nil {
		return nil, err
	}
	if len(l.Cells) == 0 {
		return nil, fmt.Errorf("cdr: cannot take the cdr of an empty list")
	}
	return NewList(l.Cells[1:]...), nil
}

func builtinCons(env *Env, args []*Value) (*Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("cons: expected exactly 2 arguments, got %d", len(args))
	}
	l, err := requireList("cons", args[1])
	if err != nil {
		return nil, err
	}
	cells := make([]*Value, 0, len(l.Cells)+1)
	cells = append(cells, args[0])
	cells = append(cells, l.Cells...)
	return NewList(cells...), nil
}

func builtinList(env *Env, args []*Value) (*Value, error) {
	return NewList(args...), nil
}

func builtinAppend(env *Env, args []*Value) (*Value, error) {
	var cells []*Value
	for _, a := range args {
		l, err := requireList("append", a)
		if err != nil {
			return nil, err
		}
		cells = append(cells, l.Cells...)
	}
	return NewList(cells...), nil
}

func builtinReverse(env *Env, args []*Value) (*Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("reverse: expected exactly 1 argument, got %d", len(args))
	}
	l, err := requireList("reverse", args[0])
	if err != nil {
		return nil, err
	}
	cells := make([]*Value, len(l.Cells))
	for i, c := range l.Cells {
		cells[len(cells)-1-i] = c
	}
	return NewList(cells...), nil
}

func builtinLength(env *Env, args []*Value) (*Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("length: expected exactly 1 argument, got %d", len(args))
	}
	switch args[0].Type {
	case List:
		return NewNumber(float64(len(args[0].Cells))), nil
	case Str:
		return NewNumber(float64(len(args[0].Str))), nil
	case Null:
		return NewNumber(0), nil
	default:
		return nil, fmt.Errorf("length: expected a list or string, got %s", args[0].Type)
	}
}

func builtinNth(env *Env, args []*Value) (*Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("nth: expected exactly 2 arguments, got %d", len(args))
	}
	if args[0].Type != Number {
		return nil, fmt.Errorf("nth: index must be a number, got %s", args[0].Type)
	}
	l, err := requireList("nth", args[1])
	if err != nil {
		return nil, err
	}
	idx := int(args[0].Num)
	if idx < 0 || idx >= len(l.Cells) {
		return nil, fmt.Errorf("nth: index %d out of bounds for list of length %d", idx, len(l.Cells))
	}
	return l.Cells[idx], nil
}

func nthFixed(op string, idx int) BuiltinFunc {
	return func(env *Env, args []*Value) (*Value, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("%s: expected exactly 1 argument, got %d", op, len(args))
		}
		l, err := requireList(op, args[0])
		if err != nil {
			return nil, err
		}
		if idx >= len(l.Cells) {
			return nil, fmt.Errorf("%s: list has only %d elements", op, len(l.Cells))
		}
		return l.Cells[idx], nil
	}
}

func builtinMember(env *Env, args []*Value) (*Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("member: expected exactly 2 arguments, got %d", len(args))
	}
	l, err := requireList("member", args[1])
	if err != nil {
		return nil, err
	}
	for i, c := range l.Cells {
		if Eq(c, args[0]) {
			return NewList(l.Cells[i:]...), nil
		}
	}
	return NewBool(false), nil
}

func builtinSubseq(env *Env, args []*Value) (*Value, error) {
	if len(args) < 2 || len(args) > 3 {
		return nil, fmt.Errorf("subseq: expected 2 or 3 arguments, got %d", len(args))
	}
	l, err := requireList("subseq", args[0])
	if err != nil {
		return nil, err
	}
	if args[1].Type != Number {
		return nil, fmt.Errorf("subseq: start must be a number, got %s", args[1].Type)
	}
	start := int(args[1].Num)
	end := len(l.Cells)
	if len(args) == 3 {
		if args[2].Type != Number {
			return nil, fmt.Errorf("subseq: end must be a number, got %s", args[2].Type)
		}
		end = int(args[2].Num)
	}
	if start < 0 || end > len(l.Cells) || start > end {
		return nil, fmt.Errorf("subseq: index out of bounds [%d, %d) for length %d", start, end, len(l.Cells))
	}
	return NewList(l.Cells[start:end]...), nil
}

func builtinSort(env *Env, args []*Value) (*Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("sort: expected exactly 2 arguments, got %d", len(args))
	}
	l, err := requireList("sort", args[0])
	if err != nil {
		return nil, err
	}
	pred, err := resolveCallable("sort", env, args[1])
	if err != nil {
		return nil, err
	}
	cells := make([]*Value, len(l.Cells))
	copy(cells, l.Cells)
	var sortErr error
	sort.SliceStable(cells, func(i, j int) bool {
		if sortErr != nil {
			return false
		}
		res, err := Apply(env, pred, "sort", []*Value{cells[i], cells[j]})
		if err != nil {
			sortErr = err
			return false
		}
		return Truthiness(res)
	})
	if sortErr != nil {
		return nil, sortErr
	}
	return NewList(cells...), nil
}

func builtinSelect(env *Env, args []*Value) (*Value, error) {
	return filterList("select", env, args, true)
}

func builtinReject(env *Env, args []*Value) (*Value, error) {
	return filterList("reject", env, args, false)
}

func filterList(op string, env *Env, args []*Value, keepOnTrue bool) (*Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("%s: expected exactly 2 arguments, got %d", op, len(args))
	}
	fn, err := resolveCallable(op, env, args[0])
	if err != nil {
		return nil, err
	}
	l, err := requireList(op, args[1])
	if err != nil {
		return nil, err
	}
	var out []*Value
	for _, c := range l.Cells {
		res, err := Apply(env, fn, op, []*Value{c})
		if err != nil {
			return nil, err
		}
		if Truthiness(res) == keepOnTrue {
			out = append(out, c)
		}
	}
	return NewList(out...), nil
}

func builtinZip(env *Env, args []*Value) (*Value, error) {
	if len(args) < 1 {
		return nil, fmt.Errorf("zip: expected at least 1 argument, got 0")
	}
	lists := make([]*Value, len(args))
	shortest := -1
	for i, a := range args {
		l, err := requireList("zip", a)
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
		row := make([]*Value, len(lists))
		for j, l := range lists {
			row[j] = l.Cells[i]
		}
		out[i] = NewList(row...)
	}
	return NewList(out...), nil
}
