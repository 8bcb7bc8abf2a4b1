package lisp

import (
	"fmt"
	"math"
)

func registerArith(env *Env) {
	env.Put("+", NewBuiltin("+", builtinAdd))
	env.Put("-", NewBuiltin("-", builtinSub))
	env.Put("*", NewBuiltin("*", builtinMul))
	env.Put("/", NewBuiltin("/", builtinDiv))
	env.Put("mod", NewBuiltin("mod", builtinMod))
	env.Put("=", NewBuiltin("=", builtinNumEq))
	env.Put("<", NewBuiltin("<", builtinLt))
	env.Put(">", NewBuiltin(">", builtinGt))
	env.Put("<=", NewBuiltin("<=", builtinLe))
	env.Put(">=", NewBuiltin(">=", builtinGe))
	env.Put("max", NewBuiltin("max", builtinMax))
	env.Put("min", NewBuiltin("min", builtinMin))
	env.Put("abs", NewBuiltin("abs", builtinAbs))
	env.Put("sqrt", NewBuiltin("sqrt", builtinSqrt))
	env.Put("expt", NewBuiltin("expt", builtinExpt))
	env.Put("pow", NewBuiltin("pow", builtinExpt))
}

func numbers(op string, args []*Value) ([]float64, error) {
	out := make([]float64, len(args))
	for i, a := range args {
		if a.Type != Number {
			return nil, fmt.Errorf("%s: All arguments must be numbers", op)
		}
		out[i] = a.Num
	}
	return out, nil
}

func builtinAdd(env *Env, args []*Value) (*Value, error) {
	nums, err := numbers("+", args)
	if err != nil {
		return nil, err
	}
	sum := 0.0
	for _, n := range nums {
		sum += n
	}
	return NewNumber(sum), nil
}

func builtinSub(env *Env, args []*Value) (*Value, error) {
	nums, err := numbers("-", args)
	if err != nil {
		return nil, err
	}
	if len(nums) == 0 {
		return nil, fmt.Errorf("-: expected at least 1 argument, got 0")
	}
	if len(nums) == 1 {
		return NewNumber(-nums[0]), nil
	}
	result := nums[0]
	for _, n := range nums[1:] {
		result -= n
	}
	return NewNumber(result), nil
}

func builtinMul(env *Env, args []*Value) (*Value, error) {
	nums, err := numbers("*", args)
	if err != nil {
		return nil, err
	}
	product := 1.0
	for _, n := range nums {
		product *= n
	}
	return NewNumber(product), nil
}

func builtinDiv(env *Env, args []*Value) (*Value, error) {
	nums, err := numbers("/", args)
	if err != nil {
		return nil, err
	}
	if len(nums) == 0 {
		return nil, fmt.Errorf("/: expected at least 1 argument, got 0")
	}
	if len(nums) == 1 {
		if nums[0] == 0 {
			return nil, fmt.Errorf("/: division by zero")
		}
		return NewNumber(1 / nums[0]), nil
	}
	result := nums[0]
	for _, n := range nums[1:] {
		if n == 0 {
			return nil, fmt.Errorf("/: division by zero")
		}
		result /= n
	}
	return NewNumber(result), nil
}

func builtinMod(env *Env, args []*Value) (*Value, error) {
	nums, err := numbers("mod", args)
	if err != nil {
		return nil, err
	}
	if len(nums) != 2 {
		return nil, fmt.Errorf("mod: expected exactly 2 arguments, got %d", len(nums))
	}
	if nums[1] == 0 {
		return nil, fmt.Errorf("mod: division by zero")
	}
	return NewNumber(math.Mod(nums[0], nums[1])), nil
}

func chainCompare(op string, args []*Value, cmp func(a, b float64) bool) (*Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("%s: expected exactly 2 arguments, got %d", op, len(args))
	}
	nums, err := numbers(op, args)
	if err != nil {
		return nil, err
	}
	return NewBool(cmp(nums[0], nums[1])), nil
}

func builtinNumEq(env *Env, args []*Value) (*Value, error) {
	return chainCompare("=", args, func(a, b float64) bool { return a == b })
}

func builtinLt(env *Env, args []*Value) (*Value, error) {
	return chainCompare("<", args, func(a, b float64) bool { return a < b })
}

func builtinGt(env *Env, args []*Value) (*Value, error) {
	return chainCompare(">", args, func(a, b float64) bool { return a > b })
}

func builtinLe(env *Env, args []*Value) (*Value, error) {
	return chainCompare("<=", args, func(a, b float64) bool { return a <= b })
}

func builtinGe(env *Env, args []*Value) (*Value, error) {
	return chainCompare(">=", args, func(a, b float64) bool { return a >= b })
}

func builtinMax(env *Env, args []*Value) (*Value, error) {
	nums, err := numbers("max", args)
	if err != nil {
		return nil, err
	}
	if len(nums) == 0 {
		return nil, fmt.Errorf("max: expected at least 1 argument, got 0")
	}
	best := nums[0]
	for _, n := range nums[1:] {
		if n > best {
			best = n
		}
	}
	return NewNumber(best), nil
}

func builtinMin(env *Env, args []*Value) (*Value, error) {
	nums, err := numbers("min", args)
	if err != nil {
		return nil, err
	}
	if len(nums) == 0 {
		return nil, fmt.Errorf("min: expected at least 1 argument, got 0")
	}
	best := nums[0]
	for _, n := range nums[1:] {
		if n < best {
			best = n
		}
	}
	return NewNumber(best), nil
}

func builtinAbs(env *Env, args []*Value) (*Value, error) {
	nums, err := numbers("abs", args)
	if err != nil {
		return nil, err
	}
	if len(nums) != 1 {
		return nil, fmt.Errorf("abs: expected exactly 1 argument, got %d", len(nums))
	}
	return NewNumber(math.Abs(nums[0])), nil
}

func builtinSqrt(env *Env, args []*Value) (*Value, error) {
	nums, err := numbers("sqrt", args)
	if err != nil {
		return nil, err
	}
	if len(nums) != 1 {
		return nil, fmt.Errorf("sqrt: expected exactly 1 argument, got %d", len(nums))
	}
	if nums[0] < 0 {
		return nil, fmt.Errorf("sqrt: negative argument %g", nums[0])
	}
	return NewNumber(math.Sqrt(nums[0])), nil
}

func builtinExpt(env *Env, args []*Value) (*Value, error) {
	nums, err := numbers("expt", args)
	if err != nil {
		return nil, err
	}
	if len(nums) != 2 {
		return nil, fmt.Errorf("expt: expected exactly 2 arguments, got %d", len(nums))
	}
	return NewNumber(math.Pow(nums[0], nums[1])), nil
}
