package lisp

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// registerExt installs the string, json, and regexp operators that sit
// outside the core arithmetic/list/predicate library.
func registerExt(env *Env) {
	env.Put("string-upcase", NewBuiltin("string-upcase", builtinStringUpcase))
	env.Put("string-downcase", NewBuiltin("string-downcase", builtinStringDowncase))
	env.Put("string-append", NewBuiltin("string-append", builtinStringAppend))
	env.Put("string-split", NewBuiltin("string-split", builtinStringSplit))
	env.Put("string-trim", NewBuiltin("string-trim", builtinStringTrim))
	env.Put("string-length", NewBuiltin("string-length", builtinStringLength))
	env.Put("json-encode", NewBuiltin("json-encode", builtinJSONEncode))
	env.Put("json-decode", NewBuiltin("json-decode", builtinJSONDecode))
	env.Put("regexp-match?", NewBuiltin("regexp-match?", builtinRegexpMatch))
}

func requireStr(op string, v *Value) (string, error) {
	if v.Type != Str {
		return "", fmt.Errorf("%s: expected a string, got %s", op, v.Type)
	}
	return v.Str, nil
}

func builtinStringUpcase(env *Env, args []*Value) (*Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("string-upcase: expected exactly 1 argument, got %d", len(args))
	}
	s, err := requireStr("string-upcase", args[0])
	if err != nil {
		return nil, err
	}
	return NewStr(strings.ToUpper(s)), nil
}

func builtinStringDowncase(env *Env, args []*Value) (*Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("string-downcase: expected exactly 1 argument, got %d", len(args))
	}
	s, err := requireStr("string-downcase", args[0])
	if err != nil {
		return nil, err
	}
	return NewStr(strings.ToLower(s)), nil
}

func builtinStringAppend(env *Env, args []*Value) (*Value, error) {
	var buf strings.Builder
	for _, a := range args {
		s, err := requireStr("string-append", a)
		if err != nil {
			return nil, err
		}
		buf.WriteString(s)
	}
	return NewStr(buf.String()), nil
}

func builtinStringSplit(env *Env, args []*Value) (*Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("string-split: expected exactly 2 arguments, got %d", len(args))
	}
	s, err := requireStr("string-split", args[0])
	if err != nil {
		return nil, err
	}
	sep, err := requireStr("string-split", args[1])
	if err != nil {
		return nil, err
	}
	parts := strings.Split(s, sep)
	cells := make([]*Value, len(parts))
	for i, p := range parts {
		cells[i] = NewStr(p)
	}
	return NewList(cells...), nil
}

func builtinStringTrim(env *Env, args []*Value) (*Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("string-trim: expected exactly 1 argument, got %d", len(args))
	}
	s, err := requireStr("string-trim", args[0])
	if err != nil {
		return nil, err
	}
	return NewStr(strings.TrimSpace(s)), nil
}

func builtinStringLength(env *Env, args []*Value) (*Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("string-length: expected exactly 1 argument, got %d", len(args))
	}
	s, err := requireStr("string-length", args[0])
	if err != nil {
		return nil, err
	}
	return NewNumber(float64(len(s))), nil
}

// builtinJSONEncode renders v as a JSON document, recursing through List,
// Str, Number, and Bool the way json.Marshal would over an equivalent Go
// value; Null and the empty list both encode as "null".
func builtinJSONEncode(env *Env, args []*Value) (*Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("json-encode: expected exactly 1 argument, got %d", len(args))
	}
	native, err := toNative(args[0])
	if err != nil {
		return nil, err
	}
	out, err := json.Marshal(native)
	if err != nil {
		return nil, fmt.Errorf("json-encode: %v", err)
	}
	return NewStr(string(out)), nil
}

func builtinJSONDecode(env *Env, args []*Value) (*Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("json-decode: expected exactly 1 argument, got %d", len(args))
	}
	s, err := requireStr("json-decode", args[0])
	if err != nil {
		return nil, err
	}
	var native interface{}
	if err := json.Unmarshal([]byte(s), &native); err != nil {
		return nil, fmt.Errorf("json-decode: %v", err)
	}
	return fromNative(native), nil
}

func toNative(v *Value) (interface{}, error) {
	switch v.Type {
	case Null:
		return nil, nil
	case Number:
		return v.Num, nil
	case Bool:
		return v.B, nil
	case Str:
		return v.Str, nil
	case Symbol:
		return v.Sym, nil
	case List:
		if len(v.Cells) == 0 {
			return nil, nil
		}
		out := make([]interface{}, len(v.Cells))
		for i, c := range v.Cells {
			n, err := toNative(c)
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	default:
		return nil, fmt.Errorf("json-encode: cannot encode a %s", v.Type)
	}
}

func fromNative(native interface{}) *Value {
	switch n := native.(type) {
	case nil:
		return NewNull()
	case float64:
		return NewNumber(n)
	case bool:
		return NewBool(n)
	case string:
		return NewStr(n)
	case []interface{}:
		cells := make([]*Value, len(n))
		for i, item := range n {
			cells[i] = fromNative(item)
		}
		return NewList(cells...)
	case map[string]interface{}:
		// Objects decode to a flat (key value key value ...) list;
		// there are no cons cells to build a dotted alist from.
		cells := make([]*Value, 0, len(n)*2)
		for k, item := range n {
			cells = append(cells, NewStr(k), fromNative(item))
		}
		return NewList(cells...)
	default:
		return NewNull()
	}
}

func builtinRegexpMatch(env *Env, args []*Value) (*Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("regexp-match?: expected exactly 2 arguments, got %d", len(args))
	}
	pattern, err := requireStr("regexp-match?", args[0])
	if err != nil {
		return nil, err
	}
	s, err := requireStr("regexp-match?", args[1])
	if err != nil {
		return nil, err
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("regexp-match?: %v", err)
	}
	return NewBool(re.MatchString(s)), nil
}
