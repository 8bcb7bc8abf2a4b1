// Package lisp implements the core of a small Lisp dialect: value
// representation, the lexically-scoped environment, and a tree-walking
// evaluator with a builtin operator library.
package lisp

// ValueType is the tag of a Value.
type ValueType uint

// Possible ValueType values.
const (
	Invalid ValueType = iota
	Number
	Bool
	Symbol
	Str
	List
	Builtin
	Lambda
	Null
)

var valueTypeStrings = []string{
	Invalid: "invalid",
	Number:  "number",
	Bool:    "bool",
	Symbol:  "symbol",
	Str:     "string",
	List:    "list",
	Builtin: "builtin",
	Lambda:  "lambda",
	Null:    "null",
}

func (t ValueType) String() string {
	if int(t) >= len(valueTypeStrings) {
		return valueTypeStrings[Invalid]
	}
	return valueTypeStrings[t]
}

// BuiltinFunc is the signature of a host-implemented operator. args is the
// already-evaluated argument list passed as Cells.
type BuiltinFunc func(env *Env, args []*Value) (*Value, error)

// Value is a Lisp value. The reader only ever produces Number, Bool, Symbol,
// Str, and List values; Builtin and Lambda values arise solely from
// evaluation. A single struct with a type tag (rather than a Go interface
// with sealed implementations) is used so that List's Cells slice can be
// aliased and mutated in place by setf.
type Value struct {
	Type ValueType

	Num float64
	B   bool
	Sym string
	Str string

	Cells []*Value // List

	Name        string // Builtin name, for error messages and printing
	BuiltinFunc BuiltinFunc

	Params  []string // Lambda parameter names
	Body    []*Value // Lambda body forms
	Closure *Env     // Lambda's captured definition-time environment
}

// NewNumber returns a Value representing the number x.
func NewNumber(x float64) *Value {
	return &Value{Type: Number, Num: x}
}

// NewBool returns a Value representing the boolean b.
func NewBool(b bool) *Value {
	return &Value{Type: Bool, B: b}
}

// NewSymbol returns a Value representing the symbol s.
func NewSymbol(s string) *Value {
	return &Value{Type: Symbol, Sym: s}
}

// NewStr returns a Value representing the string s.
func NewStr(s string) *Value {
	return &Value{Type: Str, Str: s}
}

// NewList returns a Value representing a list of the given cells.
func NewList(cells ...*Value) *Value {
	return &Value{Type: List, Cells: cells}
}

// NewNull returns the Null value.
func NewNull() *Value {
	return &Value{Type: Null}
}

// NewBuiltin returns a Value representing a host-implemented operator.
func NewBuiltin(name string, fn BuiltinFunc) *Value {
	return &Value{Type: Builtin, Name: name, BuiltinFunc: fn}
}

// NewLambda returns a Value representing a user-defined function that
// closes over env.
func NewLambda(params []string, body []*Value, env *Env) *Value {
	return &Value{Type: Lambda, Params: params, Body: body, Closure: env}
}

// IsNil reports whether v is the empty list or Null, the two "nil-ish"
// values produced by the reader and the evaluator respectively.
func (v *Value) IsNil() bool {
	return v.Type == Null || (v.Type == List && len(v.Cells) == 0)
}

// IsCallable reports whether v can be invoked as a procedure.
func (v *Value) IsCallable() bool {
	return v.Type == Builtin || v.Type == Lambda
}

// Copy returns a shallow copy of v. List cells, Body forms, and the
// Closure pointer are shared with the original.
func (v *Value) Copy() *Value {
	if v == nil {
		return nil
	}
	cp := *v
	return &cp
}

// Truthiness returns the boolean interpretation of v for if/cond. Only
// Bool(false) is falsy; the empty list is truthy here even though it is
// conventionally "nil" in most Lisps.
func Truthiness(v *Value) bool {
	if v.Type == Bool {
		return v.B
	}
	return true
}

// GenericTruthiness is the wider falsy test used by `and`/`or`, which also
// treats Null as falsy in addition to Bool(false).
func GenericTruthiness(v *Value) bool {
	if v.Type == Null {
		return false
	}
	return Truthiness(v)
}

func (v *Value) String() string {
	return Print(v)
}
