package lisp

import (
	"strconv"
	"strings"
)

// Print renders v in its canonical printed form, used by the I/O builtins
// and error messages.
func Print(v *Value) string {
	switch v.Type {
	case Null:
		return "NIL"
	case List:
		if len(v.Cells) == 0 {
			return "NIL"
		}
		parts := make([]string, len(v.Cells))
		for i, c := range v.Cells {
			parts[i] = Print(c)
		}
		return "(" + strings.Join(parts, " ") + ")"
	case Builtin, Lambda:
		return "#<FUNCTION>"
	case Str:
		return v.Str
	case Symbol:
		return v.Sym
	case Bool:
		if v.B {
			return "true"
		}
		return "false"
	case Number:
		return formatNumber(v.Num)
	default:
		return "NIL"
	}
}

// formatNumber renders a float using the host's default textual form,
// printing without a fractional part when the value is integral.
func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'g', -1, 64)
}
