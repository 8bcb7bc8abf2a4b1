package interp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apavazza/golisp/interp"
)

type scenario struct {
	name    string
	program string
	want    string
}

func runScenarios(t *testing.T, tests []scenario) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := interp.Evaluate(tt.program, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestAtoms(t *testing.T) {
	runScenarios(t, []scenario{
		{"number literal", `(print 42)`, "42"},
		{"float literal", `(print 2.5)`, "2.5"},
		{"negative literal", `(print -7)`, "-7"},
		{"string literal", `(print "hello")`, "hello"},
		{"bool t", `(print t)`, "true"},
		{"nil prints as NIL", `(print nil) (print (list))`, "NIL\nNIL"},
		{"empty program", ``, ""},
		{"comment only", `; nothing here`, ""},
	})
}

func TestArithmetic(t *testing.T) {
	runScenarios(t, []scenario{
		{"basic ops", `(print (+ 1 2 3 4)) (print (- 10 5)) (print (* 2 3 4)) (print (/ 10 2))`, "10\n5\n24\n5"},
		{"add identity", `(print (+)) (print (+ 5))`, "0\n5"},
		{"mul identity", `(print (*)) (print (* 5))`, "1\n5"},
		{"unary minus", `(print (- 3))`, "-3"},
		{"unary div", `(print (/ 4))`, "0.25"},
		{"nary div", `(print (/ 24 2 3))`, "4"},
		{"mod", `(print (mod 7 3)) (print (mod -7 3))`, "1\n-1"},
		{"comparisons", `(print (< 1 2)) (print (> 1 2)) (print (<= 2 2)) (print (>= 1 2)) (print (= 3 3))`, "true\nfalse\ntrue\nfalse\ntrue"},
		{"max min", `(print (max 1 9 4)) (print (min 1 9 4))`, "9\n1"},
		{"abs sqrt", `(print (abs -3)) (print (sqrt 16))`, "3\n4"},
		{"expt", `(print (expt 2 10))`, "1024"},
		{"division result prints fraction", `(print (/ 10 4))`, "2.5"},
	})
}

func TestLists(t *testing.T) {
	runScenarios(t, []scenario{
		{"car cons", `(print (car (cons 9 (list 1 2))))`, "9"},
		{"cdr cons", `(print (cdr (cons 9 (list 1 2))))`, "(1 2)"},
		{"first rest aliases", `(print (first (list 1 2))) (print (rest (list 1 2)))`, "1\n(2)"},
		{"append", `(print (append (list 1 2) (list 3) (list 4 5)))`, "(1 2 3 4 5)"},
		{"reverse", `(print (reverse (list 1 2 3)))`, "(3 2 1)"},
		{"reverse involution", `(print (equal (reverse (reverse (list 1 2 3))) (list 1 2 3)))`, "true"},
		{"length", `(print (length (list 1 2 3))) (print (length nil))`, "3\n0"},
		{"nth", `(print (nth 0 (list 4 5 6))) (print (nth 2 (list 4 5 6)))`, "4\n6"},
		{"accessors", `(setq L (list 1 2 3 4 5)) (print (second L)) (print (third L)) (print (fourth L)) (print (fifth L)) (print (cadr L)) (print (caddr L)) (print (cadddr L))`, "2\n3\n4\n5\n2\n3\n4"},
		{"member found", `(print (member 2 (list 1 2 3)))`, "(2 3)"},
		{"member missing", `(print (member 9 (list 1 2 3)))`, "false"},
		{"member is identity not structural", `(print (member (list 1) (list (list 1))))`, "false"},
		{"subseq", `(print (subseq (list 1 2 3 4) 1 3)) (print (subseq (list 1 2 3 4) 2))`, "(2 3)\n(3 4)"},
		{"nested list printing", `(print (list 1 (list 2 3) "s"))`, "(1 (2 3) s)"},
		{"lambda in a list", `(print (list 1 (lambda (x) x)))`, "(1 #<FUNCTION>)"},
	})
}

func TestPredicates(t *testing.T) {
	runScenarios(t, []scenario{
		{"listp", `(print (listp (list 1))) (print (listp 1))`, "true\nfalse"},
		{"atom", `(print (atom 1)) (print (atom (list 1))) (print (atom nil))`, "true\nfalse\ntrue"},
		{"null", `(print (null nil)) (print (null (list 1)))`, "true\nfalse"},
		{"numberp", `(print (numberp 1)) (print (numberp "1"))`, "true\nfalse"},
		{"symbolp", `(print (symbolp (quote x))) (print (symbolp 1))`, "true\nfalse"},
		{"zerop plusp minusp", `(print (zerop 0)) (print (plusp 2)) (print (minusp -2))`, "true\ntrue\ntrue"},
		{"eq scalars", `(print (eq 1 1)) (print (eq "a" "a")) (print (eq (quote x) (quote x)))`, "true\ntrue\ntrue"},
		{"eq lists by identity", `(print (eq (list 1) (list 1)))`, "false"},
		{"equal structural", `(print (equal (list 1 (list 2)) (list 1 (list 2))))`, "true"},
		{"not", `(print (not (= 1 2))) (print (not 1))`, "true\nfalse"},
	})
}

func TestSpecialForms(t *testing.T) {
	runScenarios(t, []scenario{
		{"quote", `(print (quote (1 a "s")))`, "(1 a s)"},
		{"quote sugar", `(print '(1 2 3))`, "(1 2 3)"},
		{"if true branch", `(print (if (< 1 2) "yes" "no"))`, "yes"},
		{"if false branch", `(print (if (> 1 2) "yes" "no"))`, "no"},
		{"if without else", `(print (if (= 1 2) 1))`, "NIL"},
		{"empty list is truthy in if", `(print (if nil 1 2))`, "1"},
		{"cond first match wins", `(print (cond ((= 1 2) "a") ((= 1 1) "b") (t "c")))`, "b"},
		{"cond test-only clause", `(print (cond ((= 1 2)) (7)))`, "7"},
		{"case", `(print (case 2 ((1) "one") ((2 3) "two-or-three") (otherwise "other")))`, "two-or-three"},
		{"case otherwise", `(print (case 9 ((1) "one") (otherwise "other")))`, "other"},
		{"case t fallthrough", `(print (case 9 ((1) "one") (t "fallthrough")))`, "fallthrough"},
		{"let", `(print (let ((x 1) (y 2)) (+ x y)))`, "3"},
		{"let later bindings see earlier", `(print (let ((x 1) (y (+ x 1))) (+ x y)))`, "3"},
		{"progn", `(print (progn 1 2 3))`, "3"},
		{"begin alias", `(print (begin 1 2))`, "2"},
		{"setq returns last value", `(print (setq a 1 b 2))`, "2"},
		{"setq binds", `(setq x 41) (print (+ x 1))`, "42"},
		{"eval", `(print (eval (quote (+ 1 2))))`, "3"},
		{"defun returns name", `(print (defun f (x) x))`, "f"},
		{"lambda direct call", `(print ((lambda (x y) (+ x y)) 3 4))`, "7"},
	})
}

func TestAndOr(t *testing.T) {
	runScenarios(t, []scenario{
		{"and all truthy", `(print (and 1 2 3))`, "true"},
		{"and empty", `(print (and))`, "true"},
		{"and falsy", `(print (and 1 (= 1 2) 2))`, "false"},
		{"or returns first truthy", `(print (or (= 1 2) 7 8))`, "7"},
		{"or empty", `(print (or))`, "false"},
		{"empty list is truthy in or", `(print (or nil 7))`, "NIL"},
		{"and short-circuits", `(setq n 0) (and (= 1 2) (setq n 1)) (print n)`, "0"},
		{"or short-circuits", `(setq n 0) (or 1 (setq n 1)) (print n)`, "0"},
	})
}

func TestLoops(t *testing.T) {
	runScenarios(t, []scenario{
		{"do counts", `(do ((i 0 (+ i 1))) ((= i 3)) (print i))`, "0\n1\n2"},
		{"do parallel step swap", `(do ((a 1 b) (b 2 a)) ((= a 2) (print a) (print b)))`, "2\n1"},
		{"do result forms", `(print (do ((i 0 (+ i 1))) ((= i 2) "done")))`, "done"},
		{"dolist", `(dolist (x (list 1 2 3)) (print x))`, "1\n2\n3"},
		{"dolist result sees var as nil", `(print (dolist (x (list 1 2) x)))`, "NIL"},
		{"dolist default result", `(print (dolist (x (list 1))))`, "NIL"},
		{"dotimes", `(dotimes (i 3) (print i))`, "0\n1\n2"},
		{"dotimes result sees count", `(print (dotimes (i 2 i)))`, "2"},
		{"dotimes zero iterations", `(dotimes (i 0) (print i)) (print "after")`, "after"},
	})
}

func TestFunctionsAndClosures(t *testing.T) {
	runScenarios(t, []scenario{
		{"factorial", `(defun factorial (n) (if (= n 0) 1 (* n (factorial (- n 1))))) (print (factorial 5))`, "120"},
		{"fibonacci", `(defun fib (n) (cond ((= n 0) 0) ((= n 1) 1) (t (+ (fib (- n 1)) (fib (- n 2)))))) (print (fib 10))`, "55"},
		{"mapcar with quoted name", `(defun sq (x) (* x x)) (print (mapcar (quote sq) (list 1 2 3 4 5)))`, "(1 4 9 16 25)"},
		{"mapcar stops at shortest", `(print (mapcar (quote +) (list 1 2 3) (list 10 20)))`, "(11 22)"},
		{"funcall with lambda", `(print (funcall (lambda (x) (* 2 x)) 21))`, "42"},
		{"funcall with symbol", `(defun inc (x) (+ x 1)) (print (funcall (quote inc) 4))`, "5"},
		{"apply", `(print (apply (quote +) (list 1 2 3)))`, "6"},
		{"closure captures let frame", `(setq f (let ((x 5)) (lambda () x))) (print (funcall f))`, "5"},
		{"closure sees later globals", `(defun g () (h)) (defun h () 42) (print (g))`, "42"},
		{"nested defun goes global", `(defun mk () (defun helper () 7) t) (mk) (print (helper))`, "7"},
		{"higher-order return", `(defun adder (n) (lambda (x) (+ x n))) (print (funcall (adder 10) 5))`, "15"},
	})
}

func TestSetf(t *testing.T) {
	runScenarios(t, []scenario{
		{"setf on symbol", `(setf x 3) (print x)`, "3"},
		{"setf car mutates in place", `(setq L (list 1 2 3)) (setf (car L) 9) (print L)`, "(9 2 3)"},
		{"setf nth mutates in place", `(setq L (list 1 2 3)) (setf (nth 2 L) 7) (print L)`, "(1 2 7)"},
		{"setf returns value", `(setq L (list 1)) (print (setf (car L) 5))`, "5"},
		{"mutation visible through alias", `(setq L (list 1 2)) (setq M L) (setf (car L) 9) (print M)`, "(9 2)"},
	})
}

func TestIO(t *testing.T) {
	runScenarios(t, []scenario{
		{"print joins with spaces", `(print 1 "a" (list 2 3))`, "1 a (2 3)"},
		{"print returns last argument", `(print (print 1 2))`, "1 2\n2"},
		{"prin1", `(prin1 "hi")`, "hi"},
		{"format to t", `(format t "x=%s y=%d" 1 2)`, "x=1 y=2"},
		{"format returns rendered string", `(print (format t "%s!" "ok"))`, "ok!\nok!"},
		{"format to nil emits nothing", `(format nil "never seen") (print "done")`, "done"},
		{"format literal percent", `(format t "100%% sure")`, "100% sure"},
		{"format to quoted t", `(format 't "quoted %s" "stream")`, "quoted stream"},
		{"exit does not halt", `(print 1) (exit) (print 2)`, "1\nExiting Lisp interpreter\n2"},
		{"bye alias", `(bye)`, "Exiting Lisp interpreter"},
	})
}

func TestReadLine(t *testing.T) {
	lines := []string{"hello", "world"}
	input := func() (string, bool) {
		if len(lines) == 0 {
			return "", true
		}
		line := lines[0]
		lines = lines[1:]
		return line, true
	}
	out, err := interp.Evaluate(`(print (read-line)) (print (read-line))`, input)
	require.NoError(t, err)
	assert.Equal(t, "hello\nworld", out)
}

func TestReadLineWithoutProvider(t *testing.T) {
	_, err := interp.Evaluate(`(read-line)`, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read-line")
}

func TestStringAndExtOps(t *testing.T) {
	runScenarios(t, []scenario{
		{"string-upcase", `(print (string-upcase "abc"))`, "ABC"},
		{"string-downcase", `(print (string-downcase "ABC"))`, "abc"},
		{"string-append", `(print (string-append "foo" "-" "bar"))`, "foo-bar"},
		{"string-length", `(print (string-length "four"))`, "4"},
		{"string-split", `(print (string-split "a,b,c" ","))`, "(a b c)"},
		{"string-trim", `(print (string-trim "  x  "))`, "x"},
		{"sort", `(print (sort (list 3 1 2) (quote <)))`, "(1 2 3)"},
		{"select", `(defun evenp (x) (= (mod x 2) 0)) (print (select (quote evenp) (list 1 2 3 4)))`, "(2 4)"},
		{"reject", `(defun evenp (x) (= (mod x 2) 0)) (print (reject (quote evenp) (list 1 2 3 4)))`, "(1 3)"},
		{"zip", `(print (zip (list 1 2) (list "a" "b")))`, "((1 a) (2 b))"},
		{"json-encode", `(print (json-encode (list 1 t "x")))`, `[1,true,"x"]`},
		{"json-decode", `(print (json-decode "[1,true,\"x\"]"))`, "(1 true x)"},
		{"json round trip", `(print (json-decode (json-encode (list 1 (list 2 3)))))`, "(1 (2 3))"},
		{"regexp-match", `(print (regexp-match? "^a+$" "aaa")) (print (regexp-match? "^a+$" "ab"))`, "true\nfalse"},
	})
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name    string
		program string
		wantSub string
	}{
		{"unknown symbol", `(foo 1)`, "Unknown symbol: foo"},
		{"car of empty list", `(car (list))`, "car"},
		{"non-numeric addition", `(+ 1 "a")`, "+: All arguments must be numbers"},
		{"wrapped builtin error", `(+ 1 "a")`, "Error in procedure +"},
		{"not a procedure", `(1 2)`, "Not a procedure: 1"},
		{"unterminated string", `(print "abc`, "Unterminated string literal"},
		{"missing closing paren", `(print 1`, "Missing closing parenthesis"},
		{"unexpected closing paren", `)`, "Unexpected closing parenthesis"},
		{"sqrt of negative", `(sqrt -1)`, "sqrt"},
		{"division by zero", `(/ 1 0)`, "division by zero"},
		{"nth out of bounds", `(nth 5 (list 1 2))`, "nth"},
		{"second of short list", `(second (list 1))`, "second"},
		{"dotimes negative count", `(dotimes (i -1) (print i))`, "dotimes"},
		{"lambda arity mismatch", `((lambda (x) x) 1 2)`, "lambda"},
		{"setf bad accessor", `(setq L (list 1)) (setf (cdr L) 2)`, "setf"},
		{"quote arity", `(quote 1 2)`, "quote"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := interp.Evaluate(tt.program, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantSub)
			assert.Empty(t, out, "buffered output must be discarded on error")
		})
	}
}

func TestOutputDiscardedOnError(t *testing.T) {
	out, err := interp.Evaluate(`(print "before") (car (list))`, nil)
	require.Error(t, err)
	assert.Empty(t, out)
}
