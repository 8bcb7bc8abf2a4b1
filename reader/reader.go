// Package reader consumes a token stream and produces one Value per
// top-level form. The AST alphabet is the same Value type the evaluator
// manipulates -- there is no separate node hierarchy.
package reader

import (
	"strconv"

	"github.com/apavazza/golisp/lisp"
	"github.com/apavazza/golisp/lexer"
	"github.com/apavazza/golisp/token"
)

// ReadError reports a syntactic failure such as a missing closing paren.
type ReadError struct {
	Message string
}

func (e *ReadError) Error() string {
	return e.Message
}

// IsIncomplete reports whether err indicates source text that ended in
// the middle of a form. An interactive caller can treat this as a
// continuation prompt rather than a failure.
func IsIncomplete(err error) bool {
	re, ok := err.(*ReadError)
	if !ok {
		return false
	}
	return re.Message == "Missing closing parenthesis" || re.Message == "Unexpected EOF"
}

// Reader reads successive top-level forms from a fixed token stream.
type Reader struct {
	tokens []token.Token
	pos    int
}

// New tokenizes source and returns a Reader over the resulting tokens.
func New(source string) (*Reader, error) {
	tokens, err := lexer.Tokenize(source)
	if err != nil {
		if le, ok := err.(*lexer.LexError); ok {
			return nil, &ReadError{Message: le.Message}
		}
		return nil, &ReadError{Message: err.Error()}
	}
	return &Reader{tokens: tokens}, nil
}

func (r *Reader) current() token.Token {
	return r.tokens[r.pos]
}

func (r *Reader) advance() token.Token {
	tok := r.tokens[r.pos]
	if r.pos < len(r.tokens)-1 {
		r.pos++
	}
	return tok
}

// AtEOF reports whether the reader has consumed every token but the final
// EOF marker.
func (r *Reader) AtEOF() bool {
	return r.current().Type == token.EOF
}

// Read consumes and returns the next top-level form. It returns (nil, nil)
// once the token stream is exhausted.
func (r *Reader) Read() (*lisp.Value, error) {
	if r.AtEOF() {
		return nil, nil
	}
	return r.readForm()
}

func (r *Reader) readForm() (*lisp.Value, error) {
	tok := r.current()
	switch tok.Type {
	case token.EOF:
		return nil, &ReadError{Message: "Unexpected EOF"}
	case token.RParen:
		return nil, &ReadError{Message: "Unexpected closing parenthesis"}
	case token.Quote:
		r.advance()
		inner, err := r.readForm()
		if err != nil {
			return nil, err
		}
		return lisp.NewList(lisp.NewSymbol("quote"), inner), nil
	case token.LParen:
		return r.readList()
	case token.Str:
		r.advance()
		return lisp.NewStr(tok.Text), nil
	case token.Atom:
		r.advance()
		return r.readAtom(tok.Text), nil
	default:
		r.advance()
		return nil, &ReadError{Message: "Unexpected token"}
	}
}

func (r *Reader) readList() (*lisp.Value, error) {
	r.advance() // consume '('
	var cells []*lisp.Value
	for {
		if r.current().Type == token.EOF {
			return nil, &ReadError{Message: "Missing closing parenthesis"}
		}
		if r.current().Type == token.RParen {
			r.advance()
			return lisp.NewList(cells...), nil
		}
		form, err := r.readForm()
		if err != nil {
			return nil, err
		}
		cells = append(cells, form)
	}
}

func (r *Reader) readAtom(text string) *lisp.Value {
	switch text {
	case "nil":
		return lisp.NewList()
	case "t":
		return lisp.NewBool(true)
	}
	if n, err := strconv.ParseFloat(text, 64); err == nil {
		return lisp.NewNumber(n)
	}
	return lisp.NewSymbol(text)
}
