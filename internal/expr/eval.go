package expr

import (
	"errors"
	"math"
)

var (
	// ErrInvalidGrammar reports a character outside the puzzle grammar.
	ErrInvalidGrammar = errors.New("expression contains characters outside the puzzle grammar")
	// ErrEvaluation reports a malformed expression, division by zero, or a
	// non-finite result.
	ErrEvaluation = errors.New("expression cannot be evaluated")
)

// Eval evaluates a restricted arithmetic expression with the usual operator
// precedence. Every character must be a digit, + - * /, or a parenthesis;
// anything else is rejected before parsing. The parser is a closed
// recursive-descent evaluator over that grammar, never a general
// interpreter. Division by zero and non-finite results fail with
// ErrEvaluation rather than producing Inf or NaN.
func Eval(s string) (float64, error) {
	for i := 0; i < len(s); i++ {
		if !Allowed(s[i]) {
			return 0, ErrInvalidGrammar
		}
	}
	p := &parser{src: s}
	v, err := p.expr()
	if err != nil {
		return 0, err
	}
	if p.pos != len(p.src) {
		return 0, ErrEvaluation
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrEvaluation
	}
	return v, nil
}

// Allowed reports whether c belongs to the puzzle grammar.
func Allowed(c byte) bool {
	return isDigit(c) || isOperator(c) || c == '(' || c == ')'
}

type parser struct {
	src string
	pos int
}

func (p *parser) peek() byte {
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) next() byte {
	c := p.peek()
	p.pos++
	return c
}

// expr := term (('+'|'-') term)*
func (p *parser) expr() (float64, error) {
	v, err := p.term()
	if err != nil {
		return 0, err
	}
	for {
		switch p.peek() {
		case '+':
			p.next()
			t, err := p.term()
			if err != nil {
				return 0, err
			}
			v += t
		case '-':
			p.next()
			t, err := p.term()
			if err != nil {
				return 0, err
			}
			v -= t
		default:
			return v, nil
		}
	}
}

// term := factor (('*'|'/') factor)*
func (p *parser) term() (float64, error) {
	v, err := p.factor()
	if err != nil {
		return 0, err
	}
	for {
		switch p.peek() {
		case '*':
			p.next()
			f, err := p.factor()
			if err != nil {
				return 0, err
			}
			v *= f
		case '/':
			p.next()
			f, err := p.factor()
			if err != nil {
				return 0, err
			}
			if f == 0 {
				return 0, ErrEvaluation
			}
			v /= f
		default:
			return v, nil
		}
	}
}

// factor := number | '(' expr ')' | ('+'|'-') factor
//
// Unary signs are accepted because players can reorder pool tokens into
// prefix-minus shapes like "-3+4", which are still within the grammar.
func (p *parser) factor() (float64, error) {
	switch c := p.peek(); {
	case c == '(':
		p.next()
		v, err := p.expr()
		if err != nil {
			return 0, err
		}
		if p.next() != ')' {
			return 0, ErrEvaluation
		}
		return v, nil
	case c == '+':
		p.next()
		return p.factor()
	case c == '-':
		p.next()
		v, err := p.factor()
		if err != nil {
			return 0, err
		}
		return -v, nil
	case isDigit(c):
		return p.number(), nil
	default:
		return 0, ErrEvaluation
	}
}

func (p *parser) number() float64 {
	n := 0.0
	for isDigit(p.peek()) {
		n = n*10 + float64(p.next()-'0')
	}
	return n
}
