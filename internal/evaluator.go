package internal

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// evalBudget bounds a single expression evaluation. The grammar is tiny, so
// any evaluation that runs this long is malformed input.
const evalBudget = 100 * time.Millisecond

// EvalExpression evaluates a small arithmetic expression restricted to
// numeric literals and the operators + - * / ^ with parentheses. No names,
// no built-ins. Used for literal math in keyframe value tokens, e.g.
// "a(2+3)*10@30s".
//
// The evaluator is a recursive-descent walk over the restricted grammar and
// enforces a wall-clock budget so malformed input fails instead of hanging.
func EvalExpression(expr string) (float64, error) {
	for _, c := range expr {
		if !strings.ContainsRune("0123456789.+-*/()^ ", c) {
			return 0, newParseError(expr, "expression contains unsupported characters")
		}
	}

	ev := &evaluator{input: expr, deadline: time.Now().Add(evalBudget)}
	v, err := ev.parseExpr()
	if err != nil {
		return 0, err
	}
	ev.skipSpaces()
	if ev.pos != len(ev.input) {
		return 0, newParseError(expr, "unexpected character at offset %d", ev.pos)
	}
	return v, nil
}

type evaluator struct {
	input    string
	pos      int
	deadline time.Time
}

func (e *evaluator) checkBudget() error {
	if time.Now().After(e.deadline) {
		return newParseError(e.input, "expression evaluation exceeded time budget")
	}
	return nil
}

func (e *evaluator) skipSpaces() {
	for e.pos < len(e.input) && e.input[e.pos] == ' ' {
		e.pos++
	}
}

func (e *evaluator) peek() byte {
	if e.pos >= len(e.input) {
		return 0
	}
	return e.input[e.pos]
}

// expr := term (('+' | '-') term)*
func (e *evaluator) parseExpr() (float64, error) {
	if err := e.checkBudget(); err != nil {
		return 0, err
	}
	left, err := e.parseTerm()
	if err != nil {
		return 0, err
	}
	for {
		e.skipSpaces()
		op := e.peek()
		if op != '+' && op != '-' {
			return left, nil
		}
		e.pos++
		right, err := e.parseTerm()
		if err != nil {
			return 0, err
		}
		if op == '+' {
			left += right
		} else {
			left -= right
		}
	}
}

// term := unary (('*' | '/') unary)*
func (e *evaluator) parseTerm() (float64, error) {
	if err := e.checkBudget(); err != nil {
		return 0, err
	}
	left, err := e.parseUnary()
	if err != nil {
		return 0, err
	}
	for {
		e.skipSpaces()
		op := e.peek()
		if op != '*' && op != '/' {
			return left, nil
		}
		e.pos++
		right, err := e.parseUnary()
		if err != nil {
			return 0, err
		}
		if op == '*' {
			left *= right
		} else {
			left /= right
		}
	}
}

// unary := ('+' | '-')* power
func (e *evaluator) parseUnary() (float64, error) {
	e.skipSpaces()
	switch e.peek() {
	case '+':
		e.pos++
		return e.parseUnary()
	case '-':
		e.pos++
		v, err := e.parseUnary()
		return -v, err
	}
	return e.parsePower()
}

// power := primary ('^' unary)?   (right-associative)
func (e *evaluator) parsePower() (float64, error) {
	base, err := e.parsePrimary()
	if err != nil {
		return 0, err
	}
	e.skipSpaces()
	if e.peek() != '^' {
		return base, nil
	}
	e.pos++
	exp, err := e.parseUnary()
	if err != nil {
		return 0, err
	}
	return math.Pow(base, exp), nil
}

// primary := number | '(' expr ')'
func (e *evaluator) parsePrimary() (float64, error) {
	if err := e.checkBudget(); err != nil {
		return 0, err
	}
	e.skipSpaces()
	if e.peek() == '(' {
		e.pos++
		v, err := e.parseExpr()
		if err != nil {
			return 0, err
		}
		e.skipSpaces()
		if e.peek() != ')' {
			return 0, newParseError(e.input, "missing closing parenthesis")
		}
		e.pos++
		return v, nil
	}

	start := e.pos
	for e.pos < len(e.input) && (e.input[e.pos] == '.' || (e.input[e.pos] >= '0' && e.input[e.pos] <= '9')) {
		e.pos++
	}
	if start == e.pos {
		return 0, newParseError(e.input, "expected a number at offset %d", start)
	}
	v, err := strconv.ParseFloat(e.input[start:e.pos], 64)
	if err != nil {
		return 0, newParseError(e.input, "invalid numeric literal %q", e.input[start:e.pos])
	}
	return v, nil
}
