// Package checker validates a candidate equation against a puzzle target.
package checker

import (
	"context"
	"fmt"
	"math"
	"strings"
	"unicode"

	"svw.info/numble/internal/domain"
	"svw.info/numble/internal/expr"
)

const intTolerance = 1e-9

// Checker runs the verdict pipeline. Check order matters: grammar and
// structural failures must surface before evaluator ones, so a stray
// character is reported as bad grammar rather than a parse error.
type Checker struct{}

func New() *Checker { return &Checker{} }

// Check classifies the equation. Verdicts are data, not errors; the error
// return exists for the port contract and is always nil here.
func (c *Checker) Check(ctx context.Context, equation string, p *domain.Puzzle) (domain.CheckResult, error) {
	eq := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, equation)

	for i := 0; i < len(eq); i++ {
		if !expr.Allowed(eq[i]) {
			return domain.CheckResult{
				Verdict: domain.InvalidGrammar,
				Target:  p.Target,
				Message: "only digits, + - * / and parentheses are allowed",
			}, nil
		}
	}
	if !balanced(eq) {
		return domain.CheckResult{
			Verdict: domain.UnbalancedParens,
			Target:  p.Target,
			Message: "parentheses are not balanced",
		}, nil
	}
	v, err := expr.Eval(eq)
	if err != nil {
		return domain.CheckResult{
			Verdict: domain.EvaluationError,
			Target:  p.Target,
			Message: "the equation cannot be evaluated",
		}, nil
	}
	rounded := math.Round(v)
	if math.Abs(v-rounded) > intTolerance {
		return domain.CheckResult{
			Verdict: domain.NotWholeNumber,
			Target:  p.Target,
			Message: fmt.Sprintf("result %v is not a whole number", v),
		}, nil
	}
	got := int(rounded)
	if got != p.Target {
		return domain.CheckResult{
			Verdict: domain.WrongAnswer,
			Value:   got,
			Target:  p.Target,
			Message: fmt.Sprintf("equation makes %d, the target is %d", got, p.Target),
		}, nil
	}
	return domain.CheckResult{Verdict: domain.Correct, Value: got, Target: p.Target}, nil
}

// balanced checks parentheses with a running counter: it must never go
// negative and must end at zero.
func balanced(s string) bool {
	open := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			open++
		case ')':
			open--
			if open < 0 {
				return false
			}
		}
	}
	return open == 0
}
