package checker

import (
	"context"
	"testing"

	"svw.info/numble/internal/domain"
	"svw.info/numble/internal/expr"
)

func puzzle14() *domain.Puzzle {
	e := "(3+4)*2"
	return &domain.Puzzle{Expression: e, Tokens: expr.Tokenize(e), Target: 14}
}

func TestCheckVerdicts(t *testing.T) {
	c := New()
	puz := puzzle14()
	cases := []struct {
		name     string
		equation string
		verdict  domain.Verdict
		value    int
	}{
		{"correct", "(3+4)*2", domain.Correct, 14},
		{"correct with spaces", " (3+4) * 2 ", domain.Correct, 14},
		{"reordered correct", "2*(4+3)", domain.Correct, 14},
		{"wrong answer", "3+4*2", domain.WrongAnswer, 11},
		{"unbalanced", "3+(4*", domain.UnbalancedParens, 0},
		{"close before open", ")3+4(", domain.UnbalancedParens, 0},
		{"bad grammar", "3+4a", domain.InvalidGrammar, 0},
		{"dangling operator", "3+4*", domain.EvaluationError, 0},
		{"division by zero", "3/(4-4)", domain.EvaluationError, 0},
		{"empty", "", domain.EvaluationError, 0},
		{"fractional", "7/2", domain.NotWholeNumber, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := c.Check(context.Background(), tc.equation, puz)
			if err != nil {
				t.Fatalf("Check failed: %v", err)
			}
			if res.Verdict != tc.verdict {
				t.Fatalf("verdict = %v, want %v (msg: %s)", res.Verdict, tc.verdict, res.Message)
			}
			if res.Verdict == domain.Correct || res.Verdict == domain.WrongAnswer {
				if res.Value != tc.value {
					t.Fatalf("value = %d, want %d", res.Value, tc.value)
				}
				if res.Target != puz.Target {
					t.Fatalf("target = %d, want %d", res.Target, puz.Target)
				}
			}
		})
	}
}

func TestCheckDeterministic(t *testing.T) {
	c := New()
	puz := puzzle14()
	first, _ := c.Check(context.Background(), "3+4*2", puz)
	for i := 0; i < 10; i++ {
		got, _ := c.Check(context.Background(), "3+4*2", puz)
		if got != first {
			t.Fatalf("check not deterministic: %+v vs %+v", got, first)
		}
	}
}
