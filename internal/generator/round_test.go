package generator

import (
	"context"
	"math"
	"math/rand"
	"reflect"
	"testing"

	"svw.info/numble/internal/expr"
)

func TestLevelParameters(t *testing.T) {
	cases := []struct {
		level int
		count int
		cap   int
		timer int
	}{
		{1, 3, 3, 70},
		{2, 3, 4, 68},
		{3, 3, 4, 66},
		{4, 4, 5, 64},
		{6, 4, 6, 60},
		{7, 5, 6, 60},
		{10, 6, 8, 60},
		{12, 6, 9, 60},
		{40, 6, 9, 60},
	}
	for _, tc := range cases {
		if got := tokenCount(tc.level); got != tc.count {
			t.Errorf("tokenCount(%d) = %d, want %d", tc.level, got, tc.count)
		}
		if got := magnitudeCap(tc.level); got != tc.cap {
			t.Errorf("magnitudeCap(%d) = %d, want %d", tc.level, got, tc.cap)
		}
		if got := TimerSeconds(tc.level); got != tc.timer {
			t.Errorf("TimerSeconds(%d) = %d, want %d", tc.level, got, tc.timer)
		}
	}
}

func TestPickOperatorStaysInGrammar(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	for _, level := range []int{1, 5, 9} {
		weights := operatorWeights(level)
		for i := 0; i < 1000; i++ {
			op := pickOperator(weights, rng)
			switch op {
			case '+', '-', '*', '/':
			default:
				t.Fatalf("level %d: pickOperator returned %q", level, op)
			}
		}
	}
}

func TestGenerateAcceptedPuzzleInvariants(t *testing.T) {
	g := NewRoundGenerator(NewExprBuilder())
	for _, level := range []int{1, 2, 4, 7, 11} {
		for seed := int64(1); seed <= 10; seed++ {
			p, st, err := g.Generate(context.Background(), seed, level)
			if err != nil {
				t.Fatalf("level %d seed %d: %v", level, seed, err)
			}
			if st.Attempts < 1 || st.Attempts > 400 {
				t.Fatalf("level %d seed %d: attempts = %d", level, seed, st.Attempts)
			}
			v, err := expr.Eval(p.Expression)
			if err != nil {
				t.Fatalf("stored expression %q does not evaluate: %v", p.Expression, err)
			}
			if math.Abs(v-float64(p.Target)) > 1e-9 {
				t.Fatalf("expression %q = %v, stored target %d", p.Expression, v, p.Target)
			}
			if p.Target > 1000 || p.Target < -1000 {
				t.Fatalf("target %d out of range", p.Target)
			}
			if !reflect.DeepEqual(p.Tokens, expr.Tokenize(p.Expression)) {
				t.Fatalf("token sequence %v does not match expression %q", p.Tokens, p.Expression)
			}
			if p.TimerSeconds < 30 {
				t.Fatalf("timer %d below floor", p.TimerSeconds)
			}
		}
	}
}

func TestGenerateDeterministicForSeed(t *testing.T) {
	g := NewRoundGenerator(NewExprBuilder())
	a, _, err := g.Generate(context.Background(), 42, 5)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	b, _, err := g.Generate(context.Background(), 42, 5)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if a.Expression != b.Expression || a.Target != b.Target {
		t.Fatalf("same seed produced %q/%d and %q/%d", a.Expression, a.Target, b.Expression, b.Target)
	}
}

// fractionBuilder always produces a non-integer value, so every attempt
// fails the acceptance filter.
type fractionBuilder struct{}

func (fractionBuilder) Build([]int, []byte, *rand.Rand) (string, float64, error) {
	return "(1/2)", 0.5, nil
}

type failingBuilder struct{}

func (failingBuilder) Build([]int, []byte, *rand.Rand) (string, float64, error) {
	return "", 0, ErrNoExpression
}

func TestGenerateFallsBackAfterExhaustion(t *testing.T) {
	for name, b := range map[string]Builder{
		"non-integer": fractionBuilder{},
		"builder-err": failingBuilder{},
	} {
		t.Run(name, func(t *testing.T) {
			g := NewRoundGenerator(b)
			p, st, err := g.Generate(context.Background(), 7, 3)
			if err != nil {
				t.Fatalf("Generate failed: %v", err)
			}
			if !p.Fallback {
				t.Fatalf("expected fallback puzzle, got %q", p.Expression)
			}
			if p.Expression != FallbackExpression || p.Target != FallbackTarget {
				t.Fatalf("fallback = %q/%d, want %q/%d", p.Expression, p.Target, FallbackExpression, FallbackTarget)
			}
			if st.Attempts != 400 {
				t.Fatalf("attempts = %d, want 400", st.Attempts)
			}
			if v, err := expr.Eval(p.Expression); err != nil || v != float64(p.Target) {
				t.Fatalf("fallback does not self-check: v=%v err=%v", v, err)
			}
		})
	}
}

func TestGenerateHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	g := NewRoundGenerator(fractionBuilder{})
	if _, _, err := g.Generate(ctx, 1, 1); err == nil {
		t.Fatal("expected context error")
	}
}
