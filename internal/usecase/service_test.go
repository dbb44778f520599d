package usecase

import (
	"context"
	"math/rand"
	"testing"

	"svw.info/numble/internal/checker"
	"svw.info/numble/internal/domain"
	"svw.info/numble/internal/generator"
	"svw.info/numble/internal/hint"
)

func newTestService() *Service {
	return NewService(
		generator.NewRoundGenerator(generator.NewExprBuilder()),
		checker.New(),
		hint.New(rand.New(rand.NewSource(1))),
		nil,
	)
}

func TestNewRoundRegistersSession(t *testing.T) {
	u := newTestService()
	g, st, err := u.NewRound(context.Background(), 11, 1)
	if err != nil {
		t.Fatalf("NewRound failed: %v", err)
	}
	if g.ID == "" {
		t.Fatal("game id is empty")
	}
	if st.Attempts < 1 {
		t.Fatalf("attempts = %d", st.Attempts)
	}
	if len(g.Pool.Tokens) != len(g.Puzzle.Tokens) {
		t.Fatalf("pool size %d != puzzle tokens %d", len(g.Pool.Tokens), len(g.Puzzle.Tokens))
	}
}

func TestUnknownGameRejected(t *testing.T) {
	u := newTestService()
	if _, err := u.Place(context.Background(), "nope", 0); err != ErrUnknownGame {
		t.Fatalf("Place err = %v, want ErrUnknownGame", err)
	}
	if _, err := u.Check(context.Background(), "nope"); err != ErrUnknownGame {
		t.Fatalf("Check err = %v, want ErrUnknownGame", err)
	}
	if _, err := u.Hint(context.Background(), "nope"); err != ErrUnknownGame {
		t.Fatalf("Hint err = %v, want ErrUnknownGame", err)
	}
}

func TestRevealedSolutionChecksCorrect(t *testing.T) {
	u := newTestService()
	g, _, err := u.NewRound(context.Background(), 23, 4)
	if err != nil {
		t.Fatalf("NewRound failed: %v", err)
	}
	// play a couple of tokens first so reveal has to recover
	_, _ = u.Place(context.Background(), g.ID, 0)
	_, _ = u.Place(context.Background(), g.ID, 1)

	toks, err := u.Reveal(context.Background(), g.ID)
	if err != nil {
		t.Fatalf("Reveal failed: %v", err)
	}
	var rebuilt string
	for _, tok := range toks {
		rebuilt += tok.Text
	}
	if rebuilt != g.Puzzle.Expression {
		t.Fatalf("revealed %q, want %q", rebuilt, g.Puzzle.Expression)
	}

	res, err := u.Check(context.Background(), g.ID)
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if res.Verdict != domain.Correct {
		t.Fatalf("verdict after reveal = %v (%s)", res.Verdict, res.Message)
	}
}

func TestPlaceUnplaceRoundTrip(t *testing.T) {
	u := newTestService()
	g, _, err := u.NewRound(context.Background(), 5, 2)
	if err != nil {
		t.Fatalf("NewRound failed: %v", err)
	}
	if _, err := u.Place(context.Background(), g.ID, 0); err != nil {
		t.Fatalf("Place failed: %v", err)
	}
	if _, err := u.Unplace(context.Background(), g.ID, 0); err != nil {
		t.Fatalf("Unplace failed: %v", err)
	}
	if _, err := u.ResetEquation(context.Background(), g.ID); err != nil {
		t.Fatalf("ResetEquation failed: %v", err)
	}
	if got := g.Pool.Equation(); got != "" {
		t.Fatalf("equation after reset = %q", got)
	}
}
