package ports

import (
	"context"
	"time"

	"svw.info/numble/internal/domain"
)

// Stats captures how much work an operation did.
type Stats struct {
	Attempts int
	Duration time.Duration
}

// RoundGenerator creates new puzzles for a difficulty level.
type RoundGenerator interface {
	Generate(ctx context.Context, seed int64, level int) (*domain.Puzzle, Stats, error)
}

// Checker validates a candidate equation string against a puzzle target.
type Checker interface {
	Check(ctx context.Context, equation string, p *domain.Puzzle) (domain.CheckResult, error)
}

// Hinter derives one bounded clue from a puzzle.
type Hinter interface {
	Hint(ctx context.Context, p *domain.Puzzle) (domain.Hint, error)
}

// ProgressStore persists level progress by game name.
type ProgressStore interface {
	Save(ctx context.Context, p domain.Progress) error
	Load(ctx context.Context, name string) (domain.Progress, error)
	List(ctx context.Context) ([]domain.Progress, error)
}
