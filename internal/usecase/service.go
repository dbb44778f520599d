package usecase

import (
	"context"
	"errors"
	"math/rand"
	"sync"

	"github.com/google/uuid"

	"svw.info/numble/internal/domain"
	"svw.info/numble/internal/pool"
	"svw.info/numble/internal/ports"
)

var errNotConfigured = errors.New("usecase dependency not configured")

// ErrUnknownGame reports an id with no live session.
var ErrUnknownGame = errors.New("unknown game id")

// Game is one live round: the puzzle plus the player's pool state.
type Game struct {
	ID     string         `json:"id"`
	Level  int            `json:"level"`
	Puzzle *domain.Puzzle `json:"puzzle"`
	Pool   *pool.Pool     `json:"pool"`
}

// Service wires the engine's providers together and owns the game session
// registry. The engine itself is synchronous and single-threaded; all
// cross-request state lives here behind the mutex.
type Service struct {
	Generator ports.RoundGenerator
	Checker   ports.Checker
	Hinter    ports.Hinter
	Progress  ports.ProgressStore

	mu    sync.Mutex
	games map[string]*Game
}

func NewService(g ports.RoundGenerator, c ports.Checker, h ports.Hinter, st ports.ProgressStore) *Service {
	return &Service{Generator: g, Checker: c, Hinter: h, Progress: st, games: make(map[string]*Game)}
}

// NewRound generates a puzzle and registers a fresh game session for it.
// Abandoning a round is just starting a new one; old sessions are replaced
// wholesale, never resumed.
func (u *Service) NewRound(ctx context.Context, seed int64, level int) (*Game, ports.Stats, error) {
	if u.Generator == nil {
		return nil, ports.Stats{}, errNotConfigured
	}
	p, st, err := u.Generator.Generate(ctx, seed, level)
	if err != nil {
		return nil, st, err
	}
	g := &Game{
		ID:     uuid.NewString(),
		Level:  level,
		Puzzle: p,
		Pool:   pool.New(p, rand.New(rand.NewSource(seed))),
	}
	u.mu.Lock()
	u.games[g.ID] = g
	u.mu.Unlock()
	return g, st, nil
}

// withGame runs fn on the named session under the registry lock.
func (u *Service) withGame(id string, fn func(*Game) error) (*Game, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	g, ok := u.games[id]
	if !ok {
		return nil, ErrUnknownGame
	}
	if err := fn(g); err != nil {
		return nil, err
	}
	return g, nil
}

// Place moves pool token index into the equation.
func (u *Service) Place(ctx context.Context, gameID string, index int) (*Game, error) {
	return u.withGame(gameID, func(g *Game) error { return g.Pool.Place(index) })
}

// Unplace removes the equation entry at position and frees its token.
func (u *Service) Unplace(ctx context.Context, gameID string, position int) (*Game, error) {
	return u.withGame(gameID, func(g *Game) error { return g.Pool.Unplace(position) })
}

// ResetEquation clears the equation and frees every token.
func (u *Service) ResetEquation(ctx context.Context, gameID string) (*Game, error) {
	return u.withGame(gameID, func(g *Game) error { g.Pool.Reset(); return nil })
}

// Check validates the current equation against the puzzle target.
func (u *Service) Check(ctx context.Context, gameID string) (domain.CheckResult, error) {
	if u.Checker == nil {
		return domain.CheckResult{}, errNotConfigured
	}
	var res domain.CheckResult
	_, err := u.withGame(gameID, func(g *Game) error {
		r, err := u.Checker.Check(ctx, g.Pool.Equation(), g.Puzzle)
		if err != nil {
			return err
		}
		res = r
		return nil
	})
	return res, err
}

// Hint produces one bounded clue for the session's puzzle.
func (u *Service) Hint(ctx context.Context, gameID string) (domain.Hint, error) {
	if u.Hinter == nil {
		return domain.Hint{}, errNotConfigured
	}
	var h domain.Hint
	_, err := u.withGame(gameID, func(g *Game) error {
		got, err := u.Hinter.Hint(ctx, g.Puzzle)
		if err != nil {
			return err
		}
		h = got
		return nil
	})
	return h, err
}

// Reveal rebuilds the pool into the original solution order and returns it.
func (u *Service) Reveal(ctx context.Context, gameID string) ([]domain.Token, error) {
	var toks []domain.Token
	_, err := u.withGame(gameID, func(g *Game) error {
		toks = g.Pool.Reveal(g.Puzzle)
		return nil
	})
	return toks, err
}

// Progress persistence passthroughs.

func (u *Service) SaveProgress(ctx context.Context, p domain.Progress) error {
	if u.Progress == nil {
		return errNotConfigured
	}
	return u.Progress.Save(ctx, p)
}

func (u *Service) LoadProgress(ctx context.Context, name string) (domain.Progress, error) {
	if u.Progress == nil {
		return domain.Progress{}, errNotConfigured
	}
	return u.Progress.Load(ctx, name)
}

func (u *Service) ListProgress(ctx context.Context) ([]domain.Progress, error) {
	if u.Progress == nil {
		return nil, errNotConfigured
	}
	return u.Progress.List(ctx)
}
