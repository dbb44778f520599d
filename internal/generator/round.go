package generator

import (
	"context"
	"log/slog"
	"math"
	"math/rand"
	"time"

	"svw.info/numble/internal/domain"
	"svw.info/numble/internal/expr"
	"svw.info/numble/internal/ports"
)

const (
	maxAttempts  = 400
	maxTarget    = 1000
	intTolerance = 1e-9
)

// Fallback puzzle emitted when no acceptable expression is found within the
// attempt budget. It must always tokenize and evaluate cleanly.
const (
	FallbackExpression = "(3+4)*2"
	FallbackTarget     = 14
)

// Builder reduces numbers and operators to one expression.
type Builder interface {
	Build(nums []int, ops []byte, rng *rand.Rand) (string, float64, error)
}

// RoundGenerator derives puzzle parameters from a difficulty level and
// drives a Builder until it produces an integer-valued target.
type RoundGenerator struct {
	Builder Builder
	Log     *slog.Logger
}

// NewRoundGenerator wires a round generator around the given builder.
func NewRoundGenerator(b Builder) *RoundGenerator {
	return &RoundGenerator{Builder: b, Log: slog.Default()}
}

func tokenCount(level int) int {
	n := 3 + (level-1)/3
	if n > 6 {
		n = 6
	}
	return n
}

func magnitudeCap(level int) int {
	c := 3 + level/2
	if c > 9 {
		c = 9
	}
	return c
}

type opWeight struct {
	op byte
	w  float64
}

// operatorWeights returns the draw table for a level tier: low levels lean
// on + and -, higher ones on * and /.
func operatorWeights(level int) []opWeight {
	switch {
	case level <= 3:
		return []opWeight{{'+', .5}, {'-', .3}, {'*', .15}, {'/', .05}}
	case level <= 6:
		return []opWeight{{'+', .3}, {'-', .2}, {'*', .35}, {'/', .15}}
	default:
		return []opWeight{{'+', .2}, {'-', .15}, {'*', .3}, {'/', .35}}
	}
}

// pickOperator samples by cumulative probability. A draw that lands past
// the last bucket (float rounding of the weight sums) falls through to '+'.
func pickOperator(weights []opWeight, rng *rand.Rand) byte {
	r := rng.Float64()
	acc := 0.0
	for _, w := range weights {
		acc += w.w
		if r < acc {
			return w.op
		}
	}
	return '+'
}

// TimerSeconds is the suggested countdown for a level. It is informational
// for the timer UI; the engine never reads it back.
func TimerSeconds(level int) int {
	return max(30, 60+max(0, 10-(level-1)*2))
}

// Generate runs up to 400 attempts of number/operator synthesis and accepts
// the first expression whose value is finite, integral within 1e-9, and at
// most 1000 in magnitude. Exhaustion degrades to the fixed fallback puzzle
// rather than failing the round.
func (g *RoundGenerator) Generate(ctx context.Context, seed int64, level int) (*domain.Puzzle, ports.Stats, error) {
	start := time.Now()
	if level < 1 {
		level = 1
	}
	rng := rand.New(rand.NewSource(seed))
	count := tokenCount(level)
	limit := magnitudeCap(level)
	weights := operatorWeights(level)

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if ctx.Err() != nil {
			return nil, ports.Stats{Attempts: attempt - 1, Duration: time.Since(start)}, ctx.Err()
		}
		nums := make([]int, count)
		for i := range nums {
			nums[i] = 1 + rng.Intn(limit)
		}
		ops := make([]byte, count-1)
		for i := range ops {
			ops[i] = pickOperator(weights, rng)
		}
		text, v, err := g.Builder.Build(nums, ops, rng)
		if err != nil {
			continue
		}
		target := math.Round(v)
		if math.Abs(v-target) > intTolerance || math.Abs(target) > maxTarget {
			continue
		}
		p := &domain.Puzzle{
			Expression:   text,
			Tokens:       expr.Tokenize(text),
			Target:       int(target),
			Level:        level,
			Seed:         seed,
			TimerSeconds: TimerSeconds(level),
		}
		return p, ports.Stats{Attempts: attempt, Duration: time.Since(start)}, nil
	}

	g.Log.Warn("puzzle generation exhausted, using fallback",
		"level", level, "seed", seed, "attempts", maxAttempts)
	p := &domain.Puzzle{
		Expression:   FallbackExpression,
		Tokens:       expr.Tokenize(FallbackExpression),
		Target:       FallbackTarget,
		Level:        level,
		Seed:         seed,
		TimerSeconds: TimerSeconds(level),
		Fallback:     true,
	}
	return p, ports.Stats{Attempts: maxAttempts, Duration: time.Since(start)}, nil
}
