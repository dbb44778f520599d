// Package hint derives partial clues from a puzzle without revealing the
// solution order or construction.
package hint

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"svw.info/numble/internal/domain"
)

// Hinter picks one clue per call from a bounded candidate set.
type Hinter struct {
	rng *rand.Rand
}

func New(rng *rand.Rand) *Hinter { return &Hinter{rng: rng} }

// Hint returns one clue chosen uniformly from the candidates that apply to
// the puzzle. Each call replaces the previous hint on the UI side; the
// engine only produces the string.
func (h *Hinter) Hint(ctx context.Context, p *domain.Puzzle) (domain.Hint, error) {
	cands := candidates(p)
	return cands[h.rng.Intn(len(cands))], nil
}

// candidates enumerates every applicable clue. Only these categories are
// ever produced: the presence of parentheses, the first operator symbol,
// operator frequencies, and the category of the first and last piece.
func candidates(p *domain.Puzzle) []domain.Hint {
	var out []domain.Hint
	if strings.Contains(p.Expression, "(") {
		out = append(out, domain.Hint{
			Category: domain.HintParens,
			Message:  "The solution uses parentheses.",
		})
	}
	if op, ok := firstOperator(p.Tokens); ok {
		out = append(out, domain.Hint{
			Category: domain.HintFirstOperator,
			Message:  fmt.Sprintf("The first operator in the solution is %q.", op),
		})
	}
	out = append(out, domain.Hint{
		Category: domain.HintOperatorCounts,
		Message:  operatorSummary(p.Tokens),
	})
	out = append(out, domain.Hint{
		Category: domain.HintEdges,
		Message:  edgeSummary(p.Tokens),
	})
	return out
}

func isOperator(t string) bool {
	return t == "+" || t == "-" || t == "*" || t == "/"
}

func firstOperator(tokens []string) (string, bool) {
	for _, t := range tokens {
		if isOperator(t) {
			return t, true
		}
	}
	return "", false
}

func operatorSummary(tokens []string) string {
	counts := map[string]int{}
	for _, t := range tokens {
		if isOperator(t) {
			counts[t]++
		}
	}
	return fmt.Sprintf("Operators in the solution: %d plus, %d minus, %d times, %d divide.",
		counts["+"], counts["-"], counts["*"], counts["/"])
}

// edgeSummary names only the category of the edge pieces, never a digit.
func edgeSummary(tokens []string) string {
	if len(tokens) == 0 {
		return "The solution is empty."
	}
	return fmt.Sprintf("The solution starts with %s and ends with %s.",
		describe(tokens[0]), describe(tokens[len(tokens)-1]))
}

func describe(t string) string {
	switch {
	case t == "(" || t == ")":
		return "a parenthesis"
	case isOperator(t):
		return "an operator"
	default:
		return "a number"
	}
}
