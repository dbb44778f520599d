// Package pool implements the player-facing token pool: a fixed arena of
// tokens that move between the available set and the equation sequence.
// Tokens are only ever moved between the two partitions, never created or
// destroyed, so the pool's text multiset always matches the puzzle's.
package pool

import (
	"errors"
	"math/rand"
	"strings"

	"svw.info/numble/internal/domain"
)

var (
	ErrOutOfRange = errors.New("token index out of range")
	ErrConsumed   = errors.New("token already placed")
	ErrNoEntry    = errors.New("no equation entry at that position")
)

// Pool holds the tokens for one puzzle. Token identity is the index into
// Tokens; Sequence lists placed token ids in placement order.
type Pool struct {
	Tokens   []domain.Token `json:"tokens"`
	Sequence []int          `json:"sequence"`
}

// New builds a pool from the puzzle's token sequence, shuffled once for
// presentation. The order is then fixed for the life of the pool.
func New(p *domain.Puzzle, rng *rand.Rand) *Pool {
	texts := append([]string(nil), p.Tokens...)
	rng.Shuffle(len(texts), func(i, j int) { texts[i], texts[j] = texts[j], texts[i] })
	tokens := make([]domain.Token, len(texts))
	for i, t := range texts {
		tokens[i] = domain.Token{ID: i, Text: t}
	}
	return &Pool{Tokens: tokens}
}

// Place marks token i consumed and appends it to the equation.
func (p *Pool) Place(i int) error {
	if i < 0 || i >= len(p.Tokens) {
		return ErrOutOfRange
	}
	if p.Tokens[i].Consumed {
		return ErrConsumed
	}
	p.Tokens[i].Consumed = true
	p.Sequence = append(p.Sequence, i)
	return nil
}

// Unplace removes the j-th equation entry and frees its token; later
// entries shift left.
func (p *Pool) Unplace(j int) error {
	if j < 0 || j >= len(p.Sequence) {
		return ErrNoEntry
	}
	p.Tokens[p.Sequence[j]].Consumed = false
	p.Sequence = append(p.Sequence[:j], p.Sequence[j+1:]...)
	return nil
}

// Reset clears the equation and frees every token.
func (p *Pool) Reset() {
	for i := range p.Tokens {
		p.Tokens[i].Consumed = false
	}
	p.Sequence = p.Sequence[:0]
}

// Equation concatenates the placed token texts with no separators.
func (p *Pool) Equation() string {
	var sb strings.Builder
	for _, id := range p.Sequence {
		sb.WriteString(p.Tokens[id].Text)
	}
	return sb.String()
}

// Placed returns the equation tokens in placement order.
func (p *Pool) Placed() []domain.Token {
	out := make([]domain.Token, 0, len(p.Sequence))
	for _, id := range p.Sequence {
		out = append(out, p.Tokens[id])
	}
	return out
}

// Reveal rebuilds the equation as the puzzle's original token order. The
// pool is reset first, so each wanted text is matched against an available
// token; a fresh consumed token is synthesized only when no match exists,
// which cannot happen for a conserved pool. The returned tokens
// concatenate to the original expression.
func (p *Pool) Reveal(puz *domain.Puzzle) []domain.Token {
	p.Reset()
	out := make([]domain.Token, 0, len(puz.Tokens))
	for _, text := range puz.Tokens {
		id := -1
		for i, t := range p.Tokens {
			if !t.Consumed && t.Text == text {
				id = i
				break
			}
		}
		if id == -1 {
			id = len(p.Tokens)
			p.Tokens = append(p.Tokens, domain.Token{ID: id, Text: text})
		}
		p.Tokens[id].Consumed = true
		p.Sequence = append(p.Sequence, id)
		out = append(out, p.Tokens[id])
	}
	return out
}
