// Package expr tokenizes and evaluates the restricted arithmetic grammar
// puzzles are built from: integer literals, + - * /, and parentheses.
package expr

import (
	"iter"
	"slices"
)

// Scan yields token texts left to right: the longest run of digits, or a
// single operator or parenthesis. Characters outside the grammar are
// skipped, so an empty or fully unmatched string yields nothing; callers
// that need a non-empty sequence must check for one.
func Scan(s string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for i := 0; i < len(s); {
			c := s[i]
			switch {
			case isDigit(c):
				j := i + 1
				for j < len(s) && isDigit(s[j]) {
					j++
				}
				if !yield(s[i:j]) {
					return
				}
				i = j
			case isOperator(c) || c == '(' || c == ')':
				if !yield(s[i : i+1]) {
					return
				}
				i++
			default:
				i++
			}
		}
	}
}

// Tokenize collects Scan into a slice.
func Tokenize(s string) []string {
	return slices.Collect(Scan(s))
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isOperator(c byte) bool {
	return c == '+' || c == '-' || c == '*' || c == '/'
}
