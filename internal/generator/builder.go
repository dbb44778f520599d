package generator

import (
	"errors"
	"math/rand"
	"strconv"

	"svw.info/numble/internal/expr"
)

// ErrNoExpression reports that no finite combination of the remaining items
// was found within the retry budget. Degenerate inputs exist (two
// zero-valued items and a trailing '/'), so the loop is capped instead of
// spinning; the round generator counts this as one failed attempt.
var ErrNoExpression = errors.New("no finite expression found")

const maxCombineRetries = 256

var operators = []byte{'+', '-', '*', '/'}

// item pairs an expression fragment with its numeric value. Items live in
// an indexable slice and are removed by position, never by identity.
type item struct {
	text  string
	value float64
}

// ExprBuilder combines integers and operators into one fully parenthesized
// expression by repeated binary reduction.
type ExprBuilder struct{}

func NewExprBuilder() *ExprBuilder { return &ExprBuilder{} }

// Build reduces nums to a single expression. Operators come from ops in
// order while any remain, then uniformly from + - * /. Each reduction picks
// two distinct items, orders them 50/50, and evaluates the candidate
// "(A<op>B)"; a failed or non-finite candidate returns the operator to the
// front of the queue and retries with a different pairing.
func (b *ExprBuilder) Build(nums []int, ops []byte, rng *rand.Rand) (string, float64, error) {
	if len(nums) == 0 {
		return "", 0, ErrNoExpression
	}
	items := make([]item, 0, len(nums))
	for _, n := range nums {
		items = append(items, item{text: strconv.Itoa(n), value: float64(n)})
	}
	queue := append([]byte(nil), ops...)
	retries := 0
	for len(items) > 1 {
		i := rng.Intn(len(items))
		j := rng.Intn(len(items) - 1)
		if j >= i {
			j++
		}
		var op byte
		if len(queue) > 0 {
			op = queue[0]
			queue = queue[1:]
		} else {
			op = operators[rng.Intn(len(operators))]
		}
		left, right := items[i], items[j]
		if rng.Intn(2) == 0 {
			left, right = right, left
		}
		text := "(" + left.text + string(op) + right.text + ")"
		v, err := expr.Eval(text)
		if err != nil {
			queue = append([]byte{op}, queue...)
			shuffle(items, rng)
			retries++
			if retries > maxCombineRetries {
				return "", 0, ErrNoExpression
			}
			continue
		}
		// remove the higher index first so the lower one stays valid
		if i < j {
			i, j = j, i
		}
		items = append(items[:i], items[i+1:]...)
		items = append(items[:j], items[j+1:]...)
		items = append(items, item{text: text, value: v})
		shuffle(items, rng)
	}
	return items[0].text, items[0].value, nil
}

func shuffle(items []item, rng *rand.Rand) {
	rng.Shuffle(len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })
}
