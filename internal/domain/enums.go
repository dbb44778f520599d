package domain

import "time"

// Verdict classifies the outcome of checking a candidate equation.
type Verdict int

const (
	Correct Verdict = iota
	WrongAnswer
	InvalidGrammar
	UnbalancedParens
	EvaluationError
	NotWholeNumber
)

func (v Verdict) String() string {
	switch v {
	case Correct:
		return "correct"
	case WrongAnswer:
		return "wrong_answer"
	case InvalidGrammar:
		return "invalid_grammar"
	case UnbalancedParens:
		return "unbalanced_parens"
	case EvaluationError:
		return "evaluation_error"
	case NotWholeNumber:
		return "not_whole_number"
	default:
		return "unknown"
	}
}

// HintCategory limits hints to the pre-enumerated kinds of partial
// information; nothing outside these categories is ever shown.
type HintCategory int

const (
	HintParens         HintCategory = iota // the solution uses parentheses
	HintFirstOperator                      // the first operator symbol
	HintOperatorCounts                     // frequency of each operator
	HintEdges                              // first/last piece category
)

// HintDuration is how long the UI keeps a hint on screen before clearing
// it. The engine only produces the hint string.
const HintDuration = 8 * time.Second
