package domain

// Token is one atomic piece of a puzzle expression: a digit run, an
// operator symbol, or a parenthesis. ID is the token's index in its pool.
type Token struct {
	ID       int    `json:"id"`
	Text     string `json:"text"`
	Consumed bool   `json:"consumed,omitempty"`
}

// Puzzle is the immutable record of one round. It is replaced wholesale on
// a new round; nothing mutates it after generation.
type Puzzle struct {
	Expression   string   `json:"expression"`
	Tokens       []string `json:"tokens"`
	Target       int      `json:"target"`
	Level        int      `json:"level,omitempty"`
	Seed         int64    `json:"seed,omitempty"`
	TimerSeconds int      `json:"timerSeconds,omitempty"`
	Fallback     bool     `json:"fallback,omitempty"`
}

// CheckResult reports the outcome of checking a candidate equation. Value
// carries the evaluated integer when one exists so the UI can show both
// sides of a wrong answer.
type CheckResult struct {
	Verdict Verdict `json:"verdict"`
	Value   int     `json:"value"`
	Target  int     `json:"target"`
	Message string  `json:"message,omitempty"`
}

// Hint is one bounded clue for the UI.
type Hint struct {
	Message  string       `json:"message"`
	Category HintCategory `json:"category"`
}

// Progress is a saved level for a named game. The name is opaque to the
// engine; only the persistence layer interprets it.
type Progress struct {
	Name      string `json:"name"`
	Level     int    `json:"level"`
	UpdatedAt int64  `json:"updatedAt,omitempty"`
}
