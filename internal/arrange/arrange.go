// Package arrange interprets natural-language exhibit reorder instructions.
// A model tier produces a validated permutation when configured; a closed
// rule set handles everything else and never guesses: instructions outside
// the set yield an "unknown" action with the identity permutation.
package arrange

import (
	"context"
	"log/slog"

	"github.com/caseprep/docket/internal/llm"
)

// Actions returned by Parse. Closed set.
const (
	ActionSort    = "sort"
	ActionMove    = "move"
	ActionReverse = "reverse"
	ActionReorder = "reorder"
	ActionUnknown = "unknown"
)

// Interpretation method tags.
const (
	MethodRules = "rule-based"
	MethodModel = "model-assisted"
)

// Exhibit is the view the interpreter needs per list entry.
type Exhibit struct {
	Name            string `json:"name"`
	CriterionLetter string `json:"criterion_letter"`
	PageCount       int    `json:"page_count"`
}

// Result carries the interpreted instruction. NewOrder is always a
// permutation of 0..n-1; for unknown actions it is the identity. Explanation
// is part of the contract and is never empty.
type Result struct {
	Action      string `json:"action"`
	NewOrder    []int  `json:"new_order"`
	Explanation string `json:"explanation"`
	Method      string `json:"method"`
}

// Interpreter parses reorder instructions against a current exhibit list.
type Interpreter interface {
	Parse(ctx context.Context, instruction string, exhibits []Exhibit) Result
}

// identity returns the identity permutation for n exhibits.
func identity(n int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	return order
}

// validPermutation reports whether order is exactly a permutation of 0..n-1.
func validPermutation(order []int, n int) bool {
	if len(order) != n {
		return false
	}
	seen := make([]bool, n)
	for _, idx := range order {
		if idx < 0 || idx >= n || seen[idx] {
			return false
		}
		seen[idx] = true
	}
	return true
}

type rulesInterpreter struct{}

// NewRulesInterpreter creates the always-available rule-based interpreter.
func NewRulesInterpreter() Interpreter {
	return &rulesInterpreter{}
}

func (r *rulesInterpreter) Parse(_ context.Context, instruction string, exhibits []Exhibit) Result {
	return parseWithRules(instruction, exhibits)
}

// NewInterpreter selects the interpreter once at construction: model tier
// with rule fallback when a client is provided, rules otherwise.
func NewInterpreter(client *llm.Client, logger *slog.Logger) Interpreter {
	if client == nil {
		return NewRulesInterpreter()
	}
	return &modelInterpreter{
		client:   client,
		fallback: NewRulesInterpreter(),
		logger:   logger.With("system", "arrange"),
	}
}
