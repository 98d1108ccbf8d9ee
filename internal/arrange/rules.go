package arrange

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// criterionSentinel sorts unclassified exhibits after all real letters.
const criterionSentinel = "ZZZ"

var (
	putFirstPattern   = regexp.MustCompile(`put\s+(.+?)\s+first`)
	moveBeforePattern = regexp.MustCompile(`move\s+(.+?)\s+before\s+(.+)`)
)

// parseWithRules recognizes a closed set of command shapes. Command checks
// run in fixed order; the first matching shape wins. Anything else returns
// an unknown action with the identity permutation.
func parseWithRules(instruction string, exhibits []Exhibit) Result {
	lower := strings.ToLower(instruction)

	if strings.Contains(lower, "a-z") ||
		strings.Contains(lower, "alphabetic") ||
		strings.Contains(lower, "by name") {
		return sortResult(exhibits, "Sorted alphabetically by name", func(a, b Exhibit) bool {
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		})
	}

	if strings.Contains(lower, "page") && strings.Contains(lower, "sort") {
		return sortResult(exhibits, "Sorted by page count (highest first)", func(a, b Exhibit) bool {
			return a.PageCount > b.PageCount
		})
	}

	if strings.Contains(lower, "criterion") || strings.Contains(lower, "criteria") {
		return sortResult(exhibits, "Sorted by criterion letter", func(a, b Exhibit) bool {
			return sortLetter(a) < sortLetter(b)
		})
	}

	if m := putFirstPattern.FindStringSubmatch(lower); m != nil {
		if result, ok := putFirst(m[1], exhibits); ok {
			return result
		}
	}

	if m := moveBeforePattern.FindStringSubmatch(lower); m != nil {
		if result, ok := moveBefore(m[1], m[2], exhibits); ok {
			return result
		}
	}

	if strings.Contains(lower, "reverse") {
		order := identity(len(exhibits))
		for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
			order[i], order[j] = order[j], order[i]
		}
		return Result{
			Action:      ActionReverse,
			NewOrder:    order,
			Explanation: "Reversed exhibit order",
			Method:      MethodRules,
		}
	}

	return Result{
		Action:      ActionUnknown,
		NewOrder:    identity(len(exhibits)),
		Explanation: "Could not understand instruction. Try: 'sort by name', 'put passport first', or 'reverse order'",
		Method:      MethodRules,
	}
}

func sortResult(exhibits []Exhibit, explanation string, less func(a, b Exhibit) bool) Result {
	order := identity(len(exhibits))
	sort.SliceStable(order, func(i, j int) bool {
		return less(exhibits[order[i]], exhibits[order[j]])
	})
	return Result{
		Action:      ActionSort,
		NewOrder:    order,
		Explanation: explanation,
		Method:      MethodRules,
	}
}

func sortLetter(e Exhibit) string {
	if e.CriterionLetter == "" {
		return criterionSentinel
	}
	return e.CriterionLetter
}

func putFirst(term string, exhibits []Exhibit) (Result, bool) {
	for i, e := range exhibits {
		if strings.Contains(strings.ToLower(e.Name), term) {
			order := make([]int, 0, len(exhibits))
			order = append(order, i)
			for j := range exhibits {
				if j != i {
					order = append(order, j)
				}
			}
			return Result{
				Action:      ActionMove,
				NewOrder:    order,
				Explanation: fmt.Sprintf("Moved %q to first position", e.Name),
				Method:      MethodRules,
			}, true
		}
	}
	return Result{}, false
}

// moveBefore applies all-or-nothing: if either term fails to match an
// exhibit name, the command is not matched and falls through to unknown.
func moveBefore(moveTerm, targetTerm string, exhibits []Exhibit) (Result, bool) {
	moveIdx, targetIdx := -1, -1
	for i, e := range exhibits {
		name := strings.ToLower(e.Name)
		if moveIdx == -1 && strings.Contains(name, moveTerm) {
			moveIdx = i
		}
		if targetIdx == -1 && strings.Contains(name, targetTerm) {
			targetIdx = i
		}
	}

	if moveIdx == -1 || targetIdx == -1 || moveIdx == targetIdx {
		return Result{}, false
	}

	order := make([]int, 0, len(exhibits))
	for i := range exhibits {
		if i != moveIdx {
			order = append(order, i)
		}
	}

	insertAt := 0
	for pos, idx := range order {
		if idx == targetIdx {
			insertAt = pos
			break
		}
	}

	order = append(order, 0)
	copy(order[insertAt+1:], order[insertAt:])
	order[insertAt] = moveIdx

	return Result{
		Action:      ActionMove,
		NewOrder:    order,
		Explanation: fmt.Sprintf("Moved %q before %q", exhibits[moveIdx].Name, exhibits[targetIdx].Name),
		Method:      MethodRules,
	}, true
}
