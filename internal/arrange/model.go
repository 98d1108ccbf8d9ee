package arrange

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/caseprep/docket/internal/llm"
	"github.com/caseprep/docket/pkg/formatting"
)

const arrangeSchema = `{
	"type": "object",
	"required": ["action", "new_order", "explanation"],
	"properties": {
		"action": {"type": "string", "enum": ["sort", "move", "reverse", "reorder", "unknown"]},
		"new_order": {"type": "array", "items": {"type": "integer", "minimum": 0}},
		"explanation": {"type": "string"}
	}
}`

var compiledArrangeSchema = jsonschema.MustCompileString("arrange.json", arrangeSchema)

type modelInterpreter struct {
	client   *llm.Client
	fallback Interpreter
	logger   *slog.Logger
}

// Parse asks the model for a permutation and validates it strictly. Any
// failure, including a response that is not an exact permutation of the
// current indices, degrades to the rule interpreter.
func (m *modelInterpreter) Parse(ctx context.Context, instruction string, exhibits []Exhibit) Result {
	result, err := m.parseWithModel(ctx, instruction, exhibits)
	if err != nil {
		m.logger.Warn(
			"model interpretation failed, falling back to rules",
			"instruction", instruction,
			"error", err,
		)
		return m.fallback.Parse(ctx, instruction, exhibits)
	}
	return result
}

type modelReorder struct {
	Action      string `json:"action"`
	NewOrder    []int  `json:"new_order"`
	Explanation string `json:"explanation"`
}

func (m *modelInterpreter) parseWithModel(ctx context.Context, instruction string, exhibits []Exhibit) (Result, error) {
	content, err := m.client.Complete(ctx, arrangeSystemPrompt, arrangeUserPrompt(instruction, exhibits))
	if err != nil {
		return Result{}, err
	}

	parsed, err := formatting.Parse[modelReorder](content)
	if err != nil {
		return Result{}, err
	}

	if err := llm.ValidateJSON(compiledArrangeSchema, llm.ExtractJSON(content)); err != nil {
		return Result{}, err
	}

	if !validPermutation(parsed.NewOrder, len(exhibits)) {
		return Result{}, fmt.Errorf(
			"model returned invalid permutation %v for %d exhibits",
			parsed.NewOrder, len(exhibits),
		)
	}

	if parsed.Explanation == "" {
		parsed.Explanation = "Reordered exhibits"
	}

	return Result{
		Action:      parsed.Action,
		NewOrder:    parsed.NewOrder,
		Explanation: parsed.Explanation,
		Method:      MethodModel,
	}, nil
}

const arrangeSystemPrompt = "You reorder lists of legal exhibit documents " +
	"from natural-language instructions. Respond with a single JSON object " +
	"and nothing else."

func arrangeUserPrompt(instruction string, exhibits []Exhibit) string {
	var sb strings.Builder

	sb.WriteString("CURRENT EXHIBITS (0-indexed):\n")
	for i, e := range exhibits {
		letter := e.CriterionLetter
		if letter == "" {
			letter = "none"
		}
		fmt.Fprintf(&sb, "%d. %s (criterion: %s, pages: %d)\n", i, e.Name, letter, e.PageCount)
	}

	fmt.Fprintf(&sb, "\nINSTRUCTION: %s\n", instruction)

	sb.WriteString(`
Return JSON:
{"action": "sort" | "move" | "reverse" | "reorder" | "unknown",
 "new_order": a permutation of every current index exactly once,
 "explanation": "one sentence describing the result"}

If the instruction cannot be interpreted, use action "unknown" and the
current order unchanged.`)

	return sb.String()
}
