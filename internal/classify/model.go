package classify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/caseprep/docket/internal/llm"
	"github.com/caseprep/docket/internal/registry"
	"github.com/caseprep/docket/pkg/formatting"
)

const classificationSchema = `{
	"type": "object",
	"required": ["criterion_letter", "document_type", "confidence", "reasoning"],
	"properties": {
		"criterion_letter": {"type": ["string", "null"]},
		"document_type": {"type": "string"},
		"confidence": {"type": "number", "minimum": 0, "maximum": 1},
		"reasoning": {"type": "string"},
		"alternatives": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["criterion_letter", "confidence"],
				"properties": {
					"criterion_letter": {"type": "string"},
					"confidence": {"type": "number", "minimum": 0, "maximum": 1}
				}
			}
		}
	}
}`

var compiledClassificationSchema = jsonschema.MustCompileString(
	"classification.json", classificationSchema,
)

type modelBackend struct {
	client   *llm.Client
	fallback Backend
	logger   *slog.Logger
}

// NewModelBackend creates the model-assisted classifier. Any model failure
// (transport, malformed response, schema violation, unknown criterion
// letter) degrades to the rule backend; errors never propagate.
func NewModelBackend(client *llm.Client, logger *slog.Logger) Backend {
	return &modelBackend{
		client:   client,
		fallback: NewRuleBackend(),
		logger:   logger.With("system", "classify"),
	}
}

// NewBackend selects the classification backend once at construction:
// model-assisted with rule fallback when a client is provided, rule-based
// otherwise.
func NewBackend(client *llm.Client, logger *slog.Logger) Backend {
	if client == nil {
		return NewRuleBackend()
	}
	return NewModelBackend(client, logger)
}

func (b *modelBackend) Classify(ctx context.Context, in Input) (Result, error) {
	result, err := b.classifyWithModel(ctx, in)
	if err != nil {
		b.logger.Warn(
			"model classification failed, falling back to rules",
			"document", in.DocumentID,
			"error", err,
		)
		return b.fallback.Classify(ctx, in)
	}
	return result, nil
}

type modelResponse struct {
	CriterionLetter *string       `json:"criterion_letter"`
	DocumentType    string        `json:"document_type"`
	Confidence      float64       `json:"confidence"`
	Reasoning       string        `json:"reasoning"`
	Alternatives    []Alternative `json:"alternatives"`
}

func (b *modelBackend) classifyWithModel(ctx context.Context, in Input) (Result, error) {
	content, err := b.client.Complete(ctx, classifySystemPrompt, classifyUserPrompt(in))
	if err != nil {
		return Result{}, err
	}

	parsed, err := formatting.Parse[modelResponse](content)
	if err != nil {
		return Result{}, err
	}

	// Re-encode through the schema to reject structurally invalid output
	// that json.Unmarshal tolerated (wrong types collapse to zero values).
	if err := llm.ValidateJSON(compiledClassificationSchema, llm.ExtractJSON(content)); err != nil {
		return Result{}, err
	}

	if parsed.CriterionLetter != nil && *parsed.CriterionLetter != "" {
		if registry.FindCriterion(in.VisaType, *parsed.CriterionLetter) == nil {
			return Result{}, fmt.Errorf(
				"model returned unknown criterion %q for %s",
				*parsed.CriterionLetter, in.VisaType,
			)
		}
	} else {
		parsed.CriterionLetter = nil
	}

	result := Result{
		DocumentID:      in.DocumentID,
		Filename:        in.Filename,
		CriterionLetter: parsed.CriterionLetter,
		DocumentType:    parsed.DocumentType,
		Confidence:      clamp01(parsed.Confidence),
		Reasoning:       parsed.Reasoning,
		Method:          MethodModel,
		Alternatives:    parsed.Alternatives,
	}

	if result.CriterionLetter != nil {
		if c := registry.FindCriterion(in.VisaType, *result.CriterionLetter); c != nil {
			result.CriterionName = c.Name
		}
	}
	if result.DocumentType == "" {
		result.DocumentType = matchDocumentType(matchText(in.Filename, in.Text))
	}

	return result, nil
}

const classifySystemPrompt = "You classify visa petition exhibit documents. " +
	"Respond with a single JSON object and nothing else."

func classifyUserPrompt(in Input) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "VISA TYPE: %s\n\nAVAILABLE CRITERIA:\n", in.VisaType)
	for _, c := range registry.Criteria(in.VisaType) {
		fmt.Fprintf(&sb, "- Criterion %s: %s\n", c.Letter, c.Name)
	}

	sb.WriteString("\nDOCUMENT TYPES:\n")
	for _, dt := range registry.DocumentTypes() {
		fmt.Fprintf(&sb, "- %s\n", dt.Tag)
	}

	fmt.Fprintf(&sb, "\nFILENAME: %s\n", in.Filename)
	if in.Text != "" {
		fmt.Fprintf(&sb, "\nEXTRACTED TEXT (excerpt):\n%s\n", excerpt(in.Text, textScanLimit))
	}

	sb.WriteString(`
Classify this document. Return JSON:
{"criterion_letter": "A" or null for administrative documents,
 "document_type": one of the document type tags or "other",
 "confidence": 0.0 to 1.0,
 "reasoning": "one sentence",
 "alternatives": [{"criterion_letter": "B", "confidence": 0.4}]}`)

	return sb.String()
}

func excerpt(s string, limit int) string {
	if len(s) > limit {
		return s[:limit]
	}
	return s
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
