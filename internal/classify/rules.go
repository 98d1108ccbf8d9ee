package classify

import (
	"context"
	"fmt"
	"strings"

	"github.com/caseprep/docket/internal/registry"
)

const (
	// textScanLimit bounds how much extracted text feeds keyword matching.
	textScanLimit = 4000
	// ruleDampening scales rule-based confidence: keyword counts are never
	// fully trusted.
	ruleDampening = 0.8
	// noMatchConfidence is the fixed confidence for null-criterion results.
	noMatchConfidence = 0.3
)

type ruleBackend struct{}

// NewRuleBackend creates the always-available keyword classifier.
func NewRuleBackend() Backend {
	return &ruleBackend{}
}

// Classify never returns an error: every input produces a result, possibly
// with a null criterion.
func (b *ruleBackend) Classify(_ context.Context, in Input) (Result, error) {
	text := matchText(in.Filename, in.Text)

	result := Result{
		DocumentID:   in.DocumentID,
		Filename:     in.Filename,
		DocumentType: matchDocumentType(text),
		Method:       MethodRule,
	}

	best, alternatives := matchCriteria(text, in.VisaType)
	if best == nil {
		result.Confidence = noMatchConfidence
		result.Reasoning = "No criterion keywords matched; manual classification recommended"
		return result, nil
	}

	letter := best.criterion.Letter
	result.CriterionLetter = &letter
	result.CriterionName = best.criterion.Name
	result.Confidence = best.confidence
	result.Reasoning = fmt.Sprintf(
		"Matched %d keyword occurrence(s) for criterion %s",
		best.count, letter,
	)
	result.Alternatives = alternatives

	return result, nil
}

type criterionMatch struct {
	criterion  registry.Criterion
	count      int
	confidence float64
}

// matchCriteria counts keyword occurrences per criterion and returns the
// best match plus ranked alternatives. Ties break by registry order: the
// first-defined criterion wins.
func matchCriteria(text, visaType string) (*criterionMatch, []Alternative) {
	var best *criterionMatch
	var others []criterionMatch

	for _, c := range registry.Criteria(visaType) {
		count := 0
		for _, kw := range c.Keywords {
			count += strings.Count(text, kw)
		}
		if count == 0 {
			continue
		}

		match := criterionMatch{
			criterion:  c,
			count:      count,
			confidence: ruleConfidence(count, len(c.Keywords)),
		}

		if best == nil || count > best.count {
			if best != nil {
				others = append(others, *best)
			}
			m := match
			best = &m
		} else {
			others = append(others, match)
		}
	}

	if best == nil {
		return nil, nil
	}

	alternatives := make([]Alternative, 0, len(others))
	for _, m := range others {
		alternatives = append(alternatives, Alternative{
			CriterionLetter: m.criterion.Letter,
			Confidence:      m.confidence,
		})
	}

	return best, alternatives
}

// matchDocumentType matches the archetype table the same way criteria are
// matched. Returns "other" when nothing matches.
func matchDocumentType(text string) string {
	bestTag := "other"
	bestCount := 0

	for _, dt := range registry.DocumentTypes() {
		count := 0
		for _, kw := range dt.Keywords {
			count += strings.Count(text, kw)
		}
		if count > bestCount {
			bestCount = count
			bestTag = dt.Tag
		}
	}

	return bestTag
}

func ruleConfidence(count, keywords int) float64 {
	ratio := float64(count) / float64(keywords)
	if ratio > 1.0 {
		ratio = 1.0
	}
	return ratio * ruleDampening
}

func matchText(filename, text string) string {
	if len(text) > textScanLimit {
		text = text[:textScanLimit]
	}
	return strings.ToLower(filename + " " + text)
}
