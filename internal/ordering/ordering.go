// Package ordering implements the deterministic exhibit placement, numbering,
// and criteria validation engine. All operations are pure and synchronous.
package ordering

import (
	"fmt"
	"sort"
	"strings"

	"github.com/caseprep/docket/internal/registry"
)

// Item is the minimal exhibit view the engine operates on.
type Item struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Category        string `json:"category"`
	CriterionLetter string `json:"criterion_letter"`
	PageCount       int    `json:"page_count"`
}

// Placement locates one item within the template: section index and position
// within that section. Items matching no section receive a section index of
// len(template.Sections) (the trailing unmatched bucket).
type Placement struct {
	SectionIndex  int `json:"section_index"`
	WithinSection int `json:"within_section_index"`
}

// Assignment is the result of placing items against a template.
// Order is the final exhibit order as a permutation of input indices.
// Placements is parallel to the input slice, not to Order.
type Assignment struct {
	Order      []int       `json:"order"`
	Placements []Placement `json:"placements"`
}

// Validation reports claimed versus required criteria counts for a template.
// Purely informational; never blocks downstream processing.
type Validation struct {
	Valid    bool     `json:"valid"`
	Claimed  int      `json:"claimed"`
	Required int      `json:"required"`
	Criteria []string `json:"criteria"`
	Message  string   `json:"message"`
}

// Assign places items into template sections. Items are scanned in input
// order; each lands in the first section matching by criterion letter
// equality or by bidirectional case-insensitive substring between the item's
// category and the section name or example exhibit strings. First matching
// section wins. Unmatched items form a trailing bucket in input order.
func Assign(items []Item, tmpl *registry.Template) Assignment {
	sections := tmpl.Sections
	buckets := make([][]int, len(sections)+1)

	for idx, item := range items {
		placed := false
		category := strings.ToLower(item.Category)

		for si, section := range sections {
			if item.CriterionLetter != "" && item.CriterionLetter == section.CriterionLetter {
				buckets[si] = append(buckets[si], idx)
				placed = true
				break
			}

			if matchesSection(category, section) {
				buckets[si] = append(buckets[si], idx)
				placed = true
				break
			}
		}

		if !placed {
			buckets[len(sections)] = append(buckets[len(sections)], idx)
		}
	}

	assignment := Assignment{
		Order:      make([]int, 0, len(items)),
		Placements: make([]Placement, len(items)),
	}

	for si, bucket := range buckets {
		for wi, idx := range bucket {
			assignment.Placements[idx] = Placement{
				SectionIndex:  si,
				WithinSection: wi,
			}
			assignment.Order = append(assignment.Order, idx)
		}
	}

	return assignment
}

// ClaimedCriteria returns the sorted distinct non-empty criterion letters
// present among the items.
func ClaimedCriteria(items []Item) []string {
	seen := make(map[string]struct{})
	for _, item := range items {
		if item.CriterionLetter != "" && item.CriterionLetter != "N/A" {
			seen[item.CriterionLetter] = struct{}{}
		}
	}

	claimed := make([]string, 0, len(seen))
	for letter := range seen {
		claimed = append(claimed, letter)
	}
	sort.Strings(claimed)
	return claimed
}

// ValidateCriteriaCount compares the distinct criteria claimed by items
// against the template's minimum.
func ValidateCriteriaCount(items []Item, tmpl *registry.Template) Validation {
	claimed := ClaimedCriteria(items)

	return Validation{
		Valid:    len(claimed) >= tmpl.MinCriteria,
		Claimed:  len(claimed),
		Required: tmpl.MinCriteria,
		Criteria: claimed,
		Message:  fmt.Sprintf("Claiming %d of %d required criteria", len(claimed), tmpl.MinCriteria),
	}
}

func matchesSection(category string, section registry.Section) bool {
	candidates := make([]string, 0, len(section.ExampleExhibits)+1)
	candidates = append(candidates, section.Name)
	candidates = append(candidates, section.ExampleExhibits...)

	for _, candidate := range candidates {
		lower := strings.ToLower(candidate)
		if strings.Contains(category, lower) || strings.Contains(lower, category) {
			return true
		}
	}
	return false
}
