// Package exhibits implements the exhibit domain for Docket.
// Exhibits are the ordered, labeled entries of a case's evidence package.
// They are built from classified documents, placed into the case's visa
// template order, and relabeled whenever the order or numbering style
// changes.
package exhibits

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/caseprep/docket/internal/arrange"
	"github.com/caseprep/docket/internal/ordering"
	"github.com/caseprep/docket/internal/registry"
)

// Exhibit represents one entry in a case's exhibit list. Position is the
// 0-based slot in the package; Label is the rendered exhibit number for the
// case's numbering style. CriterionLetter is empty for administrative
// exhibits.
type Exhibit struct {
	ID              uuid.UUID `json:"id"`
	CaseID          uuid.UUID `json:"case_id"`
	DocumentID      uuid.UUID `json:"document_id"`
	Name            string    `json:"name"`
	Category        string    `json:"category"`
	CriterionLetter string    `json:"criterion_letter,omitempty"`
	Label           string    `json:"label"`
	Position        int       `json:"position"`
	PageCount       int       `json:"page_count"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// RenameCommand carries a display name change for an exhibit.
type RenameCommand struct {
	Name string `json:"name"`
}

// ReorderCommand carries an explicit permutation of the current exhibit
// positions.
type ReorderCommand struct {
	Order []int `json:"order"`
}

// ArrangeCommand carries a natural-language reorder instruction.
type ArrangeCommand struct {
	Instruction string `json:"instruction"`
}

// ArrangeResponse pairs the interpreted instruction with the resulting
// exhibit list. For unknown instructions the list is unchanged.
type ArrangeResponse struct {
	Result   arrange.Result `json:"result"`
	Exhibits []Exhibit      `json:"exhibits"`
}

// ValidationResponse reports criteria coverage for a case's exhibit list.
type ValidationResponse struct {
	Validation ordering.Validation  `json:"validation"`
	Missing    []registry.Criterion `json:"missing"`
}

// displayName derives an exhibit name from a document filename: the
// extension is dropped and separators become spaces.
func displayName(filename string) string {
	name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	name = strings.NewReplacer("_", " ", "-", " ").Replace(name)
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return "Exhibit"
	}
	return name
}
