// Package registry supplies the static visa-type taxonomy: section templates,
// criterion definitions, and document archetype keywords. The registry is
// process-wide, read-only, and initialized at compile time.
package registry

// DefaultVisaType is the template used when an unknown visa type is requested.
const DefaultVisaType = "O-1A"

// Section is a named group of exhibits within a visa template, optionally
// tied to a criterion letter. ExampleExhibits are keyword strings used for
// substring placement matching.
type Section struct {
	Name            string   `json:"name"`
	CriterionLetter string   `json:"criterion_letter,omitempty"`
	ExampleExhibits []string `json:"example_exhibits,omitempty"`
}

// Template describes the standard exhibit ordering for one visa type.
type Template struct {
	VisaType    string    `json:"visa_type"`
	Sections    []Section `json:"sections"`
	MinCriteria int       `json:"min_criteria"`
	Notes       string    `json:"notes,omitempty"`
}

// Criterion is one regulatory requirement under a visa type, identified by
// letter, with keywords used for rule-based classification.
type Criterion struct {
	Letter   string   `json:"letter"`
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"`
}

// DocumentType is a document archetype matched independently of criteria.
type DocumentType struct {
	Tag      string   `json:"tag"`
	Keywords []string `json:"keywords"`
}

// Lookup returns the template for the given visa type. When the code is
// unknown it returns the default template and exact=false so callers can
// observe the fallback.
func Lookup(visaType string) (*Template, bool) {
	if t, ok := templates[visaType]; ok {
		return t, true
	}
	return templates[DefaultVisaType], false
}

// Criteria returns the criterion definitions for the given visa type in
// registry order, falling back to the default visa type when unknown.
func Criteria(visaType string) []Criterion {
	if c, ok := criteria[visaType]; ok {
		return c
	}
	return criteria[DefaultVisaType]
}

// FindCriterion returns the definition for (visaType, letter), or nil when
// the letter is not defined under that visa type.
func FindCriterion(visaType, letter string) *Criterion {
	for _, c := range Criteria(visaType) {
		if c.Letter == letter {
			crit := c
			return &crit
		}
	}
	return nil
}

// VisaTypes returns the registered visa type codes in display order.
func VisaTypes() []string {
	return []string{"O-1A", "O-1B", "P-1A", "EB-1A"}
}

// DocumentTypes returns the document archetype table in registry order.
func DocumentTypes() []DocumentType {
	return documentTypes
}
