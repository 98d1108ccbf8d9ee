package registry_test

import (
	"testing"

	"github.com/caseprep/docket/internal/registry"
)

func TestLookup(t *testing.T) {
	t.Run("known visa type is exact", func(t *testing.T) {
		tmpl, exact := registry.Lookup("P-1A")
		if !exact {
			t.Error("expected exact match for P-1A")
		}
		if tmpl.VisaType != "P-1A" {
			t.Errorf("VisaType = %q, want P-1A", tmpl.VisaType)
		}
		if tmpl.MinCriteria != 2 {
			t.Errorf("MinCriteria = %d, want 2", tmpl.MinCriteria)
		}
	})

	t.Run("unknown visa type falls back to default", func(t *testing.T) {
		tmpl, exact := registry.Lookup("H-1B")
		if exact {
			t.Error("expected fallback for unknown visa type")
		}
		if tmpl.VisaType != registry.DefaultVisaType {
			t.Errorf("VisaType = %q, want %q", tmpl.VisaType, registry.DefaultVisaType)
		}
	})

	t.Run("sections follow criterion letter order", func(t *testing.T) {
		tmpl, _ := registry.Lookup("O-1A")

		var letters []string
		for _, s := range tmpl.Sections {
			if s.CriterionLetter != "" {
				letters = append(letters, s.CriterionLetter)
			}
		}

		want := []string{"A", "B", "C", "D", "E", "F", "G", "H"}
		if len(letters) != len(want) {
			t.Fatalf("criterion sections = %v, want %v", letters, want)
		}
		for i := range want {
			if letters[i] != want[i] {
				t.Errorf("criterion sections = %v, want %v", letters, want)
				break
			}
		}
	})
}

func TestCriteria(t *testing.T) {
	t.Run("every registered visa type has criteria", func(t *testing.T) {
		for _, vt := range registry.VisaTypes() {
			defs := registry.Criteria(vt)
			if len(defs) == 0 {
				t.Errorf("Criteria(%q) is empty", vt)
			}
			for _, c := range defs {
				if c.Letter == "" || c.Name == "" || len(c.Keywords) == 0 {
					t.Errorf("%s criterion %+v incomplete", vt, c)
				}
			}
		}
	})

	t.Run("unknown visa type falls back to default criteria", func(t *testing.T) {
		got := registry.Criteria("TN")
		want := registry.Criteria(registry.DefaultVisaType)
		if len(got) != len(want) {
			t.Errorf("fallback criteria length = %d, want %d", len(got), len(want))
		}
	})

	t.Run("FindCriterion resolves letter", func(t *testing.T) {
		c := registry.FindCriterion("EB-1A", "J")
		if c == nil {
			t.Fatal("FindCriterion(EB-1A, J) = nil")
		}
		if c.Letter != "J" {
			t.Errorf("Letter = %q, want J", c.Letter)
		}

		if registry.FindCriterion("O-1A", "Z") != nil {
			t.Error("FindCriterion(O-1A, Z) should be nil")
		}
	})
}

func TestDocumentTypes(t *testing.T) {
	types := registry.DocumentTypes()
	if len(types) == 0 {
		t.Fatal("DocumentTypes is empty")
	}

	if types[0].Tag != "passport" {
		t.Errorf("first archetype = %q, want passport (registry order decides ties)", types[0].Tag)
	}

	seen := make(map[string]struct{})
	for _, dt := range types {
		if _, dup := seen[dt.Tag]; dup {
			t.Errorf("duplicate document type tag %q", dt.Tag)
		}
		seen[dt.Tag] = struct{}{}
	}
}
