package cases_test

import (
	"testing"

	"github.com/caseprep/docket/internal/cases"
)

func TestValidStatus(t *testing.T) {
	for _, s := range []string{"draft", "assembling", "complete"} {
		if !cases.ValidStatus(s) {
			t.Errorf("ValidStatus(%q) = false", s)
		}
	}
	if cases.ValidStatus("archived") {
		t.Error("ValidStatus(archived) = true")
	}
}

func TestCanTransition(t *testing.T) {
	allowed := [][2]string{
		{cases.StatusDraft, cases.StatusAssembling},
		{cases.StatusAssembling, cases.StatusComplete},
		{cases.StatusAssembling, cases.StatusDraft},
		{cases.StatusComplete, cases.StatusDraft},
	}
	for _, pair := range allowed {
		if !cases.CanTransition(pair[0], pair[1]) {
			t.Errorf("CanTransition(%q, %q) = false", pair[0], pair[1])
		}
	}

	denied := [][2]string{
		{cases.StatusDraft, cases.StatusComplete},
		{cases.StatusComplete, cases.StatusAssembling},
		{cases.StatusDraft, cases.StatusDraft},
	}
	for _, pair := range denied {
		if cases.CanTransition(pair[0], pair[1]) {
			t.Errorf("CanTransition(%q, %q) = true", pair[0], pair[1])
		}
	}
}
