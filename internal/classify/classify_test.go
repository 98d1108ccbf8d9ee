package classify_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/caseprep/docket/internal/classify"
	"github.com/caseprep/docket/internal/llm"
)

func TestRuleBackend(t *testing.T) {
	backend := classify.NewRuleBackend()

	t.Run("passport filename yields passport type and null criterion", func(t *testing.T) {
		result, err := backend.Classify(context.Background(), classify.Input{
			DocumentID: "doc-1",
			Filename:   "passport_biopage.pdf",
			VisaType:   "O-1A",
		})
		if err != nil {
			t.Fatalf("Classify error: %v", err)
		}

		if result.DocumentType != "passport" {
			t.Errorf("DocumentType = %q, want passport", result.DocumentType)
		}
		if result.CriterionLetter != nil {
			t.Errorf("CriterionLetter = %v, want nil", *result.CriterionLetter)
		}
		if result.Method != classify.MethodRule {
			t.Errorf("Method = %q, want %q", result.Method, classify.MethodRule)
		}
		if result.Confidence <= 0 || result.Confidence >= 0.5 {
			t.Errorf("Confidence = %v, want low fixed value", result.Confidence)
		}
		if result.Reasoning == "" {
			t.Error("Reasoning must not be empty")
		}
	})

	t.Run("award filename matches criterion A", func(t *testing.T) {
		result, err := backend.Classify(context.Background(), classify.Input{
			DocumentID: "doc-2",
			Filename:   "award_certificate.pdf",
			VisaType:   "O-1A",
		})
		if err != nil {
			t.Fatalf("Classify error: %v", err)
		}

		if result.CriterionLetter == nil || *result.CriterionLetter != "A" {
			t.Fatalf("CriterionLetter = %v, want A", result.CriterionLetter)
		}
		if result.DocumentType != "award_certificate" {
			t.Errorf("DocumentType = %q, want award_certificate", result.DocumentType)
		}
	})

	t.Run("confidence saturates at dampening factor", func(t *testing.T) {
		result, err := backend.Classify(context.Background(), classify.Input{
			DocumentID: "doc-3",
			Filename:   "evidence.pdf",
			Text:       "award prize winner recipient honor medal trophy award prize",
			VisaType:   "O-1A",
		})
		if err != nil {
			t.Fatalf("Classify error: %v", err)
		}

		if math.Abs(result.Confidence-0.8) > 1e-9 {
			t.Errorf("Confidence = %v, want 0.8", result.Confidence)
		}
	})

	t.Run("ties break by registry order", func(t *testing.T) {
		// One keyword hit each for criterion A (award) and B (member).
		result, err := backend.Classify(context.Background(), classify.Input{
			DocumentID: "doc-4",
			Filename:   "evidence.pdf",
			Text:       "award member",
			VisaType:   "O-1A",
		})
		if err != nil {
			t.Fatalf("Classify error: %v", err)
		}

		if result.CriterionLetter == nil || *result.CriterionLetter != "A" {
			t.Fatalf("CriterionLetter = %v, want A (first defined wins)", result.CriterionLetter)
		}

		foundB := false
		for _, alt := range result.Alternatives {
			if alt.CriterionLetter == "B" {
				foundB = true
			}
		}
		if !foundB {
			t.Errorf("Alternatives = %v, want entry for B", result.Alternatives)
		}
	})

	t.Run("text beyond scan limit is ignored", func(t *testing.T) {
		padding := make([]byte, 5000)
		for i := range padding {
			padding[i] = 'x'
		}
		result, err := backend.Classify(context.Background(), classify.Input{
			DocumentID: "doc-5",
			Filename:   "scan.pdf",
			Text:       string(padding) + " award prize medal",
			VisaType:   "O-1A",
		})
		if err != nil {
			t.Fatalf("Classify error: %v", err)
		}

		if result.CriterionLetter != nil {
			t.Errorf("CriterionLetter = %v, want nil (keywords past limit)", *result.CriterionLetter)
		}
	})
}

func TestMissingCriteria(t *testing.T) {
	letter := func(s string) *string { return &s }

	results := []classify.Result{
		{DocumentID: "1", CriterionLetter: letter("A")},
		{DocumentID: "2", CriterionLetter: letter("C")},
		{DocumentID: "3", CriterionLetter: nil},
	}

	missing := classify.MissingCriteria(results, "P-1A")

	var letters []string
	for _, c := range missing {
		letters = append(letters, c.Letter)
	}

	want := []string{"B", "D", "E"}
	if len(letters) != len(want) {
		t.Fatalf("missing = %v, want %v", letters, want)
	}
	for i := range want {
		if letters[i] != want[i] {
			t.Errorf("missing = %v, want %v", letters, want)
			break
		}
	}
}

func TestValidMethod(t *testing.T) {
	for _, m := range []string{"rule-based", "model-assisted", "manual"} {
		if !classify.ValidMethod(m) {
			t.Errorf("ValidMethod(%q) = false", m)
		}
	}
	if classify.ValidMethod("vibes") {
		t.Error("ValidMethod(vibes) = true")
	}
}

func newTestClient(t *testing.T, url string) *llm.Client {
	t.Helper()

	cfg := &llm.Config{BaseURL: url, Model: "test-model"}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize llm config: %v", err)
	}

	client, err := llm.New(cfg, slog.New(slog.NewTextHandler(os.Stderr, nil)))
	if err != nil {
		t.Fatalf("create llm client: %v", err)
	}
	return client
}

func completionResponse(content string) string {
	body := map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	}
	data, _ := json.Marshal(body)
	return string(data)
}

func TestModelBackend(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	t.Run("valid model response is trusted", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(completionResponse(
				`{"criterion_letter":"D","document_type":"judging","confidence":0.92,` +
					`"reasoning":"Invitation to judge a selection panel."}`,
			)))
		}))
		defer server.Close()

		backend := classify.NewModelBackend(newTestClient(t, server.URL), logger)

		result, err := backend.Classify(context.Background(), classify.Input{
			DocumentID: "doc-1",
			Filename:   "judging_invitation.pdf",
			VisaType:   "O-1A",
		})
		if err != nil {
			t.Fatalf("Classify error: %v", err)
		}

		if result.Method != classify.MethodModel {
			t.Errorf("Method = %q, want %q", result.Method, classify.MethodModel)
		}
		if result.CriterionLetter == nil || *result.CriterionLetter != "D" {
			t.Fatalf("CriterionLetter = %v, want D", result.CriterionLetter)
		}
		if result.CriterionName == "" {
			t.Error("CriterionName should resolve from registry")
		}
	})

	t.Run("transport failure falls back to rules", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		backend := classify.NewModelBackend(newTestClient(t, server.URL), logger)

		result, err := backend.Classify(context.Background(), classify.Input{
			DocumentID: "doc-2",
			Filename:   "award_certificate.pdf",
			VisaType:   "O-1A",
		})
		if err != nil {
			t.Fatalf("Classify error: %v", err)
		}

		if result.Method != classify.MethodRule {
			t.Errorf("Method = %q, want rule fallback", result.Method)
		}
	})

	t.Run("unknown criterion letter falls back to rules", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(completionResponse(
				`{"criterion_letter":"Q","document_type":"other","confidence":0.9,"reasoning":"?"}`,
			)))
		}))
		defer server.Close()

		backend := classify.NewModelBackend(newTestClient(t, server.URL), logger)

		result, err := backend.Classify(context.Background(), classify.Input{
			DocumentID: "doc-3",
			Filename:   "award_certificate.pdf",
			VisaType:   "O-1A",
		})
		if err != nil {
			t.Fatalf("Classify error: %v", err)
		}

		if result.Method != classify.MethodRule {
			t.Errorf("Method = %q, want rule fallback", result.Method)
		}
	})

	t.Run("nil client selects rule backend", func(t *testing.T) {
		backend := classify.NewBackend(nil, logger)

		result, err := backend.Classify(context.Background(), classify.Input{
			DocumentID: "doc-4",
			Filename:   "cv.pdf",
			VisaType:   "O-1A",
		})
		if err != nil {
			t.Fatalf("Classify error: %v", err)
		}
		if result.Method != classify.MethodRule {
			t.Errorf("Method = %q, want %q", result.Method, classify.MethodRule)
		}
	})
}
