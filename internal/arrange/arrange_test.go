package arrange_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"testing"

	"github.com/caseprep/docket/internal/arrange"
	"github.com/caseprep/docket/internal/llm"
)

func sampleExhibits() []arrange.Exhibit {
	return []arrange.Exhibit{
		{Name: "CV", CriterionLetter: "", PageCount: 4},
		{Name: "Passport Copy", CriterionLetter: "", PageCount: 2},
		{Name: "Award", CriterionLetter: "A", PageCount: 1},
	}
}

func TestRulesInterpreter(t *testing.T) {
	interp := arrange.NewRulesInterpreter()
	ctx := context.Background()

	t.Run("reverse", func(t *testing.T) {
		result := interp.Parse(ctx, "reverse", sampleExhibits())

		if result.Action != arrange.ActionReverse {
			t.Errorf("Action = %q, want %q", result.Action, arrange.ActionReverse)
		}
		if want := []int{2, 1, 0}; !reflect.DeepEqual(result.NewOrder, want) {
			t.Errorf("NewOrder = %v, want %v", result.NewOrder, want)
		}
		if result.Method != arrange.MethodRules {
			t.Errorf("Method = %q, want %q", result.Method, arrange.MethodRules)
		}
	})

	t.Run("put X first", func(t *testing.T) {
		result := interp.Parse(ctx, "put passport first", sampleExhibits())

		if result.Action != arrange.ActionMove {
			t.Errorf("Action = %q, want %q", result.Action, arrange.ActionMove)
		}
		if want := []int{1, 0, 2}; !reflect.DeepEqual(result.NewOrder, want) {
			t.Errorf("NewOrder = %v, want %v", result.NewOrder, want)
		}
	})

	t.Run("unrecognized instruction yields identity", func(t *testing.T) {
		result := interp.Parse(ctx, "do a backflip", sampleExhibits())

		if result.Action != arrange.ActionUnknown {
			t.Errorf("Action = %q, want %q", result.Action, arrange.ActionUnknown)
		}
		if want := []int{0, 1, 2}; !reflect.DeepEqual(result.NewOrder, want) {
			t.Errorf("NewOrder = %v, want %v", result.NewOrder, want)
		}
		if result.Explanation == "" {
			t.Error("Explanation must not be empty")
		}
	})

	t.Run("sort by name", func(t *testing.T) {
		result := interp.Parse(ctx, "sort them by name", sampleExhibits())

		if result.Action != arrange.ActionSort {
			t.Errorf("Action = %q, want %q", result.Action, arrange.ActionSort)
		}
		// Award, CV, Passport Copy.
		if want := []int{2, 0, 1}; !reflect.DeepEqual(result.NewOrder, want) {
			t.Errorf("NewOrder = %v, want %v", result.NewOrder, want)
		}
	})

	t.Run("sort by pages descending", func(t *testing.T) {
		result := interp.Parse(ctx, "sort by page count", sampleExhibits())

		if want := []int{0, 1, 2}; !reflect.DeepEqual(result.NewOrder, want) {
			t.Errorf("NewOrder = %v, want %v", result.NewOrder, want)
		}
	})

	t.Run("sort by criterion puts unclassified last", func(t *testing.T) {
		result := interp.Parse(ctx, "order by criterion", sampleExhibits())

		if want := []int{2, 0, 1}; !reflect.DeepEqual(result.NewOrder, want) {
			t.Errorf("NewOrder = %v, want %v", result.NewOrder, want)
		}
	})

	t.Run("move X before Y", func(t *testing.T) {
		result := interp.Parse(ctx, "move award before cv", sampleExhibits())

		if result.Action != arrange.ActionMove {
			t.Errorf("Action = %q, want %q", result.Action, arrange.ActionMove)
		}
		if want := []int{2, 0, 1}; !reflect.DeepEqual(result.NewOrder, want) {
			t.Errorf("NewOrder = %v, want %v", result.NewOrder, want)
		}
	})

	t.Run("move with unmatched target is unknown", func(t *testing.T) {
		result := interp.Parse(ctx, "move award before transcript", sampleExhibits())

		if result.Action != arrange.ActionUnknown {
			t.Errorf("Action = %q, want %q", result.Action, arrange.ActionUnknown)
		}
		if want := []int{0, 1, 2}; !reflect.DeepEqual(result.NewOrder, want) {
			t.Errorf("NewOrder = %v, want identity %v", result.NewOrder, want)
		}
	})

	t.Run("empty exhibit list", func(t *testing.T) {
		result := interp.Parse(ctx, "reverse", nil)

		if len(result.NewOrder) != 0 {
			t.Errorf("NewOrder = %v, want empty", result.NewOrder)
		}
	})
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

func TestModelInterpreter(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	ctx := context.Background()

	t.Run("valid permutation is trusted", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(completionResponse(
				`{"action":"reorder","new_order":[2,0,1],"explanation":"Award first, then CV, then passport."}`,
			)))
		}))
		defer server.Close()

		interp := arrange.NewInterpreter(newTestClient(t, server.URL), logger)
		result := interp.Parse(ctx, "awards up front", sampleExhibits())

		if result.Method != arrange.MethodModel {
			t.Errorf("Method = %q, want %q", result.Method, arrange.MethodModel)
		}
		if want := []int{2, 0, 1}; !reflect.DeepEqual(result.NewOrder, want) {
			t.Errorf("NewOrder = %v, want %v", result.NewOrder, want)
		}
	})

	t.Run("invalid permutation falls back to rules", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(completionResponse(
				`{"action":"reorder","new_order":[0,0,1],"explanation":"Dropped one."}`,
			)))
		}))
		defer server.Close()

		interp := arrange.NewInterpreter(newTestClient(t, server.URL), logger)
		result := interp.Parse(ctx, "reverse", sampleExhibits())

		if result.Method != arrange.MethodRules {
			t.Errorf("Method = %q, want rule fallback", result.Method)
		}
		if want := []int{2, 1, 0}; !reflect.DeepEqual(result.NewOrder, want) {
			t.Errorf("NewOrder = %v, want %v", result.NewOrder, want)
		}
	})

	t.Run("transport failure falls back to rules", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		interp := arrange.NewInterpreter(newTestClient(t, server.URL), logger)
		result := interp.Parse(ctx, "put passport first", sampleExhibits())

		if result.Method != arrange.MethodRules {
			t.Errorf("Method = %q, want rule fallback", result.Method)
		}
		if want := []int{1, 0, 2}; !reflect.DeepEqual(result.NewOrder, want) {
			t.Errorf("NewOrder = %v, want %v", result.NewOrder, want)
		}
	})

	t.Run("nil client selects rules", func(t *testing.T) {
		interp := arrange.NewInterpreter(nil, logger)
		result := interp.Parse(ctx, "reverse", sampleExhibits())

		if result.Method != arrange.MethodRules {
			t.Errorf("Method = %q, want %q", result.Method, arrange.MethodRules)
		}
	})
}
