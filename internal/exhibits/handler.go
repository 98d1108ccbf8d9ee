package exhibits

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/caseprep/docket/pkg/handlers"
	"github.com/caseprep/docket/pkg/routes"
)

// Handler provides HTTP endpoints for exhibit operations. Exhibit lists are
// small and always returned whole, so there is no pagination here.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "exhibits"),
	}
}

// Routes returns the route group definition for exhibit endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/exhibits",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/case/{id}", Handler: h.List},
			{Method: "GET", Pattern: "/case/{id}/validate", Handler: h.Validate},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find},
			{Method: "POST", Pattern: "/case/{id}/build", Handler: h.Build},
			{Method: "POST", Pattern: "/case/{id}/auto-order", Handler: h.AutoOrder},
			{Method: "POST", Pattern: "/case/{id}/reorder", Handler: h.Reorder},
			{Method: "POST", Pattern: "/case/{id}/arrange", Handler: h.Arrange},
			{Method: "POST", Pattern: "/case/{id}/renumber", Handler: h.Renumber},
			{Method: "PUT", Pattern: "/{id}/name", Handler: h.Rename},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.Delete},
		},
	}
}

// List returns a case's exhibits in position order.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	caseID, ok := h.pathID(w, r)
	if !ok {
		return
	}

	exs, err := h.sys.List(r.Context(), caseID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, exs)
}

// Find returns a single exhibit by its UUID path parameter.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	e, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, e)
}

// Build creates exhibits for every classified document that lacks one.
func (h *Handler) Build(w http.ResponseWriter, r *http.Request) {
	caseID, ok := h.pathID(w, r)
	if !ok {
		return
	}

	exs, err := h.sys.Build(r.Context(), caseID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, exs)
}

// AutoOrder places exhibits into the case's visa template order.
func (h *Handler) AutoOrder(w http.ResponseWriter, r *http.Request) {
	caseID, ok := h.pathID(w, r)
	if !ok {
		return
	}

	exs, err := h.sys.AutoOrder(r.Context(), caseID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, exs)
}

// Reorder applies an explicit permutation to a case's exhibits.
func (h *Handler) Reorder(w http.ResponseWriter, r *http.Request) {
	caseID, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var cmd ReorderCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	exs, err := h.sys.Reorder(r.Context(), caseID, cmd.Order)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, exs)
}

// Arrange interprets a natural-language reorder instruction.
func (h *Handler) Arrange(w http.ResponseWriter, r *http.Request) {
	caseID, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var cmd ArrangeCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidRequest)
		return
	}
	if cmd.Instruction == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	resp, err := h.sys.Arrange(r.Context(), caseID, cmd.Instruction)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}

// Renumber relabels a case's exhibits for its current numbering style.
func (h *Handler) Renumber(w http.ResponseWriter, r *http.Request) {
	caseID, ok := h.pathID(w, r)
	if !ok {
		return
	}

	exs, err := h.sys.Renumber(r.Context(), caseID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, exs)
}

// Validate reports criteria coverage for a case's exhibit list.
func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	caseID, ok := h.pathID(w, r)
	if !ok {
		return
	}

	resp, err := h.sys.Validate(r.Context(), caseID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}

// Rename updates an exhibit's display name.
func (h *Handler) Rename(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var cmd RenameCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	e, err := h.sys.Rename(r.Context(), id, cmd.Name)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, e)
}

// Delete removes an exhibit by its UUID path parameter.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.sys.Delete(r.Context(), id); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidRequest)
		return uuid.Nil, false
	}
	return id, true
}
