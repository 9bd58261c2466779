package handlers

import (
	"net/http"
)

func (h *HandlerSet) HandleGetCatalog(w http.ResponseWriter, req *http.Request) {
	if _, _, ok := h.handleAuthorizeUser(w, req); !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.catalog.Snapshot())
}

func (h *HandlerSet) HandleGetAssignable(w http.ResponseWriter, req *http.Request) {
	user, _, ok := h.handleAuthorizeUser(w, req)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.catalog.Assignable(user))
}

func (h *HandlerSet) HandleAddUnit(w http.ResponseWriter, req *http.Request) {
	user, _, ok := h.handleAuthorizeUser(w, req)
	if !ok {
		return
	}
	var data struct {
		Name string `json:"name"`
	}
	if err := parseBody(req, &data); err != nil {
		handleError(w, err)
		return
	}

	if err := h.catalog.AddUnit(req.Context(), user, data.Name); err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, h.catalog.Snapshot().Units)
}
