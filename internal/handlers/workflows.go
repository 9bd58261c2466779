package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wellywell/orderdesk/internal/desk"
)

func (h *HandlerSet) HandleCreateOrder(w http.ResponseWriter, req *http.Request) {
	_, d, ok := h.handleAuthorizeUser(w, req)
	if !ok {
		return
	}
	var form desk.OrderForm
	if err := parseBody(req, &form); err != nil {
		handleError(w, err)
		return
	}

	result, err := d.Create(req.Context(), form)
	if err != nil {
		handleError(w, err)
		return
	}
	status := http.StatusCreated
	if result.Optimistic {
		status = http.StatusAccepted
	}
	writeJSON(w, status, result)
}

func (h *HandlerSet) HandleEditOrder(w http.ResponseWriter, req *http.Request) {
	_, d, ok := h.handleAuthorizeUser(w, req)
	if !ok {
		return
	}
	var form desk.OrderForm
	if err := parseBody(req, &form); err != nil {
		handleError(w, err)
		return
	}

	if err := d.Edit(req.Context(), chi.URLParam(req, "id"), form); err != nil {
		handleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *HandlerSet) HandleGetEditForm(w http.ResponseWriter, req *http.Request) {
	_, d, ok := h.handleAuthorizeUser(w, req)
	if !ok {
		return
	}
	form, err := d.EditForm(chi.URLParam(req, "id"))
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, form)
}

func (h *HandlerSet) HandleDuplicate(w http.ResponseWriter, req *http.Request) {
	_, d, ok := h.handleAuthorizeUser(w, req)
	if !ok {
		return
	}
	form, err := d.Duplicate(chi.URLParam(req, "id"))
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, form)
}

func (h *HandlerSet) HandleToggleCheck(w http.ResponseWriter, req *http.Request) {
	_, d, ok := h.handleAuthorizeUser(w, req)
	if !ok {
		return
	}
	checked, err := d.ToggleCheck(req.Context(), chi.URLParam(req, "id"))
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"isChecked": checked})
}

func (h *HandlerSet) HandleFulfill(w http.ResponseWriter, req *http.Request) {
	_, d, ok := h.handleAuthorizeUser(w, req)
	if !ok {
		return
	}
	var data struct {
		Order desk.OrderForm `json:"order"`
		desk.FulfillOptions
	}
	if err := parseBody(req, &data); err != nil {
		handleError(w, err)
		return
	}

	if err := d.Fulfill(req.Context(), data.Order, data.FulfillOptions); err != nil {
		handleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *HandlerSet) HandleCreateMonth(w http.ResponseWriter, req *http.Request) {
	_, d, ok := h.handleAuthorizeUser(w, req)
	if !ok {
		return
	}
	var data struct {
		Month string `json:"month"`
	}
	if err := parseBody(req, &data); err != nil {
		handleError(w, err)
		return
	}

	if err := d.EnsureMonthFile(req.Context(), data.Month); err != nil {
		handleError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}
