package handlers

import (
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"
	logger "github.com/sirupsen/logrus"

	"github.com/wellywell/orderdesk/internal/desk"
	"github.com/wellywell/orderdesk/internal/export"
	"github.com/wellywell/orderdesk/internal/format"
	"github.com/wellywell/orderdesk/internal/types"
	"github.com/wellywell/orderdesk/internal/validate"
	"github.com/wellywell/orderdesk/internal/view"
)

const (
	filterPrefix = "filter."
	// NoneValue as a filter value selects nothing: the allow-set is empty.
	NoneValue = "__none__"
)

type columnInfo struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Sortable bool   `json:"sortable"`
	Visible  bool   `json:"visible"`
}

type rowView struct {
	Cells    []string    `json:"cells"`
	Updating bool        `json:"updating"`
	Order    types.Order `json:"order"`
}

type ordersResponse struct {
	desk.State
	Columns []columnInfo `json:"columns"`
	Rows    []rowView    `json:"rows"`
	Total   int          `json:"total"`
}

// parseQuery reads search, filters and an optional sort override from the
// URL. Without sort the desk's own tri-state sort applies.
func parseQuery(req *http.Request, sort view.Sort) view.Query {
	values := req.URL.Query()
	q := view.Query{
		Search: values.Get("search"),
		Sort:   sort,
	}
	if key := values.Get("sort"); key != "" {
		q.Sort = view.Sort{Key: key, Direction: view.Direction(values.Get("dir"))}
		if q.Sort.Direction == view.NoDirection {
			q.Sort.Direction = view.Ascending
		}
	}
	for param, selected := range values {
		key, ok := strings.CutPrefix(param, filterPrefix)
		if !ok {
			continue
		}
		if q.Filters == nil {
			q.Filters = map[string][]string{}
		}
		allowed := []string{}
		for _, v := range selected {
			if v != NoneValue {
				allowed = append(allowed, v)
			}
		}
		q.Filters[key] = allowed
	}
	return q
}

func (h *HandlerSet) visibility(req *http.Request, username string) view.Visibility {
	v, err := h.prefs.LoadVisibility(req.Context(), username)
	if err != nil {
		logger.Warnf("Could not load column visibility of %s: %v", username, err)
		return view.DefaultVisibility()
	}
	return v
}

func columnInfos(v view.Visibility) []columnInfo {
	merged := v.Merge()
	result := make([]columnInfo, 0, len(merged))
	for _, c := range view.Columns() {
		result = append(result, columnInfo{Key: c.Key, Label: c.Label, Sortable: c.Sortable, Visible: merged[c.Key]})
	}
	return result
}

// ensureMonth loads the requested month when it is not the one displayed,
// and the current month on the first visit.
func (h *HandlerSet) ensureMonth(req *http.Request, d *desk.Desk) error {
	month := req.URL.Query().Get("month")
	state := d.State()
	if month == "" {
		if state.Month != "" {
			return nil
		}
		month = format.MonthKey(h.now())
	}
	if !format.ValidMonth(month) {
		return &validate.ValidationError{Field: "month", Reason: "must look like YYYY-MM"}
	}
	if month != state.Month {
		d.Load(req.Context(), month)
	}
	return nil
}

func (h *HandlerSet) HandleGetOrders(w http.ResponseWriter, req *http.Request) {
	user, d, ok := h.handleAuthorizeUser(w, req)
	if !ok {
		return
	}
	if err := h.ensureMonth(req, d); err != nil {
		handleError(w, err)
		return
	}

	state := d.State()
	stores := h.catalog.StoreNames()
	rows, err := view.Derive(state.Orders, stores, parseQuery(req, state.Sort))
	if err != nil {
		handleError(w, err)
		return
	}

	visibility := h.visibility(req, user.Username)
	visible := visibility.VisibleColumns()
	response := ordersResponse{
		State:   state,
		Columns: columnInfos(visibility),
		Rows:    make([]rowView, 0, len(rows)),
		Total:   len(state.Orders),
	}
	for _, o := range rows {
		cells := make([]string, len(visible))
		for i, c := range visible {
			cells[i] = c.Value(o, stores)
		}
		response.Rows = append(response.Rows, rowView{
			Cells:    cells,
			Updating: slices.Contains(state.Updating, o.ID),
			Order:    o,
		})
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *HandlerSet) HandleLoadMonth(w http.ResponseWriter, req *http.Request) {
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
	if !format.ValidMonth(data.Month) {
		handleError(w, &validate.ValidationError{Field: "month", Reason: "must look like YYYY-MM"})
		return
	}
	d.Load(req.Context(), data.Month)
	writeJSON(w, http.StatusOK, d.State())
}

func (h *HandlerSet) HandleExport(w http.ResponseWriter, req *http.Request) {
	user, d, ok := h.handleAuthorizeUser(w, req)
	if !ok {
		return
	}
	state := d.State()
	stores := h.catalog.StoreNames()
	rows, err := view.Derive(state.Orders, stores, parseQuery(req, state.Sort))
	if err != nil {
		handleError(w, err)
		return
	}

	w.Header().Set("content-type", export.ContentType)
	w.Header().Set("content-disposition", fmt.Sprintf(`attachment; filename="orders-%s.xlsx"`, state.Month))
	err = export.Write(w, h.visibility(req, user.Username).VisibleColumns(), rows, stores)
	if err != nil {
		logger.Errorf("Export for %s failed: %v", user.Username, err)
	}
}

func (h *HandlerSet) HandleSummary(w http.ResponseWriter, req *http.Request) {
	_, d, ok := h.handleAuthorizeUser(w, req)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, view.Summarize(d.State().Orders, h.catalog.StoreNames()))
}

func (h *HandlerSet) HandleFilterValues(w http.ResponseWriter, req *http.Request) {
	_, d, ok := h.handleAuthorizeUser(w, req)
	if !ok {
		return
	}
	values, err := view.UniqueValues(d.State().Orders, h.catalog.StoreNames(), chi.URLParam(req, "column"))
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, values)
}

func (h *HandlerSet) HandleToggleSort(w http.ResponseWriter, req *http.Request) {
	_, d, ok := h.handleAuthorizeUser(w, req)
	if !ok {
		return
	}
	sort, err := d.ToggleSort(chi.URLParam(req, "column"))
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sort)
}

func (h *HandlerSet) HandleGetColumns(w http.ResponseWriter, req *http.Request) {
	user, _, ok := h.handleAuthorizeUser(w, req)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, columnInfos(h.visibility(req, user.Username)))
}

func (h *HandlerSet) HandlePutColumns(w http.ResponseWriter, req *http.Request) {
	user, _, ok := h.handleAuthorizeUser(w, req)
	if !ok {
		return
	}
	var data struct {
		Key     string `json:"key"`
		Visible bool   `json:"visible"`
	}
	if err := parseBody(req, &data); err != nil {
		handleError(w, err)
		return
	}

	v, err := h.visibility(req, user.Username).Set(data.Key, data.Visible)
	if err != nil {
		handleError(w, err)
		return
	}
	if err := h.prefs.SaveVisibility(req.Context(), user.Username, v); err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, columnInfos(v))
}
