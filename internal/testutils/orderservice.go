package testutils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/wellywell/orderdesk/internal/format"
	"github.com/wellywell/orderdesk/internal/types"
)

// OrderService is an in-memory stand-in for the spreadsheet order service.
// Each month lives in its own file; a month without a file has no rows.
type OrderService struct {
	Server *httptest.Server

	mu        sync.Mutex
	files     map[string]string
	orders    map[string][]types.Order
	fulfilled []types.Order
	stores    []types.Store
	units     []string
	users     []types.User
	failWrite string
}

func NewOrderService(stores []types.Store, users []types.User) *OrderService {
	s := &OrderService{
		files:  map[string]string{},
		orders: map[string][]types.Order{},
		stores: stores,
		users:  users,
		units:  []string{"pcs"},
	}

	r := chi.NewRouter()
	r.Get("/orders", s.getOrders)
	r.Post("/orders", s.addOrder)
	r.Patch("/orders/{id}", s.updateOrder)
	r.Patch("/orders/{id}/batch", s.updateBatch)
	r.Post("/months", s.createMonth)
	r.Post("/fulfillments", s.fulfill)
	r.Get("/stores", func(w http.ResponseWriter, r *http.Request) { s.reply(w, http.StatusOK, s.stores) })
	r.Get("/users", func(w http.ResponseWriter, r *http.Request) { s.reply(w, http.StatusOK, s.users) })
	r.Get("/units", func(w http.ResponseWriter, r *http.Request) { s.reply(w, http.StatusOK, s.units) })
	r.Post("/units", s.addUnit)

	s.Server = httptest.NewServer(r)
	return s
}

func (s *OrderService) URL() string {
	return s.Server.URL
}

func (s *OrderService) Close() {
	s.Server.Close()
}

// Seed creates the file of a month holding orders.
func (s *OrderService) Seed(month string, orders ...types.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[month] = "file-" + month
	s.orders[month] = append(s.orders[month], orders...)
}

// FailWrites makes every write answer 500 with message; "" restores success.
func (s *OrderService) FailWrites(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failWrite = message
}

func (s *OrderService) Orders(month string) []types.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.orders[month])
}

func (s *OrderService) Fulfilled() []types.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.fulfilled)
}

func (s *OrderService) Units() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.units)
}

func (s *OrderService) reply(w http.ResponseWriter, status int, v any) {
	w.Header().Set("content-type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *OrderService) fail(w http.ResponseWriter, status int, message string) {
	s.reply(w, status, map[string]string{"error": message})
}

// writeRefused reports whether writes are failing. Callers hold mu.
func (s *OrderService) writeRefused(w http.ResponseWriter) bool {
	if s.failWrite == "" {
		return false
	}
	s.fail(w, http.StatusInternalServerError, s.failWrite)
	return true
}

func (s *OrderService) monthOfFile(fileID string) (string, bool) {
	for month, id := range s.files {
		if id == fileID {
			return month, true
		}
	}
	return "", false
}

func (s *OrderService) getOrders(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	s.mu.Lock()
	defer s.mu.Unlock()
	orders := s.orders[month]
	if orders == nil {
		orders = []types.Order{}
	}
	s.reply(w, http.StatusOK, map[string]any{"orders": orders, "fileId": s.files[month]})
}

func (s *OrderService) createMonth(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Month string `json:"month"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || !format.ValidMonth(body.Month) {
		s.reply(w, http.StatusOK, map[string]any{"success": false, "error": "invalid month"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.writeRefused(w) {
		return
	}
	if _, ok := s.files[body.Month]; !ok {
		s.files[body.Month] = "file-" + body.Month
	}
	s.reply(w, http.StatusOK, map[string]any{"success": true})
}

func (s *OrderService) addOrder(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Order  types.Order `json:"order"`
		FileID string      `json:"fileId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.fail(w, http.StatusBadRequest, err.Error())
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.writeRefused(w) {
		return
	}

	month := format.MonthOf(body.Order.Date)
	if body.FileID != "" {
		m, ok := s.monthOfFile(body.FileID)
		if !ok {
			s.fail(w, http.StatusNotFound, "unknown file "+body.FileID)
			return
		}
		month = m
	} else if _, ok := s.files[month]; !ok {
		s.fail(w, http.StatusBadRequest, "no file for "+month)
		return
	}
	s.orders[month] = append(s.orders[month], body.Order)
	w.WriteHeader(http.StatusCreated)
}

// patch applies fn to the rows of an order in the given file. Callers hold mu.
func (s *OrderService) patch(w http.ResponseWriter, fileID, orderID string, fn func(o *types.Order)) bool {
	month, ok := s.monthOfFile(fileID)
	if !ok {
		s.fail(w, http.StatusNotFound, "unknown file "+fileID)
		return false
	}
	found := false
	for i := range s.orders[month] {
		if s.orders[month][i].ID == orderID {
			fn(&s.orders[month][i])
			found = true
		}
	}
	if !found {
		s.fail(w, http.StatusNotFound, "unknown order "+orderID)
	}
	return found
}

func (s *OrderService) updateOrder(w http.ResponseWriter, r *http.Request) {
	var body struct {
		FileID string `json:"fileId"`
		Field  string `json:"field"`
		Value  string `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.fail(w, http.StatusBadRequest, err.Error())
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.writeRefused(w) {
		return
	}
	ok := s.patch(w, body.FileID, chi.URLParam(r, "id"), func(o *types.Order) {
		switch body.Field {
		case "isChecked":
			o.IsChecked = body.Value == "TRUE"
		case "isFulfilled":
			o.IsFulfilled = body.Value == "TRUE"
		case "tracking":
			o.Tracking = body.Value
		}
	})
	if ok {
		w.WriteHeader(http.StatusOK)
	}
}

func (s *OrderService) updateBatch(w http.ResponseWriter, r *http.Request) {
	var body struct {
		FileID string         `json:"fileId"`
		Fields map[string]any `json:"fields"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.fail(w, http.StatusBadRequest, err.Error())
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.writeRefused(w) {
		return
	}
	text := func(key string) string {
		v, _ := body.Fields[key].(string)
		return v
	}
	// Item fields address the first row of the order; the rest is order level.
	first := true
	ok := s.patch(w, body.FileID, chi.URLParam(r, "id"), func(o *types.Order) {
		o.Tracking = text("tracking")
		o.Status = types.Status(text("status"))
		if !first {
			return
		}
		first = false
		o.SKU = text("sku")
		o.Note = text("note")
		if q, ok := body.Fields["quantity"].(float64); ok {
			o.Quantity = int(q)
		}
	})
	if ok {
		w.WriteHeader(http.StatusOK)
	}
}

func (s *OrderService) fulfill(w http.ResponseWriter, r *http.Request) {
	var body struct {
		FileID string      `json:"fileId"`
		Order  types.Order `json:"order"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.fail(w, http.StatusBadRequest, err.Error())
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.writeRefused(w) {
		return
	}
	s.fulfilled = append(s.fulfilled, body.Order)
	w.WriteHeader(http.StatusCreated)
}

func (s *OrderService) addUnit(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.fail(w, http.StatusBadRequest, err.Error())
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.writeRefused(w) {
		return
	}
	s.units = append(s.units, body.Name)
	w.WriteHeader(http.StatusCreated)
}
