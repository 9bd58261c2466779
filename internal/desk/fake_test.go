package desk

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/wellywell/orderdesk/internal/backend"
	"github.com/wellywell/orderdesk/internal/types"
	"github.com/wellywell/orderdesk/internal/view"
)

type fakeBackend struct {
	getOrdersFn        func(ctx context.Context, month string) (*backend.OrdersPage, error)
	createMonthFileFn  func(ctx context.Context, month string) (*backend.CreateMonthResult, error)
	addOrderFn         func(ctx context.Context, order types.Order, fileID string) error
	updateOrderFn      func(ctx context.Context, fileID, orderID, field, value string) error
	updateOrderBatchFn func(ctx context.Context, fileID, orderID string, fields map[string]any) error
	fulfillOrderFn     func(ctx context.Context, fileID string, order types.Order) error

	mu    sync.Mutex
	calls []string
}

func (f *fakeBackend) record(format string, args ...any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *fakeBackend) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make([]string, len(f.calls))
	copy(result, f.calls)
	return result
}

func (f *fakeBackend) GetOrders(ctx context.Context, month string) (*backend.OrdersPage, error) {
	f.record("GetOrders %s", month)
	if f.getOrdersFn == nil {
		return &backend.OrdersPage{}, nil
	}
	return f.getOrdersFn(ctx, month)
}

func (f *fakeBackend) CreateMonthFile(ctx context.Context, month string) (*backend.CreateMonthResult, error) {
	f.record("CreateMonthFile %s", month)
	if f.createMonthFileFn == nil {
		return &backend.CreateMonthResult{Success: true}, nil
	}
	return f.createMonthFileFn(ctx, month)
}

func (f *fakeBackend) AddOrder(ctx context.Context, order types.Order, fileID string) error {
	f.record("AddOrder %s %s %s", order.ID, order.SKU, fileID)
	if f.addOrderFn == nil {
		return nil
	}
	return f.addOrderFn(ctx, order, fileID)
}

func (f *fakeBackend) UpdateOrder(ctx context.Context, fileID, orderID, field, value string) error {
	f.record("UpdateOrder %s %s %s=%s", fileID, orderID, field, value)
	if f.updateOrderFn == nil {
		return nil
	}
	return f.updateOrderFn(ctx, fileID, orderID, field, value)
}

func (f *fakeBackend) UpdateOrderBatch(ctx context.Context, fileID, orderID string, fields map[string]any) error {
	f.record("UpdateOrderBatch %s %s", fileID, orderID)
	if f.updateOrderBatchFn == nil {
		return nil
	}
	return f.updateOrderBatchFn(ctx, fileID, orderID, fields)
}

func (f *fakeBackend) FulfillOrder(ctx context.Context, fileID string, order types.Order) error {
	f.record("FulfillOrder %s %s %s", fileID, order.ID, order.SKU)
	if f.fulfillOrderFn == nil {
		return nil
	}
	return f.fulfillOrderFn(ctx, fileID, order)
}

type fakeStores struct {
	names view.StoreNames
}

func (f fakeStores) StoreNames() view.StoreNames {
	return f.names
}

var (
	testNow   = time.Date(2024, 1, 20, 15, 30, 0, 0, time.Local)
	testUser  = types.User{Username: "lan", Role: "leader"}
	testAdmin = types.User{Username: "an", Role: "admin"}
	stores    = fakeStores{names: view.StoreNames{"s1": "Sunny Prints", "s2": "Moon Tees"}}
)

func januaryOrders() []types.Order {
	return []types.Order{
		{ID: "A-1", Date: "2024-01-05T10:00:00Z", StoreID: "s1", Handler: "lan", SKU: "TS-RED", Quantity: 1},
		{ID: "A-1", Date: "2024-01-05T10:00:00Z", StoreID: "s1", Handler: "lan", SKU: "TS-BLUE", Quantity: 2},
		{ID: "B-2", Date: "2024-01-06T10:00:00Z", StoreID: "s2", Handler: "minh", SKU: "MUG", Quantity: 1, IsFulfilled: true},
	}
}

// loadedDesk returns a desk showing January with file f-1.
func loadedDesk(fb *fakeBackend, user types.User) *Desk {
	if fb.getOrdersFn == nil {
		fb.getOrdersFn = func(ctx context.Context, month string) (*backend.OrdersPage, error) {
			return &backend.OrdersPage{Orders: januaryOrders(), FileID: "f-1"}, nil
		}
	}
	d := New(fb, stores, user, WithClock(func() time.Time { return testNow }))
	d.Load(context.Background(), "2024-01")
	return d
}

func orderIDs(orders []types.Order) []string {
	result := []string{}
	for _, o := range orders {
		result = append(result, o.ID+"/"+o.SKU)
	}
	return result
}
