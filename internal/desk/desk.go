// Package desk holds the order workspace of one signed-in user: the loaded
// month, its rows, and the workflows that change them.
package desk

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/wellywell/orderdesk/internal/backend"
	"github.com/wellywell/orderdesk/internal/loader"
	"github.com/wellywell/orderdesk/internal/locks"
	"github.com/wellywell/orderdesk/internal/types"
	"github.com/wellywell/orderdesk/internal/view"
)

type Backend interface {
	GetOrders(ctx context.Context, month string) (*backend.OrdersPage, error)
	CreateMonthFile(ctx context.Context, month string) (*backend.CreateMonthResult, error)
	AddOrder(ctx context.Context, order types.Order, fileID string) error
	UpdateOrder(ctx context.Context, fileID, orderID, field, value string) error
	UpdateOrderBatch(ctx context.Context, fileID, orderID string, fields map[string]any) error
	FulfillOrder(ctx context.Context, fileID string, order types.Order) error
}

type Stores interface {
	StoreNames() view.StoreNames
}

type Level string

const (
	InfoLevel    Level = "info"
	WarningLevel Level = "warning"
	ErrorLevel   Level = "error"
)

// Notice is a message for the user: the outcome of a workflow that finished
// after the request that started it.
type Notice struct {
	Level   Level     `json:"level"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

type State struct {
	Month      string           `json:"month"`
	FileID     string           `json:"fileId"`
	Loading    bool             `json:"loading"`
	Submitting bool             `json:"submitting"`
	Mismatch   *loader.Mismatch `json:"mismatch,omitempty"`
	Warning    string           `json:"warning,omitempty"`
	LoadError  string           `json:"loadError,omitempty"`
	Updating   []string         `json:"updating"`
	Sort       view.Sort        `json:"sort"`
	Orders     []types.Order    `json:"-"`
}

type Option func(*Desk)

func WithClock(now func() time.Time) Option {
	return func(d *Desk) {
		d.now = now
	}
}

type Desk struct {
	backend Backend
	stores  Stores
	user    types.User
	now     func() time.Time
	gen     loader.Generation
	rows    *locks.RowLocks
	writes  sync.WaitGroup

	mu         sync.Mutex
	month      string
	orders     []types.Order
	fileID     string
	loading    bool
	submitting bool
	mismatch   *loader.Mismatch
	loadErr    string
	sort       view.Sort
	notices    []Notice
	// successor receives the notices once the desk has been replaced.
	successor *Desk
}

func New(b Backend, stores Stores, user types.User, opts ...Option) *Desk {
	d := &Desk{
		backend: b,
		stores:  stores,
		user:    user,
		now:     time.Now,
		rows:    locks.NewRowLocks(),
		orders:  []types.Order{},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Desk) User() types.User {
	return d.user
}

func (d *Desk) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()

	s := State{
		Month:      d.month,
		FileID:     d.fileID,
		Loading:    d.loading,
		Submitting: d.submitting,
		Mismatch:   d.mismatch,
		LoadError:  d.loadErr,
		Updating:   d.rows.Keys(),
		Sort:       d.sort,
		Orders:     slices.Clone(d.orders),
	}
	if d.mismatch != nil {
		s.Warning = d.mismatch.Message()
	}
	return s
}

func (d *Desk) ToggleSort(key string) (view.Sort, error) {
	c, err := view.Lookup(key)
	if err != nil {
		return view.Sort{}, err
	}
	if !c.Sortable {
		return view.Sort{}, &view.NotSortableError{Key: key}
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sort = d.sort.Toggle(key)
	return d.sort, nil
}

// Notices returns and clears the pending notices.
func (d *Desk) Notices() []Notice {
	d.mu.Lock()
	defer d.mu.Unlock()
	result := d.notices
	d.notices = nil
	return result
}

// Wait blocks until background writes started by optimistic workflows finish.
func (d *Desk) Wait() {
	d.writes.Wait()
}

func (d *Desk) notify(level Level, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	switch level {
	case ErrorLevel:
		logger.Errorf("[%s] %s", d.user.Username, msg)
	case WarningLevel:
		logger.Warnf("[%s] %s", d.user.Username, msg)
	default:
		logger.Infof("[%s] %s", d.user.Username, msg)
	}

	d.push(Notice{Level: level, Message: msg, At: d.now()})
}

func (d *Desk) push(n Notice) {
	d.mu.Lock()
	next := d.successor
	if next == nil {
		d.notices = append(d.notices, n)
	}
	d.mu.Unlock()
	if next != nil {
		next.push(n)
	}
}

// handOver moves the pending notices to next and forwards every later one
// there, so writes still running on d report to the desk the user sees.
func (d *Desk) handOver(next *Desk) {
	d.mu.Lock()
	defer d.mu.Unlock()
	next.mu.Lock()
	next.notices = append(d.notices, next.notices...)
	next.mu.Unlock()
	d.notices = nil
	d.successor = next
}

// rowsByID returns copies of the loaded rows of an order. Callers hold mu.
func (d *Desk) rowsByID(orderID string) []types.Order {
	var result []types.Order
	for _, o := range d.orders {
		if o.ID == orderID {
			result = append(result, o)
		}
	}
	return result
}

// patchRows applies fn to every loaded row of an order. Callers hold mu.
func (d *Desk) patchRows(orderID string, fn func(o *types.Order)) {
	for i := range d.orders {
		if d.orders[i].ID == orderID {
			fn(&d.orders[i])
		}
	}
}

// restoreRows puts previously copied rows of an order back in place.
// Callers hold mu.
func (d *Desk) restoreRows(orderID string, previous []types.Order) {
	k := 0
	for i := range d.orders {
		if d.orders[i].ID == orderID && k < len(previous) {
			d.orders[i] = previous[k]
			k++
		}
	}
}

func (d *Desk) removeRows(orderID string) {
	d.orders = slices.DeleteFunc(d.orders, func(o types.Order) bool {
		return o.ID == orderID
	})
}
