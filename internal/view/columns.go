package view

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"

	"github.com/wellywell/orderdesk/internal/format"
	"github.com/wellywell/orderdesk/internal/types"
)

const (
	FulfilledLabel    = "Fulfilled"
	NotFulfilledLabel = "Chưa"
	CheckedLabel      = "Checked"
	UncheckedLabel    = "Unchecked"
)

type Kind int

const (
	TextKind Kind = iota
	NumberKind
	BoolKind
	DateKind
)

// StoreNames resolves store ids to display names.
type StoreNames map[string]string

func NewStoreNames(stores []types.Store) StoreNames {
	names := make(StoreNames, len(stores))
	for _, s := range stores {
		names[s.ID] = s.Name
	}
	return names
}

func (s StoreNames) Resolve(o types.Order) string {
	if name, ok := s[o.StoreID]; ok && name != "" {
		return name
	}
	if o.StoreName != "" {
		return o.StoreName
	}
	return o.StoreID
}

// Column describes one table column: how its display value is produced
// and how two rows compare on it.
type Column struct {
	Key      string
	Label    string
	Kind     Kind
	Sortable bool
	Value    func(o types.Order, stores StoreNames) string
	compare  func(a, b types.Order, stores StoreNames) int
}

func (c Column) Compare(a, b types.Order, stores StoreNames) int {
	return c.compare(a, b, stores)
}

type UnknownColumnError struct {
	Key string
}

func (e *UnknownColumnError) Error() string {
	return fmt.Sprintf("unknown column %q", e.Key)
}

type NotSortableError struct {
	Key string
}

func (e *NotSortableError) Error() string {
	return fmt.Sprintf("column %q is not sortable", e.Key)
}

func textColumn(key, label string, sortable bool, get func(types.Order) string) Column {
	return Column{
		Key:      key,
		Label:    label,
		Kind:     TextKind,
		Sortable: sortable,
		Value:    func(o types.Order, _ StoreNames) string { return get(o) },
		compare:  func(a, b types.Order, _ StoreNames) int { return strings.Compare(get(a), get(b)) },
	}
}

func numberColumn(key, label string, get func(types.Order) int) Column {
	return Column{
		Key:      key,
		Label:    label,
		Kind:     NumberKind,
		Sortable: true,
		Value:    func(o types.Order, _ StoreNames) string { return strconv.Itoa(get(o)) },
		compare:  func(a, b types.Order, _ StoreNames) int { return cmp.Compare(get(a), get(b)) },
	}
}

func boolColumn(key, label, yes, no string, get func(types.Order) bool) Column {
	return Column{
		Key:      key,
		Label:    label,
		Kind:     BoolKind,
		Sortable: true,
		Value: func(o types.Order, _ StoreNames) string {
			if get(o) {
				return yes
			}
			return no
		},
		compare: func(a, b types.Order, _ StoreNames) int { return compareBool(get(a), get(b)) },
	}
}

// dateColumn orders by parsed timestamp when both sides parse and differ,
// otherwise by the raw stored strings.
func dateColumn(key, label string, display func(string) string, get func(types.Order) string) Column {
	return Column{
		Key:      key,
		Label:    label,
		Kind:     DateKind,
		Sortable: true,
		Value:    func(o types.Order, _ StoreNames) string { return display(get(o)) },
		compare: func(a, b types.Order, _ StoreNames) int {
			ta, okA := format.Parse(get(a))
			tb, okB := format.Parse(get(b))
			if okA && okB && !ta.Equal(tb) {
				return ta.Compare(tb)
			}
			return strings.Compare(get(a), get(b))
		},
	}
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case a:
		return 1
	default:
		return -1
	}
}

var storeNameColumn = Column{
	Key:      "storeName",
	Label:    "Store",
	Kind:     TextKind,
	Sortable: true,
	Value:    func(o types.Order, stores StoreNames) string { return stores.Resolve(o) },
	compare: func(a, b types.Order, stores StoreNames) int {
		return strings.Compare(stores.Resolve(a), stores.Resolve(b))
	},
}

var columns = []Column{
	textColumn("id", "Order ID", true, func(o types.Order) string { return o.ID }),
	dateColumn("date", "Date", format.FormatDate, func(o types.Order) string { return o.Date }),
	dateColumn("lastModified", "Last modified", format.FormatDateTime, func(o types.Order) string { return o.LastModified }),
	storeNameColumn,
	textColumn("handler", "Handler", true, func(o types.Order) string { return o.Handler }),
	textColumn("sku", "SKU", true, func(o types.Order) string { return o.SKU }),
	textColumn("type", "Unit", true, func(o types.Order) string { return o.Type }),
	numberColumn("quantity", "Qty", func(o types.Order) int { return o.Quantity }),
	textColumn("note", "Note", false, func(o types.Order) string { return o.Note }),
	textColumn("tracking", "Tracking", true, func(o types.Order) string { return o.Tracking }),
	textColumn("link", "Link", false, func(o types.Order) string { return o.Link }),
	textColumn("status", "Status", true, func(o types.Order) string { return string(o.Status) }),
	boolColumn("isChecked", "Checked", CheckedLabel, UncheckedLabel, func(o types.Order) bool { return o.IsChecked }),
	textColumn("actionRole", "Assignee", true, func(o types.Order) string { return o.ActionRole }),
	boolColumn("isFulfilled", "Fulfilled", FulfilledLabel, NotFulfilledLabel, func(o types.Order) bool { return o.IsFulfilled }),
	textColumn("name", "Customer", true, func(o types.Order) string { return o.Name }),
	textColumn("country", "Country", true, func(o types.Order) string { return o.Country }),
	textColumn("productName", "Product", true, func(o types.Order) string { return o.ProductName }),
	textColumn("itemSku", "Item SKU", true, func(o types.Order) string { return o.ItemSKU }),
	textColumn("mockupType", "Mockup type", true, func(o types.Order) string { return o.MockupType }),
}

var columnsByKey = func() map[string]Column {
	byKey := make(map[string]Column, len(columns))
	for _, c := range columns {
		byKey[c.Key] = c
	}
	return byKey
}()

// Columns returns the table columns in display order.
func Columns() []Column {
	result := make([]Column, len(columns))
	copy(result, columns)
	return result
}

func Lookup(key string) (Column, error) {
	c, ok := columnsByKey[key]
	if !ok {
		return Column{}, &UnknownColumnError{Key: key}
	}
	return c, nil
}
