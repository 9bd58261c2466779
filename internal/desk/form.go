package desk

import (
	"strings"

	"github.com/wellywell/orderdesk/internal/format"
	"github.com/wellywell/orderdesk/internal/shipping"
	"github.com/wellywell/orderdesk/internal/types"
	"github.com/wellywell/orderdesk/internal/validate"
)

type LineItem struct {
	SKU      string `json:"sku"`
	Type     string `json:"type"`
	Quantity int    `json:"quantity"`
	Note     string `json:"note"`
	types.Product
}

// OrderForm is what the create/edit modal submits.
type OrderForm struct {
	ID           string       `json:"id" validate:"required"`
	StoreID      string       `json:"storeId" validate:"required"`
	Date         string       `json:"date" validate:"required"`
	Status       types.Status `json:"status"`
	Tracking     string       `json:"tracking"`
	Link         string       `json:"link"`
	IsChecked    bool         `json:"isChecked"`
	ActionRole   string       `json:"actionRole"`
	ShippingText string       `json:"shippingText"`
	Items        []LineItem   `json:"items"`
}

func (f OrderForm) normalized() OrderForm {
	f.ID = strings.TrimSpace(f.ID)
	f.StoreID = strings.TrimSpace(f.StoreID)
	f.Date = strings.TrimSpace(f.Date)
	if f.Status == "" {
		f.Status = types.PendingStatus
	}
	return f
}

// validItems drops lines without a SKU.
func (f OrderForm) validItems() []LineItem {
	items := make([]LineItem, 0, len(f.Items))
	for _, item := range f.Items {
		if validate.Blank(item.SKU) {
			continue
		}
		item.SKU = strings.TrimSpace(item.SKU)
		if item.Quantity < 1 {
			item.Quantity = 1
		}
		items = append(items, item)
	}
	return items
}

// storedDate converts the form date to the stored representation. The date
// decides the month file a row lands in, so unparseable input is refused.
func (f OrderForm) storedDate() (string, error) {
	stored, err := format.FromDatetimeLocal(f.Date)
	if err != nil {
		return "", &validate.ValidationError{Field: "Date", Reason: "is not a valid date"}
	}
	return stored, nil
}

// row builds the order row for one line item.
func (f OrderForm) row(item LineItem, date, handler, stamp string) types.Order {
	return types.Order{
		ID:           f.ID,
		Date:         date,
		LastModified: stamp,
		StoreID:      f.StoreID,
		Handler:      handler,
		SKU:          item.SKU,
		Type:         item.Type,
		Quantity:     item.Quantity,
		Note:         item.Note,
		Tracking:     f.Tracking,
		Link:         f.Link,
		Status:       f.Status,
		IsChecked:    f.IsChecked,
		ActionRole:   f.ActionRole,
		Shipping:     shipping.Parse(f.ShippingText),
		Product:      item.Product,
	}
}

func itemOf(o types.Order) LineItem {
	return LineItem{
		SKU:      o.SKU,
		Type:     o.Type,
		Quantity: o.Quantity,
		Note:     o.Note,
		Product:  o.Product,
	}
}

func shippingText(s types.Shipping) string {
	if shipping.IsEmpty(s) {
		return ""
	}
	return shipping.Format(s)
}

// Duplicate returns a create form prefilled from an existing order. The id,
// tracking, link, status and checked flag start empty; the date is kept.
func (d *Desk) Duplicate(orderID string) (OrderForm, error) {
	d.mu.Lock()
	rows := d.rowsByID(orderID)
	d.mu.Unlock()

	if len(rows) == 0 {
		return OrderForm{}, ErrOrderNotFound
	}
	first := rows[0]
	form := OrderForm{
		StoreID:      first.StoreID,
		Date:         format.ToDatetimeLocal(first.Date),
		Status:       types.PendingStatus,
		ActionRole:   first.ActionRole,
		ShippingText: shippingText(first.Shipping),
	}
	for _, o := range rows {
		form.Items = append(form.Items, itemOf(o))
	}
	return form, nil
}

// EditForm returns the edit form of an order row.
func (d *Desk) EditForm(orderID string) (OrderForm, error) {
	d.mu.Lock()
	rows := d.rowsByID(orderID)
	d.mu.Unlock()

	if len(rows) == 0 {
		return OrderForm{}, ErrOrderNotFound
	}
	first := rows[0]
	return OrderForm{
		ID:           first.ID,
		StoreID:      first.StoreID,
		Date:         format.ToDatetimeLocal(first.Date),
		Status:       first.Status,
		Tracking:     first.Tracking,
		Link:         first.Link,
		IsChecked:    first.IsChecked,
		ActionRole:   first.ActionRole,
		ShippingText: shippingText(first.Shipping),
		Items:        []LineItem{itemOf(first)},
	}, nil
}
