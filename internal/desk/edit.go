package desk

import (
	"context"
	"errors"
	"strings"

	"github.com/wellywell/orderdesk/internal/backend"
	"github.com/wellywell/orderdesk/internal/format"
	"github.com/wellywell/orderdesk/internal/metrics"
	"github.com/wellywell/orderdesk/internal/shipping"
	"github.com/wellywell/orderdesk/internal/types"
	"github.com/wellywell/orderdesk/internal/validate"
)

// editFields is the batch update payload. Keys are the spreadsheet columns.
func editFields(o types.Order) map[string]any {
	return map[string]any{
		"storeId":      o.StoreID,
		"sku":          o.SKU,
		"type":         o.Type,
		"quantity":     o.Quantity,
		"note":         o.Note,
		"tracking":     o.Tracking,
		"link":         o.Link,
		"status":       string(o.Status),
		"isChecked":    backend.BoolValue(o.IsChecked),
		"actionRole":   o.ActionRole,
		"lastModified": o.LastModified,
		"firstName":    o.FirstName,
		"lastName":     o.LastName,
		"name":         o.Name,
		"address1":     o.Address1,
		"address2":     o.Address2,
		"city":         o.City,
		"province":     o.Province,
		"zip":          o.Zip,
		"country":      o.Country,
		"phone":        o.Phone,
		"productName":  o.ProductName,
		"itemSku":      o.ItemSKU,
		"mockupFront":  o.MockupFront,
		"mockupBack":   o.MockupBack,
		"artworkFront": o.ArtworkFront,
		"artworkBack":  o.ArtworkBack,
		"mockupType":   o.MockupType,
	}
}

// applyHeader sets the order level fields shared by every row of an order.
func applyHeader(o types.Order, form OrderForm, stamp string) types.Order {
	o.StoreID = form.StoreID
	o.StoreName = ""
	o.Tracking = form.Tracking
	o.Link = form.Link
	o.Status = form.Status
	o.IsChecked = form.IsChecked
	o.ActionRole = form.ActionRole
	o.Shipping = shipping.Parse(form.ShippingText)
	o.LastModified = stamp
	return o
}

func applyEdit(o types.Order, form OrderForm, item LineItem, stamp string) types.Order {
	o = applyHeader(o, form, stamp)
	o.SKU = item.SKU
	o.Type = item.Type
	o.Quantity = item.Quantity
	o.Note = item.Note
	o.Product = item.Product
	return o
}

// Edit updates an order from the edit form. The form carries the line item
// of the first row only, so the other rows of the order get the order level
// fields and keep their own items. Id and date never change. The displayed
// rows are patched before the service answers and restored if it fails.
func (d *Desk) Edit(ctx context.Context, orderID string, form OrderForm) error {
	err := d.edit(ctx, orderID, form)
	metrics.Workflow("edit", err)
	return err
}

func (d *Desk) edit(ctx context.Context, orderID string, form OrderForm) error {
	form.ID = orderID
	form = form.normalized()

	d.mu.Lock()
	rows := d.rowsByID(orderID)
	fileID := d.fileID
	d.mu.Unlock()

	if len(rows) == 0 {
		return ErrOrderNotFound
	}
	for _, o := range rows {
		if o.IsFulfilled {
			return ErrOrderLocked
		}
	}
	if fileID == "" {
		return ErrNoMonthFile
	}
	if strings.TrimSpace(form.Date) == "" {
		form.Date = rows[0].Date
	}
	if err := validate.Struct(form); err != nil {
		return err
	}
	if _, err := form.storedDate(); err != nil {
		return err
	}
	items := form.validItems()
	if len(items) == 0 {
		return validate.ErrNoItems
	}

	if !d.rows.TryAcquire(orderID) {
		return ErrRowBusy
	}
	defer d.rows.Release(orderID)

	stamp := format.Timestamp(d.now())
	patched := applyEdit(rows[0], form, items[0], stamp)

	d.mu.Lock()
	previous := d.rowsByID(orderID)
	first := true
	d.patchRows(orderID, func(o *types.Order) {
		if first {
			*o = applyEdit(*o, form, items[0], stamp)
			first = false
			return
		}
		*o = applyHeader(*o, form, stamp)
	})
	d.mu.Unlock()

	if err := d.backend.UpdateOrderBatch(ctx, fileID, orderID, editFields(patched)); err != nil {
		d.mu.Lock()
		d.restoreRows(orderID, previous)
		d.mu.Unlock()
		d.notify(ErrorLevel, "Order %s was not updated: %s", orderID, backend.Message(err, err.Error()))
		return err
	}
	d.notify(InfoLevel, "Order %s updated", orderID)
	return nil
}

// ToggleCheck flips the checked flag of an order. It is refused while
// another update of the same order is in flight. A failed write flips the
// flag back.
func (d *Desk) ToggleCheck(ctx context.Context, orderID string) (bool, error) {
	checked, err := d.toggleCheck(ctx, orderID)
	if !errors.Is(err, ErrRowBusy) {
		metrics.Workflow("toggle_check", err)
	}
	return checked, err
}

func (d *Desk) toggleCheck(ctx context.Context, orderID string) (bool, error) {
	if !d.rows.TryAcquire(orderID) {
		return false, ErrRowBusy
	}
	defer d.rows.Release(orderID)

	d.mu.Lock()
	rows := d.rowsByID(orderID)
	fileID := d.fileID
	if fileID == "" {
		d.mu.Unlock()
		return false, ErrNoMonthFile
	}
	if len(rows) == 0 {
		d.mu.Unlock()
		return false, ErrOrderNotFound
	}
	current := rows[0].IsChecked
	next := !current
	d.patchRows(orderID, func(o *types.Order) { o.IsChecked = next })
	d.mu.Unlock()

	if err := d.backend.UpdateOrder(ctx, fileID, orderID, "isChecked", backend.BoolValue(next)); err != nil {
		d.mu.Lock()
		d.patchRows(orderID, func(o *types.Order) { o.IsChecked = current })
		d.mu.Unlock()
		d.notify(ErrorLevel, "Order %s was not updated: %s", orderID, backend.Message(err, err.Error()))
		return current, err
	}
	return next, nil
}
