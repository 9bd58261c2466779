package desk

import (
	"context"
	"fmt"

	"github.com/wellywell/orderdesk/internal/backend"
	"github.com/wellywell/orderdesk/internal/format"
	"github.com/wellywell/orderdesk/internal/metrics"
	"github.com/wellywell/orderdesk/internal/types"
	"github.com/wellywell/orderdesk/internal/validate"
)

type FulfillOptions struct {
	// EditMode is set when fulfilling an existing row from the edit form;
	// the source row is then marked fulfilled too.
	EditMode  bool `json:"editMode"`
	Confirmed bool `json:"confirmed"`
}

// Fulfill writes one denormalized snapshot per line item to the fulfillment
// destination, in order, then marks the order fulfilled.
func (d *Desk) Fulfill(ctx context.Context, form OrderForm, opts FulfillOptions) error {
	err := d.fulfill(ctx, form, opts)
	metrics.Workflow("fulfill", err)
	return err
}

func (d *Desk) fulfill(ctx context.Context, form OrderForm, opts FulfillOptions) error {
	form = form.normalized()
	if form.ID == "" {
		return &validate.ValidationError{Field: "ID", Reason: "is required"}
	}
	if form.StoreID == "" {
		return &validate.ValidationError{Field: "StoreID", Reason: "is required"}
	}
	items := form.validItems()
	if len(items) == 0 {
		return validate.ErrNoItems
	}

	d.mu.Lock()
	fileID := d.fileID
	rows := d.rowsByID(form.ID)
	d.mu.Unlock()

	if fileID == "" {
		return ErrNoMonthFile
	}
	if !opts.Confirmed {
		return ErrNotConfirmed
	}
	if form.Date == "" && len(rows) > 0 {
		form.Date = rows[0].Date
	}
	date := ""
	if form.Date != "" {
		var err error
		if date, err = form.storedDate(); err != nil {
			return err
		}
	}

	if !d.rows.TryAcquire(form.ID) {
		return ErrRowBusy
	}
	defer d.rows.Release(form.ID)

	storeName := d.stores.StoreNames().Resolve(types.Order{StoreID: form.StoreID})
	for _, item := range items {
		snapshot := form.row(item, date, d.user.Username, format.Timestamp(d.now()))
		snapshot.StoreName = storeName
		snapshot.IsFulfilled = true

		if err := d.backend.FulfillOrder(ctx, fileID, snapshot); err != nil {
			d.notify(ErrorLevel, "Order %s was not fulfilled: %s", form.ID, backend.Message(err, err.Error()))
			return fmt.Errorf("fulfill %s item %s: %w", form.ID, item.SKU, err)
		}
	}

	d.mu.Lock()
	d.patchRows(form.ID, func(o *types.Order) { o.IsFulfilled = true })
	d.mu.Unlock()

	if opts.EditMode {
		if err := d.backend.UpdateOrder(ctx, fileID, form.ID, "isFulfilled", backend.True); err != nil {
			d.notify(ErrorLevel, "Order %s was fulfilled but not marked: %s", form.ID, backend.Message(err, err.Error()))
			return fmt.Errorf("mark %s fulfilled: %w", form.ID, err)
		}
	}
	d.notify(InfoLevel, "Order %s fulfilled (%d items)", form.ID, len(items))
	return nil
}
