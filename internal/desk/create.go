package desk

import (
	"context"
	"fmt"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/wellywell/orderdesk/internal/backend"
	"github.com/wellywell/orderdesk/internal/format"
	"github.com/wellywell/orderdesk/internal/metrics"
	"github.com/wellywell/orderdesk/internal/roles"
	"github.com/wellywell/orderdesk/internal/types"
	"github.com/wellywell/orderdesk/internal/validate"
)

type CreateResult struct {
	OrderID string `json:"orderId"`
	Month   string `json:"month"`
	Rows    int    `json:"rows"`
	// Optimistic means the rows are displayed already and the write is
	// still running; its failure arrives as a notice.
	Optimistic bool `json:"optimistic"`
}

// Create validates the form and writes one row per line item.
//
// When the order belongs to the displayed month and that month has a file,
// the rows are shown at once and written in the background; a failed write
// removes them again. Otherwise the month file is ensured first and the
// call returns after every row is written.
func (d *Desk) Create(ctx context.Context, form OrderForm) (CreateResult, error) {
	form = form.normalized()
	if err := validate.Struct(form); err != nil {
		return CreateResult{}, err
	}
	items := form.validItems()
	if len(items) == 0 {
		return CreateResult{}, validate.ErrNoItems
	}
	date, err := form.storedDate()
	if err != nil {
		return CreateResult{}, err
	}

	stamp := format.Timestamp(d.now())
	rows := make([]types.Order, len(items))
	for i, item := range items {
		rows[i] = form.row(item, date, d.user.Username, stamp)
	}
	month := format.MonthOf(rows[0].Date)
	result := CreateResult{OrderID: form.ID, Month: month, Rows: len(rows)}

	d.mu.Lock()
	if len(d.rowsByID(form.ID)) > 0 {
		d.mu.Unlock()
		return CreateResult{}, &validate.DuplicateOrderError{OrderID: form.ID}
	}
	fileID := d.fileID
	if month != d.month || fileID == "" {
		if d.submitting {
			d.mu.Unlock()
			return CreateResult{}, ErrSubmitting
		}
		d.submitting = true
		d.mu.Unlock()

		err := d.createInNewFile(ctx, month, rows)
		metrics.Workflow("create", err)
		return result, err
	}

	d.orders = append(slices.Clone(rows), d.orders...)
	d.mu.Unlock()

	result.Optimistic = true
	d.writes.Add(1)
	go func() {
		defer d.writes.Done()
		err := d.addRows(context.WithoutCancel(ctx), rows, fileID)
		metrics.Workflow("create", err)
		if err != nil {
			d.mu.Lock()
			d.removeRows(form.ID)
			d.mu.Unlock()
			d.notify(ErrorLevel, "Order %s was not saved: %s", form.ID, backend.Message(err, err.Error()))
		}
	}()
	return result, nil
}

func (d *Desk) createInNewFile(ctx context.Context, month string, rows []types.Order) error {
	defer func() {
		d.mu.Lock()
		d.submitting = false
		d.mu.Unlock()
	}()

	if err := d.ensureMonthFile(ctx, month); err != nil {
		d.notify(ErrorLevel, "Order %s was not saved: %s", rows[0].ID, backend.Message(err, err.Error()))
		return err
	}
	if err := d.addRows(ctx, rows, ""); err != nil {
		d.notify(ErrorLevel, "Order %s was not saved: %s", rows[0].ID, backend.Message(err, err.Error()))
		return err
	}
	d.notify(InfoLevel, "Order %s saved to %s (%d items)", rows[0].ID, month, len(rows))

	d.mu.Lock()
	displayed := d.month
	d.mu.Unlock()
	if displayed == month {
		d.Load(ctx, month)
	}
	return nil
}

func (d *Desk) addRows(ctx context.Context, rows []types.Order, fileID string) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, row := range rows {
		row := row
		g.Go(func() error {
			return d.backend.AddOrder(gctx, row, fileID)
		})
	}
	return g.Wait()
}

// ensureMonthFile asks the order service to create the file of a month.
// Creating an existing file succeeds.
func (d *Desk) ensureMonthFile(ctx context.Context, month string) error {
	res, err := d.backend.CreateMonthFile(ctx, month)
	if err != nil {
		return err
	}
	if !res.Success {
		return &MonthFileError{Month: month, Message: res.Error}
	}
	return nil
}

// EnsureMonthFile creates the order file of a month on behalf of the user
// and reloads it when it is the displayed month.
func (d *Desk) EnsureMonthFile(ctx context.Context, month string) error {
	if !roles.Privileged(d.user.Role) {
		return roles.ErrForbidden
	}
	if !format.ValidMonth(month) {
		return &validate.ValidationError{Field: "month", Reason: "must look like YYYY-MM"}
	}
	err := d.ensureMonthFile(ctx, month)
	metrics.Workflow("create_month", err)
	if err != nil {
		return fmt.Errorf("ensure month file: %w", err)
	}
	d.notify(InfoLevel, "Order file for %s is ready", month)

	d.mu.Lock()
	displayed := d.month
	d.mu.Unlock()
	if displayed == month {
		d.Load(ctx, month)
	}
	return nil
}
