package desk

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wellywell/orderdesk/internal/backend"
	"github.com/wellywell/orderdesk/internal/format"
	"github.com/wellywell/orderdesk/internal/validate"
)

func TestEdit(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})

	fb := &fakeBackend{}
	d := loadedDesk(fb, testUser)

	var fields map[string]any
	fb.updateOrderBatchFn = func(ctx context.Context, fileID, orderID string, f map[string]any) error {
		fields = f
		close(entered)
		<-release
		return nil
	}

	form, err := d.EditForm("A-1")
	require.NoError(t, err)
	form.Tracking = "TRK-9"
	form.Items[0].SKU = "TS-GREEN"
	form.Items[0].Quantity = 3

	done := make(chan error)
	go func() {
		done <- d.Edit(context.Background(), "A-1", form)
	}()

	<-entered
	state := d.State()
	assert.Equal(t, []string{"A-1"}, state.Updating)
	assert.Equal(t, "TRK-9", state.Orders[0].Tracking)
	assert.Equal(t, "TS-GREEN", state.Orders[0].SKU)
	assert.Equal(t, "TRK-9", state.Orders[1].Tracking)
	assert.Equal(t, "TS-BLUE", state.Orders[1].SKU)
	assert.Equal(t, 2, state.Orders[1].Quantity)

	_, err = d.ToggleCheck(context.Background(), "A-1")
	assert.ErrorIs(t, err, ErrRowBusy)

	close(release)
	require.NoError(t, <-done)

	assert.Equal(t, "TS-GREEN", fields["sku"])
	assert.Equal(t, 3, fields["quantity"])
	assert.Equal(t, format.Timestamp(testNow), fields["lastModified"])
	assert.Equal(t, backend.False, fields["isChecked"])

	state = d.State()
	assert.Empty(t, state.Updating)
	assert.Equal(t, "2024-01-05T10:00:00Z", state.Orders[0].Date)
	assert.Equal(t, []string{"GetOrders 2024-01", "UpdateOrderBatch f-1 A-1"}, fb.Calls())
}

func TestEditKeepsOtherItems(t *testing.T) {
	fb := &fakeBackend{}
	d := loadedDesk(fb, testUser)

	form, err := d.EditForm("A-1")
	require.NoError(t, err)
	form.Tracking = "TRK-9"
	require.NoError(t, d.Edit(context.Background(), "A-1", form))

	orders := d.State().Orders
	assert.Equal(t, []string{"A-1/TS-RED", "A-1/TS-BLUE", "B-2/MUG"}, orderIDs(orders))
	assert.Equal(t, []int{1, 2}, []int{orders[0].Quantity, orders[1].Quantity})
	for _, o := range orders[:2] {
		assert.Equal(t, "TRK-9", o.Tracking)
		assert.Equal(t, format.Timestamp(testNow), o.LastModified)
	}
}

func TestEditRollback(t *testing.T) {
	fb := &fakeBackend{}
	d := loadedDesk(fb, testUser)
	fb.updateOrderBatchFn = func(ctx context.Context, fileID, orderID string, f map[string]any) error {
		return &backend.Error{StatusCode: 500, Message: "quota exceeded"}
	}

	before := d.State().Orders
	form, err := d.EditForm("A-1")
	require.NoError(t, err)
	form.Items[0].Note = "ignored"
	form.Tracking = "TRK-9"

	err = d.Edit(context.Background(), "A-1", form)
	var serviceErr *backend.Error
	require.ErrorAs(t, err, &serviceErr)

	assert.Equal(t, before, d.State().Orders)
	notices := d.Notices()
	require.Len(t, notices, 1)
	assert.Contains(t, notices[0].Message, "quota exceeded")
}

func TestEditRefused(t *testing.T) {
	fb := &fakeBackend{}
	d := loadedDesk(fb, testUser)
	ctx := context.Background()

	form, err := d.EditForm("A-1")
	require.NoError(t, err)

	assert.ErrorIs(t, d.Edit(ctx, "Z-9", form), ErrOrderNotFound)

	locked, err := d.EditForm("B-2")
	require.NoError(t, err)
	assert.ErrorIs(t, d.Edit(ctx, "B-2", locked), ErrOrderLocked)

	form.Items = nil
	assert.ErrorIs(t, d.Edit(ctx, "A-1", form), validate.ErrNoItems)

	form, _ = d.EditForm("A-1")
	form.StoreID = ""
	var validationErr *validate.ValidationError
	require.ErrorAs(t, d.Edit(ctx, "A-1", form), &validationErr)
	assert.Equal(t, "StoreID", validationErr.Field)

	form, _ = d.EditForm("A-1")
	form.Date = "not a date"
	require.ErrorAs(t, d.Edit(ctx, "A-1", form), &validationErr)
	assert.Equal(t, "Date", validationErr.Field)
	assert.Equal(t, []string{"GetOrders 2024-01"}, fb.Calls())

	empty := New(&fakeBackend{}, stores, testUser)
	assert.ErrorIs(t, empty.Edit(ctx, "A-1", form), ErrOrderNotFound)
}

func TestToggleCheck(t *testing.T) {
	fb := &fakeBackend{}
	d := loadedDesk(fb, testUser)
	ctx := context.Background()

	checked, err := d.ToggleCheck(ctx, "A-1")
	require.NoError(t, err)
	assert.True(t, checked)
	for _, o := range d.State().Orders[:2] {
		assert.True(t, o.IsChecked)
	}

	checked, err = d.ToggleCheck(ctx, "A-1")
	require.NoError(t, err)
	assert.False(t, checked)

	assert.Equal(t, []string{
		"GetOrders 2024-01",
		"UpdateOrder f-1 A-1 isChecked=TRUE",
		"UpdateOrder f-1 A-1 isChecked=FALSE",
	}, fb.Calls())

	_, err = d.ToggleCheck(ctx, "Z-9")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestToggleCheckRevert(t *testing.T) {
	fb := &fakeBackend{}
	d := loadedDesk(fb, testUser)
	fb.updateOrderFn = func(ctx context.Context, fileID, orderID, field, value string) error {
		return errors.New("connection reset")
	}

	checked, err := d.ToggleCheck(context.Background(), "B-2")
	assert.Error(t, err)
	assert.False(t, checked)
	assert.False(t, d.State().Orders[2].IsChecked)
	assert.Empty(t, d.State().Updating)

	notices := d.Notices()
	require.Len(t, notices, 1)
	assert.Contains(t, notices[0].Message, "connection reset")
}

func TestToggleCheckWithoutFile(t *testing.T) {
	fb := &fakeBackend{}
	fb.getOrdersFn = func(ctx context.Context, month string) (*backend.OrdersPage, error) {
		return &backend.OrdersPage{Orders: januaryOrders()}, nil
	}
	d := loadedDesk(fb, testUser)

	_, err := d.ToggleCheck(context.Background(), "A-1")
	assert.ErrorIs(t, err, ErrNoMonthFile)
	assert.Len(t, fb.Calls(), 1)
}
