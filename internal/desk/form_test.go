package desk

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wellywell/orderdesk/internal/backend"
	"github.com/wellywell/orderdesk/internal/types"
)

func TestDuplicate(t *testing.T) {
	fb := &fakeBackend{}
	fb.getOrdersFn = func(ctx context.Context, month string) (*backend.OrdersPage, error) {
		orders := januaryOrders()
		for i := range orders {
			orders[i].Tracking = "TRK"
			orders[i].IsChecked = true
			orders[i].Status = types.ResendStatus
			orders[i].Shipping = types.Shipping{FirstName: "Jane", LastName: "Doe", Name: "Jane Doe", City: "Hanoi"}
		}
		return &backend.OrdersPage{Orders: orders, FileID: "f-1"}, nil
	}
	d := loadedDesk(fb, testUser)

	form, err := d.Duplicate("A-1")
	require.NoError(t, err)

	assert.Empty(t, form.ID)
	assert.Empty(t, form.Tracking)
	assert.False(t, form.IsChecked)
	assert.Equal(t, types.PendingStatus, form.Status)
	assert.Equal(t, "s1", form.StoreID)
	assert.NotEmpty(t, form.Date)
	assert.Contains(t, form.ShippingText, "Jane")
	require.Len(t, form.Items, 2)
	assert.Equal(t, "TS-RED", form.Items[0].SKU)
	assert.Equal(t, 2, form.Items[1].Quantity)

	_, err = d.Duplicate("Z-9")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestEditForm(t *testing.T) {
	d := loadedDesk(&fakeBackend{}, testUser)

	form, err := d.EditForm("A-1")
	require.NoError(t, err)
	assert.Equal(t, "A-1", form.ID)
	assert.Empty(t, form.ShippingText)
	require.Len(t, form.Items, 1)
	assert.Equal(t, "TS-RED", form.Items[0].SKU)

	_, err = d.EditForm("Z-9")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestValidItems(t *testing.T) {
	form := OrderForm{Items: []LineItem{
		{SKU: " TS "},
		{SKU: ""},
		{SKU: "MUG", Quantity: 4},
		{SKU: "CAP", Quantity: -2},
	}}
	items := form.validItems()
	require.Len(t, items, 3)
	assert.Equal(t, "TS", items[0].SKU)
	assert.Equal(t, 1, items[0].Quantity)
	assert.Equal(t, 4, items[1].Quantity)
	assert.Equal(t, 1, items[2].Quantity)
}

func TestRegistry(t *testing.T) {
	r := NewRegistry(&fakeBackend{}, stores)

	lan := r.For(testUser)
	assert.Same(t, lan, r.For(testUser))
	assert.NotSame(t, lan, r.For(testAdmin))

	promoted := r.For(types.User{Username: "lan", Role: "manager"})
	assert.NotSame(t, lan, promoted)
	assert.Equal(t, "manager", promoted.User().Role)

	r.Wait()
}

func TestRegistryRoleChangeKeepsWrites(t *testing.T) {
	entered := make(chan struct{}, 1)
	release := make(chan struct{})
	written := make(chan struct{})

	fb := &fakeBackend{}
	fb.getOrdersFn = func(ctx context.Context, month string) (*backend.OrdersPage, error) {
		return &backend.OrdersPage{Orders: januaryOrders(), FileID: "f-1"}, nil
	}
	fb.addOrderFn = func(ctx context.Context, order types.Order, fileID string) error {
		entered <- struct{}{}
		<-release
		close(written)
		return &backend.Error{StatusCode: 400, Message: "sheet locked"}
	}
	r := NewRegistry(fb, stores, WithClock(func() time.Time { return testNow }))

	lan := r.For(testUser)
	lan.Load(context.Background(), "2024-01")
	lan.notify(InfoLevel, "Loaded")
	_, err := lan.Create(context.Background(), newForm("N-1", "2024-01-10T09:00", "TS-1"))
	require.NoError(t, err)
	<-entered

	promoted := r.For(types.User{Username: "lan", Role: "manager"})
	require.NotSame(t, lan, promoted)

	waited := make(chan struct{})
	go func() {
		r.Wait()
		close(waited)
	}()
	select {
	case <-waited:
		t.Fatal("Wait returned while a write of the replaced desk was running")
	case <-time.After(20 * time.Millisecond):
	}

	close(release)
	<-waited
	<-written

	notices := promoted.Notices()
	require.Len(t, notices, 2)
	assert.Equal(t, "Loaded", notices[0].Message)
	assert.Contains(t, notices[1].Message, "sheet locked")
	assert.Empty(t, lan.Notices())
}
