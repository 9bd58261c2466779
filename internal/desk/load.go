package desk

import (
	"context"

	logger "github.com/sirupsen/logrus"

	"github.com/wellywell/orderdesk/internal/backend"
	"github.com/wellywell/orderdesk/internal/loader"
	"github.com/wellywell/orderdesk/internal/metrics"
	"github.com/wellywell/orderdesk/internal/types"
)

// Load fetches a month and replaces the displayed rows. A response that
// arrives after a newer Load started is dropped. Failures are recorded in
// the state, never returned.
func (d *Desk) Load(ctx context.Context, month string) {
	d.mu.Lock()
	token := d.gen.Next()
	d.month = month
	d.orders = []types.Order{}
	d.fileID = ""
	d.mismatch = nil
	d.loadErr = ""
	d.loading = true
	d.mu.Unlock()

	page, err := d.backend.GetOrders(ctx, month)

	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.gen.Current(token) {
		logger.Infof("[%s] Dropping stale response for %s", d.user.Username, month)
		metrics.MonthLoad(metrics.LoadStale)
		return
	}
	d.loading = false

	if err != nil {
		logger.Errorf("[%s] Loading %s failed: %v", d.user.Username, month, err)
		d.orders = []types.Order{}
		d.fileID = ""
		d.loadErr = backend.Message(err, "Could not load orders for "+month)
		metrics.MonthLoad(metrics.LoadError)
		return
	}

	result := loader.Reconcile(month, page)
	d.orders = result.Orders
	d.fileID = result.FileID
	d.mismatch = result.Mismatch

	if result.Mismatch != nil {
		logger.Warnf("[%s] %s", d.user.Username, result.Mismatch.Message())
		metrics.MonthLoad(metrics.LoadMismatch)
		return
	}
	logger.Infof("[%s] Loaded %d rows for %s", d.user.Username, len(result.Orders), month)
	metrics.MonthLoad(metrics.LoadOK)
}
