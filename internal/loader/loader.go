// Package loader decides what to display for a fetched month and detects
// responses that arrive after a newer month was requested.
package loader

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/wellywell/orderdesk/internal/backend"
	"github.com/wellywell/orderdesk/internal/format"
	"github.com/wellywell/orderdesk/internal/types"
)

// Mismatch means the service returned rows, none of which belong to the
// requested month.
type Mismatch struct {
	Requested string `json:"requested"`
	Actual    string `json:"actual"`
}

func (m *Mismatch) Message() string {
	return fmt.Sprintf("Requested month %s but the order file contains data for %s. Showing the data as returned.", m.Requested, m.Actual)
}

type Result struct {
	Orders   []types.Order
	FileID   string
	Mismatch *Mismatch
}

// Reconcile keeps the rows dated in month. If the service returned rows but
// none of them match, every row is kept and a Mismatch is reported instead.
func Reconcile(month string, page *backend.OrdersPage) Result {
	if page == nil {
		return Result{Orders: []types.Order{}}
	}

	valid := make([]types.Order, 0, len(page.Orders))
	for _, o := range page.Orders {
		if strings.HasPrefix(o.Date, month) {
			valid = append(valid, o)
		}
	}

	if len(page.Orders) > 0 && len(valid) == 0 {
		raw := make([]types.Order, len(page.Orders))
		copy(raw, page.Orders)
		return Result{
			Orders: raw,
			FileID: page.FileID,
			Mismatch: &Mismatch{
				Requested: month,
				Actual:    format.MonthOf(page.Orders[0].Date),
			},
		}
	}
	return Result{Orders: valid, FileID: page.FileID}
}

type Token uint64

// Generation hands out a token per load. Only the latest token is current.
type Generation struct {
	n atomic.Uint64
}

func (g *Generation) Next() Token {
	return Token(g.n.Add(1))
}

func (g *Generation) Current(t Token) bool {
	return Token(g.n.Load()) == t
}
