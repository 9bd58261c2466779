package view

import (
	"slices"
	"strings"

	"github.com/wellywell/orderdesk/internal/types"
)

type StoreSummary struct {
	Store     string `json:"store"`
	Rows      int    `json:"rows"`
	Orders    int    `json:"orders"`
	Quantity  int    `json:"quantity"`
	Fulfilled int    `json:"fulfilled"`
}

// Summarize groups rows by resolved store name.
func Summarize(orders []types.Order, stores StoreNames) []StoreSummary {
	byStore := make(map[string]*StoreSummary)
	ids := make(map[string]map[string]struct{})

	for _, o := range orders {
		name := stores.Resolve(o)
		s, ok := byStore[name]
		if !ok {
			s = &StoreSummary{Store: name}
			byStore[name] = s
			ids[name] = make(map[string]struct{})
		}
		s.Rows++
		s.Quantity += o.Quantity
		if o.IsFulfilled {
			s.Fulfilled++
		}
		ids[name][o.ID] = struct{}{}
	}

	result := make([]StoreSummary, 0, len(byStore))
	for name, s := range byStore {
		s.Orders = len(ids[name])
		result = append(result, *s)
	}
	slices.SortFunc(result, func(a, b StoreSummary) int {
		return strings.Compare(a.Store, b.Store)
	})
	return result
}
