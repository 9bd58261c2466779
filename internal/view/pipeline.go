package view

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"github.com/wellywell/orderdesk/internal/types"
)

type Direction string

const (
	NoDirection Direction = ""
	Ascending   Direction = "asc"
	Descending  Direction = "desc"
)

type Sort struct {
	Key       string    `json:"key"`
	Direction Direction `json:"direction"`
}

// Toggle cycles ascending, descending, unsorted for the same key. A new key
// starts ascending.
func (s Sort) Toggle(key string) Sort {
	if s.Key != key || s.Direction == NoDirection {
		return Sort{Key: key, Direction: Ascending}
	}
	if s.Direction == Ascending {
		return Sort{Key: key, Direction: Descending}
	}
	return Sort{}
}

func (s Sort) Active() bool {
	return s.Key != "" && s.Direction != NoDirection
}

// Query is everything the displayed rows depend on besides the rows.
// A key missing from Filters means no constraint; a key mapped to an empty
// allow-set means no row passes.
type Query struct {
	Search  string
	Filters map[string][]string
	Sort    Sort
}

func (q Query) validate() error {
	for key := range q.Filters {
		if _, err := Lookup(key); err != nil {
			return err
		}
	}
	if q.Sort.Active() {
		c, err := Lookup(q.Sort.Key)
		if err != nil {
			return err
		}
		if !c.Sortable {
			return &NotSortableError{Key: c.Key}
		}
	}
	return nil
}

type filter struct {
	column Column
	allow  map[string]struct{}
}

// Derive returns the rows to display: rows matching the search and every
// active filter, in sort order. Equal rows keep their original order.
func Derive(orders []types.Order, stores StoreNames, q Query) ([]types.Order, error) {
	if err := q.validate(); err != nil {
		return nil, err
	}

	filters := make([]filter, 0, len(q.Filters))
	for key, values := range q.Filters {
		allow := make(map[string]struct{}, len(values))
		for _, v := range values {
			allow[v] = struct{}{}
		}
		filters = append(filters, filter{column: columnsByKey[key], allow: allow})
	}

	m := newMatcher(q.Search)

	type indexed struct {
		order types.Order
		index int
	}
	rows := make([]indexed, 0, len(orders))
	for i, o := range orders {
		if !m.match(o, stores) {
			continue
		}
		if !passes(o, stores, filters) {
			continue
		}
		rows = append(rows, indexed{order: o, index: i})
	}

	if q.Sort.Active() {
		c := columnsByKey[q.Sort.Key]
		desc := q.Sort.Direction == Descending
		slices.SortFunc(rows, func(a, b indexed) int {
			result := c.Compare(a.order, b.order, stores)
			if desc {
				result = -result
			}
			if result != 0 {
				return result
			}
			return a.index - b.index
		})
	}

	result := make([]types.Order, len(rows))
	for i, r := range rows {
		result[i] = r.order
	}
	return result, nil
}

func passes(o types.Order, stores StoreNames, filters []filter) bool {
	for _, f := range filters {
		if _, ok := f.allow[f.column.Value(o, stores)]; !ok {
			return false
		}
	}
	return true
}

type matcher struct {
	caser cases.Caser
	term  string
}

func newMatcher(search string) *matcher {
	m := &matcher{caser: cases.Fold()}
	m.term = m.caser.String(search)
	return m
}

func (m *matcher) match(o types.Order, stores StoreNames) bool {
	if m.term == "" {
		return true
	}
	for _, field := range []string{o.ID, o.SKU, o.Tracking, stores.Resolve(o), o.Handler} {
		if strings.Contains(m.caser.String(field), m.term) {
			return true
		}
	}
	return false
}

// UniqueValues lists the distinct non-empty display values of a column over
// all loaded rows, sorted.
func UniqueValues(orders []types.Order, stores StoreNames, key string) ([]string, error) {
	c, err := Lookup(key)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	values := []string{}
	for _, o := range orders {
		v := c.Value(o, stores)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	slices.Sort(values)
	return values, nil
}
