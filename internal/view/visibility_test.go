package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wellywell/orderdesk/internal/types"
)

func TestVisibilityMerge(t *testing.T) {
	stored := Visibility{"note": false, "removedColumn": false}
	merged := stored.Merge()

	assert.False(t, merged["note"])
	assert.True(t, merged["id"])
	assert.NotContains(t, merged, "removedColumn")
	assert.Len(t, merged, len(Columns()))
}

func TestVisibilitySet(t *testing.T) {
	v, err := DefaultVisibility().Set("link", false)
	require.NoError(t, err)

	keys := []string{}
	for _, c := range v.VisibleColumns() {
		keys = append(keys, c.Key)
	}
	assert.NotContains(t, keys, "link")
	assert.Equal(t, "id", keys[0])

	_, err = v.Set("color", true)
	assert.Error(t, err)
}

func TestHiddenColumnStillFilters(t *testing.T) {
	v, err := DefaultVisibility().Set("handler", false)
	require.NoError(t, err)
	assert.False(t, v["handler"])

	result, err := Derive(testOrders(), testStores, Query{Filters: map[string][]string{"handler": {"minh"}}})
	require.NoError(t, err)
	assert.Equal(t, []string{"MUG-1"}, skus(result))
}

func TestSummarize(t *testing.T) {
	summary := Summarize(testOrders(), testStores)
	assert.Equal(t, []StoreSummary{
		{Store: "Moon Tees", Rows: 2, Orders: 2, Quantity: 5, Fulfilled: 1},
		{Store: "Sunny Prints", Rows: 2, Orders: 1, Quantity: 3, Fulfilled: 0},
		{Store: "s9", Rows: 1, Orders: 1, Quantity: 1, Fulfilled: 0},
	}, summary)

	assert.Empty(t, Summarize(nil, testStores))
}

func TestStoreNamesResolve(t *testing.T) {
	assert.Equal(t, "Sunny Prints", testStores.Resolve(types.Order{StoreID: "s1", StoreName: "old"}))
	assert.Equal(t, "Snapshot", testStores.Resolve(types.Order{StoreID: "s7", StoreName: "Snapshot"}))
	assert.Equal(t, "s7", testStores.Resolve(types.Order{StoreID: "s7"}))
}
