package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type testForm struct {
	ID       string `validate:"required"`
	Quantity int    `validate:"min=1"`
	Status   string `validate:"omitempty,oneof=Pending Fulfilled"`
}

func TestStruct(t *testing.T) {
	testCases := []struct {
		name   string
		form   testForm
		field  string
		reason string
	}{
		{"valid", testForm{ID: "A1", Quantity: 1}, "", ""},
		{"missing id", testForm{Quantity: 1}, "ID", "is required"},
		{"zero quantity", testForm{ID: "A1"}, "Quantity", "must be at least 1"},
		{"bad status", testForm{ID: "A1", Quantity: 1, Status: "Lost"}, "Status", "must be one of Pending, Fulfilled"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := Struct(tc.form)
			if tc.field == "" {
				assert.NoError(t, err)
				return
			}
			var validationErr *ValidationError
			assert.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tc.field, validationErr.Field)
			assert.Equal(t, tc.reason, validationErr.Reason)
		})
	}
}

func TestBlank(t *testing.T) {
	assert.True(t, Blank(""))
	assert.True(t, Blank("  \t"))
	assert.False(t, Blank(" a "))
}
