// Package shipping converts between the pasted "Key: Value" shipping block
// and the flat shipping fields stored on each order row.
package shipping

import (
	"strings"
	"unicode"

	"github.com/wellywell/orderdesk/internal/types"
)

const emptyValue = "--"

type field int

const (
	firstName field = iota
	lastName
	address1
	address2
	city
	province
	zip
	country
	phone
)

var keys = map[string]field{
	"firstname":    firstName,
	"lastname":     lastName,
	"address1":     address1,
	"address":      address1,
	"addressline1": address1,
	"address2":     address2,
	"addressline2": address2,
	"city":         city,
	"province":     province,
	"state":        province,
	"zip":          zip,
	"zipcode":      zip,
	"postalcode":   zip,
	"country":      country,
	"phone":        phone,
	"phonenumber":  phone,
}

func normalizeKey(key string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(key) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Parse reads one "Key: Value" pair per line. Unknown keys and lines
// without a colon are ignored.
func Parse(text string) types.Shipping {
	var s types.Shipping
	for _, line := range strings.Split(text, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		f, ok := keys[normalizeKey(key)]
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		if value == emptyValue {
			value = ""
		}
		switch f {
		case firstName:
			s.FirstName = value
		case lastName:
			s.LastName = value
		case address1:
			s.Address1 = value
		case address2:
			s.Address2 = value
		case city:
			s.City = value
		case province:
			s.Province = value
		case zip:
			s.Zip = value
		case country:
			s.Country = value
		case phone:
			s.Phone = value
		}
	}
	s.Name = strings.TrimSpace(s.FirstName + " " + s.LastName)
	return s
}

// Format renders the shipping block back into the text Parse accepts.
func Format(s types.Shipping) string {
	lines := []struct {
		key   string
		value string
	}{
		{"First Name", s.FirstName},
		{"Last Name", s.LastName},
		{"Address 1", s.Address1},
		{"Address 2", s.Address2},
		{"City", s.City},
		{"Province", s.Province},
		{"Zip", s.Zip},
		{"Country", s.Country},
		{"Phone", s.Phone},
	}
	var b strings.Builder
	for i, l := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		value := l.value
		if value == "" {
			value = emptyValue
		}
		b.WriteString(l.key)
		b.WriteString(": ")
		b.WriteString(value)
	}
	return b.String()
}

func IsEmpty(s types.Shipping) bool {
	return s == types.Shipping{}
}
