package format

import (
	"fmt"
	"strings"
	"time"
)

const (
	MonthLayout         = "2006-01"
	DatetimeLocalLayout = "2006-01-02T15:04"
	DisplayDateTime     = "02/01/2006 15:04"
	DisplayDate         = "02/01/2006"
)

// layouts carrying their own offset
var zonedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
}

// layouts interpreted in the local time zone
var localLayouts = []string{
	"2006-01-02T15:04:05",
	DatetimeLocalLayout,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	DisplayDateTime,
	DisplayDate,
}

// Parse reads any timestamp representation the order service or the UI produces.
func Parse(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDateTime renders a stored timestamp as DD/MM/YYYY HH:MM.
// Unparseable input is returned as is.
func FormatDateTime(s string) string {
	if s == "" {
		return ""
	}
	t, ok := Parse(s)
	if !ok {
		return s
	}
	return t.In(time.Local).Format(DisplayDateTime)
}

// FormatDate renders an order date as DD/MM/YYYY.
func FormatDate(s string) string {
	if s == "" {
		return ""
	}
	t, ok := Parse(s)
	if !ok {
		return s
	}
	return t.In(time.Local).Format(DisplayDate)
}

// ToDatetimeLocal converts a stored timestamp into the value of an editable
// datetime-local field.
func ToDatetimeLocal(s string) string {
	t, ok := Parse(s)
	if !ok {
		return ""
	}
	return t.In(time.Local).Format(DatetimeLocalLayout)
}

// FromDatetimeLocal converts a form value back into the stored representation.
func FromDatetimeLocal(s string) (string, error) {
	t, ok := Parse(s)
	if !ok {
		return "", fmt.Errorf("invalid date %q", s)
	}
	return Timestamp(t), nil
}

// Timestamp is the stored form of system timestamps such as lastModified.
func Timestamp(t time.Time) string {
	return t.In(time.Local).Format(time.RFC3339)
}

func MonthKey(t time.Time) string {
	return t.In(time.Local).Format(MonthLayout)
}

// MonthOf returns the month partition a stored date belongs to.
func MonthOf(date string) string {
	if len(date) < len(MonthLayout) {
		return date
	}
	return date[:len(MonthLayout)]
}

func ValidMonth(month string) bool {
	if len(month) != len(MonthLayout) {
		return false
	}
	_, err := time.Parse(MonthLayout, month)
	return err == nil
}
