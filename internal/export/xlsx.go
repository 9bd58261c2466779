// Package export renders the derived order view as a spreadsheet.
package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/wellywell/orderdesk/internal/types"
	"github.com/wellywell/orderdesk/internal/view"
)

const (
	SheetName   = "Orders"
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Workbook writes one header row of column labels followed by one row per
// order, with cells holding the same text the table shows. Number columns
// are written as numbers.
func Workbook(columns []view.Column, orders []types.Order, stores view.StoreNames) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		f.Close()
		return nil, err
	}

	header := make([]any, len(columns))
	for i, c := range columns {
		header[i] = c.Label
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		f.Close()
		return nil, fmt.Errorf("write header %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, err
	}
	if len(columns) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(columns), 1)
		if err := f.SetCellStyle(SheetName, "A1", last, bold); err != nil {
			f.Close()
			return nil, err
		}
	}

	for r, o := range orders {
		row := make([]any, len(columns))
		for i, c := range columns {
			row[i] = cellValue(c, o, stores)
		}
		cell, _ := excelize.CoordinatesToCellName(1, r+2)
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			f.Close()
			return nil, fmt.Errorf("write row %d %w", r+2, err)
		}
	}
	return f, nil
}

func cellValue(c view.Column, o types.Order, stores view.StoreNames) any {
	text := c.Value(o, stores)
	if c.Kind == view.NumberKind {
		if n, err := strconv.Atoi(text); err == nil {
			return n
		}
	}
	return text
}

func Write(w io.Writer, columns []view.Column, orders []types.Order, stores view.StoreNames) error {
	f, err := Workbook(columns, orders, stores)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteTo(w)
	return err
}
