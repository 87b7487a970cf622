// internal/adapters/spreadsheet/spreadsheet.go
package spreadsheet

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx/v3"

	"github.com/ammerola/medstock-be/internal/core/domain"
	"github.com/ammerola/medstock-be/internal/core/ports"
)

const (
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	MedicinesSheet = "Medicines"
	SummarySheet   = "Summary"
)

// ErrNoHeader is returned when the first sheet lacks the required columns
var ErrNoHeader = errors.New("missing header row")

var headers = []string{
	"Name", "Category", "Quantity", "Price", "Expiry Date",
	"Status", "Stock Value", "ID", "Created At", "Updated At",
}

// Write renders medicines, and the analytics summary when given, as an
// xlsx workbook.
func Write(items []domain.Medicine, summary *domain.Analytics) ([]byte, error) {
	file := xlsx.NewFile()

	sheet, err := file.AddSheet(MedicinesSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to add worksheet: %w", err)
	}

	addHeader(sheet, headers)
	for i := range items {
		m := &items[i]
		row := sheet.AddRow()
		row.AddCell().SetString(m.Name)
		row.AddCell().SetString(m.Category)
		row.AddCell().SetInt(m.Quantity)
		row.AddCell().SetString(m.Price.StringFixed(2))
		row.AddCell().SetString(m.ExpiryDate.Format(domain.DateLayout))
		row.AddCell().SetString(string(m.Status))
		row.AddCell().SetString(m.StockValue().StringFixed(2))
		row.AddCell().SetString(m.ID.String())
		row.AddCell().SetString(m.CreatedAt.UTC().Format(time.RFC3339))
		row.AddCell().SetString(m.UpdatedAt.UTC().Format(time.RFC3339))
	}
	sheet.SetColWidth(1, len(headers), 18)

	if summary != nil {
		if err := addSummary(file, summary); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write Excel file to buffer: %w", err)
	}
	return buf.Bytes(), nil
}

func addHeader(sheet *xlsx.Sheet, names []string) {
	row := sheet.AddRow()
	for _, name := range names {
		cell := row.AddCell()
		cell.Value = name
		cell.GetStyle().Font.Bold = true
		cell.GetStyle().Fill.PatternType = "solid"
		cell.GetStyle().Fill.FgColor = "CCCCCC"
	}
}

func addSummary(file *xlsx.File, a *domain.Analytics) error {
	sheet, err := file.AddSheet(SummarySheet)
	if err != nil {
		return fmt.Errorf("failed to add summary sheet: %w", err)
	}

	addHeader(sheet, []string{"Metric", "Value"})
	rows := [][2]string{
		{"Total stock value", a.TotalStockValue.StringFixed(2)},
		{"Total medicines", strconv.FormatInt(a.TotalMedicines, 10)},
		{"Active medicines", strconv.FormatInt(a.ActiveMedicines, 10)},
		{"Expired", strconv.FormatInt(a.Expired, 10)},
		{"Soon to expire", strconv.FormatInt(a.SoonToExpire, 10)},
		{"Computed at", a.ComputedAt.UTC().Format(time.RFC3339)},
	}
	for _, r := range rows {
		row := sheet.AddRow()
		row.AddCell().SetString(r[0])
		row.AddCell().SetString(r[1])
	}
	sheet.SetColWidth(1, 2, 22)
	return nil
}

// RowError describes a data row that could not be imported. Row is the
// 1-based spreadsheet row number.
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// Record is one importable row. Row is the 1-based source row or line.
type Record struct {
	Row   int
	Input ports.CreateMedicineInput
}

// column aliases accepted in the header row
var columnAliases = map[string]string{
	"name":          "name",
	"medicine":      "name",
	"medicine name": "name",
	"category":      "category",
	"quantity":      "quantity",
	"qty":           "quantity",
	"price":         "price",
	"unit price":    "price",
	"expiry date":   "expiry_date",
	"expiry_date":   "expiry_date",
	"expiry":        "expiry_date",
	"expirydate":    "expiry_date",
}

var requiredColumns = []string{"name", "category", "quantity", "price", "expiry_date"}

// Read parses the first sheet of an xlsx workbook into records. The
// header row selects columns by name, so column order is free. Rows with
// every cell empty are ignored; malformed rows are reported and skipped.
func Read(data []byte) ([]Record, []RowError, error) {
	file, err := xlsx.OpenBinary(data)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	if len(file.Sheets) == 0 {
		return nil, nil, ErrNoHeader
	}

	var (
		records []Record
		rowErrs []RowError
		columns map[string]int
		rowNum  int
	)

	err = file.Sheets[0].ForEachRow(func(r *xlsx.Row) error {
		rowNum++
		if columns == nil {
			cols, err := headerColumns(r)
			if err != nil {
				return err
			}
			columns = cols
			return nil
		}

		in, err := parseRow(r, columns)
		switch {
		case err == nil:
			records = append(records, Record{Row: rowNum, Input: in})
		case errors.Is(err, errEmptyRow):
		default:
			rowErrs = append(rowErrs, RowError{Row: rowNum, Message: err.Error()})
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	if columns == nil {
		return nil, nil, ErrNoHeader
	}

	return records, rowErrs, nil
}

func headerColumns(r *xlsx.Row) (map[string]int, error) {
	cols := make(map[string]int)
	err := r.ForEachCell(func(c *xlsx.Cell) error {
		name := strings.ToLower(strings.TrimSpace(c.String()))
		if field, ok := columnAliases[name]; ok {
			if _, dup := cols[field]; !dup {
				x, _ := c.GetCoordinates()
				cols[field] = x
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var missing []string
	for _, field := range requiredColumns {
		if _, ok := cols[field]; !ok {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: columns %s not found", ErrNoHeader, strings.Join(missing, ", "))
	}
	return cols, nil
}

var errEmptyRow = errors.New("empty row")

func parseRow(r *xlsx.Row, cols map[string]int) (ports.CreateMedicineInput, error) {
	get := func(field string) string {
		return strings.TrimSpace(r.GetCell(cols[field]).String())
	}

	var in ports.CreateMedicineInput
	empty := true
	for _, field := range requiredColumns {
		if get(field) != "" {
			empty = false
			break
		}
	}
	if empty {
		return in, errEmptyRow
	}

	in.Name = get("name")
	in.Category = get("category")

	qty, err := strconv.ParseFloat(get("quantity"), 64)
	if err != nil || qty != float64(int(qty)) {
		return in, fmt.Errorf("invalid quantity %q", get("quantity"))
	}
	in.Quantity = int(qty)

	price, err := decimal.NewFromString(strings.TrimPrefix(get("price"), "$"))
	if err != nil {
		return in, fmt.Errorf("invalid price %q", get("price"))
	}
	in.Price = price

	expiry, err := cellDate(r.GetCell(cols["expiry_date"]))
	if err != nil {
		return in, fmt.Errorf("invalid expiry date %q", get("expiry_date"))
	}
	in.ExpiryDate = expiry

	return in, nil
}

// cellDate accepts text dates and native spreadsheet date cells
func cellDate(c *xlsx.Cell) (time.Time, error) {
	if t, err := domain.ParseDate(c.String()); err == nil {
		return t, nil
	}
	if c.Type() == xlsx.CellTypeNumeric {
		t, err := c.GetTime(false)
		if err == nil {
			return domain.NormalizeDate(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("not a date")
}
