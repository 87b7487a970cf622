package spreadsheet_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v3"

	"github.com/ammerola/medstock-be/internal/adapters/spreadsheet"
	"github.com/ammerola/medstock-be/internal/core/domain"
	"github.com/ammerola/medstock-be/test/helpers"
)

func buildWorkbook(t *testing.T, rows [][]string) []byte {
	t.Helper()
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Import")
	require.NoError(t, err)
	for _, r := range rows {
		row := sheet.AddRow()
		for _, v := range r {
			row.AddCell().SetString(v)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, file.Write(&buf))
	return buf.Bytes()
}

func TestWriteThenRead(t *testing.T) {
	items := []domain.Medicine{
		*helpers.CreateTestMedicine(func(m *domain.Medicine) {
			m.Name = "Paracetamol 500mg"
			m.Price = decimal.RequireFromString("5.99")
			m.Quantity = 150
			m.ExpiryDate = time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
		}),
		*helpers.CreateTestMedicine(),
	}
	summary := &domain.Analytics{TotalMedicines: 2, ActiveMedicines: 2, TotalStockValue: decimal.RequireFromString("1398.00")}

	data, err := spreadsheet.Write(items, summary)
	require.NoError(t, err)

	file, err := xlsx.OpenBinary(data)
	require.NoError(t, err)
	require.Len(t, file.Sheets, 2)
	assert.Equal(t, spreadsheet.MedicinesSheet, file.Sheets[0].Name)
	assert.Equal(t, spreadsheet.SummarySheet, file.Sheets[1].Name)

	records, rowErrs, err := spreadsheet.Read(data)
	require.NoError(t, err)
	assert.Empty(t, rowErrs)
	require.Len(t, records, 2)
	assert.Equal(t, 2, records[0].Row)
	in := records[0].Input
	assert.Equal(t, "Paracetamol 500mg", in.Name)
	assert.Equal(t, 150, in.Quantity)
	assert.True(t, decimal.RequireFromString("5.99").Equal(in.Price))
	assert.Equal(t, time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC), in.ExpiryDate)
}

func TestRead_HeaderAliasesAndBadRows(t *testing.T) {
	data := buildWorkbook(t, [][]string{
		{"Expiry", "Qty", "Medicine Name", "Category", "Unit Price"},
		{"2026-01-31", "30", "Omeprazole 20mg", "Gastrointestinal", "$15.75"},
		{"", "", "", "", ""},
		{"31/01/2026", "10", "Bad Date", "Misc", "1.00"},
		{"2026-01-31", "ten", "Bad Qty", "Misc", "1.00"},
		{"2026-01-31", "5", "Bad Price", "Misc", "free"},
	})

	records, rowErrs, err := spreadsheet.Read(data)
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, "Omeprazole 20mg", records[0].Input.Name)
	assert.Equal(t, "Gastrointestinal", records[0].Input.Category)
	assert.True(t, decimal.RequireFromString("15.75").Equal(records[0].Input.Price))

	require.Len(t, rowErrs, 3)
	assert.Greater(t, rowErrs[0].Row, 1)
	assert.Contains(t, rowErrs[0].Message, "expiry date")
	assert.Contains(t, rowErrs[1].Message, "quantity")
	assert.Contains(t, rowErrs[2].Message, "price")
}

func TestRead_MissingColumns(t *testing.T) {
	data := buildWorkbook(t, [][]string{
		{"Name", "Category"},
		{"Aspirin", "Cardiovascular"},
	})

	_, _, err := spreadsheet.Read(data)
	assert.ErrorIs(t, err, spreadsheet.ErrNoHeader)
	assert.ErrorContains(t, err, "quantity")
}

func TestRead_NotAWorkbook(t *testing.T) {
	_, _, err := spreadsheet.Read([]byte("name,category\n"))
	assert.ErrorContains(t, err, "failed to open Excel file")
}
