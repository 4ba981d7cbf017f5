package sheetengine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIncomeStatementTemplate(t *testing.T) {
	template, err := IncomeStatementTemplate("Income Statement", "FY 2024")
	require.NoError(t, err)
	require.Len(t, template.Sheets, 1)

	sheet := template.Sheets[0]
	assert.Equal(t, IncomeStatementSheet, sheet.Name)
	require.NotNil(t, sheet.FreezePanes)
	assert.Equal(t, Position{Row: 4, Col: 1}, *sheet.FreezePanes)

	table := sheet.Table("income_statement")
	require.NotNil(t, table)
	assert.Equal(t, "Income Statement\nFY 2024", table.Title)
	require.Len(t, table.Columns, 3)
	assert.Equal(t, FmtCurrencyBRL, table.Columns[1].NumberFormat)
	assert.Equal(t, FmtPercentage2, table.Columns[2].NumberFormat)
	assert.Equal(t, 40.0, table.Columns[0].Width)

	require.Len(t, table.Sections, 11)
	assert.Equal(t, "gross_revenue", table.Sections[0].Key)
	assert.Equal(t, "net_profit", table.Sections[10].Key)

	// Statement subtotals carry total rows, plain sections do not.
	totals := 0
	for i := range table.Sections {
		if table.Sections[i].hasTotalRow() {
			totals++
		}
	}
	assert.Equal(t, 5, totals)

	require.Len(t, table.Rules, 1)
	assert.Equal(t, OpLessThan, table.Rules[0].Operator)
}

func TestIncomeStatementMapper(t *testing.T) {
	data, err := IncomeStatementMapper(SampleIncomeStatement())
	require.NoError(t, err)

	sheet := data.Sheet(IncomeStatementSheet)
	require.NotNil(t, sheet)
	table := sheet.Table("income_statement")
	require.NotNil(t, table)

	// Gross revenue: 1,000,000 + 500,000.
	gross := table.Section("gross_revenue")
	require.Len(t, gross, 2)
	assert.Equal(t, 1000000.0, gross[0]["value"])

	// Net revenue subtotal: 1,500,000 - 200,000 of deductions.
	net := table.Section("net_revenue")
	require.Len(t, net, 1)
	assert.Equal(t, 1300000.0, net[0]["value"])
	assert.InDelta(t, 1300000.0/1500000.0, net[0]["percent"].(float64), 1e-9)

	// Cascade down to net profit.
	assert.Equal(t, 500000.0, table.Section("gross_profit")[0]["value"])
	assert.Equal(t, 170000.0, table.Section("operating_profit")[0]["value"])
	assert.Equal(t, 160000.0, table.Section("ebt")[0]["value"])
	assert.Equal(t, 105600.0, table.Section("net_profit")[0]["value"])
}

func TestIncomeStatementMapperWrongModel(t *testing.T) {
	_, err := IncomeStatementMapper("not a statement")
	assert.ErrorIs(t, err, ErrStructure)
}

func TestIncomeStatementMapperZeroRevenue(t *testing.T) {
	data, err := IncomeStatementMapper(&IncomeStatement{
		Taxes: []LineItem{{Account: "Penalty", Value: -100}},
	})
	require.NoError(t, err)

	table := data.Sheet(IncomeStatementSheet).Table("income_statement")
	// Percent of a zero revenue base is zero, not NaN.
	assert.Equal(t, 0.0, table.Section("taxes")[0]["percent"])
	assert.Equal(t, -100.0, table.Section("net_profit")[0]["value"])
}

func TestIncomeStatementReportEndToEnd(t *testing.T) {
	report, err := NewIncomeStatementReport("Income Statement", "FY 2024", nil)
	require.NoError(t, err)

	spreadsheet, err := report.Build(SampleIncomeStatement())
	require.NoError(t, err)
	require.Len(t, spreadsheet.Sheets, 1)

	table := spreadsheet.Sheets[0].Tables[0]
	// 12 line items, 5 subtotal data rows, 5 subtotal label rows.
	assert.Equal(t, 22, table.RowCount())
	assert.True(t, table.HasTitle())
	assert.True(t, table.HasHeaders())

	// The negative-value rule lands on the body range.
	require.Len(t, spreadsheet.Sheets[0].Rules, 1)

	out, _, err := report.Bytes(SampleIncomeStatement(), RenderOptions{Format: "csv"})
	require.NoError(t, err)
	text := string(out)
	assert.True(t, strings.Contains(text, "Product Sales"))
	assert.True(t, strings.Contains(text, "NET PROFIT"))
}

func TestSampleIncomeStatement(t *testing.T) {
	sample := SampleIncomeStatement()
	assert.Equal(t, "FY 2024", sample.Period)
	assert.Len(t, sample.Revenue, 2)
	assert.Len(t, sample.Expenses, 3)

	// Deductions and costs are negative line items.
	for _, item := range sample.Deductions {
		assert.Negative(t, item.Value)
	}
}
