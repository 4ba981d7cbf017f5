package sheetengine

// Built-in income statement report: a sectioned financial table with
// currency and percent-of-revenue columns, subtotal sections and a
// negative-value highlight rule. It doubles as the reference for how
// templates, mappers and reports compose.

// LineItem is one financial statement line.
type LineItem struct {
	Account string
	Value   float64
}

// IncomeStatement is the domain model the built-in income statement report
// maps from.
type IncomeStatement struct {
	Period     string
	Revenue    []LineItem
	Deductions []LineItem
	Costs      []LineItem
	Expenses   []LineItem
	Financial  []LineItem
	Taxes      []LineItem
}

// Section keys of the income statement table, in statement order.
const (
	sectionGrossRevenue    = "gross_revenue"
	sectionDeductions      = "deductions"
	sectionNetRevenue      = "net_revenue"
	sectionCostOfSales     = "cost_of_sales"
	sectionGrossProfit     = "gross_profit"
	sectionExpenses        = "operating_expenses"
	sectionOperatingProfit = "operating_profit"
	sectionFinancial       = "financial_result"
	sectionEBT             = "ebt"
	sectionTaxes           = "taxes"
	sectionNetProfit       = "net_profit"
)

const incomeStatementTable = "income_statement"

// IncomeStatementSheet is the sheet name the built-in report renders into.
const IncomeStatementSheet = "Income Statement"

// IncomeStatementTemplate builds the income statement layout: account,
// currency value and percent-of-revenue columns over the classic statement
// sections, with subtotal rows and a red highlight on negative values.
func IncomeStatementTemplate(title, period string) (*SpreadsheetTemplate, error) {
	headerStyle := &CellStyle{
		Font:      &Font{Bold: true, Size: 11, Color: MustColor("FFFFFF")},
		Fill:      &Fill{Pattern: FillSolid, Foreground: MustColor("4472C4")},
		Alignment: &Alignment{Horizontal: AlignCenter, Vertical: VAlignCenter},
		Border:    BorderAllSides(BorderThin, ""),
	}
	sectionStyle := &CellStyle{
		Font:      &Font{Bold: true, Size: 11, Color: MustColor("FFFFFF")},
		Fill:      &Fill{Pattern: FillSolid, Foreground: MustColor("70AD47")},
		Alignment: &Alignment{Horizontal: AlignLeft, Vertical: VAlignCenter},
		Border:    BorderAllSides(BorderThin, ""),
	}
	totalStyle := &CellStyle{
		Font:      &Font{Bold: true, Size: 11},
		Fill:      &Fill{Pattern: FillSolid, Foreground: MustColor("D9E1F2")},
		Alignment: &Alignment{Horizontal: AlignLeft, Vertical: VAlignCenter},
		Border:    BorderAllSides(BorderMedium, ""),
	}
	rightAligned := &CellStyle{Alignment: &Alignment{Horizontal: AlignRight}}

	table, err := NewTableTemplate(TableTemplate{
		Name: incomeStatementTable,
		Columns: []ColumnDefinition{
			{Key: "account", Label: "Account", Width: 40, HeaderStyle: headerStyle},
			{
				Key:          "value",
				Label:        "Amount (R$)",
				Width:        20,
				NumberFormat: FmtCurrencyBRL,
				HeaderStyle:  headerStyle,
				Style:        rightAligned,
			},
			{
				Key:          "percent",
				Label:        "% of Revenue",
				Width:        15,
				NumberFormat: FmtPercentage2,
				HeaderStyle:  headerStyle,
				Style:        rightAligned,
			},
		},
		Sections: []SectionDefinition{
			{Key: sectionGrossRevenue, Label: "GROSS REVENUE", Style: sectionStyle},
			{Key: sectionDeductions, Label: "(-) REVENUE DEDUCTIONS", Style: sectionStyle},
			{Key: sectionNetRevenue, Label: "= NET REVENUE", Style: totalStyle, IsTotal: true},
			{Key: sectionCostOfSales, Label: "(-) COST OF SALES", Style: sectionStyle},
			{Key: sectionGrossProfit, Label: "= GROSS PROFIT", Style: totalStyle, IsTotal: true},
			{Key: sectionExpenses, Label: "(-) OPERATING EXPENSES", Style: sectionStyle},
			{Key: sectionOperatingProfit, Label: "= OPERATING PROFIT", Style: totalStyle, IsTotal: true},
			{Key: sectionFinancial, Label: "FINANCIAL RESULT", Style: sectionStyle},
			{Key: sectionEBT, Label: "= PROFIT BEFORE TAXES", Style: totalStyle, IsTotal: true},
			{Key: sectionTaxes, Label: "(-) TAXES ON PROFIT", Style: sectionStyle},
			{Key: sectionNetProfit, Label: "= NET PROFIT", Style: totalStyle, IsTotal: true},
		},
		Title:       title + "\n" + period,
		TitleStyle:  TitleStyle(),
		HeaderStyle: headerStyle,
		Rules: []ConditionalRule{
			CellIsNegative(NegativeValueStyle(), 1),
		},
		FreezeHeaders: true,
	})
	if err != nil {
		return nil, err
	}

	sheet, err := NewSheetTemplate(SheetTemplate{
		Name:        IncomeStatementSheet,
		Tables:      []*TableTemplate{table},
		FreezePanes: &Position{Row: 4, Col: 1},
	})
	if err != nil {
		return nil, err
	}
	return NewSpreadsheetTemplate(SpreadsheetTemplate{Sheets: []*SheetTemplate{sheet}})
}

// IncomeStatementMapper maps an *IncomeStatement to spreadsheet data:
// percent columns derive from gross revenue, and the subtotal sections
// (net revenue, gross profit, operating profit, profit before taxes, net
// profit) are computed from the preceding sections.
func IncomeStatementMapper(model interface{}) (*SpreadsheetData, error) {
	statement, ok := model.(*IncomeStatement)
	if !ok {
		return nil, newStructureError("income statement mapper requires *IncomeStatement, got %T", model)
	}

	gross := sumItems(statement.Revenue)
	percent := func(value float64) float64 {
		if gross == 0 {
			return 0
		}
		return value / gross
	}
	rows := func(items []LineItem) []Row {
		out := make([]Row, 0, len(items))
		for _, item := range items {
			out = append(out, Row{
				"account": item.Account,
				"value":   item.Value,
				"percent": percent(item.Value),
			})
		}
		return out
	}
	subtotal := func(account string, value float64) []Row {
		return []Row{{
			"account": account,
			"value":   value,
			"percent": percent(value),
		}}
	}

	netRevenue := gross + sumItems(statement.Deductions)
	grossProfit := netRevenue + sumItems(statement.Costs)
	operatingProfit := grossProfit + sumItems(statement.Expenses)
	ebt := operatingProfit + sumItems(statement.Financial)
	netProfit := ebt + sumItems(statement.Taxes)

	table := NewTableData()
	table.SetSectionRows(sectionGrossRevenue, rows(statement.Revenue))
	table.SetSectionRows(sectionDeductions, rows(statement.Deductions))
	table.SetSectionRows(sectionNetRevenue, subtotal("Net Revenue", netRevenue))
	table.SetSectionRows(sectionCostOfSales, rows(statement.Costs))
	table.SetSectionRows(sectionGrossProfit, subtotal("Gross Profit", grossProfit))
	table.SetSectionRows(sectionExpenses, rows(statement.Expenses))
	table.SetSectionRows(sectionOperatingProfit, subtotal("Operating Profit", operatingProfit))
	table.SetSectionRows(sectionFinancial, rows(statement.Financial))
	table.SetSectionRows(sectionEBT, subtotal("Profit Before Taxes", ebt))
	table.SetSectionRows(sectionTaxes, rows(statement.Taxes))
	table.SetSectionRows(sectionNetProfit, subtotal("Net Profit", netProfit))

	sheet := NewSheetData()
	sheet.SetTable(incomeStatementTable, table)
	data := NewSpreadsheetData()
	data.SetSheet(IncomeStatementSheet, sheet)
	return data, nil
}

func sumItems(items []LineItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Value
	}
	return total
}

// NewIncomeStatementReport composes the built-in income statement report.
func NewIncomeStatementReport(title, period string, engine *Engine) (*Report, error) {
	template, err := IncomeStatementTemplate(title, period)
	if err != nil {
		return nil, err
	}
	meta := NewReportMeta("income_statement", "1.0.0", "1.0.0")
	return NewReport(template, IncomeStatementMapper, meta, engine), nil
}

// SampleIncomeStatement returns the demonstration dataset used by the CLI
// demo and the examples.
func SampleIncomeStatement() *IncomeStatement {
	return &IncomeStatement{
		Period: "FY 2024",
		Revenue: []LineItem{
			{Account: "Product Sales", Value: 1000000},
			{Account: "Service Revenue", Value: 500000},
		},
		Deductions: []LineItem{
			{Account: "Sales Taxes", Value: -150000},
			{Account: "Returns", Value: -50000},
		},
		Costs: []LineItem{
			{Account: "Cost of Goods Sold", Value: -600000},
			{Account: "Cost of Services", Value: -200000},
		},
		Expenses: []LineItem{
			{Account: "Administrative Expenses", Value: -150000},
			{Account: "Selling Expenses", Value: -100000},
			{Account: "Personnel Expenses", Value: -80000},
		},
		Financial: []LineItem{
			{Account: "Financial Income", Value: 20000},
			{Account: "Financial Expenses", Value: -30000},
		},
		Taxes: []LineItem{
			{Account: "Income Tax", Value: -54400},
		},
	}
}
