package sheetengine

// The merge engine is the deterministic heart of the package: it walks a
// template's sheets, tables, columns and sections, pulls matching runtime
// rows, inserts computed total rows and emits a positioned grid of styled
// cells. It is pure: templates and data are never mutated, missing data
// binds to empty collections, and structural validation has already
// happened at construction time.

// tableGap is the fixed number of blank rows inserted after every table when
// tables stack vertically within a sheet.
const tableGap = 2

// MergeSpreadsheet combines a workbook template with workbook data into a
// physical Spreadsheet. Sheets merge in template order; sheet names absent
// from the data merge against empty data.
func MergeSpreadsheet(template *SpreadsheetTemplate, data *SpreadsheetData) (*Spreadsheet, error) {
	if data == nil {
		data = NewSpreadsheetData()
	}
	spreadsheet := NewSpreadsheet()
	for k, v := range template.Metadata {
		spreadsheet.Metadata[k] = v
	}
	spreadsheet.ActiveSheet = template.ActiveSheet

	for _, sheetTemplate := range template.Sheets {
		sheetData := data.Sheet(sheetTemplate.Name)
		if sheetData == nil {
			sheetData = NewSheetData()
		}
		sheet, err := MergeSheet(sheetTemplate, sheetData)
		if err != nil {
			return nil, err
		}
		spreadsheet.Sheets = append(spreadsheet.Sheets, sheet)
	}
	return spreadsheet, nil
}

// MergeSheet merges one sheet template with its data. Tables stack
// vertically at column 1 in template order, separated by a fixed two-row
// gap; each visible column's declared width is propagated to the sheet's
// column-width map.
func MergeSheet(template *SheetTemplate, data *SheetData) (*Sheet, error) {
	sheet, err := NewSheet(template.Name)
	if err != nil {
		return nil, err
	}
	sheet.FreezePanes = template.FreezePanes
	sheet.DefaultColWidth = template.DefaultColWidth
	sheet.DefaultRowHeight = template.DefaultRowHeight
	sheet.ShowGridlines = !template.HideGridlines
	sheet.ZoomScale = template.ZoomScale

	currentRow := 1
	for _, tableTemplate := range template.Tables {
		tableData := data.Table(tableTemplate.Name)
		if tableData == nil {
			tableData = NewTableData()
		}

		table, err := MergeTable(tableTemplate.withStart(Position{Row: currentRow, Col: 1}), tableData)
		if err != nil {
			return nil, err
		}
		sheet.AddTable(table)

		// Template rules attach to the table's body range on the sheet so
		// writers can emit them without re-deriving positions.
		if len(tableTemplate.Rules) > 0 && table.RowCount() > 0 {
			bodyStart := currentRow
			if table.HasTitle() {
				bodyStart++
			}
			if table.HasHeaders() {
				bodyStart++
			}
			bodyRange := Range{
				Start: Position{Row: bodyStart, Col: 1},
				End:   Position{Row: bodyStart + table.RowCount() - 1, Col: table.ColumnCount()},
			}
			for _, rule := range tableTemplate.Rules {
				sheet.AddRule(bodyRange, rule)
			}
		}
		currentRow += table.RowsUsed() + tableGap

		for i, col := range tableTemplate.VisibleColumns() {
			if col.Width > 0 {
				if err := sheet.SetColumnWidth(i+1, col.Width); err != nil {
					return nil, err
				}
			}
		}
	}
	return sheet, nil
}

// MergeTable merges one table template with its data. See the package
// comment on merge order: title, headers over visible columns, body rows
// (plain or sectioned with trailing total rows), then the alternate-row
// restyle pass over even 0-indexed body rows.
func MergeTable(template *TableTemplate, data *TableData) (*Table, error) {
	var title *Cell
	if template.Title != "" {
		t := TextCell(template.Title, template.TitleStyle)
		title = &t
	}

	visible := template.VisibleColumns()
	headers := make([]Cell, 0, len(visible))
	for _, col := range visible {
		style := col.HeaderStyle
		if style == nil {
			style = template.HeaderStyle
		}
		if style == nil {
			style = HeaderStyle()
		}
		headers = append(headers, TextCell(col.Label, style))
	}

	body := buildBody(template, data, visible)

	table, err := NewTable(body, headers, title, template.Start)
	if err != nil {
		return nil, err
	}

	// Applied after all rows are built, so total rows on even indices are
	// recolored too. That interaction is preserved deliberately; see
	// DESIGN.md.
	if template.AlternateRowColors && template.AlternateRowStyle != nil {
		for i := 0; i < table.RowCount(); i += 2 {
			table.ApplyRowStyle(i, template.AlternateRowStyle)
		}
	}
	return table, nil
}

// buildBody emits the table body rows. Sectioned templates walk sections in
// declared order, skipping sections without data entirely; unsectioned
// templates emit one output row per input row in input order. Rows are
// processed in bounded batches; batch boundaries never affect output.
func buildBody(template *TableTemplate, data *TableData, visible []ColumnDefinition) [][]Cell {
	if data.IsEmpty() {
		return nil
	}

	var body [][]Cell
	if len(template.Sections) > 0 {
		for i := range template.Sections {
			section := &template.Sections[i]
			rows := data.Section(section.Key)
			if len(rows) == 0 {
				continue
			}
			for _, batch := range chunks(rows, defaultChunkSize) {
				for _, row := range batch {
					body = append(body, buildRow(template, data, visible, row))
				}
			}
			if section.hasTotalRow() {
				body = append(body, buildTotalRow(section, visible))
			}
		}
		return body
	}

	for _, batch := range chunks(data.Rows, defaultChunkSize) {
		for _, row := range batch {
			body = append(body, buildRow(template, data, visible, row))
		}
	}
	return body
}

// buildRow emits the cells of one output row across the visible columns.
func buildRow(template *TableTemplate, data *TableData, visible []ColumnDefinition, row Row) []Cell {
	cells := make([]Cell, 0, len(visible))
	for i := range visible {
		cells = append(cells, buildCell(&visible[i], template, data, row))
	}
	return cells
}

// buildCell resolves one cell: computed function first, then the plain key
// lookup; a declared formula template wins over a plain value cell, with
// the resolved value kept as the cached display value.
func buildCell(col *ColumnDefinition, template *TableTemplate, data *TableData, row Row) Cell {
	var value interface{}
	if col.Computed != nil {
		value = col.Computed(row)
	} else {
		value = data.Value(col.Key, row)
	}

	style := col.Style
	if style == nil {
		style = template.DefaultStyle
	}

	if col.FormulaTemplate != "" {
		return FormulaCell(col.FormulaTemplate, value, col.NumberFormat, style)
	}
	return NewCell(Cell{
		Value:        value,
		NumberFormat: col.NumberFormat,
		Style:        style,
	})
}

// buildTotalRow emits a section's trailing total row: the section label in
// the first visible column, and either formula cells or blanks in the rest.
func buildTotalRow(section *SectionDefinition, visible []ColumnDefinition) []Cell {
	style := section.Style
	if style == nil {
		style = HeaderStyle()
	}
	cells := make([]Cell, 0, len(visible))
	for i := range visible {
		switch {
		case i == 0:
			cells = append(cells, TextCell(section.Label, style))
		case section.FormulaTemplate != "":
			cells = append(cells, FormulaCell(section.FormulaTemplate, nil, visible[i].NumberFormat, style))
		default:
			cells = append(cells, BlankCell())
		}
	}
	return cells
}
