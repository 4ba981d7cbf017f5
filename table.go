package sheetengine

// Table is a rectangular grid of cells with an optional header row and title
// cell, anchored at a start position within its sheet. Row and column
// placement inside the table is implicit: the grid index plus the start
// position resolves to an absolute position only at the writer boundary.
type Table struct {
	Cells   [][]Cell
	Headers []Cell
	Title   *Cell
	Start   Position
}

// NewTable validates that all rows have equal length and creates a table.
// A zero start position defaults to (1, 1).
func NewTable(cells [][]Cell, headers []Cell, title *Cell, start Position) (*Table, error) {
	if len(cells) > 0 {
		width := len(cells[0])
		for i, row := range cells {
			if len(row) != width {
				return nil, newStructureError(
					"all table rows must have the same length, row 0 has %d cells but row %d has %d",
					width, i, len(row))
			}
		}
	}
	if start == (Position{}) {
		start = Position{Row: 1, Col: 1}
	}
	if start.Row < 1 || start.Col < 1 {
		return nil, newInvalidPositionError(start.Row, start.Col)
	}
	return &Table{Cells: cells, Headers: headers, Title: title, Start: start}, nil
}

// TableFromRows builds a table from raw row values, wrapping each value in a
// type-inferred cell.
func TableFromRows(rows [][]interface{}, headers []string, title string) (*Table, error) {
	cells := make([][]Cell, 0, len(rows))
	for _, row := range rows {
		rowCells := make([]Cell, 0, len(row))
		for _, value := range row {
			rowCells = append(rowCells, NewCell(Cell{Value: value}))
		}
		cells = append(cells, rowCells)
	}
	var headerCells []Cell
	for _, h := range headers {
		headerCells = append(headerCells, TextCell(h, nil))
	}
	var titleCell *Cell
	if title != "" {
		t := TextCell(title, nil)
		titleCell = &t
	}
	return NewTable(cells, headerCells, titleCell, Position{Row: 1, Col: 1})
}

// RowCount returns the number of body rows, excluding headers and title.
func (t *Table) RowCount() int {
	return len(t.Cells)
}

// ColumnCount returns the grid width, falling back to the header width when
// the body is empty.
func (t *Table) ColumnCount() int {
	if len(t.Cells) == 0 {
		return len(t.Headers)
	}
	return len(t.Cells[0])
}

// HasHeaders reports whether the table declares a header row.
func (t *Table) HasHeaders() bool {
	return len(t.Headers) > 0
}

// HasTitle reports whether the table declares a title cell.
func (t *Table) HasTitle() bool {
	return t.Title != nil
}

// RowsUsed returns the number of sheet rows the table occupies: title row,
// header row and body rows.
func (t *Table) RowsUsed() int {
	used := t.RowCount()
	if t.HasTitle() {
		used++
	}
	if t.HasHeaders() {
		used++
	}
	return used
}

// ApplyRowStyle replaces the cells of the 0-indexed body row with copies
// carrying the merged style. Out-of-range rows are ignored.
func (t *Table) ApplyRowStyle(row int, style *CellStyle) {
	if row < 0 || row >= len(t.Cells) {
		return
	}
	merged := make([]Cell, len(t.Cells[row]))
	for i, cell := range t.Cells[row] {
		merged[i] = cell.MergeStyle(style)
	}
	t.Cells[row] = merged
}
