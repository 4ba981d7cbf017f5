package sheetengine

import "strings"

// Worksheet name constraints shared by the physical model and the template
// layer.
const maxSheetNameLength = 31

const invalidSheetNameChars = `\/*?:[]`

func validateSheetName(name string) error {
	if name == "" {
		return newStructureError("sheet name cannot be empty")
	}
	if len(name) > maxSheetNameLength {
		return newStructureError("sheet name must be <= %d characters, got %d", maxSheetNameLength, len(name))
	}
	if strings.ContainsAny(name, invalidSheetNameChars) {
		return newStructureError("sheet name %q cannot contain any of %s", name, invalidSheetNameChars)
	}
	return nil
}

// RangedRule scopes a conditional rule to a cell range.
type RangedRule struct {
	Range Range
	Rule  ConditionalRule
}

// Sheet is a named container of tables plus loose cells addressed by
// position, with per-column widths, per-row heights, a freeze-pane anchor
// and range-scoped conditional rules.
type Sheet struct {
	Name             string
	Tables           []*Table
	Cells            map[Position]Cell
	Rules            []RangedRule
	FreezePanes      *Position
	ColumnWidths     map[int]float64
	RowHeights       map[int]float64
	DefaultColWidth  float64
	DefaultRowHeight float64
	ShowGridlines    bool
	ZoomScale        int
}

// NewSheet validates the name and creates an empty sheet.
func NewSheet(name string) (*Sheet, error) {
	if err := validateSheetName(name); err != nil {
		return nil, err
	}
	return &Sheet{
		Name:          name,
		Cells:         make(map[Position]Cell),
		ColumnWidths:  make(map[int]float64),
		RowHeights:    make(map[int]float64),
		ShowGridlines: true,
		ZoomScale:     100,
	}, nil
}

// AddTable appends a table to the sheet.
func (s *Sheet) AddTable(table *Table) {
	s.Tables = append(s.Tables, table)
}

// SetCell places a loose cell at the given position.
func (s *Sheet) SetCell(pos Position, cell Cell) {
	s.Cells[pos] = cell
}

// Cell returns the loose cell at pos, if set.
func (s *Sheet) Cell(pos Position) (Cell, bool) {
	cell, ok := s.Cells[pos]
	return cell, ok
}

// AddRule scopes a conditional rule to a range on this sheet.
func (s *Sheet) AddRule(r Range, rule ConditionalRule) {
	s.Rules = append(s.Rules, RangedRule{Range: r, Rule: rule})
}

// SetColumnWidth overrides the width of a 1-indexed column.
func (s *Sheet) SetColumnWidth(col int, width float64) error {
	if width <= 0 {
		return newStructureError("column width must be > 0, got %v", width)
	}
	s.ColumnWidths[col] = width
	return nil
}

// SetRowHeight overrides the height of a 1-indexed row.
func (s *Sheet) SetRowHeight(row int, height float64) error {
	if height <= 0 {
		return newStructureError("row height must be > 0, got %v", height)
	}
	s.RowHeights[row] = height
	return nil
}

// SetFreezePanes anchors frozen panes: rows above and columns left of pos
// stay fixed while scrolling.
func (s *Sheet) SetFreezePanes(pos Position) {
	s.FreezePanes = &pos
}
