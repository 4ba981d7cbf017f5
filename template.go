package sheetengine

// Row is a runtime data row: a mapping from column key to scalar value.
type Row map[string]interface{}

// ComputedFunc derives a cell value from a data row. The merge engine calls
// it in place of the column-key lookup and propagates any panic unchanged.
type ComputedFunc func(Row) interface{}

// ColumnDefinition describes one table column: its data key, header label,
// width, styling, number format and optional formula template or computed
// value function. Hidden columns are excluded from merged output entirely.
type ColumnDefinition struct {
	Key             string
	Label           string
	Width           float64
	Style           *CellStyle
	HeaderStyle     *CellStyle
	NumberFormat    string
	FormulaTemplate string
	Computed        ComputedFunc
	Hidden          bool
}

func (c *ColumnDefinition) validate() error {
	if c.Key == "" {
		return newStructureError("column key cannot be empty")
	}
	if c.Label == "" {
		return newStructureError("column %q label cannot be empty", c.Key)
	}
	if c.Width < 0 {
		return newStructureError("column %q width must be > 0, got %v", c.Key, c.Width)
	}
	if !validNumberFormat(c.NumberFormat) {
		return newStructureError("column %q has invalid number format %q", c.Key, c.NumberFormat)
	}
	if c.FormulaTemplate != "" && !parsableFormula(c.FormulaTemplate) {
		return newStructureError("column %q has unparsable formula template %q", c.Key, c.FormulaTemplate)
	}
	return nil
}

// SectionDefinition describes a named, ordered group of rows within a table,
// optionally followed by a computed total row when IsTotal is set or a
// formula template is declared.
type SectionDefinition struct {
	Key             string
	Label           string
	Style           *CellStyle
	FormulaTemplate string
	IsTotal         bool
	IndentLevel     int
}

func (s *SectionDefinition) validate() error {
	if s.Key == "" {
		return newStructureError("section key cannot be empty")
	}
	if s.IndentLevel < 0 {
		return newStructureError("section %q indent level must be >= 0, got %d", s.Key, s.IndentLevel)
	}
	if s.FormulaTemplate != "" && !parsableFormula(s.FormulaTemplate) {
		return newStructureError("section %q has unparsable formula template %q", s.Key, s.FormulaTemplate)
	}
	return nil
}

// hasTotalRow reports whether the section emits a trailing total row.
func (s *SectionDefinition) hasTotalRow() bool {
	return s.IsTotal || s.FormulaTemplate != ""
}

// TableTemplate is the layout of one table: columns, optional sections,
// title, styling defaults and presentation flags. It carries no data.
type TableTemplate struct {
	Name               string
	Columns            []ColumnDefinition
	Sections           []SectionDefinition
	Title              string
	TitleStyle         *CellStyle
	HeaderStyle        *CellStyle
	DefaultStyle       *CellStyle
	Rules              []ConditionalRule
	Start              Position
	FreezeHeaders      bool
	AlternateRowColors bool
	AlternateRowStyle  *CellStyle
}

// NewTableTemplate validates a table template: non-empty name, at least one
// column, unique column keys, and well-formed column and section
// definitions. A zero start position defaults to (1, 1).
func NewTableTemplate(t TableTemplate) (*TableTemplate, error) {
	if t.Name == "" {
		return nil, newStructureError("table name cannot be empty")
	}
	if len(t.Columns) == 0 {
		return nil, newStructureError("table %q must have at least one column", t.Name)
	}
	seen := make(map[string]bool, len(t.Columns))
	for i := range t.Columns {
		if err := t.Columns[i].validate(); err != nil {
			return nil, err
		}
		if seen[t.Columns[i].Key] {
			return nil, newStructureError("table %q has duplicate column key %q", t.Name, t.Columns[i].Key)
		}
		seen[t.Columns[i].Key] = true
	}
	for i := range t.Sections {
		if err := t.Sections[i].validate(); err != nil {
			return nil, err
		}
	}
	if t.Start == (Position{}) {
		t.Start = Position{Row: 1, Col: 1}
	}
	if t.Start.Row < 1 || t.Start.Col < 1 {
		return nil, newInvalidPositionError(t.Start.Row, t.Start.Col)
	}
	return &t, nil
}

// Column returns the column definition with the given key, or nil.
func (t *TableTemplate) Column(key string) *ColumnDefinition {
	for i := range t.Columns {
		if t.Columns[i].Key == key {
			return &t.Columns[i]
		}
	}
	return nil
}

// Section returns the section definition with the given key, or nil.
func (t *TableTemplate) Section(key string) *SectionDefinition {
	for i := range t.Sections {
		if t.Sections[i].Key == key {
			return &t.Sections[i]
		}
	}
	return nil
}

// VisibleColumns returns the columns that participate in merged output, in
// declaration order.
func (t *TableTemplate) VisibleColumns() []ColumnDefinition {
	visible := make([]ColumnDefinition, 0, len(t.Columns))
	for _, col := range t.Columns {
		if !col.Hidden {
			visible = append(visible, col)
		}
	}
	return visible
}

// withStart returns a copy of the template rebound to a new start position.
// The merge engine uses this so the caller's template is never mutated.
func (t *TableTemplate) withStart(start Position) *TableTemplate {
	rebound := *t
	rebound.Start = start
	return &rebound
}

// SheetTemplate is the layout of one sheet: an ordered list of table
// templates plus sheet-level presentation settings.
type SheetTemplate struct {
	Name             string
	Tables           []*TableTemplate
	FreezePanes      *Position
	DefaultColWidth  float64
	DefaultRowHeight float64
	// HideGridlines is inverted so the zero value keeps gridlines visible,
	// matching the usual worksheet default.
	HideGridlines bool
	ZoomScale     int
}

// NewSheetTemplate validates a sheet template: legal worksheet name, at
// least one table, and a zoom scale within [10, 400]. A zero zoom defaults
// to 100.
func NewSheetTemplate(t SheetTemplate) (*SheetTemplate, error) {
	if err := validateSheetName(t.Name); err != nil {
		return nil, err
	}
	if len(t.Tables) == 0 {
		return nil, newStructureError("sheet %q must have at least one table", t.Name)
	}
	if t.ZoomScale == 0 {
		t.ZoomScale = 100
	}
	if t.ZoomScale < 10 || t.ZoomScale > 400 {
		return nil, newStructureError("sheet %q zoom scale must be between 10 and 400, got %d", t.Name, t.ZoomScale)
	}
	if t.DefaultColWidth < 0 {
		return nil, newStructureError("sheet %q default column width must be > 0, got %v", t.Name, t.DefaultColWidth)
	}
	if t.DefaultRowHeight < 0 {
		return nil, newStructureError("sheet %q default row height must be > 0, got %v", t.Name, t.DefaultRowHeight)
	}
	return &t, nil
}

// Table returns the table template with the given name, or nil.
func (t *SheetTemplate) Table(name string) *TableTemplate {
	for _, table := range t.Tables {
		if table.Name == name {
			return table
		}
	}
	return nil
}

// SpreadsheetTemplate is the layout of a whole workbook.
type SpreadsheetTemplate struct {
	Sheets      []*SheetTemplate
	Metadata    map[string]string
	ActiveSheet string
}

// NewSpreadsheetTemplate validates a workbook template: at least one sheet,
// unique sheet names, and an active sheet that exists. An unset active sheet
// defaults to the first sheet.
func NewSpreadsheetTemplate(t SpreadsheetTemplate) (*SpreadsheetTemplate, error) {
	if len(t.Sheets) == 0 {
		return nil, newStructureError("spreadsheet must have at least one sheet")
	}
	seen := make(map[string]bool, len(t.Sheets))
	for _, sheet := range t.Sheets {
		if seen[sheet.Name] {
			return nil, newStructureError("duplicate sheet name %q", sheet.Name)
		}
		seen[sheet.Name] = true
	}
	if t.ActiveSheet == "" {
		t.ActiveSheet = t.Sheets[0].Name
	} else if !seen[t.ActiveSheet] {
		return nil, newStructureError("active sheet %q is not defined", t.ActiveSheet)
	}
	if t.Metadata == nil {
		t.Metadata = make(map[string]string)
	}
	return &t, nil
}

// Sheet returns the sheet template with the given name, or nil.
func (t *SpreadsheetTemplate) Sheet(name string) *SheetTemplate {
	for _, sheet := range t.Sheets {
		if sheet.Name == name {
			return sheet
		}
	}
	return nil
}

// SheetNames lists template sheet names in order.
func (t *SpreadsheetTemplate) SheetNames() []string {
	names := make([]string, 0, len(t.Sheets))
	for _, sheet := range t.Sheets {
		names = append(names, sheet.Name)
	}
	return names
}
