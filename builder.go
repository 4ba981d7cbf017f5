package sheetengine

import (
	"encoding/json"
	"fmt"
)

// Schema builder: older report scripts describe whole workbooks as one flat
// JSON document with inline headers and row arrays. The builder converts such
// a schema into a template plus data pair so those documents keep rendering
// through the merge engine.

// Schema is the declarative workbook document accepted by the builder.
type Schema struct {
	Filename string        `json:"filename,omitempty"`
	Sheets   []SchemaSheet `json:"sheets"`
}

// SchemaSheet describes one sheet of a schema document.
type SchemaSheet struct {
	Name        string        `json:"name"`
	Tables      []SchemaTable `json:"tables"`
	FreezePanes *SchemaFreeze `json:"freeze_panes,omitempty"`
}

// SchemaTable describes one table: headers plus positional row data.
type SchemaTable struct {
	Title       string          `json:"title,omitempty"`
	Headers     []SchemaHeader  `json:"headers"`
	Data        [][]interface{} `json:"data"`
	StartRow    int             `json:"start_row,omitempty"`
	StartColumn int             `json:"start_column,omitempty"`
}

// SchemaHeader is either a bare label or a label with inline styling. In
// JSON it decodes from both a plain string and an object form.
type SchemaHeader struct {
	Text  string
	Style *SchemaStyle
}

func (h *SchemaHeader) UnmarshalJSON(raw []byte) error {
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		h.Text = text
		h.Style = nil
		return nil
	}
	var obj struct {
		Text  string       `json:"text"`
		Style *SchemaStyle `json:"style,omitempty"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return newStructureError("header must be a string or an object: %v", err)
	}
	h.Text = obj.Text
	h.Style = obj.Style
	return nil
}

// MarshalJSON keeps round-tripped schemas compact: a styleless header
// encodes back to a plain string.
func (h SchemaHeader) MarshalJSON() ([]byte, error) {
	if h.Style == nil {
		return json.Marshal(h.Text)
	}
	return json.Marshal(struct {
		Text  string       `json:"text"`
		Style *SchemaStyle `json:"style,omitempty"`
	}{h.Text, h.Style})
}

// SchemaStyle is the flat inline style dialect of the schema documents.
type SchemaStyle struct {
	Bold                bool    `json:"bold,omitempty"`
	Italic              bool    `json:"italic,omitempty"`
	FontSize            float64 `json:"font_size,omitempty"`
	FontColor           string  `json:"font_color,omitempty"`
	BackgroundColor     string  `json:"background_color,omitempty"`
	HorizontalAlignment string  `json:"horizontal_alignment,omitempty"`
	VerticalAlignment   string  `json:"vertical_alignment,omitempty"`
}

// SchemaFreeze decodes both freeze pane spellings: an A1 reference string,
// or an object counting frozen header rows and columns.
type SchemaFreeze struct {
	Rows    int
	Columns int
	ref     string
}

func (f *SchemaFreeze) UnmarshalJSON(raw []byte) error {
	var ref string
	if err := json.Unmarshal(raw, &ref); err == nil {
		f.ref = ref
		return nil
	}
	var obj struct {
		Rows    int `json:"rows"`
		Columns int `json:"columns"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return newStructureError("freeze_panes must be an A1 reference or an object: %v", err)
	}
	f.Rows = obj.Rows
	f.Columns = obj.Columns
	return nil
}

func (f *SchemaFreeze) position() (*Position, error) {
	if f.ref != "" {
		pos, err := PositionFromName(f.ref)
		if err != nil {
			return nil, err
		}
		return &pos, nil
	}
	pos, err := NewPosition(f.Rows+1, f.Columns+1)
	if err != nil {
		return nil, err
	}
	return &pos, nil
}

// ParseSchema decodes a JSON schema document.
func ParseSchema(raw []byte) (*Schema, error) {
	var schema Schema
	if err := json.Unmarshal(raw, &schema); err != nil {
		return nil, newStructureError("invalid schema document: %v", err)
	}
	return &schema, nil
}

// BuildSchema converts a schema into the template and data accepted by the
// merge engine. Column keys are positional (col_0, col_1, ...), table names
// positional per sheet.
func BuildSchema(schema *Schema) (*SpreadsheetTemplate, *SpreadsheetData, error) {
	if schema == nil || len(schema.Sheets) == 0 {
		return nil, nil, newStructureError("schema must define at least one sheet")
	}

	sheets := make([]*SheetTemplate, 0, len(schema.Sheets))
	data := NewSpreadsheetData()
	for _, sheetSchema := range schema.Sheets {
		sheet, sheetData, err := buildSchemaSheet(sheetSchema)
		if err != nil {
			return nil, nil, err
		}
		sheets = append(sheets, sheet)
		data.SetSheet(sheetSchema.Name, sheetData)
	}

	template, err := NewSpreadsheetTemplate(SpreadsheetTemplate{Sheets: sheets})
	if err != nil {
		return nil, nil, err
	}
	return template, data, nil
}

func buildSchemaSheet(schema SchemaSheet) (*SheetTemplate, *SheetData, error) {
	tables := make([]*TableTemplate, 0, len(schema.Tables))
	sheetData := NewSheetData()
	for i, tableSchema := range schema.Tables {
		name := fmt.Sprintf("table_%d", i+1)
		table, tableData, err := buildSchemaTable(name, tableSchema)
		if err != nil {
			return nil, nil, err
		}
		tables = append(tables, table)
		sheetData.SetTable(name, tableData)
	}

	var freeze *Position
	if schema.FreezePanes != nil {
		pos, err := schema.FreezePanes.position()
		if err != nil {
			return nil, nil, err
		}
		freeze = pos
	}

	template, err := NewSheetTemplate(SheetTemplate{
		Name:        schema.Name,
		Tables:      tables,
		FreezePanes: freeze,
	})
	if err != nil {
		return nil, nil, err
	}
	return template, sheetData, nil
}

func buildSchemaTable(name string, schema SchemaTable) (*TableTemplate, *TableData, error) {
	headers := schema.Headers
	if len(headers) == 0 {
		// Headerless tables get positional columns sized to the widest row.
		width := 0
		for _, row := range schema.Data {
			if len(row) > width {
				width = len(row)
			}
		}
		if width == 0 {
			return nil, nil, newStructureError("table %q has neither headers nor data", name)
		}
		for i := 0; i < width; i++ {
			headers = append(headers, SchemaHeader{Text: fmt.Sprintf("Column %d", i+1)})
		}
	}

	columns := make([]ColumnDefinition, 0, len(headers))
	for i, header := range headers {
		label := header.Text
		if label == "" {
			label = fmt.Sprintf("Column %d", i+1)
		}
		style, err := header.Style.cellStyle()
		if err != nil {
			return nil, nil, err
		}
		columns = append(columns, ColumnDefinition{
			Key:         fmt.Sprintf("col_%d", i),
			Label:       label,
			HeaderStyle: style,
		})
	}

	// Each coordinate defaults to 1 independently, so a table may set only
	// start_row or only start_column.
	start := Position{Row: schema.StartRow, Col: schema.StartColumn}
	if start.Row == 0 {
		start.Row = 1
	}
	if start.Col == 0 {
		start.Col = 1
	}
	template, err := NewTableTemplate(TableTemplate{
		Name:    name,
		Columns: columns,
		Title:   schema.Title,
		Start:   start,
	})
	if err != nil {
		return nil, nil, err
	}

	tableData := NewTableData()
	for _, row := range schema.Data {
		record := make(Row, len(row))
		for i, value := range row {
			record[fmt.Sprintf("col_%d", i)] = value
		}
		tableData.AddRow(record)
	}
	return template, tableData, nil
}

func (s *SchemaStyle) cellStyle() (*CellStyle, error) {
	if s == nil {
		return nil, nil
	}

	style := &CellStyle{}
	if s.Bold || s.Italic || s.FontSize != 0 || s.FontColor != "" {
		font := &Font{Bold: s.Bold, Italic: s.Italic, Size: s.FontSize}
		if s.FontColor != "" {
			color, err := NewColor(s.FontColor)
			if err != nil {
				return nil, err
			}
			font.Color = color
		}
		style.Font = font
	}
	if s.BackgroundColor != "" {
		color, err := NewColor(s.BackgroundColor)
		if err != nil {
			return nil, err
		}
		style.Fill = &Fill{Pattern: FillSolid, Foreground: color}
	}
	if s.HorizontalAlignment != "" || s.VerticalAlignment != "" {
		style.Alignment = &Alignment{
			Horizontal: HorizontalAlignment(s.HorizontalAlignment),
			Vertical:   VerticalAlignment(s.VerticalAlignment),
		}
	}
	return style, nil
}

// SchemaBuilder renders schema documents directly, keeping the old one-call
// save workflow alive on top of the engine.
type SchemaBuilder struct {
	Template *SpreadsheetTemplate
	Data     *SpreadsheetData

	format string
	engine *Engine
}

// NewSchemaBuilder converts the schema up front so errors surface before
// any rendering happens. An empty format defaults to xlsx.
func NewSchemaBuilder(schema *Schema, format string, engine *Engine) (*SchemaBuilder, error) {
	template, data, err := BuildSchema(schema)
	if err != nil {
		return nil, err
	}
	if engine == nil {
		engine = NewEngine(nil)
	}
	return &SchemaBuilder{Template: template, Data: data, format: format, engine: engine}, nil
}

// Save renders the schema to a file.
func (b *SchemaBuilder) Save(path string) (*RenderStats, error) {
	return b.engine.RenderFile(b.Template, b.Data, path, RenderOptions{Format: b.format})
}

// Bytes renders the schema in memory.
func (b *SchemaBuilder) Bytes() ([]byte, *RenderStats, error) {
	return b.engine.Render(b.Template, b.Data, RenderOptions{Format: b.format})
}
