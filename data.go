package sheetengine

// TableData holds the runtime rows for one table. For sectioned tables the
// rows live in SectionRows keyed by section key; unsectioned tables use
// Rows. Computed holds per-key value functions consulted before the plain
// key lookup. TableData carries no layout information.
type TableData struct {
	Rows        []Row
	SectionRows map[string][]Row
	Computed    map[string]ComputedFunc
	Metadata    map[string]string
}

// NewTableData creates empty table data.
func NewTableData() *TableData {
	return &TableData{
		SectionRows: make(map[string][]Row),
		Computed:    make(map[string]ComputedFunc),
		Metadata:    make(map[string]string),
	}
}

// TableDataFromRows creates table data from a plain row slice.
func TableDataFromRows(rows []Row) *TableData {
	data := NewTableData()
	data.Rows = rows
	return data
}

// AddRow appends one data row.
func (d *TableData) AddRow(row Row) {
	d.Rows = append(d.Rows, row)
}

// AddRows appends multiple data rows.
func (d *TableData) AddRows(rows ...Row) {
	d.Rows = append(d.Rows, rows...)
}

// SetSectionRows binds rows to a section key.
func (d *TableData) SetSectionRows(sectionKey string, rows []Row) {
	if d.SectionRows == nil {
		d.SectionRows = make(map[string][]Row)
	}
	d.SectionRows[sectionKey] = rows
}

// Section returns the rows bound to a section key, or nil.
func (d *TableData) Section(sectionKey string) []Row {
	return d.SectionRows[sectionKey]
}

// SetComputed registers a computed value function for a column key.
func (d *TableData) SetComputed(key string, fn ComputedFunc) {
	if d.Computed == nil {
		d.Computed = make(map[string]ComputedFunc)
	}
	d.Computed[key] = fn
}

// Value resolves the value for a key within a row, consulting the computed
// functions first. Keys absent from the row resolve to nil.
func (d *TableData) Value(key string, row Row) interface{} {
	if fn, ok := d.Computed[key]; ok {
		return fn(row)
	}
	return row[key]
}

// RowCount returns the number of plain (unsectioned) rows.
func (d *TableData) RowCount() int {
	return len(d.Rows)
}

// IsEmpty reports whether the data holds neither plain nor sectioned rows.
func (d *TableData) IsEmpty() bool {
	return len(d.Rows) == 0 && len(d.SectionRows) == 0
}

// defaultChunkSize bounds how many rows the merge engine materializes per
// batch when walking large row sets. Batch boundaries never change output.
const defaultChunkSize = 1000

// chunks splits rows into batches of at most size rows, preserving order.
func chunks(rows []Row, size int) [][]Row {
	if size <= 0 {
		size = defaultChunkSize
	}
	var out [][]Row
	for start := 0; start < len(rows); start += size {
		end := start + size
		if end > len(rows) {
			end = len(rows)
		}
		out = append(out, rows[start:end])
	}
	return out
}

// SheetData holds the runtime data for all tables of one sheet, keyed by
// table name.
type SheetData struct {
	Tables   map[string]*TableData
	Metadata map[string]string
}

// NewSheetData creates empty sheet data.
func NewSheetData() *SheetData {
	return &SheetData{
		Tables:   make(map[string]*TableData),
		Metadata: make(map[string]string),
	}
}

// SetTable binds table data to a table name.
func (d *SheetData) SetTable(tableName string, data *TableData) {
	if d.Tables == nil {
		d.Tables = make(map[string]*TableData)
	}
	d.Tables[tableName] = data
}

// Table returns the data for a table name, or nil when absent.
func (d *SheetData) Table(tableName string) *TableData {
	return d.Tables[tableName]
}

// IsEmpty reports whether all bound tables are empty.
func (d *SheetData) IsEmpty() bool {
	for _, t := range d.Tables {
		if !t.IsEmpty() {
			return false
		}
	}
	return true
}

// SpreadsheetData holds the runtime data for a whole workbook, keyed by
// sheet name. Templates referencing names absent from the data merge
// against empty collections, never an error.
type SpreadsheetData struct {
	Sheets   map[string]*SheetData
	Metadata map[string]string
}

// NewSpreadsheetData creates empty workbook data.
func NewSpreadsheetData() *SpreadsheetData {
	return &SpreadsheetData{
		Sheets:   make(map[string]*SheetData),
		Metadata: make(map[string]string),
	}
}

// SetSheet binds sheet data to a sheet name.
func (d *SpreadsheetData) SetSheet(sheetName string, data *SheetData) {
	if d.Sheets == nil {
		d.Sheets = make(map[string]*SheetData)
	}
	d.Sheets[sheetName] = data
}

// Sheet returns the data for a sheet name, or nil when absent.
func (d *SpreadsheetData) Sheet(sheetName string) *SheetData {
	return d.Sheets[sheetName]
}

// SimpleData builds workbook data with a single sheet holding a single
// table.
func SimpleData(sheetName, tableName string, rows []Row) *SpreadsheetData {
	sheet := NewSheetData()
	sheet.SetTable(tableName, TableDataFromRows(rows))
	data := NewSpreadsheetData()
	data.SetSheet(sheetName, sheet)
	return data
}
