package sheetengine

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func csvSpreadsheet(t *testing.T) *Spreadsheet {
	t.Helper()
	template := revenueTemplate(t)
	data := SimpleData("Revenue", "revenue", []Row{
		{"account": "Sales", "value": 1000.5, "percent": 0.8},
		{"account": "Services", "value": 250.0, "percent": 0.2},
	})
	spreadsheet, err := MergeSpreadsheet(template, data)
	require.NoError(t, err)
	return spreadsheet
}

func TestCSVWriterRender(t *testing.T) {
	w := NewCSVWriter()
	handle, err := w.Render(csvSpreadsheet(t), false)
	require.NoError(t, err)

	data, err := w.Bytes(handle)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Account,Value,%", lines[0])
	assert.Equal(t, "Sales,1000.5,0.8", lines[1])
	assert.Equal(t, "Services,250,0.2", lines[2])
	// Tables end with a blank separator row.
	assert.Equal(t, "", lines[3])
}

func TestCSVWriterTitleRow(t *testing.T) {
	table, err := NewTableTemplate(TableTemplate{
		Name:    "t",
		Title:   "Quarterly",
		Columns: []ColumnDefinition{{Key: "a", Label: "A"}},
	})
	require.NoError(t, err)
	sheet, err := NewSheetTemplate(SheetTemplate{Name: "S", Tables: []*TableTemplate{table}})
	require.NoError(t, err)
	template, err := NewSpreadsheetTemplate(SpreadsheetTemplate{Sheets: []*SheetTemplate{sheet}})
	require.NoError(t, err)

	spreadsheet, err := MergeSpreadsheet(template, SimpleData("S", "t", []Row{{"a": 1}}))
	require.NoError(t, err)

	w := NewCSVWriter()
	handle, err := w.Render(spreadsheet, false)
	require.NoError(t, err)
	data, err := w.Bytes(handle)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(string(data), "# Quarterly\n"))
}

func TestCSVWriterFirstSheetOnly(t *testing.T) {
	spreadsheet := csvSpreadsheet(t)
	second, err := NewSheet("Second")
	require.NoError(t, err)
	extra, err := TableFromRows([][]interface{}{{"hidden"}}, nil, "")
	require.NoError(t, err)
	second.AddTable(extra)
	require.NoError(t, spreadsheet.AddSheet(second))

	w := NewCSVWriter()
	handle, err := w.Render(spreadsheet, false)
	require.NoError(t, err)
	data, err := w.Bytes(handle)
	require.NoError(t, err)

	assert.NotContains(t, string(data), "hidden")
}

func TestCSVWriterCustomDelimiter(t *testing.T) {
	w := &CSVWriter{Comma: ';'}
	handle, err := w.Render(csvSpreadsheet(t), false)
	require.NoError(t, err)
	data, err := w.Bytes(handle)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(string(data), "Account;Value;%"))
}

func TestCSVWriterEncoding(t *testing.T) {
	table, err := NewTableTemplate(TableTemplate{
		Name:    "t",
		Columns: []ColumnDefinition{{Key: "a", Label: "Descrição"}},
	})
	require.NoError(t, err)
	sheet, err := NewSheetTemplate(SheetTemplate{Name: "S", Tables: []*TableTemplate{table}})
	require.NoError(t, err)
	template, err := NewSpreadsheetTemplate(SpreadsheetTemplate{Sheets: []*SheetTemplate{sheet}})
	require.NoError(t, err)
	spreadsheet, err := MergeSpreadsheet(template, SimpleData("S", "t", []Row{{"a": "ação"}}))
	require.NoError(t, err)

	w := &CSVWriter{Encoding: charmap.ISO8859_1}
	handle, err := w.Render(spreadsheet, false)
	require.NoError(t, err)
	data, err := w.Bytes(handle)
	require.NoError(t, err)

	// Latin-1 encodes ç as a single 0xE7 byte.
	assert.True(t, bytes.Contains(data, []byte{0xE7, 0xE3, 0x6F}))
	assert.False(t, bytes.Contains(data, []byte("ção")))
}

func TestCSVWriterBlankCells(t *testing.T) {
	spreadsheet := NewSpreadsheet()
	sheet, err := NewSheet("S")
	require.NoError(t, err)
	table, err := NewTable([][]Cell{{TextCell("x", nil), BlankCell(), NumberCell(1, "", nil)}}, nil, nil, Position{})
	require.NoError(t, err)
	sheet.AddTable(table)
	require.NoError(t, spreadsheet.AddSheet(sheet))

	w := NewCSVWriter()
	handle, err := w.Render(spreadsheet, false)
	require.NoError(t, err)
	data, err := w.Bytes(handle)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "x,,1"))
}

func TestCSVWriterEmptySpreadsheet(t *testing.T) {
	w := NewCSVWriter()
	handle, err := w.Render(NewSpreadsheet(), false)
	require.NoError(t, err)
	data, err := w.Bytes(handle)
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestCSVWriterWriteFileAndTo(t *testing.T) {
	w := NewCSVWriter()
	handle, err := w.Render(csvSpreadsheet(t), false)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, w.WriteFile(handle, path))
	fromFile, err := os.ReadFile(path)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, w.WriteTo(handle, &buf))
	assert.Equal(t, fromFile, buf.Bytes())

	// Handles from other writers are rejected.
	_, err = w.Bytes(struct{}{})
	assert.Error(t, err)
}
