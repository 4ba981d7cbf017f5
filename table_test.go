package sheetengine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTable(t *testing.T) {
	cells := [][]Cell{
		{TextCell("a", nil), NumberCell(1, "", nil)},
		{TextCell("b", nil), NumberCell(2, "", nil)},
	}
	headers := []Cell{TextCell("name", nil), TextCell("value", nil)}

	table, err := NewTable(cells, headers, nil, Position{})
	require.NoError(t, err)
	assert.Equal(t, 2, table.RowCount())
	assert.Equal(t, 2, table.ColumnCount())
	assert.True(t, table.HasHeaders())
	assert.False(t, table.HasTitle())
	// Zero start defaults to the sheet origin.
	assert.Equal(t, Position{Row: 1, Col: 1}, table.Start)
}

func TestNewTableJaggedRows(t *testing.T) {
	cells := [][]Cell{
		{TextCell("a", nil), TextCell("b", nil)},
		{TextCell("c", nil)},
	}
	_, err := NewTable(cells, nil, nil, Position{})
	assert.ErrorIs(t, err, ErrStructure)
}

func TestNewTableInvalidStart(t *testing.T) {
	_, err := NewTable(nil, nil, nil, Position{Row: -1, Col: 1})
	assert.ErrorIs(t, err, ErrInvalidPosition)
}

func TestTableFromRows(t *testing.T) {
	table, err := TableFromRows(
		[][]interface{}{{"alpha", 10}, {"beta", 20}},
		[]string{"name", "count"},
		"Counts",
	)
	require.NoError(t, err)
	assert.True(t, table.HasTitle())
	assert.Equal(t, "Counts", table.Title.Value)
	assert.Equal(t, TypeString, table.Cells[0][0].DataType)
	assert.Equal(t, TypeNumber, table.Cells[0][1].DataType)
}

func TestTableRowsUsed(t *testing.T) {
	body := [][]Cell{{BlankCell()}, {BlankCell()}, {BlankCell()}}
	headers := []Cell{TextCell("h", nil)}
	title := TextCell("T", nil)

	bare, err := NewTable(body, nil, nil, Position{})
	require.NoError(t, err)
	assert.Equal(t, 3, bare.RowsUsed())

	withHeaders, err := NewTable(body, headers, nil, Position{})
	require.NoError(t, err)
	assert.Equal(t, 4, withHeaders.RowsUsed())

	full, err := NewTable(body, headers, &title, Position{})
	require.NoError(t, err)
	assert.Equal(t, 5, full.RowsUsed())
}

func TestTableColumnCountHeaderFallback(t *testing.T) {
	headers := []Cell{TextCell("a", nil), TextCell("b", nil), TextCell("c", nil)}
	table, err := NewTable(nil, headers, nil, Position{})
	require.NoError(t, err)
	assert.Equal(t, 0, table.RowCount())
	assert.Equal(t, 3, table.ColumnCount())
}

func TestTableApplyRowStyle(t *testing.T) {
	body := [][]Cell{
		{TextCell("a", &CellStyle{Font: &Font{Bold: true}})},
		{TextCell("b", nil)},
	}
	table, err := NewTable(body, nil, nil, Position{})
	require.NoError(t, err)

	stripe := &CellStyle{Fill: &Fill{Pattern: FillSolid, Foreground: "F2F2F2"}}
	table.ApplyRowStyle(0, stripe)

	// Row 0 keeps its font and gains the fill.
	assert.True(t, table.Cells[0][0].Style.Font.Bold)
	assert.Equal(t, Color("F2F2F2"), table.Cells[0][0].Style.Fill.Foreground)
	assert.Nil(t, table.Cells[1][0].Style)

	// Out-of-range rows are a no-op, not a panic.
	table.ApplyRowStyle(5, stripe)
	table.ApplyRowStyle(-1, stripe)
}
