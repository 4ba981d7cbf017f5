package sheetengine

import (
	"strings"
	"time"
)

// CellDataType tags the interpretation of a cell's value.
type CellDataType string

const (
	TypeString   CellDataType = "string"
	TypeNumber   CellDataType = "number"
	TypeBoolean  CellDataType = "boolean"
	TypeDate     CellDataType = "date"
	TypeDatetime CellDataType = "datetime"
	TypeTime     CellDataType = "time"
	TypeFormula  CellDataType = "formula"
	TypeError    CellDataType = "error"
	TypeBlank    CellDataType = "blank"
)

// Cell is a single immutable spreadsheet cell. Style and data changes produce
// new Cell values; the merge engine and writers never mutate a Cell in place.
type Cell struct {
	Value        interface{}
	Formula      string
	Style        *CellStyle
	NumberFormat string
	DataType     CellDataType
	Comment      string
	Hyperlink    string
}

// NewCell builds a cell, inferring the data type when c.DataType is empty
// and normalizing a non-empty formula to start with "=".
func NewCell(c Cell) Cell {
	if c.Formula != "" && !strings.HasPrefix(c.Formula, "=") {
		c.Formula = "=" + c.Formula
	}
	if c.DataType == "" {
		c.DataType = inferDataType(c.Value, c.Formula)
	}
	return c
}

func inferDataType(value interface{}, formula string) CellDataType {
	if formula != "" {
		return TypeFormula
	}
	switch v := value.(type) {
	case nil:
		return TypeBlank
	case string:
		if v == "" {
			return TypeBlank
		}
		return TypeString
	case bool:
		return TypeBoolean
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return TypeNumber
	case time.Time:
		return TypeDatetime
	default:
		return TypeString
	}
}

// BlankCell creates an empty cell.
func BlankCell() Cell {
	return Cell{DataType: TypeBlank}
}

// TextCell creates a string cell with an optional style.
func TextCell(value string, style *CellStyle) Cell {
	return Cell{Value: value, DataType: TypeString, Style: style}
}

// NumberCell creates a numeric cell with an optional number format and style.
func NumberCell(value float64, numberFormat string, style *CellStyle) Cell {
	return Cell{Value: value, DataType: TypeNumber, NumberFormat: numberFormat, Style: style}
}

// CurrencyCell creates a numeric cell formatted as the given currency,
// defaulting to the currency preset style.
func CurrencyCell(value float64, currencyCode string, style *CellStyle) Cell {
	if style == nil {
		style = CurrencyStyle()
	}
	return Cell{
		Value:        value,
		DataType:     TypeNumber,
		NumberFormat: CurrencyFormat(currencyCode),
		Style:        style,
	}
}

// PercentageCell creates a numeric cell with a percentage format of the
// given decimal precision (0-2), defaulting to the percentage preset style.
func PercentageCell(value float64, decimals int, style *CellStyle) Cell {
	format := FmtPercentage2
	switch decimals {
	case 0:
		format = FmtPercentage
	case 1:
		format = FmtPercentage1
	}
	if style == nil {
		style = PercentageStyle()
	}
	return Cell{Value: value, DataType: TypeNumber, NumberFormat: format, Style: style}
}

// FormulaCell creates a formula cell with an optional cached display value.
// The formula is normalized to start with "=".
func FormulaCell(formula string, cachedValue interface{}, numberFormat string, style *CellStyle) Cell {
	return NewCell(Cell{
		Value:        cachedValue,
		Formula:      formula,
		DataType:     TypeFormula,
		NumberFormat: numberFormat,
		Style:        style,
	})
}

// DateCell creates a date cell with the given display format.
func DateCell(value interface{}, dateFormat string, style *CellStyle) Cell {
	if dateFormat == "" {
		dateFormat = FmtDateBR
	}
	return Cell{Value: value, DataType: TypeDate, NumberFormat: dateFormat, Style: style}
}

// WithStyle returns a copy of the cell carrying the given style.
func (c Cell) WithStyle(style *CellStyle) Cell {
	c.Style = style
	return c
}

// WithNumberFormat returns a copy of the cell carrying the given format.
func (c Cell) WithNumberFormat(format string) Cell {
	c.NumberFormat = format
	return c
}

// MergeStyle returns a copy of the cell whose style is the cell's style
// overridden field-wise by the given style. A nil override returns the cell
// unchanged.
func (c Cell) MergeStyle(style *CellStyle) Cell {
	if style == nil {
		return c
	}
	c.Style = c.Style.Merge(style)
	return c
}

// IsBlank reports whether the cell holds no value.
func (c Cell) IsBlank() bool {
	return c.DataType == TypeBlank
}

// IsFormula reports whether the cell carries a formula.
func (c Cell) IsFormula() bool {
	return c.DataType == TypeFormula || c.Formula != ""
}
