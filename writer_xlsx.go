package sheetengine

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// XLSXWriter renders the physical model into an xlsx workbook via excelize.
type XLSXWriter struct{}

// NewXLSXWriter creates an XLSX writer.
func NewXLSXWriter() *XLSXWriter {
	return &XLSXWriter{}
}

// xlsxRender wraps an excelize file together with the per-render style
// cache: identical style/number-format combinations reuse one excelize
// style ID instead of growing the stylesheet per cell.
type xlsxRender struct {
	file     *excelize.File
	styleIDs map[string]int
}

// Render translates the spreadsheet into an excelize workbook. The returned
// handle is a *excelize.File.
func (w *XLSXWriter) Render(spreadsheet *Spreadsheet, autofit bool) (WorkbookHandle, error) {
	r := &xlsxRender{file: excelize.NewFile(), styleIDs: make(map[string]int)}

	for i, sheet := range spreadsheet.Sheets {
		if i == 0 {
			if err := r.file.SetSheetName("Sheet1", sheet.Name); err != nil {
				return nil, err
			}
		} else if _, err := r.file.NewSheet(sheet.Name); err != nil {
			return nil, err
		}
		if err := r.renderSheet(sheet, autofit); err != nil {
			return nil, err
		}
	}

	if spreadsheet.ActiveSheet != "" {
		if idx, err := r.file.GetSheetIndex(spreadsheet.ActiveSheet); err == nil && idx >= 0 {
			r.file.SetActiveSheet(idx)
		}
	}
	if err := r.applyDocProps(spreadsheet.Metadata); err != nil {
		return nil, err
	}
	return r.file, nil
}

func (r *xlsxRender) renderSheet(sheet *Sheet, autofit bool) error {
	for _, table := range sheet.Tables {
		if err := r.renderTable(sheet.Name, table); err != nil {
			return err
		}
	}
	for pos, cell := range sheet.Cells {
		if err := r.writeCell(sheet.Name, pos, cell); err != nil {
			return err
		}
	}
	for _, scoped := range sheet.Rules {
		if err := r.applyRule(sheet.Name, scoped); err != nil {
			return err
		}
	}

	if sheet.FreezePanes != nil {
		panes := &excelize.Panes{
			Freeze:      true,
			XSplit:      sheet.FreezePanes.Col - 1,
			YSplit:      sheet.FreezePanes.Row - 1,
			TopLeftCell: sheet.FreezePanes.Name(),
			ActivePane:  "bottomRight",
		}
		if err := r.file.SetPanes(sheet.Name, panes); err != nil {
			return err
		}
	}

	for col, width := range sheet.ColumnWidths {
		name, err := excelize.ColumnNumberToName(col)
		if err != nil {
			return err
		}
		if err := r.file.SetColWidth(sheet.Name, name, name, width); err != nil {
			return err
		}
	}
	for row, height := range sheet.RowHeights {
		if err := r.file.SetRowHeight(sheet.Name, row, height); err != nil {
			return err
		}
	}

	if sheet.DefaultColWidth > 0 || sheet.DefaultRowHeight > 0 {
		props := excelize.SheetPropsOptions{}
		if sheet.DefaultColWidth > 0 {
			props.DefaultColWidth = &sheet.DefaultColWidth
		}
		if sheet.DefaultRowHeight > 0 {
			props.DefaultRowHeight = &sheet.DefaultRowHeight
		}
		if err := r.file.SetSheetProps(sheet.Name, &props); err != nil {
			return err
		}
	}

	showGrid := sheet.ShowGridlines
	zoom := float64(sheet.ZoomScale)
	view := excelize.ViewOptions{ShowGridLines: &showGrid}
	if zoom > 0 {
		view.ZoomScale = &zoom
	}
	if err := r.file.SetSheetView(sheet.Name, 0, &view); err != nil {
		return err
	}

	if autofit {
		return r.autofitColumns(sheet)
	}
	return nil
}

func (r *xlsxRender) renderTable(sheetName string, table *Table) error {
	row := table.Start.Row
	startCol := table.Start.Col

	if table.HasTitle() {
		if err := r.writeCell(sheetName, Position{Row: row, Col: startCol}, *table.Title); err != nil {
			return err
		}
		if table.ColumnCount() > 1 {
			start := Position{Row: row, Col: startCol}
			end := Position{Row: row, Col: startCol + table.ColumnCount() - 1}
			if err := r.file.MergeCell(sheetName, start.Name(), end.Name()); err != nil {
				return err
			}
		}
		row++
	}

	if table.HasHeaders() {
		for i, header := range table.Headers {
			if err := r.writeCell(sheetName, Position{Row: row, Col: startCol + i}, header); err != nil {
				return err
			}
		}
		row++
	}

	for _, cells := range table.Cells {
		for i, cell := range cells {
			if err := r.writeCell(sheetName, Position{Row: row, Col: startCol + i}, cell); err != nil {
				return err
			}
		}
		row++
	}
	return nil
}

func (r *xlsxRender) writeCell(sheetName string, pos Position, cell Cell) error {
	ref := pos.Name()

	if cell.IsFormula() && cell.Formula != "" {
		if err := r.file.SetCellFormula(sheetName, ref, cell.Formula); err != nil {
			return err
		}
		// Keep the cached result alongside the formula so viewers that do
		// not recalculate still show a value.
		if cell.Value != nil {
			if err := r.file.SetCellValue(sheetName, ref, cell.Value); err != nil {
				return err
			}
		}
	} else if cell.Value != nil {
		if err := r.file.SetCellValue(sheetName, ref, cell.Value); err != nil {
			return err
		}
	}

	if cell.Style != nil || cell.NumberFormat != "" {
		styleID, err := r.styleID(cell.Style, cell.NumberFormat)
		if err != nil {
			return err
		}
		if err := r.file.SetCellStyle(sheetName, ref, ref, styleID); err != nil {
			return err
		}
	}

	if cell.Hyperlink != "" {
		if err := r.file.SetCellHyperLink(sheetName, ref, cell.Hyperlink, "External"); err != nil {
			return err
		}
	}
	if cell.Comment != "" {
		comment := excelize.Comment{
			Cell:      ref,
			Author:    "sheetengine",
			Paragraph: []excelize.RichTextRun{{Text: cell.Comment}},
		}
		if err := r.file.AddComment(sheetName, comment); err != nil {
			return err
		}
	}
	return nil
}

// styleID resolves (style, numberFormat) to an excelize style ID, reusing
// cached IDs for repeated combinations.
func (r *xlsxRender) styleID(style *CellStyle, numberFormat string) (int, error) {
	key := styleKey(style, numberFormat)
	if id, ok := r.styleIDs[key]; ok {
		return id, nil
	}
	id, err := r.file.NewStyle(mapStyle(style, numberFormat))
	if err != nil {
		return 0, err
	}
	r.styleIDs[key] = id
	return id, nil
}

func styleKey(style *CellStyle, numberFormat string) string {
	if style == nil {
		return "|" + numberFormat
	}
	return fmt.Sprintf("%+v|%+v|%+v|%+v|%s|%s",
		style.Font, style.Fill, style.Border, style.Alignment, style.NumberFormat, numberFormat)
}

var borderStyleCodes = map[BorderStyle]int{
	BorderThin:       1,
	BorderMedium:     2,
	BorderDashed:     3,
	BorderDotted:     4,
	BorderThick:      5,
	BorderDouble:     6,
	BorderDashDot:    9,
	BorderDashDotDot: 11,
}

var fillPatternCodes = map[FillPattern]int{
	FillSolid:           1,
	FillDarkGray:        3,
	FillLightGray:       4,
	FillDarkHorizontal:  5,
	FillDarkVertical:    6,
	FillDarkDown:        7,
	FillDarkUp:          8,
	FillDarkGrid:        9,
	FillDarkTrellis:     10,
	FillLightHorizontal: 11,
	FillLightVertical:   12,
	FillLightDown:       13,
	FillLightUp:         14,
	FillLightGrid:       15,
	FillLightTrellis:    16,
	FillGray125:         17,
	FillGray0625:        18,
}

// mapStyle translates a CellStyle plus an effective number format into an
// excelize style definition. The cell-level number format wins over the
// style-level one.
func mapStyle(style *CellStyle, numberFormat string) *excelize.Style {
	out := &excelize.Style{}
	if style != nil {
		if style.Font != nil {
			font := &excelize.Font{
				Bold:   style.Font.Bold,
				Italic: style.Font.Italic,
				Strike: style.Font.Strikethrough,
				Family: style.Font.Family,
				Size:   style.Font.Size,
				Color:  string(style.Font.Color),
			}
			if style.Font.Underline == UnderlineSingle || style.Font.Underline == UnderlineDouble {
				font.Underline = string(style.Font.Underline)
			}
			out.Font = font
		}
		if style.Fill != nil && style.Fill.Pattern != FillNone {
			fill := excelize.Fill{Type: "pattern", Pattern: fillPatternCodes[style.Fill.Pattern]}
			if style.Fill.Foreground != "" {
				fill.Color = []string{string(style.Fill.Foreground)}
			}
			out.Fill = fill
		}
		if style.Border != nil {
			out.Border = mapBorder(style.Border)
		}
		if style.Alignment != nil {
			out.Alignment = &excelize.Alignment{
				Horizontal:   string(style.Alignment.Horizontal),
				Vertical:     string(style.Alignment.Vertical),
				WrapText:     style.Alignment.WrapText,
				ShrinkToFit:  style.Alignment.ShrinkToFit,
				Indent:       style.Alignment.Indent,
				TextRotation: style.Alignment.TextRotation,
			}
		}
		if numberFormat == "" {
			numberFormat = style.NumberFormat
		}
	}
	if numberFormat != "" && numberFormat != FmtGeneral {
		out.CustomNumFmt = &numberFormat
	}
	return out
}

func mapBorder(border *Border) []excelize.Border {
	color := string(border.Color)
	if color == "" {
		color = "000000"
	}
	var out []excelize.Border
	sides := []struct {
		name  string
		style BorderStyle
	}{
		{"left", border.Left},
		{"right", border.Right},
		{"top", border.Top},
		{"bottom", border.Bottom},
	}
	for _, side := range sides {
		if side.style == "" || side.style == BorderNone {
			continue
		}
		out = append(out, excelize.Border{Type: side.name, Color: color, Style: borderStyleCodes[side.style]})
	}
	return out
}

var cellValueCriteria = map[CellValueOperator]string{
	OpEqual:          "==",
	OpNotEqual:       "!=",
	OpGreaterThan:    ">",
	OpGreaterOrEqual: ">=",
	OpLessThan:       "<",
	OpLessOrEqual:    "<=",
	OpBetween:        "between",
	OpNotBetween:     "not between",
}

// applyRule translates one range-scoped conditional rule.
func (r *xlsxRender) applyRule(sheetName string, scoped RangedRule) error {
	rule := scoped.Rule
	opts := excelize.ConditionalFormatOptions{StopIfTrue: rule.StopIfTrue}

	if rule.Style != nil {
		id, err := r.styleID(rule.Style, "")
		if err != nil {
			return err
		}
		opts.Format = &id
	}

	switch rule.Type {
	case RuleCellValue:
		opts.Type = "cell"
		opts.Criteria = cellValueCriteria[rule.Operator]
		if rule.Operator == OpBetween || rule.Operator == OpNotBetween {
			opts.MinValue = rule.Value
			opts.MaxValue = rule.Value2
		} else {
			opts.Value = rule.Value
		}
	case RuleFormula:
		opts.Type = "formula"
		opts.Criteria = rule.Formula
	case RuleColorScale:
		scale := rule.ColorScale
		minType, maxType := "min", "max"
		opts.MinType, opts.MaxType = minType, maxType
		opts.MinColor = string(scale.MinColor)
		opts.MaxColor = string(scale.MaxColor)
		if scale.MinValue != "" {
			opts.MinType = "num"
			opts.MinValue = scale.MinValue
		}
		if scale.MaxValue != "" {
			opts.MaxType = "num"
			opts.MaxValue = scale.MaxValue
		}
		if scale.MidColor != "" {
			opts.Type = "3_color_scale"
			opts.MidType = "percentile"
			opts.MidValue = "50"
			opts.MidColor = string(scale.MidColor)
			if scale.MidValue != "" {
				opts.MidType = "num"
				opts.MidValue = scale.MidValue
			}
		} else {
			opts.Type = "2_color_scale"
		}
	case RuleDataBar:
		bar := rule.DataBar
		opts.Type = "data_bar"
		opts.MinType, opts.MaxType = "min", "max"
		opts.BarColor = string(bar.Color)
		opts.BarOnly = !bar.ShowValue
		if bar.MinValue != "" {
			opts.MinType = "num"
			opts.MinValue = bar.MinValue
		}
		if bar.MaxValue != "" {
			opts.MaxType = "num"
			opts.MaxValue = bar.MaxValue
		}
	case RuleIconSet:
		icons := rule.IconSet
		opts.Type = "icon_set"
		opts.IconStyle = string(icons.Type)
		opts.ReverseIcons = icons.Reverse
		opts.IconsOnly = !icons.ShowValue
	case RuleTop10:
		opts.Type = "top"
		opts.Value = rule.Value
		if opts.Value == "" {
			opts.Value = "10"
		}
	case RuleDuplicateValues:
		opts.Type = "duplicate"
	case RuleUniqueValues:
		opts.Type = "unique"
	case RuleAboveAverage:
		opts.Type = "average"
		opts.AboveAverage = true
	case RuleBelowAverage:
		opts.Type = "average"
	case RuleContainsText:
		opts.Type = "text"
		opts.Criteria = "containing"
		opts.Value = rule.Text
	case RuleNotContainsText:
		opts.Type = "text"
		opts.Criteria = "not containing"
		opts.Value = rule.Text
	case RuleBeginsWith:
		opts.Type = "text"
		opts.Criteria = "begins with"
		opts.Value = rule.Text
	case RuleEndsWith:
		opts.Type = "text"
		opts.Criteria = "ends with"
		opts.Value = rule.Text
	case RuleContainsBlanks:
		opts.Type = "blanks"
	case RuleNotContainsBlank:
		opts.Type = "no_blanks"
	default:
		return newRuleValidationError("rule type %q not supported by the xlsx writer", rule.Type)
	}

	return r.file.SetConditionalFormat(sheetName, scoped.Range.Name(), []excelize.ConditionalFormatOptions{opts})
}

// autofitColumns sizes columns from the longest rendered value, clamped to
// [10, 50] characters plus padding.
func (r *xlsxRender) autofitColumns(sheet *Sheet) error {
	widths := make(map[int]int)
	note := func(col int, value interface{}) {
		if value == nil {
			return
		}
		if n := len(fmt.Sprintf("%v", value)); n > widths[col] {
			widths[col] = n
		}
	}

	for _, table := range sheet.Tables {
		for i, header := range table.Headers {
			note(table.Start.Col+i, header.Value)
		}
		for _, row := range table.Cells {
			for i, cell := range row {
				note(table.Start.Col+i, cell.Value)
			}
		}
	}
	for pos, cell := range sheet.Cells {
		note(pos.Col, cell.Value)
	}

	for col, length := range widths {
		width := float64(length + 2)
		if width < 10 {
			width = 10
		}
		if width > 50 {
			width = 50
		}
		// Explicit template widths win over autofit.
		if _, fixed := sheet.ColumnWidths[col]; fixed {
			continue
		}
		name, err := excelize.ColumnNumberToName(col)
		if err != nil {
			return err
		}
		if err := r.file.SetColWidth(sheet.Name, name, name, width); err != nil {
			return err
		}
	}
	return nil
}

func (r *xlsxRender) applyDocProps(metadata map[string]string) error {
	if len(metadata) == 0 {
		return nil
	}
	props := excelize.DocProperties{
		Title:       metadata["title"],
		Creator:     metadata["creator"],
		Description: metadata["description"],
		Subject:     metadata["subject"],
		Keywords:    metadata["keywords"],
		Category:    metadata["category"],
		Version:     metadata["version"],
	}
	return r.file.SetDocProps(&props)
}

// Bytes serializes the workbook.
func (w *XLSXWriter) Bytes(handle WorkbookHandle) ([]byte, error) {
	file, err := xlsxFile(handle)
	if err != nil {
		return nil, err
	}
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile saves the workbook to path atomically.
func (w *XLSXWriter) WriteFile(handle WorkbookHandle, path string) error {
	data, err := w.Bytes(handle)
	if err != nil {
		return err
	}
	return writeFileAtomic(path, data)
}

// WriteTo streams the workbook to wr.
func (w *XLSXWriter) WriteTo(handle WorkbookHandle, wr io.Writer) error {
	file, err := xlsxFile(handle)
	if err != nil {
		return err
	}
	return file.Write(wr)
}

func xlsxFile(handle WorkbookHandle) (*excelize.File, error) {
	file, ok := handle.(*excelize.File)
	if !ok {
		return nil, fmt.Errorf("xlsx writer: unexpected workbook handle %T", handle)
	}
	return file, nil
}
