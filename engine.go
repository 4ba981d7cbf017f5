package sheetengine

import (
	"io"
	"time"
)

// RenderOptions tunes a single render call.
type RenderOptions struct {
	// Format selects the registered writer. Empty defaults to "xlsx".
	Format string
	// Autofit sizes columns from content where the format supports it.
	Autofit bool
}

func (o RenderOptions) format() string {
	if o.Format == "" {
		return "xlsx"
	}
	return o.Format
}

// RenderStats summarizes one render: model sizes and phase timings. Stats
// are returned to the caller instead of being logged; the engine itself
// performs no I/O beyond what the writer does.
type RenderStats struct {
	Format       string
	SheetCount   int
	TableCount   int
	RowCount     int
	CellCount    int
	FormulaCount int
	MergeTime    time.Duration
	RenderTime   time.Duration
}

// Engine orchestrates merge, writer lookup and serialization. The writer
// registry is supplied by the caller; a nil registry falls back to the
// built-in formats.
type Engine struct {
	writers *WriterRegistry
}

// NewEngine creates an engine over the given registry, or the default
// registry when nil.
func NewEngine(writers *WriterRegistry) *Engine {
	if writers == nil {
		writers = NewWriterRegistry()
	}
	return &Engine{writers: writers}
}

// Writers exposes the engine's registry, e.g. for capability queries.
func (e *Engine) Writers() *WriterRegistry {
	return e.writers
}

// Render merges template and data and serializes the result to bytes.
func (e *Engine) Render(template *SpreadsheetTemplate, data *SpreadsheetData, opts RenderOptions) ([]byte, *RenderStats, error) {
	spreadsheet, writer, stats, err := e.prepare(template, data, opts)
	if err != nil {
		return nil, nil, err
	}
	start := time.Now()
	handle, err := writer.Render(spreadsheet, opts.Autofit)
	if err != nil {
		return nil, nil, err
	}
	out, err := writer.Bytes(handle)
	if err != nil {
		return nil, nil, err
	}
	stats.RenderTime = time.Since(start)
	return out, stats, nil
}

// RenderFile merges template and data and writes the result to path.
func (e *Engine) RenderFile(template *SpreadsheetTemplate, data *SpreadsheetData, path string, opts RenderOptions) (*RenderStats, error) {
	spreadsheet, writer, stats, err := e.prepare(template, data, opts)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	handle, err := writer.Render(spreadsheet, opts.Autofit)
	if err != nil {
		return nil, err
	}
	if err := writer.WriteFile(handle, path); err != nil {
		return nil, err
	}
	stats.RenderTime = time.Since(start)
	return stats, nil
}

// RenderTo merges template and data and streams the result to w.
func (e *Engine) RenderTo(template *SpreadsheetTemplate, data *SpreadsheetData, w io.Writer, opts RenderOptions) (*RenderStats, error) {
	spreadsheet, writer, stats, err := e.prepare(template, data, opts)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	handle, err := writer.Render(spreadsheet, opts.Autofit)
	if err != nil {
		return nil, err
	}
	if err := writer.WriteTo(handle, w); err != nil {
		return nil, err
	}
	stats.RenderTime = time.Since(start)
	return stats, nil
}

func (e *Engine) prepare(template *SpreadsheetTemplate, data *SpreadsheetData, opts RenderOptions) (*Spreadsheet, Writer, *RenderStats, error) {
	writer, err := e.writers.Lookup(opts.format())
	if err != nil {
		return nil, nil, nil, err
	}

	start := time.Now()
	spreadsheet, err := MergeSpreadsheet(template, data)
	if err != nil {
		return nil, nil, nil, err
	}
	stats := collectStats(spreadsheet)
	stats.Format = opts.format()
	stats.MergeTime = time.Since(start)
	return spreadsheet, writer, stats, nil
}

func collectStats(spreadsheet *Spreadsheet) *RenderStats {
	stats := &RenderStats{SheetCount: len(spreadsheet.Sheets)}
	for _, sheet := range spreadsheet.Sheets {
		stats.TableCount += len(sheet.Tables)
		stats.CellCount += len(sheet.Cells)
		for _, table := range sheet.Tables {
			stats.RowCount += table.RowCount()
			for _, row := range table.Cells {
				stats.CellCount += len(row)
				for _, cell := range row {
					if cell.IsFormula() {
						stats.FormulaCount++
					}
				}
			}
		}
	}
	return stats
}
