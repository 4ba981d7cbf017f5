package sheetengine

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// CSVWriter renders the first sheet of the physical model as CSV. Styling,
// formulas and additional sheets are outside what the format can carry:
// formula cells emit their cached value, titles become "# title" comment
// rows, and tables are separated by one blank row.
type CSVWriter struct {
	// Comma overrides the field delimiter. Zero means ','.
	Comma rune
	// Encoding transcodes the UTF-8 output when set, e.g. a charmap
	// encoder for consumers expecting a legacy code page.
	Encoding encoding.Encoding
}

// NewCSVWriter creates a CSV writer with default settings.
func NewCSVWriter() *CSVWriter {
	return &CSVWriter{}
}

// csvDocument is the rendered workbook handle of the CSV writer.
type csvDocument struct {
	data []byte
}

// Render serializes the first sheet. The autofit flag has no meaning for
// CSV and is ignored.
func (w *CSVWriter) Render(spreadsheet *Spreadsheet, autofit bool) (WorkbookHandle, error) {
	var buf bytes.Buffer
	if len(spreadsheet.Sheets) == 0 {
		return &csvDocument{}, nil
	}
	sheet := spreadsheet.Sheets[0]

	cw := csv.NewWriter(&buf)
	if w.Comma != 0 {
		cw.Comma = w.Comma
	}

	for _, table := range sheet.Tables {
		if table.HasTitle() {
			if err := cw.Write([]string{fmt.Sprintf("# %v", table.Title.Value)}); err != nil {
				return nil, err
			}
		}
		if table.HasHeaders() {
			if err := cw.Write(cellStrings(table.Headers)); err != nil {
				return nil, err
			}
		}
		for _, row := range table.Cells {
			if err := cw.Write(cellStrings(row)); err != nil {
				return nil, err
			}
		}
		if err := cw.Write([]string{""}); err != nil {
			return nil, err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, err
	}

	data := buf.Bytes()
	if w.Encoding != nil {
		encoded, _, err := transform.Bytes(w.Encoding.NewEncoder(), data)
		if err != nil {
			return nil, err
		}
		data = encoded
	}
	return &csvDocument{data: data}, nil
}

func cellStrings(cells []Cell) []string {
	out := make([]string, len(cells))
	for i, cell := range cells {
		if cell.Value == nil {
			continue
		}
		out[i] = fmt.Sprintf("%v", cell.Value)
	}
	return out
}

// Bytes returns the rendered CSV bytes.
func (w *CSVWriter) Bytes(handle WorkbookHandle) ([]byte, error) {
	doc, err := csvDoc(handle)
	if err != nil {
		return nil, err
	}
	return doc.data, nil
}

// WriteFile saves the CSV to path atomically.
func (w *CSVWriter) WriteFile(handle WorkbookHandle, path string) error {
	doc, err := csvDoc(handle)
	if err != nil {
		return err
	}
	return writeFileAtomic(path, doc.data)
}

// WriteTo streams the CSV to wr.
func (w *CSVWriter) WriteTo(handle WorkbookHandle, wr io.Writer) error {
	doc, err := csvDoc(handle)
	if err != nil {
		return err
	}
	_, err = wr.Write(doc.data)
	return err
}

func csvDoc(handle WorkbookHandle) (*csvDocument, error) {
	doc, ok := handle.(*csvDocument)
	if !ok {
		return nil, fmt.Errorf("csv writer: unexpected workbook handle %T", handle)
	}
	return doc, nil
}
