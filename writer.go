package sheetengine

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
)

// WorkbookHandle is an opaque, format-specific rendered workbook produced by
// a Writer's Render and consumed by its output methods.
type WorkbookHandle interface{}

// Writer serializes a merged Spreadsheet into one output format. The engine
// guarantees the Spreadsheet it hands over satisfies all model invariants;
// writers only translate cells and styles, they never re-validate structure.
type Writer interface {
	// Render translates the physical model into a format-specific workbook.
	Render(spreadsheet *Spreadsheet, autofit bool) (WorkbookHandle, error)
	// Bytes serializes a rendered workbook.
	Bytes(handle WorkbookHandle) ([]byte, error)
	// WriteFile saves a rendered workbook to path, creating parent
	// directories as needed.
	WriteFile(handle WorkbookHandle, path string) error
	// WriteTo streams a rendered workbook to w.
	WriteTo(handle WorkbookHandle, w io.Writer) error
}

// Capabilities describes what a registered format supports, for callers
// that pick formats at runtime.
type Capabilities struct {
	Formulas              bool
	Styling               bool
	ConditionalFormatting bool
	MultipleSheets        bool
	MaxRows               int
	MaxCols               int
}

// WriterFactory constructs a writer, or fails when the format is unusable
// in the current build. Factories replace hidden deferred imports: lookup
// errors surface at call sites, not at load time.
type WriterFactory func() (Writer, error)

type writerEntry struct {
	factory      WriterFactory
	capabilities Capabilities
}

// WriterRegistry maps format names to writer factories. It is an explicit
// object constructed and owned by the caller; there is no process-global
// registry.
type WriterRegistry struct {
	entries map[string]writerEntry
}

// NewWriterRegistry creates a registry pre-registered with the built-in
// xlsx and csv writers.
func NewWriterRegistry() *WriterRegistry {
	r := &WriterRegistry{entries: make(map[string]writerEntry)}
	r.Register("xlsx", func() (Writer, error) { return NewXLSXWriter(), nil }, Capabilities{
		Formulas:              true,
		Styling:               true,
		ConditionalFormatting: true,
		MultipleSheets:        true,
		MaxRows:               1048576,
		MaxCols:               16384,
	})
	r.Register("csv", func() (Writer, error) { return NewCSVWriter(), nil }, Capabilities{})
	return r
}

// Register binds a format name to a writer factory, replacing any previous
// registration.
func (r *WriterRegistry) Register(format string, factory WriterFactory, capabilities Capabilities) {
	r.entries[format] = writerEntry{factory: factory, capabilities: capabilities}
}

// Lookup returns a writer for the format, or ErrUnknownFormat.
func (r *WriterRegistry) Lookup(format string) (Writer, error) {
	entry, ok := r.entries[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownFormat, format, r.Formats())
	}
	return entry.factory()
}

// Capabilities returns the capability set of a registered format.
func (r *WriterRegistry) Capabilities(format string) (Capabilities, error) {
	entry, ok := r.entries[format]
	if !ok {
		return Capabilities{}, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return entry.capabilities, nil
}

// Formats lists registered format names in sorted order.
func (r *WriterRegistry) Formats() []string {
	formats := make([]string, 0, len(r.entries))
	for name := range r.entries {
		formats = append(formats, name)
	}
	sort.Strings(formats)
	return formats
}

// writeFileAtomic writes data to path via a temp file in the same directory
// followed by a rename, so readers never observe a partially written file.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
