package sheetengine

import (
	"io"

	"github.com/google/uuid"
)

// Mapper transforms a domain model into spreadsheet data. Reports compose a
// mapper with a separately supplied template instead of subclassing.
type Mapper func(model interface{}) (*SpreadsheetData, error)

// ReportMeta identifies a report for versioning and debugging. It is
// embedded into the workbook metadata of every render.
type ReportMeta struct {
	ID              string
	ReportType      string
	Version         string
	TemplateVersion string
	CreatedBy       string
	Description     string
	Tags            map[string]string
}

// NewReportMeta creates report metadata with a fresh unique ID.
func NewReportMeta(reportType, version, templateVersion string) ReportMeta {
	return ReportMeta{
		ID:              uuid.NewString(),
		ReportType:      reportType,
		Version:         version,
		TemplateVersion: templateVersion,
		CreatedBy:       "sheetengine",
	}
}

func (m ReportMeta) entries() map[string]string {
	out := map[string]string{
		"report_id":        m.ID,
		"report_type":      m.ReportType,
		"version":          m.Version,
		"template_version": m.TemplateVersion,
		"creator":          m.CreatedBy,
	}
	if m.Description != "" {
		out["description"] = m.Description
	}
	for k, v := range m.Tags {
		out[k] = v
	}
	return out
}

// Report pairs a layout template with a domain-to-data mapper. It is the
// primary consumer-facing entry point: callers construct one Report per
// report type and call Export methods with domain models.
type Report struct {
	Template *SpreadsheetTemplate
	Map      Mapper
	Meta     ReportMeta

	engine *Engine
}

// NewReport composes a report from its template, mapper and metadata. A nil
// engine uses the built-in writer registry.
func NewReport(template *SpreadsheetTemplate, mapper Mapper, meta ReportMeta, engine *Engine) *Report {
	if engine == nil {
		engine = NewEngine(nil)
	}
	return &Report{Template: template, Map: mapper, Meta: meta, engine: engine}
}

// Build maps the domain model and merges it with the template, returning
// the physical model without serializing it.
func (r *Report) Build(model interface{}) (*Spreadsheet, error) {
	data, err := r.data(model)
	if err != nil {
		return nil, err
	}
	return MergeSpreadsheet(r.stampedTemplate(), data)
}

// Export renders the report for the domain model and writes it to path.
func (r *Report) Export(model interface{}, path string, opts RenderOptions) (*RenderStats, error) {
	data, err := r.data(model)
	if err != nil {
		return nil, err
	}
	return r.engine.RenderFile(r.stampedTemplate(), data, path, opts)
}

// Bytes renders the report for the domain model into memory, e.g. for HTTP
// responses.
func (r *Report) Bytes(model interface{}, opts RenderOptions) ([]byte, *RenderStats, error) {
	data, err := r.data(model)
	if err != nil {
		return nil, nil, err
	}
	return r.engine.Render(r.stampedTemplate(), data, opts)
}

// WriteTo renders the report for the domain model and streams it to w.
func (r *Report) WriteTo(model interface{}, w io.Writer, opts RenderOptions) (*RenderStats, error) {
	data, err := r.data(model)
	if err != nil {
		return nil, err
	}
	return r.engine.RenderTo(r.stampedTemplate(), data, w, opts)
}

func (r *Report) data(model interface{}) (*SpreadsheetData, error) {
	data, err := r.Map(model)
	if err != nil {
		return nil, err
	}
	if data == nil {
		data = NewSpreadsheetData()
	}
	return data, nil
}

// stampedTemplate returns a shallow template copy whose metadata includes
// the report identification, leaving the caller's template untouched.
func (r *Report) stampedTemplate() *SpreadsheetTemplate {
	stamped := *r.Template
	stamped.Metadata = make(map[string]string, len(r.Template.Metadata)+6)
	for k, v := range r.Template.Metadata {
		stamped.Metadata[k] = v
	}
	for k, v := range r.Meta.entries() {
		stamped.Metadata[k] = v
	}
	return &stamped
}
