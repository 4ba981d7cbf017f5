package sheetengine

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tiendc/go-deepcopy"
)

// LifecycleStatus tracks a registration through deprecation.
type LifecycleStatus string

const (
	StatusActive     LifecycleStatus = "active"
	StatusDeprecated LifecycleStatus = "deprecated"
	StatusRemoved    LifecycleStatus = "removed"
)

// ChangeLogEntry records one template version change.
type ChangeLogEntry struct {
	Version         string
	Date            time.Time
	Changes         []string
	BreakingChanges []string
	Author          string
}

// IsBreaking reports whether the entry carries breaking changes.
func (e ChangeLogEntry) IsBreaking() bool {
	return len(e.BreakingChanges) > 0
}

// TemplateRegistration is the governance record of one template version.
// Snapshot holds a deep copy of the template taken at registration time, so
// later mutation of the caller's template never alters the registered
// version. Computed column functions are not copyable and are shared.
type TemplateRegistration struct {
	ID           string
	TemplateType string
	Version      string
	Status       LifecycleStatus
	RegisteredAt time.Time
	DeprecatedAt time.Time
	RemovedAt    time.Time
	Replacement  string
	ChangeLog    []ChangeLogEntry
	Tags         map[string]bool
	Snapshot     *SpreadsheetTemplate
}

// ReportRegistration is the governance record of one report type, bound to
// a registered template.
type ReportRegistration struct {
	ID           string
	ReportType   string
	TemplateID   string
	Version      string
	Status       LifecycleStatus
	RegisteredAt time.Time
	DeprecatedAt time.Time
	RemovedAt    time.Time
	Replacement  string
	Tags         map[string]bool
}

// Registry tracks templates and reports for governance: versions, change
// logs and deprecation. It is an explicit object constructed by the caller
// and passed to whatever needs lookup; there is no ambient global state.
type Registry struct {
	mu        sync.RWMutex
	templates map[string]*TemplateRegistration
	reports   map[string]*ReportRegistration
	now       func() time.Time
}

// NewRegistry creates an empty governance registry.
func NewRegistry() *Registry {
	return &Registry{
		templates: make(map[string]*TemplateRegistration),
		reports:   make(map[string]*ReportRegistration),
		now:       time.Now,
	}
}

// RegisterTemplate snapshots and registers a template version, returning
// the registration record with a fresh ID.
func (r *Registry) RegisterTemplate(templateType, version string, template *SpreadsheetTemplate) (*TemplateRegistration, error) {
	snapshot, err := snapshotTemplate(template)
	if err != nil {
		return nil, err
	}
	reg := &TemplateRegistration{
		ID:           uuid.NewString(),
		TemplateType: templateType,
		Version:      version,
		Status:       StatusActive,
		RegisteredAt: r.now(),
		Tags:         make(map[string]bool),
		Snapshot:     snapshot,
	}
	r.mu.Lock()
	r.templates[reg.ID] = reg
	r.mu.Unlock()
	return reg, nil
}

// snapshotTemplate deep-copies a template. Columns carrying computed
// functions keep their function references: functions cannot be copied.
func snapshotTemplate(template *SpreadsheetTemplate) (*SpreadsheetTemplate, error) {
	if template == nil {
		return nil, nil
	}
	var snapshot SpreadsheetTemplate
	if err := deepcopy.Copy(&snapshot, template); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// RegisterReport registers a report type bound to a registered template ID.
func (r *Registry) RegisterReport(reportType, templateID, version string) (*ReportRegistration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.templates[templateID]; !ok {
		return nil, newStructureError("report %q references unknown template %q", reportType, templateID)
	}
	reg := &ReportRegistration{
		ID:           uuid.NewString(),
		ReportType:   reportType,
		TemplateID:   templateID,
		Version:      version,
		Status:       StatusActive,
		RegisteredAt: r.now(),
		Tags:         make(map[string]bool),
	}
	r.reports[reg.ID] = reg
	return reg, nil
}

// Template returns the registration with the given ID, or nil.
func (r *Registry) Template(id string) *TemplateRegistration {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.templates[id]
}

// Report returns the report registration with the given ID, or nil.
func (r *Registry) Report(id string) *ReportRegistration {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.reports[id]
}

// AddChangeLog appends a changelog entry to a template registration and
// advances its version.
func (r *Registry) AddChangeLog(templateID string, entry ChangeLogEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	reg, ok := r.templates[templateID]
	if !ok {
		return newStructureError("unknown template %q", templateID)
	}
	if entry.Date.IsZero() {
		entry.Date = r.now()
	}
	reg.ChangeLog = append(reg.ChangeLog, entry)
	reg.Version = entry.Version
	return nil
}

// DeprecateTemplate marks a template as deprecated, optionally naming its
// replacement.
func (r *Registry) DeprecateTemplate(templateID, replacement string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	reg, ok := r.templates[templateID]
	if !ok {
		return newStructureError("unknown template %q", templateID)
	}
	reg.Status = StatusDeprecated
	reg.DeprecatedAt = r.now()
	reg.Replacement = replacement
	return nil
}

// RemoveTemplate marks a template as removed. The record stays for audit.
func (r *Registry) RemoveTemplate(templateID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	reg, ok := r.templates[templateID]
	if !ok {
		return newStructureError("unknown template %q", templateID)
	}
	reg.Status = StatusRemoved
	reg.RemovedAt = r.now()
	return nil
}

// ActiveTemplates lists registrations that are not deprecated or removed,
// ordered by template type then version.
func (r *Registry) ActiveTemplates() []*TemplateRegistration {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*TemplateRegistration
	for _, reg := range r.templates {
		if reg.Status == StatusActive {
			out = append(out, reg)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TemplateType != out[j].TemplateType {
			return out[i].TemplateType < out[j].TemplateType
		}
		return out[i].Version < out[j].Version
	})
	return out
}

// BreakingChangesSince lists changelog entries with breaking changes
// recorded after the given version for a template type, across all its
// registrations.
func (r *Registry) BreakingChangesSince(templateType, version string) []ChangeLogEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []ChangeLogEntry
	for _, reg := range r.templates {
		if reg.TemplateType != templateType {
			continue
		}
		for _, entry := range reg.ChangeLog {
			if entry.IsBreaking() && entry.Version > version {
				out = append(out, entry)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	return out
}
