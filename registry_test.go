package sheetengine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryRegisterTemplate(t *testing.T) {
	registry := NewRegistry()
	template := revenueTemplate(t)

	reg, err := registry.RegisterTemplate("revenue", "1.0.0", template)
	require.NoError(t, err)
	assert.NotEmpty(t, reg.ID)
	assert.Equal(t, StatusActive, reg.Status)
	assert.False(t, reg.RegisteredAt.IsZero())

	assert.Same(t, reg, registry.Template(reg.ID))
	assert.Nil(t, registry.Template("missing"))
}

func TestRegistrySnapshotIsolation(t *testing.T) {
	registry := NewRegistry()
	template := revenueTemplate(t)

	reg, err := registry.RegisterTemplate("revenue", "1.0.0", template)
	require.NoError(t, err)

	// Mutating the caller's template after registration does not alter the
	// registered snapshot.
	template.Sheets[0].Tables[0].Columns[0].Label = "Mutated"
	template.ActiveSheet = "Changed"

	snapshot := reg.Snapshot
	require.NotNil(t, snapshot)
	assert.Equal(t, "Account", snapshot.Sheets[0].Tables[0].Columns[0].Label)
	assert.Equal(t, "Revenue", snapshot.ActiveSheet)
}

func TestRegistryRegisterReport(t *testing.T) {
	registry := NewRegistry()
	template, err := registry.RegisterTemplate("revenue", "1.0.0", revenueTemplate(t))
	require.NoError(t, err)

	report, err := registry.RegisterReport("monthly_revenue", template.ID, "1.0.0")
	require.NoError(t, err)
	assert.Equal(t, template.ID, report.TemplateID)
	assert.Same(t, report, registry.Report(report.ID))

	_, err = registry.RegisterReport("orphan", "no-such-template", "1.0.0")
	assert.ErrorIs(t, err, ErrStructure)
}

func TestRegistryChangeLog(t *testing.T) {
	registry := NewRegistry()
	reg, err := registry.RegisterTemplate("revenue", "1.0.0", revenueTemplate(t))
	require.NoError(t, err)

	err = registry.AddChangeLog(reg.ID, ChangeLogEntry{
		Version: "1.1.0",
		Changes: []string{"added percent column"},
		Author:  "finance",
	})
	require.NoError(t, err)

	// The registration's version advances with the changelog.
	assert.Equal(t, "1.1.0", registry.Template(reg.ID).Version)
	require.Len(t, registry.Template(reg.ID).ChangeLog, 1)
	assert.False(t, registry.Template(reg.ID).ChangeLog[0].Date.IsZero())

	assert.ErrorIs(t, registry.AddChangeLog("missing", ChangeLogEntry{}), ErrStructure)
}

func TestRegistryLifecycle(t *testing.T) {
	registry := NewRegistry()
	old, err := registry.RegisterTemplate("revenue", "1.0.0", revenueTemplate(t))
	require.NoError(t, err)
	current, err := registry.RegisterTemplate("revenue", "2.0.0", revenueTemplate(t))
	require.NoError(t, err)
	other, err := registry.RegisterTemplate("costs", "1.0.0", revenueTemplate(t))
	require.NoError(t, err)

	require.NoError(t, registry.DeprecateTemplate(old.ID, current.ID))
	assert.Equal(t, StatusDeprecated, registry.Template(old.ID).Status)
	assert.Equal(t, current.ID, registry.Template(old.ID).Replacement)
	assert.False(t, registry.Template(old.ID).DeprecatedAt.IsZero())

	active := registry.ActiveTemplates()
	require.Len(t, active, 2)
	// Ordered by type, then version.
	assert.Equal(t, "costs", active[0].TemplateType)
	assert.Equal(t, "revenue", active[1].TemplateType)
	assert.Equal(t, other.ID, active[0].ID)

	require.NoError(t, registry.RemoveTemplate(current.ID))
	assert.Equal(t, StatusRemoved, registry.Template(current.ID).Status)
	// Removed records remain for audit.
	assert.NotNil(t, registry.Template(current.ID))

	assert.ErrorIs(t, registry.DeprecateTemplate("missing", ""), ErrStructure)
	assert.ErrorIs(t, registry.RemoveTemplate("missing"), ErrStructure)
}

func TestRegistryBreakingChangesSince(t *testing.T) {
	registry := NewRegistry()
	reg, err := registry.RegisterTemplate("revenue", "1.0.0", revenueTemplate(t))
	require.NoError(t, err)

	entries := []ChangeLogEntry{
		{Version: "1.1.0", Changes: []string{"cosmetic"}},
		{Version: "2.0.0", BreakingChanges: []string{"renamed value column"}},
		{Version: "3.0.0", BreakingChanges: []string{"dropped percent column"}},
	}
	for _, entry := range entries {
		require.NoError(t, registry.AddChangeLog(reg.ID, entry))
	}

	breaking := registry.BreakingChangesSince("revenue", "1.1.0")
	require.Len(t, breaking, 2)
	assert.Equal(t, "2.0.0", breaking[0].Version)
	assert.Equal(t, "3.0.0", breaking[1].Version)

	assert.Empty(t, registry.BreakingChangesSince("revenue", "3.0.0"))
	assert.Empty(t, registry.BreakingChangesSince("unknown", "0.0.1"))
}

func TestChangeLogEntryIsBreaking(t *testing.T) {
	assert.False(t, ChangeLogEntry{Version: "1.0.0"}.IsBreaking())
	assert.True(t, ChangeLogEntry{Version: "2.0.0", BreakingChanges: []string{"x"}}.IsBreaking())
}
