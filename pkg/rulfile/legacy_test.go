package rulfile_test

import (
	"testing"

	"github.com/altiumtools/rulegen/pkg/rulfile"
	"github.com/altiumtools/rulegen/pkg/rules"
	"github.com/altiumtools/rulegen/pkg/scope"
	"github.com/altiumtools/rulegen/pkg/units"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const legacyContent = `# Altium Designer Rules
#
# Auto-generated file

Rule
{
    Name = 'Clearance_Power_to_Ground'
    Enabled = 'true'
    Comment = 'supply separation'
    Priority = 2
    RuleKind = 'Clearance'
    MinimumClearance = 8.5
    MinimumClearanceType = 'mil'
    SourceScope = InNetClass('Power')
    TargetScope = InNetClass('Ground')
}

Rule
{
    Name = 'NoShorts'
    Enabled = 'false'
    Priority = 1
    RuleKind = 'ShortCircuit'
    Scope = All
}
`

func TestParseLegacy(t *testing.T) {
	coll, ok := rulfile.ParseLegacy(legacyContent)
	require.True(t, ok)
	require.Equal(t, 2, coll.Len())

	clearance := coll.Rules()[0].(*rules.Clearance)
	assert.Equal(t, "Clearance_Power_to_Ground", clearance.Name)
	assert.True(t, clearance.Enabled)
	assert.Equal(t, "supply separation", clearance.Comment)
	assert.Equal(t, 2, clearance.Priority)
	assert.Equal(t, 8.5, clearance.MinClearance)
	assert.Equal(t, units.Mil, clearance.Unit)

	wantSource, err := scope.NetClass("Power")
	require.NoError(t, err)
	assert.Equal(t, wantSource, clearance.Source)

	shortCircuit := coll.Rules()[1].(*rules.ShortCircuit)
	assert.Equal(t, "NoShorts", shortCircuit.Name)
	assert.False(t, shortCircuit.Enabled)
	assert.Equal(t, scope.All(), shortCircuit.Scope)
}

func TestParseLegacySkipsBadBlocks(t *testing.T) {
	content := `Rule
{
    Enabled = 'true'
}

Rule
{
    Name = 'Good'
    RuleKind = 'UnroutedNet'
    Scope = InNetClass('GND')
}

Rule
{
    Name = 'Mystery'
    RuleKind = 'CreepageDistance'
}
`
	coll, ok := rulfile.ParseLegacy(content)
	assert.True(t, ok)
	require.Equal(t, 1, coll.Len())
	assert.Equal(t, "Good", coll.Rules()[0].Attrs().Name)
}

func TestParseLegacyNoBlocks(t *testing.T) {
	coll, ok := rulfile.ParseLegacy("nothing here")
	assert.False(t, ok)
	assert.Equal(t, 0, coll.Len())
}

func TestParseLegacyClearanceDefaults(t *testing.T) {
	content := `Rule
{
    Name = 'Sparse'
    RuleKind = 'Clearance'
    MinimumClearance = oops
}
`
	coll, ok := rulfile.ParseLegacy(content)
	require.True(t, ok)
	clearance := coll.Rules()[0].(*rules.Clearance)
	assert.Equal(t, 10.0, clearance.MinClearance)
	assert.Equal(t, units.Mil, clearance.Unit)
	assert.Equal(t, scope.All(), clearance.Source)
	assert.Equal(t, scope.All(), clearance.Target)
}

func TestDetectLegacy(t *testing.T) {
	assert.True(t, rulfile.DetectLegacy(legacyContent))
	assert.False(t, rulfile.DetectLegacy(clearanceLine))
}
