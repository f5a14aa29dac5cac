package pivot_test

import (
	"math"
	"testing"

	"github.com/altiumtools/rulegen/pkg/pivot"
	"github.com/altiumtools/rulegen/pkg/rules"
	"github.com/altiumtools/rulegen/pkg/scope"
	"github.com/altiumtools/rulegen/pkg/units"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func symmetricMatrix(t *testing.T) *pivot.Matrix {
	t.Helper()
	m, err := pivot.NewWithValues(
		[]string{"A", "B"},
		[]string{"A", "B"},
		[][]float64{
			{math.NaN(), 5.0},
			{5.0, math.NaN()},
		},
		units.Mil,
	)
	require.NoError(t, err)
	return m
}

func TestToClearanceRules(t *testing.T) {
	ruleList, err := pivot.ToClearanceRules(symmetricMatrix(t), "")
	require.NoError(t, err)
	require.Len(t, ruleList, 2)

	first := ruleList[0]
	assert.Equal(t, "Clearance_A_to_B", first.Name)
	assert.Equal(t, 5.0, first.MinClearance)
	assert.Equal(t, units.Mil, first.Unit)
	assert.Equal(t, 1, first.Priority)

	wantSource, err := scope.NetClass("A")
	require.NoError(t, err)
	wantTarget, err := scope.NetClass("B")
	require.NoError(t, err)
	assert.Equal(t, wantSource, first.Source)
	assert.Equal(t, wantTarget, first.Target)

	second := ruleList[1]
	assert.Equal(t, "Clearance_B_to_A", second.Name)
	assert.Equal(t, 2, second.Priority)
}

func TestToClearanceRulesSkipsCells(t *testing.T) {
	m, err := pivot.NewWithValues(
		[]string{"A", "B"},
		[]string{"A", "B"},
		[][]float64{
			{0, -3},
			{math.NaN(), 6},
		},
		units.MM,
	)
	require.NoError(t, err)

	ruleList, err := pivot.ToClearanceRules(m, "")
	require.NoError(t, err)
	// Zero, negative and NaN cells never produce a rule
	require.Len(t, ruleList, 1)
	assert.Equal(t, "Clearance_B_to_B", ruleList[0].Name)
	assert.Equal(t, 6.0, ruleList[0].MinClearance)
	assert.Equal(t, 1, ruleList[0].Priority)
}

func TestToClearanceRulesSanitizesNames(t *testing.T) {
	m, err := pivot.NewWithValues(
		[]string{"High Speed/IO"},
		[]string{"Power Rail"},
		[][]float64{{4}},
		units.Mil,
	)
	require.NoError(t, err)

	ruleList, err := pivot.ToClearanceRules(m, "CLR_")
	require.NoError(t, err)
	require.Len(t, ruleList, 1)
	assert.Equal(t, "CLR_High_Speed_IO_to_Power_Rail", ruleList[0].Name)

	// Scopes keep the original, unsanitized class names
	assert.Equal(t, []string{"High Speed/IO"}, ruleList[0].Source.Classes)
	assert.Equal(t, []string{"Power Rail"}, ruleList[0].Target.Classes)
}

func TestToClearanceRulesSkipsBlankLabels(t *testing.T) {
	m, err := pivot.NewWithValues(
		[]string{"A", ""},
		[]string{"A", "B"},
		[][]float64{{1, 2}, {3, 4}},
		units.Mil,
	)
	require.NoError(t, err)

	ruleList, err := pivot.ToClearanceRules(m, "")
	require.NoError(t, err)
	require.Len(t, ruleList, 2)
	assert.Equal(t, "Clearance_A_to_A", ruleList[0].Name)
	assert.Equal(t, "Clearance_A_to_B", ruleList[1].Name)
}

func TestFromClearanceRules(t *testing.T) {
	ruleList, err := pivot.ToClearanceRules(symmetricMatrix(t), "")
	require.NoError(t, err)

	m := pivot.FromClearanceRules(ruleList)
	assert.Equal(t, []string{"A", "B"}, m.RowLabels)
	assert.Equal(t, []string{"A", "B"}, m.ColumnLabels)
	assert.Equal(t, units.Mil, m.Unit)

	// Same two populated cells, diagonal missing
	assert.True(t, m.IsMissing(0, 0))
	assert.Equal(t, 5.0, m.At(0, 1))
	assert.Equal(t, 5.0, m.At(1, 0))
	assert.True(t, m.IsMissing(1, 1))
}

func TestFromClearanceRulesIgnoresNonNetClassScopes(t *testing.T) {
	custom, err := scope.Custom("IsVia")
	require.NoError(t, err)
	netA, err := scope.NetClass("A")
	require.NoError(t, err)

	viaRule, err := rules.NewClearance("ViaRule", 3, units.Mil, custom, netA)
	require.NoError(t, err)
	plain, err := rules.NewClearance("Plain", 4, units.Mil, netA, netA)
	require.NoError(t, err)

	m := pivot.FromClearanceRules([]*rules.Clearance{viaRule, plain})
	// Only "A" appears: the custom scope contributes no label and the
	// via rule sets no cell
	assert.Equal(t, []string{"A"}, m.RowLabels)
	assert.Equal(t, 4.0, m.At(0, 0))
}

func TestFromClearanceRulesEmptyInput(t *testing.T) {
	m := pivot.FromClearanceRules(nil)
	assert.Empty(t, m.RowLabels)
	assert.Empty(t, m.ColumnLabels)
	assert.Equal(t, units.Mil, m.Unit)
}

func TestFromClearanceRulesUnitFromFirstRule(t *testing.T) {
	netA, err := scope.NetClass("A")
	require.NoError(t, err)
	r, err := rules.NewClearance("R", 0.2, units.MM, netA, netA)
	require.NoError(t, err)

	m := pivot.FromClearanceRules([]*rules.Clearance{r})
	assert.Equal(t, units.MM, m.Unit)
}

func TestMatrixRuleRoundTrip(t *testing.T) {
	original := symmetricMatrix(t)
	ruleList, err := pivot.ToClearanceRules(original, "")
	require.NoError(t, err)

	back := pivot.FromClearanceRules(ruleList)
	assert.Equal(t, original.RowLabels, back.RowLabels)
	assert.Equal(t, original.ColumnLabels, back.ColumnLabels)
	for i := range original.RowLabels {
		for j := range original.ColumnLabels {
			if original.IsMissing(i, j) {
				assert.True(t, back.IsMissing(i, j))
			} else {
				assert.Equal(t, original.At(i, j), back.At(i, j))
			}
		}
	}
}

func TestToShortCircuitRules(t *testing.T) {
	m := pivot.New([]string{"B", "A"}, []string{"A", "C"}, units.Mil)
	ruleList, err := pivot.ToShortCircuitRules(m, "")
	require.NoError(t, err)

	require.Len(t, ruleList, 3)
	// Union of labels, sorted for determinism
	assert.Equal(t, "ShortCircuit_A", ruleList[0].Name)
	assert.Equal(t, "ShortCircuit_B", ruleList[1].Name)
	assert.Equal(t, "ShortCircuit_C", ruleList[2].Name)
	assert.Equal(t, []string{"A"}, ruleList[0].Scope.Classes)
}

func TestToUnroutedNetRules(t *testing.T) {
	m := pivot.New([]string{"A"}, []string{"B"}, units.Mil)
	ruleList, err := pivot.ToUnroutedNetRules(m, "UN_")
	require.NoError(t, err)

	require.Len(t, ruleList, 2)
	assert.Equal(t, "UN_A", ruleList[0].Name)
	assert.Equal(t, "UN_B", ruleList[1].Name)
}
