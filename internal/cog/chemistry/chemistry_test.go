package chemistry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormulaSimple(t *testing.T) {
	counts, err := ParseFormula("C6H12O6")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"C": 6, "H": 12, "O": 6}, counts)
}

func TestParseFormulaNestedGroups(t *testing.T) {
	counts, err := ParseFormula("Ca(OH)2")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Ca": 1, "O": 2, "H": 2}, counts)

	counts, err = ParseFormula("K4[Fe(CN)6]")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"K": 4, "Fe": 1, "C": 6, "N": 6}, counts)
}

func TestParseFormulaHydrate(t *testing.T) {
	counts, err := ParseFormula("CuSO4·5H2O")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Cu": 1, "S": 1, "O": 9, "H": 10}, counts)

	// '*' and '.' work as hydrate separators too
	star, err := ParseFormula("CuSO4*5H2O")
	require.NoError(t, err)
	assert.Equal(t, counts, star)
}

func TestParseFormulaCaseSensitiveSymbols(t *testing.T) {
	// CO is carbon monoxide, Co is cobalt
	co, err := ParseFormula("CO")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"C": 1, "O": 1}, co)

	cobalt, err := ParseFormula("Co")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Co": 1}, cobalt)
}

func TestParseFormulaErrors(t *testing.T) {
	for _, formula := range []string{"", "Xx2", "Ca(OH", "Ca(OH))2", "h2o", "2(", "Ca)"} {
		_, err := ParseFormula(formula)
		assert.Error(t, err, "formula %q should not parse", formula)
	}
}

func TestMolarMass(t *testing.T) {
	cases := []struct {
		formula string
		want    float64
	}{
		{"H2O", 18.015},
		{"Ca(OH)2", 74.092},
		{"CuSO4·5H2O", 249.677},
		{"K4[Fe(CN)6]", 368.345},
		{"NaCl", 58.44},
	}
	for _, tc := range cases {
		counts, err := ParseFormula(tc.formula)
		require.NoError(t, err, tc.formula)
		mass, err := MolarMass(counts)
		require.NoError(t, err, tc.formula)
		assert.InDelta(t, tc.want, mass, 0.01, tc.formula)
	}
}

func TestLookupElement(t *testing.T) {
	fe, ok := LookupElement("Fe")
	require.True(t, ok)
	assert.Equal(t, "Iron", fe.Name)

	byName, ok := LookupElement("iron")
	require.True(t, ok)
	assert.Equal(t, fe, byName)

	byNumber, ok := LookupElement("26")
	require.True(t, ok)
	assert.Equal(t, fe, byNumber)

	lowercase, ok := LookupElement("fe")
	require.True(t, ok)
	assert.Equal(t, fe, lowercase)

	_, ok = LookupElement("unobtainium")
	assert.False(t, ok)

	_, ok = LookupElement("200")
	assert.False(t, ok)
}

func TestElementTableComplete(t *testing.T) {
	require.Len(t, elements, 118)
	for i, e := range elements {
		assert.Equal(t, i+1, e.Number, "table must be ordered by atomic number")
		assert.NotEmpty(t, e.Symbol)
		assert.Greater(t, e.Mass, 0.0)
	}
}

func TestElectronConfig(t *testing.T) {
	assert.Equal(t, "1s1", ElectronConfig(1))
	assert.Equal(t, "1s2 2s2 2p4", ElectronConfig(8))
	assert.Equal(t, "1s2 2s2 2p6 3s2 3p6 4s2 3d6", ElectronConfig(26))
}
