package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveFormatoTrustsConfiguredValue(t *testing.T) {
	// Anything other than the historical default is authoritative,
	// even when the name suggests otherwise
	got := ResolveFormato(FormatoPrimariaRD, "4to de Secundaria", "", false)
	assert.Equal(t, FormatoPrimariaRD, got)

	got = ResolveFormato(FormatoPolitecnicoRD, "Nivel Inicial", "", false)
	assert.Equal(t, FormatoPolitecnicoRD, got)
}

func TestResolveFormatoKeywordFallback(t *testing.T) {
	cases := []struct {
		name  string
		level string
		ciclo string
		haiti bool
		want  Formato
	}{
		{"inicial por nombre", "Nivel Inicial Kinder", "", false, FormatoInicialRD},
		{"primaria por nombre", "5to de Primaria", "", false, FormatoPrimariaRD},
		{"politecnico por nombre", "4to Politécnico Informática", "", false, FormatoPolitecnicoRD},
		{"fallback al ciclo educativo", "Grado 3", "École Fondamentale", true, FormatoPrimariaHT},
		{"prescolaire haiti", "Préscolaire 2", "", true, FormatoInicialHT},
		{"secondaire haiti", "Secondaire I", "", true, FormatoSecundariaHT},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ResolveFormato(FormatoDefault, tc.level, tc.ciclo, tc.haiti)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestResolveFormatoFallsBackToDefault(t *testing.T) {
	// No keyword match → keep the configured default
	got := ResolveFormato(FormatoDefault, "Grupo B", "", false)
	assert.Equal(t, FormatoDefault, got)

	// Invalid legacy garbage behaves like the default
	got = ResolveFormato(Formato("???"), "Grupo B", "", false)
	assert.Equal(t, FormatoDefault, got)
}

func TestFormatoPeriods(t *testing.T) {
	assert.Equal(t, 4, FormatoSecundariaRD.Periods())
	assert.Equal(t, 4, FormatoPolitecnicoRD.Periods())
	assert.Equal(t, 3, FormatoSecundariaHT.Periods())
	assert.Equal(t, 3, FormatoPrimariaHT.Periods())

	assert.True(t, FormatoSecundariaRD.Completiva())
	assert.False(t, FormatoSecundariaHT.Completiva())
}
