package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	gmodel "sabana_backend/internals/features/school/sabana/model"
)

func TestEffectiveOutcomeBestValidAttempt(t *testing.T) {
	// RA with original=0, rec1=65, rec2=0 → effective 65
	assert.Equal(t, 65.0, EffectiveOutcome(0, 65, 0))
	assert.Equal(t, 90.0, EffectiveOutcome(70, 90, 80))
	assert.Equal(t, 70.0, EffectiveOutcome(70, 0, 0))
	assert.Equal(t, 0.0, EffectiveOutcome(0, 0, 0))
}

func TestComputeTechnicalModule(t *testing.T) {
	rows := []gmodel.TechnicalGradeModel{
		{TechnicalGradeRA: "ra1", TechnicalGradeOriginal: 80},
		{TechnicalGradeRA: "ra2", TechnicalGradeOriginal: 60, TechnicalGradeRec1: 75},
		{TechnicalGradeRA: "ra3", TechnicalGradeRec1: 65},
		{TechnicalGradeRA: "ra4"}, // no valid attempt → excluded entirely
	}

	out := ComputeTechnical(rows)
	assert.True(t, out.Valid)
	assert.Len(t, out.Outcomes, 4)
	// mean(80, 75, 65) = 73.33 → 73; ra4 leaves the denominator
	assert.Equal(t, 73.0, out.Final)
	assert.Equal(t, SituacionAprobado, out.Situacion)

	assert.Equal(t, 65.0, out.Outcomes[2].Effective)
	assert.Equal(t, 0.0, out.Outcomes[3].Effective)
}

func TestComputeTechnicalNoValidOutcomes(t *testing.T) {
	rows := []gmodel.TechnicalGradeModel{
		{TechnicalGradeRA: "ra1"},
		{TechnicalGradeRA: "ra2"},
	}
	out := ComputeTechnical(rows)
	assert.False(t, out.Valid)
	assert.Equal(t, 0.0, out.Final)
	assert.Equal(t, "", out.Situacion)

	out = ComputeTechnical(nil)
	assert.False(t, out.Valid)
}
