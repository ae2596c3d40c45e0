package service

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestResolveFieldGeneral(t *testing.T) {
	tgt, err := ResolveField("p1", nil)
	require.NoError(t, err)
	assert.Equal(t, FieldGeneral, tgt.Kind)
	assert.Equal(t, "general_grade_p1", tgt.Column)

	tgt, err = ResolveField("RP4", nil) // case-insensitive
	require.NoError(t, err)
	assert.Equal(t, FieldGeneral, tgt.Kind)
	assert.Equal(t, "general_grade_rp4", tgt.Column)

	tgt, err = ResolveField("cpex_nota", nil)
	require.NoError(t, err)
	assert.Equal(t, "general_grade_cpex_nota", tgt.Column)
}

func TestResolveFieldCompetency(t *testing.T) {
	tgt, err := ResolveField("p2", strPtr("ccom"))
	require.NoError(t, err)
	assert.Equal(t, FieldCompetency, tgt.Kind)
	assert.Equal(t, "competency_grade_p2", tgt.Column)
	assert.Equal(t, "CCOM", tgt.Competency)

	// cpc_nota lives on the subject, not on a competency
	_, err = ResolveField("cpc_nota", strPtr("CCOM"))
	require.Error(t, err)

	_, err = ResolveField("p1", strPtr("XX"))
	require.Error(t, err)
}

func TestResolveFieldTechnical(t *testing.T) {
	tgt, err := ResolveField("ra3", nil)
	require.NoError(t, err)
	assert.Equal(t, FieldTechnical, tgt.Kind)
	assert.Equal(t, "ra3", tgt.Outcome)
	assert.Equal(t, "technical_grade_original", tgt.Column)

	tgt, err = ResolveField("ra10_rec2", nil)
	require.NoError(t, err)
	assert.Equal(t, "ra10", tgt.Outcome)
	assert.Equal(t, "technical_grade_rec2", tgt.Column)

	_, err = ResolveField("ra11", nil)
	require.Error(t, err)
}

func TestResolveFieldRemarks(t *testing.T) {
	tgt, err := ResolveField("observaciones", nil)
	require.NoError(t, err)
	assert.Equal(t, FieldRemarks, tgt.Kind)
}

func TestResolveFieldUnknown(t *testing.T) {
	for _, field := range []string{"", "p5", "nota_final", "drop table"} {
		_, err := ResolveField(field, nil)
		require.Error(t, err, field)
		fe, ok := err.(*fiber.Error)
		require.True(t, ok)
		assert.Equal(t, fiber.StatusUnprocessableEntity, fe.Code)
	}
}
