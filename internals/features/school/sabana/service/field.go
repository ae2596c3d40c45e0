package service

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// FieldKind is the closed set of cell shapes a single write can target.
// The wire field name is resolved exactly once, here; business logic only
// ever sees the tagged target.
type FieldKind int

const (
	FieldGeneral FieldKind = iota
	FieldCompetency
	FieldTechnical
	FieldRemarks
)

type FieldTarget struct {
	Kind       FieldKind
	Column     string // db column receiving the value
	Competency string // competency code (FieldCompetency only)
	Outcome    string // RA code (FieldTechnical only)
}

var generalColumns = map[string]string{
	"p1":        "general_grade_p1",
	"p2":        "general_grade_p2",
	"p3":        "general_grade_p3",
	"p4":        "general_grade_p4",
	"rp1":       "general_grade_rp1",
	"rp2":       "general_grade_rp2",
	"rp3":       "general_grade_rp3",
	"rp4":       "general_grade_rp4",
	"cpc_nota":  "general_grade_cpc_nota",
	"cpex_nota": "general_grade_cpex_nota",
}

// Period/remediation fields valid against a competency row
var competencyColumns = map[string]string{
	"p1":  "competency_grade_p1",
	"p2":  "competency_grade_p2",
	"p3":  "competency_grade_p3",
	"p4":  "competency_grade_p4",
	"rp1": "competency_grade_rp1",
	"rp2": "competency_grade_rp2",
	"rp3": "competency_grade_rp3",
	"rp4": "competency_grade_rp4",
}

// ResolveField maps a wire field name (plus optional competency code) to a
// FieldTarget.
//
//	p1..p4, rp1..rp4, cpc_nota, cpex_nota  → general cell (or competency cell
//	                                         when a competency code rides along)
//	observaciones                          → free-text remarks
//	ra1..ra10[_rec1|_rec2]                 → technical outcome cell
func ResolveField(field string, competency *string) (FieldTarget, error) {
	field = strings.ToLower(strings.TrimSpace(field))
	if field == "" {
		return FieldTarget{}, fiber.NewError(fiber.StatusUnprocessableEntity, "Campo de calificación requerido")
	}

	if field == "observaciones" {
		return FieldTarget{Kind: FieldRemarks, Column: "general_grade_observaciones"}, nil
	}

	if strings.HasPrefix(field, "ra") {
		return resolveTechnicalField(field)
	}

	if competency != nil && strings.TrimSpace(*competency) != "" {
		code := strings.ToUpper(strings.TrimSpace(*competency))
		if !IsCompetencyCode(code) {
			return FieldTarget{}, fiber.NewError(fiber.StatusUnprocessableEntity, "Código de competencia desconocido: "+code)
		}
		col, ok := competencyColumns[field]
		if !ok {
			return FieldTarget{}, fiber.NewError(fiber.StatusUnprocessableEntity, "El campo "+field+" no aplica a una competencia")
		}
		return FieldTarget{Kind: FieldCompetency, Column: col, Competency: code}, nil
	}

	if col, ok := generalColumns[field]; ok {
		return FieldTarget{Kind: FieldGeneral, Column: col}, nil
	}
	return FieldTarget{}, fiber.NewError(fiber.StatusUnprocessableEntity, "Campo de calificación desconocido: "+field)
}

func resolveTechnicalField(field string) (FieldTarget, error) {
	code := field
	column := "technical_grade_original"
	switch {
	case strings.HasSuffix(field, "_rec1"):
		code = strings.TrimSuffix(field, "_rec1")
		column = "technical_grade_rec1"
	case strings.HasSuffix(field, "_rec2"):
		code = strings.TrimSuffix(field, "_rec2")
		column = "technical_grade_rec2"
	}
	if !IsOutcomeCode(code) {
		return FieldTarget{}, fiber.NewError(fiber.StatusUnprocessableEntity, "Resultado de aprendizaje desconocido: "+code)
	}
	return FieldTarget{Kind: FieldTechnical, Column: column, Outcome: code}, nil
}
