package dto

import (
	"github.com/google/uuid"

	gmodel "sabana_backend/internals/features/school/sabana/model"
)

/* =========================================================
   WRITE GRADE
   ========================================================= */

// One entry point writes one cell. Numeric fields use value, the remarks
// field uses text. A null value on a technical field deletes the row.
type WriteGradeRequest struct {
	ClassSectionID uuid.UUID `json:"class_section_id" validate:"required"`
	StudentID      uuid.UUID `json:"student_id" validate:"required"`

	Field      string   `json:"field" validate:"required,max=20"`
	Value      *float64 `json:"value"`
	Text       *string  `json:"text"`
	Competency *string  `json:"competency" validate:"omitempty,max=8"`
}

type WriteGradeResponse struct {
	Kind    string `json:"kind"` // general | competency | technical | remarks
	Deleted bool   `json:"deleted,omitempty"`

	General    *gmodel.GeneralGradeModel    `json:"general_grade,omitempty"`
	Competency *gmodel.CompetencyGradeModel `json:"competency_grade,omitempty"`
	Technical  *gmodel.TechnicalGradeModel  `json:"technical_grade,omitempty"`
}

/* =========================================================
   PUBLICATION
   ========================================================= */

type PublishClassRequest struct {
	AcademicCycleID uuid.UUID `json:"academic_cycle_id" validate:"required"`
}

type PublishSummaryResponse struct {
	GeneralCount    int64 `json:"general_count"`
	CompetencyCount int64 `json:"competency_count"`
}
