package dto

import (
	"github.com/google/uuid"
)

/* =========================================================
   SÁBANA (sheet) — full grade matrix for one level × cycle
   ========================================================= */

type SabanaResponse struct {
	GradeLevelID      uuid.UUID `json:"grade_level_id"`
	GradeLevelName    string    `json:"grade_level_name"`
	AcademicCycleID   uuid.UUID `json:"academic_cycle_id"`
	AcademicCycleName string    `json:"academic_cycle_name"`

	Formato string `json:"formato"`
	Periods int    `json:"periods"`

	Subjects []SabanaSubject    `json:"subjects"`
	Students []SabanaStudentRow `json:"students"`
}

type SabanaSubject struct {
	ClassSectionID uuid.UUID `json:"class_section_id"`
	SubjectID      uuid.UUID `json:"subject_id"`
	SubjectName    string    `json:"subject_name"`
	SectionLabel   string    `json:"section_label"`
	TeacherUserID  uuid.UUID `json:"teacher_user_id"`
	IsTechnical    bool      `json:"is_technical"`
}

type SabanaStudentRow struct {
	StudentID uuid.UUID `json:"student_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`

	// Aligned with SabanaResponse.Subjects
	Cells []SabanaCell `json:"cells"`
}

// SabanaCell carries the raw entered scores plus every derived value for one
// student × subject. An enrolled student with no grade rows yet renders as an
// all-empty cell, never an error.
type SabanaCell struct {
	Enrolled bool `json:"enrolled"`

	Periods []float64 `json:"periods"` // effective per-period scores

	CF        float64 `json:"cf"`
	CpcBase   float64 `json:"cpc_base,omitempty"`
	CpcNota   float64 `json:"cpc_nota,omitempty"`
	CC        float64 `json:"cc,omitempty"`
	CpexBase  float64 `json:"cpex_base,omitempty"`
	CpexNota  float64 `json:"cpex_nota,omitempty"`
	CEx       float64 `json:"cex,omitempty"`
	Final     float64 `json:"final"`
	Situacion string  `json:"situacion"`

	Observaciones *string `json:"observaciones,omitempty"`
	Published     bool    `json:"published"`

	Competencies []CompetencyCell `json:"competencies,omitempty"`
	Technical    *TechnicalCell   `json:"technical,omitempty"`
}

type CompetencyCell struct {
	Codigo  string    `json:"codigo"`
	Periods []float64 `json:"periods"`
}

type TechnicalCell struct {
	Outcomes  []OutcomeCell `json:"outcomes"`
	Final     float64       `json:"final"`
	Situacion string        `json:"situacion"`
}

type OutcomeCell struct {
	Codigo    string  `json:"codigo"`
	Original  float64 `json:"original"`
	Rec1      float64 `json:"rec1"`
	Rec2      float64 `json:"rec2"`
	Effective float64 `json:"effective"`
}
