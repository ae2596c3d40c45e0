package model

import (
	"time"

	"github.com/google/uuid"
)

// One row per (student, class section, cycle); writes upsert against
// uq_general_grades_cell. Only raw entered scores and the publication flag
// are persisted — every average/weighted value is recomputed on read.
// Scores ≤ 0 mean "not entered", never a zero grade.
type GeneralGradeModel struct {
	GeneralGradeID       uuid.UUID `gorm:"column:general_grade_id;type:uuid;default:gen_random_uuid();primaryKey" json:"general_grade_id"`
	GeneralGradeSchoolID uuid.UUID `gorm:"column:general_grade_school_id;type:uuid;not null;index" json:"general_grade_school_id"`

	GeneralGradeStudentID       uuid.UUID `gorm:"column:general_grade_student_id;type:uuid;not null;uniqueIndex:uq_general_grades_cell" json:"general_grade_student_id"`
	GeneralGradeClassSectionID  uuid.UUID `gorm:"column:general_grade_class_section_id;type:uuid;not null;uniqueIndex:uq_general_grades_cell;index" json:"general_grade_class_section_id"`
	GeneralGradeAcademicCycleID uuid.UUID `gorm:"column:general_grade_academic_cycle_id;type:uuid;not null;uniqueIndex:uq_general_grades_cell" json:"general_grade_academic_cycle_id"`

	// Regular period scores (P3/P4 usage depends on the formato)
	GeneralGradeP1 float64 `gorm:"column:general_grade_p1;type:numeric(5,2);not null;default:0" json:"general_grade_p1"`
	GeneralGradeP2 float64 `gorm:"column:general_grade_p2;type:numeric(5,2);not null;default:0" json:"general_grade_p2"`
	GeneralGradeP3 float64 `gorm:"column:general_grade_p3;type:numeric(5,2);not null;default:0" json:"general_grade_p3"`
	GeneralGradeP4 float64 `gorm:"column:general_grade_p4;type:numeric(5,2);not null;default:0" json:"general_grade_p4"`

	// Remediation (recuperación pedagógica) per period — max rule on read
	GeneralGradeRP1 float64 `gorm:"column:general_grade_rp1;type:numeric(5,2);not null;default:0" json:"general_grade_rp1"`
	GeneralGradeRP2 float64 `gorm:"column:general_grade_rp2;type:numeric(5,2);not null;default:0" json:"general_grade_rp2"`
	GeneralGradeRP3 float64 `gorm:"column:general_grade_rp3;type:numeric(5,2);not null;default:0" json:"general_grade_rp3"`
	GeneralGradeRP4 float64 `gorm:"column:general_grade_rp4;type:numeric(5,2);not null;default:0" json:"general_grade_rp4"`

	// Makeup exam scores (teacher-entered). The 50%/30% components and the
	// completiva/extraordinaria totals are derived, never stored.
	GeneralGradeCpcNota  float64 `gorm:"column:general_grade_cpc_nota;type:numeric(5,2);not null;default:0" json:"general_grade_cpc_nota"`
	GeneralGradeCpexNota float64 `gorm:"column:general_grade_cpex_nota;type:numeric(5,2);not null;default:0" json:"general_grade_cpex_nota"`

	// Frozen by the administrative finalization step, not by this engine
	GeneralGradePromovida float64 `gorm:"column:general_grade_promovida;type:numeric(5,2);not null;default:0" json:"general_grade_promovida"`
	GeneralGradeSituacion string  `gorm:"column:general_grade_situacion;type:varchar(2);not null;default:''" json:"general_grade_situacion"`

	GeneralGradeObservaciones *string `gorm:"column:general_grade_observaciones;type:text" json:"general_grade_observaciones,omitempty"`

	GeneralGradePublished   bool       `gorm:"column:general_grade_published;not null;default:false" json:"general_grade_published"`
	GeneralGradePublishedAt *time.Time `gorm:"column:general_grade_published_at" json:"general_grade_published_at,omitempty"`
	GeneralGradePublishedBy *uuid.UUID `gorm:"column:general_grade_published_by;type:uuid" json:"general_grade_published_by,omitempty"`

	GeneralGradeCreatedAt time.Time `gorm:"column:general_grade_created_at;not null;autoCreateTime" json:"general_grade_created_at"`
	GeneralGradeUpdatedAt time.Time `gorm:"column:general_grade_updated_at;not null;autoUpdateTime" json:"general_grade_updated_at"`
}

func (GeneralGradeModel) TableName() string { return "general_grades" }
