package model

import (
	"time"

	"github.com/google/uuid"
)

// Vocational learning-outcome scores: one row per (student, class section,
// RA code), best of original + two remediation attempts on read.
// No published flag — technical grades are not gated by the publication
// workflow (asymmetry kept as observed, see DESIGN.md).
type TechnicalGradeModel struct {
	TechnicalGradeID       uuid.UUID `gorm:"column:technical_grade_id;type:uuid;default:gen_random_uuid();primaryKey" json:"technical_grade_id"`
	TechnicalGradeSchoolID uuid.UUID `gorm:"column:technical_grade_school_id;type:uuid;not null;index" json:"technical_grade_school_id"`

	TechnicalGradeStudentID      uuid.UUID `gorm:"column:technical_grade_student_id;type:uuid;not null;uniqueIndex:uq_technical_grades_cell" json:"technical_grade_student_id"`
	TechnicalGradeClassSectionID uuid.UUID `gorm:"column:technical_grade_class_section_id;type:uuid;not null;uniqueIndex:uq_technical_grades_cell;index" json:"technical_grade_class_section_id"`

	// RA1..RA10
	TechnicalGradeRA string `gorm:"column:technical_grade_ra;type:varchar(8);not null;uniqueIndex:uq_technical_grades_cell" json:"technical_grade_ra"`

	TechnicalGradeOriginal float64 `gorm:"column:technical_grade_original;type:numeric(5,2);not null;default:0" json:"technical_grade_original"`
	TechnicalGradeRec1     float64 `gorm:"column:technical_grade_rec1;type:numeric(5,2);not null;default:0" json:"technical_grade_rec1"`
	TechnicalGradeRec2     float64 `gorm:"column:technical_grade_rec2;type:numeric(5,2);not null;default:0" json:"technical_grade_rec2"`

	TechnicalGradeCreatedAt time.Time `gorm:"column:technical_grade_created_at;not null;autoCreateTime" json:"technical_grade_created_at"`
	TechnicalGradeUpdatedAt time.Time `gorm:"column:technical_grade_updated_at;not null;autoUpdateTime" json:"technical_grade_updated_at"`
}

func (TechnicalGradeModel) TableName() string { return "technical_grades" }
