package model

import (
	"time"

	"github.com/google/uuid"
)

// One row per (student, class section, cycle, competency code). The subject's
// period score is the mean of its competencies' period maxima, computed on
// read by the aggregator.
type CompetencyGradeModel struct {
	CompetencyGradeID       uuid.UUID `gorm:"column:competency_grade_id;type:uuid;default:gen_random_uuid();primaryKey" json:"competency_grade_id"`
	CompetencyGradeSchoolID uuid.UUID `gorm:"column:competency_grade_school_id;type:uuid;not null;index" json:"competency_grade_school_id"`

	CompetencyGradeStudentID       uuid.UUID `gorm:"column:competency_grade_student_id;type:uuid;not null;uniqueIndex:uq_competency_grades_cell" json:"competency_grade_student_id"`
	CompetencyGradeClassSectionID  uuid.UUID `gorm:"column:competency_grade_class_section_id;type:uuid;not null;uniqueIndex:uq_competency_grades_cell;index" json:"competency_grade_class_section_id"`
	CompetencyGradeAcademicCycleID uuid.UUID `gorm:"column:competency_grade_academic_cycle_id;type:uuid;not null;uniqueIndex:uq_competency_grades_cell" json:"competency_grade_academic_cycle_id"`

	// One of the five fixed MINERD competency codes (service.CompetencyCodes)
	CompetencyGradeCodigo string `gorm:"column:competency_grade_codigo;type:varchar(8);not null;uniqueIndex:uq_competency_grades_cell" json:"competency_grade_codigo"`

	CompetencyGradeP1 float64 `gorm:"column:competency_grade_p1;type:numeric(5,2);not null;default:0" json:"competency_grade_p1"`
	CompetencyGradeP2 float64 `gorm:"column:competency_grade_p2;type:numeric(5,2);not null;default:0" json:"competency_grade_p2"`
	CompetencyGradeP3 float64 `gorm:"column:competency_grade_p3;type:numeric(5,2);not null;default:0" json:"competency_grade_p3"`
	CompetencyGradeP4 float64 `gorm:"column:competency_grade_p4;type:numeric(5,2);not null;default:0" json:"competency_grade_p4"`

	CompetencyGradeRP1 float64 `gorm:"column:competency_grade_rp1;type:numeric(5,2);not null;default:0" json:"competency_grade_rp1"`
	CompetencyGradeRP2 float64 `gorm:"column:competency_grade_rp2;type:numeric(5,2);not null;default:0" json:"competency_grade_rp2"`
	CompetencyGradeRP3 float64 `gorm:"column:competency_grade_rp3;type:numeric(5,2);not null;default:0" json:"competency_grade_rp3"`
	CompetencyGradeRP4 float64 `gorm:"column:competency_grade_rp4;type:numeric(5,2);not null;default:0" json:"competency_grade_rp4"`

	CompetencyGradePublished   bool       `gorm:"column:competency_grade_published;not null;default:false" json:"competency_grade_published"`
	CompetencyGradePublishedAt *time.Time `gorm:"column:competency_grade_published_at" json:"competency_grade_published_at,omitempty"`
	CompetencyGradePublishedBy *uuid.UUID `gorm:"column:competency_grade_published_by;type:uuid" json:"competency_grade_published_by,omitempty"`

	CompetencyGradeCreatedAt time.Time `gorm:"column:competency_grade_created_at;not null;autoCreateTime" json:"competency_grade_created_at"`
	CompetencyGradeUpdatedAt time.Time `gorm:"column:competency_grade_updated_at;not null;autoUpdateTime" json:"competency_grade_updated_at"`
}

func (CompetencyGradeModel) TableName() string { return "competency_grades" }
