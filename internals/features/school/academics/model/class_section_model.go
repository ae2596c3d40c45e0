package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// One class section = one subject, one teacher of record, one level, one cycle.
// Subject name/flags are denormalized here; the subject catalog lives in the
// enrollment module.
type ClassSectionModel struct {
	ClassSectionID       uuid.UUID `gorm:"column:class_section_id;type:uuid;default:gen_random_uuid();primaryKey" json:"class_section_id"`
	ClassSectionSchoolID uuid.UUID `gorm:"column:class_section_school_id;type:uuid;not null;index" json:"class_section_school_id"`

	ClassSectionGradeLevelID    uuid.UUID `gorm:"column:class_section_grade_level_id;type:uuid;not null;index" json:"class_section_grade_level_id"`
	ClassSectionAcademicCycleID uuid.UUID `gorm:"column:class_section_academic_cycle_id;type:uuid;not null;index" json:"class_section_academic_cycle_id"`

	ClassSectionSubjectID          uuid.UUID `gorm:"column:class_section_subject_id;type:uuid;not null" json:"class_section_subject_id"`
	ClassSectionSubjectName        string    `gorm:"column:class_section_subject_name;type:varchar(120);not null" json:"class_section_subject_name"`
	ClassSectionSubjectIsTechnical bool      `gorm:"column:class_section_subject_is_technical;not null;default:false" json:"class_section_subject_is_technical"`

	ClassSectionTeacherUserID uuid.UUID `gorm:"column:class_section_teacher_user_id;type:uuid;not null;index" json:"class_section_teacher_user_id"`
	ClassSectionLabel         string    `gorm:"column:class_section_label;type:varchar(10);not null;default:'A'" json:"class_section_label"`

	ClassSectionCreatedAt time.Time      `gorm:"column:class_section_created_at;not null;autoCreateTime" json:"class_section_created_at"`
	ClassSectionUpdatedAt time.Time      `gorm:"column:class_section_updated_at;not null;autoUpdateTime" json:"class_section_updated_at"`
	ClassSectionDeletedAt gorm.DeletedAt `gorm:"column:class_section_deleted_at;index" json:"class_section_deleted_at,omitempty"`
}

func (ClassSectionModel) TableName() string { return "class_sections" }
