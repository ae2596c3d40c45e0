package model

import (
	"time"

	"github.com/google/uuid"
)

// A student leaving a level deactivates the enrollment; grade rows persist
// for audit. Enrollment rows themselves are never hard-deleted.
type EnrollmentModel struct {
	EnrollmentID       uuid.UUID `gorm:"column:enrollment_id;type:uuid;default:gen_random_uuid();primaryKey" json:"enrollment_id"`
	EnrollmentSchoolID uuid.UUID `gorm:"column:enrollment_school_id;type:uuid;not null;index" json:"enrollment_school_id"`

	EnrollmentStudentID      uuid.UUID `gorm:"column:enrollment_student_id;type:uuid;not null;index" json:"enrollment_student_id"`
	EnrollmentClassSectionID uuid.UUID `gorm:"column:enrollment_class_section_id;type:uuid;not null;index" json:"enrollment_class_section_id"`

	EnrollmentActive bool `gorm:"column:enrollment_active;not null;default:true" json:"enrollment_active"`

	EnrollmentCreatedAt time.Time `gorm:"column:enrollment_created_at;not null;autoCreateTime" json:"enrollment_created_at"`
	EnrollmentUpdatedAt time.Time `gorm:"column:enrollment_updated_at;not null;autoUpdateTime" json:"enrollment_updated_at"`
}

func (EnrollmentModel) TableName() string { return "enrollments" }
