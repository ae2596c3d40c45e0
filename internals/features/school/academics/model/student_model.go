package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StudentModel struct {
	StudentID       uuid.UUID `gorm:"column:student_id;type:uuid;default:gen_random_uuid();primaryKey" json:"student_id"`
	StudentSchoolID uuid.UUID `gorm:"column:student_school_id;type:uuid;not null;index" json:"student_school_id"`

	// Link to the platform account (login, notifications)
	StudentUserID uuid.UUID `gorm:"column:student_user_id;type:uuid;not null;index" json:"student_user_id"`

	StudentFirstName string `gorm:"column:student_first_name;type:varchar(80);not null" json:"student_first_name"`
	StudentLastName  string `gorm:"column:student_last_name;type:varchar(80);not null" json:"student_last_name"`

	StudentCreatedAt time.Time      `gorm:"column:student_created_at;not null;autoCreateTime" json:"student_created_at"`
	StudentUpdatedAt time.Time      `gorm:"column:student_updated_at;not null;autoUpdateTime" json:"student_updated_at"`
	StudentDeletedAt gorm.DeletedAt `gorm:"column:student_deleted_at;index" json:"student_deleted_at,omitempty"`
}

func (StudentModel) TableName() string { return "students" }
