package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	NationalSystemRD = "rd" // MINERD (República Dominicana)
	NationalSystemHT = "ht" // MENFP (Haïti)
)

// School is the tenant. Every query in the engine is scoped by school id;
// cross-tenant lookups fail as NotFound, never as Forbidden.
type SchoolModel struct {
	SchoolID   uuid.UUID `gorm:"column:school_id;type:uuid;default:gen_random_uuid();primaryKey" json:"school_id"`
	SchoolName string    `gorm:"column:school_name;type:varchar(160);not null" json:"school_name"`

	// Drives the format resolver's Haiti/DR variant selection
	SchoolNationalSystem string `gorm:"column:school_national_system;type:varchar(2);not null;default:'rd'" json:"school_national_system"`

	SchoolCreatedAt time.Time      `gorm:"column:school_created_at;not null;autoCreateTime" json:"school_created_at"`
	SchoolUpdatedAt time.Time      `gorm:"column:school_updated_at;not null;autoUpdateTime" json:"school_updated_at"`
	SchoolDeletedAt gorm.DeletedAt `gorm:"column:school_deleted_at;index" json:"school_deleted_at,omitempty"`
}

func (SchoolModel) TableName() string { return "schools" }

func (s *SchoolModel) IsHaiti() bool { return s.SchoolNationalSystem == NationalSystemHT }
