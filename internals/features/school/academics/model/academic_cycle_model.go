package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NOTE:
// - exactly one active cycle per school at a time (enforced by the
//   administration module, not here)
// - closed is terminal for grade writes: once set, no grade in the
//   cycle may be mutated. Only an administrative action flips it.
type AcademicCycleModel struct {
	AcademicCycleID       uuid.UUID `gorm:"column:academic_cycle_id;type:uuid;default:gen_random_uuid();primaryKey" json:"academic_cycle_id"`
	AcademicCycleSchoolID uuid.UUID `gorm:"column:academic_cycle_school_id;type:uuid;not null;index" json:"academic_cycle_school_id"`

	AcademicCycleName      string     `gorm:"column:academic_cycle_name;type:varchar(60);not null" json:"academic_cycle_name"`
	AcademicCycleStartDate *time.Time `gorm:"column:academic_cycle_start_date" json:"academic_cycle_start_date,omitempty"`
	AcademicCycleEndDate   *time.Time `gorm:"column:academic_cycle_end_date" json:"academic_cycle_end_date,omitempty"`

	AcademicCycleActive bool `gorm:"column:academic_cycle_active;not null;default:false" json:"academic_cycle_active"`
	AcademicCycleClosed bool `gorm:"column:academic_cycle_closed;not null;default:false" json:"academic_cycle_closed"`

	AcademicCycleCreatedAt time.Time      `gorm:"column:academic_cycle_created_at;not null;autoCreateTime" json:"academic_cycle_created_at"`
	AcademicCycleUpdatedAt time.Time      `gorm:"column:academic_cycle_updated_at;not null;autoUpdateTime" json:"academic_cycle_updated_at"`
	AcademicCycleDeletedAt gorm.DeletedAt `gorm:"column:academic_cycle_deleted_at;index" json:"academic_cycle_deleted_at,omitempty"`
}

func (AcademicCycleModel) TableName() string { return "academic_cycles" }
