package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NOTE:
// - grade_level_formato: ruleset key for the sábana engine
//   (inicial|primaria|secundaria|politecnico × _rd|_ht).
//   Legacy rows may still carry the historical default; the format
//   resolver second-guesses only that value.
// - grade_level_ciclo_educativo: optional grouping name
//   ("Primer Ciclo Secundaria", "École Fondamentale", ...)
type GradeLevelModel struct {
	GradeLevelID       uuid.UUID `gorm:"column:grade_level_id;type:uuid;default:gen_random_uuid();primaryKey" json:"grade_level_id"`
	GradeLevelSchoolID uuid.UUID `gorm:"column:grade_level_school_id;type:uuid;not null;index" json:"grade_level_school_id"`

	GradeLevelName           string  `gorm:"column:grade_level_name;type:varchar(120);not null" json:"grade_level_name"`
	GradeLevelFormato        string  `gorm:"column:grade_level_formato;type:varchar(40);not null;default:'secundaria_rd'" json:"grade_level_formato"`
	GradeLevelCicloEducativo *string `gorm:"column:grade_level_ciclo_educativo;type:varchar(120)" json:"grade_level_ciclo_educativo,omitempty"`

	GradeLevelIsActive  bool           `gorm:"column:grade_level_is_active;not null;default:true" json:"grade_level_is_active"`
	GradeLevelCreatedAt time.Time      `gorm:"column:grade_level_created_at;not null;autoCreateTime" json:"grade_level_created_at"`
	GradeLevelUpdatedAt time.Time      `gorm:"column:grade_level_updated_at;not null;autoUpdateTime" json:"grade_level_updated_at"`
	GradeLevelDeletedAt gorm.DeletedAt `gorm:"column:grade_level_deleted_at;index" json:"grade_level_deleted_at,omitempty"`
}

func (GradeLevelModel) TableName() string { return "grade_levels" }
