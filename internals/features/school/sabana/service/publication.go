package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sabana_backend/internals/constants"
	amodel "sabana_backend/internals/features/school/academics/model"
	"sabana_backend/internals/features/school/sabana/dto"
	gmodel "sabana_backend/internals/features/school/sabana/model"
	helperAuth "sabana_backend/internals/helpers/auth"
)

// Notifier is the external fan-out collaborator. Fire-and-forget from the
// publication's point of view: failures are absorbed and logged, never
// rolled back into the publish.
type Notifier interface {
	NotifyUsers(ctx context.Context, schoolID uuid.UUID, recipients []uuid.UUID, title, message string, payload map[string]any) error
}

// PublicationService bulk-transitions a class's grades draft → published.
// One-way per row; there is no unpublish. Technical grades are not gated by
// publication and are left untouched here.
type PublicationService struct {
	DB       *gorm.DB
	Cache    *SheetCache
	Notifier Notifier
}

func NewPublication(db *gorm.DB, cache *SheetCache, notifier Notifier) *PublicationService {
	return &PublicationService{DB: db, Cache: cache, Notifier: notifier}
}

func (s *PublicationService) PublishClass(ctx context.Context, classID, cycleID uuid.UUID, actor helperAuth.Actor) (*dto.PublishSummaryResponse, error) {
	db := s.DB.WithContext(ctx)

	var cl amodel.ClassSectionModel
	if err := db.
		Where("class_section_id = ? AND class_section_school_id = ?", classID, actor.SchoolID).
		First(&cl).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Clase no encontrada")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Error al cargar la clase")
	}

	if cl.ClassSectionTeacherUserID != actor.UserID &&
		!actor.HasAnyRole(constants.RoleCoordinator, constants.RoleDirector, constants.RoleAdmin, constants.RoleOwner) {
		return nil, fiber.NewError(fiber.StatusForbidden, "No autorizado para publicar esta clase")
	}

	var cycle amodel.AcademicCycleModel
	if err := db.
		Where("academic_cycle_id = ? AND academic_cycle_school_id = ?", cycleID, actor.SchoolID).
		First(&cycle).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Ciclo académico no encontrado")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Error al cargar el ciclo académico")
	}
	// Publishing into an inactive-but-open cycle stays allowed (late
	// publication after year-end rollover); only closed blocks it.
	if cycle.AcademicCycleClosed {
		return nil, fiber.NewError(fiber.StatusUnprocessableEntity, "El ciclo académico está cerrado; no se puede publicar")
	}

	now := time.Now()
	summary := &dto.PublishSummaryResponse{}
	err := db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&gmodel.GeneralGradeModel{}).
			Where("general_grade_class_section_id = ? AND general_grade_academic_cycle_id = ? AND general_grade_published = ?",
				classID, cycleID, false).
			Updates(map[string]interface{}{
				"general_grade_published":    true,
				"general_grade_published_at": now,
				"general_grade_published_by": actor.UserID,
			})
		if res.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Error al publicar las calificaciones")
		}
		summary.GeneralCount = res.RowsAffected

		res = tx.Model(&gmodel.CompetencyGradeModel{}).
			Where("competency_grade_class_section_id = ? AND competency_grade_academic_cycle_id = ? AND competency_grade_published = ?",
				classID, cycleID, false).
			Updates(map[string]interface{}{
				"competency_grade_published":    true,
				"competency_grade_published_at": now,
				"competency_grade_published_by": actor.UserID,
			})
		if res.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Error al publicar las calificaciones")
		}
		summary.CompetencyCount = res.RowsAffected
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Cache.Invalidate(ctx, cl.ClassSectionSchoolID, cl.ClassSectionGradeLevelID, cl.ClassSectionAcademicCycleID)

	s.notifyPublished(ctx, &cl)

	return summary, nil
}

// notifyPublished fans out to every actively-enrolled student of the class.
// Absorb-and-log wrapper: the publish already succeeded.
func (s *PublicationService) notifyPublished(ctx context.Context, cl *amodel.ClassSectionModel) {
	if s.Notifier == nil {
		return
	}

	type row struct {
		UserID uuid.UUID `gorm:"column:student_user_id"`
	}
	var rows []row
	if err := s.DB.WithContext(ctx).
		Table("enrollments").
		Select("students.student_user_id").
		Joins("JOIN students ON students.student_id = enrollments.enrollment_student_id").
		Where("enrollments.enrollment_class_section_id = ? AND enrollments.enrollment_active = ?", cl.ClassSectionID, true).
		Scan(&rows).Error; err != nil {
		log.Printf("[WARN] publicación: no se pudieron cargar los destinatarios: %v", err)
		return
	}

	recipients := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		recipients = append(recipients, r.UserID)
	}

	err := s.Notifier.NotifyUsers(ctx, cl.ClassSectionSchoolID, recipients,
		"Calificaciones publicadas",
		"Las calificaciones de "+cl.ClassSectionSubjectName+" ya están disponibles",
		map[string]any{
			"class_section_id":  cl.ClassSectionID.String(),
			"academic_cycle_id": cl.ClassSectionAcademicCycleID.String(),
		})
	if err != nil {
		log.Printf("[WARN] publicación: notificación falló: %v", err)
	}
}
