package service

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sabana_backend/internals/constants"
	amodel "sabana_backend/internals/features/school/academics/model"
	"sabana_backend/internals/features/school/sabana/dto"
	gmodel "sabana_backend/internals/features/school/sabana/model"
	helperAuth "sabana_backend/internals/helpers/auth"
)

// WriterService performs one cell mutation: general period score, competency
// score, technical outcome score or free-text remarks. Last write wins on a
// cell — grade entry is single-operator by convention, not system-enforced.
type WriterService struct {
	DB    *gorm.DB
	Cache *SheetCache
}

func NewWriter(db *gorm.DB, cache *SheetCache) *WriterService {
	return &WriterService{DB: db, Cache: cache}
}

type WriteGradeInput struct {
	ClassSectionID uuid.UUID
	StudentID      uuid.UUID
	Field          string
	Value          *float64
	Text           *string
	Competency     *string
}

func (s *WriterService) WriteGrade(ctx context.Context, in WriteGradeInput, actor helperAuth.Actor) (*dto.WriteGradeResponse, error) {
	db := s.DB.WithContext(ctx)

	var cl amodel.ClassSectionModel
	if err := db.
		Where("class_section_id = ? AND class_section_school_id = ?", in.ClassSectionID, actor.SchoolID).
		First(&cl).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Clase no encontrada")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Error al cargar la clase")
	}

	// Teacher of record, or a director-level capability within the tenant
	if cl.ClassSectionTeacherUserID != actor.UserID &&
		!actor.HasAnyRole(constants.RoleDirector, constants.RoleAdmin, constants.RoleOwner) {
		return nil, fiber.NewError(fiber.StatusForbidden, "No autorizado para calificar esta clase")
	}

	var cycle amodel.AcademicCycleModel
	if err := db.
		Where("academic_cycle_id = ? AND academic_cycle_school_id = ?", cl.ClassSectionAcademicCycleID, actor.SchoolID).
		First(&cycle).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Ciclo académico no encontrado")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Error al cargar el ciclo académico")
	}
	if cycle.AcademicCycleClosed || !cycle.AcademicCycleActive {
		return nil, fiber.NewError(fiber.StatusUnprocessableEntity, "El ciclo académico está cerrado o inactivo; no se pueden editar calificaciones")
	}

	target, err := ResolveField(in.Field, in.Competency)
	if err != nil {
		return nil, err
	}

	if target.Kind != FieldRemarks {
		// Null only makes sense for a technical cell (it deletes the row)
		if in.Value == nil && target.Kind != FieldTechnical {
			return nil, fiber.NewError(fiber.StatusUnprocessableEntity, "Valor de calificación requerido")
		}
		if in.Value != nil && (*in.Value < 0 || *in.Value > 100) {
			return nil, fiber.NewError(fiber.StatusUnprocessableEntity, "La calificación debe estar entre 0 y 100")
		}

		// Remarks skip this check on purpose: a teacher may leave feedback
		// even after a roster change.
		var cnt int64
		if err := db.Model(&amodel.EnrollmentModel{}).
			Where("enrollment_student_id = ? AND enrollment_class_section_id = ? AND enrollment_active = ?",
				in.StudentID, in.ClassSectionID, true).
			Count(&cnt).Error; err != nil {
			return nil, fiber.NewError(fiber.StatusInternalServerError, "Error al verificar la inscripción")
		}
		if cnt == 0 {
			return nil, fiber.NewError(fiber.StatusNotFound, "El estudiante no tiene inscripción activa en esta clase")
		}
	}

	var resp *dto.WriteGradeResponse
	err = db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		switch target.Kind {
		case FieldTechnical:
			resp, txErr = s.writeTechnical(tx, &cl, in.StudentID, target, in.Value)
		case FieldCompetency:
			resp, txErr = s.writeCompetency(tx, &cl, in.StudentID, target, *in.Value)
		case FieldRemarks:
			resp, txErr = s.writeRemarks(tx, &cl, in.StudentID, in.Text)
		default:
			resp, txErr = s.writeGeneral(tx, &cl, in.StudentID, target, *in.Value)
		}
		return txErr
	})
	if err != nil {
		return nil, err
	}

	// Mandatory: the durable write is committed, now drop the cached sheet
	// before reporting success so the next read rebuilds from source.
	s.Cache.Invalidate(ctx, cl.ClassSectionSchoolID, cl.ClassSectionGradeLevelID, cl.ClassSectionAcademicCycleID)

	return resp, nil
}

/* =========================================================
   ROUTED UPSERTS
   ========================================================= */

func (s *WriterService) writeGeneral(tx *gorm.DB, cl *amodel.ClassSectionModel, studentID uuid.UUID, target FieldTarget, value float64) (*dto.WriteGradeResponse, error) {
	var g gmodel.GeneralGradeModel
	err := tx.
		Where("general_grade_student_id = ? AND general_grade_class_section_id = ? AND general_grade_academic_cycle_id = ?",
			studentID, cl.ClassSectionID, cl.ClassSectionAcademicCycleID).
		Take(&g).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		g = s.newGeneralRow(cl, studentID)
		applyGeneralColumn(&g, target.Column, value)
		if err := tx.Create(&g).Error; err != nil {
			return nil, fiber.NewError(fiber.StatusInternalServerError, "Error al guardar la calificación")
		}
	case err != nil:
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Error al cargar la calificación")
	default:
		// An edited cell goes back to draft
		updates := map[string]interface{}{
			target.Column:                value,
			"general_grade_published":    false,
			"general_grade_published_at": nil,
			"general_grade_published_by": nil,
		}
		if err := tx.Model(&gmodel.GeneralGradeModel{}).
			Where("general_grade_id = ?", g.GeneralGradeID).
			Updates(updates).Error; err != nil {
			return nil, fiber.NewError(fiber.StatusInternalServerError, "Error al guardar la calificación")
		}
		if err := tx.Where("general_grade_id = ?", g.GeneralGradeID).Take(&g).Error; err != nil {
			return nil, fiber.NewError(fiber.StatusInternalServerError, "Error al cargar la calificación")
		}
	}

	return &dto.WriteGradeResponse{Kind: "general", General: &g}, nil
}

func (s *WriterService) writeRemarks(tx *gorm.DB, cl *amodel.ClassSectionModel, studentID uuid.UUID, text *string) (*dto.WriteGradeResponse, error) {
	var g gmodel.GeneralGradeModel
	err := tx.
		Where("general_grade_student_id = ? AND general_grade_class_section_id = ? AND general_grade_academic_cycle_id = ?",
			studentID, cl.ClassSectionID, cl.ClassSectionAcademicCycleID).
		Take(&g).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		g = s.newGeneralRow(cl, studentID)
		g.GeneralGradeObservaciones = text
		if err := tx.Create(&g).Error; err != nil {
			return nil, fiber.NewError(fiber.StatusInternalServerError, "Error al guardar las observaciones")
		}
	case err != nil:
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Error al cargar la calificación")
	default:
		// Remarks do not unpublish the row
		if err := tx.Model(&gmodel.GeneralGradeModel{}).
			Where("general_grade_id = ?", g.GeneralGradeID).
			Update("general_grade_observaciones", text).Error; err != nil {
			return nil, fiber.NewError(fiber.StatusInternalServerError, "Error al guardar las observaciones")
		}
		g.GeneralGradeObservaciones = text
	}

	return &dto.WriteGradeResponse{Kind: "remarks", General: &g}, nil
}

func (s *WriterService) writeCompetency(tx *gorm.DB, cl *amodel.ClassSectionModel, studentID uuid.UUID, target FieldTarget, value float64) (*dto.WriteGradeResponse, error) {
	var cg gmodel.CompetencyGradeModel
	err := tx.
		Where("competency_grade_student_id = ? AND competency_grade_class_section_id = ? AND competency_grade_academic_cycle_id = ? AND competency_grade_codigo = ?",
			studentID, cl.ClassSectionID, cl.ClassSectionAcademicCycleID, target.Competency).
		Take(&cg).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		cg = gmodel.CompetencyGradeModel{
			CompetencyGradeID:              uuid.New(),
			CompetencyGradeSchoolID:        cl.ClassSectionSchoolID,
			CompetencyGradeStudentID:       studentID,
			CompetencyGradeClassSectionID:  cl.ClassSectionID,
			CompetencyGradeAcademicCycleID: cl.ClassSectionAcademicCycleID,
			CompetencyGradeCodigo:          target.Competency,
		}
		applyCompetencyColumn(&cg, target.Column, value)
		if err := tx.Create(&cg).Error; err != nil {
			return nil, fiber.NewError(fiber.StatusInternalServerError, "Error al guardar la calificación")
		}
	case err != nil:
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Error al cargar la calificación")
	default:
		updates := map[string]interface{}{
			target.Column:                   value,
			"competency_grade_published":    false,
			"competency_grade_published_at": nil,
			"competency_grade_published_by": nil,
		}
		if err := tx.Model(&gmodel.CompetencyGradeModel{}).
			Where("competency_grade_id = ?", cg.CompetencyGradeID).
			Updates(updates).Error; err != nil {
			return nil, fiber.NewError(fiber.StatusInternalServerError, "Error al guardar la calificación")
		}
		if err := tx.Where("competency_grade_id = ?", cg.CompetencyGradeID).Take(&cg).Error; err != nil {
			return nil, fiber.NewError(fiber.StatusInternalServerError, "Error al cargar la calificación")
		}
	}

	return &dto.WriteGradeResponse{Kind: "competency", Competency: &cg}, nil
}

func (s *WriterService) writeTechnical(tx *gorm.DB, cl *amodel.ClassSectionModel, studentID uuid.UUID, target FieldTarget, value *float64) (*dto.WriteGradeResponse, error) {
	// Null deletes the outcome row instead of storing a sentinel
	if value == nil {
		if err := tx.
			Where("technical_grade_student_id = ? AND technical_grade_class_section_id = ? AND technical_grade_ra = ?",
				studentID, cl.ClassSectionID, target.Outcome).
			Delete(&gmodel.TechnicalGradeModel{}).Error; err != nil {
			return nil, fiber.NewError(fiber.StatusInternalServerError, "Error al eliminar la calificación")
		}
		return &dto.WriteGradeResponse{Kind: "technical", Deleted: true}, nil
	}

	var tg gmodel.TechnicalGradeModel
	err := tx.
		Where("technical_grade_student_id = ? AND technical_grade_class_section_id = ? AND technical_grade_ra = ?",
			studentID, cl.ClassSectionID, target.Outcome).
		Take(&tg).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		tg = gmodel.TechnicalGradeModel{
			TechnicalGradeID:             uuid.New(),
			TechnicalGradeSchoolID:       cl.ClassSectionSchoolID,
			TechnicalGradeStudentID:      studentID,
			TechnicalGradeClassSectionID: cl.ClassSectionID,
			TechnicalGradeRA:             target.Outcome,
		}
		applyTechnicalColumn(&tg, target.Column, *value)
		if err := tx.Create(&tg).Error; err != nil {
			return nil, fiber.NewError(fiber.StatusInternalServerError, "Error al guardar la calificación")
		}
	case err != nil:
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Error al cargar la calificación")
	default:
		if err := tx.Model(&gmodel.TechnicalGradeModel{}).
			Where("technical_grade_id = ?", tg.TechnicalGradeID).
			Update(target.Column, *value).Error; err != nil {
			return nil, fiber.NewError(fiber.StatusInternalServerError, "Error al guardar la calificación")
		}
		applyTechnicalColumn(&tg, target.Column, *value)
	}

	return &dto.WriteGradeResponse{Kind: "technical", Technical: &tg}, nil
}

func (s *WriterService) newGeneralRow(cl *amodel.ClassSectionModel, studentID uuid.UUID) gmodel.GeneralGradeModel {
	return gmodel.GeneralGradeModel{
		GeneralGradeID:              uuid.New(),
		GeneralGradeSchoolID:        cl.ClassSectionSchoolID,
		GeneralGradeStudentID:       studentID,
		GeneralGradeClassSectionID:  cl.ClassSectionID,
		GeneralGradeAcademicCycleID: cl.ClassSectionAcademicCycleID,
	}
}

func applyGeneralColumn(g *gmodel.GeneralGradeModel, column string, v float64) {
	switch column {
	case "general_grade_p1":
		g.GeneralGradeP1 = v
	case "general_grade_p2":
		g.GeneralGradeP2 = v
	case "general_grade_p3":
		g.GeneralGradeP3 = v
	case "general_grade_p4":
		g.GeneralGradeP4 = v
	case "general_grade_rp1":
		g.GeneralGradeRP1 = v
	case "general_grade_rp2":
		g.GeneralGradeRP2 = v
	case "general_grade_rp3":
		g.GeneralGradeRP3 = v
	case "general_grade_rp4":
		g.GeneralGradeRP4 = v
	case "general_grade_cpc_nota":
		g.GeneralGradeCpcNota = v
	case "general_grade_cpex_nota":
		g.GeneralGradeCpexNota = v
	}
}

func applyCompetencyColumn(cg *gmodel.CompetencyGradeModel, column string, v float64) {
	switch column {
	case "competency_grade_p1":
		cg.CompetencyGradeP1 = v
	case "competency_grade_p2":
		cg.CompetencyGradeP2 = v
	case "competency_grade_p3":
		cg.CompetencyGradeP3 = v
	case "competency_grade_p4":
		cg.CompetencyGradeP4 = v
	case "competency_grade_rp1":
		cg.CompetencyGradeRP1 = v
	case "competency_grade_rp2":
		cg.CompetencyGradeRP2 = v
	case "competency_grade_rp3":
		cg.CompetencyGradeRP3 = v
	case "competency_grade_rp4":
		cg.CompetencyGradeRP4 = v
	}
}

func applyTechnicalColumn(tg *gmodel.TechnicalGradeModel, column string, v float64) {
	switch column {
	case "technical_grade_original":
		tg.TechnicalGradeOriginal = v
	case "technical_grade_rec1":
		tg.TechnicalGradeRec1 = v
	case "technical_grade_rec2":
		tg.TechnicalGradeRec2 = v
	}
}
