package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	notifService "sabana_backend/internals/features/school/notifications/service"
	sabanaDTO "sabana_backend/internals/features/school/sabana/dto"
	"sabana_backend/internals/features/school/sabana/service"
	helper "sabana_backend/internals/helpers"
	helperAuth "sabana_backend/internals/helpers/auth"
)

type SabanaController struct {
	Sheets      *service.SheetService
	Writer      *service.WriterService
	Publication *service.PublicationService
}

func NewSabanaController(db *gorm.DB, rdb *redis.Client) *SabanaController {
	cache := service.NewSheetCache(service.NewRedisStore(rdb))
	notifier := notifService.NewNotifier(db, notifService.NewRedisPublisher(rdb))
	return &SabanaController{
		Sheets:      service.NewSheet(service.NewAssembler(db), cache),
		Writer:      service.NewWriter(db, cache),
		Publication: service.NewPublication(db, cache, notifier),
	}
}

// GET /sabana/:level_id/:cycle_id
func (h *SabanaController) GetSabana(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromContext(c)
	if err != nil {
		return err
	}

	levelID, err := uuid.Parse(strings.TrimSpace(c.Params("level_id")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID de nivel no válido")
	}
	cycleID, err := uuid.Parse(strings.TrimSpace(c.Params("cycle_id")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID de ciclo no válido")
	}

	sheet, fromCache, err := h.Sheets.GetSheet(c.UserContext(), actor.SchoolID, levelID, cycleID)
	if err != nil {
		return err
	}
	if fromCache {
		c.Set("X-Cache", "HIT")
	}
	return helper.JsonOK(c, "Sábana obtenida", sheet)
}

// PUT /grades
func (h *SabanaController) WriteGrade(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromContext(c)
	if err != nil {
		return err
	}

	var req sabanaDTO.WriteGradeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload no válido")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	resp, err := h.Writer.WriteGrade(c.UserContext(), service.WriteGradeInput{
		ClassSectionID: req.ClassSectionID,
		StudentID:      req.StudentID,
		Field:          req.Field,
		Value:          req.Value,
		Text:           req.Text,
		Competency:     req.Competency,
	}, actor)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Calificación guardada", resp)
}

// POST /classes/:class_id/publish
func (h *SabanaController) PublishClass(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorFromContext(c)
	if err != nil {
		return err
	}

	classID, err := uuid.Parse(strings.TrimSpace(c.Params("class_id")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID de clase no válido")
	}

	var req sabanaDTO.PublishClassRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload no válido")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	summary, err := h.Publication.PublishClass(c.UserContext(), classID, req.AcademicCycleID, actor)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Calificaciones publicadas", summary)
}
