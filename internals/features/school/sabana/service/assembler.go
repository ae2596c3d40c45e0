package service

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	amodel "sabana_backend/internals/features/school/academics/model"
	"sabana_backend/internals/features/school/sabana/dto"
	gmodel "sabana_backend/internals/features/school/sabana/model"
)

// AssemblerService joins enrollment, class, teacher and raw-grade records for
// one (level, cycle) into the denormalized sábana. Read-only: the caller
// decides whether to populate the cache.
type AssemblerService struct {
	DB *gorm.DB
}

func NewAssembler(db *gorm.DB) *AssemblerService { return &AssemblerService{DB: db} }

type cellKey struct {
	student uuid.UUID
	class   uuid.UUID
}

func (s *AssemblerService) BuildSheet(ctx context.Context, schoolID, levelID, cycleID uuid.UUID) (*dto.SabanaResponse, error) {
	db := s.DB.WithContext(ctx)

	// Tenant scoping happens in the query itself. An id that exists under
	// another school is indistinguishable from an absent one.
	var school amodel.SchoolModel
	if err := db.Where("school_id = ?", schoolID).First(&school).Error; err != nil {
		return nil, notFoundOr500(err)
	}

	var level amodel.GradeLevelModel
	if err := db.
		Where("grade_level_id = ? AND grade_level_school_id = ?", levelID, schoolID).
		First(&level).Error; err != nil {
		return nil, notFoundOr500(err)
	}

	var cycle amodel.AcademicCycleModel
	if err := db.
		Where("academic_cycle_id = ? AND academic_cycle_school_id = ?", cycleID, schoolID).
		First(&cycle).Error; err != nil {
		return nil, notFoundOr500(err)
	}

	cicloEducativo := ""
	if level.GradeLevelCicloEducativo != nil {
		cicloEducativo = *level.GradeLevelCicloEducativo
	}
	formato := ResolveFormato(Formato(level.GradeLevelFormato), level.GradeLevelName, cicloEducativo, school.IsHaiti())

	var classes []amodel.ClassSectionModel
	if err := db.
		Where("class_section_grade_level_id = ? AND class_section_academic_cycle_id = ? AND class_section_school_id = ?",
			levelID, cycleID, schoolID).
		Order("class_section_subject_name ASC, class_section_label ASC").
		Find(&classes).Error; err != nil {
		return nil, errLoadSabana
	}

	sheet := &dto.SabanaResponse{
		GradeLevelID:      level.GradeLevelID,
		GradeLevelName:    level.GradeLevelName,
		AcademicCycleID:   cycle.AcademicCycleID,
		AcademicCycleName: cycle.AcademicCycleName,
		Formato:           string(formato),
		Periods:           formato.Periods(),
		Subjects:          make([]dto.SabanaSubject, 0, len(classes)),
		Students:          []dto.SabanaStudentRow{},
	}

	classIDs := make([]uuid.UUID, 0, len(classes))
	for i := range classes {
		cl := &classes[i]
		classIDs = append(classIDs, cl.ClassSectionID)
		sheet.Subjects = append(sheet.Subjects, dto.SabanaSubject{
			ClassSectionID: cl.ClassSectionID,
			SubjectID:      cl.ClassSectionSubjectID,
			SubjectName:    cl.ClassSectionSubjectName,
			SectionLabel:   cl.ClassSectionLabel,
			TeacherUserID:  cl.ClassSectionTeacherUserID,
			IsTechnical:    cl.ClassSectionSubjectIsTechnical,
		})
	}
	if len(classIDs) == 0 {
		return sheet, nil
	}

	var enrollments []amodel.EnrollmentModel
	if err := db.
		Where("enrollment_class_section_id IN ? AND enrollment_active = ?", classIDs, true).
		Find(&enrollments).Error; err != nil {
		return nil, errLoadSabana
	}

	enrolled := make(map[cellKey]bool, len(enrollments))
	studentIDSet := make(map[uuid.UUID]bool)
	for i := range enrollments {
		e := &enrollments[i]
		enrolled[cellKey{e.EnrollmentStudentID, e.EnrollmentClassSectionID}] = true
		studentIDSet[e.EnrollmentStudentID] = true
	}
	if len(studentIDSet) == 0 {
		return sheet, nil
	}
	studentIDs := make([]uuid.UUID, 0, len(studentIDSet))
	for id := range studentIDSet {
		studentIDs = append(studentIDs, id)
	}

	var students []amodel.StudentModel
	if err := db.Where("student_id IN ?", studentIDs).Find(&students).Error; err != nil {
		return nil, errLoadSabana
	}

	// Every grade row scoped to these classes, folded in memory
	var gens []gmodel.GeneralGradeModel
	if err := db.
		Where("general_grade_class_section_id IN ? AND general_grade_academic_cycle_id = ?", classIDs, cycleID).
		Find(&gens).Error; err != nil {
		return nil, errLoadSabana
	}
	genByCell := make(map[cellKey]*gmodel.GeneralGradeModel, len(gens))
	for i := range gens {
		g := &gens[i]
		genByCell[cellKey{g.GeneralGradeStudentID, g.GeneralGradeClassSectionID}] = g
	}

	var comps []gmodel.CompetencyGradeModel
	if err := db.
		Where("competency_grade_class_section_id IN ? AND competency_grade_academic_cycle_id = ?", classIDs, cycleID).
		Order("competency_grade_codigo ASC").
		Find(&comps).Error; err != nil {
		return nil, errLoadSabana
	}
	compsByCell := make(map[cellKey][]gmodel.CompetencyGradeModel)
	for i := range comps {
		cg := comps[i]
		k := cellKey{cg.CompetencyGradeStudentID, cg.CompetencyGradeClassSectionID}
		compsByCell[k] = append(compsByCell[k], cg)
	}

	var techs []gmodel.TechnicalGradeModel
	if err := db.
		Where("technical_grade_class_section_id IN ?", classIDs).
		Order("technical_grade_ra ASC").
		Find(&techs).Error; err != nil {
		return nil, errLoadSabana
	}
	techsByCell := make(map[cellKey][]gmodel.TechnicalGradeModel)
	for i := range techs {
		tg := techs[i]
		k := cellKey{tg.TechnicalGradeStudentID, tg.TechnicalGradeClassSectionID}
		techsByCell[k] = append(techsByCell[k], tg)
	}

	for i := range students {
		st := &students[i]
		row := dto.SabanaStudentRow{
			StudentID: st.StudentID,
			FirstName: st.StudentFirstName,
			LastName:  st.StudentLastName,
			Cells:     make([]dto.SabanaCell, 0, len(classes)),
		}
		for j := range classes {
			cl := &classes[j]
			row.Cells = append(row.Cells, s.buildCell(st.StudentID, cl, formato, enrolled, genByCell, compsByCell, techsByCell))
		}
		sheet.Students = append(sheet.Students, row)
	}

	// Family-name order, the way the printed sábana lists students
	sort.Slice(sheet.Students, func(a, b int) bool {
		la := strings.ToLower(sheet.Students[a].LastName)
		lb := strings.ToLower(sheet.Students[b].LastName)
		if la != lb {
			return la < lb
		}
		fa := strings.ToLower(sheet.Students[a].FirstName)
		fb := strings.ToLower(sheet.Students[b].FirstName)
		if fa != fb {
			return fa < fb
		}
		return sheet.Students[a].StudentID.String() < sheet.Students[b].StudentID.String()
	})

	return sheet, nil
}

func (s *AssemblerService) buildCell(
	studentID uuid.UUID,
	cl *amodel.ClassSectionModel,
	formato Formato,
	enrolled map[cellKey]bool,
	genByCell map[cellKey]*gmodel.GeneralGradeModel,
	compsByCell map[cellKey][]gmodel.CompetencyGradeModel,
	techsByCell map[cellKey][]gmodel.TechnicalGradeModel,
) dto.SabanaCell {
	k := cellKey{studentID, cl.ClassSectionID}
	g := genByCell[k]
	comps := compsByCell[k]

	comp := ComputeSubject(g, comps, formato)

	cell := dto.SabanaCell{
		Enrolled:  enrolled[k],
		Periods:   comp.Periods,
		CF:        comp.CF,
		CpcBase:   comp.CpcBase,
		CC:        comp.CC,
		CpexBase:  comp.CpexBase,
		CEx:       comp.CEx,
		Final:     comp.Final,
		Situacion: comp.Situacion,
	}
	if g != nil {
		cell.CpcNota = g.GeneralGradeCpcNota
		cell.CpexNota = g.GeneralGradeCpexNota
		cell.Observaciones = g.GeneralGradeObservaciones
		cell.Published = g.GeneralGradePublished
	}
	for i := range comps {
		cg := &comps[i]
		cell.Competencies = append(cell.Competencies, dto.CompetencyCell{
			Codigo:  cg.CompetencyGradeCodigo,
			Periods: CompetencyPeriods(cg, formato),
		})
	}
	if cl.ClassSectionSubjectIsTechnical {
		if tc := ComputeTechnical(techsByCell[k]); tc.Valid {
			tech := &dto.TechnicalCell{Final: tc.Final, Situacion: tc.Situacion}
			for _, o := range tc.Outcomes {
				tech.Outcomes = append(tech.Outcomes, dto.OutcomeCell{
					Codigo:    o.Codigo,
					Original:  o.Original,
					Rec1:      o.Rec1,
					Rec2:      o.Rec2,
					Effective: o.Effective,
				})
			}
			cell.Technical = tech
		}
	}
	return cell
}

var errLoadSabana = fiber.NewError(fiber.StatusInternalServerError, "Error al cargar la sábana")

func notFoundOr500(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Nivel o ciclo no encontrado")
	}
	return errLoadSabana
}
