package service

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"sabana_backend/internals/constants"
	amodel "sabana_backend/internals/features/school/academics/model"
	helperAuth "sabana_backend/internals/helpers/auth"
)

// Tables are created with explicit DDL because the production models carry
// postgres-specific defaults (gen_random_uuid) that sqlite can't migrate.
var testDDL = []string{
	`CREATE TABLE schools (
		school_id TEXT PRIMARY KEY,
		school_name TEXT NOT NULL,
		school_national_system TEXT NOT NULL DEFAULT 'rd',
		school_created_at DATETIME,
		school_updated_at DATETIME,
		school_deleted_at DATETIME
	)`,
	`CREATE TABLE grade_levels (
		grade_level_id TEXT PRIMARY KEY,
		grade_level_school_id TEXT NOT NULL,
		grade_level_name TEXT NOT NULL,
		grade_level_formato TEXT NOT NULL DEFAULT 'secundaria_rd',
		grade_level_ciclo_educativo TEXT,
		grade_level_is_active INTEGER NOT NULL DEFAULT 1,
		grade_level_created_at DATETIME,
		grade_level_updated_at DATETIME,
		grade_level_deleted_at DATETIME
	)`,
	`CREATE TABLE academic_cycles (
		academic_cycle_id TEXT PRIMARY KEY,
		academic_cycle_school_id TEXT NOT NULL,
		academic_cycle_name TEXT NOT NULL,
		academic_cycle_start_date DATETIME,
		academic_cycle_end_date DATETIME,
		academic_cycle_active INTEGER NOT NULL DEFAULT 0,
		academic_cycle_closed INTEGER NOT NULL DEFAULT 0,
		academic_cycle_created_at DATETIME,
		academic_cycle_updated_at DATETIME,
		academic_cycle_deleted_at DATETIME
	)`,
	`CREATE TABLE class_sections (
		class_section_id TEXT PRIMARY KEY,
		class_section_school_id TEXT NOT NULL,
		class_section_grade_level_id TEXT NOT NULL,
		class_section_academic_cycle_id TEXT NOT NULL,
		class_section_subject_id TEXT NOT NULL,
		class_section_subject_name TEXT NOT NULL,
		class_section_subject_is_technical INTEGER NOT NULL DEFAULT 0,
		class_section_teacher_user_id TEXT NOT NULL,
		class_section_label TEXT NOT NULL DEFAULT 'A',
		class_section_created_at DATETIME,
		class_section_updated_at DATETIME,
		class_section_deleted_at DATETIME
	)`,
	`CREATE TABLE enrollments (
		enrollment_id TEXT PRIMARY KEY,
		enrollment_school_id TEXT NOT NULL,
		enrollment_student_id TEXT NOT NULL,
		enrollment_class_section_id TEXT NOT NULL,
		enrollment_active INTEGER NOT NULL DEFAULT 1,
		enrollment_created_at DATETIME,
		enrollment_updated_at DATETIME
	)`,
	`CREATE TABLE students (
		student_id TEXT PRIMARY KEY,
		student_school_id TEXT NOT NULL,
		student_user_id TEXT NOT NULL,
		student_first_name TEXT NOT NULL,
		student_last_name TEXT NOT NULL,
		student_created_at DATETIME,
		student_updated_at DATETIME,
		student_deleted_at DATETIME
	)`,
	`CREATE TABLE general_grades (
		general_grade_id TEXT PRIMARY KEY,
		general_grade_school_id TEXT NOT NULL,
		general_grade_student_id TEXT NOT NULL,
		general_grade_class_section_id TEXT NOT NULL,
		general_grade_academic_cycle_id TEXT NOT NULL,
		general_grade_p1 REAL NOT NULL DEFAULT 0,
		general_grade_p2 REAL NOT NULL DEFAULT 0,
		general_grade_p3 REAL NOT NULL DEFAULT 0,
		general_grade_p4 REAL NOT NULL DEFAULT 0,
		general_grade_rp1 REAL NOT NULL DEFAULT 0,
		general_grade_rp2 REAL NOT NULL DEFAULT 0,
		general_grade_rp3 REAL NOT NULL DEFAULT 0,
		general_grade_rp4 REAL NOT NULL DEFAULT 0,
		general_grade_cpc_nota REAL NOT NULL DEFAULT 0,
		general_grade_cpex_nota REAL NOT NULL DEFAULT 0,
		general_grade_promovida REAL NOT NULL DEFAULT 0,
		general_grade_situacion TEXT NOT NULL DEFAULT '',
		general_grade_observaciones TEXT,
		general_grade_published INTEGER NOT NULL DEFAULT 0,
		general_grade_published_at DATETIME,
		general_grade_published_by TEXT,
		general_grade_created_at DATETIME,
		general_grade_updated_at DATETIME,
		UNIQUE (general_grade_student_id, general_grade_class_section_id, general_grade_academic_cycle_id)
	)`,
	`CREATE TABLE competency_grades (
		competency_grade_id TEXT PRIMARY KEY,
		competency_grade_school_id TEXT NOT NULL,
		competency_grade_student_id TEXT NOT NULL,
		competency_grade_class_section_id TEXT NOT NULL,
		competency_grade_academic_cycle_id TEXT NOT NULL,
		competency_grade_codigo TEXT NOT NULL,
		competency_grade_p1 REAL NOT NULL DEFAULT 0,
		competency_grade_p2 REAL NOT NULL DEFAULT 0,
		competency_grade_p3 REAL NOT NULL DEFAULT 0,
		competency_grade_p4 REAL NOT NULL DEFAULT 0,
		competency_grade_rp1 REAL NOT NULL DEFAULT 0,
		competency_grade_rp2 REAL NOT NULL DEFAULT 0,
		competency_grade_rp3 REAL NOT NULL DEFAULT 0,
		competency_grade_rp4 REAL NOT NULL DEFAULT 0,
		competency_grade_published INTEGER NOT NULL DEFAULT 0,
		competency_grade_published_at DATETIME,
		competency_grade_published_by TEXT,
		competency_grade_created_at DATETIME,
		competency_grade_updated_at DATETIME,
		UNIQUE (competency_grade_student_id, competency_grade_class_section_id, competency_grade_academic_cycle_id, competency_grade_codigo)
	)`,
	`CREATE TABLE technical_grades (
		technical_grade_id TEXT PRIMARY KEY,
		technical_grade_school_id TEXT NOT NULL,
		technical_grade_student_id TEXT NOT NULL,
		technical_grade_class_section_id TEXT NOT NULL,
		technical_grade_ra TEXT NOT NULL,
		technical_grade_original REAL NOT NULL DEFAULT 0,
		technical_grade_rec1 REAL NOT NULL DEFAULT 0,
		technical_grade_rec2 REAL NOT NULL DEFAULT 0,
		technical_grade_created_at DATETIME,
		technical_grade_updated_at DATETIME,
		UNIQUE (technical_grade_student_id, technical_grade_class_section_id, technical_grade_ra)
	)`,
	`CREATE TABLE notifications (
		notification_id TEXT PRIMARY KEY,
		notification_school_id TEXT NOT NULL,
		notification_user_id TEXT NOT NULL,
		notification_title TEXT NOT NULL,
		notification_message TEXT NOT NULL,
		notification_payload TEXT,
		notification_read INTEGER NOT NULL DEFAULT 0,
		notification_created_at DATETIME
	)`,
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)

	// :memory: lives per connection
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	for _, ddl := range testDDL {
		require.NoError(t, db.Exec(ddl).Error)
	}
	return db
}

type fixture struct {
	db *gorm.DB

	school amodel.SchoolModel
	level  amodel.GradeLevelModel
	cycle  amodel.AcademicCycleModel
	class  amodel.ClassSectionModel

	teacherID uuid.UUID
	student   amodel.StudentModel
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{db: openTestDB(t), teacherID: uuid.New()}

	f.school = amodel.SchoolModel{
		SchoolID:             uuid.New(),
		SchoolName:           "Colegio San Rafael",
		SchoolNationalSystem: amodel.NationalSystemRD,
	}
	require.NoError(t, f.db.Create(&f.school).Error)

	f.level = amodel.GradeLevelModel{
		GradeLevelID:       uuid.New(),
		GradeLevelSchoolID: f.school.SchoolID,
		GradeLevelName:     "4to de Secundaria",
		GradeLevelFormato:  string(FormatoSecundariaRD),
		GradeLevelIsActive: true,
	}
	require.NoError(t, f.db.Create(&f.level).Error)

	f.cycle = amodel.AcademicCycleModel{
		AcademicCycleID:       uuid.New(),
		AcademicCycleSchoolID: f.school.SchoolID,
		AcademicCycleName:     "2025-2026",
		AcademicCycleActive:   true,
	}
	require.NoError(t, f.db.Create(&f.cycle).Error)

	f.class = f.addClass(t, "Matemática", false)
	f.student = f.enrollStudent(t, "Juan", "Abreu", f.class)
	return f
}

func (f *fixture) addClass(t *testing.T, subjectName string, technical bool) amodel.ClassSectionModel {
	t.Helper()
	cl := amodel.ClassSectionModel{
		ClassSectionID:                 uuid.New(),
		ClassSectionSchoolID:           f.school.SchoolID,
		ClassSectionGradeLevelID:       f.level.GradeLevelID,
		ClassSectionAcademicCycleID:    f.cycle.AcademicCycleID,
		ClassSectionSubjectID:          uuid.New(),
		ClassSectionSubjectName:        subjectName,
		ClassSectionSubjectIsTechnical: technical,
		ClassSectionTeacherUserID:      f.teacherID,
		ClassSectionLabel:              "A",
	}
	require.NoError(t, f.db.Create(&cl).Error)
	return cl
}

func (f *fixture) enrollStudent(t *testing.T, first, last string, classes ...amodel.ClassSectionModel) amodel.StudentModel {
	t.Helper()
	st := amodel.StudentModel{
		StudentID:        uuid.New(),
		StudentSchoolID:  f.school.SchoolID,
		StudentUserID:    uuid.New(),
		StudentFirstName: first,
		StudentLastName:  last,
	}
	require.NoError(t, f.db.Create(&st).Error)
	for _, cl := range classes {
		e := amodel.EnrollmentModel{
			EnrollmentID:             uuid.New(),
			EnrollmentSchoolID:       f.school.SchoolID,
			EnrollmentStudentID:      st.StudentID,
			EnrollmentClassSectionID: cl.ClassSectionID,
			EnrollmentActive:         true,
		}
		require.NoError(t, f.db.Create(&e).Error)
	}
	return st
}

func (f *fixture) enrollInClass(t *testing.T, st amodel.StudentModel, cl amodel.ClassSectionModel) {
	t.Helper()
	e := amodel.EnrollmentModel{
		EnrollmentID:             uuid.New(),
		EnrollmentSchoolID:       f.school.SchoolID,
		EnrollmentStudentID:      st.StudentID,
		EnrollmentClassSectionID: cl.ClassSectionID,
		EnrollmentActive:         true,
	}
	require.NoError(t, f.db.Create(&e).Error)
}

func (f *fixture) teacherActor() helperAuth.Actor {
	return helperAuth.Actor{
		UserID:   f.teacherID,
		SchoolID: f.school.SchoolID,
		Roles:    []string{constants.RoleTeacher},
	}
}

func (f *fixture) directorActor() helperAuth.Actor {
	return helperAuth.Actor{
		UserID:   uuid.New(),
		SchoolID: f.school.SchoolID,
		Roles:    []string{constants.RoleDirector},
	}
}

func (f *fixture) coordinatorActor() helperAuth.Actor {
	return helperAuth.Actor{
		UserID:   uuid.New(),
		SchoolID: f.school.SchoolID,
		Roles:    []string{constants.RoleCoordinator},
	}
}

func (f *fixture) strangerActor() helperAuth.Actor {
	return helperAuth.Actor{
		UserID:   uuid.New(),
		SchoolID: f.school.SchoolID,
		Roles:    []string{constants.RoleTeacher},
	}
}

func floatPtr(v float64) *float64 { return &v }

func requireFiberCode(t *testing.T, err error, code int) {
	t.Helper()
	require.Error(t, err)
	fe, ok := err.(*fiber.Error)
	require.True(t, ok, "expected *fiber.Error, got %T: %v", err, err)
	require.Equal(t, code, fe.Code, fe.Message)
}
