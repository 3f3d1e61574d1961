package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/pkg/database"
	applogger "learnhub_backend/pkg/logger"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	applogger.Log = zap.NewNop()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// a single connection keeps the shared in-memory database alive and
	// serializes sqlite writes under the concurrency tests
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

// fixture wires the full service graph over one test database and seeds a
// published course with the requested number of lectures plus one enrolled
// student.
type fixture struct {
	db           *gorm.DB
	progress     *ProgressService
	certificates *CertificateService
	enrollments  *EnrollmentService

	organization model.Organization
	instructor   model.User
	student      model.User
	course       model.Course
	lectures     []model.Lecture
	enrollment   model.Enrollment
}

func newFixture(t *testing.T, lectureCount int) *fixture {
	t.Helper()

	db := newTestDB(t)

	courseRepo := repository.NewCourseRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	progressRepo := repository.NewLectureProgressRepository(db)
	certRepo := repository.NewCertificateRepository(db)
	orgRepo := repository.NewOrganizationRepository(db)
	userRepo := repository.NewUserRepository(db)

	certs := NewCertificateService(certRepo, enrollmentRepo, courseRepo, orgRepo, progressRepo, db)
	progress := NewProgressService(courseRepo, enrollmentRepo, progressRepo, certs, 80, db)
	enrollments := NewEnrollmentService(enrollmentRepo, courseRepo, userRepo)

	f := &fixture{
		db:           db,
		progress:     progress,
		certificates: certs,
		enrollments:  enrollments,
	}

	require.NoError(t, db.First(&f.organization).Error)

	f.instructor = model.User{Name: "Ina", Email: "ina@example.com", Password: "x", Role: model.Instructor}
	require.NoError(t, db.Create(&f.instructor).Error)

	f.student = model.User{Name: "Sam", Email: "sam@example.com", Password: "x", Role: model.Student}
	require.NoError(t, db.Create(&f.student).Error)

	f.course = model.Course{
		Title:          "Practical Go",
		InstructorID:   f.instructor.ID,
		OrganizationID: f.organization.ID,
		CPDPoints:      3.5,
		IsPublished:    true,
	}
	require.NoError(t, db.Create(&f.course).Error)

	section := model.Section{CourseID: f.course.ID, Title: "Basics"}
	require.NoError(t, db.Create(&section).Error)

	for i := 0; i < lectureCount; i++ {
		lecture := model.Lecture{
			SectionID:   section.ID,
			CourseID:    f.course.ID,
			Title:       fmt.Sprintf("Lecture %d", i+1),
			Position:    i,
			Duration:    600,
			IsPublished: true,
		}
		require.NoError(t, db.Create(&lecture).Error)
		f.lectures = append(f.lectures, lecture)
	}

	f.enrollment = model.Enrollment{
		UserID:         f.student.ID,
		CourseID:       f.course.ID,
		ScormStatus:    "not attempted",
		LastAccessedAt: time.Now(),
	}
	require.NoError(t, db.Create(&f.enrollment).Error)

	return f
}

func (f *fixture) reloadEnrollment(t *testing.T) model.Enrollment {
	t.Helper()
	var enrollment model.Enrollment
	require.NoError(t, f.db.First(&enrollment, f.enrollment.ID).Error)
	return enrollment
}

func (f *fixture) certificateCount(t *testing.T) int64 {
	t.Helper()
	var count int64
	require.NoError(t, f.db.Model(&model.Certificate{}).
		Where("user_id = ? AND course_id = ?", f.student.ID, f.course.ID).
		Count(&count).Error)
	return count
}

func boolPtr(v bool) *bool    { return &v }
func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }
