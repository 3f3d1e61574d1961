package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"
	"learnhub_backend/pkg/monitoring"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CertificateService struct {
	CertRepo       *repository.CertificateRepository
	EnrollmentRepo *repository.EnrollmentRepository
	CourseRepo     *repository.CourseRepository
	OrgRepo        *repository.OrganizationRepository
	ProgressRepo   *repository.LectureProgressRepository
	DB             *gorm.DB
}

func NewCertificateService(
	certRepo *repository.CertificateRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	courseRepo *repository.CourseRepository,
	orgRepo *repository.OrganizationRepository,
	progressRepo *repository.LectureProgressRepository,
	db *gorm.DB,
) *CertificateService {
	return &CertificateService{
		CertRepo:       certRepo,
		EnrollmentRepo: enrollmentRepo,
		CourseRepo:     courseRepo,
		OrgRepo:        orgRepo,
		ProgressRepo:   progressRepo,
		DB:             db,
	}
}

// RequestCertificate is the manual, learner-triggered path. It behaves exactly
// like the automatic trigger except that it re-checks the completed/total
// lecture counts, since the caller asserts nothing about the completion edge.
// An already-issued certificate is returned as-is, never as an error.
func (s *CertificateService) RequestCertificate(userID, courseID uint) (*model.Certificate, error) {
	if _, err := s.EnrollmentRepo.FindByUserAndCourse(userID, courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotEnrolled
		}
		return nil, err
	}

	if cert, err := s.CertRepo.FindByUserAndCourse(userID, courseID); err == nil {
		return cert, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	total, err := s.CourseRepo.CountPublishedLectures(s.DB, courseID)
	if err != nil {
		return nil, err
	}
	completed, err := s.ProgressRepo.CountCompleted(s.DB, userID, courseID)
	if err != nil {
		return nil, err
	}
	if total == 0 || completed < total {
		return nil, util.ErrCourseNotCompleted
	}

	return s.issueIfAbsent(userID, courseID, "manual")
}

// IssueOnCompletion is the automatic path, fired by the progress aggregator on
// the completion edge. The edge itself is the precondition, so only the
// idempotence guard applies.
func (s *CertificateService) IssueOnCompletion(userID, courseID uint) (*model.Certificate, error) {
	return s.issueIfAbsent(userID, courseID, "auto")
}

// issueIfAbsent snapshots the course title, the issuing organization's display
// name and the CPD points at this instant, then performs the race-safe insert.
// Concurrent invocations for the same pair resolve to the single row that won
// the unique index.
func (s *CertificateService) issueIfAbsent(userID, courseID uint, trigger string) (*model.Certificate, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	organizationName := ""
	if org, err := s.OrgRepo.FindByID(course.OrganizationID); err == nil {
		organizationName = org.DisplayName
	}

	cert := &model.Certificate{
		UserID:            userID,
		CourseID:          courseID,
		CertificateNumber: newCertificateNumber(),
		CourseTitle:       course.Title,
		OrganizationName:  organizationName,
		CPDPoints:         course.CPDPoints,
		IssuedAt:          time.Now(),
	}

	issued, err := s.CertRepo.CreateIfAbsent(cert)
	if err != nil {
		return nil, err
	}
	if issued.CertificateNumber == cert.CertificateNumber {
		monitoring.CertificateCounter.WithLabelValues(trigger).Inc()
	}
	return issued, nil
}

func (s *CertificateService) ListForUser(userID uint) ([]model.Certificate, error) {
	return s.CertRepo.FindByUser(userID)
}

// VerifyByNumber resolves a certificate from its public number, for
// third-party verification.
func (s *CertificateService) VerifyByNumber(number string) (*model.Certificate, error) {
	cert, err := s.CertRepo.FindByNumber(number)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCertNotFound
		}
		return nil, err
	}
	return cert, nil
}

func newCertificateNumber() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
	return fmt.Sprintf("LH-%s-%s", time.Now().Format("2006"), raw[:10])
}
