package service

import (
	"errors"
	"time"

	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"

	"gorm.io/gorm"
)

type EnrollmentService struct {
	EnrollmentRepo *repository.EnrollmentRepository
	CourseRepo     *repository.CourseRepository
	UserRepo       *repository.UserRepository
}

func NewEnrollmentService(
	enrollmentRepo *repository.EnrollmentRepository,
	courseRepo *repository.CourseRepository,
	userRepo *repository.UserRepository,
) *EnrollmentService {
	return &EnrollmentService{
		EnrollmentRepo: enrollmentRepo,
		CourseRepo:     courseRepo,
		UserRepo:       userRepo,
	}
}

// AssignmentResult summarizes a corporate bulk assignment.
type AssignmentResult struct {
	Assigned      int      `json:"assigned"`
	AlreadyHad    int      `json:"alreadyHad"`
	UnknownEmails []string `json:"unknownEmails,omitempty"`
}

func (s *EnrollmentService) Enroll(userID, courseID uint) (*model.Enrollment, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	if !course.IsPublished {
		return nil, util.ErrCourseNotPublished
	}

	if _, err := s.EnrollmentRepo.FindByUserAndCourse(userID, courseID); err == nil {
		return nil, util.ErrAlreadyEnrolled
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	enrollment := &model.Enrollment{
		UserID:         userID,
		CourseID:       courseID,
		ScormStatus:    "not attempted",
		LastAccessedAt: time.Now(),
	}
	if err := s.EnrollmentRepo.Create(enrollment); err != nil {
		return nil, err
	}
	return enrollment, nil
}

// AssignLearners enrolls a batch of learners on behalf of a corporate
// administrator. Unknown emails and existing enrollments are skipped and
// reported back rather than failing the batch.
func (s *EnrollmentService) AssignLearners(assignerID, courseID uint, organizationID *uint, emails []string) (*AssignmentResult, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	// org admins may only assign courses published by their own organization
	if organizationID != nil && course.OrganizationID != *organizationID {
		return nil, util.ErrPermissionDenied
	}

	users, err := s.UserRepo.FindByEmails(emails)
	if err != nil {
		return nil, err
	}

	found := make(map[string]model.User, len(users))
	for _, u := range users {
		found[u.Email] = u
	}

	result := &AssignmentResult{}
	now := time.Now()
	for _, email := range emails {
		user, ok := found[email]
		if !ok {
			result.UnknownEmails = append(result.UnknownEmails, email)
			continue
		}

		if _, err := s.EnrollmentRepo.FindByUserAndCourse(user.ID, courseID); err == nil {
			result.AlreadyHad++
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		enrollment := &model.Enrollment{
			UserID:         user.ID,
			CourseID:       courseID,
			ScormStatus:    "not attempted",
			LastAccessedAt: now,
			AssignedBy:     &assignerID,
		}
		if err := s.EnrollmentRepo.Create(enrollment); err != nil {
			return nil, err
		}
		result.Assigned++
	}

	return result, nil
}

func (s *EnrollmentService) ListForUser(userID uint) ([]model.Enrollment, error) {
	return s.EnrollmentRepo.FindByUser(userID)
}
