package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"
	"learnhub_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	courseCacheKeyPrefix = "course:detail:"
	courseCacheTTL       = 10 * time.Minute
)

type CourseService struct {
	CourseRepo *repository.CourseRepository
	Redis      *redis.Client
}

func NewCourseService(courseRepo *repository.CourseRepository, rdb *redis.Client) *CourseService {
	return &CourseService{
		CourseRepo: courseRepo,
		Redis:      rdb,
	}
}

type CreateCourseRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"gte=0"`
	CPDPoints   float64 `json:"cpdPoints" binding:"gte=0"`
}

type CreateSectionRequest struct {
	Title    string `json:"title" binding:"required"`
	Position int    `json:"position"`
}

type CreateLectureRequest struct {
	Title      string            `json:"title" binding:"required"`
	Type       model.LectureType `json:"type"`
	Position   int               `json:"position"`
	Duration   int               `json:"duration" binding:"gte=0"`
	ContentURL string            `json:"contentUrl"`
}

func (s *CourseService) CreateCourse(instructorID, organizationID uint, req CreateCourseRequest) (*model.Course, error) {
	course := &model.Course{
		Title:          req.Title,
		Description:    req.Description,
		InstructorID:   instructorID,
		OrganizationID: organizationID,
		Price:          req.Price,
		CPDPoints:      req.CPDPoints,
	}
	if err := s.CourseRepo.Create(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) AddSection(instructorID, courseID uint, req CreateSectionRequest) (*model.Section, error) {
	course, err := s.courseForInstructor(instructorID, courseID)
	if err != nil {
		return nil, err
	}

	section := &model.Section{
		CourseID: course.ID,
		Title:    req.Title,
		Position: req.Position,
	}
	if err := s.CourseRepo.CreateSection(section); err != nil {
		return nil, err
	}
	s.invalidateCache(courseID)
	return section, nil
}

func (s *CourseService) AddLecture(instructorID, sectionID uint, req CreateLectureRequest) (*model.Lecture, error) {
	section, err := s.CourseRepo.FindSectionByID(sectionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSectionNotFound
		}
		return nil, err
	}

	if _, err := s.courseForInstructor(instructorID, section.CourseID); err != nil {
		return nil, err
	}

	lectureType := req.Type
	if lectureType == "" {
		lectureType = model.LectureVideo
	}

	lecture := &model.Lecture{
		SectionID:   section.ID,
		CourseID:    section.CourseID,
		Title:       req.Title,
		Type:        lectureType,
		Position:    req.Position,
		Duration:    req.Duration,
		ContentURL:  req.ContentURL,
		IsPublished: true,
	}
	if err := s.CourseRepo.CreateLecture(lecture); err != nil {
		return nil, err
	}
	s.invalidateCache(section.CourseID)
	return lecture, nil
}

func (s *CourseService) PublishCourse(instructorID, courseID uint) (*model.Course, error) {
	course, err := s.courseForInstructor(instructorID, courseID)
	if err != nil {
		return nil, err
	}

	course.IsPublished = true
	if err := s.CourseRepo.Save(course); err != nil {
		return nil, err
	}
	s.invalidateCache(courseID)
	return course, nil
}

// GetCourse serves the catalog detail through a redis cache; a miss falls
// through to the database and repopulates the key.
func (s *CourseService) GetCourse(ctx context.Context, courseID uint) (*model.Course, error) {
	cacheKey := fmt.Sprintf("%s%d", courseCacheKeyPrefix, courseID)

	if s.Redis != nil {
		if val, err := s.Redis.Get(ctx, cacheKey).Result(); err == nil {
			var course model.Course
			if err := json.Unmarshal([]byte(val), &course); err == nil {
				return &course, nil
			}
		}
	}

	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	if s.Redis != nil {
		if payload, err := json.Marshal(course); err == nil {
			if err := s.Redis.Set(ctx, cacheKey, payload, courseCacheTTL).Err(); err != nil {
				logger.Log.Warn("failed to cache course detail", zap.Uint("courseId", courseID), zap.Error(err))
			}
		}
	}

	return course, nil
}

func (s *CourseService) ListPublished(page, limit int) ([]model.Course, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.CourseRepo.FindPublished(page, limit)
}

func (s *CourseService) courseForInstructor(instructorID, courseID uint) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	if course.InstructorID != instructorID {
		return nil, util.ErrPermissionDenied
	}
	return course, nil
}

func (s *CourseService) invalidateCache(courseID uint) {
	if s.Redis == nil {
		return
	}
	cacheKey := fmt.Sprintf("%s%d", courseCacheKeyPrefix, courseID)
	if err := s.Redis.Del(context.Background(), cacheKey).Err(); err != nil {
		logger.Log.Warn("failed to invalidate course cache", zap.Uint("courseId", courseID), zap.Error(err))
	}
}
