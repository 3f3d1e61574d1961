package service

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/scorm"
	"learnhub_backend/internal/util"
	"learnhub_backend/pkg/logger"
	"learnhub_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ProgressService struct {
	CourseRepo     *repository.CourseRepository
	EnrollmentRepo *repository.EnrollmentRepository
	ProgressRepo   *repository.LectureProgressRepository
	Certificates   *CertificateService
	PassingScore   float64
	DB             *gorm.DB

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewProgressService(
	courseRepo *repository.CourseRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	progressRepo *repository.LectureProgressRepository,
	certificates *CertificateService,
	passingScore float64,
	db *gorm.DB,
) *ProgressService {
	if passingScore <= 0 {
		passingScore = scorm.DefaultPassingScore
	}
	return &ProgressService{
		CourseRepo:     courseRepo,
		EnrollmentRepo: enrollmentRepo,
		ProgressRepo:   progressRepo,
		Certificates:   certificates,
		PassingScore:   passingScore,
		DB:             db,
		locks:          make(map[string]*sync.Mutex),
	}
}

// LectureProgressReport is a partial update: nil fields were not supplied and
// leave the stored value untouched.
type LectureProgressReport struct {
	IsCompleted     *bool `json:"isCompleted"`
	WatchedDuration *int  `json:"watchedDuration" binding:"omitempty,gte=0"`
	LastPosition    *int  `json:"lastPosition" binding:"omitempty,gte=0"`
	QuizCorrect     *int  `json:"quizCorrect"`
	QuizTotal       *int  `json:"quizTotal"`

	// opaque SCORM passthrough, stored verbatim except for the session-time
	// accumulation into the running total
	ScormSessionTime    *string `json:"scormSessionTime"`
	ScormLessonLocation *string `json:"scormLessonLocation"`
	ScormSuspendData    *string `json:"scormSuspendData"`
}

type ProgressResult struct {
	NewProgress   int                `json:"newProgress"`
	JustCompleted bool               `json:"justCompleted"`
	ScormStatus   scorm.LessonStatus `json:"scormStatus"`
	Certificate   *model.Certificate `json:"certificate,omitempty"`
}

// CourseProgress is the learner-facing view of one enrollment.
type CourseProgress struct {
	Enrollment *model.Enrollment       `json:"enrollment"`
	Lectures   []model.LectureProgress `json:"lectures"`
}

// enrollmentLock serializes the recount/write/detect sequence per
// (learner, course) so the report that reaches 100% can never base its
// recount on a stale completed-lecture count.
func (s *ProgressService) enrollmentLock(userID, courseID uint) *sync.Mutex {
	key := fmt.Sprintf("%d:%d", userID, courseID)

	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[key]
	if !ok {
		l = &sync.Mutex{}
		s.locks[key] = l
	}
	return l
}

// ReportLectureOutcome upserts the learner's per-lecture progress row,
// recomputes the enrollment percentage from a fresh count and detects the
// completion edge. The lecture-progress upsert and the enrollment update are
// one transaction: completed_at can never be recorded without the matching
// 100% progress or vice versa.
func (s *ProgressService) ReportLectureOutcome(userID, lectureID uint, report LectureProgressReport) (*ProgressResult, error) {
	lecture, err := s.CourseRepo.FindLectureByID(lectureID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLectureNotFound
		}
		return nil, err
	}

	// enrollment guard, rejected before any mutation
	enrollment, err := s.EnrollmentRepo.FindByUserAndCourse(userID, lecture.CourseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotEnrolled
		}
		return nil, err
	}

	lock := s.enrollmentLock(userID, lecture.CourseID)
	lock.Lock()
	defer lock.Unlock()

	result := &ProgressResult{}
	now := time.Now()

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		row, err := s.ProgressRepo.FindByUserAndLecture(tx, userID, lectureID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			row = &model.LectureProgress{
				UserID:    userID,
				LectureID: lectureID,
				CourseID:  lecture.CourseID,
			}
		} else if err != nil {
			return err
		}

		s.mergeReport(row, lecture, report, now)

		if err := tx.Save(row).Error; err != nil {
			return err
		}

		total, err := s.CourseRepo.CountPublishedLectures(tx, lecture.CourseID)
		if err != nil {
			return err
		}
		completed, err := s.ProgressRepo.CountCompleted(tx, userID, lecture.CourseID)
		if err != nil {
			return err
		}

		newProgress := 0
		if total > 0 {
			newProgress = int(math.Round(float64(completed) / float64(total) * 100))
		}

		// the pre-lock enrollment read may be stale when reports race;
		// the edge decision needs the current completed_at
		var fresh model.Enrollment
		if err := tx.First(&fresh, enrollment.ID).Error; err != nil {
			return err
		}

		justCompleted := newProgress == 100 && fresh.CompletedAt == nil
		status := scorm.StatusFromProgress(float64(newProgress))

		updates := map[string]interface{}{
			"progress":         newProgress,
			"scorm_status":     string(status),
			"last_accessed_at": now,
		}
		if justCompleted {
			// set once, never overwritten by later reports
			updates["completed_at"] = now
		}
		if err := tx.Model(&model.Enrollment{}).Where("id = ?", enrollment.ID).
			Updates(updates).Error; err != nil {
			return err
		}

		result.NewProgress = newProgress
		result.JustCompleted = justCompleted
		result.ScormStatus = status
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.JustCompleted {
		monitoring.CompletionCounter.WithLabelValues("report").Inc()

		cert, err := s.Certificates.IssueOnCompletion(userID, lecture.CourseID)
		if err != nil {
			// the enrollment already records completed_at; the manual
			// certificate endpoint can retry the issuance
			logger.Log.Error("automatic certificate issuance failed",
				zap.Uint("userId", userID),
				zap.Uint("courseId", lecture.CourseID),
				zap.Error(err))
		} else {
			result.Certificate = cert
		}
	}

	return result, nil
}

// mergeReport applies the partial update onto the stored row.
func (s *ProgressService) mergeReport(row *model.LectureProgress, lecture *model.Lecture, report LectureProgressReport, now time.Time) {
	if report.WatchedDuration != nil {
		row.WatchedDuration = *report.WatchedDuration
	}
	if report.LastPosition != nil {
		row.LastPosition = *report.LastPosition
	}
	if report.ScormLessonLocation != nil {
		row.ScormLessonLocation = *report.ScormLessonLocation
	}
	if report.ScormSuspendData != nil {
		row.ScormSuspendData = *report.ScormSuspendData
	}
	if report.ScormSessionTime != nil {
		row.ScormSessionTime = *report.ScormSessionTime
		row.ScormTotalTime = scorm.AddDurations(row.ScormTotalTime, *report.ScormSessionTime)
	}
	if report.QuizCorrect != nil && report.QuizTotal != nil {
		score := scorm.ScoreFromCounts(*report.QuizCorrect, *report.QuizTotal)
		row.QuizScore = &score
	}

	if report.IsCompleted != nil {
		if *report.IsCompleted && !row.IsCompleted {
			completedAt := now
			row.CompletedAt = &completedAt
		} else if !*report.IsCompleted && row.IsCompleted {
			row.CompletedAt = nil
		}
		row.IsCompleted = *report.IsCompleted
	}

	row.ScormLessonStatus = string(scorm.DeriveLessonStatus(s.lecturePercent(row, lecture), row.QuizScore, s.PassingScore))
}

func (s *ProgressService) lecturePercent(row *model.LectureProgress, lecture *model.Lecture) float64 {
	if row.IsCompleted {
		return 100
	}
	if lecture.Duration > 0 && row.WatchedDuration > 0 {
		percent := float64(row.WatchedDuration) / float64(lecture.Duration) * 100
		if percent > 100 {
			percent = 100
		}
		return percent
	}
	if row.WatchedDuration > 0 || row.LastPosition > 0 || row.QuizScore != nil {
		return 1
	}
	return 0
}

// GetCourseProgress returns the enrollment and its per-lecture rows.
func (s *ProgressService) GetCourseProgress(userID, courseID uint) (*CourseProgress, error) {
	enrollment, err := s.EnrollmentRepo.FindByUserAndCourse(userID, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotEnrolled
		}
		return nil, err
	}

	lectures, err := s.ProgressRepo.FindByUserAndCourse(userID, courseID)
	if err != nil {
		return nil, err
	}

	return &CourseProgress{
		Enrollment: enrollment,
		Lectures:   lectures,
	}, nil
}
