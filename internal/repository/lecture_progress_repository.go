package repository

import (
	"learnhub_backend/internal/model"

	"gorm.io/gorm"
)

type LectureProgressRepository struct {
	DB *gorm.DB
}

func NewLectureProgressRepository(db *gorm.DB) *LectureProgressRepository {
	return &LectureProgressRepository{DB: db}
}

func (r *LectureProgressRepository) FindByUserAndLecture(tx *gorm.DB, userID, lectureID uint) (*model.LectureProgress, error) {
	var progress model.LectureProgress
	err := tx.Where("user_id = ? AND lecture_id = ?", userID, lectureID).
		First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

func (r *LectureProgressRepository) FindByUserAndCourse(userID, courseID uint) ([]model.LectureProgress, error) {
	var rows []model.LectureProgress
	err := r.DB.Where("user_id = ? AND course_id = ?", userID, courseID).
		Find(&rows).Error
	return rows, err
}

// CountCompleted counts the learner's completed lectures for a course,
// restricted to lectures that are still published so the numerator matches
// the denominator used for the percentage.
func (r *LectureProgressRepository) CountCompleted(tx *gorm.DB, userID, courseID uint) (int64, error) {
	var count int64
	err := tx.Model(&model.LectureProgress{}).
		Joins("JOIN lectures ON lectures.id = lecture_progress.lecture_id AND lectures.is_published = ? AND lectures.deleted_at IS NULL", true).
		Where("lecture_progress.user_id = ? AND lecture_progress.course_id = ? AND lecture_progress.is_completed = ?", userID, courseID, true).
		Count(&count).Error
	return count, err
}
