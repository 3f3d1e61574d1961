package repository

import (
	"learnhub_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

func (r *CourseRepository) Save(course *model.Course) error {
	return r.DB.Save(course).Error
}

func (r *CourseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.Preload("Sections", func(db *gorm.DB) *gorm.DB {
		return db.Order("sections.position ASC")
	}).Preload("Sections.Lectures", func(db *gorm.DB) *gorm.DB {
		return db.Order("lectures.position ASC")
	}).First(&course, id).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepository) FindPublished(page, limit int) ([]model.Course, int64, error) {
	var courses []model.Course
	var total int64

	query := r.DB.Model(&model.Course{}).Where("is_published = ?", true)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&courses).Error
	return courses, total, err
}

func (r *CourseRepository) CreateSection(section *model.Section) error {
	return r.DB.Create(section).Error
}

func (r *CourseRepository) FindSectionByID(id uint) (*model.Section, error) {
	var section model.Section
	err := r.DB.First(&section, id).Error
	if err != nil {
		return nil, err
	}
	return &section, nil
}

func (r *CourseRepository) CreateLecture(lecture *model.Lecture) error {
	return r.DB.Create(lecture).Error
}

func (r *CourseRepository) FindLectureByID(id uint) (*model.Lecture, error) {
	var lecture model.Lecture
	err := r.DB.First(&lecture, id).Error
	if err != nil {
		return nil, err
	}
	return &lecture, nil
}

// CountPublishedLectures is the denominator of the enrollment percentage. The
// progress recomputation always re-reads it inside the reporting transaction.
func (r *CourseRepository) CountPublishedLectures(tx *gorm.DB, courseID uint) (int64, error) {
	var count int64
	err := tx.Model(&model.Lecture{}).
		Where("course_id = ? AND is_published = ?", courseID, true).
		Count(&count).Error
	return count, err
}
