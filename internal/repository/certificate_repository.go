package repository

import (
	"learnhub_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CertificateRepository struct {
	DB *gorm.DB
}

func NewCertificateRepository(db *gorm.DB) *CertificateRepository {
	return &CertificateRepository{DB: db}
}

func (r *CertificateRepository) FindByUserAndCourse(userID, courseID uint) (*model.Certificate, error) {
	var cert model.Certificate
	err := r.DB.Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&cert).Error
	if err != nil {
		return nil, err
	}
	return &cert, nil
}

func (r *CertificateRepository) FindByUser(userID uint) ([]model.Certificate, error) {
	var certs []model.Certificate
	err := r.DB.Where("user_id = ?", userID).
		Order("issued_at DESC").
		Find(&certs).Error
	return certs, err
}

func (r *CertificateRepository) FindByNumber(number string) (*model.Certificate, error) {
	var cert model.Certificate
	err := r.DB.Where("certificate_number = ?", number).First(&cert).Error
	if err != nil {
		return nil, err
	}
	return &cert, nil
}

// CreateIfAbsent inserts the certificate unless one already exists for the
// (user, course) pair. Check-then-insert alone cannot close the race window,
// so the insert leans on the composite unique index and treats a conflict as
// "already exists", returning whichever row won.
func (r *CertificateRepository) CreateIfAbsent(cert *model.Certificate) (*model.Certificate, error) {
	result := r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
		DoNothing: true,
	}).Create(cert)

	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		// lost the race, another writer inserted first
		return r.FindByUserAndCourse(cert.UserID, cert.CourseID)
	}
	return cert, nil
}
