package repository

import (
	"learnhub_backend/internal/model"

	"gorm.io/gorm"
)

type OrganizationRepository struct {
	DB *gorm.DB
}

func NewOrganizationRepository(db *gorm.DB) *OrganizationRepository {
	return &OrganizationRepository{DB: db}
}

func (r *OrganizationRepository) Create(org *model.Organization) error {
	return r.DB.Create(org).Error
}

func (r *OrganizationRepository) FindByID(id uint) (*model.Organization, error) {
	var org model.Organization
	err := r.DB.First(&org, id).Error
	if err != nil {
		return nil, err
	}
	return &org, nil
}
