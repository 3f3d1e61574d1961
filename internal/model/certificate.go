package model

import "time"

// Certificate is issued at most once per (learner, course). Course title and
// organization name are snapshotted at issuance time; later renames must not
// alter certificates that were already issued.
type Certificate struct {
	BaseModel
	UserID            uint      `gorm:"uniqueIndex:idx_cert_user_course;not null" json:"userId"`
	CourseID          uint      `gorm:"uniqueIndex:idx_cert_user_course;not null" json:"courseId"`
	CertificateNumber string    `gorm:"size:64;uniqueIndex;not null" json:"certificateNumber"`
	CourseTitle       string    `gorm:"size:255;not null" json:"courseTitle"`
	OrganizationName  string    `gorm:"size:255;not null" json:"organizationName"`
	CPDPoints         float64   `gorm:"default:0" json:"cpdPoints"`
	IssuedAt          time.Time `json:"issuedAt"`
}

func (Certificate) TableName() string {
	return "certificates"
}
