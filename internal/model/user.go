package model

import "time"

type UserRole string

const (
	Student    UserRole = "student"
	Instructor UserRole = "instructor"
	OrgAdmin   UserRole = "org_admin"
	Admin      UserRole = "admin"
)

type User struct {
	BaseModel
	Name           string     `gorm:"size:100;not null" json:"name"`
	Email          string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password       string     `gorm:"size:255;not null" json:"-"`
	Role           UserRole   `gorm:"type:varchar(20);default:'student'" json:"role"`
	OrganizationID *uint      `gorm:"index" json:"organizationId,omitempty"`
	LastSeenAt     *time.Time `json:"lastSeenAt,omitempty"`
}

func (User) TableName() string {
	return "users"
}

type Organization struct {
	BaseModel
	Name        string `gorm:"size:255;not null" json:"name"`
	DisplayName string `gorm:"size:255;not null" json:"displayName"`
	Website     string `gorm:"size:255" json:"website,omitempty"`
}

func (Organization) TableName() string {
	return "organizations"
}
