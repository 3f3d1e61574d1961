package model

import "time"

// Enrollment tracks one learner's relationship to one course. Progress is a
// derived percentage and is never written directly by clients; CompletedAt is
// set exactly once, the first time progress reaches 100.
type Enrollment struct {
	BaseModel
	UserID         uint       `gorm:"uniqueIndex:idx_enrollment_user_course;not null" json:"userId"`
	CourseID       uint       `gorm:"uniqueIndex:idx_enrollment_user_course;not null" json:"courseId"`
	Progress       int        `gorm:"default:0" json:"progress"`
	ScormStatus    string     `gorm:"type:varchar(20);default:'not attempted'" json:"scormStatus"`
	LastAccessedAt time.Time  `json:"lastAccessedAt"`
	CompletedAt    *time.Time `json:"completedAt,omitempty"`
	// AssignedBy is set for corporate assignments, empty for self-enrollment.
	AssignedBy *uint `json:"assignedBy,omitempty"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}
