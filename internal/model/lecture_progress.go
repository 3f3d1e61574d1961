package model

import "time"

// LectureProgress is one row per (learner, lecture), created on the first
// progress report and mutated on every one after that. The scorm_* columns
// besides the status are opaque passthrough for external LMS players.
type LectureProgress struct {
	BaseModel
	UserID          uint       `gorm:"uniqueIndex:idx_progress_user_lecture;not null" json:"userId"`
	LectureID       uint       `gorm:"uniqueIndex:idx_progress_user_lecture;not null" json:"lectureId"`
	CourseID        uint       `gorm:"index;not null" json:"courseId"`
	IsCompleted     bool       `gorm:"default:false" json:"isCompleted"`
	WatchedDuration int        `gorm:"default:0" json:"watchedDuration"`
	LastPosition    int        `gorm:"default:0" json:"lastPosition"`
	QuizScore       *float64   `json:"quizScore,omitempty"`
	CompletedAt     *time.Time `json:"completedAt,omitempty"`

	ScormLessonStatus   string `gorm:"type:varchar(20);default:'not attempted'" json:"scormLessonStatus"`
	ScormSessionTime    string `gorm:"size:20" json:"scormSessionTime,omitempty"`
	ScormTotalTime      string `gorm:"size:20" json:"scormTotalTime,omitempty"`
	ScormLessonLocation string `gorm:"size:255" json:"scormLessonLocation,omitempty"`
	ScormSuspendData    string `gorm:"type:text" json:"scormSuspendData,omitempty"`
}

func (LectureProgress) TableName() string {
	return "lecture_progress"
}
