package model

type LectureType string

const (
	LectureVideo LectureType = "video"
	LectureText  LectureType = "text"
	LectureQuiz  LectureType = "quiz"
	LectureScorm LectureType = "scorm"
)

type Course struct {
	BaseModel
	Title          string    `gorm:"size:255;not null" json:"title"`
	Description    string    `gorm:"type:text" json:"description"`
	InstructorID   uint      `gorm:"index;not null" json:"instructorId"`
	OrganizationID uint      `gorm:"index;not null" json:"organizationId"`
	Price          float64   `gorm:"default:0" json:"price"`
	CPDPoints      float64   `gorm:"default:0" json:"cpdPoints"`
	IsPublished    bool      `gorm:"default:false" json:"isPublished"`
	Sections       []Section `gorm:"foreignKey:CourseID" json:"sections,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}

type Section struct {
	BaseModel
	CourseID uint      `gorm:"index;not null" json:"courseId"`
	Title    string    `gorm:"size:255;not null" json:"title"`
	Position int       `gorm:"default:0" json:"position"`
	Lectures []Lecture `gorm:"foreignKey:SectionID" json:"lectures,omitempty"`
}

func (Section) TableName() string {
	return "sections"
}

type Lecture struct {
	BaseModel
	SectionID uint        `gorm:"index;not null" json:"sectionId"`
	CourseID  uint        `gorm:"index;not null" json:"courseId"`
	Title     string      `gorm:"size:255;not null" json:"title"`
	Type      LectureType `gorm:"type:varchar(20);default:'video'" json:"type"`
	Position  int         `gorm:"default:0" json:"position"`
	// Duration is the media length in seconds, informational only.
	Duration    int    `gorm:"default:0" json:"duration"`
	ContentURL  string `gorm:"size:512" json:"contentUrl,omitempty"`
	IsPublished bool   `gorm:"default:true" json:"isPublished"`
}

func (Lecture) TableName() string {
	return "lectures"
}
