package model

// swagger:model Lesson
type Lesson struct {
	BaseModel
	CourseID   uint   `gorm:"index;not null" json:"courseId"`
	Title      string `gorm:"size:200;not null" json:"title"`
	Content    string `gorm:"type:text" json:"content"`
	OrderIndex int    `gorm:"default:0" json:"orderIndex"`
}

func (Lesson) TableName() string {
	return "lessons"
}
