package model

import "time"

// swagger:model Course
type Course struct {
	BaseModel
	Title        string  `gorm:"size:200;not null" json:"title"`
	Description  string  `gorm:"type:text" json:"description"`
	Category     string  `gorm:"size:50" json:"category"`
	Difficulty   string  `gorm:"size:20" json:"difficulty"`
	Price        float64 `gorm:"default:0" json:"price"`
	InstructorID uint    `gorm:"index" json:"instructorId"`
	IsPublished  bool    `gorm:"default:false;index" json:"isPublished"`
}

func (Course) TableName() string {
	return "courses"
}

// CourseListItem 课程列表行，附带讲师姓名与选课人数
type CourseListItem struct {
	Course
	InstructorName string `json:"instructorName"`
	EnrolledCount  int64  `json:"enrolledCount"`
}

// EnrolledCourse 我的课程列表行，附带选课时间与进度百分比
type EnrolledCourse struct {
	Course
	InstructorName string    `json:"instructorName"`
	EnrolledAt     time.Time `json:"enrolledAt"`
	Progress       float64   `json:"progress"`
}

type Enrollment struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     uint      `gorm:"uniqueIndex:idx_user_course_enrollment;not null" json:"userId"`
	CourseID   uint      `gorm:"uniqueIndex:idx_user_course_enrollment;not null" json:"courseId"`
	EnrolledAt time.Time `gorm:"autoCreateTime" json:"enrolledAt"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}
