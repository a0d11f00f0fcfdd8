package model

import "time"

// LessonProgress 课时完成记录，(用户,课时)唯一
// 重复完成只刷新 completed_at，不会产生第二行
type LessonProgress struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      uint      `gorm:"uniqueIndex:idx_user_lesson;not null" json:"userId"`
	LessonID    uint      `gorm:"uniqueIndex:idx_user_lesson;not null" json:"lessonId"`
	CourseID    uint      `gorm:"index;not null" json:"courseId"`
	CompletedAt time.Time `gorm:"not null" json:"completedAt"`
}

func (LessonProgress) TableName() string {
	return "lesson_progress"
}

// UserProgress 课程进度汇总，(用户,课程)唯一
// 这是 lesson_progress 的反范式缓存，每次课时完成后整行重算覆盖，
// 任何时候都可以通过重扫 lesson_progress 重建
type UserProgress struct {
	ID                 uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID             uint      `gorm:"uniqueIndex:idx_user_course;not null" json:"userId"`
	CourseID           uint      `gorm:"uniqueIndex:idx_user_course;not null" json:"courseId"`
	CompletedLessons   int       `gorm:"not null" json:"completedLessons"`
	TotalLessons       int       `gorm:"not null" json:"totalLessons"`
	ProgressPercentage float64   `gorm:"not null" json:"progressPercentage"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

func (UserProgress) TableName() string {
	return "user_progress"
}
