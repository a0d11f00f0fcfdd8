package repository

import (
	"learnhub_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

// ListPublished 已发布课程列表，附带讲师姓名与选课人数
func (r *CourseRepository) ListPublished() ([]model.CourseListItem, error) {
	var courses []model.CourseListItem
	err := r.DB.Model(&model.Course{}).
		Select(`courses.*,
			CONCAT(users.first_name, ' ', users.last_name) AS instructor_name,
			COUNT(enrollments.id) AS enrolled_count`).
		Joins("LEFT JOIN users ON courses.instructor_id = users.id").
		Joins("LEFT JOIN enrollments ON courses.id = enrollments.course_id").
		Where("courses.is_published = ?", true).
		Group("courses.id, users.first_name, users.last_name").
		Order("courses.created_at DESC").
		Scan(&courses).Error
	return courses, err
}

func (r *CourseRepository) FindPublishedByID(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.Where("id = ? AND is_published = ?", id, true).First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.First(&course, id).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// ListEnrolledByUser 我的课程，附带进度百分比（无汇总行时为0）
func (r *CourseRepository) ListEnrolledByUser(userID uint) ([]model.EnrolledCourse, error) {
	var courses []model.EnrolledCourse
	err := r.DB.Model(&model.Enrollment{}).
		Select(`courses.*,
			CONCAT(users.first_name, ' ', users.last_name) AS instructor_name,
			enrollments.enrolled_at,
			COALESCE(user_progress.progress_percentage, 0) AS progress`).
		Joins("JOIN courses ON enrollments.course_id = courses.id").
		Joins("LEFT JOIN users ON courses.instructor_id = users.id").
		Joins("LEFT JOIN user_progress ON user_progress.course_id = courses.id AND user_progress.user_id = enrollments.user_id").
		Where("enrollments.user_id = ?", userID).
		Order("enrollments.enrolled_at DESC").
		Scan(&courses).Error
	return courses, err
}
