package repository

import (
	"learnhub_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	if err := r.DB.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	if err := r.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) UpdateProfile(userID uint, firstName, lastName string) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"first_name": firstName,
			"last_name":  lastName,
		}).Error
}

func (r *UserRepository) UpdateAvatar(userID uint, avatarURL string) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Update("avatar", avatarURL).Error
}

// ListWithEnrollmentCounts 管理端用户列表，按注册时间倒序
func (r *UserRepository) ListWithEnrollmentCounts() ([]model.UserWithStats, error) {
	var users []model.UserWithStats
	err := r.DB.Model(&model.User{}).
		Select(`users.id, users.email, users.first_name, users.last_name, users.role,
			(SELECT COUNT(*) FROM enrollments WHERE enrollments.user_id = users.id) AS enrolled_courses`).
		Order("users.created_at DESC").
		Scan(&users).Error
	return users, err
}

// RecentActivity 仪表盘最近动态：课时完成与测验提交的合并流
type RecentActivity struct {
	Type  string    `json:"type"`
	Title string    `json:"title"`
	Date  time.Time `json:"date"`
}

func (r *UserRepository) GetRecentActivity(userID uint, limit int) ([]RecentActivity, error) {
	var activity []RecentActivity
	err := r.DB.Raw(`
		SELECT 'lesson' AS type, l.title AS title, lp.completed_at AS date
		FROM lesson_progress lp
		JOIN lessons l ON lp.lesson_id = l.id
		WHERE lp.user_id = ?
		UNION ALL
		SELECT 'quiz' AS type, q.title AS title, qa.completed_at AS date
		FROM quiz_attempts qa
		JOIN quizzes q ON qa.quiz_id = q.id
		WHERE qa.user_id = ?
		ORDER BY date DESC
		LIMIT ?`, userID, userID, limit).
		Scan(&activity).Error
	return activity, err
}

func (r *UserRepository) CountEnrollments(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Enrollment{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *UserRepository) CountCompletedCourses(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.UserProgress{}).
		Where("user_id = ? AND progress_percentage = 100", userID).
		Count(&count).Error
	return count, err
}

func (r *UserRepository) CountQuizAttempts(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.QuizAttempt{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
