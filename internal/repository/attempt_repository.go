package repository

import (
	"learnhub_backend/internal/model"

	"gorm.io/gorm"
)

type AttemptRepository struct {
	DB *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: db}
}

// Create 新增一条提交记录，只增不改
func (r *AttemptRepository) Create(attempt *model.QuizAttempt) error {
	return r.DB.Create(attempt).Error
}

// AttemptFilter 我的成绩列表筛选条件
type AttemptFilter struct {
	QuizID   uint
	CourseID uint
	MinScore *float64
	MaxScore *float64
}

func (r *AttemptRepository) ListByUser(userID uint, filter AttemptFilter, limit, offset int) ([]model.AttemptListItem, int64, error) {
	base := r.DB.Model(&model.QuizAttempt{}).
		Joins("JOIN quizzes ON quiz_attempts.quiz_id = quizzes.id").
		Joins("JOIN courses ON quizzes.course_id = courses.id").
		Where("quiz_attempts.user_id = ?", userID)

	if filter.QuizID != 0 {
		base = base.Where("quiz_attempts.quiz_id = ?", filter.QuizID)
	}
	if filter.CourseID != 0 {
		base = base.Where("courses.id = ?", filter.CourseID)
	}
	if filter.MinScore != nil {
		base = base.Where("quiz_attempts.score >= ?", *filter.MinScore)
	}
	if filter.MaxScore != nil {
		base = base.Where("quiz_attempts.score <= ?", *filter.MaxScore)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var attempts []model.AttemptListItem
	err := base.
		Select(`quiz_attempts.id, quiz_attempts.quiz_id, quizzes.title AS quiz_title,
			quiz_attempts.score, quiz_attempts.correct_answers_count AS correct_answers,
			quiz_attempts.total_questions, quiz_attempts.earned_points, quiz_attempts.total_points,
			quiz_attempts.time_taken, quiz_attempts.completed_at,
			courses.id AS course_id, courses.title AS course_title`).
		Order("quiz_attempts.completed_at DESC").
		Limit(limit).
		Offset(offset).
		Scan(&attempts).Error
	return attempts, total, err
}

func (r *AttemptRepository) FindByIDAndUser(attemptID, userID uint) (*model.QuizAttempt, error) {
	var attempt model.QuizAttempt
	err := r.DB.Where("id = ? AND user_id = ?", attemptID, userID).
		First(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

// Leaderboard 测验排行榜：得分降序，用时升序
func (r *AttemptRepository) Leaderboard(quizID uint, limit int) ([]model.LeaderboardEntry, error) {
	var entries []model.LeaderboardEntry
	err := r.DB.Model(&model.QuizAttempt{}).
		Select(`users.id AS user_id, users.first_name, users.last_name, users.avatar AS avatar_url,
			quiz_attempts.score, quiz_attempts.time_taken, quiz_attempts.completed_at`).
		Joins("JOIN users ON quiz_attempts.user_id = users.id").
		Where("quiz_attempts.quiz_id = ?", quizID).
		Order("quiz_attempts.score DESC, quiz_attempts.time_taken ASC").
		Limit(limit).
		Scan(&entries).Error
	return entries, err
}
