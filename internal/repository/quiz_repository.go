package repository

import (
	"learnhub_backend/internal/model"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

// ListPublished 已发布测验列表，附带课程标题与题目数
func (r *QuizRepository) ListPublished() ([]model.QuizListItem, error) {
	var quizzes []model.QuizListItem
	err := r.DB.Model(&model.Quiz{}).
		Select(`quizzes.*, courses.title AS course_title,
			(SELECT COUNT(*) FROM quiz_questions WHERE quiz_questions.quiz_id = quizzes.id) AS question_count`).
		Joins("JOIN courses ON quizzes.course_id = courses.id").
		Where("quizzes.is_published = ?", true).
		Order("quizzes.created_at DESC").
		Scan(&quizzes).Error
	return quizzes, err
}

func (r *QuizRepository) FindByID(id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.First(&quiz, id).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

// ListQuestions 按 order_index 返回测验题目
// Options 字段经 StringList 自定义类型在此处解析一次，下游不再碰原始JSON
func (r *QuizRepository) ListQuestions(quizID uint) ([]model.QuizQuestion, error) {
	var questions []model.QuizQuestion
	err := r.DB.Where("quiz_id = ?", quizID).
		Order("order_index").
		Find(&questions).Error
	return questions, err
}
