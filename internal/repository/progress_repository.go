package repository

import (
	"learnhub_backend/internal/model"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

// UpsertLessonCompletion 课时完成打点
// (user_id, lesson_id) 冲突时只刷新 completed_at，单语句原子完成，
// 重复点击不会产生第二行，也不会回退到未完成状态
func (r *ProgressRepository) UpsertLessonCompletion(userID, lessonID, courseID uint, completedAt time.Time) error {
	record := model.LessonProgress{
		UserID:      userID,
		LessonID:    lessonID,
		CourseID:    courseID,
		CompletedAt: completedAt,
	}
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "lesson_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"completed_at"}),
	}).Create(&record).Error
}

// CountCompletedLessons 已完成课时数，进度重算时每次现查
func (r *ProgressRepository) CountCompletedLessons(userID, courseID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.LessonProgress{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error
	return count, err
}

func (r *ProgressRepository) ListCompletedLessonIDs(userID, courseID uint) ([]uint, error) {
	var ids []uint
	err := r.DB.Model(&model.LessonProgress{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Pluck("lesson_id", &ids).Error
	return ids, err
}

// UpsertSummary 覆盖式更新进度汇总行
// (user_id, course_id) 冲突时整行覆盖，不做增量修改，后写者胜
func (r *ProgressRepository) UpsertSummary(summary *model.UserProgress) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"completed_lessons", "total_lessons", "progress_percentage", "updated_at"}),
	}).Create(summary).Error
}

func (r *ProgressRepository) FindSummary(userID, courseID uint) (*model.UserProgress, error) {
	var summary model.UserProgress
	err := r.DB.Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&summary).Error
	if err != nil {
		return nil, err
	}
	return &summary, nil
}
