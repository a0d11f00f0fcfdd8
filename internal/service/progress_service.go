package service

import (
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/pkg/logger"
	"learnhub_backend/pkg/monitoring"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ProgressService struct {
	ProgressRepo *repository.ProgressRepository
	LessonRepo   *repository.LessonRepository
}

func NewProgressService(progressRepo *repository.ProgressRepository, lessonRepo *repository.LessonRepository) *ProgressService {
	return &ProgressService{
		ProgressRepo: progressRepo,
		LessonRepo:   lessonRepo,
	}
}

// progressPercentage 完成百分比，课时数为0时显式给0
// 数据异常导致 completed > total 时照常计算，不做100封顶
func progressPercentage(completed, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(completed) / float64(total) * 100
}

// CompleteLesson 课时完成打点并同步重算课程进度汇总
// 汇总重算失败只记日志和指标，不影响打点本身的成功返回：
// 学生的完成操作不应该因为一张反范式缓存表写失败而报错，
// 汇总行漂移后可随时通过重扫 lesson_progress 重建
func (s *ProgressService) CompleteLesson(userID, lessonID uint) error {
	lesson, err := s.LessonRepo.FindByID(lessonID)
	if err != nil {
		return err
	}

	if err := s.ProgressRepo.UpsertLessonCompletion(userID, lessonID, lesson.CourseID, time.Now()); err != nil {
		return err
	}

	if _, err := s.recomputeForCourse(userID, lesson.CourseID); err != nil {
		monitoring.ProgressRecomputeFailures.Inc()
		logger.Log.Error("course progress recompute failed",
			zap.Uint("userId", userID),
			zap.Uint("courseId", lesson.CourseID),
			zap.Error(err))
	}

	return nil
}

// recomputeForCourse 现查两个计数后重算汇总，绝不使用缓存的计数值，
// 避免课时在上次完成事件之后被增删导致汇总漂移
func (s *ProgressService) recomputeForCourse(userID, courseID uint) (*model.UserProgress, error) {
	total, err := s.LessonRepo.CountByCourse(courseID)
	if err != nil {
		return nil, err
	}

	completed, err := s.ProgressRepo.CountCompletedLessons(userID, courseID)
	if err != nil {
		return nil, err
	}

	return s.RecomputeCourseProgress(userID, courseID, int(total), int(completed))
}

// RecomputeCourseProgress 覆盖式更新 (user, course) 的进度汇总行
func (s *ProgressService) RecomputeCourseProgress(userID, courseID uint, totalLessons, completedLessons int) (*model.UserProgress, error) {
	summary := &model.UserProgress{
		UserID:             userID,
		CourseID:           courseID,
		CompletedLessons:   completedLessons,
		TotalLessons:       totalLessons,
		ProgressPercentage: progressPercentage(completedLessons, totalLessons),
		UpdatedAt:          time.Now(),
	}

	if err := s.ProgressRepo.UpsertSummary(summary); err != nil {
		return nil, err
	}
	return summary, nil
}

// CourseProgress 课程进度：汇总行加已完成课时ID列表
type CourseProgress struct {
	Progress         *model.UserProgress `json:"progress"`
	CompletedLessons []uint              `json:"completedLessons"`
}

func (s *ProgressService) GetCourseProgress(userID, courseID uint) (*CourseProgress, error) {
	summary, err := s.ProgressRepo.FindSummary(userID, courseID)
	if err == gorm.ErrRecordNotFound {
		// 还没有任何完成记录时返回零值汇总
		summary = &model.UserProgress{UserID: userID, CourseID: courseID}
	} else if err != nil {
		return nil, err
	}

	ids, err := s.ProgressRepo.ListCompletedLessonIDs(userID, courseID)
	if err != nil {
		return nil, err
	}

	return &CourseProgress{
		Progress:         summary,
		CompletedLessons: ids,
	}, nil
}
