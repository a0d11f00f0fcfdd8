package service

import (
	"context"
	"encoding/json"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"
	"learnhub_backend/pkg/logger"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	courseCatalogCacheKey = "courses:published"
	courseCatalogCacheTTL = 5 * time.Minute
)

type CourseService struct {
	CourseRepo     *repository.CourseRepository
	LessonRepo     *repository.LessonRepository
	EnrollmentRepo *repository.EnrollmentRepository
	Redis          *redis.Client
}

func NewCourseService(courseRepo *repository.CourseRepository, lessonRepo *repository.LessonRepository, enrollmentRepo *repository.EnrollmentRepository, rdb *redis.Client) *CourseService {
	return &CourseService{
		CourseRepo:     courseRepo,
		LessonRepo:     lessonRepo,
		EnrollmentRepo: enrollmentRepo,
		Redis:          rdb,
	}
}

// ListCourses 已发布课程目录，带短TTL的Redis缓存
// 缓存不可用时降级为直查数据库
func (s *CourseService) ListCourses(ctx context.Context) ([]model.CourseListItem, error) {
	if s.Redis != nil {
		val, err := s.Redis.Get(ctx, courseCatalogCacheKey).Result()
		if err == nil {
			var cached []model.CourseListItem
			if jsonErr := json.Unmarshal([]byte(val), &cached); jsonErr == nil {
				return cached, nil
			}
		} else if err != redis.Nil {
			logger.Log.Warn("course catalog cache read failed", zap.Error(err))
		}
	}

	courses, err := s.CourseRepo.ListPublished()
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if data, err := json.Marshal(courses); err == nil {
			if err := s.Redis.Set(ctx, courseCatalogCacheKey, data, courseCatalogCacheTTL).Err(); err != nil {
				logger.Log.Warn("course catalog cache write failed", zap.Error(err))
			}
		}
	}

	return courses, nil
}

// CourseDetail 课程详情：课程加有序课时列表
type CourseDetail struct {
	Course  *model.Course  `json:"course"`
	Lessons []model.Lesson `json:"lessons"`
}

func (s *CourseService) GetCourseDetail(courseID uint) (*CourseDetail, error) {
	course, err := s.CourseRepo.FindPublishedByID(courseID)
	if err != nil {
		return nil, err
	}

	lessons, err := s.LessonRepo.ListByCourse(courseID)
	if err != nil {
		return nil, err
	}

	return &CourseDetail{
		Course:  course,
		Lessons: lessons,
	}, nil
}

type CreateCourseRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Difficulty  string  `json:"difficulty"`
	Price       float64 `json:"price"`
}

func (s *CourseService) CreateCourse(instructorID uint, req CreateCourseRequest) (*model.Course, error) {
	course := &model.Course{
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		Difficulty:   req.Difficulty,
		Price:        req.Price,
		InstructorID: instructorID,
	}

	if err := s.CourseRepo.Create(course); err != nil {
		return nil, err
	}

	// 目录缓存失效，下一次列表请求重建
	if s.Redis != nil {
		if err := s.Redis.Del(context.Background(), courseCatalogCacheKey).Err(); err != nil {
			logger.Log.Warn("course catalog cache invalidation failed", zap.Error(err))
		}
	}

	return course, nil
}

func (s *CourseService) Enroll(userID, courseID uint) error {
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		return err
	}

	exists, err := s.EnrollmentRepo.Exists(userID, courseID)
	if err != nil {
		return err
	}
	if exists {
		return util.ErrAlreadyEnrolled
	}

	return s.EnrollmentRepo.Create(&model.Enrollment{
		UserID:   userID,
		CourseID: courseID,
	})
}

func (s *CourseService) ListEnrolledCourses(userID uint) ([]model.EnrolledCourse, error) {
	return s.CourseRepo.ListEnrolledByUser(userID)
}
