package service

import (
	"context"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"mime/multipart"
	"path/filepath"

	"github.com/google/uuid"
)

type UserService struct {
	UserRepo *repository.UserRepository
	Storage  *StorageService
}

func NewUserService(userRepo *repository.UserRepository, storage *StorageService) *UserService {
	return &UserService{
		UserRepo: userRepo,
		Storage:  storage,
	}
}

func (s *UserService) GetProfile(userID uint) (*model.User, error) {
	return s.UserRepo.FindByID(userID)
}

func (s *UserService) UpdateProfile(userID uint, firstName, lastName string) error {
	return s.UserRepo.UpdateProfile(userID, firstName, lastName)
}

// UploadAvatar 上传头像并更新用户记录，返回可访问URL
func (s *UserService) UploadAvatar(ctx context.Context, userID uint, file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	filename := "avatars/" + uuid.New().String() + filepath.Ext(file.Filename)
	contentType := file.Header.Get("Content-Type")

	url, err := s.Storage.Upload(ctx, filename, src, file.Size, contentType)
	if err != nil {
		return "", err
	}

	if err := s.UserRepo.UpdateAvatar(userID, url); err != nil {
		return "", err
	}
	return url, nil
}

func (s *UserService) ListUsers() ([]model.UserWithStats, error) {
	return s.UserRepo.ListWithEnrollmentCounts()
}

// DashboardStats 学习仪表盘统计
type DashboardStats struct {
	EnrolledCourses  int64 `json:"enrolledCourses"`
	CompletedCourses int64 `json:"completedCourses"`
	QuizAttempts     int64 `json:"quizAttempts"`
}

type Dashboard struct {
	Stats          DashboardStats              `json:"stats"`
	RecentActivity []repository.RecentActivity `json:"recentActivity"`
}

func (s *UserService) GetDashboard(userID uint) (*Dashboard, error) {
	enrolled, err := s.UserRepo.CountEnrollments(userID)
	if err != nil {
		return nil, err
	}

	completed, err := s.UserRepo.CountCompletedCourses(userID)
	if err != nil {
		return nil, err
	}

	attempts, err := s.UserRepo.CountQuizAttempts(userID)
	if err != nil {
		return nil, err
	}

	activity, err := s.UserRepo.GetRecentActivity(userID, 5)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Stats: DashboardStats{
			EnrolledCourses:  enrolled,
			CompletedCourses: completed,
			QuizAttempts:     attempts,
		},
		RecentActivity: activity,
	}, nil
}
