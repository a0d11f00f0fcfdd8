package repository

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"learnhub_backend/internal/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.Course{},
		&model.Lesson{},
		&model.Quiz{},
		&model.QuizQuestion{},
		&model.QuizAttempt{},
		&model.LessonProgress{},
		&model.UserProgress{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func TestUpsertLessonCompletion_Idempotent(t *testing.T) {
	repo := NewProgressRepository(newTestDB(t))

	first := time.Now().UTC().Truncate(time.Second)
	second := first.Add(2 * time.Hour)

	if err := repo.UpsertLessonCompletion(1, 10, 100, first); err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}
	if err := repo.UpsertLessonCompletion(1, 10, 100, second); err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}

	var count int64
	if err := repo.DB.Model(&model.LessonProgress{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly one row after repeated completion, got %d", count)
	}

	var record model.LessonProgress
	if err := repo.DB.First(&record).Error; err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	// 重复完成刷新时间戳，后写者胜
	if record.CompletedAt.Unix() != second.Unix() {
		t.Errorf("expected completed_at=%v, got %v", second, record.CompletedAt)
	}
}

func TestCountCompletedLessons(t *testing.T) {
	repo := NewProgressRepository(newTestDB(t))

	now := time.Now().UTC()
	for _, lessonID := range []uint{10, 11, 12} {
		if err := repo.UpsertLessonCompletion(1, lessonID, 100, now); err != nil {
			t.Fatalf("upsert lesson %d failed: %v", lessonID, err)
		}
	}
	// 其他用户、其他课程的记录不应计入
	if err := repo.UpsertLessonCompletion(2, 10, 100, now); err != nil {
		t.Fatalf("upsert for other user failed: %v", err)
	}
	if err := repo.UpsertLessonCompletion(1, 50, 200, now); err != nil {
		t.Fatalf("upsert for other course failed: %v", err)
	}

	count, err := repo.CountCompletedLessons(1, 100)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 3 {
		t.Errorf("expected 3 completed lessons, got %d", count)
	}
}

func TestUpsertSummary_Overwrite(t *testing.T) {
	repo := NewProgressRepository(newTestDB(t))

	if err := repo.UpsertSummary(&model.UserProgress{
		UserID: 1, CourseID: 100,
		CompletedLessons: 3, TotalLessons: 4, ProgressPercentage: 75,
	}); err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}
	if err := repo.UpsertSummary(&model.UserProgress{
		UserID: 1, CourseID: 100,
		CompletedLessons: 4, TotalLessons: 4, ProgressPercentage: 100,
	}); err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}

	var count int64
	if err := repo.DB.Model(&model.UserProgress{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected one summary row, got %d", count)
	}

	summary, err := repo.FindSummary(1, 100)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if summary.CompletedLessons != 4 || summary.ProgressPercentage != 100 {
		t.Errorf("expected overwritten summary 4/4=100, got %d/%d=%v",
			summary.CompletedLessons, summary.TotalLessons, summary.ProgressPercentage)
	}
}

func TestFindSummary_NotFound(t *testing.T) {
	repo := NewProgressRepository(newTestDB(t))

	_, err := repo.FindSummary(1, 100)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected gorm.ErrRecordNotFound, got %v", err)
	}
}
