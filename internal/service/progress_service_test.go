package service

import (
	"path/filepath"
	"testing"

	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"
)

func TestProgressPercentage(t *testing.T) {
	cases := []struct {
		name      string
		completed int
		total     int
		want      float64
	}{
		{"partial", 3, 4, 75},
		{"complete", 4, 4, 100},
		{"none", 0, 4, 0},
		{"third", 1, 3, float64(1) / float64(3) * 100},
		{"no lessons", 0, 0, 0},
		{"negative total", 2, -1, 0},
		// 不做上限截断，孤儿完成记录会算出超过100的值
		{"over-complete", 5, 4, 125},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := progressPercentage(c.completed, c.total); got != c.want {
				t.Errorf("progressPercentage(%d, %d): expected %v, got %v", c.completed, c.total, got, c.want)
			}
		})
	}
}

func newProgressService(t *testing.T) (*ProgressService, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: glogger.Default.LogMode(glogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&model.Course{}, &model.Lesson{}, &model.LessonProgress{}, &model.UserProgress{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	logger.Log = zap.NewNop()

	return NewProgressService(
		repository.NewProgressRepository(db),
		repository.NewLessonRepository(db),
	), db
}

func seedCourseWithLessons(t *testing.T, db *gorm.DB, lessonCount int) (uint, []uint) {
	t.Helper()

	course := model.Course{Title: "Go 基础", InstructorID: 1, IsPublished: true}
	if err := db.Create(&course).Error; err != nil {
		t.Fatalf("create course failed: %v", err)
	}

	lessonIDs := make([]uint, 0, lessonCount)
	for i := 0; i < lessonCount; i++ {
		lesson := model.Lesson{CourseID: course.ID, Title: "lesson", OrderIndex: i}
		if err := db.Create(&lesson).Error; err != nil {
			t.Fatalf("create lesson failed: %v", err)
		}
		lessonIDs = append(lessonIDs, lesson.ID)
	}
	return course.ID, lessonIDs
}

func TestCompleteLesson_RecomputesSummary(t *testing.T) {
	svc, _ := newProgressService(t)
	courseID, lessonIDs := seedCourseWithLessons(t, svc.ProgressRepo.DB, 4)

	for _, id := range lessonIDs[:3] {
		if err := svc.CompleteLesson(1, id); err != nil {
			t.Fatalf("complete lesson %d failed: %v", id, err)
		}
	}

	summary, err := svc.ProgressRepo.FindSummary(1, courseID)
	if err != nil {
		t.Fatalf("find summary failed: %v", err)
	}
	if summary.CompletedLessons != 3 || summary.TotalLessons != 4 {
		t.Errorf("expected 3/4 lessons, got %d/%d", summary.CompletedLessons, summary.TotalLessons)
	}
	if summary.ProgressPercentage != 75 {
		t.Errorf("expected 75%%, got %v", summary.ProgressPercentage)
	}

	// 重复完成同一课时不改变进度
	if err := svc.CompleteLesson(1, lessonIDs[0]); err != nil {
		t.Fatalf("repeated completion failed: %v", err)
	}
	summary, err = svc.ProgressRepo.FindSummary(1, courseID)
	if err != nil {
		t.Fatalf("find summary failed: %v", err)
	}
	if summary.CompletedLessons != 3 {
		t.Errorf("repeated completion must not inflate count, got %d", summary.CompletedLessons)
	}

	// 完成最后一课到100
	if err := svc.CompleteLesson(1, lessonIDs[3]); err != nil {
		t.Fatalf("complete last lesson failed: %v", err)
	}
	summary, err = svc.ProgressRepo.FindSummary(1, courseID)
	if err != nil {
		t.Fatalf("find summary failed: %v", err)
	}
	if summary.ProgressPercentage != 100 {
		t.Errorf("expected 100%%, got %v", summary.ProgressPercentage)
	}
}

func TestCompleteLesson_UnknownLesson(t *testing.T) {
	svc, _ := newProgressService(t)

	if err := svc.CompleteLesson(1, 999); err == nil {
		t.Fatalf("expected error for unknown lesson")
	}
}

func TestCompleteLesson_SummaryWriteFailureSwallowed(t *testing.T) {
	svc, db := newProgressService(t)
	_, lessonIDs := seedCourseWithLessons(t, db, 2)

	// 汇总表缺失时重算落库必然失败，打点依旧要成功
	if err := db.Migrator().DropTable(&model.UserProgress{}); err != nil {
		t.Fatalf("drop table failed: %v", err)
	}

	if err := svc.CompleteLesson(1, lessonIDs[0]); err != nil {
		t.Fatalf("completion must succeed despite summary failure, got %v", err)
	}

	var count int64
	if err := db.Model(&model.LessonProgress{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected completion row to persist, got %d rows", count)
	}
}

func TestGetCourseProgress_NoRecords(t *testing.T) {
	svc, db := newProgressService(t)
	courseID, _ := seedCourseWithLessons(t, db, 2)

	progress, err := svc.GetCourseProgress(1, courseID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if progress.Progress.ProgressPercentage != 0 || progress.Progress.CompletedLessons != 0 {
		t.Errorf("expected zero-value summary, got %+v", progress.Progress)
	}
	if len(progress.CompletedLessons) != 0 {
		t.Errorf("expected no completed lesson ids, got %v", progress.CompletedLessons)
	}
}
