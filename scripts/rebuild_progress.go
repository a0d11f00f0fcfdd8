// 手动重建课程进度汇总脚本
//
// user_progress 是 lesson_progress 的反范式缓存，正常情况下随课时完成
// 自动重算。汇总写失败被吞掉、或者课时被批量增删后，汇总行可能漂移，
// 此脚本全量重扫 lesson_progress 重建所有汇总行。
//
// 用法: go run scripts/rebuild_progress.go

package main

import (
	"learnhub_backend/internal/config"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/service"
	"learnhub_backend/pkg/database"
	"learnhub_backend/pkg/logger"
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

func main() {
	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("解析配置文件失败: %v", err)
	}

	logger.InitLogger(&cfg)

	db, err := database.InitDB(&cfg.Database, false)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	lessonRepo := repository.NewLessonRepository(db)
	progressRepo := repository.NewProgressRepository(db)
	progressService := service.NewProgressService(progressRepo, lessonRepo)

	var pairs []struct {
		UserID   uint
		CourseID uint
	}
	err = db.Raw("SELECT DISTINCT user_id, course_id FROM lesson_progress").Scan(&pairs).Error
	if err != nil {
		log.Fatalf("读取完成记录失败: %v", err)
	}

	log.Printf("开始重建 %d 个 (用户,课程) 的进度汇总...", len(pairs))

	failed := 0
	for _, p := range pairs {
		total, err := lessonRepo.CountByCourse(p.CourseID)
		if err != nil {
			log.Printf("课程 %d 课时统计失败: %v", p.CourseID, err)
			failed++
			continue
		}
		completed, err := progressRepo.CountCompletedLessons(p.UserID, p.CourseID)
		if err != nil {
			log.Printf("用户 %d 课程 %d 完成统计失败: %v", p.UserID, p.CourseID, err)
			failed++
			continue
		}
		if _, err := progressService.RecomputeCourseProgress(p.UserID, p.CourseID, int(total), int(completed)); err != nil {
			log.Printf("用户 %d 课程 %d 汇总写入失败: %v", p.UserID, p.CourseID, err)
			failed++
		}
	}

	log.Printf("完成！重建 %d 条，失败 %d 条", len(pairs)-failed, failed)
}
