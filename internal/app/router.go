package app

import (
	"learnhub_backend/internal/config"
	"learnhub_backend/internal/middleware"
	"learnhub_backend/internal/model"
	"learnhub_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)

		// 课程目录对游客开放
		public.GET("/courses", c.course.GetCourses)
		public.GET("/courses/:id", c.course.GetCourse)
	}

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/profile", c.auth.GetProfile)
		authGroup.PUT("/users/profile", c.user.UpdateProfile)
		authGroup.POST("/users/avatar", c.user.UploadAvatar)
		authGroup.GET("/users/dashboard", c.user.GetDashboard)

		// 课程
		authGroup.POST("/courses/:id/enroll", c.course.Enroll)
		authGroup.GET("/courses/my/enrolled", c.course.GetEnrolledCourses)

		// 测验
		authGroup.GET("/quizzes", c.quiz.GetQuizzes)
		authGroup.GET("/quizzes/my/attempts", c.quiz.GetMyAttempts)
		authGroup.GET("/quizzes/attempts/:attemptId", c.quiz.GetAttemptDetail)
		authGroup.GET("/quizzes/:id", c.quiz.GetQuiz)
		authGroup.POST("/quizzes/:id/submit", c.quiz.SubmitQuiz)
		authGroup.GET("/quizzes/:id/leaderboard", c.quiz.GetLeaderboard)

		// 进度
		authGroup.POST("/progress/lessons/:id/complete", c.progress.CompleteLesson)
		authGroup.GET("/progress/courses/:id", c.progress.GetCourseProgress)

		// 讲师/管理员
		authGroup.POST("/courses", middleware.RoleMiddleware(model.Instructor), c.course.CreateCourse)
		authGroup.GET("/users", middleware.RoleMiddleware(model.Admin), c.user.GetUsers)
	}
}
