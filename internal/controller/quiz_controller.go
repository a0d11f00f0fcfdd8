package controller

import (
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"
	"learnhub_backend/pkg/monitoring"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

// @Summary 测验列表
// @Description 已发布测验，附带课程标题与题目数
// @Tags 测验
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.QuizListItem}
// @Router /api/quizzes [get]
func (c *QuizController) GetQuizzes(ctx *gin.Context) {
	quizzes, err := c.QuizService.ListQuizzes()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, quizzes)
}

// @Summary 测验详情
// @Tags 测验
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "测验ID"
// @Success 200 {object} util.Response
// @Router /api/quizzes/{id} [get]
func (c *QuizController) GetQuiz(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid quiz id")
		return
	}

	detail, err := c.QuizService.GetQuizDetail(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			util.NotFound(ctx, util.ErrQuizNotFound.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, detail)
}

// @Summary 提交测验答案
// @Description 评分并写入提交记录，允许多次提交
// @Tags 测验
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "测验ID"
// @Param body body service.SubmitQuizRequest true "答案"
// @Success 200 {object} util.Response{data=service.SubmitQuizResponse}
// @Router /api/quizzes/{id}/submit [post]
func (c *QuizController) SubmitQuiz(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid quiz id")
		return
	}

	var req service.SubmitQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, util.ErrInvalidSubmission.Error())
		return
	}

	resp, err := c.QuizService.SubmitQuiz(user.UserID, id, req)
	if err != nil {
		switch err {
		case util.ErrInvalidSubmission, util.ErrQuizHasNoQuestions:
			monitoring.QuizSubmissionCounter.WithLabelValues("rejected").Inc()
			util.BadRequest(ctx, err.Error())
		case gorm.ErrRecordNotFound:
			util.NotFound(ctx, util.ErrQuizNotFound.Error())
		default:
			monitoring.QuizSubmissionCounter.WithLabelValues("error").Inc()
			util.LogInternalError(ctx, err)
		}
		return
	}

	monitoring.QuizSubmissionCounter.WithLabelValues("scored").Inc()
	util.Success(ctx, resp)
}

// @Summary 我的测验成绩
// @Description 支持分页与按测验/课程/分数区间筛选
// @Tags 测验
// @Produce json
// @Security ApiKeyAuth
// @Param limit query int false "每页条数" default(10)
// @Param offset query int false "偏移量" default(0)
// @Param quiz_id query int false "测验ID"
// @Param course_id query int false "课程ID"
// @Param min_score query number false "最低分"
// @Param max_score query number false "最高分"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/quizzes/my/attempts [get]
func (c *QuizController) GetMyAttempts(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	offset, _ := strconv.Atoi(ctx.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	filter := repository.AttemptFilter{
		QuizID:   util.MustParseUint(ctx.Query("quiz_id")),
		CourseID: util.MustParseUint(ctx.Query("course_id")),
	}
	if v := ctx.Query("min_score"); v != "" {
		if score, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MinScore = &score
		}
	}
	if v := ctx.Query("max_score"); v != "" {
		if score, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MaxScore = &score
		}
	}

	attempts, total, err := c.QuizService.ListAttempts(user.UserID, filter, limit, offset)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:   attempts,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}

// @Summary 成绩单详情
// @Description 提交记录与逐题回顾
// @Tags 测验
// @Produce json
// @Security ApiKeyAuth
// @Param attemptId path int true "提交记录ID"
// @Success 200 {object} util.Response
// @Router /api/quizzes/attempts/{attemptId} [get]
func (c *QuizController) GetAttemptDetail(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id := util.MustParseUint(ctx.Param("attemptId"))
	if id == 0 {
		util.BadRequest(ctx, "invalid attempt id")
		return
	}

	detail, err := c.QuizService.GetAttemptDetail(id, user.UserID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			util.NotFound(ctx, util.ErrAttemptNotFound.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, detail)
}

// @Summary 测验排行榜
// @Tags 测验
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "测验ID"
// @Param limit query int false "条数" default(10)
// @Success 200 {object} util.Response{data=[]model.LeaderboardEntry}
// @Router /api/quizzes/{id}/leaderboard [get]
func (c *QuizController) GetLeaderboard(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid quiz id")
		return
	}

	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	entries, err := c.QuizService.GetLeaderboard(ctx.Request.Context(), id, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, entries)
}
