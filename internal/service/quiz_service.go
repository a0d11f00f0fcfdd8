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

const leaderboardCacheTTL = 30 * time.Second

type QuizService struct {
	QuizRepo    *repository.QuizRepository
	AttemptRepo *repository.AttemptRepository
	Redis       *redis.Client
}

func NewQuizService(quizRepo *repository.QuizRepository, attemptRepo *repository.AttemptRepository, rdb *redis.Client) *QuizService {
	return &QuizService{
		QuizRepo:    quizRepo,
		AttemptRepo: attemptRepo,
		Redis:       rdb,
	}
}

// QuestionResult 单题判定结果，评分后连同标准答案一起返回
type QuestionResult struct {
	Correct       bool   `json:"correct"`
	CorrectAnswer string `json:"correctAnswer"`
}

// ScoreResult 评分结果
// Score 保留未舍入的原始值，展示层再做两位小数舍入
type ScoreResult struct {
	Score          float64                 `json:"score"`
	CorrectAnswers int                     `json:"correctAnswers"`
	TotalQuestions int                     `json:"totalQuestions"`
	EarnedPoints   int                     `json:"earnedPoints"`
	TotalPoints    int                     `json:"totalPoints"`
	Results        map[uint]QuestionResult `json:"results"`
}

// CalculateScore 对一次提交评分，纯函数，不落库
// 判定为精确字符串相等，不做大小写折叠、去空格或部分给分；
// 未作答视为答错；提交中出现的未知题目ID直接忽略。
// 空题目集按提交错误处理而不是零分。
func CalculateScore(questions []model.QuizQuestion, answers model.AnswerMap) (*ScoreResult, error) {
	if len(questions) == 0 {
		return nil, util.ErrQuizHasNoQuestions
	}

	result := &ScoreResult{
		TotalQuestions: len(questions),
		Results:        make(map[uint]QuestionResult, len(questions)),
	}

	for _, q := range questions {
		result.TotalPoints += q.Points

		submitted, answered := answers[q.ID]
		isCorrect := answered && submitted == q.CorrectAnswer

		result.Results[q.ID] = QuestionResult{
			Correct:       isCorrect,
			CorrectAnswer: q.CorrectAnswer,
		}

		if isCorrect {
			result.CorrectAnswers++
			result.EarnedPoints += q.Points
		}
	}

	// 全部题目都是0分值时显式给0，而不是交给除法产生NaN
	if result.TotalPoints > 0 {
		result.Score = float64(result.EarnedPoints) / float64(result.TotalPoints) * 100
	}

	return result, nil
}

func (s *QuizService) ListQuizzes() ([]model.QuizListItem, error) {
	return s.QuizRepo.ListPublished()
}

type QuizDetail struct {
	Quiz      *model.Quiz          `json:"quiz"`
	Questions []model.QuizQuestion `json:"questions"`
}

func (s *QuizService) GetQuizDetail(quizID uint) (*QuizDetail, error) {
	quiz, err := s.QuizRepo.FindByID(quizID)
	if err != nil {
		return nil, err
	}

	questions, err := s.QuizRepo.ListQuestions(quizID)
	if err != nil {
		return nil, err
	}

	return &QuizDetail{
		Quiz:      quiz,
		Questions: questions,
	}, nil
}

type SubmitQuizRequest struct {
	Answers   map[uint]string `json:"answers"`
	TimeTaken *int            `json:"time_taken"`
}

type SubmitQuizResponse struct {
	Score          float64                 `json:"score"`
	CorrectAnswers int                     `json:"correctAnswers"`
	TotalQuestions int                     `json:"totalQuestions"`
	EarnedPoints   int                     `json:"earnedPoints"`
	TotalPoints    int                     `json:"totalPoints"`
	AttemptID      uint                    `json:"attemptId"`
	Results        map[uint]QuestionResult `json:"results"`
}

// SubmitQuiz 评分并写入提交记录
// 提交记录写入失败会原样上抛：没有半成品记录，学生必须被告知评分未完成
func (s *QuizService) SubmitQuiz(userID, quizID uint, req SubmitQuizRequest) (*SubmitQuizResponse, error) {
	if req.Answers == nil {
		return nil, util.ErrInvalidSubmission
	}

	if _, err := s.QuizRepo.FindByID(quizID); err != nil {
		return nil, err
	}

	questions, err := s.QuizRepo.ListQuestions(quizID)
	if err != nil {
		return nil, err
	}

	result, err := CalculateScore(questions, model.AnswerMap(req.Answers))
	if err != nil {
		return nil, err
	}

	attempt := &model.QuizAttempt{
		UserID:              userID,
		QuizID:              quizID,
		Score:               result.Score,
		CorrectAnswersCount: result.CorrectAnswers,
		TotalQuestions:      result.TotalQuestions,
		Answers:             model.AnswerMap(req.Answers),
		TimeTaken:           req.TimeTaken,
		EarnedPoints:        result.EarnedPoints,
		TotalPoints:         result.TotalPoints,
	}

	if err := s.AttemptRepo.Create(attempt); err != nil {
		return nil, err
	}

	return &SubmitQuizResponse{
		Score:          util.Round2(result.Score),
		CorrectAnswers: result.CorrectAnswers,
		TotalQuestions: result.TotalQuestions,
		EarnedPoints:   result.EarnedPoints,
		TotalPoints:    result.TotalPoints,
		AttemptID:      attempt.ID,
		Results:        result.Results,
	}, nil
}

func (s *QuizService) ListAttempts(userID uint, filter repository.AttemptFilter, limit, offset int) ([]model.AttemptListItem, int64, error) {
	return s.AttemptRepo.ListByUser(userID, filter, limit, offset)
}

// AttemptDetail 成绩单详情：提交记录加逐题回顾
type AttemptDetail struct {
	Attempt   *model.QuizAttempt      `json:"attempt"`
	Questions []AttemptDetailQuestion `json:"questions"`
}

type AttemptDetailQuestion struct {
	model.QuizQuestion
	UserAnswer *string `json:"userAnswer"`
}

func (s *QuizService) GetAttemptDetail(attemptID, userID uint) (*AttemptDetail, error) {
	attempt, err := s.AttemptRepo.FindByIDAndUser(attemptID, userID)
	if err != nil {
		return nil, err
	}

	questions, err := s.QuizRepo.ListQuestions(attempt.QuizID)
	if err != nil {
		return nil, err
	}

	detail := &AttemptDetail{
		Attempt:   attempt,
		Questions: make([]AttemptDetailQuestion, len(questions)),
	}
	for i, q := range questions {
		dq := AttemptDetailQuestion{QuizQuestion: q}
		if answer, ok := attempt.Answers[q.ID]; ok {
			dq.UserAnswer = &answer
		}
		detail.Questions[i] = dq
	}

	return detail, nil
}

// GetLeaderboard 测验排行榜，带短TTL的Redis缓存
// 缓存读写失败只记日志，降级为直查数据库
func (s *QuizService) GetLeaderboard(ctx context.Context, quizID uint, limit int) ([]model.LeaderboardEntry, error) {
	cacheKey := leaderboardCacheKey(quizID, limit)

	if s.Redis != nil {
		val, err := s.Redis.Get(ctx, cacheKey).Result()
		if err == nil {
			var cached []model.LeaderboardEntry
			if jsonErr := json.Unmarshal([]byte(val), &cached); jsonErr == nil {
				return cached, nil
			}
		} else if err != redis.Nil {
			logger.Log.Warn("leaderboard cache read failed", zap.Error(err))
		}
	}

	entries, err := s.AttemptRepo.Leaderboard(quizID, limit)
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if data, err := json.Marshal(entries); err == nil {
			if err := s.Redis.Set(ctx, cacheKey, data, leaderboardCacheTTL).Err(); err != nil {
				logger.Log.Warn("leaderboard cache write failed", zap.Error(err))
			}
		}
	}

	return entries, nil
}

func leaderboardCacheKey(quizID uint, limit int) string {
	return "quiz:leaderboard:" + util.UintToString(quizID) + ":" + util.IntToString(limit)
}
