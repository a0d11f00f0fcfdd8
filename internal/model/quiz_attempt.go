package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"strconv"
	"time"
)

// AnswerMap 题目ID到提交答案的映射，整体序列化为JSON落库
type AnswerMap map[uint]string

func (m AnswerMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	raw := make(map[string]string, len(m))
	for id, answer := range m {
		raw[strconv.FormatUint(uint64(id), 10)] = answer
	}
	b, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (m *AnswerMap) Scan(value interface{}) error {
	if value == nil {
		*m = AnswerMap{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("unsupported type for AnswerMap")
	}

	raw := make(map[string]string)
	if len(data) > 0 {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
	}

	out := make(AnswerMap, len(raw))
	for key, answer := range raw {
		id, err := strconv.ParseUint(key, 10, 64)
		if err != nil {
			return err
		}
		out[uint(id)] = answer
	}
	*m = out
	return nil
}

// QuizAttempt 一次测验提交的完整记录，只增不改
// 同一(用户,测验)允许多次提交，没有唯一约束
type QuizAttempt struct {
	ID                  uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID              uint      `gorm:"index;not null" json:"userId"`
	QuizID              uint      `gorm:"index;not null" json:"quizId"`
	Score               float64   `gorm:"not null" json:"score"`
	CorrectAnswersCount int       `gorm:"not null" json:"correctAnswersCount"`
	TotalQuestions      int       `gorm:"not null" json:"totalQuestions"`
	Answers             AnswerMap `gorm:"type:json" json:"answers"`
	TimeTaken           *int      `json:"timeTaken"`
	EarnedPoints        int       `gorm:"not null" json:"earnedPoints"`
	TotalPoints         int       `gorm:"not null" json:"totalPoints"`
	CompletedAt         time.Time `gorm:"autoCreateTime" json:"completedAt"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}

// AttemptListItem 我的成绩列表行，附带测验与课程信息
type AttemptListItem struct {
	ID             uint      `json:"id"`
	QuizID         uint      `json:"quizId"`
	QuizTitle      string    `json:"quizTitle"`
	Score          float64   `json:"score"`
	CorrectAnswers int       `json:"correctAnswers"`
	TotalQuestions int       `json:"totalQuestions"`
	EarnedPoints   int       `json:"earnedPoints"`
	TotalPoints    int       `json:"totalPoints"`
	TimeTaken      *int      `json:"timeTaken"`
	CompletedAt    time.Time `json:"completedAt"`
	CourseID       uint      `json:"courseId"`
	CourseTitle    string    `json:"courseTitle"`
}

// LeaderboardEntry 测验排行榜行，得分降序、用时升序
type LeaderboardEntry struct {
	UserID      uint      `json:"userId"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	AvatarURL   string    `json:"avatarUrl"`
	Score       float64   `json:"score"`
	TimeTaken   *int      `json:"timeTaken"`
	CompletedAt time.Time `json:"completedAt"`
}
