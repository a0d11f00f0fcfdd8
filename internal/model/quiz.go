package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

const (
	QuestionTypeMultipleChoice = "multiple_choice"
	QuestionTypeTrueFalse      = "true_false"
)

// swagger:model Quiz
type Quiz struct {
	BaseModel
	CourseID         uint   `gorm:"index;not null" json:"courseId"`
	Title            string `gorm:"size:200;not null" json:"title"`
	Description      string `gorm:"type:text" json:"description"`
	TimeLimitMinutes int    `gorm:"default:0" json:"timeLimitMinutes"`
	IsPublished      bool   `gorm:"default:false;index" json:"isPublished"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// StringList 以JSON数组落库的有序选项列表
// 选项在题目加载时解析一次，下游始终使用 []string，不再重复解析
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("unsupported type for StringList")
	}

	if len(data) == 0 {
		*l = StringList{}
		return nil
	}
	return json.Unmarshal(data, (*[]string)(l))
}

// swagger:model QuizQuestion
type QuizQuestion struct {
	BaseModel
	QuizID        uint       `gorm:"index;not null" json:"quizId"`
	QuestionText  string     `gorm:"type:text;not null" json:"questionText"`
	QuestionType  string     `gorm:"size:30;default:'multiple_choice'" json:"questionType"`
	Options       StringList `gorm:"type:json" json:"options"`
	CorrectAnswer string     `gorm:"size:500;not null" json:"correctAnswer"`
	Points        int        `gorm:"default:1" json:"points"`
	OrderIndex    int        `gorm:"default:0" json:"orderIndex"`
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}

// QuizListItem 测验列表行，附带课程标题与题目数
type QuizListItem struct {
	Quiz
	CourseTitle   string `json:"courseTitle"`
	QuestionCount int64  `json:"questionCount"`
}
