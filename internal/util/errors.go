package util

import "errors"

var (
	ErrUserNotFound       = errors.New("用户不存在")
	ErrEmailRegistered    = errors.New("该邮箱已被注册")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrCourseNotFound     = errors.New("course not found")
	ErrLessonNotFound     = errors.New("lesson not found")
	ErrQuizNotFound       = errors.New("quiz not found")
	ErrAttemptNotFound    = errors.New("quiz attempt not found")
	ErrAlreadyEnrolled    = errors.New("already enrolled in this course")
	ErrQuizHasNoQuestions = errors.New("this quiz has no questions")
	ErrInvalidSubmission  = errors.New("invalid answers format")
)
