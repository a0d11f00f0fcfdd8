package repository

import (
	"testing"

	"learnhub_backend/internal/model"
)

func intPtr(v int) *int { return &v }

func TestAttemptCreate_AppendOnly(t *testing.T) {
	repo := NewAttemptRepository(newTestDB(t))

	first := &model.QuizAttempt{
		UserID: 1, QuizID: 5,
		Score: 50, CorrectAnswersCount: 1, TotalQuestions: 2,
		Answers:      model.AnswerMap{1: "B", 2: "False"},
		EarnedPoints: 5, TotalPoints: 10,
	}
	second := &model.QuizAttempt{
		UserID: 1, QuizID: 5,
		Score: 100, CorrectAnswersCount: 2, TotalQuestions: 2,
		Answers:      model.AnswerMap{1: "B", 2: "True"},
		EarnedPoints: 10, TotalPoints: 10,
	}

	if err := repo.Create(first); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if err := repo.Create(second); err != nil {
		t.Fatalf("second create failed: %v", err)
	}

	// 同一(用户,测验)重复提交各自成行，历史可追溯
	var count int64
	if err := repo.DB.Model(&model.QuizAttempt{}).
		Where("user_id = ? AND quiz_id = ?", 1, 5).
		Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 attempts, got %d", count)
	}
	if first.ID == second.ID {
		t.Errorf("attempts must get distinct ids, both got %d", first.ID)
	}
}

func TestAttemptFindByIDAndUser(t *testing.T) {
	repo := NewAttemptRepository(newTestDB(t))

	attempt := &model.QuizAttempt{
		UserID: 1, QuizID: 5,
		Score: 66.666666, CorrectAnswersCount: 1, TotalQuestions: 2,
		Answers:      model.AnswerMap{1: "B", 2: "False"},
		EarnedPoints: 10, TotalPoints: 15,
		TimeTaken:    intPtr(120),
	}
	if err := repo.Create(attempt); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	found, err := repo.FindByIDAndUser(attempt.ID, 1)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if found.Answers[1] != "B" || found.Answers[2] != "False" {
		t.Errorf("answers did not roundtrip, got %v", found.Answers)
	}
	if found.TimeTaken == nil || *found.TimeTaken != 120 {
		t.Errorf("expected timeTaken=120, got %v", found.TimeTaken)
	}

	// 其他用户拿不到这条记录
	if _, err := repo.FindByIDAndUser(attempt.ID, 2); err == nil {
		t.Errorf("expected error when fetching another user's attempt")
	}
}

func TestLeaderboard_Ordering(t *testing.T) {
	db := newTestDB(t)
	repo := NewAttemptRepository(db)

	users := []model.User{
		{Email: "a@test.com", Password: "x", FirstName: "Alice", LastName: "A", Role: model.Student},
		{Email: "b@test.com", Password: "x", FirstName: "Bob", LastName: "B", Role: model.Student},
		{Email: "c@test.com", Password: "x", FirstName: "Carol", LastName: "C", Role: model.Student},
	}
	for i := range users {
		if err := db.Create(&users[i]).Error; err != nil {
			t.Fatalf("create user failed: %v", err)
		}
	}

	attempts := []model.QuizAttempt{
		{UserID: users[0].ID, QuizID: 5, Score: 80, TimeTaken: intPtr(120)},
		{UserID: users[1].ID, QuizID: 5, Score: 95, TimeTaken: intPtr(300)},
		{UserID: users[2].ID, QuizID: 5, Score: 80, TimeTaken: intPtr(60)},
		// 其他测验的成绩不应出现
		{UserID: users[0].ID, QuizID: 6, Score: 100, TimeTaken: intPtr(10)},
	}
	for i := range attempts {
		if err := repo.Create(&attempts[i]); err != nil {
			t.Fatalf("create attempt failed: %v", err)
		}
	}

	entries, err := repo.Leaderboard(5, 10)
	if err != nil {
		t.Fatalf("leaderboard failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	// 得分降序，同分用时升序
	wantOrder := []string{"Bob", "Carol", "Alice"}
	for i, want := range wantOrder {
		if entries[i].FirstName != want {
			t.Errorf("position %d: expected %s, got %s", i, want, entries[i].FirstName)
		}
	}
}
