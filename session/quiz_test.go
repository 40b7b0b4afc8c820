package session

import (
	"context"
	"errors"
	"testing"

	"medstudy-server/ai"
	"medstudy-server/models"
	"medstudy-server/quiz"
)

const quizResponse = `QUESTION: Quelle valence vaccinale est contre-indiquée chez l'immunodéprimé?
A) Vaccin inactivé
B) Vaccin vivant atténué
C) Anatoxine
D) Vaccin sous-unitaire
CORRECT: B
EXPLANATION: Les vaccins vivants atténués sont contre-indiqués en cas d'immunodépression.`

func testLesson() models.Lesson {
	return models.Lesson{ID: "lesson-76", Title: "Vaccinations", Theme: "Gastrologie"}
}

func TestQuizSessionFullWalk(t *testing.T) {
	mock := &ai.Mock{Responses: []string{quizResponse}}
	var completed []string
	m := NewQuizManager(quiz.NewService(mock), func(lessonID string) {
		completed = append(completed, lessonID)
	})
	ctx := context.Background()

	resp := m.Start(ctx, testLesson(), 2, 60)
	if resp.SessionID == "" {
		t.Fatal("expected a session id")
	}
	if resp.CurrentQuestion != 1 || resp.TotalQuestions != 2 {
		t.Errorf("expected question 1 of 2, got %d of %d", resp.CurrentQuestion, resp.TotalQuestions)
	}
	if resp.Revealed || resp.Closed {
		t.Error("a fresh session must be neither revealed nor closed")
	}
	if len(resp.Question.Choices) != 4 {
		t.Fatalf("expected 4 choices, got %d", len(resp.Question.Choices))
	}

	resp, err := m.Reveal(resp.SessionID, "B")
	if err != nil {
		t.Fatalf("reveal: %v", err)
	}
	if !resp.Revealed || resp.SelectedChoice != "B" {
		t.Errorf("expected revealed with choice B, got %+v", resp)
	}

	resp, err = m.Next(ctx, resp.SessionID)
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if resp.CurrentQuestion != 2 || resp.Revealed || resp.SelectedChoice != "" {
		t.Errorf("advancing must reset the answering state, got %+v", resp)
	}
	if len(completed) != 0 {
		t.Error("completion must not fire before the last question")
	}

	if _, err := m.Reveal(resp.SessionID, "A"); err != nil {
		t.Fatalf("reveal 2: %v", err)
	}
	resp, err = m.Next(ctx, resp.SessionID)
	if err != nil {
		t.Fatalf("final next: %v", err)
	}
	if !resp.Closed {
		t.Error("reaching the configured count must close the session")
	}
	if len(completed) != 1 || completed[0] != "lesson-76" {
		t.Errorf("expected one completion for lesson-76, got %v", completed)
	}

	if _, err := m.Get(resp.SessionID); !errors.Is(err, ErrNotFound) {
		t.Errorf("closed session should be gone, got %v", err)
	}
}

func TestQuizNextBeforeReveal(t *testing.T) {
	mock := &ai.Mock{Responses: []string{quizResponse}}
	m := NewQuizManager(quiz.NewService(mock), nil)

	resp := m.Start(context.Background(), testLesson(), 3, 50)
	if _, err := m.Next(context.Background(), resp.SessionID); !errors.Is(err, ErrNotRevealed) {
		t.Errorf("expected ErrNotRevealed, got %v", err)
	}
}

func TestQuizRevealTwice(t *testing.T) {
	mock := &ai.Mock{Responses: []string{quizResponse}}
	m := NewQuizManager(quiz.NewService(mock), nil)

	resp := m.Start(context.Background(), testLesson(), 3, 50)
	if _, err := m.Reveal(resp.SessionID, "A"); err != nil {
		t.Fatalf("reveal: %v", err)
	}
	if _, err := m.Reveal(resp.SessionID, "C"); !errors.Is(err, ErrAlreadyRevealed) {
		t.Errorf("expected ErrAlreadyRevealed, got %v", err)
	}
}

func TestQuizUnknownSession(t *testing.T) {
	m := NewQuizManager(quiz.NewService(&ai.Mock{}), nil)

	if _, err := m.Get("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("get: expected ErrNotFound, got %v", err)
	}
	if _, err := m.Reveal("nope", "A"); !errors.Is(err, ErrNotFound) {
		t.Errorf("reveal: expected ErrNotFound, got %v", err)
	}
	if _, err := m.Next(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("next: expected ErrNotFound, got %v", err)
	}
	if err := m.Close("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("close: expected ErrNotFound, got %v", err)
	}
}

func TestQuizGenerationFailureStillAdvances(t *testing.T) {
	mock := &ai.Mock{Err: errors.New("unavailable")}
	m := NewQuizManager(quiz.NewService(mock), nil)
	ctx := context.Background()

	resp := m.Start(ctx, testLesson(), 2, 50)
	if resp.Question.Question == "" {
		t.Fatal("start must substitute the fallback question on failure")
	}

	if _, err := m.Reveal(resp.SessionID, "A"); err != nil {
		t.Fatalf("reveal: %v", err)
	}
	resp, err := m.Next(ctx, resp.SessionID)
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if resp.CurrentQuestion != 2 || resp.Question.Question == "" {
		t.Errorf("next must substitute the fallback question on failure, got %+v", resp)
	}
}
