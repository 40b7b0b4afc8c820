package session

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"medstudy-server/models"
	"medstudy-server/quiz"
)

// quizSession is one quiz run: configuring collapses immediately into
// question(1); "next" either advances with a freshly generated question or,
// at the configured count, closes the session. Each question moves
// answering -> revealed exactly once.
type quizSession struct {
	id             string
	lessonID       string
	lessonTitle    string
	totalQuestions int
	difficulty     int
	current        int
	question       models.QuizQuestion
	revealed       bool
	selectedChoice string
	closed         bool
	busy           bool
}

func (s *quizSession) snapshot() models.QuizSessionResponse {
	return models.QuizSessionResponse{
		SessionID:       s.id,
		LessonTitle:     s.lessonTitle,
		CurrentQuestion: s.current,
		TotalQuestions:  s.totalQuestions,
		Question:        s.question,
		Revealed:        s.revealed,
		SelectedChoice:  s.selectedChoice,
		Closed:          s.closed,
	}
}

// QuizManager runs the quiz-flow state machines. One generation call per
// session may be in flight at a time; concurrent triggers get ErrBusy.
type QuizManager struct {
	mu       sync.Mutex
	sessions map[string]*quizSession
	quiz     *quiz.Service
	// onComplete is notified with the lesson id when a run finishes by
	// reaching its configured question count. Abandoned runs do not count.
	onComplete func(lessonID string)
}

// NewQuizManager creates an empty quiz session manager. onComplete may be
// nil.
func NewQuizManager(q *quiz.Service, onComplete func(lessonID string)) *QuizManager {
	return &QuizManager{
		sessions:   make(map[string]*quizSession),
		quiz:       q,
		onComplete: onComplete,
	}
}

// Start creates a session for the lesson and generates its first question.
func (m *QuizManager) Start(ctx context.Context, lesson models.Lesson, totalQuestions, difficulty int) models.QuizSessionResponse {
	s := &quizSession{
		id:             uuid.NewString(),
		lessonID:       lesson.ID,
		lessonTitle:    lesson.Title,
		totalQuestions: totalQuestions,
		difficulty:     difficulty,
		current:        1,
	}
	// Generation happens before the session is published, so no busy
	// window exists during start.
	s.question = m.quiz.Question(ctx, s.lessonTitle, s.difficulty)

	m.mu.Lock()
	m.sessions[s.id] = s
	m.mu.Unlock()
	return s.snapshot()
}

// Get returns the current snapshot of a session.
func (m *QuizManager) Get(id string) (models.QuizSessionResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return models.QuizSessionResponse{}, ErrNotFound
	}
	return s.snapshot(), nil
}

// Reveal records the selected choice and flips the current question to
// revealed. Revealed is terminal for the question; it only exits through
// Next.
func (m *QuizManager) Reveal(id, choiceID string) (models.QuizSessionResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return models.QuizSessionResponse{}, ErrNotFound
	}
	if s.closed {
		return models.QuizSessionResponse{}, ErrClosed
	}
	if s.revealed {
		return models.QuizSessionResponse{}, ErrAlreadyRevealed
	}
	s.selectedChoice = choiceID
	s.revealed = true
	return s.snapshot(), nil
}

// Next advances to the following question, regenerating through the quiz
// service, or closes the session when the configured count is reached.
// The closed-session snapshot is returned in that case.
func (m *QuizManager) Next(ctx context.Context, id string) (models.QuizSessionResponse, error) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if !ok {
		m.mu.Unlock()
		return models.QuizSessionResponse{}, ErrNotFound
	}
	if s.closed {
		m.mu.Unlock()
		return models.QuizSessionResponse{}, ErrClosed
	}
	if s.busy {
		m.mu.Unlock()
		return models.QuizSessionResponse{}, ErrBusy
	}
	if !s.revealed {
		m.mu.Unlock()
		return models.QuizSessionResponse{}, ErrNotRevealed
	}

	if s.current >= s.totalQuestions {
		// Reaching the configured count collapses the flow back to
		// closed; there is no summary screen.
		s.closed = true
		snap := s.snapshot()
		lessonID := s.lessonID
		delete(m.sessions, id)
		m.mu.Unlock()
		if m.onComplete != nil {
			m.onComplete(lessonID)
		}
		return snap, nil
	}

	s.busy = true
	title, difficulty := s.lessonTitle, s.difficulty
	m.mu.Unlock()

	q := m.quiz.Question(ctx, title, difficulty)

	m.mu.Lock()
	defer m.mu.Unlock()
	s.busy = false
	if s.closed {
		// The session was torn down while generating; the late result
		// resolves into a stale no-op.
		return models.QuizSessionResponse{}, ErrClosed
	}
	s.current++
	s.question = q
	s.revealed = false
	s.selectedChoice = ""
	return s.snapshot(), nil
}

// Close discards the session. Closing an unknown or already-closed session
// is an error so callers can distinguish stale ids.
func (m *QuizManager) Close(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return ErrNotFound
	}
	s.closed = true
	delete(m.sessions, id)
	return nil
}
