package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"medstudy-server/models"
	"medstudy-server/tutor"
)

// chatErrorNotice is appended as a system notice when the assistant cannot
// answer.
const chatErrorNotice = "Je suis désolé, mais je ne peux pas répondre pour le moment. Veuillez réessayer."

// chatSession is one lesson-assistant conversation, seeded with a greeting
// for the lesson. Append-only, like the case log.
type chatSession struct {
	id          string
	lessonTitle string
	messages    []models.ChatMessage
	lastError   string
	closed      bool
	busy        bool
}

func (s *chatSession) snapshot() models.ChatSessionResponse {
	msgs := make([]models.ChatMessage, len(s.messages))
	copy(msgs, s.messages)
	return models.ChatSessionResponse{
		SessionID:   s.id,
		LessonTitle: s.lessonTitle,
		Messages:    msgs,
		Error:       s.lastError,
		Closed:      s.closed,
	}
}

// ChatManager runs the lesson-assistant chats.
type ChatManager struct {
	mu       sync.Mutex
	sessions map[string]*chatSession
	tutor    *tutor.Service
}

// NewChatManager creates an empty chat session manager.
func NewChatManager(t *tutor.Service) *ChatManager {
	return &ChatManager{
		sessions: make(map[string]*chatSession),
		tutor:    t,
	}
}

// Start opens a chat for the lesson, seeded with the assistant greeting.
func (m *ChatManager) Start(lesson models.Lesson) models.ChatSessionResponse {
	greeting := fmt.Sprintf("Bonjour! Je suis votre assistant pour le cours %q. Je peux vous aider à comprendre les concepts, répondre à vos questions et fournir des explications détaillées. Comment puis-je vous aider aujourd'hui ?", lesson.Title)
	s := &chatSession{
		id:          uuid.NewString(),
		lessonTitle: lesson.Title,
		messages:    []models.ChatMessage{{Role: models.RoleAssistant, Content: greeting}},
	}

	m.mu.Lock()
	m.sessions[s.id] = s
	m.mu.Unlock()
	return s.snapshot()
}

// Get returns the current snapshot of a chat.
func (m *ChatManager) Get(id string) (models.ChatSessionResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return models.ChatSessionResponse{}, ErrNotFound
	}
	return s.snapshot(), nil
}

// Send appends the student's question and asks the professor assistant for
// a reply. On failure a system notice is appended instead of an assistant
// message; the log is never rolled back.
func (m *ChatManager) Send(ctx context.Context, id, message string) (models.ChatSessionResponse, error) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if !ok {
		m.mu.Unlock()
		return models.ChatSessionResponse{}, ErrNotFound
	}
	if s.closed {
		m.mu.Unlock()
		return models.ChatSessionResponse{}, ErrClosed
	}
	if s.busy {
		m.mu.Unlock()
		return models.ChatSessionResponse{}, ErrBusy
	}
	s.busy = true
	s.lastError = ""
	s.messages = append(s.messages, models.ChatMessage{Role: models.RoleUser, Content: message})
	title := s.lessonTitle
	m.mu.Unlock()

	reply, err := m.tutor.ProfessorReply(ctx, message, title)

	m.mu.Lock()
	defer m.mu.Unlock()
	s.busy = false
	if s.closed {
		return models.ChatSessionResponse{}, ErrClosed
	}
	if err != nil {
		s.messages = append(s.messages, models.ChatMessage{Role: models.RoleSystem, Content: chatErrorNotice})
		s.lastError = chatErrorNotice
	} else {
		s.messages = append(s.messages, models.ChatMessage{Role: models.RoleAssistant, Content: reply})
	}
	return s.snapshot(), nil
}

// Close discards the chat.
func (m *ChatManager) Close(id string) error {
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
