package session

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"medstudy-server/models"
	"medstudy-server/tutor"
)

// caseErrorNotice is appended as a system notice when the patient cannot
// answer.
const caseErrorNotice = "Je suis désolé, mais je ne peux pas répondre pour le moment. Veuillez reformuler votre question."

// caseErrorFlag is surfaced alongside the notice.
const caseErrorFlag = "Erreur de communication avec le patient"

// caseSession is one patient interview: an append-only message log seeded
// with the generated case, ended by a diagnosis evaluation. The log is
// never rolled back; failures append a system notice instead of a patient
// message.
type caseSession struct {
	id          string
	lessonTitle string
	initialCase string
	messages    []models.ChatMessage
	result      *models.DiagnosisResult
	lastError   string
	closed      bool
	busy        bool
}

func (s *caseSession) snapshot() models.CaseSessionResponse {
	msgs := make([]models.ChatMessage, len(s.messages))
	copy(msgs, s.messages)
	return models.CaseSessionResponse{
		SessionID:   s.id,
		LessonTitle: s.lessonTitle,
		Messages:    msgs,
		Result:      s.result,
		Error:       s.lastError,
		Closed:      s.closed,
	}
}

// CaseManager runs the patient-case interviews.
type CaseManager struct {
	mu       sync.Mutex
	sessions map[string]*caseSession
	tutor    *tutor.Service
}

// NewCaseManager creates an empty case session manager.
func NewCaseManager(t *tutor.Service) *CaseManager {
	return &CaseManager{
		sessions: make(map[string]*caseSession),
		tutor:    t,
	}
}

// Start generates the initial case for the lesson and seeds the log with
// it. Case generation degrades to a fixed text on failure, so Start always
// yields a usable session.
func (m *CaseManager) Start(ctx context.Context, lesson models.Lesson) models.CaseSessionResponse {
	initial := m.tutor.PatientCase(ctx, lesson.Title)
	s := &caseSession{
		id:          uuid.NewString(),
		lessonTitle: lesson.Title,
		initialCase: initial,
		messages:    []models.ChatMessage{{Role: models.RolePatient, Content: initial}},
	}

	m.mu.Lock()
	m.sessions[s.id] = s
	m.mu.Unlock()
	return s.snapshot()
}

// Get returns the current snapshot of an interview.
func (m *CaseManager) Get(id string) (models.CaseSessionResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return models.CaseSessionResponse{}, ErrNotFound
	}
	return s.snapshot(), nil
}

// Send appends the doctor's question and asks the simulated patient for a
// reply. On failure a system notice is appended instead of a patient
// message and the error flag is set; the doctor's message stays in the log.
func (m *CaseManager) Send(ctx context.Context, id, message string) (models.CaseSessionResponse, error) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if !ok {
		m.mu.Unlock()
		return models.CaseSessionResponse{}, ErrNotFound
	}
	if s.closed {
		m.mu.Unlock()
		return models.CaseSessionResponse{}, ErrClosed
	}
	if s.result != nil {
		m.mu.Unlock()
		return models.CaseSessionResponse{}, ErrEnded
	}
	if s.busy {
		m.mu.Unlock()
		return models.CaseSessionResponse{}, ErrBusy
	}
	s.busy = true
	s.lastError = ""
	s.messages = append(s.messages, models.ChatMessage{Role: models.RoleUser, Content: message})
	initial := s.initialCase
	m.mu.Unlock()

	reply, err := m.tutor.PatientReply(ctx, message, initial)

	m.mu.Lock()
	defer m.mu.Unlock()
	s.busy = false
	if s.closed {
		return models.CaseSessionResponse{}, ErrClosed
	}
	if err != nil {
		s.messages = append(s.messages, models.ChatMessage{Role: models.RoleSystem, Content: caseErrorNotice})
		s.lastError = caseErrorFlag
	} else {
		s.messages = append(s.messages, models.ChatMessage{Role: models.RolePatient, Content: reply})
	}
	return s.snapshot(), nil
}

// Diagnose evaluates the submitted diagnosis and ends the interview. The
// evaluator guarantees a result on every failure path.
func (m *CaseManager) Diagnose(ctx context.Context, id, diagnosis string) (models.CaseSessionResponse, error) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if !ok {
		m.mu.Unlock()
		return models.CaseSessionResponse{}, ErrNotFound
	}
	if s.closed {
		m.mu.Unlock()
		return models.CaseSessionResponse{}, ErrClosed
	}
	if s.result != nil {
		m.mu.Unlock()
		return models.CaseSessionResponse{}, ErrEnded
	}
	if s.busy {
		m.mu.Unlock()
		return models.CaseSessionResponse{}, ErrBusy
	}
	s.busy = true
	s.lastError = ""
	title, initial := s.lessonTitle, s.initialCase
	m.mu.Unlock()

	result := m.tutor.EvaluateDiagnosis(ctx, diagnosis, title, initial)

	m.mu.Lock()
	defer m.mu.Unlock()
	s.busy = false
	if s.closed {
		return models.CaseSessionResponse{}, ErrClosed
	}
	s.result = &result
	return s.snapshot(), nil
}

// Close discards the interview.
func (m *CaseManager) Close(id string) error {
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
