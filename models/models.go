package models

// Lesson represents a studyable unit shown on the dashboard. Exactly one of
// PDFURL or Content is usable as its viewable body; Content is the default
// until an upload succeeds for the lesson.
type Lesson struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Theme        string `json:"theme"`
	Progress     int    `json:"progress"`
	QuizzesTaken int    `json:"quizzesTaken"`
	LastAttempt  string `json:"lastAttempt"`
	PDFURL       string `json:"pdfUrl,omitempty"`
	Content      string `json:"content,omitempty"`
}

// ThemeSummary aggregates the lessons of one medical specialty. Derived on
// read, never stored.
type ThemeSummary struct {
	Name            string `json:"name"`
	LessonCount     int    `json:"lessonCount"`
	AverageProgress int    `json:"averageProgress"`
}

// Choice is one of the four labeled answers of a quiz question.
type Choice struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

// QuizQuestion is a generated multiple-choice question. Transient: it lives
// only inside a quiz session and is regenerated on every step.
type QuizQuestion struct {
	Question    string   `json:"question"`
	Choices     []Choice `json:"choices"`
	Explanation string   `json:"explanation"`
}

// DiagnosisResult is the evaluator's verdict for a submitted diagnosis.
type DiagnosisResult struct {
	IsCorrect   bool   `json:"isCorrect"`
	Explanation string `json:"explanation"`
}

// ChatRole tags who authored a chat message.
type ChatRole string

const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
	RolePatient   ChatRole = "patient"
	RoleSystem    ChatRole = "system"
)

// Valid reports whether the role is one of the known tags.
func (r ChatRole) Valid() bool {
	switch r {
	case RoleUser, RoleAssistant, RolePatient, RoleSystem:
		return true
	}
	return false
}

// ChatMessage is one entry of an append-only per-session chat log.
type ChatMessage struct {
	Role    ChatRole `json:"role"`
	Content string   `json:"content"`
}

// ViewMode is the dashboard's display mode.
type ViewMode string

const (
	ViewThemes  ViewMode = "themes"
	ViewLessons ViewMode = "lessons"
)

// ViewState describes the dashboard navigation state. SelectedTheme is only
// ever non-empty in themes mode.
type ViewState struct {
	Mode          ViewMode `json:"mode"`
	SelectedTheme string   `json:"selectedTheme,omitempty"`
}

// ViewActionRequest drives the dashboard state machine.
type ViewActionRequest struct {
	Action string `json:"action" binding:"required,oneof=toggle select back"`
	Theme  string `json:"theme"`
}

// ProgressUpdateRequest replaces a lesson's progress value. The store does
// not clamp; callers supply 0-100.
type ProgressUpdateRequest struct {
	Progress *int `json:"progress" binding:"required"`
}

// QuizSessionRequest configures a new quiz session.
type QuizSessionRequest struct {
	LessonID   string `json:"lesson_id" binding:"required"`
	Questions  int    `json:"questions" binding:"required,min=1,max=20"`
	Difficulty int    `json:"difficulty" binding:"min=0,max=100"`
}

// QuizRevealRequest records the selected choice and reveals the answer.
type QuizRevealRequest struct {
	ChoiceID string `json:"choice_id" binding:"required,oneof=A B C D"`
}

// QuizSessionResponse is the session snapshot returned by the quiz endpoints.
type QuizSessionResponse struct {
	SessionID       string       `json:"session_id"`
	LessonTitle     string       `json:"lesson_title"`
	CurrentQuestion int          `json:"current_question"`
	TotalQuestions  int          `json:"total_questions"`
	Question        QuizQuestion `json:"question"`
	Revealed        bool         `json:"revealed"`
	SelectedChoice  string       `json:"selected_choice,omitempty"`
	Closed          bool         `json:"closed"`
}

// CaseSessionRequest starts a patient-case interview for a lesson.
type CaseSessionRequest struct {
	LessonID string `json:"lesson_id" binding:"required"`
}

// CaseMessageRequest is one doctor question to the simulated patient.
type CaseMessageRequest struct {
	Message string `json:"message" binding:"required"`
}

// DiagnosisRequest submits the student's diagnosis for evaluation.
type DiagnosisRequest struct {
	Diagnosis string `json:"diagnosis" binding:"required"`
}

// CaseSessionResponse is the case-session snapshot. Result is set once a
// diagnosis has been evaluated, which ends the interview.
type CaseSessionResponse struct {
	SessionID   string           `json:"session_id"`
	LessonTitle string           `json:"lesson_title"`
	Messages    []ChatMessage    `json:"messages"`
	Result      *DiagnosisResult `json:"result,omitempty"`
	Error       string           `json:"error,omitempty"`
	Closed      bool             `json:"closed"`
}

// ChatSessionRequest starts a lesson-assistant chat.
type ChatSessionRequest struct {
	LessonID string `json:"lesson_id" binding:"required"`
}

// ChatMessageRequest is one student question to the assistant.
type ChatMessageRequest struct {
	Message string `json:"message" binding:"required"`
}

// ChatSessionResponse is the assistant-chat snapshot.
type ChatSessionResponse struct {
	SessionID   string        `json:"session_id"`
	LessonTitle string        `json:"lesson_title"`
	Messages    []ChatMessage `json:"messages"`
	Error       string        `json:"error,omitempty"`
	Closed      bool          `json:"closed"`
}

// DocumentInfo describes which content form a lesson currently has.
type DocumentInfo struct {
	Type    string `json:"type"` // "pdf" or "inline"
	PDFURL  string `json:"pdfUrl,omitempty"`
	Content string `json:"content,omitempty"`
}
