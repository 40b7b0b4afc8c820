// --- medstudy-server/handlers/session_handlers.go ---
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"medstudy-server/models"
	"medstudy-server/session"
	"medstudy-server/store"
)

// sessionError maps session-layer errors onto HTTP statuses.
func sessionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, session.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
	case errors.Is(err, session.ErrBusy):
		c.JSON(http.StatusConflict, gin.H{"error": "A generation is already in progress"})
	case errors.Is(err, session.ErrClosed):
		c.JSON(http.StatusGone, gin.H{"error": "Session is closed"})
	case errors.Is(err, session.ErrEnded):
		c.JSON(http.StatusConflict, gin.H{"error": "The interview has ended"})
	case errors.Is(err, session.ErrNotRevealed):
		c.JSON(http.StatusConflict, gin.H{"error": "Reveal the answer before advancing"})
	case errors.Is(err, session.ErrAlreadyRevealed):
		c.JSON(http.StatusConflict, gin.H{"error": "Answer already revealed"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// StartQuizSession creates a quiz session for a lesson and returns the first
// question.
// POST /api/quiz/sessions
func StartQuizSession(s *store.Store, m *session.QuizManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.QuizSessionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		lesson, ok := s.Lesson(req.LessonID)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
			return
		}
		resp := m.Start(c.Request.Context(), lesson, req.Questions, req.Difficulty)
		c.JSON(http.StatusCreated, resp)
	}
}

// GetQuizSession returns the current quiz snapshot.
// GET /api/quiz/sessions/:id
func GetQuizSession(m *session.QuizManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp, err := m.Get(c.Param("id"))
		if err != nil {
			sessionError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// RevealQuizAnswer records the selected choice and reveals the explanation.
// POST /api/quiz/sessions/:id/reveal
func RevealQuizAnswer(m *session.QuizManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.QuizRevealRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		resp, err := m.Reveal(c.Param("id"), req.ChoiceID)
		if err != nil {
			sessionError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// NextQuizQuestion advances to the next question, or closes the session once
// the configured count has been reached.
// POST /api/quiz/sessions/:id/next
func NextQuizQuestion(m *session.QuizManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp, err := m.Next(c.Request.Context(), c.Param("id"))
		if err != nil {
			sessionError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// CloseQuizSession discards the session.
// DELETE /api/quiz/sessions/:id
func CloseQuizSession(m *session.QuizManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := m.Close(c.Param("id")); err != nil {
			sessionError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"closed": true})
	}
}

// StartCaseSession opens a patient interview for a lesson.
// POST /api/cases
func StartCaseSession(s *store.Store, m *session.CaseManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.CaseSessionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		lesson, ok := s.Lesson(req.LessonID)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
			return
		}
		resp := m.Start(c.Request.Context(), lesson)
		c.JSON(http.StatusCreated, resp)
	}
}

// GetCaseSession returns the current interview snapshot.
// GET /api/cases/:id
func GetCaseSession(m *session.CaseManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp, err := m.Get(c.Param("id"))
		if err != nil {
			sessionError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// SendCaseMessage asks the simulated patient one question.
// POST /api/cases/:id/messages
func SendCaseMessage(m *session.CaseManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.CaseMessageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		resp, err := m.Send(c.Request.Context(), c.Param("id"), req.Message)
		if err != nil {
			sessionError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// SubmitDiagnosis evaluates the student's diagnosis and ends the interview.
// POST /api/cases/:id/diagnosis
func SubmitDiagnosis(m *session.CaseManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.DiagnosisRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		resp, err := m.Diagnose(c.Request.Context(), c.Param("id"), req.Diagnosis)
		if err != nil {
			sessionError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// CloseCaseSession discards the interview.
// DELETE /api/cases/:id
func CloseCaseSession(m *session.CaseManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := m.Close(c.Param("id")); err != nil {
			sessionError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"closed": true})
	}
}

// StartChatSession opens a lesson-assistant chat.
// POST /api/chats
func StartChatSession(s *store.Store, m *session.ChatManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ChatSessionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		lesson, ok := s.Lesson(req.LessonID)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
			return
		}
		c.JSON(http.StatusCreated, m.Start(lesson))
	}
}

// GetChatSession returns the current chat snapshot.
// GET /api/chats/:id
func GetChatSession(m *session.ChatManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp, err := m.Get(c.Param("id"))
		if err != nil {
			sessionError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// SendChatMessage asks the assistant one question.
// POST /api/chats/:id/messages
func SendChatMessage(m *session.ChatManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ChatMessageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		resp, err := m.Send(c.Request.Context(), c.Param("id"), req.Message)
		if err != nil {
			sessionError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// CloseChatSession discards the chat.
// DELETE /api/chats/:id
func CloseChatSession(m *session.ChatManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := m.Close(c.Param("id")); err != nil {
			sessionError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"closed": true})
	}
}

// GetViewState returns the dashboard navigation state.
// GET /api/view
func GetViewState(v *session.DashboardView) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, v.State())
	}
}

// ApplyViewAction drives the dashboard state machine with one of toggle,
// select or back.
// POST /api/view
func ApplyViewAction(v *session.DashboardView) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ViewActionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		switch req.Action {
		case "toggle":
			c.JSON(http.StatusOK, v.Toggle())
		case "select":
			state, err := v.SelectTheme(req.Theme)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusOK, state)
		case "back":
			c.JSON(http.StatusOK, v.Back())
		}
	}
}

// AppShell serves the single-page shell; client-side routing handles the
// rest.
// GET /
func AppShell() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, "app_shell", gin.H{"title": "MedStudy"})
	}
}
