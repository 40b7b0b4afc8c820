// --- medstudy-server/handlers/api_handlers.go ---
package handlers

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"medstudy-server/models"
	"medstudy-server/store"
	"medstudy-server/tutor"
	"medstudy-server/utils"
)

// HealthCheck reports liveness.
// GET /api/health
func HealthCheck() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// GetLessons lists the lesson collection, optionally filtered by theme.
// GET /api/lessons?theme=Cardiologie
func GetLessons(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if theme := c.Query("theme"); theme != "" {
			lessons := s.LessonsByTheme(theme)
			if lessons == nil {
				lessons = []models.Lesson{}
			}
			c.JSON(http.StatusOK, lessons)
			return
		}
		c.JSON(http.StatusOK, s.Lessons())
	}
}

// GetLesson returns a single lesson.
// GET /api/lessons/:id
func GetLesson(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		lesson, ok := s.Lesson(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Lesson %s not found", c.Param("id"))})
			return
		}
		c.JSON(http.StatusOK, lesson)
	}
}

// GetThemes lists the nine theme summaries with lesson counts and rounded
// mean progress.
// GET /api/themes
func GetThemes(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, s.Themes())
	}
}

// UpdateLessonProgress replaces the progress value of a lesson. An unknown
// identifier is a successful no-op, matching the store semantics.
// PUT /api/lessons/:id/progress
func UpdateLessonProgress(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ProgressUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		s.UpdateProgress(c.Param("id"), *req.Progress)
		c.JSON(http.StatusOK, gin.H{"updated": true})
	}
}

// ResetLessonProgress zeroes progress and the quiz counter of a lesson.
// POST /api/lessons/:id/reset
func ResetLessonProgress(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		s.ResetProgress(c.Param("id"))
		c.JSON(http.StatusOK, gin.H{"reset": true})
	}
}

// EvaluateStudyProgress generates the AI review of the whole collection.
// POST /api/progress/evaluation
func EvaluateStudyProgress(s *store.Store, t *tutor.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		review := t.ReviewProgress(c.Request.Context(), s.Lessons())
		c.JSON(http.StatusOK, gin.H{"evaluation": review})
	}
}

// UploadPDF accepts a multipart document upload for a lesson and stores it
// under the upload root. The identifier is caller-sanitized to digits;
// neither media type nor size is re-validated here, which is a preserved
// trust boundary. Re-uploading the same identifier overwrites.
// POST /api/upload
func UploadPDF(s *store.Store, uploadRoot string) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := c.FormFile("file")
		lessonID := c.PostForm("lessonId")
		if err != nil || lessonID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing file or lesson ID"})
			return
		}

		dir := filepath.Join(uploadRoot, "pdfs")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Printf("Upload error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed"})
			return
		}

		dst := filepath.Join(dir, lessonID+".pdf")
		if err := c.SaveUploadedFile(file, dst); err != nil {
			log.Printf("Upload error for lesson %s: %v", lessonID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed"})
			return
		}

		pdfURL := fmt.Sprintf("/pdfs/%s.pdf", lessonID)
		s.SetPDFURL("lesson-"+utils.DigitsOnly(lessonID), pdfURL)
		c.JSON(http.StatusOK, gin.H{"pdfUrl": pdfURL})
	}
}
