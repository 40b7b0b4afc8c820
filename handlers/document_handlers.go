// --- medstudy-server/handlers/document_handlers.go ---
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"path"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"medstudy-server/docs"
	"medstudy-server/models"
	"medstudy-server/store"
)

// GetDocument reports which content form a lesson currently has: the
// uploaded PDF if one exists, otherwise the inline placeholder text.
// GET /api/lessons/:id/document
func GetDocument(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		lesson, ok := s.Lesson(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
			return
		}
		if lesson.PDFURL != "" {
			c.JSON(http.StatusOK, models.DocumentInfo{Type: "pdf", PDFURL: lesson.PDFURL})
			return
		}
		c.JSON(http.StatusOK, models.DocumentInfo{Type: "inline", Content: lesson.Content})
	}
}

// StreamDocument loads a lesson's PDF progressively, emitting one JSON line
// per progress event: byte progress while reading, then page progress, then
// a final done event. A client that disconnects cancels the load through the
// request context.
// GET /api/lessons/:id/document/stream
func StreamDocument(s *store.Store, loader *docs.Loader, uploadRoot string) gin.HandlerFunc {
	return func(c *gin.Context) {
		lesson, ok := s.Lesson(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
			return
		}
		if lesson.PDFURL == "" {
			c.JSON(http.StatusNotFound, gin.H{"error": "No document uploaded for this lesson"})
			return
		}

		// The stored URL is always /pdfs/{n}.pdf; Base keeps the lookup
		// inside the upload root.
		file := filepath.Join(uploadRoot, "pdfs", path.Base(lesson.PDFURL))

		c.Writer.Header().Set("Content-Type", "application/x-ndjson")
		c.Writer.WriteHeader(http.StatusOK)

		enc := json.NewEncoder(c.Writer)
		err := loader.Load(c.Request.Context(), file, func(p docs.Progress) {
			if encErr := enc.Encode(p); encErr != nil {
				return
			}
			c.Writer.Flush()
		})
		if err != nil && !isContextErr(err) {
			enc.Encode(gin.H{"kind": "error", "error": "Document load failed"})
			c.Writer.Flush()
		}
	}
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
