package main

import (
	"context"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/multitemplate"
	"github.com/gin-gonic/gin"

	"medstudy-server/ai"
	"medstudy-server/catalog"
	"medstudy-server/config"
	"medstudy-server/docs"
	"medstudy-server/handlers"
	"medstudy-server/middleware"
	"medstudy-server/quiz"
	"medstudy-server/session"
	"medstudy-server/store"
	"medstudy-server/tutor"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	// Ensure the upload root exists before serving from it
	if err := os.MkdirAll(filepath.Join(cfg.UploadRoot, "pdfs"), 0o755); err != nil {
		log.Fatalf("Unable to create upload directory: %v", err)
	}

	// Seed the in-memory lesson collection
	lessonStore := store.New(catalog.BuildLessons(rand.New(rand.NewSource(time.Now().UnixNano()))))

	// Generative-text client. Without an API key every AI feature degrades
	// to its canned fallback, which keeps the server usable offline.
	var generator ai.Generator
	gemini, err := ai.NewGemini(context.Background(), cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		log.Printf("Gemini client unavailable (%v), AI features will use fallbacks", err)
		generator = &ai.Mock{}
	} else {
		generator = gemini
	}

	quizService := quiz.NewService(generator)
	tutorService := tutor.NewService(generator)

	quizSessions := session.NewQuizManager(quizService, lessonStore.IncrementQuizzesTaken)
	caseSessions := session.NewCaseManager(tutorService)
	chatSessions := session.NewChatManager(tutorService)
	dashboard := session.NewDashboardView()
	loader := &docs.Loader{}

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	router := gin.Default()

	// Load HTML templates for the app shell
	renderer := multitemplate.NewRenderer()
	renderer.AddFromFiles("app_shell", filepath.Join(cfg.TemplatesDir, "index.html"))
	router.HTMLRender = renderer

	// Middleware
	router.Use(middleware.Logger())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// API Routes
	api := router.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck())

		api.GET("/lessons", handlers.GetLessons(lessonStore))
		api.GET("/lessons/:id", handlers.GetLesson(lessonStore))
		api.PUT("/lessons/:id/progress", handlers.UpdateLessonProgress(lessonStore))
		api.POST("/lessons/:id/reset", handlers.ResetLessonProgress(lessonStore))
		api.GET("/lessons/:id/document", handlers.GetDocument(lessonStore))
		api.GET("/lessons/:id/document/stream", handlers.StreamDocument(lessonStore, loader, cfg.UploadRoot))

		api.GET("/themes", handlers.GetThemes(lessonStore))
		api.POST("/progress/evaluation", handlers.EvaluateStudyProgress(lessonStore, tutorService))
		api.POST("/upload", handlers.UploadPDF(lessonStore, cfg.UploadRoot))

		api.POST("/quiz/sessions", handlers.StartQuizSession(lessonStore, quizSessions))
		api.GET("/quiz/sessions/:id", handlers.GetQuizSession(quizSessions))
		api.POST("/quiz/sessions/:id/reveal", handlers.RevealQuizAnswer(quizSessions))
		api.POST("/quiz/sessions/:id/next", handlers.NextQuizQuestion(quizSessions))
		api.DELETE("/quiz/sessions/:id", handlers.CloseQuizSession(quizSessions))

		api.POST("/cases", handlers.StartCaseSession(lessonStore, caseSessions))
		api.GET("/cases/:id", handlers.GetCaseSession(caseSessions))
		api.POST("/cases/:id/messages", handlers.SendCaseMessage(caseSessions))
		api.POST("/cases/:id/diagnosis", handlers.SubmitDiagnosis(caseSessions))
		api.DELETE("/cases/:id", handlers.CloseCaseSession(caseSessions))

		api.POST("/chats", handlers.StartChatSession(lessonStore, chatSessions))
		api.GET("/chats/:id", handlers.GetChatSession(chatSessions))
		api.POST("/chats/:id/messages", handlers.SendChatMessage(chatSessions))
		api.DELETE("/chats/:id", handlers.CloseChatSession(chatSessions))

		api.GET("/view", handlers.GetViewState(dashboard))
		api.POST("/view", handlers.ApplyViewAction(dashboard))
	}

	// Uploaded documents are served straight from disk
	router.Static("/pdfs", filepath.Join(cfg.UploadRoot, "pdfs"))

	// The shell answers every unmatched GET so client-side routes survive a
	// refresh
	router.GET("/", handlers.AppShell())
	router.NoRoute(func(c *gin.Context) {
		if c.Request.Method == http.MethodGet {
			handlers.AppShell()(c)
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	// Start the server
	srv := &http.Server{
		Addr:    cfg.ServerPort,
		Handler: router,
	}

	// Goroutine to gracefully shut down the server
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Fatalf("Server forced to shutdown: %v", err)
		}
	}()

	log.Printf("MedStudy server starting on %s", cfg.ServerPort)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Server startup error: %v", err)
	}
	log.Println("Server exited gracefully.")
}
