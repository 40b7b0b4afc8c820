// Package quiz generates multiple-choice questions for a lesson through the
// generative-text service and parses its line-oriented responses.
package quiz

import (
	"context"
	"fmt"
	"log"

	"medstudy-server/ai"
	"medstudy-server/models"
)

// Service generates quiz questions.
type Service struct {
	gen ai.Generator
}

// NewService creates a quiz generator backed by gen.
func NewService(gen ai.Generator) *Service {
	return &Service{gen: gen}
}

// Question generates one question for the lesson at the given difficulty.
// It never fails: any transport or parse error yields the fixed fallback
// question instead.
func (s *Service) Question(ctx context.Context, lessonTitle string, difficulty int) models.QuizQuestion {
	raw, err := s.gen.GenerateText(ctx, questionPrompt(lessonTitle, difficulty))
	if err != nil {
		log.Printf("Quiz generation error for %q: %v", lessonTitle, err)
		return FallbackQuestion()
	}

	q, err := ParseQuestion(raw)
	if err != nil {
		log.Printf("Quiz response parse error for %q: %v", lessonTitle, err)
		return FallbackQuestion()
	}
	return q
}

func questionPrompt(lessonTitle string, difficulty int) string {
	return fmt.Sprintf(`Générez une question de quiz sur "%s" avec un niveau de difficulté de %d/100.

Format requis (respectez EXACTEMENT ce format) :

QUESTION: [votre question]
A) [choix A]
B) [choix B]
C) [choix C]
D) [choix D]
CORRECT: [A, B, C, ou D]
EXPLANATION: [explication détaillée]

Règles importantes:
- La question doit être claire et précise
- Les choix doivent être distincts et plausibles
- Une seule réponse correcte
- L'explication doit être détaillée et éducative
- Répondez en français
- Respectez STRICTEMENT le format ci-dessus`, lessonTitle, difficulty)
}
