package quiz

import (
	"fmt"
	"regexp"
	"strings"

	"medstudy-server/models"
)

// Field markers of the line-oriented response format. Matching is
// case-sensitive and anchored at the start of a line.
const (
	questionMarker    = "QUESTION:"
	correctMarker     = "CORRECT:"
	explanationMarker = "EXPLANATION:"
)

// choiceLine matches "A) ..." through "D) ...".
var choiceLine = regexp.MustCompile(`^[A-D]\)`)

// ParseQuestion converts the raw model response into a structured question.
// Lines before the explanation marker that match no recognized prefix are
// dropped; non-empty lines after it are folded onto the explanation with a
// single space. The parse fails if the question is empty, the choice count
// is not exactly four, no correct-answer line was found, the explanation is
// empty, or the declared correct marker matches none of the captured
// choices.
func ParseQuestion(raw string) (models.QuizQuestion, error) {
	var (
		question      string
		choices       []models.Choice
		correctAnswer string
		explanation   string
	)

	for _, line := range strings.Split(raw, "\n") {
		switch {
		case strings.HasPrefix(line, questionMarker):
			question = strings.TrimSpace(strings.TrimPrefix(line, questionMarker))
		case choiceLine.MatchString(line):
			choices = append(choices, models.Choice{
				ID:   line[:1],
				Text: strings.TrimSpace(line[2:]),
			})
		case strings.HasPrefix(line, correctMarker):
			correctAnswer = strings.TrimSpace(strings.TrimPrefix(line, correctMarker))
		case strings.HasPrefix(line, explanationMarker):
			explanation = strings.TrimSpace(strings.TrimPrefix(line, explanationMarker))
		case explanation != "" && strings.TrimSpace(line) != "":
			explanation += " " + strings.TrimSpace(line)
		}
	}

	if question == "" || len(choices) != 4 || correctAnswer == "" || explanation == "" {
		return models.QuizQuestion{}, fmt.Errorf("invalid response format")
	}

	marked := false
	for i := range choices {
		if choices[i].ID == correctAnswer {
			choices[i].IsCorrect = true
			marked = true
			break
		}
	}
	if !marked {
		return models.QuizQuestion{}, fmt.Errorf("correct answer %q matches no choice", correctAnswer)
	}

	return models.QuizQuestion{
		Question:    question,
		Choices:     choices,
		Explanation: explanation,
	}, nil
}

// FallbackQuestion is the fixed question substituted whenever generation or
// parsing fails. No retry against the model is attempted.
func FallbackQuestion() models.QuizQuestion {
	return models.QuizQuestion{
		Question: "Quelle est la première étape dans l'évaluation d'un patient?",
		Choices: []models.Choice{
			{ID: "A", Text: "L'anamnèse", IsCorrect: true},
			{ID: "B", Text: "L'examen physique", IsCorrect: false},
			{ID: "C", Text: "Les examens complémentaires", IsCorrect: false},
			{ID: "D", Text: "Le diagnostic différentiel", IsCorrect: false},
		},
		Explanation: "L'anamnèse est toujours la première étape cruciale dans l'évaluation d'un patient. " +
			"Elle permet de recueillir les informations essentielles sur les symptômes, l'histoire de la maladie " +
			"et les antécédents du patient.",
	}
}
