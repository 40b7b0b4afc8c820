package quiz

import (
	"strings"
	"testing"
)

const wellFormed = `QUESTION: Quel est le signe le plus précoce d'un choc hémorragique?
A) La tachycardie
B) L'hypotension artérielle
C) L'oligurie
D) Les marbrures
CORRECT: A
EXPLANATION: La tachycardie est le premier mécanisme compensateur mis en jeu.`

func TestParseQuestionWellFormed(t *testing.T) {
	q, err := ParseQuestion(wellFormed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Question != "Quel est le signe le plus précoce d'un choc hémorragique?" {
		t.Errorf("unexpected question: %q", q.Question)
	}
	if len(q.Choices) != 4 {
		t.Fatalf("expected 4 choices, got %d", len(q.Choices))
	}
	for i, want := range []string{"A", "B", "C", "D"} {
		if q.Choices[i].ID != want {
			t.Errorf("choice %d: id %q, want %q", i, q.Choices[i].ID, want)
		}
	}
	if !q.Choices[0].IsCorrect {
		t.Error("choice A should be marked correct")
	}
	for _, c := range q.Choices[1:] {
		if c.IsCorrect {
			t.Errorf("choice %s should not be marked correct", c.ID)
		}
	}
	if q.Choices[0].Text != "La tachycardie" {
		t.Errorf("unexpected choice text: %q", q.Choices[0].Text)
	}
	if q.Explanation != "La tachycardie est le premier mécanisme compensateur mis en jeu." {
		t.Errorf("unexpected explanation: %q", q.Explanation)
	}
}

func TestParseQuestionExplanationContinuation(t *testing.T) {
	raw := wellFormed + "\nElle précède la chute tensionnelle.\n\nL'oligurie est plus tardive."
	q, err := ParseQuestion(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "La tachycardie est le premier mécanisme compensateur mis en jeu. " +
		"Elle précède la chute tensionnelle. L'oligurie est plus tardive."
	if q.Explanation != want {
		t.Errorf("explanation = %q, want %q", q.Explanation, want)
	}
}

func TestParseQuestionDropsUnknownLines(t *testing.T) {
	raw := "Voici votre question :\n" + wellFormed
	q, err := ParseQuestion(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(q.Question, "Voici") {
		t.Errorf("preamble leaked into question: %q", q.Question)
	}
}

func TestParseQuestionErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty response", ""},
		{"missing question", strings.Replace(wellFormed, "QUESTION:", "Q:", 1)},
		{"three choices", strings.Replace(wellFormed, "D) Les marbrures\n", "", 1)},
		{"missing correct", strings.Replace(wellFormed, "CORRECT: A\n", "", 1)},
		{"missing explanation", strings.Replace(wellFormed, "EXPLANATION:", "EXPL:", 1)},
		{"correct matches no choice", strings.Replace(wellFormed, "CORRECT: A", "CORRECT: E", 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseQuestion(tt.raw); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestFallbackQuestion(t *testing.T) {
	q := FallbackQuestion()
	if q.Question != "Quelle est la première étape dans l'évaluation d'un patient?" {
		t.Errorf("unexpected fallback question: %q", q.Question)
	}
	correct := 0
	for _, c := range q.Choices {
		if c.IsCorrect {
			correct++
			if c.Text != "L'anamnèse" {
				t.Errorf("unexpected correct choice: %q", c.Text)
			}
		}
	}
	if correct != 1 {
		t.Errorf("expected exactly one correct choice, got %d", correct)
	}
}
