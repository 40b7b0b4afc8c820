package tutor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"medstudy-server/ai"
	"medstudy-server/models"
)

func TestProfessorReplyNormalizesFormatting(t *testing.T) {
	mock := &ai.Mock{Responses: []string{"Le **diabète** sucré est fréquent.\n\nIl se dépiste par *glycémie* à jeun."}}
	svc := NewService(mock)

	reply, err := svc.ProfessorReply(context.Background(), "Comment dépister le diabète?", "Diabète sucré")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "Le diabète sucré est fréquent.\n\nIl se dépiste par glycémie à jeun."
	if reply != want {
		t.Errorf("reply = %q, want %q", reply, want)
	}
	if !strings.Contains(mock.Prompts[0], `"Diabète sucré"`) {
		t.Error("prompt missing the lesson subject")
	}
}

func TestProfessorReplyWithoutLessonOmitsSubject(t *testing.T) {
	mock := &ai.Mock{Responses: []string{"Bonne question."}}
	svc := NewService(mock)

	if _, err := svc.ProfessorReply(context.Background(), "Bonjour", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(mock.Prompts[0], "Le sujet actuel est") {
		t.Error("prompt should not mention a subject when no lesson is given")
	}
}

func TestProfessorReplyErrorSignalsCaller(t *testing.T) {
	mock := &ai.Mock{Err: errors.New("unavailable")}
	svc := NewService(mock)

	reply, err := svc.ProfessorReply(context.Background(), "Bonjour", "Céphalées")
	if err == nil {
		t.Fatal("expected an error so the caller can surface a notice")
	}
	if reply != FallbackProfessorReply {
		t.Errorf("expected the fallback reply, got %q", reply)
	}
}

func TestPatientCaseNeverFails(t *testing.T) {
	mock := &ai.Mock{Err: errors.New("unavailable")}
	svc := NewService(mock)

	if got := svc.PatientCase(context.Background(), "Appendicite Aigue"); got != FallbackCaseText {
		t.Errorf("expected the fallback case, got %q", got)
	}

	empty := &ai.Mock{Responses: []string{"   "}}
	if got := NewService(empty).PatientCase(context.Background(), "Appendicite Aigue"); got != FallbackCaseText {
		t.Errorf("blank response should fall back, got %q", got)
	}
}

func TestPatientReplyStaysInCharacter(t *testing.T) {
	mock := &ai.Mock{Responses: []string{"Oui docteur, la douleur est plus forte la nuit."}}
	svc := NewService(mock)

	reply, err := svc.PatientReply(context.Background(), "La douleur varie-t-elle?", sampleCase)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "Oui docteur, la douleur est plus forte la nuit." {
		t.Errorf("unexpected reply: %q", reply)
	}
	if !strings.Contains(mock.Prompts[0], sampleCase) {
		t.Error("prompt missing the initial case")
	}
}

func TestReviewProgressCarriesLessonData(t *testing.T) {
	mock := &ai.Mock{Responses: []string{"Votre progression en cardiologie est solide."}}
	svc := NewService(mock)

	lessons := []models.Lesson{
		{Title: "Hypertension artérielle", Progress: 80, QuizzesTaken: 3},
		{Title: "Coma", Progress: 15, QuizzesTaken: 0},
	}
	review := svc.ReviewProgress(context.Background(), lessons)
	if review != "Votre progression en cardiologie est solide." {
		t.Errorf("unexpected review: %q", review)
	}

	prompt := mock.Prompts[0]
	if !strings.Contains(prompt, `"title": "Hypertension artérielle"`) {
		t.Errorf("prompt missing serialized lesson data: %q", prompt)
	}
	if !strings.Contains(prompt, `"progress": 15`) {
		t.Errorf("prompt missing progress values: %q", prompt)
	}
}

func TestReviewProgressFallback(t *testing.T) {
	mock := &ai.Mock{Err: errors.New("unavailable")}
	svc := NewService(mock)

	if got := svc.ReviewProgress(context.Background(), nil); got != FallbackProgressReview {
		t.Errorf("expected the fallback review, got %q", got)
	}
}

func TestNormalizeParagraphs(t *testing.T) {
	in := "**Premier** point.\n\n\n*Deuxième* point.\n"
	want := "Premier point.\n\nDeuxième point."
	if got := normalizeParagraphs(in); got != want {
		t.Errorf("normalizeParagraphs = %q, want %q", got, want)
	}
}
