package tutor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"medstudy-server/ai"
)

const sampleCase = "Bonjour docteur, je suis Karim, j'ai 54 ans. J'ai mal à la poitrine depuis ce matin."

func TestEvaluateDiagnosisUnsureShortCircuit(t *testing.T) {
	mock := &ai.Mock{}
	svc := NewService(mock)

	for _, diagnosis := range []string{
		"je ne sais pas",
		"Honnêtement je sais pas trop",
		"Je suis INCERTAIN sur ce cas",
		"C'est difficile à dire sans examens",
	} {
		result := svc.EvaluateDiagnosis(context.Background(), diagnosis, "Douleurs thoraciques aigues", sampleCase)
		if result.IsCorrect {
			t.Errorf("unsure answer %q must be rejected", diagnosis)
		}
		if !strings.Contains(result.Explanation, "reconnaître quand on n'est pas sûr") {
			t.Errorf("unsure answer %q did not get the canned feedback", diagnosis)
		}
	}
	if mock.Calls() != 0 {
		t.Errorf("unsure answers must not reach the generative service, got %d calls", mock.Calls())
	}
}

func TestEvaluateDiagnosisCorrectVerdict(t *testing.T) {
	mock := &ai.Mock{Responses: []string{`---
VERDICT: CORRECT
EXPLICATION:
Le raisonnement est bien justifié par les éléments recueillis.
---`}}
	svc := NewService(mock)

	result := svc.EvaluateDiagnosis(context.Background(), "Syndrome coronarien aigu, justifié par la douleur rétrosternale", "Douleurs thoraciques aigues", sampleCase)
	if !result.IsCorrect {
		t.Error("expected a correct verdict")
	}
	if result.Explanation != "Le raisonnement est bien justifié par les éléments recueillis." {
		t.Errorf("unexpected explanation: %q", result.Explanation)
	}
}

func TestEvaluateDiagnosisIncorrectVerdictCaseInsensitive(t *testing.T) {
	mock := &ai.Mock{Responses: []string{"verdict: incorrect\nEXPLICATION: Diagnostic précipité."}}
	svc := NewService(mock)

	result := svc.EvaluateDiagnosis(context.Background(), "Péricardite", "Douleurs thoraciques aigues", sampleCase)
	if result.IsCorrect {
		t.Error("expected an incorrect verdict")
	}
	if result.Explanation != "Diagnostic précipité." {
		t.Errorf("unexpected explanation: %q", result.Explanation)
	}
}

func TestEvaluateDiagnosisFallbackOnMissingVerdict(t *testing.T) {
	mock := &ai.Mock{Responses: []string{"Votre diagnostic semble plausible mais incomplet."}}
	svc := NewService(mock)

	result := svc.EvaluateDiagnosis(context.Background(), "Embolie pulmonaire", "Douleurs thoraciques aigues", sampleCase)
	if result.IsCorrect {
		t.Error("fallback result must be incorrect")
	}
	if result.Explanation != fallbackEvaluation {
		t.Errorf("expected the fallback explanation, got %q", result.Explanation)
	}
}

func TestEvaluateDiagnosisFallbackOnTransportError(t *testing.T) {
	mock := &ai.Mock{Err: errors.New("deadline exceeded")}
	svc := NewService(mock)

	result := svc.EvaluateDiagnosis(context.Background(), "Embolie pulmonaire", "Douleurs thoraciques aigues", sampleCase)
	if result.IsCorrect || result.Explanation != fallbackEvaluation {
		t.Errorf("expected the fallback result, got %+v", result)
	}
	if mock.Calls() != 1 {
		t.Errorf("expected a single attempt with no retry, got %d", mock.Calls())
	}
}

func TestEvaluateDiagnosisPromptCarriesCase(t *testing.T) {
	mock := &ai.Mock{Responses: []string{"VERDICT: INCORRECT\nEXPLICATION: Manque de justification."}}
	svc := NewService(mock)

	svc.EvaluateDiagnosis(context.Background(), "Angor stable", "Douleurs thoraciques aigues", sampleCase)

	prompt := mock.Prompts[0]
	if !strings.Contains(prompt, sampleCase) {
		t.Error("prompt missing the initial case")
	}
	if !strings.Contains(prompt, "Angor stable") {
		t.Error("prompt missing the submitted diagnosis")
	}
	if !strings.Contains(prompt, `"Douleurs thoraciques aigues"`) {
		t.Error("prompt missing the lesson context")
	}
}
