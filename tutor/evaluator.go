package tutor

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"

	"medstudy-server/models"
)

// unsurePhrases are the "I don't know" variants that short-circuit the
// evaluation locally: no call to the generative service is made when the
// diagnosis contains any of them.
var unsurePhrases = []string{
	"je ne sais pas",
	"je sais pas",
	"pas sûr",
	"pas sure",
	"incertain",
	"incertaine",
	"difficile à dire",
	"impossible à dire",
	"je ne peux pas dire",
}

// unsureExplanation is the canned feedback for an unsure answer.
const unsureExplanation = `Il est compréhensible d'avoir des doutes, et c'est une bonne chose de reconnaître quand on n'est pas sûr. Cependant, en tant que médecin, même face à l'incertitude, vous devez :

1. Formuler des hypothèses diagnostiques basées sur les symptômes présentés
2. Proposer une démarche diagnostique pour confirmer ou infirmer ces hypothèses
3. Identifier les urgences potentielles qui nécessitent une prise en charge immédiate

Je vous encourage à reprendre l'interrogatoire, analyser les symptômes présentés, et proposer au moins une hypothèse diagnostique, même si vous n'êtes pas certain(e). C'est ainsi que vous développerez votre raisonnement clinique.`

// fallbackEvaluation is returned when the delegated evaluation fails or its
// response cannot be parsed. No retry is attempted.
const fallbackEvaluation = "Une erreur est survenue lors de l'évaluation. Cependant, n'oubliez pas qu'un bon diagnostic doit toujours être basé sur une anamnèse complète, un examen clinique minutieux et une analyse systématique des symptômes. Continuez à pratiquer et à développer votre raisonnement clinique."

var (
	verdictPattern     = regexp.MustCompile(`(?i)VERDICT:\s*(CORRECT|INCORRECT)`)
	explanationPattern = regexp.MustCompile(`(?is)EXPLICATION:\s*(.*?)(?:---|\z)`)
)

// EvaluateDiagnosis classifies the submitted diagnosis. Stage 1 is local:
// an unsure-sounding answer is rejected with the canned feedback. Stage 2
// delegates to the generative service with a rubric deliberately biased
// toward INCORRECT unless the justification is strong; the verdict and
// explanation are mined from the response by fixed patterns, and any
// failure yields the fixed fallback result.
func (s *Service) EvaluateDiagnosis(ctx context.Context, diagnosis, lessonTitle, initialCase string) models.DiagnosisResult {
	lower := strings.ToLower(diagnosis)
	for _, phrase := range unsurePhrases {
		if strings.Contains(lower, phrase) {
			return models.DiagnosisResult{IsCorrect: false, Explanation: unsureExplanation}
		}
	}

	raw, err := s.gen.GenerateText(ctx, evaluationPrompt(diagnosis, lessonTitle, initialCase))
	if err != nil {
		log.Printf("Diagnosis evaluation error: %v", err)
		return models.DiagnosisResult{IsCorrect: false, Explanation: fallbackEvaluation}
	}

	verdict := verdictPattern.FindStringSubmatch(raw)
	explanation := explanationPattern.FindStringSubmatch(raw)
	if verdict == nil || explanation == nil || strings.TrimSpace(explanation[1]) == "" {
		log.Printf("Diagnosis evaluation parse error: missing verdict or explanation")
		return models.DiagnosisResult{IsCorrect: false, Explanation: fallbackEvaluation}
	}

	return models.DiagnosisResult{
		IsCorrect:   strings.EqualFold(verdict[1], "CORRECT"),
		Explanation: strings.TrimSpace(explanation[1]),
	}
}

func evaluationPrompt(diagnosis, lessonTitle, initialCase string) string {
	return fmt.Sprintf(`En tant que professeur de médecine expérimenté, évalue le diagnostic proposé par l'étudiant avec une attention particulière à la justification et aux informations disponibles.

Cas clinique initial :
%s

Diagnostic proposé par l'étudiant :
%s

Contexte : Leçon sur "%s"

Critères d'évaluation stricts :
1. L'étudiant doit justifier son diagnostic avec les informations DÉJÀ OBTENUES
2. Un diagnostic sans justification ou basé sur des suppositions doit être considéré comme INCORRECT
3. Un diagnostic correct mais précipité (sans avoir recueilli assez d'informations) doit être considéré comme INCORRECT
4. L'étudiant doit démontrer un raisonnement clinique basé sur les symptômes et signes disponibles
5. Les diagnostics différentiels doivent être considérés

Ta réponse doit suivre ce format :
---
VERDICT: [INCORRECT] (Par défaut, considérer incorrect sauf si vraiment bien justifié)
EXPLICATION:
[Explication détaillée incluant :
- Analyse du raisonnement
- Informations manquantes cruciales
- Ce qui aurait dû être fait avant de proposer un diagnostic
- Suggestions pour améliorer la démarche diagnostique]
---`, initialCase, diagnosis, lessonTitle)
}
