// Package tutor implements the AI-backed teaching services: the professor
// chat assistant, the simulated patient, the diagnosis evaluator and the
// study-progress review. Every entry point guarantees a usable value on any
// failure path; no error from the generative service reaches a caller
// unhandled.
package tutor

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"medstudy-server/ai"
	"medstudy-server/models"
)

// Service runs the teaching prompts against the generative-text service.
type Service struct {
	gen ai.Generator
}

// NewService creates a tutor service backed by gen.
func NewService(gen ai.Generator) *Service {
	return &Service{gen: gen}
}

// FallbackProfessorReply is returned when the assistant cannot answer.
const FallbackProfessorReply = "Je suis désolé, mais je ne peux pas répondre pour le moment. Veuillez reformuler votre question."

// FallbackPatientReply is returned when the simulated patient cannot answer.
const FallbackPatientReply = "Désolé, je ne me sens pas très bien, pourriez-vous répéter la question ?"

// FallbackCaseText is returned when case generation fails.
const FallbackCaseText = "Désolé, je ne peux pas générer de cas clinique pour le moment."

// FallbackProgressReview is returned when the progress evaluation fails.
const FallbackProgressReview = "Une erreur est survenue lors de l'évaluation de votre progression. Veuillez réessayer plus tard."

// ProfessorReply answers a student question in the voice of a medicine
// professor. The error signals the caller to surface a system notice; the
// returned string is always usable.
func (s *Service) ProfessorReply(ctx context.Context, message, lessonTitle string) (string, error) {
	subject := ""
	if lessonTitle != "" {
		subject = fmt.Sprintf("Le sujet actuel est : %q. ", lessonTitle)
	}
	prompt := fmt.Sprintf(`Tu es un professeur de médecine expérimenté qui aide un étudiant à préparer ses examens médicaux.
%s
Formatage de la réponse :
- Utilise des paragraphes clairs et bien espacés
- Évite les listes à puces ou numérotées
- Utilise des phrases complètes
- Sépare les concepts importants en paragraphes distincts
- N'utilise pas de caractères spéciaux pour le formatage (*, -, #, etc.)

Question : %s

Réponds en français de manière structurée et professionnelle.`, subject, message)

	raw, err := s.gen.GenerateText(ctx, prompt)
	if err != nil {
		log.Printf("Professor reply error: %v", err)
		return FallbackProfessorReply, err
	}
	reply := normalizeParagraphs(raw)
	if reply == "" {
		return FallbackProfessorReply, fmt.Errorf("empty professor reply")
	}
	return reply, nil
}

// PatientCase generates the opening first-person case description for a
// lesson. It never fails: errors yield the fixed apology text.
func (s *Service) PatientCase(ctx context.Context, lessonTitle string) string {
	prompt := fmt.Sprintf(`Génère un cas clinique initial lié à "%s".

Instructions :
- Le patient doit présenter des symptômes non spécifiques qui pourraient correspondre à plusieurs pathologies
- Ne donne que les informations initiales minimales
- Le patient ne doit pas mentionner tous ses symptômes dès le début
- Inclus l'âge et le sexe du patient
- Utilise un langage naturel, comme si le patient se présentait lui-même
- Les symptômes doivent être décrits de manière vague par le patient
- N'inclus PAS le diagnostic dans la description
- Le patient ne doit PAS utiliser de termes médicaux techniques
- Le cas doit nécessiter plus de questions pour établir un diagnostic

Format : Une description à la première personne, comme si le patient se présentait.

Exemple de structure :
"Bonjour docteur, je suis [prénom], j'ai [âge] ans. Je viens vous voir car depuis quelque temps je me sens [symptôme principal vague]. [1-2 autres symptômes non spécifiques]."`, lessonTitle)

	raw, err := s.gen.GenerateText(ctx, prompt)
	if err != nil || strings.TrimSpace(raw) == "" {
		log.Printf("Case generation error for %q: %v", lessonTitle, err)
		return FallbackCaseText
	}
	return raw
}

// PatientReply answers one doctor question in character. The error signals
// the caller to append a system notice instead of a patient message.
func (s *Service) PatientReply(ctx context.Context, question, initialCase string) (string, error) {
	prompt := fmt.Sprintf(`Tu es un patient qui présente le cas suivant :

%s

Instructions pour répondre à la question du médecin :
- Réponds de manière naturelle, comme un vrai patient
- Ne révèle pas tous les symptômes d'un coup
- Utilise un langage simple, non médical
- Reste vague dans certaines réponses
- Si le médecin ne pose pas la bonne question, ne donne pas l'information
- Ajoute parfois des détails non pertinents comme le ferait un vrai patient
- Si on te demande directement si tu as un symptôme spécifique, réponds honnêtement
- N'utilise jamais de termes médicaux techniques

Question du médecin : %s`, initialCase, question)

	raw, err := s.gen.GenerateText(ctx, prompt)
	if err != nil {
		log.Printf("Patient response error: %v", err)
		return FallbackPatientReply, err
	}
	if strings.TrimSpace(raw) == "" {
		return FallbackPatientReply, fmt.Errorf("empty patient reply")
	}
	return raw, nil
}

// progressEntry is the serialized per-lesson summary fed to the review
// prompt.
type progressEntry struct {
	Title        string `json:"title"`
	Progress     int    `json:"progress"`
	QuizzesTaken int    `json:"quizzesTaken"`
}

// ReviewProgress analyzes the lesson progress data and returns a
// constructive evaluation. It never fails: errors yield the fixed message.
func (s *Service) ReviewProgress(ctx context.Context, lessons []models.Lesson) string {
	entries := make([]progressEntry, len(lessons))
	for i, l := range lessons {
		entries[i] = progressEntry{Title: l.Title, Progress: l.Progress, QuizzesTaken: l.QuizzesTaken}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		log.Printf("Progress evaluation marshal error: %v", err)
		return FallbackProgressReview
	}

	prompt := fmt.Sprintf(`En tant que professeur de médecine, analyse la progression de l'étudiant dans ses leçons et fournis une évaluation constructive.

Données de progression :
%s

Instructions :
- Concentre-toi sur les leçons avec une progression élevée et celles qui nécessitent plus de travail
- Identifie les domaines qui méritent une attention particulière
- Suggère des stratégies d'amélioration concrètes
- Évite les formules d'introduction générales
- Commence directement par l'analyse des progrès
- Utilise un ton professionnel mais encourageant
- Format en paragraphes clairs, pas de listes à puces

Réponds en français.`, data)

	raw, err := s.gen.GenerateText(ctx, prompt)
	if err != nil || strings.TrimSpace(raw) == "" {
		log.Printf("Progress evaluation error: %v", err)
		return FallbackProgressReview
	}
	return normalizeParagraphs(raw)
}

// normalizeParagraphs strips markdown emphasis and rejoins the non-empty
// lines as double-newline separated paragraphs.
func normalizeParagraphs(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "*", "")
	var paragraphs []string
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) != "" {
			paragraphs = append(paragraphs, line)
		}
	}
	return strings.Join(paragraphs, "\n\n")
}
