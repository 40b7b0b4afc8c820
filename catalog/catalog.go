// Package catalog holds the static lesson catalog: the fixed title-to-theme
// mapping and the construction of the initial lesson collection.
package catalog

import (
	"fmt"
	"math/rand"
	"time"

	"medstudy-server/models"
)

// themes is the closed set of medical specialties, in display order.
var themes = []string{
	"Cardiologie",
	"Chirurgie générale",
	"Gastrologie",
	"Gynécologie",
	"Neurologie-Neurochirurgie",
	"ORL",
	"Ophtalmologie",
	"Pneumo-allergologie",
	"Psychiatrie",
}

// lessonEntry pairs a lesson title with its theme. Order is significant:
// lesson identifiers are assigned as lesson-{n} in this order.
type lessonEntry struct {
	Title string
	Theme string
}

var lessonEntries = []lessonEntry{
	{"Les Accidents Vasculaires Cérébraux", "Neurologie-Neurochirurgie"},
	{"Adénopathies superficielles", "Chirurgie générale"},
	{"Les Anémies", "Gastrologie"},
	{"Appendicite Aigue", "Chirurgie générale"},
	{"Arrêt cardio-circulatoire", "Cardiologie"},
	{"Arthrite septique", "Chirurgie générale"},
	{"Asthme de l'adulte et de l'enfant", "Pneumo-allergologie"},
	{"Bronchiolite du nourrisson", "Pneumo-allergologie"},
	{"Broncho pneumopathie chronique obstructive", "Pneumo-allergologie"},
	{"Brûlures Cutanées Récentes", "Chirurgie générale"},
	{"Les cancers broncho-pulmonaires primitifs", "Pneumo-allergologie"},
	{"Cancer du cavum", "ORL"},
	{"Cancer du col de l'utérus", "Gynécologie"},
	{"Cancer du sein", "Gynécologie"},
	{"Cancers colorectaux", "Gastrologie"},
	{"Céphalées", "Neurologie-Neurochirurgie"},
	{"Coma", "Neurologie-Neurochirurgie"},
	{"Déshydratations aigues de l'enfant", "Gastrologie"},
	{"Contraception", "Gynécologie"},
	{"Diabète sucré", "Gastrologie"},
	{"Diarrhées chroniques", "Gastrologie"},
	{"Douleurs thoraciques aigues", "Cardiologie"},
	{"Les dyslipidémies", "Cardiologie"},
	{"Dysphagies", "ORL"},
	{"L'endocardite infectieuse", "Cardiologie"},
	{"Epilepsies", "Neurologie-Neurochirurgie"},
	{"Choc cardiogénique", "Cardiologie"},
	{"L'état de choc hémorragique", "Chirurgie générale"},
	{"Les états confusionnels", "Psychiatrie"},
	{"Les états septiques graves", "Chirurgie générale"},
	{"Fractures ouvertes de la jambe", "Chirurgie générale"},
	{"Grossesse extra-utérine", "Gynécologie"},
	{"Les hématuries", "Chirurgie générale"},
	{"Les hémorragies digestives", "Gastrologie"},
	{"Hépatites virales", "Gastrologie"},
	{"Hydatidoses hépatiques et pulmonaires", "Pneumo-allergologie"},
	{"Hypercalcémies", "Gastrologie"},
	{"Hypertension artérielle", "Cardiologie"},
	{"Les hyperthyroïdies", "Gastrologie"},
	{"Les hypothyroidies de l'adulte et de l'enfant", "Gastrologie"},
	{"Les ictères", "Gastrologie"},
	{"Infection des voies aériennes supérieures", "ORL"},
	{"Infections respiratoires basses communautaires", "Pneumo-allergologie"},
	{"Infections sexuellement transmissibles", "Gynécologie"},
	{"Infections Urinaires", "Chirurgie générale"},
	{"Insuffisance rénale aigue", "Chirurgie générale"},
	{"L'insuffisance surrénalienne aigue", "Gastrologie"},
	{"Intoxications par le CO, les organophosphorés et les psychotropes", "Psychiatrie"},
	{"Ischémie aiguë des membres", "Chirurgie générale"},
	{"Lithiase urinaire", "Chirurgie générale"},
	{"Maladies veineuses thrombo-emboliques", "Cardiologie"},
	{"Méningites bactériennes et virales", "Neurologie-Neurochirurgie"},
	{"Diagnostic des métrorragies", "Gynécologie"},
	{"Occlusions intestinales aiguës", "Chirurgie générale"},
	{"Les oedèmes", "Cardiologie"},
	{"OEil rouge", "Ophtalmologie"},
	{"Péritonites aigues", "Chirurgie générale"},
	{"Polyarthrite Rhumatoïde", "Chirurgie générale"},
	{"Polytraumatisme", "Chirurgie générale"},
	{"Préeclampsie et éclampsie", "Gynécologie"},
	{"Prise en charge de la douleur aigue", "Chirurgie générale"},
	{"Les Purpuras", "Gastrologie"},
	{"Schizophrénie", "Psychiatrie"},
	{"Splénomégalies", "Gastrologie"},
	{"Syndromes coronariens aigus", "Cardiologie"},
	{"Transfusion sanguine", "Gastrologie"},
	{"Traumatismes crâniens", "Neurologie-Neurochirurgie"},
	{"Troubles acido-basiques", "Gastrologie"},
	{"Troubles anxieux", "Psychiatrie"},
	{"Trouble de l'humeur", "Psychiatrie"},
	{"Les troubles de l'hydratation", "Gastrologie"},
	{"Dyskaliémies", "Gastrologie"},
	{"Tuberculose pulmonaire commune", "Pneumo-allergologie"},
	{"Les Tumeurs de la prostate", "Chirurgie générale"},
	{"L'ulcère gastrique et duodénal", "Gastrologie"},
	{"Vaccinations", "Gastrologie"},
}

// Themes returns the closed theme set in display order.
func Themes() []string {
	out := make([]string, len(themes))
	copy(out, themes)
	return out
}

// ValidTheme reports whether name belongs to the closed theme set.
func ValidTheme(name string) bool {
	for _, t := range themes {
		if t == name {
			return true
		}
	}
	return false
}

// PlaceholderContent builds the inline text body a lesson carries until a
// document is uploaded for it.
func PlaceholderContent(title string) string {
	return fmt.Sprintf(`OBJECTIFS

1- Définir %s
2- Reconnaître les caractéristiques cliniques
3- Établir le diagnostic différentiel
4- Identifier les signes de gravité
5- Hiérarchiser les examens complémentaires
6- Établir le diagnostic étiologique

Introduction :
✓ Définition et physiopathologie
✓ Aspects cliniques principaux
✓ Démarche diagnostique
✓ Principes thérapeutiques`, title)
}

// BuildLessons constructs the full lesson collection from the static
// mapping. Identifiers run lesson-1..lesson-n in mapping order; progress and
// quiz counters are randomly seeded from r, and the last attempt falls
// within the past ten days.
func BuildLessons(r *rand.Rand) []models.Lesson {
	now := time.Now()
	lessons := make([]models.Lesson, 0, len(lessonEntries))
	for i, entry := range lessonEntries {
		attempt := now.Add(-time.Duration(r.Int63n(int64(10 * 24 * time.Hour))))
		lessons = append(lessons, models.Lesson{
			ID:           fmt.Sprintf("lesson-%d", i+1),
			Title:        entry.Title,
			Theme:        entry.Theme,
			Progress:     r.Intn(100),
			QuizzesTaken: r.Intn(5),
			LastAttempt:  attempt.Format("02/01/2006"),
			Content:      PlaceholderContent(entry.Title),
		})
	}
	return lessons
}
