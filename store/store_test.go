package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medstudy-server/models"
)

func seedLessons() []models.Lesson {
	return []models.Lesson{
		{ID: "lesson-1", Title: "Arrêt cardio-circulatoire", Theme: "Cardiologie", Progress: 40, QuizzesTaken: 2, LastAttempt: "01/08/2026"},
		{ID: "lesson-2", Title: "Syndromes coronariens aigus", Theme: "Cardiologie", Progress: 61, QuizzesTaken: 1, LastAttempt: "02/08/2026"},
		{ID: "lesson-3", Title: "Schizophrénie", Theme: "Psychiatrie", Progress: 10, QuizzesTaken: 0, LastAttempt: "03/08/2026"},
	}
}

func TestLessonsSnapshotIsolation(t *testing.T) {
	s := New(seedLessons())

	snap := s.Lessons()
	snap[0].Progress = 99

	got, ok := s.Lesson("lesson-1")
	require.True(t, ok)
	assert.Equal(t, 40, got.Progress, "mutating a snapshot must not touch the store")
}

func TestLessonLookup(t *testing.T) {
	s := New(seedLessons())

	got, ok := s.Lesson("lesson-2")
	require.True(t, ok)
	assert.Equal(t, "Syndromes coronariens aigus", got.Title)

	_, ok = s.Lesson("lesson-99")
	assert.False(t, ok)
}

func TestLessonsByTheme(t *testing.T) {
	s := New(seedLessons())

	cardio := s.LessonsByTheme("Cardiologie")
	require.Len(t, cardio, 2)
	assert.Equal(t, "lesson-1", cardio[0].ID)
	assert.Equal(t, "lesson-2", cardio[1].ID)

	assert.Empty(t, s.LessonsByTheme("ORL"))
}

func TestUpdateProgress(t *testing.T) {
	s := New(seedLessons())

	s.UpdateProgress("lesson-1", 85)
	got, _ := s.Lesson("lesson-1")
	assert.Equal(t, 85, got.Progress)

	// Values are stored as given; the store does not clamp.
	s.UpdateProgress("lesson-1", 150)
	got, _ = s.Lesson("lesson-1")
	assert.Equal(t, 150, got.Progress)
}

func TestUpdateProgressUnknownIDIsNoOp(t *testing.T) {
	s := New(seedLessons())
	before := s.Lessons()

	s.UpdateProgress("lesson-99", 85)

	assert.Equal(t, before, s.Lessons())
}

func TestResetProgressPreservesOtherFields(t *testing.T) {
	s := New(seedLessons())

	s.ResetProgress("lesson-1")

	got, _ := s.Lesson("lesson-1")
	assert.Equal(t, 0, got.Progress)
	assert.Equal(t, 0, got.QuizzesTaken)
	assert.Equal(t, "Arrêt cardio-circulatoire", got.Title)
	assert.Equal(t, "01/08/2026", got.LastAttempt)

	other, _ := s.Lesson("lesson-2")
	assert.Equal(t, 61, other.Progress, "reset must not touch other lessons")
}

func TestSetPDFURL(t *testing.T) {
	s := New(seedLessons())

	s.SetPDFURL("lesson-3", "/pdfs/3.pdf")

	got, _ := s.Lesson("lesson-3")
	assert.Equal(t, "/pdfs/3.pdf", got.PDFURL)
}

func TestIncrementQuizzesTaken(t *testing.T) {
	s := New(seedLessons())

	s.IncrementQuizzesTaken("lesson-2")
	s.IncrementQuizzesTaken("lesson-2")

	got, _ := s.Lesson("lesson-2")
	assert.Equal(t, 3, got.QuizzesTaken)
}

func TestVersionIncrementsOnMutation(t *testing.T) {
	s := New(seedLessons())
	require.EqualValues(t, 0, s.Version())

	s.UpdateProgress("lesson-1", 50)
	assert.EqualValues(t, 1, s.Version())

	// No-op mutations still replace the collection.
	s.UpdateProgress("lesson-99", 50)
	assert.EqualValues(t, 2, s.Version())
}

func TestThemesAggregates(t *testing.T) {
	s := New(seedLessons())

	summaries := s.Themes()
	require.Len(t, summaries, 9)

	byName := make(map[string]models.ThemeSummary)
	for _, sum := range summaries {
		byName[sum.Name] = sum
	}

	cardio := byName["Cardiologie"]
	assert.Equal(t, 2, cardio.LessonCount)
	assert.Equal(t, 51, cardio.AverageProgress, "mean of 40 and 61 rounds to 51")

	psy := byName["Psychiatrie"]
	assert.Equal(t, 1, psy.LessonCount)
	assert.Equal(t, 10, psy.AverageProgress)

	orl := byName["ORL"]
	assert.Equal(t, 0, orl.LessonCount)
	assert.Equal(t, 0, orl.AverageProgress, "empty theme reports zero, not NaN")
}
