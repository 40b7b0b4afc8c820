// Package store holds the process-wide lesson collection. It is the only
// shared mutable state in the server; all mutations go through the named
// operations and replace the backing slice wholesale so readers always see
// a consistent snapshot.
package store

import (
	"sync"

	"medstudy-server/catalog"
	"medstudy-server/models"
	"medstudy-server/utils"
)

// Store owns the lesson collection.
type Store struct {
	mu      sync.RWMutex
	lessons []models.Lesson
	version uint64
}

// New creates a store seeded with the given lessons.
func New(lessons []models.Lesson) *Store {
	copied := make([]models.Lesson, len(lessons))
	copy(copied, lessons)
	return &Store{lessons: copied}
}

// Lessons returns a snapshot of the full collection.
func (s *Store) Lessons() []models.Lesson {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Lesson, len(s.lessons))
	copy(out, s.lessons)
	return out
}

// Lesson returns the lesson with the given identifier.
func (s *Store) Lesson(id string) (models.Lesson, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, l := range s.lessons {
		if l.ID == id {
			return l, true
		}
	}
	return models.Lesson{}, false
}

// LessonsByTheme returns the lessons belonging to one theme, in catalog
// order.
func (s *Store) LessonsByTheme(theme string) []models.Lesson {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Lesson
	for _, l := range s.lessons {
		if l.Theme == theme {
			out = append(out, l)
		}
	}
	return out
}

// Version increments on every mutation. Observers can poll it to detect
// collection replacement.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// UpdateProgress replaces the progress value of the matching lesson. The
// value is not clamped; callers supply 0-100. An unmatched identifier is a
// silent no-op so stale ids never fault the caller.
func (s *Store) UpdateProgress(id string, progress int) {
	s.replace(func(l models.Lesson) models.Lesson {
		if l.ID == id {
			l.Progress = progress
		}
		return l
	})
}

// ResetProgress zeroes progress and the quiz counter of the matching
// lesson, leaving every other field unchanged. Unmatched ids are a no-op.
func (s *Store) ResetProgress(id string) {
	s.replace(func(l models.Lesson) models.Lesson {
		if l.ID == id {
			l.Progress = 0
			l.QuizzesTaken = 0
		}
		return l
	})
}

// SetPDFURL attaches the uploaded document reference to the matching
// lesson. Unmatched ids are a no-op.
func (s *Store) SetPDFURL(id, url string) {
	s.replace(func(l models.Lesson) models.Lesson {
		if l.ID == id {
			l.PDFURL = url
		}
		return l
	})
}

// IncrementQuizzesTaken bumps the quiz counter of the matching lesson.
func (s *Store) IncrementQuizzesTaken(id string) {
	s.replace(func(l models.Lesson) models.Lesson {
		if l.ID == id {
			l.QuizzesTaken++
		}
		return l
	})
}

// replace builds a fresh collection by mapping fn over every lesson and
// swaps it in under the write lock.
func (s *Store) replace(fn func(models.Lesson) models.Lesson) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]models.Lesson, len(s.lessons))
	for i, l := range s.lessons {
		next[i] = fn(l)
	}
	s.lessons = next
	s.version++
}

// Themes derives the per-theme summaries: lesson count and the rounded mean
// of member progress, zero for a theme with no lessons.
func (s *Store) Themes() []models.ThemeSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byTheme := make(map[string][]int)
	for _, l := range s.lessons {
		byTheme[l.Theme] = append(byTheme[l.Theme], l.Progress)
	}

	summaries := make([]models.ThemeSummary, 0, len(catalog.Themes()))
	for _, name := range catalog.Themes() {
		progresses := byTheme[name]
		summaries = append(summaries, models.ThemeSummary{
			Name:            name,
			LessonCount:     len(progresses),
			AverageProgress: utils.RoundedMean(progresses),
		})
	}
	return summaries
}
