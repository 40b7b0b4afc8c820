package session

import (
	"errors"
	"sync"

	"medstudy-server/catalog"
	"medstudy-server/models"
)

// Dashboard navigation errors.
var (
	// ErrUnknownTheme is returned when selecting a name outside the
	// closed theme set.
	ErrUnknownTheme = errors.New("unknown theme")
	// ErrNotThemesMode is returned when selecting a theme while the grid
	// is in lessons mode.
	ErrNotThemesMode = errors.New("theme selection requires themes mode")
)

// DashboardView tracks the dashboard navigation state: the themes/lessons
// display mode plus, layered on top of themes mode, an optional selected
// theme that filters the lesson list until an explicit back action clears
// it.
type DashboardView struct {
	mu            sync.Mutex
	mode          models.ViewMode
	selectedTheme string
}

// NewDashboardView starts in themes mode with no selection.
func NewDashboardView() *DashboardView {
	return &DashboardView{mode: models.ViewThemes}
}

// State returns the current navigation state.
func (v *DashboardView) State() models.ViewState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return models.ViewState{Mode: v.mode, SelectedTheme: v.selectedTheme}
}

// Toggle switches between the themes and lessons grids, clearing any theme
// selection.
func (v *DashboardView) Toggle() models.ViewState {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.mode == models.ViewThemes {
		v.mode = models.ViewLessons
	} else {
		v.mode = models.ViewThemes
	}
	v.selectedTheme = ""
	return models.ViewState{Mode: v.mode, SelectedTheme: v.selectedTheme}
}

// SelectTheme enters the theme-filtered lesson list. Only valid from the
// themes grid.
func (v *DashboardView) SelectTheme(name string) (models.ViewState, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.mode != models.ViewThemes {
		return models.ViewState{}, ErrNotThemesMode
	}
	if !catalog.ValidTheme(name) {
		return models.ViewState{}, ErrUnknownTheme
	}
	v.selectedTheme = name
	return models.ViewState{Mode: v.mode, SelectedTheme: v.selectedTheme}, nil
}

// Back clears the theme selection, restoring the themes grid.
func (v *DashboardView) Back() models.ViewState {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.selectedTheme = ""
	return models.ViewState{Mode: v.mode, SelectedTheme: v.selectedTheme}
}
