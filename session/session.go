// Package session owns the transient interaction state of the application:
// quiz sessions, patient-case interviews, lesson-assistant chats and the
// dashboard navigation state. Everything here lives in memory and dies with
// the process.
package session

import "errors"

// Session lifecycle errors shared by the managers.
var (
	// ErrNotFound is returned for an unknown session identifier.
	ErrNotFound = errors.New("session not found")
	// ErrClosed is returned when operating on a closed session.
	ErrClosed = errors.New("session closed")
	// ErrBusy is returned while another call on the same session is still
	// in flight. The caller should disable its trigger, not queue.
	ErrBusy = errors.New("session busy")
	// ErrNotRevealed is returned when advancing a quiz before the current
	// answer was revealed.
	ErrNotRevealed = errors.New("answer not revealed")
	// ErrAlreadyRevealed is returned when revealing a question twice.
	ErrAlreadyRevealed = errors.New("answer already revealed")
	// ErrEnded is returned when messaging a case interview after its
	// diagnosis has been evaluated.
	ErrEnded = errors.New("interview ended")
)
