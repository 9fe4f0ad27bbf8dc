package repository

import "errors"

// ErrTodoNotFound is returned when an item does not exist or belongs to a
// different user. The two cases are deliberately indistinguishable so that
// callers learn nothing about other users' items.
var ErrTodoNotFound = errors.New("todo not found")

// ErrTranscriptNotFound is the transcript counterpart of ErrTodoNotFound.
var ErrTranscriptNotFound = errors.New("transcript not found")
