package editor

import "errors"

// Store failure taxonomy, as surfaced to the editor. Callers branch with
// errors.Is; every wrapped error keeps the server's message for display.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("rule not found")
	ErrNetwork    = errors.New("network failure")
	ErrServer     = errors.New("server failure")
)

// Controller command rejections.
var (
	ErrNotReady      = errors.New("editor is not ready")
	ErrBusy          = errors.New("a save or delete is already in progress")
	ErrNothingToSave = errors.New("nothing to save")
)
