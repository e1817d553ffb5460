package core

import "github.com/Ebzefr/WebSecura/models"

// Control is the widget that triggered an operation (the scan button and
// its input, the contact form's submit button).
type Control interface {
	Busy()
	Idle()
	ClearInput()
}

// hold puts c into its busy state and returns the release func. Callers
// defer the release so every exit path restores the control.
func hold(c Control) func() {
	if c == nil {
		return func() {}
	}
	c.Busy()
	return c.Idle
}

// Presenter shows results and errors to the user. The terminal and the web
// UI each provide one.
type Presenter interface {
	// PresentReport shows a live scan in the results overlay.
	PresentReport(r *models.ScanReport)
	// PresentDetail shows a history record in the detail modal.
	PresentDetail(r *models.ScanReport)
	// ShowError shows a dismissable error message.
	ShowError(msg string)
}

// Confirmer asks the user to confirm a destructive action.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

func confirmed(c Confirmer, prompt string) bool {
	return c != nil && c.Confirm(prompt)
}
