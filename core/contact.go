package core

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/Ebzefr/WebSecura/backend"
	"github.com/Ebzefr/WebSecura/logger"
	"github.com/Ebzefr/WebSecura/models"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateContact checks the contact form in field order and returns the
// first problem.
func ValidateContact(req models.ContactRequest) error {
	switch {
	case len([]rune(strings.TrimSpace(req.Name))) < 2:
		return &backend.ValidationError{Field: "name", Message: "Please enter a valid name (at least 2 characters)"}
	case !emailPattern.MatchString(req.Email):
		return &backend.ValidationError{Field: "email", Message: "Please enter a valid email address"}
	case strings.TrimSpace(req.Subject) == "":
		return &backend.ValidationError{Field: "subject", Message: "Please select a subject"}
	case len([]rune(strings.TrimSpace(req.Message))) < 10:
		return &backend.ValidationError{Field: "message", Message: "Please enter a message (at least 10 characters)"}
	}
	return nil
}

// ContactAPI sends the contact form.
type ContactAPI interface {
	Contact(ctx context.Context, req models.ContactRequest) (string, error)
}

// SubmitContact validates and sends the form, holding ctrl busy meanwhile.
// The input is cleared only on success.
func SubmitContact(ctx context.Context, api ContactAPI, req models.ContactRequest, ctrl Control) (string, error) {
	release := hold(ctrl)
	defer release()

	if err := ValidateContact(req); err != nil {
		return "", err
	}
	ack, err := api.Contact(ctx, req)
	if err != nil {
		logger.Error("Contact form submission failed: %v", err)
		return "", fmt.Errorf("sending contact form: %w", err)
	}
	if ctrl != nil {
		ctrl.ClearInput()
	}
	return ack, nil
}
