package core

import (
	"context"
	"fmt"

	"github.com/Ebzefr/WebSecura/backend"
	"github.com/Ebzefr/WebSecura/logger"
	"github.com/Ebzefr/WebSecura/models"
)

// AdminAPI is the admin part of the backend client.
type AdminAPI interface {
	AdminStats(ctx context.Context, adminID int64) (*models.AdminStats, error)
	AdminUsers(ctx context.Context, adminID int64) ([]models.AdminUser, error)
	AdminUpdateUser(ctx context.Context, userID int64, upd models.AdminUserUpdate) error
	AdminDeactivateUser(ctx context.Context, adminID, userID int64) error
	AdminMessages(ctx context.Context, adminID int64) ([]models.ContactMessage, error)
	AdminDeleteMessage(ctx context.Context, adminID, messageID int64) error
}

// Admin wraps the dashboard calls. The is_admin check here only hides the
// dashboard from regular users.
type Admin struct {
	api     AdminAPI
	session *SessionGate
}

func NewAdmin(api AdminAPI, session *SessionGate) *Admin {
	return &Admin{api: api, session: session}
}

func (a *Admin) Stats(ctx context.Context) (*models.AdminStats, error) {
	s, err := a.session.RequireAdmin()
	if err != nil {
		return nil, err
	}
	return a.api.AdminStats(ctx, s.ID)
}

func (a *Admin) Users(ctx context.Context) ([]models.AdminUser, error) {
	s, err := a.session.RequireAdmin()
	if err != nil {
		return nil, err
	}
	return a.api.AdminUsers(ctx, s.ID)
}

func (a *Admin) Messages(ctx context.Context) ([]models.ContactMessage, error) {
	s, err := a.session.RequireAdmin()
	if err != nil {
		return nil, err
	}
	return a.api.AdminMessages(ctx, s.ID)
}

// UpdateUser changes a user's role, active flag or name.
func (a *Admin) UpdateUser(ctx context.Context, userID int64, upd models.AdminUserUpdate) error {
	s, err := a.session.RequireAdmin()
	if err != nil {
		return err
	}
	upd.AdminID = s.ID
	if err := a.api.AdminUpdateUser(ctx, userID, upd); err != nil {
		return fmt.Errorf("updating user %d: %w", userID, err)
	}
	logger.Info("Admin %d updated user %d", s.ID, userID)
	return nil
}

// DeactivateUser needs confirmation; nothing is sent without it.
func (a *Admin) DeactivateUser(ctx context.Context, userID int64, confirm Confirmer) error {
	s, err := a.session.RequireAdmin()
	if err != nil {
		return err
	}
	if s.ID == userID {
		return &backend.ValidationError{Field: "user_id", Message: "You cannot deactivate your own account"}
	}
	if !confirmed(confirm, fmt.Sprintf("Deactivate user %d?", userID)) {
		return ErrCancelled
	}
	if err := a.api.AdminDeactivateUser(ctx, s.ID, userID); err != nil {
		return fmt.Errorf("deactivating user %d: %w", userID, err)
	}
	logger.Info("Admin %d deactivated user %d", s.ID, userID)
	return nil
}

// DeleteMessage needs confirmation; nothing is sent without it.
func (a *Admin) DeleteMessage(ctx context.Context, messageID int64, confirm Confirmer) error {
	s, err := a.session.RequireAdmin()
	if err != nil {
		return err
	}
	if !confirmed(confirm, fmt.Sprintf("Delete message %d? This action cannot be undone.", messageID)) {
		return ErrCancelled
	}
	if err := a.api.AdminDeleteMessage(ctx, s.ID, messageID); err != nil {
		return fmt.Errorf("deleting message %d: %w", messageID, err)
	}
	logger.Info("Admin %d deleted message %d", s.ID, messageID)
	return nil
}
