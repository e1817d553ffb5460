package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/Ebzefr/WebSecura/backend"
	"github.com/Ebzefr/WebSecura/logger"
	"github.com/Ebzefr/WebSecura/models"
)

// AccountAPI is the auth and profile part of the backend client.
type AccountAPI interface {
	Login(ctx context.Context, email, password string) (*models.AuthResponse, error)
	Register(ctx context.Context, username, email, password string) (*models.AuthResponse, error)
	Logout(ctx context.Context, userID int64) error
	Profile(ctx context.Context, userID int64) (*models.Session, error)
	UpdateProfile(ctx context.Context, req models.ProfileUpdateRequest) (*models.AuthResponse, error)
}

// Accounts keeps the session gate in step with the backend's auth calls.
type Accounts struct {
	api     AccountAPI
	session *SessionGate
}

func NewAccounts(api AccountAPI, session *SessionGate) *Accounts {
	return &Accounts{api: api, session: session}
}

func required(field, value, msg string) error {
	if strings.TrimSpace(value) == "" {
		return &backend.ValidationError{Field: field, Message: msg}
	}
	return nil
}

// Login authenticates and replaces the cached session.
func (a *Accounts) Login(ctx context.Context, email, password string) (*models.Session, error) {
	if err := required("email", email, "Please enter your email"); err != nil {
		return nil, err
	}
	if err := required("password", password, "Please enter your password"); err != nil {
		return nil, err
	}
	resp, err := a.api.Login(ctx, strings.TrimSpace(email), password)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	return a.store(resp.User)
}

// Register creates an account and logs it in.
func (a *Accounts) Register(ctx context.Context, username, email, password string) (*models.Session, error) {
	if err := required("username", username, "Please enter a username"); err != nil {
		return nil, err
	}
	if !emailPattern.MatchString(email) {
		return nil, &backend.ValidationError{Field: "email", Message: "Please enter a valid email address"}
	}
	if err := required("password", password, "Please enter a password"); err != nil {
		return nil, err
	}
	resp, err := a.api.Register(ctx, strings.TrimSpace(username), strings.TrimSpace(email), password)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	return a.store(resp.User)
}

func (a *Accounts) store(user models.Session) (*models.Session, error) {
	if err := a.session.Set(user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout tells the backend and clears the local session whatever it says.
func (a *Accounts) Logout(ctx context.Context) error {
	if s := a.session.Current(); s != nil {
		if err := a.api.Logout(ctx, s.ID); err != nil {
			logger.Warn("Logout call failed, clearing local session anyway: %v", err)
		}
	}
	return a.session.Clear()
}

// Profile fetches the server's view of the logged in user.
func (a *Accounts) Profile(ctx context.Context) (*models.Session, error) {
	s, err := a.session.RequireUser()
	if err != nil {
		return nil, err
	}
	p, err := a.api.Profile(ctx, s.ID)
	if err != nil {
		return nil, fmt.Errorf("loading profile: %w", err)
	}
	return p, nil
}

// UpdateProfile renames the user and optionally sets a new password. The
// cached session is replaced with what the server returns.
func (a *Accounts) UpdateProfile(ctx context.Context, username, password string) (*models.Session, error) {
	s, err := a.session.RequireUser()
	if err != nil {
		return nil, err
	}
	if err := required("username", username, "Please enter a username"); err != nil {
		return nil, err
	}
	resp, err := a.api.UpdateProfile(ctx, models.ProfileUpdateRequest{UserID: s.ID, Username: strings.TrimSpace(username), Password: password})
	if err != nil {
		return nil, fmt.Errorf("updating profile: %w", err)
	}
	updated := resp.User
	if !updated.Valid() {
		// Some backends only acknowledge; keep the rest of the cached identity.
		updated = *s
		updated.Username = strings.TrimSpace(username)
	}
	return a.store(updated)
}
