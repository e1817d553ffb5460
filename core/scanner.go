package core

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/Ebzefr/WebSecura/backend"
	"github.com/Ebzefr/WebSecura/logger"
	"github.com/Ebzefr/WebSecura/models"
)

// ScanAPI is the backend call the scanner needs.
type ScanAPI interface {
	Scan(ctx context.Context, target string, userID *int64) (*models.ScanReport, error)
}

// SavedNotice is shown after a scan by a logged-in user.
const SavedNotice = "Scan saved to your history"

// NormalizeURL trims input and defaults the scheme to https. The result
// must be an absolute http(s) URL with a host.
func NormalizeURL(input string) (string, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return "", &backend.ValidationError{Field: "url", Message: "Please enter a website URL"}
	}
	if !strings.Contains(s, "://") {
		s = "https://" + s
	}
	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" || strings.ContainsAny(u.Host, " \t") {
		return "", &backend.ValidationError{Field: "url", Message: "Please enter a valid URL"}
	}
	return s, nil
}

// Scanner runs one scan request/response cycle.
type Scanner struct {
	api       ScanAPI
	state     *AppState
	session   *SessionGate
	presenter Presenter
	notifier  *Notifier
}

func NewScanner(api ScanAPI, state *AppState, session *SessionGate, presenter Presenter, notifier *Notifier) *Scanner {
	return &Scanner{api: api, state: state, session: session, presenter: presenter, notifier: notifier}
}

// Scan validates input, calls the backend and presents the report. Every
// failure is shown once through the presenter and returned.
func (s *Scanner) Scan(ctx context.Context, input string, ctrl Control) (*models.ScanReport, error) {
	release := hold(ctrl)
	defer release()

	target, err := NormalizeURL(input)
	if err != nil {
		s.fail(err)
		return nil, err
	}

	var userID *int64
	if s.session != nil {
		userID = s.session.UserID()
	}

	gen := s.state.Begin()
	logger.Info("Starting scan for %s (user %v)", target, describeUser(userID))
	report, err := s.api.Scan(ctx, target, userID)
	if err != nil {
		logger.Error("Scan of %s failed: %v", target, err)
		s.fail(err)
		return nil, fmt.Errorf("scan %s: %w", target, err)
	}
	if err := s.state.Commit(gen, report); err != nil {
		return nil, err
	}

	sum := report.Summary()
	logger.Info("Scan of %s complete: %d checks, %d failed, tier %s", target, sum.Total, sum.Failed, sum.Tier)
	if s.presenter != nil {
		s.presenter.PresentReport(report)
	}
	if ctrl != nil {
		ctrl.ClearInput()
	}
	if userID != nil && s.notifier != nil {
		s.notifier.Notify(NoticeSuccess, SavedNotice)
	}
	return report, nil
}

func (s *Scanner) fail(err error) {
	if s.presenter == nil {
		return
	}
	var ve *backend.ValidationError
	if errors.As(err, &ve) {
		s.presenter.ShowError(ve.Message)
		return
	}
	s.presenter.ShowError("Scan failed: " + backend.UserMessage(err))
}

func describeUser(id *int64) string {
	if id == nil {
		return "anonymous"
	}
	return fmt.Sprint(*id)
}
