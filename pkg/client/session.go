package client

import (
	"errors"
	"net/url"

	"github.com/JesloDev/e-library/internal/core/domain"
	"github.com/JesloDev/e-library/internal/core/ports"
)

// View is the portal screen the session currently shows.
type View string

const (
	ViewLogin    View = "login"
	ViewRegister View = "register"
	ViewLibrary  View = "library"
	ViewAdmin    View = "admin"
)

var ErrNotAdmin = errors.New("admin view requires an admin account")

// Session holds the ephemeral portal state: the signed-in user, the active
// view, and the catalog filter selections. Nothing here is persisted; a new
// session starts from scratch.
type Session struct {
	view        View
	user        *ports.UserProfile
	inviteToken string

	Filter domain.Filter
}

// NewSession opens a session for the given entry URL. The register view is
// reachable only when the URL carries an invite token parameter; otherwise
// every session starts at login.
func NewSession(entryURL string) *Session {
	s := &Session{view: ViewLogin}

	u, err := url.Parse(entryURL)
	if err != nil {
		return s
	}
	if token := u.Query().Get("token"); token != "" {
		s.view = ViewRegister
		s.inviteToken = token
	}
	return s
}

// View returns the active view.
func (s *Session) View() View {
	return s.view
}

// User returns the signed-in user, or nil.
func (s *Session) User() *ports.UserProfile {
	return s.user
}

// InviteToken returns the token captured from the entry URL, if any.
func (s *Session) InviteToken() string {
	return s.inviteToken
}

// SignIn installs the authenticated user and moves to the library view.
func (s *Session) SignIn(user *ports.UserProfile) {
	s.user = user
	s.view = ViewLibrary
}

// ToggleAdmin flips between the library and admin views. Only admin accounts
// may enter the admin view; no other transition is guarded.
func (s *Session) ToggleAdmin() error {
	if s.view == ViewAdmin {
		s.view = ViewLibrary
		return nil
	}
	if s.user == nil || !s.user.Admin {
		return ErrNotAdmin
	}
	s.view = ViewAdmin
	return nil
}

// SignOut clears the session from any view back to login. The filter
// selections are ephemeral and reset with the session.
func (s *Session) SignOut() {
	s.user = nil
	s.view = ViewLogin
	s.Filter = domain.Filter{}
}
