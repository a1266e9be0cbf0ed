package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/JesloDev/e-library/internal/core/domain"
	"github.com/JesloDev/e-library/internal/core/ports"
)

type stubUserRepository struct {
	users   map[string]*domain.User
	created []*domain.User
}

func newStubUserRepository(users ...*domain.User) *stubUserRepository {
	repo := &stubUserRepository{users: make(map[string]*domain.User)}
	for _, u := range users {
		repo.users[u.Email] = u
	}
	return repo
}

func (r *stubUserRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := r.users[user.Email]; ok {
		return nil, domain.ErrUserExists
	}
	user.ID = "user-" + user.Email
	r.users[user.Email] = user
	r.created = append(r.created, user)
	return user, nil
}

func (r *stubUserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if u, ok := r.users[email]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepository) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepository) ListPending(_ context.Context) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.users {
		if !u.Approved && !u.Admin {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *stubUserRepository) Approve(_ context.Context, id string) error {
	for _, u := range r.users {
		if u.ID == id {
			u.Approved = true
			return nil
		}
	}
	return domain.ErrUserNotFound
}

type stubInviteRepository struct {
	links   map[string]*domain.RegistrationLink
	deleted []string
}

func newStubInviteRepository(links ...*domain.RegistrationLink) *stubInviteRepository {
	repo := &stubInviteRepository{links: make(map[string]*domain.RegistrationLink)}
	for _, l := range links {
		repo.links[l.Token] = l
	}
	return repo
}

func (r *stubInviteRepository) Create(_ context.Context, link *domain.RegistrationLink) (*domain.RegistrationLink, error) {
	link.ID = "link-" + link.Token
	r.links[link.Token] = link
	return link, nil
}

func (r *stubInviteRepository) FindByToken(_ context.Context, token string) (*domain.RegistrationLink, error) {
	if l, ok := r.links[token]; ok {
		return l, nil
	}
	return nil, domain.ErrInviteNotFound
}

func (r *stubInviteRepository) List(_ context.Context) ([]*domain.RegistrationLink, error) {
	var out []*domain.RegistrationLink
	for _, l := range r.links {
		out = append(out, l)
	}
	return out, nil
}

func (r *stubInviteRepository) Delete(_ context.Context, id string) error {
	for token, l := range r.links {
		if l.ID == id {
			delete(r.links, token)
			r.deleted = append(r.deleted, id)
			return nil
		}
	}
	return domain.ErrInviteNotFound
}

type stubTokenRevoker struct {
	revoked map[string]time.Time
}

func newStubTokenRevoker() *stubTokenRevoker {
	return &stubTokenRevoker{revoked: make(map[string]time.Time)}
}

func (r *stubTokenRevoker) Revoke(_ context.Context, tokenID string, expiresAt time.Time) error {
	r.revoked[tokenID] = expiresAt
	return nil
}

func (r *stubTokenRevoker) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	_, ok := r.revoked[tokenID]
	return ok, nil
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return string(hash)
}

func newAuthService(users ports.UserRepository, invites ports.InviteRepository) *AuthService {
	return NewAuthService(users, invites, newStubTokenRevoker(), "test-secret", time.Hour, zerolog.Nop())
}

func TestAuthServiceLogin_Success(t *testing.T) {
	users := newStubUserRepository(&domain.User{
		ID:           "u1",
		Email:        "ada@example.com",
		Name:         "Ada",
		PasswordHash: mustHash(t, "correct-horse"),
		Approved:     true,
	})
	svc := newAuthService(users, newStubInviteRepository())

	token, profile, err := svc.Login(context.Background(), "ada@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token == "" {
		t.Error("expected a session token")
	}
	if profile == nil || profile.ID != "u1" || profile.Email != "ada@example.com" {
		t.Errorf("unexpected profile: %+v", profile)
	}
}

func TestAuthServiceLogin_WrongPassword(t *testing.T) {
	users := newStubUserRepository(&domain.User{
		Email:        "ada@example.com",
		PasswordHash: mustHash(t, "correct-horse"),
		Approved:     true,
	})
	svc := newAuthService(users, newStubInviteRepository())

	_, _, err := svc.Login(context.Background(), "ada@example.com", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("got %v, want ErrInvalidCredentials", err)
	}
}

func TestAuthServiceLogin_UnknownEmail(t *testing.T) {
	svc := newAuthService(newStubUserRepository(), newStubInviteRepository())

	// An unknown account yields the same error as a wrong password.
	_, _, err := svc.Login(context.Background(), "nobody@example.com", "whatever")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("got %v, want ErrInvalidCredentials", err)
	}
}

func TestAuthServiceLogin_PendingApproval(t *testing.T) {
	users := newStubUserRepository(&domain.User{
		Email:        "new@example.com",
		PasswordHash: mustHash(t, "secret-pass"),
		Approved:     false,
	})
	svc := newAuthService(users, newStubInviteRepository())

	_, _, err := svc.Login(context.Background(), "new@example.com", "secret-pass")
	if !errors.Is(err, domain.ErrPendingApproval) {
		t.Fatalf("got %v, want ErrPendingApproval", err)
	}
}

func TestAuthServiceLogin_UnapprovedAdmin(t *testing.T) {
	users := newStubUserRepository(&domain.User{
		Email:        "root@example.com",
		PasswordHash: mustHash(t, "root-pass"),
		Approved:     false,
		Admin:        true,
	})
	svc := newAuthService(users, newStubInviteRepository())

	// Admin accounts bypass the approval gate.
	_, profile, err := svc.Login(context.Background(), "root@example.com", "root-pass")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !profile.Admin {
		t.Error("expected admin profile")
	}
}

func TestAuthServiceRegister_ConsumesLink(t *testing.T) {
	issued := time.Now().UTC()
	invites := newStubInviteRepository(&domain.RegistrationLink{
		ID:        "link-1",
		Token:     "invite-token",
		CreatedAt: issued,
		ExpiresAt: issued.Add(domain.InviteTTL),
	})
	users := newStubUserRepository()
	svc := newAuthService(users, invites)

	input := ports.RegisterInput{
		Email:    "new@example.com",
		Password: "secret-pass",
		Name:     "New Member",
		Token:    "invite-token",
	}
	profile, err := svc.Register(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.Email != "new@example.com" {
		t.Errorf("unexpected profile: %+v", profile)
	}

	if len(users.created) != 1 {
		t.Fatalf("got %d created users, want 1", len(users.created))
	}
	if users.created[0].Approved || users.created[0].Admin {
		t.Error("new account must start unapproved and non-admin")
	}
	if users.created[0].PasswordHash == "secret-pass" {
		t.Error("password must not be stored in the clear")
	}

	if len(invites.deleted) != 1 || invites.deleted[0] != "link-1" {
		t.Errorf("link not consumed: deleted=%v", invites.deleted)
	}

	// Second redemption of the same token must fail.
	input.Email = "other@example.com"
	if _, err := svc.Register(context.Background(), input); !errors.Is(err, domain.ErrInvalidInviteToken) {
		t.Fatalf("got %v, want ErrInvalidInviteToken on reused link", err)
	}
}

func TestAuthServiceRegister_ExpiredLink(t *testing.T) {
	issued := time.Now().UTC()
	invites := newStubInviteRepository(&domain.RegistrationLink{
		ID:        "link-1",
		Token:     "stale-token",
		CreatedAt: issued,
		ExpiresAt: issued.Add(domain.InviteTTL),
	})
	svc := newAuthService(newStubUserRepository(), invites)

	// Redeem one hour past the 24-hour window.
	svc.now = func() time.Time { return issued.Add(25 * time.Hour) }

	_, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:    "late@example.com",
		Password: "secret-pass",
		Name:     "Late",
		Token:    "stale-token",
	})
	if !errors.Is(err, domain.ErrInviteExpired) {
		t.Fatalf("got %v, want ErrInviteExpired", err)
	}
}

func TestAuthServiceRegister_MissingToken(t *testing.T) {
	svc := newAuthService(newStubUserRepository(), newStubInviteRepository())

	_, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:    "new@example.com",
		Password: "secret-pass",
		Name:     "New",
	})
	if !errors.Is(err, domain.ErrInvalidInviteToken) {
		t.Fatalf("got %v, want ErrInvalidInviteToken", err)
	}
}

func TestAuthServiceLogout_RevokesToken(t *testing.T) {
	revoker := newStubTokenRevoker()
	svc := NewAuthService(newStubUserRepository(), newStubInviteRepository(), revoker, "test-secret", time.Hour, zerolog.Nop())

	expiresAt := time.Now().Add(time.Hour)
	if err := svc.Logout(context.Background(), "jti-1", expiresAt); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	revoked, err := revoker.IsRevoked(context.Background(), "jti-1")
	if err != nil || !revoked {
		t.Fatalf("token not revoked: revoked=%v err=%v", revoked, err)
	}
}
