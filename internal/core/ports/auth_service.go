package ports

import (
	"context"
	"time"

	"github.com/JesloDev/e-library/internal/core/domain"
)

// UserProfile is the sanitized projection of an account returned to clients.
// It never carries the password hash.
type UserProfile struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Admin bool   `json:"admin"`
}

// RegisterInput carries a token-gated registration request.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Token    string
}

// AuthService defines login, invite-gated registration and sign-out.
type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *UserProfile, error)
	Register(ctx context.Context, input RegisterInput) (*UserProfile, error)
	// Logout revokes the token id until its natural expiry.
	Logout(ctx context.Context, tokenID string, expiresAt time.Time) error
}

// TokenRevoker tracks signed-out token ids so the auth middleware can reject
// them before expiry.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// ApprovalService defines the admin membership operations.
type ApprovalService interface {
	ListPending(ctx context.Context) ([]*domain.User, error)
	// Approve promotes the user; the notification email is best-effort and
	// never fails the approval.
	Approve(ctx context.Context, userID string) error
}

// InviteService defines admin management of registration links.
type InviteService interface {
	Generate(ctx context.Context) (*domain.RegistrationLink, error)
	List(ctx context.Context) ([]*domain.RegistrationLink, error)
	Delete(ctx context.Context, id string) error
}
