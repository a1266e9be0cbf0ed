package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/JesloDev/e-library/internal/api/metrics"
	"github.com/JesloDev/e-library/internal/core/domain"
	"github.com/JesloDev/e-library/internal/core/ports"
)

// AuthService implements login, invite-gated registration and sign-out.
type AuthService struct {
	users     ports.UserRepository
	invites   ports.InviteRepository
	revoker   ports.TokenRevoker
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
	now       func() time.Time
}

func NewAuthService(
	users ports.UserRepository,
	invites ports.InviteRepository,
	revoker ports.TokenRevoker,
	jwtSecret string,
	tokenTTL time.Duration,
	logger zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		users:     users,
		invites:   invites,
		revoker:   revoker,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    logger,
		now:       time.Now,
	}
}

// Login authenticates by exact email match and bcrypt password comparison.
// A matched but unapproved non-admin account yields ErrPendingApproval rather
// than a session. The returned profile never carries the password hash.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *ports.UserProfile, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginsTotal.WithLabelValues("invalid").Inc()
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.LoginsTotal.WithLabelValues("invalid").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	if !user.CanSignIn() {
		metrics.LoginsTotal.WithLabelValues("pending").Inc()
		return "", nil, domain.ErrPendingApproval
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	s.logger.Info().Str("user_id", user.ID).Bool("admin", user.Admin).Msg("user logged in")

	return token, sanitize(user), nil
}

// Register consumes a registration link: the token must exist and be unexpired,
// the new account is inserted unapproved and non-admin, and the link is deleted
// so it cannot be reused.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*ports.UserProfile, error) {
	if input.Token == "" {
		return nil, domain.ErrInvalidInviteToken
	}
	if input.Email == "" || input.Password == "" || input.Name == "" {
		return nil, domain.ErrInvalidCredentials
	}

	link, err := s.invites.FindByToken(ctx, input.Token)
	if err != nil {
		if errors.Is(err, domain.ErrInviteNotFound) {
			return nil, domain.ErrInvalidInviteToken
		}
		return nil, err
	}
	if link.Expired(s.now()) {
		return nil, domain.ErrInviteExpired
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        input.Email,
		Name:         input.Name,
		PasswordHash: string(hash),
		Approved:     false,
		Admin:        false,
		CreatedAt:    s.now().UTC(),
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	// Consume the link. A failure here leaves a reusable link behind, which is
	// preferable to a registered user with no account.
	if err := s.invites.Delete(ctx, link.ID); err != nil {
		s.logger.Warn().Err(err).Str("link_id", link.ID).Msg("failed to delete consumed registration link")
	}

	s.logger.Info().Str("user_id", created.ID).Msg("user registered, awaiting approval")
	return sanitize(created), nil
}

// Logout marks the token id revoked until the token would have expired anyway.
func (s *AuthService) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if tokenID == "" {
		return nil
	}
	return s.revoker.Revoke(ctx, tokenID, expiresAt)
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"name":  user.Name,
		"admin": user.Admin,
		"jti":   uuid.NewString(),
		"exp":   s.now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func sanitize(u *domain.User) *ports.UserProfile {
	return &ports.UserProfile{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
		Admin: u.Admin,
	}
}
