package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/JesloDev/e-library/internal/api/metrics"
	"github.com/JesloDev/e-library/internal/core/domain"
	"github.com/JesloDev/e-library/internal/core/ports"
)

// ApprovalService handles membership approvals.
type ApprovalService struct {
	users  ports.UserRepository
	mailer ports.Mailer
	logger zerolog.Logger
}

func NewApprovalService(users ports.UserRepository, mailer ports.Mailer, logger zerolog.Logger) *ApprovalService {
	return &ApprovalService{users: users, mailer: mailer, logger: logger}
}

// ListPending returns unapproved, non-admin accounts awaiting review.
func (s *ApprovalService) ListPending(ctx context.Context) ([]*domain.User, error) {
	return s.users.ListPending(ctx)
}

// Approve sets the approved flag, then sends a best-effort notification email.
// A send failure is logged and never fails the approval.
func (s *ApprovalService) Approve(ctx context.Context, userID string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.users.Approve(ctx, userID); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to approve user")
		return err
	}

	metrics.ApprovalsTotal.Inc()
	s.logger.Info().Str("user_id", userID).Msg("user approved")

	if err := s.mailer.SendApprovalNotice(ctx, user.Email, user.Name); err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("approval email not sent")
	}

	return nil
}
