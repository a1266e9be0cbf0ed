package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/JesloDev/e-library/internal/core/domain"
	"github.com/JesloDev/e-library/internal/core/ports"
)

// InviteService mints, lists and revokes registration links.
type InviteService struct {
	repo   ports.InviteRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewInviteService(repo ports.InviteRepository, logger zerolog.Logger) *InviteService {
	return &InviteService{repo: repo, logger: logger, now: time.Now}
}

// Generate mints a fresh single-use token expiring exactly 24 hours from
// issuance. There is no cap on outstanding links.
func (s *InviteService) Generate(ctx context.Context) (*domain.RegistrationLink, error) {
	issued := s.now().UTC()
	link := &domain.RegistrationLink{
		Token:     uuid.NewString(),
		CreatedAt: issued,
		ExpiresAt: issued.Add(domain.InviteTTL),
	}

	created, err := s.repo.Create(ctx, link)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create registration link")
		return nil, err
	}

	s.logger.Info().Str("link_id", created.ID).Time("expires_at", created.ExpiresAt).Msg("registration link generated")
	return created, nil
}

// List returns outstanding links, newest first.
func (s *InviteService) List(ctx context.Context) ([]*domain.RegistrationLink, error) {
	return s.repo.List(ctx)
}

// Delete revokes a link by id.
func (s *InviteService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("link_id", id).Msg("registration link revoked")
	return nil
}
