package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/CristopherGamboa/lab-identity-service/internal/core/domain"
	"github.com/CristopherGamboa/lab-identity-service/internal/core/ports"
	"github.com/CristopherGamboa/lab-identity-service/internal/core/token"
)

// AuthService verifies credentials and issues bearer tokens. Every failure
// mode — unknown email, wrong password, disabled account, throttled email —
// surfaces as the same domain.ErrAuthenticationFailed so responses cannot be
// used to enumerate accounts.
type AuthService struct {
	repo    ports.UserRepository
	hasher  ports.PasswordHasher
	codec   *token.Codec
	limiter ports.LoginLimiter
	logger  zerolog.Logger
}

// NewAuthService wires the authentication engine. limiter may be nil, in
// which case failed-login throttling is disabled.
func NewAuthService(repo ports.UserRepository, hasher ports.PasswordHasher, codec *token.Codec, limiter ports.LoginLimiter, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, hasher: hasher, codec: codec, limiter: limiter, logger: logger}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	if email == "" || password == "" {
		return nil, domain.ErrAuthenticationFailed
	}

	if s.limiter != nil {
		blocked, err := s.limiter.TooManyFailures(ctx, email)
		if err != nil {
			return nil, err
		}
		if blocked {
			s.logger.Warn().Str("email", email).Msg("login throttled")
			return nil, domain.ErrAuthenticationFailed
		}
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.recordFailure(ctx, email)
			return nil, domain.ErrAuthenticationFailed
		}
		return nil, err
	}

	if user.IsActive != domain.ActiveYes {
		s.recordFailure(ctx, email)
		return nil, domain.ErrAuthenticationFailed
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.recordFailure(ctx, email)
		return nil, domain.ErrAuthenticationFailed
	}

	roles := user.RoleNames()
	accessToken, err := s.codec.Issue(user.Email, user.ID, user.LabID, roles, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if s.limiter != nil {
		if err := s.limiter.Reset(ctx, email); err != nil {
			s.logger.Warn().Err(err).Str("email", email).Msg("failed to reset login failures")
		}
	}

	s.logger.Info().Int64("user_id", user.ID).Msg("user logged in")

	return &ports.LoginResult{
		AccessToken: accessToken,
		UserID:      user.ID,
		Email:       user.Email,
		Roles:       roles,
	}, nil
}

func (s *AuthService) recordFailure(ctx context.Context, email string) {
	if s.limiter == nil {
		return
	}
	if err := s.limiter.RecordFailure(ctx, email); err != nil {
		s.logger.Warn().Err(err).Str("email", email).Msg("failed to record login failure")
	}
}
