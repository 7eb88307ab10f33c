package ports

import "context"

// LoginResult is the public identity summary returned on successful login.
// It never carries the password hash.
type LoginResult struct {
	AccessToken string
	UserID      int64
	Email       string
	Roles       []string
}

type AuthService interface {
	// Login fails with domain.ErrAuthenticationFailed for any credential
	// problem without distinguishing the cause.
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}

// PasswordHasher is the one-way credential hashing contract. Hash embeds a
// random salt so identical inputs produce distinct digests; Verify is
// deterministic for a given digest.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// LoginLimiter throttles repeated failed logins per email.
type LoginLimiter interface {
	TooManyFailures(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}
