package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/wishlistapp/accounts/internal/api/metrics"
	"github.com/wishlistapp/accounts/internal/core/credential"
	"github.com/wishlistapp/accounts/internal/core/domain"
	"github.com/wishlistapp/accounts/internal/core/ports"
	"github.com/wishlistapp/accounts/internal/core/validation"
)

const (
	defaultTokenTTL    = 24 * time.Hour
	defaultMaxFailures = 7
)

// AccountOptions tunes session issuing and login throttling.
type AccountOptions struct {
	JWTSecret   string
	TokenTTL    time.Duration
	MaxFailures int
}

// AccountService implements signup, login, persistent login and profile updates.
type AccountService struct {
	users     ports.UserRepository
	audit     ports.AuditRepository
	throttle  ports.LoginThrottle
	validator *validation.Engine
	creds     *credential.Manager
	opts      AccountOptions
	log       zerolog.Logger
}

// NewAccountService wires the account use cases. audit and throttle may be nil,
// in which case events are not recorded and logins are not throttled.
func NewAccountService(
	users ports.UserRepository,
	audit ports.AuditRepository,
	throttle ports.LoginThrottle,
	creds *credential.Manager,
	opts AccountOptions,
	log zerolog.Logger,
) *AccountService {
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = defaultTokenTTL
	}
	if opts.MaxFailures <= 0 {
		opts.MaxFailures = defaultMaxFailures
	}
	return &AccountService{
		users:     users,
		audit:     audit,
		throttle:  throttle,
		validator: validation.NewEngine(users),
		creds:     creds,
		opts:      opts,
		log:       log,
	}
}

// Signup validates and stores a new account.
func (s *AccountService) Signup(ctx context.Context, in ports.SignupInput) (*domain.User, error) {
	password := in.Password
	candidate := validation.Candidate{
		Name:                 in.Name,
		Email:                in.Email,
		Password:             &password,
		PasswordConfirmation: in.PasswordConfirmation,
	}
	if err := s.validate(ctx, candidate); err != nil {
		metrics.SignupsTotal.WithLabelValues(signupResult(err)).Inc()
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{Name: in.Name, CreatedAt: now, UpdatedAt: now}
	if err := s.setPassword(user, in.Password); err != nil {
		metrics.SignupsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("signup: %w", err)
	}
	user.Email = domain.NormalizeEmail(in.Email)

	created, err := s.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			metrics.SignupsTotal.WithLabelValues("invalid").Inc()
			return nil, emailTaken()
		}
		metrics.SignupsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("signup: %w", err)
	}

	metrics.SignupsTotal.WithLabelValues("created").Inc()
	s.record(ctx, domain.EventSignup, created.ID, created.Email)
	s.log.Info().Str("user_id", created.ID).Msg("account created")
	return created, nil
}

// Login authenticates by email and password. When RememberMe is set a fresh
// remember token is issued; otherwise any stored remember digest is cleared.
func (s *AccountService) Login(ctx context.Context, in ports.LoginInput) (*ports.Session, error) {
	email := domain.NormalizeEmail(in.Email)

	if s.lockedOut(ctx, email) {
		metrics.LoginsTotal.WithLabelValues("password", "throttled").Inc()
		s.log.Warn().Str("email", email).Msg("login throttled")
		return nil, domain.ErrTooManyAttempts
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.loginFailed(ctx, email, "")
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	if !s.creds.Authenticate(user, in.Password) {
		s.loginFailed(ctx, email, user.ID)
		return nil, domain.ErrInvalidCredentials
	}
	s.resetFailures(ctx, email)

	var rememberToken string
	if in.RememberMe {
		if rememberToken, err = s.remember(ctx, user); err != nil {
			return nil, fmt.Errorf("login: %w", err)
		}
	} else if err := s.forget(ctx, user); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	access, err := s.issueAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	metrics.LoginsTotal.WithLabelValues("password", "success").Inc()
	s.record(ctx, domain.EventLogin, user.ID, user.Email)
	s.log.Info().Str("user_id", user.ID).Bool("remember", in.RememberMe).Msg("user logged in")

	return &ports.Session{User: user, AccessToken: access, RememberToken: rememberToken}, nil
}

// ResumeSession logs a user back in from a remember token held by the client.
func (s *AccountService) ResumeSession(ctx context.Context, userID, rememberToken string) (*ports.Session, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginsTotal.WithLabelValues("remember", "failure").Inc()
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("resume session: %w", err)
	}

	if !s.creds.Authenticated(user, rememberToken) {
		metrics.LoginsTotal.WithLabelValues("remember", "failure").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	access, err := s.issueAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("resume session: %w", err)
	}

	metrics.LoginsTotal.WithLabelValues("remember", "success").Inc()
	s.record(ctx, domain.EventRememberLogin, user.ID, user.Email)
	return &ports.Session{User: user, AccessToken: access}, nil
}

// Logout forgets the user's persistent login.
func (s *AccountService) Logout(ctx context.Context, userID string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	if err := s.forget(ctx, user); err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	metrics.LogoutsTotal.Inc()
	s.record(ctx, domain.EventLogout, user.ID, user.Email)
	return nil
}

// GetUser reloads a stored user.
func (s *AccountService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

// UpdateProfile applies a partial update. Password rules run only when a new
// password is supplied.
func (s *AccountService) UpdateProfile(ctx context.Context, id string, in ports.UpdateProfileInput) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	candidate := validation.Candidate{
		ID:                   user.ID,
		Name:                 valueOr(in.Name, user.Name),
		Email:                valueOr(in.Email, user.Email),
		Password:             in.Password,
		PasswordConfirmation: in.PasswordConfirmation,
	}
	if err := s.validate(ctx, candidate); err != nil {
		return nil, err
	}

	user.Name = candidate.Name
	if in.Password != nil {
		if err := s.setPassword(user, *in.Password); err != nil {
			return nil, fmt.Errorf("update profile: %w", err)
		}
	}
	user.Email = domain.NormalizeEmail(candidate.Email)
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return nil, emailTaken()
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}

	s.record(ctx, domain.EventProfileUpdated, user.ID, user.Email)
	return user, nil
}

func (s *AccountService) validate(ctx context.Context, c validation.Candidate) error {
	violations, err := s.validator.Validate(ctx, c)
	if err != nil {
		return fmt.Errorf("validate user: %w", err)
	}
	if len(violations) == 0 {
		return nil
	}
	for _, v := range violations {
		metrics.ValidationViolationsTotal.WithLabelValues(string(v.Field), string(v.Code)).Inc()
	}
	return &domain.ValidationError{Violations: violations}
}

func (s *AccountService) setPassword(user *domain.User, password string) error {
	start := time.Now()
	err := s.creds.SetPassword(user, password)
	metrics.DigestDuration.WithLabelValues("password").Observe(time.Since(start).Seconds())
	return err
}

func (s *AccountService) remember(ctx context.Context, user *domain.User) (string, error) {
	start := time.Now()
	token, err := s.creds.Remember(user)
	metrics.DigestDuration.WithLabelValues("remember_token").Observe(time.Since(start).Seconds())
	if err != nil {
		return "", err
	}
	if err := s.users.UpdateRememberDigest(ctx, user.ID, user.RememberDigest); err != nil {
		return "", err
	}
	return token, nil
}

func (s *AccountService) forget(ctx context.Context, user *domain.User) error {
	if !user.Remembered() {
		return nil
	}
	s.creds.Forget(user)
	return s.users.UpdateRememberDigest(ctx, user.ID, nil)
}

func (s *AccountService) issueAccessToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(s.opts.TokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.opts.JWTSecret))
}

// lockedOut reports whether email has reached the failure limit. A throttle
// read error lets the attempt through.
func (s *AccountService) lockedOut(ctx context.Context, email string) bool {
	if s.throttle == nil {
		return false
	}
	n, err := s.throttle.Failures(ctx, email)
	if err != nil {
		s.log.Warn().Err(err).Msg("login throttle check failed, allowing attempt")
		return false
	}
	return n >= s.opts.MaxFailures
}

func (s *AccountService) loginFailed(ctx context.Context, email, userID string) {
	metrics.LoginsTotal.WithLabelValues("password", "failure").Inc()
	if s.throttle != nil {
		if _, err := s.throttle.RecordFailure(ctx, email); err != nil {
			s.log.Warn().Err(err).Msg("failed to record login failure")
		}
	}
	s.record(ctx, domain.EventLoginFailed, userID, email)
}

func (s *AccountService) resetFailures(ctx context.Context, email string) {
	if s.throttle == nil {
		return
	}
	if err := s.throttle.Reset(ctx, email); err != nil {
		s.log.Warn().Err(err).Msg("failed to reset login failures")
	}
}

// record writes an audit event. Failures are logged and never fail the caller.
func (s *AccountService) record(ctx context.Context, kind domain.AuthEventKind, userID, email string) {
	if s.audit == nil {
		return
	}
	event := &domain.AuthEvent{Kind: kind, UserID: userID, Email: email, OccurredAt: time.Now().UTC()}
	if err := s.audit.InsertEvent(ctx, event); err != nil {
		s.log.Warn().Err(err).Str("event", string(kind)).Msg("failed to insert audit event")
	}
}

func emailTaken() error {
	return &domain.ValidationError{Violations: domain.Violations{{
		Field:   domain.FieldEmail,
		Code:    domain.CodeNotUnique,
		Param:   "case_insensitive",
		Message: "has already been taken",
	}}}
}

func signupResult(err error) string {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return "invalid"
	}
	return "error"
}

func valueOr(p *string, fallback string) string {
	if p == nil {
		return fallback
	}
	return *p
}
