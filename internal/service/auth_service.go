package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/AmitSheynhaft/colman-internet-app-assignment2/internal/domain"
	"github.com/AmitSheynhaft/colman-internet-app-assignment2/internal/password"
	"github.com/AmitSheynhaft/colman-internet-app-assignment2/internal/repository"
	"github.com/AmitSheynhaft/colman-internet-app-assignment2/internal/token"
)

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// errTokenRejected is the internal signal for every refresh-token rejection
// cause. Callers map it to their own generic wire error.
var errTokenRejected = errors.New("refresh token rejected")

// TokenPair is the payload returned by login and refresh.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	UserID       string `json:"_id"`
}

// RegisterInput carries the registration request fields.
type RegisterInput struct {
	Username       string
	Email          string
	Password       string
	Age            *int
	Bio            string
	ProfilePicture string
}

// AuthService owns the session lifecycle: registration, login, refresh
// rotation with replay detection, and logout.
type AuthService struct {
	users  repository.UserRepository
	hasher *password.Hasher
	codec  *token.Codec
	logger *zap.Logger
	tracer trace.Tracer
}

// NewAuthService wires dependencies.
func NewAuthService(users repository.UserRepository, hasher *password.Hasher, codec *token.Codec, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:  users,
		hasher: hasher,
		codec:  codec,
		logger: logger,
		tracer: otel.Tracer("github.com/AmitSheynhaft/colman-internet-app-assignment2/internal/service"),
	}
}

// Register validates the input, checks username and email availability, and
// persists a new account with an empty refresh-token set.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (domain.User, error) {
	ctx, span := s.startSpan(ctx, "AuthService.Register")
	defer span.End()

	if fields := validateRegistration(in); len(fields) > 0 {
		return domain.User{}, errValidation(fields)
	}

	username := strings.TrimSpace(in.Username)
	normalized := strings.ToLower(strings.TrimSpace(in.Email))

	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return domain.User{}, errConflict("Username already exists")
	} else if !errors.Is(err, repository.ErrNotFound) {
		span.RecordError(err)
		return domain.User{}, fmt.Errorf("check existing username: %w", err)
	}

	if _, err := s.users.FindByEmail(ctx, normalized); err == nil {
		return domain.User{}, errConflict("Email already exists")
	} else if !errors.Is(err, repository.ErrNotFound) {
		span.RecordError(err)
		return domain.User{}, fmt.Errorf("check existing email: %w", err)
	}

	hashed, err := s.hasher.Hash(in.Password)
	if err != nil {
		span.RecordError(err)
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := domain.User{
		Username:       username,
		Email:          normalized,
		PasswordHash:   hashed,
		Age:            in.Age,
		Bio:            strings.TrimSpace(in.Bio),
		ProfilePicture: strings.TrimSpace(in.ProfilePicture),
		RefreshTokens:  []string{},
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		var dup *repository.DuplicateKeyError
		if errors.As(err, &dup) {
			// The pre-checks above race with concurrent registrations;
			// the unique index is the source of truth.
			return domain.User{}, errConflict(conflictMessage(dup.Field))
		}
		span.RecordError(err)
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}

	s.audit("register.success", "user_id", created.ID.Hex(), "username", created.Username)
	return created, nil
}

// Login verifies credentials and opens a new session. Unknown email and
// wrong password are deliberately indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, pass string) (TokenPair, error) {
	ctx, span := s.startSpan(ctx, "AuthService.Login")
	defer span.End()

	if strings.TrimSpace(email) == "" || pass == "" {
		return TokenPair{}, errMissingCredentials()
	}

	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, repository.ErrNotFound) {
		return TokenPair{}, errInvalidCredentials()
	}
	if err != nil {
		span.RecordError(err)
		return TokenPair{}, fmt.Errorf("load user by email: %w", err)
	}

	valid, err := s.hasher.Verify(pass, user.PasswordHash)
	if err != nil || !valid {
		return TokenPair{}, errInvalidCredentials()
	}

	pair, err := s.codec.IssuePair(user.ID.Hex())
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, token.ErrNotConfigured) {
			s.logger.Error("token secret not configured", zap.String("op", "login"))
			return TokenPair{}, errInternal()
		}
		return TokenPair{}, fmt.Errorf("issue token pair: %w", err)
	}

	user.AddRefreshToken(pair.RefreshToken)
	if err := s.users.Save(ctx, user); err != nil {
		span.RecordError(err)
		return TokenPair{}, fmt.Errorf("persist refresh token: %w", err)
	}

	s.audit("login.success", "user_id", user.ID.Hex())
	return TokenPair{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		UserID:       user.ID.Hex(),
	}, nil
}

// Refresh rotates a refresh token: the presented token is consumed and a
// fresh pair is issued. Presenting a token that is structurally valid but no
// longer in the account's active set is treated as a replay and wipes every
// session for that account.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	ctx, span := s.startSpan(ctx, "AuthService.Refresh")
	defer span.End()

	user, err := s.reconcileRefreshToken(ctx, refreshToken)
	if err != nil {
		return TokenPair{}, s.mapReconcileError(span, err, errRefreshFailed())
	}

	pair, err := s.codec.IssuePair(user.ID.Hex())
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, token.ErrNotConfigured) {
			s.logger.Error("token secret not configured", zap.String("op", "refresh"))
			return TokenPair{}, errInternal()
		}
		return TokenPair{}, fmt.Errorf("issue token pair: %w", err)
	}

	user.AddRefreshToken(pair.RefreshToken)
	if err := s.users.Save(ctx, user); err != nil {
		span.RecordError(err)
		return TokenPair{}, fmt.Errorf("persist rotated token: %w", err)
	}

	s.audit("refresh.success", "user_id", user.ID.Hex())
	return TokenPair{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		UserID:       user.ID.Hex(),
	}, nil
}

// Logout closes a single session by removing exactly the presented refresh
// token. It shares the reconcile step with Refresh, including the
// replay-triggered wipe, but its terminal action is a targeted removal.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	ctx, span := s.startSpan(ctx, "AuthService.Logout")
	defer span.End()

	user, err := s.reconcileRefreshToken(ctx, refreshToken)
	if err != nil {
		return s.mapReconcileError(span, err, errLogoutFailed())
	}

	if err := s.users.Save(ctx, user); err != nil {
		span.RecordError(err)
		return fmt.Errorf("persist logout: %w", err)
	}

	s.audit("logout.success", "user_id", user.ID.Hex())
	return nil
}

// GetUser loads a profile by id; used by the authenticated /me endpoint.
func (s *AuthService) GetUser(ctx context.Context, id string) (domain.User, error) {
	ctx, span := s.startSpan(ctx, "AuthService.GetUser")
	defer span.End()

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		return domain.User{}, err
	}
	return user, nil
}

// reconcileRefreshToken proves possession of a currently-valid refresh token
// and consumes it. On success the returned user has the token already
// removed from its active set; the caller decides what to persist next. A
// structurally valid token that is absent from the set means the token was
// already rotated or revoked, so every session is wiped before rejecting.
func (s *AuthService) reconcileRefreshToken(ctx context.Context, raw string) (domain.User, error) {
	if raw == "" {
		return domain.User{}, errTokenRejected
	}

	claims, err := s.codec.Verify(raw)
	if err != nil {
		if errors.Is(err, token.ErrNotConfigured) {
			return domain.User{}, err
		}
		s.logger.Debug("refresh token invalid", zap.Error(err))
		return domain.User{}, errTokenRejected
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.User{}, errTokenRejected
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("load user by id: %w", err)
	}

	if !user.HasRefreshToken(raw) {
		revoked := len(user.RefreshTokens)
		user.ClearRefreshTokens()
		if err := s.users.Save(ctx, user); err != nil {
			return domain.User{}, fmt.Errorf("persist session wipe: %w", err)
		}
		s.logger.Warn("refresh token replay detected, all sessions revoked",
			zap.String("user_id", user.ID.Hex()),
			zap.Int("sessions_revoked", revoked),
		)
		return domain.User{}, errTokenRejected
	}

	user.RemoveRefreshToken(raw)
	return user, nil
}

// mapReconcileError folds rejection causes into the operation's generic wire
// error while letting configuration and store faults surface as server
// errors.
func (s *AuthService) mapReconcileError(span trace.Span, err error, generic *Error) error {
	if errors.Is(err, token.ErrNotConfigured) {
		span.RecordError(err)
		s.logger.Error("token secret not configured", zap.String("op", "verify refresh"))
		return errInternal()
	}
	if errors.Is(err, errTokenRejected) {
		return generic
	}
	span.RecordError(err)
	return err
}

func validateRegistration(in RegisterInput) []string {
	var fields []string

	username := strings.TrimSpace(in.Username)
	switch {
	case username == "":
		fields = append(fields, "Username is required")
	case len(username) < 2:
		fields = append(fields, "Username must be at least 2 characters")
	case len(username) > 50:
		fields = append(fields, "Username cannot exceed 50 characters")
	}

	email := strings.TrimSpace(in.Email)
	switch {
	case email == "":
		fields = append(fields, "Email is required")
	case !emailPattern.MatchString(email):
		fields = append(fields, "Please provide a valid email address")
	}

	if in.Age != nil {
		if *in.Age < 0 {
			fields = append(fields, "Age cannot be negative")
		} else if *in.Age > 150 {
			fields = append(fields, "Age seems invalid")
		}
	}

	return fields
}

func conflictMessage(field string) string {
	switch field {
	case "username":
		return "Username already exists"
	case "email":
		return "Email already exists"
	default:
		return "Duplicate value"
	}
}

func (s *AuthService) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if s == nil || s.tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return s.tracer.Start(ctx, name)
}

func (s *AuthService) audit(event string, attrs ...any) {
	if s.logger == nil {
		return
	}
	fields := make([]zap.Field, 0, len(attrs)/2+1)
	fields = append(fields, zap.String("event", event))
	for i := 0; i+1 < len(attrs); i += 2 {
		key, ok := attrs[i].(string)
		if !ok {
			continue
		}
		fields = append(fields, zap.Any(key, attrs[i+1]))
	}
	s.logger.Info("audit", fields...)
}
