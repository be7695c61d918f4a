package application

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/taskvault/taskvault/internal/domain/entity"
	"github.com/taskvault/taskvault/internal/domain/repository"
	"github.com/taskvault/taskvault/pkg/events"
	"github.com/taskvault/taskvault/pkg/helpers"
)

var (
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// the caller cannot tell them apart.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// UserService implements signup, login, and logout. Each successful signup
// or login appends exactly one token to the user's sequence; logout removes
// exactly the presented token.
type UserService struct {
	Repo   repository.UserRepository
	Tokens *helpers.TokenManager
	Redis  *redis.Client
	Logger *logrus.Logger
	Events *events.Publisher
}

func NewUserService(repo repository.UserRepository, tokens *helpers.TokenManager, rdb *redis.Client, logger *logrus.Logger, pub *events.Publisher) *UserService {
	return &UserService{Repo: repo, Tokens: tokens, Redis: rdb, Logger: logger, Events: pub}
}

func sessionKey(userID string) string {
	return "user:session:" + userID
}

// Signup creates the user with an irreversibly hashed password and issues the
// first token. A duplicate email surfaces as repository.ErrDuplicateEmail
// with no partial user created.
func (s *UserService) Signup(ctx context.Context, email, password string) (*entity.User, string, error) {
	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, "", err
	}
	u := &entity.User{Email: email, PasswordHash: hash}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, "", err
	}
	token, err := s.issueToken(ctx, u)
	if err != nil {
		return nil, "", err
	}
	s.publishEvent(ctx, events.Event{Type: events.TypeUserSignedUp, UserID: u.ID})
	return u, token, nil
}

// Login verifies the password against the stored bcrypt hash and appends a
// new token. Unknown email and hash mismatch collapse into the same error.
func (s *UserService) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil || u == nil {
		return nil, "", ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.PasswordHash, password) {
		return nil, "", ErrInvalidCredentials
	}
	token, err := s.issueToken(ctx, u)
	if err != nil {
		return nil, "", err
	}
	s.publishEvent(ctx, events.Event{Type: events.TypeUserLoggedIn, UserID: u.ID})
	return u, token, nil
}

// Logout removes the presented token from the user's sequence, leaving other
// sessions intact.
func (s *UserService) Logout(ctx context.Context, userID, token string) error {
	if err := s.Repo.RemoveToken(ctx, userID, token); err != nil {
		return err
	}
	if s.Redis != nil {
		if err := s.Redis.Del(ctx, sessionKey(userID)).Err(); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", userID).Warn("redis session delete failed")
		}
	}
	return nil
}

// issueToken appends one generated token to the user's sequence and records
// a session hash in Redis for observability (best-effort).
func (s *UserService) issueToken(ctx context.Context, u *entity.User) (string, error) {
	token, err := s.Tokens.Generate(u.ID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate token failed")
		}
		return "", err
	}
	if err := s.Repo.AddToken(ctx, u.ID, entity.TokenAccessAuth, token); err != nil {
		return "", err
	}
	if s.Redis != nil {
		key := sessionKey(u.ID)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, map[string]any{
			"user_id":    u.ID,
			"email":      u.Email,
			"created_at": time.Now().UTC().Format(time.RFC3339Nano),
		})
		pipe.Expire(ctx, key, s.Tokens.TTL)
		if _, rErr := pipe.Exec(ctx); rErr != nil && s.Logger != nil {
			s.Logger.WithError(rErr).WithField("key", key).Warn("redis pipeline failed")
		}
	}
	return token, nil
}

func (s *UserService) publishEvent(ctx context.Context, ev events.Event) {
	if err := s.Events.Publish(ctx, ev); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("type", ev.Type).Warn("event publish failed")
	}
}
