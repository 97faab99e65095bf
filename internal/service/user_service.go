package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/birat04/Notionize/internal/auth"
	dom "github.com/birat04/Notionize/internal/domain"
	"github.com/birat04/Notionize/internal/events"
	"github.com/birat04/Notionize/internal/repo"
)

// TokenIssuer signs bearer tokens for a subject.
type TokenIssuer interface {
	Issue(sub dom.Subject) (string, error)
}

// UserService handles registration, login and session resolution.
type UserService struct {
	repo   repo.UserRepo
	hasher auth.PasswordHasher
	tokens TokenIssuer
	events events.Publisher
}

// NewUserService returns a new UserService. A nil publisher disables events.
func NewUserService(r repo.UserRepo, hasher auth.PasswordHasher, tokens TokenIssuer, pub events.Publisher) *UserService {
	if pub == nil {
		pub = events.Nop{}
	}
	return &UserService{repo: r, hasher: hasher, tokens: tokens, events: pub}
}

// Register creates a user and returns it with a fresh token.
func (s *UserService) Register(ctx context.Context, username, email, password string) (dom.User, string, error) {
	username = strings.TrimSpace(username)
	email = normalizeEmail(email)
	if n := len([]rune(username)); n < 3 || n > 50 {
		return dom.User{}, "", invalid("username", "must be between 3 and 50 characters")
	}
	if email == "" {
		return dom.User{}, "", invalid("email", "is required")
	}
	if password == "" {
		return dom.User{}, "", invalid("password", "is required")
	}

	_, err := s.repo.FindByEmailOrUsername(ctx, email, username)
	if err == nil {
		return dom.User{}, "", ErrConflict
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return dom.User{}, "", err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return dom.User{}, "", fmt.Errorf("hash password: %w", err)
	}
	u, err := s.repo.Create(ctx, username, email, hash)
	if err != nil {
		// lost a race with a concurrent registration
		if errors.Is(err, repo.ErrDuplicate) {
			return dom.User{}, "", ErrConflict
		}
		return dom.User{}, "", err
	}

	token, err := s.tokens.Issue(dom.Subject{UserID: u.ID, Email: u.Email})
	if err != nil {
		return dom.User{}, "", err
	}
	s.publish(ctx, events.UserRegistered, events.UserEvent{UserID: u.ID, Email: u.Email, At: u.CreatedAt})
	return u, token, nil
}

// Login checks credentials and returns the user with a fresh token. Unknown
// email and wrong password both yield ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, email, password string) (dom.User, string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return dom.User{}, "", ErrInvalidCredentials
	}
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return dom.User{}, "", ErrInvalidCredentials
		}
		return dom.User{}, "", err
	}
	if !s.hasher.Check(password, u.PasswordHash) {
		return dom.User{}, "", ErrInvalidCredentials
	}
	token, err := s.tokens.Issue(dom.Subject{UserID: u.ID, Email: u.Email})
	if err != nil {
		return dom.User{}, "", err
	}
	return u, token, nil
}

// Me resolves the user behind a verified token.
func (s *UserService) Me(ctx context.Context, userID int64) (dom.User, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return dom.User{}, ErrNotFound
		}
		return dom.User{}, err
	}
	return u, nil
}

func (s *UserService) publish(ctx context.Context, key string, v any) {
	if err := s.events.Publish(ctx, key, v); err != nil {
		log.Printf("publish %s: %v", key, err)
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
