package service

import (
	"context"
	"sync"
	"time"

	"github.com/birat04/Notionize/internal/auth"
	"github.com/birat04/Notionize/internal/repo"

	"golang.org/x/crypto/bcrypt"
)

const testSecret = "service-test-secret-0123456789"

type recordingPublisher struct {
	mu   sync.Mutex
	keys []string
}

func (p *recordingPublisher) Publish(_ context.Context, key string, _ any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, key)
	return nil
}

func (p *recordingPublisher) Keys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.keys...)
}

type userFixture struct {
	svc    *UserService
	users  *repo.MemUserRepo
	tokens *auth.TokenService
	events *recordingPublisher
}

func newUserFixture() userFixture {
	users := repo.NewMemUserRepo()
	tokens := auth.NewTokenService(testSecret, time.Hour, "")
	pub := &recordingPublisher{}
	return userFixture{
		svc:    NewUserService(users, auth.NewBcryptHasher(bcrypt.MinCost), tokens, pub),
		users:  users,
		tokens: tokens,
		events: pub,
	}
}
