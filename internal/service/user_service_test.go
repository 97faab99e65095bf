package service

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	f := newUserFixture()

	u, tok, err := f.svc.Register(ctx, "alice", "Alice@Example.com", "secret1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.Email != "alice@example.com" {
		t.Errorf("expected normalized email, got %q", u.Email)
	}
	if u.PasswordHash == "secret1" || u.PasswordHash == "" {
		t.Errorf("password must be stored hashed")
	}
	if sub, err := f.tokens.Verify(tok); err != nil || sub.UserID != u.ID {
		t.Fatalf("registration token: sub=%+v err=%v", sub, err)
	}

	logged, tok, err := f.svc.Login(ctx, "alice@example.com", "secret1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	sub, err := f.tokens.Verify(tok)
	if err != nil {
		t.Fatalf("verify login token: %v", err)
	}
	if sub.UserID != u.ID || logged.ID != u.ID || sub.Email != u.Email {
		t.Fatalf("token subject %+v does not match user %+v", sub, u)
	}

	if keys := f.events.Keys(); len(keys) != 1 || keys[0] != "user.registered" {
		t.Errorf("expected one user.registered event, got %v", keys)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	ctx := context.Background()
	f := newUserFixture()

	if _, _, err := f.svc.Register(ctx, "alice", "alice@example.com", "secret1"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, _, err := f.svc.Register(ctx, "alice-two", "alice@example.com", "secret2"); !errors.Is(err, ErrConflict) {
		t.Fatalf("same email: expected ErrConflict, got %v", err)
	}
	if _, _, err := f.svc.Register(ctx, "alice", "new@example.com", "secret2"); !errors.Is(err, ErrConflict) {
		t.Fatalf("same username: expected ErrConflict, got %v", err)
	}
	if n := f.users.Count(); n != 1 {
		t.Fatalf("expected exactly one user row, got %d", n)
	}
}

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()
	f := newUserFixture()

	cases := []struct{ username, email, password, field string }{
		{"ab", "a@example.com", "secret1", "username"},
		{strings.Repeat("x", 51), "a@example.com", "secret1", "username"},
		{"alice", "  ", "secret1", "email"},
		{"alice", "a@example.com", "", "password"},
	}
	for _, c := range cases {
		_, _, err := f.svc.Register(ctx, c.username, c.email, c.password)
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("%+v: expected ValidationError, got %v", c, err)
		}
		if ve.Fields[0].Field != c.field {
			t.Errorf("%+v: expected field %q, got %q", c, c.field, ve.Fields[0].Field)
		}
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	ctx := context.Background()
	f := newUserFixture()
	if _, _, err := f.svc.Register(ctx, "alice", "alice@example.com", "secret1"); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, _, wrongPass := f.svc.Login(ctx, "alice@example.com", "nope")
	_, _, noUser := f.svc.Login(ctx, "ghost@example.com", "secret1")

	if !errors.Is(wrongPass, ErrInvalidCredentials) || !errors.Is(noUser, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for both, got %v and %v", wrongPass, noUser)
	}
	if wrongPass.Error() != noUser.Error() {
		t.Fatalf("messages differ: %q vs %q", wrongPass, noUser)
	}
}

func TestMe(t *testing.T) {
	ctx := context.Background()
	f := newUserFixture()
	u, _, _ := f.svc.Register(ctx, "alice", "alice@example.com", "secret1")

	got, err := f.svc.Me(ctx, u.ID)
	if err != nil || got.Username != "alice" {
		t.Fatalf("me: %+v %v", got, err)
	}
	if _, err := f.svc.Me(ctx, u.ID+100); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
