package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	dom "github.com/birat04/Notionize/internal/domain"
)

const testSecret = "0123456789abcdef-test-secret"

func TestTokenRoundTrip(t *testing.T) {
	svc := NewTokenService(testSecret, time.Hour, "todo-api")
	tok, err := svc.Issue(dom.Subject{UserID: 42, Email: "a@example.com"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	sub, err := svc.Verify(tok)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if sub.UserID != 42 || sub.Email != "a@example.com" {
		t.Fatalf("unexpected subject %+v", sub)
	}
}

func TestTokenDefaultTTL(t *testing.T) {
	svc := NewTokenService(testSecret, 0, "")
	if svc.ttl != DefaultTokenTTL {
		t.Fatalf("expected default ttl %v, got %v", DefaultTokenTTL, svc.ttl)
	}
}

func TestTokenRejected(t *testing.T) {
	svc := NewTokenService(testSecret, time.Hour, "todo-api")
	good, _ := svc.Issue(dom.Subject{UserID: 1, Email: "a@example.com"})

	expired, _ := svc.IssueWithTTL(dom.Subject{UserID: 1, Email: "a@example.com"}, -time.Minute)
	otherKey, _ := NewTokenService("another-secret-of-enough-length", time.Hour, "todo-api").
		Issue(dom.Subject{UserID: 1, Email: "a@example.com"})
	otherIssuer, _ := NewTokenService(testSecret, time.Hour, "someone-else").
		Issue(dom.Subject{UserID: 1, Email: "a@example.com"})
	noSubject, _ := svc.Issue(dom.Subject{Email: "a@example.com"})

	parts := strings.Split(good, ".")
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]

	cases := map[string]string{
		"expired":      expired,
		"wrong key":    otherKey,
		"wrong issuer": otherIssuer,
		"no user id":   noSubject,
		"tampered":     tampered,
		"garbage":      "not-a-token",
		"empty":        "",
	}
	for name, tok := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := svc.Verify(tok); !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher(4)
	digest, err := h.Hash("s3cret!")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if digest == "s3cret!" {
		t.Fatal("digest must not equal the plain password")
	}
	if !h.Check("s3cret!", digest) {
		t.Error("expected matching password to check")
	}
	if h.Check("wrong", digest) {
		t.Error("expected wrong password to fail")
	}
	if NewBcryptHasher(99).Cost != 10 {
		t.Error("out of range cost should fall back to the default")
	}
}
