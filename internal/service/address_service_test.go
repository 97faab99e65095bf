package service

import (
	"context"
	"errors"
	"testing"

	dom "github.com/birat04/Notionize/internal/domain"
	"github.com/birat04/Notionize/internal/repo"
)

func TestAddressService(t *testing.T) {
	ctx := context.Background()
	svc := NewAddressService(repo.NewMemAddressRepo())

	var ve *ValidationError
	if _, err := svc.Create(ctx, 1, dom.Address{Pincode: "411001"}); !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	a, err := svc.Create(ctx, 1, dom.Address{City: " Pune ", Country: "India"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if a.City != "Pune" || a.UserID != 1 {
		t.Fatalf("unexpected address %+v", a)
	}

	if err := svc.Delete(ctx, 2, a.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("foreign delete: expected ErrNotFound, got %v", err)
	}
	if err := svc.Delete(ctx, 1, a.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	list, _ := svc.List(ctx, 1)
	if len(list) != 0 {
		t.Fatalf("expected empty list, got %+v", list)
	}
}
