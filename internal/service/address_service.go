package service

import (
	"context"
	"errors"
	"strings"

	dom "github.com/birat04/Notionize/internal/domain"
	"github.com/birat04/Notionize/internal/repo"
)

// AddressService manages the owner's postal addresses.
type AddressService struct {
	repo repo.AddressRepo
}

func NewAddressService(r repo.AddressRepo) *AddressService {
	return &AddressService{repo: r}
}

func (s *AddressService) List(ctx context.Context, userID int64) ([]dom.Address, error) {
	return s.repo.ListByOwner(ctx, userID)
}

func (s *AddressService) Create(ctx context.Context, userID int64, a dom.Address) (dom.Address, error) {
	a.UserID = userID
	a.City = strings.TrimSpace(a.City)
	a.Country = strings.TrimSpace(a.Country)
	a.Street = strings.TrimSpace(a.Street)
	a.Pincode = strings.TrimSpace(a.Pincode)
	if a.City == "" && a.Country == "" && a.Street == "" {
		return dom.Address{}, invalid("address", "at least one of city, country or street is required")
	}
	return s.repo.Create(ctx, a)
}

func (s *AddressService) Delete(ctx context.Context, userID, id int64) error {
	existing, err := s.repo.FindByIDAndOwner(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if err := s.repo.Delete(ctx, existing.ID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
