package repo

import (
	"context"

	dom "github.com/birat04/Notionize/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AddressRepo persists addresses with the same ownership rules as todos.
type AddressRepo interface {
	Create(ctx context.Context, a dom.Address) (dom.Address, error)
	FindByIDAndOwner(ctx context.Context, id, ownerID int64) (dom.Address, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]dom.Address, error)
	Delete(ctx context.Context, id int64) error
}

type PGAddressRepo struct {
	db *pgxpool.Pool
}

func NewPGAddressRepo(db *pgxpool.Pool) *PGAddressRepo {
	return &PGAddressRepo{db: db}
}

const addressColumns = `id, user_id, city, country, street, pincode, created_at`

func scanAddress(row pgx.Row) (dom.Address, error) {
	var a dom.Address
	err := row.Scan(&a.ID, &a.UserID, &a.City, &a.Country, &a.Street, &a.Pincode, &a.CreatedAt)
	return a, mapPGError(err)
}

func (r *PGAddressRepo) Create(ctx context.Context, a dom.Address) (dom.Address, error) {
	query := `
		INSERT INTO addresses (user_id, city, country, street, pincode)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + addressColumns
	return scanAddress(r.db.QueryRow(ctx, query, a.UserID, a.City, a.Country, a.Street, a.Pincode))
}

func (r *PGAddressRepo) FindByIDAndOwner(ctx context.Context, id, ownerID int64) (dom.Address, error) {
	query := `SELECT ` + addressColumns + ` FROM addresses WHERE id = $1 AND user_id = $2`
	return scanAddress(r.db.QueryRow(ctx, query, id, ownerID))
}

func (r *PGAddressRepo) ListByOwner(ctx context.Context, ownerID int64) ([]dom.Address, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+addressColumns+` FROM addresses WHERE user_id = $1 ORDER BY created_at DESC, id DESC`,
		ownerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	list := make([]dom.Address, 0)
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

func (r *PGAddressRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM addresses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
