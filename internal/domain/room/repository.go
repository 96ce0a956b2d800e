package room

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// Repository defines room catalog data access interface
type Repository interface {
	List(ctx context.Context) ([]*Room, error)
	GetByCode(ctx context.Context, code string) (*Room, error)
	Exists(ctx context.Context, code string) (bool, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new room repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context) ([]*Room, error) {
	query := `
		SELECT * FROM rooms
		WHERE active = true
		ORDER BY code ASC
	`
	var rooms []*Room
	err := r.db.SelectContext(ctx, &rooms, query)
	return rooms, err
}

func (r *repository) GetByCode(ctx context.Context, code string) (*Room, error) {
	query := `SELECT * FROM rooms WHERE code = $1`
	var room Room
	err := r.db.GetContext(ctx, &room, query, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &room, nil
}

func (r *repository) Exists(ctx context.Context, code string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM rooms WHERE code = $1 AND active = true)`
	var exists bool
	err := r.db.GetContext(ctx, &exists, query, code)
	return exists, err
}
