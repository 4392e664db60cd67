// Package repository implements the postgres backend mode on GORM.
package repository

import (
	"errors"

	"matchboard/internal/backend"
	"matchboard/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

// NewBackend exposes the GORM repositories over db as a backend.Backend.
func NewBackend(db *gorm.DB) *backend.Backend {
	return &backend.Backend{
		Mode:     backend.ModePostgres,
		Users:    NewUserRepository(db),
		Matches:  NewMatchRepository(db),
		Messages: NewMessageRepository(db),
	}
}

// translateError maps driver errors onto AppErrors.
func translateError(err error, resource string, id interface{}) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError(resource, id)
	}
	var pgErr *pgconn.PgError
	if errors.Is(err, gorm.ErrDuplicatedKey) || (errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation) {
		return models.NewValidationError(resource + " already exists")
	}
	return models.NewInternalError(err)
}
