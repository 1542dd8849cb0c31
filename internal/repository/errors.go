package repository

import (
	"errors"

	"adventure-server/internal/models"

	"github.com/jackc/pgx/v5"
)

// wrapNotFound converts pgx.ErrNoRows into models.ErrNotFound.
func wrapNotFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return models.ErrNotFound
	}
	return err
}
