package repository

import (
	"context"
	"errors"
	"fmt"

	"adventure-server/internal/interfaces"
	"adventure-server/internal/models"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	choiceFields = `id, story_id, from_scene_id, to_scene_id, label, order_index, created_at`

	getChoiceByIDQuery = `
        SELECT ` + choiceFields + `
        FROM choices
        WHERE id = $1`

	listChoicesFromSceneQuery = `
        SELECT ` + choiceFields + `
        FROM choices
        WHERE from_scene_id = $1
        ORDER BY order_index, created_at`
)

// Compile-time check to ensure pgChoiceRepository implements the interface
var _ interfaces.ChoiceRepository = (*pgChoiceRepository)(nil)

type pgChoiceRepository struct {
	db     interfaces.DBTX
	logger *zap.Logger
}

func NewPgChoiceRepository(db interfaces.DBTX, logger *zap.Logger) interfaces.ChoiceRepository {
	return &pgChoiceRepository{
		db:     db,
		logger: logger.Named("PgChoiceRepo"),
	}
}

func (r *pgChoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Choice, error) {
	var choice models.Choice
	if err := pgxscan.Get(ctx, r.db, &choice, getChoiceByIDQuery, id); err != nil {
		err = wrapNotFound(err)
		if errors.Is(err, models.ErrNotFound) {
			r.logger.Debug("Choice not found", zap.String("choiceID", id.String()))
			return nil, err
		}
		r.logger.Error("Failed to get choice", zap.String("choiceID", id.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to get choice %s: %w", id, err)
	}
	return &choice, nil
}

func (r *pgChoiceRepository) ListFromScene(ctx context.Context, sceneID uuid.UUID) ([]models.Choice, error) {
	choices := make([]models.Choice, 0)
	if err := pgxscan.Select(ctx, r.db, &choices, listChoicesFromSceneQuery, sceneID); err != nil {
		r.logger.Error("Failed to list choices", zap.String("sceneID", sceneID.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to list choices from scene %s: %w", sceneID, err)
	}
	return choices, nil
}
