package repository

import (
	"context"
	"fmt"
	"time"

	"adventure-server/internal/interfaces"
	"adventure-server/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	insertSceneVisitQuery = `
        INSERT INTO scene_visits (id, session_id, scene_id, choice_id, visited_at)
        VALUES ($1, $2, $3, $4, $5)`

	countSceneVisitsSinceQuery = `
        SELECT COUNT(*)
        FROM scene_visits
        WHERE session_id = $1 AND visited_at >= $2`
)

// Compile-time check to ensure pgSceneVisitRepository implements the interface
var _ interfaces.SceneVisitRepository = (*pgSceneVisitRepository)(nil)

type pgSceneVisitRepository struct {
	db     interfaces.DBTX
	logger *zap.Logger
}

func NewPgSceneVisitRepository(db interfaces.DBTX, logger *zap.Logger) interfaces.SceneVisitRepository {
	return &pgSceneVisitRepository{
		db:     db,
		logger: logger.Named("PgSceneVisitRepo"),
	}
}

// Append inserts an immutable visit record, filling ID and VisitedAt when unset.
func (r *pgSceneVisitRepository) Append(ctx context.Context, visit *models.SceneVisit) error {
	if visit.ID == uuid.Nil {
		visit.ID = uuid.New()
	}
	if visit.VisitedAt.IsZero() {
		visit.VisitedAt = time.Now().UTC()
	}
	_, err := r.db.Exec(ctx, insertSceneVisitQuery,
		visit.ID,
		visit.SessionID,
		visit.SceneID,
		visit.ChoiceID,
		visit.VisitedAt,
	)
	if err != nil {
		r.logger.Error("Failed to append scene visit",
			zap.String("sessionID", visit.SessionID.String()),
			zap.String("sceneID", visit.SceneID.String()),
			zap.Error(err),
		)
		return fmt.Errorf("failed to append scene visit: %w", err)
	}
	return nil
}

func (r *pgSceneVisitRepository) CountSince(ctx context.Context, sessionID uuid.UUID, since time.Time) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, countSceneVisitsSinceQuery, sessionID, since).Scan(&count); err != nil {
		r.logger.Error("Failed to count scene visits", zap.String("sessionID", sessionID.String()), zap.Error(err))
		return 0, fmt.Errorf("failed to count scene visits: %w", err)
	}
	return count, nil
}
