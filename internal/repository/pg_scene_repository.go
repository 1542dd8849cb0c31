package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"adventure-server/internal/interfaces"
	"adventure-server/internal/models"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	sceneFields = `id, story_id, title, content, is_start, is_ending, ending_type::text AS ending_type,
        keywords, required_keywords, visual_url, item_keywords, created_at, updated_at`

	getSceneByIDQuery = `
        SELECT ` + sceneFields + `
        FROM scenes
        WHERE id = $1`

	findStartSceneQuery = `
        SELECT ` + sceneFields + `
        FROM scenes
        WHERE story_id = $1 AND is_start
        ORDER BY created_at
        LIMIT 1`

	listScenesByIDsQuery = `
        SELECT ` + sceneFields + `
        FROM scenes
        WHERE id = ANY($1::uuid[])`
)

// sceneRow is the database shape of a scene; keyword columns are text[].
type sceneRow struct {
	ID               uuid.UUID `db:"id"`
	StoryID          uuid.UUID `db:"story_id"`
	Title            string    `db:"title"`
	Content          string    `db:"content"`
	IsStart          bool      `db:"is_start"`
	IsEnding         bool      `db:"is_ending"`
	EndingType       *string   `db:"ending_type"`
	Keywords         []string  `db:"keywords"`
	RequiredKeywords []string  `db:"required_keywords"`
	VisualURL        *string   `db:"visual_url"`
	ItemKeywords     []string  `db:"item_keywords"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}

func (row *sceneRow) toModel() *models.Scene {
	scene := &models.Scene{
		ID:               row.ID,
		StoryID:          row.StoryID,
		Title:            row.Title,
		Content:          row.Content,
		IsStart:          row.IsStart,
		IsEnding:         row.IsEnding,
		Keywords:         models.NewKeywordSet(row.Keywords...),
		RequiredKeywords: models.NewKeywordSet(row.RequiredKeywords...),
		VisualURL:        row.VisualURL,
		ItemLabels:       models.NewKeywordSet(row.ItemKeywords...),
		CreatedAt:        row.CreatedAt,
		UpdatedAt:        row.UpdatedAt,
	}
	// Unknown ending types are dropped and presented as neutral.
	if row.EndingType != nil {
		if t := models.EndingType(*row.EndingType); t.IsValid() {
			scene.EndingType = &t
		}
	}
	return scene
}

// Compile-time check to ensure pgSceneRepository implements the interface
var _ interfaces.SceneRepository = (*pgSceneRepository)(nil)

type pgSceneRepository struct {
	db     interfaces.DBTX
	logger *zap.Logger
}

func NewPgSceneRepository(db interfaces.DBTX, logger *zap.Logger) interfaces.SceneRepository {
	return &pgSceneRepository{
		db:     db,
		logger: logger.Named("PgSceneRepo"),
	}
}

func (r *pgSceneRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Scene, error) {
	var row sceneRow
	if err := pgxscan.Get(ctx, r.db, &row, getSceneByIDQuery, id); err != nil {
		err = wrapNotFound(err)
		if errors.Is(err, models.ErrNotFound) {
			r.logger.Debug("Scene not found", zap.String("sceneID", id.String()))
			return nil, err
		}
		r.logger.Error("Failed to get scene", zap.String("sceneID", id.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to get scene %s: %w", id, err)
	}
	return row.toModel(), nil
}

// FindStartScene picks the oldest start scene if authoring left more than one.
func (r *pgSceneRepository) FindStartScene(ctx context.Context, storyID uuid.UUID) (*models.Scene, error) {
	var row sceneRow
	if err := pgxscan.Get(ctx, r.db, &row, findStartSceneQuery, storyID); err != nil {
		err = wrapNotFound(err)
		if errors.Is(err, models.ErrNotFound) {
			r.logger.Warn("Story has no start scene", zap.String("storyID", storyID.String()))
			return nil, err
		}
		r.logger.Error("Failed to find start scene", zap.String("storyID", storyID.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to find start scene for story %s: %w", storyID, err)
	}
	return row.toModel(), nil
}

func (r *pgSceneRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.Scene, error) {
	if len(ids) == 0 {
		return []*models.Scene{}, nil
	}
	var rows []*sceneRow
	if err := pgxscan.Select(ctx, r.db, &rows, listScenesByIDsQuery, ids); err != nil {
		r.logger.Error("Failed to list scenes by ids", zap.Int("count", len(ids)), zap.Error(err))
		return nil, fmt.Errorf("failed to list scenes: %w", err)
	}
	scenes := make([]*models.Scene, 0, len(rows))
	for _, row := range rows {
		scenes = append(scenes, row.toModel())
	}
	return scenes, nil
}
