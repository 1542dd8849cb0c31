package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"adventure-server/internal/interfaces"
	"adventure-server/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const (
	gameSessionFields = `id, player_id, story_id, current_scene_id, status::text, journal, items, started_at, completed_at, updated_at`

	getGameSessionByPlayerAndStoryQuery = `
        SELECT ` + gameSessionFields + `
        FROM game_sessions
        WHERE player_id = $1 AND story_id = $2`

	getOwnedGameSessionQuery = `
        SELECT ` + gameSessionFields + `
        FROM game_sessions
        WHERE id = $1 AND player_id = $2`

	getOwnedActiveGameSessionQuery = `
        SELECT ` + gameSessionFields + `
        FROM game_sessions
        WHERE id = $1 AND player_id = $2 AND status = 'active'`

	// The WHERE on DO UPDATE keeps a concurrently started active session intact:
	// the statement then affects no row and RETURNING is empty.
	resetGameSessionForPlayQuery = `
        INSERT INTO game_sessions
            (id, player_id, story_id, current_scene_id, status, journal, items, started_at, completed_at, updated_at)
        VALUES
            ($1, $2, $3, $4, 'active', $5, '{}', $6, NULL, $6)
        ON CONFLICT (player_id, story_id) DO UPDATE SET
            current_scene_id = EXCLUDED.current_scene_id,
            status           = 'active',
            journal          = EXCLUDED.journal,
            items            = '{}',
            started_at       = EXCLUDED.started_at,
            completed_at     = NULL,
            updated_at       = EXCLUDED.updated_at
        WHERE game_sessions.status <> 'active'
        RETURNING id`

	applyTransitionQuery = `
        UPDATE game_sessions SET
            current_scene_id = $4,
            status           = $5,
            journal          = $6,
            completed_at     = $7,
            updated_at       = NOW()
        WHERE id = $1 AND player_id = $2 AND status = 'active' AND current_scene_id = $3
        RETURNING ` + gameSessionFields

	replaceItemsQuery = `
        UPDATE game_sessions SET
            items      = $4,
            updated_at = NOW()
        WHERE id = $1 AND player_id = $2 AND status = 'active' AND items = $3
        RETURNING ` + gameSessionFields

	markAbandonedQuery = `
        UPDATE game_sessions SET
            status     = 'abandoned',
            updated_at = $3
        WHERE id = $1 AND player_id = $2 AND status = 'active'
        RETURNING ` + gameSessionFields
)

// Compile-time check to ensure pgGameSessionRepository implements the interface
var _ interfaces.GameSessionRepository = (*pgGameSessionRepository)(nil)

// pgGameSessionRepository is the PostgreSQL implementation of GameSessionRepository
type pgGameSessionRepository struct {
	db     interfaces.DBTX // Can be *pgxpool.Pool or pgx.Tx
	logger *zap.Logger
}

// NewPgGameSessionRepository creates a new repository instance.
func NewPgGameSessionRepository(db interfaces.DBTX, logger *zap.Logger) interfaces.GameSessionRepository {
	return &pgGameSessionRepository{
		db:     db,
		logger: logger.Named("PgGameSessionRepo"),
	}
}

func (r *pgGameSessionRepository) GetByPlayerAndStory(ctx context.Context, playerID, storyID uuid.UUID) (*models.GameSession, error) {
	logFields := []zap.Field{
		zap.String("playerID", playerID.String()),
		zap.String("storyID", storyID.String()),
	}
	session, err := scanGameSession(r.db.QueryRow(ctx, getGameSessionByPlayerAndStoryQuery, playerID, storyID))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			r.logger.Debug("Game session not found by player and story", logFields...)
			return nil, err
		}
		r.logger.Error("Failed to get game session by player and story", append(logFields, zap.Error(err))...)
		return nil, fmt.Errorf("failed to get game session by player and story: %w", err)
	}
	return session, nil
}

func (r *pgGameSessionRepository) GetOwned(ctx context.Context, sessionID, playerID uuid.UUID) (*models.GameSession, error) {
	return r.getOwned(ctx, getOwnedGameSessionQuery, sessionID, playerID)
}

func (r *pgGameSessionRepository) GetOwnedActive(ctx context.Context, sessionID, playerID uuid.UUID) (*models.GameSession, error) {
	return r.getOwned(ctx, getOwnedActiveGameSessionQuery, sessionID, playerID)
}

func (r *pgGameSessionRepository) getOwned(ctx context.Context, query string, sessionID, playerID uuid.UUID) (*models.GameSession, error) {
	logFields := []zap.Field{
		zap.String("sessionID", sessionID.String()),
		zap.String("playerID", playerID.String()),
	}
	session, err := scanGameSession(r.db.QueryRow(ctx, query, sessionID, playerID))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			r.logger.Debug("Game session not found for player", logFields...)
			return nil, err
		}
		r.logger.Error("Failed to get game session", append(logFields, zap.Error(err))...)
		return nil, fmt.Errorf("failed to get game session %s: %w", sessionID, err)
	}
	return session, nil
}

// ResetForPlay upserts the start state. session.ID is used only when a new row
// is inserted; a reset keeps the existing id.
func (r *pgGameSessionRepository) ResetForPlay(ctx context.Context, session *models.GameSession) (uuid.UUID, bool, error) {
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	if session.StartedAt.IsZero() {
		session.StartedAt = time.Now().UTC()
	}
	logFields := []zap.Field{
		zap.String("playerID", session.PlayerID.String()),
		zap.String("storyID", session.StoryID.String()),
		zap.String("startSceneID", session.CurrentSceneID.String()),
	}

	var id uuid.UUID
	err := r.db.QueryRow(ctx, resetGameSessionForPlayQuery,
		session.ID,
		session.PlayerID,
		session.StoryID,
		session.CurrentSceneID,
		session.Journal.Values(),
		session.StartedAt,
	).Scan(&id)
	if err == nil {
		r.logger.Info("Game session reset for play", append(logFields, zap.String("sessionID", id.String()))...)
		return id, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		r.logger.Error("Failed to upsert game session", append(logFields, zap.Error(err))...)
		return uuid.Nil, false, fmt.Errorf("failed to upsert game session: %w", err)
	}

	// Conflict with a row that is still active.
	existing, err := r.GetByPlayerAndStory(ctx, session.PlayerID, session.StoryID)
	if err != nil {
		return uuid.Nil, false, err
	}
	r.logger.Info("Active game session already exists, upsert skipped", append(logFields, zap.String("sessionID", existing.ID.String()))...)
	return existing.ID, false, nil
}

func (r *pgGameSessionRepository) ApplyTransition(ctx context.Context, t models.SessionTransition) (*models.GameSession, error) {
	logFields := []zap.Field{
		zap.String("sessionID", t.SessionID.String()),
		zap.String("playerID", t.PlayerID.String()),
		zap.String("fromSceneID", t.ExpectedSceneID.String()),
		zap.String("toSceneID", t.NextSceneID.String()),
		zap.String("status", string(t.Status)),
	}
	r.logger.Debug("Applying session transition", logFields...)

	session, err := scanGameSession(r.db.QueryRow(ctx, applyTransitionQuery,
		t.SessionID,
		t.PlayerID,
		t.ExpectedSceneID,
		t.NextSceneID,
		string(t.Status),
		t.Journal.Values(),
		t.CompletedAt,
	))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			r.logger.Warn("Session transition did not apply: row changed or not owned", logFields...)
			return nil, err
		}
		r.logger.Error("Failed to apply session transition", append(logFields, zap.Error(err))...)
		return nil, fmt.Errorf("failed to update game session %s: %w", t.SessionID, err)
	}
	r.logger.Info("Session transition applied", logFields...)
	return session, nil
}

func (r *pgGameSessionRepository) ReplaceItems(ctx context.Context, sessionID, playerID uuid.UUID, expected, items models.KeywordSet) (*models.GameSession, error) {
	logFields := []zap.Field{
		zap.String("sessionID", sessionID.String()),
		zap.String("playerID", playerID.String()),
		zap.Strings("items", items.Values()),
	}
	session, err := scanGameSession(r.db.QueryRow(ctx, replaceItemsQuery, sessionID, playerID, expected.Values(), items.Values()))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			r.logger.Warn("Item update did not apply", logFields...)
			return nil, err
		}
		r.logger.Error("Failed to update session items", append(logFields, zap.Error(err))...)
		return nil, fmt.Errorf("failed to update items of game session %s: %w", sessionID, err)
	}
	r.logger.Debug("Session items updated", logFields...)
	return session, nil
}

func (r *pgGameSessionRepository) MarkAbandoned(ctx context.Context, sessionID, playerID uuid.UUID, at time.Time) (*models.GameSession, error) {
	logFields := []zap.Field{
		zap.String("sessionID", sessionID.String()),
		zap.String("playerID", playerID.String()),
	}
	session, err := scanGameSession(r.db.QueryRow(ctx, markAbandonedQuery, sessionID, playerID, at))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			r.logger.Warn("Abandon did not apply: session missing, not owned or not active", logFields...)
			return nil, err
		}
		r.logger.Error("Failed to abandon game session", append(logFields, zap.Error(err))...)
		return nil, fmt.Errorf("failed to abandon game session %s: %w", sessionID, err)
	}
	r.logger.Info("Game session abandoned", logFields...)
	return session, nil
}

// scanGameSession scans one row selected with gameSessionFields.
// Returns models.ErrNotFound on pgx.ErrNoRows.
func scanGameSession(row pgx.Row) (*models.GameSession, error) {
	var (
		s       models.GameSession
		status  string
		journal []string
		items   []string
	)
	err := row.Scan(
		&s.ID,
		&s.PlayerID,
		&s.StoryID,
		&s.CurrentSceneID,
		&status,
		&journal,
		&items,
		&s.StartedAt,
		&s.CompletedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, wrapNotFound(err)
	}
	s.Status = models.SessionStatus(status)
	if !s.Status.IsValid() {
		return nil, fmt.Errorf("game session %s has unknown status %q", s.ID, status)
	}
	s.Journal = models.NewKeywordSet(journal...)
	s.Items = models.NewKeywordSet(items...)
	return &s, nil
}
