package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"tft-rivals/internal/domain"
)

// MatchRepository caches fetched match details so renewing one account does
// not re-fetch matches another participant already brought in. Participant
// compositions are stored as a JSON payload, one row per match.
type MatchRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewMatchRepository(db *sql.DB, logger zerolog.Logger) *MatchRepository {
	return &MatchRepository{db: db, logger: logger}
}

// FilterKnown returns the subset of ids already cached.
func (r *MatchRepository) FilterKnown(ctx context.Context, ids []string) (map[string]bool, error) {
	known := make(map[string]bool)
	if len(ids) == 0 {
		return known, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT match_id FROM matches WHERE match_id IN ("+placeholders+")", args...)
	if err != nil {
		return nil, fmt.Errorf("filter known matches: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		known[id] = true
	}
	return known, rows.Err()
}

// GetByIDs loads cached matches as summaries for the given viewing puuid.
// Ids with no cached row or where the puuid did not participate are skipped.
func (r *MatchRepository) GetByIDs(ctx context.Context, puuid string, ids []string) ([]domain.MatchSummary, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT match_id, game_creation, game_length, queue_type, set_number, payload
		FROM matches WHERE match_id IN (`+placeholders+")", args...)
	if err != nil {
		return nil, fmt.Errorf("query matches: %w", err)
	}
	defer rows.Close()

	var summaries []domain.MatchSummary
	for rows.Next() {
		summary, err := scanMatch(rows, puuid)
		if err != nil {
			return nil, err
		}
		if summary != nil {
			summaries = append(summaries, *summary)
		}
	}
	return summaries, rows.Err()
}

// GetRecentByPuuid returns up to limit cached matches the puuid played in,
// most recent first.
func (r *MatchRepository) GetRecentByPuuid(ctx context.Context, puuid string, limit int) ([]domain.MatchSummary, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT m.match_id, m.game_creation, m.game_length, m.queue_type, m.set_number, m.payload
		FROM matches m
		JOIN match_participants mp ON mp.match_id = m.match_id
		WHERE mp.puuid = ?
		ORDER BY m.game_creation DESC
		LIMIT ?`, puuid, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent matches for %s: %w", puuid, err)
	}
	defer rows.Close()

	var summaries []domain.MatchSummary
	for rows.Next() {
		summary, err := scanMatch(rows, puuid)
		if err != nil {
			return nil, err
		}
		if summary != nil {
			summaries = append(summaries, *summary)
		}
	}
	return summaries, rows.Err()
}

// UpsertBatch stores match rows and their participant index in one
// transaction. Safe to call with matches other accounts already own.
func (r *MatchRepository) UpsertBatch(ctx context.Context, matches []domain.MatchSummary) error {
	if len(matches) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	for _, match := range matches {
		payload, err := json.Marshal(match.Participants)
		if err != nil {
			return fmt.Errorf("encode participants for %s: %w", match.MatchID, err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO matches (match_id, game_creation, game_length, queue_type, set_number, payload, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (match_id) DO NOTHING`,
			match.MatchID, match.GameCreation, match.GameLengthSeconds,
			match.QueueType, match.SetNumber, string(payload), now)
		if err != nil {
			return fmt.Errorf("insert match %s: %w", match.MatchID, err)
		}

		for _, p := range match.Participants {
			_, err = tx.ExecContext(ctx, `
				INSERT INTO match_participants (match_id, puuid) VALUES (?, ?)
				ON CONFLICT (match_id, puuid) DO NOTHING`,
				match.MatchID, p.Puuid)
			if err != nil {
				return fmt.Errorf("insert participant index for %s: %w", match.MatchID, err)
			}
		}
	}

	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMatch(row rowScanner, puuid string) (*domain.MatchSummary, error) {
	var summary domain.MatchSummary
	var payload string
	if err := row.Scan(&summary.MatchID, &summary.GameCreation, &summary.GameLengthSeconds,
		&summary.QueueType, &summary.SetNumber, &payload); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(payload), &summary.Participants); err != nil {
		return nil, fmt.Errorf("decode participants for %s: %w", summary.MatchID, err)
	}

	for _, p := range summary.Participants {
		if p.Puuid == puuid {
			summary.Puuid = p.Puuid
			summary.Placement = p.Placement
			summary.Level = p.Level
			summary.Units = p.Units
			summary.Traits = p.Traits
			return &summary, nil
		}
	}
	return nil, nil
}
