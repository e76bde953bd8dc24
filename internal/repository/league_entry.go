package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
	"tft-rivals/internal/domain"
)

type LeagueEntryRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewLeagueEntryRepository(db *sql.DB, logger zerolog.Logger) *LeagueEntryRepository {
	return &LeagueEntryRepository{db: db, logger: logger}
}

func (r *LeagueEntryRepository) GetByPuuid(ctx context.Context, puuid string) ([]domain.LeagueStatus, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT puuid, queue_type, tier, rank, league_points, wins, losses, hot_streak
		FROM league_entries WHERE puuid = ? ORDER BY queue_type`, puuid)
	if err != nil {
		return nil, fmt.Errorf("query league entries for %s: %w", puuid, err)
	}
	defer rows.Close()

	var entries []domain.LeagueStatus
	for rows.Next() {
		var entry domain.LeagueStatus
		if err := rows.Scan(&entry.Puuid, &entry.QueueType, &entry.Tier, &entry.Rank,
			&entry.LeaguePoints, &entry.Wins, &entry.Losses, &entry.HotStreak); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// ReplaceForPuuid swaps the cached standings for an account in one
// transaction. A queue the player dropped out of disappears rather than
// lingering as stale data.
func (r *LeagueEntryRepository) ReplaceForPuuid(ctx context.Context, puuid string, entries []domain.LeagueStatus) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM league_entries WHERE puuid = ?", puuid); err != nil {
		return fmt.Errorf("clear league entries for %s: %w", puuid, err)
	}

	now := time.Now()
	for _, entry := range entries {
		id, err := gonanoid.New()
		if err != nil {
			return fmt.Errorf("generate entry id: %w", err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO league_entries (id, puuid, queue_type, tier, rank, league_points, wins, losses, hot_streak, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, entry.Puuid, entry.QueueType, entry.Tier, entry.Rank,
			entry.LeaguePoints, entry.Wins, entry.Losses, entry.HotStreak, now)
		if err != nil {
			return fmt.Errorf("insert league entry %s/%s: %w", entry.Puuid, entry.QueueType, err)
		}
	}

	return tx.Commit()
}
