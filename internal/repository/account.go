package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"tft-rivals/internal/domain"
)

// ErrNoRecord means the local cache has no row; callers fall through to the
// external provider.
var ErrNoRecord = errors.New("no local record")

type AccountRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewAccountRepository(db *sql.DB, logger zerolog.Logger) *AccountRepository {
	return &AccountRepository{db: db, logger: logger}
}

const accountColumns = "puuid, game_name, tag_line, last_resolved_at, created_at, updated_at"

func (r *AccountRepository) GetByRiotID(ctx context.Context, gameName, tagLine string) (*domain.Account, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+accountColumns+" FROM accounts WHERE game_name = ? AND tag_line = ?",
		gameName, tagLine)
	return scanAccount(row)
}

func (r *AccountRepository) GetByPuuid(ctx context.Context, puuid string) (*domain.Account, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+accountColumns+" FROM accounts WHERE puuid = ?", puuid)
	return scanAccount(row)
}

// Upsert inserts a freshly resolved account or updates the display identity
// of a known puuid (players rename; the puuid is the only stable key).
// last_resolved_at is preserved on update and NULL on first insert.
func (r *AccountRepository) Upsert(ctx context.Context, account *domain.Account) error {
	now := time.Now()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO accounts (puuid, game_name, tag_line, last_resolved_at, created_at, updated_at)
		VALUES (?, ?, ?, NULL, ?, ?)
		ON CONFLICT (puuid) DO UPDATE SET
			game_name = excluded.game_name,
			tag_line = excluded.tag_line,
			updated_at = excluded.updated_at`,
		account.Puuid, account.GameName, account.TagLine, now, now)
	if err != nil {
		return fmt.Errorf("upsert account %s: %w", account.Puuid, err)
	}
	return nil
}

func (r *AccountRepository) SetLastResolvedAt(ctx context.Context, puuid string, at time.Time) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE accounts SET last_resolved_at = ?, updated_at = ? WHERE puuid = ?",
		at, time.Now(), puuid)
	if err != nil {
		return fmt.Errorf("set last resolved at for %s: %w", puuid, err)
	}
	return nil
}

func scanAccount(row *sql.Row) (*domain.Account, error) {
	var account domain.Account
	var lastResolvedAt sql.NullTime
	err := row.Scan(&account.Puuid, &account.GameName, &account.TagLine,
		&lastResolvedAt, &account.CreatedAt, &account.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoRecord
	}
	if err != nil {
		return nil, err
	}
	if lastResolvedAt.Valid {
		account.LastResolvedAt = &lastResolvedAt.Time
	}
	return &account, nil
}
