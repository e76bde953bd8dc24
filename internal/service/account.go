package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"tft-rivals/internal/domain"
	"tft-rivals/internal/repository"
	"tft-rivals/internal/riot"
)

// RiotClient is the slice of the Riot API client the services consume.
// Tests substitute fakes; the concrete client enforces the rate budget.
type RiotClient interface {
	GetAccountByRiotID(ctx context.Context, gameName, tagLine string) (*riot.AccountResponse, error)
	GetLeagueEntries(ctx context.Context, puuid string) ([]riot.LeagueEntryResponse, error)
	GetMatchIDs(ctx context.Context, puuid string, count int) ([]string, error)
	GetMatch(ctx context.Context, matchID string) (*riot.MatchResponse, error)
}

type AccountStore interface {
	GetByRiotID(ctx context.Context, gameName, tagLine string) (*domain.Account, error)
	GetByPuuid(ctx context.Context, puuid string) (*domain.Account, error)
	Upsert(ctx context.Context, account *domain.Account) error
	SetLastResolvedAt(ctx context.Context, puuid string, at time.Time) error
}

// AccountService resolves display identities to stable puuids, registering
// newly discovered accounts locally.
type AccountService struct {
	client RiotClient
	store  AccountStore
	logger zerolog.Logger
}

func NewAccountService(client RiotClient, store AccountStore, logger zerolog.Logger) *AccountService {
	return &AccountService{client: client, store: store, logger: logger}
}

// Resolve maps gameName#tagLine to an Account. A locally known identity is
// served without an external call. A freshly discovered account comes back
// with LastResolvedAt == nil, which tells the renew coordinator its
// dependent data has never been populated. riot.ErrNotFound passes through
// untouched; a missing player is a normal outcome.
func (s *AccountService) Resolve(ctx context.Context, gameName, tagLine string) (*domain.Account, error) {
	gameName = strings.TrimSpace(gameName)
	tagLine = strings.TrimSpace(tagLine)

	account, err := s.store.GetByRiotID(ctx, gameName, tagLine)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, repository.ErrNoRecord) {
		return nil, fmt.Errorf("lookup account %s#%s: %w", gameName, tagLine, err)
	}

	s.logger.Debug().Str("game_name", gameName).Str("tag_line", tagLine).
		Msg("account not known locally, resolving via provider")

	resp, err := s.client.GetAccountByRiotID(ctx, gameName, tagLine)
	if err != nil {
		if errors.Is(err, riot.ErrNotFound) {
			return nil, riot.ErrNotFound
		}
		return nil, fmt.Errorf("resolve account %s#%s: %w", gameName, tagLine, err)
	}

	account = &domain.Account{
		Puuid:    resp.Puuid,
		GameName: strings.TrimSpace(resp.GameName),
		TagLine:  strings.TrimSpace(resp.TagLine),
	}
	if err := s.store.Upsert(ctx, account); err != nil {
		return nil, err
	}

	s.logger.Info().Str("puuid", account.Puuid).
		Str("game_name", account.GameName).Str("tag_line", account.TagLine).
		Msg("account resolved")
	return account, nil
}

// MarkRenewed stamps the account after a successful renew cycle.
func (s *AccountService) MarkRenewed(ctx context.Context, puuid string, at time.Time) error {
	return s.store.SetLastResolvedAt(ctx, puuid, at)
}
