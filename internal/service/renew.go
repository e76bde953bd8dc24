package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"tft-rivals/internal/constants"
	"tft-rivals/internal/domain"
)

// RenewService is the combined "refresh everything for this player"
// operation: resolve the account, fetch league status and match history
// concurrently, then derive badges from whatever matches arrived. Sub-fetch
// failures become component errors in a partial result; only a failed
// account resolution is fatal.
type RenewService struct {
	accounts *AccountService
	status   *StatusService
	matches  *MatchService
	badges   *BadgeService
	logger   zerolog.Logger
}

func NewRenewService(
	accounts *AccountService,
	status *StatusService,
	matches *MatchService,
	badges *BadgeService,
	logger zerolog.Logger,
) *RenewService {
	return &RenewService{accounts: accounts, status: status, matches: matches, badges: badges, logger: logger}
}

func (s *RenewService) Renew(ctx context.Context, gameName, tagLine string) (*domain.RenewResult, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	account, err := s.accounts.Resolve(ctx, gameName, tagLine)
	if err != nil {
		return nil, err
	}

	result := &domain.RenewResult{Account: account}

	var mu sync.Mutex
	addErr := func(component string, err error) {
		mu.Lock()
		result.Errors = append(result.Errors, domain.ComponentError{
			Component: component,
			Message:   err.Error(),
		})
		mu.Unlock()
	}

	// Status and matches are independent; badges wait on matches only.
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		statuses, err := s.status.FetchAll(ctx, account.Puuid)
		if err != nil {
			s.logger.Warn().Err(err).Str("puuid", account.Puuid).Msg("status fetch failed during renew")
			addErr("status", err)
			return
		}
		mu.Lock()
		result.Status = statuses
		mu.Unlock()
	}()

	go func() {
		defer wg.Done()
		matches, compErrs, err := s.matches.FetchRecent(ctx, account.Puuid, constants.RecentMatchesLimit)
		if err != nil {
			s.logger.Warn().Err(err).Str("puuid", account.Puuid).Msg("match fetch failed during renew")
			addErr("matches", err)
			return
		}
		mu.Lock()
		result.Matches = matches
		result.Errors = append(result.Errors, compErrs...)
		mu.Unlock()
	}()

	wg.Wait()

	result.Badges = s.badges.Compute(account.Puuid, result.Matches)

	renewedAt := time.Now()
	if err := s.accounts.MarkRenewed(ctx, account.Puuid, renewedAt); err != nil {
		s.logger.Warn().Err(err).Str("puuid", account.Puuid).Msg("failed to stamp renewal time")
		addErr("account", err)
	} else {
		account.LastResolvedAt = &renewedAt
	}
	result.RenewedAt = renewedAt

	s.logger.Info().Str("puuid", account.Puuid).
		Int("status", len(result.Status)).
		Int("matches", len(result.Matches)).
		Int("errors", len(result.Errors)).
		Msg("renew completed")
	return result, nil
}
