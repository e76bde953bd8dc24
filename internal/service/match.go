package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"tft-rivals/internal/constants"
	"tft-rivals/internal/domain"
	"tft-rivals/internal/riot"
)

// RateBudget is the feasibility check the match batch needs before issuing
// any call; satisfied by ratelimit.Guard.
type RateBudget interface {
	Budget(n int) error
}

type MatchStore interface {
	FilterKnown(ctx context.Context, ids []string) (map[string]bool, error)
	GetByIDs(ctx context.Context, puuid string, ids []string) ([]domain.MatchSummary, error)
	GetRecentByPuuid(ctx context.Context, puuid string, limit int) ([]domain.MatchSummary, error)
	UpsertBatch(ctx context.Context, matches []domain.MatchSummary) error
}

// MatchService resolves an account's recent match ids and fetches each
// match's detail through a bounded worker pool. The whole batch is budgeted
// against the rate guard before the first call goes out.
type MatchService struct {
	client RiotClient
	store  MatchStore
	guard  RateBudget
	logger zerolog.Logger
}

func NewMatchService(client RiotClient, store MatchStore, guard RateBudget, logger zerolog.Logger) *MatchService {
	return &MatchService{client: client, store: store, guard: guard, logger: logger}
}

// FetchRecent returns up to limit matches, most recent first. Individual
// detail-fetch failures drop that match from the result and are reported in
// the returned component errors; the error return is reserved for failures
// that void the whole batch (budget, id list).
func (s *MatchService) FetchRecent(ctx context.Context, puuid string, limit int) ([]domain.MatchSummary, []domain.ComponentError, error) {
	if limit <= 0 || limit > constants.RecentMatchesLimit {
		limit = constants.RecentMatchesLimit
	}

	// One id-list call plus up to limit detail calls. Failing here is
	// cheaper than stopping half way through an inconsistent batch.
	if err := s.guard.Budget(limit + 1); err != nil {
		return nil, nil, fmt.Errorf("match batch for %s would exceed rate budget: %w", puuid, err)
	}

	ids, err := s.client.GetMatchIDs(ctx, puuid, limit)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch match ids for %s: %w", puuid, err)
	}
	if len(ids) > limit {
		ids = ids[:limit]
	}

	known, err := s.store.FilterKnown(ctx, ids)
	if err != nil {
		s.logger.Warn().Err(err).Str("puuid", puuid).Msg("match cache lookup failed, fetching all details")
		known = map[string]bool{}
	}

	var knownIDs, newIDs []string
	for _, id := range ids {
		if known[id] {
			knownIDs = append(knownIDs, id)
		} else {
			newIDs = append(newIDs, id)
		}
	}

	summaries, compErrs := s.fetchDetails(ctx, puuid, newIDs)

	cached, err := s.store.GetByIDs(ctx, puuid, knownIDs)
	if err != nil {
		s.logger.Warn().Err(err).Str("puuid", puuid).Msg("failed to load cached matches")
		compErrs = append(compErrs, domain.ComponentError{
			Component: "match-cache",
			Message:   err.Error(),
		})
	}
	summaries = append(summaries, cached...)

	// Detail fetches complete in arbitrary order; the contract is
	// reverse-chronological regardless.
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].GameCreation > summaries[j].GameCreation
	})

	s.logger.Info().Str("puuid", puuid).
		Int("total", len(summaries)).
		Int("fetched", len(newIDs)).
		Int("cached", len(knownIDs)).
		Int("failed", len(compErrs)).
		Msg("recent matches assembled")
	return summaries, compErrs, nil
}

func (s *MatchService) fetchDetails(ctx context.Context, puuid string, ids []string) ([]domain.MatchSummary, []domain.ComponentError) {
	if len(ids) == 0 {
		return nil, nil
	}

	var mu sync.Mutex
	var summaries []domain.MatchSummary
	var compErrs []domain.ComponentError

	// Bounded pool: enough parallelism to hide latency without bursting the
	// 10-second window in one instant.
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(constants.MatchDetailConcurrency)

	for _, id := range ids {
		g.Go(func() error {
			resp, err := s.client.GetMatch(gCtx, id)
			if err != nil {
				s.logger.Warn().Err(err).Str("match_id", id).Msg("match detail fetch failed, dropping match")
				mu.Lock()
				compErrs = append(compErrs, domain.ComponentError{
					Component: "match:" + id,
					Message:   err.Error(),
				})
				mu.Unlock()
				return nil
			}

			summary, err := summaryFromResponse(puuid, resp)
			if err != nil {
				s.logger.Warn().Err(err).Str("match_id", id).Msg("dropping unusable match")
				mu.Lock()
				compErrs = append(compErrs, domain.ComponentError{
					Component: "match:" + id,
					Message:   err.Error(),
				})
				mu.Unlock()
				return nil
			}

			mu.Lock()
			summaries = append(summaries, *summary)
			mu.Unlock()
			return nil
		})
	}
	// Workers only return nil; Wait is for completion.
	_ = g.Wait()

	if len(summaries) > 0 {
		if err := s.store.UpsertBatch(ctx, summaries); err != nil {
			s.logger.Warn().Err(err).Str("puuid", puuid).Msg("failed to cache fetched matches")
		}
	}
	return summaries, compErrs
}

func summaryFromResponse(puuid string, resp *riot.MatchResponse) (*domain.MatchSummary, error) {
	summary := &domain.MatchSummary{
		MatchID:           resp.Metadata.MatchID,
		GameCreation:      resp.Info.GameDatetime,
		GameLengthSeconds: resp.Info.GameLength,
		QueueType:         queueTypeOf(resp.Info),
		SetNumber:         resp.Info.TftSetNumber,
		Puuid:             puuid,
	}

	for _, p := range resp.Info.Participants {
		participant := domain.Participant{
			Puuid:                p.Puuid,
			GameName:             p.RiotIDGameName,
			TagLine:              p.RiotIDTagline,
			Placement:            p.Placement,
			Level:                p.Level,
			GoldLeft:             p.GoldLeft,
			LastRound:            p.LastRound,
			PlayersEliminated:    p.PlayersEliminated,
			TotalDamageToPlayers: p.TotalDamageToPlayers,
			TimeEliminated:       p.TimeEliminated,
			Win:                  p.Win,
			Units:                unitsOf(p.Units),
			Traits:               traitsOf(p.Traits),
		}
		summary.Participants = append(summary.Participants, participant)

		if p.Puuid == puuid {
			summary.Placement = participant.Placement
			summary.Level = participant.Level
			summary.Units = participant.Units
			summary.Traits = participant.Traits
		}
	}

	if summary.Placement == 0 {
		return nil, fmt.Errorf("account %s did not participate in match %s", puuid, resp.Metadata.MatchID)
	}
	return summary, nil
}

func unitsOf(units []riot.MatchUnit) []domain.Unit {
	out := make([]domain.Unit, 0, len(units))
	for _, u := range units {
		out = append(out, domain.Unit{
			CharacterID: u.CharacterID,
			Tier:        u.Tier,
			Rarity:      u.Rarity,
			ItemNames:   u.ItemNames,
		})
	}
	return out
}

func traitsOf(traits []riot.MatchTrait) []domain.Trait {
	out := make([]domain.Trait, 0, len(traits))
	for _, t := range traits {
		out = append(out, domain.Trait{
			Name:        t.Name,
			NumUnits:    t.NumUnits,
			Style:       t.Style,
			TierCurrent: t.TierCurrent,
			TierTotal:   t.TierTotal,
		})
	}
	return out
}

func queueTypeOf(info riot.MatchInfo) domain.QueueType {
	switch info.QueueID {
	case 1130, 1131:
		return domain.QueueTurbo
	case 1160:
		return domain.QueueDoubleUp
	default:
		return domain.QueueRanked
	}
}
