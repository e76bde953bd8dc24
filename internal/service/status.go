package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"tft-rivals/internal/domain"
	"tft-rivals/internal/riot"
)

type LeagueStore interface {
	GetByPuuid(ctx context.Context, puuid string) ([]domain.LeagueStatus, error)
	ReplaceForPuuid(ctx context.Context, puuid string, entries []domain.LeagueStatus) error
}

// StatusService fetches every queue standing for an account in one provider
// call and fans it out locally by queue type.
type StatusService struct {
	client RiotClient
	store  LeagueStore
	logger zerolog.Logger
}

func NewStatusService(client RiotClient, store LeagueStore, logger zerolog.Logger) *StatusService {
	return &StatusService{client: client, store: store, logger: logger}
}

// FetchAll returns 0 to 3 standings. Queues the player is unranked in are
// simply absent; entries without a tier are discarded as no-data, never
// padded with zeroes.
func (s *StatusService) FetchAll(ctx context.Context, puuid string) ([]domain.LeagueStatus, error) {
	entries, err := s.client.GetLeagueEntries(ctx, puuid)
	if err != nil {
		return nil, fmt.Errorf("fetch league entries for %s: %w", puuid, err)
	}

	statuses := partitionEntries(puuid, entries)

	if err := s.store.ReplaceForPuuid(ctx, puuid, statuses); err != nil {
		s.logger.Warn().Err(err).Str("puuid", puuid).Msg("failed to cache league entries")
	}

	s.logger.Info().Str("puuid", puuid).Int("queues", len(statuses)).Msg("league status fetched")
	return statuses, nil
}

func partitionEntries(puuid string, entries []riot.LeagueEntryResponse) []domain.LeagueStatus {
	supported := make(map[domain.QueueType]bool, 3)
	for _, q := range domain.AllQueueTypes() {
		supported[q] = true
	}

	var statuses []domain.LeagueStatus
	for _, entry := range entries {
		if entry.Tier == "" {
			continue
		}
		queue := domain.QueueType(entry.QueueType)
		if !supported[queue] {
			continue
		}
		statuses = append(statuses, domain.LeagueStatus{
			Puuid:        puuid,
			QueueType:    queue,
			Tier:         entry.Tier,
			Rank:         entry.Rank,
			LeaguePoints: entry.LeaguePoints,
			Wins:         entry.Wins,
			Losses:       entry.Losses,
			HotStreak:    entry.HotStreak,
		})
	}
	return statuses
}

// StatusFor picks one queue's standing out of a fetched set. The second
// return is false when the player is unranked in that queue.
func StatusFor(statuses []domain.LeagueStatus, queue domain.QueueType) (domain.LeagueStatus, bool) {
	for _, status := range statuses {
		if status.QueueType == queue {
			return status, true
		}
	}
	return domain.LeagueStatus{}, false
}
