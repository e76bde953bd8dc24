package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tft-rivals/internal/domain"
	"tft-rivals/internal/riot"
)

func TestFetchAllPartitionsByQueue(t *testing.T) {
	client := &fakeRiot{entries: []riot.LeagueEntryResponse{
		{
			Puuid:        "puuid-1",
			QueueType:    "RANKED_TFT",
			Tier:         "DIAMOND",
			Rank:         "II",
			LeaguePoints: 75,
			Wins:         40,
			Losses:       32,
			HotStreak:    true,
		},
		{
			Puuid:        "puuid-1",
			QueueType:    "RANKED_TFT_DOUBLE_UP",
			Tier:         "GOLD",
			Rank:         "I",
			LeaguePoints: 12,
			Wins:         10,
			Losses:       9,
		},
	}}
	store := newFakeLeagueStore()
	svc := NewStatusService(client, store, zerolog.Nop())

	statuses, err := svc.FetchAll(context.Background(), "puuid-1")
	require.NoError(t, err)
	require.Len(t, statuses, 2, "two ranked queues, two entries, nothing padded")

	ranked, ok := StatusFor(statuses, domain.QueueRanked)
	require.True(t, ok)
	assert.Equal(t, "DIAMOND", ranked.Tier)
	assert.Equal(t, "II", ranked.Rank)
	assert.Equal(t, 75, ranked.LeaguePoints)
	assert.True(t, ranked.HotStreak)

	_, ok = StatusFor(statuses, domain.QueueTurbo)
	assert.False(t, ok, "hyper roll has no entry and must read as no-data")
}

func TestFetchAllDropsTierlessEntries(t *testing.T) {
	client := &fakeRiot{entries: []riot.LeagueEntryResponse{
		{Puuid: "puuid-1", QueueType: "RANKED_TFT", Tier: ""},
	}}
	svc := NewStatusService(client, newFakeLeagueStore(), zerolog.Nop())

	statuses, err := svc.FetchAll(context.Background(), "puuid-1")
	require.NoError(t, err)
	assert.Empty(t, statuses, "an entry without a tier is unranked, not zero-filled")
}

func TestFetchAllIgnoresUnknownQueues(t *testing.T) {
	client := &fakeRiot{entries: []riot.LeagueEntryResponse{
		{Puuid: "puuid-1", QueueType: "RANKED_SOLO_5x5", Tier: "GOLD", Rank: "IV"},
		{Puuid: "puuid-1", QueueType: "RANKED_TFT_TURBO", Tier: "ORANGE", Rank: ""},
	}}
	svc := NewStatusService(client, newFakeLeagueStore(), zerolog.Nop())

	statuses, err := svc.FetchAll(context.Background(), "puuid-1")
	require.NoError(t, err)
	require.Len(t, statuses, 1)
	assert.Equal(t, domain.QueueTurbo, statuses[0].QueueType)
}

func TestFetchAllEmptyResponse(t *testing.T) {
	client := &fakeRiot{}
	svc := NewStatusService(client, newFakeLeagueStore(), zerolog.Nop())

	statuses, err := svc.FetchAll(context.Background(), "puuid-1")
	require.NoError(t, err, "an unranked player is a normal empty result")
	assert.Empty(t, statuses)
}

func TestFetchAllUpstreamError(t *testing.T) {
	client := &fakeRiot{entriesErr: riot.ErrUpstream}
	svc := NewStatusService(client, newFakeLeagueStore(), zerolog.Nop())

	_, err := svc.FetchAll(context.Background(), "puuid-1")
	assert.ErrorIs(t, err, riot.ErrUpstream)
}

func TestFetchAllCachesResult(t *testing.T) {
	client := &fakeRiot{entries: []riot.LeagueEntryResponse{
		{Puuid: "puuid-1", QueueType: "RANKED_TFT", Tier: "MASTER", LeaguePoints: 210},
	}}
	store := newFakeLeagueStore()
	svc := NewStatusService(client, store, zerolog.Nop())

	_, err := svc.FetchAll(context.Background(), "puuid-1")
	require.NoError(t, err)

	cached, err := store.GetByPuuid(context.Background(), "puuid-1")
	require.NoError(t, err)
	require.Len(t, cached, 1)
	assert.Equal(t, "MASTER", cached[0].Tier)
	assert.Empty(t, cached[0].Rank, "apex tiers carry no division")
}
