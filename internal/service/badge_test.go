package service

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tft-rivals/internal/domain"
)

func badgeMatch(placement, damage, eliminations int, units []domain.Unit) domain.MatchSummary {
	participants := make([]domain.Participant, 0, 8)
	for p := 1; p <= 8; p++ {
		participant := domain.Participant{
			Puuid:                "opponent",
			Placement:            p,
			PlayersEliminated:    0,
			TotalDamageToPlayers: 40,
			Units:                []domain.Unit{{CharacterID: "TFT14_Jinx", Rarity: 1, Tier: 2}},
		}
		if p == placement {
			participant.Puuid = viewer
			participant.PlayersEliminated = eliminations
			participant.TotalDamageToPlayers = damage
			participant.Units = units
		}
		participants = append(participants, participant)
	}
	return domain.MatchSummary{
		MatchID:      "KR_badge",
		Puuid:        viewer,
		Placement:    placement,
		Participants: participants,
	}
}

func badgeByType(t *testing.T, badges []domain.Badge, badgeType domain.BadgeType) domain.Badge {
	t.Helper()
	for _, b := range badges {
		if b.BadgeType == badgeType {
			return b
		}
	}
	t.Fatalf("badge %s missing from result", badgeType)
	return domain.Badge{}
}

func TestComputeEmptyWindow(t *testing.T) {
	svc := NewBadgeService(zerolog.Nop())

	badges := svc.Compute(viewer, nil)

	require.Len(t, badges, len(domain.AllBadgeTypes()))
	for _, badge := range badges {
		assert.Zero(t, badge.CurrentCount)
		assert.False(t, badge.IsActive)
		assert.Positive(t, badge.RequiredCount)
	}
}

func TestComputeDeterministic(t *testing.T) {
	svc := NewBadgeService(zerolog.Nop())
	window := []domain.MatchSummary{
		badgeMatch(1, 120, 3, []domain.Unit{{Rarity: 4, Tier: 2}}),
		badgeMatch(5, 30, 0, []domain.Unit{{Rarity: 0, Tier: 1}}),
		badgeMatch(2, 90, 2, []domain.Unit{{Rarity: 2, Tier: 3}}),
	}

	first := svc.Compute(viewer, window)
	second := svc.Compute(viewer, window)

	assert.Equal(t, first, second)
}

func TestComputeFirstPlace(t *testing.T) {
	svc := NewBadgeService(zerolog.Nop())

	var window []domain.MatchSummary
	for i := 0; i < 8; i++ {
		placement := 5
		if i < 3 {
			placement = 1
		}
		window = append(window, badgeMatch(placement, 50, 1, []domain.Unit{{Rarity: 1, Tier: 2}}))
	}

	badges := svc.Compute(viewer, window)

	firstPlace := badgeByType(t, badges, domain.BadgeFirstPlace)
	assert.Equal(t, 3, firstPlace.CurrentCount)
	assert.True(t, firstPlace.IsActive)
}

func TestComputeFirstPlaceInactiveWithoutWins(t *testing.T) {
	svc := NewBadgeService(zerolog.Nop())

	window := []domain.MatchSummary{
		badgeMatch(2, 50, 1, []domain.Unit{{Rarity: 1, Tier: 2}}),
		badgeMatch(8, 10, 0, []domain.Unit{{Rarity: 0, Tier: 1}}),
	}

	badges := svc.Compute(viewer, window)

	firstPlace := badgeByType(t, badges, domain.BadgeFirstPlace)
	assert.Zero(t, firstPlace.CurrentCount)
	assert.False(t, firstPlace.IsActive)
}

func TestComputeTopFourThreshold(t *testing.T) {
	svc := NewBadgeService(zerolog.Nop())

	var window []domain.MatchSummary
	for i := 0; i < 10; i++ {
		window = append(window, badgeMatch(4, 40, 0, []domain.Unit{{Rarity: 1, Tier: 1}}))
	}

	badges := svc.Compute(viewer, window)

	topFour := badgeByType(t, badges, domain.BadgeTopFour)
	assert.Equal(t, 10, topFour.CurrentCount)
	assert.True(t, topFour.IsActive)
}

func TestComputeComparativeBadges(t *testing.T) {
	svc := NewBadgeService(zerolog.Nop())

	// Viewer leads damage, eliminations, and board value in each match.
	var window []domain.MatchSummary
	for i := 0; i < 5; i++ {
		window = append(window, badgeMatch(2, 200, 4, []domain.Unit{{Rarity: 6, Tier: 3}}))
	}

	badges := svc.Compute(viewer, window)

	for _, badgeType := range []domain.BadgeType{
		domain.BadgeBestDeckValue,
		domain.BadgeMostDamage,
		domain.BadgeMostEliminations,
	} {
		badge := badgeByType(t, badges, badgeType)
		assert.Equal(t, 5, badge.CurrentCount, "%s", badgeType)
		assert.True(t, badge.IsActive, "%s", badgeType)
	}
}

func TestComputeSharedMaximumCounts(t *testing.T) {
	svc := NewBadgeService(zerolog.Nop())

	// Viewer ties the field on damage; a tie still counts as a best.
	window := []domain.MatchSummary{badgeMatch(3, 40, 0, []domain.Unit{{Rarity: 1, Tier: 1}})}

	badges := svc.Compute(viewer, window)

	mostDamage := badgeByType(t, badges, domain.BadgeMostDamage)
	assert.Equal(t, 1, mostDamage.CurrentCount)
}

func TestComputeSkipsMatchesWithoutViewer(t *testing.T) {
	svc := NewBadgeService(zerolog.Nop())

	match := badgeMatch(1, 100, 2, []domain.Unit{{Rarity: 1, Tier: 1}})
	for i := range match.Participants {
		match.Participants[i].Puuid = "someone-else"
	}

	badges := svc.Compute(viewer, []domain.MatchSummary{match})

	for _, badge := range badges {
		assert.Zero(t, badge.CurrentCount)
	}
}

func TestDeckValue(t *testing.T) {
	tests := []struct {
		name  string
		units []domain.Unit
		want  int
	}{
		{"empty board", nil, 0},
		{"one star one cost", []domain.Unit{{Rarity: 0, Tier: 1}}, 1},
		{"two star four cost", []domain.Unit{{Rarity: 4, Tier: 2}}, 12},
		{"three star five cost", []domain.Unit{{Rarity: 6, Tier: 3}}, 45},
		{
			"mixed board",
			[]domain.Unit{
				{Rarity: 1, Tier: 2}, // 2 * 3 = 6
				{Rarity: 2, Tier: 1}, // 3
			},
			9,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, deckValue(domain.Participant{Units: tt.units}))
		})
	}
}
