package service

import (
	"github.com/rs/zerolog"
	"tft-rivals/internal/domain"
)

// Activation thresholds over the recent-match window. First place activates
// on any win; the comparative badges need repeated bests; top four rewards
// consistency.
var badgeRequiredCounts = map[domain.BadgeType]int{
	domain.BadgeBestDeckValue:    5,
	domain.BadgeMostDamage:       5,
	domain.BadgeMostEliminations: 5,
	domain.BadgeFirstPlace:       1,
	domain.BadgeTopFour:          10,
}

// Unit rarity to shop cost. Riot's rarity codes skip values.
var rarityCost = map[int]int{0: 1, 1: 2, 2: 3, 4: 4, 6: 5}

// BadgeService derives achievement badges from an already-fetched match
// window. Compute is a pure function: no external calls, deterministic for
// a fixed input.
type BadgeService struct {
	logger zerolog.Logger
}

func NewBadgeService(logger zerolog.Logger) *BadgeService {
	return &BadgeService{logger: logger}
}

// Compute returns every badge type in a fixed order, active or not. An
// empty window yields all five with zero counts.
func (s *BadgeService) Compute(puuid string, matches []domain.MatchSummary) []domain.Badge {
	counts := make(map[domain.BadgeType]int, len(badgeRequiredCounts))
	for _, match := range matches {
		target, others, ok := splitParticipants(puuid, match)
		if !ok {
			continue
		}

		if bestAmong(target, others, deckValue) {
			counts[domain.BadgeBestDeckValue]++
		}
		if bestAmong(target, others, func(p domain.Participant) int { return p.TotalDamageToPlayers }) {
			counts[domain.BadgeMostDamage]++
		}
		if bestAmong(target, others, func(p domain.Participant) int { return p.PlayersEliminated }) {
			counts[domain.BadgeMostEliminations]++
		}
		if target.Placement == 1 {
			counts[domain.BadgeFirstPlace]++
		}
		if target.Placement <= 4 {
			counts[domain.BadgeTopFour]++
		}
	}

	badges := make([]domain.Badge, 0, len(badgeRequiredCounts))
	for _, badgeType := range domain.AllBadgeTypes() {
		required := badgeRequiredCounts[badgeType]
		count := counts[badgeType]
		badges = append(badges, domain.Badge{
			BadgeType:     badgeType,
			CurrentCount:  count,
			RequiredCount: required,
			IsActive:      count >= required,
		})
	}
	return badges
}

func splitParticipants(puuid string, match domain.MatchSummary) (domain.Participant, []domain.Participant, bool) {
	var target domain.Participant
	found := false
	others := make([]domain.Participant, 0, len(match.Participants))
	for _, p := range match.Participants {
		if p.Puuid == puuid {
			target = p
			found = true
		} else {
			others = append(others, p)
		}
	}
	return target, others, found
}

// bestAmong reports whether the target's metric is at least every other
// participant's. A shared maximum counts for everyone holding it, keeping
// the result independent of participant order.
func bestAmong(target domain.Participant, others []domain.Participant, metric func(domain.Participant) int) bool {
	own := metric(target)
	for _, other := range others {
		if metric(other) > own {
			return false
		}
	}
	return true
}

// deckValue scores a final board: shop cost times 3^(star level - 1) per
// unit, so a two-star four-cost counts 12.
func deckValue(p domain.Participant) int {
	total := 0
	for _, unit := range p.Units {
		cost := rarityCost[unit.Rarity]
		value := cost
		for i := 1; i < unit.Tier; i++ {
			value *= 3
		}
		total += value
	}
	return total
}
