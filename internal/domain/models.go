package domain

import (
	"time"
)

// Account maps a Riot display identity to its stable puuid. The puuid never
// changes; gameName#tagLine can be renamed at any time, so it is only an
// index, never a key. LastResolvedAt == nil means the account was freshly
// discovered and its dependent data has not been populated yet.
type Account struct {
	Puuid          string     `json:"puuid"`
	GameName       string     `json:"gameName"`
	TagLine        string     `json:"tagLine"`
	LastResolvedAt *time.Time `json:"lastResolvedAt"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

type QueueType string

const (
	QueueRanked   QueueType = "RANKED_TFT"
	QueueDoubleUp QueueType = "RANKED_TFT_DOUBLE_UP"
	QueueTurbo    QueueType = "RANKED_TFT_TURBO"
)

func AllQueueTypes() []QueueType {
	return []QueueType{QueueRanked, QueueDoubleUp, QueueTurbo}
}

// LeagueStatus is one queue's ranked standing. A player with no entry for a
// queue is simply unranked there; such queues have no LeagueStatus at all.
type LeagueStatus struct {
	Puuid        string    `json:"puuid"`
	QueueType    QueueType `json:"queueType"`
	Tier         string    `json:"tier"`
	Rank         string    `json:"rank,omitempty"` // absent at apex tiers
	LeaguePoints int       `json:"leaguePoints"`
	Wins         int       `json:"wins"`
	Losses       int       `json:"losses"`
	HotStreak    bool      `json:"hotStreak"`
}

type Unit struct {
	CharacterID string   `json:"characterId"`
	Tier        int      `json:"tier"` // star level, 1-3
	Rarity      int      `json:"rarity"`
	ItemNames   []string `json:"itemNames"`
}

type Trait struct {
	Name        string `json:"name"`
	NumUnits    int    `json:"numUnits"`
	Style       int    `json:"style"`
	TierCurrent int    `json:"tierCurrent"`
	TierTotal   int    `json:"tierTotal"`
}

// Participant is one of the eight players in a match, in the same shape the
// viewed account gets plus identity fields.
type Participant struct {
	Puuid                string  `json:"puuid"`
	GameName             string  `json:"gameName"`
	TagLine              string  `json:"tagLine"`
	Placement            int     `json:"placement"`
	Level                int     `json:"level"`
	GoldLeft             int     `json:"goldLeft"`
	LastRound            int     `json:"lastRound"`
	PlayersEliminated    int     `json:"playersEliminated"`
	TotalDamageToPlayers int     `json:"totalDamageToPlayers"`
	TimeEliminated       float64 `json:"timeEliminated"`
	Win                  bool    `json:"win"`
	Units                []Unit  `json:"units"`
	Traits               []Trait `json:"traits"`
}

// MatchSummary is the normalized view of one match for one account. Display
// names and descriptions are applied from the reference data cache at
// presentation time, never stored here.
type MatchSummary struct {
	MatchID           string        `json:"matchId"`
	GameCreation      int64         `json:"gameCreation"` // epoch millis
	GameLengthSeconds float64       `json:"gameLengthSeconds"`
	QueueType         QueueType     `json:"queueType"`
	SetNumber         int           `json:"setNumber"`
	Puuid             string        `json:"puuid"`
	Placement         int           `json:"placement"`
	Level             int           `json:"level"`
	Units             []Unit        `json:"units"`
	Traits            []Trait       `json:"traits"`
	Participants      []Participant `json:"participants"`
}

type BadgeType string

const (
	BadgeBestDeckValue    BadgeType = "BEST_DECK_VALUE"
	BadgeMostDamage       BadgeType = "MOST_DAMAGE"
	BadgeMostEliminations BadgeType = "MOST_ELIMINATIONS"
	BadgeFirstPlace       BadgeType = "FIRST_PLACE"
	BadgeTopFour          BadgeType = "TOP_FOUR"
)

func AllBadgeTypes() []BadgeType {
	return []BadgeType{
		BadgeBestDeckValue,
		BadgeMostDamage,
		BadgeMostEliminations,
		BadgeFirstPlace,
		BadgeTopFour,
	}
}

// Badge is derived from a window of recent matches and has no identity
// beyond the request that computed it.
type Badge struct {
	BadgeType     BadgeType `json:"badgeType"`
	CurrentCount  int       `json:"currentCount"`
	RequiredCount int       `json:"requiredCount"`
	IsActive      bool      `json:"isActive"`
}

// ComponentError records one failed sub-fetch inside a combined operation.
type ComponentError struct {
	Component string `json:"component"`
	Message   string `json:"message"`
}

// RenewResult is the combined refresh outcome. Any sub-fetch may have
// failed; callers render whatever succeeded and show Errors for the rest.
type RenewResult struct {
	Account   *Account         `json:"account"`
	Status    []LeagueStatus   `json:"status"`
	Matches   []MatchSummary   `json:"matches"`
	Badges    []Badge          `json:"badges"`
	Errors    []ComponentError `json:"errors"`
	RenewedAt time.Time        `json:"renewedAt"`
}
