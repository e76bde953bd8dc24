package riot

type AccountResponse struct {
	Puuid    string `json:"puuid"`
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
}

type LeagueEntryResponse struct {
	Puuid        string      `json:"puuid"`
	LeagueID     string      `json:"leagueId"`
	SummonerID   string      `json:"summonerId"`
	QueueType    string      `json:"queueType"`
	Tier         string      `json:"tier"`
	Rank         string      `json:"rank"`
	LeaguePoints int         `json:"leaguePoints"`
	Wins         int         `json:"wins"`
	Losses       int         `json:"losses"`
	HotStreak    bool        `json:"hotStreak"`
	Veteran      bool        `json:"veteran"`
	FreshBlood   bool        `json:"freshBlood"`
	Inactive     bool        `json:"inactive"`
	MiniSeries   *MiniSeries `json:"miniSeries,omitempty"`
}

type MiniSeries struct {
	Target   int    `json:"target"`
	Wins     int    `json:"wins"`
	Losses   int    `json:"losses"`
	Progress string `json:"progress"`
}

type MatchResponse struct {
	Metadata MatchMetadata `json:"metadata"`
	Info     MatchInfo     `json:"info"`
}

type MatchMetadata struct {
	DataVersion  string   `json:"data_version"`
	MatchID      string   `json:"match_id"`
	Participants []string `json:"participants"`
}

type MatchInfo struct {
	EndOfGameResult string             `json:"endOfGameResult"`
	GameDatetime    int64              `json:"game_datetime"`
	GameLength      float64            `json:"game_length"`
	GameVersion     string             `json:"game_version"`
	QueueID         int                `json:"queue_id"`
	TftGameType     string             `json:"tft_game_type"`
	TftSetNumber    int                `json:"tft_set_number"`
	Participants    []MatchParticipant `json:"participants"`
}

type MatchParticipant struct {
	Puuid                string         `json:"puuid"`
	RiotIDGameName       string         `json:"riotIdGameName"`
	RiotIDTagline        string         `json:"riotIdTagline"`
	GoldLeft             int            `json:"gold_left"`
	LastRound            int            `json:"last_round"`
	Level                int            `json:"level"`
	Placement            int            `json:"placement"`
	PlayersEliminated    int            `json:"players_eliminated"`
	TimeEliminated       float64        `json:"time_eliminated"`
	TotalDamageToPlayers int            `json:"total_damage_to_players"`
	Win                  bool           `json:"win"`
	Traits               []MatchTrait   `json:"traits"`
	Units                []MatchUnit    `json:"units"`
	Missions             map[string]int `json:"missions"`
}

type MatchTrait struct {
	Name        string `json:"name"`
	NumUnits    int    `json:"num_units"`
	Style       int    `json:"style"`
	TierCurrent int    `json:"tier_current"`
	TierTotal   int    `json:"tier_total"`
}

type MatchUnit struct {
	CharacterID string   `json:"character_id"`
	ItemNames   []string `json:"itemNames"`
	Name        string   `json:"name"`
	Rarity      int      `json:"rarity"`
	Tier        int      `json:"tier"`
}
