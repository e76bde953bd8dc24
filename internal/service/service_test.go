package service

import (
	"context"
	"sync"
	"time"

	"tft-rivals/internal/domain"
	"tft-rivals/internal/repository"
	"tft-rivals/internal/riot"
)

// fakeRiot scripts provider responses per endpoint.
type fakeRiot struct {
	mu sync.Mutex

	account    *riot.AccountResponse
	accountErr error

	entries    []riot.LeagueEntryResponse
	entriesErr error

	ids    []string
	idsErr error

	matches    map[string]*riot.MatchResponse
	matchErrs  map[string]error
	matchCalls int
}

func (f *fakeRiot) GetAccountByRiotID(ctx context.Context, gameName, tagLine string) (*riot.AccountResponse, error) {
	if f.accountErr != nil {
		return nil, f.accountErr
	}
	return f.account, nil
}

func (f *fakeRiot) GetLeagueEntries(ctx context.Context, puuid string) ([]riot.LeagueEntryResponse, error) {
	if f.entriesErr != nil {
		return nil, f.entriesErr
	}
	return f.entries, nil
}

func (f *fakeRiot) GetMatchIDs(ctx context.Context, puuid string, count int) ([]string, error) {
	if f.idsErr != nil {
		return nil, f.idsErr
	}
	if len(f.ids) > count {
		return f.ids[:count], nil
	}
	return f.ids, nil
}

func (f *fakeRiot) GetMatch(ctx context.Context, matchID string) (*riot.MatchResponse, error) {
	f.mu.Lock()
	f.matchCalls++
	f.mu.Unlock()
	if err, ok := f.matchErrs[matchID]; ok {
		return nil, err
	}
	if resp, ok := f.matches[matchID]; ok {
		return resp, nil
	}
	return nil, riot.ErrNotFound
}

type fakeAccountStore struct {
	mu       sync.Mutex
	byPuuid  map[string]*domain.Account
	byRiotID map[string]*domain.Account
}

func newFakeAccountStore() *fakeAccountStore {
	return &fakeAccountStore{
		byPuuid:  map[string]*domain.Account{},
		byRiotID: map[string]*domain.Account{},
	}
}

func riotIDKey(gameName, tagLine string) string { return gameName + "#" + tagLine }

func (s *fakeAccountStore) GetByRiotID(ctx context.Context, gameName, tagLine string) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if account, ok := s.byRiotID[riotIDKey(gameName, tagLine)]; ok {
		copied := *account
		return &copied, nil
	}
	return nil, repository.ErrNoRecord
}

func (s *fakeAccountStore) GetByPuuid(ctx context.Context, puuid string) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if account, ok := s.byPuuid[puuid]; ok {
		copied := *account
		return &copied, nil
	}
	return nil, repository.ErrNoRecord
}

func (s *fakeAccountStore) Upsert(ctx context.Context, account *domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *account
	if existing, ok := s.byPuuid[account.Puuid]; ok {
		copied.LastResolvedAt = existing.LastResolvedAt
	}
	s.byPuuid[account.Puuid] = &copied
	s.byRiotID[riotIDKey(account.GameName, account.TagLine)] = &copied
	return nil
}

func (s *fakeAccountStore) SetLastResolvedAt(ctx context.Context, puuid string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if account, ok := s.byPuuid[puuid]; ok {
		account.LastResolvedAt = &at
	}
	return nil
}

type fakeLeagueStore struct {
	mu      sync.Mutex
	byPuuid map[string][]domain.LeagueStatus
}

func newFakeLeagueStore() *fakeLeagueStore {
	return &fakeLeagueStore{byPuuid: map[string][]domain.LeagueStatus{}}
}

func (s *fakeLeagueStore) GetByPuuid(ctx context.Context, puuid string) ([]domain.LeagueStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.byPuuid[puuid], nil
}

func (s *fakeLeagueStore) ReplaceForPuuid(ctx context.Context, puuid string, entries []domain.LeagueStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byPuuid[puuid] = entries
	return nil
}

type fakeMatchStore struct {
	mu      sync.Mutex
	byID    map[string]domain.MatchSummary
	upserts int
}

func newFakeMatchStore() *fakeMatchStore {
	return &fakeMatchStore{byID: map[string]domain.MatchSummary{}}
}

func (s *fakeMatchStore) FilterKnown(ctx context.Context, ids []string) (map[string]bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	known := map[string]bool{}
	for _, id := range ids {
		if _, ok := s.byID[id]; ok {
			known[id] = true
		}
	}
	return known, nil
}

func (s *fakeMatchStore) GetByIDs(ctx context.Context, puuid string, ids []string) ([]domain.MatchSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.MatchSummary
	for _, id := range ids {
		if summary, ok := s.byID[id]; ok {
			out = append(out, summary)
		}
	}
	return out, nil
}

func (s *fakeMatchStore) GetRecentByPuuid(ctx context.Context, puuid string, limit int) ([]domain.MatchSummary, error) {
	return nil, nil
}

func (s *fakeMatchStore) UpsertBatch(ctx context.Context, matches []domain.MatchSummary) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.upserts++
	for _, match := range matches {
		s.byID[match.MatchID] = match
	}
	return nil
}

type fakeBudget struct {
	err error
}

func (b *fakeBudget) Budget(n int) error { return b.err }

// matchResponse builds an 8-participant match where the viewer finishes at
// the given placement.
func matchResponse(id string, gameCreation int64, viewer string, viewerPlacement int) *riot.MatchResponse {
	resp := &riot.MatchResponse{}
	resp.Metadata.MatchID = id
	resp.Info.GameDatetime = gameCreation
	resp.Info.GameLength = 2000
	resp.Info.QueueID = 1100
	resp.Info.TftSetNumber = 14

	for placement := 1; placement <= 8; placement++ {
		p := riot.MatchParticipant{
			Puuid:                "opponent-" + string(rune('a'+placement)),
			RiotIDGameName:       "Opponent",
			RiotIDTagline:        "NA1",
			Placement:            placement,
			Level:                8,
			PlayersEliminated:    placement % 3,
			TotalDamageToPlayers: 50 + placement,
			Units: []riot.MatchUnit{
				{CharacterID: "TFT14_Ahri", Rarity: 2, Tier: 2},
			},
		}
		if placement == viewerPlacement {
			p.Puuid = viewer
			p.RiotIDGameName = "Viewer"
		}
		resp.Info.Participants = append(resp.Info.Participants, p)
	}
	return resp
}
