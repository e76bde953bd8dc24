package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"
	"tft-rivals/internal/constants"
	"tft-rivals/internal/domain"
	"tft-rivals/internal/ratelimit"
	"tft-rivals/internal/riot"
	"tft-rivals/internal/service"
	"tft-rivals/internal/staticdata"
)

// TFTServer exposes the resolve, status, match, badge and renew operations
// over a JSON API. Every route addresses a player by riot id path segments.
type TFTServer struct {
	accounts   *service.AccountService
	status     *service.StatusService
	matches    *service.MatchService
	badges     *service.BadgeService
	renew      *service.RenewService
	staticData *staticdata.Cache
	guard      *ratelimit.Guard
	logger     zerolog.Logger
}

func NewTFTServer(
	accounts *service.AccountService,
	status *service.StatusService,
	matches *service.MatchService,
	badges *service.BadgeService,
	renew *service.RenewService,
	staticData *staticdata.Cache,
	guard *ratelimit.Guard,
	logger zerolog.Logger,
) *TFTServer {
	return &TFTServer{
		accounts:   accounts,
		status:     status,
		matches:    matches,
		badges:     badges,
		renew:      renew,
		staticData: staticData,
		guard:      guard,
		logger:     logger,
	}
}

// Routes registers every handler on the mux.
func (s *TFTServer) Routes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/tft/accounts/{gameName}/{tagLine}", s.GetAccount)
	mux.HandleFunc("GET /api/tft/status/{gameName}/{tagLine}", s.GetStatus)
	mux.HandleFunc("GET /api/tft/matches/{gameName}/{tagLine}", s.GetMatches)
	mux.HandleFunc("GET /api/tft/badges/{gameName}/{tagLine}", s.GetBadges)
	mux.HandleFunc("POST /api/tft/renew/{gameName}/{tagLine}", s.Renew)
	mux.HandleFunc("GET /api/tft/limits", s.GetLimits)
}

type limitsResponse struct {
	Remaining int `json:"remaining"`
}

// GetLimits reports how many provider calls the budget can currently admit.
func (s *TFTServer) GetLimits(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, limitsResponse{Remaining: s.guard.Remaining()})
}

func (s *TFTServer) GetAccount(w http.ResponseWriter, r *http.Request) {
	account, err := s.resolve(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, account)
}

type statusResponse struct {
	Account *domain.Account       `json:"account"`
	Status  []domain.LeagueStatus `json:"status"`
}

func (s *TFTServer) GetStatus(w http.ResponseWriter, r *http.Request) {
	account, err := s.resolve(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	statuses, err := s.status.FetchAll(r.Context(), account.Puuid)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, statusResponse{Account: account, Status: statuses})
}

// unitView pairs a unit with display names from the reference cache.
type unitView struct {
	domain.Unit
	CharacterName string   `json:"characterName,omitempty"`
	ItemDisplay   []string `json:"itemDisplayNames,omitempty"`
}

type traitView struct {
	domain.Trait
	DisplayName string `json:"displayName,omitempty"`
}

type matchView struct {
	domain.MatchSummary
	Units  []unitView  `json:"units"`
	Traits []traitView `json:"traits"`
}

type matchesResponse struct {
	Account *domain.Account        `json:"account"`
	Matches []matchView            `json:"matches"`
	Errors  []domain.ComponentError `json:"errors,omitempty"`
}

func (s *TFTServer) GetMatches(w http.ResponseWriter, r *http.Request) {
	account, err := s.resolve(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	matches, compErrs, err := s.matches.FetchRecent(r.Context(), account.Puuid, constants.RecentMatchesLimit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, matchesResponse{
		Account: account,
		Matches: s.enrich(r.Context(), matches),
		Errors:  compErrs,
	})
}

type badgesResponse struct {
	Account *domain.Account        `json:"account"`
	Badges  []domain.Badge         `json:"badges"`
	Errors  []domain.ComponentError `json:"errors,omitempty"`
}

func (s *TFTServer) GetBadges(w http.ResponseWriter, r *http.Request) {
	account, err := s.resolve(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	matches, compErrs, err := s.matches.FetchRecent(r.Context(), account.Puuid, constants.BadgeWindowSize)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, badgesResponse{
		Account: account,
		Badges:  s.badges.Compute(account.Puuid, matches),
		Errors:  compErrs,
	})
}

type renewResponse struct {
	*domain.RenewResult
	Matches []matchView `json:"matches"`
}

func (s *TFTServer) Renew(w http.ResponseWriter, r *http.Request) {
	result, err := s.renew.Renew(r.Context(), r.PathValue("gameName"), r.PathValue("tagLine"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, renewResponse{
		RenewResult: result,
		Matches:     s.enrich(r.Context(), result.Matches),
	})
}

func (s *TFTServer) resolve(r *http.Request) (*domain.Account, error) {
	return s.accounts.Resolve(r.Context(), r.PathValue("gameName"), r.PathValue("tagLine"))
}

// enrich attaches display names to units and traits. A reference-data
// failure degrades to raw ids rather than failing the request.
func (s *TFTServer) enrich(ctx context.Context, matches []domain.MatchSummary) []matchView {
	views := make([]matchView, 0, len(matches))

	set, err := s.staticData.Get(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("reference data unavailable, returning raw ids")
		set = nil
	}

	for _, match := range matches {
		view := matchView{MatchSummary: match}
		for _, unit := range match.Units {
			uv := unitView{Unit: unit}
			if set != nil {
				uv.CharacterName = set.ChampionName(unit.CharacterID)
				for _, item := range unit.ItemNames {
					uv.ItemDisplay = append(uv.ItemDisplay, set.ItemName(item))
				}
			}
			view.Units = append(view.Units, uv)
		}
		for _, trait := range match.Traits {
			tv := traitView{Trait: trait}
			if set != nil {
				tv.DisplayName = set.TraitName(trait.Name)
			}
			view.Traits = append(view.Traits, tv)
		}
		views = append(views, view)
	}
	return views
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *TFTServer) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, riot.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, ratelimit.ErrRateLimitExceeded):
		status = http.StatusTooManyRequests
	case errors.Is(err, riot.ErrUpstream):
		status = http.StatusBadGateway
	}

	logger := zerolog.Ctx(r.Context())
	if status == http.StatusInternalServerError {
		logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	} else {
		logger.Warn().Err(err).Str("path", r.URL.Path).Int("status", status).Msg("request rejected")
	}

	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (s *TFTServer) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error().Err(err).Msg("failed to encode response")
	}
}
