package riot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/valyala/fasthttp"
	"tft-rivals/internal/config"
	"tft-rivals/internal/ratelimit"
)

// ErrNotFound means the provider has no such account or match. It is an
// expected outcome (typo, nonexistent player), not a systemic failure.
var ErrNotFound = errors.New("not found")

// ErrUpstream wraps provider-side failures (5xx, unreachable). Recoverable
// by retry at the caller's discretion; the client does not retry internally
// to avoid compounding rate-budget consumption.
var ErrUpstream = errors.New("upstream unavailable")

// Client issues all outbound Riot API calls. Every authenticated request
// consumes one token from the shared rate budget guard before it is sent.
type Client struct {
	apiKey      string
	regionalURL string
	platformURL string
	guard       *ratelimit.Guard
	client      *fasthttp.Client
}

func NewClient(cfg *config.Config, guard *ratelimit.Guard) *Client {
	return &Client{
		apiKey:      cfg.RiotAPIKey,
		regionalURL: cfg.RegionalURL,
		platformURL: cfg.PlatformURL,
		guard:       guard,
		client: &fasthttp.Client{
			MaxConnsPerHost:     100,
			ReadTimeout:         10 * time.Second,
			WriteTimeout:        10 * time.Second,
			MaxIdleConnDuration: 1 * time.Minute,
		},
	}
}

// GetAccountByRiotID resolves gameName#tagLine to an AccountResponse via
// account-v1 on the regional routing host.
func (c *Client) GetAccountByRiotID(ctx context.Context, gameName, tagLine string) (*AccountResponse, error) {
	u := fmt.Sprintf("%s/riot/account/v1/accounts/by-riot-id/%s/%s",
		c.regionalURL, url.PathEscape(gameName), url.PathEscape(tagLine))
	return doRequest[AccountResponse](ctx, c, u, ratelimit.ReserveFailFast)
}

// GetLeagueEntries returns every queue standing for the puuid in a single
// response; callers partition it locally.
func (c *Client) GetLeagueEntries(ctx context.Context, puuid string) ([]LeagueEntryResponse, error) {
	u := fmt.Sprintf("%s/tft/league/v1/by-puuid/%s", c.platformURL, url.PathEscape(puuid))
	entries, err := doRequest[[]LeagueEntryResponse](ctx, c, u, ratelimit.ReserveFailFast)
	if err != nil {
		return nil, err
	}
	return *entries, nil
}

// GetMatchIDs lists up to count recent match ids, most recent first.
func (c *Client) GetMatchIDs(ctx context.Context, puuid string, count int) ([]string, error) {
	u := fmt.Sprintf("%s/tft/match/v1/matches/by-puuid/%s/ids?count=%d",
		c.regionalURL, url.PathEscape(puuid), count)
	ids, err := doRequest[[]string](ctx, c, u, ratelimit.ReserveFailFast)
	if err != nil {
		return nil, err
	}
	return *ids, nil
}

// GetMatch fetches full match detail. Batch callers have already budgeted
// the whole batch, so this paces through the guard instead of failing fast.
func (c *Client) GetMatch(ctx context.Context, matchID string) (*MatchResponse, error) {
	u := fmt.Sprintf("%s/tft/match/v1/matches/%s", c.regionalURL, url.PathEscape(matchID))
	return doRequest[MatchResponse](ctx, c, u, ratelimit.ReservePaced)
}

func doRequest[T any](ctx context.Context, c *Client, url string, mode ratelimit.ReserveMode) (*T, error) {
	if mode == ratelimit.ReservePaced {
		if err := c.guard.Wait(ctx); err != nil {
			return nil, err
		}
	} else {
		if err := c.guard.Reserve(); err != nil {
			return nil, err
		}
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("X-Riot-Token", c.apiKey)

	if deadline, ok := ctx.Deadline(); ok {
		if err := c.client.DoDeadline(req, resp, deadline); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
		}
	} else {
		if err := c.client.Do(req, resp); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
		}
	}

	switch code := resp.StatusCode(); {
	case code == fasthttp.StatusOK:
	case code == fasthttp.StatusNotFound:
		return nil, ErrNotFound
	case code >= 500 || code == fasthttp.StatusTooManyRequests:
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, code)
	default:
		return nil, fmt.Errorf("riot api error: status %d", code)
	}

	var result T
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &result, nil
}
