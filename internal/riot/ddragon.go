package riot

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/valyala/fasthttp"
	"tft-rivals/internal/config"
)

// DataDragonClient fetches the slow-changing TFT static definitions from the
// Data Dragon CDN. The CDN is unauthenticated and not covered by the Riot
// API rate limits, so these calls bypass the budget guard.
type DataDragonClient struct {
	baseURL string
	version string
	locale  string
	client  *fasthttp.Client
}

func NewDataDragonClient(cfg *config.Config) *DataDragonClient {
	return &DataDragonClient{
		baseURL: cfg.DataDragonURL,
		version: cfg.DataDragonVersion,
		locale:  cfg.DataDragonLocale,
		client: &fasthttp.Client{
			MaxConnsPerHost: 10,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
		},
	}
}

type StaticEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type staticFile struct {
	Version string                 `json:"version"`
	Data    map[string]StaticEntry `json:"data"`
}

func (c *DataDragonClient) GetChampions(ctx context.Context) (map[string]StaticEntry, error) {
	return c.fetch(ctx, "tft-champion.json")
}

func (c *DataDragonClient) GetItems(ctx context.Context) (map[string]StaticEntry, error) {
	return c.fetch(ctx, "tft-item.json")
}

func (c *DataDragonClient) GetTraits(ctx context.Context) (map[string]StaticEntry, error) {
	return c.fetch(ctx, "tft-trait.json")
}

func (c *DataDragonClient) fetch(ctx context.Context, file string) (map[string]StaticEntry, error) {
	url := fmt.Sprintf("%s/%s/data/%s/%s", c.baseURL, c.version, c.locale, file)

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)

	if deadline, ok := ctx.Deadline(); ok {
		if err := c.client.DoDeadline(req, resp, deadline); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
		}
	} else {
		if err := c.client.Do(req, resp); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
		}
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("%w: %s status %d", ErrUpstream, file, resp.StatusCode())
	}

	var parsed staticFile
	if err := json.Unmarshal(resp.Body(), &parsed); err != nil {
		return nil, fmt.Errorf("decode %s: %w", file, err)
	}

	// Data Dragon keys entries by localized display name; re-key by the
	// short id that match payloads reference.
	byID := make(map[string]StaticEntry, len(parsed.Data))
	for _, entry := range parsed.Data {
		byID[entry.ID] = entry
	}
	return byID, nil
}
