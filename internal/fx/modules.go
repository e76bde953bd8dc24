package fx

import (
	"tft-rivals/internal/config"
	"tft-rivals/internal/database"
	"tft-rivals/internal/logger"
	"tft-rivals/internal/ratelimit"
	"tft-rivals/internal/repository"
	"tft-rivals/internal/riot"
	"tft-rivals/internal/server"
	"tft-rivals/internal/service"
	"tft-rivals/internal/staticdata"

	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Provide(database.New),
	// repos
	fx.Provide(repository.NewAccountRepository),
	fx.Provide(repository.NewLeagueEntryRepository),
	fx.Provide(repository.NewMatchRepository),
	// outbound clients
	fx.Provide(ratelimit.NewGuard),
	fx.Provide(riot.NewClient),
	fx.Provide(riot.NewDataDragonClient),
	fx.Provide(staticdata.NewCache),
	// the services consume interfaces; bind them to the concrete providers
	fx.Provide(
		func(c *riot.Client) service.RiotClient { return c },
		func(r *repository.AccountRepository) service.AccountStore { return r },
		func(r *repository.LeagueEntryRepository) service.LeagueStore { return r },
		func(r *repository.MatchRepository) service.MatchStore { return r },
		func(g *ratelimit.Guard) service.RateBudget { return g },
		func(c *riot.DataDragonClient) staticdata.Fetcher { return c },
	),
	// svc
	fx.Provide(service.NewAccountService),
	fx.Provide(service.NewStatusService),
	fx.Provide(service.NewMatchService),
	fx.Provide(service.NewBadgeService),
	fx.Provide(service.NewRenewService),
	// server
	fx.Provide(server.NewTFTServer),
)
