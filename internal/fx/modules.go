package fx

import (
	"github.com/jimmy058910/replitballgame-sub004/internal/api"
	"github.com/jimmy058910/replitballgame-sub004/internal/config"
	"github.com/jimmy058910/replitballgame-sub004/internal/database"
	"github.com/jimmy058910/replitballgame-sub004/internal/logger"
	"github.com/jimmy058910/replitballgame-sub004/internal/repository"
	"github.com/jimmy058910/replitballgame-sub004/internal/service"

	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Provide(database.New),
	// repos, bound to the store interfaces the services consume
	fx.Provide(fx.Annotate(repository.NewSeasonRepository, fx.As(new(service.SeasonStore)))),
	fx.Provide(fx.Annotate(repository.NewTeamRepository, fx.As(new(service.TeamStore)))),
	fx.Provide(fx.Annotate(repository.NewGameRepository, fx.As(new(service.GameStore)))),
	fx.Provide(fx.Annotate(repository.NewCheckpointRepository, fx.As(new(service.CheckpointStore)))),
	fx.Provide(fx.Annotate(repository.NewPlanRepository, fx.As(new(service.PlanStore)))),
	fx.Provide(fx.Annotate(repository.NewPurgeRepository, fx.As(new(service.PurgeStore)))),
	// gameday collaborator client
	fx.Provide(fx.Annotate(
		api.NewGamedayClient,
		fx.As(new(service.SlotSource)),
		fx.As(new(service.AwardsSource)),
	)),
	// svc
	fx.Provide(service.NewFixtureService),
	fx.Provide(service.NewStandingsService),
	fx.Provide(service.NewPlayoffService),
	fx.Provide(service.NewCascadeService),
	fx.Provide(service.NewRolloverService),
)
