package main

import (
	"context"
	"database/sql"

	fxmodules "github.com/jimmy058910/replitballgame-sub004/internal/fx"
	"github.com/jimmy058910/replitballgame-sub004/internal/service"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

// seasond is invoked once per day boundary by an external scheduler. It
// advances the active season through its pending transition and exits.
func main() {
	fx.New(
		fxmodules.Module,
		fx.Invoke(runAdvance),
	).Run()
}

func runAdvance(
	lc fx.Lifecycle,
	shutdowner fx.Shutdowner,
	rollover *service.RolloverService,
	db *sql.DB,
	logger zerolog.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				summary, err := rollover.AdvanceDay(context.Background())
				if err != nil {
					logger.Error().Err(err).Msg("day advancement failed")
				} else {
					ev := logger.Info().
						Int("from_day", summary.FromDay).
						Int("to_day", summary.ToDay).
						Str("phase", string(summary.Phase))
					if summary.Rollover != nil {
						ev = ev.
							Int("ai_purged", summary.Rollover.AIPurged).
							Int("games_created", summary.Rollover.GamesCreated).
							Int("errors", len(summary.Rollover.Errors))
					}
					ev.Msg("day advancement complete")
				}
				if err := shutdowner.Shutdown(); err != nil {
					logger.Error().Err(err).Msg("shutdown failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if err := db.Close(); err != nil {
				logger.Warn().Err(err).Msg("error closing database connection")
			}
			return nil
		},
	})
}
