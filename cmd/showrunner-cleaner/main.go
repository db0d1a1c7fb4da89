package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"showrunner/internal/core/channel"
	"showrunner/internal/platform/config"
	"showrunner/internal/platform/logger"
	"showrunner/internal/platform/store"
	"showrunner/internal/services/retention/domain"
	"showrunner/internal/services/retention/repo"
	"showrunner/internal/services/retention/service"

	"github.com/spf13/afero"
)

func main() {
	root := config.New()
	pgCfg := root.Prefix("SERVICE_PGSQL_")
	clnCfg := root.Prefix("CLEANER_")

	l := logger.Named("cleaner")

	var (
		fChannel = flag.Int64("channel", 0, "clean a single channel id (default: all configured channels)")
		fDryRun  = flag.Bool("dryrun", false, "plan and log but remove nothing")
		fStrict  = flag.Bool("strict-missing", false, "treat an already-absent playout file as an error")
	)
	flag.Parse()

	settings, err := channel.Load(root.Prefix("CORE_").MayString("SETTINGS", "/etc/showrunner/settings.json"))
	if err != nil {
		l.Panic().Err(err).Msg("channel settings load failed")
	}
	if *fChannel != 0 {
		ch, ok := settings.Channel(*fChannel)
		if !ok {
			l.Panic().Int64("channel", *fChannel).Msg("unknown channel id")
		}
		only := *settings
		only.Channels = []channel.Channel{ch}
		settings = &only
	}

	defaults := domain.DefaultWindows()
	windows := domain.Windows{
		Lookback:  clnCfg.MayDuration("LOOKBACK", defaults.Lookback),
		Lookahead: clnCfg.MayDuration("LOOKAHEAD", defaults.Lookahead),
		Staleness: clnCfg.MayDuration("STALENESS", defaults.Staleness),
	}

	l.Info().
		Dur("lookback", windows.Lookback).
		Dur("lookahead", windows.Lookahead).
		Dur("staleness", windows.Staleness).
		Bool("dryrun", *fDryRun).
		Msg("sweep windows")

	st, err := store.Open(
		context.Background(),
		store.Config{
			PG: store.PGConfig{
				Enabled:     true,
				URL:         pgCfg.MustString("DBURL"),
				MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 2)),
				SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
				LogSQL:      pgCfg.MayBool("LOG_SQL", false),
			},
		},
		store.WithLogger(*logger.Get()),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	if err := st.Guard(context.Background()); err != nil {
		l.Panic().Err(err).Msg("store not ready")
	}

	reclaimer := service.NewReclaimer(st.PG, repo.NewPG(), afero.NewOsFs(), settings)
	reclaimer.StrictMissing = *fStrict

	sweeper := &service.Sweeper{
		Planner:   service.NewPlanner(st.PG, repo.NewPG(), windows),
		Reclaimer: reclaimer,
		Settings:  settings,
		DryRun:    *fDryRun,
	}

	// cron-invoked one shot; a signal stops the sweep between candidates
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sum, err := sweeper.Sweep(ctx)
	if err != nil {
		l.Error().Err(err).Int("removed", sum.Removed).Msg("sweep aborted")
		os.Exit(1)
	}
}
