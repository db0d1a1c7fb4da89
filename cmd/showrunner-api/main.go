package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"showrunner/internal/core/channel"
	"showrunner/internal/platform/config"
	"showrunner/internal/platform/logger"
	phttp "showrunner/internal/platform/net/http"
	"showrunner/internal/platform/net/middleware"
	"showrunner/internal/platform/store"

	lineuphttp "showrunner/internal/services/lineup/http"
	lineuprepo "showrunner/internal/services/lineup/repo"
	lineupsvc "showrunner/internal/services/lineup/service"
	runshttp "showrunner/internal/services/runs/http"
	runsrepo "showrunner/internal/services/runs/repo"
	runssvc "showrunner/internal/services/runs/service"
)

func main() {
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")
	pgCfg := root.Prefix("SERVICE_PGSQL_")

	l := logger.Get()

	settings, err := channel.Load(root.Prefix("CORE_").MayString("SETTINGS", "/etc/showrunner/settings.json"))
	if err != nil {
		l.Panic().Err(err).Msg("channel settings load failed")
	}

	st, err := store.Open(
		context.Background(),
		store.Config{
			PG: store.PGConfig{
				Enabled:     true,
				URL:         pgCfg.MustString("DBURL"),
				MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
				SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
				LogSQL:      pgCfg.MayBool("LOG_SQL", true),
			},
		},
		store.WithLogger(*l),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	srv := phttp.NewServer(apiCfg)
	r := srv.Router()
	r.Use(
		middleware.RequestID,
		middleware.AccessLog,
		middleware.RecoverJSON,
		middleware.CORS(middleware.CORSOptions{}),
	)

	lineuphttp.Register(r, lineupsvc.New(st.PG, lineuprepo.NewPG(), settings))
	runshttp.Register(r, runssvc.New(st.PG, runsrepo.NewPG()))

	// SIGINT/SIGTERM drain in-flight requests before exit
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
