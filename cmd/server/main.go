package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"airport_traffic/internal/airports"
	"airport_traffic/internal/api"
	"airport_traffic/internal/config"
	"airport_traffic/internal/logging"
	"airport_traffic/internal/notify"
	"airport_traffic/internal/projection"
	"airport_traffic/internal/scheduler"
	"airport_traffic/internal/sim"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	lg := logging.New(cfg.App.LogLevel, cfg.App.LogDir)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, lg); err != nil {
		lg.Error("server exited", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, lg *logging.Logger) error {
	var n notify.Notifier = notify.Nop{}
	if cfg.Redis.Addr != "" {
		pub, err := notify.Dial(ctx, cfg.Redis.Addr, cfg.Redis.Channel)
		if err != nil {
			return err
		}
		lg.Info("publishing ticks", slog.String("addr", cfg.Redis.Addr), slog.String("channel", pub.Channel()))
		n = pub
	}
	defer n.Close()

	reg := airports.Default().WithDestinations(cfg.Sim.DomesticDestinations, cfg.Sim.InternationalDestinations)
	engine, err := sim.New(reg, simOptions(cfg), lg, n)
	if err != nil {
		return err
	}

	sched, err := scheduler.New(engine, cfg.Sim.RefreshInterval, lg)
	if err != nil {
		return err
	}
	if err := sched.SetEnabled(cfg.Sim.RefreshEnabled); err != nil {
		return err
	}

	handler := api.New(engine, sched, api.Options{
		TickRate:  rate.Limit(cfg.Server.TickRatePerSec),
		TickBurst: cfg.Server.TickBurst,
		Horizon:   cfg.Traffic.ProjectionHorizon,
		Logger:    lg,
	})
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		lg.Info("server listening",
			slog.String("port", cfg.Server.Port),
			slog.String("env", cfg.App.Environment),
			slog.String("version", cfg.App.Version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		sched.Start()
		<-gctx.Done()

		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		lg.Info("shutting down")
		if err := sched.Stop(sctx); err != nil {
			lg.Warn("scheduler stop", slog.Any("error", err))
		}
		return srv.Shutdown(sctx)
	})
	return g.Wait()
}

func simOptions(cfg *config.Config) sim.Options {
	opts := sim.DefaultOptions()
	opts.Seed = cfg.Sim.Seed
	opts.FlightCount = cfg.Sim.FlightCount
	opts.TrafficStart = cfg.Traffic.Start
	opts.Profile.BaselineUtilization = cfg.Traffic.BaselineUtilization
	opts.Growth = projection.Growth{Min: cfg.Traffic.GrowthMin, Max: cfg.Traffic.GrowthMax}
	return opts
}
