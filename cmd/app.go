package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/qrave1/RoomSignal/internal/application/config"
	"github.com/qrave1/RoomSignal/internal/application/constant"
	"github.com/qrave1/RoomSignal/internal/application/metric"
	"github.com/qrave1/RoomSignal/internal/infra/adapters/memory"
	"github.com/qrave1/RoomSignal/internal/infra/adapters/postgres"
	"github.com/qrave1/RoomSignal/internal/infra/adapters/postgres/repository"
	"github.com/qrave1/RoomSignal/internal/infra/ports/http/handlers"
	"github.com/qrave1/RoomSignal/internal/infra/ports/http/server"
	"github.com/qrave1/RoomSignal/internal/usecase"
)

func runApp() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.New()
	if err != nil {
		slog.Error("parse config", slog.Any(constant.Error, err))
		os.Exit(1)
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}

	slog.SetDefault(
		slog.New(
			slog.NewJSONHandler(
				os.Stdout,
				&slog.HandlerOptions{Level: level},
			),
		),
	)

	// журнал встреч опционален
	var journal usecase.MeetingJournal

	if cfg.Postgres.Enabled() {
		dbConn, err := postgres.NewPostgres(ctx, cfg.Postgres.DSN())
		if err != nil {
			slog.Error("connect to postgres", slog.Any(constant.Error, err))
			os.Exit(1)
		}
		defer dbConn.Close()

		journal = repository.NewJournalRepo(dbConn)
	} else {
		slog.Info("postgres is not configured, meeting journal disabled")
	}

	roomRepo := memory.NewRoomRepository()
	sessionRepo := memory.NewSessionRepository()
	wsConnRepo := memory.NewWSConnectionRepository(cfg.WebSocket)

	meetingUsecase := usecase.NewMeetingUsecase(cfg.Meeting, roomRepo, sessionRepo, wsConnRepo, journal)

	roomHandler := handlers.NewRoomHandler(meetingUsecase)
	iceHandler := handlers.NewIceHandler(cfg)
	wsHandler := handlers.NewWebSocketHandler(cfg, meetingUsecase, wsConnRepo)

	echoSrv := server.New(cfg, roomHandler, iceHandler, wsHandler)
	metricsSrv := metric.NewServer(func() map[string]int {
		return map[string]int{
			"rooms":        roomRepo.Count(),
			"participants": sessionRepo.Count(),
			"connections":  wsConnRepo.Count(),
		}
	})

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("HTTP server started", slog.String("port", cfg.Port))

		if err := echoSrv.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	g.Go(func() error {
		if err := metricsSrv.Start(":" + cfg.MetricPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	// Graceful shutdown по сигналу или падению одного из серверов
	g.Go(func() error {
		<-gctx.Done()

		timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer timeoutCancel()

		if err := echoSrv.Shutdown(timeoutCtx); err != nil {
			slog.Error("Failed to gracefully shutdown HTTP server", slog.Any(constant.Error, err))
		}

		if err := metricsSrv.Shutdown(timeoutCtx); err != nil {
			slog.Error("Failed to gracefully shutdown metric server", slog.Any(constant.Error, err))
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		slog.Error("server failed", slog.Any(constant.Error, err))
		os.Exit(1)
	}

	slog.Info("servers stopped")
}
