package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/shopspring/decimal"

	"go.uber.org/zap"

	"rewardservice/internal/app/config"
	httpapi "rewardservice/internal/app/http"
	"rewardservice/internal/app/http/handler"
	"rewardservice/internal/domain/reward"
	"rewardservice/internal/domain/scoring"
	"rewardservice/internal/infrastructure/async"
	"rewardservice/internal/infrastructure/db/pg"
	"rewardservice/internal/infrastructure/llm"
	"rewardservice/internal/infrastructure/logging"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logging.NewLogger()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		log.Fatal("db open error", zap.Error(err))
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		log.Fatal("db ping error", zap.Error(err))
	}

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatal("goose dialect error", zap.Error(err))
	}
	if err := goose.Up(db, "migrations"); err != nil {
		log.Fatal("goose up error", zap.Error(err))
	}

	uow := pg.NewTxManager(db)

	eventBus := async.NewAsyncEventBus(ctx, 4, log)
	defer eventBus.Close()

	var relevance reward.RelevanceScorer
	if cfg.OpenAIAPIKey != "" {
		relevance = llm.NewOpenAIRelevance(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	} else {
		log.Warn("OPENAI_API_KEY not set, using static relevance scorer")
		relevance = llm.NewStaticRelevance(decimal.NewFromInt(1))
	}

	engine := scoring.NewEngine(scoring.NewMarkdownScorer(), log)
	runRepo := pg.NewRunRepository(db)
	rewardSvc := reward.NewService(uow, runRepo, engine, relevance, eventBus, log, cfg.TaskPriceDefault)

	h := handler.New(rewardSvc, log)
	router := httpapi.NewRouter(h, log)

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server starting", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info("shutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", zap.Error(err))
	}
}
