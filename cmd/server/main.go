// Command server runs the member gateway: registration, login, member
// profile, the admin API, and bulk messaging.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"member-gateway/internal/jwttoken"
	messageservice "member-gateway/internal/message"
	"member-gateway/internal/notify"
	notifymetrics "member-gateway/internal/notify/metrics"
	"member-gateway/internal/notify/throttle"
	"member-gateway/internal/platform/config"
	"member-gateway/internal/platform/httpserver"
	"member-gateway/internal/platform/logger"
	platformmetrics "member-gateway/internal/platform/metrics"
	httptransport "member-gateway/internal/transport/http"
	userservice "member-gateway/internal/user/service"
	userstore "member-gateway/internal/user/store"
	audit "member-gateway/pkg/platform/audit"
	auditpublisher "member-gateway/pkg/platform/audit/publisher"
	auditkafka "member-gateway/pkg/platform/audit/store/kafka"
	auditmemory "member-gateway/pkg/platform/audit/store/memory"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Persistence: postgres when configured, in-memory otherwise.
	var users userstore.Store
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Error("could not connect to postgres", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		users = userstore.NewPostgres(pool)
		log.Info("using postgres user store")
	} else {
		users = userstore.NewMemory()
		log.Warn("DATABASE_URL not set, user data is volatile")
	}

	// Throttle: shared window in redis when configured.
	var limiter throttle.Limiter
	if cfg.RedisAddr != "" {
		limiter = throttle.NewRedis(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}))
		log.Info("using redis send throttle", "addr", cfg.RedisAddr)
	} else {
		limiter = throttle.NewMemory()
	}

	// Audit: kafka sink when configured, in-memory otherwise. Emission is
	// buffered so audit hiccups never block request handling.
	var auditStore audit.Store
	if cfg.KafkaBrokers != "" {
		kafkaStore, err := auditkafka.NewStore(cfg.KafkaBrokers, cfg.AuditTopic)
		if err != nil {
			log.Error("could not connect to kafka", "error", err)
			os.Exit(1)
		}
		defer kafkaStore.Close()
		auditStore = kafkaStore
		log.Info("publishing audit events to kafka", "topic", cfg.AuditTopic)
	} else {
		auditStore = auditmemory.NewStore()
	}
	auditor := auditpublisher.NewPublisher(auditStore, auditpublisher.WithAsyncBuffer(256))
	defer auditor.Close()

	tokens := jwttoken.New(cfg.JWTSigningKey, cfg.JWTIssuer, cfg.TokenTTL)
	userMetrics := platformmetrics.New()

	userSvc := userservice.New(users, tokens, auditor, userMetrics, log)

	dispatcher := notify.NewDispatcher(
		notify.NewKakaoSender(cfg.KakaoAPIURL, cfg.KakaoUser, cfg.KakaoPassword, log),
		notify.NewSMSSender(cfg.SMSAPIURL, cfg.SMSUser, cfg.SMSPassword, log),
		limiter,
		cfg.DispatchDelay,
		notifymetrics.New(),
		log,
	)
	messageSvc := messageservice.New(users, dispatcher, auditor, cfg.DispatchDeadline, log)

	router := httptransport.NewRouter(httptransport.RouterDeps{
		Users:    httptransport.NewUserHandler(userSvc, log),
		Admin:    httptransport.NewAdminHandler(userSvc, messageSvc, log),
		Tokens:   tokens,
		AdminCfg: httptransport.AdminCredentials{Account: cfg.AdminAccount, Password: cfg.AdminPassword},
		Logger:   log,
	})

	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("member gateway listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
	log.Info("member gateway stopped")
}
