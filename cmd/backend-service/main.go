package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"intrale/internal/dispatch"
	"intrale/internal/users"
	"intrale/pkg/auth"
	"intrale/pkg/businesses"
	"intrale/pkg/config"
	"intrale/pkg/db"
	"intrale/pkg/idp"
	"intrale/pkg/logger"
	mw "intrale/pkg/middleware"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)
	defer func() { _ = log.Sync() }()

	pool := db.MustConnect(cfg, log)
	rdb := db.MustRedis(cfg, log)

	var (
		businessStore businesses.BusinessStore
		userStore     businesses.UserStore
		profileStore  businesses.ProfileStore
	)
	if pool != nil {
		if err := businesses.EnsureSchema(context.Background(), pool); err != nil {
			log.Fatalw("schema", "err", err)
		}
		pg := businesses.NewPostgresStores(pool, log)
		businessStore, userStore, profileStore = pg, pg.Users(), pg.Profiles()
	} else {
		mem := businesses.NewMemoryStores()
		businessStore, userStore, profileStore = mem, mem.Users(), mem.Profiles()
	}

	var validator auth.Validator
	if cfg.LocalJWT && cfg.Env != "prod" {
		validator = auth.NewLocalValidator(cfg, log)
	} else {
		validator = auth.NewCognitoValidator(cfg, log)
	}

	var provider idp.Provider
	if cfg.CognitoUserPoolID != "" {
		cognito, err := idp.NewCognito(context.Background(), cfg, log)
		if err != nil {
			log.Fatalw("idp init", "err", err)
		}
		provider = cognito
	} else {
		log.Warnw("COGNITO_USER_POOL_ID not set, using in-memory identity provider")
		provider = idp.NewMemory()
	}

	registry := businesses.NewRegistry(businessStore, cfg.BootstrapBusiness)
	deps := users.Deps{
		Log:        log,
		Provider:   provider,
		Businesses: businessStore,
		Users:      userStore,
		Profiles:   profileStore,
		Registry:   registry,
		TwoFactor:  users.NewTwoFactor(log, userStore),
	}
	catalog := users.Catalog(deps, validator)
	dispatcher := dispatch.NewDispatcher(log, registry, catalog)

	r := chi.NewRouter()
	r.Use(mw.RequestID())
	r.Use(mw.Recover(log))
	r.Use(mw.Metrics())
	r.Use(mw.RateLimit(cfg.RateLimitPerMinute, rdb, log))
	r.Use(mw.Tracing())

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())
	dispatch.Routes(r, dispatcher)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: r}
	go func() {
		log.Infow("backend-service listening", "addr", cfg.HTTPAddr, "env", cfg.Env, "functions", catalog.Keys())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server", "err", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Warnw("shutdown", "err", err)
	}
	log.Infow("backend-service stopped")
}
