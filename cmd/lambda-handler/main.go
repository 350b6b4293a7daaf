package main

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"intrale/internal/dispatch"
	"intrale/internal/users"
	"intrale/pkg/auth"
	"intrale/pkg/businesses"
	"intrale/pkg/config"
	"intrale/pkg/db"
	"intrale/pkg/idp"
	"intrale/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)
	defer func() { _ = log.Sync() }()

	pool := db.MustConnect(cfg, log)

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
	adapter := dispatch.NewAdapter(dispatch.NewDispatcher(log, registry, catalog))

	lambda.Start(func(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		return adapter.Handle(ctx, &event), nil
	})
}
