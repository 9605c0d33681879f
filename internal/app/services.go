package app

import (
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/kairohq/internexplore_backend/config"
	"github.com/kairohq/internexplore_backend/internal/service/application"
	"github.com/kairohq/internexplore_backend/internal/service/internship"
	"github.com/kairohq/internexplore_backend/internal/storage/postgres"
	"github.com/kairohq/internexplore_backend/pkg/email"
	redispkg "github.com/kairohq/internexplore_backend/pkg/redis"
	"github.com/kairohq/internexplore_backend/pkg/resume"
)

// ServiceModule provides all application service dependencies.
var ServiceModule = fx.Module("services",
	fx.Provide(
		ProvideInternshipService,
		ProvideApplicationService,
	),
)

func ProvideInternshipService(store *postgres.Store, rdb *redis.Client, cfg *config.Config) internship.Service {
	ttl := redispkg.FromCentralConfig(cfg.Redis).SearchCacheTTL()
	return internship.New(store, rdb, ttl)
}

func ProvideApplicationService(
	store *postgres.Store,
	parserClient *resume.Client,
	mailClient *email.Client,
	nc *nats.Conn,
	cfg *config.Config,
) application.Service {
	// Disabled collaborators come through as nil pointers. Convert them to
	// nil interfaces here so the service's nil checks behave.
	var parser application.Parser
	if parserClient.Enabled() {
		parser = parserClient
	}
	var mailer application.Mailer
	if mailClient != nil {
		mailer = mailClient
	}
	var events application.Publisher
	if nc != nil {
		events = nc
	}
	return application.New(store, parser, mailer, events, email.DefaultConfig().AppName)
}
