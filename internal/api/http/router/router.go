package router

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/kairohq/internexplore_backend/config"
	"github.com/kairohq/internexplore_backend/internal/api/http/handler"
	"github.com/kairohq/internexplore_backend/internal/service/application"
	"github.com/kairohq/internexplore_backend/internal/service/internship"
	"github.com/kairohq/internexplore_backend/pkg/database"
)

// Module provides the Router to the fx graph.
var Module = fx.Module("router", fx.Provide(NewRouter))

type Params struct {
	fx.In

	Cfg            *config.Config
	Redis          *redis.Client
	DB             *database.DB
	InternshipSvc  internship.Service
	ApplicationSvc application.Service
}

type Router struct {
	p Params
}

func NewRouter(p Params) *Router {
	return &Router{p: p}
}

func (r *Router) Register(app *fiber.App) {
	// 1. Health & Metrics
	r.registerSystemRoutes(app)

	// 2. Initialize Handlers
	internshipH := handler.NewInternshipHandler(r.p.InternshipSvc)
	applicationH := handler.NewApplicationHandler(r.p.ApplicationSvc)

	api := app.Group("/api/v1")

	// 3. Delegate to sub-files
	r.registerInternshipRoutes(api, internshipH, applicationH)
	r.registerApplicationRoutes(api, applicationH)
}

func (r *Router) registerSystemRoutes(app *fiber.App) {
	app.Get(healthcheck.LivenessEndpoint, healthcheck.New())
	app.Get(healthcheck.ReadinessEndpoint, healthcheck.New(healthcheck.Config{
		Probe: func(c fiber.Ctx) bool { return r.p.DB.Ping() == nil },
	}))
	app.Get(healthcheck.StartupEndpoint, healthcheck.New())

	if r.p.Cfg.Observability.Enabled && r.p.Cfg.Observability.Metrics.Enabled {
		path := r.p.Cfg.Observability.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		app.Get(path, adaptor.HTTPHandler(promhttp.Handler()))
	}
}
