package transport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Ramon1710/appschmiede-v2-sub000/internal/billing"
	"github.com/Ramon1710/appschmiede-v2-sub000/internal/config"
	"github.com/Ramon1710/appschmiede-v2-sub000/internal/llm"
	"github.com/Ramon1710/appschmiede-v2-sub000/internal/observability"
	"github.com/Ramon1710/appschmiede-v2-sub000/internal/render"
	"github.com/Ramon1710/appschmiede-v2-sub000/internal/store"
	"github.com/Ramon1710/appschmiede-v2-sub000/internal/widget"
)

// Dependencies holds all injected dependencies for the HTTP transport layer.
type Dependencies struct {
	Config    *config.Config
	Logger    *zap.Logger
	Metrics   *observability.Metrics
	LLM       *llm.Client
	Store     store.PageStore
	Renderer  *render.Renderer
	Webhook   *billing.Processor
	Recorder  *widget.Recorder
	Readiness observability.ReadinessChecks

	// Authenticate overrides the configured bearer-token middleware.
	// Mainly for tests.
	Authenticate func(http.Handler) http.Handler
}

// Server bundles the handler dependencies.
type Server struct {
	cfg      *config.Config
	logger   *zap.Logger
	metrics  *observability.Metrics
	llm      *llm.Client
	store    store.PageStore
	renderer *render.Renderer
	webhook  *billing.Processor
	recorder *widget.Recorder
}

// NewRouter creates a chi.Router with the full middleware pipeline and all
// route registrations. Health, readiness, metrics, and the payment webhook
// bypass the authentication middleware.
func NewRouter(deps Dependencies) chi.Router {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		cfg:      deps.Config,
		logger:   logger,
		metrics:  deps.Metrics,
		llm:      deps.LLM,
		store:    deps.Store,
		renderer: deps.Renderer,
		webhook:  deps.Webhook,
		recorder: deps.Recorder,
	}

	r := chi.NewRouter()

	// Global middleware: applied to all routes including health.
	r.Use(Recovery)
	r.Use(CORS(deps.Config.Server.CORS))
	r.Use(RequestID)
	r.Use(SecurityHeaders)

	// Public routes.
	r.Get("/ui/health", observability.HandleHealth())
	r.Get("/ui/ready", observability.HandleReady(deps.Readiness))
	if deps.Config.Observability.Metrics.Enabled {
		r.Method(http.MethodGet, deps.Config.Observability.Metrics.Path, observability.Handler())
	}
	r.Post("/hooks/payment", s.handlePaymentWebhook)

	// API routes, optionally authenticated.
	auth := func(next http.Handler) http.Handler { return next }
	switch {
	case deps.Authenticate != nil:
		auth = deps.Authenticate
	case deps.Config.Auth.Enabled:
		auth = BearerAuthenticator(deps.Config.Auth)
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(auth)
		r.Use(observability.TracingMiddleware)
		r.Use(HandlerTimeout(deps.Config.Server.HandlerTimeout))
		r.Use(RequestLogging)
		if deps.Metrics != nil {
			r.Use(deps.Metrics.MetricsMiddleware)
		}

		r.Post("/generate", s.handleGeneratePage)
		r.Post("/generate/pages", s.handleGeneratePages)

		r.Route("/projects/{projectId}/pages", func(r chi.Router) {
			r.Get("/", s.handleListPages)
			r.Get("/{pageName}", s.handleGetPage)
			r.Put("/{pageName}", s.handlePutPage)
			r.Delete("/{pageName}", s.handleDeletePage)
			r.Post("/{pageName}/patch", s.handlePatchPage)
			r.Post("/{pageName}/widgets/{nodeId}/{transition}", s.handleWidgetTransition)
		})

		r.Post("/render", s.handleRender)
		r.Post("/actions/interpret", s.handleInterpretAction)
	})

	return r
}
