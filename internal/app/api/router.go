package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/Varun-2538/FoodieExpress/internal/domains/ordering/adapters/http/handler"
	"github.com/Varun-2538/FoodieExpress/internal/domains/ordering/ports"
)

// RouterDeps are the collaborators the HTTP surface needs.
type RouterDeps struct {
	ServiceName    string
	FrontendURL    string
	ProblemBaseURI string
	Logger         *slog.Logger
	Orders         ports.Service
	Statuses       ports.StatusOrchestrator
	Identity       ports.IdentityProvider
}

// NewRouter builds the gin engine serving /api/health and /api/orders.
func NewRouter(deps RouterDeps) *gin.Engine {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	if deps.ServiceName != "" {
		router.Use(otelgin.Middleware(deps.ServiceName))
	}
	router.Use(handler.CORS(deps.FrontendURL), handler.RequestLogger(logger))

	responder := handler.NewResponder(deps.ProblemBaseURI)
	api := router.Group("/api")
	api.GET("/health", handler.Health)
	handler.NewOrderHandler(deps.Orders, deps.Statuses, responder).
		Register(api, handler.Authenticate(deps.Identity, responder))
	return router
}
