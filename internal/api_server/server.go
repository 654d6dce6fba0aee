package apiserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/powerguard/autonomy-planner/internal/config"
	handlers "github.com/powerguard/autonomy-planner/internal/handlers/v1"
	"github.com/powerguard/autonomy-planner/internal/service"
	"github.com/powerguard/autonomy-planner/internal/store"
	"github.com/powerguard/autonomy-planner/pkg/metrics"
	"github.com/powerguard/autonomy-planner/pkg/middleware"
)

const (
	gracefulShutdownTimeout = 5 * time.Second
)

// apiMetrics is registered on the default registry once per process.
var apiMetrics = sync.OnceValue(func() *metrics.Middleware {
	m := metrics.NewMiddleware("api_server")
	m.MustRegister(nil)
	return m
})

type Server struct {
	cfg      *config.Config
	store    store.Store
	listener net.Listener
}

// New returns a new instance of the powerguard API server.
func New(
	cfg *config.Config,
	store store.Store,
	listener net.Listener,
) *Server {
	return &Server{
		cfg:      cfg,
		store:    store,
		listener: listener,
	}
}

// Handler builds the router with the middleware chain and every v1 route mounted.
func (s *Server) Handler() http.Handler {
	router := chi.NewRouter()

	router.Use(
		apiMetrics().Handler,
		cors.Handler(cors.Options{
			AllowedOrigins:   s.cfg.Service.CorsOrigins,
			AllowedMethods:   []string{"GET", "PUT", "POST", "PATCH", "DELETE", "HEAD", "OPTIONS"},
			AllowedHeaders:   []string{"*"},
			ExposedHeaders:   []string{"Content-Disposition", "X-Request-Id"},
			AllowCredentials: false,
			MaxAge:           300,
		}),
		middleware.RequestID,
		middleware.Logger(),
		chiMiddleware.Recoverer,
	)

	catalogSrv := service.NewCatalogService(s.store)
	calcSrv := service.NewCalculationService(s.cfg.Service.CalculationModel)

	h := handlers.NewServiceHandler(
		catalogSrv,
		calcSrv,
		service.NewWorkspaceService(catalogSrv, calcSrv),
		service.NewReportService(),
	)
	h.Routes(router)

	return router
}

func (s *Server) Run(ctx context.Context) error {
	zap.S().Named("api_server").Info("Initializing API server")

	srv := http.Server{Addr: s.cfg.Service.Address, Handler: s.Handler()}

	go func() {
		<-ctx.Done()
		zap.S().Named("api_server").Infof("Shutdown signal received: %s", ctx.Err())
		ctxTimeout, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
		defer cancel()

		srv.SetKeepAlivesEnabled(false)
		_ = srv.Shutdown(ctxTimeout)
		zap.S().Named("api_server").Info("api server terminated")
	}()

	zap.S().Named("api_server").Infof("Listening on %s...", s.listener.Addr().String())
	if err := srv.Serve(s.listener); err != nil && !errors.Is(err, net.ErrClosed) && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
