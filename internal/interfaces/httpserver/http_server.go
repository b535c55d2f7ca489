package httpserver

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	actionsdocs "customgpt-actions/docs/swagger"
	"customgpt-actions/internal/config"
	domain "customgpt-actions/internal/domain/media"
	"customgpt-actions/internal/interfaces/httpserver/handlers"
	"customgpt-actions/internal/interfaces/httpserver/middlewares"
	"customgpt-actions/internal/interfaces/httpserver/responses"
	"customgpt-actions/internal/interfaces/httpserver/routes"
)

// HttpServer wraps the gin engine with graceful shutdown helpers.
type HttpServer struct {
	cfg    *config.Config
	engine *gin.Engine
	log    zerolog.Logger
}

// New constructs the HTTP server with default middleware and routes.
func New(cfg *config.Config, log zerolog.Logger, mediaService *domain.Service) *HttpServer {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	actionsdocs.SwaggerInfo.BasePath = "/"

	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		middlewares.RequestLogger(),
		middlewares.CORS(),
		middlewares.MetricsRecorder(),
	)

	handlerProvider := handlers.NewProvider(cfg, mediaService, log)
	routeProvider := routes.New(handlerProvider)
	registerCoreRoutes(engine, cfg, routeProvider)

	return &HttpServer{
		cfg:    cfg,
		engine: engine,
		log:    log,
	}
}

// Handler exposes the underlying engine, mainly for tests.
func (s *HttpServer) Handler() http.Handler {
	return s.engine
}

// Run starts the HTTP listener and handles graceful shutdown via context cancellation.
func (s *HttpServer) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:    s.cfg.Addr(),
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.cfg.Addr()).Msg("media actions HTTP server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		s.log.Info().Msg("context cancelled, shutting down HTTP server")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func registerCoreRoutes(engine *gin.Engine, cfg *config.Config, routeProvider *routes.Routes) {
	engine.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, responses.ServiceInfo{
			Service:             cfg.ServiceName,
			Status:              "ok",
			Version:             actionsdocs.SwaggerInfo.Version,
			ReplicateConfigured: cfg.ReplicateConfigured(),
			Endpoints: map[string]string{
				"generate_image": "/media/generate-image",
				"generate_3d":    "/media/generate-3d",
				"generate_video": "/media/generate-video",
				"generate_audio": "/media/generate-audio",
			},
			Models: map[string][]string{
				"image":    domain.ModelNames(domain.KindImage),
				"3d_model": domain.ModelNames(domain.KindThreeD),
				"video":    domain.ModelNames(domain.KindVideo),
				"audio":    domain.ModelNames(domain.KindAudio),
			},
		})
	})
	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	engine.GET("/readyz", func(c *gin.Context) {
		if !cfg.ReplicateConfigured() {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "missing provider credentials"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routeProvider.Register(engine.Group("/"))
}
