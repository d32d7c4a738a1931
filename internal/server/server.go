package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	analyticsdomain "github.com/smallbiznis/dentalpay/internal/analytics/domain"
	"github.com/smallbiznis/dentalpay/internal/config"
	contactdomain "github.com/smallbiznis/dentalpay/internal/contact/domain"
	"github.com/smallbiznis/dentalpay/internal/observability"
	obsmiddleware "github.com/smallbiznis/dentalpay/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/dentalpay/internal/observability/metrics"
	obstracing "github.com/smallbiznis/dentalpay/internal/observability/tracing"
	salarydomain "github.com/smallbiznis/dentalpay/internal/salary/domain"
	specialtydomain "github.com/smallbiznis/dentalpay/internal/specialty/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics, corsOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(httpMetrics.GinMiddleware())
	r.Use(CORS(corsOrigins))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.NoRoute(func(c *gin.Context) {
		AbortWithError(c, ErrNotFound)
	})

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics, cfg config.Config) *gin.Engine {
	if !obsCfg.Debug() {
		gin.SetMode(gin.ReleaseMode)
	}
	return NewEngine(obsCfg, httpMetrics, cfg.CORSAllowedOrigins)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			log.Info("http server listening", zap.String("addr", ln.Addr().String()))
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine       *gin.Engine
	log          *zap.Logger
	salarySvc    salarydomain.Service
	analyticsSvc analyticsdomain.Service
	specialtySvc specialtydomain.Service
	contactSvc   contactdomain.Service
}

type ServerParams struct {
	fx.In

	Gin          *gin.Engine
	Log          *zap.Logger
	SalarySvc    salarydomain.Service
	AnalyticsSvc analyticsdomain.Service
	SpecialtySvc specialtydomain.Service
	ContactSvc   contactdomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:       p.Gin,
		log:          p.Log.Named("http.server"),
		salarySvc:    p.SalarySvc,
		analyticsSvc: p.AnalyticsSvc,
		specialtySvc: p.SpecialtySvc,
		contactSvc:   p.ContactSvc,
	}

	svc.RegisterRoutes()
	return svc
}

func (s *Server) RegisterRoutes() {
	api := s.engine.Group("/api")

	salaries := api.Group("/salary")
	{
		salaries.POST("/submit-salary", s.SubmitSalary)
		salaries.GET("/search-salaries", s.SearchSalaries)
		salaries.GET("/all-salaries", s.ListSalaries)
		salaries.GET("/specialty-stats", s.SpecialtyStats)
		salaries.GET("/stats-by-speciality", s.StatsBySpecialtyName)
		salaries.GET("/speciality-insights", s.SpecialtyInsights)
		salaries.GET("/compensation-analysis", s.CompensationAnalysis)
		salaries.GET("/salary-count", s.SalaryCount)
	}

	specialities := api.Group("/speciality")
	{
		specialities.GET("/", s.SearchSpecialties)
		specialities.GET("/all", s.ListSpecialties)
	}

	api.POST("/contact", s.CreateContact)
	api.POST("/feedback", s.CreateFeedback)
}
