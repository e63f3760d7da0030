// Package server exposes the reconciliation engine over HTTP. This layer is
// deliberately thin: it parses requests, delegates to the services, and
// shapes responses. Authentication is expected to happen upstream; the actor
// identity arrives as a header set by the gateway.
package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/campuslabs/feeflow/internal/config"
	mappingdomain "github.com/campuslabs/feeflow/internal/mapping/domain"
	masterdomain "github.com/campuslabs/feeflow/internal/masterdata/domain"
	reconciledomain "github.com/campuslabs/feeflow/internal/reconcile/domain"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("server",
	fx.Provide(NewServer),
	fx.Invoke(registerHTTPServer),
)

type Params struct {
	fx.In

	Cfg      config.Config
	Log      *zap.Logger
	DB       *gorm.DB
	Engine   reconciledomain.Service
	Mappings mappingdomain.Service
	Resolver masterdomain.Resolver
}

type Server struct {
	cfg      config.Config
	log      *zap.Logger
	db       *gorm.DB
	engine   reconciledomain.Service
	mappings mappingdomain.Service
	resolver masterdomain.Resolver
}

func NewServer(p Params) *Server {
	return &Server{
		cfg:      p.Cfg,
		log:      p.Log.Named("server"),
		db:       p.DB,
		engine:   p.Engine,
		mappings: p.Mappings,
		resolver: p.Resolver,
	}
}

func (s *Server) Router() *gin.Engine {
	gin.SetMode(s.cfg.Server.Mode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", s.Healthz)
	r.GET("/readyz", s.Readyz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/v1")
	{
		v1.POST("/reconciliations", s.RunReconciliation)
		v1.PATCH("/fee-group-mappings/:id", s.UpdateMappingFeeGroup)
		v1.GET("/fee-categories", s.ListFeeCategories)
	}

	return r
}

func (s *Server) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) Readyz(c *gin.Context) {
	sqlDB, err := s.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

func registerHTTPServer(lc fx.Lifecycle, s *Server) {
	srv := &http.Server{
		Addr:    s.cfg.Server.Addr,
		Handler: s.Router(),
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					s.log.Error("http server stopped", zap.Error(err))
				}
			}()
			s.log.Info("http server listening", zap.String("addr", s.cfg.Server.Addr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}
