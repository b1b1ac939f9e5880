// Package server exposes the document engine over HTTP.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mrossi-dev/gestionale/internal/config"
	documentdomain "github.com/mrossi-dev/gestionale/internal/document/domain"
	numberingdomain "github.com/mrossi-dev/gestionale/internal/numbering/domain"
	subjectdomain "github.com/mrossi-dev/gestionale/internal/subject/domain"
	"github.com/mrossi-dev/gestionale/internal/tax"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(registerRoutes),
	fx.Invoke(run),
)

func NewEngine() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

type ServerParams struct {
	fx.In

	Gin          *gin.Engine
	Cfg          config.Config
	Log          *zap.Logger
	DocumentSvc  documentdomain.Service
	SubjectSvc   subjectdomain.Service
	NumberingSvc numberingdomain.Service
	TaxCatalog   *tax.Catalog
}

type Server struct {
	engine       *gin.Engine
	cfg          config.Config
	log          *zap.Logger
	documentSvc  documentdomain.Service
	subjectSvc   subjectdomain.Service
	numberingSvc numberingdomain.Service
	taxCatalog   *tax.Catalog
}

func NewServer(p ServerParams) *Server {
	return &Server{
		engine:       p.Gin,
		cfg:          p.Cfg,
		log:          p.Log.Named("http.server"),
		documentSvc:  p.DocumentSvc,
		subjectSvc:   p.SubjectSvc,
		numberingSvc: p.NumberingSvc,
		taxCatalog:   p.TaxCatalog,
	}
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func registerRoutes(s *Server) {
	s.RegisterRoutes()
}

func (s *Server) RegisterRoutes() {
	api := s.engine.Group("/api/v1")

	docs := api.Group("/documents")
	docs.POST("", s.CreateDocument)
	docs.GET("", s.ListDocuments)
	docs.GET("/:id", s.GetDocument)
	docs.PUT("/:id", s.UpdateDocument)
	docs.DELETE("/:id", s.DeleteDocument)
	docs.POST("/:id/transition", s.TransitionDocument)
	docs.POST("/:id/duplicate", s.DuplicateDocument)
	docs.GET("/:id/installments", s.ListInstallments)

	api.POST("/calculations/preview", s.PreviewTotals)

	installments := api.Group("/installments")
	installments.POST("/:id/payments", s.RegisterPayment)

	subjects := api.Group("/subjects")
	subjects.POST("", s.CreateSubject)
	subjects.GET("", s.ListSubjects)
	subjects.GET("/:id", s.GetSubject)
	subjects.PUT("/:id", s.UpdateSubject)
	subjects.DELETE("/:id", s.DeleteSubject)

	numbering := api.Group("/numbering")
	numbering.GET("", s.ListCounters)
	numbering.GET("/peek", s.PeekNumber)
	numbering.PUT("/:type/:year", s.ConfigureCounter)

	api.GET("/tax-rates", s.ListTaxRates)
}

func run(lc fx.Lifecycle, s *Server) {
	srv := &http.Server{
		Addr:    s.cfg.HTTPAddr,
		Handler: s.engine,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			s.log.Info("http server listening", zap.String("addr", s.cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					s.log.Fatal("http server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}
