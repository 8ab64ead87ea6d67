// Package server exposes the HTTP API the desktop UI talks to. Handlers
// translate between HTTP and the domain services; they never touch the
// backends directly.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/quisqueyalabs/contalibro/internal/attachment"
	"github.com/quisqueyalabs/contalibro/internal/backend"
	"github.com/quisqueyalabs/contalibro/internal/backup"
	"github.com/quisqueyalabs/contalibro/internal/company"
	companydomain "github.com/quisqueyalabs/contalibro/internal/company/domain"
	"github.com/quisqueyalabs/contalibro/internal/config"
	"github.com/quisqueyalabs/contalibro/internal/invoice"
	invoicedomain "github.com/quisqueyalabs/contalibro/internal/invoice/domain"
	"github.com/quisqueyalabs/contalibro/internal/migration"
	"github.com/quisqueyalabs/contalibro/internal/observability"
	"github.com/quisqueyalabs/contalibro/internal/reference"
	referencedomain "github.com/quisqueyalabs/contalibro/internal/reference/domain"
	"github.com/quisqueyalabs/contalibro/internal/report"
	reportdomain "github.com/quisqueyalabs/contalibro/internal/report/domain"
	"github.com/quisqueyalabs/contalibro/internal/taxcalc"
	taxcalcdomain "github.com/quisqueyalabs/contalibro/internal/taxcalc/domain"
	"github.com/quisqueyalabs/contalibro/internal/thirdparty"
	thirdpartydomain "github.com/quisqueyalabs/contalibro/internal/thirdparty/domain"
)

var Module = fx.Module("http.server",
	config.Module,
	observability.Module,
	backend.Module,
	migration.Module,
	company.Module,
	thirdparty.Module,
	invoice.Module,
	taxcalc.Module,
	reference.Module,
	report.Module,
	attachment.Module,
	backup.Module,
	fx.Provide(NewEngine),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger, metrics *observability.Metrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observability.RequestLogger(log))
	r.Use(metrics.GinMiddleware())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", metrics.Handler())

	return r
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			log.Info("listening", zap.String("addr", cfg.ListenAddr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine        *gin.Engine
	cfg           config.Config
	companySvc    companydomain.Service
	invoiceSvc    invoicedomain.Service
	thirdPartySvc thirdpartydomain.Service
	taxCalcSvc    taxcalcdomain.Service
	reportSvc     reportdomain.Service
	attachments   *attachment.Service
	backups       *backup.Service
	refRepo       referencedomain.Repository
	metrics       *observability.Metrics
}

type ServerParams struct {
	fx.In

	Gin           *gin.Engine
	Cfg           config.Config
	CompanySvc    companydomain.Service
	InvoiceSvc    invoicedomain.Service
	ThirdPartySvc thirdpartydomain.Service
	TaxCalcSvc    taxcalcdomain.Service
	ReportSvc     reportdomain.Service
	Attachments   *attachment.Service
	Backups       *backup.Service
	RefRepo       referencedomain.Repository
	Metrics       *observability.Metrics
}

func NewServer(p ServerParams) *Server {
	s := &Server{
		engine:        p.Gin,
		cfg:           p.Cfg,
		companySvc:    p.CompanySvc,
		invoiceSvc:    p.InvoiceSvc,
		thirdPartySvc: p.ThirdPartySvc,
		taxCalcSvc:    p.TaxCalcSvc,
		reportSvc:     p.ReportSvc,
		attachments:   p.Attachments,
		backups:       p.Backups,
		refRepo:       p.RefRepo,
		metrics:       p.Metrics,
	}

	s.registerAPIRoutes()
	return s
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	api.GET("/currencies", s.ListCurrencies)

	// -------- Companies --------
	api.GET("/companies", s.ListCompanies)
	api.POST("/companies", s.CreateCompany)
	api.GET("/companies/:id", s.GetCompanyByID)
	api.PUT("/companies/:id", s.UpdateCompany)
	api.DELETE("/companies/:id", s.DeleteCompany)

	// -------- Invoices --------
	api.GET("/invoices", s.ListInvoices)
	api.POST("/invoices", s.CreateInvoice)
	api.GET("/invoices/dashboard", s.Dashboard)
	api.GET("/invoices/:id", s.GetInvoiceByID)
	api.PUT("/invoices/:id", s.UpdateInvoice)
	api.DELETE("/invoices/:id", s.DeleteInvoice)
	api.POST("/invoices/:id/attachment", s.AttachFile)

	// -------- Third parties --------
	api.GET("/third-parties", s.SearchThirdParties)

	// -------- Tax calculations --------
	api.GET("/calculations", s.ListCalculations)
	api.POST("/calculations", s.SaveCalculation)
	api.GET("/calculations/:id", s.GetCalculationByID)
	api.DELETE("/calculations/:id", s.DeleteCalculation)
	api.GET("/calculations/:id/statement", s.GetStatement)

	// -------- Reports --------
	api.GET("/reports/monthly.pdf", s.MonthlyPDF)
	api.GET("/reports/monthly.xlsx", s.MonthlyWorkbook)
	api.GET("/calculations/:id/retention.pdf", s.RetentionPDF)

	// -------- Backups --------
	api.GET("/backups", s.ListBackups)
	api.POST("/backups", s.CreateBackup)
}
