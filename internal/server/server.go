package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/revstack-dev/revstack/internal/config"
	"github.com/revstack-dev/revstack/internal/observability/logger"
	"github.com/revstack-dev/revstack/internal/observability/metrics"
	paymentdomain "github.com/revstack-dev/revstack/internal/payment/domain"
	"github.com/revstack-dev/revstack/internal/provider/registry"
	providerconfigdomain "github.com/revstack-dev/revstack/internal/providerconfig/domain"
)

type Server struct {
	cfg         config.Config
	log         *zap.Logger
	db          *gorm.DB
	engine      *gin.Engine
	registry    *registry.Registry
	providerSvc providerconfigdomain.Service
	paymentSvc  paymentdomain.Service
}

type Params struct {
	fx.In

	Cfg         config.Config
	Log         *zap.Logger
	DB          *gorm.DB
	Engine      *gin.Engine
	Registry    *registry.Registry
	ProviderSvc providerconfigdomain.Service
	PaymentSvc  paymentdomain.Service
}

func NewEngine(cfg config.Config, httpMetrics *metrics.HTTPMetrics) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(logger.GinMiddleware(logger.MiddlewareConfig{
		SkipPaths: []string{"/healthz", "/metrics"},
	}))
	engine.Use(metrics.GinMiddleware(httpMetrics))
	return engine
}

func NewServer(p Params) *Server {
	return &Server{
		cfg:         p.Cfg,
		log:         p.Log.Named("server"),
		db:          p.DB,
		engine:      p.Engine,
		registry:    p.Registry,
		providerSvc: p.ProviderSvc,
		paymentSvc:  p.PaymentSvc,
	}
}

func (s *Server) RegisterAPIRoutes() {
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := s.engine.Group("/v1")

	v1.GET("/providers", s.ListProviders)
	v1.PUT("/providers/:provider/config", s.UpsertProviderConfig)
	v1.POST("/providers/:provider/install", s.InstallProvider)
	v1.POST("/providers/:provider/uninstall", s.UninstallProvider)
	v1.PUT("/providers/:provider/active", s.SetProviderActive)

	v1.POST("/webhooks/:provider", s.HandleWebhook)
	v1.GET("/providers/:provider/events", s.ListProviderEvents)

	v1.POST("/providers/:provider/payments", s.CreatePayment)
	v1.GET("/providers/:provider/payments", s.ListPayments)
	v1.GET("/providers/:provider/payments/:id", s.GetPayment)
	v1.POST("/providers/:provider/payments/:id/capture", s.CapturePayment)
	v1.POST("/providers/:provider/payments/:id/refund", s.RefundPayment)

	v1.POST("/providers/:provider/checkout-sessions", s.CreateCheckoutSession)

	v1.POST("/providers/:provider/subscriptions", s.CreateSubscription)
	v1.GET("/providers/:provider/subscriptions/:id", s.GetSubscription)
	v1.PUT("/providers/:provider/subscriptions/:id", s.UpdateSubscription)
	v1.POST("/providers/:provider/subscriptions/:id/cancel", s.CancelSubscription)
	v1.POST("/providers/:provider/subscriptions/:id/pause", s.PauseSubscription)
	v1.POST("/providers/:provider/subscriptions/:id/resume", s.ResumeSubscription)

	v1.POST("/providers/:provider/customers", s.CreateCustomer)
	v1.GET("/providers/:provider/customers/:id", s.GetCustomer)
	v1.PUT("/providers/:provider/customers/:id", s.UpdateCustomer)
	v1.DELETE("/providers/:provider/customers/:id", s.DeleteCustomer)

	v1.POST("/providers/:provider/customers/:id/payment-methods", s.AttachPaymentMethod)
	v1.GET("/providers/:provider/customers/:id/payment-methods", s.ListPaymentMethods)
	v1.GET("/providers/:provider/payment-methods/:id", s.GetPaymentMethod)
	v1.DELETE("/providers/:provider/payment-methods/:id", s.DetachPaymentMethod)
}

func RunHTTP(lc fx.Lifecycle, s *Server) {
	srv := &http.Server{
		Addr:              s.cfg.HTTPAddr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			s.log.Info("http server starting", zap.String("addr", s.cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					s.log.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			s.log.Info("http server shutting down")
			return srv.Shutdown(ctx)
		},
	})
}
