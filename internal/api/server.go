package api

import (
	"fmt"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/vietanh2810/raffle-api/docs"
	v1 "github.com/vietanh2810/raffle-api/internal/api/handler/v1"
	"github.com/vietanh2810/raffle-api/internal/api/middleware"
	"github.com/vietanh2810/raffle-api/internal/config"
	"github.com/vietanh2810/raffle-api/internal/metrics"
)

type RaffleService interface {
	v1.RaffleService
	v1.Pinger
}

type AdminService interface {
	v1.AdminAuthService
	middleware.AdminVerifier
}

// Deps are the collaborators the HTTP layer is built on. Redis, Registry and
// Metrics are optional.
type Deps struct {
	Raffle   RaffleService
	Admin    AdminService
	Redis    *redis.Client
	Registry *prometheus.Registry
	Metrics  *metrics.Recorder
}

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, deps Deps) (*Server, error) {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()
	// ClientIP keys the claim limiter, so X-Forwarded-For is only honoured
	// from configured proxies.
	if err := engine.SetTrustedProxies(conf.API.TrustedProxies); err != nil {
		return nil, fmt.Errorf("engine.SetTrustedProxies -> %w", err)
	}

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares(deps.Metrics)

	raffleHandler := v1.NewRaffleHandler(deps.Raffle)
	adminHandler := v1.NewAdminHandler(deps.Admin, deps.Raffle)
	s.MountHandlers(raffleHandler, adminHandler, deps)

	return s, nil
}

func (s *Server) MountMiddlewares(rec *metrics.Recorder) {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
	if rec != nil {
		s.Router.Use(middleware.Metrics(rec))
	}
}

func (s *Server) claimLimiter(rdb *redis.Client) middleware.Limiter {
	limit := middleware.LimitFunc(s.Config.RateLimit.ClaimLimit)
	if rdb != nil {
		return middleware.NewRedisLimiter(rdb, "raffle:ratelimit:claim:"+s.Config.Raffle.EventID, limit, time.Minute)
	}

	return middleware.NewMemoryLimiter(limit, time.Minute)
}

func (s *Server) MountHandlers(raffleHandler *v1.RaffleHandler, adminHandler *v1.AdminHandler, deps Deps) {
	const basePath = "/api"

	public := s.Router.Group(basePath)
	{
		public.GET("/numbers", raffleHandler.HandleListNumbers)
		public.GET("/numbers/summary", raffleHandler.HandleSummary)
		public.GET("/numbers/:number/share", raffleHandler.HandleShare)
		public.POST("/admin/login", adminHandler.HandleLogin)
	}

	claims := s.Router.Group(basePath, middleware.RateLimit(s.claimLimiter(deps.Redis)))
	{
		claims.POST("/claim", raffleHandler.HandleClaim)
	}

	admin := s.Router.Group(basePath+"/admin", middleware.NewAdminAuthenticator(deps.Admin).RequireAdmin())
	{
		admin.GET("/list", adminHandler.HandleList)
		admin.POST("/confirm", adminHandler.HandleConfirm)
	}

	s.Router.GET("/", v1.HandleHealthcheck(deps.Raffle))

	if deps.Registry != nil {
		s.Router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{})))
	}

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Raffle numbers API"
	docs.SwaggerInfo.Description = "Claim raffle numbers and confirm their payment."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
