// internal/app/server.go
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"gastro-insights/internal/config"
	"gastro-insights/internal/db"
	analyticsHandler "gastro-insights/internal/handlers/analytics"
	authHandler "gastro-insights/internal/handlers/auth"
	healthHandler "gastro-insights/internal/handlers/health"
	"gastro-insights/internal/middleware"
	"gastro-insights/internal/pkg/hash"
	"gastro-insights/internal/pkg/jwt"
	"gastro-insights/internal/pkg/otp"
	"gastro-insights/internal/repository/postgres"
	analyticsUsecase "gastro-insights/internal/service/analytics"
	authUsecase "gastro-insights/internal/service/auth"
	"gastro-insights/internal/service/telegram"
)

type Server struct {
	cfg         config.AppConfig
	engine      *gin.Engine
	logger      *zap.Logger
	pool        *pgxpool.Pool
	redisClient *redis.Client
	httpServer  *http.Server
}

func NewServer() *Server {
	cfg := config.Load()
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	return &Server{cfg: cfg, engine: gin.New()}
}

func (s *Server) Start() error {
	ctx := context.Background()

	// ----- Logger -----
	var err error
	if s.cfg.IsDevelopment() {
		s.logger, err = zap.NewDevelopment()
	} else {
		s.logger, err = zap.NewProduction()
	}
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}

	// ----- PostgreSQL -----
	s.pool, err = db.ConnectDB(ctx, s.cfg.DatabaseURL, s.cfg.DBMaxConns)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	s.logger.Info("connected to PostgreSQL")

	// ----- Redis (optional) -----
	if s.cfg.RedisAddr != "" {
		s.redisClient, err = db.NewRedisClient(db.RedisConfig{
			Addr:     s.cfg.RedisAddr,
			Password: s.cfg.RedisPass,
			DB:       s.cfg.RedisDB,
			PoolSize: 10,
		})
		if err != nil {
			return fmt.Errorf("failed to connect to Redis: %w", err)
		}
		s.logger.Info("connected to Redis", zap.String("addr", s.cfg.RedisAddr))
	}

	// ----- JWT Manager -----
	jwtManager, err := jwt.NewManager(s.cfg.JWT)
	if err != nil {
		return fmt.Errorf("failed to build JWT manager: %w", err)
	}

	// ----- Repositories -----
	dbWrapper := postgres.NewDB(s.pool, s.cfg.QueryTimeout)
	adminRepo := postgres.NewAdminRepository(dbWrapper)
	productRepo := postgres.NewProductAnalyticsRepository(dbWrapper)
	employeeRepo := postgres.NewEmployeeAnalyticsRepository(dbWrapper)
	customerRepo := postgres.NewCustomerAnalyticsRepository(dbWrapper)
	categoryRepo := postgres.NewCategoryAnalyticsRepository(dbWrapper)
	supplierRepo := postgres.NewSupplierAnalyticsRepository(dbWrapper)
	shippingRepo := postgres.NewShippingAnalyticsRepository(dbWrapper)
	salesRepo := postgres.NewSalesAnalyticsRepository(dbWrapper)

	// ----- OTP store -----
	// The shared Redis store lets OTP verification survive restarts and
	// multiple instances; the in-memory store is the single-node default.
	var otpStore otp.Store = otp.NewMemoryStore(s.cfg.OTPTTL)
	if s.redisClient != nil {
		otpStore = otp.NewRedisStore(s.redisClient, s.cfg.OTPTTL)
	}

	// ----- Services -----
	sender := telegram.NewSender(s.cfg.TelegramBotToken, s.logger)
	authService := authUsecase.NewAuthService(
		adminRepo,
		otpStore,
		sender,
		jwtManager,
		hash.NewHasher(s.cfg.BcryptCost),
		s.cfg.OTPTTL,
		s.logger,
	)
	analyticsService := analyticsUsecase.NewService(
		productRepo,
		employeeRepo,
		customerRepo,
		categoryRepo,
		supplierRepo,
		shippingRepo,
		salesRepo,
		s.logger,
	)

	// ----- Initial admin seed -----
	seedCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := authService.EnsureAdminExists(seedCtx, s.cfg.AdminUsername, s.cfg.AdminPassword); err != nil {
		// Startup continues; the admin can be created once the DB recovers.
		s.logger.Error("failed to seed initial admin", zap.Error(err))
	}

	// ----- Handlers -----
	authHandlerInst := authHandler.NewAuthHandler(authService, s.cfg.CookieSecure, s.cfg.IsDevelopment(), s.logger)
	analyticsHandlerInst := analyticsHandler.NewAnalyticsHandler(analyticsService, s.logger)
	healthHandlerInst := healthHandler.NewHealthHandler(dbWrapper)

	// ----- Middlewares -----
	s.engine.Use(
		middleware.RecoveryMiddleware(s.logger),
		middleware.LoggingMiddleware(s.logger),
		middleware.CORSMiddleware(),
	)

	// ----- Router -----
	handlers := &Handlers{
		AuthHandler:      authHandlerInst,
		AnalyticsHandler: analyticsHandlerInst,
		HealthHandler:    healthHandlerInst,
		AuthMiddleware:   middleware.AuthMiddleware(authService, s.logger),
	}
	SetupRouter(s.engine, handlers)

	// ----- Start HTTP -----
	s.httpServer = &http.Server{
		Addr:    s.cfg.HTTPAddr,
		Handler: s.engine,
	}

	s.logger.Info("server starting", zap.String("addr", s.cfg.HTTPAddr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and releases connections.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	if s.httpServer != nil {
		err = s.httpServer.Shutdown(ctx)
	}
	if s.pool != nil {
		s.pool.Close()
	}
	if s.redisClient != nil {
		if cerr := s.redisClient.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	if s.logger != nil {
		s.logger.Info("server stopped")
		_ = s.logger.Sync()
	}
	return err
}
