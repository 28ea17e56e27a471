package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/responder/responder/handlers"
	"github.com/responder/responder/internal/config"
	"github.com/responder/responder/internal/database"
	"github.com/responder/responder/internal/oidc"
	"github.com/responder/responder/internal/question/handler"
	"github.com/responder/responder/internal/question/repository"
	"github.com/responder/responder/internal/question/service"
	"github.com/responder/responder/internal/tokens"
	"github.com/responder/responder/pkg/logger"
	"github.com/responder/responder/pkg/metrics"
	"github.com/responder/responder/pkg/middleware"
)

var startTime = time.Now()

func main() {
	// LOG_LEVEL: debug|info|warn|error|fatal
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.LogLevel)
	logger.Infof("config loaded: backend=%s keycloak=%v redis=%v jwt_secret_set=%v",
		cfg.Storage.Backend, cfg.Keycloak.URL != "", cfg.Redis.Host != "", cfg.JWT.Secret != "")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(cors(), middleware.RequestLogger(), gin.Recovery())

	// Bearer tokens are resolved before the limiter so it can key on the
	// subject; only the POST routes reject anonymous requests.
	verifier := writeVerifier(ctx, cfg)
	if verifier != nil {
		r.Use(middleware.IdentifySubject(verifier))
	}

	// Optional global rate limiter (per-subject when authenticated, otherwise per-IP)
	var limiterRedis *redis.Client
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis {
			limiterRedis, err = database.ConnectRedis(ctx, cfg.Redis)
			if err != nil {
				logger.Warnf("redis rate limiter unavailable, using in-memory limiter: %v", err)
			}
		}
		if limiterRedis != nil {
			defer func() { _ = limiterRedis.Close() }()
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(limiterRedis, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	store, closeStore, err := database.OpenStore(ctx, cfg)
	if err != nil {
		logger.Fatalf("failed to open %s store: %v", cfg.Storage.Backend, err)
	}
	defer closeStore()
	logger.Infof("questions stored at %s", store.Location())

	svc := service.New(repository.NewQuestionRepository(store))

	handler.RegisterQuestionRoutes(r, svc, middleware.WriteGuards(verifier)...)
	handlers.RegisterSwagger(r)
	handlers.RegisterHealth(r, startTime, map[string]handlers.Pinger{"storage": svc})

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Infof("starting responder on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Infof("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("graceful shutdown failed: %v", err)
	}
}

// writeVerifier picks the bearer token verifier guarding POST routes.
// Keycloak wins over JWT_SECRET; nil leaves writes open.
func writeVerifier(ctx context.Context, cfg *config.Config) middleware.Verifier {
	if cfg.Keycloak.URL != "" && cfg.Keycloak.ClientID != "" {
		ver, err := oidc.NewKeycloakVerifier(ctx, cfg.Keycloak)
		if err == nil {
			logger.Infof("write routes protected by OIDC issuer %s", oidc.IssuerURL(cfg.Keycloak))
			return ver
		}
		logger.Warnf("failed to initialize OIDC verifier: %v", err)
	}
	if cfg.JWT.Secret != "" {
		logger.Infof("write routes protected by HS256 bearer tokens")
		return tokens.NewHMACVerifier(cfg.JWT.Secret)
	}
	return nil
}

// Lightweight CORS middleware: set common headers and answer OPTIONS.
func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Length")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}
		c.Next()
	}
}
