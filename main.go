package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/statewisejobs/statewise-jobs/handlers"
	"github.com/statewisejobs/statewise-jobs/internal/config"
	"github.com/statewisejobs/statewise-jobs/internal/database"
	listinghandler "github.com/statewisejobs/statewise-jobs/internal/listings/handler"
	"github.com/statewisejobs/statewise-jobs/internal/listings/repository"
	listingservice "github.com/statewisejobs/statewise-jobs/internal/listings/service"
	"github.com/statewisejobs/statewise-jobs/internal/models"
	"github.com/statewisejobs/statewise-jobs/internal/oidc"
	"github.com/statewisejobs/statewise-jobs/internal/storage"
	"github.com/statewisejobs/statewise-jobs/internal/users"
	"github.com/statewisejobs/statewise-jobs/pkg/logger"
	"github.com/statewisejobs/statewise-jobs/pkg/metrics"
	"github.com/statewisejobs/statewise-jobs/pkg/middleware"
)

var startTime = time.Now()

func main() {
	// logging level controlled with LOG_LEVEL env: debug|info|warn|error|fatal
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: mongo=%v redis=%v google=%v", cfg.MongoDB.URI != "", cfg.Redis.Host != "", cfg.OAuth.GoogleClientID != "")

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// Lightweight CORS middleware for dev/test: set common headers and respond
	// to OPTIONS. Production should sit behind a stricter policy.
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Length")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}
		c.Next()
	})

	// Redis is optional: when reachable it backs the global rate limiter,
	// otherwise the in-memory limiter takes over.
	var rdb *redis.Client
	if cfg.Redis.Host != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.Redis.Host + ":" + cfg.Redis.Port, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
			rdb = nil
		} else {
			logger.Infof("connected to Redis: %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
	}
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && rdb != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(rdb, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	// MongoDB is required; retry with backoff to tolerate startup races,
	// then fail hard. The client is owned here and released on shutdown.
	ctx := context.Background()
	client := connectMongoWithRetry(ctx, cfg)
	defer func() { _ = client.Disconnect(ctx) }()
	db := client.Database(cfg.MongoDB.Database)

	userRepo, err := users.NewMongoRepository(db.Collection("users"))
	if err != nil {
		logger.Fatalf("failed to prepare users collection: %v", err)
	}
	userSvc := users.NewService(userRepo)

	listingSvc := &listingservice.Service{
		Jobs:       repository.NewMongoJobRepository(db.Collection("jobs")),
		Exams:      repository.NewMongoExamRepository(db.Collection("examcalendars")),
		Results:    repository.NewMongoDownloadRepository(db.Collection("results")),
		AdmitCards: repository.NewMongoDownloadRepository(db.Collection("admitcards")),
		AnswerKeys: repository.NewMongoDownloadRepository(db.Collection("answerkeys")),
		Syllabus:   repository.NewMongoDownloadRepository(db.Collection("syllabus")),
		Footers:    repository.NewMongoFooterRepository(db.Collection("footers")),
		Contacts:   repository.NewMongoContactRepository(db.Collection("contacts")),
	}

	// Google sign-in verifier. ALLOW_INSECURE_TOKEN=true swaps in the
	// payload-only verifier for integration runs without Google reachability.
	var verifier oidc.TokenVerifier
	if cfg.OAuth.GoogleClientID != "" {
		ver, err := oidc.NewVerifier(ctx, cfg.OAuth.Issuer, cfg.OAuth.GoogleClientID)
		if err != nil {
			logger.Warnf("failed to initialize Google OIDC verifier: %v", err)
		} else {
			verifier = ver
		}
	}
	if verifier == nil && strings.EqualFold(strings.TrimSpace(os.Getenv("ALLOW_INSECURE_TOKEN")), "true") {
		logger.Warnf("enabling insecure OIDC verifier (integration mode)")
		verifier = oidc.NewInsecureVerifier()
	}

	adminGuard := middleware.RequireRole(cfg.JWT.Secret, models.RoleAdmin)

	handlers.NewAuthHandler(cfg, userSvc, verifier).Register(r)
	listinghandler.New(listingSvc).Register(r, adminGuard)
	handlers.RegisterSwagger(r)

	// Notice uploads are optional: without MinIO the admin console simply
	// links to externally hosted PDFs.
	if os.Getenv("MINIO_ENDPOINT") != "" {
		store, err := storage.NewNoticeStore(storage.LoadMinIOConfig())
		if err != nil {
			logger.Warnf("failed to initialize MinIO notice store: %v", err)
		} else {
			handlers.NewUploadHandler(store).Register(r, adminGuard)
		}
	}

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})
	r.GET("/ready", func(c *gin.Context) {
		deps := gin.H{"mongo": true, "redis": true}
		ready := true
		if err := client.Ping(c.Request.Context(), nil); err != nil {
			deps["mongo"] = false
			ready = false
		}
		if cfg.RateLimit.UseRedis && rdb == nil {
			deps["redis"] = false
			ready = false
		}
		status := http.StatusOK
		state := "ready"
		if !ready {
			status = http.StatusServiceUnavailable
			state = "not_ready"
		}
		c.JSON(status, gin.H{"status": state, "deps": deps, "uptime": time.Since(startTime).String()})
	})

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("starting statewise-jobs API on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}

func connectMongoWithRetry(ctx context.Context, cfg *config.Config) *mongo.Client {
	const maxAttempts = 5
	backoff := time.Second
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		client, err := database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
		if err == nil {
			logger.Infof("connected to MongoDB")
			return client
		}
		logger.Warnf("attempt %d/%d: failed to connect to MongoDB: %v", attempt, maxAttempts, err)
		if attempt < maxAttempts {
			time.Sleep(backoff)
			backoff *= 2
		}
	}
	logger.Fatalf("could not connect to MongoDB after %d attempts", maxAttempts)
	return nil
}
