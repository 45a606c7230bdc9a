package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"

	"github.com/clipstream/clipstream/internal/handlers"
	"github.com/clipstream/clipstream/internal/logger"
	"github.com/clipstream/clipstream/internal/middlewares"
	"github.com/clipstream/clipstream/internal/password"
	"github.com/clipstream/clipstream/internal/repositories"
	"github.com/clipstream/clipstream/internal/services"
	"github.com/clipstream/clipstream/internal/storage"
	"github.com/clipstream/clipstream/internal/tokens"

	_ "github.com/clipstream/clipstream/docs"
	_ "github.com/jackc/pgx/v5/stdlib"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// @title clipstream API
// @version 1.0.0
// @description Video-platform account and session backend: registration, credential lifecycle, channel profiles, watch history
// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	printBuildInfo()
	configPath := parseFlags()

	cfg, err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Starting service version %s, commit %s, build %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// config carries every knob the service needs: HTTP, Postgres, Redis,
// Kafka, object storage, JWT and the subscription-edge mode.
type config struct {
	AppHost  string
	AppPort  string
	LogLevel string

	PgHost         string
	PgPort         int
	PgUser         string
	PgPassword     string
	PgDB           string
	PgMaxOpenConns int
	PgMaxIdleConns int

	RedisHost         string
	RedisPort         int
	RedisDB           int
	RedisPassword     string
	RedisPoolSize     int
	RedisMinIdleConns int
	CacheExpSecond    int

	KafkaBrokers string // comma-separated; empty disables event publishing
	KafkaTopic   string

	S3Region    string
	S3Endpoint  string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
	S3BaseURL   string

	JWTAccessSecret     string
	JWTRefreshSecret    string
	JWTAccessExpSecond  int
	JWTRefreshExpSecond int

	SubscriptionUnique bool
}

// parseConfig loads environment variables from a file and returns the
// full application configuration.
func parseConfig(path string) (cfg config, err error) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}

	// Application config
	cfg.AppHost = getEnv("APP_HOST", "localhost")
	cfg.AppPort = getEnv("APP_PORT", "8080")
	cfg.LogLevel = getEnv("APP_LOG_LEVEL", "info")

	// PostgreSQL config
	cfg.PgHost = getEnv("POSTGRES_HOST", "localhost")
	cfg.PgUser = getEnv("POSTGRES_USER", "user")
	cfg.PgPassword = getEnv("POSTGRES_PASSWORD", "password")
	cfg.PgDB = getEnv("POSTGRES_DB", "clipstream")
	if cfg.PgPort, err = strconv.Atoi(getEnv("POSTGRES_PORT", "5432")); err != nil {
		return
	}
	if cfg.PgMaxOpenConns, err = strconv.Atoi(getEnv("POSTGRES_MAX_OPEN_CONNS", "16")); err != nil {
		return
	}
	if cfg.PgMaxIdleConns, err = strconv.Atoi(getEnv("POSTGRES_MAX_IDLE_CONNS", "8")); err != nil {
		return
	}

	// Redis config
	cfg.RedisHost = getEnv("REDIS_HOST", "localhost")
	if cfg.RedisPort, err = strconv.Atoi(getEnv("REDIS_PORT", "6379")); err != nil {
		return
	}
	if cfg.RedisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0")); err != nil {
		return
	}
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")
	if cfg.RedisPoolSize, err = strconv.Atoi(getEnv("REDIS_POOL_SIZE", "10")); err != nil {
		return
	}
	if cfg.RedisMinIdleConns, err = strconv.Atoi(getEnv("REDIS_MIN_IDLE_CONNS", "2")); err != nil {
		return
	}
	if cfg.CacheExpSecond, err = strconv.Atoi(getEnv("REDIS_EXP_SECOND", "60")); err != nil {
		return
	}

	// Kafka config
	cfg.KafkaBrokers = getEnv("KAFKA_BROKERS", "")
	cfg.KafkaTopic = getEnv("KAFKA_TOPIC", "account-events")

	// Object storage config
	cfg.S3Region = getEnv("S3_REGION", "us-east-1")
	cfg.S3Endpoint = getEnv("S3_ENDPOINT", "")
	cfg.S3Bucket = getEnv("S3_BUCKET", "clipstream-media")
	cfg.S3AccessKey = getEnv("S3_ACCESS_KEY", "")
	cfg.S3SecretKey = getEnv("S3_SECRET_KEY", "")
	cfg.S3BaseURL = getEnv("S3_BASE_URL", "")

	// JWT config
	cfg.JWTAccessSecret = getEnv("JWT_ACCESS_SECRET", "access_secret_key")
	cfg.JWTRefreshSecret = getEnv("JWT_REFRESH_SECRET", "refresh_secret_key")
	if cfg.JWTAccessExpSecond, err = strconv.Atoi(getEnv("JWT_ACCESS_EXP_SECOND", "900")); err != nil {
		return
	}
	if cfg.JWTRefreshExpSecond, err = strconv.Atoi(getEnv("JWT_REFRESH_EXP_SECOND", "864000")); err != nil {
		return
	}

	// Subscription edges: opt into the unique constraint
	cfg.SubscriptionUnique, err = strconv.ParseBool(getEnv("SUBSCRIPTION_UNIQUE", "false"))

	return
}

// run initializes the logger, database, Redis, Kafka, object storage
// and HTTP server. It sets up routes, applies middleware, and handles
// graceful shutdown.
func run(ctx context.Context, cfg config) error {
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Sync()
	logger.Log.Infof("Logger initialized with level %s", cfg.LogLevel)

	// Connect to PostgreSQL
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.PgUser, cfg.PgPassword, cfg.PgHost, cfg.PgPort, cfg.PgDB)
	logger.Log.Infof("Connecting to PostgreSQL at %s:%d", cfg.PgHost, cfg.PgPort)

	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		return fmt.Errorf("postgres connection error: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.PgMaxOpenConns)
	db.SetMaxIdleConns(cfg.PgMaxIdleConns)
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("postgres ping failed: %w", err)
	}

	// Connect to Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort),
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		PoolSize:     cfg.RedisPoolSize,
		MinIdleConns: cfg.RedisMinIdleConns,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis connection error: %w", err)
	}
	defer rdb.Close()

	// Kafka writer for account events; absent brokers disable publishing
	var events *kafka.Writer
	if cfg.KafkaBrokers != "" {
		events = &kafka.Writer{
			Addr:     kafka.TCP(strings.Split(cfg.KafkaBrokers, ",")...),
			Topic:    cfg.KafkaTopic,
			Balancer: &kafka.LeastBytes{},
		}
		defer events.Close()
	} else {
		logger.Log.Warnw("KAFKA_BROKERS not set, account events disabled")
	}

	// Object storage for avatars and cover images
	s3Client, err := storage.NewClient(ctx, cfg.S3Region, cfg.S3Endpoint, cfg.S3AccessKey, cfg.S3SecretKey)
	if err != nil {
		return fmt.Errorf("object storage client error: %w", err)
	}
	assets := storage.NewAssetStore(s3Client, cfg.S3Bucket, cfg.S3BaseURL)

	// Token and password services
	jwtSvc := tokens.New(
		cfg.JWTAccessSecret,
		cfg.JWTRefreshSecret,
		time.Duration(cfg.JWTAccessExpSecond)*time.Second,
		time.Duration(cfg.JWTRefreshExpSecond)*time.Second,
	)
	hasher := password.New(0)

	// Initialize repositories
	userReadRepo := repositories.NewUserReadRepository(db)
	userWriteRepo := repositories.NewUserWriteRepository(db)
	subscriptionRepo := repositories.NewSubscriptionRepository(db, cfg.SubscriptionUnique)
	watchHistoryRepo := repositories.NewWatchHistoryRepository(db)
	subscriberCache := repositories.NewSubscriberCountCacheRepository(rdb, time.Duration(cfg.CacheExpSecond)*time.Second)

	// Initialize services
	var eventWriter services.EventWriter
	if events != nil {
		eventWriter = events
	}
	authService := services.NewAuthService(userReadRepo, userWriteRepo, jwtSvc, hasher, assets, eventWriter)
	profileService := services.NewProfileService(userReadRepo, userWriteRepo, assets, eventWriter)
	channelService := services.NewChannelService(userReadRepo, subscriptionRepo, subscriptionRepo, subscriberCache, watchHistoryRepo, eventWriter)

	// Initialize handlers
	registerHandler := handlers.NewRegisterHandler(authService)
	loginHandler := handlers.NewLoginHandler(authService)
	refreshHandler := handlers.NewRefreshHandler(authService)
	logoutHandler := handlers.NewLogoutHandler(authService)
	currentUserHandler := handlers.NewCurrentUserHandler()
	updateAccountHandler := handlers.NewUpdateAccountHandler(profileService)
	changePasswordHandler := handlers.NewChangePasswordHandler(authService)
	updateAvatarHandler := handlers.NewUpdateAvatarHandler(profileService)
	updateCoverHandler := handlers.NewUpdateCoverImageHandler(profileService)
	channelProfileHandler := handlers.NewChannelProfileHandler(channelService)
	subscribeHandler := handlers.NewSubscribeHandler(channelService)
	unsubscribeHandler := handlers.NewUnsubscribeHandler(channelService)
	watchHistoryHandler := handlers.NewWatchHistoryHandler(channelService)

	// Setup router
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware(logger.Log))

	authMiddleware := middlewares.AuthMiddleware(jwtSvc, userReadRepo)

	r.Route("/api/v1/users", func(r chi.Router) {
		// Public routes
		r.Post("/register", registerHandler)
		r.Post("/login", loginHandler)
		r.Post("/refresh", refreshHandler)

		// Protected routes with session middleware
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Post("/logout", logoutHandler)
			r.Post("/password", changePasswordHandler)
			r.Get("/me", currentUserHandler)
			r.Patch("/account", updateAccountHandler)
			r.Patch("/avatar", updateAvatarHandler)
			r.Patch("/cover", updateCoverHandler)
			r.Get("/c/{username}", channelProfileHandler)
			r.Post("/c/{username}/subscribe", subscribeHandler)
			r.Delete("/c/{username}/subscribe", unsubscribeHandler)
			r.Get("/history", watchHistoryHandler)
		})
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s:%s/swagger/doc.json", cfg.AppHost, cfg.AppPort)),
	))

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.AppHost, cfg.AppPort),
		Handler: r,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		logger.Log.Infof("HTTP server listening on %s:%s", cfg.AppHost, cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}

	logger.Log.Info("HTTP server stopped gracefully")
	return nil
}
