package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"

	"github.com/vasapolrittideah/devconnector-api/services/social-service/internal/config"
	"github.com/vasapolrittideah/devconnector-api/services/social-service/internal/handler"
	"github.com/vasapolrittideah/devconnector-api/services/social-service/internal/repository"
	"github.com/vasapolrittideah/devconnector-api/services/social-service/internal/usecase"
	"github.com/vasapolrittideah/devconnector-api/shared/auth"
	"github.com/vasapolrittideah/devconnector-api/shared/discovery"
	"github.com/vasapolrittideah/devconnector-api/shared/mailer"
	"github.com/vasapolrittideah/devconnector-api/shared/provider"
	"github.com/vasapolrittideah/devconnector-api/shared/security"
	"github.com/vasapolrittideah/devconnector-api/shared/utilities"
)

const shutdownTimeout = 5 * time.Second

type stores struct {
	users    repository.UserRepository
	profiles repository.ProfileRepository
	posts    repository.PostRepository
	pinger   handler.Pinger
	close    func(ctx context.Context) error
}

func main() {
	_ = godotenv.Load()

	bootLogger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	cfg := config.NewSocialServiceConfig(&bootLogger)
	logger := newLogger(cfg)

	ctx := context.Background()
	store := newStores(ctx, cfg, logger)

	hasher, err := security.NewPasswordHasher(security.Algorithm(cfg.PasswordHashAlgorithm))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create password hasher")
	}

	jwtAuth := auth.NewJWTAuthenticator(cfg.JWTSecret, cfg.TokenExpiresIn, auth.WithIssuer(cfg.TokenIssuer))
	gitHub := provider.NewGitHubProvider(ctx, cfg.GitHubAPIURL, cfg.GitHubToken, cfg.GitHubTimeout)

	var welcomeMailer usecase.WelcomeMailer
	if m := mailer.NewMailer(logger); m != nil {
		welcomeMailer = m
	}

	router := handler.NewRouter(handler.RouterConfig{
		ServiceName:        cfg.ServiceName,
		AuthUsecase:        usecase.NewAuthUsecase(store.users, hasher, jwtAuth, welcomeMailer, logger),
		PostUsecase:        usecase.NewPostUsecase(store.posts, store.users),
		ProfileUsecase:     usecase.NewProfileUsecase(store.profiles, store.users, gitHub),
		TokenVerifier:      jwtAuth,
		Store:              store.pinger,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		Logger:             logger,
	})

	server := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", server.Addr).Msg("http server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	grpcServer, healthServer := startGRPCHealth(cfg, logger)
	registrar, serviceID := registerService(cfg, logger)

	waitForShutdown(logger)

	if healthServer != nil {
		utilities.MarkNotServing(healthServer)
	}
	if registrar != nil {
		if err := registrar.Deregister(serviceID); err != nil {
			logger.Error().Err(err).Msg("failed to deregister service")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http server shutdown failed")
	}
	if grpcServer != nil {
		grpcServer.GracefulStop()
	}
	if err := store.close(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to close store")
	}

	logger.Info().Msg("server stopped")
}

func newLogger(cfg *config.SocialServiceConfig) *zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if cfg.IsDevelopment() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	} else {
		logger = zerolog.New(os.Stdout)
	}
	logger = logger.Level(level).With().Timestamp().Str("service", cfg.ServiceName).Logger()

	return &logger
}

func newStores(ctx context.Context, cfg *config.SocialServiceConfig, logger *zerolog.Logger) *stores {
	if cfg.StoreDriver == config.StoreDriverMemory {
		logger.Warn().Msg("using in-memory store, data is lost on restart")
		return &stores{
			users:    repository.NewUserMemoryRepository(),
			profiles: repository.NewProfileMemoryRepository(),
			posts:    repository.NewPostMemoryRepository(),
			close:    func(context.Context) error { return nil },
		}
	}

	client, err := mongo.Connect(options.Client().
		ApplyURI(cfg.MongoURI).
		SetConnectTimeout(cfg.MongoConnectTimeout).
		SetServerSelectionTimeout(cfg.MongoConnectTimeout))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to mongodb")
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.MongoConnectTimeout)
	defer cancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		logger.Fatal().Err(err).Msg("failed to ping mongodb")
	}
	logger.Info().Str("database", cfg.MongoDatabase).Msg("connected to mongodb")

	db := client.Database(cfg.MongoDatabase)

	return &stores{
		users:    repository.NewUserMongoRepository(ctx, logger, db),
		profiles: repository.NewProfileMongoRepository(ctx, logger, db),
		posts:    repository.NewPostMongoRepository(ctx, logger, db),
		pinger: handler.PingFunc(func(ctx context.Context) error {
			return client.Ping(ctx, readpref.Primary())
		}),
		close: client.Disconnect,
	}
}

func startGRPCHealth(cfg *config.SocialServiceConfig, logger *zerolog.Logger) (*grpc.Server, *health.Server) {
	if cfg.GRPCHealthAddr == "" {
		return nil, nil
	}

	lis, err := net.Listen("tcp", cfg.GRPCHealthAddr)
	if err != nil {
		logger.Fatal().Err(err).Str("addr", cfg.GRPCHealthAddr).Msg("failed to listen for grpc health")
	}

	grpcServer := grpc.NewServer()
	healthServer := utilities.RegisterHealthServer(grpcServer)

	go func() {
		logger.Info().Str("addr", cfg.GRPCHealthAddr).Msg("grpc health server starting")
		if err := grpcServer.Serve(lis); err != nil {
			logger.Error().Err(err).Msg("grpc health server stopped")
		}
	}()

	return grpcServer, healthServer
}

func registerService(cfg *config.SocialServiceConfig, logger *zerolog.Logger) (*discovery.ConsulRegistrar, string) {
	if cfg.ConsulAddr == "" {
		return nil, ""
	}

	registrar, err := discovery.NewConsulRegistrar(cfg.ConsulAddr, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create consul registrar")
	}

	host := advertisedHost(cfg.HTTPHost)
	serviceID := discovery.ServiceID(cfg.ServiceName, host, cfg.HTTPPort)

	reg := discovery.Registration{
		ServiceName:   cfg.ServiceName,
		ServiceID:     serviceID,
		Address:       host,
		Port:          cfg.HTTPPort,
		HTTPHealthURL: fmt.Sprintf("http://%s/healthz", net.JoinHostPort(host, fmt.Sprint(cfg.HTTPPort))),
	}
	if cfg.GRPCHealthAddr != "" {
		_, grpcPort, err := net.SplitHostPort(cfg.GRPCHealthAddr)
		if err == nil {
			reg.GRPCHealthAddr = net.JoinHostPort(host, grpcPort)
		}
	}

	if err := registrar.Register(reg); err != nil {
		logger.Error().Err(err).Msg("failed to register with consul")
		return nil, ""
	}

	return registrar, serviceID
}

// advertisedHost replaces a wildcard listen host with the machine's hostname.
func advertisedHost(host string) string {
	if host != "" && host != "0.0.0.0" && host != "::" {
		return host
	}
	if hostname, err := os.Hostname(); err == nil {
		return hostname
	}
	return "localhost"
}

func waitForShutdown(logger *zerolog.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info().Str("signal", sig.String()).Msg("shutting down")
}
