package main

import (
	"context"
	"errors"
	"net"
	"os/signal"
	"strings"
	"syscall"
	"time"

	retailv1 "github.com/fekuna/omnipos-retail-service/api/retail/v1"
	"github.com/fekuna/omnipos-retail-service/config"
	"github.com/fekuna/omnipos-retail-service/pkg/broker"
	"github.com/fekuna/omnipos-retail-service/pkg/cache"
	"github.com/fekuna/omnipos-retail-service/pkg/database/postgres"
	"github.com/fekuna/omnipos-retail-service/pkg/i18n"
	"github.com/fekuna/omnipos-retail-service/pkg/logger"
	"github.com/fekuna/omnipos-retail-service/pkg/middleware"
	"github.com/fekuna/omnipos-retail-service/pkg/search"

	anaH "github.com/fekuna/omnipos-retail-service/internal/analytics/handler"
	anaRepoPkg "github.com/fekuna/omnipos-retail-service/internal/analytics/repository"
	anaUCPkg "github.com/fekuna/omnipos-retail-service/internal/analytics/usecase"

	invH "github.com/fekuna/omnipos-retail-service/internal/inventory/handler"
	invListenerPkg "github.com/fekuna/omnipos-retail-service/internal/inventory/listener"
	invRepoPkg "github.com/fekuna/omnipos-retail-service/internal/inventory/repository"
	invUCPkg "github.com/fekuna/omnipos-retail-service/internal/inventory/usecase"

	prodH "github.com/fekuna/omnipos-retail-service/internal/product/handler"
	prodRepoPkg "github.com/fekuna/omnipos-retail-service/internal/product/repository"
	prodUCPkg "github.com/fekuna/omnipos-retail-service/internal/product/usecase"

	saleH "github.com/fekuna/omnipos-retail-service/internal/sale/handler"
	saleIdemPkg "github.com/fekuna/omnipos-retail-service/internal/sale/idempotency"
	salePubPkg "github.com/fekuna/omnipos-retail-service/internal/sale/publisher"
	saleRepoPkg "github.com/fekuna/omnipos-retail-service/internal/sale/repository"
	saleUCPkg "github.com/fekuna/omnipos-retail-service/internal/sale/usecase"

	userH "github.com/fekuna/omnipos-retail-service/internal/user/handler"
	userRepoPkg "github.com/fekuna/omnipos-retail-service/internal/user/repository"
	userUCPkg "github.com/fekuna/omnipos-retail-service/internal/user/usecase"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load()
	cfg := config.LoadEnv()

	i18n.Init()

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
		FilePath:          cfg.Logger.File,
	}
	if cfg.Server.AppEnv == "development" || cfg.Server.AppEnv == "dev" {
		logConfig.IsDevelopment = true
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	// 3. Connect to Database
	db, err := postgres.NewPostgres(&postgres.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	// 4. Initialize Repositories
	prodRepo := prodRepoPkg.NewPGRepository(db)
	invRepo := invRepoPkg.NewPGRepository(db)
	saleRepo := saleRepoPkg.NewPGRepository(db)
	anaRepo := anaRepoPkg.NewPGRepository(db)
	userRepo := userRepoPkg.NewPGRepository(db)

	// 5. Initialize Redis
	redisClient, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))

	// 6. Initialize Kafka
	stockConsumer := broker.NewConsumer(&broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.StockTopic,
		GroupID: cfg.Kafka.InventoryGroup,
	})
	defer stockConsumer.Close()

	salesProducer := broker.NewProducer(&broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.SalesTopic,
	})
	defer salesProducer.Close()
	appLogger.Info("Kafka configured",
		zap.Strings("brokers", cfg.Kafka.Brokers),
		zap.String("stock_topic", cfg.Kafka.StockTopic),
		zap.String("sales_topic", cfg.Kafka.SalesTopic),
	)

	// 7. Initialize Elasticsearch; search falls back to Postgres without it
	esClient, err := search.NewClient(&search.Config{
		Addresses: cfg.Elastic.Addresses,
		Username:  cfg.Elastic.Username,
		Password:  cfg.Elastic.Password,
	})
	if err != nil {
		appLogger.Warn("Could not connect to Elasticsearch (Search features might be limited)", zap.Error(err))
		esClient = nil
	} else {
		appLogger.Info("Connected to Elasticsearch", zap.Strings("addresses", cfg.Elastic.Addresses))
	}

	// 8. Initialize UseCases
	prodUC := prodUCPkg.NewProductUseCase(prodRepo, redisClient, esClient, appLogger)
	invUC := invUCPkg.NewInventoryUseCase(invRepo, cfg.Inventory.LowStockThreshold, appLogger,
		invUCPkg.WithCatalogSync(prodUC),
	)
	saleUC := saleUCPkg.NewSaleUseCase(saleRepo, appLogger,
		saleUCPkg.WithPublisher(salePubPkg.NewKafkaPublisher(salesProducer)),
		saleUCPkg.WithPublishTimeout(cfg.Sale.PublishTimeout),
		saleUCPkg.WithCatalogSync(prodUC),
		saleUCPkg.WithIdempotencyStore(saleIdemPkg.NewRedisStore(redisClient, cfg.Sale.IdempotencyTTL)),
	)
	anaUC := anaUCPkg.NewAnalyticsUseCase(anaRepo, cfg.Sale.AnalyticsTopN, appLogger)
	userUC := userUCPkg.NewUserUseCase(userRepo, appLogger)

	invListener := invListenerPkg.NewInventoryListener(stockConsumer, invUC, appLogger)

	// 9. Initialize Handlers
	prodHandler := prodH.NewProductHandler(prodUC, appLogger)
	invHandler := invH.NewInventoryHandler(invUC, appLogger)
	saleHandler := saleH.NewSaleHandler(saleUC, appLogger)
	anaHandler := anaH.NewAnalyticsHandler(anaUC, appLogger)
	userHandler := userH.NewUserHandler(userUC, appLogger)

	// 10. Start gRPC Server
	port := cfg.Server.GRPCPort
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	lis, err := net.Listen("tcp", port)
	if err != nil {
		appLogger.Fatal("failed to listen", zap.String("port", port), zap.Error(err))
	}

	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			middleware.RecoveryInterceptor(appLogger),
			middleware.ContextInterceptor(),
			middleware.LoggingInterceptor(appLogger),
		),
	)

	retailv1.RegisterProductServiceServer(grpcServer, prodHandler)
	retailv1.RegisterInventoryServiceServer(grpcServer, invHandler)
	retailv1.RegisterSaleServiceServer(grpcServer, saleHandler)
	retailv1.RegisterAnalyticsServiceServer(grpcServer, anaHandler)
	retailv1.RegisterUserServiceServer(grpcServer, userHandler)

	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	reflection.Register(grpcServer)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return invListener.Start(gctx)
	})

	g.Go(func() error {
		appLogger.Info("Starting gRPC server", zap.String("port", port))
		if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		appLogger.Info("Shutting down server...")
		healthServer.Shutdown()
		grpcServer.GracefulStop()
		return nil
	})

	if err := g.Wait(); err != nil {
		appLogger.Error("server exited with error", zap.Error(err))
	}
	appLogger.Info("Server stopped")
}
