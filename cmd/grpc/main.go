package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/config"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/catalog"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/i18n"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/logger"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/middleware"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/platform/broker"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/platform/cache"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/platform/postgres"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/platform/search"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/product"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/rpc"

	cartH "github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/cart/handler"
	cartRepoPkg "github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/cart/repository"
	cartUCPkg "github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/cart/usecase"

	catalogH "github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/catalog/handler"
	catalogUCPkg "github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/catalog/usecase"

	invH "github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/inventory/handler"
	invListenerPkg "github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/inventory/listener"
	invRepoPkg "github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/inventory/repository"
	invUCPkg "github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/inventory/usecase"

	prodH "github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/product/handler"
	prodRepoPkg "github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/product/repository"
	prodUCPkg "github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/product/usecase"

	storeH "github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/storefront/handler"
	storeRepoPkg "github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/storefront/repository"
	storeUCPkg "github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/storefront/usecase"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"
)

func main() {
	// 1. Configuration
	_ = godotenv.Load()
	cfg := config.LoadEnv()

	// 2. Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          "json",
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	if cfg.Server.AppEnv == "development" || cfg.Server.AppEnv == "dev" {
		logConfig.IsDevelopment = true
		logConfig.Encoding = cfg.Logger.Encoding
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	// 3. Messages
	translator, err := i18n.New(cfg.I18n.DefaultLanguage)
	if err != nil {
		appLogger.Fatal("Could not load translations", zap.Error(err))
	}

	// 4. Database
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

	prodRepo := prodRepoPkg.NewPGRepository(db)
	storeRepo := storeRepoPkg.NewPGRepository(db)
	invRepo := invRepoPkg.NewPGRepository(db)

	// 5. Redis
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

	listingCache := catalog.NewListingCache(redisClient, cfg.Catalog.CacheTTL)
	cartRepo := cartRepoPkg.NewRedisRepository(redisClient)

	// 6. Kafka
	kafkaConsumer := broker.NewConsumer(&broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.Topic,
		GroupID: cfg.Kafka.GroupID,
	})
	defer kafkaConsumer.Close()
	appLogger.Info("Kafka consumer ready", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))

	// 7. Elasticsearch (optional)
	var indexer product.SearchIndexer
	var searcher catalog.Searcher
	if cfg.Elastic.Enabled {
		esClient, err := search.NewClient(&search.Config{
			Addresses: cfg.Elastic.Addresses,
			Username:  cfg.Elastic.Username,
			Password:  cfg.Elastic.Password,
		})
		if err != nil {
			appLogger.Warn("Could not connect to Elasticsearch, catalog search falls back to in-memory matching", zap.Error(err))
		} else {
			index := catalog.NewSearchIndex(esClient, cfg.Elastic.Index)
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			if err := index.EnsureIndex(ctx); err != nil {
				appLogger.Warn("Could not create search index", zap.String("index", cfg.Elastic.Index), zap.Error(err))
			}
			cancel()
			indexer, searcher = index, index
			appLogger.Info("Connected to Elasticsearch", zap.Strings("addresses", cfg.Elastic.Addresses))
		}
	}

	// 8. UseCases
	storeUC := storeUCPkg.NewStorefrontUseCase(storeRepo, appLogger)
	prodUC := prodUCPkg.NewProductUseCase(prodRepo, listingCache, indexer, appLogger)
	catalogUC := catalogUCPkg.NewCatalogUseCase(prodRepo, listingCache, searcher, storeUC, appLogger)
	invUC := invUCPkg.NewInventoryUseCase(invRepo, redisClient, listingCache, appLogger)
	cartUC, err := cartUCPkg.NewCartUseCase(cartRepo, redisClient, prodRepo, storeUC, cfg.Cart.TTL, appLogger)
	if err != nil {
		appLogger.Fatal("Could not create cart use case", zap.Error(err))
	}

	// 9. Listeners
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	invListener := invListenerPkg.NewInventoryListener(kafkaConsumer, invUC, appLogger)
	go invListener.Start(ctx)

	// 10. gRPC server
	port := cfg.Server.GRPCPort
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	lis, err := net.Listen("tcp", port)
	if err != nil {
		appLogger.Fatal("failed to listen", zap.String("port", port), zap.Error(err))
	}

	grpcServer := grpc.NewServer(
		middleware.Chain(appLogger, rpc.NewErrorMapper(translator, appLogger)),
	)

	catalogH.Register(grpcServer, catalogH.NewCatalogHandler(catalogUC, appLogger))
	cartH.Register(grpcServer, cartH.NewCartHandler(cartUC, appLogger))
	prodH.Register(grpcServer, prodH.NewProductHandler(prodUC, appLogger))
	storeH.Register(grpcServer, storeH.NewStorefrontHandler(storeUC, appLogger))
	invH.Register(grpcServer, invH.NewInventoryHandler(invUC, appLogger))

	reflection.Register(grpcServer)

	appLogger.Info("Starting gRPC server", zap.String("port", port))

	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	cancel()
	grpcServer.GracefulStop()
	appLogger.Info("Server stopped")
}
