package main

import (
	"log"
	"os"
	"time"

	"storefront/internal/config"
	httpctrl "storefront/internal/controllers/http"
	mmysql "storefront/internal/infra/mysql"
	"storefront/internal/infra/rabbitmq"
	"storefront/internal/repository"
	"storefront/internal/repository/jsonfile"
	mysqlrepo "storefront/internal/repository/mysql"
	"storefront/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.LoadConfig()

	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.JSONFormatter{})
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
		logger.Warnf("invalid LOG_LEVEL %q, using %s", cfg.LogLevel, level)
	}
	logger.SetLevel(level)

	var (
		productRepo repository.ProductRepository
		cartRepo    repository.CartRepository
		orderRepo   repository.OrderRepository
		userRepo    repository.UserRepository
	)

	switch cfg.StoreBackend {
	case "mysql":
		db, err := mmysql.NewMySQLFromEnv()
		if err != nil {
			log.Fatalf("db: connect: %v", err)
		}
		sqlDB, _ := db.DB()
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetMaxIdleConns(20)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)

		productRepo = mysqlrepo.NewProductRepository(db, logger)
		cartRepo = mysqlrepo.NewCartRepository(db, logger)
		orderRepo = mysqlrepo.NewOrderRepository(db, logger)
		userRepo = mysqlrepo.NewUserRepository(db, logger)
		logger.Info("using mysql store")
	case "jsonfile":
		store, err := jsonfile.NewStore(cfg.DataDir)
		if err != nil {
			log.Fatalf("store: init: %v", err)
		}
		productRepo = jsonfile.NewProductRepository(store, logger)
		cartRepo = jsonfile.NewCartRepository(store, logger)
		orderRepo = jsonfile.NewOrderRepository(store, logger)
		userRepo = jsonfile.NewUserRepository(store, logger)
		logger.WithField("dataDir", cfg.DataDir).Info("using flat-file store")
	default:
		log.Fatalf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}

	catalog := services.NewCatalogService(productRepo, logger)

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:         cfg.RedisAddr,
			DialTimeout:  2 * time.Second,
			ReadTimeout:  500 * time.Millisecond,
			WriteTimeout: 500 * time.Millisecond,
		})
		catalog.SetRedisClient(redisClient)
		logger.WithField("addr", cfg.RedisAddr).Info("product cache enabled")
	}

	var publisher rabbitmq.PublisherInterface
	if cfg.RabbitMQURL != "" {
		pub, err := rabbitmq.NewPublisher(cfg.RabbitMQURL, "shop.events", logger)
		if err != nil {
			log.Fatalf("rabbitmq: connect: %v", err)
		}
		defer pub.Close()
		publisher = pub
		logger.Info("event publisher connected")
	}

	cart := services.NewCartService(cartRepo, catalog, logger)
	orders := services.NewOrderService(orderRepo, catalog, cartRepo, publisher, logger)
	users := services.NewUserService(userRepo, logger)

	handler := httpctrl.NewHandler(catalog, cart, orders, users, redisClient, logger)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	handler.RegisterRoutes(r)

	logger.WithField("port", cfg.Port).Info("starting storefront server")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server run: %v", err)
	}
}
