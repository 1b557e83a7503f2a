package cmd

import (
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"

	"portfoliotracker/api"
	"portfoliotracker/internal/evolution"
	"portfoliotracker/internal/logger"
	"portfoliotracker/internal/repository"
	"portfoliotracker/internal/seed"
	"portfoliotracker/internal/service"
	"portfoliotracker/internal/util"

	"portfoliotracker/internal/postgres"
)

// Dependencies is the wired process graph plus the handles that need
// explicit teardown.
type Dependencies struct {
	ApiHandler  *api.ApiHandler
	Db          *sqlx.DB
	RedisClient *redis.Client
}

func CloseDependencies(deps *Dependencies) {
	log := logger.New()
	deps.ApiHandler.EvolutionManager.Shutdown()
	if err := deps.RedisClient.Close(); err != nil {
		log.Errorf("failed to close redis client: %v", err)
	}
	if err := deps.Db.Close(); err != nil {
		log.Errorf("failed to close db: %v", err)
	}
}

func InitializeDependencies() (*Dependencies, error) {
	log := logger.New()

	secrets, err := util.LoadSecrets()
	if err != nil {
		return nil, fmt.Errorf("failed to load secrets: %w", err)
	}

	db, err := postgres.NewDB(secrets.Db.ToConfig())
	if err != nil {
		return nil, err
	}
	if err := postgres.Migrate(db, "file://migrations"); err != nil {
		return nil, err
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     secrets.Redis.Addr,
		Password: secrets.Redis.Password,
		DB:       secrets.Redis.DB,
	})

	userRepository := repository.NewUserRepository(db)
	portfolioRepository := repository.NewPortfolioRepository(db)
	transactionRepository := repository.NewTransactionRepository(db)
	orderRepository := repository.NewOrderRepository(db)

	validationService := service.NewValidationService(portfolioRepository, userRepository)
	portfolioService := service.NewPortfolioService(portfolioRepository, transactionRepository, orderRepository)
	transactionService := service.NewTransactionService(transactionRepository, validationService)
	orderService := service.NewOrderService(orderRepository, validationService)
	userService := service.NewUserService(userRepository)
	seedService := seed.NewSeedService(
		db,
		"seeddata",
		log,
		userRepository,
		portfolioRepository,
		transactionRepository,
		orderRepository,
	)

	evolutionFeed := evolution.NewRedisFeed(redisClient)
	evolutionManager := evolution.NewManager(evolutionFeed, log)

	apiHandler := &api.ApiHandler{
		Logger:             log,
		ApiKey:             secrets.ApiKey,
		PortfolioService:   portfolioService,
		TransactionService: transactionService,
		OrderService:       orderService,
		UserService:        userService,
		SeedService:        seedService,
		EvolutionManager:   evolutionManager,
	}

	return &Dependencies{
		ApiHandler:  apiHandler,
		Db:          db,
		RedisClient: redisClient,
	}, nil
}
