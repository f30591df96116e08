package container

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"

	"storymap-backend/internal/config"
	"storymap-backend/internal/infrastructure/cache"
	"storymap-backend/internal/infrastructure/database"
	"storymap-backend/internal/infrastructure/fetcher"
	"storymap-backend/internal/infrastructure/metrics"
	"storymap-backend/internal/infrastructure/queue"
	pkgdb "storymap-backend/pkg/database"

	placeHandler "storymap-backend/internal/domains/place/handler"
	placeRepo "storymap-backend/internal/domains/place/repository"
	placeService "storymap-backend/internal/domains/place/service"

	pollHandler "storymap-backend/internal/domains/poll/handler"
	pollRepo "storymap-backend/internal/domains/poll/repository"
	pollService "storymap-backend/internal/domains/poll/service"

	questionHandler "storymap-backend/internal/domains/question/handler"
	questionRepo "storymap-backend/internal/domains/question/repository"
	questionService "storymap-backend/internal/domains/question/service"

	storyHandler "storymap-backend/internal/domains/story/handler"
	storyRepo "storymap-backend/internal/domains/story/repository"
	storyService "storymap-backend/internal/domains/story/service"

	traceHandler "storymap-backend/internal/domains/trace/handler"
	traceRepo "storymap-backend/internal/domains/trace/repository"
	traceService "storymap-backend/internal/domains/trace/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container is the root of the dependency graph shared by cmd/api and
// cmd/worker. Everything in it is built once and lives for the process.
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config    *config.Config
	DB        *database.PostgresDB
	Redis     *cache.RedisClient
	RedisOpt  asynq.RedisClientOpt
	Queue     *queue.Client
	TxManager pkgdb.TxManager
	Locker    cache.Locker
	Fetcher   fetcher.Fetcher
	Metrics   *metrics.Metrics
	Registry  *prometheus.Registry

	// ========================================
	// REPOSITORY LAYER
	// ========================================
	PlaceRepo    placeRepo.PlaceRepository
	QuestionRepo questionRepo.QuestionRepository
	StoryRepo    storyRepo.StoryRepository
	TraceRepo    traceRepo.TraceRepository
	PollRepo     pollRepo.PollRepository

	// ========================================
	// SERVICE LAYER
	// ========================================
	PlaceService       placeService.ServiceInterface
	QuestionService    questionService.ServiceInterface
	StoryService       storyService.ServiceInterface
	ModerationService  storyService.ModerationService
	MaintenanceService storyService.MaintenanceService
	TraceService       traceService.ServiceInterface
	EnrichmentService  traceService.EnrichmentService
	PollService        pollService.ServiceInterface

	// ========================================
	// HANDLER LAYER
	// ========================================
	PlaceHandler      *placeHandler.PlaceHandler
	QuestionHandler   *questionHandler.QuestionHandler
	StoryHandler      *storyHandler.StoryHandler
	ModerationHandler *storyHandler.ModerationHandler
	TraceHandler      *traceHandler.TraceHandler
	PollHandler       *pollHandler.PollHandler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer builds the graph in dependency order:
// config → Postgres → Redis → queue → repositories → services → handlers.
func NewContainer() (*Container, error) {
	log.Info().Msg("Initializing DI container")

	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Info().Str("environment", cfg.App.Environment).Msg("Config loaded")

	// ========================================
	// STEP 2: INITIALIZE DATABASE
	// ========================================
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(ctx); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db
	c.TxManager = pkgdb.NewTxManager(db.Pool)

	// ========================================
	// STEP 3: INITIALIZE REDIS + QUEUE
	// ========================================
	// Redis only backs slug locks and the task queue. Slug locks degrade to
	// no-ops and enqueue failures are logged, so a Redis outage is not fatal.
	c.Redis = cache.NewRedisClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := c.Redis.Connect(ctx); err != nil {
		log.Warn().Err(err).Msg("Redis connection failed (non-critical)")
	}
	c.Locker = cache.NewRedisLocker(c.Redis.Client)

	c.RedisOpt = asynq.RedisClientOpt{
		Addr:     cfg.Redis.Host,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
	c.Queue = queue.NewClient(c.RedisOpt)

	// ========================================
	// STEP 4: METRICS + FETCHER
	// ========================================
	c.Metrics = metrics.NewMetrics()
	c.Registry = prometheus.NewRegistry()
	c.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	if err := c.Metrics.Register(c.Registry); err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}
	c.Registry.MustRegister(db.Collectors()...)

	c.Fetcher = fetcher.NewArticleFetcher(cfg.Fetcher)

	// ========================================
	// STEP 5: REPOSITORIES → SERVICES → HANDLERS
	// ========================================
	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Info().Msg("DI container initialized")
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.PlaceRepo = placeRepo.NewPostgresPlaceRepository(pool)
	c.QuestionRepo = questionRepo.NewPostgresQuestionRepository(pool)
	c.StoryRepo = storyRepo.NewPostgresStoryRepository(pool)
	c.TraceRepo = traceRepo.NewPostgresTraceRepository(pool)
	c.PollRepo = pollRepo.NewPostgresPollRepository(pool)
}

func (c *Container) initServices() {
	slugs := placeService.NewSlugAssigner(
		c.PlaceRepo,
		c.Locker,
		c.Config.Slug.MaxAttempts,
		c.Config.Slug.LockTTL,
		c.Metrics,
	)
	c.PlaceService = placeService.NewPlaceService(c.PlaceRepo, slugs)

	c.QuestionService = questionService.NewQuestionService(c.QuestionRepo)

	// One story service backs the public, moderation and maintenance surfaces.
	stories := storyService.NewStoryService(
		c.StoryRepo,
		c.PlaceRepo,
		c.QuestionService,
		c.TxManager,
		c.Queue,
		c.Metrics,
	)
	c.StoryService = stories
	c.ModerationService = stories
	c.MaintenanceService = stories

	traces := traceService.NewTraceService(c.TraceRepo, c.PlaceRepo, c.Queue, c.Fetcher)
	c.TraceService = traces
	c.EnrichmentService = traces

	c.PollService = pollService.NewPollService(c.PollRepo, c.PlaceRepo)
}

func (c *Container) initHandlers() {
	c.PlaceHandler = placeHandler.NewPlaceHandler(c.PlaceService)
	c.QuestionHandler = questionHandler.NewQuestionHandler(c.QuestionService)
	c.StoryHandler = storyHandler.NewStoryHandler(c.StoryService)
	c.ModerationHandler = storyHandler.NewModerationHandler(c.ModerationService)
	c.TraceHandler = traceHandler.NewTraceHandler(c.TraceService)
	c.PollHandler = pollHandler.NewPollHandler(c.PollService)
}

// ========================================
// CLEANUP
// ========================================

// Cleanup releases resources in reverse construction order.
func (c *Container) Cleanup() {
	log.Info().Msg("Cleaning up container resources")

	if c.Queue != nil {
		if err := c.Queue.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close queue client")
		}
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close Redis")
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close database")
		}
	}

	log.Info().Msg("Container cleanup completed")
}
