package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/quizpoker/quizpoker/internal/dependencies/clock"
	"github.com/quizpoker/quizpoker/internal/dependencies/random"
	"github.com/quizpoker/quizpoker/internal/notify"
	"github.com/quizpoker/quizpoker/internal/services/betting"
	"github.com/quizpoker/quizpoker/internal/services/question"
	"github.com/quizpoker/quizpoker/internal/services/session"
	"github.com/quizpoker/quizpoker/internal/services/showdown"
	"github.com/quizpoker/quizpoker/internal/services/turn"
	"github.com/quizpoker/quizpoker/internal/storage"
	"github.com/quizpoker/quizpoker/internal/storage/memory"
	redisstorage "github.com/quizpoker/quizpoker/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	TurnService       *turn.Service
	BettingService    *betting.Service
	ShowdownService   *showdown.Service
	QuestionService   *question.Service
	SessionController *session.Controller
	Registry          *session.Registry
	HubManager        *notify.HubManager
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	return newWithDependencies(store, clk, rnd, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, logger *slog.Logger) *App {
	// Create services
	turnService := turn.New()
	bettingService := betting.New()
	showdownService := showdown.New()
	questionService := question.New(store, clk, rnd, logger)
	sessionController := session.NewController(
		store,
		turnService,
		bettingService,
		showdownService,
		questionService,
		clk,
		rnd,
		logger,
	)
	registry := session.NewRegistry()
	hubManager := notify.NewHubManager(logger)

	return &App{
		Storage:           store,
		Clock:             clk,
		Random:            rnd,
		TurnService:       turnService,
		BettingService:    bettingService,
		ShowdownService:   showdownService,
		QuestionService:   questionService,
		SessionController: sessionController,
		Registry:          registry,
		HubManager:        hubManager,
	}
}
