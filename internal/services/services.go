package services

import (
	"github.com/lk16/shobu/internal/bot"
	"github.com/lk16/shobu/internal/config"
	"github.com/lk16/shobu/internal/repository"
	"github.com/redis/go-redis/v9"
)

// Services contains the connections to the external services and the shared game state.
type Services struct {
	// Redis is nil when no Redis URL is configured.
	Redis *redis.Client

	Bot   *bot.Service
	Games *repository.GameRepository
}

func InitServices(cfg *config.ServerConfig) (*Services, error) {
	var (
		redisClient *redis.Client
		cache       bot.Cache
	)

	if cfg.RedisURL != "" {
		client, err := InitRedis(cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		redisClient = client
		cache = repository.NewRedisMoveCache(client, cfg.BotCacheTTL)
	} else {
		cache = repository.NewMemoryMoveCache(cfg.BotCacheTTL)
	}

	return NewServices(redisClient, bot.NewService(bot.NewRunner(cfg), cache)), nil
}

// NewServices creates Services around an existing bot service with an empty game repository.
func NewServices(redisClient *redis.Client, botService *bot.Service) *Services {
	return &Services{
		Redis: redisClient,
		Bot:   botService,
		Games: repository.NewGameRepository(),
	}
}

// Close releases the connections.
func (s *Services) Close() error {
	if s.Redis == nil {
		return nil
	}
	return s.Redis.Close()
}
