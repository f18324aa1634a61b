package bootstrap

import (
	"context"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"voice_server/adapter/out/persistence"
	"voice_server/adapter/out/provider"
	"voice_server/config"
	"voice_server/core/agent/llm"
	"voice_server/core/domain"
	"voice_server/core/port/out"
	"voice_server/core/service/reply"
	"voice_server/core/service/voice"
	"voice_server/pkg/cache"
	"voice_server/pkg/logger"
)

// Dependencies holds every wired component of the server.
type Dependencies struct {
	Redis        *redis.Client
	LLMClient    *llm.Client
	Channels     map[domain.Channel]*provider.MemoryChannelAdapter
	VoiceService *voice.Service
	ReplyService *reply.Service
	BatchDrafter *reply.BatchDrafter
}

// NewDependencies wires the dependency graph. Redis is optional: without
// REDIS_URL the profile simply is not durable across restarts.
func NewDependencies(cfg *config.Config) (*Dependencies, func(), error) {
	var redisClient *redis.Client
	var profileRepo out.ProfileRepository

	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		redisClient = redis.NewClient(opts)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.WithError(err).Warn("redis unreachable, profile durability disabled")
			_ = redisClient.Close()
			redisClient = nil
		}
		cancel()
	}
	if redisClient != nil {
		ttl := time.Duration(cfg.ProfileTTLDay) * 24 * time.Hour
		profileRepo = persistence.NewRedisProfileRepository(cache.NewRedisCache(redisClient), ttl)
		logger.Info("profile durability enabled (ttl: %dd)", cfg.ProfileTTLDay)
	}

	llmClient := llm.NewClient(llm.ClientConfig{
		APIKey:      cfg.OpenAIAPIKey,
		Model:       cfg.LLMModel,
		MaxTokens:   cfg.LLMMaxTokens,
		Temperature: cfg.LLMTemperature,
		Timeout:     cfg.LLMTimeout,
	})
	if cfg.OpenAIAPIKey == "" {
		logger.Warn("OPENAI_API_KEY not set, all generative calls will degrade to heuristics")
	}

	channels := map[domain.Channel]*provider.MemoryChannelAdapter{
		domain.ChannelEmail: provider.NewMemoryChannelAdapter(domain.ChannelEmail),
		domain.ChannelSlack: provider.NewMemoryChannelAdapter(domain.ChannelSlack),
		domain.ChannelTeams: provider.NewMemoryChannelAdapter(domain.ChannelTeams),
	}
	adapters := make([]out.ChannelAdapter, 0, len(channels))
	for _, a := range channels {
		adapters = append(adapters, a)
	}

	var refiner voice.StyleRefiner
	if cfg.OpenAIAPIKey != "" {
		refiner = llmClient
	}
	voiceService := voice.NewService(refiner, adapters, profileRepo)

	replyService := reply.NewService(llmClient, voiceService)

	zlog := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).
		With().Timestamp().Str("component", "batch_drafter").Logger()
	drafter := reply.NewBatchDrafter(replyService, cfg.DraftBatchSize, zlog)

	deps := &Dependencies{
		Redis:        redisClient,
		LLMClient:    llmClient,
		Channels:     channels,
		VoiceService: voiceService,
		ReplyService: replyService,
		BatchDrafter: drafter,
	}

	cleanup := func() {
		if redisClient != nil {
			_ = redisClient.Close()
		}
	}
	return deps, cleanup, nil
}
