package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/adecos/ads-copilot/internal/adsdata"
	"github.com/adecos/ads-copilot/internal/agent"
	"github.com/adecos/ads-copilot/internal/api"
	"github.com/adecos/ads-copilot/internal/config"
	"github.com/adecos/ads-copilot/internal/genai"
	"github.com/adecos/ads-copilot/internal/pkg/logger"
	"github.com/adecos/ads-copilot/internal/prompts"
)

func main() {
	log.Println("╔════════════════════════════════════════════╗")
	log.Println("║  Ads Copilot API (cmd/server/main.go)      ║")
	log.Println("╚════════════════════════════════════════════╝")

	cfg, err := config.LoadFromEnv("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if os.Getenv("DEBUG") == "true" {
		logger.SetLevel(logger.DEBUG)
	}

	ctx := context.Background()

	gen, err := buildGenerator(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize generation backend: %v", err)
	}

	data, closeData, err := buildDataService(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize ads data backend: %v", err)
	}
	defer closeData()

	renderer, err := prompts.New()
	if err != nil {
		log.Fatalf("Failed to parse prompt templates: %v", err)
	}

	copilot := agent.New(gen, data, renderer, cfg.Agent)
	handlers := api.NewHandlers(copilot)

	var limiter *api.RateLimiter
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Printf("Redis unreachable (%v), rate limiting disabled", err)
		} else {
			limiter = api.NewRateLimiter(redisClient, cfg.Redis.RateLimitPerMinute)
			log.Printf("Rate limiting enabled: %d requests/minute per IP", cfg.Redis.RateLimitPerMinute)
		}
	}

	server := api.NewServer(handlers, limiter)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.Server.GetHost(), cfg.Server.Port)
		log.Printf("Starting server on %s (provider=%s, data=%s)", addr, cfg.Generation.Provider, cfg.AdsData.Backend)
		if err := server.ListenAndServe(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-done
	log.Println("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}

func buildGenerator(ctx context.Context, cfg *config.Config) (genai.Generator, error) {
	switch cfg.Generation.Provider {
	case "gemini":
		if cfg.Generation.Gemini.APIKey == "" {
			return nil, fmt.Errorf("GOOGLE_API_KEY is required for the gemini provider")
		}
		return genai.NewGeminiClient(cfg.Generation.Gemini), nil
	case "bedrock":
		return genai.NewBedrockClient(ctx, cfg.Generation.Bedrock)
	default:
		return nil, fmt.Errorf("unknown generation provider %q", cfg.Generation.Provider)
	}
}

func buildDataService(cfg *config.Config) (adsdata.Service, func(), error) {
	switch cfg.AdsData.Backend {
	case "postgres":
		if cfg.AdsData.DatabaseURL == "" {
			return nil, nil, fmt.Errorf("DATABASE_URL is required for the postgres backend")
		}
		svc, err := adsdata.NewPostgresService(cfg.AdsData.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return svc, func() { svc.Close() }, nil
	case "http":
		if cfg.AdsData.BaseURL == "" {
			return nil, nil, fmt.Errorf("ADS_DATA_BASE_URL is required for the http backend")
		}
		return adsdata.NewHTTPService(cfg.AdsData), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown ads data backend %q", cfg.AdsData.Backend)
	}
}
