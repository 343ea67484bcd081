// Command list-models prints the generation models available to the
// configured Gemini API key. Useful for checking model availability
// before changing the configured model.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/adecos/ads-copilot/internal/config"
	"github.com/adecos/ads-copilot/internal/genai"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	timeout := flag.Duration("timeout", 30*time.Second, "request timeout")
	flag.Parse()

	cfg, err := config.LoadFromEnv(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Generation.Gemini.APIKey == "" {
		log.Fatal("GOOGLE_API_KEY is required")
	}

	client := genai.NewGeminiClient(cfg.Generation.Gemini)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	models, err := client.ListModels(ctx)
	if err != nil {
		log.Fatalf("Failed to list models: %v", err)
	}

	fmt.Printf("Available models (%d):\n\n", len(models))
	for _, m := range models {
		name := strings.TrimPrefix(m.Name, "models/")
		fmt.Printf("  %s\n", name)
		if m.DisplayName != "" {
			fmt.Printf("      display: %s\n", m.DisplayName)
		}
		if len(m.GenerationMethods) > 0 {
			fmt.Printf("      methods: %s\n", strings.Join(m.GenerationMethods, ", "))
		}
	}
	fmt.Printf("\nConfigured model: %s\n", cfg.Generation.Gemini.Model)
}
