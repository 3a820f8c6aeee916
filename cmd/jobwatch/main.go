package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"go-jobwatch-engine/internal/browser"
	"go-jobwatch-engine/internal/config"
	"go-jobwatch-engine/internal/engine"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatalf("usage: %s <job-search-url>", os.Args[0])
	}
	pageURL := os.Args[1]

	//load config
	cfg := config.Load()
	log.Printf("🔧 Config loaded. Navigation timeout: %.0fms", cfg.NavigationTimeoutMs)

	//setup context with timeout = 3 mins per page
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	log.Printf("🚀 Extracting job listings from %s ...", pageURL)

	eng := engine.New(cfg, browser.Launch)
	result := eng.Extract(ctx, pageURL)

	log.Printf("✅ Done. %d titles, %d structured jobs.", len(result.Titles), len(result.Jobs))
	if result.Debug.BlockedHint != "" {
		log.Printf("⚠️ Page looked blocked: %s", result.Debug.BlockedHint)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("❌ Failed to encode result: %v", err)
	}
	os.Stdout.Write(out)
	os.Stdout.Write([]byte("\n"))
}
