// Load envs from .env
// Load YAML config
// Provide default values

package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// UseServerlessChromium selects the serverless-compatible Chromium
	// binary instead of the locally installed one.
	UseServerlessChromium bool   `yaml:"use_serverless_chromium" env:"USE_SERVERLESS_CHROMIUM"`
	ChromiumPath          string `yaml:"chromium_path" env:"CHROMIUM_PATH"`

	// ProxyURL routes browser traffic through an outbound proxy (e.g.
	// residential) so job sites don't block datacenter IPs.
	ProxyURL string `yaml:"proxy_url" env:"PLAYWRIGHT_PROXY_URL"`

	// ScreenshotDir enables debug captures when a blocked signature is
	// detected. Empty disables capture.
	ScreenshotDir string `yaml:"screenshot_dir" env:"SCREENSHOT_DIR"`

	NavigationTimeoutMs float64 `yaml:"navigation_timeout_ms"`
}

func Load() *Config {
	_ = godotenv.Load()

	//Load yaml config
	cfg := &Config{}

	data, err := os.ReadFile("configs/config.yaml")
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			log.Fatalf("Error parsing config.yaml: %v", err)
		}
	}

	//Override with env vars
	if os.Getenv("USE_SERVERLESS_CHROMIUM") == "1" || os.Getenv("VERCEL") == "1" {
		cfg.UseServerlessChromium = true
	}
	if path := os.Getenv("CHROMIUM_PATH"); path != "" {
		cfg.ChromiumPath = path
	}
	if proxy := firstEnv("PLAYWRIGHT_PROXY_URL", "HTTPS_PROXY", "HTTP_PROXY"); proxy != "" {
		cfg.ProxyURL = proxy
	}
	if dir := os.Getenv("SCREENSHOT_DIR"); dir != "" {
		cfg.ScreenshotDir = dir
	}

	//Set default values if not set
	if cfg.NavigationTimeoutMs == 0 {
		cfg.NavigationTimeoutMs = 30000
	}

	return cfg
}

func firstEnv(keys ...string) string {
	for _, key := range keys {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}
