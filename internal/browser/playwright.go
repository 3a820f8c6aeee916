// Package browser owns the playwright wiring: launching Chromium, building
// the hardened browsing context, and exposing it to the engine as a Session.

package browser

import (
	"context"
	"fmt"
	"net/url"

	"github.com/playwright-community/playwright-go"

	"go-jobwatch-engine/internal/config"
	"go-jobwatch-engine/internal/engine"
)

const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Launch starts a headless Chromium and returns a Session scoped to one
// extraction call. The caller must Close it on every exit path.
func Launch(ctx context.Context, cfg *config.Config) (engine.Session, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("start playwright driver: %w", err)
	}

	args := []string{
		"--no-sandbox",
		"--disable-setuid-sandbox",
		"--disable-blink-features=AutomationControlled",
	}
	if cfg.UseServerlessChromium {
		// Serverless runtimes have no /dev/shm worth speaking of and no
		// process sandboxing.
		args = append(args, "--disable-dev-shm-usage", "--single-process", "--no-zygote")
	}
	launchOpts := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
		Args:     args,
	}
	if cfg.ChromiumPath != "" {
		launchOpts.ExecutablePath = playwright.String(cfg.ChromiumPath)
	}

	browser, err := pw.Chromium.Launch(launchOpts)
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("launch chromium: %w", err)
	}

	contextOpts := playwright.BrowserNewContextOptions{
		UserAgent: playwright.String(userAgent),
		Viewport:  &playwright.Size{Width: 1280, Height: 800},
		Locale:    playwright.String("en-US"),
	}
	if cfg.ProxyURL != "" {
		proxy, err := proxyFromURL(cfg.ProxyURL)
		if err != nil {
			browser.Close()
			pw.Stop()
			return nil, fmt.Errorf("proxy config: %w", err)
		}
		contextOpts.Proxy = proxy
	}

	browserCtx, err := browser.NewContext(contextOpts)
	if err != nil {
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("create browser context: %w", err)
	}

	if err := browserCtx.AddInitScript(playwright.Script{Content: playwright.String(stealthInitScript)}); err != nil {
		browserCtx.Close()
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("install stealth script: %w", err)
	}

	page, err := browserCtx.NewPage()
	if err != nil {
		browserCtx.Close()
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("create page: %w", err)
	}

	return &session{
		pw:            pw,
		browser:       browser,
		context:       browserCtx,
		page:          page,
		screenshotDir: cfg.ScreenshotDir,
	}, nil
}

// proxyFromURL splits a proxy URL into playwright's server/credentials
// shape. Credentials travel in the URL userinfo, not the server string.
func proxyFromURL(raw string) (*playwright.Proxy, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", raw, err)
	}
	if u.Scheme == "" || u.Hostname() == "" {
		return nil, fmt.Errorf("proxy URL %q missing scheme or host", raw)
	}

	port := u.Port()
	if port == "" {
		if u.Scheme == "https" {
			port = "443"
		} else {
			port = "80"
		}
	}

	proxy := &playwright.Proxy{Server: fmt.Sprintf("%s://%s:%s", u.Scheme, u.Hostname(), port)}
	if u.User != nil {
		if username := u.User.Username(); username != "" {
			proxy.Username = playwright.String(username)
		}
		if password, ok := u.User.Password(); ok {
			proxy.Password = playwright.String(password)
		}
	}
	return proxy, nil
}
