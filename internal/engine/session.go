package engine

import (
	"context"

	"go-jobwatch-engine/internal/config"
	"go-jobwatch-engine/internal/extract"
	"go-jobwatch-engine/internal/netminer"
)

// Session is one live browser page scoped to a single extraction call.
// The real implementation (internal/browser) wraps a playwright page plus
// its context; tests substitute a double that asserts teardown behavior.
//
// Wait/scroll methods are best effort: their timeouts are tolerated and
// never surface as errors. Only Goto failure is fatal for the call.
type Session interface {
	// OnResponse registers the network listener. Must be called before
	// Goto so in-flight responses are not missed.
	OnResponse(handler func(netminer.Response))
	Goto(url string, timeoutMs float64) error
	WaitForNetworkIdle(timeoutMs float64)
	DismissConsent()
	URL() string
	Title() string
	Frames() []extract.Frame
	WaitForTextVisible(text string, timeoutMs float64)
	WaitMillis(ms float64)
	ScrollToBottom()
	ScrollToTop()
	Content() (string, error)
	// CaptureScreenshot saves a debug capture when configured; best effort.
	CaptureScreenshot(label string)
	// Close tears down the page, context, and browser. Idempotent from the
	// engine's side: called exactly once per launch, on every exit path.
	Close() error
}

// LaunchFunc starts a browser session. A failure is fatal for the call.
type LaunchFunc func(ctx context.Context, cfg *config.Config) (Session, error)
