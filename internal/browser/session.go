package browser

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"

	"go-jobwatch-engine/internal/extract"
	"go-jobwatch-engine/internal/netminer"
)

// session adapts one playwright page to the engine's Session interface.
type session struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	page    playwright.Page

	screenshotDir string

	closeOnce sync.Once
	closeErr  error
}

func (s *session) OnResponse(handler func(netminer.Response)) {
	s.page.OnResponse(func(res playwright.Response) {
		handler(res)
	})
}

func (s *session) Goto(url string, timeoutMs float64) error {
	_, err := s.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(timeoutMs),
	})
	if err != nil {
		return fmt.Errorf("goto %s: %w", url, err)
	}
	return nil
}

func (s *session) WaitForNetworkIdle(timeoutMs float64) {
	// Job boards with polling widgets never go fully idle; the timeout is
	// the normal outcome there, not a failure.
	_ = s.page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State:   playwright.LoadStateNetworkidle,
		Timeout: playwright.Float(timeoutMs),
	})
}

func (s *session) URL() string {
	return s.page.URL()
}

func (s *session) Title() string {
	title, err := s.page.Title()
	if err != nil {
		return ""
	}
	return title
}

func (s *session) Frames() []extract.Frame {
	pwFrames := s.page.Frames()
	frames := make([]extract.Frame, 0, len(pwFrames))
	for _, f := range pwFrames {
		frames = append(frames, f)
	}
	return frames
}

func (s *session) WaitForTextVisible(text string, timeoutMs float64) {
	locator := s.page.Locator(textSelector(text)).First()
	_ = locator.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(timeoutMs),
	})
}

func (s *session) WaitMillis(ms float64) {
	s.page.WaitForTimeout(ms)
}

func (s *session) ScrollToBottom() {
	_, _ = s.page.Evaluate("window.scrollTo(0, document.body.scrollHeight)")
}

func (s *session) ScrollToTop() {
	_, _ = s.page.Evaluate("window.scrollTo(0, 0)")
}

func (s *session) Content() (string, error) {
	return s.page.Content()
}

func (s *session) CaptureScreenshot(label string) {
	if s.screenshotDir == "" {
		return
	}
	if err := os.MkdirAll(s.screenshotDir, 0o755); err != nil {
		log.Printf("[browser] ⚠️ screenshot dir %s: %v", s.screenshotDir, err)
		return
	}
	name := fmt.Sprintf("%s-%s.png", sanitizeLabel(label), time.Now().Format("20060102-150405"))
	path := filepath.Join(s.screenshotDir, name)
	if _, err := s.page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	}); err != nil {
		log.Printf("[browser] ⚠️ screenshot %s: %v", path, err)
		return
	}
	log.Printf("[browser] 📸 saved screenshot %s", path)
}

func (s *session) Close() error {
	s.closeOnce.Do(func() {
		if err := s.context.Close(); err != nil && s.closeErr == nil {
			s.closeErr = fmt.Errorf("close context: %w", err)
		}
		if err := s.browser.Close(); err != nil && s.closeErr == nil {
			s.closeErr = fmt.Errorf("close browser: %w", err)
		}
		if err := s.pw.Stop(); err != nil && s.closeErr == nil {
			s.closeErr = fmt.Errorf("stop driver: %w", err)
		}
	})
	return s.closeErr
}

// textSelector builds a case-insensitive text locator that tolerates any
// whitespace between words, so "View Details" also matches wrapped text.
func textSelector(text string) string {
	pattern := regexp.QuoteMeta(text)
	pattern = strings.Join(strings.Fields(pattern), `\s+`)
	return fmt.Sprintf("text=/%s/i", pattern)
}

var labelUnsafeRe = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

func sanitizeLabel(label string) string {
	cleaned := labelUnsafeRe.ReplaceAllString(label, "-")
	cleaned = strings.Trim(cleaned, "-")
	if cleaned == "" {
		return "page"
	}
	return cleaned
}
