package browser

import (
	"regexp"

	"github.com/playwright-community/playwright-go"
)

// Ordered most-specific first so "Accept all cookies" is preferred over a
// bare "OK" when a banner offers both.
var consentButtonPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)accept all`),
	regexp.MustCompile(`(?i)accept`),
	regexp.MustCompile(`(?i)i agree`),
	regexp.MustCompile(`(?i)agree`),
	regexp.MustCompile(`(?i)ok`),
	regexp.MustCompile(`(?i)got it`),
}

// DismissConsent clicks the first visible cookie/consent button it can find.
// Best effort: a page without a banner just burns the short wait per pattern.
func (s *session) DismissConsent() {
	for _, pattern := range consentButtonPatterns {
		button := s.page.GetByRole(playwright.AriaRole("button"), playwright.PageGetByRoleOptions{
			Name: pattern,
		}).First()

		if err := button.WaitFor(playwright.LocatorWaitForOptions{
			State:   playwright.WaitForSelectorStateVisible,
			Timeout: playwright.Float(800),
		}); err != nil {
			continue
		}
		if err := button.Click(playwright.LocatorClickOptions{
			Timeout: playwright.Float(1500),
		}); err != nil {
			continue
		}
		s.page.WaitForTimeout(500)
		return
	}
}
