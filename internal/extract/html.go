// Package extract holds the title-extraction strategies: static HTML
// selectors, JSON walkers, the in-frame DOM heuristics, and the repeating
// text-layout pattern. All of them emit raw candidates; the caller runs
// classify.CleanAndFilterTitles before accepting anything.

package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Ordered by priority: job-card scoped titles first, then scoped headings,
// then unscoped headings minus obvious chrome.
var htmlTitleSelectors = []string{
	`[class*="job-title"]`,
	`[class*="job_title"]`,
	`[class*="position-title"]`,
	`[class*="listing-title"]`,
	`[class*="opening-title"]`,
	`[class*="role-title"]`,
	`[data-job-title]`,
	`[class*="job-card"] h2`,
	`[class*="job-card"] h3`,
	`[class*="job-card"] h4`,
	`[class*="job-card"] [class*="title"]`,
	`[class*="job-card"] a`, // links inside job cards often carry the title
	`[class*="position-card"] h2`,
	`[class*="position-card"] h3`,
	`[class*="listing-card"] h2`,
	`[class*="listing-card"] h3`,
	`[class*="job-listing"] h2`,
	`[class*="job-listing"] h3`,
	`[class*="job"] h2`,
	`[class*="job"] h3`,
	`[class*="position"] h2`,
	`[class*="position"] h3`,
	`article h2`,
	`article h3`,
	`main h2`,
	`main h3`,
	`h2:not([class*="nav"]):not([class*="menu"]):not([class*="header"])`,
	`h3:not([class*="nav"]):not([class*="menu"]):not([class*="header"])`,
}

// Promoted/recycled listing containers. Links inside these duplicate the
// main results, so the strict link pass skips them.
const featuredSectionSelector = `[class*='featured'], [id*='featured'], [class*='recommended'], [class*='highlighted'], [class*='spotlight'], [class*='similar-jobs'], [class*='related-jobs'], [aria-label*='featured'], [aria-label*='Featured']`

var collapseRe = regexp.MustCompile(`\s+`)

func collapse(s string) string {
	return collapseRe.ReplaceAllString(strings.TrimSpace(s), " ")
}

// FromHTML pulls raw title candidates out of a static HTML document: the
// selector cascade first, then anchors that look like job-detail links.
// Candidates come back unfiltered and in document order per pass; the caller
// owns cleanup and classification.
func FromHTML(html string) []string {
	var titles []string

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return titles
	}

	for _, sel := range htmlTitleSelectors {
		doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			if text := collapse(s.Text()); text != "" {
				titles = append(titles, text)
			}
		})
	}

	// Job-detail links usually carry the title as text. Prefer the singular
	// /job/123 detail shape over /jobs/category pages, and skip promoted
	// sections to avoid double-counting listings shown outside the results.
	doc.Find(`a[href*="/job/"]`).Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if strings.Contains(href, "/jobs/") {
			return // category link, not a job detail
		}
		if s.Closest(featuredSectionSelector).Length() > 0 {
			return
		}
		if text := collapse(s.Text()); text != "" {
			titles = append(titles, text)
		}
	})
	doc.Find(`a[href*="/jobs/"], a[href*="/position/"], a[href*="/openings/"]`).Each(func(_ int, s *goquery.Selection) {
		if text := collapse(s.Text()); text != "" {
			titles = append(titles, text)
		}
	})

	return titles
}
