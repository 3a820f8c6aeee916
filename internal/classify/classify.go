// Package classify decides whether a text fragment is a plausible job title
// or navigation/legal/marketing chatter. It is the single gate every
// extraction strategy routes candidates through before emitting a title.

package classify

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/unicode/norm"
)

// Phrases to exclude: nav, footer, buttons, categories, cookie text.
// Matched exactly, or as a leading/trailing phrase.
var blocklist = []string{
	"opens in a new tab",
	"search jobs",
	"already applied",
	"current employee",
	"be more at",
	"view details and apply", // button text, not job title
	"here",
	"job id:",
	"employment type:",
	"location:",
	"back to",
	"sign in",
	"create account",
	"careers home",
	"job search",
	"benefits",
	"about us",
	"filter results",
	"open jobs",
	"talent community",
	"we use cookies",
	"cookie list",
	"digital privacy policy",
	"disclaimer",
	"terms of use",
	"accept our",
	"give you the best website",
	"by using our site",
	"technician jobs at",
	"jobs at houston methodist at",
	"about technician jobs",
	"create your candidate profile",
}

// Longer cookie/legal phrases rejected anywhere inside the text. These never
// occur as substrings of real job titles.
var containsBlocklist = []string{
	"we use cookies",
	"digital privacy policy",
	"terms of use",
	"by using our site",
	"give you the best website",
	"cookie list",
}

var (
	jobsAtRe     = regexp.MustCompile(`\bjobs\s+at\s+`)
	atSeparator  = regexp.MustCompile(`\s+at\s+`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

const bulletCutset = " \t\n•·-*"

// IsBlocklisted reports whether text is a known non-title phrase. The check
// is case-insensitive and ignores surrounding bullet/dash decoration.
func IsBlocklisted(text string) bool {
	lower := strings.Trim(strings.ToLower(strings.TrimSpace(text)), bulletCutset)
	for _, b := range blocklist {
		if lower == b || strings.HasPrefix(lower, b+" ") || strings.HasSuffix(lower, " "+b) {
			return true
		}
	}
	for _, b := range containsBlocklist {
		if strings.Contains(lower, b) {
			return true
		}
	}
	// Page/category title pattern: "X Jobs at Y at Z"
	// (e.g. "Technician Jobs at Houston Methodist at Houston Methodist Hospital")
	if jobsAtRe.MatchString(lower) && len(atSeparator.FindAllString(lower, -1)) >= 2 {
		return true
	}
	return false
}

// IsJobTitle reports whether text looks like a job title worth keeping.
func IsJobTitle(text string) bool {
	t := strings.TrimSpace(text)
	if t == "" || len(t) > 250 {
		return false
	}

	words := strings.Fields(t)

	// Single word: at least 4 chars (allows "Nurse", "Engineer", rejects nav stubs).
	if len(words) == 1 {
		if len(t) < 4 {
			return false
		}
		return !IsBlocklisted(t)
	}

	// Multiple words: at least 8 chars total (allows "Nurse Manager", "Data Engineer").
	if len(words) >= 2 {
		if len(t) < 8 {
			return false
		}
		return !IsBlocklisted(t)
	}

	return false
}

// StripMarkup removes HTML tags and entities when the text looks like markup,
// collapses whitespace, and NFC-normalizes the result.
func StripMarkup(input string) string {
	s := strings.TrimSpace(input)
	if s == "" {
		return s
	}
	if strings.Contains(s, "<") && strings.Contains(s, ">") {
		if doc, err := goquery.NewDocumentFromReader(strings.NewReader(s)); err == nil {
			s = doc.Text()
		}
	}
	s = whitespaceRe.ReplaceAllString(strings.TrimSpace(s), " ")
	return norm.NFC.String(s)
}

// CleanAndFilterTitles strips markup from each candidate and keeps the ones
// that pass IsJobTitle, in the original order. No deduplication: repeated
// titles across different postings are legitimate.
func CleanAndFilterTitles(titles []string) []string {
	out := make([]string, 0, len(titles))
	for _, t := range titles {
		cleaned := StripMarkup(t)
		if cleaned == "" {
			continue
		}
		if !IsJobTitle(cleaned) {
			continue
		}
		out = append(out, cleaned)
	}
	return out
}
