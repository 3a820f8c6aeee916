package extract

import (
	"regexp"
	"strings"
)

// Several ATS UIs ship job data as formatted text rather than JSON; the
// listing renders as a repeating line sequence:
//
//	Respiratory Therapist
//	178687
//	Full-Time
//	Houston, TX
//
// The title line, a 5-7 digit requisition number, then the employment type.
var textPatternRe = regexp.MustCompile(`([A-Z][^\n]{4,200})\s*\n\s*(\d{5,7})\s*\n\s*(Full[-\s]?Time|Part[-\s]?Time)`)

const textPatternMaxMatches = 50

// TitlesFromTextPattern scans text for the title/number/employment-type
// layout and returns the raw title lines, capped at 50 per input.
func TitlesFromTextPattern(text string) []string {
	var found []string
	for _, m := range textPatternRe.FindAllStringSubmatch(text, textPatternMaxMatches) {
		found = append(found, strings.TrimSpace(m[1]))
	}
	return found
}
