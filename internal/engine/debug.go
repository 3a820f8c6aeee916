package engine

import (
	"regexp"
	"strings"

	"go-jobwatch-engine/internal/extract"
	"go-jobwatch-engine/internal/netminer"
)

// Debug is the diagnostic bundle returned with every extraction. The
// ordered Messages trace is part of the contract: with heuristics this
// lossy, a silent failure is not acceptable.
type Debug struct {
	FinalURL          string                  `json:"finalUrl,omitempty"`
	PageTitle         string                  `json:"pageTitle,omitempty"`
	FrameCount        int                     `json:"frameCount,omitempty"`
	CTACount          int                     `json:"ctaCount,omitempty"`
	BlockedHint       string                  `json:"blockedHint,omitempty"`
	FrameStats        []extract.FrameStat     `json:"frameStats,omitempty"`
	ResponsesScanned  int                     `json:"responsesScanned,omitempty"`
	ResponseSamples   []netminer.ResponseInfo `json:"responseSamples,omitempty"`
	RelevantResponses []netminer.ResponseInfo `json:"relevantResponses,omitempty"`
	Messages          []string                `json:"debugMessages,omitempty"`
}

var blockedSignatures = []struct {
	re   *regexp.Regexp
	hint string
}{
	{regexp.MustCompile(`access denied|request blocked`), "access_denied"},
	{regexp.MustCompile(`captcha|are you human`), "captcha"},
	{regexp.MustCompile(`robot|automated`), "bot_check"},
}

// detectBlocked classifies page content that looks like an anti-bot
// challenge instead of a listing. Empty when nothing matches.
func detectBlocked(content string) string {
	lower := strings.ToLower(content)
	for _, sig := range blockedSignatures {
		if sig.re.MatchString(lower) {
			return sig.hint
		}
	}
	return ""
}
