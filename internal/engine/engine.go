// Package engine sequences the extraction strategies for one URL: the
// direct-API shortcut first, then the browser-driven cascade with network
// mining, the vendor DOM pass, and the static HTML snapshot as the
// always-terminating last resort. First strategy yielding anything wins.

package engine

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"regexp"
	"sync"
	"time"

	"go-jobwatch-engine/internal/classify"
	"go-jobwatch-engine/internal/config"
	"go-jobwatch-engine/internal/directapi"
	"go-jobwatch-engine/internal/extract"
	"go-jobwatch-engine/internal/jobs"
	"go-jobwatch-engine/internal/netminer"
)

// Result is what one extraction call produces. Titles and Jobs correspond
// in order where the winning strategy provides structured records;
// otherwise Jobs carries title-only records.
type Result struct {
	Titles []string        `json:"titles"`
	Jobs   []jobs.JobRecord `json:"jobs"`
	Debug  Debug           `json:"debug"`
}

var oracleHostRe = regexp.MustCompile(`(?i)oraclecloud\.com`)

const (
	ctaProbeTimeoutMs   = 8000
	settleDelayMs       = 1200
	oracleSettleMs      = 4000
	oracleScrollWaitMs  = 1500
	oracleFinalWaitMs   = 500
)

// Engine extracts job listings from arbitrary job-search pages. Safe for
// concurrent use across URLs: each call owns its browser session, and the
// only shared state is the advisory origin cache.
type Engine struct {
	cfg        *config.Config
	launch     LaunchFunc
	origins    directapi.OriginCache
	httpClient *http.Client
}

// New builds an Engine around a launcher (internal/browser.Launch in
// production). The shared origin cache defaults to a fresh in-memory set.
func New(cfg *config.Config, launch LaunchFunc) *Engine {
	return &Engine{
		cfg:        cfg,
		launch:     launch,
		origins:    directapi.NewOriginSet(),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Extract runs the full strategy cascade for one URL. It never returns an
// error: launch and navigation failures come back as an empty result with a
// "playwright_error" hint, and zero titles is a legitimate outcome.
func (e *Engine) Extract(ctx context.Context, pageURL string) Result {
	debug := &Debug{}

	// The miner's handler runs logf on the browser's response-event
	// goroutine, and responses keep arriving after navigation resolves.
	// The trace lock covers every append and the final copy into Result.
	var traceMu sync.Mutex
	logf := func(format string, args ...any) {
		msg := fmt.Sprintf(format, args...)
		traceMu.Lock()
		debug.Messages = append(debug.Messages, msg)
		traceMu.Unlock()
		log.Printf("[engine] %s", msg)
	}
	snapshot := func() Debug {
		traceMu.Lock()
		defer traceMu.Unlock()
		d := *debug
		d.Messages = append([]string(nil), debug.Messages...)
		return d
	}

	logf("Starting extraction: %s", pageURL)

	// Fast path for known job-search endpoints that have a JSON results API.
	direct := directapi.New(e.httpClient, e.origins, logf)
	if titles, ok := direct.Try(ctx, pageURL); ok {
		logf("Direct API returned %d titles", len(titles))
		debug.BlockedHint = "direct_api: SearchResults"
		return Result{Titles: titles, Jobs: titleRecords(titles), Debug: snapshot()}
	}

	logf("Launching browser")
	session, err := e.launch(ctx, e.cfg)
	if err != nil {
		logf("Error: browser launch failed: %v", err)
		debug.BlockedHint = fmt.Sprintf("playwright_error: %v", err)
		return emptyResult(snapshot())
	}
	defer func() {
		if cerr := session.Close(); cerr != nil {
			logf("Browser close failed: %v", cerr)
		}
	}()

	miner := netminer.New(logf)
	session.OnResponse(miner.Handle)

	if err := session.Goto(pageURL, e.cfg.NavigationTimeoutMs); err != nil {
		logf("Error: navigation failed: %v", err)
		debug.BlockedHint = fmt.Sprintf("playwright_error: navigation: %v", err)
		return emptyResult(snapshot())
	}
	logf("Page loaded, waiting for networkidle")
	session.WaitForNetworkIdle(e.cfg.NavigationTimeoutMs)

	session.DismissConsent()

	debug.FinalURL = session.URL()
	debug.PageTitle = session.Title()
	frames := session.Frames()
	debug.FrameCount = len(frames)
	logf("Final URL: %s", debug.FinalURL)
	logf("Page title: %s", debug.PageTitle)
	logf("Frames: %d", debug.FrameCount)

	// Lazy-rendered listings: give the CTAs a chance to appear, then settle.
	session.WaitForTextVisible("View Details", ctaProbeTimeoutMs)
	session.WaitMillis(settleDelayMs)

	frames = session.Frames()
	debug.CTACount = extract.CountCTAs(frames)
	debug.FrameStats = extract.StatsForFrames(frames)
	logf("CTAs found: %d", debug.CTACount)

	frameTitles := classify.CleanAndFilterTitles(extract.TitlesFromFrames(frames))
	logf("Frame extraction: %d titles", len(frameTitles))
	if len(frameTitles) > 0 {
		logf("Returning %d titles from frame extraction", len(frameTitles))
		attachMinerStats(debug, miner)
		return Result{Titles: frameTitles, Jobs: titleRecords(frameTitles), Debug: snapshot()}
	}

	// Network miner runs asynchronously relative to navigation; by now the
	// settle waits have passed, so its accumulated state is worth reading.
	minedRaw := miner.Titles()
	minedTitles := classify.CleanAndFilterTitles(minedRaw)
	logf("XHR/JSON extraction: %d raw, %d after filter", len(minedRaw), len(minedTitles))
	if len(minedTitles) > 0 {
		records := filterRecords(miner.Records())
		if len(records) == 0 {
			records = titleRecords(minedTitles)
		}
		attachMinerStats(debug, miner)
		return Result{Titles: minedTitles, Jobs: records, Debug: snapshot()}
	}

	// Oracle HCM Candidate Experience renders lazily; scroll to force the
	// list in, then try the vendor-specific DOM pass.
	if oracleHostRe.MatchString(pageURL) {
		logf("Oracle URL detected: waiting and scrolling to trigger lazy load")
		session.WaitMillis(oracleSettleMs)
		session.ScrollToBottom()
		session.WaitMillis(oracleScrollWaitMs)
		session.ScrollToTop()
		session.WaitMillis(oracleFinalWaitMs)

		oracleTitles := classify.CleanAndFilterTitles(extract.OracleDOMTitles(session.Frames()))
		logf("Oracle DOM extraction: %d titles", len(oracleTitles))
		if len(oracleTitles) > 0 {
			debug.BlockedHint = "oracle_dom"
			attachMinerStats(debug, miner)
			return Result{Titles: oracleTitles, Jobs: titleRecords(oracleTitles), Debug: snapshot()}
		}
	}

	// Last resort: snapshot the rendered page. Always terminates, may
	// legitimately produce nothing.
	logf("Falling back to HTML extraction")
	html, err := session.Content()
	if err != nil {
		logf("Error: could not read page content: %v", err)
		debug.BlockedHint = fmt.Sprintf("playwright_error: content: %v", err)
		return emptyResult(snapshot())
	}
	if hint := detectBlocked(html); hint != "" {
		debug.BlockedHint = hint
		logf("Blocked hint: %s", hint)
		session.CaptureScreenshot(hint)
	}

	// Titles sometimes only appear in inline scripts; run the text-layout
	// pattern against the raw markup too.
	raw := append(extract.FromHTML(html), extract.TitlesFromTextPattern(html)...)
	htmlTitles := classify.CleanAndFilterTitles(raw)
	logf("HTML extraction: %d titles", len(htmlTitles))

	attachMinerStats(debug, miner)
	logf("Returning %d titles from HTML extraction", len(htmlTitles))
	return Result{Titles: htmlTitles, Jobs: titleRecords(htmlTitles), Debug: snapshot()}
}

func emptyResult(debug Debug) Result {
	return Result{Titles: []string{}, Jobs: []jobs.JobRecord{}, Debug: debug}
}

func titleRecords(titles []string) []jobs.JobRecord {
	records := make([]jobs.JobRecord, 0, len(titles))
	for _, t := range titles {
		records = append(records, jobs.JobRecord{Title: t})
	}
	return records
}

// filterRecords keeps structured records whose titles survive cleanup, so
// the no-empty-title and classifier invariants hold for Jobs as well.
func filterRecords(records []jobs.JobRecord) []jobs.JobRecord {
	out := make([]jobs.JobRecord, 0, len(records))
	for _, rec := range records {
		cleaned := classify.StripMarkup(rec.Title)
		if cleaned == "" || !classify.IsJobTitle(cleaned) {
			continue
		}
		rec.Title = cleaned
		out = append(out, rec)
	}
	return out
}

func attachMinerStats(debug *Debug, miner *netminer.Miner) {
	debug.ResponsesScanned = miner.Scanned()
	debug.ResponseSamples = miner.Samples()
	debug.RelevantResponses = miner.Relevant()
}
