// Package netminer inspects network responses captured during a page load
// and mines job titles out of JSON and text bodies. Responses arrive on the
// browser driver's event goroutine, possibly after navigation has resolved,
// so everything is mutex-guarded and consumers read the accumulated state
// only after the settle/wait steps.

package netminer

import (
	"encoding/json"
	"regexp"
	"strings"
	"sync"

	mapset "github.com/deckarep/golang-set/v2"

	"go-jobwatch-engine/internal/extract"
	"go-jobwatch-engine/internal/jobs"
)

// Response is the slice of a network response the miner needs.
// playwright.Response satisfies it.
type Response interface {
	URL() string
	Headers() map[string]string
	Text() (string, error)
}

// ResponseInfo is a URL + content-type pair kept for diagnostics.
type ResponseInfo struct {
	URL         string `json:"url"`
	ContentType string `json:"contentType"`
}

// Likely job-data endpoints, including Oracle HCM's Candidate Experience
// REST paths. Everything else is skipped without reading the body.
var relevantURLRe = regexp.MustCompile(`(?i)search|job|jobs|requisition|posting|career|opening|ats|api|ajax|graphql|hcmUI|CandidateExperience|oraclecloud|recruitingCEJobRequisitions|hcmRestApi`)

var oracleEndpointRe = regexp.MustCompile(`(?i)recruitingCEJobRequisitions`)

const (
	maxResponseSamples   = 12
	maxRelevantResponses = 40
)

// Miner accumulates titles and structured records from in-flight responses.
type Miner struct {
	mu       sync.Mutex
	titles   []string
	records  []jobs.JobRecord
	scanned  int
	samples  []ResponseInfo
	relevant []ResponseInfo
	seen     mapset.Set[string]
	logf     func(format string, args ...any)
}

// New returns a Miner. logf receives trace lines; nil disables them.
func New(logf func(format string, args ...any)) *Miner {
	if logf == nil {
		logf = func(string, ...any) {}
	}
	return &Miner{
		seen: mapset.NewSet[string](),
		logf: logf,
	}
}

// Handle classifies one response and mines its body. Never fails: parse
// errors are traced and the response is dropped.
func (m *Miner) Handle(res Response) {
	url := res.URL()
	contentType := res.Headers()["content-type"]

	m.mu.Lock()
	if len(m.samples) < maxResponseSamples {
		m.samples = append(m.samples, ResponseInfo{URL: url, ContentType: contentType})
	}
	m.mu.Unlock()

	if !relevantURLRe.MatchString(url) {
		return
	}

	m.mu.Lock()
	m.scanned++
	if m.seen.Add(url) {
		m.relevant = append(m.relevant, ResponseInfo{URL: url, ContentType: contentType})
		if len(m.relevant) > maxRelevantResponses {
			m.relevant = m.relevant[1:]
		}
	}
	m.mu.Unlock()

	switch {
	case strings.Contains(contentType, "application/json") ||
		strings.Contains(contentType, "+json") ||
		strings.Contains(contentType, "/json"):
		m.mineJSON(url, res)
	case strings.Contains(contentType, "text/") ||
		strings.Contains(contentType, "application/javascript"):
		m.mineText(res)
	}
}

func (m *Miner) mineJSON(url string, res Response) {
	body, err := res.Text()
	if err != nil {
		return
	}
	var data any
	if err := json.Unmarshal([]byte(body), &data); err != nil {
		if oracleEndpointRe.MatchString(url) {
			m.logf("Oracle ADF: failed to parse recruitingCEJobRequisitions: %v", err)
		}
		return
	}

	generic := extract.CollectJSONTitles(data)

	m.mu.Lock()
	m.titles = append(m.titles, generic...)
	m.mu.Unlock()

	if oracleEndpointRe.MatchString(url) {
		titles, records := extract.OracleADFTitles(data)
		m.mu.Lock()
		m.titles = append(m.titles, titles...)
		m.records = append(m.records, records...)
		m.mu.Unlock()
		if len(titles) > 0 {
			m.logf("Oracle ADF: extracted %d titles from recruitingCEJobRequisitions", len(titles))
		} else {
			m.logf("Oracle ADF: no titles in recruitingCEJobRequisitions response")
		}
	}
}

func (m *Miner) mineText(res Response) {
	body, err := res.Text()
	if err != nil {
		return
	}
	found := extract.TitlesFromTextPattern(body)
	if len(found) == 0 {
		return
	}
	m.mu.Lock()
	m.titles = append(m.titles, found...)
	m.mu.Unlock()
}

// Titles returns the raw accumulated candidates, in arrival order.
func (m *Miner) Titles() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.titles...)
}

// Records returns the structured records the vendor walker produced, if any.
func (m *Miner) Records() []jobs.JobRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]jobs.JobRecord(nil), m.records...)
}

// Scanned reports how many relevant responses were inspected.
func (m *Miner) Scanned() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scanned
}

// Samples returns the first responses observed, relevant or not.
func (m *Miner) Samples() []ResponseInfo {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ResponseInfo(nil), m.samples...)
}

// Relevant returns the deduplicated relevant responses, size-capped.
func (m *Miner) Relevant() []ResponseInfo {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ResponseInfo(nil), m.relevant...)
}
