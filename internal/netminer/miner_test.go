package netminer

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResponse struct {
	url         string
	contentType string
	body        string
	err         error
}

func (r *fakeResponse) URL() string { return r.url }

func (r *fakeResponse) Headers() map[string]string {
	return map[string]string{"content-type": r.contentType}
}

func (r *fakeResponse) Text() (string, error) { return r.body, r.err }

func TestMinerSkipsIrrelevantResponses(t *testing.T) {
	m := New(nil)
	m.Handle(&fakeResponse{
		url:         "https://cdn.example.com/fonts/roboto.woff2",
		contentType: "font/woff2",
	})

	assert.Equal(t, 0, m.Scanned())
	assert.Empty(t, m.Titles())
	assert.Len(t, m.Samples(), 1, "samples keep even irrelevant responses")
}

func TestMinerJSONResponses(t *testing.T) {
	m := New(nil)
	m.Handle(&fakeResponse{
		url:         "https://careers.example.com/api/jobs?page=1",
		contentType: "application/json; charset=utf-8",
		body:        `{"results": [{"title": "Registered Nurse", "jobId": 178687}]}`,
	})

	assert.Equal(t, []string{"Registered Nurse"}, m.Titles())
	assert.Equal(t, 1, m.Scanned())
	assert.Len(t, m.Relevant(), 1)
}

func TestMinerOracleADFResponses(t *testing.T) {
	m := New(nil)
	m.Handle(&fakeResponse{
		url:         "https://xyz.fa.oraclecloud.com/hcmRestApi/resources/latest/recruitingCEJobRequisitions?q=1",
		contentType: "application/vnd.oracle.adf.resourcecollection+json",
		body: `{"items": [{"requisitionList": {"items": [
			{"RequisitionTitle": "Registered Nurse", "RequisitionId": "178687"},
			{"RequisitionTitle": "Pharmacist", "RequisitionId": "178690"}
		]}}]}`,
	})

	assert.Contains(t, m.Titles(), "Registered Nurse")
	assert.Contains(t, m.Titles(), "Pharmacist")

	records := m.Records()
	require.Len(t, records, 2)
	assert.Equal(t, "178687", records[0].ID)
	assert.Equal(t, "178690", records[1].ID)
}

func TestMinerTextPatternResponses(t *testing.T) {
	m := New(nil)
	m.Handle(&fakeResponse{
		url:         "https://careers.example.com/search/fragment",
		contentType: "text/plain",
		body:        "Respiratory Therapist\n178687\nFull-Time\nHouston, TX\n",
	})

	assert.Equal(t, []string{"Respiratory Therapist"}, m.Titles())
}

func TestMinerMalformedJSONLoggedNotFatal(t *testing.T) {
	var lines []string
	m := New(func(format string, args ...any) {
		lines = append(lines, fmt.Sprintf(format, args...))
	})

	m.Handle(&fakeResponse{
		url:         "https://xyz.fa.oraclecloud.com/hcmRestApi/resources/latest/recruitingCEJobRequisitions",
		contentType: "application/json",
		body:        `{"items": [`,
	})

	assert.Empty(t, m.Titles())
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "failed to parse")
}

func TestMinerBodyReadFailureTolerated(t *testing.T) {
	m := New(nil)
	m.Handle(&fakeResponse{
		url:         "https://careers.example.com/api/jobs",
		contentType: "application/json",
		err:         errors.New("body evicted"),
	})
	assert.Empty(t, m.Titles())
}

func TestMinerRelevantDedupAndCap(t *testing.T) {
	m := New(nil)
	for i := 0; i < 50; i++ {
		url := fmt.Sprintf("https://careers.example.com/api/jobs?page=%d", i)
		m.Handle(&fakeResponse{url: url, contentType: "application/json", body: `{}`})
		// Repeat requests to the same endpoint are not re-listed.
		m.Handle(&fakeResponse{url: url, contentType: "application/json", body: `{}`})
	}

	assert.Len(t, m.Relevant(), maxRelevantResponses)
	assert.Equal(t, 100, m.Scanned())
	assert.Len(t, m.Samples(), maxResponseSamples)
}
