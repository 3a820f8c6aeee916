package extract

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, raw string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	return v
}

func TestCollectJSONTitlesRequiresJobSignal(t *testing.T) {
	// A bare title with no id, requisition-looking number, or location is
	// probably not a job record (e.g. a page or section title).
	noSignal := decode(t, `{"title": "Registered Nurse"}`)
	assert.Empty(t, CollectJSONTitles(noSignal))

	withID := decode(t, `{"title": "Registered Nurse", "jobId": 178687}`)
	assert.Equal(t, []string{"Registered Nurse"}, CollectJSONTitles(withID))

	withLocation := decode(t, `{"jobTitle": "Registered Nurse", "location": "Houston, TX"}`)
	assert.Equal(t, []string{"Registered Nurse"}, CollectJSONTitles(withLocation))

	withReqNumber := decode(t, `{"positionTitle": "Registered Nurse", "ref": "req-178687"}`)
	assert.Equal(t, []string{"Registered Nurse"}, CollectJSONTitles(withReqNumber))
}

func TestCollectJSONTitlesFieldPriority(t *testing.T) {
	v := decode(t, `{"jobTitle": "Nurse Manager", "title": "Something Else", "jobId": 12345}`)
	assert.Equal(t, []string{"Nurse Manager"}, CollectJSONTitles(v))
}

func TestCollectJSONTitlesNameFieldWindow(t *testing.T) {
	// "name" is a weaker signal: only 6-120 chars qualify.
	short := decode(t, `{"name": "Ops", "jobId": 12345}`)
	assert.Empty(t, CollectJSONTitles(short))

	ok := decode(t, `{"name": "Operations Manager", "jobId": 12345}`)
	assert.Equal(t, []string{"Operations Manager"}, CollectJSONTitles(ok))
}

func TestCollectJSONTitlesNestedArrays(t *testing.T) {
	v := decode(t, `{
		"data": {
			"postings": [
				{"title": "Registered Nurse", "requisitionId": 100001},
				{"title": "Lab Technician", "requisitionId": 100002}
			]
		}
	}`)
	assert.Equal(t, []string{"Registered Nurse", "Lab Technician"}, CollectJSONTitles(v))
}

func TestCollectJSONTitlesJobOpeningIDString(t *testing.T) {
	v := decode(t, `{"JobOpeningTitle": "Pharmacist", "JobOpeningId": "1234"}`)
	assert.Equal(t, []string{"Pharmacist"}, CollectJSONTitles(v))
}

func TestCollectJSONTitlesDepthBound(t *testing.T) {
	// A record buried below depth 8 is out of reach.
	deep := decode(t, `{"a":{"b":{"c":{"d":{"e":{"f":{"g":{"h":{"i":{"title":"Registered Nurse","jobId":12345}}}}}}}}}}`)
	assert.Empty(t, CollectJSONTitles(deep))
}

func TestCollectJSONTitlesCycleProtection(t *testing.T) {
	// Self-referential structures cannot come from encoding/json, but the
	// walker accepts arbitrary values and must not loop on them.
	node := map[string]any{"title": "Registered Nurse", "jobId": float64(12345)}
	node["self"] = node
	titles := CollectJSONTitles(node)
	assert.Equal(t, []string{"Registered Nurse"}, titles)
}

func TestCollectJSONTitlesCap(t *testing.T) {
	records := make([]any, 0, 250)
	for i := 0; i < 250; i++ {
		records = append(records, map[string]any{"title": "Registered Nurse", "jobId": float64(100000 + i)})
	}
	titles := CollectJSONTitles([]any{records})
	assert.Len(t, titles, jsonWalkMaxTitles)
}
