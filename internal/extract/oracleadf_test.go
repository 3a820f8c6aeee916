package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-jobwatch-engine/internal/jobs"
)

func TestOracleADFTitlesWrappedRequisitionList(t *testing.T) {
	// items[0] is the finder/search metadata; postings live in the wrapped
	// requisitionList.items array.
	v := decode(t, `{
		"items": [
			{
				"SearchId": 42,
				"requisitionList": {
					"items": [
						{"RequisitionTitle": "Registered Nurse", "RequisitionId": "178687"},
						{"RequisitionTitle": "Respiratory Therapist", "RequisitionId": "178690"}
					]
				}
			}
		]
	}`)

	titles, records := OracleADFTitles(v)
	assert.Equal(t, []string{"Registered Nurse", "Respiratory Therapist"}, titles)
	require.Len(t, records, 2)
	assert.Equal(t, jobs.JobRecord{Title: "Registered Nurse", ID: "178687"}, records[0])
	assert.Equal(t, jobs.JobRecord{Title: "Respiratory Therapist", ID: "178690"}, records[1])
}

func TestOracleADFTitlesTopLevelArray(t *testing.T) {
	// Some endpoints return a bare array of result objects.
	v := decode(t, `[
		{"items": [{"requisitionList": {"items": [
			{"RequisitionTitle": "Registered Nurse", "RequisitionId": "178687"}
		]}}]}
	]`)

	titles, records := OracleADFTitles(v)
	assert.Equal(t, []string{"Registered Nurse"}, titles)
	require.Len(t, records, 1)
	assert.Equal(t, "178687", records[0].ID)
}

func TestOracleADFTitlesArrayRequisitionList(t *testing.T) {
	v := decode(t, `{
		"items": [
			{
				"requisitionList": [
					{"requisitionTitle": "Pharmacist", "requisitionId": "200100"},
					{"title": "Lab Technician"}
				]
			}
		]
	}`)

	titles, records := OracleADFTitles(v)
	assert.Equal(t, []string{"Pharmacist", "Lab Technician"}, titles)
	require.Len(t, records, 2)
	assert.Equal(t, "200100", records[0].ID)
	assert.Empty(t, records[1].ID, "record without id still emitted")
}

func TestOracleADFTitlesInformationNesting(t *testing.T) {
	v := decode(t, `{
		"items": [
			{
				"requisitionList": [
					{"Information": {"RequisitionTitle": "Nurse Manager"}, "Id": "300200"}
				]
			}
		]
	}`)

	titles, records := OracleADFTitles(v)
	assert.Equal(t, []string{"Nurse Manager"}, titles)
	require.Len(t, records, 1)
	assert.Equal(t, "300200", records[0].ID)
}

func TestOracleADFTitlesSiblingArrayFallback(t *testing.T) {
	// Unexpected key casing: requisitions under some other array property.
	v := decode(t, `{
		"items": [
			{
				"SearchFacets": [{"Name": "Location"}],
				"Postings": [
					{"RequisitionTitle": "Registered Nurse", "RequisitionId": "400100"}
				]
			}
		]
	}`)

	titles, _ := OracleADFTitles(v)
	assert.Equal(t, []string{"Registered Nurse"}, titles)
}

func TestOracleADFTitlesTopLevelRequisitionList(t *testing.T) {
	v := decode(t, `{
		"requisitionList": [
			{"RequisitionTitle": "Registered Nurse", "RequisitionId": "500100"}
		]
	}`)

	titles, records := OracleADFTitles(v)
	assert.Equal(t, []string{"Registered Nurse"}, titles)
	require.Len(t, records, 1)
	assert.Equal(t, "500100", records[0].ID)
}

func TestOracleADFTitlesLengthBounds(t *testing.T) {
	v := decode(t, `{
		"requisitionList": [
			{"RequisitionTitle": "R"},
			{"RequisitionTitle": "Registered Nurse"}
		]
	}`)
	titles, _ := OracleADFTitles(v)
	assert.Equal(t, []string{"Registered Nurse"}, titles)
}

func TestOracleADFTitlesNumericID(t *testing.T) {
	v := decode(t, `{
		"requisitionList": [
			{"RequisitionTitle": "Registered Nurse", "RequisitionId": 178687}
		]
	}`)
	_, records := OracleADFTitles(v)
	require.Len(t, records, 1)
	assert.Equal(t, "178687", records[0].ID)
}
