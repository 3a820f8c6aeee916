package jobs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFingerprintPriority(t *testing.T) {
	tests := []struct {
		name     string
		record   JobRecord
		expected string
	}{
		{
			name:     "id wins over everything",
			record:   JobRecord{Title: "Nurse Manager", ID: "178687", URL: "https://x/job/178687", PostedAt: "2024-01-01"},
			expected: "id:178687",
		},
		{
			name:     "url when no id",
			record:   JobRecord{Title: "Nurse Manager", URL: "https://x/job/178687", PostedAt: "2024-01-01"},
			expected: "url:https://x/job/178687",
		},
		{
			name:     "postedAt when no id or url",
			record:   JobRecord{Title: "Nurse Manager", PostedAt: "2024-01-01"},
			expected: "title:Nurse Manager|posted:2024-01-01",
		},
		{
			name:     "title only",
			record:   JobRecord{Title: "Nurse Manager"},
			expected: "title:Nurse Manager",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Fingerprint(tt.record))
		})
	}
}

func TestFingerprintDeterministic(t *testing.T) {
	rec := JobRecord{Title: "Respiratory Therapist", ID: "123456"}
	assert.Equal(t, Fingerprint(rec), Fingerprint(rec))
}

func TestFingerprintSameIDDifferentTitles(t *testing.T) {
	a := JobRecord{Title: "Registered Nurse", ID: "555123"}
	b := JobRecord{Title: "Registered Nurse II", ID: "555123"}
	// Dedup by id overrides title drift.
	assert.Equal(t, Fingerprint(a), Fingerprint(b))
}
