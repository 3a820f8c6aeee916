package extract

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeFrame serves canned evaluation results so the frame heuristics run
// without a browser engine.
type fakeFrame struct {
	url     string
	results map[string]any
	err     error
}

func (f *fakeFrame) URL() string { return f.url }

func (f *fakeFrame) Evaluate(expression string, _ ...any) (any, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.results[expression], nil
}

func TestTitlesFromFramesMergesAccessibleFrames(t *testing.T) {
	main := &fakeFrame{
		url: "https://careers.example.com/search",
		results: map[string]any{
			frameTitlesScript: []any{"Registered Nurse", "Lab Technician"},
		},
	}
	inner := &fakeFrame{
		url: "https://ats.example.com/widget",
		results: map[string]any{
			frameTitlesScript: []any{"Pharmacist"},
		},
	}

	titles := TitlesFromFrames([]Frame{main, inner})
	assert.Equal(t, []string{"Registered Nurse", "Lab Technician", "Pharmacist"}, titles)
}

func TestTitlesFromFramesSkipsCrossOriginFailures(t *testing.T) {
	ok := &fakeFrame{
		url: "https://careers.example.com/search",
		results: map[string]any{
			frameTitlesScript: []any{"Registered Nurse"},
		},
	}
	blocked := &fakeFrame{
		url: "https://tracker.example.net/pixel",
		err: errors.New("Execution context was destroyed"),
	}

	titles := TitlesFromFrames([]Frame{blocked, ok})
	assert.Equal(t, []string{"Registered Nurse"}, titles, "unreadable frame contributes nothing")
}

func TestCountCTAs(t *testing.T) {
	frames := []Frame{
		&fakeFrame{url: "a", results: map[string]any{ctaCountScript: float64(3)}},
		&fakeFrame{url: "b", results: map[string]any{ctaCountScript: float64(2)}},
		&fakeFrame{url: "c", err: errors.New("cross-origin")},
	}
	assert.Equal(t, 5, CountCTAs(frames))
}

func TestStatsForFrames(t *testing.T) {
	frames := []Frame{
		&fakeFrame{
			url: "https://careers.example.com/search",
			results: map[string]any{
				frameStatsScript: map[string]any{
					"ctas":     float64(4),
					"headings": []any{"Open Positions", "Registered Nurse"},
				},
			},
		},
		&fakeFrame{url: "https://tracker.example.net", err: errors.New("denied")},
	}

	stats := StatsForFrames(frames)
	assert.Len(t, stats, 2)
	assert.Equal(t, 4, stats[0].CTAs)
	assert.Equal(t, []string{"Open Positions", "Registered Nurse"}, stats[0].SampleHeadings)
	assert.Equal(t, "denied", stats[1].Error)
}

func TestStatsForFramesCapped(t *testing.T) {
	var frames []Frame
	for i := 0; i < 25; i++ {
		frames = append(frames, &fakeFrame{
			url:     "https://example.com/frame",
			results: map[string]any{frameStatsScript: map[string]any{"ctas": float64(0), "headings": []any{}}},
		})
	}
	assert.Len(t, StatsForFrames(frames), maxFrameStats)
}

func TestOracleDOMTitles(t *testing.T) {
	frames := []Frame{
		&fakeFrame{
			url: "https://xyz.fa.oraclecloud.com/hcmUI/CandidateExperience",
			results: map[string]any{
				oracleDOMScript: []any{"Registered Nurse", "Respiratory Therapist"},
			},
		},
	}
	assert.Equal(t, []string{"Registered Nurse", "Respiratory Therapist"}, OracleDOMTitles(frames))
}
