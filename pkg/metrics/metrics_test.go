package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, req)
	body, err := io.ReadAll(rec.Result().Body)
	if err != nil {
		t.Fatalf("unexpected error reading response: %v", err)
	}
	return string(body)
}

func TestObserveDurationExposesHistogram(t *testing.T) {
	m := New()
	m.ObserveDuration("caves", 0.25)

	body := scrape(t, m)
	if !strings.Contains(body, `mapgen_generation_duration_seconds_count{kind="caves"} 1`) {
		t.Fatalf("expected a duration observation for kind=caves, got:\n%s", body)
	}
}

func TestAddBacktracksSkipsNonPositiveCounts(t *testing.T) {
	m := New()
	m.AddBacktracks("wfc", 0)
	m.AddBacktracks("wfc", -1)
	m.AddBacktracks("wfc", 3)

	body := scrape(t, m)
	if !strings.Contains(body, `mapgen_generation_backtracks_total{kind="wfc"} 3`) {
		t.Fatalf("expected exactly 3 backtracks recorded for kind=wfc, got:\n%s", body)
	}
}

func TestRecordShortfallIncrementsCounter(t *testing.T) {
	m := New()
	m.RecordShortfall("drunkard")
	m.RecordShortfall("drunkard")

	body := scrape(t, m)
	if !strings.Contains(body, `mapgen_generation_shortfall_total{kind="drunkard"} 2`) {
		t.Fatalf("expected 2 shortfalls recorded for kind=drunkard, got:\n%s", body)
	}
}
