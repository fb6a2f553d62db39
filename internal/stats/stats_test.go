package stats

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/lookbusy/internal/model"
)

func TestSessionMetrics(t *testing.T) {
	m := SessionMetrics(120, 640, 60000)
	if m.KeysPerMin != 120 || m.CharsPerMin != 640 {
		t.Fatalf("unexpected metrics %+v", m)
	}
	if math.Abs(m.LinesPerHour-1200) > 1e-9 {
		t.Fatalf("unexpected lines/hour %.2f", m.LinesPerHour)
	}
	if SessionMetrics(10, 10, 0) != (Metrics{}) {
		t.Fatalf("expected zero metrics for empty duration")
	}
}

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{2, 4, 6, 8}, 2)
	want := []float64{2, 3, 5, 7}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: got %.2f want %.2f", i, got[i], want[i])
		}
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline([]float64{0, 9}); got != " @" {
		t.Fatalf("unexpected sparkline %q", got)
	}
	if got := Sparkline([]float64{3, 3, 3}); got != "+++" {
		t.Fatalf("unexpected flat sparkline %q", got)
	}
}

func TestRenderSummaryAndTables(t *testing.T) {
	end := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	sessions := []model.WorkSession{
		{ID: 1, EndedAt: end, Job: model.JobFrontend, Ticks: 60, CharsRevealed: 240, Mutations: 2, DurationMs: 60000},
		{ID: 2, EndedAt: end, Job: model.JobManager, Ticks: 240, CharsRevealed: 960, Panics: 1, DurationMs: 120000},
	}
	var buf bytes.Buffer
	if err := RenderSummary(&buf, sessions); err != nil {
		t.Fatalf("render summary: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Sessions: 2", "Avg keys/min: 90.00", "Best keys/min: 120.00", "Tree mutations: 2", "Panics: 1", "Time looking busy: 3m00s"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in summary:\n%s", want, out)
		}
	}

	buf.Reset()
	if err := RenderSessionTable(&buf, sessions); err != nil {
		t.Fatalf("render table: %v", err)
	}
	if !strings.Contains(buf.String(), "manager") {
		t.Fatalf("expected job column:\n%s", buf.String())
	}

	buf.Reset()
	if err := RenderFileTable(&buf, []model.FileActivity{
		{File: "a.ts", Ticks: 2, Chars: 8},
		{File: "b.tsx", Ticks: 10, Chars: 40},
	}); err != nil {
		t.Fatalf("render files: %v", err)
	}
	lines := strings.Split(buf.String(), "\n")
	if len(lines) < 4 || !strings.HasPrefix(lines[2], "b.tsx") {
		t.Fatalf("expected busiest file first:\n%s", buf.String())
	}
}

func TestRenderSummaryEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderSummary(&buf, nil); err != nil {
		t.Fatalf("render summary: %v", err)
	}
	if !strings.Contains(buf.String(), "No work sessions found.") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestPlotSeries(t *testing.T) {
	var buf bytes.Buffer
	err := PlotSeries(&buf, "Test Plot", []Series{
		{Name: "A", Values: []float64{1, 2, 3, 2, 1}},
		{Name: "B", Values: []float64{1, 1, 2, 3, 4}},
		{Name: "empty"},
	}, 12, 4, false)
	if err != nil {
		t.Fatalf("PlotSeries failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Test Plot") || !strings.Contains(out, "Legend:") {
		t.Fatalf("missing title or legend:\n%s", out)
	}
	if strings.Contains(out, "empty") {
		t.Fatalf("empty series should be skipped")
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 1+2+4+1 {
		t.Fatalf("expected 8 lines, got %d:\n%s", len(lines), out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("unexpected color codes")
	}
}

func TestPlotWidthFor(t *testing.T) {
	if got := PlotWidthFor(80); got != 80-len(axisLabelHigh)-3 {
		t.Fatalf("unexpected width %d", got)
	}
	if got := PlotWidthFor(0); got != minPlotWidth {
		t.Fatalf("expected min width, got %d", got)
	}
}

func TestResample(t *testing.T) {
	if got := resample([]float64{0, 10}, 3); got[1] != 5 {
		t.Fatalf("unexpected interpolation %v", got)
	}
	if got := resample([]float64{1, 3, 5, 7}, 2); got[0] != 2 || got[1] != 6 {
		t.Fatalf("unexpected averaging %v", got)
	}
	if got := resample([]float64{4}, 3); got[2] != 4 {
		t.Fatalf("unexpected constant resample %v", got)
	}
}

func TestTopFiles(t *testing.T) {
	files := []model.FileActivity{
		{File: "b.ts", Ticks: 3},
		{File: "a.ts", Ticks: 3},
		{File: "c.ts", Ticks: 9},
	}
	top := TopFiles(files, 2)
	if len(top) != 2 || top[0].File != "c.ts" || top[1].File != "a.ts" {
		t.Fatalf("unexpected order: %+v", top)
	}
}
