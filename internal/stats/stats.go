// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/verte-zerg/lookbusy/internal/model"
)

const sparkChars = " .:-=+*#%@"

// AvgLineLen approximates how many revealed characters make one line of code.
const AvgLineLen = 32

// Metrics are the derived productivity figures of one work session.
type Metrics struct {
	KeysPerMin   float64
	CharsPerMin  float64
	LinesPerHour float64
}

// SessionMetrics computes keystrokes per minute, revealed characters per
// minute and estimated lines per hour.
func SessionMetrics(ticks, chars int, durationMs int64) Metrics {
	if durationMs <= 0 {
		return Metrics{}
	}
	minutes := float64(durationMs) / 60000.0
	return Metrics{
		KeysPerMin:   float64(ticks) / minutes,
		CharsPerMin:  float64(chars) / minutes,
		LinesPerHour: float64(chars) / AvgLineLen / (minutes / 60),
	}
}

func metricsOf(ws model.WorkSession) Metrics {
	return SessionMetrics(ws.Ticks, ws.CharsRevealed, ws.DurationMs)
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 1 {
		copy(out, values)
		return out
	}
	var sum float64
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		out[i] = sum / float64(min(i+1, window))
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal, maxVal := minMax(values)
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		idx = max(0, min(idx, len(sparkChars)-1))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

func minMax(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}

// RenderSummary prints totals and averages for sessions.
func RenderSummary(w io.Writer, sessions []model.WorkSession) error {
	if len(sessions) == 0 {
		_, err := fmt.Fprintln(w, "No work sessions found.")
		return err
	}
	var totalMs int64
	var totalKeys, totalLines, bestKeys float64
	var mutations, panics int
	keys := make([]float64, 0, len(sessions))
	for _, s := range sessions {
		m := metricsOf(s)
		totalMs += s.DurationMs
		totalKeys += m.KeysPerMin
		totalLines += m.LinesPerHour
		bestKeys = math.Max(bestKeys, m.KeysPerMin)
		mutations += s.Mutations
		panics += s.Panics
		keys = append(keys, m.KeysPerMin)
	}
	count := float64(len(sessions))
	lines := []string{
		"Summary",
		fmt.Sprintf("Sessions: %d", len(sessions)),
		fmt.Sprintf("Time looking busy: %s", formatDuration(totalMs)),
		fmt.Sprintf("Avg keys/min: %.2f", totalKeys/count),
		fmt.Sprintf("Best keys/min: %.2f", bestKeys),
		fmt.Sprintf("Avg lines/hour: %.1f", totalLines/count),
		fmt.Sprintf("Tree mutations: %d", mutations),
		fmt.Sprintf("Panics: %d", panics),
		fmt.Sprintf("Trend: %s", Sparkline(keys)),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderSessionTable prints one row per session, newest last.
func RenderSessionTable(w io.Writer, sessions []model.WorkSession) error {
	if len(sessions) == 0 {
		return nil
	}
	headers := []string{"Ended", "Job", "Duration", "Keys/min", "Lines/h", "Mutations", "Panics"}
	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		m := metricsOf(s)
		job := string(s.Job)
		if job == "" {
			job = "-"
		}
		rows = append(rows, []string{
			s.EndedAt.Local().Format("2006-01-02 15:04"),
			job,
			formatDuration(s.DurationMs),
			fmt.Sprintf("%.1f", m.KeysPerMin),
			fmt.Sprintf("%.1f", m.LinesPerHour),
			fmt.Sprintf("%d", s.Mutations),
			fmt.Sprintf("%d", s.Panics),
		})
	}
	if _, err := fmt.Fprintln(w, "Sessions"); err != nil {
		return err
	}
	return writeTable(w, headers, rows, map[int]bool{2: true, 3: true, 4: true, 5: true, 6: true})
}

// RenderFileTable prints per-file activity, busiest first.
func RenderFileTable(w io.Writer, files []model.FileActivity) error {
	if len(files) == 0 {
		_, err := fmt.Fprintln(w, "No file activity found.")
		return err
	}
	sorted := append([]model.FileActivity(nil), files...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Chars == sorted[j].Chars {
			return sorted[i].File < sorted[j].File
		}
		return sorted[i].Chars > sorted[j].Chars
	})
	headers := []string{"File", "Keys", "Chars", "Chars/key"}
	rows := make([][]string, 0, len(sorted))
	for _, fa := range sorted {
		ratio := 0.0
		if fa.Ticks > 0 {
			ratio = float64(fa.Chars) / float64(fa.Ticks)
		}
		rows = append(rows, []string{
			fa.File,
			fmt.Sprintf("%d", fa.Ticks),
			fmt.Sprintf("%d", fa.Chars),
			fmt.Sprintf("%.2f", ratio),
		})
	}
	if _, err := fmt.Fprintln(w, "Per-File (Windowed)"); err != nil {
		return err
	}
	return writeTable(w, headers, rows, map[int]bool{1: true, 2: true, 3: true})
}

// RenderCurves prints keys/min and lines/hour over the sessions.
func RenderCurves(w io.Writer, sessions []model.WorkSession, window, totalWidth, height int, useColor bool) error {
	if len(sessions) == 0 {
		return nil
	}
	keys := make([]float64, len(sessions))
	lines := make([]float64, len(sessions))
	for i, s := range sessions {
		m := metricsOf(s)
		keys[i] = m.KeysPerMin
		lines[i] = m.LinesPerHour
	}
	width := 0
	if totalWidth > 0 {
		width = PlotWidthFor(totalWidth)
	}
	return PlotSeries(w, "Productivity", []Series{
		{Name: "Keys/min", Values: MovingAverage(keys, window)},
		{Name: "Lines/hour", Values: MovingAverage(lines, window)},
	}, width, height, useColor)
}

func writeTable(w io.Writer, headers []string, rows [][]string, rightAlign map[int]bool) error {
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

func formatDuration(ms int64) string {
	totalSec := ms / 1000
	h, m, s := totalSec/3600, (totalSec%3600)/60, totalSec%60
	if h > 0 {
		return fmt.Sprintf("%dh%02dm", h, m)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}
