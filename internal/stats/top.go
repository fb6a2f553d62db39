package stats

import (
	"sort"

	"github.com/verte-zerg/lookbusy/internal/model"
)

// TopFiles returns the n files with the most keystrokes.
func TopFiles(files []model.FileActivity, n int) []model.FileActivity {
	if n <= 0 || len(files) == 0 {
		return nil
	}
	sorted := append([]model.FileActivity(nil), files...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Ticks == sorted[j].Ticks {
			return sorted[i].File < sorted[j].File
		}
		return sorted[i].Ticks > sorted[j].Ticks
	})
	return sorted[:min(n, len(sorted))]
}
