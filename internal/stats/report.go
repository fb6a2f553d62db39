package stats

import (
	"context"

	"github.com/verte-zerg/lookbusy/internal/model"
	"github.com/verte-zerg/lookbusy/internal/store"
)

// Report contains precomputed data for stats rendering.
type Report struct {
	Sessions         []model.WorkSession
	WindowSessionIDs []int64
	FilesAll         []model.FileActivity
	FilesWindow      []model.FileActivity
}

// BuildReport loads and prepares data for stats rendering.
func BuildReport(ctx context.Context, st *store.Store, filter model.StatsFilter) (Report, error) {
	sessions, err := st.ListWorkSessions(ctx, filter)
	if err != nil {
		return Report{}, err
	}
	windowIDs := lastSessionIDs(sessions, filter.CurveWindow)
	filesAll, err := st.ListFileActivity(ctx, sessionIDs(sessions))
	if err != nil {
		return Report{}, err
	}
	filesWindow, err := st.ListFileActivity(ctx, windowIDs)
	if err != nil {
		return Report{}, err
	}
	if filter.TopFiles > 0 {
		filesWindow = TopFiles(filesWindow, filter.TopFiles)
	}
	return Report{
		Sessions:         sessions,
		WindowSessionIDs: windowIDs,
		FilesAll:         filesAll,
		FilesWindow:      filesWindow,
	}, nil
}

func sessionIDs(sessions []model.WorkSession) []int64 {
	ids := make([]int64, len(sessions))
	for i, s := range sessions {
		ids[i] = s.ID
	}
	return ids
}

func lastSessionIDs(sessions []model.WorkSession, window int) []int64 {
	if window <= 0 || len(sessions) <= window {
		return sessionIDs(sessions)
	}
	return sessionIDs(sessions[len(sessions)-window:])
}
