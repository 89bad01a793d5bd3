package services

import (
	"github.com/custodia-labs/khareeta/internal/core/domain"
	"github.com/custodia-labs/khareeta/internal/logger"
)

// BuildMissions resolves templates against the points of a scope.
// Templates whose category has no point are dropped; the others need
// min(target, available) distinct visits.
func BuildMissions(points []domain.PointOfInterest, templates []domain.MissionTemplate) []domain.Mission {
	counts := make(map[string]int)
	for _, p := range points {
		counts[p.Type]++
	}

	missions := make([]domain.Mission, 0, len(templates))
	for _, t := range templates {
		available := counts[t.Category]
		if available == 0 {
			continue
		}
		count := min(t.Target, available)
		missions = append(missions, domain.Mission{
			ID:       t.ID,
			Category: t.Category,
			Count:    count,
			Reward:   t.Reward,
			Label:    t.Label(count),
		})
	}
	return missions
}

// MissionTracker latches mission completion. Once a mission is reported
// complete it stays complete for the tracker's lifetime, whatever visited
// set is passed later.
type MissionTracker struct {
	done map[string]bool
}

// NewMissionTracker creates a tracker with no completed missions.
func NewMissionTracker() *MissionTracker {
	return &MissionTracker{done: make(map[string]bool)}
}

// Check counts visited points per mission category and returns the
// missions completed by this call. Already completed missions are skipped.
func (t *MissionTracker) Check(missions []domain.Mission, visited []domain.PointOfInterest) []domain.Mission {
	counts := visitCounts(visited)

	var completed []domain.Mission
	for _, m := range missions {
		if t.Completed(m.ID) {
			continue
		}
		if counts[m.Category] >= m.Count {
			t.done[m.ID] = true
			completed = append(completed, m)
			logger.Debug("Mission %s completed (reward %d)", m.ID, m.Reward)
		}
	}
	return completed
}

// Completed reports whether a mission has been completed.
func (t *MissionTracker) Completed(missionID string) bool {
	return t.done[missionID]
}

// Statuses reports each mission with its visit count and completion.
func (t *MissionTracker) Statuses(missions []domain.Mission, visited []domain.PointOfInterest) []domain.MissionStatus {
	counts := visitCounts(visited)
	out := make([]domain.MissionStatus, len(missions))
	for i, m := range missions {
		out[i] = domain.MissionStatus{
			Mission:   m,
			Visited:   min(counts[m.Category], m.Count),
			Completed: t.Completed(m.ID),
		}
	}
	return out
}

func visitCounts(visited []domain.PointOfInterest) map[string]int {
	counts := make(map[string]int)
	for _, p := range visited {
		counts[p.Type]++
	}
	return counts
}
