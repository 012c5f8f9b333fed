package mcp

import (
	"fmt"
	"time"

	"shelfpace/internal/forecast"
	"shelfpace/internal/tracker"
	"shelfpace/internal/visuals"
)

func (s *Server) handleListDeadlines() (interface{}, error) {
	session := s.session()
	statuses := session.Statuses()

	ring := session.ProgressRing()
	return map[string]interface{}{
		"deadlines":    statuses,
		"progressRing": ring, // nil when no item has progress yet
	}, nil
}

func (s *Server) handleDeadlineStatus(itemID string) (interface{}, error) {
	if itemID == "" {
		return nil, fmt.Errorf("item_id is required")
	}
	item, ok := s.provider.Log().Item(itemID)
	if !ok {
		return nil, fmt.Errorf("unknown tracked item %q", itemID)
	}

	session := s.session()
	status := session.Status(item)

	// nil forecast means the history has no positive activity yet
	fc := forecast.ForItem(item, s.provider.Log().Snapshots(itemID), s.now().UTC(), 0)

	return map[string]interface{}{
		"status":   status,
		"forecast": fc,
	}, nil
}

func (s *Server) handleHeatmap() (interface{}, error) {
	return s.session().Heatmap(), nil
}

func (s *Server) handleStreaks() (interface{}, error) {
	return s.session().Streaks(), nil
}

func (s *Server) handleFormatVelocity() (interface{}, error) {
	velocities := s.session().FormatVelocities()
	if len(velocities) == 0 {
		return map[string]interface{}{
			"velocities": []interface{}{},
			"note":       "No item has recorded progress yet.",
		}, nil
	}
	return map[string]interface{}{"velocities": velocities}, nil
}

func (s *Server) handleProgressChart(itemID, unitMode string) (interface{}, error) {
	if itemID == "" {
		return nil, fmt.Errorf("item_id is required")
	}
	item, ok := s.provider.Log().Item(itemID)
	if !ok {
		return nil, fmt.Errorf("unknown tracked item %q", itemID)
	}

	pageEquivalent := unitMode == "page_equivalent"
	deltas := s.session().ItemDeltas(itemID, pageEquivalent)

	unit := item.Format.Unit()
	if pageEquivalent {
		unit = "page-equivalents"
	}

	return map[string]interface{}{
		"item":    item,
		"unit":    unit,
		"series":  deltas,
		"mermaid": visuals.DailyProgressChart(item.Title, unit, deltas),
	}, nil
}

func (s *Server) handleLogProgress(args map[string]interface{}) (interface{}, error) {
	itemID := asString(args["item_id"])
	if itemID == "" {
		return nil, fmt.Errorf("item_id is required")
	}
	progress, ok := asFloat(args["cumulative_progress"])
	if !ok {
		return nil, fmt.Errorf("cumulative_progress must be a number")
	}

	createdAt := s.now().UTC()
	if raw := asString(args["created_at"]); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, fmt.Errorf("created_at must be RFC3339: %w", err)
		}
		createdAt = parsed.UTC()
	}

	snap := tracker.ProgressSnapshot{
		ItemID:             itemID,
		CreatedAt:          createdAt,
		CumulativeProgress: progress,
	}
	if err := s.provider.LogProgress(snap); err != nil {
		return nil, err
	}

	// Return the fresh status so the caller sees the effect immediately.
	return s.handleDeadlineStatus(itemID)
}
