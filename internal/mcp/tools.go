package mcp

func (s *Server) listTools() interface{} {
	return map[string]interface{}{
		"tools": []interface{}{
			map[string]interface{}{
				"name":        "list_deadlines",
				"description": "List all tracked reading/listening deadlines with current progress and urgency.",
				"inputSchema": map[string]interface{}{
					"type":       "object",
					"properties": map[string]interface{}{},
				},
			},
			map[string]interface{}{
				"name": "get_deadline_status",
				"description": "Full status for one deadline: required daily pace, recent historical pace with its reliability flag, urgency, and a Monte-Carlo finish-date forecast. " +
					"When historicalPace.isReliable is false the pace sample is too thin; prefer paceEstimate, which already falls back to the default.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"item_id": map[string]interface{}{"type": "string", "description": "The tracked item ID"},
					},
					"required": []string{"item_id"},
				},
			},
			map[string]interface{}{
				"name":        "get_reading_heatmap",
				"description": "Calendar heatmap of reading sessions over the lookback window. hasEnoughData=false means the library is too sparse to render a meaningful grid.",
				"inputSchema": map[string]interface{}{
					"type":       "object",
					"properties": map[string]interface{}{},
				},
			},
			map[string]interface{}{
				"name":        "get_streaks",
				"description": "Current and longest consecutive-day reading streaks across all tracked items. hasEnoughData=false means the history is too sparse to chart.",
				"inputSchema": map[string]interface{}{
					"type":       "object",
					"properties": map[string]interface{}{},
				},
			},
			map[string]interface{}{
				"name":        "get_format_velocity",
				"description": "Average daily velocity per format (physical/ebook/audio), in native units and page-equivalents.",
				"inputSchema": map[string]interface{}{
					"type":       "object",
					"properties": map[string]interface{}{},
				},
			},
			map[string]interface{}{
				"name":        "get_progress_chart",
				"description": "Daily progress series for one item plus a mermaid xychart block. unit_mode 'native' charts the book's own unit; 'page_equivalent' normalizes for cross-item comparison.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"item_id":   map[string]interface{}{"type": "string"},
						"unit_mode": map[string]interface{}{"type": "string", "enum": []string{"native", "page_equivalent"}},
					},
					"required": []string{"item_id"},
				},
			},
			map[string]interface{}{
				"name":        "log_progress",
				"description": "Record a new cumulative progress total for an item. The value is the TOTAL read so far (pages, percent, or minutes), not the amount read today.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"item_id":             map[string]interface{}{"type": "string"},
						"cumulative_progress": map[string]interface{}{"type": "number", "description": "New cumulative total in the item's native unit"},
						"created_at":          map[string]interface{}{"type": "string", "description": "Optional RFC3339 timestamp; defaults to now"},
					},
					"required": []string{"item_id", "cumulative_progress"},
				},
			},
		},
	}
}
