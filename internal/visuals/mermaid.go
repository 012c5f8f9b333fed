package visuals

import (
	"fmt"
	"math"
	"strings"
	"time"

	"shelfpace/internal/analytics"
	"shelfpace/internal/tracker"
)

// DailyProgressChart creates a Mermaid xychart-beta bar chart of one item's
// daily deltas.
func DailyProgressChart(title, unit string, deltas []analytics.DailyDelta) string {
	if len(deltas) == 0 {
		return ""
	}

	var labels []string
	var values []string
	maxVal := 0.0

	// Limit to the 30 most recent days to keep the text chart readable
	start := 0
	if len(deltas) > 30 {
		start = len(deltas) - 30
	}
	for _, d := range deltas[start:] {
		labels = append(labels, fmt.Sprintf("\"%s\"", d.Date.Format("01-02")))
		values = append(values, fmt.Sprintf("%.1f", d.Delta))
		if d.Delta > maxVal {
			maxVal = d.Delta
		}
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString(fmt.Sprintf("    title \"%s\"\n", title))
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"%s per day\" 0 --> %d\n", unit, int(math.Ceil(maxVal*1.2))+1))
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(values, ", ")))
	sb.WriteString("```")
	return sb.String()
}

// DeadlineGantt creates a Mermaid gantt block laying out every active
// deadline from the reference day to its due date.
func DeadlineGantt(statuses []analytics.DeadlineStatus, reference time.Time) string {
	if len(statuses) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("gantt\n")
	sb.WriteString("    title Reading Deadlines\n")
	sb.WriteString("    dateFormat YYYY-MM-DD\n")

	for _, st := range statuses {
		if st.Item.Status != tracker.StatusActive {
			continue
		}
		marker := ""
		if st.Urgency == analytics.Overdue {
			marker = "crit, "
		} else if st.Urgency == analytics.Urgent {
			marker = "active, "
		}

		start := reference
		end := st.Item.Deadline
		if end.Before(start) {
			// Overdue: draw the slipped span instead of a negative one
			start, end = end, start
		}
		sb.WriteString(fmt.Sprintf("    %s :%s%s, %s\n",
			sanitizeLabel(st.Item.Title), marker,
			start.Format("2006-01-02"), end.Format("2006-01-02")))
	}
	sb.WriteString("```")
	return sb.String()
}

// HeatmapText renders the heatmap grid as rows of intensity glyphs, one row
// per weekday, most recent week on the right.
func HeatmapText(result analytics.HeatmapResult) string {
	if len(result.Cells) == 0 {
		return ""
	}

	glyphs := []rune{'.', '-', '+', '*', '#'}
	rows := make([][]rune, 7)

	for _, cell := range result.Cells {
		weekday := int(cell.Date.Weekday())
		if weekday == 0 {
			weekday = 7 // Sunday last
		}
		rows[weekday-1] = append(rows[weekday-1], glyphs[cell.Intensity])
	}

	names := []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	var sb strings.Builder
	for i, row := range rows {
		sb.WriteString(names[i])
		sb.WriteString(" ")
		sb.WriteString(string(row))
		sb.WriteString("\n")
	}
	return sb.String()
}

func sanitizeLabel(s string) string {
	s = strings.ReplaceAll(s, ":", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	if s == "" {
		return "untitled"
	}
	return s
}
