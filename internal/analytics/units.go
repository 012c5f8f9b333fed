package analytics

import "shelfpace/internal/tracker"

// MinutesPerPage is the fixed audio conversion: 1.5 minutes of listening
// counts as one page. A design decision, not a per-item setting.
const MinutesPerPage = 1.5

// PageEquivalent converts a raw quantity in the item's native unit into the
// canonical page-equivalent scalar used for cross-format comparison.
// Physical pages and ebook percentage points pass through unchanged;
// percentage only compares meaningfully against other values that went
// through this same path for the same item.
func PageEquivalent(format tracker.Format, quantity float64) float64 {
	if format == tracker.Audio {
		return quantity / MinutesPerPage
	}
	return quantity
}
