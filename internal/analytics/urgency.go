package analytics

// UrgencyLevel is the ordered severity of a deadline, derived purely from
// the days remaining.
type UrgencyLevel string

const (
	Overdue     UrgencyLevel = "overdue"
	Urgent      UrgencyLevel = "urgent"
	Approaching UrgencyLevel = "approaching"
	Good        UrgencyLevel = "good"
)

// Color returns the fixed display color for the level.
func (u UrgencyLevel) Color() string {
	switch u {
	case Overdue:
		return "#D32F2F"
	case Urgent:
		return "#F57C00"
	case Approaching:
		return "#FBC02D"
	default:
		return "#388E3C"
	}
}

// Message returns the fixed status message for the level.
func (u UrgencyLevel) Message() string {
	switch u {
	case Overdue:
		return "Past due"
	case Urgent:
		return "Due this week"
	case Approaching:
		return "Due soon"
	default:
		return "On track"
	}
}

// ClassifyUrgency maps days remaining to a severity level. First match
// wins: overdue at zero or less, then the urgent and approaching
// thresholds, then good.
func (t Tuning) ClassifyUrgency(daysLeft int) UrgencyLevel {
	switch {
	case daysLeft <= 0:
		return Overdue
	case daysLeft <= t.UrgentDays:
		return Urgent
	case daysLeft <= t.ApproachingDays:
		return Approaching
	default:
		return Good
	}
}
