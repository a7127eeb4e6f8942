package sim

import "fmt"

// Priority is the class of a request. The classes form a closed, totally
// ordered set: Corporate outranks Premium, Premium outranks Free. A lower
// numeric rank means higher priority, so rank comparisons order buffer
// contents directly.
type Priority int

const (
	Corporate Priority = iota // highest
	Premium
	Free // lowest
)

// Outranks reports whether p is strictly higher priority than other.
func (p Priority) Outranks(other Priority) bool {
	return p < other
}

func (p Priority) String() string {
	switch p {
	case Corporate:
		return "corporate"
	case Premium:
		return "premium"
	case Free:
		return "free"
	default:
		return fmt.Sprintf("unknown(%d)", int(p))
	}
}

// ParsePriority parses a string into a Priority.
func ParsePriority(s string) (Priority, error) {
	switch s {
	case "corporate":
		return Corporate, nil
	case "premium":
		return Premium, nil
	case "free":
		return Free, nil
	default:
		return Free, fmt.Errorf("invalid Priority: %s (must be 'corporate', 'premium', or 'free')", s)
	}
}

// Priorities lists all classes from highest to lowest rank.
func Priorities() []Priority {
	return []Priority{Corporate, Premium, Free}
}
