package projection

import "time"

// TwiceMonthlyDays are the fixed anchor days of a twice-monthly rule.
var TwiceMonthlyDays = [2]int{1, 15}

// Rule is a recurrence schedule. The set of implementations is closed:
// MonthlyRule and TwiceMonthlyRule.
type Rule interface {
	rule()
}

// MonthlyRule recurs once a month on Day, clamped to the month's last day.
type MonthlyRule struct {
	Day int
}

// TwiceMonthlyRule recurs on the 1st and the 15th of every month.
type TwiceMonthlyRule struct{}

func (MonthlyRule) rule()      {}
func (TwiceMonthlyRule) rule() {}

// RuleFor derives the recurrence rule of t. It returns false for
// non-recurring transactions. An unset frequency recurs monthly.
func RuleFor(t Transaction) (Rule, bool) {
	if !t.IsRecurring {
		return nil, false
	}

	switch t.Frequency {
	case FrequencyTwiceMonthly:
		return TwiceMonthlyRule{}, true
	default:
		return MonthlyRule{Day: t.Date.Day()}, true
	}
}

// Occurrences returns the dates within m on which r fires.
func Occurrences(r Rule, m Month) []time.Time {
	switch rule := r.(type) {
	case MonthlyRule:
		day := rule.Day
		if last := m.Days(); day > last {
			day = last
		}
		if day < 1 {
			day = 1
		}
		return []time.Time{m.Date(day)}
	case TwiceMonthlyRule:
		return []time.Time{m.Date(TwiceMonthlyDays[0]), m.Date(TwiceMonthlyDays[1])}
	default:
		// only a nil Rule gets here; it never fires
		return nil
	}
}
