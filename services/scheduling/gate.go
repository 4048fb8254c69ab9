// File: services/scheduling/gate.go
package scheduling

import (
	"time"

	"praxis/models"
)

// ActiveRuleFor returns the first active rule matching the weekday, or nil.
// Multiple active rules for one weekday are not merged; the availability
// store enforces one document per weekday, so "first" is also "only".
func ActiveRuleFor(rules []models.AvailabilityRule, weekday time.Weekday) *models.AvailabilityRule {
	for i := range rules {
		if rules[i].IsActive && rules[i].DayOfWeek == int(weekday) {
			return &rules[i]
		}
	}
	return nil
}

// DaySelectable reports whether a calendar date may be offered in a date
// picker: not strictly before today, and covered by an active rule. A
// selectable day can still resolve to zero bookable slots once blocks and
// bookings are applied, but never to zero slots for want of a rule.
func DaySelectable(date string, rules []models.AvailabilityRule, now time.Time) bool {
	day, err := time.ParseInLocation(dateLayout, date, now.Location())
	if err != nil {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if day.Before(today) {
		return false
	}
	return ActiveRuleFor(rules, day.Weekday()) != nil
}

// BuildSelectableDays evaluates the gate over a contiguous range for a week
// or month grid.
func BuildSelectableDays(from time.Time, days int, rules []models.AvailabilityRule, now time.Time) []models.SelectableDay {
	out := make([]models.SelectableDay, 0, days)
	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, now.Location())
	for i := 0; i < days; i++ {
		d := start.AddDate(0, 0, i)
		dateStr := d.Format(dateLayout)
		out = append(out, models.SelectableDay{
			Date:       dateStr,
			DayOfWeek:  int(d.Weekday()),
			Selectable: DaySelectable(dateStr, rules, now),
		})
	}
	return out
}
