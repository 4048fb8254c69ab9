package scheduling

import (
	"testing"
	"time"

	"praxis/models"
)

func weekRules() []models.AvailabilityRule {
	return []models.AvailabilityRule{
		{ID: "r1", DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00", IsActive: true},
		{ID: "r3", DayOfWeek: 3, StartTime: "14:00", EndTime: "18:00", IsActive: true},
		{ID: "r5", DayOfWeek: 5, StartTime: "09:00", EndTime: "12:00", IsActive: false},
	}
}

func TestDaySelectable(t *testing.T) {
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC) // Monday

	tests := []struct {
		name string
		date string
		want bool
	}{
		{"today with active rule", "2026-03-02", true},
		{"future wednesday", "2026-03-04", true},
		{"tuesday has no rule", "2026-03-03", false},
		{"friday rule inactive", "2026-03-06", false},
		{"yesterday", "2026-03-01", false},
		{"last week monday", "2026-02-23", false},
		{"malformed date", "not-a-date", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaySelectable(tt.date, weekRules(), now); got != tt.want {
				t.Errorf("DaySelectable(%s) = %v, want %v", tt.date, got, tt.want)
			}
		})
	}
}

// A selectable day must never resolve to zero slots just because the rule is
// missing; with no blocks or bookings its window always yields at least one
// slot when a session fits.
func TestGateConsistentWithResolver(t *testing.T) {
	now := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	rules := weekRules()

	for _, day := range BuildSelectableDays(now, 14, rules, now) {
		parsed, err := time.ParseInLocation("2006-01-02", day.Date, time.UTC)
		if err != nil {
			t.Fatalf("bad date %q: %v", day.Date, err)
		}
		slots := Resolve(ResolveInput{
			Date:            day.Date,
			Rule:            ActiveRuleFor(rules, parsed.Weekday()),
			DurationMinutes: 50,
			BufferMinutes:   10,
			Now:             now,
		})
		if day.Selectable && len(slots) == 0 {
			t.Errorf("day %s selectable but resolved no slots", day.Date)
		}
		if !day.Selectable && len(slots) != 0 {
			// The only gate criterion beyond the rule is pastness, and none
			// of the generated dates precede the reference date.
			t.Errorf("day %s not selectable yet resolved %d slots", day.Date, len(slots))
		}
	}
}

func TestActiveRuleFor(t *testing.T) {
	rules := weekRules()

	if r := ActiveRuleFor(rules, time.Monday); r == nil || r.ID != "r1" {
		t.Errorf("expected rule r1 for Monday, got %+v", r)
	}
	if r := ActiveRuleFor(rules, time.Friday); r != nil {
		t.Errorf("inactive rule must not match, got %+v", r)
	}
	if r := ActiveRuleFor(rules, time.Sunday); r != nil {
		t.Errorf("expected no rule for Sunday, got %+v", r)
	}

	// First active rule wins if the store ever holds duplicates.
	dup := append([]models.AvailabilityRule{
		{ID: "early", DayOfWeek: 1, StartTime: "08:00", EndTime: "10:00", IsActive: true},
	}, rules...)
	if r := ActiveRuleFor(dup, time.Monday); r == nil || r.ID != "early" {
		t.Errorf("expected first active rule, got %+v", r)
	}
}

func TestBuildSelectableDays(t *testing.T) {
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

	days := BuildSelectableDays(now, 7, weekRules(), now)
	if len(days) != 7 {
		t.Fatalf("expected 7 days, got %d", len(days))
	}
	if days[0].Date != "2026-03-02" || days[6].Date != "2026-03-08" {
		t.Errorf("unexpected range: %s .. %s", days[0].Date, days[6].Date)
	}

	selectable := 0
	for _, d := range days {
		if d.Selectable {
			selectable++
		}
	}
	// Monday and Wednesday only.
	if selectable != 2 {
		t.Errorf("expected 2 selectable days, got %d", selectable)
	}
}
