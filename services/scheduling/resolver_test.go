package scheduling

import (
	"reflect"
	"testing"
	"time"

	"praxis/models"
)

// Monday 2026-03-02; reference clock 08:00 local unless a test says otherwise.
var (
	testDate = "2026-03-02"
	testNow  = time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
)

func mondayRule(start, end string) *models.AvailabilityRule {
	return &models.AvailabilityRule{
		ID:         "rule-mon",
		ProviderID: "prov-1",
		DayOfWeek:  1,
		StartTime:  start,
		EndTime:    end,
		IsActive:   true,
	}
}

func apptAt(clock string, duration int, status string) models.Appointment {
	min := minutesOfDay(clock)
	return models.Appointment{
		ID:              "appt-" + clock,
		ProviderID:      "prov-1",
		ScheduledAt:     time.Date(2026, 3, 2, min/60, min%60, 0, 0, time.UTC),
		DurationMinutes: duration,
		Status:          status,
	}
}

func startTimes(slots []models.Slot) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.StartTime
	}
	return out
}

func slotByStart(t *testing.T, slots []models.Slot, start string) models.Slot {
	t.Helper()
	for _, s := range slots {
		if s.StartTime == start {
			return s
		}
	}
	t.Fatalf("no slot starting at %s in %v", start, startTimes(slots))
	return models.Slot{}
}

func TestGenerateStartsCount(t *testing.T) {
	tests := []struct {
		name     string
		start    int
		end      int
		duration int
		want     int
	}{
		{"exact fit", 540, 720, 60, 3},
		{"partial tail dropped", 540, 710, 60, 2},
		{"window smaller than session", 540, 570, 60, 0},
		{"single slot", 540, 600, 60, 1},
		{"odd duration", 540, 720, 50, 3},
		{"empty window", 540, 540, 30, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := generateStarts(tt.start, tt.end, tt.duration, 0)
			want := (tt.end - tt.start) / tt.duration
			if want != tt.want {
				t.Fatalf("test data inconsistent: floor formula gives %d, case expects %d", want, tt.want)
			}
			if len(got) != tt.want {
				t.Errorf("got %d starts, want %d", len(got), tt.want)
			}
			for _, s := range got {
				if s < tt.start || s+tt.duration > tt.end {
					t.Errorf("start %d does not fit window [%d,%d) with duration %d", s, tt.start, tt.end, tt.duration)
				}
			}
		})
	}
}

func TestResolveBufferedGrid(t *testing.T) {
	// 09:00-12:00, 50-minute sessions, 10-minute buffer: the window fits
	// three sessions but not a fourth.
	slots := Resolve(ResolveInput{
		Date:            testDate,
		Rule:            mondayRule("09:00", "12:00"),
		DurationMinutes: 50,
		BufferMinutes:   10,
		Now:             testNow,
	})

	want := []string{"09:00", "10:00", "11:00"}
	if got := startTimes(slots); !reflect.DeepEqual(got, want) {
		t.Fatalf("got starts %v, want %v", got, want)
	}
	for _, s := range slots {
		if !s.Available() {
			t.Errorf("slot %s should be available, got %+v", s.StartTime, s)
		}
	}
}

func TestResolveNoRule(t *testing.T) {
	tests := []struct {
		name string
		rule *models.AvailabilityRule
	}{
		{"nil rule", nil},
		{"inactive rule", &models.AvailabilityRule{DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00", IsActive: false}},
		{"wrong weekday", &models.AvailabilityRule{DayOfWeek: 3, StartTime: "09:00", EndTime: "12:00", IsActive: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots := Resolve(ResolveInput{
				Date:            testDate,
				Rule:            tt.rule,
				DurationMinutes: 50,
				Now:             testNow,
			})
			if len(slots) != 0 {
				t.Errorf("expected no slots, got %v", startTimes(slots))
			}
		})
	}
}

func TestResolveBlockedBoundaries(t *testing.T) {
	block := func(start, end string) []models.BlockedInterval {
		return []models.BlockedInterval{{
			ProviderID: "prov-1",
			Date:       testDate,
			StartTime:  start,
			EndTime:    end,
		}}
	}

	tests := []struct {
		name    string
		blocked []models.BlockedInterval
		slot    string
		want    bool
	}{
		{"inside block", block("10:00", "10:30"), "10:00", true},
		{"before block", block("10:00", "10:30"), "09:00", false},
		{"after block", block("10:00", "10:30"), "11:00", false},
		{"slot exactly at block end", block("09:00", "10:00"), "10:00", false},
		{"slot exactly at block start", block("11:00", "11:30"), "11:00", true},
		{"block on another date", []models.BlockedInterval{{Date: "2026-03-03", StartTime: "10:00", EndTime: "10:30"}}, "10:00", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots := Resolve(ResolveInput{
				Date:            testDate,
				Rule:            mondayRule("09:00", "12:00"),
				DurationMinutes: 50,
				BufferMinutes:   10,
				Blocked:         tt.blocked,
				Now:             testNow,
			})
			if got := slotByStart(t, slots, tt.slot).IsBlocked; got != tt.want {
				t.Errorf("slot %s IsBlocked = %v, want %v", tt.slot, got, tt.want)
			}
		})
	}
}

func TestResolveBookedOverlap(t *testing.T) {
	tests := []struct {
		name   string
		booked []models.Appointment
		slot   string
		want   bool
	}{
		// Appointment 09:00+50 with 10-minute buffer occupies [09:00, 10:00):
		// the 10:00 slot is exactly adjacent, not overlapping.
		{"adjacent after buffered end", []models.Appointment{apptAt("09:00", 50, models.AppointmentConfirmed)}, "10:00", false},
		// Moved to 09:05 the buffered end becomes 10:05, one minute too far.
		{"one minute into buffer", []models.Appointment{apptAt("09:05", 50, models.AppointmentConfirmed)}, "10:00", true},
		{"same start", []models.Appointment{apptAt("09:00", 50, models.AppointmentConfirmed)}, "09:00", true},
		{"cancelled ignored", []models.Appointment{apptAt("09:00", 50, models.AppointmentCancelled)}, "09:00", false},
		{"no show ignored", []models.Appointment{apptAt("09:00", 50, models.AppointmentNoShow)}, "09:00", false},
		{"pending counts", []models.Appointment{apptAt("11:00", 50, models.AppointmentPending)}, "11:00", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots := Resolve(ResolveInput{
				Date:            testDate,
				Rule:            mondayRule("09:00", "12:00"),
				DurationMinutes: 50,
				BufferMinutes:   10,
				Booked:          tt.booked,
				Now:             testNow,
			})
			if got := slotByStart(t, slots, tt.slot).IsBooked; got != tt.want {
				t.Errorf("slot %s IsBooked = %v, want %v", tt.slot, got, tt.want)
			}
		})
	}
}

func TestResolveParallelSessionsIgnoreBookings(t *testing.T) {
	booked := []models.Appointment{
		apptAt("09:00", 50, models.AppointmentConfirmed),
		apptAt("10:00", 50, models.AppointmentConfirmed),
		apptAt("11:00", 50, models.AppointmentConfirmed),
	}
	slots := Resolve(ResolveInput{
		Date:                  testDate,
		Rule:                  mondayRule("09:00", "12:00"),
		DurationMinutes:       50,
		BufferMinutes:         10,
		Booked:                booked,
		AllowParallelSessions: true,
		Now:                   testNow,
	})
	for _, s := range slots {
		if s.IsBooked {
			t.Errorf("slot %s marked booked despite parallel sessions", s.StartTime)
		}
	}
}

func TestResolvePastSlots(t *testing.T) {
	// 10:30 on the target Monday: 09:00 and 10:00 are gone, 11:00 is not.
	midMorning := time.Date(2026, 3, 2, 10, 30, 0, 0, time.UTC)
	slots := Resolve(ResolveInput{
		Date:            testDate,
		Rule:            mondayRule("09:00", "12:00"),
		DurationMinutes: 50,
		BufferMinutes:   10,
		Now:             midMorning,
	})

	wantPast := map[string]bool{"09:00": true, "10:00": true, "11:00": false}
	for start, want := range wantPast {
		if got := slotByStart(t, slots, start).IsPast; got != want {
			t.Errorf("at 10:30, slot %s IsPast = %v, want %v", start, got, want)
		}
	}

	// The whole date is past from the next day onward.
	nextDay := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)
	for _, s := range Resolve(ResolveInput{
		Date:            testDate,
		Rule:            mondayRule("09:00", "12:00"),
		DurationMinutes: 50,
		BufferMinutes:   10,
		Now:             nextDay,
	}) {
		if !s.IsPast {
			t.Errorf("slot %s on an elapsed date should be past", s.StartTime)
		}
	}

	// From an earlier date, nothing is past.
	dayBefore := time.Date(2026, 3, 1, 23, 0, 0, 0, time.UTC)
	for _, s := range Resolve(ResolveInput{
		Date:            testDate,
		Rule:            mondayRule("09:00", "12:00"),
		DurationMinutes: 50,
		BufferMinutes:   10,
		Now:             dayBefore,
	}) {
		if s.IsPast {
			t.Errorf("slot %s on a future date should not be past", s.StartTime)
		}
	}
}

func TestResolveDeterministic(t *testing.T) {
	in := ResolveInput{
		Date:            testDate,
		Rule:            mondayRule("09:00", "12:00"),
		DurationMinutes: 50,
		BufferMinutes:   10,
		Blocked: []models.BlockedInterval{
			{Date: testDate, StartTime: "10:00", EndTime: "10:30"},
		},
		Booked: []models.Appointment{apptAt("11:00", 50, models.AppointmentConfirmed)},
		Now:    testNow,
	}

	first := Resolve(in)
	second := Resolve(in)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("resolver not deterministic: %v vs %v", first, second)
	}

	// Ascending order.
	for i := 1; i < len(first); i++ {
		if minutesOfDay(first[i-1].StartTime) >= minutesOfDay(first[i].StartTime) {
			t.Fatalf("slots out of order: %v", startTimes(first))
		}
	}
}

func TestResolveBlockedScenario(t *testing.T) {
	// Mon 09:00-12:00, duration 50, buffer 10, one block 10:00-10:30.
	slots := Resolve(ResolveInput{
		Date:            testDate,
		Rule:            mondayRule("09:00", "12:00"),
		DurationMinutes: 50,
		BufferMinutes:   10,
		Blocked: []models.BlockedInterval{
			{Date: testDate, StartTime: "10:00", EndTime: "10:30"},
		},
		Now: testNow,
	})

	if s := slotByStart(t, slots, "10:00"); !s.IsBlocked {
		t.Errorf("10:00 should be blocked")
	}
	for _, start := range []string{"09:00", "11:00"} {
		if s := slotByStart(t, slots, start); !s.Available() {
			t.Errorf("%s should remain available, got %+v", start, s)
		}
	}
}

func TestResolveNotLoadedStores(t *testing.T) {
	// Nil blocked/booked sets mean "not fetched yet" and must fail open.
	slots := Resolve(ResolveInput{
		Date:            testDate,
		Rule:            mondayRule("09:00", "12:00"),
		DurationMinutes: 50,
		BufferMinutes:   10,
		Blocked:         nil,
		Booked:          nil,
		Now:             testNow,
	})
	if len(slots) != 3 {
		t.Fatalf("expected 3 slots with empty stores, got %v", startTimes(slots))
	}
}
