// File: services/scheduling/resolver.go
//
// The slot resolver is the one shared implementation behind every booking
// surface: the provider's agenda, the patient portal, and the public booking
// page. It is a pure function of its inputs; it reads no clock, touches no
// store, and never mutates its arguments. The result is advisory only; the
// booking write path re-checks conflicts before persisting anything.
package scheduling

import (
	"time"

	"praxis/models"
)

// ResolveInput carries everything Resolve needs. Nil slices are valid and
// mean "nothing fetched yet": a store still in flight degrades to an empty
// set rather than an error.
type ResolveInput struct {
	Date                  string // "2006-01-02"
	Rule                  *models.AvailabilityRule
	DurationMinutes       int
	BufferMinutes         int
	Blocked               []models.BlockedInterval
	Booked                []models.Appointment
	AllowParallelSessions bool
	Now                   time.Time
}

// Resolve computes the ordered candidate start times for one date and
// classifies each. No rule, an inactive rule, or a rule for another weekday
// yields an empty list, never an error.
func Resolve(in ResolveInput) []models.Slot {
	if in.DurationMinutes <= 0 {
		return nil
	}
	day, err := time.ParseInLocation(dateLayout, in.Date, in.Now.Location())
	if err != nil {
		return nil
	}
	rule := in.Rule
	if rule == nil || !rule.IsActive || rule.DayOfWeek != int(day.Weekday()) {
		return nil
	}

	starts := generateStarts(minutesOfDay(rule.StartTime), minutesOfDay(rule.EndTime), in.DurationMinutes, in.BufferMinutes)
	if len(starts) == 0 {
		return nil
	}

	slots := make([]models.Slot, 0, len(starts))
	for _, start := range starts {
		slots = append(slots, models.Slot{
			StartTime: FormatClock(start),
			IsPast:    isSlotPast(day, start, in.Now),
			IsBlocked: isSlotBlocked(start, in.Date, in.Blocked),
			IsBooked:  isSlotBooked(day, start, in.DurationMinutes, in.BufferMinutes, in.Booked, in.AllowParallelSessions),
		})
	}
	return slots
}

// generateStarts advances the cursor by duration+buffer, so consecutive
// offered slots already respect the provider's idle time. A start is emitted
// only if the full session fits: start+duration <= end; the final partial
// slot is dropped, not rounded.
func generateStarts(startMin, endMin, duration, buffer int) []int {
	var starts []int
	for t := startMin; t+duration <= endMin; t += duration + buffer {
		starts = append(starts, t)
	}
	return starts
}

// isSlotPast compares the slot's absolute start against the reference time.
// Dates before the reference date are wholly past; future dates never are.
func isSlotPast(day time.Time, startMin int, now time.Time) bool {
	slotStart := day.Add(time.Duration(startMin) * time.Minute)
	dayAfter := day.AddDate(0, 0, 1)
	if !now.Before(dayAfter) {
		return true // whole date already behind the reference time
	}
	if now.Before(day) {
		return false
	}
	return !slotStart.After(now)
}

// isSlotBlocked applies the half-open interval test: a slot landing exactly
// on a block's end is not blocked.
func isSlotBlocked(startMin int, date string, blocked []models.BlockedInterval) bool {
	for _, b := range blocked {
		if b.Date != date {
			continue
		}
		if minutesOfDay(b.StartTime) <= startMin && startMin < minutesOfDay(b.EndTime) {
			return true
		}
	}
	return false
}

// SessionConflicts tests a session of arbitrary length [start, start+duration)
// against the occupying appointments. The booking write path uses this with
// the appointment's effective duration, which may differ from the provider
// default that shaped the slot grid.
func SessionConflicts(day time.Time, startMin, duration, buffer int, booked []models.Appointment, allowParallel bool) bool {
	return isSlotBooked(day, startMin, duration, buffer, booked, allowParallel)
}

// isSlotBooked tests the candidate [S, S+duration) against each occupying
// appointment [B, B+bookedDuration+buffer). The buffer extends only the
// existing appointment's end: idle time is owed after a booked session, not
// before a new one.
func isSlotBooked(day time.Time, startMin, duration, buffer int, booked []models.Appointment, allowParallel bool) bool {
	if allowParallel {
		return false
	}
	slotStart := day.Add(time.Duration(startMin) * time.Minute)
	slotEnd := slotStart.Add(time.Duration(duration) * time.Minute)

	for _, appt := range booked {
		if !appt.CountsTowardConflicts() {
			continue
		}
		apptStart := appt.ScheduledAt.In(day.Location())
		apptEnd := apptStart.Add(time.Duration(appt.DurationMinutes+buffer) * time.Minute)
		if slotStart.Before(apptEnd) && slotEnd.After(apptStart) {
			return true
		}
	}
	return false
}
