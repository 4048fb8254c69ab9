package models

// Slot is a candidate appointment start time for one date, classified by the
// resolver. It is ephemeral output, never persisted.
type Slot struct {
	StartTime string `json:"startTime"` // "HH:MM"
	IsPast    bool   `json:"isPast"`
	IsBlocked bool   `json:"isBlocked"`
	IsBooked  bool   `json:"isBooked"`
}

// Available reports whether the slot can actually be booked.
func (s Slot) Available() bool {
	return !s.IsPast && !s.IsBlocked && !s.IsBooked
}

// DaySlots is the response for one date on a booking surface.
type DaySlots struct {
	Date  string `json:"date"`
	Slots []Slot `json:"slots"`
}

// SelectableDay feeds the date-range picker: a date is selectable iff it is
// not in the past and the provider has an active rule for its weekday.
type SelectableDay struct {
	Date       string `json:"date"` // "2006-01-02"
	DayOfWeek  int    `json:"dayOfWeek"`
	Selectable bool   `json:"selectable"`
}
