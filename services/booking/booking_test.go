package booking

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"praxis/models"

	"go.mongodb.org/mongo-driver/bson"
)

// 2030-01-07 is a Monday, far enough ahead that no slot is past.
const testDate = "2030-01-07"

func testProvider() *models.Provider {
	return &models.Provider{
		ID: "prov-1",
		Profile: models.Profile{
			FullName: "Dr. Helena Souza",
			Email:    "helena@example.com",
			Status:   "active",
		},
		SchedulingConfig: models.SchedulingConfig{
			SessionDurationMinutes:       50,
			SessionPriceMinorUnits:       25000,
			Currency:                     "BRL",
			BufferBetweenSessionsMinutes: 10,
			PublicBookingEnabled:         true,
		},
	}
}

func mondayRule() models.AvailabilityRule {
	return models.AvailabilityRule{
		ID:         "rule-mon",
		ProviderID: "prov-1",
		DayOfWeek:  1,
		StartTime:  "09:00",
		EndTime:    "12:00",
		IsActive:   true,
	}
}

func apptAt(id, clock string, duration int, status string) models.Appointment {
	day, _ := time.ParseInLocation("2006-01-02", testDate, time.UTC)
	h := int(clock[0]-'0')*10 + int(clock[1]-'0')
	m := int(clock[3]-'0')*10 + int(clock[4]-'0')
	return models.Appointment{
		ID:              id,
		ProviderID:      "prov-1",
		ScheduledAt:     day.Add(time.Duration(h*60+m) * time.Minute),
		DurationMinutes: duration,
		Status:          status,
	}
}

type fakeProviderRepo struct {
	prov *models.Provider
}

func (f *fakeProviderRepo) Create(ctx context.Context, p *models.Provider) error { return nil }
func (f *fakeProviderRepo) GetByID(ctx context.Context, id string) (*models.Provider, error) {
	if f.prov != nil && f.prov.ID == id {
		return f.prov, nil
	}
	return nil, nil
}
func (f *fakeProviderRepo) GetByEmail(ctx context.Context, email string) (*models.Provider, error) {
	return nil, nil
}
func (f *fakeProviderRepo) GetByIDWithProjection(ctx context.Context, id string, projection bson.M) (*models.Provider, error) {
	return f.GetByID(ctx, id)
}
func (f *fakeProviderRepo) Update(ctx context.Context, p *models.Provider) error { return nil }
func (f *fakeProviderRepo) UpdateFields(ctx context.Context, id string, updates bson.M) error {
	return nil
}
func (f *fakeProviderRepo) Delete(ctx context.Context, id string) error        { return nil }
func (f *fakeProviderRepo) GetAll(ctx context.Context) ([]models.Provider, error) { return nil, nil }
func (f *fakeProviderRepo) Count(ctx context.Context) (int64, error)           { return 0, nil }

type fakeAvailabilityRepo struct {
	rules    []models.AvailabilityRule
	blocked  []models.BlockedInterval
	rulesErr error
}

func (f *fakeAvailabilityRepo) UpsertRule(ctx context.Context, rule *models.AvailabilityRule) (*models.AvailabilityRule, error) {
	return rule, nil
}
func (f *fakeAvailabilityRepo) ListRules(ctx context.Context, providerID string) ([]models.AvailabilityRule, error) {
	return f.rules, f.rulesErr
}
func (f *fakeAvailabilityRepo) ListActiveRules(ctx context.Context, providerID string) ([]models.AvailabilityRule, error) {
	return f.rules, f.rulesErr
}
func (f *fakeAvailabilityRepo) DeleteRule(ctx context.Context, providerID, ruleID string) error {
	return nil
}
func (f *fakeAvailabilityRepo) CreateBlocked(ctx context.Context, b *models.BlockedInterval) error {
	return nil
}
func (f *fakeAvailabilityRepo) ListBlockedInRange(ctx context.Context, providerID, dateFrom, dateTo string) ([]models.BlockedInterval, error) {
	return f.blocked, nil
}
func (f *fakeAvailabilityRepo) DeleteBlocked(ctx context.Context, providerID, blockedID string) error {
	return nil
}

type fakeAppointmentRepo struct {
	appts   []models.Appointment
	created []*models.Appointment
}

func (f *fakeAppointmentRepo) Create(ctx context.Context, appt *models.Appointment) error {
	f.created = append(f.created, appt)
	f.appts = append(f.appts, *appt)
	return nil
}
func (f *fakeAppointmentRepo) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	for i := range f.appts {
		if f.appts[i].ID == id {
			a := f.appts[i]
			return &a, nil
		}
	}
	return nil, nil
}
func (f *fakeAppointmentRepo) ListByProviderInRange(ctx context.Context, providerID string, from, to time.Time, activeOnly bool) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range f.appts {
		if a.ProviderID != providerID {
			continue
		}
		if activeOnly && !a.CountsTowardConflicts() {
			continue
		}
		if a.ScheduledAt.Before(from) || !a.ScheduledAt.Before(to) {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}
func (f *fakeAppointmentRepo) ListByPatient(ctx context.Context, patientID string) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range f.appts {
		if a.PatientID == patientID {
			out = append(out, a)
		}
	}
	return out, nil
}
func (f *fakeAppointmentRepo) UpdateStatus(ctx context.Context, providerID, id, status string) error {
	for i := range f.appts {
		if f.appts[i].ID == id && f.appts[i].ProviderID == providerID {
			f.appts[i].Status = status
			return nil
		}
	}
	return fmt.Errorf("appointment not found")
}
func (f *fakeAppointmentRepo) UpdateSchedule(ctx context.Context, providerID, id string, scheduledAt time.Time) error {
	for i := range f.appts {
		if f.appts[i].ID == id && f.appts[i].ProviderID == providerID {
			f.appts[i].ScheduledAt = scheduledAt
			return nil
		}
	}
	return fmt.Errorf("appointment not found")
}
func (f *fakeAppointmentRepo) Count(ctx context.Context) (int64, error) { return 0, nil }

type fakePatientRepo struct {
	pat *models.Patient
}

func (f *fakePatientRepo) Create(ctx context.Context, p *models.Patient) error { return nil }
func (f *fakePatientRepo) GetByID(ctx context.Context, id string) (*models.Patient, error) {
	if f.pat != nil && f.pat.ID == id {
		return f.pat, nil
	}
	return nil, nil
}
func (f *fakePatientRepo) GetByEmail(ctx context.Context, email string) (*models.Patient, error) {
	return nil, nil
}
func (f *fakePatientRepo) ListByProvider(ctx context.Context, providerID string) ([]models.Patient, error) {
	return nil, nil
}
func (f *fakePatientRepo) Update(ctx context.Context, p *models.Patient) error       { return nil }
func (f *fakePatientRepo) Delete(ctx context.Context, providerID, id string) error   { return nil }
func (f *fakePatientRepo) Count(ctx context.Context) (int64, error)                  { return 0, nil }

func newTestService(avail *fakeAvailabilityRepo, appts *fakeAppointmentRepo) *DefaultBookingService {
	return NewDefaultBookingService(
		appts,
		avail,
		&fakeProviderRepo{prov: testProvider()},
		&fakePatientRepo{pat: &models.Patient{ID: "pat-1", ProviderID: "prov-1", Status: "active"}},
		nil,
		nil,
	)
}

func startTimes(slots []models.Slot) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.StartTime)
	}
	return out
}

func TestListSlotsResolvesDay(t *testing.T) {
	svc := newTestService(
		&fakeAvailabilityRepo{rules: []models.AvailabilityRule{mondayRule()}},
		&fakeAppointmentRepo{},
	)

	day, err := svc.ListSlots(context.Background(), "prov-1", testDate)
	if err != nil {
		t.Fatalf("ListSlots: %v", err)
	}
	want := []string{"09:00", "10:00", "11:00"}
	got := startTimes(day.Slots)
	if len(got) != len(want) {
		t.Fatalf("got slots %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("slot %d = %s, want %s", i, got[i], want[i])
		}
		if !day.Slots[i].Available() {
			t.Errorf("slot %s should be available", got[i])
		}
	}
}

func TestListSlotsFailsOpenOnStoreError(t *testing.T) {
	svc := newTestService(
		&fakeAvailabilityRepo{rulesErr: errors.New("store down")},
		&fakeAppointmentRepo{},
	)

	day, err := svc.ListSlots(context.Background(), "prov-1", testDate)
	if err != nil {
		t.Fatalf("ListSlots should not propagate store errors, got %v", err)
	}
	if len(day.Slots) != 0 {
		t.Fatalf("expected no slots without a loaded rule, got %v", startTimes(day.Slots))
	}
}

func TestListSlotsUnknownProvider(t *testing.T) {
	svc := newTestService(&fakeAvailabilityRepo{}, &fakeAppointmentRepo{})

	if _, err := svc.ListSlots(context.Background(), "nope", testDate); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestBookRejectsConflictingSlot(t *testing.T) {
	appts := &fakeAppointmentRepo{
		appts: []models.Appointment{apptAt("appt-1", "09:00", 50, models.AppointmentConfirmed)},
	}
	svc := newTestService(
		&fakeAvailabilityRepo{rules: []models.AvailabilityRule{mondayRule()}},
		appts,
	)

	_, err := svc.Book(context.Background(), "prov-1",
		models.BookingRequest{PatientID: "pat-1", Date: testDate, StartTime: "09:00"},
		models.SourceProvider)
	if !errors.Is(err, ErrSlotUnavailable) {
		t.Fatalf("expected ErrSlotUnavailable, got %v", err)
	}

	// 10:00 is exactly adjacent to the buffered end of the 09:00 session.
	appt, err := svc.Book(context.Background(), "prov-1",
		models.BookingRequest{PatientID: "pat-1", Date: testDate, StartTime: "10:00"},
		models.SourceProvider)
	if err != nil {
		t.Fatalf("adjacent slot should book, got %v", err)
	}
	if appt.Status != models.AppointmentConfirmed {
		t.Errorf("provider booking status = %s, want confirmed", appt.Status)
	}
	if appt.DurationMinutes != 50 {
		t.Errorf("duration = %d, want provider default 50", appt.DurationMinutes)
	}
	if appt.PriceMinorUnits != 25000 {
		t.Errorf("price = %d, want 25000", appt.PriceMinorUnits)
	}
}

func TestBookRejectsUnofferedStart(t *testing.T) {
	svc := newTestService(
		&fakeAvailabilityRepo{rules: []models.AvailabilityRule{mondayRule()}},
		&fakeAppointmentRepo{},
	)

	_, err := svc.Book(context.Background(), "prov-1",
		models.BookingRequest{PatientID: "pat-1", Date: testDate, StartTime: "09:30"},
		models.SourceProvider)
	if !errors.Is(err, ErrSlotUnavailable) {
		t.Fatalf("expected ErrSlotUnavailable for an unoffered start, got %v", err)
	}
}

func TestPortalBookingStartsPending(t *testing.T) {
	svc := newTestService(
		&fakeAvailabilityRepo{rules: []models.AvailabilityRule{mondayRule()}},
		&fakeAppointmentRepo{},
	)

	appt, err := svc.Book(context.Background(), "prov-1",
		models.BookingRequest{PatientID: "pat-1", Date: testDate, StartTime: "09:00"},
		models.SourcePortal)
	if err != nil {
		t.Fatalf("portal booking: %v", err)
	}
	if appt.Status != models.AppointmentPending {
		t.Errorf("portal booking status = %s, want pending", appt.Status)
	}
	if appt.Source != models.SourcePortal {
		t.Errorf("source = %s, want portal", appt.Source)
	}
}

func TestPublicBookingRespectsToggle(t *testing.T) {
	avail := &fakeAvailabilityRepo{rules: []models.AvailabilityRule{mondayRule()}}
	provRepo := &fakeProviderRepo{prov: testProvider()}
	svc := NewDefaultBookingService(&fakeAppointmentRepo{}, avail, provRepo, &fakePatientRepo{}, nil, nil)

	req := models.PublicBookingRequest{
		Date:         testDate,
		StartTime:    "11:00",
		ContactName:  "Marina Lopes",
		ContactEmail: "marina@example.com",
	}

	appt, err := svc.BookPublic(context.Background(), "prov-1", req)
	if err != nil {
		t.Fatalf("public booking: %v", err)
	}
	if appt.Status != models.AppointmentPending {
		t.Errorf("public booking status = %s, want pending", appt.Status)
	}
	if appt.ContactName != "Marina Lopes" {
		t.Errorf("contact name not carried: %q", appt.ContactName)
	}

	provRepo.prov.SchedulingConfig.PublicBookingEnabled = false
	if _, err := svc.BookPublic(context.Background(), "prov-1", req); err == nil {
		t.Fatal("expected error with public booking disabled")
	}
}

func TestCancelledAppointmentFreesSlot(t *testing.T) {
	appts := &fakeAppointmentRepo{
		appts: []models.Appointment{apptAt("appt-1", "09:00", 50, models.AppointmentCancelled)},
	}
	svc := newTestService(
		&fakeAvailabilityRepo{rules: []models.AvailabilityRule{mondayRule()}},
		appts,
	)

	if _, err := svc.Book(context.Background(), "prov-1",
		models.BookingRequest{PatientID: "pat-1", Date: testDate, StartTime: "09:00"},
		models.SourceProvider); err != nil {
		t.Fatalf("cancelled appointment should not block the slot, got %v", err)
	}
}

func TestBookDurationOverrideChecksRealLength(t *testing.T) {
	appts := &fakeAppointmentRepo{
		appts: []models.Appointment{apptAt("appt-1", "10:00", 50, models.AppointmentConfirmed)},
	}
	svc := newTestService(
		&fakeAvailabilityRepo{rules: []models.AvailabilityRule{mondayRule()}},
		appts,
	)

	// The 09:00 grid slot is free for a default-length session, but a 120
	// minute session runs over the confirmed 10:00 appointment.
	_, err := svc.Book(context.Background(), "prov-1",
		models.BookingRequest{PatientID: "pat-1", Date: testDate, StartTime: "09:00", DurationMinutes: 120},
		models.SourceProvider)
	if !errors.Is(err, ErrSlotUnavailable) {
		t.Fatalf("expected ErrSlotUnavailable for overrunning override, got %v", err)
	}
	if len(appts.created) != 0 {
		t.Fatalf("conflicting booking was persisted: %+v", appts.created)
	}

	// The default length still fits ahead of the 10:00 session.
	if _, err := svc.Book(context.Background(), "prov-1",
		models.BookingRequest{PatientID: "pat-1", Date: testDate, StartTime: "09:00"},
		models.SourceProvider); err != nil {
		t.Fatalf("default-length booking should fit, got %v", err)
	}
}

func TestBookDurationOverrideMustFitWindow(t *testing.T) {
	svc := newTestService(
		&fakeAvailabilityRepo{rules: []models.AvailabilityRule{mondayRule()}},
		&fakeAppointmentRepo{},
	)

	// 11:00 is an offered start, but 120 minutes runs past the 12:00 close.
	_, err := svc.Book(context.Background(), "prov-1",
		models.BookingRequest{PatientID: "pat-1", Date: testDate, StartTime: "11:00", DurationMinutes: 120},
		models.SourceProvider)
	if !errors.Is(err, ErrSlotUnavailable) {
		t.Fatalf("expected ErrSlotUnavailable past the window close, got %v", err)
	}

	// The same start with a session ending exactly at close is fine.
	if _, err := svc.Book(context.Background(), "prov-1",
		models.BookingRequest{PatientID: "pat-1", Date: testDate, StartTime: "11:00", DurationMinutes: 60},
		models.SourceProvider); err != nil {
		t.Fatalf("session ending at close should book, got %v", err)
	}
}

func TestRescheduleChecksOwnDuration(t *testing.T) {
	appts := &fakeAppointmentRepo{
		appts: []models.Appointment{
			apptAt("appt-1", "09:00", 120, models.AppointmentConfirmed),
			apptAt("appt-2", "11:00", 50, models.AppointmentConfirmed),
		},
	}
	svc := newTestService(
		&fakeAvailabilityRepo{rules: []models.AvailabilityRule{mondayRule()}},
		appts,
	)

	// Moving the double-length session to 10:00 would run it over the
	// confirmed 11:00 session, even though the 10:00 grid slot looks free
	// for a default-length one.
	_, err := svc.Reschedule(context.Background(), "prov-1", "appt-1",
		models.RescheduleRequest{Date: testDate, StartTime: "10:00"})
	if !errors.Is(err, ErrSlotUnavailable) {
		t.Fatalf("expected ErrSlotUnavailable, got %v", err)
	}
	if appts.appts[0].ScheduledAt.Format("15:04") != "09:00" {
		t.Errorf("appointment moved despite conflict: %s", appts.appts[0].ScheduledAt.Format("15:04"))
	}
}

func TestRescheduleIgnoresOwnWindow(t *testing.T) {
	appts := &fakeAppointmentRepo{
		appts: []models.Appointment{apptAt("appt-1", "09:00", 50, models.AppointmentConfirmed)},
	}
	svc := newTestService(
		&fakeAvailabilityRepo{rules: []models.AvailabilityRule{mondayRule()}},
		appts,
	)

	// Moving to its own start must not self-conflict.
	appt, err := svc.Reschedule(context.Background(), "prov-1", "appt-1",
		models.RescheduleRequest{Date: testDate, StartTime: "09:00"})
	if err != nil {
		t.Fatalf("reschedule onto own window: %v", err)
	}
	if appt.ScheduledAt.Format("15:04") != "09:00" {
		t.Errorf("scheduledAt = %s", appt.ScheduledAt.Format("15:04"))
	}

	if _, err := svc.Reschedule(context.Background(), "prov-1", "appt-1",
		models.RescheduleRequest{Date: testDate, StartTime: "11:00"}); err != nil {
		t.Fatalf("reschedule to free slot: %v", err)
	}
}

func TestUpdateStatusValidation(t *testing.T) {
	appts := &fakeAppointmentRepo{
		appts: []models.Appointment{apptAt("appt-1", "09:00", 50, models.AppointmentPending)},
	}
	svc := newTestService(&fakeAvailabilityRepo{}, appts)

	if err := svc.UpdateStatus(context.Background(), "prov-1", "appt-1", "bogus"); err == nil {
		t.Fatal("expected error for invalid status")
	}
	if err := svc.UpdateStatus(context.Background(), "prov-1", "appt-1", models.AppointmentConfirmed); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if appts.appts[0].Status != models.AppointmentConfirmed {
		t.Errorf("status = %s, want confirmed", appts.appts[0].Status)
	}
}

func TestListSelectableDaysRequiresValidRange(t *testing.T) {
	svc := newTestService(
		&fakeAvailabilityRepo{rules: []models.AvailabilityRule{mondayRule()}},
		&fakeAppointmentRepo{},
	)

	days, err := svc.ListSelectableDays(context.Background(), "prov-1", testDate, 7)
	if err != nil {
		t.Fatalf("ListSelectableDays: %v", err)
	}
	if len(days) != 7 {
		t.Fatalf("got %d days, want 7", len(days))
	}
	if !days[0].Selectable {
		t.Error("Monday with an active rule should be selectable")
	}
	if days[1].Selectable {
		t.Error("Tuesday without a rule should not be selectable")
	}

	if _, err := svc.ListSelectableDays(context.Background(), "prov-1", "not-a-date", 7); err == nil {
		t.Fatal("expected error for malformed date")
	}
}
